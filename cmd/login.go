// Package cmd implements the command-line interface for finetic.
package cmd

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/finetic-cli/finetic/auth"
	"github.com/finetic-cli/finetic/icon"
	"github.com/finetic-cli/finetic/jellyfin"
	"github.com/finetic-cli/finetic/style"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(loginCmd)

	loginCmd.Flags().StringP("server", "s", "", "Jellyfin server URL")
	loginCmd.Flags().StringP("user", "u", "", "Jellyfin username")
}

// loginCmd authenticates against a Jellyfin server and stores the session in the system keyring.
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate against a Jellyfin server",
	RunE: func(cmd *cobra.Command, args []string) error {
		serverURL, _ := cmd.Flags().GetString("server")
		username, _ := cmd.Flags().GetString("user")
		var password string

		var questions []*survey.Question
		if serverURL == "" {
			questions = append(questions, &survey.Question{
				Name:     "server",
				Prompt:   &survey.Input{Message: "Server URL", Help: "e.g. https://jellyfin.example.org"},
				Validate: survey.Required,
			})
		}
		if username == "" {
			questions = append(questions, &survey.Question{
				Name:     "username",
				Prompt:   &survey.Input{Message: "Username"},
				Validate: survey.Required,
			})
		}
		questions = append(questions, &survey.Question{
			Name:   "password",
			Prompt: &survey.Password{Message: "Password"},
		})

		answers := struct {
			Server   string
			Username string
			Password string
		}{Server: serverURL, Username: username}

		if err := survey.Ask(questions, &answers); err != nil {
			return err
		}
		password = answers.Password

		creds, err := jellyfin.Authenticate(answers.Server, answers.Username, password)
		if err != nil {
			return err
		}

		if err := auth.Set(creds); err != nil {
			return fmt.Errorf("store credentials: %w", err)
		}

		fmt.Printf("%s Logged in to %s as %s\n",
			icon.Get(icon.Success),
			style.Bold(creds.ServerURL),
			style.Bold(creds.Username),
		)
		return nil
	},
}
