// Package cmd implements the command-line interface for finetic.
package cmd

import (
	"fmt"

	"github.com/finetic-cli/finetic/auth"
	"github.com/finetic-cli/finetic/icon"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(logoutCmd)
}

// logoutCmd removes the stored Jellyfin session from the system keyring.
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored Jellyfin session",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := auth.Delete(); err != nil {
			return err
		}

		fmt.Printf("%s Logged out\n", icon.Get(icon.Success))
		return nil
	},
}
