// Package cmd implements the command-line interface for finetic.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/finetic-cli/finetic/color"
	"github.com/finetic-cli/finetic/constant"
	"github.com/finetic-cli/finetic/icon"
	"github.com/finetic-cli/finetic/jellyfin"
	"github.com/finetic-cli/finetic/key"
	"github.com/finetic-cli/finetic/log"
	"github.com/finetic-cli/finetic/style"
	"github.com/finetic-cli/finetic/util"
	"github.com/finetic-cli/finetic/version"
	"github.com/finetic-cli/finetic/where"
	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, square)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().BoolP("write-history", "H", true, "Persist playback progress to the localized watch history")
	lo.Must0(viper.BindPFlag(key.HistorySaveOnWatch, rootCmd.PersistentFlags().Lookup("write-history")))

	rootCmd.PersistentFlags().IntP("bitrate", "b", 0, "Cap the stream video bitrate in bits per second")
	lo.Must0(viper.BindPFlag(key.StreamMaxBitrate, rootCmd.PersistentFlags().Lookup("bitrate")))

	rootCmd.Flags().BoolP("continue", "c", false, "Resume playback from the most recent server resume entry")

	helpFunc := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpFunc(cmd, args)
		version.Notify()
	})

	// Initialize cleanup of localized temporary files on application startup.
	go func() {
		_ = util.Delete(where.Temp())
	}()
}

// rootCmd defines the entry point for the finetic application.
var rootCmd = &cobra.Command{
	Use:   constant.Finetic,
	Short: "A minimalist command-line client for Jellyfin media playback",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiBlue).Render("    - A minimalist command-line client for Jellyfin media playback"),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		CheckDependencies()

		client, err := jellyfin.FromKeyring()
		handleErr(err)

		handleErr(continueWatching(client, lo.Must(cmd.Flags().GetBool("continue"))))
	},
}

// continueWatching offers the server's resume list and plays the chosen entry.
// With resumeLatest set, the most recent entry starts without a prompt.
func continueWatching(client *jellyfin.Client, resumeLatest bool) error {
	items, err := client.ResumeItems(viper.GetInt(key.SearchLimit))
	if err != nil {
		return err
	}

	if len(items) == 0 {
		fmt.Printf("%s Nothing in progress, use %s to find something to watch\n",
			icon.Get(icon.Clock),
			style.Fg(color.Yellow)(constant.Finetic+" play <query>"),
		)
		return nil
	}

	chosen := &items[0]
	if !resumeLatest {
		options := lo.Map(items, func(item jellyfin.Item, _ int) string {
			return item.DisplayName()
		})

		var answer string
		prompt := &survey.Select{
			Message: "Continue watching",
			Options: options,
		}
		if err := survey.AskOne(prompt, &answer); err != nil {
			return err
		}

		_, index, _ := lo.FindIndexOf(options, func(option string) bool {
			return option == answer
		})
		chosen = &items[index]
	}

	return playItem(client, chosen, true, "")
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
