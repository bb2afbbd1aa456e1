// Package cmd implements the command-line interface for finetic.
package cmd

import (
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/finetic-cli/finetic/color"
	"github.com/finetic-cli/finetic/icon"
	"github.com/finetic-cli/finetic/internal/cache"
	"github.com/finetic-cli/finetic/jellyfin"
	"github.com/finetic-cli/finetic/key"
	"github.com/finetic-cli/finetic/log"
	"github.com/finetic-cli/finetic/open"
	"github.com/finetic-cli/finetic/query"
	"github.com/finetic-cli/finetic/style"
	"github.com/finetic-cli/finetic/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().BoolP("web", "w", false, "Open the first match in the Jellyfin web interface")
}

// searchCmd queries the Jellyfin library and prints matching items.
var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the Jellyfin library",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := jellyfin.FromKeyring()
		if err != nil {
			return err
		}

		term := strings.Join(args, " ")
		items, err := searchItems(client, term)
		if err != nil {
			return err
		}

		if len(items) == 0 {
			fmt.Printf("%s Nothing found for %s\n", icon.Get(icon.Search), style.Bold(term))
			return nil
		}

		if lo.Must(cmd.Flags().GetBool("web")) {
			return open.Start(fmt.Sprintf("%s/web/index.html#!/details?id=%s", client.ServerURL(), items[0].ID))
		}

		fmt.Printf("%s Found %s\n\n", icon.Get(icon.Search), util.Quantify(len(items), "item", "items"))
		for _, item := range items {
			line := item.DisplayName()
			if item.ProductionYear > 0 {
				line += " " + style.Faint(fmt.Sprintf("(%d)", item.ProductionYear))
			}
			fmt.Printf("  %s %s\n", style.Fg(color.Yellow)(item.Type), line)
		}
		return nil
	},
}

// searchItems runs a library search and records the query for future
// suggestions. Results are cached so a brief server outage can still serve
// the most recent answer for the same term.
func searchItems(client *jellyfin.Client, term string) ([]jellyfin.Item, error) {
	cacheKey := cache.GenerateKey(term, client.ServerURL())

	items, err := client.Search(term, viper.GetInt(key.SearchLimit))
	if err != nil {
		var cached []jellyfin.Item
		if cache.Read(cacheKey, &cached) {
			log.Warnf("Search failed, serving cached results: %s", err)
			return cached, nil
		}
		return nil, err
	}

	if err := cache.Write(cacheKey, items); err != nil {
		log.Warnf("Caching search results failed: %s", err)
	}

	if err := query.Remember(term, 1); err != nil {
		return nil, err
	}
	return items, nil
}

// pickItem prompts the user to choose one item from search results.
func pickItem(items []jellyfin.Item) (*jellyfin.Item, error) {
	options := lo.Map(items, func(item jellyfin.Item, _ int) string {
		return item.DisplayName()
	})

	var answer string
	prompt := &survey.Select{
		Message: "Play",
		Options: options,
	}
	if err := survey.AskOne(prompt, &answer); err != nil {
		return nil, err
	}

	_, index, _ := lo.FindIndexOf(options, func(option string) bool {
		return option == answer
	})
	return &items[index], nil
}
