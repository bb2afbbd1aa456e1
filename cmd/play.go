// Package cmd implements the command-line interface for finetic.
package cmd

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/finetic-cli/finetic/history"
	"github.com/finetic-cli/finetic/icon"
	"github.com/finetic-cli/finetic/jellyfin"
	"github.com/finetic-cli/finetic/key"
	"github.com/finetic-cli/finetic/log"
	"github.com/finetic-cli/finetic/playback"
	"github.com/finetic-cli/finetic/player"
	"github.com/finetic-cli/finetic/query"
	"github.com/finetic-cli/finetic/style"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(playCmd)

	playCmd.Flags().BoolP("resume", "r", true, "Resume from the server-side playback position")
	playCmd.Flags().String("source", "", "Preferred media source version id")
}

// playCmd searches the library and plays the chosen item in mpv.
var playCmd = &cobra.Command{
	Use:   "play [query]",
	Short: "Search the Jellyfin library and play an item",
	RunE: func(cmd *cobra.Command, args []string) error {
		CheckDependencies()

		client, err := jellyfin.FromKeyring()
		if err != nil {
			return err
		}

		term := strings.Join(args, " ")
		if term == "" {
			prompt := &survey.Input{
				Message: "Search",
				Suggest: func(toComplete string) []string {
					return query.SuggestMany(toComplete)
				},
			}
			if err := survey.AskOne(prompt, &term, survey.WithValidator(survey.Required)); err != nil {
				return err
			}
		}

		items, err := searchItems(client, term)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			fmt.Printf("%s Nothing found for %s\n", icon.Get(icon.Search), style.Bold(term))
			return nil
		}

		item, err := pickItem(items)
		if err != nil {
			return err
		}

		resume, _ := cmd.Flags().GetBool("resume")
		source, _ := cmd.Flags().GetString("source")
		return playItem(client, item, resume, source)
	},
}

// playSession accumulates observations from controller status updates so the
// final history write carries the last known position.
type playSession struct {
	mu            sync.Mutex
	sourceID      string
	positionTicks int64
	percentage    float64
	err           error

	trackOnce sync.Once
	chapOnce  sync.Once
}

// playItem runs one supervised playback session in mpv and blocks until the
// player exits or playback ends.
func playItem(client *jellyfin.Client, item *jellyfin.Item, resume bool, preferredSource string) error {
	mpv := player.NewMPV()
	element := player.NewElement(mpv, item.DisplayName())
	controller := playback.NewController(client, element)

	var resumeTicks int64
	if resume && item.UserData != nil {
		resumeTicks = item.UserData.PlaybackPositionTicks
	}

	session := &playSession{}
	autoSkip := viper.GetBool(key.PlayerAutoSkipIntro)
	preferredLang := viper.GetString(key.SubtitlesPreferredLanguage)

	stopSub := controller.Subscribe(func(status playback.Status) {
		session.mu.Lock()
		if status.Source != nil {
			session.sourceID = status.Source.ID
		}
		if status.Position > 0 {
			session.positionTicks = playback.SecondsToTicks(status.Position)
			if status.Duration > 0 {
				session.percentage = status.Position / status.Duration * 100
			}
		}
		if status.Err != nil {
			session.err = status.Err
		}
		session.mu.Unlock()

		if preferredLang != "" && len(status.Tracks) > 0 {
			session.trackOnce.Do(func() {
				for _, track := range status.Tracks {
					if track.Language == preferredLang {
						controller.SelectTrack(mo.Some(track.Index))
						return
					}
				}
			})
		}

		if len(status.Chapters) > 0 {
			session.chapOnce.Do(func() {
				if err := player.ApplyChapters(mpv, status.Chapters); err != nil {
					log.Warnf("Applying chapter markers failed: %s", err)
				}
			})
		}

		if autoSkip && status.OfferSkip {
			controller.SkipIntro()
		}
	})
	defer stopSub()

	controller.Select(playback.Selection{
		ItemID:      item.ID,
		SourceID:    preferredSource,
		ResumeTicks: resumeTicks,
		MaxBitrate:  viper.GetInt(key.StreamMaxBitrate),
	})

	fmt.Printf("%s Playing %s\n", icon.Get(icon.Play), style.Bold(item.DisplayName()))

	waitForSession(controller, element)
	controller.Close()

	session.mu.Lock()
	sourceID := session.sourceID
	positionTicks := session.positionTicks
	percentage := session.percentage
	sessionErr := session.err
	session.mu.Unlock()

	if viper.GetBool(key.HistorySaveOnWatch) && positionTicks > 0 {
		if err := history.Save(item, sourceID, positionTicks, percentage); err != nil {
			log.Warnf("Saving watch history failed: %s", err)
		}
	}

	return sessionErr
}

// waitForSession blocks until the controller returns to empty or the mpv
// process exits.
func waitForSession(controller *playback.Controller, element *player.Element) {
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	started := false
	for range ticker.C {
		switch controller.State() {
		case playback.StateEmpty:
			if started {
				return
			}
		default:
			started = true
		}

		if started {
			select {
			case <-element.Wait():
				return
			default:
			}
		}
	}
}
