// Package cmd implements the command-line interface for cutplay.
package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/cutplay-cli/cutplay/color"
	"github.com/cutplay-cli/cutplay/icon"
	"github.com/cutplay-cli/cutplay/key"
	"github.com/cutplay-cli/cutplay/media"
	"github.com/cutplay-cli/cutplay/open"
	"github.com/cutplay-cli/cutplay/player"
	"github.com/cutplay-cli/cutplay/position"
	"github.com/cutplay-cli/cutplay/session"
	"github.com/cutplay-cli/cutplay/style"
	"github.com/cutplay-cli/cutplay/timeline"
	"github.com/cutplay-cli/cutplay/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().IntP("source", "s", 0, "Index of the parallel source to play")
	playCmd.Flags().BoolP("pick", "p", false, "Interactively pick the quality definition")
	playCmd.Flags().BoolP("open", "O", false, "Open the resolved URL with the system handler")
	playCmd.Flags().StringP("app", "a", "", "Application to open the resolved URL with (implies --open)")
}

// stubBridge satisfies the frame bridge contract for backends that
// never go live inside the CLI. The adapter only resolves URLs here.
type stubBridge struct {
	messages chan []byte
}

func newStubBridge() *stubBridge {
	return &stubBridge{messages: make(chan []byte)}
}

func (b *stubBridge) Send(string, any) error { return nil }

func (b *stubBridge) Messages() <-chan []byte { return b.messages }

func (b *stubBridge) Close() error {
	close(b.messages)
	return nil
}

// playCmd resolves a media descriptor into something playable: the
// source or embed URL of the configured backend, the active cut
// window, and the saved resume position.
var playCmd = &cobra.Command{
	Use:   "play [media file]",
	Short: "Resolve a media descriptor against the configured playback backend",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var (
			sourceIndex = lo.Must(cmd.Flags().GetInt("source"))
			pick        = lo.Must(cmd.Flags().GetBool("pick"))
		)

		m := readMedia(args[0])

		kind, err := player.ParseKind(viper.GetString(key.PlayerBackend))
		handleErr(err)

		tl := timeline.New()
		handleErr(tl.SetMedia(m))
		if !viper.GetBool(key.PlayerCutsEnabled) {
			tl.SetCutsEnabled(false)
		}

		header := style.New().Bold(true).Foreground(color.HiPurple).Render
		cmd.Printf("%s %s\n", header("Backend"), string(kind))

		if tl.CutsEnabled() {
			cmd.Printf(
				"%s cut from %s%s\n",
				icon.Get(icon.Cut),
				util.FormatMillis(tl.CutStart()),
				cutEndLabel(tl),
			)
		}

		var url string
		switch kind {
		case player.KindHTML:
			url = playDirect(cmd, m, sourceIndex, pick)
		default:
			url = playEmbed(cmd, kind, m, sourceIndex)
		}

		app := lo.Must(cmd.Flags().GetString("app"))
		if lo.Must(cmd.Flags().GetBool("open")) || app != "" {
			handleErr(open.StartWith(url, app))
		}

		if m.Thumbnail != "" {
			cmd.Printf("%s %s\n", header("Thumbnail"), style.Faint(m.Thumbnail))
		}

		printResume(cmd, m)
	},
}

func cutEndLabel(tl *timeline.Timeline) string {
	if end := tl.CutEnd(); end > 0 {
		return " to " + util.FormatMillis(end)
	}
	return " to the end of the media"
}

// playDirect resolves a file-backed source for the html backend.
func playDirect(cmd *cobra.Command, m *media.Media, sourceIndex int, pick bool) string {
	if sourceIndex < 0 || sourceIndex >= len(m.Sources) {
		handleErr(errors.New("source index out of range"))
	}

	definitions := m.Sources[sourceIndex].Files
	if len(definitions) == 0 {
		handleErr(errors.New(player.MediaErrNoSource.Message()))
	}

	chosen := definitions[0]
	if pick && len(definitions) > 1 {
		labels := lo.Map(definitions, func(def media.Definition, _ int) string {
			return def.String()
		})

		var answer string
		handleErr(survey.AskOne(&survey.Select{
			Message: "Pick a definition",
			Options: labels,
		}, &answer))

		index := lo.IndexOf(labels, answer)
		chosen = definitions[util.Max(index, 0)]
	}

	header := style.New().Bold(true).Foreground(color.HiPurple).Render
	cmd.Printf("%s %s %s\n", header("Source"), chosen.URL, style.Faint(chosen.MIME))
	return chosen.URL
}

// playEmbed resolves the frame URL for an iframe backend. The adapter
// runs inside a configured session so the user's volume and resume
// settings reach the backend.
func playEmbed(cmd *cobra.Command, kind player.Kind, m *media.Media, sourceIndex int) string {
	p, err := player.New(kind, player.Options{
		ID:     constantPlayerID,
		Bridge: newStubBridge(),
	})
	handleErr(err)

	s, err := session.FromConfig(m, p)
	handleErr(err)
	defer util.Ignore(s.Close)

	handleErr(p.SetSource(sourceIndex))
	handleErr(s.Start())

	url, ok := p.SourceURL().Get()
	if !ok {
		handleErr(errors.New(player.MediaErrNoSource.Message()))
	}

	header := style.New().Bold(true).Foreground(color.HiPurple).Render
	cmd.Printf("%s %s\n", header("Embed"), url)
	return url
}

// constantPlayerID names the CLI's player instance in embed URLs.
const constantPlayerID = "cutplay"

func printResume(cmd *cobra.Command, m *media.Media) {
	if !viper.GetBool(key.PlayerRememberPosition) {
		return
	}

	saved, err := position.Get(strings.Join(m.ID, "+"))
	if err != nil {
		handleErr(err)
	}

	record, ok := saved.Get()
	if !ok {
		return
	}

	completion := float64(viper.GetInt(key.PlayerCompletionPercent))
	if completion > 0 && record.Percent >= completion {
		cmd.Printf(
			"%s already watched %s\n",
			icon.Get(icon.Success),
			style.Faint(fmt.Sprintf("(%.0f%%)", record.Percent)),
		)
		return
	}

	if viper.GetBool(key.PlayerStartAtSavedTime) {
		cmd.Printf(
			"%s resume at %s %s\n",
			icon.Get(icon.Play),
			style.Fg(color.Green)(util.FormatMillis(record.Time)),
			style.Faint(fmt.Sprintf("(%.0f%%)", record.Percent)),
		)
	}
}
