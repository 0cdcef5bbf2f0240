// Package cmd implements the command-line interface for cutplay.
package cmd

import (
	"os"

	"github.com/cutplay-cli/cutplay/color"
	"github.com/cutplay-cli/cutplay/key"
	"github.com/cutplay-cli/cutplay/player"
	"github.com/cutplay-cli/cutplay/style"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(playersCmd)
	playersCmd.AddCommand(playersListCmd)
	playersListCmd.SetOut(os.Stdout)
}

// playersCmd serves as the parent command for playback backend inspection.
var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "Inspect the available playback backends",
}

// playersListCmd lists the registered playback backends.
var playersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the registered playback backends",
	Run: func(cmd *cobra.Command, args []string) {
		configured := viper.GetString(key.PlayerBackend)

		for _, kind := range player.Kinds() {
			name := string(kind)
			if name == configured {
				cmd.Printf("%s %s\n", style.Fg(color.Green)(name), style.Faint("(configured)"))
				continue
			}
			cmd.Println(name)
		}
	},
}
