// Package cmd implements the command-line interface for cutplay.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/cutplay-cli/cutplay/color"
	"github.com/cutplay-cli/cutplay/constant"
	"github.com/cutplay-cli/cutplay/icon"
	"github.com/cutplay-cli/cutplay/key"
	"github.com/cutplay-cli/cutplay/log"
	"github.com/cutplay-cli/cutplay/player"
	"github.com/cutplay-cli/cutplay/style"
	"github.com/cutplay-cli/cutplay/util"
	"github.com/cutplay-cli/cutplay/version"
	"github.com/cutplay-cli/cutplay/where"
	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, plain)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().StringP("backend", "b", "", "Playback backend to use")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("backend", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return lo.Map(player.Kinds(), func(k player.Kind, _ int) string {
			return string(k)
		}), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.PlayerBackend, rootCmd.PersistentFlags().Lookup("backend")))

	rootCmd.PersistentFlags().BoolP("remember-position", "R", true, "Persist playback progress for resuming later")
	lo.Must0(viper.BindPFlag(key.PlayerRememberPosition, rootCmd.PersistentFlags().Lookup("remember-position")))

	rootCmd.PersistentFlags().Bool("cuts", true, "Honor the cut window declared by the media")
	lo.Must0(viper.BindPFlag(key.PlayerCutsEnabled, rootCmd.PersistentFlags().Lookup("cuts")))

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

// rootCmd defines the entry point for the cutplay application.
var rootCmd = &cobra.Command{
	Use:   constant.Cutplay,
	Short: "A cut-aware playback companion for trimmed media",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("    - A cut-aware playback companion for trimmed media"),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		handleErr(cmd.Help())
	},
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
