package version

import (
	"fmt"

	"github.com/cutplay-cli/cutplay/color"
	"github.com/cutplay-cli/cutplay/constant"
	"github.com/cutplay-cli/cutplay/icon"
	"github.com/cutplay-cli/cutplay/key"
	"github.com/cutplay-cli/cutplay/style"
	"github.com/cutplay-cli/cutplay/util"
	"github.com/spf13/viper"
)

// Notify displays a terminal alert if a more recent stable release is
// available.
func Notify() {
	if !viper.GetBool(key.CliVersionCheck) {
		return
	}

	erase := util.PrintErasable(fmt.Sprintf("%s Checking if new version is available...", icon.Get(icon.Progress)))
	version, err := Latest()
	erase()
	if err == nil {
		comp, err := Compare(version, constant.Version)
		if err == nil && comp <= 0 {
			return
		}
	}

	fmt.Printf(`
%s New version is available %s %s
%s

`,
		style.Fg(color.Green)("▇▇▇"),
		style.Bold(version),
		style.Faint(fmt.Sprintf("(You're on %s)", constant.Version)),
		style.Faint("https://github.com/cutplay-cli/cutplay/releases/tag/v"+version),
	)
}
