// Package main is the entry point for the cutplay application.
package main

import (
	"github.com/cutplay-cli/cutplay/cmd"
	"github.com/cutplay-cli/cutplay/config"
	"github.com/cutplay-cli/cutplay/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}
