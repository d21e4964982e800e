package cmd

import (
	"github.com/mitchellh/cli"

	"github.com/signalytics/pokedex/internal/version"
)

// VersionCommand prints the build version.
type VersionCommand struct {
	UI cli.Ui
}

func (c *VersionCommand) Synopsis() string {
	return "Print the pokedex version"
}

func (c *VersionCommand) Help() string {
	return "Usage: pokedex version\n"
}

func (c *VersionCommand) Run(args []string) int {
	c.UI.Output(version.Version)
	return 0
}
