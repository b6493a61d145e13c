package main

import (
	"github.com/alecthomas/kong"

	"github.com/sciforge/navbuilder/cmd/navbuilder/commands"
	"github.com/sciforge/navbuilder/internal/version"
)

func main() {
	cli := &commands.CLI{}
	kctx := kong.Parse(cli,
		kong.Name("navbuilder"),
		kong.Description("Build and serve navigation indexes for documentation sites"),
		kong.UsageOnError(),
		kong.Vars{"version": version.Version},
	)
	err := kctx.Run(cli)
	kctx.FatalIfErrorf(err)
}
