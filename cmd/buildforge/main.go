package main

import (
	"log/slog"

	"git.home.luguber.info/inful/buildforge/cmd/buildforge/commands"
	bferrors "git.home.luguber.info/inful/buildforge/internal/errors"
	"git.home.luguber.info/inful/buildforge/internal/version"
	"github.com/alecthomas/kong"
)

func main() {
	var cli commands.CLI
	ctx := kong.Parse(&cli,
		kong.Name("buildforge"),
		kong.Description("Workspace build orchestrator driven by project manifests"),
		kong.Vars{"version": version.Version},
	)

	err := ctx.Run(&commands.Global{Logger: slog.Default()}, &cli)
	if err != nil {
		adapter := bferrors.NewCLIErrorAdapter(cli.Verbose, slog.Default())
		adapter.HandleError(err)
	}
}
