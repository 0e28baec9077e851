package main

import (
	"log/slog"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/docbind/cmd/docbind/commands"
	"git.home.luguber.info/inful/docbind/internal/foundation/errors"
	"git.home.luguber.info/inful/docbind/internal/version"
)

func main() {
	cli := &commands.CLI{}
	global := &commands.Global{}
	parser := kong.Parse(cli,
		kong.Name("docbind"),
		kong.Description("Normalize reference documentation for generated API bindings"),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
		kong.Bind(cli, global),
	)

	if err := parser.Run(); err != nil {
		errors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
	}
}
