package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/postserve/cmd/postserve/commands"
	derrors "git.home.luguber.info/inful/postserve/internal/foundation/errors"
	"git.home.luguber.info/inful/postserve/internal/version"
)

func main() {
	cli := &commands.CLI{}
	parser := kong.Parse(cli,
		kong.Name("postserve"),
		kong.Description("Serve markdown blog posts from a remote host with a bundled local fallback."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	global := &commands.Global{Stdout: os.Stdout}
	if err := parser.Run(global, cli); err != nil {
		derrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
	}
}
