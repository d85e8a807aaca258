// Command marklint lints Markdown documents.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/yaklabco/marklint/internal/cli"
	"github.com/yaklabco/marklint/internal/logging"
)

// Build metadata, stamped via -ldflags.
//
//nolint:gochecknoglobals // Set at link time.
var (
	version = ""
	commit  = ""
	date    = ""
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCommand(cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	})

	if err := root.ExecuteContext(ctx); err != nil {
		code := cli.ExitCode(err)
		if code == cli.ExitFailure {
			logging.Default().Error(err.Error())
		}
		return code
	}
	return cli.ExitOK
}
