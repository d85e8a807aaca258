package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/marklint/internal/configloader"
	"github.com/yaklabco/marklint/internal/logging"
	"github.com/yaklabco/marklint/internal/lsp"
	"github.com/yaklabco/marklint/pkg/lint"
	_ "github.com/yaklabco/marklint/pkg/lint/rules" // register built-in rules
	goldmarkparser "github.com/yaklabco/marklint/pkg/parser/goldmark"
)

func newServeCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the Language Server Protocol server on stdio",
		Long: `Start marklint as an LSP server speaking JSON-RPC over stdin/stdout.
Editors lint documents on open and on every change.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			workDir, err := os.Getwd()
			if err != nil {
				return err
			}

			cfg, _, err := configloader.Resolve(flags.configPath, workDir)
			if err != nil {
				return err
			}

			engine := lint.NewEngine(goldmarkparser.New(goldmarkparser.FlavorGFM), lint.DefaultRegistry)
			server := lsp.New(engine, cfg, logging.Default())
			return server.RunStdio(cmd.Context())
		},
	}
}
