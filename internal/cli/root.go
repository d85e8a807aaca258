// Package cli implements the marklint command tree.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/marklint/internal/logging"
)

// BuildInfo carries version metadata stamped at build time.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// rootFlags are shared across subcommands.
type rootFlags struct {
	configPath string
	verbose    bool
	noColor    bool
}

// NewRootCommand builds the marklint command tree. The root command lints
// the given paths; rules, version, serve, and init are subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "marklint [paths...]",
		Short: "A CommonMark/GFM style linter",
		Long: `marklint checks Markdown documents for style and structural issues.

Paths may be files, directories (walked recursively for .md/.markdown),
or glob patterns. Without arguments the current directory is linted.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flags.verbose {
				logging.SetLevel("debug")
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args, flags)
		},
	}

	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "",
		"path to a marklint.toml configuration file")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false,
		"enable debug logging")
	cmd.PersistentFlags().BoolVar(&flags.noColor, "no-color", false,
		"disable styled output")

	addLintFlags(cmd)

	cmd.AddCommand(newRulesCommand())
	cmd.AddCommand(newVersionCommand(info))
	cmd.AddCommand(newServeCommand(flags))
	cmd.AddCommand(newInitCommand())

	return cmd
}
