package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const starterConfig = `# marklint configuration.
#
# Severities: "off", "warn", "error". The "default" key seeds every rule
# that has no explicit entry.

[linters.severity]
# default = "error"
# line-length = "off"
# no-trailing-spaces = "warn"

# Per-rule options live under linters.settings.<rule-alias>.

# [linters.settings.line-length]
# line_length = 100
# code_blocks = false

# [linters.settings.ul-style]
# style = "dash"
`

func newInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter .marklint.toml in the current directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			const path = ".marklint.toml"

			if !force {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", path)
				}
			}

			if err := os.WriteFile(path, []byte(starterConfig), 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	return cmd
}
