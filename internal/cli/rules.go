package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/marklint/pkg/lint"
	_ "github.com/yaklabco/marklint/pkg/lint/rules" // register built-in rules
)

func newRulesCommand() *cobra.Command {
	var tag string

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the available lint rules",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			for _, meta := range lint.DefaultRegistry.Rules() {
				if tag != "" && !hasTag(meta, tag) {
					continue
				}
				fmt.Fprintf(out, "%-7s %-34s %-9s %s\n",
					meta.ID, meta.Alias, meta.Type, meta.Description)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&tag, "tag", "", "only list rules carrying this tag")

	cmd.AddCommand(&cobra.Command{
		Use:   "tags",
		Short: "List all rule tags",
		RunE: func(cmd *cobra.Command, args []string) error {
			seen := make(map[string]bool)
			for _, meta := range lint.DefaultRegistry.Rules() {
				for _, t := range meta.Tags {
					seen[t] = true
				}
			}
			tags := make([]string, 0, len(seen))
			for t := range seen {
				tags = append(tags, t)
			}
			sort.Strings(tags)
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(tags, "\n"))
			return nil
		},
	})

	return cmd
}

func hasTag(meta *lint.Metadata, tag string) bool {
	for _, t := range meta.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
