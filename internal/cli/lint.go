package cli

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/marklint/internal/configloader"
	"github.com/yaklabco/marklint/internal/logging"
	"github.com/yaklabco/marklint/internal/ui/pretty"
	"github.com/yaklabco/marklint/pkg/lint"
	"github.com/yaklabco/marklint/pkg/reporter"
	"github.com/yaklabco/marklint/pkg/runner"

	_ "github.com/yaklabco/marklint/pkg/lint/rules" // register built-in rules
	goldmarkparser "github.com/yaklabco/marklint/pkg/parser/goldmark"
)

// ErrIssuesFound marks a run that completed but produced error-severity
// violations; the process exits 1 without an error message.
var ErrIssuesFound = errors.New("issues found")

// lintOptions holds the flags of the root (lint) command.
//
//nolint:gochecknoglobals // Cobra flag targets live for the process.
var lintOptions struct {
	format string
	jobs   int
}

func addLintFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&lintOptions.format, "format", "f", "text",
		"output format: text or json")
	cmd.Flags().IntVarP(&lintOptions.jobs, "jobs", "j", 0,
		"number of files linted in parallel (0 = all CPUs)")
}

func runLint(cmd *cobra.Command, args []string, flags *rootFlags) error {
	logger := logging.Default()

	workDir, err := os.Getwd()
	if err != nil {
		return err
	}

	cfg, configPath, err := configloader.Resolve(flags.configPath, workDir)
	if err != nil {
		return err
	}
	if configPath != "" {
		logger.Debug("configuration loaded", logging.FieldConfig, configPath)
	}

	engine := lint.NewEngine(goldmarkparser.New(goldmarkparser.FlavorGFM), lint.DefaultRegistry)
	run := runner.New(engine, cfg)

	result, err := run.Run(cmd.Context(), runner.Options{
		Paths:   args,
		WorkDir: workDir,
		Jobs:    lintOptions.jobs,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	styled := !flags.noColor && lintOptions.format == "text" && pretty.IsTerminal(os.Stdout)

	if styled {
		if err := pretty.NewRenderer(true).Render(out, result); err != nil {
			return err
		}
	} else {
		rep, err := reporter.New(reporter.Format(lintOptions.format), reporter.Options{RuleFormat: "both"})
		if err != nil {
			return err
		}
		if err := rep.Report(out, result); err != nil {
			return err
		}
	}

	logger.Debug("lint finished",
		logging.FieldFilesProcessed, len(result.Files),
		logging.FieldFilesWithIssues, result.FilesWithIssues(),
		logging.FieldViolationsTotal, result.TotalViolations(),
		logging.FieldErrorsTotal, result.ErrorCount())

	if result.HasErrors() {
		return ErrIssuesFound
	}
	return nil
}
