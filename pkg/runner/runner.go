package runner

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/marklint/pkg/config"
	"github.com/yaklabco/marklint/pkg/lint"
)

// Runner fans a lint run out over files, one engine invocation per file.
type Runner struct {
	engine *lint.Engine
	cfg    *config.Config
}

// New creates a Runner around an engine and a configuration view.
func New(engine *lint.Engine, cfg *config.Config) *Runner {
	return &Runner{engine: engine, cfg: cfg}
}

// Run discovers files and lints them concurrently. Results keep discovery
// order. A read failure is recorded per file; only discovery errors and
// cancellation abort the run.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(opts)
	if err != nil {
		return nil, fmt.Errorf("discover files: %w", err)
	}

	result := &Result{Files: make([]FileResult, len(files))}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(opts.jobs())

	for i, path := range files {
		group.Go(func() error {
			result.Files[i] = r.lintOne(groupCtx, path)
			return groupCtx.Err()
		})
	}

	if err := group.Wait(); err != nil {
		return result, fmt.Errorf("lint run aborted: %w", err)
	}
	return result, nil
}

func (r *Runner) lintOne(ctx context.Context, path string) FileResult {
	fileResult := FileResult{Path: path}

	content, err := os.ReadFile(path)
	if err != nil {
		fileResult.Err = fmt.Errorf("read %s: %w", path, err)
		return fileResult
	}

	lintResult, err := r.engine.LintFile(ctx, path, content, r.cfg)
	if err != nil {
		fileResult.Err = err
		return fileResult
	}
	fileResult.Result = lintResult
	return fileResult
}
