package runner

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Discover expands the option paths into the ordered, de-duplicated list
// of files to lint. Directories are walked recursively for Markdown
// extensions; glob patterns are expanded; explicit files are taken as-is
// regardless of extension.
func Discover(opts Options) ([]string, error) {
	workDir := opts.WorkDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolve working directory: %w", err)
		}
	}

	args := opts.Paths
	if len(args) == 0 {
		args = []string{"."}
	}

	var files []string
	seen := make(map[string]bool)
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, arg := range args {
		path := arg
		if !filepath.IsAbs(path) {
			path = filepath.Join(workDir, arg)
		}

		switch {
		case isGlobPattern(arg):
			matches, err := filepath.Glob(path)
			if err != nil {
				return nil, fmt.Errorf("bad pattern %q: %w", arg, err)
			}
			for _, match := range matches {
				if info, statErr := os.Stat(match); statErr == nil && !info.IsDir() {
					add(match)
				}
			}

		default:
			info, err := os.Stat(path)
			if err != nil {
				return nil, fmt.Errorf("stat %q: %w", arg, err)
			}
			if !info.IsDir() {
				add(path)
				continue
			}
			if err := walkDirectory(path, opts.extensions(), add); err != nil {
				return nil, err
			}
		}
	}

	return files, nil
}

func isGlobPattern(arg string) bool {
	return strings.ContainsAny(arg, "*?[")
}

func walkDirectory(root string, extensions []string, add func(string)) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			// Hidden directories (and VCS internals) are skipped.
			if name := d.Name(); name != "." && strings.HasPrefix(name, ".") && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if hasExtension(path, extensions) {
			add(path)
		}
		return nil
	})
}

func hasExtension(path string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, want := range extensions {
		if ext == want {
			return true
		}
	}
	return false
}
