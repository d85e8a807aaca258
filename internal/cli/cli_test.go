package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	root := NewRootCommand(BuildInfo{Version: "1.2.3", Commit: "abc", Date: "2026-01-01"})
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "marklint 1.2.3")
	assert.Contains(t, out, "commit: abc")
}

func TestRulesCommand(t *testing.T) {
	out, err := execute(t, "rules")
	require.NoError(t, err)
	assert.Contains(t, out, "MD001")
	assert.Contains(t, out, "heading-increment")
	assert.Contains(t, out, "MD059")
}

func TestRulesTagFilter(t *testing.T) {
	out, err := execute(t, "rules", "--tag", "table")
	require.NoError(t, err)
	assert.Contains(t, out, "MD055")
	assert.NotContains(t, out, "MD001")
}

func TestLintCleanFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clean.md")
	require.NoError(t, os.WriteFile(path, []byte("# Title\n\nBody text.\n"), 0o644))
	chdir(t, dir)

	_, err := execute(t, "clean.md")
	require.NoError(t, err)
}

func TestLintIssuesExitCode(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.md")
	require.NoError(t, os.WriteFile(path, []byte("# A\n### B\n"), 0o644))
	chdir(t, dir)

	out, err := execute(t, "bad.md")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrIssuesFound))
	assert.Equal(t, ExitIssues, ExitCode(err))
	assert.Contains(t, out, "MD001")
}

func TestLintHonorsConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.md"), []byte("# A\n### B\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".marklint.toml"),
		[]byte("[linters.severity]\nheading-increment = \"off\"\nblanks-around-headings = \"off\"\nsingle-trailing-newline = \"off\"\n"), 0o644))
	chdir(t, dir)

	_, err := execute(t, "bad.md")
	require.NoError(t, err)
}

func TestInitCommand(t *testing.T) {
	chdir(t, t.TempDir())

	out, err := execute(t, "init")
	require.NoError(t, err)
	assert.Contains(t, out, ".marklint.toml")

	_, err = execute(t, "init")
	require.Error(t, err)

	_, err = execute(t, "init", "--force")
	require.NoError(t, err)
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, ExitOK, ExitCode(nil))
	assert.Equal(t, ExitIssues, ExitCode(ErrIssuesFound))
	assert.Equal(t, ExitFailure, ExitCode(errors.New("boom")))
}
