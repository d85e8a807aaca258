package langdetect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeAliases(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Normalize("golang"), Normalize("go"))
	assert.Equal(t, Normalize("sh"), Normalize("shell"))
	assert.Equal(t, "", Normalize(""))
	assert.Equal(t, "not-a-language", Normalize("Not-A-Language"))
}

func TestSame(t *testing.T) {
	t.Parallel()

	assert.True(t, Same("golang", "go"))
	assert.True(t, Same("Python", "python"))
	assert.False(t, Same("go", "rust"))
}

func TestIsShell(t *testing.T) {
	t.Parallel()

	for _, tag := range []string{"sh", "bash", "shell", "zsh"} {
		assert.True(t, IsShell(tag), tag)
	}
	assert.False(t, IsShell("go"))
	assert.False(t, IsShell(""))
	assert.False(t, IsShell("console"))
}

func TestDetectByShebang(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Shell", DetectByShebang([]byte("#!/bin/bash\necho hi\n")))
	assert.Equal(t, "", DetectByShebang([]byte("plain text")))
}
