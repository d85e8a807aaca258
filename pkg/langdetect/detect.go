// Package langdetect normalises fenced code block language tags.
// It uses go-enry to resolve the many aliases a fence info string may
// carry ("sh", "shell", "zsh", ...) onto canonical language names so that
// rules comparing languages agree with what authors actually write.
package langdetect

import (
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Normalize resolves a fence language tag to its canonical name.
// Unknown tags are returned lowercased, so unrecognised languages still
// compare consistently.
func Normalize(tag string) string {
	tag = strings.TrimSpace(strings.ToLower(tag))
	if tag == "" {
		return ""
	}
	if lang, ok := enry.GetLanguageByAlias(tag); ok {
		return lang
	}
	return tag
}

// Same reports whether two fence language tags name the same language.
func Same(a, b string) bool {
	return Normalize(a) == Normalize(b)
}

// shellNames covers canonical names go-enry resolves shell aliases to.
//
//nolint:gochecknoglobals // Read-only lookup table.
var shellNames = map[string]bool{
	"Shell":       true,
	"ShellScript": true,
	"Bash":        true,
	"Zsh":         true,
	"fish":        true,
}

// IsShell reports whether a fence language tag names a shell language.
// ShellSession fences ("console") intentionally do not count: they are
// expected to show prompts and output together.
func IsShell(tag string) bool {
	normalized := Normalize(tag)
	if shellNames[normalized] {
		return true
	}
	// Bare aliases enry may not resolve.
	switch strings.ToLower(tag) {
	case "sh", "bash", "shell", "zsh", "ksh", "dash":
		return true
	default:
		return false
	}
}

// DetectByShebang identifies the language of a code snippet from its
// shebang line, when one is present.
func DetectByShebang(content []byte) string {
	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return lang
	}
	return ""
}
