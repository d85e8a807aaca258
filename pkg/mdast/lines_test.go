package mdast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    []LineInfo
	}{
		{
			name:    "empty",
			content: "",
			want:    []LineInfo{},
		},
		{
			name:    "single line no newline",
			content: "hello",
			want: []LineInfo{
				{StartOffset: 0, NewlineStart: 5, EndOffset: 5},
			},
		},
		{
			name:    "single line with newline",
			content: "hello\n",
			want: []LineInfo{
				{StartOffset: 0, NewlineStart: 5, EndOffset: 6},
			},
		},
		{
			name:    "two lines LF",
			content: "a\nb\n",
			want: []LineInfo{
				{StartOffset: 0, NewlineStart: 1, EndOffset: 2},
				{StartOffset: 2, NewlineStart: 3, EndOffset: 4},
			},
		},
		{
			name:    "CRLF line endings",
			content: "a\r\nb\r\n",
			want: []LineInfo{
				{StartOffset: 0, NewlineStart: 1, EndOffset: 3},
				{StartOffset: 3, NewlineStart: 4, EndOffset: 6},
			},
		},
		{
			name:    "blank middle line",
			content: "a\n\nb",
			want: []LineInfo{
				{StartOffset: 0, NewlineStart: 1, EndOffset: 2},
				{StartOffset: 2, NewlineStart: 2, EndOffset: 3},
				{StartOffset: 3, NewlineStart: 4, EndOffset: 4},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, BuildLines([]byte(tt.content)))
		})
	}
}

func TestNewlineLen(t *testing.T) {
	t.Parallel()

	lines := BuildLines([]byte("a\nb\r\nc"))
	require.Len(t, lines, 3)
	assert.Equal(t, 1, lines[0].NewlineLen())
	assert.Equal(t, 2, lines[1].NewlineLen())
	assert.Equal(t, 0, lines[2].NewlineLen())
}

func TestPositionAt(t *testing.T) {
	t.Parallel()

	f := NewFileSnapshot("test.md", []byte("abc\ndef\n"))

	line, col := f.PositionAt(0)
	assert.Equal(t, 1, line)
	assert.Equal(t, 1, col)

	line, col = f.PositionAt(5)
	assert.Equal(t, 2, line)
	assert.Equal(t, 2, col)
}

func TestPositionAtMultibyte(t *testing.T) {
	t.Parallel()

	// "héllo" - é is two bytes; columns count characters.
	content := []byte("h\xc3\xa9llo\n")
	f := NewFileSnapshot("test.md", content)

	line, col := f.PositionAt(3) // byte offset of first 'l'
	assert.Equal(t, 1, line)
	assert.Equal(t, 3, col)
}

func TestLineContent(t *testing.T) {
	t.Parallel()

	f := NewFileSnapshot("test.md", []byte("first\nsecond\r\n"))
	assert.Equal(t, []byte("first"), f.LineContent(1))
	assert.Equal(t, []byte("second"), f.LineContent(2))
	assert.Nil(t, f.LineContent(0))
	assert.Nil(t, f.LineContent(3))
}

func TestIsBlankLine(t *testing.T) {
	t.Parallel()

	f := NewFileSnapshot("test.md", []byte("text\n   \n\t\nmore\n"))
	assert.False(t, f.IsBlankLine(1))
	assert.True(t, f.IsBlankLine(2))
	assert.True(t, f.IsBlankLine(3))
	assert.False(t, f.IsBlankLine(4))
}
