package lineedit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestPrevWord(t *testing.T) {
	tests := []struct {
		name string
		text string
		pos  int
		want int
	}{
		{"at start", "hello", 0, 0},
		{"end of single word", "hello", 5, 0},
		{"middle of word", "hello", 3, 0},
		{"end of second word", "hello world", 11, 6},
		{"start of second word", "hello world", 6, 0},
		{"trailing spaces", "hello   ", 8, 0},
		{"punctuation is its own run", "foo.bar", 7, 4},
		{"punctuation run", "foo.bar", 4, 3},
		{"punctuation then word", "foo.bar", 3, 0},
		{"symbol run", "a --flag", 4, 2},
		{"across newline", "one\ntwo", 4, 0},
		{"emoji run", "hi 😀😀", 5, 3},
		{"pos past end clamps", "ab cd", 40, 3},
		{"negative clamps", "ab", -2, 0},
		{"only whitespace", "   ", 3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PrevWord(tt.text, tt.pos))
		})
	}
}

func TestNextWord(t *testing.T) {
	tests := []struct {
		name string
		text string
		pos  int
		want int
	}{
		{"at end", "hello", 5, 5},
		{"start of word", "hello world", 0, 6},
		{"middle of word", "hello world", 2, 6},
		{"last word", "hello world", 6, 11},
		{"inside whitespace", "a  bc d", 1, 6},
		{"punctuation run", "foo.bar", 0, 3},
		{"from punctuation", "foo.bar", 3, 4},
		{"across newline", "one\ntwo", 0, 4},
		{"empty", "", 0, 0},
		{"negative clamps", "ab cd", -1, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextWord(tt.text, tt.pos))
		})
	}
}

func TestLineStartEnd(t *testing.T) {
	text := "first\nsecond line\nthird"

	tests := []struct {
		name      string
		pos       int
		wantStart int
		wantEnd   int
	}{
		{"first line start", 0, 0, 5},
		{"first line middle", 3, 0, 5},
		{"on first newline", 5, 0, 5},
		{"second line start", 6, 6, 17},
		{"second line middle", 10, 6, 17},
		{"third line end", 23, 18, 23},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStart, LineStart(text, tt.pos))
			assert.Equal(t, tt.wantEnd, LineEnd(text, tt.pos))
		})
	}
}

func TestLineStartEnd_SingleLine(t *testing.T) {
	assert.Equal(t, 0, LineStart("hello", 3))
	assert.Equal(t, 5, LineEnd("hello", 3))
	assert.Equal(t, 0, LineStart("", 0))
	assert.Equal(t, 0, LineEnd("", 0))
}

func TestLineStartEnd_CRLF(t *testing.T) {
	// "ab" "\r\n" "cd": the CRLF pair is cluster 2.
	text := "ab\r\ncd"
	assert.Equal(t, 2, LineEnd(text, 1))
	assert.Equal(t, 3, LineStart(text, 4))
	assert.Equal(t, 5, LineEnd(text, 3))
}

func TestLineStartEnd_Multibyte(t *testing.T) {
	text := "日本\n😀x"
	assert.Equal(t, 2, LineEnd(text, 0))
	assert.Equal(t, 3, LineStart(text, 5))
	assert.Equal(t, 5, LineEnd(text, 3))
}

func TestPrevSpace(t *testing.T) {
	assert.Equal(t, 3, PrevSpace("cd ../src", 9))
	assert.Equal(t, 0, PrevSpace("foo.bar", 7))
	assert.Equal(t, 2, PrevSpace("a b.c  ", 7))
	assert.Equal(t, 0, PrevSpace("   ", 3))
	assert.Equal(t, 0, PrevSpace("", 4))
}

// textGen draws text from a fixed alphabet of whole clusters, including
// multi-byte and multi-rune ones that never merge with their neighbours.
func textGen() *rapid.Generator[string] {
	return rapid.Custom(func(t *rapid.T) string {
		parts := rapid.SliceOfN(rapid.SampledFrom([]string{
			"a", "b", "Z", "_", "1", " ", "\u3000", "\t", "\n", ".", "-", "\u00e9", "e\u0301", "日", "😀",
		}), 0, 30).Draw(t, "parts")
		out := ""
		for _, p := range parts {
			out += p
		}
		return out
	})
}

func TestProperty_PrevWordTerminates(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		text := textGen().Draw(t, "text")
		pos := GraphemeCount(text)
		steps := 0
		for pos > 0 {
			next := PrevWord(text, pos)
			require.Less(t, next, pos, "PrevWord must strictly decrease")
			pos = next
			steps++
			require.LessOrEqual(t, steps, GraphemeCount(text))
		}
		require.Equal(t, 0, PrevWord(text, 0))
	})
}

func TestProperty_PrevSpaceNeverPassesPrevWord(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		text := textGen().Draw(t, "text")
		pos := rapid.IntRange(0, GraphemeCount(text)).Draw(t, "pos")
		require.LessOrEqual(t, PrevSpace(text, pos), PrevWord(text, pos))
	})
}

func TestProperty_NextWordTerminates(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		text := textGen().Draw(t, "text")
		n := GraphemeCount(text)
		pos := 0
		for pos < n {
			next := NextWord(text, pos)
			require.Greater(t, next, pos, "NextWord must strictly increase")
			require.LessOrEqual(t, next, n)
			pos = next
		}
		require.Equal(t, n, NextWord(text, n))
	})
}

func TestProperty_LineBoundsContainPos(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		text := textGen().Draw(t, "text")
		pos := rapid.IntRange(0, GraphemeCount(text)).Draw(t, "pos")

		start, end := LineStart(text, pos), LineEnd(text, pos)
		require.LessOrEqual(t, start, pos)
		require.GreaterOrEqual(t, end, pos)
		require.NotContains(t, Slice(text, start, end), "\n", "a line never spans a newline")
	})
}
