package lineedit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

type editFunc func(string, int) (string, int)

func TestEditOperations(t *testing.T) {
	tests := []struct {
		name     string
		op       editFunc
		text     string
		pos      int
		wantText string
		wantPos  int
	}{
		{"backspace middle", DeleteCharBefore, "abc", 2, "ac", 1},
		{"backspace at start is no-op", DeleteCharBefore, "abc", 0, "abc", 0},
		{"backspace removes whole emoji", DeleteCharBefore, "a😀", 2, "a", 1},
		{"backspace removes combining cluster", DeleteCharBefore, "xe\u0301", 2, "x", 1},
		{"backspace removes ZWJ family", DeleteCharBefore, "👨‍👩‍👧‍👦!", 1, "!", 0},
		{"delete middle", DeleteCharAfter, "abc", 1, "ac", 1},
		{"delete at end is no-op", DeleteCharAfter, "ab", 2, "ab", 2},
		{"delete removes whole flag", DeleteCharAfter, "🇺🇸x", 0, "x", 0},
		{"delete word before at end", DeleteWordBefore, "hello world", 11, "hello ", 6},
		{"delete word before mid word", DeleteWordBefore, "hello world", 8, "hello rld", 6},
		{"delete word before with trailing space", DeleteWordBefore, "hello   ", 8, "", 0},
		{"delete word before punctuation", DeleteWordBefore, "path/to", 5, "pathto", 4},
		{"delete word before at start", DeleteWordBefore, "hello", 0, "hello", 0},
		{"delete word after from start", DeleteWordAfter, "hello world", 0, "world", 0},
		{"delete word after mid word", DeleteWordAfter, "hello world", 2, "heworld", 2},
		{"delete word after at end", DeleteWordAfter, "hello", 5, "hello", 5},
		{"kill word before takes punctuation", KillWordBefore, "cd ../src", 9, "cd ", 3},
		{"kill word before skips trailing space", KillWordBefore, "a b.c  ", 7, "a ", 2},
		{"kill word before at start", KillWordBefore, "abc", 0, "abc", 0},
		{"kill to line start", KillToLineStart, "hello world", 6, "world", 0},
		{"kill to line start second line", KillToLineStart, "one\ntwo three", 8, "one\nthree", 4},
		{"kill to line start at line start", KillToLineStart, "one\ntwo", 4, "one\ntwo", 4},
		{"kill to line end", KillToLineEnd, "hello world", 5, "hello", 5},
		{"kill to line end keeps newline", KillToLineEnd, "one\ntwo", 1, "o\ntwo", 1},
		{"kill to line end at end", KillToLineEnd, "abc", 3, "abc", 3},
		{"kill to line end on empty line", KillToLineEnd, "a\n\nb", 2, "a\n\nb", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotText, gotPos := tt.op(tt.text, tt.pos)
			assert.Equal(t, tt.wantText, gotText)
			assert.Equal(t, tt.wantPos, gotPos)
		})
	}
}

func TestInsertText(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		pos      int
		insert   string
		wantText string
		wantPos  int
	}{
		{"into middle", "bc", 1, "a", "bac", 2},
		{"at start", "bc", 0, "a", "abc", 1},
		{"at end", "ab", 2, "cd", "abcd", 4},
		{"into empty", "", 0, "日本", "日本", 2},
		{"after emoji", "😀", 1, "x", "😀x", 2},
		{"pos past end clamps", "ab", 10, "c", "abc", 3},
		{"negative pos clamps", "ab", -4, "c", "cab", 1},
		{"empty insert", "ab", 1, "", "ab", 1},
		{"invalid utf8 dropped", "ab", 1, "\xff", "ab", 1},
		{"newline", "ab", 1, "\n", "a\nb", 2},
		{"combining mark joins previous cluster", "e", 1, "\u0301", "e\u0301", 1},
		{"letter joins following combining mark", "\u0301", 0, "e", "e\u0301", 1},
		{"letter joins mark after newline", "x\n\u0301", 2, "e", "x\ne\u0301", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotText, gotPos := InsertText(tt.text, tt.pos, tt.insert)
			assert.Equal(t, tt.wantText, gotText)
			assert.Equal(t, tt.wantPos, gotPos)
		})
	}
}

func TestEditOperations_IdempotentAtEdges(t *testing.T) {
	for _, text := range []string{"", "a", "hello world", "one\ntwo"} {
		end := GraphemeCount(text)

		got, pos := DeleteCharBefore(text, 0)
		assert.Equal(t, text, got)
		assert.Equal(t, 0, pos)

		got, pos = DeleteWordBefore(text, 0)
		assert.Equal(t, text, got)
		assert.Equal(t, 0, pos)

		got, pos = DeleteCharAfter(text, end)
		assert.Equal(t, text, got)
		assert.Equal(t, end, pos)

		got, pos = DeleteWordAfter(text, end)
		assert.Equal(t, text, got)
		assert.Equal(t, end, pos)
	}
}

func TestProperty_BackspaceThenReinsertRestores(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		text := textGen().Draw(t, "text")
		pos := rapid.IntRange(0, GraphemeCount(text)).Draw(t, "pos")

		deleted := GraphemeAt(text, pos-1)
		afterText, afterPos := DeleteCharBefore(text, pos)
		restored, restoredPos := InsertText(afterText, afterPos, deleted)

		require.Equal(t, text, restored)
		require.Equal(t, pos, restoredPos)
	})
}

func TestProperty_CursorStaysInRange(t *testing.T) {
	ops := []editFunc{
		DeleteCharBefore, DeleteCharAfter,
		DeleteWordBefore, DeleteWordAfter,
		KillToLineStart, KillToLineEnd,
	}

	rapid.Check(t, func(t *rapid.T) {
		text := textGen().Draw(t, "text")
		pos := rapid.IntRange(-3, GraphemeCount(text)+3).Draw(t, "pos")
		steps := rapid.IntRange(1, 20).Draw(t, "steps")

		for i := 0; i < steps; i++ {
			if rapid.Bool().Draw(t, "insert") {
				text, pos = InsertText(text, pos, textGen().Draw(t, "insertText"))
			} else {
				op := rapid.SampledFrom(ops).Draw(t, "op")
				text, pos = op(text, pos)
			}
			require.GreaterOrEqual(t, pos, 0)
			require.LessOrEqual(t, pos, GraphemeCount(text))
		}
	})
}
