// Package lineedit implements the pure text algorithms behind the prompt:
// character classification, word and line boundaries, and the edit
// operations that turn a (text, cursor) pair into a new one.
//
// Offsets are grapheme cluster indices, never byte offsets. A cluster is
// what a user sees as one character: "e" plus a combining accent, a ZWJ
// emoji family and a regional-indicator flag are each a single cluster.
// Every function in this package accepts any offset and clamps it, so
// callers never have to range-check before calling.
package lineedit

import (
	"strings"

	"github.com/rivo/uniseg"
)

// GraphemeCount returns the number of grapheme clusters in s.
func GraphemeCount(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// Graphemes splits s into its grapheme clusters.
func Graphemes(s string) []string {
	if s == "" {
		return nil
	}
	out := make([]string, 0, len(s))
	state := -1
	for len(s) > 0 {
		var cluster string
		cluster, s, _, state = uniseg.StepString(s, state)
		out = append(out, cluster)
	}
	return out
}

// GraphemeAt returns the cluster at index idx, or "" when idx is out of range.
func GraphemeAt(s string, idx int) string {
	if idx < 0 {
		return ""
	}
	i := 0
	state := -1
	for len(s) > 0 {
		var cluster string
		cluster, s, _, state = uniseg.StepString(s, state)
		if i == idx {
			return cluster
		}
		i++
	}
	return ""
}

// ByteOffset converts a cluster index to a byte offset into s.
// Indices at or past the end map to len(s); negative indices map to 0.
func ByteOffset(s string, idx int) int {
	if idx <= 0 {
		return 0
	}
	i := 0
	state := -1
	rest := s
	for len(rest) > 0 {
		_, rest, _, state = uniseg.StepString(rest, state)
		i++
		if i == idx {
			return len(s) - len(rest)
		}
	}
	return len(s)
}

// GraphemeOffset converts a byte offset into s to a cluster index.
// A byte offset inside a cluster maps to the index of that cluster.
func GraphemeOffset(s string, byteOffset int) int {
	if byteOffset <= 0 {
		return 0
	}
	if byteOffset >= len(s) {
		return GraphemeCount(s)
	}
	i := 0
	pos := 0
	state := -1
	rest := s
	for len(rest) > 0 {
		var cluster string
		cluster, rest, _, state = uniseg.StepString(rest, state)
		pos += len(cluster)
		if byteOffset < pos {
			return i
		}
		i++
	}
	return i
}

// Slice returns the clusters of s in [start, end).
func Slice(s string, start, end int) string {
	start = Clamp(start, 0, GraphemeCount(s))
	if end <= start {
		return ""
	}
	return s[ByteOffset(s, start):ByteOffset(s, end)]
}

// Clamp bounds pos to [lo, hi].
func Clamp(pos, lo, hi int) int {
	if pos < lo {
		return lo
	}
	if pos > hi {
		return hi
	}
	return pos
}

// sanitize drops invalid UTF-8 so the buffer always stays well-formed text.
func sanitize(s string) string {
	return strings.ToValidUTF8(s, "")
}
