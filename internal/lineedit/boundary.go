package lineedit

import "strings"

// PrevWord returns the offset of the start of the word before pos.
//
// It skips any whitespace to the left of pos, then the run of clusters that
// share the class of the first non-whitespace cluster it meets. Punctuation
// is its own class, so "foo.bar|" moves to "foo.|bar" and then to "foo|.bar".
// The result is strictly less than pos unless pos is already 0.
func PrevWord(text string, pos int) int {
	clusters := Graphemes(text)
	i := Clamp(pos, 0, len(clusters))

	for i > 0 && Classify(clusters[i-1]) == ClassWhitespace {
		i--
	}
	if i == 0 {
		return 0
	}
	class := Classify(clusters[i-1])
	for i > 0 && Classify(clusters[i-1]) == class {
		i--
	}
	return i
}

// NextWord returns the offset of the start of the word after pos.
//
// It is the mirror of PrevWord: leading whitespace at pos is skipped, then
// the run of the class found there, then the whitespace that follows, so the
// result lands on the first cluster of the next run or at the end of text.
// The result is strictly greater than pos unless pos is already at the end.
func NextWord(text string, pos int) int {
	clusters := Graphemes(text)
	n := len(clusters)
	i := Clamp(pos, 0, n)

	for i < n && Classify(clusters[i]) == ClassWhitespace {
		i++
	}
	if i < n {
		class := Classify(clusters[i])
		for i < n && Classify(clusters[i]) == class {
			i++
		}
	}
	for i < n && Classify(clusters[i]) == ClassWhitespace {
		i++
	}
	return i
}

// LineStart returns the offset just after the newline that precedes pos, or 0.
func LineStart(text string, pos int) int {
	b := ByteOffset(text, Clamp(pos, 0, GraphemeCount(text)))
	nl := strings.LastIndexByte(text[:b], '\n')
	if nl < 0 {
		return 0
	}
	return GraphemeOffset(text, nl+1)
}

// LineEnd returns the offset of the newline that follows pos, or the end of
// text. A "\r\n" pair is one cluster and the line ends before it.
func LineEnd(text string, pos int) int {
	b := ByteOffset(text, Clamp(pos, 0, GraphemeCount(text)))
	nl := strings.IndexByte(text[b:], '\n')
	if nl < 0 {
		return GraphemeCount(text)
	}
	return GraphemeOffset(text, b+nl)
}

// PrevSpace returns the offset of the start of the whitespace-delimited field
// before pos. Unlike PrevWord it treats word and punctuation clusters alike.
func PrevSpace(text string, pos int) int {
	clusters := Graphemes(text)
	i := Clamp(pos, 0, len(clusters))

	for i > 0 && Classify(clusters[i-1]) == ClassWhitespace {
		i--
	}
	for i > 0 && Classify(clusters[i-1]) != ClassWhitespace {
		i--
	}
	return i
}
