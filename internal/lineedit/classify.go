package lineedit

import "unicode"

// CharClass is the category of a character for word-boundary purposes.
type CharClass int

const (
	ClassWhitespace CharClass = iota
	ClassWord
	ClassOther
)

func (c CharClass) String() string {
	switch c {
	case ClassWhitespace:
		return "whitespace"
	case ClassWord:
		return "word"
	case ClassOther:
		return "other"
	default:
		return "unknown"
	}
}

// Classify reports the class of a single grapheme cluster.
//
//   - Whitespace: space, tab, newline, carriage return (and "\r\n")
//   - Word: letters, digits and underscore, in any script
//   - Other: punctuation, symbols, emoji
//
// Multi-rune clusters are classified by their base rune. The empty cluster is
// a boundary and reports ClassWhitespace.
func Classify(cluster string) CharClass {
	for _, r := range cluster {
		switch {
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			return ClassWhitespace
		case r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsNumber(r):
			return ClassWord
		default:
			return ClassOther
		}
	}
	return ClassWhitespace
}
