// Package keys turns raw terminal key reports into prompt actions.
//
// Terminals disagree on how a key press is reported: the same physical key
// may arrive as a flag, a name, a literal byte and an escape sequence all at
// once, or as only one of them. Event keeps every one of those signals and
// Classify resolves them with a fixed precedence order.
//
// The package also holds the host keymap used for help rendering and the
// adapters from bubbletea and tcell key events.
package keys

import "regexp"

// Event describes one key press as reported by a terminal library.
// Several fields may describe the same logical key at once.
type Event struct {
	// Name is the named key, e.g. "up", "left", "home", "end", "backspace",
	// "delete", "return", "escape", "tab".
	Name string

	Ctrl  bool
	Meta  bool
	Shift bool

	UpArrow    bool
	DownArrow  bool
	LeftArrow  bool
	RightArrow bool

	Return    bool
	Escape    bool
	Tab       bool
	Backspace bool
	Delete    bool

	// Paste marks bracketed-paste input. The literal is the pasted text.
	Paste bool

	// Sequence is the raw escape sequence the terminal sent, if known.
	Sequence string
}

// directionalPattern matches unmodified CSI (ESC [ A-D) and SS3 (ESC O A-D)
// cursor key sequences, with or without the leading ESC. Modified forms such
// as ESC [ 1 ; 5 D carry the modifier in the sequence itself and do not match.
var directionalPattern = regexp.MustCompile(`^\x1b?[\[O][ABCD]$`)

// LooksDirectional reports whether seq looks like an arrow-key escape
// sequence.
//
// This is a heuristic. Some terminals report ctrl+arrow by setting the ctrl
// flag and passing the plain arrow sequence; others synthesise the flag for
// an ordinary arrow press. When the raw sequence is itself an arrow sequence
// the ctrl flag is not trusted and the press is treated as a plain arrow.
func LooksDirectional(seq string) bool {
	return seq != "" && directionalPattern.MatchString(seq)
}

// mousePattern matches SGR mouse reports that leaked through as text, e.g.
// "[<65;87;15M" or "<65;87;15M".
var mousePattern = regexp.MustCompile(`^\x1b?\[?<\d+;\d+;\d+[Mm]$`)

func isMouseReport(input string) bool {
	return len(input) >= 6 && mousePattern.MatchString(input)
}
