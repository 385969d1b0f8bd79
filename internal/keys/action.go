package keys

// ActionKind is the closed set of things a key press can do to the prompt.
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionCancel
	ActionHandled
	ActionEscape
	ActionSubmit
	ActionNewline
	ActionHistoryUp
	ActionHistoryDown
	ActionWordLeft
	ActionWordRight
	ActionCharLeft
	ActionCharRight
	ActionLineStart
	ActionLineEnd
	ActionDeleteCharBefore
	ActionDeleteWordBefore
	ActionDeleteCharAfter
	ActionDeleteWordAfter
	ActionKillToEnd
	ActionKillToStart
	ActionKillWordBefore
	ActionClear
	ActionInsert
)

var actionNames = [...]string{
	ActionNone:             "none",
	ActionCancel:           "cancel",
	ActionHandled:          "handled",
	ActionEscape:           "escape",
	ActionSubmit:           "submit",
	ActionNewline:          "newline",
	ActionHistoryUp:        "history.up",
	ActionHistoryDown:      "history.down",
	ActionWordLeft:         "word.left",
	ActionWordRight:        "word.right",
	ActionCharLeft:         "char.left",
	ActionCharRight:        "char.right",
	ActionLineStart:        "line.start",
	ActionLineEnd:          "line.end",
	ActionDeleteCharBefore: "delete.char_before",
	ActionDeleteWordBefore: "delete.word_before",
	ActionDeleteCharAfter:  "delete.char_after",
	ActionDeleteWordAfter:  "delete.word_after",
	ActionKillToEnd:        "kill.to_end",
	ActionKillToStart:      "kill.to_start",
	ActionKillWordBefore:   "kill.word_before",
	ActionClear:            "clear",
	ActionInsert:           "insert",
}

func (k ActionKind) String() string {
	if k < 0 || int(k) >= len(actionNames) {
		return "unknown"
	}
	return actionNames[k]
}

// Action is the result of classifying one key press. Text is set only for
// ActionInsert.
type Action struct {
	Kind ActionKind
	Text string
}

func (a Action) String() string {
	return a.Kind.String()
}

// Mutates reports whether the action can change the buffer contents.
func (k ActionKind) Mutates() bool {
	switch k {
	case ActionNewline, ActionDeleteCharBefore, ActionDeleteWordBefore,
		ActionDeleteCharAfter, ActionDeleteWordAfter, ActionKillToEnd,
		ActionKillToStart, ActionKillWordBefore, ActionInsert:
		return true
	default:
		return false
	}
}
