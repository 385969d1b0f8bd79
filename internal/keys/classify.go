package keys

import "strings"

// Options tune classification.
type Options struct {
	// Multiline turns Shift+Return into a newline instead of a no-op.
	Multiline bool

	// Override is consulted after hard cancel. Returning true claims the
	// event and classification stops with ActionHandled.
	Override func(input string, ev Event) bool
}

// Classify maps one key press to exactly one action. Conditions are tested in
// a fixed order and the first match wins; the order is what makes ambiguous
// terminal reports resolve consistently, so keep it as is.
//
//  1. ctrl+c or a literal ETX byte: cancel
//  2. Options.Override claims the event
//  3. escape
//  4. return: submit, or newline for Shift+Return in multiline mode
//  5. up/down without ctrl or meta: history
//  6. ctrl+left/right, unless the raw sequence is a plain arrow: word move
//  7. left/right: character move
//  8. ctrl+a / home, ctrl+e / end: line start/end
//  9. backspace family (ctrl/meta: word)
//  10. forward-delete family (ctrl/meta: word)
//  11. ctrl+k, ctrl+u, ctrl+w, ctrl+x
//  12. any other literal without ctrl or meta: insert
//
// Bracketed paste skips steps 3 to 11 and is inserted as-is.
func Classify(input string, ev Event, opts Options) Action {
	name := strings.ToLower(ev.Name)

	if ctrlKey(input, ev, "c") || input == "\x03" {
		return Action{Kind: ActionCancel}
	}

	if opts.Override != nil && opts.Override(input, ev) {
		return Action{Kind: ActionHandled}
	}

	if ev.Paste && input != "" && !ev.Ctrl && !ev.Meta {
		return Action{Kind: ActionInsert, Text: normalizeNewlines(input)}
	}

	if ev.Escape || name == "escape" || name == "esc" {
		return Action{Kind: ActionEscape}
	}

	if ev.Return || name == "return" || name == "enter" {
		switch {
		case !ev.Shift:
			return Action{Kind: ActionSubmit}
		case opts.Multiline:
			return Action{Kind: ActionNewline}
		default:
			return Action{Kind: ActionNone}
		}
	}

	up := ev.UpArrow || name == "up"
	down := ev.DownArrow || name == "down"
	if (up || down) && !ev.Ctrl && !ev.Meta {
		if up {
			return Action{Kind: ActionHistoryUp}
		}
		return Action{Kind: ActionHistoryDown}
	}

	left := ev.LeftArrow || name == "left"
	right := ev.RightArrow || name == "right"
	if ev.Ctrl && (left || right) && !LooksDirectional(ev.Sequence) {
		if left {
			return Action{Kind: ActionWordLeft}
		}
		return Action{Kind: ActionWordRight}
	}
	if left {
		return Action{Kind: ActionCharLeft}
	}
	if right {
		return Action{Kind: ActionCharRight}
	}

	if ctrlKey(input, ev, "a") || name == "home" {
		return Action{Kind: ActionLineStart}
	}
	if ctrlKey(input, ev, "e") || name == "end" {
		return Action{Kind: ActionLineEnd}
	}

	// Some terminals report the backspace key as "delete" with no literal.
	if ev.Backspace || name == "backspace" || input == "\b" || input == "\x7f" ||
		(ev.Delete && input == "" && !ev.Shift) {
		if ev.Ctrl || ev.Meta {
			return Action{Kind: ActionDeleteWordBefore}
		}
		return Action{Kind: ActionDeleteCharBefore}
	}

	if (ev.Delete && input != "") || ctrlKey(input, ev, "d") {
		if ev.Ctrl || ev.Meta {
			return Action{Kind: ActionDeleteWordAfter}
		}
		return Action{Kind: ActionDeleteCharAfter}
	}

	if ev.Ctrl {
		switch strings.ToLower(input) {
		case "k":
			return Action{Kind: ActionKillToEnd}
		case "u":
			return Action{Kind: ActionKillToStart}
		case "w":
			return Action{Kind: ActionKillWordBefore}
		case "x":
			return Action{Kind: ActionClear}
		}
	}

	if input != "" && !ev.Ctrl && !ev.Meta {
		if isMouseReport(input) {
			return Action{Kind: ActionNone}
		}
		return Action{Kind: ActionInsert, Text: input}
	}

	return Action{Kind: ActionNone}
}

func ctrlKey(input string, ev Event, letter string) bool {
	return ev.Ctrl && strings.EqualFold(input, letter)
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
