package keys

import (
	tea "github.com/charmbracelet/bubbletea"
)

// FromTea converts a bubbletea key message into the literal and Event that
// Classify expects. Bubbletea already decodes escape sequences, so Sequence
// is reconstructed from the key type.
func FromTea(msg tea.KeyMsg) (string, Event) {
	ev := Event{Meta: msg.Alt, Paste: msg.Paste}

	switch msg.Type {
	case tea.KeyRunes:
		return string(msg.Runes), ev
	case tea.KeySpace:
		return " ", ev
	case tea.KeyEnter:
		ev.Name, ev.Return, ev.Sequence = "return", true, "\r"
		// alt+enter is the portable spelling of shift+enter.
		ev.Shift = msg.Alt
		ev.Meta = false
		return "\r", ev
	case tea.KeyCtrlJ:
		ev.Name, ev.Return, ev.Shift, ev.Sequence = "return", true, true, "\n"
		return "", ev
	case tea.KeyEscape:
		ev.Name, ev.Escape, ev.Sequence = "escape", true, "\x1b"
		return "", ev
	case tea.KeyTab:
		ev.Name, ev.Tab, ev.Sequence = "tab", true, "\t"
		return "\t", ev
	case tea.KeyBackspace:
		ev.Name, ev.Backspace, ev.Sequence = "backspace", true, "\x7f"
		return "", ev
	case tea.KeyCtrlH:
		ev.Name, ev.Backspace, ev.Ctrl, ev.Sequence = "backspace", true, true, "\b"
		return "", ev
	case tea.KeyDelete:
		ev.Name, ev.Delete, ev.Sequence = "delete", true, "\x1b[3~"
		return "\x1b[3~", ev
	case tea.KeyUp:
		ev.Name, ev.UpArrow, ev.Sequence = "up", true, "\x1b[A"
	case tea.KeyDown:
		ev.Name, ev.DownArrow, ev.Sequence = "down", true, "\x1b[B"
	case tea.KeyRight:
		ev.Name, ev.RightArrow, ev.Sequence = "right", true, "\x1b[C"
	case tea.KeyLeft:
		ev.Name, ev.LeftArrow, ev.Sequence = "left", true, "\x1b[D"
	case tea.KeyCtrlUp:
		ev.Name, ev.UpArrow, ev.Ctrl, ev.Sequence = "up", true, true, "\x1b[1;5A"
	case tea.KeyCtrlDown:
		ev.Name, ev.DownArrow, ev.Ctrl, ev.Sequence = "down", true, true, "\x1b[1;5B"
	case tea.KeyCtrlRight:
		ev.Name, ev.RightArrow, ev.Ctrl, ev.Sequence = "right", true, true, "\x1b[1;5C"
	case tea.KeyCtrlLeft:
		ev.Name, ev.LeftArrow, ev.Ctrl, ev.Sequence = "left", true, true, "\x1b[1;5D"
	case tea.KeyShiftRight:
		ev.Name, ev.RightArrow, ev.Shift, ev.Sequence = "right", true, true, "\x1b[1;2C"
	case tea.KeyShiftLeft:
		ev.Name, ev.LeftArrow, ev.Shift, ev.Sequence = "left", true, true, "\x1b[1;2D"
	case tea.KeyHome:
		ev.Name, ev.Sequence = "home", "\x1b[H"
	case tea.KeyEnd:
		ev.Name, ev.Sequence = "end", "\x1b[F"
	case tea.KeyCtrlHome:
		ev.Name, ev.Ctrl, ev.Sequence = "home", true, "\x1b[1;5H"
	case tea.KeyCtrlEnd:
		ev.Name, ev.Ctrl, ev.Sequence = "end", true, "\x1b[1;5F"
	default:
		if msg.Type >= tea.KeyCtrlA && msg.Type <= tea.KeyCtrlZ {
			ev.Ctrl = true
			letter := rune('a' + int(msg.Type-tea.KeyCtrlA))
			ev.Sequence = string(rune(msg.Type))
			return string(letter), ev
		}
		ev.Name = msg.String()
	}
	return "", ev
}
