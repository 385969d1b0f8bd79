package keys

import (
	"github.com/gdamore/tcell/v2"
)

// FromTcell converts a tcell key event into the literal and Event that
// Classify expects. Hosts that drive a tcell.Screen directly use this in
// place of FromTea.
func FromTcell(e *tcell.EventKey) (string, Event) {
	mod := e.Modifiers()
	ev := Event{
		Ctrl:  mod&tcell.ModCtrl != 0,
		Meta:  mod&(tcell.ModAlt|tcell.ModMeta) != 0,
		Shift: mod&tcell.ModShift != 0,
	}

	switch k := e.Key(); k {
	case tcell.KeyRune:
		return string(e.Rune()), ev
	case tcell.KeyEnter:
		ev.Name, ev.Return, ev.Sequence = "return", true, "\r"
		return "\r", ev
	case tcell.KeyLF:
		ev.Name, ev.Return, ev.Shift, ev.Sequence = "return", true, true, "\n"
		return "", ev
	case tcell.KeyEscape:
		ev.Name, ev.Escape, ev.Sequence = "escape", true, "\x1b"
		return "", ev
	case tcell.KeyTab:
		ev.Name, ev.Tab, ev.Sequence = "tab", true, "\t"
		return "\t", ev
	case tcell.KeyBackspace2:
		ev.Name, ev.Backspace, ev.Sequence = "backspace", true, "\x7f"
		return "", ev
	case tcell.KeyBackspace:
		ev.Name, ev.Backspace, ev.Sequence = "backspace", true, "\b"
		return "", ev
	case tcell.KeyDelete:
		ev.Name, ev.Delete, ev.Sequence = "delete", true, "\x1b[3~"
		return "\x1b[3~", ev
	case tcell.KeyUp:
		ev.Name, ev.UpArrow, ev.Sequence = "up", true, arrowSequence('A', mod)
	case tcell.KeyDown:
		ev.Name, ev.DownArrow, ev.Sequence = "down", true, arrowSequence('B', mod)
	case tcell.KeyRight:
		ev.Name, ev.RightArrow, ev.Sequence = "right", true, arrowSequence('C', mod)
	case tcell.KeyLeft:
		ev.Name, ev.LeftArrow, ev.Sequence = "left", true, arrowSequence('D', mod)
	case tcell.KeyHome:
		ev.Name = "home"
	case tcell.KeyEnd:
		ev.Name = "end"
	default:
		if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
			ev.Ctrl = true
			ev.Sequence = string(rune(k))
			return string(rune('a' + int(k-tcell.KeyCtrlA))), ev
		}
		ev.Name = e.Name()
	}
	return "", ev
}

// arrowSequence rebuilds the xterm sequence for an arrow key with mod held.
func arrowSequence(final byte, mod tcell.ModMask) string {
	param := 1
	if mod&tcell.ModShift != 0 {
		param++
	}
	if mod&(tcell.ModAlt|tcell.ModMeta) != 0 {
		param += 2
	}
	if mod&tcell.ModCtrl != 0 {
		param += 4
	}
	if param == 1 {
		return "\x1b[" + string(final)
	}
	return "\x1b[1;" + string(rune('0'+param)) + string(final)
}
