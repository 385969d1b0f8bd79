// Package prompt provides the stateful line editor behind the input box.
//
// A Controller owns one buffer and cursor. Each key event is classified by
// the keys package and applied through the pure operations in lineedit; the
// history collaborator is consulted for up/down navigation. Rendering is the
// host's job: it reads Text and Cursor after every HandleEvent.
package prompt

import (
	"strings"

	"github.com/zjrosen/promptline/internal/history"
	"github.com/zjrosen/promptline/internal/keys"
	"github.com/zjrosen/promptline/internal/lineedit"
	"github.com/zjrosen/promptline/internal/log"
)

// History is the navigation contract the Controller depends on.
// *history.Navigator implements it.
type History interface {
	Add(entry string)
	Navigate(dir history.Direction) (string, bool)
	SetOriginalInput(text string)
	Detach(text string)
	Reset()
	Navigating() bool
}

// Config configures a Controller. All callbacks are optional.
type Config struct {
	// OnSubmit receives the buffer content on a non-blank submit.
	OnSubmit func(text string)
	// OnEscape fires when escape is pressed.
	OnEscape func()
	// OnSpecialKey runs before any default handling except hard cancel.
	// Returning true suppresses the default handling for that event.
	OnSpecialKey func(input string, ev keys.Event) bool

	Disabled  bool
	Multiline bool

	// History defaults to an in-memory navigator when nil.
	History History
}

// Controller is a single-line (or multi-line) editing buffer with history.
// It is not safe for concurrent use; events are handled one at a time.
type Controller struct {
	text      string
	cursor    int
	multiline bool
	disabled  bool

	history History

	onSubmit     func(string)
	onEscape     func()
	onSpecialKey func(string, keys.Event) bool
}

// New creates a Controller with an empty buffer.
func New(cfg Config) *Controller {
	h := cfg.History
	if h == nil {
		h = history.NewNavigator(nil)
	}
	return &Controller{
		multiline:    cfg.Multiline,
		disabled:     cfg.Disabled,
		history:      h,
		onSubmit:     cfg.OnSubmit,
		onEscape:     cfg.OnEscape,
		onSpecialKey: cfg.OnSpecialKey,
	}
}

// Text returns the buffer.
func (c *Controller) Text() string { return c.text }

// Cursor returns the cursor offset in grapheme clusters.
func (c *Controller) Cursor() int { return c.cursor }

// Multiline reports whether Shift+Return inserts a newline.
func (c *Controller) Multiline() bool { return c.multiline }

// Disabled reports whether events are being dropped.
func (c *Controller) Disabled() bool { return c.disabled }

// SetDisabled toggles event handling. While disabled HandleEvent is a no-op;
// the direct mutators still work.
func (c *Controller) SetDisabled(disabled bool) { c.disabled = disabled }

// SetText replaces the buffer and clamps the cursor. The history draft is
// updated unless an entry is being browsed.
func (c *Controller) SetText(text string) {
	c.text = strings.ToValidUTF8(text, "")
	c.cursor = lineedit.Clamp(c.cursor, 0, lineedit.GraphemeCount(c.text))
	if !c.history.Navigating() {
		c.history.SetOriginalInput(c.text)
	}
}

// SetCursor moves the cursor, clamped to the buffer.
func (c *Controller) SetCursor(pos int) {
	c.cursor = lineedit.Clamp(pos, 0, lineedit.GraphemeCount(c.text))
}

// Clear empties the buffer and resets history navigation.
func (c *Controller) Clear() {
	c.text = ""
	c.cursor = 0
	c.history.Reset()
}

// InsertAtCursor inserts text at the cursor as if it had been typed.
func (c *Controller) InsertAtCursor(text string) {
	c.apply(lineedit.InsertText(c.text, c.cursor, text))
}

// ResetHistory leaves history navigation without touching the buffer.
func (c *Controller) ResetHistory() {
	c.history.Reset()
}

// HandleEvent classifies one key event and applies it.
func (c *Controller) HandleEvent(input string, ev keys.Event) {
	if c.disabled {
		return
	}

	action := keys.Classify(input, ev, keys.Options{
		Multiline: c.multiline,
		Override:  c.onSpecialKey,
	})
	if action.Kind != keys.ActionNone {
		log.Debug(log.CatInput, "Key classified", "action", action.Kind, "mutates", action.Kind.Mutates(), "cursor", c.cursor)
	}
	c.dispatch(action)
}

func (c *Controller) dispatch(action keys.Action) {
	switch action.Kind {
	case keys.ActionNone, keys.ActionHandled:
	case keys.ActionCancel, keys.ActionClear:
		c.Clear()
	case keys.ActionEscape:
		if c.onEscape != nil {
			c.onEscape()
		}
	case keys.ActionSubmit:
		c.submit()
	case keys.ActionNewline:
		c.apply(lineedit.InsertText(c.text, c.cursor, "\n"))
	case keys.ActionHistoryUp:
		c.navigate(history.Up)
	case keys.ActionHistoryDown:
		c.navigate(history.Down)
	case keys.ActionWordLeft:
		c.cursor = lineedit.PrevWord(c.text, c.cursor)
	case keys.ActionWordRight:
		c.cursor = lineedit.NextWord(c.text, c.cursor)
	case keys.ActionCharLeft:
		c.SetCursor(c.cursor - 1)
	case keys.ActionCharRight:
		c.SetCursor(c.cursor + 1)
	case keys.ActionLineStart:
		c.cursor = lineedit.LineStart(c.text, c.cursor)
	case keys.ActionLineEnd:
		c.cursor = lineedit.LineEnd(c.text, c.cursor)
	case keys.ActionDeleteCharBefore:
		c.apply(lineedit.DeleteCharBefore(c.text, c.cursor))
	case keys.ActionDeleteWordBefore:
		c.apply(lineedit.DeleteWordBefore(c.text, c.cursor))
	case keys.ActionDeleteCharAfter:
		c.apply(lineedit.DeleteCharAfter(c.text, c.cursor))
	case keys.ActionDeleteWordAfter:
		c.apply(lineedit.DeleteWordAfter(c.text, c.cursor))
	case keys.ActionKillToEnd:
		c.apply(lineedit.KillToLineEnd(c.text, c.cursor))
	case keys.ActionKillToStart:
		c.apply(lineedit.KillToLineStart(c.text, c.cursor))
	case keys.ActionKillWordBefore:
		c.apply(lineedit.KillWordBefore(c.text, c.cursor))
	case keys.ActionInsert:
		c.apply(lineedit.InsertText(c.text, c.cursor, action.Text))
	}
}

// apply stores the result of an edit. Editing a recalled entry leaves
// navigation and makes the edited text the new draft.
func (c *Controller) apply(text string, cursor int) {
	if text == c.text {
		c.cursor = cursor
		return
	}
	c.text = text
	c.cursor = cursor
	if c.history.Navigating() {
		c.history.Detach(text)
		return
	}
	c.history.SetOriginalInput(text)
}

// navigate captures the live buffer as the draft before leaving Composing,
// so text kept across ResetHistory is restored on the way back down.
func (c *Controller) navigate(dir history.Direction) {
	if !c.history.Navigating() {
		c.history.SetOriginalInput(c.text)
	}
	text, ok := c.history.Navigate(dir)
	if !ok {
		return
	}
	c.text = text
	c.cursor = lineedit.GraphemeCount(text)
}

// submit hands a non-blank buffer to history and OnSubmit, then clears.
// A blank buffer is left untouched.
func (c *Controller) submit() {
	text := c.text
	if strings.TrimSpace(text) == "" {
		log.Debug(log.CatInput, "Blank submit dropped")
		return
	}
	c.history.Add(text)
	if c.onSubmit != nil {
		c.onSubmit(text)
	}
	c.Clear()
}
