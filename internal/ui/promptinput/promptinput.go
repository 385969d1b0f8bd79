// Package promptinput is the bubbletea input box. It forwards key messages
// to a prompt.Controller and renders the buffer with a block cursor.
package promptinput

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/zjrosen/promptline/internal/keys"
	"github.com/zjrosen/promptline/internal/lineedit"
	"github.com/zjrosen/promptline/internal/prompt"
	"github.com/zjrosen/promptline/internal/ui/styles"
)

// SubmitMsg carries a submitted, non-blank buffer.
type SubmitMsg struct {
	Text string
}

// EscapeMsg is sent when escape is pressed in the input.
type EscapeMsg struct{}

// SpecialKeyMsg carries a key the host claimed through Config.Special.
type SpecialKeyMsg struct {
	Key tea.KeyMsg
}

// Config configures the input.
type Config struct {
	Symbol      string
	Placeholder string
	Multiline   bool
	History     prompt.History

	// Special lets the host claim a key before default editing. It sees
	// every key except ctrl+c. text is the buffer at the time of the key.
	Special func(msg tea.KeyMsg, text string) bool
}

// outbox collects controller callbacks during one Update.
type outbox struct {
	msgs []tea.Msg
	key  tea.KeyMsg
}

// Model wraps a prompt.Controller. Copies share the same controller.
type Model struct {
	ctrl        *prompt.Controller
	out         *outbox
	symbol      string
	placeholder string
	width       int
	focused     bool
}

// New creates a focused input.
func New(cfg Config) Model {
	out := &outbox{}
	var special func(string, keys.Event) bool
	ctrl := prompt.New(prompt.Config{
		Multiline: cfg.Multiline,
		History:   cfg.History,
		OnSubmit: func(text string) {
			out.msgs = append(out.msgs, SubmitMsg{Text: text})
		},
		OnEscape: func() {
			out.msgs = append(out.msgs, EscapeMsg{})
		},
		OnSpecialKey: func(input string, ev keys.Event) bool {
			return special != nil && special(input, ev)
		},
	})
	if cfg.Special != nil {
		special = func(string, keys.Event) bool {
			if !cfg.Special(out.key, ctrl.Text()) {
				return false
			}
			out.msgs = append(out.msgs, SpecialKeyMsg{Key: out.key})
			return true
		}
	}

	return Model{
		ctrl:        ctrl,
		out:         out,
		symbol:      cfg.Symbol,
		placeholder: cfg.Placeholder,
		width:       80,
		focused:     true,
	}
}

// Value returns the buffer.
func (m Model) Value() string { return m.ctrl.Text() }

// SetValue replaces the buffer and puts the cursor at the end.
func (m Model) SetValue(text string) {
	m.ctrl.SetText(text)
	m.ctrl.SetCursor(lineedit.GraphemeCount(m.ctrl.Text()))
}

// Cursor returns the cursor offset in grapheme clusters.
func (m Model) Cursor() int { return m.ctrl.Cursor() }

// Reset clears the buffer and leaves history navigation.
func (m Model) Reset() { m.ctrl.Clear() }

// Focused reports whether keys are accepted.
func (m Model) Focused() bool { return m.focused }

// Focus enables editing.
func (m *Model) Focus() {
	m.focused = true
	m.ctrl.SetDisabled(false)
}

// Blur stops editing. The buffer is kept.
func (m *Model) Blur() {
	m.focused = false
	m.ctrl.SetDisabled(true)
}

// SetWidth sets the inner width available for text, symbol included.
func (m *Model) SetWidth(w int) {
	if w < 1 {
		w = 1
	}
	m.width = w
}

// Width returns the configured width.
func (m Model) Width() int { return m.width }

// Height returns the number of rendered lines.
func (m Model) Height() int {
	return strings.Count(m.View(), "\n") + 1
}

// Update handles key messages. Submit, escape and claimed keys are
// returned as commands yielding SubmitMsg, EscapeMsg and SpecialKeyMsg.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !m.focused {
		return m, nil
	}

	m.out.key = keyMsg
	m.out.msgs = m.out.msgs[:0]
	input, ev := keys.FromTea(keyMsg)
	m.ctrl.HandleEvent(input, ev)

	if len(m.out.msgs) == 0 {
		return m, nil
	}
	cmds := make([]tea.Cmd, 0, len(m.out.msgs))
	for _, out := range m.out.msgs {
		cmds = append(cmds, func() tea.Msg { return out })
	}
	if len(cmds) == 1 {
		return m, cmds[0]
	}
	return m, tea.Sequence(cmds...)
}

// View renders the symbol, buffer and cursor, wrapped to the width.
// Continuation lines are indented to line up under the first character.
func (m Model) View() string {
	symbol := styles.PromptSymbolStyle.Render(m.symbol)
	indent := strings.Repeat(" ", runewidth.StringWidth(m.symbol))
	textWidth := max(m.width-runewidth.StringWidth(m.symbol), 1)

	var body string
	if m.ctrl.Text() == "" {
		body = m.renderPlaceholder()
	} else {
		body = m.renderBuffer()
	}

	var b strings.Builder
	for i, line := range strings.Split(body, "\n") {
		for j, row := range strings.Split(ansi.Hardwrap(line, textWidth, true), "\n") {
			if i > 0 || j > 0 {
				b.WriteByte('\n')
				b.WriteString(indent)
			} else {
				b.WriteString(symbol)
			}
			b.WriteString(row)
		}
	}
	return b.String()
}

func (m Model) renderPlaceholder() string {
	if m.placeholder == "" {
		if m.focused {
			return styles.CursorStyle.Render(" ")
		}
		return ""
	}
	if !m.focused {
		return styles.PlaceholderStyle.Render(m.placeholder)
	}
	first, rest := splitFirst(m.placeholder)
	return styles.CursorStyle.Render(first) + styles.PlaceholderStyle.Render(rest)
}

func (m Model) renderBuffer() string {
	text := m.ctrl.Text()
	if !m.focused {
		return text
	}

	cursor := m.ctrl.Cursor()
	count := lineedit.GraphemeCount(text)
	before := lineedit.Slice(text, 0, cursor)
	after := lineedit.Slice(text, cursor+1, count)

	switch under := lineedit.GraphemeAt(text, cursor); under {
	case "":
		return before + styles.CursorStyle.Render(" ")
	case "\n":
		// A newline under the cursor renders as a block at line end.
		return before + styles.CursorStyle.Render(" ") + "\n" + after
	default:
		return before + styles.CursorStyle.Render(under) + after
	}
}

func splitFirst(s string) (string, string) {
	clusters := lineedit.Graphemes(s)
	if len(clusters) == 0 {
		return " ", ""
	}
	return clusters[0], strings.Join(clusters[1:], "")
}
