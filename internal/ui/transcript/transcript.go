// Package transcript shows submitted prompts above the input in a
// scrollable viewport. Entries render as markdown or as wrapped plain text
// and are cached per width and style.
package transcript

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"

	"github.com/zjrosen/promptline/internal/cachemanager"
	"github.com/zjrosen/promptline/internal/log"
	"github.com/zjrosen/promptline/internal/ui/markdown"
	"github.com/zjrosen/promptline/internal/ui/styles"
)

const zonePrefix = "transcript-entry:"

// Entry is one submitted prompt.
type Entry struct {
	Text string
	At   time.Time
}

// RecallMsg is sent when an entry is clicked.
type RecallMsg struct {
	Text string
}

// Config configures rendering.
type Config struct {
	Markdown bool
	Style    string // glamour style, "dark" or "light"
	Width    int    // fixed wrap width; 0 follows the window
}

type renderInput struct {
	text  string
	width int
}

// Model is the transcript viewport.
type Model struct {
	cfg      Config
	viewport viewport.Model
	entries  []Entry
	width    int

	cache *cachemanager.ReadThrough[string, renderInput]
}

// entryRenderer is shared by copies of Model.
type entryRenderer struct {
	cfg Config
	md  *markdown.Renderer
}

// New creates an empty transcript.
func New(cfg Config) Model {
	m := Model{
		cfg:      cfg,
		viewport: viewport.New(80, 10),
		width:    80,
	}
	r := &entryRenderer{cfg: cfg}
	m.cache = cachemanager.NewReadThrough(
		cachemanager.NewInMemory[string]("transcript", cachemanager.DefaultExpiration, cachemanager.DefaultCleanupInterval),
		r.render,
		cachemanager.DefaultExpiration,
		false,
	)
	return m
}

// Entries returns the entries, oldest first.
func (m Model) Entries() []Entry { return m.entries }

// Append adds an entry and scrolls to it.
func (m *Model) Append(e Entry) {
	m.entries = append(m.entries, e)
	m.refresh()
	m.viewport.GotoBottom()
}

// SetSize resizes the viewport. Rendered entries are keyed by width so a
// resize re-renders without invalidating other widths.
func (m *Model) SetSize(width, height int) {
	m.viewport.Width = max(width, 1)
	m.viewport.Height = max(height, 0)

	w := width
	if m.cfg.Width > 0 && m.cfg.Width < width {
		w = m.cfg.Width
	}
	m.width = max(w, 1)
	atBottom := m.viewport.AtBottom()
	m.refresh()
	if atBottom {
		m.viewport.GotoBottom()
	}
}

// ScrollUp moves the view up by half a page.
func (m *Model) ScrollUp() {
	m.viewport.ScrollUp(max(m.viewport.Height/2, 1))
}

// ScrollDown moves the view down by half a page.
func (m *Model) ScrollDown() {
	m.viewport.ScrollDown(max(m.viewport.Height/2, 1))
}

// AtBottom reports whether the newest entry is visible.
func (m Model) AtBottom() bool { return m.viewport.AtBottom() }

// Update handles mouse wheel scrolling and clicks on entries.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	mouse, ok := msg.(tea.MouseMsg)
	if !ok {
		return m, nil
	}

	switch mouse.Button {
	case tea.MouseButtonWheelUp:
		m.viewport.ScrollUp(3)
	case tea.MouseButtonWheelDown:
		m.viewport.ScrollDown(3)
	case tea.MouseButtonLeft:
		if mouse.Action != tea.MouseActionRelease {
			return m, nil
		}
		for i := len(m.entries) - 1; i >= 0; i-- {
			if z := zone.Get(zoneID(i)); z != nil && z.InBounds(mouse) {
				text := m.entries[i].Text
				return m, func() tea.Msg { return RecallMsg{Text: text} }
			}
		}
	}
	return m, nil
}

// View renders the visible part of the transcript. The caller is expected
// to pass the final frame through zone.Scan.
func (m Model) View() string {
	return m.viewport.View()
}

func (m *Model) refresh() {
	ctx := context.Background()
	parts := make([]string, 0, len(m.entries))
	for i, e := range m.entries {
		body, err := m.cache.Get(ctx, cacheKey(m.width, m.cfg, e.Text), renderInput{text: e.Text, width: m.width})
		if err != nil {
			log.ErrorErr(log.CatUI, "Render failed, showing plain text", err)
			body = plainWrap(e.Text, m.width)
		}
		header := styles.EntryHeaderStyle.Render(e.At.Format("15:04:05"))
		parts = append(parts, zone.Mark(zoneID(i), header+"\n"+body))
	}
	m.viewport.SetContent(strings.Join(parts, "\n\n"))
}

func (r *entryRenderer) render(_ context.Context, in renderInput) (string, error) {
	if !r.cfg.Markdown {
		return plainWrap(in.text, in.width), nil
	}
	if r.md == nil || r.md.Width() != in.width {
		md, err := markdown.New(in.width, r.cfg.Style)
		if err != nil {
			return "", err
		}
		r.md = md
	}
	return r.md.Render(in.text)
}

// plainWrap wraps at word boundaries, then hard-wraps words longer than width.
func plainWrap(text string, width int) string {
	if width < 1 {
		return text
	}
	return wrap.String(wordwrap.String(text, width), width)
}

func cacheKey(width int, cfg Config, text string) string {
	return fmt.Sprintf("%d|%t|%s|%s", width, cfg.Markdown, cfg.Style, text)
}

func zoneID(i int) string {
	return fmt.Sprintf("%s%d", zonePrefix, i)
}
