// Package app contains the root application model.
package app

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/promptline/internal/config"
	"github.com/zjrosen/promptline/internal/keys"
	"github.com/zjrosen/promptline/internal/log"
	"github.com/zjrosen/promptline/internal/prompt"
	"github.com/zjrosen/promptline/internal/pubsub"
	"github.com/zjrosen/promptline/internal/tracing"
	"github.com/zjrosen/promptline/internal/ui/promptinput"
	"github.com/zjrosen/promptline/internal/ui/styles"
	"github.com/zjrosen/promptline/internal/ui/transcript"
	"github.com/zjrosen/promptline/internal/watcher"
)

// Reloader refreshes history written by other processes.
// *sqlite.HistoryRepository implements it.
type Reloader interface {
	Reload() error
}

// Options wires the model to its collaborators. Only Config is required.
type Options struct {
	Config    config.Config
	History   prompt.History
	Store     Reloader
	Tracer    trace.Tracer
	SessionID string

	// WatchPath enables reloading when the file changes. Empty disables it.
	WatchPath string
	Debug     bool

	// Now is used for transcript timestamps.
	Now func() time.Time
}

// Model is the root application state.
type Model struct {
	input      promptinput.Model
	transcript transcript.Model
	help       help.Model
	keys       keys.KeyMap

	width  int
	height int

	status    string
	statusErr bool

	tracer    trace.Tracer
	sessionID string
	store     Reloader
	now       func() time.Time

	debugMode   bool
	logCtx      context.Context
	logCancel   context.CancelFunc
	logListener *log.LogListener

	watcherHandle *watcher.Watcher
	watchCh       <-chan struct{}
}

// NewWithConfig creates the root model.
func NewWithConfig(opts Options) Model {
	km := keys.DefaultKeyMap()
	cfg := opts.Config

	input := promptinput.New(promptinput.Config{
		Symbol:      cfg.Prompt.Symbol,
		Placeholder: cfg.Prompt.Placeholder,
		Multiline:   cfg.Prompt.Multiline,
		History:     opts.History,
		Special: func(msg tea.KeyMsg, text string) bool {
			if key.Matches(msg, km.ScrollUp, km.ScrollDown, km.Help) {
				return true
			}
			return text == "" && key.Matches(msg, km.Quit)
		},
	})

	tracer := opts.Tracer
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("noop")
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	m := Model{
		input: input,
		transcript: transcript.New(transcript.Config{
			Markdown: cfg.UI.Markdown,
			Style:    cfg.UI.MarkdownStyle,
			Width:    cfg.UI.Width,
		}),
		help:      help.New(),
		keys:      km,
		tracer:    tracer,
		sessionID: opts.SessionID,
		store:     opts.Store,
		now:       now,
		debugMode: opts.Debug,
	}

	if opts.WatchPath != "" {
		debounce := cfg.History.Debounce
		if debounce <= 0 {
			debounce = watcher.DefaultConfig(opts.WatchPath).Debounce
		}
		w, err := watcher.New(watcher.Config{DBPath: opts.WatchPath, Debounce: debounce})
		if err == nil {
			if ch, err := w.Start(); err == nil {
				m.watcherHandle = w
				m.watchCh = ch
			} else {
				log.Warn(log.CatWatcher, "History watcher disabled", "error", err)
				_ = w.Stop()
			}
		}
	}

	if opts.Debug {
		m.logCtx, m.logCancel = context.WithCancel(context.Background())
		m.logListener = log.NewListener(m.logCtx)
	}

	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.watchCh != nil {
		cmds = append(cmds, watcher.WaitForChange(m.watchCh))
	}
	if m.logListener != nil {
		cmds = append(cmds, m.logListener.Listen())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.transcript, cmd = m.transcript.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		m.layout()
		return m, cmd

	case promptinput.SubmitMsg:
		return m.handleSubmit(msg.Text)

	case promptinput.EscapeMsg:
		return m, tea.Quit

	case promptinput.SpecialKeyMsg:
		return m.handleSpecialKey(msg.Key)

	case transcript.RecallMsg:
		m.input.SetValue(msg.Text)
		m.layout()
		return m, nil

	case watcher.ChangedMsg:
		m.reloadHistory("fsnotify")
		if m.watchCh == nil {
			return m, nil
		}
		return m, watcher.WaitForChange(m.watchCh)

	case log.LogEvent:
		m.status = strings.TrimSpace(msg.Payload)
		m.statusErr = msg.Type == pubsub.ErrorEvent
		if m.logListener != nil {
			return m, m.logListener.Listen()
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleSubmit(text string) (tea.Model, tea.Cmd) {
	_, span := tracing.StartSubmit(context.Background(), m.tracer, m.sessionID, text)

	m.transcript.Append(transcript.Entry{Text: text, At: m.now()})
	span.AddEvent(tracing.EventRendered)
	tracing.End(span, nil)

	log.Info(log.CatUI, "Prompt submitted", "length", len(text))
	m.status = styles.FormatEntryCount(len(m.transcript.Entries())) + " this session"
	m.statusErr = false
	m.layout()
	return m, nil
}

func (m Model) handleSpecialKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ScrollUp):
		m.transcript.ScrollUp()
	case key.Matches(msg, m.keys.ScrollDown):
		m.transcript.ScrollDown()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) reloadHistory(reason string) {
	if m.store == nil {
		return
	}
	_, span := tracing.StartReload(context.Background(), m.tracer, reason)
	err := m.store.Reload()
	tracing.End(span, err)
	if err != nil {
		log.ErrorErr(log.CatHistory, "History reload failed", err)
		m.status = "history reload failed: " + err.Error()
		m.statusErr = true
	}
}

// layout gives the transcript whatever the input and footer leave over.
func (m *Model) layout() {
	if m.width == 0 {
		return
	}
	m.help.Width = m.width
	// Border and padding take two columns on each side.
	m.input.SetWidth(m.width - 4)

	used := lipgloss.Height(m.inputView()) + lipgloss.Height(m.footerView())
	m.transcript.SetSize(m.width, max(m.height-used, 0))
}

func (m Model) inputView() string {
	return styles.PromptBorder(m.input.Focused()).Width(max(m.width-2, 1)).Render(m.input.View())
}

func (m Model) footerView() string {
	helpView := m.help.View(m.keys)
	if m.status == "" {
		return helpView
	}
	style := styles.StatusBarStyle
	if m.statusErr {
		style = styles.ErrorStyle
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		style.Render(styles.TruncateString(m.status, max(m.width-2, 1))),
		helpView,
	)
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 {
		return ""
	}
	return zone.Scan(lipgloss.JoinVertical(lipgloss.Left,
		m.transcript.View(),
		m.inputView(),
		m.footerView(),
	))
}

// Input returns the prompt input.
func (m Model) Input() promptinput.Model { return m.input }

// Transcript returns the transcript.
func (m Model) Transcript() transcript.Model { return m.transcript }

// Close releases the watcher and log subscription.
func (m *Model) Close() error {
	if m.logCancel != nil {
		m.logCancel()
	}
	if m.watcherHandle != nil {
		return m.watcherHandle.Stop()
	}
	return nil
}
