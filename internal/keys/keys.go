package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the bindings shown in the help view. Editing keys are
// resolved by Classify; the bindings here only describe them, except for
// the host keys (Help, ScrollUp, ScrollDown, Quit) which the app claims
// through the controller's special-key hook. Cancel (ctrl+c) is resolved
// before that hook runs and cannot be claimed.
type KeyMap struct {
	// Editing
	Submit     key.Binding
	Newline    key.Binding
	History    key.Binding
	WordMove   key.Binding
	LineStart  key.Binding
	LineEnd    key.Binding
	DeleteWord key.Binding
	KillToEnd  key.Binding
	KillToHome key.Binding
	Clear      key.Binding

	// Host
	ScrollUp   key.Binding
	ScrollDown key.Binding
	Help       key.Binding
	Escape     key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "submit"),
		),
		Newline: key.NewBinding(
			key.WithKeys("alt+enter", "ctrl+j"),
			key.WithHelp("alt+enter", "newline"),
		),
		History: key.NewBinding(
			key.WithKeys("up", "down"),
			key.WithHelp("↑/↓", "history"),
		),
		WordMove: key.NewBinding(
			key.WithKeys("ctrl+left", "ctrl+right"),
			key.WithHelp("ctrl+←/→", "move by word"),
		),
		LineStart: key.NewBinding(
			key.WithKeys("ctrl+a", "home"),
			key.WithHelp("ctrl+a", "line start"),
		),
		LineEnd: key.NewBinding(
			key.WithKeys("ctrl+e", "end"),
			key.WithHelp("ctrl+e", "line end"),
		),
		DeleteWord: key.NewBinding(
			key.WithKeys("ctrl+w", "alt+backspace"),
			key.WithHelp("ctrl+w", "delete word"),
		),
		KillToEnd: key.NewBinding(
			key.WithKeys("ctrl+k"),
			key.WithHelp("ctrl+k", "kill to end"),
		),
		KillToHome: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("ctrl+u", "kill to start"),
		),
		Clear: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "clear"),
		),

		ScrollUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "scroll up"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "scroll down"),
		),
		Help: key.NewBinding(
			key.WithKeys("ctrl+g"),
			key.WithHelp("ctrl+g", "help"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "quit"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "quit (empty prompt)"),
		),
	}
}

// ShortHelp returns keybindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.History, k.Help, k.Escape}
}

// FullHelp returns keybindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.Newline, k.History, k.WordMove, k.LineStart, k.LineEnd},
		{k.DeleteWord, k.KillToEnd, k.KillToHome, k.Clear},
		{k.ScrollUp, k.ScrollDown, k.Help, k.Escape, k.Quit},
	}
}

// Prompt is the default keymap used by the app.
var Prompt = DefaultKeyMap()
