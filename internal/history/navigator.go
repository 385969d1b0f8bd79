package history

import (
	"strings"

	"github.com/zjrosen/promptline/internal/log"
)

// Navigator tracks where the prompt is in the history log.
type Navigator struct {
	store Store
	state State
}

// NewNavigator creates a Navigator over store, starting in Composing.
// A nil store gets an unlimited MemoryStore.
func NewNavigator(store Store) *Navigator {
	if store == nil {
		store = NewMemoryStore(0)
	}
	return &Navigator{store: store, state: Composing{}}
}

// Add appends the trimmed entry when it is non-empty, then resets navigation.
// A store failure is logged; the entry is still considered submitted.
func (n *Navigator) Add(entry string) {
	defer n.Reset()

	entry = strings.TrimSpace(entry)
	if entry == "" {
		return
	}
	if err := n.store.Append(entry); err != nil {
		log.ErrorErr(log.CatHistory, "Failed to append history entry", err)
		return
	}
	log.Debug(log.CatHistory, "Entry added", "size", len(n.store.Entries()))
}

// Navigate moves one step in dir and returns the text to show.
// ok is false when there is nothing to navigate to.
func (n *Navigator) Navigate(dir Direction) (text string, ok bool) {
	next, text, ok := Transition(n.state, dir, n.store.Entries())
	if ok {
		log.Debug(log.CatHistory, "Navigated", "direction", dir, "browsing", isBrowsing(next))
	}
	n.state = next
	return text, ok
}

// SetOriginalInput mirrors live edits into the draft. It is ignored while
// browsing so the saved draft is never replaced by a recalled entry.
func (n *Navigator) SetOriginalInput(text string) {
	if _, ok := n.state.(Composing); ok {
		n.state = Composing{Draft: text}
	}
}

// Detach leaves browsing because the recalled entry was edited. The edited
// text becomes the new draft and the saved draft is discarded.
func (n *Navigator) Detach(text string) {
	n.state = Composing{Draft: text}
}

// Reset returns to Composing with an empty draft.
func (n *Navigator) Reset() {
	n.state = Composing{}
}

// Navigating reports whether an entry is currently being browsed.
func (n *Navigator) Navigating() bool {
	return isBrowsing(n.state)
}

// State returns the current navigation state.
func (n *Navigator) State() State {
	return n.state
}

// Entries returns the stored entries, oldest first.
func (n *Navigator) Entries() []string {
	return n.store.Entries()
}

func isBrowsing(s State) bool {
	_, ok := s.(Browsing)
	return ok
}
