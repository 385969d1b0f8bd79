// Package history owns the log of submitted entries and the navigation state
// machine that lets the prompt recall them without losing the text being
// composed.
//
// Navigation is modelled as two explicit states. Composing carries the live
// draft, mirrored from every edit. Browsing carries the draft that was saved
// when browsing began plus the index of the entry on screen. Transition is a
// pure function over these states; Navigator wraps it around a Store.
package history

// Direction is a history navigation direction.
type Direction int

const (
	// Up moves to older entries.
	Up Direction = iota
	// Down moves to newer entries and finally back to the draft.
	Down
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return "unknown"
	}
}

// State is either Composing or Browsing.
type State interface {
	isState()
}

// Composing is the default state. Draft mirrors the live buffer.
type Composing struct {
	Draft string
}

// Browsing shows entries[Index]. Draft is the text saved when browsing began.
type Browsing struct {
	Draft string
	Index int
}

func (Composing) isState() {}
func (Browsing) isState() {}

// Transition applies one navigation step to s over entries (oldest first).
// ok is false when there is nothing to navigate to; the caller must leave its
// buffer untouched and next equals s.
func Transition(s State, dir Direction, entries []string) (next State, text string, ok bool) {
	switch st := s.(type) {
	case Browsing:
		return browse(st, dir, entries)
	case Composing:
		if dir != Up || len(entries) == 0 {
			return st, "", false
		}
		last := len(entries) - 1
		return Browsing{Draft: st.Draft, Index: last}, entries[last], true
	default:
		return Composing{}, "", false
	}
}

func browse(st Browsing, dir Direction, entries []string) (State, string, bool) {
	// The store may have been reloaded with fewer entries since browsing began.
	if st.Index >= len(entries) {
		st.Index = len(entries) - 1
	}
	if st.Index < 0 {
		if dir == Down {
			return Composing{Draft: st.Draft}, st.Draft, true
		}
		return st, "", false
	}

	switch dir {
	case Up:
		if st.Index == 0 {
			return st, "", false
		}
		st.Index--
		return st, entries[st.Index], true
	case Down:
		if st.Index+1 < len(entries) {
			st.Index++
			return st, entries[st.Index], true
		}
		return Composing{Draft: st.Draft}, st.Draft, true
	default:
		return st, "", false
	}
}
