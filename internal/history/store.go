package history

// Store persists submitted entries, oldest first.
type Store interface {
	Append(entry string) error
	Entries() []string
}

// MemoryStore keeps entries in memory. A positive limit evicts the oldest
// entries once exceeded.
type MemoryStore struct {
	entries []string
	limit   int
}

// NewMemoryStore creates an empty store. limit <= 0 means unlimited.
func NewMemoryStore(limit int) *MemoryStore {
	return &MemoryStore{limit: limit}
}

// Append adds entry as the most recent one.
func (s *MemoryStore) Append(entry string) error {
	s.entries = append(s.entries, entry)
	if s.limit > 0 && len(s.entries) > s.limit {
		s.entries = append([]string(nil), s.entries[len(s.entries)-s.limit:]...)
	}
	return nil
}

// Entries returns the stored entries, oldest first.
func (s *MemoryStore) Entries() []string {
	return s.entries
}

var _ Store = (*MemoryStore)(nil)
