package sqlite

import "time"

// HistoryModel is one row of the history table.
type HistoryModel struct {
	ID        int64
	SessionID string
	Entry     string
	CreatedAt int64 // Unix timestamp
}

// HistoryEntry is a stored prompt as shown by listings.
type HistoryEntry struct {
	ID        int64
	SessionID string
	Text      string
	CreatedAt time.Time
}

func (m *HistoryModel) toEntry() HistoryEntry {
	return HistoryEntry{
		ID:        m.ID,
		SessionID: m.SessionID,
		Text:      m.Entry,
		CreatedAt: time.Unix(m.CreatedAt, 0),
	}
}
