package recorder

import (
	"time"

	"MetalsWatch/internal/model"
)

// RefreshSnapshot holds the per-item outcomes of one refresh batch.
type RefreshSnapshot struct {
	At    time.Time
	Items []model.Item
}

// HistoryFetch records one lazily loaded historical series.
type HistoryFetch struct {
	ItemID string
	Window model.Window
	Points int
}

// Recorder persists refresh outcomes for later analysis. The store never
// reads these records back: board state always starts cold and recording
// stays an append-only audit sink.
type Recorder interface {
	RecordRefresh(snap *RefreshSnapshot) error
	RecordHistoryFetch(evt *HistoryFetch) error
	Close() error
}
