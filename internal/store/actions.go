package store

import (
	"time"

	"MetalsWatch/internal/model"
)

// action is the closed vocabulary of state transitions. Actions are only
// interpreted by the reducer; the store is the sole dispatcher.
type action interface{ isAction() }

// beginRefresh marks a refresh batch as outstanding and flips every item
// to loading, optimistically clearing prior errors.
type beginRefresh struct{}

// endRefresh marks the refresh batch as settled.
type endRefresh struct{}

// quoteSucceeded replaces an item's quote wholesale and stamps the
// board-level merge time.
type quoteSucceeded struct {
	ItemID string
	Quote  model.Quote
	At     time.Time
}

// quoteFailed records an item's fetch error. The last known quote, if
// any, is left untouched so stale data keeps rendering over a blank row.
type quoteFailed struct {
	ItemID  string
	Message string
}

// historyLoaded inserts a lazily fetched series under its window key.
type historyLoaded struct {
	ItemID string
	Window model.Window
	Points []model.PricePoint
}

func (beginRefresh) isAction()   {}
func (endRefresh) isAction()     {}
func (quoteSucceeded) isAction() {}
func (quoteFailed) isAction()    {}
func (historyLoaded) isAction()  {}
