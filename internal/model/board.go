package model

import "time"

// Item is the canonical per-metal state owned by the store.
//
// Quote keeps the last known good value across failed refreshes; Err holds
// the most recent fetch error and is cleared when a fresh fetch is issued.
// History is populated lazily and each window is written at most once.
type Item struct {
	ID      string
	Symbol  Symbol
	Name    string
	Loading bool
	Quote   *Quote
	Err     string
	History map[Window][]PricePoint
}

// HasQuote reports whether the item ever completed a successful fetch.
func (it Item) HasQuote() bool { return it.Quote != nil }

// State is one immutable board snapshot. Readers must treat the contained
// slices and maps as read-only; the store never mutates a published state
// in place.
type State struct {
	Items       []Item
	LastUpdated time.Time
	Refreshing  bool
}

// Item returns the tracked item with the given id, if any.
func (s State) Item(id string) (Item, bool) {
	for _, it := range s.Items {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}
