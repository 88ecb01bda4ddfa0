package store

import "MetalsWatch/internal/model"

// reduce maps (current state, action) to the next state. It is pure: no
// I/O, no clock reads, and it never mutates its input. Every change is
// made on fresh slices and maps, so a previously published snapshot is
// never altered behind an observer's back.
func reduce(s model.State, a action) model.State {
	switch a := a.(type) {
	case beginRefresh:
		items := cloneItems(s.Items)
		for i := range items {
			items[i].Loading = true
			items[i].Err = ""
		}
		s.Items = items
		s.Refreshing = true

	case endRefresh:
		s.Refreshing = false

	case quoteSucceeded:
		items := cloneItems(s.Items)
		for i := range items {
			if items[i].ID != a.ItemID {
				continue
			}
			q := a.Quote
			items[i].Quote = &q
			items[i].Loading = false
			items[i].Err = ""
		}
		s.Items = items
		s.LastUpdated = a.At

	case quoteFailed:
		items := cloneItems(s.Items)
		for i := range items {
			if items[i].ID != a.ItemID {
				continue
			}
			items[i].Err = a.Message
			items[i].Loading = false
		}
		s.Items = items

	case historyLoaded:
		items := cloneItems(s.Items)
		for i := range items {
			if items[i].ID != a.ItemID {
				continue
			}
			history := make(map[model.Window][]model.PricePoint, len(items[i].History)+1)
			for w, pts := range items[i].History {
				history[w] = pts
			}
			history[a.Window] = a.Points
			items[i].History = history
		}
		s.Items = items
	}
	return s
}

func cloneItems(items []model.Item) []model.Item {
	out := make([]model.Item, len(items))
	copy(out, items)
	return out
}
