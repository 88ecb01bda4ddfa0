// Package store owns the canonical metals board state. All mutation goes
// through a single reducer applied under the store lock, so concurrent
// observers always read a fully merged snapshot.
package store

import (
	"context"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"MetalsWatch/internal/model"
	"MetalsWatch/internal/pricecache"
)

// Store is the synchronization engine and the read surface consumed by
// presentation code. It is safe for concurrent use.
type Store struct {
	cache *pricecache.Service

	mu    sync.Mutex
	state model.State

	subMu   sync.Mutex
	subs    map[int]chan struct{}
	nextSub int
}

// New creates a Store with one item per tracked metal and launches the
// single initial refresh in the background. Completion is observable via
// Snapshot or Subscribe.
func New(ctx context.Context, cache *pricecache.Service) *Store {
	metals := model.Metals()
	items := make([]model.Item, len(metals))
	for i, m := range metals {
		items[i] = model.Item{ID: m.ID, Symbol: m.Symbol, Name: m.Name}
	}

	s := &Store{
		cache: cache,
		state: model.State{Items: items},
		subs:  make(map[int]chan struct{}),
	}
	go s.RefreshAll(ctx)
	return s
}

// Snapshot returns the current board state. The returned value is
// immutable by construction: the reducer never mutates published slices
// or maps.
func (s *Store) Snapshot() model.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// LookupItem returns the tracked item with the given id. An unknown id
// yields ok=false, never an error.
func (s *Store) LookupItem(id string) (model.Item, bool) {
	return s.Snapshot().Item(id)
}

// Subscribe registers for change notifications. The channel receives a
// coalesced signal after each dispatch; a slow receiver misses
// intermediate signals but never blocks the store. The returned cancel
// function unregisters the subscriber.
func (s *Store) Subscribe() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	s.subMu.Unlock()

	cancel := func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
	return ch, cancel
}

// RefreshAll fetches a quote for every tracked item concurrently and
// independently, then folds all outcomes plus the end-of-refresh flag
// into state as one atomic batch: an observer sees either the pre-refresh
// state or the fully merged result, never a mix. It never returns an
// error; each item's failure lands in that item's Err field only.
func (s *Store) RefreshAll(ctx context.Context) {
	s.dispatch(beginRefresh{})

	s.mu.Lock()
	metas := make([]model.Metal, len(s.state.Items))
	for i, it := range s.state.Items {
		metas[i] = model.Metal{ID: it.ID, Symbol: it.Symbol}
	}
	s.mu.Unlock()

	type outcome struct {
		quote model.Quote
		err   error
	}
	results := make([]outcome, len(metas))

	var g errgroup.Group
	for i, m := range metas {
		i, m := i, m
		g.Go(func() error {
			q, err := s.cache.Quote(ctx, m.Symbol)
			results[i] = outcome{quote: q, err: err}
			// settle-all: a failure must never cancel sibling fetches
			return nil
		})
	}
	_ = g.Wait()

	now := time.Now()
	batch := make([]action, 0, len(results)+1)
	for i, r := range results {
		if r.err != nil {
			batch = append(batch, quoteFailed{ItemID: metas[i].ID, Message: r.err.Error()})
			continue
		}
		batch = append(batch, quoteSucceeded{ItemID: metas[i].ID, Quote: r.quote, At: now})
	}
	batch = append(batch, endRefresh{})
	s.dispatch(batch...)
}

// FetchHistory lazily loads the series for one (item, window) pair. It is
// a no-op when the series is already present, when the item has no quote
// yet to anchor a series, or when the id is unknown. Failures are logged
// and leave the window absent, so a later call retries.
func (s *Store) FetchHistory(ctx context.Context, id string, window model.Window) {
	it, ok := s.LookupItem(id)
	if !ok || !it.HasQuote() || len(it.History[window]) > 0 {
		return
	}

	points, err := s.cache.History(ctx, it.Symbol, window, *it.Quote)
	if err != nil {
		log.Printf("[WARN] history fetch %s/%s: %v", id, window, err)
		return
	}
	s.dispatch(historyLoaded{ItemID: id, Window: window, Points: points})
}

// dispatch applies the actions as one batch under the store lock and then
// signals subscribers once.
func (s *Store) dispatch(actions ...action) {
	s.mu.Lock()
	for _, a := range actions {
		s.state = reduce(s.state, a)
	}
	s.mu.Unlock()
	s.notify()
}

func (s *Store) notify() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
