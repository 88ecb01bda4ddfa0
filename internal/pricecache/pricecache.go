// Package pricecache memoizes upstream price results for the lifetime of
// the process: the most recent successful quote per symbol and the series
// per (symbol, window) pair. Failures are never cached, so the next call
// always retries upstream.
package pricecache

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"MetalsWatch/internal/model"
	"MetalsWatch/internal/source"
)

// Service wraps a Source with fetch-or-return semantics. Concurrent calls
// for the same key collapse into a single upstream fetch.
type Service struct {
	src source.Source

	mu     sync.RWMutex
	quotes map[model.Symbol]model.Quote
	series map[seriesKey][]model.PricePoint

	flight singleflight.Group
}

type seriesKey struct {
	Symbol model.Symbol
	Window model.Window
}

// New creates a Service backed by the given source.
func New(src source.Source) *Service {
	return &Service{
		src:    src,
		quotes: make(map[model.Symbol]model.Quote),
		series: make(map[seriesKey][]model.PricePoint),
	}
}

// Quote returns the cached quote for the symbol, fetching it upstream on a
// miss. The cached value is replaced wholesale on every successful fetch
// that reaches upstream.
func (c *Service) Quote(ctx context.Context, symbol model.Symbol) (model.Quote, error) {
	c.mu.RLock()
	q, ok := c.quotes[symbol]
	c.mu.RUnlock()
	if ok {
		return q, nil
	}

	v, err, _ := c.flight.Do("quote:"+string(symbol), func() (interface{}, error) {
		fetched, err := c.src.GetQuote(ctx, symbol)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.quotes[symbol] = fetched
		c.mu.Unlock()
		return fetched, nil
	})
	if err != nil {
		return model.Quote{}, err
	}
	return v.(model.Quote), nil
}

// History returns the cached series for (symbol, window), fetching it
// upstream on a miss. ref seeds synthetic sources so the series stays
// continuous with the current quote. A cached series is never overwritten
// or evicted within the process lifetime.
func (c *Service) History(ctx context.Context, symbol model.Symbol, window model.Window, ref model.Quote) ([]model.PricePoint, error) {
	key := seriesKey{Symbol: symbol, Window: window}

	c.mu.RLock()
	points, ok := c.series[key]
	c.mu.RUnlock()
	if ok {
		return points, nil
	}

	v, err, _ := c.flight.Do(fmt.Sprintf("history:%s:%s", symbol, window), func() (interface{}, error) {
		fetched, err := c.src.GetHistory(ctx, symbol, window, ref)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		if existing, ok := c.series[key]; ok {
			// write-once: an earlier winner stays
			fetched = existing
		} else {
			c.series[key] = fetched
		}
		c.mu.Unlock()
		return fetched, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]model.PricePoint), nil
}

// Clear drops all cached entries. It exists for test isolation and
// explicit resets; steady-state logic never calls it.
func (c *Service) Clear() {
	c.mu.Lock()
	c.quotes = make(map[model.Symbol]model.Quote)
	c.series = make(map[seriesKey][]model.PricePoint)
	c.mu.Unlock()
}
