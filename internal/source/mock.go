package source

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"MetalsWatch/internal/model"
)

// Base prices in USD per troy ounce used to seed the synthetic walk.
var mockBases = map[model.Symbol]float64{
	model.SymbolGold:      2356.50,
	model.SymbolSilver:    28.12,
	model.SymbolPlatinum:  978.40,
	model.SymbolPalladium: 1016.75,
}

// MockSource generates controllable synthetic price data for development
// and testing. Quotes follow a small random walk around a per-symbol base
// price; historical series are anchored to the reference quote so the
// trend stays coherent with the displayed price.
type MockSource struct {
	mu   sync.Mutex
	rng  *rand.Rand
	last map[model.Symbol]float64
}

// NewMockSource creates a MockSource. A fixed seed yields a reproducible
// price walk; pass 0 to seed from the clock.
func NewMockSource(seed int64) *MockSource {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &MockSource{
		rng:  rand.New(rand.NewSource(seed)),
		last: make(map[model.Symbol]float64),
	}
}

func (m *MockSource) Name() string { return "mock" }

func (m *MockSource) GetQuote(_ context.Context, symbol model.Symbol) (model.Quote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	base, ok := mockBases[symbol]
	if !ok {
		return model.Quote{}, fmt.Errorf("mock: no data for symbol %s", symbol)
	}

	prev := m.last[symbol]
	if prev == 0 {
		prev = base
	}
	price := prev * (1 + (m.rng.Float64()-0.5)*0.01)
	m.last[symbol] = price

	open := prev * (1 + (m.rng.Float64()-0.5)*0.002)
	low := price * (1 - m.rng.Float64()*0.004)
	if open < low {
		low = open
	}
	high := price * (1 + m.rng.Float64()*0.004)
	if open > high {
		high = open
	}

	change := price - prev
	return model.Quote{
		Symbol:    symbol,
		Currency:  "USD",
		Price:     price,
		PriceGram: price / model.GramsPerTroyOunce,
		Timestamp: time.Now(),
		PrevClose: prev,
		Open:      open,
		Low:       low,
		High:      high,
		Change:    change,
		ChangePct: change / prev * 100,
	}, nil
}

// GetHistory walks backwards from the reference price so the series ends
// exactly at the current quote.
func (m *MockSource) GetHistory(_ context.Context, symbol model.Symbol, window model.Window, ref model.Quote) ([]model.PricePoint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := mockBases[symbol]; !ok {
		return nil, fmt.Errorf("mock: no data for symbol %s", symbol)
	}
	n := window.Points()
	if n == 0 {
		return nil, fmt.Errorf("mock: unknown window %q", window)
	}

	step := 24 * time.Hour
	if window == model.WindowDay {
		step = time.Hour
	}
	end := ref.Timestamp
	if end.IsZero() {
		end = time.Now()
	}

	prices := make([]float64, n)
	prices[n-1] = ref.Price
	for i := n - 2; i >= 0; i-- {
		prices[i] = prices[i+1] * (1 + (m.rng.Float64()-0.5)*0.008)
	}

	points := make([]model.PricePoint, n)
	for i := range points {
		points[i] = model.PricePoint{
			Time:  end.Add(-time.Duration(n-1-i) * step),
			Price: prices[i],
		}
	}
	return points, nil
}
