package source

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"MetalsWatch/internal/model"
)

func TestMockQuoteCoherent(t *testing.T) {
	m := NewMockSource(42)
	ctx := context.Background()

	for _, metal := range model.Metals() {
		q, err := m.GetQuote(ctx, metal.Symbol)
		require.NoError(t, err, metal.ID)

		require.Equal(t, metal.Symbol, q.Symbol)
		require.Equal(t, "USD", q.Currency)
		require.Greater(t, q.Price, 0.0)
		require.InDelta(t, q.Price/model.GramsPerTroyOunce, q.PriceGram, 1e-9)
		require.LessOrEqual(t, q.Low, q.Price)
		require.GreaterOrEqual(t, q.High, q.Price)
		require.InDelta(t, q.Price-q.PrevClose, q.Change, 1e-9)
		require.InDelta(t, q.Change/q.PrevClose*100, q.ChangePct, 1e-9)
	}
}

func TestMockQuoteWalksFromLastPrice(t *testing.T) {
	m := NewMockSource(42)
	ctx := context.Background()

	q1, err := m.GetQuote(ctx, model.SymbolGold)
	require.NoError(t, err)
	q2, err := m.GetQuote(ctx, model.SymbolGold)
	require.NoError(t, err)

	require.InDelta(t, q1.Price, q2.PrevClose, 1e-9, "walk must continue from the previous price")
}

func TestMockQuoteUnknownSymbol(t *testing.T) {
	m := NewMockSource(1)
	_, err := m.GetQuote(context.Background(), model.Symbol("XCU"))
	require.Error(t, err)
}

func TestMockHistoryAnchoredToReference(t *testing.T) {
	m := NewMockSource(7)
	ref := model.Quote{
		Symbol:    model.SymbolGold,
		Price:     2350.50,
		Timestamp: time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC),
	}

	for _, w := range model.Windows() {
		points, err := m.GetHistory(context.Background(), model.SymbolGold, w, ref)
		require.NoError(t, err, w)
		require.Len(t, points, w.Points(), "window %s", w)

		for i := 1; i < len(points); i++ {
			require.True(t, points[i-1].Time.Before(points[i].Time), "window %s not ordered", w)
		}
		last := points[len(points)-1]
		require.Equal(t, ref.Price, last.Price, "series must end at the reference price")
		require.True(t, last.Time.Equal(ref.Timestamp))
	}
}

func TestMockHistoryStepPerWindow(t *testing.T) {
	m := NewMockSource(7)
	ref := model.Quote{Symbol: model.SymbolSilver, Price: 28, Timestamp: time.Now()}

	day, err := m.GetHistory(context.Background(), model.SymbolSilver, model.WindowDay, ref)
	require.NoError(t, err)
	require.Equal(t, time.Hour, day[1].Time.Sub(day[0].Time))

	week, err := m.GetHistory(context.Background(), model.SymbolSilver, model.WindowWeek, ref)
	require.NoError(t, err)
	require.Equal(t, 24*time.Hour, week[1].Time.Sub(week[0].Time))
}

func TestMockHistoryUnknownWindow(t *testing.T) {
	m := NewMockSource(1)
	ref := model.Quote{Symbol: model.SymbolGold, Price: 2350}
	_, err := m.GetHistory(context.Background(), model.SymbolGold, model.Window("Year"), ref)
	require.Error(t, err)
}
