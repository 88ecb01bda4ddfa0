package store

import (
	"testing"
	"time"

	"MetalsWatch/internal/model"
)

func seedState() model.State {
	metals := model.Metals()
	items := make([]model.Item, len(metals))
	for i, m := range metals {
		items[i] = model.Item{ID: m.ID, Symbol: m.Symbol, Name: m.Name}
	}
	return model.State{Items: items}
}

func TestReduce_BeginRefresh(t *testing.T) {
	s := seedState()
	s.Items[0].Err = "old failure"

	next := reduce(s, beginRefresh{})
	if !next.Refreshing {
		t.Fatal("expected refreshing=true")
	}
	for _, it := range next.Items {
		if !it.Loading {
			t.Errorf("%s: expected loading=true", it.ID)
		}
		if it.Err != "" {
			t.Errorf("%s: expected prior error cleared at dispatch time, got %q", it.ID, it.Err)
		}
	}
	if s.Items[0].Err != "old failure" {
		t.Error("input state mutated by reducer")
	}
}

func TestReduce_QuoteSucceeded(t *testing.T) {
	s := reduce(seedState(), beginRefresh{})
	at := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	q := model.Quote{Symbol: model.SymbolGold, Price: 2350}

	next := reduce(s, quoteSucceeded{ItemID: "gold", Quote: q, At: at})
	gold, _ := next.Item("gold")
	if gold.Quote == nil || gold.Quote.Price != 2350 {
		t.Fatalf("quote not set: %+v", gold)
	}
	if gold.Loading || gold.Err != "" {
		t.Errorf("loading/error flags not cleared: %+v", gold)
	}
	if !next.LastUpdated.Equal(at) {
		t.Errorf("lastUpdated = %v, want %v", next.LastUpdated, at)
	}

	// only the targeted item changes
	silver, _ := next.Item("silver")
	if silver.Quote != nil || !silver.Loading {
		t.Errorf("unrelated item touched: %+v", silver)
	}
}

func TestReduce_QuoteFailedKeepsQuote(t *testing.T) {
	s := seedState()
	q := model.Quote{Symbol: model.SymbolGold, Price: 2350}
	s = reduce(s, quoteSucceeded{ItemID: "gold", Quote: q, At: time.Now()})
	s = reduce(s, beginRefresh{})

	next := reduce(s, quoteFailed{ItemID: "gold", Message: "timeout"})
	gold, _ := next.Item("gold")
	if gold.Err != "timeout" {
		t.Fatalf("error = %q, want timeout", gold.Err)
	}
	if gold.Loading {
		t.Error("loading flag not cleared on failure")
	}
	if gold.Quote == nil || gold.Quote.Price != 2350 {
		t.Error("stale quote must remain visible after a failure")
	}
}

func TestReduce_EndRefresh(t *testing.T) {
	s := reduce(seedState(), beginRefresh{})
	next := reduce(s, endRefresh{})
	if next.Refreshing {
		t.Fatal("expected refreshing=false")
	}
}

func TestReduce_HistoryLoadedCopyOnWrite(t *testing.T) {
	s := seedState()
	points := []model.PricePoint{{Time: time.Now(), Price: 2350}}

	next := reduce(s, historyLoaded{ItemID: "gold", Window: model.WindowWeek, Points: points})
	gold, _ := next.Item("gold")
	if len(gold.History[model.WindowWeek]) != 1 {
		t.Fatalf("series not inserted: %+v", gold.History)
	}

	prev, _ := s.Item("gold")
	if prev.History != nil {
		t.Error("previous snapshot's history map mutated")
	}

	// second window lands next to the first
	next = reduce(next, historyLoaded{ItemID: "gold", Window: model.WindowDay, Points: points})
	gold, _ = next.Item("gold")
	if len(gold.History) != 2 {
		t.Fatalf("expected both windows present, got %v", gold.History)
	}
}

func TestReduce_UnknownItemIsNoop(t *testing.T) {
	s := seedState()
	next := reduce(s, quoteFailed{ItemID: "copper", Message: "nope"})
	for _, it := range next.Items {
		if it.Err != "" {
			t.Errorf("%s: unexpected error %q", it.ID, it.Err)
		}
	}
}
