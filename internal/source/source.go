package source

import (
	"context"

	"MetalsWatch/internal/model"
)

// Source defines the interface for fetching metal price data.
//
// Both calls may fail independently; callers are expected to convert
// failures into per-item state rather than aborting.
type Source interface {
	// GetQuote returns the current quote for one symbol.
	GetQuote(ctx context.Context, symbol model.Symbol) (model.Quote, error)
	// GetHistory returns an ordered (oldest first) series for the symbol
	// over the given window. ref is the current quote; synthetic sources
	// use it to anchor the series to the last known value, real sources
	// may ignore it.
	GetHistory(ctx context.Context, symbol model.Symbol, window model.Window, ref model.Quote) ([]model.PricePoint, error)
	Name() string
}
