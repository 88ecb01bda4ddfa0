package model

import "time"

// GramsPerTroyOunce converts between the two per-unit-mass prices of a quote.
const GramsPerTroyOunce = 31.1034768

// Window is an enumerated historical time span, used as a series cache key.
type Window string

const (
	WindowDay   Window = "Day"
	WindowWeek  Window = "Week"
	WindowMonth Window = "Month"
)

// Windows returns all supported windows in ascending span order.
func Windows() []Window {
	return []Window{WindowDay, WindowWeek, WindowMonth}
}

// Points returns how many series points a window is expected to hold.
func (w Window) Points() int {
	switch w {
	case WindowDay:
		return 24
	case WindowWeek:
		return 7
	case WindowMonth:
		return 30
	}
	return 0
}

// Valid reports whether w is one of the enumerated windows.
func (w Window) Valid() bool { return w.Points() > 0 }

// Quote is a point-in-time price record for one symbol.
type Quote struct {
	Symbol    Symbol
	Currency  string
	Price     float64 // per troy ounce
	PriceGram float64 // per gram
	Timestamp time.Time
	PrevClose float64
	Open      float64
	Low       float64
	High      float64
	Change    float64 // absolute change vs previous close
	ChangePct float64
}

// PricePoint is a single (timestamp, price) sample in a historical series.
type PricePoint struct {
	Time  time.Time
	Price float64
}
