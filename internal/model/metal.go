package model

// Symbol is the enumerated market code of a tracked metal.
type Symbol string

const (
	SymbolGold      Symbol = "XAU"
	SymbolSilver    Symbol = "XAG"
	SymbolPlatinum  Symbol = "XPT"
	SymbolPalladium Symbol = "XPD"
)

// Metal describes one tracked commodity. The set is fixed at startup and
// never changes at runtime.
type Metal struct {
	ID     string // display-level handle, stable for the process lifetime
	Symbol Symbol
	Name   string
}

// Metals returns the tracked metals in display order.
func Metals() []Metal {
	return []Metal{
		{ID: "gold", Symbol: SymbolGold, Name: "Gold"},
		{ID: "silver", Symbol: SymbolSilver, Name: "Silver"},
		{ID: "platinum", Symbol: SymbolPlatinum, Name: "Platinum"},
		{ID: "palladium", Symbol: SymbolPalladium, Name: "Palladium"},
	}
}
