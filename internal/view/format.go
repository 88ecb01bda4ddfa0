// Package view renders board and item states as plain text reports for
// the console. Chart drawing and screen layout stay out of scope; this is
// the thin presentation collaborator of the store.
package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"MetalsWatch/internal/calculator"
	"MetalsWatch/internal/model"
)

func money(v float64) string {
	return humanize.CommafWithDigits(v, 2)
}

// FormatBoard renders the full board snapshot as a text table.
func FormatBoard(state model.State) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("MetalsWatch | %s\n", time.Now().Format("2006-01-02 15:04:05")))
	if state.Refreshing {
		b.WriteString("refreshing...\n")
	}
	b.WriteString("\n")

	for _, it := range state.Items {
		b.WriteString(formatRow(it))
	}

	if !state.LastUpdated.IsZero() {
		b.WriteString(fmt.Sprintf("\nlast updated: %s\n", state.LastUpdated.Format("2006-01-02 15:04:05")))
	}
	return b.String()
}

func formatRow(it model.Item) string {
	label := fmt.Sprintf("%-9s (%s)", it.Name, it.Symbol)

	if it.Quote == nil {
		if it.Err != "" {
			return fmt.Sprintf("%s  unavailable: %s\n", label, it.Err)
		}
		if it.Loading {
			return fmt.Sprintf("%s  loading...\n", label)
		}
		return fmt.Sprintf("%s  no data\n", label)
	}

	q := it.Quote
	arrow := "="
	if q.Change > 0 {
		arrow = "▲"
	} else if q.Change < 0 {
		arrow = "▼"
	}
	row := fmt.Sprintf("%s  %s %s/oz (%s/g)  %s %+.2f (%+.2f%%)",
		label, q.Currency, money(q.Price), money(q.PriceGram), arrow, q.Change, q.ChangePct)
	if it.Err != "" {
		// stale quote still rendered; the error rides along
		row += fmt.Sprintf("  [stale: %s]", it.Err)
	}
	return row + "\n"
}

// FormatItemDetail renders one item with the statistics of a single
// historical window, when that window has been loaded.
func FormatItemDetail(it model.Item, window model.Window) string {
	var b strings.Builder

	b.WriteString(formatRow(it))
	if q := it.Quote; q != nil {
		b.WriteString(fmt.Sprintf("  open %s | low %s | high %s | prev close %s\n",
			money(q.Open), money(q.Low), money(q.High), money(q.PrevClose)))
	}

	points := it.History[window]
	if len(points) == 0 {
		b.WriteString(fmt.Sprintf("  %s history: not loaded\n", window))
		return b.String()
	}

	high, low, err := calculator.SeriesRange(points)
	if err != nil {
		return b.String()
	}
	b.WriteString(fmt.Sprintf("  %s history: %d points, low %s, high %s", window, len(points), money(low), money(high)))
	if change, pct, err := calculator.SeriesChange(points); err == nil {
		b.WriteString(fmt.Sprintf(", change %+.2f (%+.2f%%)", change, pct))
	}
	if q := it.Quote; q != nil {
		if pos, err := calculator.RangePosition(q.Price, high, low); err == nil {
			b.WriteString(fmt.Sprintf(", range position %.0f%%", pos*100))
		}
	}
	b.WriteString("\n")
	return b.String()
}
