package calculator

import (
	"errors"
	"math"

	"MetalsWatch/internal/model"
)

// SeriesRange scans a historical series and returns its high and low.
func SeriesRange(points []model.PricePoint) (high, low float64, err error) {
	if len(points) == 0 {
		return 0, 0, errors.New("no points provided")
	}
	high = math.Inf(-1)
	low = math.Inf(1)
	for _, p := range points {
		if p.Price > high {
			high = p.Price
		}
		if p.Price < low {
			low = p.Price
		}
	}
	return high, low, nil
}

// SeriesChange returns the absolute and percent change between the first
// and last points of a series.
func SeriesChange(points []model.PricePoint) (change, pct float64, err error) {
	if len(points) < 2 {
		return 0, 0, errors.New("not enough points for change calculation")
	}
	first := points[0].Price
	last := points[len(points)-1].Price
	change = last - first
	if first != 0 {
		pct = change / first * 100
	}
	return change, pct, nil
}

// RangePosition returns where the current price sits within the range
// (0.0~1.0).
func RangePosition(current, high, low float64) (float64, error) {
	if high == low {
		return 0.5, nil
	}
	if high < low {
		return 0, errors.New("high must be >= low")
	}
	pos := (current - low) / (high - low)
	if pos < 0 {
		pos = 0
	}
	if pos > 1 {
		pos = 1
	}
	return pos, nil
}
