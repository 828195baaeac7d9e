package model

import (
	"fmt"
	"strings"
)

// PriceField selects which column of a bar is aggregated.
type PriceField string

const (
	FieldClose PriceField = "CLOSE"
	FieldHigh  PriceField = "HIGH"
	FieldLow   PriceField = "LOW"
	FieldOpen  PriceField = "OPEN"
)

// ParsePriceField matches a raw token case-insensitively.
func ParsePriceField(s string) (PriceField, error) {
	switch f := PriceField(strings.ToUpper(strings.TrimSpace(s))); f {
	case FieldClose, FieldHigh, FieldLow, FieldOpen:
		return f, nil
	}
	return "", fmt.Errorf("%w: illegal share value price %q", ErrInvalidInput, s)
}

// Value reads the field from a bar.
func (f PriceField) Value(bar OHLCV) (float64, error) {
	switch f {
	case FieldClose:
		return bar.Close, nil
	case FieldHigh:
		return bar.High, nil
	case FieldLow:
		return bar.Low, nil
	case FieldOpen:
		return bar.Open, nil
	}
	return 0, fmt.Errorf("%w: unknown price field %q", ErrInvalidInput, string(f))
}

// AggregateMode selects the statistic used to reduce a price column.
type AggregateMode string

const (
	ModeMax    AggregateMode = "MAX"
	ModeAvg    AggregateMode = "AVG"
	ModeMedian AggregateMode = "MEDIAN"
)

// ParseAggregateMode matches a raw token case-insensitively.
func ParseAggregateMode(s string) (AggregateMode, error) {
	switch m := AggregateMode(strings.ToUpper(strings.TrimSpace(s))); m {
	case ModeMax, ModeAvg, ModeMedian:
		return m, nil
	}
	return "", fmt.Errorf("%w: illegal aggregate mode %q", ErrInvalidInput, s)
}

// StockRequest is one parsed row of the stock file.
type StockRequest struct {
	Line     int // 1-indexed data row
	Symbol   string
	Days     int
	Field    PriceField
	Discount float64
	Mode     AggregateMode
}
