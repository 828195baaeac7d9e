package calculator

import (
	"fmt"
	"sort"

	"StopLossCowboy/internal/model"
)

// Aggregate reduces one price column of the series to a single value.
func Aggregate(series *model.PriceSeries, field model.PriceField, mode model.AggregateMode) (float64, error) {
	var bars []model.OHLCV
	if series != nil {
		bars = series.Bars
	}
	values, err := extractField(bars, field)
	if err != nil {
		return 0, err
	}
	return Reduce(values, mode)
}

// Reduce applies the statistic selected by mode to values.
func Reduce(values []float64, mode model.AggregateMode) (float64, error) {
	if len(values) == 0 {
		return 0, fmt.Errorf("%w: no price data to aggregate", model.ErrAggregation)
	}
	switch mode {
	case model.ModeMax:
		return Max(values), nil
	case model.ModeAvg:
		return Mean(values), nil
	case model.ModeMedian:
		return Median(values), nil
	}
	return 0, fmt.Errorf("%w: unknown aggregate mode %q", model.ErrInvalidInput, string(mode))
}

// Max returns the largest value. values must not be empty.
func Max(values []float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

// Mean returns the arithmetic mean. values must not be empty.
func Mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Median returns the middle value, or the average of the two middle values
// for an even count. values must not be empty and is left unmodified.
func Median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

func extractField(bars []model.OHLCV, field model.PriceField) ([]float64, error) {
	values := make([]float64, len(bars))
	for i, b := range bars {
		v, err := field.Value(b)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}
