package model

import "errors"

var (
	// ErrInvalidInput is returned when a request field is out of range or unrecognised.
	ErrInvalidInput = errors.New("invalid input")

	// ErrFetch is returned when the market data provider fails.
	ErrFetch = errors.New("fetch failed")

	// ErrAggregation is returned when a series cannot be reduced to a value.
	ErrAggregation = errors.New("aggregation failed")
)
