package collector

import (
	"context"
	"time"

	"StopLossCowboy/internal/model"
)

// Provider is a source of historical daily bars.
type Provider interface {
	// FetchBars returns the daily bars of symbol between start and end.
	// An empty slice with a nil error means the market had no data in range.
	FetchBars(ctx context.Context, symbol string, start, end time.Time) ([]model.OHLCV, error)
	Name() string
}
