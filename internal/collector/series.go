package collector

import (
	"context"
	"fmt"
	"sort"
	"time"

	"StopLossCowboy/internal/model"
)

// SeriesFetcher resolves a day count into a price series ending now.
type SeriesFetcher struct {
	Provider Provider
	Now      func() time.Time
}

// NewSeriesFetcher creates a SeriesFetcher on the wall clock.
func NewSeriesFetcher(p Provider) *SeriesFetcher {
	return &SeriesFetcher{Provider: p, Now: time.Now}
}

// Window returns [midnight(now) - days, now]. Two calls at different times
// may legitimately yield different windows.
func (f *SeriesFetcher) Window(days int) (start, end time.Time) {
	end = f.Now()
	y, m, d := end.Date()
	start = time.Date(y, m, d, 0, 0, 0, 0, end.Location()).AddDate(0, 0, -days)
	return start, end
}

// Fetch loads the bars of symbol for the last days calendar days.
func (f *SeriesFetcher) Fetch(ctx context.Context, symbol string, days int) (*model.PriceSeries, error) {
	if days < 1 {
		return nil, fmt.Errorf("%w: you have to ask for at least one day of stock data, got %d", model.ErrInvalidInput, days)
	}
	start, end := f.Window(days)

	bars, err := f.Provider.FetchBars(ctx, symbol, start, end)
	if err != nil {
		return nil, fmt.Errorf("%w: %s from %s: %w", model.ErrFetch, symbol, f.Provider.Name(), err)
	}

	inRange := make([]model.OHLCV, 0, len(bars))
	for _, b := range bars {
		if b.Time.Before(start) || b.Time.After(end) {
			continue
		}
		inRange = append(inRange, b)
	}
	sort.Slice(inRange, func(i, j int) bool { return inRange[i].Time.Before(inRange[j].Time) })

	return &model.PriceSeries{
		Symbol:    symbol,
		Source:    f.Provider.Name(),
		Start:     start,
		End:       end,
		Bars:      inRange,
		FetchedAt: end,
	}, nil
}
