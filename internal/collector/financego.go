package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"

	"StopLossCowboy/internal/model"
)

// FinanceGoProvider implements Provider with the piquette/finance-go chart client.
type FinanceGoProvider struct{}

func NewFinanceGoProvider() *FinanceGoProvider { return &FinanceGoProvider{} }

func (f *FinanceGoProvider) Name() string { return "finance-go" }

// FetchBars runs the blocking chart iterator and gives up when ctx ends.
func (f *FinanceGoProvider) FetchBars(ctx context.Context, symbol string, start, end time.Time) ([]model.OHLCV, error) {
	type outcome struct {
		bars []model.OHLCV
		err  error
	}
	done := make(chan outcome, 1)
	go func() {
		bars, err := f.fetch(symbol, start, end)
		done <- outcome{bars: bars, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case o := <-done:
		return o.bars, o.err
	}
}

func (f *FinanceGoProvider) fetch(symbol string, start, end time.Time) ([]model.OHLCV, error) {
	iter := chart.Get(&chart.Params{
		Symbol:   symbol,
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
		Interval: datetime.OneDay,
	})

	bars := make([]model.OHLCV, 0)
	for iter.Next() {
		bar := iter.Bar()
		bars = append(bars, model.OHLCV{
			Time:   time.Unix(int64(bar.Timestamp), 0),
			Open:   bar.Open.InexactFloat64(),
			High:   bar.High.InexactFloat64(),
			Low:    bar.Low.InexactFloat64(),
			Close:  bar.Close.InexactFloat64(),
			Volume: float64(bar.Volume),
		})
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("finance-go chart %s: %w", symbol, err)
	}
	return bars, nil
}
