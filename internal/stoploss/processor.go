package stoploss

import (
	"context"
	"time"

	"StopLossCowboy/internal/calculator"
	"StopLossCowboy/internal/collector"
	"StopLossCowboy/internal/model"
)

// DefaultFetchTimeout bounds a single provider call.
const DefaultFetchTimeout = 30 * time.Second

// Processor resolves one request: fetch, aggregate, discount.
type Processor struct {
	Series       *collector.SeriesFetcher
	FetchTimeout time.Duration
}

// NewProcessor creates a Processor. A zero timeout disables the per-fetch deadline.
func NewProcessor(series *collector.SeriesFetcher, fetchTimeout time.Duration) *Processor {
	return &Processor{Series: series, FetchTimeout: fetchTimeout}
}

// Process computes the stop loss for req. The returned proposal is never nil;
// on error it carries whatever was computed before the failing stage.
func (p *Processor) Process(ctx context.Context, req *model.StockRequest) (*model.Proposal, error) {
	prop := &model.Proposal{Line: req.Line, Symbol: req.Symbol, Request: req}

	series, err := p.fetch(ctx, req)
	if err != nil {
		return prop, err
	}
	prop.Bars = series.Len()

	peak, err := calculator.Aggregate(series, req.Field, req.Mode)
	if err != nil {
		return prop, err
	}
	prop.Peak = peak

	stop, err := calculator.ApplyDiscount(peak, req.Discount)
	if err != nil {
		return prop, err
	}
	prop.StopLoss = stop
	return prop, nil
}

func (p *Processor) fetch(ctx context.Context, req *model.StockRequest) (*model.PriceSeries, error) {
	if p.FetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.FetchTimeout)
		defer cancel()
	}
	return p.Series.Fetch(ctx, req.Symbol, req.Days)
}
