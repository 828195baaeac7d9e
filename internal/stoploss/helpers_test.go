package stoploss

import (
	"context"
	"errors"
	"time"

	"StopLossCowboy/internal/collector"
	"StopLossCowboy/internal/model"
	"StopLossCowboy/internal/recorder"
)

var fixedNow = time.Date(2024, 3, 15, 18, 30, 0, 0, time.UTC)

func barsOf(closes ...float64) []model.OHLCV {
	bars := make([]model.OHLCV, len(closes))
	for i, c := range closes {
		bars[i] = model.OHLCV{
			Time:  fixedNow.AddDate(0, 0, -len(closes)+i),
			Open:  c,
			High:  c,
			Low:   c,
			Close: c,
		}
	}
	return bars
}

func newMock() *collector.MockProvider {
	return &collector.MockProvider{
		Bars: map[string][]model.OHLCV{
			"AAPL":  barsOf(10, 20, 30),
			"EMPTY": {},
		},
		Errs: map[string]error{
			"FAIL": errors.New("symbol may be delisted"),
		},
	}
}

func newTestProcessor(p collector.Provider) *Processor {
	series := collector.NewSeriesFetcher(p)
	series.Now = func() time.Time { return fixedNow }
	return NewProcessor(series, time.Second)
}

type recorderStub struct {
	recorder.NoopRecorder
	reports []*model.RunReport
}

func (r *recorderStub) RecordRun(report *model.RunReport) error {
	r.reports = append(r.reports, report)
	return nil
}

type notifierStub struct {
	reports []*model.RunReport
}

func (n *notifierStub) Notify(_ context.Context, report *model.RunReport) error {
	n.reports = append(n.reports, report)
	return nil
}
