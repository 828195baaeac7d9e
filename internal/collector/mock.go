package collector

import (
	"context"
	"time"

	"StopLossCowboy/internal/model"
)

// MockProvider returns controllable fixed data for development and testing.
type MockProvider struct {
	Price float64
	Bars  map[string][]model.OHLCV
	Errs  map[string]error
	Calls []string
}

func (m *MockProvider) Name() string { return "mock" }

func (m *MockProvider) FetchBars(ctx context.Context, symbol string, start, end time.Time) ([]model.OHLCV, error) {
	m.Calls = append(m.Calls, symbol)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err, ok := m.Errs[symbol]; ok {
		return nil, err
	}
	if bars, ok := m.Bars[symbol]; ok {
		return bars, nil
	}
	days := int(end.Sub(start).Hours() / 24)
	return generateMockBars(m.Price, end, days), nil
}

func generateMockBars(basePrice float64, end time.Time, count int) []model.OHLCV {
	bars := make([]model.OHLCV, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.OHLCV{
			Time:   end.AddDate(0, 0, -(count - 1 - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}
