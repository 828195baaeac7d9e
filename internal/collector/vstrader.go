package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"StopLossCowboy/internal/model"
)

// VsTraderProvider implements Provider using the vstrader REST API.
type VsTraderProvider struct {
	Client *resty.Client
}

// NewVsTraderProvider creates a new provider with optional proxy support.
func NewVsTraderProvider(baseURL, apiKey, proxyURL string) *VsTraderProvider {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30 * time.Second)
	if apiKey != "" {
		client.SetAuthToken(apiKey)
	}
	if proxyURL != "" {
		client.SetProxy(proxyURL)
	}
	return &VsTraderProvider{Client: client}
}

func (f *VsTraderProvider) Name() string { return "vstrader" }

// vsBar is the expected JSON shape from the vstrader API.
type vsBar struct {
	Timestamp int64   `json:"timestamp"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    float64 `json:"volume"`
}

// FetchBars asks for one bar per calendar day in the window; the API counts
// trading days, so the answer always covers the window.
func (f *VsTraderProvider) FetchBars(ctx context.Context, symbol string, start, end time.Time) ([]model.OHLCV, error) {
	limit := int(end.Sub(start).Hours()/24) + 1
	resp, err := f.Client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"symbol": symbol,
			"limit":  strconv.Itoa(limit),
		}).
		Get("/api/v1/bars/daily")
	if err != nil {
		return nil, fmt.Errorf("fetch bars: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetch bars: status %d, body: %s", resp.StatusCode(), resp.String())
	}

	var vsBars []vsBar
	if err := json.Unmarshal(resp.Body(), &vsBars); err != nil {
		return nil, fmt.Errorf("decode bars: %w", err)
	}
	bars := make([]model.OHLCV, len(vsBars))
	for i, vb := range vsBars {
		bars[i] = model.OHLCV{
			Time:   time.Unix(vb.Timestamp, 0),
			Open:   vb.Open,
			High:   vb.High,
			Low:    vb.Low,
			Close:  vb.Close,
			Volume: vb.Volume,
		}
	}
	return bars, nil
}
