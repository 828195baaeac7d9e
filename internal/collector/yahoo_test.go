package collector

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chartPayload = `{"chart":{"result":[{
	"timestamp":[1709731800,1709818200,1709904600],
	"indicators":{"quote":[{
		"open":[170.1,null,172.5],
		"high":[171.2,null,174.0],
		"low":[169.0,null,171.9],
		"close":[170.9,null,173.3],
		"volume":[1000,null,3000]
	}]}
}],"error":null}}`

func TestYahooProvider_FetchBars(t *testing.T) {
	var gotPath, gotInterval, gotPeriod1 string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotInterval = r.URL.Query().Get("interval")
		gotPeriod1 = r.URL.Query().Get("period1")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(chartPayload))
	}))
	defer srv.Close()

	p := NewYahooProvider(srv.URL, "")
	start := time.Unix(1709600000, 0)
	bars, err := p.FetchBars(context.Background(), "AAPL", start, time.Unix(1710000000, 0))
	require.NoError(t, err)

	assert.Equal(t, "/v8/finance/chart/AAPL", gotPath)
	assert.Equal(t, "1d", gotInterval)
	assert.Equal(t, "1709600000", gotPeriod1)

	require.Len(t, bars, 2, "null bar must be skipped")
	assert.Equal(t, 171.2, bars[0].High)
	assert.Equal(t, 173.3, bars[1].Close)
	assert.Equal(t, 3000.0, bars[1].Volume)
}

func TestYahooProvider_SymbolMap(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"chart":{"result":[{"timestamp":[]}],"error":null}}`))
	}))
	defer srv.Close()

	p := NewYahooProvider(srv.URL, "")
	bars, err := p.FetchBars(context.Background(), "SPX500", time.Now().AddDate(0, 0, -3), time.Now())
	require.NoError(t, err)
	assert.Empty(t, bars)
	assert.Equal(t, "/v8/finance/chart/^GSPC", gotPath)
}

func TestYahooProvider_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`))
	}))
	defer srv.Close()

	p := NewYahooProvider(srv.URL, "")
	_, err := p.FetchBars(context.Background(), "NOPE", time.Now().AddDate(0, 0, -3), time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "symbol may be delisted")
}

func TestYahooProvider_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream down"))
	}))
	defer srv.Close()

	p := NewYahooProvider(srv.URL, "")
	_, err := p.FetchBars(context.Background(), "AAPL", time.Now().AddDate(0, 0, -3), time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 502")
}
