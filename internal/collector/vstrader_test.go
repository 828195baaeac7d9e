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

func TestVsTraderProvider_FetchBars(t *testing.T) {
	var gotAuth, gotSymbol, gotLimit string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotSymbol = r.URL.Query().Get("symbol")
		gotLimit = r.URL.Query().Get("limit")
		_, _ = w.Write([]byte(`[
			{"timestamp":1709818200,"open":2,"high":3,"low":1,"close":2.5,"volume":10},
			{"timestamp":1709731800,"open":1,"high":2,"low":0.5,"close":1.5,"volume":20}
		]`))
	}))
	defer srv.Close()

	p := NewVsTraderProvider(srv.URL, "secret", "")
	end := time.Unix(1710000000, 0).UTC()
	bars, err := p.FetchBars(context.Background(), "MSFT", end.AddDate(0, 0, -10), end)
	require.NoError(t, err)

	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Equal(t, "MSFT", gotSymbol)
	assert.Equal(t, "11", gotLimit)
	require.Len(t, bars, 2)
	assert.Equal(t, 2.5, bars[0].Close)
}

func TestVsTraderProvider_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unknown symbol", http.StatusNotFound)
	}))
	defer srv.Close()

	p := NewVsTraderProvider(srv.URL, "", "")
	_, err := p.FetchBars(context.Background(), "NOPE", time.Now().AddDate(0, 0, -1), time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}
