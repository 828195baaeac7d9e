package stoploss

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StopLossCowboy/internal/model"
)

func TestParseRequest(t *testing.T) {
	req, err := ParseRequest(3, []string{" AAPL ", "20", "high", "0.05", "median", "old result"})
	require.NoError(t, err)
	assert.Equal(t, &model.StockRequest{
		Line:     3,
		Symbol:   "AAPL",
		Days:     20,
		Field:    model.FieldHigh,
		Discount: 0.05,
		Mode:     model.ModeMedian,
	}, req)
}

func TestParseRequest_Defaults(t *testing.T) {
	req, err := ParseRequest(1, []string{"MSFT", "10.0", "CLOSE", "", "AVG"})
	require.NoError(t, err)
	assert.Equal(t, 10, req.Days)
	assert.Equal(t, 0.1, req.Discount)
}

func TestParseRequest_Errors(t *testing.T) {
	tests := []struct {
		name   string
		record []string
	}{
		{"short row", []string{"AAPL", "10", "HIGH"}},
		{"empty symbol", []string{" ", "10", "HIGH", "0.1", "MAX"}},
		{"bad days", []string{"AAPL", "ten", "HIGH", "0.1", "MAX"}},
		{"fractional days", []string{"AAPL", "2.5", "HIGH", "0.1", "MAX"}},
		{"bad field", []string{"AAPL", "10", "FOO", "0.1", "MAX"}},
		{"bad discount", []string{"AAPL", "10", "HIGH", "ten percent", "MAX"}},
		{"bad mode", []string{"AAPL", "10", "HIGH", "0.1", "MIN"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRequest(1, tt.record)
			assert.ErrorIs(t, err, model.ErrInvalidInput)
		})
	}
}
