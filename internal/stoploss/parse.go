package stoploss

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"StopLossCowboy/internal/calculator"
	"StopLossCowboy/internal/model"
)

const requestFields = 5

// ParseRequest turns a stock file record into a request. line is the
// 1-indexed data row the record came from.
func ParseRequest(line int, record []string) (*model.StockRequest, error) {
	if len(record) < requestFields {
		return nil, fmt.Errorf("%w: expected %d columns, got %d", model.ErrInvalidInput, requestFields, len(record))
	}

	symbol := strings.TrimSpace(record[0])
	if symbol == "" {
		return nil, fmt.Errorf("%w: empty symbol", model.ErrInvalidInput)
	}

	days, err := parseDays(record[1])
	if err != nil {
		return nil, err
	}

	field, err := model.ParsePriceField(record[2])
	if err != nil {
		return nil, err
	}

	discount := calculator.DefaultDiscount
	if raw := strings.TrimSpace(record[3]); raw != "" {
		discount, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: discount %q is not a number", model.ErrInvalidInput, record[3])
		}
	}

	mode, err := model.ParseAggregateMode(record[4])
	if err != nil {
		return nil, err
	}

	return &model.StockRequest{
		Line:     line,
		Symbol:   symbol,
		Days:     days,
		Field:    field,
		Discount: discount,
		Mode:     mode,
	}, nil
}

// parseDays accepts "10" as well as "10.0", which spreadsheets like to write.
func parseDays(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if n, err := strconv.Atoi(raw); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, fmt.Errorf("%w: time horizon %q is not a whole number of days", model.ErrInvalidInput, raw)
	}
	return int(f), nil
}
