package sheet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
)

// Leading columns of a stock file.
const (
	ColSymbol   = "Symbol"
	ColDays     = "Time horizon in days"
	ColField    = "Share value price (CLOSE/HIGH/LOW/OPEN)"
	ColDiscount = "Discount"
	ColMode     = "Aggregate Mode (AVG/MAX/MEDIAN)"
)

// Columns is the header of a fresh stock file.
var Columns = []string{ColSymbol, ColDays, ColField, ColDiscount, ColMode}

// ErrExists is returned when the template would overwrite an existing file.
var ErrExists = errors.New("file exists already")

// Template returns the example table written by init.
func Template() *Table {
	return &Table{
		Header: append([]string(nil), Columns...),
		Rows: [][]string{
			{"AAPL", "10", "HIGH", "0.1", "MAX"},
			{"AAPL", "10", "HIGH", "0.1", "AVG"},
			{"AAPL", "10", "HIGH", "0.1", "MEDIAN"},
			{"AAPL", "10", "CLOSE", "0.1", "MAX"},
			{"AAPL", "10", "LOW", "0.1", "AVG"},
			{"AAPL", "10", "OPEN", "0.1", "AVG"},
			{"AAPL", "20", "HIGH", "0.1", "MAX"},
			{"AAPL", "20", "CLOSE", "0.1", "MEDIAN"},
			{"AAPL", "20", "LOW", "0.1", "MEDIAN"},
			{"AAPL", "20", "OPEN", "0.1", "AVG"},
		},
	}
}

// CreateTemplate writes Template to path. It never touches an existing file.
func CreateTemplate(path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%w: %s", ErrExists, path)
		}
		return err
	}

	t := Template()
	w := csv.NewWriter(f)
	if err := w.Write(t.Header); err != nil {
		f.Close()
		return err
	}
	if err := w.WriteAll(t.Rows); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
