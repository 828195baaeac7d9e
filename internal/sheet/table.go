package sheet

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Table is a CSV file held in memory: one header row and the data rows.
type Table struct {
	Header []string
	Rows   [][]string
}

// Read loads a CSV file. The first record is the header.
func Read(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("read csv %s: no header row", path)
	}
	return &Table{Header: records[0], Rows: records[1:]}, nil
}

// Write replaces path with the table. The data goes to a temporary file in
// the same directory first, so a failed write leaves the old file intact.
func Write(path string, t *Table) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(t.Header); err != nil {
		tmp.Close()
		return fmt.Errorf("write header: %w", err)
	}
	if err := w.WriteAll(t.Rows); err != nil {
		tmp.Close()
		return fmt.Errorf("write rows: %w", err)
	}
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

// Clone returns a copy that shares no slices with t.
func (t *Table) Clone() *Table {
	c := &Table{
		Header: append([]string(nil), t.Header...),
		Rows:   make([][]string, len(t.Rows)),
	}
	for i, row := range t.Rows {
		c.Rows[i] = append([]string(nil), row...)
	}
	return c
}

// AppendColumn adds a column with one value per row. A column that already
// carries the same name is overwritten in place.
func (t *Table) AppendColumn(name string, values []string) error {
	if len(values) != len(t.Rows) {
		return fmt.Errorf("column %q has %d values for %d rows", name, len(values), len(t.Rows))
	}

	idx := -1
	for i, h := range t.Header {
		if h == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		idx = len(t.Header)
		t.Header = append(t.Header, name)
	}

	for i, row := range t.Rows {
		for len(row) < len(t.Header) {
			row = append(row, "")
		}
		row[idx] = values[i]
		t.Rows[i] = row
	}
	return nil
}

// Column returns the values of the named column, or an error if it is absent.
func (t *Table) Column(name string) ([]string, error) {
	for i, h := range t.Header {
		if h != name {
			continue
		}
		values := make([]string, len(t.Rows))
		for j, row := range t.Rows {
			if i < len(row) {
				values[j] = row[i]
			}
		}
		return values, nil
	}
	return nil, fmt.Errorf("no column %q", name)
}

// FormatFloat renders v in its shortest form, always with a decimal point
// (90 becomes "90.0", -1 becomes "-1.0").
func FormatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}
