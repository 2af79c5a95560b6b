package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// DateField is the mandatory column of every time-series dataset.
const DateField = "date"

// DateLayout is the calendar date format used by the source CSV files.
const DateLayout = "2006-01-02"

// Row is one daily record of a dataset.
type Row struct {
	// Date is the calendar date at local midnight.
	// It is the zero time when the source cell was not a valid date.
	Date time.Time

	// Values holds the metric cells keyed by column name.
	Values map[string]Value
}

// Get returns the value of field and whether the row has that column.
// The "date" field is served from Date.
func (r Row) Get(field string) (Value, bool) {
	if field == DateField {
		if r.Date.IsZero() {
			return Value{}, true
		}
		return TextValue(r.Date.Format(DateLayout)), true
	}
	v, ok := r.Values[field]
	return v, ok
}

// Table is a parsed CSV document: a header row and the data records.
type Table struct {
	// Header holds the column names in file order.
	Header []string

	// Records holds the data rows, each aligned with Header.
	Records [][]string
}

// Column returns the index of name in the header, or -1.
func (t *Table) Column(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// Maps returns every record as a column name to cell map.
func (t *Table) Maps() []map[string]string {
	out := make([]map[string]string, 0, len(t.Records))
	for _, rec := range t.Records {
		m := make(map[string]string, len(t.Header))
		for i, h := range t.Header {
			if i < len(rec) {
				m[h] = rec[i]
			}
		}
		out = append(out, m)
	}
	return out
}

// RowTransform converts one non-date cell into a typed Value.
// Returning an error rejects the whole table.
type RowTransform func(field, raw string) (Value, error)

// RawCells keeps every cell as raw text.
func RawCells(_, raw string) (Value, error) {
	return TextValue(raw), nil
}

// NumericCells coerces every cell to a number.
// Empty cells become 0; text that is not a number becomes NaN and keeps
// its raw text.
func NumericCells(_, raw string) (Value, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Value{Raw: raw, Number: 0, Numeric: true}, nil
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		n = math.NaN()
	}
	return Value{Raw: raw, Number: n, Numeric: true}, nil
}

// ParseRows converts a table into rows using transform for every
// non-date cell. A nil transform keeps raw text.
// Source order is kept; rows are not sorted or de-duplicated.
func ParseRows(t *Table, transform RowTransform) ([]Row, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: nil table", ErrInvalidInput)
	}
	dateCol := t.Column(DateField)
	if dateCol < 0 {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, DateField)
	}
	if transform == nil {
		transform = RawCells
	}

	rows := make([]Row, 0, len(t.Records))
	for line, rec := range t.Records {
		row := Row{Values: make(map[string]Value, len(t.Header)-1)}
		for i, field := range t.Header {
			cell := ""
			if i < len(rec) {
				cell = rec[i]
			}
			if i == dateCol {
				row.Date = ParseDate(cell)
				continue
			}
			v, err := transform(field, cell)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", line+2, err)
			}
			row.Values[field] = v
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ParseDate parses a YYYY-MM-DD cell into local midnight.
// Anything else yields the zero time, which never matches a day lookup.
func ParseDate(s string) time.Time {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.Local)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Midnight truncates t to the start of its day in t's location.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar day.
// Zero times never match.
func SameDay(a, b time.Time) bool {
	if a.IsZero() || b.IsZero() {
		return false
	}
	b = b.In(a.Location())
	return Midnight(a).Equal(Midnight(b))
}
