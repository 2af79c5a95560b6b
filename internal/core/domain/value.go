package domain

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Value is a single metric cell of a Row.
//
// Datasets that coerce their cells (hospitals) carry a parsed Number;
// datasets that keep raw values (stats) carry only the Raw text.
type Value struct {
	// Raw is the cell text as received from the source.
	Raw string

	// Number is the coerced value. Only meaningful when Numeric is set.
	Number float64

	// Numeric indicates the cell was coerced to a number at parse time.
	Numeric bool
}

// NumberValue returns a coerced numeric Value.
func NumberValue(n float64) Value {
	return Value{Raw: strconv.FormatFloat(n, 'f', -1, 64), Number: n, Numeric: true}
}

// TextValue returns a Value that keeps raw text.
func TextValue(s string) Value {
	return Value{Raw: s}
}

// Truthy reports whether the value counts as present for last-value lookups.
// Coerced numbers are present when non-zero and not NaN; raw text is present
// when non-empty, so a raw "0" is present while a coerced 0 is not.
func (v Value) Truthy() bool {
	if v.Numeric {
		return v.Number != 0 && !math.IsNaN(v.Number)
	}
	return v.Raw != ""
}

// Float returns the value as a float64.
// Raw values are parsed on demand; ok is false when the text is not a number
// or the coerced number is NaN.
func (v Value) Float() (float64, bool) {
	if v.Numeric {
		return v.Number, !math.IsNaN(v.Number)
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v.Raw), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// String returns the raw text of the value.
func (v Value) String() string {
	return v.Raw
}

// MarshalJSON renders numbers as JSON numbers and anything else as a string.
func (v Value) MarshalJSON() ([]byte, error) {
	if f, ok := v.Float(); ok && !math.IsInf(f, 0) {
		return json.Marshal(f)
	}
	return json.Marshal(v.Raw)
}
