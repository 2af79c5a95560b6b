package domain

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue_Truthy(t *testing.T) {
	tests := []struct {
		name  string
		value Value
		want  bool
	}{
		{"numeric non-zero", NumberValue(5), true},
		{"numeric zero", NumberValue(0), false},
		{"numeric NaN", Value{Number: math.NaN(), Numeric: true}, false},
		{"raw text", TextValue("5"), true},
		{"raw zero text", TextValue("0"), true},
		{"raw empty", TextValue(""), false},
		{"zero value", Value{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.value.Truthy())
		})
	}
}

func TestValue_Float(t *testing.T) {
	f, ok := TextValue(" 12.5 ").Float()
	assert.True(t, ok)
	assert.Equal(t, 12.5, f)

	_, ok = TextValue("n/a").Float()
	assert.False(t, ok)

	f, ok = NumberValue(3).Float()
	assert.True(t, ok)
	assert.Equal(t, 3.0, f)
}

func TestObservation_MarshalJSON(t *testing.T) {
	v := TextValue("42")
	obs := Observation{Date: ParseDate("2020-04-01"), Value: &v}

	data, err := json.Marshal(obs)
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2020-04-01","value":42}`, string(data))

	data, err = json.Marshal(Observation{Date: ParseDate("2020-04-02")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2020-04-02","value":null}`, string(data))

	text := TextValue("n/a")
	data, err = json.Marshal(Observation{Value: &text})
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":null,"value":"n/a"}`, string(data))
}

func TestSeriesPoint_MarshalJSON(t *testing.T) {
	p := SeriesPoint{Timestamp: SeriesTimestamp(ParseDate("2020-03-04")), Value: NumberValue(7)}

	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `[1583280000000, 7]`, string(data))
}

func TestParseHospitalDirectory(t *testing.T) {
	dir, err := ParseHospitalDirectory(&Table{
		Header:  []string{"id", "name", "url"},
		Records: [][]string{{"ukclj", "UKC Ljubljana", "x"}, {"ukcmb", "UKC Maribor", "y"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "UKC Maribor", dir.Name("ukcmb"))
	assert.Equal(t, "", dir.Name("sbce"))

	_, err = ParseHospitalDirectory(&Table{Header: []string{"id"}})
	assert.ErrorIs(t, err, ErrMissingColumn)
}

func TestParseDatasetID(t *testing.T) {
	id, err := ParseDatasetID("hospitals")
	require.NoError(t, err)
	assert.Equal(t, DatasetHospitals, id)

	_, err = ParseDatasetID("vaccines")
	assert.ErrorIs(t, err, ErrUnknownDataset)
}
