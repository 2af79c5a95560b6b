package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/covidstats/internal/core/domain"
	"github.com/custodia-labs/covidstats/internal/core/ports/driving"
)

// ValueOnInput is the input schema for the get_value_on tool.
type ValueOnInput struct {
	Dataset string `json:"dataset,omitempty" jsonschema:"stats or hospitals (default stats)"`
	Field   string `json:"field" jsonschema:"column name, e.g. tests.positive"`
	Date    string `json:"date" jsonschema:"day to look up as YYYY-MM-DD"`
}

// LastValueInput is the input schema for the get_last_value tool.
type LastValueInput struct {
	Dataset string `json:"dataset,omitempty" jsonschema:"stats or hospitals (default stats)"`
	Field   string `json:"field" jsonschema:"column name, e.g. state.in_hospital"`
}

// ObservationOutput is a single dated value.
type ObservationOutput struct {
	Dataset   string   `json:"dataset"`
	Field     string   `json:"field"`
	Date      string   `json:"date,omitempty"`
	Value     *float64 `json:"value,omitempty"`
	Raw       string   `json:"raw,omitempty"`
	Found     bool     `json:"found"`
	Formatted string   `json:"formatted,omitempty"`
}

// SeriesInput is the input schema for the get_series tool.
type SeriesInput struct {
	Field string `json:"field" jsonschema:"hospitals column name, e.g. hospital.in"`
	Last  int    `json:"last,omitempty" jsonschema:"return only the newest N points (default all)"`
}

// SeriesOutput is the output schema for the get_series tool.
type SeriesOutput struct {
	Field  string        `json:"field"`
	Points []PointOutput `json:"points"`
	Count  int           `json:"count"`
}

// PointOutput is one chart point.
type PointOutput struct {
	Timestamp int64 `json:"timestamp"`
	// Value is null when the cell was not a number.
	Value *float64 `json:"value"`
}

// HospitalNameInput is the input schema for the hospital_name tool.
type HospitalNameInput struct {
	ID string `json:"id" jsonschema:"hospital code from the hospitals dataset"`
}

// HospitalNameOutput is the output schema for the hospital_name tool.
type HospitalNameOutput struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// FormatNumberInput is the input schema for the format_number tool.
type FormatNumberInput struct {
	Number            float64 `json:"number" jsonschema:"number to format"`
	Locale            string  `json:"locale,omitempty" jsonschema:"BCP 47 locale (default the active language)"`
	MaxFractionDigits *int    `json:"max_fraction_digits,omitempty" jsonschema:"round to at most this many fraction digits"`
	MinFractionDigits *int    `json:"min_fraction_digits,omitempty" jsonschema:"pad to at least this many fraction digits"`
}

// FormatNumberOutput is the output schema for the format_number tool.
type FormatNumberOutput struct {
	Formatted string `json:"formatted"`
}

// SeparatorInput is the input schema for the get_separator tool.
type SeparatorInput struct {
	Locale string `json:"locale" jsonschema:"BCP 47 locale, e.g. sl-SI"`
	Kind   string `json:"kind" jsonschema:"decimal or group"`
}

// SeparatorOutput is the output schema for the get_separator tool.
type SeparatorOutput struct {
	Separator string `json:"separator"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_value_on",
		Description: "Get a dataset value on a given day",
	}, s.handleValueOn)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_last_value",
		Description: "Get the newest non-zero value of a dataset column",
	}, s.handleLastValue)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_series",
		Description: "Get a hospitals column as (timestamp, value) chart points",
	}, s.handleSeries)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "hospital_name",
		Description: "Resolve a hospital code to its display name",
	}, s.handleHospitalName)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "format_number",
		Description: "Format a number with locale separators",
	}, s.handleFormatNumber)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_separator",
		Description: "Get the decimal or group separator of a locale",
	}, s.handleSeparator)
}

func (s *Server) handleValueOn(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ValueOnInput,
) (*mcp.CallToolResult, ObservationOutput, error) {
	ds, err := s.loaded(ctx, input.Dataset)
	if err != nil {
		return nil, ObservationOutput{}, err
	}
	date, err := time.ParseInLocation(domain.DateLayout, input.Date, time.Local)
	if err != nil {
		return nil, ObservationOutput{}, fmt.Errorf("%w: date %q", domain.ErrInvalidInput, input.Date)
	}
	return nil, s.observation(ds, input.Field, ds.GetValueOn(input.Field, date)), nil
}

func (s *Server) handleLastValue(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input LastValueInput,
) (*mcp.CallToolResult, ObservationOutput, error) {
	ds, err := s.loaded(ctx, input.Dataset)
	if err != nil {
		return nil, ObservationOutput{}, err
	}
	return nil, s.observation(ds, input.Field, ds.GetLastValue(input.Field)), nil
}

func (s *Server) handleSeries(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SeriesInput,
) (*mcp.CallToolResult, SeriesOutput, error) {
	h := s.ports.Hospitals
	if err := ensureLoaded(func() error { return h.FetchData(ctx) }, h); err != nil {
		return nil, SeriesOutput{}, err
	}

	points := h.GetSeries(input.Field)
	if input.Last > 0 && len(points) > input.Last {
		points = points[len(points)-input.Last:]
	}

	output := SeriesOutput{
		Field:  input.Field,
		Points: make([]PointOutput, len(points)),
		Count:  len(points),
	}
	for i, p := range points {
		output.Points[i] = PointOutput{Timestamp: p.Timestamp}
		if v, ok := p.Value.Float(); ok {
			output.Points[i].Value = &v
		}
	}
	return nil, output, nil
}

func (s *Server) handleHospitalName(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input HospitalNameInput,
) (*mcp.CallToolResult, HospitalNameOutput, error) {
	h := s.ports.Hospitals
	if err := ensureLoaded(func() error { return h.FetchData(ctx) }, h); err != nil {
		return nil, HospitalNameOutput{}, err
	}
	return nil, HospitalNameOutput{ID: input.ID, Name: h.HospitalName(input.ID)}, nil
}

func (s *Server) handleFormatNumber(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input FormatNumberInput,
) (*mcp.CallToolResult, FormatNumberOutput, error) {
	lc := s.ports.Locale.Context()
	if input.Locale != "" {
		lc = domain.LocaleContext{Language: input.Locale}
	}
	opts := domain.NumberOptions{
		MinFractionDigits: input.MinFractionDigits,
		MaxFractionDigits: input.MaxFractionDigits,
	}
	return nil, FormatNumberOutput{Formatted: s.ports.Locale.FormatNumber(lc, input.Number, opts)}, nil
}

func (s *Server) handleSeparator(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input SeparatorInput,
) (*mcp.CallToolResult, SeparatorOutput, error) {
	kind := domain.SeparatorType(input.Kind)
	if kind != domain.SeparatorDecimal && kind != domain.SeparatorGroup {
		return nil, SeparatorOutput{}, fmt.Errorf("%w: separator kind %q", domain.ErrInvalidInput, input.Kind)
	}
	return nil, SeparatorOutput{Separator: s.ports.Locale.GetSeparator(input.Locale, kind)}, nil
}

// loaded resolves a dataset and fetches it on first use.
func (s *Server) loaded(ctx context.Context, name string) (driving.DatasetService, error) {
	ds, err := s.ports.dataset(name)
	if err != nil {
		return nil, err
	}
	if err := ensureLoaded(func() error { return ds.FetchData(ctx) }, ds); err != nil {
		return nil, err
	}
	return ds, nil
}

func (s *Server) observation(ds driving.TimeSeriesQuery, field string, obs domain.Observation) ObservationOutput {
	out := ObservationOutput{
		Dataset: string(ds.Dataset()),
		Field:   field,
		Found:   obs.Found(),
	}
	if !obs.Date.IsZero() {
		out.Date = obs.Date.Format(domain.DateLayout)
	}
	if obs.Value == nil {
		return out
	}
	out.Raw = obs.Value.Raw
	if f, ok := obs.Value.Float(); ok {
		out.Value = &f
		lc := s.ports.Locale.Context()
		out.Formatted = s.ports.Locale.FormatNumber(lc, f, domain.NumberOptions{})
	}
	return out
}
