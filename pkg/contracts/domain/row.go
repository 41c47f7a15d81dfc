package domain

import (
	"encoding/json"
	"strconv"
)

// RawRecord is one decoded input record keyed by header name. Values are
// strings, numbers or nil as produced by the file decoder.
type RawRecord map[string]any

// Has reports whether the record carries the column at all, regardless of
// whether the cell is empty.
func (r RawRecord) Has(column string) bool {
	_, ok := r[column]
	return ok
}

// AudienceCounts holds the demographic count columns of a PDX.
type AudienceCounts struct {
	Male   float64
	Female float64

	Age18To24 float64
	Age25To29 float64
	Age30To39 float64
	Age40To49 float64
	Age50To59 float64
	Age60To69 float64
	Age70Plus float64

	SocioA float64
	SocioB float64
	SocioC float64
	SocioD float64
	SocioE float64

	IOS     float64
	Android float64
}

// NormalizedRow is a cleaned PDX record. Known columns are typed fields;
// every other column lives in Extra with numbers stored as float64.
// Rows are created once at ingestion and treated as read-only afterwards.
type NormalizedRow struct {
	ID           string
	Name         string
	Street       string
	Number       string
	Neighborhood string
	City         string
	State        string
	PostalCode   string

	Lat float64
	Lng float64

	Reach       float64
	Frequency   float64
	Impressions float64

	Audience AudienceCounts

	Extra map[string]any
}

var numericFields = map[string]func(*NormalizedRow) *float64{
	ColumnLatitude:        func(r *NormalizedRow) *float64 { return &r.Lat },
	ColumnLongitude:       func(r *NormalizedRow) *float64 { return &r.Lng },
	ColumnReach:           func(r *NormalizedRow) *float64 { return &r.Reach },
	ColumnFrequency:       func(r *NormalizedRow) *float64 { return &r.Frequency },
	ColumnImpressions:     func(r *NormalizedRow) *float64 { return &r.Impressions },
	ColumnGenderMale:      func(r *NormalizedRow) *float64 { return &r.Audience.Male },
	ColumnGenderFemale:    func(r *NormalizedRow) *float64 { return &r.Audience.Female },
	ColumnAge18To24:       func(r *NormalizedRow) *float64 { return &r.Audience.Age18To24 },
	ColumnAge25To29:       func(r *NormalizedRow) *float64 { return &r.Audience.Age25To29 },
	ColumnAge30To39:       func(r *NormalizedRow) *float64 { return &r.Audience.Age30To39 },
	ColumnAge40To49:       func(r *NormalizedRow) *float64 { return &r.Audience.Age40To49 },
	ColumnAge50To59:       func(r *NormalizedRow) *float64 { return &r.Audience.Age50To59 },
	ColumnAge60To69:       func(r *NormalizedRow) *float64 { return &r.Audience.Age60To69 },
	ColumnAge70Plus:       func(r *NormalizedRow) *float64 { return &r.Audience.Age70Plus },
	ColumnSocioA:          func(r *NormalizedRow) *float64 { return &r.Audience.SocioA },
	ColumnSocioB:          func(r *NormalizedRow) *float64 { return &r.Audience.SocioB },
	ColumnSocioC:          func(r *NormalizedRow) *float64 { return &r.Audience.SocioC },
	ColumnSocioD:          func(r *NormalizedRow) *float64 { return &r.Audience.SocioD },
	ColumnSocioE:          func(r *NormalizedRow) *float64 { return &r.Audience.SocioE },
	ColumnPlatformIOS:     func(r *NormalizedRow) *float64 { return &r.Audience.IOS },
	ColumnPlatformAndroid: func(r *NormalizedRow) *float64 { return &r.Audience.Android },
}

var stringFields = map[string]func(*NormalizedRow) *string{
	ColumnID:           func(r *NormalizedRow) *string { return &r.ID },
	ColumnName:         func(r *NormalizedRow) *string { return &r.Name },
	ColumnStreet:       func(r *NormalizedRow) *string { return &r.Street },
	ColumnNumber:       func(r *NormalizedRow) *string { return &r.Number },
	ColumnNeighborhood: func(r *NormalizedRow) *string { return &r.Neighborhood },
	ColumnCity:         func(r *NormalizedRow) *string { return &r.City },
	ColumnState:        func(r *NormalizedRow) *string { return &r.State },
	ColumnPostalCode:   func(r *NormalizedRow) *string { return &r.PostalCode },
}

// IsKnownNumeric reports whether the column maps to a typed numeric field.
func IsKnownNumeric(column string) bool {
	_, ok := numericFields[column]
	return ok
}

// IsKnownString reports whether the column maps to a typed text field.
func IsKnownString(column string) bool {
	_, ok := stringFields[column]
	return ok
}

// SetNumber stores a numeric value under its source column name.
func (r *NormalizedRow) SetNumber(column string, v float64) {
	if field, ok := numericFields[column]; ok {
		*field(r) = v
		return
	}
	r.setExtra(column, v)
}

// SetString stores a text value under its source column name.
func (r *NormalizedRow) SetString(column, v string) {
	if field, ok := stringFields[column]; ok {
		*field(r) = v
		return
	}
	r.setExtra(column, v)
}

func (r *NormalizedRow) setExtra(column string, v any) {
	if r.Extra == nil {
		r.Extra = make(map[string]any)
	}
	r.Extra[column] = v
}

// Value returns the cell stored under a source column name. Typed fields are
// always present; extra columns are present only if they were in the input.
func (r NormalizedRow) Value(column string) (any, bool) {
	if field, ok := numericFields[column]; ok {
		return *field(&r), true
	}
	if field, ok := stringFields[column]; ok {
		return *field(&r), true
	}
	v, ok := r.Extra[column]
	return v, ok
}

// Text returns the cell as display text. Numbers are formatted without
// trailing zeros; missing and nil cells yield "".
func (r NormalizedRow) Text(column string) string {
	v, ok := r.Value(column)
	if !ok || v == nil {
		return ""
	}
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return ""
	}
}

// Map flattens the row back to source column names.
func (r NormalizedRow) Map() map[string]any {
	m := make(map[string]any, len(numericFields)+len(stringFields)+len(r.Extra))
	for k, v := range r.Extra {
		m[k] = v
	}
	for col, field := range numericFields {
		m[col] = *field(&r)
	}
	for col, field := range stringFields {
		m[col] = *field(&r)
	}
	return m
}

// MarshalJSON renders the row keyed by source column names, the shape the
// dashboard front-end consumes.
func (r NormalizedRow) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Map())
}
