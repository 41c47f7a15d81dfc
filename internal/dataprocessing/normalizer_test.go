package dataprocessing

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdxpulse/pkg/contracts/domain"
)

type countingRecorder struct {
	columns []string
}

func (r *countingRecorder) RecordFallback(column string) {
	r.columns = append(r.columns, column)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNormalizer_Normalize(t *testing.T) {
	n := NewNormalizer(quietLogger(), nil)

	row, err := n.Normalize(domain.RawRecord{
		domain.ColumnLatitude:     "-8,0476",
		domain.ColumnLongitude:    "-34.877",
		domain.ColumnID:           "00123",
		domain.ColumnName:         "Loja Centro",
		domain.ColumnPostalCode:   "50.030-230",
		domain.ColumnNumber:       "1.200",
		domain.ColumnCity:         "Recife",
		domain.ColumnReach:        "1.234 (12%)",
		domain.ColumnFrequency:    "2,5",
		domain.ColumnImpressions:  3085.0,
		domain.ColumnGenderMale:   "600 (48,6%)",
		domain.ColumnGenderFemale: "abc",
		domain.ColumnAge70Plus:    nil,
		"#1 Marca":                "Apple (40%)",
		"#2 Marca":                "1.000",
		"Score":                   "7,5",
		"Categoria":               "Farmácia",
		"Visitas":                 int64(15),
	})
	require.NoError(t, err)

	assert.Equal(t, -8.0476, row.Lat)
	assert.Equal(t, -34.877, row.Lng)
	assert.Equal(t, "00123", row.ID)
	assert.Equal(t, "Loja Centro", row.Name)
	assert.Equal(t, "50.030-230", row.PostalCode)
	assert.Equal(t, "1.200", row.Number, "address numbers are never coerced")
	assert.Equal(t, "Recife", row.City)
	assert.Equal(t, 1234.0, row.Reach)
	assert.Equal(t, 2.5, row.Frequency)
	assert.Equal(t, 3085.0, row.Impressions)
	assert.Equal(t, 600.0, row.Audience.Male)
	assert.Equal(t, 0.0, row.Audience.Female)
	assert.Equal(t, 0.0, row.Audience.Age70Plus)
	assert.Equal(t, "Apple (40%)", row.Extra["#1 Marca"])
	assert.Equal(t, "1.000", row.Extra["#2 Marca"], "ranked columns are never coerced")
	assert.Equal(t, 7.5, row.Extra["Score"])
	assert.Equal(t, "Farmácia", row.Extra["Categoria"])
	assert.Equal(t, 15.0, row.Extra["Visitas"])
}

func TestNormalizer_EmptyCoordinatesAllowed(t *testing.T) {
	row, err := NewNormalizer(quietLogger(), nil).Normalize(domain.RawRecord{
		domain.ColumnLatitude:  "",
		domain.ColumnLongitude: nil,
	})
	require.NoError(t, err)
	assert.Zero(t, row.Lat)
	assert.Zero(t, row.Lng)
}

func TestNormalizer_MissingRequiredField(t *testing.T) {
	tests := []struct {
		name  string
		raw   domain.RawRecord
		field string
	}{
		{
			name:  "missing latitude",
			raw:   domain.RawRecord{domain.ColumnLongitude: "-34,9", domain.ColumnReach: "10"},
			field: domain.ColumnLatitude,
		},
		{
			name:  "missing longitude",
			raw:   domain.RawRecord{domain.ColumnLatitude: "-8,0", domain.ColumnReach: "10"},
			field: domain.ColumnLongitude,
		},
		{
			name:  "empty record",
			raw:   domain.RawRecord{},
			field: domain.ColumnLatitude,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewNormalizer(quietLogger(), nil).Normalize(tt.raw)
			require.Error(t, err)

			var missing *domain.MissingRequiredFieldError
			require.True(t, errors.As(err, &missing))
			assert.Equal(t, tt.field, missing.Field)
		})
	}
}

func TestNormalizer_NormalizeBatch(t *testing.T) {
	recorder := &countingRecorder{}
	n := NewNormalizer(quietLogger(), recorder)

	rows, stats, err := n.NormalizeBatch([]domain.RawRecord{
		{domain.ColumnLatitude: "-8,05", domain.ColumnLongitude: "-34,90", domain.ColumnReach: "oops"},
		{domain.ColumnLatitude: "-23,55", domain.ColumnLongitude: "-46,63", domain.ColumnReach: "", "#1 Marca": "Apple"},
	})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, domain.IngestStats{Rows: 2, Columns: 4, Fallbacks: 1}, stats)
	assert.Equal(t, []string{domain.ColumnReach}, recorder.columns)
	assert.Equal(t, -23.55, rows[1].Lat)
}

func TestNormalizer_NormalizeBatchAllOrNothing(t *testing.T) {
	rows, stats, err := NewNormalizer(quietLogger(), nil).NormalizeBatch([]domain.RawRecord{
		{domain.ColumnLatitude: "-8,05", domain.ColumnLongitude: "-34,90"},
		{domain.ColumnLatitude: "-8,06"},
		{domain.ColumnLatitude: "-8,07", domain.ColumnLongitude: "-34,92"},
	})

	require.Error(t, err)
	assert.Nil(t, rows)
	assert.Zero(t, stats)

	var missing *domain.MissingRequiredFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, domain.ColumnLongitude, missing.Field)
	assert.Equal(t, 1, missing.Row)
}

func TestNewNormalizer_NilLogger(t *testing.T) {
	n := NewNormalizer(nil, nil)
	_, err := n.Normalize(domain.RawRecord{domain.ColumnLatitude: 1.0, domain.ColumnLongitude: 2.0})
	assert.NoError(t, err)
}
