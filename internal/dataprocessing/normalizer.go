package dataprocessing

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"pdxpulse/pkg/contracts/domain"
)

// FallbackRecorder observes cells that were present but could not be parsed
// and were therefore stored as 0. It exists for observability only.
type FallbackRecorder interface {
	RecordFallback(column string)
}

// Normalizer turns decoded raw records into typed rows.
type Normalizer struct {
	logger   *slog.Logger
	recorder FallbackRecorder
}

// NewNormalizer creates a normalizer. recorder may be nil.
func NewNormalizer(logger *slog.Logger, recorder FallbackRecorder) *Normalizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Normalizer{
		logger:   logger.With(slog.String("component", "normalizer")),
		recorder: recorder,
	}
}

// Normalize converts a single raw record. It fails only when a required
// geolocation column is absent from the record's keys; unparsable values
// become 0.
func (n *Normalizer) Normalize(raw domain.RawRecord) (domain.NormalizedRow, error) {
	row, _, err := n.normalize(raw, -1)
	return row, err
}

// NormalizeBatch converts every record or none: the first structural error
// aborts the batch and no rows are returned.
func (n *Normalizer) NormalizeBatch(raws []domain.RawRecord) ([]domain.NormalizedRow, domain.IngestStats, error) {
	rows := make([]domain.NormalizedRow, 0, len(raws))
	columns := make(map[string]struct{})
	var stats domain.IngestStats

	for i, raw := range raws {
		row, fallbacks, err := n.normalize(raw, i)
		if err != nil {
			var missing *domain.MissingRequiredFieldError
			if errors.As(err, &missing) {
				n.logger.Warn("ingestion rejected",
					slog.String("field", missing.Field),
					slog.Int("record", i+1),
					slog.Int("records", len(raws)))
			}
			return nil, domain.IngestStats{}, err
		}
		for k := range raw {
			columns[k] = struct{}{}
		}
		stats.Fallbacks += fallbacks
		rows = append(rows, row)
	}

	stats.Rows = len(rows)
	stats.Columns = len(columns)

	n.logger.Info("records normalized",
		slog.Int("rows", stats.Rows),
		slog.Int("columns", stats.Columns),
		slog.Int("fallbacks", stats.Fallbacks))

	return rows, stats, nil
}

func (n *Normalizer) normalize(raw domain.RawRecord, index int) (domain.NormalizedRow, int, error) {
	for _, required := range []string{domain.ColumnLatitude, domain.ColumnLongitude} {
		if !raw.Has(required) {
			return domain.NormalizedRow{}, 0, &domain.MissingRequiredFieldError{Field: required, Row: index}
		}
	}

	var row domain.NormalizedRow
	fallbacks := 0
	fallback := func(column string, cell any) {
		if isBlank(cell) {
			return
		}
		fallbacks++
		if n.recorder != nil {
			n.recorder.RecordFallback(column)
		}
	}

	for column, cell := range raw {
		switch {
		case column == domain.ColumnLatitude || column == domain.ColumnLongitude:
			v, ok := TryParseCoordinate(cell)
			if !ok {
				fallback(column, cell)
			}
			row.SetNumber(column, v)

		case column == domain.ColumnFrequency:
			v, ok := TryParseNumber(cell)
			if !ok {
				fallback(column, cell)
			}
			row.SetNumber(column, v)

		case domain.IsKnownNumeric(column):
			v, ok := TryParseCount(cell)
			if !ok {
				fallback(column, cell)
			}
			row.SetNumber(column, v)

		case domain.IsPreservedColumn(column):
			if num, isNum := numericCell(cell); isNum && !domain.IsKnownString(column) {
				row.SetNumber(column, num)
				continue
			}
			row.SetString(column, cellText(cell))

		default:
			if num, isNum := numericCell(cell); isNum {
				row.SetNumber(column, num)
				continue
			}
			text := cellText(cell)
			if looksNumeric(strings.TrimSpace(text)) {
				v, ok := TryParseNumber(text)
				if !ok {
					fallback(column, cell)
				}
				row.SetNumber(column, v)
				continue
			}
			row.SetString(column, text)
		}
	}

	return row, fallbacks, nil
}

// numericCell reports whether the decoder already produced a number and
// returns it as a finite float64.
func numericCell(cell any) (float64, bool) {
	switch cell.(type) {
	case float64, float32, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		v, _ := TryParseNumber(cell)
		return v, true
	}
	return 0, false
}

func cellText(cell any) string {
	switch x := cell.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return ""
		}
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}

func isBlank(cell any) bool {
	switch x := cell.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(x) == ""
	}
	return false
}
