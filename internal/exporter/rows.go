package exporter

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"

	"pdxpulse/pkg/contracts/domain"
)

var leadingColumns = []string{
	domain.ColumnID,
	domain.ColumnName,
	domain.ColumnStreet,
	domain.ColumnNumber,
	domain.ColumnNeighborhood,
	domain.ColumnCity,
	domain.ColumnState,
	domain.ColumnPostalCode,
	domain.ColumnLatitude,
	domain.ColumnLongitude,
	domain.ColumnFrequency,
}

// RowColumns returns the export header: identity, coordinates and audience
// columns first, then every extra column found in rows in sorted order.
func RowColumns(rows []domain.NormalizedRow) []string {
	cols := append([]string(nil), leadingColumns...)
	cols = append(cols, domain.CountColumns()...)

	extra := make(map[string]struct{})
	for _, r := range rows {
		for k := range r.Extra {
			extra[k] = struct{}{}
		}
	}
	names := make([]string, 0, len(extra))
	for k := range extra {
		names = append(names, k)
	}
	sort.Strings(names)
	return append(cols, names...)
}

// ExportRows writes rows as a BOM-prefixed CSV. Absent extra cells are empty.
func ExportRows(w io.Writer, rows []domain.NormalizedRow) error {
	cols := RowColumns(rows)
	sw, err := NewStreamWriter(w, cols, true)
	if err != nil {
		return err
	}

	record := make([]string, len(cols))
	for i, r := range rows {
		for j, col := range cols {
			record[j] = r.Text(col)
		}
		if err := sw.WriteRecord(record); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}
	return sw.Flush()
}

var topListHeaders = []string{"rank", "label", "count", "percentage"}

func topListRecords(list domain.TopList) [][]string {
	records := make([][]string, 0, len(list.Entries))
	for i, e := range list.Entries {
		records = append(records, []string{formatInt(i + 1), e.Label, formatInt(e.Count), formatFloat(e.Percentage)})
	}
	return records
}

// ExportTopList writes one ranked list as label, count and percentage.
func ExportTopList(w io.Writer, list domain.TopList) error {
	sw, err := NewStreamWriter(w, topListHeaders, true)
	if err != nil {
		return err
	}
	for i, record := range topListRecords(list) {
		if err := sw.WriteRecord(record); err != nil {
			return fmt.Errorf("failed to write entry %d: %w", i, err)
		}
	}
	return sw.Flush()
}

// WriteTopList writes list to dir as <key>.csv and returns the file path.
func WriteTopList(dir string, list domain.TopList) (string, error) {
	path := filepath.Join(dir, list.Key+".csv")
	err := WriteCSV(path, WriteOptions{
		Headers:   topListHeaders,
		Records:   topListRecords(list),
		BOMPrefix: true,
	})
	if err != nil {
		return "", fmt.Errorf("failed to write top list %s: %w", list.Key, err)
	}
	return path, nil
}
