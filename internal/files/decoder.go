package files

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	apierrors "pdxpulse/internal/errors"
	"pdxpulse/pkg/contracts/domain"
)

// Supported upload formats, keyed by lower-case extension.
const (
	ExtCSV  = ".csv"
	ExtXLSX = ".xlsx"
)

// SupportedExtensions lists the file extensions Decode understands.
var SupportedExtensions = []string{ExtCSV, ExtXLSX}

// IsSupported reports whether the file name has a decodable extension.
func IsSupported(fileName string) bool {
	ext := strings.ToLower(filepath.Ext(fileName))
	return ext == ExtCSV || ext == ExtXLSX
}

// Decode reads a CSV or XLSX file into raw records keyed by header name.
// The format is chosen from the file name extension.
func Decode(fileName string, r io.Reader) ([]domain.RawRecord, error) {
	switch ext := strings.ToLower(filepath.Ext(fileName)); ext {
	case ExtCSV:
		return DecodeCSV(r)
	case ExtXLSX:
		return DecodeXLSX(r)
	default:
		return nil, apierrors.NewParsingError(
			fmt.Sprintf("unsupported file type %q, expected one of %s", ext, strings.Join(SupportedExtensions, ", ")), nil).
			WithContext("file_name", fileName)
	}
}

// DecodeFile opens and decodes a file from disk.
func DecodeFile(path string) ([]domain.RawRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()
	return Decode(filepath.Base(path), f)
}

// DecodeCSV reads a delimited text export. The first non-blank line is the
// header. Both "," and ";" delimiters are accepted. Blank lines are skipped
// and cells missing from short rows are left out of the record.
func DecodeCSV(r io.Reader) ([]domain.RawRecord, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read file content: %w", err)
	}
	content = bytes.TrimPrefix(content, []byte("\xEF\xBB\xBF"))

	reader := csv.NewReader(bytes.NewReader(content))
	reader.Comma = detectDelimiter(content)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	lines, err := reader.ReadAll()
	if err != nil {
		return nil, apierrors.NewParsingError("failed to read CSV", err)
	}

	var header []string
	records := make([]domain.RawRecord, 0, len(lines))
	for _, line := range lines {
		if blankLine(line) {
			continue
		}
		if header == nil {
			header = cleanHeader(line)
			continue
		}
		rec := make(domain.RawRecord, len(header))
		for i, cell := range line {
			if i >= len(header) {
				slog.Debug("ignoring cells beyond header",
					slog.Int("record", len(records)+1),
					slog.Int("extra", len(line)-len(header)))
				break
			}
			if header[i] == "" {
				continue
			}
			rec[header[i]] = cell
		}
		records = append(records, rec)
	}

	if header == nil {
		return nil, apierrors.NewParsingError("CSV has no header row", nil)
	}

	slog.Info("CSV decoded",
		slog.Int("columns", len(header)),
		slog.Int("records", len(records)),
		slog.String("delimiter", string(reader.Comma)))

	return records, nil
}

// DecodeXLSX reads the first worksheet of a workbook. The first non-empty row
// is the header. Numeric cells become float64; empty cells are omitted.
func DecodeXLSX(r io.Reader) ([]domain.RawRecord, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apierrors.NewParsingError("failed to open workbook", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apierrors.NewParsingError("workbook has no sheets", nil)
	}
	sheet := sheets[0]

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, apierrors.NewParsingError("failed to read worksheet", err).WithContext("sheet", sheet)
	}

	var header []string
	records := make([]domain.RawRecord, 0, len(rows))
	for rowIdx, row := range rows {
		if blankLine(row) {
			continue
		}
		if header == nil {
			header = cleanHeader(row)
			continue
		}
		rec := make(domain.RawRecord, len(header))
		for colIdx, raw := range row {
			if colIdx >= len(header) || header[colIdx] == "" || raw == "" {
				continue
			}
			rec[header[colIdx]] = xlsxCell(f, sheet, colIdx+1, rowIdx+1, raw)
		}
		records = append(records, rec)
	}

	if header == nil {
		return nil, apierrors.NewParsingError("worksheet has no header row", nil).WithContext("sheet", sheet)
	}

	slog.Info("workbook decoded",
		slog.String("sheet", sheet),
		slog.Int("columns", len(header)),
		slog.Int("records", len(records)))

	return records, nil
}

// xlsxCell types a raw cell value: stored numbers become float64, everything
// else stays text.
func xlsxCell(f *excelize.File, sheet string, col, row int, raw string) any {
	axis, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return raw
	}
	cellType, err := f.GetCellType(sheet, axis)
	if err != nil {
		return raw
	}
	switch cellType {
	case excelize.CellTypeNumber, excelize.CellTypeUnset:
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			return v
		}
	}
	return raw
}

// detectDelimiter picks ";" when the header line has more semicolons than
// commas, as in pt-BR spreadsheet exports.
func detectDelimiter(content []byte) rune {
	line := content
	if i := bytes.IndexByte(content, '\n'); i >= 0 {
		line = content[:i]
	}
	if bytes.Count(line, []byte(";")) > bytes.Count(line, []byte(",")) {
		return ';'
	}
	return ','
}

// cleanHeader trims header names, drops invisible prefixes and renames
// duplicates "name", "name_1", "name_2".
func cleanHeader(line []string) []string {
	header := make([]string, len(line))
	seen := make(map[string]int, len(line))
	for i, col := range line {
		name := strings.TrimSpace(strings.TrimLeft(col, "\u200b\u200c\u200d\u2060\ufeff"))
		if name == "" {
			continue
		}
		if n, dup := seen[name]; dup {
			seen[name] = n + 1
			name = fmt.Sprintf("%s_%d", name, n)
		} else {
			seen[name] = 1
		}
		header[i] = name
	}
	return header
}

func blankLine(line []string) bool {
	for _, cell := range line {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
