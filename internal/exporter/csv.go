package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// WriteCSV writes data to a CSV file, creating parent directories.
func WriteCSV(filePath string, options WriteOptions) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}

	sw, err := NewStreamWriter(file, options.Headers, options.BOMPrefix)
	if err != nil {
		file.Close()
		return err
	}
	for i, record := range options.Records {
		if err := sw.WriteRecord(record); err != nil {
			file.Close()
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}
	if err := sw.Flush(); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// StreamWriter provides streaming CSV writing for large datasets
type StreamWriter struct {
	writer *csv.Writer
}

// NewStreamWriter writes the optional BOM and the header row to w.
func NewStreamWriter(w io.Writer, headers []string, bom bool) (*StreamWriter, error) {
	if bom {
		if _, err := w.Write(utf8BOM); err != nil {
			return nil, fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(w)
	if len(headers) > 0 {
		if err := writer.Write(headers); err != nil {
			return nil, fmt.Errorf("failed to write headers: %w", err)
		}
	}
	return &StreamWriter{writer: writer}, nil
}

// WriteRecord writes a single record to the stream
func (s *StreamWriter) WriteRecord(record []string) error {
	return s.writer.Write(record)
}

// Flush writes buffered records and reports any write error.
func (s *StreamWriter) Flush() error {
	s.writer.Flush()
	return s.writer.Error()
}
