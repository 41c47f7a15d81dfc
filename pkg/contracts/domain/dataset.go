package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// IngestStats describes one normalization pass.
type IngestStats struct {
	Rows      int `json:"rows"`
	Columns   int `json:"columns"`
	Fallbacks int `json:"fallbacks"`
}

// Dataset is a fully normalized upload held in memory for the session.
type Dataset struct {
	ID       uuid.UUID       `json:"id"`
	FileName string          `json:"file_name"`
	LoadedAt time.Time       `json:"loaded_at"`
	Rows     []NormalizedRow `json:"-"`
	Stats    IngestStats     `json:"stats"`
}

// NewDataset wraps normalized rows with a fresh identity.
func NewDataset(fileName string, rows []NormalizedRow, stats IngestStats) *Dataset {
	return &Dataset{
		ID:       uuid.New(),
		FileName: fileName,
		LoadedAt: time.Now().UTC(),
		Rows:     rows,
		Stats:    stats,
	}
}

// MissingRequiredFieldError reports a raw record without a required column.
// It fails the whole ingestion batch.
type MissingRequiredFieldError struct {
	Field string
	Row   int // zero-based record index, -1 when unknown
}

func (e *MissingRequiredFieldError) Error() string {
	if e.Row < 0 {
		return fmt.Sprintf("missing required column: %s", e.Field)
	}
	return fmt.Sprintf("missing required column %s in record %d", e.Field, e.Row+1)
}
