package validation

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	apierrors "pdxpulse/internal/errors"
	"pdxpulse/internal/files"
)

// FileValidator checks dataset files before they reach the decoder
type FileValidator struct {
	logger   *slog.Logger
	maxBytes int64
}

// NewFileValidator creates a new file validator. maxBytes <= 0 disables the
// size check.
func NewFileValidator(logger *slog.Logger, maxBytes int64) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{
		logger:   logger.With(slog.String("component", "file_validator")),
		maxBytes: maxBytes,
	}
}

// MaxBytes returns the configured upload limit
func (v *FileValidator) MaxBytes() int64 {
	return v.maxBytes
}

// ValidateUpload checks the name and declared size of an uploaded file.
// A negative size means unknown and skips the size checks.
func (v *FileValidator) ValidateUpload(fileName string, size int64) error {
	if strings.TrimSpace(fileName) == "" {
		return apierrors.NewAppValidationError("file name is required")
	}

	base := filepath.Base(fileName)
	if strings.HasPrefix(base, "~$") {
		v.logger.Warn("Rejected temporary Excel file", slog.String("file", base))
		return apierrors.NewAppValidationError(fmt.Sprintf("%s is a temporary Excel lock file", base))
	}

	if !files.IsSupported(base) {
		ext := strings.ToLower(filepath.Ext(base))
		v.logger.Warn("Rejected unsupported file type",
			slog.String("file", base),
			slog.String("extension", ext))
		return apierrors.NewAppValidationError(
			fmt.Sprintf("unsupported file type %q, expected one of %s", ext, strings.Join(files.SupportedExtensions, ", "))).
			WithContext("extension", ext)
	}

	if size == 0 {
		return apierrors.NewAppValidationError(fmt.Sprintf("%s is empty", base))
	}

	if v.maxBytes > 0 && size > v.maxBytes {
		v.logger.Warn("Rejected oversized upload",
			slog.String("file", base),
			slog.Int64("size", size),
			slog.Int64("max_bytes", v.maxBytes))
		return apierrors.NewAppValidationError(
			fmt.Sprintf("%s is %d bytes, the limit is %d", base, size, v.maxBytes)).
			WithContext("max_bytes", v.maxBytes)
	}

	v.logger.Debug("Upload validated",
		slog.String("file", base),
		slog.Int64("size", size))
	return nil
}

// ValidateFile checks that a path on disk is a readable dataset file
func (v *FileValidator) ValidateFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		v.logger.Error("File does not exist",
			slog.String("file", path))
		return fmt.Errorf("file %s does not exist", path)
	}
	if err != nil {
		v.logger.Error("Failed to stat file",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to stat file %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory, not a file", path)
	}

	file, err := os.Open(path)
	if err != nil {
		v.logger.Error("File is not readable",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return fmt.Errorf("file %s is not readable: %w", path, err)
	}
	file.Close()

	return v.ValidateUpload(path, info.Size())
}
