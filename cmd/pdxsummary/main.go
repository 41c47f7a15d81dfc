// Command pdxsummary prints the dashboard summary of a PDX export as JSON.
//
//	pdxsummary -file data.csv [-top 5] [-filter gender=Masculino] [-state PE]
//
// A directory given to -file resolves to its newest .csv or .xlsx export.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"pdxpulse/internal/config"
	"pdxpulse/internal/dataprocessing"
	"pdxpulse/internal/exporter"
	"pdxpulse/internal/files"
	"pdxpulse/internal/infrastructure"
	"pdxpulse/internal/validation"
	"pdxpulse/pkg/contracts/domain"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// filterFlags collects repeated -filter category=value arguments.
type filterFlags domain.FilterState

func (f filterFlags) String() string {
	parts := make([]string, 0, len(f))
	for k, v := range f {
		parts = append(parts, string(k)+"="+v)
	}
	return strings.Join(parts, ",")
}

func (f filterFlags) Set(s string) error {
	category, value, ok := strings.Cut(s, "=")
	if !ok || value == "" {
		return fmt.Errorf("expected category=value, got %q", s)
	}
	c := domain.FilterCategory(strings.TrimSpace(category))
	if !c.Valid() {
		return fmt.Errorf("unknown filter category %q", category)
	}
	f[c] = strings.TrimSpace(value)
	return nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("pdxsummary", flag.ContinueOnError)
	fs.SetOutput(stderr)

	filters := filterFlags{}
	file := fs.String("file", ".", "PDX export (.csv or .xlsx) or a directory holding exports")
	top := fs.Int("top", dataprocessing.DefaultTopN, "length of the ranked lists")
	states := fs.String("state", "", "comma-separated states to keep")
	cities := fs.String("city", "", "comma-separated cities to keep")
	topDir := fs.String("top-dir", "", "write every ranked list as CSV into this directory")
	rowsOut := fs.String("rows-out", "", "write the filtered rows as CSV to this file")
	logLevel := fs.String("log-level", "warn", "log level (debug, info, warn, error)")
	fs.Var(filters, "filter", "audience filter as category=value (gender, age, socio); repeatable")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	logger := infrastructure.NewLogger(*logLevel, stderr).With(slog.String("component", "pdxsummary"))

	path, err := files.NewDiscovery("").ResolveInput(*file)
	if err != nil {
		logger.Error("Failed to resolve input", slog.String("error", err.Error()))
		return 1
	}
	if err := validation.NewFileValidator(logger, config.DefaultMaxUploadBytes).ValidateFile(path); err != nil {
		logger.Error("Input rejected", slog.String("file", path), slog.String("error", err.Error()))
		return 1
	}

	records, err := files.DecodeFile(path)
	if err != nil {
		logger.Error("Failed to decode input", slog.String("file", path), slog.String("error", err.Error()))
		return 1
	}

	rows, stats, err := dataprocessing.NewNormalizer(logger, nil).NormalizeBatch(records)
	if err != nil {
		logger.Error("Failed to normalize rows", slog.String("file", path), slog.String("error", err.Error()))
		return 1
	}
	logger.Info("Dataset loaded",
		slog.String("file", path),
		slog.Int("rows", stats.Rows),
		slog.Int("fallbacks", stats.Fallbacks))

	location := domain.LocationFilter{States: splitList(*states), Cities: splitList(*cities)}
	opts := dataprocessing.DefaultSummaryOptions()
	opts.TopN = *top
	summary := dataprocessing.Summarize(rows, domain.FilterState(filters), location, opts)
	summary.FileName = path

	if *topDir != "" {
		for _, list := range summary.TopLists {
			out, err := exporter.WriteTopList(*topDir, list)
			if err != nil {
				logger.Error("Failed to write top list", slog.String("error", err.Error()))
				return 1
			}
			logger.Info("Top list written", slog.String("path", out))
		}
	}

	if *rowsOut != "" {
		if err := writeRows(*rowsOut, rows, domain.FilterState(filters), location); err != nil {
			logger.Error("Failed to write rows", slog.String("error", err.Error()))
			return 1
		}
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(summary); err != nil {
		logger.Error("Failed to encode summary", slog.String("error", err.Error()))
		return 1
	}
	return 0
}

func writeRows(path string, rows []domain.NormalizedRow, filters domain.FilterState, location domain.LocationFilter) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	pred := dataprocessing.And(dataprocessing.BuildPredicate(filters), dataprocessing.LocationPredicate(location))
	if err := exporter.ExportRows(f, dataprocessing.FilterRows(rows, pred)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
