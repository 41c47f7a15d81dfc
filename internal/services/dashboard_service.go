package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"pdxpulse/internal/config"
	"pdxpulse/internal/dashboard"
	"pdxpulse/internal/dataprocessing"
	apierrors "pdxpulse/internal/errors"
	"pdxpulse/internal/exporter"
	"pdxpulse/internal/files"
	"pdxpulse/internal/infrastructure"
	"pdxpulse/internal/validation"
	"pdxpulse/pkg/contracts/domain"
	"pdxpulse/pkg/contracts/events"
)

// Broadcaster publishes dashboard messages to connected clients.
type Broadcaster interface {
	Broadcast(ctx context.Context, messageType events.MessageType, data interface{})
}

// DashboardService owns the session dashboard state. State changes are
// serialized by a mutex; readers take the current snapshot and compute
// from it without holding the lock.
type DashboardService struct {
	mu       sync.RWMutex
	snapshot dashboard.Snapshot

	cfg         config.DashboardConfig
	validator   *validation.FileValidator
	normalizer  *dataprocessing.Normalizer
	broadcaster Broadcaster
	metrics     *infrastructure.DashboardMetrics
	groups      []domain.RankedGroup
	logger      *slog.Logger
}

// NewDashboardService wires the ingestion pipeline. broadcaster and metrics
// may be nil.
func NewDashboardService(cfg config.DashboardConfig, validator *validation.FileValidator, broadcaster Broadcaster, metrics *infrastructure.DashboardMetrics, logger *slog.Logger) *DashboardService {
	if logger == nil {
		logger = infrastructure.GetLogger()
	}
	logger = logger.With(slog.String("component", "dashboard_service"))

	var recorder dataprocessing.FallbackRecorder
	if metrics != nil {
		recorder = metrics
	}
	if validator == nil {
		validator = validation.NewFileValidator(logger, config.DefaultMaxUploadBytes)
	}

	return &DashboardService{
		snapshot:    dashboard.Initial(),
		cfg:         cfg,
		validator:   validator,
		normalizer:  dataprocessing.NewNormalizer(logger, recorder),
		broadcaster: broadcaster,
		metrics:     metrics,
		groups:      domain.DefaultRankedGroups(),
		logger:      logger,
	}
}

// Snapshot returns the current state.
func (s *DashboardService) Snapshot() dashboard.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// loaded returns the current state or ErrDatasetNotFound.
func (s *DashboardService) loaded() (dashboard.Snapshot, error) {
	snap := s.Snapshot()
	if !snap.Loaded() {
		return snap, apierrors.ErrDatasetNotFound
	}
	return snap, nil
}

// Ingest reads, decodes and normalizes an uploaded file and makes it the
// current dataset. On any error the previous state is kept.
func (s *DashboardService) Ingest(ctx context.Context, fileName string, r io.Reader) (*domain.Dataset, error) {
	start := time.Now()
	logger := s.logger.With(slog.String("file", fileName))

	ds, err := s.ingest(ctx, fileName, r)
	if err != nil {
		outcome := infrastructure.OutcomeInvalid
		var appErr *apierrors.AppError
		if errors.As(err, &appErr) && appErr.Type == apierrors.ErrTypeValidation {
			outcome = infrastructure.OutcomeRejected
		}
		if s.metrics != nil {
			s.metrics.RecordIngest(ctx, outcome, time.Since(start), 0)
		}
		infrastructure.RecordError(ctx, err)
		logger.WarnContext(ctx, "Dataset ingestion failed",
			slog.String("outcome", outcome),
			slog.String("error", err.Error()))
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordIngest(ctx, infrastructure.OutcomeSuccess, time.Since(start), ds.Stats.Rows)
	}
	s.apply(ctx, dashboard.DatasetLoaded{Dataset: ds})

	logger.InfoContext(ctx, "Dataset loaded",
		slog.String("dataset_id", ds.ID.String()),
		slog.Int("rows", ds.Stats.Rows),
		slog.Int("columns", ds.Stats.Columns),
		slog.Int("fallbacks", ds.Stats.Fallbacks),
		slog.Duration("duration", time.Since(start)))
	return ds, nil
}

func (s *DashboardService) ingest(ctx context.Context, fileName string, r io.Reader) (*domain.Dataset, error) {
	if err := s.validator.ValidateUpload(fileName, -1); err != nil {
		return nil, err
	}

	limit := s.validator.MaxBytes()
	if limit > 0 {
		r = io.LimitReader(r, limit+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if err := s.validator.ValidateUpload(fileName, int64(len(data))); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	records, err := files.Decode(fileName, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", fileName, err)
	}

	rows, stats, err := s.normalizer.NormalizeBatch(records)
	if err != nil {
		return nil, fmt.Errorf("normalize %s: %w", fileName, err)
	}

	return domain.NewDataset(fileName, rows, stats), nil
}

// Reset discards the dataset and every filter.
func (s *DashboardService) Reset(ctx context.Context) dashboard.Snapshot {
	snap, _ := s.apply(ctx, dashboard.DatasetReset{})
	return snap
}

// SelectFilter sets an audience filter. With toggle, selecting the active
// value clears the category instead.
func (s *DashboardService) SelectFilter(ctx context.Context, category domain.FilterCategory, value string, toggle bool) (dashboard.Snapshot, error) {
	snap, err := s.loaded()
	if err != nil {
		return snap, err
	}
	if !category.Valid() {
		return snap, apierrors.NewAppValidationError(fmt.Sprintf("unknown filter category %q", category)).
			WithContext("category", string(category))
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return snap, apierrors.NewAppValidationError("filter value is required")
	}

	next, changed := s.apply(ctx, dashboard.FilterSelected{Category: category, Value: value, Set: !toggle})
	if changed && s.metrics != nil {
		action := "select"
		if next.Filters[category] != value {
			action = "clear"
		}
		s.metrics.RecordFilterChange(ctx, string(category), action)
	}
	return next, nil
}

// ClearFilter unsets one audience filter.
func (s *DashboardService) ClearFilter(ctx context.Context, category domain.FilterCategory) (dashboard.Snapshot, error) {
	snap, err := s.loaded()
	if err != nil {
		return snap, err
	}
	if !category.Valid() {
		return snap, apierrors.NewAppValidationError(fmt.Sprintf("unknown filter category %q", category)).
			WithContext("category", string(category))
	}
	if _, active := snap.Filters[category]; !active {
		return snap, nil
	}

	next, _ := s.apply(ctx, dashboard.FilterCleared{Category: category})
	if s.metrics != nil {
		s.metrics.RecordFilterChange(ctx, string(category), "clear")
	}
	return next, nil
}

// SetLocation replaces the location filter.
func (s *DashboardService) SetLocation(ctx context.Context, location domain.LocationFilter) (dashboard.Snapshot, error) {
	if _, err := s.loaded(); err != nil {
		return dashboard.Snapshot{}, err
	}
	next, _ := s.apply(ctx, dashboard.LocationChanged{Location: location})
	if s.metrics != nil {
		s.metrics.RecordFilterChange(ctx, "location", "select")
	}
	return next, nil
}

// Summary computes every dashboard aggregate for the current state.
func (s *DashboardService) Summary(ctx context.Context) (domain.Summary, error) {
	snap, err := s.loaded()
	if err != nil {
		return domain.Summary{}, err
	}
	return s.summarize(snap), nil
}

func (s *DashboardService) summarize(snap dashboard.Snapshot) domain.Summary {
	summary := dataprocessing.Summarize(snap.Rows(), snap.Filters, snap.Location, dataprocessing.SummaryOptions{
		TopN:   s.cfg.TopN,
		Groups: s.groups,
	})
	summary.DatasetID = snap.Dataset.ID.String()
	summary.FileName = snap.Dataset.FileName
	return summary
}

// filtered returns the rows that pass the audience and location filters.
func filtered(snap dashboard.Snapshot) []domain.NormalizedRow {
	pred := dataprocessing.And(
		dataprocessing.BuildPredicate(snap.Filters),
		dataprocessing.LocationPredicate(snap.Location),
	)
	return dataprocessing.FilterRows(snap.Rows(), pred)
}

// RowsPage is one page of filtered rows with the unpaged count.
type RowsPage struct {
	Total  int
	Offset int
	Limit  int
	Rows   []domain.NormalizedRow
}

// Rows returns filtered rows from offset. A limit of zero uses the default
// page size; limits above the maximum are clamped.
func (s *DashboardService) Rows(ctx context.Context, offset, limit int) (RowsPage, error) {
	snap, err := s.loaded()
	if err != nil {
		return RowsPage{}, err
	}
	if offset < 0 || limit < 0 {
		return RowsPage{}, apierrors.NewAppValidationError("offset and limit must not be negative")
	}
	if limit == 0 {
		limit = s.cfg.DefaultPageSize
	}
	if s.cfg.MaxPageSize > 0 && limit > s.cfg.MaxPageSize {
		limit = s.cfg.MaxPageSize
	}

	rows := filtered(snap)
	page := RowsPage{Total: len(rows), Offset: offset, Limit: limit, Rows: []domain.NormalizedRow{}}
	if offset >= len(rows) {
		return page, nil
	}
	end := offset + limit
	if limit == 0 || end > len(rows) {
		end = len(rows)
	}
	page.Rows = rows[offset:end]
	return page, nil
}

// TopList ranks one group on the filtered rows. A limit of zero uses the
// configured top N.
func (s *DashboardService) TopList(ctx context.Context, key string, limit int) (domain.TopList, error) {
	snap, err := s.loaded()
	if err != nil {
		return domain.TopList{}, err
	}
	group, ok := domain.FindRankedGroup(s.groups, key)
	if !ok {
		return domain.TopList{}, apierrors.NewNotFoundError(fmt.Sprintf("ranked group %q", key)).
			WithContext("group", key)
	}
	if limit <= 0 {
		limit = s.cfg.TopN
	}
	if limit <= 0 {
		limit = dataprocessing.DefaultTopN
	}

	result := dataprocessing.Aggregate(filtered(snap), group.Columns, limit, nil)
	return domain.TopList{Key: group.Key, Title: group.Title, AggregateResult: result}, nil
}

// Geo returns map points, domain and center of the filtered rows.
func (s *DashboardService) Geo(ctx context.Context) ([]domain.MapPoint, domain.GeoDomain, domain.LatLng, error) {
	snap, err := s.loaded()
	if err != nil {
		return nil, domain.GeoDomain{}, domain.LatLng{}, err
	}
	rows := filtered(snap)
	points := dataprocessing.Points(rows)
	return dataprocessing.MapPoints(rows), dataprocessing.ComputeDomain(points), dataprocessing.ComputeCenter(points), nil
}

// Locations returns the cascade options for the current location filter.
func (s *DashboardService) Locations(ctx context.Context) (domain.LocationFilter, domain.LocationOptions, error) {
	snap, err := s.loaded()
	if err != nil {
		return domain.LocationFilter{}, domain.LocationOptions{}, err
	}
	return snap.Location, dataprocessing.LocationOptions(snap.Rows(), snap.Location), nil
}

// ExportRows writes the filtered rows as CSV.
func (s *DashboardService) ExportRows(ctx context.Context, w io.Writer) error {
	snap, err := s.loaded()
	if err != nil {
		return err
	}
	rows := filtered(snap)
	if err := exporter.ExportRows(w, rows); err != nil {
		return apierrors.NewStorageError("failed to export rows", err)
	}
	s.logger.DebugContext(ctx, "Rows exported", slog.Int("rows", len(rows)))
	return nil
}

// apply reduces e into the current state and broadcasts the result when the
// version moved. It reports whether the event was applied.
func (s *DashboardService) apply(ctx context.Context, e dashboard.Event) (dashboard.Snapshot, bool) {
	s.mu.Lock()
	prev := s.snapshot
	next := dashboard.Reduce(prev, e)
	s.snapshot = next
	s.mu.Unlock()

	if next.Version == prev.Version {
		s.logger.DebugContext(ctx, "Event ignored", slog.String("event", e.Name()))
		return next, false
	}

	s.logger.DebugContext(ctx, "State changed",
		slog.String("event", e.Name()),
		slog.Uint64("version", next.Version))
	if s.broadcaster != nil {
		s.broadcaster.Broadcast(ctx, events.MessageTypeDashboardSnapshot, SnapshotMessage(next, e))
	}
	return next, true
}

// SnapshotMessage converts a snapshot into its websocket payload.
func SnapshotMessage(snap dashboard.Snapshot, e dashboard.Event) events.DashboardSnapshot {
	msg := events.DashboardSnapshot{
		Version: snap.Version,
		Filters: make(map[string]string, len(snap.Filters)),
		Location: events.LocationSelection{
			States:        snap.Location.States,
			Cities:        snap.Location.Cities,
			Neighborhoods: snap.Location.Neighborhoods,
		},
	}
	if e != nil {
		msg.Event = e.Name()
	}
	for k, v := range snap.Filters {
		msg.Filters[string(k)] = v
	}
	if snap.Dataset != nil {
		msg.DatasetID = snap.Dataset.ID.String()
		msg.FileName = snap.Dataset.FileName
		msg.Rows = len(snap.Dataset.Rows)
	}
	return msg
}
