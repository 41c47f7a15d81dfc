package infrastructure

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"pdxpulse/pkg/contracts/domain"
)

// Ingest outcomes used as the "outcome" attribute.
const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeInvalid  = "invalid"
)

// OtherColumn labels fallbacks from columns outside the PDX layout.
const OtherColumn = "other"

// DashboardMetrics holds the dashboard instruments
type DashboardMetrics struct {
	HTTPRequestsTotal   metric.Int64Counter
	HTTPRequestDuration metric.Float64Histogram
	HTTPActiveRequests  metric.Int64UpDownCounter

	IngestionsTotal metric.Int64Counter
	IngestDuration  metric.Float64Histogram
	RowsIngested    metric.Int64Counter
	ParseFallbacks  metric.Int64Counter

	FilterChanges    metric.Int64Counter
	WebSocketClients metric.Int64UpDownCounter
	Broadcasts       metric.Int64Counter
}

// NewDashboardMetrics creates the instruments on meter
func NewDashboardMetrics(meter metric.Meter) (*DashboardMetrics, error) {
	var (
		m   DashboardMetrics
		err error
	)

	if m.HTTPRequestsTotal, err = meter.Int64Counter("http_requests_total",
		metric.WithDescription("Total number of HTTP requests")); err != nil {
		return nil, err
	}
	if m.HTTPRequestDuration, err = meter.Float64Histogram("http_request_duration_seconds",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s")); err != nil {
		return nil, err
	}
	if m.HTTPActiveRequests, err = meter.Int64UpDownCounter("http_active_requests",
		metric.WithDescription("Number of active HTTP requests")); err != nil {
		return nil, err
	}
	if m.IngestionsTotal, err = meter.Int64Counter("dataset_ingestions_total",
		metric.WithDescription("Dataset uploads by outcome")); err != nil {
		return nil, err
	}
	if m.IngestDuration, err = meter.Float64Histogram("dataset_ingest_duration_seconds",
		metric.WithDescription("Time to decode and normalize an upload"),
		metric.WithUnit("s")); err != nil {
		return nil, err
	}
	if m.RowsIngested, err = meter.Int64Counter("dataset_rows_ingested_total",
		metric.WithDescription("Normalized rows accepted")); err != nil {
		return nil, err
	}
	if m.ParseFallbacks, err = meter.Int64Counter("dataset_parse_fallbacks_total",
		metric.WithDescription("Non-blank cells that fell back to zero")); err != nil {
		return nil, err
	}
	if m.FilterChanges, err = meter.Int64Counter("dashboard_filter_changes_total",
		metric.WithDescription("Audience and location filter changes")); err != nil {
		return nil, err
	}
	if m.WebSocketClients, err = meter.Int64UpDownCounter("websocket_clients",
		metric.WithDescription("Connected dashboard clients")); err != nil {
		return nil, err
	}
	if m.Broadcasts, err = meter.Int64Counter("websocket_broadcasts_total",
		metric.WithDescription("Snapshot broadcasts sent to the hub")); err != nil {
		return nil, err
	}

	return &m, nil
}

// RecordIngest records one upload attempt
func (m *DashboardMetrics) RecordIngest(ctx context.Context, outcome string, duration time.Duration, rows int) {
	attrs := metric.WithAttributes(attribute.String("outcome", outcome))
	m.IngestionsTotal.Add(ctx, 1, attrs)
	m.IngestDuration.Record(ctx, duration.Seconds(), attrs)
	if rows > 0 {
		m.RowsIngested.Add(ctx, int64(rows))
	}
}

// RecordFallback counts a cell that could not be parsed. Unknown headers
// share the OtherColumn label.
func (m *DashboardMetrics) RecordFallback(column string) {
	if !domain.IsKnownColumn(column) {
		column = OtherColumn
	}
	m.ParseFallbacks.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String("column", column)))
}

// RecordFilterChange counts a filter mutation
func (m *DashboardMetrics) RecordFilterChange(ctx context.Context, category, action string) {
	m.FilterChanges.Add(ctx, 1, metric.WithAttributes(
		attribute.String("category", category),
		attribute.String("action", action),
	))
}

// RecordClientChange tracks websocket connects (+1) and disconnects (-1)
func (m *DashboardMetrics) RecordClientChange(ctx context.Context, delta int64) {
	m.WebSocketClients.Add(ctx, delta)
}

// RecordBroadcast counts a snapshot broadcast by message type
func (m *DashboardMetrics) RecordBroadcast(ctx context.Context, messageType string) {
	m.Broadcasts.Add(ctx, 1, metric.WithAttributes(attribute.String("type", messageType)))
}
