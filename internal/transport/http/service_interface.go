package http

import (
	"context"
	"io"

	"pdxpulse/internal/dashboard"
	"pdxpulse/internal/services"
	"pdxpulse/pkg/contracts/domain"
)

// DashboardServiceInterface is the part of services.DashboardService used
// by the handlers.
type DashboardServiceInterface interface {
	Snapshot() dashboard.Snapshot
	Ingest(ctx context.Context, fileName string, r io.Reader) (*domain.Dataset, error)
	Reset(ctx context.Context) dashboard.Snapshot
	SelectFilter(ctx context.Context, category domain.FilterCategory, value string, toggle bool) (dashboard.Snapshot, error)
	ClearFilter(ctx context.Context, category domain.FilterCategory) (dashboard.Snapshot, error)
	SetLocation(ctx context.Context, location domain.LocationFilter) (dashboard.Snapshot, error)
	Summary(ctx context.Context) (domain.Summary, error)
	Rows(ctx context.Context, offset, limit int) (services.RowsPage, error)
	TopList(ctx context.Context, key string, limit int) (domain.TopList, error)
	Geo(ctx context.Context) ([]domain.MapPoint, domain.GeoDomain, domain.LatLng, error)
	Locations(ctx context.Context) (domain.LocationFilter, domain.LocationOptions, error)
	ExportRows(ctx context.Context, w io.Writer) error
}

var _ DashboardServiceInterface = (*services.DashboardService)(nil)
