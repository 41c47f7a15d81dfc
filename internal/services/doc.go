// Package services implements the business logic between HTTP handlers and
// the pure dashboard packages.
//
// DashboardService owns the session state: it validates, decodes and
// normalizes uploads, applies filter and location changes through the
// dashboard reducer, broadcasts every new snapshot and answers read queries
// (summary, rows, top lists, geo, export) from an immutable snapshot.
//
// HealthService reports process and component health.
//
// Services take their dependencies through constructors and log with the
// injected *slog.Logger tagged with a component attribute.
package services
