// Package shared holds helpers used across the dashboard packages that do not
// belong to any single layer.
//
// The testutil subpackage provides a capturing slog handler and PDX fixtures
// (a small CSV export and its expected figures) so that the decoder, the
// service and the HTTP tests all exercise the same data.
package shared
