package services

import (
	"context"
	"log/slog"
	"runtime"
	"strconv"
	"time"

	"pdxpulse/pkg/contracts"
)

// ClientCounter reports connected websocket clients.
type ClientCounter interface {
	ClientCount() int
}

// HealthService provides health check functionality
type HealthService struct {
	version   string
	clients   ClientCounter
	dashboard *DashboardService
	startTime time.Time
	logger    *slog.Logger
}

// HealthStatus represents the health status response
type HealthStatus struct {
	Status    string                   `json:"status"`
	Timestamp time.Time                `json:"timestamp"`
	Version   string                   `json:"version"`
	Uptime    string                   `json:"uptime"`
	Runtime   map[string]interface{}   `json:"runtime,omitempty"`
	Services  map[string]ServiceHealth `json:"services,omitempty"`
}

// ServiceHealth represents individual service health
type ServiceHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// NewHealthService creates a health service. clients and dashboard may be nil.
func NewHealthService(version string, clients ClientCounter, dashboard *DashboardService, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}
	if version == "" {
		version = contracts.Version
	}
	return &HealthService{
		version:   version,
		clients:   clients,
		dashboard: dashboard,
		startTime: time.Now(),
		logger:    logger.With(slog.String("component", "health_service")),
	}
}

// HealthCheck reports the process and its components. The service is "ok"
// without a dataset; an empty session is a valid state.
func (hs *HealthService) HealthCheck(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:    "ok",
		Timestamp: time.Now().UTC(),
		Version:   hs.version,
		Uptime:    time.Since(hs.startTime).Round(time.Second).String(),
		Runtime: map[string]interface{}{
			"go_version": runtime.Version(),
			"goroutines": runtime.NumGoroutine(),
		},
		Services: map[string]ServiceHealth{
			"websocket": hs.checkWebSocketHealth(),
			"dataset":   hs.checkDatasetHealth(),
		},
	}

	for _, s := range status.Services {
		if s.Status == "down" {
			status.Status = "degraded"
		}
	}

	hs.logger.DebugContext(ctx, "Health check completed", slog.String("status", status.Status))
	return status
}

// Version returns version information
func (hs *HealthService) Version() contracts.VersionInfo {
	info := contracts.GetVersionInfo()
	info.Version = hs.version
	return info
}

func (hs *HealthService) checkWebSocketHealth() ServiceHealth {
	if hs.clients == nil {
		return ServiceHealth{Status: "down", Message: "websocket hub not configured"}
	}
	return ServiceHealth{Status: "up", Message: plural(hs.clients.ClientCount(), "client")}
}

func (hs *HealthService) checkDatasetHealth() ServiceHealth {
	if hs.dashboard == nil {
		return ServiceHealth{Status: "down", Message: "dashboard service not configured"}
	}
	snap := hs.dashboard.Snapshot()
	if !snap.Loaded() {
		return ServiceHealth{Status: "up", Message: "no dataset loaded"}
	}
	return ServiceHealth{Status: "up", Message: snap.Dataset.FileName + ": " + plural(len(snap.Dataset.Rows), "row")}
}

func plural(n int, noun string) string {
	s := noun
	if n != 1 {
		s += "s"
	}
	return strconv.Itoa(n) + " " + s
}
