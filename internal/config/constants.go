package config

import "time"

// Application constants
const (
	AppName    = "PDX Pulse"
	AppVersion = "1.0.0"

	// EnvPrefix namespaces every environment variable, e.g. PDX_SERVER_PORT.
	EnvPrefix = "PDX"
	// ConfigFileEnv names a YAML file that overrides the search locations.
	ConfigFileEnv = "PDX_CONFIG"

	DefaultPort            = 8080
	DefaultShutdownTimeout = 30 * time.Second

	DefaultMaxUploadBytes = 32 << 20
	DefaultTopN           = 5
	DefaultPageSize       = 100
	MaxPageSize           = 1000

	WebSocketPingPeriod = 30 * time.Second
	WebSocketPongWait   = 60 * time.Second
	WebSocketWriteWait  = 10 * time.Second

	APIBasePath       = "/api"
	WebSocketEndpoint = "/ws"
	HealthEndpoint    = "/healthz"
	MetricsEndpoint   = "/metrics"
)
