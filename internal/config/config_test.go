package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadFile(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		file        string
		wantErr     string
		validateCfg func(*testing.T, *Config)
	}{
		{
			name: "defaults without file or env",
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
				assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
				assert.True(t, cfg.Security.RateLimit.Enabled)
				assert.Equal(t, 100.0, cfg.Security.RateLimit.RPS)
				assert.Equal(t, "info", cfg.Logging.Level)
				assert.Equal(t, "console", cfg.Logging.Output)
				assert.Equal(t, int64(32<<20), cfg.Upload.MaxBytes)
				assert.Equal(t, 5, cfg.Dashboard.TopN)
				assert.Equal(t, 100, cfg.Dashboard.DefaultPageSize)
				assert.Equal(t, "pdxpulse", cfg.Telemetry.ServiceName)
			},
		},
		{
			name: "file overrides defaults",
			file: `
server:
  port: 9090
dashboard:
  top_n: 10
logging:
  level: debug
  output: both
`,
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 9090, cfg.Server.Port)
				assert.Equal(t, 10, cfg.Dashboard.TopN)
				assert.Equal(t, "debug", cfg.Logging.Level)
				assert.Equal(t, "logs/pdxpulse.log", cfg.Logging.FilePath)
				// untouched sections keep their defaults
				assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
			},
		},
		{
			name: "env overrides file",
			env: map[string]string{
				"PDX_SERVER_PORT":              "7070",
				"PDX_UPLOAD_MAX_BYTES":         "1024",
				"PDX_SECURITY_ALLOWED_ORIGINS": "https://a.example,https://b.example",
				"PDX_WEBSOCKET_PING_PERIOD":    "5s",
			},
			file: "server:\n  port: 9090\n",
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 7070, cfg.Server.Port)
				assert.Equal(t, int64(1024), cfg.Upload.MaxBytes)
				assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Security.AllowedOrigins)
				assert.Equal(t, 5*time.Second, cfg.WebSocket.PingPeriod)
			},
		},
		{
			name:    "invalid port",
			env:     map[string]string{"PDX_SERVER_PORT": "70000"},
			wantErr: "invalid server port",
		},
		{
			name:    "malformed env value",
			env:     map[string]string{"PDX_DASHBOARD_TOP_N": "many"},
			wantErr: "failed to load config from env",
		},
		{
			name:    "negative top n",
			file:    "dashboard:\n  top_n: -1\n",
			wantErr: "top_n cannot be negative",
		},
		{
			name:    "page size above maximum",
			file:    "dashboard:\n  default_page_size: 5000\n",
			wantErr: "default page size",
		},
		{
			name:    "unknown logging output",
			file:    "logging:\n  output: syslog\n",
			wantErr: "invalid logging output",
		},
		{
			name:    "malformed yaml",
			file:    "server: [",
			wantErr: "failed to load config from file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := ""
			if tt.file != "" {
				path = writeConfig(t, tt.file)
			}

			cfg, err := LoadFile(path)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.validateCfg(t, cfg)
		})
	}
}

func TestLoadFile_MissingFile(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoad_UsesConfigFileEnv(t *testing.T) {
	t.Setenv(ConfigFileEnv, writeConfig(t, "server:\n  port: 6060\n"))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 6060, cfg.Server.Port)
}

func TestServerConfig_Addr(t *testing.T) {
	assert.Equal(t, ":8080", Default().Server.Addr())
	assert.Equal(t, "127.0.0.1:9000", ServerConfig{Host: "127.0.0.1", Port: 9000}.Addr())
}

func TestDefault_IsValid(t *testing.T) {
	assert.NoError(t, Default().validate())
}
