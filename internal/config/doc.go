// Package config loads the dashboard server configuration.
//
// # Configuration Sources
//
// Values are resolved in the following order of precedence:
//
//  1. Environment variables (highest priority)
//  2. YAML file named by PDX_CONFIG, or config.yaml / configs/config.yaml
//  3. Default() (lowest priority)
//
// # Environment Variables
//
// Variables are namespaced with PDX_ and follow the struct nesting:
//
//	PDX_SERVER_PORT=8080
//	PDX_LOGGING_LEVEL=debug
//	PDX_UPLOAD_MAX_BYTES=33554432
//	PDX_DASHBOARD_TOP_N=5
//	PDX_SECURITY_ALLOWED_ORIGINS=http://localhost:3000,https://pdx.example.com
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	srv := &http.Server{Addr: cfg.Server.Addr()}
package config
