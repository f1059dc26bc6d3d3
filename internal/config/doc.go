// Package config handles configuration loading for horizon-portal.
//
// # Overview
//
// Configuration is loaded from YAML files with environment variable expansion.
// The package provides validation and sensible defaults; Default() returns a
// demo-mode configuration used when no file is present.
//
// # Configuration File
//
// Default locations (in order):
//
//  1. Path from HORIZON_CONFIG environment variable
//  2. ./config.yaml (current directory)
//  3. ~/.config/horizon/portal.yaml
//
// # Format
//
//	server:
//	  http_addr: ":8080"
//	database:
//	  path: "horizon.db"
//	auth:
//	  jwt_secret: "${HORIZON_JWT_SECRET}"
//	  token_ttl: "24h"
//	  demo_mode: false
//	logging:
//	  level: "info"
//	metrics:
//	  enabled: true
//	  path: "/metrics"
package config
