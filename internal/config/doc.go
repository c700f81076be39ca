// Package config provides 12-factor configuration for the notebook host.
//
// Configuration is loaded from environment variables with sensible defaults.
// CLI flags can override environment variables.
//
// Configuration Sections:
//   - Server: HTTP server settings (port, host, CORS origins)
//   - Warp10: Remote engine base URL and client side rate limit
//   - QuantumViz: Widget asset base URL
//   - Logging: Log level and output format
//
// Example Usage:
//
//	cfg, err := config.Load()
//	if err != nil {
//		return err
//	}
//	fmt.Printf("Server running on %s\n", cfg.Server.Addr())
//
// Environment Variables:
//   - PORT, HOST, CORS_ORIGINS
//   - WARP10_URL, WARP10_RATE_LIMIT_RPS, QUANTUMVIZ_URL
//   - LOG_LEVEL, LOG_DEV
package config
