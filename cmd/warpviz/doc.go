// Command warpviz hosts the WarpScript and QuantumViz interpreters.
//
// Usage:
//
//	# Serve the host API on :8000 against a local Warp 10
//	warpviz serve --quantumviz-url https://viz.example.com/quantumviz/latest
//
//	# Run a WarpScript file once and print the stack
//	warpviz exec --warp10-url https://warp.example.com/api/v0 script.mc2
//
// Environment variables (PORT, HOST, WARP10_URL, QUANTUMVIZ_URL, LOG_LEVEL,
// LOG_DEV, ...) provide the defaults; flags override them.
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
