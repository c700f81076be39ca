// Package server exposes the interpreters and the shared store over HTTP.
//
// Routes:
//   - GET /health
//   - GET /interpreters
//   - POST /interpreters/:name/run with {"text": "...", "paragraph_id": "..."}
//   - GET /resources, GET|PUT|DELETE /resources/:name
//   - GET /metrics
//
// Example Usage:
//
//	cfg, err := config.Load()
//	if err != nil {
//		return err
//	}
//	srv, err := server.New(ctx, cfg, logger)
//	if err != nil {
//		return err
//	}
//	defer srv.Close()
//	return srv.Run(ctx)
package server
