/*
Package monitoring provides Prometheus metrics for the notebook host.

Metrics live on a private registry so several hosts can coexist in one
process (tests in particular).

# Usage

	metrics := monitoring.NewMetrics()
	registry := interpreter.NewRegistry().WithMetrics(metrics)
	metrics.TrackStore(resources)

	router.Use(monitoring.Middleware(metrics))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
*/
package monitoring
