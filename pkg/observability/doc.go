/*
Package observability provides tools for monitoring the Waypoint controller.

It turns controller lifecycle hooks into Prometheus metrics and structured
log lines. Combine them with domain.Merge:

	metrics := observability.NewMetrics(prometheus.DefaultRegisterer)
	hooks := domain.Merge(metrics.Hooks(), observability.LogHooks(logger))
*/
package observability
