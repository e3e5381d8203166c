// Package middleware provides HTTP middleware for isla servers.
//
// Two middlewares are included:
//
//   - Metrics: Prometheus request counters, in-flight gauge and duration
//     histograms, labeled by method, route pattern and status class.
//   - OTel: OpenTelemetry spans per request with method, route and status
//     attributes.
//
// Both follow the functional-option pattern:
//
//	r.Use(middleware.Metrics(
//	    middleware.WithNamespace("myapp"),
//	))
//	r.Use(middleware.OTel(
//	    middleware.WithTracerName("myapp"),
//	))
package middleware
