// Package server provides the optional operator HTTP listener.
//
// It exposes Prometheus metrics at "/metrics", a liveness summary of the last
// completed cycle at "/healthz" and that cycle's per-target results at
// "/api/status". None of these replace the report files.
//
// The server supports graceful shutdown via context cancellation, with a
// 5-second timeout for in-flight requests.
package server
