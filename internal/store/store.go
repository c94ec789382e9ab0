package store

import "time"

// TargetStatus is the latest known outcome for one target.
//
// It is the JSON representation served by the ops server and is decoupled
// from the poller's own result types.
type TargetStatus struct {
	// URL is the target as configured, including empty or malformed entries.
	URL string `json:"url"`

	// StatusCode is the HTTP status received, or 0 when the check failed.
	StatusCode int `json:"status_code"`

	// ResponseTimeMs is the request latency in milliseconds.
	ResponseTimeMs int64 `json:"response_time_ms"`

	// CheckedAt is when the check finished.
	CheckedAt time.Time `json:"checked_at"`

	// Error holds the failure description. nil means a response was received,
	// whatever its status code.
	Error *string `json:"error"`
}

// Cycle summarises one completed polling cycle.
type Cycle struct {
	ID         string         `json:"id"`
	StartedAt  time.Time      `json:"started_at"`
	Report     string         `json:"report"`
	DurationMs int64          `json:"duration_ms"`
	Failures   int            `json:"failures"`
	Targets    []TargetStatus `json:"targets"`
}

// Store keeps the most recent cycle for the ops server.
//
// Implementations must be safe for concurrent use: the poller records from
// its run loop while HTTP handlers read.
type Store interface {
	// Record replaces the stored cycle.
	Record(cycle Cycle)

	// Last returns the most recent cycle, or false if none has completed.
	// The returned value is a copy.
	Last() (Cycle, bool)
}
