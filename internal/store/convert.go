package store

import (
	"github.com/jpalmerr/testuri"
)

// FromReport converts a completed poller cycle into its stored form.
func FromReport(report testuri.CycleReport) Cycle {
	targets := make([]TargetStatus, len(report.Results))
	for i, r := range report.Results {
		status := TargetStatus{
			URL:            r.URL,
			StatusCode:     r.StatusCode,
			ResponseTimeMs: r.Latency.Milliseconds(),
			CheckedAt:      r.CheckedAt,
		}
		if r.Err != nil {
			msg := r.Err.Error()
			status.Error = &msg
		}
		targets[i] = status
	}

	return Cycle{
		ID:         report.ID,
		StartedAt:  report.StartedAt,
		Report:     report.Path,
		DurationMs: report.Duration.Milliseconds(),
		Failures:   report.Failures(),
		Targets:    targets,
	}
}

// Recorder returns a cycle callback that records every completed cycle
// into st.
func Recorder(st Store) func(testuri.CycleReport) {
	return func(report testuri.CycleReport) {
		st.Record(FromReport(report))
	}
}
