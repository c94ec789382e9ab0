package testuri

import (
	"strconv"
	"strings"
	"time"
)

// CheckResult holds the outcome of checking a single target.
//
// A CheckResult either carries the HTTP status code of a received response
// or an error describing why no response was received. Any response counts
// as reachable: a 500 is recorded as such, not as an error.
type CheckResult struct {
	// URL is the target exactly as configured.
	URL string

	// StatusCode is the HTTP status code returned by the target.
	// Zero if the request failed before receiving a response.
	StatusCode int

	// Err describes the failure (timeout, DNS, connection refused, TLS,
	// malformed URL, ...). nil when a response was received.
	Err error

	// Latency is the time taken to complete the HTTP request.
	Latency time.Duration

	// CheckedAt is the timestamp when the check finished.
	CheckedAt time.Time
}

// OK reports whether a response was received.
func (r CheckResult) OK() bool {
	return r.Err == nil
}

// Line renders the result as it appears in a report file, without the
// trailing newline:
//
//	<url> -> <status_code>
//	<url> -> ERROR: <error description>
//
// Line breaks inside the error description are folded into spaces so a
// result always occupies exactly one line.
func (r CheckResult) Line() string {
	if r.Err != nil {
		return r.URL + " -> ERROR: " + singleLine(r.Err.Error())
	}
	return r.URL + " -> " + strconv.Itoa(r.StatusCode)
}

// String implements fmt.Stringer.
func (r CheckResult) String() string {
	return r.Line()
}

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

func singleLine(s string) string {
	return lineBreaks.Replace(s)
}

// CycleReport summarises one completed cycle.
type CycleReport struct {
	// ID uniquely identifies the cycle in logs.
	ID string

	// StartedAt is the clock reading the report file name was derived from.
	StartedAt time.Time

	// Path is the report file written for this cycle.
	Path string

	// Results holds one entry per target, in target order.
	Results []CheckResult

	// Duration is the wall time the cycle took, excluding the pause after it.
	Duration time.Duration
}

// Failures returns the number of targets that produced an ERROR line.
func (c CycleReport) Failures() int {
	n := 0
	for _, r := range c.Results {
		if r.Err != nil {
			n++
		}
	}
	return n
}
