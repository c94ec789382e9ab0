package poller

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"
)

// connection pooling limits; checks are sequential so a small pool is plenty
const (
	defaultMaxIdleConns        = 20
	defaultMaxIdleConnsPerHost = 2
	defaultIdleConnTimeout     = 90 * time.Second
)

// Response holds the outcome of a single check made by [Client].
type Response struct {
	// StatusCode is the HTTP status code (e.g., 200, 404, 500).
	// Zero if the request failed before receiving a response.
	StatusCode int

	// Latency is the total time taken for the request.
	Latency time.Duration

	// Error contains any error that occurred during the request.
	// nil indicates a response was received, whatever its status code.
	Error error
}

// Client is an HTTP client wrapper for reachability checks.
//
// Client uses per-request timeouts via context rather than a global timeout.
// Only the status line is of interest: response bodies are closed unread.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a new checking [Client].
//
// Redirects follow the net/http default policy. Timeouts are applied
// per-request in [Client.Check], not as a global client timeout.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        defaultMaxIdleConns,
				MaxIdleConnsPerHost: defaultMaxIdleConnsPerHost,
				IdleConnTimeout:     defaultIdleConnTimeout,
			},
		},
	}
}

// Check performs a GET against url and returns a structured [Response].
//
// Check always returns a Response; errors are captured in the Error field
// rather than returned separately. Requests that exceed timeout yield an
// error whose text starts with "timeout after".
func (c *Client) Check(ctx context.Context, url string, timeout time.Duration) Response {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Response{
			Latency: time.Since(start),
			Error:   fmt.Errorf("invalid request: %w", err),
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Response{
			Latency: time.Since(start),
			Error:   describeError(err, timeout),
		}
	}
	_ = resp.Body.Close()

	return Response{
		StatusCode: resp.StatusCode,
		Latency:    time.Since(start),
	}
}

// describeError marks deadline failures so report lines say "timeout".
// Parent cancellation is left as-is.
func describeError(err error, timeout time.Duration) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &TimeoutError{After: timeout, Err: err}
	}
	return err
}

// TimeoutError reports a check that did not complete within its timeout.
type TimeoutError struct {
	After time.Duration
	Err   error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("timeout after %s: %v", e.After, e.Err)
}

func (e *TimeoutError) Unwrap() error { return e.Err }

// Timeout implements net.Error.
func (e *TimeoutError) Timeout() bool { return true }

// Temporary implements net.Error.
func (e *TimeoutError) Temporary() bool { return true }

// Close closes all idle connections in the client's connection pool.
//
// Safe to call multiple times and on a nil client. After Close, the client
// remains usable but new connections will be established as needed.
func (c *Client) Close() {
	if c == nil || c.httpClient == nil {
		return
	}
	if transport, ok := c.httpClient.Transport.(*http.Transport); ok {
		transport.CloseIdleConnections()
	}
}
