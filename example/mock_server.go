package main

import (
	"log/slog"
	"net/http"
	"sync"
	"time"
)

// StartMockTargetServer runs a set of targets with known behaviour:
//
//	/ok      always 200
//	/missing always 404
//	/flaky   cycles 200, 503, 500 on successive requests
//	/slow    answers after 7s, past the default 5s request timeout
//
// Call this in a goroutine before starting the poller.
func StartMockTargetServer(addr string) {
	var (
		mu       sync.Mutex
		requests int
	)
	flakyCodes := []int{http.StatusOK, http.StatusServiceUnavailable, http.StatusInternalServerError}

	mux := http.NewServeMux()
	mux.HandleFunc("/ok", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/missing", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	mux.HandleFunc("/flaky", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		code := flakyCodes[requests%len(flakyCodes)]
		requests++
		mu.Unlock()

		slog.Info("flaky target answered", "status_code", code)
		w.WriteHeader(code)
	})
	mux.HandleFunc("/slow", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(7 * time.Second):
			w.WriteHeader(http.StatusOK)
		case <-r.Context().Done():
		}
	})

	if err := http.ListenAndServe(addr, mux); err != nil {
		slog.Error("mock server error", "error", err)
	}
}
