package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jpalmerr/testuri/internal/store"
)

// shutdownTimeout bounds how long in-flight requests get after the context
// is cancelled.
const shutdownTimeout = 5 * time.Second

// Server is the optional operator HTTP listener.
//
// Server provides three endpoints:
//   - GET /metrics: Prometheus exposition for the configured gatherer
//   - GET /healthz: summary of the last completed cycle
//   - GET /api/status: per-target results of the last completed cycle
type Server struct {
	store      store.Store
	gatherer   prometheus.Gatherer
	port       int
	httpServer *http.Server
	listener   net.Listener
	logger     *slog.Logger
}

// health is the /healthz body.
type health struct {
	Status    string     `json:"status"`
	CycleID   string     `json:"cycle_id,omitempty"`
	StartedAt *time.Time `json:"started_at,omitempty"`
	Report    string     `json:"report,omitempty"`
	Targets   int        `json:"targets"`
	Failures  int        `json:"failures"`
}

// NewServer creates a new ops [Server].
//
// Parameters:
//   - st: Store holding the last completed cycle
//   - gatherer: metrics source for /metrics (nil disables the route)
//   - port: TCP port to listen on; 0 lets the OS pick one
//   - logger: Logger for server events
//
// The server is not started until [Server.Start] is called.
func NewServer(st store.Store, gatherer prometheus.Gatherer, port int, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		store:    st,
		gatherer: gatherer,
		port:     port,
		logger:   logger,
	}
}

// Handler returns the server's routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/api/status", s.handleStatus)
	if s.gatherer != nil {
		mux.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{
			ErrorLog: slog.NewLogLogger(s.logger.Handler(), slog.LevelError),
		}))
	}
	return mux
}

// Start begins serving HTTP requests in a background goroutine.
//
// Start returns once the listener is bound, so a port conflict is reported
// to the caller rather than logged from the goroutine. Cancelling ctx shuts
// the server down with a 5-second grace period.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to bind to port %d: %w", s.port, err)
	}
	s.listener = ln

	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	s.logger.Info("ops server listening", "addr", ln.Addr().String())

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.logger.Error("http server error", "error", err)
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("http server shutdown error", "error", err)
		}
	}()

	return nil
}

// Addr returns the bound address, or "" before Start succeeds.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// handleHealth reports the last cycle; 503 until one has completed.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	cycle, ok := s.store.Last()
	if !ok {
		s.writeJSON(w, http.StatusServiceUnavailable, health{Status: "starting"})
		return
	}

	s.writeJSON(w, http.StatusOK, health{
		Status:    "ok",
		CycleID:   cycle.ID,
		StartedAt: &cycle.StartedAt,
		Report:    cycle.Report,
		Targets:   len(cycle.Targets),
		Failures:  cycle.Failures,
	})
}

// handleStatus returns the last cycle with per-target results.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	cycle, ok := s.store.Last()
	if !ok {
		http.Error(w, "No completed cycle yet", http.StatusServiceUnavailable)
		return
	}

	s.writeJSON(w, http.StatusOK, cycle)
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}
