package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/sciforge/navbuilder/internal/history"
	"github.com/sciforge/navbuilder/internal/logfields"
	"github.com/sciforge/navbuilder/internal/version"
)

// Server serves the rendered site plus status, health and metrics endpoints.
type Server struct {
	siteDir string
	store   *history.Store // optional
	httpSrv *http.Server
	addr    string
}

// New creates a preview server for the given rendered site directory.
// store may be nil; /api/status then reports no runs.
func New(port int, siteDir string, store *history.Store) *Server {
	s := &Server{
		siteDir: siteDir,
		store:   store,
		addr:    fmt.Sprintf(":%d", port),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/api/status", s.handleStatus)
	mux.Handle("/metrics", metricsHandler())
	mux.Handle("/", http.FileServer(http.Dir(siteDir)))

	s.httpSrv = &http.Server{
		Addr:              s.addr,
		Handler:           withLogging(mux),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Start begins listening. It returns once the listener is bound; serving
// continues until Stop or ctx cancellation.
func (s *Server) Start(ctx context.Context) error {
	registerBaseCollectors()

	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.addr, err)
	}
	s.addr = ln.Addr().String()

	go func() {
		if err := s.httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Preview server failed", logfields.Error(err))
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.httpSrv.Shutdown(shutdownCtx)
	}()

	slog.Info("Preview server listening", slog.String("addr", s.addr), logfields.Path(s.siteDir))
	return nil
}

// Addr returns the bound address (useful when started on port 0).
func (s *Server) Addr() string { return s.addr }

// Stop shuts the server down gracefully.
func (s *Server) Stop(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status":  "ok",
		"version": version.Version,
	})
}

type statusResponse struct {
	Version string        `json:"version"`
	LastRun *history.Run  `json:"last_run,omitempty"`
	Recent  []history.Run `json:"recent,omitempty"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	resp := statusResponse{Version: version.Version}
	if s.store != nil {
		if last, err := s.store.Last(r.Context()); err == nil {
			resp.LastRun = &last
		}
		if recent, err := s.store.Recent(r.Context(), 10); err == nil {
			resp.Recent = recent
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Warn("Failed to encode status response", logfields.Error(err))
	}
}
