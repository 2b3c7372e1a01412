// Package http exposes the modifyTalkerMessage service, health and metrics
// over HTTP, and provides a client for calling the service.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/nivir/beginner-tutorials/internal/domain"
	"github.com/nivir/beginner-tutorials/internal/ports"
)

const (
	// ModifyPath is the route of the message mutation service.
	ModifyPath = "/" + domain.ModifyServiceName
	// HealthPath reports node identity and state.
	HealthPath = "/healthz"
	// MetricsPath serves Prometheus metrics.
	MetricsPath = "/metrics"
)

// Mutator replaces the talker's message.
type Mutator interface {
	Modify(ctx context.Context, req domain.ModifyRequest) domain.ModifyResponse
}

// Health is the body of GET /healthz.
type Health struct {
	Node      string `json:"node"`
	ID        string `json:"id"`
	State     string `json:"state"`
	Sequence  uint64 `json:"sequence"`
	Frequency int    `json:"frequency"`
}

// HandlerConfig wires the routes. Health and Metrics are optional.
type HandlerConfig struct {
	Mutator Mutator
	Health  func() Health
	Metrics http.Handler
	Logger  ports.Logger
}

type modifyRequest struct {
	InputStr string `json:"inputStr"`
}

type modifyResponse struct {
	ModifiedStr string `json:"modifiedStr"`
}

// NewHandler creates the HTTP handler for a talker node.
func NewHandler(cfg HandlerConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Post(ModifyPath, func(w http.ResponseWriter, r *http.Request) {
		var body modifyRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		resp := cfg.Mutator.Modify(r.Context(), domain.ModifyRequest{Input: body.InputStr})
		writeJSON(w, cfg.Logger, modifyResponse{ModifiedStr: resp.Modified})
	})

	if cfg.Health != nil {
		r.Get(HealthPath, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, cfg.Logger, cfg.Health())
		})
	}

	if cfg.Metrics != nil {
		r.Method(http.MethodGet, MetricsPath, cfg.Metrics)
	}

	return r
}

func writeJSON(w http.ResponseWriter, logger ports.Logger, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil && logger != nil {
		logger.Warn("failed to encode response", ports.Err(err))
	}
}

// Server serves a handler until its context is canceled.
type Server struct {
	srv             *http.Server
	logger          ports.Logger
	shutdownTimeout time.Duration
}

// NewServer creates a server for addr.
func NewServer(addr string, handler http.Handler, logger ports.Logger, shutdownTimeout time.Duration) *Server {
	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger:          logger,
		shutdownTimeout: shutdownTimeout,
	}
}

// Run listens on the configured address and serves until ctx is canceled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is canceled, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.srv.Serve(ln)
	}()

	s.logger.Info("service listening", ports.String("addr", ln.Addr().String()))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
