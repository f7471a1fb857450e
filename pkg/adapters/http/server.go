package http

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/logging"
	"github.com/aretw0/automata/internal/presentation/graph"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/ports"
)

//go:embed openapi.yaml
var rawSpec []byte

// Spec returns the OpenAPI document served at /openapi.yaml.
func Spec() []byte {
	return append([]byte(nil), rawSpec...)
}

// RunRequest is the body of POST /runs.
type RunRequest struct {
	Machine string `json:"machine"`
	Input   string `json:"input"`
}

// Server exposes a RunService over HTTP.
type Server struct {
	Service ports.RunService
	Logger  *slog.Logger

	gatherer prometheus.Gatherer
}

// Option configures the handler.
type Option func(*Server)

// WithLogger configures the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.Logger = logger
		}
	}
}

// WithMetrics mounts /metrics for the given gatherer.
func WithMetrics(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// NewHandler creates the HTTP handler. Requests to documented routes are
// validated against the embedded OpenAPI document before they reach a handler.
func NewHandler(svc ports.RunService, opts ...Option) (http.Handler, error) {
	server := &Server{
		Service: svc,
		Logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(server)
	}

	validate, err := newValidator(rawSpec)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(enableCORS)

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		_, _ = w.Write(rawSpec)
	})
	if server.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(server.gatherer, promhttp.HandlerOpts{}))
	}

	r.Group(func(r chi.Router) {
		r.Use(validate.middleware(server.Logger))

		r.Get("/health", server.GetHealth)
		r.Get("/info", server.GetInfo)
		r.Get("/machines", server.ListMachines)
		r.Get("/machines/{id}", server.GetMachine)
		r.Get("/machines/{id}/graph", server.GetMachineGraph)
		r.Post("/runs", server.CreateRun)
		r.Get("/runs/{id}", server.GetRun)
	})
	return r, nil
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, s.Logger)
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"app":     "automata-http",
		"version": automata.Version,
	}, s.Logger)
}

// ListMachines handles the GET /machines request.
func (s *Server) ListMachines(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Service.Machines(r.Context())
	if err != nil {
		s.fail(w, "ListMachines", err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"machines": ids}, s.Logger)
}

// GetMachine handles the GET /machines/{id} request.
func (s *Server) GetMachine(w http.ResponseWriter, r *http.Request) {
	def, err := s.Service.Definition(r.Context(), pathParam(r, "id"))
	if err != nil {
		s.fail(w, "GetMachine", err)
		return
	}
	writeJSON(w, http.StatusOK, def, s.Logger)
}

// GetMachineGraph handles the GET /machines/{id}/graph request.
func (s *Server) GetMachineGraph(w http.ResponseWriter, r *http.Request) {
	def, err := s.Service.Definition(r.Context(), pathParam(r, "id"))
	if err != nil {
		s.fail(w, "GetMachineGraph", err)
		return
	}

	var overlay *graph.GraphOverlay
	if id := r.URL.Query().Get("report"); id != "" {
		report, err := s.Service.Report(r.Context(), id)
		if err != nil {
			s.fail(w, "GetMachineGraph", err)
			return
		}
		overlay = graph.OverlayFromReport(report)
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(graph.GenerateMermaid(def, overlay)))
}

// CreateRun handles the POST /runs request.
// Interrupted runs (step budget, client gone) are still stored and returned
// with halted=false.
func (s *Server) CreateRun(w http.ResponseWriter, r *http.Request) {
	var body RunRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", s.Logger)
		s.Logger.Warn("CreateRun: Invalid request body", "err", err)
		return
	}

	report, err := s.Service.Run(r.Context(), body.Machine, body.Input)
	if err != nil && report == nil {
		s.fail(w, "CreateRun", err)
		return
	}
	if err != nil {
		s.Logger.Info("CreateRun: run interrupted", "machine", body.Machine, "report", report.ID, "err", err)
	}
	w.Header().Set("Location", "/runs/"+report.ID)
	writeJSON(w, http.StatusCreated, report, s.Logger)
}

// GetRun handles the GET /runs/{id} request.
func (s *Server) GetRun(w http.ResponseWriter, r *http.Request) {
	report, err := s.Service.Report(r.Context(), pathParam(r, "id"))
	if err != nil {
		s.fail(w, "GetRun", err)
		return
	}
	writeJSON(w, http.StatusOK, report, s.Logger)
}

func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.Logger.Error(op+" failed", "err", err)
	} else {
		s.Logger.Debug(op+" rejected", "err", err, "status", status)
	}
	writeError(w, status, err.Error(), s.Logger)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrMachineNotFound), errors.Is(err, domain.ErrReportNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUnknownState),
		errors.Is(err, domain.ErrMissingMemory),
		errors.Is(err, domain.ErrUnknownMemory),
		errors.Is(err, domain.ErrMemoryKind),
		errors.Is(err, domain.ErrUnknownCommand),
		errors.Is(err, domain.ErrDuplicateState),
		errors.Is(err, domain.ErrNoStates):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func pathParam(r *http.Request, name string) string {
	raw := chi.URLParam(r, name)
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}

func writeJSON(w http.ResponseWriter, status int, v any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("response encode failed", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string, logger *slog.Logger) {
	writeJSON(w, status, map[string]string{"error": msg}, logger)
}

// ListenAndServe serves handler on addr until ctx is cancelled.
func ListenAndServe(ctx context.Context, addr string, handler http.Handler, logger *slog.Logger) error {
	srv := &http.Server{Addr: addr, Handler: handler}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
		logger.Info("http server shutting down")
		if err := srv.Shutdown(context.WithoutCancel(ctx)); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	}
}
