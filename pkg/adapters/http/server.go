package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/worldforge"
	"github.com/aretw0/worldforge/pkg/domain"
	"github.com/aretw0/worldforge/pkg/export"
	"github.com/aretw0/worldforge/pkg/observability"
	"github.com/aretw0/worldforge/pkg/ports"
	"github.com/aretw0/worldforge/pkg/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/oapi-codegen/runtime"
)

var (
	errInvalidRequest  = errors.New("invalid request")
	errHistoryDisabled = errors.New("history is not enabled")
)

// Server exposes a Converter over HTTP.
type Server struct {
	Converter ports.Converter
	Streams   *StreamManager

	recorder *session.Recorder
	presets  ports.PresetLoader
	metrics  *observability.Metrics
	logger   *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithRecorder routes conversions through r so they are recorded, and
// enables the /v1/history endpoints.
func WithRecorder(r *session.Recorder) Option {
	return func(s *Server) {
		s.recorder = r
	}
}

// WithPresets enables preset lookup by name.
func WithPresets(l ports.PresetLoader) Option {
	return func(s *Server) {
		s.presets = l
	}
}

// WithMetrics mounts /metrics and keeps the history gauge current.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a Server for the converter.
func NewServer(converter ports.Converter, opts ...Option) *Server {
	s := &Server{
		Converter: converter,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Streams = NewStreamManager(s.logger)
	return s
}

// NewHandler creates a new HTTP handler for the converter.
func NewHandler(converter ports.Converter, opts ...Option) (http.Handler, error) {
	return NewServer(converter, opts...).Handler()
}

// Handler builds the router. Requests to documented routes are validated
// against the embedded OpenAPI document before they reach a handler.
func (s *Server) Handler() (http.Handler, error) {
	validate, err := requestValidator(func(w http.ResponseWriter, err error) {
		s.logger.Warn("Request rejected by OpenAPI validation", "err", err)
		s.writeError(w, fmt.Errorf("%w: %v", errInvalidRequest, err))
	})
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	// Swagger UI
	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		spec, err := rawSpec()
		if err != nil {
			http.Error(w, "Failed to load spec", http.StatusInternalServerError)
			s.logger.Error("Failed to load OpenAPI spec", "err", err)
			return
		}
		w.Write(spec)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(swaggerHTML))
	})
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}

	r.Group(func(r chi.Router) {
		r.Use(validate)

		r.Post("/v1/convert", s.Convert)
		r.Post("/v1/validate", s.Validate)
		r.Get("/v1/history", s.ListHistory)
		r.Delete("/v1/history", s.ClearHistory)
		r.Get("/v1/history/export", s.ExportHistory)
		r.Get("/v1/presets", s.ListPresets)
		r.Get("/v1/presets/{name}", s.GetPreset)
		r.Get("/v1/events", s.SubscribeEvents)
		r.Get("/health", s.GetHealth)
		r.Get("/info", s.GetInfo)
	})

	return enableCORS(r), nil
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>WorldForge API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

// Convert handles the POST /v1/convert request.
func (s *Server) Convert(w http.ResponseWriter, r *http.Request) {
	var body ConvertRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.logger.Warn("Convert: Invalid request body", "err", err)
		s.writeError(w, fmt.Errorf("%w: malformed body: %v", errInvalidRequest, err))
		return
	}

	dir, parent, err := s.resolveParent(r.Context(), body.Direction, body.Parent, body.Preset)
	if err != nil {
		s.writeError(w, err)
		return
	}

	req := domain.ConversionRequest{
		Direction: dir,
		Parent:    parent,
		Point:     body.Point,
		Precision: domain.DefaultPrecision,
	}
	if body.Precision != nil {
		req.Precision = *body.Precision
	}
	if err := domain.ValidatePrecision(req.Precision); err != nil {
		s.writeError(w, err)
		return
	}
	if err := domain.CheckBounds(req); err != nil {
		s.writeError(w, err)
		return
	}

	res, err := s.convert(r.Context(), req)
	if err != nil {
		s.logger.Debug("Convert: Rejected", "direction", req.Direction, "err", err)
		s.writeError(w, err)
		return
	}

	resp := newConvertResponse(req.Direction, res)
	if payload, err := json.Marshal(resp); err == nil {
		s.Streams.Broadcast(ConversionsTopic, string(payload))
	}
	s.refreshHistoryGauge(r.Context())

	writeJSON(w, http.StatusOK, resp, s.logger)
}

// Validate handles the POST /v1/validate request.
func (s *Server) Validate(w http.ResponseWriter, r *http.Request) {
	var body ValidateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.logger.Warn("Validate: Invalid request body", "err", err)
		s.writeError(w, fmt.Errorf("%w: malformed body: %v", errInvalidRequest, err))
		return
	}

	dir, parent, err := s.resolveParent(r.Context(), body.Direction, body.Parent, body.Preset)
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, s.Converter.Validate(r.Context(), parent, dir), s.logger)
}

// ListHistory handles the GET /v1/history request.
func (s *Server) ListHistory(w http.ResponseWriter, r *http.Request) {
	if s.recorder == nil {
		s.writeError(w, errHistoryDisabled)
		return
	}

	var limit *int
	if err := runtime.BindQueryParameter("form", true, false, "limit", r.URL.Query(), &limit); err != nil {
		s.writeError(w, fmt.Errorf("%w: limit: %v", errInvalidRequest, err))
		return
	}
	n := 0
	if limit != nil {
		n = *limit
	}

	entries, err := s.recorder.History(r.Context(), n)
	if err != nil {
		s.logger.Error("ListHistory failed", "err", err)
		s.writeError(w, err)
		return
	}
	if entries == nil {
		entries = []domain.HistoryEntry{}
	}
	writeJSON(w, http.StatusOK, HistoryResponse{Count: len(entries), Entries: entries}, s.logger)
}

// ClearHistory handles the DELETE /v1/history request.
func (s *Server) ClearHistory(w http.ResponseWriter, r *http.Request) {
	if s.recorder == nil {
		s.writeError(w, errHistoryDisabled)
		return
	}
	if err := s.recorder.Clear(r.Context()); err != nil {
		s.logger.Error("ClearHistory failed", "err", err)
		s.writeError(w, err)
		return
	}
	s.refreshHistoryGauge(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// ExportHistory handles the GET /v1/history/export request.
func (s *Server) ExportHistory(w http.ResponseWriter, r *http.Request) {
	if s.recorder == nil {
		s.writeError(w, errHistoryDisabled)
		return
	}
	entries, err := s.recorder.History(r.Context(), 0)
	if err != nil {
		s.logger.Error("ExportHistory failed", "err", err)
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="worldforge-history.csv"`)
	if err := export.WriteHistoryCSV(w, entries); err != nil {
		s.logger.Error("ExportHistory write failed", "err", err)
	}
}

// ListPresets handles the GET /v1/presets request.
func (s *Server) ListPresets(w http.ResponseWriter, r *http.Request) {
	presets := []domain.Preset{}
	if s.presets != nil {
		list, err := s.presets.ListPresets(r.Context())
		if err != nil {
			s.logger.Error("ListPresets failed", "err", err)
			s.writeError(w, err)
			return
		}
		presets = append(presets, list...)
	}
	writeJSON(w, http.StatusOK, presets, s.logger)
}

// GetPreset handles the GET /v1/presets/{name} request.
func (s *Server) GetPreset(w http.ResponseWriter, r *http.Request) {
	preset, err := s.lookupPreset(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, preset, s.logger)
}

// SubscribeEvents handles the GET /v1/events request (SSE).
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.logger.Error("SubscribeEvents: Streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, cancel := s.Streams.Subscribe(ConversionsTopic)
	defer cancel()
	s.logger.Info("SSE: Client subscribed", "topic", ConversionsTopic)

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.logger.Info("SSE: Client disconnected")
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: conversion\ndata: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, s.logger)
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if swagger, err := GetSwagger(); err == nil && swagger.Info != nil {
		apiVersion = swagger.Info.Version
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"app":         "worldforge-http",
		"version":     strings.TrimSpace(worldforge.Version),
		"api_version": apiVersion,
	}, s.logger)
}

// -- Helpers --

func (s *Server) convert(ctx context.Context, req domain.ConversionRequest) (domain.ConversionResult, error) {
	if s.recorder != nil {
		return s.recorder.Convert(ctx, req)
	}
	return s.Converter.Convert(ctx, req)
}

// resolveParent picks the parent transform from an inline value or a preset.
// An explicit direction wins over the preset's own.
func (s *Server) resolveParent(ctx context.Context, direction string, parent *domain.Transform, preset string) (domain.Direction, domain.Transform, error) {
	var (
		dir = domain.LocalToWorld
		t   domain.Transform
	)

	switch {
	case parent != nil && preset != "":
		return "", t, fmt.Errorf("%w: parent and preset are mutually exclusive", errInvalidRequest)
	case parent != nil:
		t = *parent
	case preset != "":
		p, err := s.lookupPreset(ctx, preset)
		if err != nil {
			return "", t, err
		}
		t = p.Transform
		if p.Direction != "" {
			dir = p.Direction
		}
	default:
		return "", t, fmt.Errorf("%w: parent or preset is required", errInvalidRequest)
	}

	if direction != "" {
		d, err := domain.ParseDirection(direction)
		if err != nil {
			return "", t, err
		}
		dir = d
	}
	return dir, t, nil
}

func (s *Server) lookupPreset(ctx context.Context, name string) (domain.Preset, error) {
	if s.presets == nil {
		return domain.Preset{}, fmt.Errorf("%w: %q", domain.ErrPresetNotFound, name)
	}
	return s.presets.GetPreset(ctx, name)
}

func (s *Server) refreshHistoryGauge(ctx context.Context) {
	if s.metrics == nil || s.recorder == nil {
		return
	}
	n, err := s.recorder.Store().Len(ctx)
	if err != nil {
		s.logger.Warn("Failed to read history size", "err", err)
		return
	}
	s.metrics.SetHistoryEntries(n)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status, kind := classify(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("Request failed", "status", status, "err", err)
	}
	writeJSON(w, status, ErrorResponse{Error: err.Error(), Kind: kind}, s.logger)
}

// classify maps an error to its HTTP status and machine-readable kind.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, errInvalidRequest):
		return http.StatusBadRequest, "invalid_request"
	case errors.Is(err, errHistoryDisabled):
		return http.StatusServiceUnavailable, "history_disabled"
	case errors.Is(err, domain.ErrInvalidPrecision),
		errors.Is(err, domain.ErrInvalidDirection),
		errors.Is(err, domain.ErrOutOfBounds):
		return http.StatusBadRequest, domain.ErrorKind(err)
	case errors.Is(err, domain.ErrPresetNotFound):
		return http.StatusNotFound, domain.ErrorKind(err)
	case errors.Is(err, domain.ErrDegenerateScale),
		errors.Is(err, domain.ErrDegenerateQuaternion):
		return http.StatusUnprocessableEntity, domain.ErrorKind(err)
	default:
		return http.StatusInternalServerError, domain.ErrorKind(err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Response encode failed", "err", err)
	}
}
