package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/aretw0/aiforms"
	"github.com/aretw0/aiforms/internal/logging"
	"github.com/aretw0/aiforms/internal/presentation/graph"
	"github.com/aretw0/aiforms/pkg/domain"
	"github.com/aretw0/aiforms/pkg/runner"
	"github.com/aretw0/aiforms/pkg/session"
)

//go:generate go tool oapi-codegen -package http -generate types,chi-server,spec -o api.gen.go ../../../api/openapi.yaml

// Server exposes a session.Service over the JSON API described by
// api/openapi.yaml. It implements the generated ServerInterface.
type Server struct {
	Service *session.Service
	Streams *StreamManager
	Logger  *slog.Logger

	metrics http.Handler
}

// Option configures the handler.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = logger
	}
}

// WithMetrics mounts h at /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

var _ ServerInterface = (*Server)(nil)

// NewHandler creates the HTTP handler for svc.
func NewHandler(svc *session.Service, opts ...Option) http.Handler {
	server := &Server{
		Service: svc,
		Streams: NewStreamManager(),
		Logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(server)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	if server.metrics != nil {
		r.Method(http.MethodGet, "/metrics", server.metrics)
	}

	// Swagger UI
	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		spec, err := rawSpec()
		if err != nil {
			server.Logger.Error("Failed to load OpenAPI spec", "error", err)
			writeError(w, http.StatusInternalServerError, "failed to load spec")
			return
		}
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(spec)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(swaggerHTML))
	})

	handler := HandlerWithOptions(server, ChiServerOptions{
		BaseRouter: r,
		ErrorHandlerFunc: func(w http.ResponseWriter, r *http.Request, err error) {
			writeError(w, http.StatusBadRequest, err.Error())
		},
	})
	return enableCORS(handler)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
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
    <title>aiforms API Documentation</title>
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

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Health{Status: "ok"})
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Info{
		App:     "aiforms-http",
		Version: strings.TrimSpace(aiforms.Version),
		Forms:   s.Service.Catalog().Len(),
	})
}

// ListForms handles GET /forms.
func (s *Server) ListForms(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, FormList{Forms: s.Service.Catalog().Names()})
}

// GetForm handles GET /forms/{form}.
func (s *Server) GetForm(w http.ResponseWriter, r *http.Request, form FormName) {
	info, err := s.Service.Describe(form)
	if err != nil {
		s.fail(w, "Describe failed", err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

// StartSession handles POST /forms/{form}/sessions.
func (s *Server) StartSession(w http.ResponseWriter, r *http.Request, form FormName) {
	var body StartSessionJSONRequestBody
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			s.Logger.Warn("StartSession: invalid request body", "error", err)
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	var initial map[string]any
	if body.Context != nil {
		initial = *body.Context
	}

	snap, err := s.Service.Open(r.Context(), form, initial)
	if err != nil {
		s.fail(w, "Open failed", err)
		return
	}
	s.Logger.Info("session started", "session_id", snap.ID, "form", snap.Form)
	writeJSON(w, http.StatusCreated, snap)
}

// Answer handles POST /sessions/{id}/responses.
func (s *Server) Answer(w http.ResponseWriter, r *http.Request, id SessionID) {
	var body AnswerJSONRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.Logger.Warn("Answer: invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	answer, err := runner.SanitizeInput(body.Answer)
	if err != nil {
		s.Logger.Warn("Answer: input rejected", "error", err, "size", len(body.Answer))
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid input: %v", err))
		return
	}

	snap, err := s.Service.Answer(r.Context(), id, answer)
	if err != nil {
		s.fail(w, "Answer failed", err)
		return
	}

	if payload, err := json.Marshal(snap); err == nil {
		s.Streams.Broadcast(id, string(payload))
	}
	writeJSON(w, http.StatusOK, snap)
}

// GetSession handles GET /sessions/{id}.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request, id SessionID) {
	snap, err := s.Service.Get(r.Context(), id)
	if err != nil {
		s.fail(w, "Get failed", err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// GetSessionGraph handles GET /sessions/{id}/graph. It returns the form as a
// Mermaid flowchart with the collected and current fields highlighted.
func (s *Server) GetSessionGraph(w http.ResponseWriter, r *http.Request, id SessionID) {
	snap, err := s.Service.Get(r.Context(), id)
	if err != nil {
		s.fail(w, "Graph failed", err)
		return
	}
	info, err := s.Service.Describe(snap.Form)
	if err != nil {
		s.fail(w, "Graph failed", err)
		return
	}

	overlay := &graph.GraphOverlay{Collected: snap.CollectedFields, Current: snap.Field()}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, graph.GenerateMermaid(info.Fields, info.Order, overlay))
}

// DeleteSession handles DELETE /sessions/{id}.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request, id SessionID) {
	if err := s.Service.Close(r.Context(), id); err != nil {
		s.fail(w, "Delete failed", err)
		return
	}
	s.Streams.Close(id)
	w.WriteHeader(http.StatusNoContent)
}

// fail maps err to a status code and writes it.
func (s *Server) fail(w http.ResponseWriter, msg string, err error) {
	switch {
	case errors.Is(err, session.ErrFormNotFound), errors.Is(err, session.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrConfiguration):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		s.Logger.Error(msg, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, Error{Error: msg})
}
