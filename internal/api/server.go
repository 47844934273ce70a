// Package api implements the docweave HTTP API.
//
// The API exposes the resolution pipeline over HTTP so non-CLI context
// construction pipelines can request renders. The server is sandboxed to
// one root boundary configured at startup; request payloads choose the
// root document and mode but can never move the boundary.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/docweave/docweave/pkg/errors"
	"github.com/docweave/docweave/pkg/pipeline"
)

// Server serves render requests for a single root boundary.
type Server struct {
	runner   *pipeline.Runner
	boundary string
	logger   *log.Logger
}

// NewServer creates a server running the pipeline within boundary.
func NewServer(runner *pipeline.Runner, boundary string, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, boundary: boundary, logger: logger}
}

// Router builds the HTTP route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", s.handleHealth)
	r.Post("/api/render", s.handleRender)
	return r
}

// renderRequest is the payload of POST /api/render.
type renderRequest struct {
	Root    string `json:"root"`
	Mode    string `json:"mode,omitempty"`
	Refresh bool   `json:"refresh,omitempty"`
}

// errorResponse is the shape of all error replies.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Code:    string(errors.ErrCodeInvalidPath),
			Message: "invalid request body",
		})
		return
	}

	result, err := s.runner.Execute(r.Context(), pipeline.Options{
		Root:     req.Root,
		Mode:     req.Mode,
		Boundary: s.boundary,
		Refresh:  req.Refresh,
		Logger:   s.logger,
	})
	if err != nil {
		writeJSON(w, statusFor(err), errorResponse{
			Code:    string(errors.GetCode(err)),
			Message: errors.UserMessage(err),
		})
		return
	}

	s.logger.Info("render served",
		"run_id", result.RunID,
		"root", req.Root,
		"mode", req.Mode,
		"diagnostics", len(result.Diagnostics))
	writeJSON(w, http.StatusOK, result)
}

// statusFor maps pipeline error codes to HTTP status codes.
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidMode, errors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case errors.ErrCodeRootUnreadable:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
