// Package api exposes the tkfmw pipeline over HTTP.
//
// The API mirrors the CLI: layer partitioning, tile position queries,
// cropping uploads, and crop sessions. Responses are JSON except for
// /v1/crop, which streams the cropped image. Errors carry the
// structured codes from pkg/errors:
//
//	{"error": {"code": "INVALID_RECT", "message": "..."}}
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/jiro4989/tkfmw/pkg/errors"
	"github.com/jiro4989/tkfmw/pkg/pipeline"
	"github.com/jiro4989/tkfmw/pkg/session"
)

// DefaultMaxUploadBytes caps multipart image uploads.
const DefaultMaxUploadBytes = 32 << 20

// Server handles HTTP requests for the toolkit.
type Server struct {
	runner    *pipeline.Runner
	sessions  session.Store
	logger    *log.Logger
	maxUpload int64
	ttl       time.Duration
}

// Option configures the server.
type Option func(*Server)

// WithMaxUpload caps the size of uploaded images in bytes.
func WithMaxUpload(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxUpload = n
		}
	}
}

// WithSessionTTL sets the TTL for sessions created via the API.
func WithSessionTTL(ttl time.Duration) Option {
	return func(s *Server) { s.ttl = ttl }
}

// NewServer creates a server. A nil store disables the session routes;
// a nil logger falls back to log.Default().
func NewServer(runner *pipeline.Runner, store session.Store, logger *log.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		runner:    runner,
		sessions:  store,
		logger:    logger,
		maxUpload: DefaultMaxUploadBytes,
		ttl:       session.DefaultTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the HTTP handler with all routes registered.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/layer", s.handleLayer)
		r.Post("/tilepos", s.handleTilePos)
		r.Post("/crop", s.handleCrop)

		if s.sessions != nil {
			r.Post("/sessions", s.handleCreateSession)
			r.Get("/sessions/{id}", s.handleGetSession)
			r.Delete("/sessions/{id}", s.handleDeleteSession)
		}
	})

	return r
}

// requestLogger logs each request with method, path, status, and timing.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start).Round(time.Microsecond))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeJSON writes v as a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps an error to the JSON envelope and an HTTP status.
func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, statusFor(code), errorResponse{
		Error: errorBody{
			Code:    string(code),
			Message: errors.UserMessage(err),
		},
	})
}

// statusFor maps error codes to HTTP status codes.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidRect, errors.ErrCodeInvalidGrid,
		errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidPath, errors.ErrCodeDecodeFailed:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound, errors.ErrCodeSessionNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
