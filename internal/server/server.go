// Package server serves the single-page T6 generator UI and the JSON API
// behind it. Each page view owns a server-side session holding one
// generation controller.
package server

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Yates-Labs/t6post/internal/export"
	"github.com/Yates-Labs/t6post/internal/generation"
	"github.com/Yates-Labs/t6post/internal/llm"
	"github.com/Yates-Labs/t6post/internal/prompt"
)

//go:embed web/index.html
var indexHTML []byte

// maxRequestBody caps JSON request bodies.
const maxRequestBody = 64 << 10

// Server serves the generator page and one controller per browser session.
type Server struct {
	model    llm.LLM
	settings llm.Config
	logger   *slog.Logger
	store    *sessionStore

	sessionTTL  time.Duration
	maxSessions int

	mu  sync.Mutex
	srv *http.Server
}

// Option configures a Server.
type Option func(*Server)

// WithSessionTTL sets how long an untouched session is kept. Zero disables
// idle eviction.
func WithSessionTTL(d time.Duration) Option {
	return func(s *Server) { s.sessionTTL = d }
}

// WithMaxSessions caps the number of live sessions. Zero means no cap.
func WithMaxSessions(n int) Option {
	return func(s *Server) { s.maxSessions = n }
}

// New creates a server generating with model. settings is reported in
// exports and the health endpoint.
func New(model llm.LLM, settings llm.Config, logger *slog.Logger, opts ...Option) (*Server, error) {
	if model == nil {
		return nil, errors.New("llm is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		model:       model,
		settings:    settings,
		logger:      logger,
		sessionTTL:  DefaultSessionTTL,
		maxSessions: DefaultMaxSessions,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.store = newStore(s.sessionTTL, s.maxSessions)
	return s, nil
}

// ListenAndServe serves Routes on addr until Shutdown is called.
func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      2 * time.Minute,
		IdleTimeout:       2 * time.Minute,
	}
	s.mu.Lock()
	s.srv = srv
	s.mu.Unlock()

	done := make(chan struct{})
	defer close(done)
	go s.evictLoop(done)

	return srv.ListenAndServe()
}

// evictLoop drops idle sessions periodically until done is closed.
func (s *Server) evictLoop(done <-chan struct{}) {
	if s.sessionTTL <= 0 {
		return
	}
	ticker := time.NewTicker(max(s.sessionTTL/2, time.Second))
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if n := s.store.evictIdle(); n > 0 {
				s.logger.Debug("evicted idle sessions", "count", n, "remaining", s.store.len())
			}
		case <-done:
			return
		}
	}
}

// Shutdown gracefully stops a server started with ListenAndServe.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	srv := s.srv
	s.mu.Unlock()
	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}

// Routes returns the API and page handler wrapped in request logging.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /api/tiers", s.handleTiers)

	mux.HandleFunc("POST /api/sessions", s.handleSessionCreate)
	mux.HandleFunc("GET /api/sessions/{id}", s.handleSessionGet)
	mux.HandleFunc("DELETE /api/sessions/{id}", s.handleSessionDelete)
	mux.HandleFunc("POST /api/sessions/{id}/generate", s.handleGenerate)
	mux.HandleFunc("POST /api/sessions/{id}/clear", s.handleClear)
	mux.HandleFunc("GET /api/sessions/{id}/export", s.handleExport)

	mux.HandleFunc("GET /{$}", s.handleIndex)

	return logMiddleware(s.logger, mux)
}

// --- Handlers ---

type sessionResp struct {
	SessionID string `json:"session_id"`
	generation.State
}

type generateReq struct {
	Topic string `json:"topic"`
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(indexHTML)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":       true,
		"time":     time.Now().UTC().Format(time.RFC3339Nano),
		"provider": s.settings.Provider,
		"model":    s.settings.Model,
		"sessions": s.store.len(),
	})
}

func (s *Server) handleTiers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"tiers": prompt.Tiers()})
}

func (s *Server) handleSessionCreate(w http.ResponseWriter, r *http.Request) {
	sess := &session{}
	ctrl, err := generation.NewController(s.model, generation.WithLogger(s.logger))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	sess.ctrl = ctrl
	id, err := s.store.add(sess)
	if err != nil {
		s.logger.Warn("session rejected", "error", err, "sessions", s.store.len())
		writeError(w, http.StatusServiceUnavailable, err)
		return
	}

	writeJSON(w, http.StatusCreated, sessionResp{SessionID: id, State: ctrl.State()})
}

func (s *Server) handleSessionGet(w http.ResponseWriter, r *http.Request) {
	id, sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sessionResp{SessionID: id, State: sess.ctrl.State()})
}

func (s *Server) handleSessionDelete(w http.ResponseWriter, r *http.Request) {
	if !s.store.remove(r.PathValue("id")) {
		writeError(w, http.StatusNotFound, errors.New("session not found"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	id, sess, ok := s.lookup(w, r)
	if !ok {
		return
	}

	var req generateReq
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		status := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		writeError(w, status, fmt.Errorf("invalid request body: %w", err))
		return
	}

	_, err := sess.ctrl.Generate(r.Context(), req.Topic)
	if err == nil {
		sess.markGenerated(req.Topic, time.Now())
	}

	writeJSON(w, generateStatus(err), sessionResp{SessionID: id, State: sess.ctrl.State()})
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	id, sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	sess.ctrl.ClearResult()
	writeJSON(w, http.StatusOK, sessionResp{SessionID: id, State: sess.ctrl.State()})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	_, sess, ok := s.lookup(w, r)
	if !ok {
		return
	}

	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	state := sess.ctrl.State()
	if state.Result == "" {
		writeError(w, http.StatusNotFound, generation.ErrNoResult)
		return
	}

	// The topic field may have been edited since; export the one the result answers.
	topic, generatedAt := sess.lastGenerated()
	post := export.Post{
		Topic:       topic,
		Text:        state.Result,
		Provider:    s.settings.Provider,
		Model:       s.settings.Model,
		GeneratedAt: generatedAt,
	}
	w.Header().Set("Content-Type", format.ContentType())
	if err := export.WritePost(post, string(format), w); err != nil {
		s.logger.Error("export failed", "format", format, "error", err)
	}
}

// --- Helpers ---

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (string, *session, bool) {
	id := r.PathValue("id")
	sess, ok := s.store.get(id)
	if !ok {
		writeError(w, http.StatusNotFound, errors.New("session not found"))
		return "", nil, false
	}
	return id, sess, true
}

// generateStatus maps a Generate outcome to an HTTP status. The body always
// carries the session state so the page can render the error banner.
func generateStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, generation.ErrEmptyTopic):
		return http.StatusBadRequest
	case errors.Is(err, generation.ErrInFlight):
		return http.StatusConflict
	default:
		return http.StatusBadGateway
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]any{"error": err.Error()})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func logMiddleware(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		logger.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
			"request_id", requestID,
		)
	})
}
