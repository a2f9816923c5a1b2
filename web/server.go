// Package web serves the snapshot page and its refresh trigger.
package web

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mindsgn-studio/mission-to-mars/internal/model"
	"go.uber.org/zap"
)

//go:embed templates/index.html
var templateFS embed.FS

var indexTmpl = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// Snapshots is what the front end needs from the refresh service.
type Snapshots interface {
	Current(ctx context.Context) (*model.StoredSnapshot, error)
	Refresh(ctx context.Context) (*model.StoredSnapshot, error)
}

type Server struct {
	snapshots Snapshots
	logger    *zap.Logger
}

type indexData struct {
	Snapshot *model.StoredSnapshot
}

// NewServer returns the router for the front end.
func NewServer(snapshots Snapshots, logger *zap.Logger) http.Handler {
	s := &Server{snapshots: snapshots, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/", s.index)
	r.Get("/scrape", s.scrape)
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	return r
}

func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	snap, err := s.snapshots.Current(r.Context())
	if err != nil {
		s.logger.Error("load snapshot", zap.Error(err))
		http.Error(w, "could not load Mars data", http.StatusInternalServerError)
		return
	}

	// Render to a buffer so a template error never sends a half page.
	var buf bytes.Buffer
	if err := indexTmpl.Execute(&buf, indexData{Snapshot: snap}); err != nil {
		s.logger.Error("render index", zap.Error(err))
		http.Error(w, "could not render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (s *Server) scrape(w http.ResponseWriter, r *http.Request) {
	if _, err := s.snapshots.Refresh(r.Context()); err != nil {
		s.logger.Error("refresh failed", zap.Error(err))
		http.Error(w, "scrape failed: "+err.Error(), http.StatusBadGateway)
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("took", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())))
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
