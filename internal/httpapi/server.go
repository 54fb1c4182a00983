// Package httpapi exposes the health report over HTTP for serve mode. The
// report is either computed per request or, when a refresh interval is set,
// recomputed in the background and served from a cache.
package httpapi

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/hamed0406/hostcheck/internal/domain"
	"github.com/hamed0406/hostcheck/internal/report"
)

// BuildFunc runs the probe battery once and renders the report.
type BuildFunc func(ctx context.Context) report.Report

type Server struct {
	Logger *zap.Logger
	Build  BuildFunc

	mu     sync.RWMutex
	cached *report.Report
}

func NewServer(logger *zap.Logger, build BuildFunc) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{Logger: logger, Build: build}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.AllowAll().Handler)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/api/report", s.handleReport)

	return r
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	rep := s.current(r.Context())

	b, err := rep.JSON()
	if err != nil {
		http.Error(w, "render error", http.StatusInternalServerError)
		return
	}

	code := http.StatusOK
	if rep.Overall == domain.SeverityCritical {
		code = http.StatusServiceUnavailable
	}
	s.Logger.Info("report_served",
		zap.String("status", rep.Status),
		zap.Int("http_status", code),
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(b)
}

func (s *Server) current(ctx context.Context) report.Report {
	s.mu.RLock()
	cached := s.cached
	s.mu.RUnlock()
	if cached != nil {
		return *cached
	}
	return s.Build(ctx)
}

// Refresh re-runs the battery on a fixed interval and caches the rendered
// report. It does an immediate pass, then one each tick, and stops when ctx
// is cancelled.
func (s *Server) Refresh(ctx context.Context, every time.Duration) {
	if every <= 0 {
		return
	}
	t := time.NewTicker(every)
	defer t.Stop()

	s.refreshOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.refreshOnce(ctx)
		}
	}
}

func (s *Server) refreshOnce(ctx context.Context) {
	rep := s.Build(ctx)
	s.mu.Lock()
	s.cached = &rep
	s.mu.Unlock()
	s.Logger.Info("report_refreshed", zap.String("status", rep.Status))
}
