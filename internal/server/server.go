// Package server exposes the grouped views over a small JSON API. The
// transport is deliberately thin: every operation maps directly onto
// an aggregator or parser call.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/voyagen/channeldex/internal/catalog"
	"github.com/voyagen/channeldex/internal/config"
	"github.com/voyagen/channeldex/internal/loader"
	"github.com/voyagen/channeldex/internal/models"
	"github.com/voyagen/channeldex/internal/playlist"
	"github.com/voyagen/channeldex/internal/service"
)

// maxPlaylistBody caps uploaded playlist text at 16 MiB.
const maxPlaylistBody = 16 << 20

// Server holds dependencies for the HTTP API.
type Server struct {
	agg *service.Aggregator
	cfg *config.Config
	mux *http.ServeMux
}

// New creates a Server and registers routes.
func New(agg *service.Aggregator, cfg *config.Config) *Server {
	srv := &Server{agg: agg, cfg: cfg, mux: http.NewServeMux()}
	srv.routes()
	return srv
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /api/health", s.handleHealth)

	// Views
	s.mux.HandleFunc("GET /api/views/{type}", s.handleGetView)
	s.mux.HandleFunc("GET /api/stats", s.handleGetStats)
	s.mux.HandleFunc("GET /api/search", s.handleSearch)

	// Playlist ingestion
	s.mux.HandleFunc("POST /api/playlist", s.handleParsePlaylist)

	// Cache administration
	s.mux.HandleFunc("POST /api/cache/clear", s.handleClearCache)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// ListenAndServe starts the HTTP server on the configured port.
// It blocks until the server is shut down or ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	addr := ":" + s.cfg.ServerPort
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      withCORS(withLogging(s)),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Graceful shutdown on context cancellation.
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("server shutdown: %v", err)
		}
	}()

	log.Printf("listening on %s", addr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("ListenAndServe: %w", err)
	}
	return nil
}

// --- handlers ---

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleGetView(w http.ResponseWriter, r *http.Request) {
	viewType := models.ViewType(r.PathValue("type"))
	opts := optionsFromQuery(r)

	view, err := s.agg.GetView(r.Context(), viewType, opts)
	if err != nil {
		writeServiceErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleGetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.agg.GetStats(r.Context(), optionsFromQuery(r))
	if err != nil {
		writeServiceErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	viewType := models.ViewType(r.URL.Query().Get("view"))
	if viewType == "" {
		viewType = models.ViewCategory
	}

	results, err := s.agg.Search(r.Context(), viewType, query, optionsFromQuery(r))
	if err != nil {
		writeServiceErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}

func (s *Server) handleParsePlaylist(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxPlaylistBody))
	if err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("read body: %w", err))
		return
	}
	if len(body) == 0 {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("playlist body is required"))
		return
	}

	opts := playlist.Options{
		MaxGroups:        s.cfg.MaxGroups,
		MaxGroupChannels: s.cfg.MaxGroupChannels,
		Unlimited:        r.URL.Query().Get("unlimited") == "1",
	}
	view := playlist.Parse(string(body), opts)
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleClearCache(w http.ResponseWriter, r *http.Request) {
	s.agg.ClearCache(r.Context())
	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

// --- helpers ---

func optionsFromQuery(r *http.Request) service.Options {
	opts := service.Options{
		Unlimited: r.URL.Query().Get("unlimited") == "1",
	}
	if s := r.URL.Query().Get("ttl"); s != "" {
		if d, err := time.ParseDuration(s); err == nil {
			opts.TTL = d
		}
	}
	return opts
}

// writeServiceErr maps aggregator errors onto HTTP statuses. A source
// failure is never disguised as an empty view.
func writeServiceErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrAborted):
		// Superseded request, nothing to render.
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, loader.ErrSourceUnavailable):
		writeErr(w, http.StatusBadGateway, err)
	case errors.Is(err, catalog.ErrUnsupportedViewType):
		writeErr(w, http.StatusBadRequest, err)
	default:
		writeErr(w, http.StatusInternalServerError, err)
	}
}
