// Package server hosts the dashboard: a single-page UI plus the JSON API
// that runs searches and exposes results, frequencies, and sentiment.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/newswatch-id/newswatch/internal/analysis"
	"github.com/newswatch-id/newswatch/internal/config"
	"github.com/newswatch-id/newswatch/internal/scrape"
	"github.com/newswatch-id/newswatch/internal/sources"
	"github.com/newswatch-id/newswatch/internal/storage"
	"github.com/newswatch-id/newswatch/internal/types"
)

// Server serves the dashboard UI and API.
type Server struct {
	cfg      *config.Config
	engine   *scrape.Engine
	registry *sources.Registry
	logger   *slog.Logger

	httpServer *http.Server

	mu      sync.RWMutex
	running bool
	last    *types.ResultSet
	lastReq *types.SearchRequest
}

// New creates a dashboard server around an engine.
func New(cfg *config.Config, engine *scrape.Engine, registry *sources.Registry, logger *slog.Logger) *Server {
	s := &Server{
		cfg:      cfg,
		engine:   engine,
		registry: registry,
		logger:   logger.With("component", "server"),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /", s.handleDashboard)
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /api/sources", s.handleSources)
	mux.HandleFunc("POST /api/search", s.handleSearch)
	mux.HandleFunc("GET /api/results", s.handleResults)
	mux.HandleFunc("GET /api/results.csv", s.handleResultsCSV)
	mux.HandleFunc("GET /api/frequencies", s.handleFrequencies)
	mux.HandleFunc("GET /api/sentiment", s.handleSentiment)
	mux.HandleFunc("GET /api/stats", s.handleStats)

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Start runs the HTTP server until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("dashboard starting", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the HTTP server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("dashboard shutting down")
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(dashboardHTML))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": config.Version,
	})
}

func (s *Server) handleSources(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"sources": s.registry.Names(),
	})
}

// searchBody is the POST /api/search payload. Dates use "2006-01-02";
// the end date is inclusive through the end of that day.
type searchBody struct {
	Keywords  []string `json:"keywords"`
	Sources   []string `json:"sources"`
	StartDate string   `json:"start_date"`
	EndDate   string   `json:"end_date"`
	KepriOnly bool     `json:"kepri_only"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var body searchBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.jsonResponse(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	req, err := buildRequest(body)
	if err != nil {
		s.jsonResponse(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		s.jsonResponse(w, http.StatusConflict, map[string]string{"error": "a search is already running"})
		return
	}
	s.running = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.Server.RunTimeout)
	defer cancel()

	result, err := s.engine.Run(ctx, req)
	if err != nil {
		s.logger.Error("search failed", "error", err)
		s.jsonResponse(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	s.mu.Lock()
	s.last = result
	s.lastReq = req
	s.mu.Unlock()

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"articles": len(result.Articles),
		"skipped":  result.Skipped,
		"duration": result.Duration.String(),
	})
}

func buildRequest(body searchBody) (*types.SearchRequest, error) {
	req := &types.SearchRequest{
		Keywords:  body.Keywords,
		Sources:   body.Sources,
		KepriOnly: body.KepriOnly,
	}

	wib := time.FixedZone("WIB", 7*3600)
	if body.StartDate != "" {
		t, err := time.ParseInLocation("2006-01-02", body.StartDate, wib)
		if err != nil {
			return nil, fmt.Errorf("invalid start_date %q", body.StartDate)
		}
		req.StartDate = t
	}
	if body.EndDate != "" {
		t, err := time.ParseInLocation("2006-01-02", body.EndDate, wib)
		if err != nil {
			return nil, fmt.Errorf("invalid end_date %q", body.EndDate)
		}
		req.EndDate = t.Add(24*time.Hour - time.Second)
	}
	if !req.StartDate.IsZero() && !req.EndDate.IsZero() && req.EndDate.Before(req.StartDate) {
		return nil, fmt.Errorf("end_date before start_date")
	}
	return req, nil
}

func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	last := s.last
	s.mu.RUnlock()

	if last == nil {
		s.jsonResponse(w, http.StatusNotFound, map[string]string{"error": "no results yet"})
		return
	}
	s.jsonResponse(w, http.StatusOK, last)
}

func (s *Server) handleResultsCSV(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	last := s.last
	s.mu.RUnlock()

	if last == nil {
		http.Error(w, "no results yet", http.StatusNotFound)
		return
	}

	filename := fmt.Sprintf("newswatch-%s.csv", time.Now().Format("20060102-150405"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	if err := storage.WriteCSV(w, last.Articles); err != nil {
		s.logger.Error("CSV export failed", "error", err)
	}
}

func (s *Server) handleFrequencies(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	last := s.last
	s.mu.RUnlock()

	if last == nil {
		s.jsonResponse(w, http.StatusNotFound, map[string]string{"error": "no results yet"})
		return
	}

	topN := 50
	if raw := r.URL.Query().Get("top"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 500 {
			topN = n
		}
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"terms": analysis.WordFrequencies(last.Articles, topN),
	})
}

func (s *Server) handleSentiment(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	last := s.last
	s.mu.RUnlock()

	if last == nil {
		s.jsonResponse(w, http.StatusNotFound, map[string]string{"error": "no results yet"})
		return
	}
	s.jsonResponse(w, http.StatusOK, analysis.SummarizeSentiment(last.Articles))
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	running := s.running
	s.mu.RUnlock()

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"running": running,
		"stats":   s.engine.Stats().Snapshot(),
	})
}

func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
