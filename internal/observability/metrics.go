// Package observability exposes run counters in Prometheus text
// exposition format on a separate listener.
package observability

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/newswatch-id/newswatch/internal/scrape"
)

// Metrics serves the engine's counters as Prometheus metrics.
type Metrics struct {
	stats  *scrape.Stats
	logger *slog.Logger
}

// NewMetrics wraps an engine's stats for exposition.
func NewMetrics(stats *scrape.Stats, logger *slog.Logger) *Metrics {
	return &Metrics{
		stats:  stats,
		logger: logger.With("component", "metrics"),
	}
}

// ServeHTTP serves metrics in Prometheus text exposition format.
func (m *Metrics) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")

	snap := m.stats.Snapshot()
	metrics := []struct {
		name  string
		help  string
		value int64
	}{
		{"newswatch_pages_fetched_total", "Listing pages fetched", snap.PagesFetched},
		{"newswatch_articles_fetched_total", "Article pages fetched", snap.ArticlesFetched},
		{"newswatch_articles_kept_total", "Articles kept after filtering", snap.ArticlesKept},
		{"newswatch_fetch_failures_total", "Fetches that failed after retries", snap.FetchFailures},
		{"newswatch_parse_failures_total", "Article pages that failed to parse", snap.ParseFailures},
		{"newswatch_articles_filtered_total", "Articles dropped by filters", snap.Filtered},
		{"newswatch_articles_duplicate_total", "Duplicate articles dropped", snap.Duplicates},
	}

	for _, metric := range metrics {
		fmt.Fprintf(w, "# HELP %s %s\n", metric.name, metric.help)
		fmt.Fprintf(w, "# TYPE %s counter\n", metric.name)
		fmt.Fprintf(w, "%s %d\n", metric.name, metric.value)
	}
}

// StartServer starts the metrics HTTP server.
func (m *Metrics) StartServer(port int, path string) error {
	mux := http.NewServeMux()
	mux.Handle(path, m)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "ok")
	})

	addr := fmt.Sprintf(":%d", port)
	m.logger.Info("metrics server starting", "addr", addr, "path", path)

	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			m.logger.Error("metrics server error", "error", err)
		}
	}()

	return nil
}
