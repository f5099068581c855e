package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/newswatch-id/newswatch/internal/config"
	"github.com/newswatch-id/newswatch/internal/observability"
	"github.com/newswatch-id/newswatch/internal/storage"
	"github.com/newswatch-id/newswatch/internal/types"
)

var (
	scrapeKeywords  string
	scrapeSources   string
	scrapeStartDate string
	scrapeEndDate   string
	scrapeKepriOnly bool
	scrapeFormat    string
	scrapeOutput    string
	scrapeConc      int
	scrapeMaxPages  int
)

// scrapeCmd creates the "scrape" subcommand.
func scrapeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Run a search and export the results",
		Long:  "Search the configured publishers for the given keywords and export matching articles.",
		RunE:  runScrape,
	}

	cmd.Flags().StringVarP(&scrapeKeywords, "keywords", "k", "", "comma-separated keywords (empty = all articles)")
	cmd.Flags().StringVarP(&scrapeSources, "sources", "s", "", "comma-separated publishers (empty = all)")
	cmd.Flags().StringVar(&scrapeStartDate, "start-date", "", "oldest publish date to keep (YYYY-MM-DD)")
	cmd.Flags().StringVar(&scrapeEndDate, "end-date", "", "newest publish date to keep (YYYY-MM-DD, inclusive)")
	cmd.Flags().BoolVar(&scrapeKepriOnly, "kepri-only", true, "keep only Riau Islands coverage")
	cmd.Flags().StringVarP(&scrapeFormat, "format", "f", "", "output format: csv, json, jsonl")
	cmd.Flags().StringVarP(&scrapeOutput, "output", "o", "", "output directory")
	cmd.Flags().IntVarP(&scrapeConc, "concurrency", "n", 0, "concurrent article fetches")
	cmd.Flags().IntVarP(&scrapeMaxPages, "max-pages", "m", 0, "max listing pages per source per keyword")

	return cmd
}

func runScrape(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	applyScrapeOverrides(cfg)
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger := setupLogger(cfg)

	req, err := buildSearchRequest()
	if err != nil {
		return err
	}

	engine, _, err := buildEngine(cfg, logger)
	if err != nil {
		return err
	}
	defer engine.Close()

	if cfg.Metrics.Enabled {
		metrics := observability.NewMetrics(engine.Stats(), logger)
		if err := metrics.StartServer(cfg.Metrics.Port, cfg.Metrics.Path); err != nil {
			logger.Warn("failed to start metrics server", "error", err)
		}
	}

	store, err := buildStorage(cfg, logger)
	if err != nil {
		return fmt.Errorf("create storage: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received signal, stopping", "signal", sig)
		cancel()
	}()

	start := time.Now()
	result, err := engine.Run(ctx, req)
	if err != nil {
		store.Close()
		return fmt.Errorf("scrape: %w", err)
	}

	if err := store.Store(result.Articles); err != nil {
		store.Close()
		return fmt.Errorf("store results: %w", err)
	}
	if err := store.Close(); err != nil {
		return fmt.Errorf("close storage: %w", err)
	}

	elapsed := time.Since(start)
	fmt.Printf("\nScrape complete in %s\n", elapsed.Round(time.Millisecond))
	fmt.Printf("   Articles:  %d kept\n", len(result.Articles))
	fmt.Printf("   Skipped:   %d fetch, %d parse, %d filtered, %d duplicate\n",
		result.Skipped.FetchFailures,
		result.Skipped.ParseFailures,
		result.Skipped.Filtered,
		result.Skipped.Duplicates,
	)
	fmt.Printf("   Output:    %s\n", cfg.Storage.OutputPath)

	return nil
}

// buildSearchRequest turns the scrape flags into a search request.
func buildSearchRequest() (*types.SearchRequest, error) {
	req := &types.SearchRequest{
		Keywords:  splitList(scrapeKeywords),
		Sources:   splitList(scrapeSources),
		KepriOnly: scrapeKepriOnly,
	}

	wib := time.FixedZone("WIB", 7*3600)
	if scrapeStartDate != "" {
		t, err := time.ParseInLocation("2006-01-02", scrapeStartDate, wib)
		if err != nil {
			return nil, fmt.Errorf("invalid --start-date %q", scrapeStartDate)
		}
		req.StartDate = t
	}
	if scrapeEndDate != "" {
		t, err := time.ParseInLocation("2006-01-02", scrapeEndDate, wib)
		if err != nil {
			return nil, fmt.Errorf("invalid --end-date %q", scrapeEndDate)
		}
		req.EndDate = t.Add(24*time.Hour - time.Second)
	}
	if !req.StartDate.IsZero() && !req.EndDate.IsZero() && req.EndDate.Before(req.StartDate) {
		return nil, fmt.Errorf("--end-date is before --start-date")
	}
	return req, nil
}

// buildStorage assembles the export backend, plus the Mongo archive when
// it is enabled.
func buildStorage(cfg *config.Config, logger *slog.Logger) (storage.Storage, error) {
	fileStore, err := storage.NewFileStorage(cfg.Storage.Format, cfg.Storage.OutputPath, logger)
	if err != nil {
		return nil, err
	}
	if !cfg.Storage.Mongo.Enabled {
		return fileStore, nil
	}

	mongoStore, err := storage.NewMongoStorage(
		cfg.Storage.Mongo.URI,
		cfg.Storage.Mongo.Database,
		cfg.Storage.Mongo.Collection,
		logger,
	)
	if err != nil {
		fileStore.Close()
		return nil, err
	}
	return storage.NewMultiStorage([]storage.Storage{fileStore, mongoStore}, logger), nil
}

func applyScrapeOverrides(cfg *config.Config) {
	if scrapeFormat != "" {
		cfg.Storage.Format = strings.ToLower(scrapeFormat)
	}
	if scrapeOutput != "" {
		cfg.Storage.OutputPath = scrapeOutput
	}
	if scrapeConc > 0 {
		cfg.Scrape.Concurrency = scrapeConc
	}
	if scrapeMaxPages > 0 {
		cfg.Scrape.MaxPages = scrapeMaxPages
	}
}

func splitList(raw string) []string {
	var out []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
