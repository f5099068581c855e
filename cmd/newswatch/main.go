package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/newswatch-id/newswatch/internal/config"
	"github.com/newswatch-id/newswatch/internal/fetcher"
	"github.com/newswatch-id/newswatch/internal/scrape"
	"github.com/newswatch-id/newswatch/internal/sources"
)

var (
	cfgFile string
	verbose bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "newswatch",
		Short: "Newswatch — Riau Islands news monitor",
		Long: `Newswatch scrapes Indonesian news publishers for Riau Islands (Kepri)
coverage: keyword search across sources, region filtering, CSV/JSON
export, and a web dashboard with word frequencies and sentiment.`,
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(scrapeCmd())
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(sourcesCmd())
	rootCmd.AddCommand(configCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// sourcesCmd creates the "sources" subcommand.
func sourcesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sources",
		Short: "List supported news publishers",
		Run: func(cmd *cobra.Command, args []string) {
			registry := sources.NewRegistry()
			for _, name := range registry.Names() {
				s, _ := registry.Lookup(name)
				fmt.Printf("%-18s fetcher=%s\n", name, s.FetcherType())
			}
		},
	}
}

// versionCmd creates the "version" subcommand.
func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("newswatch %s\n", config.Version)
		},
	}
}

// configCmd creates the "config" subcommand for inspecting configuration.
func configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			fmt.Printf("Scrape:\n")
			fmt.Printf("  Concurrency:       %d\n", cfg.Scrape.Concurrency)
			fmt.Printf("  Max Pages:         %d\n", cfg.Scrape.MaxPages)
			fmt.Printf("  Request Timeout:   %s\n", cfg.Scrape.RequestTimeout)
			fmt.Printf("  Politeness Delay:  %s\n", cfg.Scrape.PolitenessDelay)
			fmt.Printf("  Max Retries:       %d\n", cfg.Scrape.MaxRetries)
			fmt.Printf("  User Agents:       %d configured\n", len(cfg.Scrape.UserAgents))
			fmt.Printf("\nFetcher:\n")
			fmt.Printf("  Type:              %s\n", cfg.Fetcher.Type)
			fmt.Printf("  Browser Enabled:   %v\n", cfg.Fetcher.BrowserEnabled)
			fmt.Printf("  Follow Redirects:  %v\n", cfg.Fetcher.FollowRedirects)
			fmt.Printf("  Max Body Size:     %d bytes\n", cfg.Fetcher.MaxBodySize)
			fmt.Printf("\nFilter:\n")
			fmt.Printf("  Extra Markers:     %s\n", strings.Join(cfg.Filter.ExtraMarkers, ", "))
			fmt.Printf("\nStorage:\n")
			fmt.Printf("  Format:            %s\n", cfg.Storage.Format)
			fmt.Printf("  Output Path:       %s\n", cfg.Storage.OutputPath)
			fmt.Printf("  Mongo Archive:     %v\n", cfg.Storage.Mongo.Enabled)
			fmt.Printf("\nServer:\n")
			fmt.Printf("  Port:              %d\n", cfg.Server.Port)
			fmt.Printf("  Run Timeout:       %s\n", cfg.Server.RunTimeout)
			fmt.Printf("\nMetrics:\n")
			fmt.Printf("  Enabled:           %v\n", cfg.Metrics.Enabled)
			fmt.Printf("  Port:              %d\n", cfg.Metrics.Port)
			return nil
		},
	}
}

// setupLogger creates a structured logger.
func setupLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(cfg.Logging.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.ToLower(cfg.Logging.Format) == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}

// buildEngine assembles the registry, fetchers, and engine from config.
func buildEngine(cfg *config.Config, logger *slog.Logger) (*scrape.Engine, *sources.Registry, error) {
	registry := sources.NewRegistry()

	fetchers := make(map[string]fetcher.Fetcher)

	httpFetcher, err := fetcher.NewHTTPFetcher(cfg, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("create http fetcher: %w", err)
	}
	fetchers["http"] = httpFetcher

	if cfg.Fetcher.BrowserEnabled {
		browserFetcher, err := fetcher.NewBrowserFetcher(cfg, logger)
		if err != nil {
			logger.Warn("browser fetcher unavailable, browser sources fall back to http", "error", err)
		} else {
			fetchers["browser"] = browserFetcher
		}
	}

	return scrape.New(cfg, registry, fetchers, logger), registry, nil
}
