// Package scrape runs search requests against the publisher adapters:
// paginated listing walks, bounded concurrent article fetches, and the
// post-processing pipeline, aggregated into a single result set.
package scrape

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/newswatch-id/newswatch/internal/config"
	"github.com/newswatch-id/newswatch/internal/fetcher"
	"github.com/newswatch-id/newswatch/internal/filter"
	"github.com/newswatch-id/newswatch/internal/pipeline"
	"github.com/newswatch-id/newswatch/internal/sources"
	"github.com/newswatch-id/newswatch/internal/types"
)

// Engine coordinates one or more scrape runs.
type Engine struct {
	cfg      *config.Config
	registry *sources.Registry
	fetchers map[string]fetcher.Fetcher
	matcher  *filter.Matcher
	logger   *slog.Logger
	stats    Stats
}

// New creates an engine. The fetchers map is keyed by fetcher type;
// requests for an absent type fall back to "http".
func New(cfg *config.Config, registry *sources.Registry, fetchers map[string]fetcher.Fetcher, logger *slog.Logger) *Engine {
	return &Engine{
		cfg:      cfg,
		registry: registry,
		fetchers: fetchers,
		matcher:  filter.NewMatcher(cfg.Filter.ExtraMarkers),
		logger:   logger.With("component", "engine"),
	}
}

// Stats returns the engine-lifetime counters, accumulated across runs.
func (e *Engine) Stats() *Stats { return &e.stats }

// Run executes a search request: every selected source is walked for
// every keyword, articles are fetched concurrently, and survivors of the
// pipeline land in the result set. Per-source failures degrade the run,
// they never abort it.
func (e *Engine) Run(ctx context.Context, req *types.SearchRequest) (*types.ResultSet, error) {
	selected, err := e.registry.Select(req.Sources)
	if err != nil {
		return nil, err
	}

	pipe := pipeline.New(e.logger)
	pipe.Use(&pipeline.TrimMiddleware{})
	pipe.Use(&pipeline.RequiredFieldsMiddleware{})
	pipe.Use(&pipeline.DateWindowMiddleware{Start: req.StartDate, End: req.EndDate})
	pipe.Use(&pipeline.RelevanceMiddleware{Matcher: e.matcher, RegionOnly: req.KepriOnly})
	dedup := pipeline.NewDedupMiddleware()

	run := &runState{
		engine:   e,
		request:  req,
		pipeline: pipe,
		dedup:    dedup,
		sem:      make(chan struct{}, e.cfg.Scrape.Concurrency),
	}

	started := time.Now()
	keywords := req.NormalizedKeywords()

	e.logger.Info("scrape run starting",
		"sources", len(selected),
		"keywords", keywords,
		"kepri_only", req.KepriOnly,
	)

	var wg sync.WaitGroup
	for _, src := range selected {
		wg.Add(1)
		go func(src sources.Source) {
			defer wg.Done()
			for _, keyword := range keywords {
				if ctx.Err() != nil {
					return
				}
				run.walkSource(ctx, src, keyword)
			}
		}(src)
	}
	wg.Wait()

	sort.Slice(run.articles, func(i, j int) bool {
		return run.articles[i].PublishDate.After(run.articles[j].PublishDate)
	})

	// Counters are per run; the lifetime totals feed /metrics and /api/stats.
	snap := run.stats.Snapshot()
	e.stats.Merge(snap)

	result := &types.ResultSet{
		Articles: run.articles,
		Skipped: types.SkipCounts{
			FetchFailures: int(snap.FetchFailures),
			ParseFailures: int(snap.ParseFailures),
			Filtered:      int(snap.Filtered),
			Duplicates:    int(snap.Duplicates),
		},
		StartedAt: started,
		Duration:  time.Since(started),
	}

	e.logger.Info("scrape run complete",
		"articles", len(result.Articles),
		"skipped", result.Skipped.Total(),
		"duration", result.Duration,
	)

	if ctx.Err() != nil && len(result.Articles) == 0 {
		return result, types.ErrRunStopped
	}
	return result, nil
}

// Close shuts down all fetchers.
func (e *Engine) Close() error {
	var errs []error
	for _, f := range e.fetchers {
		if err := f.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// fetcherFor picks the fetcher a source asked for, falling back to the
// plain HTTP client when the browser is not running.
func (e *Engine) fetcherFor(src sources.Source) fetcher.Fetcher {
	if f, ok := e.fetchers[src.FetcherType()]; ok {
		return f
	}
	return e.fetchers["http"]
}

// runState carries the mutable pieces of a single Run call.
type runState struct {
	engine   *Engine
	request  *types.SearchRequest
	pipeline *pipeline.Pipeline
	dedup    *pipeline.DedupMiddleware
	stats    Stats

	sem chan struct{}

	mu       sync.Mutex
	articles []*types.Article
}

// walkSource pages through one source's search results for one keyword.
// Pagination stops when a page yields no links, or when every article on
// a page predates the requested start date.
func (r *runState) walkSource(ctx context.Context, src sources.Source, keyword string) {
	e := r.engine
	f := e.fetcherFor(src)
	if f == nil {
		e.logger.Error("no fetcher available", "source", src.Name())
		return
	}

	logger := e.logger.With("source", src.Name(), "keyword", keyword)

	maxPages := e.cfg.Scrape.MaxPages
	if maxPages <= 0 {
		maxPages = 1
	}

	for page := 1; page <= maxPages; page++ {
		if ctx.Err() != nil {
			return
		}

		req, err := types.NewRequest(src.SearchURL(keyword, page))
		if err != nil {
			logger.Error("bad search URL", "page", page, "error", err)
			return
		}
		req.Tag = types.TagListing
		req.Source = src.Name()
		req.Keyword = keyword
		req.MaxRetries = e.cfg.Scrape.MaxRetries
		req.FetcherType = src.FetcherType()

		resp, err := f.Fetch(ctx, req)
		if err != nil {
			r.stats.FetchFailures.Add(1)
			logger.Warn("listing fetch failed", "page", page, "error", err)
			return
		}
		r.stats.PagesFetched.Add(1)

		links := src.ArticleLinks(resp)
		if len(links) == 0 {
			logger.Debug("no more results", "page", page)
			return
		}
		logger.Debug("listing parsed", "page", page, "links", len(links))

		if r.processPage(ctx, src, f, keyword, links) {
			logger.Debug("start date reached, stopping pagination", "page", page)
			return
		}

		if delay := e.cfg.Scrape.PolitenessDelay; delay > 0 {
			select {
			case <-ctx.Done():
				return
			case <-time.After(delay):
			}
		}
	}
}

// processPage fetches one listing page's articles through the bounded
// worker pool. It reports whether pagination should stop: true when the
// page parsed at least one article and all of them predate the start date.
func (r *runState) processPage(ctx context.Context, src sources.Source, f fetcher.Fetcher, keyword string, links []string) bool {
	start := r.request.StartDate

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		parsed   int
		tooEarly int
	)

	for _, link := range links {
		select {
		case <-ctx.Done():
			wg.Wait()
			return true
		case r.sem <- struct{}{}:
		}

		wg.Add(1)
		go func(link string) {
			defer wg.Done()
			defer func() { <-r.sem }()

			article := r.fetchArticle(ctx, src, f, keyword, link)
			if article == nil {
				return
			}

			mu.Lock()
			parsed++
			if !start.IsZero() && article.PublishDate.Before(start) {
				tooEarly++
			}
			mu.Unlock()

			r.process(article)
		}(link)
	}
	wg.Wait()

	return !start.IsZero() && parsed > 0 && tooEarly == parsed
}

// fetchArticle fetches and parses a single article page. Failures are
// counted and logged, never propagated.
func (r *runState) fetchArticle(ctx context.Context, src sources.Source, f fetcher.Fetcher, keyword, link string) *types.Article {
	e := r.engine

	req, err := types.NewRequest(link)
	if err != nil {
		r.stats.FetchFailures.Add(1)
		return nil
	}
	req.Tag = types.TagArticle
	req.Source = src.Name()
	req.Keyword = keyword
	req.MaxRetries = e.cfg.Scrape.MaxRetries
	req.FetcherType = src.FetcherType()

	resp, err := f.Fetch(ctx, req)
	if err != nil {
		r.stats.FetchFailures.Add(1)
		e.logger.Warn("article fetch failed", "source", src.Name(), "url", link, "error", err)
		return nil
	}
	r.stats.ArticlesFetched.Add(1)

	article, err := src.ParseArticle(resp, keyword)
	if err != nil {
		r.stats.ParseFailures.Add(1)
		e.logger.Warn("article parse failed", "source", src.Name(), "url", link, "error", err)
		return nil
	}
	return article
}

// process runs dedup then the pipeline and appends survivors.
func (r *runState) process(article *types.Article) {
	e := r.engine

	// Dedup runs first so the counter can tell duplicates from filter drops.
	kept, err := r.dedup.Process(article)
	if err == nil && kept == nil {
		r.stats.Duplicates.Add(1)
		return
	}

	result, err := r.pipeline.Process(article)
	if err != nil {
		r.stats.ParseFailures.Add(1)
		e.logger.Warn("pipeline error", "link", article.Link, "error", err)
		return
	}
	if result == nil {
		r.stats.Filtered.Add(1)
		return
	}

	r.stats.ArticlesKept.Add(1)
	r.mu.Lock()
	r.articles = append(r.articles, result)
	r.mu.Unlock()
}
