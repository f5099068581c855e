package fetcher

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"

	"github.com/newswatch-id/newswatch/internal/config"
	"github.com/newswatch-id/newswatch/internal/types"
)

// BrowserFetcher implements Fetcher using a headless browser via Rod.
// Some publishers render listings and article bodies with JavaScript;
// their adapters request this fetcher instead of the plain HTTP one.
type BrowserFetcher struct {
	browser  *rod.Browser
	cfg      *config.Config
	logger   *slog.Logger
	pagePool chan *rod.Page
	maxPages int

	mu     sync.Mutex
	closed bool
}

// NewBrowserFetcher launches a headless Chromium and connects to it.
func NewBrowserFetcher(cfg *config.Config, logger *slog.Logger) (*BrowserFetcher, error) {
	bf := &BrowserFetcher{
		cfg:      cfg,
		logger:   logger.With("component", "browser_fetcher"),
		maxPages: cfg.Fetcher.BrowserPages,
	}
	if bf.maxPages <= 0 {
		bf.maxPages = 2
	}

	launchURL, err := launcher.New().
		Headless(true).
		Set("disable-gpu").
		Set("disable-dev-shm-usage").
		Set("no-sandbox").
		Set("disable-blink-features", "AutomationControlled").
		Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	browser := rod.New().ControlURL(launchURL)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connect browser: %w", err)
	}

	bf.browser = browser
	bf.pagePool = make(chan *rod.Page, bf.maxPages)

	bf.logger.Info("browser fetcher ready", "max_pages", bf.maxPages)
	return bf, nil
}

// Fetch navigates to the request URL and returns the rendered page content.
func (bf *BrowserFetcher) Fetch(ctx context.Context, req *types.Request) (*types.Response, error) {
	start := time.Now()

	page, err := bf.getPage()
	if err != nil {
		return nil, &types.FetchError{URL: req.URLString(), Err: fmt.Errorf("stealth page: %w", err), Retryable: true}
	}
	defer bf.putPage(page)

	if ua := req.Headers.Get("User-Agent"); ua != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: ua}); err != nil {
			bf.logger.Warn("failed to set user agent", "error", err)
		}
	}

	timeout := bf.cfg.Scrape.RequestTimeout
	if req.Timeout > 0 {
		timeout = req.Timeout
	}

	if err := page.Context(ctx).Timeout(timeout).Navigate(req.URLString()); err != nil {
		return nil, &types.FetchError{URL: req.URLString(), Err: err, Retryable: true}
	}

	if err := page.Timeout(timeout).WaitStable(300 * time.Millisecond); err != nil {
		bf.logger.Warn("page stability timeout, continuing", "url", req.URLString(), "error", err)
	}

	// Adapters can ask to wait for the article body selector.
	if sel, ok := req.Meta["wait_selector"].(string); ok && sel != "" {
		el, err := page.Timeout(10 * time.Second).Element(sel)
		if err != nil {
			bf.logger.Warn("wait selector not found", "selector", sel, "error", err)
		} else if err := el.WaitVisible(); err != nil {
			bf.logger.Warn("wait selector timeout", "selector", sel, "error", err)
		}
	}

	html, err := page.HTML()
	if err != nil {
		return nil, &types.FetchError{URL: req.URLString(), Err: err, Retryable: true}
	}

	finalURL := req.URLString()
	if info, err := page.Info(); err == nil && info != nil {
		finalURL = info.URL
	}

	duration := time.Since(start)
	resp := types.NewBrowserResponse(req, []byte(html), finalURL, duration)

	bf.logger.Debug("browser fetch complete",
		"url", req.URLString(),
		"final_url", finalURL,
		"size", len(html),
		"duration", duration,
	)

	return resp, nil
}

// Close shuts down the browser and releases resources. Safe to call more
// than once; in-flight fetches returning their page afterwards close it
// instead of parking it.
func (bf *BrowserFetcher) Close() error {
	bf.mu.Lock()
	if bf.closed {
		bf.mu.Unlock()
		return nil
	}
	bf.closed = true
	bf.mu.Unlock()

	for {
		select {
		case page := <-bf.pagePool:
			_ = page.Close()
		default:
			if bf.browser != nil {
				return bf.browser.Close()
			}
			return nil
		}
	}
}

// Type returns the fetcher type identifier.
func (bf *BrowserFetcher) Type() string {
	return "browser"
}

// getPage reuses a parked page or opens a fresh stealth one.
func (bf *BrowserFetcher) getPage() (*rod.Page, error) {
	select {
	case page := <-bf.pagePool:
		if page != nil {
			return page, nil
		}
	default:
	}
	return stealth.Page(bf.browser)
}

// putPage parks a page for reuse, closing it when the pool is full or the
// fetcher is shut down.
func (bf *BrowserFetcher) putPage(page *rod.Page) {
	_ = page.Navigate("about:blank")

	bf.mu.Lock()
	defer bf.mu.Unlock()
	if bf.closed {
		_ = page.Close()
		return
	}
	select {
	case bf.pagePool <- page:
	default:
		_ = page.Close()
	}
}
