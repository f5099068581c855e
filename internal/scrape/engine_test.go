package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/newswatch-id/newswatch/internal/config"
	"github.com/newswatch-id/newswatch/internal/fetcher"
	"github.com/newswatch-id/newswatch/internal/sources"
	"github.com/newswatch-id/newswatch/internal/types"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

// fakeSource adapts a local test server into the Source contract.
type fakeSource struct {
	base string
}

func (s *fakeSource) Name() string        { return "fakewire" }
func (s *fakeSource) FetcherType() string { return "http" }

func (s *fakeSource) SearchURL(keyword string, page int) string {
	return fmt.Sprintf("%s/search?q=%s&page=%d", s.base, url.QueryEscape(keyword), page)
}

func (s *fakeSource) ArticleLinks(resp *types.Response) []string {
	doc, err := resp.Document()
	if err != nil {
		return nil
	}
	var links []string
	doc.Find("a.article").Each(func(_ int, a *goquery.Selection) {
		if href, ok := a.Attr("href"); ok {
			links = append(links, s.base+href)
		}
	})
	return links
}

func (s *fakeSource) ParseArticle(resp *types.Response, keyword string) (*types.Article, error) {
	doc, err := resp.Document()
	if err != nil {
		return nil, err
	}
	title := doc.Find("h1").First().Text()
	if title == "" {
		return nil, &types.ParseError{URL: resp.Request.URLString(), Source: s.Name(), Err: types.ErrMissingTitle}
	}
	date, err := time.Parse("2006-01-02", doc.Find(".date").First().Text())
	if err != nil {
		return nil, &types.ParseError{URL: resp.Request.URLString(), Source: s.Name(), Err: types.ErrMissingDate}
	}
	return &types.Article{
		Title:       title,
		PublishDate: date,
		Author:      "Tester",
		Content:     doc.Find(".content").First().Text(),
		Keyword:     keyword,
		Category:    "Test",
		Source:      s.Name(),
		Link:        resp.FinalURL,
	}, nil
}

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Scrape.Concurrency = 2
	cfg.Scrape.MaxPages = 3
	cfg.Scrape.PolitenessDelay = 0
	cfg.Scrape.MaxRetries = 0
	cfg.Scrape.RetryDelay = time.Millisecond
	return cfg
}

func newTestEngine(t *testing.T, cfg *config.Config, base string) *Engine {
	t.Helper()

	registry := sources.NewRegistry()
	registry.Register(&fakeSource{base: base})

	httpFetcher, err := fetcher.NewHTTPFetcher(cfg, testLogger)
	if err != nil {
		t.Fatalf("NewHTTPFetcher: %v", err)
	}
	eng := New(cfg, registry, map[string]fetcher.Fetcher{"http": httpFetcher}, testLogger)
	t.Cleanup(func() { eng.Close() })
	return eng
}

func articlePage(title, date, content string) string {
	return fmt.Sprintf(`<html><body><h1>%s</h1><div class="date">%s</div><div class="content">%s</div></body></html>`,
		title, date, content)
}

func TestRunCollectsAndFilters(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "1" {
			fmt.Fprint(w, `<html><body>
<a class="article" href="/articles/1">satu</a>
<a class="article" href="/articles/2">dua</a>
</body></html>`)
			return
		}
		fmt.Fprint(w, `<html><body>tidak ada hasil</body></html>`)
	})
	mux.HandleFunc("/articles/1", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, articlePage("Banjir Rendam Batam", "2025-05-12", "Dua kecamatan di Batam terendam banjir."))
	})
	mux.HandleFunc("/articles/2", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, articlePage("Banjir Jakarta", "2025-05-12", "Ibukota kembali banjir."))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	eng := newTestEngine(t, testConfig(), srv.URL)

	result, err := eng.Run(context.Background(), &types.SearchRequest{
		Keywords:  []string{"banjir"},
		Sources:   []string{"fakewire"},
		KepriOnly: true,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(result.Articles) != 1 {
		t.Fatalf("got %d articles, want 1 (Kepri only)", len(result.Articles))
	}
	if result.Articles[0].Title != "Banjir Rendam Batam" {
		t.Errorf("kept %q", result.Articles[0].Title)
	}
	if result.Skipped.Filtered != 1 {
		t.Errorf("Filtered = %d, want 1", result.Skipped.Filtered)
	}
	if result.Skipped.FetchFailures != 0 || result.Skipped.ParseFailures != 0 {
		t.Errorf("unexpected failures: %+v", result.Skipped)
	}
}

func TestRunDeduplicatesAcrossKeywords(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		// Every keyword's first page points at the same article.
		if r.URL.Query().Get("page") == "1" {
			fmt.Fprint(w, `<html><body><a class="article" href="/articles/1">satu</a></body></html>`)
			return
		}
		fmt.Fprint(w, `<html><body></body></html>`)
	})
	mux.HandleFunc("/articles/1", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, articlePage("Investasi Bintan Tumbuh", "2025-05-13", "Kawasan wisata Bintan menarik investasi."))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	eng := newTestEngine(t, testConfig(), srv.URL)

	result, err := eng.Run(context.Background(), &types.SearchRequest{
		Keywords:  []string{"investasi", "bintan"},
		Sources:   []string{"fakewire"},
		KepriOnly: true,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(result.Articles) != 1 {
		t.Fatalf("got %d articles, want 1 after dedup", len(result.Articles))
	}
	if result.Skipped.Duplicates != 1 {
		t.Errorf("Duplicates = %d, want 1", result.Skipped.Duplicates)
	}
}

func TestRunSurvivesFailingSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	eng := newTestEngine(t, testConfig(), srv.URL)

	result, err := eng.Run(context.Background(), &types.SearchRequest{
		Keywords: []string{"banjir"},
		Sources:  []string{"fakewire"},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(result.Articles) != 0 {
		t.Errorf("got %d articles from failing source", len(result.Articles))
	}
	if result.Skipped.FetchFailures == 0 {
		t.Error("FetchFailures not counted")
	}
}

func TestRunStopsPaginationAtStartDate(t *testing.T) {
	var searchCalls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		searchCalls.Add(1)
		fmt.Fprint(w, `<html><body><a class="article" href="/articles/old">lama</a></body></html>`)
	})
	mux.HandleFunc("/articles/old", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, articlePage("Berita Lama Batam", "2020-01-01", "Arsip lama dari Batam."))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	eng := newTestEngine(t, testConfig(), srv.URL)

	result, err := eng.Run(context.Background(), &types.SearchRequest{
		Keywords:  []string{"batam"},
		Sources:   []string{"fakewire"},
		StartDate: time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		KepriOnly: true,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if got := searchCalls.Load(); got != 1 {
		t.Errorf("search fetched %d pages, want pagination to stop after 1", got)
	}
	if len(result.Articles) != 0 {
		t.Errorf("kept %d articles older than start date", len(result.Articles))
	}
}

func TestSkipCountsAreScopedToOneRun(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	eng := newTestEngine(t, testConfig(), srv.URL)
	req := &types.SearchRequest{Keywords: []string{"banjir"}, Sources: []string{"fakewire"}}

	first, err := eng.Run(context.Background(), req)
	if err != nil {
		t.Fatalf("first Run: %v", err)
	}
	second, err := eng.Run(context.Background(), req)
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}

	if first.Skipped.FetchFailures == 0 {
		t.Fatal("first run counted no fetch failures")
	}
	if second.Skipped.FetchFailures != first.Skipped.FetchFailures {
		t.Errorf("second run FetchFailures = %d, want %d (must not carry over)",
			second.Skipped.FetchFailures, first.Skipped.FetchFailures)
	}

	// Lifetime totals keep accumulating across runs.
	total := eng.Stats().Snapshot().FetchFailures
	if want := int64(first.Skipped.FetchFailures + second.Skipped.FetchFailures); total != want {
		t.Errorf("lifetime FetchFailures = %d, want %d", total, want)
	}
}

func TestRunUnknownSource(t *testing.T) {
	eng := newTestEngine(t, testConfig(), "http://127.0.0.1:0")

	_, err := eng.Run(context.Background(), &types.SearchRequest{Sources: []string{"nonexistent"}})
	if err == nil {
		t.Fatal("expected error for unknown source")
	}
}

func TestStatsSnapshot(t *testing.T) {
	var s Stats
	s.PagesFetched.Add(2)
	s.ArticlesKept.Add(5)

	snap := s.Snapshot()
	if snap.PagesFetched != 2 || snap.ArticlesKept != 5 {
		t.Errorf("snapshot = %+v", snap)
	}
}
