package server

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/newswatch-id/newswatch/internal/config"
	"github.com/newswatch-id/newswatch/internal/fetcher"
	"github.com/newswatch-id/newswatch/internal/scrape"
	"github.com/newswatch-id/newswatch/internal/sources"
	"github.com/newswatch-id/newswatch/internal/types"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

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
	date, err := time.Parse("2006-01-02", doc.Find(".date").First().Text())
	if err != nil {
		return nil, &types.ParseError{URL: resp.Request.URLString(), Source: s.Name(), Err: types.ErrMissingDate}
	}
	return &types.Article{
		Title:       doc.Find("h1").First().Text(),
		PublishDate: date,
		Author:      "Tester",
		Content:     doc.Find(".content").First().Text(),
		Keyword:     keyword,
		Category:    "Test",
		Source:      s.Name(),
		Link:        resp.FinalURL,
	}, nil
}

// newTestServer wires a dashboard server to a fake publisher backend.
func newTestServer(t *testing.T) (*httptest.Server, *Server) {
	t.Helper()

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/search"):
			if r.URL.Query().Get("page") == "1" {
				fmt.Fprint(w, `<html><body><a class="article" href="/articles/1">satu</a></body></html>`)
			} else {
				fmt.Fprint(w, `<html><body></body></html>`)
			}
		case r.URL.Path == "/articles/1":
			fmt.Fprint(w, `<html><body><h1>Banjir Rendam Batam</h1><div class="date">2025-05-12</div><div class="content">Dua kecamatan di Batam terendam banjir deras.</div></body></html>`)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(backend.Close)

	cfg := config.DefaultConfig()
	cfg.Scrape.Concurrency = 2
	cfg.Scrape.MaxPages = 2
	cfg.Scrape.PolitenessDelay = 0
	cfg.Scrape.MaxRetries = 0

	registry := sources.NewRegistry()
	registry.Register(&fakeSource{base: backend.URL})

	httpFetcher, err := fetcher.NewHTTPFetcher(cfg, testLogger)
	if err != nil {
		t.Fatalf("NewHTTPFetcher: %v", err)
	}
	engine := scrape.New(cfg, registry, map[string]fetcher.Fetcher{"http": httpFetcher}, testLogger)
	t.Cleanup(func() { engine.Close() })

	srv := New(cfg, engine, registry, testLogger)
	ts := httptest.NewServer(srv.httpServer.Handler)
	t.Cleanup(ts.Close)
	return ts, srv
}

func getJSON(t *testing.T, url string, out any) int {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
	return resp.StatusCode
}

func TestHealthEndpoint(t *testing.T) {
	ts, _ := newTestServer(t)

	var body map[string]string
	if code := getJSON(t, ts.URL+"/api/health", &body); code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %q", body["status"])
	}
}

func TestSourcesEndpoint(t *testing.T) {
	ts, _ := newTestServer(t)

	var body struct {
		Sources []string `json:"sources"`
	}
	if code := getJSON(t, ts.URL+"/api/sources", &body); code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	found := false
	for _, s := range body.Sources {
		if s == "fakewire" {
			found = true
		}
	}
	if !found {
		t.Errorf("sources = %v, fakewire missing", body.Sources)
	}
}

func TestResultsBeforeAnySearch(t *testing.T) {
	ts, _ := newTestServer(t)

	if code := getJSON(t, ts.URL+"/api/results", nil); code != http.StatusNotFound {
		t.Errorf("GET /api/results = %d, want 404", code)
	}
	if code := getJSON(t, ts.URL+"/api/frequencies", nil); code != http.StatusNotFound {
		t.Errorf("GET /api/frequencies = %d, want 404", code)
	}
}

func TestSearchThenResults(t *testing.T) {
	ts, _ := newTestServer(t)

	payload := `{"keywords":["banjir"],"sources":["fakewire"],"kepri_only":true}`
	resp, err := http.Post(ts.URL+"/api/search", "application/json", strings.NewReader(payload))
	if err != nil {
		t.Fatalf("POST /api/search: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("search status = %d", resp.StatusCode)
	}

	var summary struct {
		Articles int `json:"articles"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&summary); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if summary.Articles != 1 {
		t.Fatalf("search found %d articles, want 1", summary.Articles)
	}

	var result types.ResultSet
	if code := getJSON(t, ts.URL+"/api/results", &result); code != http.StatusOK {
		t.Fatalf("results status = %d", code)
	}
	if len(result.Articles) != 1 || result.Articles[0].Title != "Banjir Rendam Batam" {
		t.Errorf("results = %+v", result.Articles)
	}

	var freq struct {
		Terms []struct {
			Term  string `json:"term"`
			Count int    `json:"count"`
		} `json:"terms"`
	}
	if code := getJSON(t, ts.URL+"/api/frequencies?top=5", &freq); code != http.StatusOK {
		t.Fatalf("frequencies status = %d", code)
	}
	if len(freq.Terms) == 0 {
		t.Error("no frequency terms")
	}

	var sent struct {
		Total int `json:"total"`
	}
	if code := getJSON(t, ts.URL+"/api/sentiment", &sent); code != http.StatusOK {
		t.Fatalf("sentiment status = %d", code)
	}
	if sent.Total != 1 {
		t.Errorf("sentiment total = %d", sent.Total)
	}

	csvResp, err := http.Get(ts.URL + "/api/results.csv")
	if err != nil {
		t.Fatalf("GET results.csv: %v", err)
	}
	defer csvResp.Body.Close()
	if ct := csvResp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestSearchRejectsBadDates(t *testing.T) {
	ts, _ := newTestServer(t)

	for _, payload := range []string{
		`{"start_date":"12-05-2025"}`,
		`{"start_date":"2025-05-12","end_date":"2025-05-01"}`,
		`not json`,
	} {
		resp, err := http.Post(ts.URL+"/api/search", "application/json", strings.NewReader(payload))
		if err != nil {
			t.Fatalf("POST: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("payload %q: status = %d, want 400", payload, resp.StatusCode)
		}
	}
}

func TestBuildRequestEndDateInclusive(t *testing.T) {
	req, err := buildRequest(searchBody{EndDate: "2025-05-12"})
	if err != nil {
		t.Fatalf("buildRequest: %v", err)
	}
	if req.EndDate.Hour() != 23 || req.EndDate.Minute() != 59 {
		t.Errorf("EndDate = %v, want end of day", req.EndDate)
	}
}

func TestDashboardServesHTML(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q", ct)
	}
}
