package types

import (
	"strings"
	"time"
)

// Article is a single news article extracted from a publisher page.
type Article struct {
	// Title is the article headline. Required.
	Title string `json:"title" bson:"title"`

	// PublishDate is the publication timestamp. Required.
	PublishDate time.Time `json:"publish_date" bson:"publish_date"`

	// Author is the article byline, "Unknown" when the page has none.
	Author string `json:"author" bson:"author"`

	// Content is the article body as plain text paragraphs.
	Content string `json:"content" bson:"content"`

	// Keyword is the search keyword that discovered this article.
	Keyword string `json:"keyword" bson:"keyword"`

	// Category is the publisher section (breadcrumb), "Unknown" when absent.
	Category string `json:"category" bson:"category"`

	// Source is the publisher identifier (e.g. "detik.com").
	Source string `json:"source" bson:"source"`

	// Link is the canonical article URL. Unique key within a run.
	Link string `json:"link" bson:"link"`
}

// ArticleColumns is the fixed export column order for CSV and tables.
var ArticleColumns = []string{
	"title", "publish_date", "author", "content",
	"keyword", "category", "source", "link",
}

// Row returns the article's values in ArticleColumns order.
func (a *Article) Row() []string {
	return []string{
		a.Title,
		a.PublishDate.Format("2006-01-02 15:04:05"),
		a.Author,
		a.Content,
		a.Keyword,
		a.Category,
		a.Source,
		a.Link,
	}
}

// Text returns title and content joined, the unit of matching for
// keyword and region filters.
func (a *Article) Text() string {
	return a.Title + "\n" + a.Content
}

// Clone returns a copy of the article.
func (a *Article) Clone() *Article {
	c := *a
	return &c
}

// SearchRequest carries one dashboard or CLI search through the pipeline.
// It is request-scoped: nothing in the pipeline holds search state beyond it.
type SearchRequest struct {
	// Keywords are the search terms, one scrape sweep per keyword.
	// An empty keyword matches every article a source lists.
	Keywords []string `json:"keywords"`

	// Sources are publisher identifiers to scrape. Empty means all registered.
	Sources []string `json:"sources"`

	// StartDate bounds pagination: articles older than this stop the sweep
	// for their source. Zero means unbounded.
	StartDate time.Time `json:"start_date"`

	// EndDate drops articles published after it. Zero means unbounded.
	EndDate time.Time `json:"end_date"`

	// KepriOnly keeps only articles with a Riau Islands marker.
	KepriOnly bool `json:"kepri_only"`
}

// NormalizedKeywords returns trimmed, lowercased keywords; an empty
// request yields a single empty keyword, which matches all articles.
func (r *SearchRequest) NormalizedKeywords() []string {
	var out []string
	for _, k := range r.Keywords {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			out = append(out, k)
		}
	}
	if len(out) == 0 {
		return []string{""}
	}
	return out
}

// ResultSet is the aggregated outcome of one scrape run. Articles appear in
// discovery order with duplicate links already dropped.
type ResultSet struct {
	Articles []*Article `json:"articles"`

	// Skipped counts per-item failures that did not abort the run.
	Skipped SkipCounts `json:"skipped"`

	// StartedAt and Duration describe the run itself.
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
}

// SkipCounts breaks down why items were dropped during a run.
type SkipCounts struct {
	FetchFailures int `json:"fetch_failures"`
	ParseFailures int `json:"parse_failures"`
	Filtered      int `json:"filtered"`
	Duplicates    int `json:"duplicates"`
}

// Total returns the sum of all skip reasons.
func (s SkipCounts) Total() int {
	return s.FetchFailures + s.ParseFailures + s.Filtered + s.Duplicates
}

// Links returns every article link in order.
func (rs *ResultSet) Links() []string {
	links := make([]string, len(rs.Articles))
	for i, a := range rs.Articles {
		links[i] = a.Link
	}
	return links
}
