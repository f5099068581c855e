package sources

import (
	"fmt"
	"strconv"

	"github.com/newswatch-id/newswatch/internal/types"
)

// antaraCore implements the shared extraction logic for the Antara news
// network. The national site and the Kepri regional bureau run the same
// CMS with the same markup, differing only in hostname.
type antaraCore struct {
	name    string
	baseURL string
	host    string
}

func (a *antaraCore) Name() string        { return a.name }
func (a *antaraCore) FetcherType() string { return "http" }

func (a *antaraCore) SearchURL(keyword string, page int) string {
	return fmt.Sprintf("%s/search?%s", a.baseURL, searchQuery(
		"q", keyword,
		"page", strconv.Itoa(page),
	))
}

func (a *antaraCore) ArticleLinks(resp *types.Response) []string {
	doc, err := resp.Document()
	if err != nil {
		return nil
	}
	return absoluteLinks(resp, doc,
		"article.simple-post h3 a, .card__post__title a, .post-content h3 a",
		a.host,
	)
}

func (a *antaraCore) ParseArticle(resp *types.Response, keyword string) (*types.Article, error) {
	return parseCSSArticle(resp, a.name, keyword, cssArticleSpec{
		title:    []string{"h1.post-title", "h1"},
		date:     []string{"span.article-date", ".post-date", "time"},
		author:   []string{".text-muted.mt-2 a", ".author"},
		category: []string{".breadcrumbs a:last-of-type", ".breadcrumb a:last-of-type"},
		content:  []string{".post-content.clearfix", ".wrap__article-detail-content", ".post-content"},
	})
}

// Antaranews is the national antaranews.com adapter.
type Antaranews struct{ antaraCore }

// NewAntaranews returns the antaranews.com adapter.
func NewAntaranews() *Antaranews {
	return &Antaranews{antaraCore{
		name:    "antaranews",
		baseURL: "https://www.antaranews.com",
		host:    "antaranews.com",
	}}
}

// KepriAntaranews is the Antara Kepri regional bureau adapter. Its feed is
// region-scoped at the source, so its articles pass region filtering on
// origin alone.
type KepriAntaranews struct{ antaraCore }

// NewKepriAntaranews returns the kepri.antaranews.com adapter.
func NewKepriAntaranews() *KepriAntaranews {
	return &KepriAntaranews{antaraCore{
		name:    "kepriantaranews",
		baseURL: "https://kepri.antaranews.com",
		host:    "kepri.antaranews.com",
	}}
}
