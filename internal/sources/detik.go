package sources

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/newswatch-id/newswatch/internal/types"
)

// Detik scrapes detik.com via its site-wide search. Non-article properties
// (video, photo galleries, lifestyle verticals) share the search index, so
// listing links go through a blocklist before they are fetched.
type Detik struct {
	baseURL string
}

// NewDetik returns the detik.com adapter.
func NewDetik() *Detik {
	return &Detik{baseURL: "https://www.detik.com"}
}

func (d *Detik) Name() string        { return "detik" }
func (d *Detik) FetcherType() string { return "http" }

func (d *Detik) SearchURL(keyword string, page int) string {
	return fmt.Sprintf("%s/search/searchall?%s", d.baseURL, searchQuery(
		"query", keyword,
		"page", strconv.Itoa(page),
		"result_type", "relevansi",
	))
}

var detikLinkBlocklist = []string{
	"wolipop.detik.com",
	"20.detik.com",
	"/detiktv/",
	"/pop/",
	"/foto-",
	"-video",
}

func (d *Detik) ArticleLinks(resp *types.Response) []string {
	doc, err := resp.Document()
	if err != nil {
		return nil
	}

	raw := absoluteLinks(resp, doc, ".list-content__item h3.media__title a, article h2.media__title a", "detik.com")

	links := raw[:0]
	for _, link := range raw {
		if detikBlocked(link) {
			continue
		}
		// ?single=1 collapses multi-page articles into one document.
		if strings.Contains(link, "?") {
			link += "&single=1"
		} else {
			link += "?single=1"
		}
		links = append(links, link)
	}
	return links
}

func detikBlocked(link string) bool {
	for _, frag := range detikLinkBlocklist {
		if strings.Contains(link, frag) {
			return true
		}
	}
	return false
}

func (d *Detik) ParseArticle(resp *types.Response, keyword string) (*types.Article, error) {
	return parseCSSArticle(resp, d.Name(), keyword, cssArticleSpec{
		title:    []string{".detail__title", "h1.detail__title", "h1"},
		date:     []string{".detail__date", ".date", "time"},
		author:   []string{".detail__author", ".author"},
		category: []string{".page__breadcrumb a", ".breadcrumb a"},
		content:  []string{".detail__body-text", ".itp_bodycontent", ".detail-content"},
	})
}
