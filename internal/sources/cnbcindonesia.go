package sources

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/newswatch-id/newswatch/internal/types"
)

// CNBCIndonesia scrapes cnbcindonesia.com search results. Video and photo
// entries share the result list and are skipped by URL shape.
type CNBCIndonesia struct {
	baseURL string
}

// NewCNBCIndonesia returns the cnbcindonesia.com adapter.
func NewCNBCIndonesia() *CNBCIndonesia {
	return &CNBCIndonesia{baseURL: "https://www.cnbcindonesia.com"}
}

func (c *CNBCIndonesia) Name() string        { return "cnbcindonesia" }
func (c *CNBCIndonesia) FetcherType() string { return "http" }

func (c *CNBCIndonesia) SearchURL(keyword string, page int) string {
	return fmt.Sprintf("%s/search?%s", c.baseURL, searchQuery(
		"query", keyword,
		"p", strconv.Itoa(page),
		"kanal", "",
		"tipe", "artikel",
	))
}

func (c *CNBCIndonesia) ArticleLinks(resp *types.Response) []string {
	doc, err := resp.Document()
	if err != nil {
		return nil
	}

	raw := absoluteLinks(resp, doc,
		"article a, .list article a, .nhl-list a",
		"cnbcindonesia.com",
	)

	links := raw[:0]
	for _, link := range raw {
		if strings.Contains(link, "/video/") || strings.Contains(link, "/foto/") {
			continue
		}
		links = append(links, link)
	}
	return links
}

func (c *CNBCIndonesia) ParseArticle(resp *types.Response, keyword string) (*types.Article, error) {
	return parseCSSArticle(resp, c.Name(), keyword, cssArticleSpec{
		title:    []string{"h1.mb-4", "h1"},
		date:     []string{".text-cm.text-gray", ".date", "time"},
		author:   []string{".author a", ".author"},
		category: []string{".subkanal", ".breadcrumb a:last-of-type"},
		content:  []string{".detail-text", ".detail_text", "article .min-h-screen"},
	})
}
