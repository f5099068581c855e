package sources

import (
	"fmt"

	"github.com/newswatch-id/newswatch/internal/types"
)

// Batampos scrapes batampos.co.id, a WordPress site on a tagDiv theme.
// Batam-local coverage makes it the densest Kepri source in the set.
type Batampos struct {
	baseURL string
}

// NewBatampos returns the batampos.co.id adapter.
func NewBatampos() *Batampos {
	return &Batampos{baseURL: "https://batampos.co.id"}
}

func (b *Batampos) Name() string        { return "batampos" }
func (b *Batampos) FetcherType() string { return "http" }

func (b *Batampos) SearchURL(keyword string, page int) string {
	if page <= 1 {
		return fmt.Sprintf("%s/?%s", b.baseURL, searchQuery("s", keyword))
	}
	return fmt.Sprintf("%s/page/%d/?%s", b.baseURL, page, searchQuery("s", keyword))
}

func (b *Batampos) ArticleLinks(resp *types.Response) []string {
	doc, err := resp.Document()
	if err != nil {
		return nil
	}
	return absoluteLinks(resp, doc,
		".td-module-title a, h2.entry-title a, h3.entry-title a",
		"batampos.co.id",
	)
}

func (b *Batampos) ParseArticle(resp *types.Response, keyword string) (*types.Article, error) {
	return parseCSSArticle(resp, b.Name(), keyword, cssArticleSpec{
		title:    []string{"h1.entry-title", "h1.tdb-title-text", "h1"},
		date:     []string{"time.entry-date", ".td-post-date time", "time"},
		author:   []string{".td-post-author-name a", ".author a", "a[rel=author]"},
		category: []string{".td-post-category", ".entry-crumbs a:last-of-type"},
		content:  []string{".td-post-content", ".tdb_single_content", ".entry-content"},
	})
}
