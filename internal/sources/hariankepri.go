package sources

import (
	"fmt"

	"github.com/newswatch-id/newswatch/internal/types"
)

// HarianKepri scrapes hariankepri.com, a WordPress site dedicated to
// Riau Islands news. Like the Antara Kepri bureau, everything it
// publishes is region-scoped at the source.
type HarianKepri struct {
	baseURL string
}

// NewHarianKepri returns the hariankepri.com adapter.
func NewHarianKepri() *HarianKepri {
	return &HarianKepri{baseURL: "https://hariankepri.com"}
}

func (h *HarianKepri) Name() string        { return "hariankepri" }
func (h *HarianKepri) FetcherType() string { return "http" }

func (h *HarianKepri) SearchURL(keyword string, page int) string {
	if page <= 1 {
		return fmt.Sprintf("%s/?%s", h.baseURL, searchQuery("s", keyword))
	}
	return fmt.Sprintf("%s/page/%d/?%s", h.baseURL, page, searchQuery("s", keyword))
}

func (h *HarianKepri) ArticleLinks(resp *types.Response) []string {
	doc, err := resp.Document()
	if err != nil {
		return nil
	}
	return absoluteLinks(resp, doc,
		"h2.entry-title a, h3.entry-title a, .jeg_post_title a",
		"hariankepri.com",
	)
}

func (h *HarianKepri) ParseArticle(resp *types.Response, keyword string) (*types.Article, error) {
	return parseCSSArticle(resp, h.Name(), keyword, cssArticleSpec{
		title:    []string{"h1.entry-title", "h1.jeg_post_title", "h1"},
		date:     []string{"time.entry-date", ".jeg_meta_date a", "time"},
		author:   []string{".jeg_meta_author a", ".author a", "a[rel=author]"},
		category: []string{".jeg_meta_category a", ".entry-category a"},
		content:  []string{".entry-content", ".content-inner", ".jeg_share_container + div"},
	})
}
