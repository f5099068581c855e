package sources

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"

	"github.com/newswatch-id/newswatch/internal/types"
)

// Tempo scrapes tempo.co. The site renders its search results and article
// bodies client-side, so the adapter asks for the browser fetcher and
// extracts with XPath, which copes better with tempo's deeply nested
// generated markup than selector chains do.
type Tempo struct {
	baseURL string
}

// NewTempo returns the tempo.co adapter.
func NewTempo() *Tempo {
	return &Tempo{baseURL: "https://www.tempo.co"}
}

func (t *Tempo) Name() string        { return "tempo" }
func (t *Tempo) FetcherType() string { return "browser" }

func (t *Tempo) SearchURL(keyword string, page int) string {
	return fmt.Sprintf("%s/search?%s", t.baseURL, searchQuery(
		"q", keyword,
		"page", fmt.Sprintf("%d", page),
	))
}

func (t *Tempo) ArticleLinks(resp *types.Response) []string {
	node, err := resp.Node()
	if err != nil {
		return nil
	}

	base, err := url.Parse(resp.FinalURL)
	if err != nil {
		base = resp.Request.URL
	}
	if base == nil {
		return nil
	}

	seen := make(map[string]bool)
	var links []string

	for _, a := range htmlquery.Find(node, `//article//a[@href] | //div[contains(@class,"card")]//a[@href and .//h2]`) {
		href := strings.TrimSpace(htmlquery.SelectAttr(a, "href"))
		if href == "" || strings.HasPrefix(href, "#") {
			continue
		}
		parsed, err := url.Parse(href)
		if err != nil {
			continue
		}
		resolved := base.ResolveReference(parsed)
		if resolved.Scheme != "http" && resolved.Scheme != "https" {
			continue
		}
		if !strings.HasSuffix(resolved.Hostname(), "tempo.co") {
			continue
		}
		// Video and data-visual properties are not parseable articles.
		if strings.Contains(resolved.Path, "/video/") || strings.Contains(resolved.Path, "/data/") {
			continue
		}
		resolved.Fragment = ""

		abs := resolved.String()
		if !seen[abs] {
			seen[abs] = true
			links = append(links, abs)
		}
	}

	return links
}

func (t *Tempo) ParseArticle(resp *types.Response, keyword string) (*types.Article, error) {
	node, err := resp.Node()
	if err != nil {
		return nil, &types.ParseError{URL: resp.Request.URLString(), Source: t.Name(), Err: err}
	}

	title := xpathText(node, `//h1`)
	if title == "" {
		title = xpathAttr(node, `//meta[@property="og:title"]`, "content")
	}
	if title == "" {
		return nil, &types.ParseError{URL: resp.Request.URLString(), Source: t.Name(), Err: types.ErrMissingTitle}
	}

	rawDate := xpathAttr(node, `//time[@datetime]`, "datetime")
	if rawDate == "" {
		rawDate = xpathText(node, `//time | //p[contains(@class,"date")] | //span[contains(@class,"date")]`)
	}
	if rawDate == "" {
		rawDate = xpathAttr(node, `//meta[@property="article:published_time"]`, "content")
	}
	publishDate, err := ParseDate(rawDate)
	if err != nil {
		return nil, &types.ParseError{URL: resp.Request.URLString(), Source: t.Name(), Err: types.ErrMissingDate}
	}

	author := xpathText(node, `//a[contains(@href,"/reporter/")] | //span[contains(@class,"author")]`)
	if author == "" {
		author = "Unknown"
	}

	category := xpathText(node, `//nav//a[last()] | //a[contains(@class,"breadcrumb")][last()]`)
	if category == "" {
		category = "Unknown"
	}

	var paragraphs []string
	for _, p := range htmlquery.Find(node, `//div[@id="content-wrapper"]//p | //article//p[not(ancestor::figure)]`) {
		text := strings.TrimSpace(htmlquery.InnerText(p))
		switch text {
		case "", "ADVERTISEMENT", "Baca juga:":
			continue
		}
		paragraphs = append(paragraphs, text)
	}
	content := strings.Join(paragraphs, "\n\n")
	if content == "" {
		return nil, &types.ParseError{URL: resp.Request.URLString(), Source: t.Name(), Err: types.ErrMissingBody}
	}

	link := resp.FinalURL
	if link == "" {
		link = resp.Request.URLString()
	}

	return &types.Article{
		Title:       title,
		PublishDate: publishDate,
		Author:      author,
		Content:     content,
		Keyword:     keyword,
		Category:    category,
		Source:      t.Name(),
		Link:        link,
	}, nil
}

// xpathText returns the trimmed inner text of the first node the
// expression matches.
func xpathText(node *html.Node, expr string) string {
	if found := htmlquery.FindOne(node, expr); found != nil {
		return strings.TrimSpace(htmlquery.InnerText(found))
	}
	return ""
}

// xpathAttr returns an attribute from the first node the expression matches.
func xpathAttr(node *html.Node, expr, attr string) string {
	if found := htmlquery.FindOne(node, expr); found != nil {
		return strings.TrimSpace(htmlquery.SelectAttr(found, attr))
	}
	return ""
}
