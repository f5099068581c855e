// Package sources holds one adapter per supported publisher. Each adapter
// knows its publisher's search URL pattern, how to pull article links out of
// a listing page, and how to turn an article page into an Article.
package sources

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/newswatch-id/newswatch/internal/types"
)

// Source is the per-publisher extraction contract.
//
// ArticleLinks never fails: malformed keywords or markup yield an empty
// slice. ParseArticle returns a *types.ParseError when a required field
// (title, publish date, body) is missing; the caller skips the article.
type Source interface {
	// Name returns the publisher identifier, e.g. "detik".
	Name() string

	// FetcherType selects "http" or "browser" for this publisher's pages.
	FetcherType() string

	// SearchURL builds the listing/search URL for a keyword and 1-based page.
	SearchURL(keyword string, page int) string

	// ArticleLinks extracts absolute article URLs from a listing page.
	ArticleLinks(resp *types.Response) []string

	// ParseArticle extracts an Article from an article page.
	ParseArticle(resp *types.Response, keyword string) (*types.Article, error)
}

// Registry is the closed set of known publishers.
type Registry struct {
	sources map[string]Source
}

// NewRegistry returns a registry populated with every supported publisher.
func NewRegistry() *Registry {
	r := &Registry{sources: make(map[string]Source)}
	for _, s := range []Source{
		NewAntaranews(),
		NewBatampos(),
		NewCNBCIndonesia(),
		NewDetik(),
		NewHarianKepri(),
		NewKepriAntaranews(),
		NewTempo(),
	} {
		r.sources[s.Name()] = s
	}
	return r
}

// Register adds or replaces a source. Later registrations win, which is
// how custom adapters shadow the built-in ones.
func (r *Registry) Register(s Source) {
	r.sources[s.Name()] = s
}

// Lookup returns the source for a publisher identifier.
func (r *Registry) Lookup(name string) (Source, error) {
	s, ok := r.sources[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", types.ErrUnknownSource, name)
	}
	return s, nil
}

// Names returns all publisher identifiers, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.sources))
	for name := range r.sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Select resolves the requested publisher identifiers. An empty request
// selects every registered publisher.
func (r *Registry) Select(names []string) ([]Source, error) {
	if len(names) == 0 {
		all := make([]Source, 0, len(r.sources))
		for _, name := range r.Names() {
			all = append(all, r.sources[name])
		}
		return all, nil
	}

	selected := make([]Source, 0, len(names))
	for _, name := range names {
		s, err := r.Lookup(name)
		if err != nil {
			return nil, err
		}
		selected = append(selected, s)
	}
	return selected, nil
}

// --- shared extraction helpers ---

// firstText returns the trimmed text of the first selector that matches.
func firstText(doc *goquery.Document, selectors ...string) string {
	for _, sel := range selectors {
		if node := doc.Find(sel).First(); node.Length() > 0 {
			if text := strings.TrimSpace(node.Text()); text != "" {
				return text
			}
		}
	}
	return ""
}

// collectParagraphs joins the non-empty paragraphs under a selection,
// skipping boilerplate the publishers inject between paragraphs.
func collectParagraphs(sel *goquery.Selection) string {
	var paragraphs []string
	sel.Find("p").Each(func(_ int, p *goquery.Selection) {
		text := strings.TrimSpace(p.Text())
		switch text {
		case "", "ADVERTISEMENT", "SCROLL TO CONTINUE WITH CONTENT", "Baca juga:":
			return
		}
		paragraphs = append(paragraphs, text)
	})
	return strings.Join(paragraphs, "\n\n")
}

// dropNonContent removes script/style/ad containers before text extraction.
func dropNonContent(sel *goquery.Selection) *goquery.Selection {
	sel.Find("script, style, iframe, ins, figure, .ads, .advertisement, .linksisip, .baca-juga, .related").Remove()
	return sel
}

// absoluteLinks resolves hrefs against the page URL, keeps http(s) links on
// the given host, strips fragments, and de-duplicates preserving order.
func absoluteLinks(resp *types.Response, doc *goquery.Document, selector, host string) []string {
	base, err := url.Parse(resp.FinalURL)
	if err != nil {
		base = resp.Request.URL
	}
	if base == nil {
		return nil
	}

	seen := make(map[string]bool)
	var links []string

	doc.Find(selector).Each(func(_ int, a *goquery.Selection) {
		href, ok := a.Attr("href")
		if !ok {
			return
		}
		href = strings.TrimSpace(href)
		if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(href, "javascript:") {
			return
		}

		parsed, err := url.Parse(href)
		if err != nil {
			return
		}
		resolved := base.ResolveReference(parsed)
		if resolved.Scheme != "http" && resolved.Scheme != "https" {
			return
		}
		if host != "" && !strings.HasSuffix(resolved.Hostname(), host) {
			return
		}
		resolved.Fragment = ""

		abs := resolved.String()
		if !seen[abs] {
			seen[abs] = true
			links = append(links, abs)
		}
	})

	return links
}

// searchQuery builds an escaped query string from pairs of key, value.
func searchQuery(pairs ...string) string {
	q := url.Values{}
	for i := 0; i+1 < len(pairs); i += 2 {
		q.Set(pairs[i], pairs[i+1])
	}
	return q.Encode()
}
