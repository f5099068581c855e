package sources

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/newswatch-id/newswatch/internal/types"
)

// cssArticleSpec names the selector fallback chains for one publisher's
// article markup. Selectors are tried in order; the first match wins.
type cssArticleSpec struct {
	title    []string
	date     []string
	author   []string
	category []string
	content  []string
}

// parseCSSArticle runs a selector spec against an article page. Missing
// title, date, or body is a *types.ParseError; the OpenGraph/meta fallback
// is consulted before giving up on title and date, since most Indonesian
// publishers ship correct og: tags even when their layout churns.
func parseCSSArticle(resp *types.Response, source, keyword string, spec cssArticleSpec) (*types.Article, error) {
	doc, err := resp.Document()
	if err != nil {
		return nil, &types.ParseError{URL: resp.Request.URLString(), Source: source, Err: err}
	}

	meta := extractMeta(doc)

	title := firstText(doc, spec.title...)
	if title == "" {
		title = meta.title
	}
	if title == "" {
		return nil, &types.ParseError{URL: resp.Request.URLString(), Source: source, Err: types.ErrMissingTitle}
	}

	publishDate, dateErr := parseDateChain(doc, spec.date, meta)
	if dateErr != nil {
		return nil, &types.ParseError{URL: resp.Request.URLString(), Source: source, Err: dateErr}
	}

	author := firstText(doc, spec.author...)
	if author == "" {
		author = meta.author
	}
	if author == "" {
		author = "Unknown"
	}

	category := firstText(doc, spec.category...)
	if category == "" {
		category = meta.section
	}
	if category == "" {
		category = "Unknown"
	}

	var content string
	for _, sel := range spec.content {
		node := doc.Find(sel).First()
		if node.Length() == 0 {
			continue
		}
		if content = collectParagraphs(dropNonContent(node)); content != "" {
			break
		}
		// Fallback: flatten whatever text the container has.
		if content = strings.TrimSpace(node.Text()); content != "" {
			break
		}
	}
	if content == "" {
		return nil, &types.ParseError{URL: resp.Request.URLString(), Source: source, Err: types.ErrMissingBody}
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
		Source:      source,
		Link:        link,
	}, nil
}

// parseDateChain tries the spec's date selectors (preferring a datetime
// attribute on <time> nodes), then the page's meta tags.
func parseDateChain(doc *goquery.Document, selectors []string, meta pageMeta) (time.Time, error) {
	for _, sel := range selectors {
		node := doc.Find(sel).First()
		if node.Length() == 0 {
			continue
		}
		if dt, ok := node.Attr("datetime"); ok {
			if t, err := ParseDate(dt); err == nil {
				return t, nil
			}
		}
		if text := strings.TrimSpace(node.Text()); text != "" {
			if t, err := ParseDate(text); err == nil {
				return t, nil
			}
		}
	}
	if meta.published != "" {
		if t, err := ParseDate(meta.published); err == nil {
			return t, nil
		}
	}
	return time.Time{}, types.ErrMissingDate
}

// pageMeta holds the OpenGraph/meta fields article pages commonly carry.
type pageMeta struct {
	title     string
	published string
	author    string
	section   string
}

// extractMeta reads og:/article: meta tags and the <title> element.
func extractMeta(doc *goquery.Document) pageMeta {
	var meta pageMeta

	doc.Find("meta").Each(func(_ int, m *goquery.Selection) {
		content, ok := m.Attr("content")
		if !ok || content == "" {
			return
		}
		key, _ := m.Attr("property")
		if key == "" {
			key, _ = m.Attr("name")
		}
		switch key {
		case "og:title":
			meta.title = strings.TrimSpace(content)
		case "article:published_time", "publishdate", "pubdate":
			meta.published = strings.TrimSpace(content)
		case "article:author", "author":
			meta.author = strings.TrimSpace(content)
		case "article:section":
			meta.section = strings.TrimSpace(content)
		}
	})

	if meta.title == "" {
		meta.title = strings.TrimSpace(doc.Find("title").First().Text())
	}

	return meta
}
