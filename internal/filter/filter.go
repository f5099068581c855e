// Package filter decides whether an article belongs in a result set:
// keyword relevance and Riau Islands (Kepri) region relevance.
package filter

import (
	"strings"

	"github.com/newswatch-id/newswatch/internal/types"
)

// KepriMarkers are the place names that mark an article as Riau Islands
// coverage. Matching is case-insensitive substring search over the
// article's title and body.
var KepriMarkers = []string{
	"kepri",
	"kepulauan riau",
	"batam",
	"tanjungpinang",
	"tanjung pinang",
	"bintan",
	"lingga",
	"karimun",
	"anambas",
	"natuna",
}

// regionalSources publish Kepri news exclusively; their articles pass the
// region check without a marker scan.
var regionalSources = map[string]bool{
	"hariankepri":     true,
	"kepriantaranews": true,
}

// Matcher applies keyword and region checks to articles.
type Matcher struct {
	markers []string
}

// NewMatcher builds a matcher from the fixed marker list plus any
// operator-configured extras.
func NewMatcher(extraMarkers []string) *Matcher {
	markers := make([]string, 0, len(KepriMarkers)+len(extraMarkers))
	markers = append(markers, KepriMarkers...)
	for _, m := range extraMarkers {
		m = strings.ToLower(strings.TrimSpace(m))
		if m != "" {
			markers = append(markers, m)
		}
	}
	return &Matcher{markers: markers}
}

// MatchesKeyword reports whether the article text contains the keyword.
// The empty keyword matches everything.
func (m *Matcher) MatchesKeyword(article *types.Article, keyword string) bool {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	if keyword == "" {
		return true
	}
	return strings.Contains(strings.ToLower(article.Text()), keyword)
}

// MatchesRegion reports whether the article is Riau Islands coverage:
// either it came from a region-scoped publisher or its text mentions a
// Kepri place name.
func (m *Matcher) MatchesRegion(article *types.Article) bool {
	if regionalSources[article.Source] {
		return true
	}
	text := strings.ToLower(article.Text())
	for _, marker := range m.markers {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}
