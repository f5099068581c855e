package pipeline

import (
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/newswatch-id/newswatch/internal/filter"
	"github.com/newswatch-id/newswatch/internal/types"
)

// TrimMiddleware trims whitespace from all text fields.
type TrimMiddleware struct{}

func (m *TrimMiddleware) Name() string { return "trim" }

func (m *TrimMiddleware) Process(a *types.Article) (*types.Article, error) {
	a.Title = strings.TrimSpace(a.Title)
	a.Author = strings.TrimSpace(a.Author)
	a.Content = strings.TrimSpace(a.Content)
	a.Category = strings.TrimSpace(a.Category)
	a.Link = strings.TrimSpace(a.Link)
	return a, nil
}

// RequiredFieldsMiddleware drops articles missing a title, publish date,
// or body.
type RequiredFieldsMiddleware struct{}

func (m *RequiredFieldsMiddleware) Name() string { return "required_fields" }

func (m *RequiredFieldsMiddleware) Process(a *types.Article) (*types.Article, error) {
	if a.Title == "" || a.Content == "" || a.PublishDate.IsZero() {
		return nil, nil
	}
	return a, nil
}

// DateWindowMiddleware drops articles published outside [Start, End].
// A zero bound is open on that side.
type DateWindowMiddleware struct {
	Start time.Time
	End   time.Time
}

func (m *DateWindowMiddleware) Name() string { return "date_window" }

func (m *DateWindowMiddleware) Process(a *types.Article) (*types.Article, error) {
	if !m.Start.IsZero() && a.PublishDate.Before(m.Start) {
		return nil, nil
	}
	if !m.End.IsZero() && a.PublishDate.After(m.End) {
		return nil, nil
	}
	return a, nil
}

// RelevanceMiddleware drops articles that fail the keyword check or,
// when region filtering is on, the Kepri region check.
type RelevanceMiddleware struct {
	Matcher    *filter.Matcher
	RegionOnly bool
}

func (m *RelevanceMiddleware) Name() string { return "relevance" }

func (m *RelevanceMiddleware) Process(a *types.Article) (*types.Article, error) {
	if !m.Matcher.MatchesKeyword(a, a.Keyword) {
		return nil, nil
	}
	if m.RegionOnly && !m.Matcher.MatchesRegion(a) {
		return nil, nil
	}
	return a, nil
}

// DedupMiddleware drops articles whose canonical link has been seen.
// First write wins: the earlier article keeps its keyword attribution.
type DedupMiddleware struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

func NewDedupMiddleware() *DedupMiddleware {
	return &DedupMiddleware{seen: make(map[string]struct{})}
}

func (m *DedupMiddleware) Name() string { return "dedup" }

func (m *DedupMiddleware) Process(a *types.Article) (*types.Article, error) {
	key := CanonicalLink(a.Link)

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.seen[key]; exists {
		return nil, nil
	}
	m.seen[key] = struct{}{}
	return a, nil
}

// Count returns the number of unique links seen.
func (m *DedupMiddleware) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.seen)
}

// CanonicalLink normalizes a URL for deduplication:
// - lowercases scheme and host
// - removes fragment and tracking parameters
// - sorts remaining query parameters
// - removes trailing slash (except root)
// - removes default ports
func CanonicalLink(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""

	host := u.Hostname()
	port := u.Port()
	if (u.Scheme == "http" && port == "80") || (u.Scheme == "https" && port == "443") {
		u.Host = host
	}

	if u.RawQuery != "" {
		params := u.Query()
		for k := range params {
			if strings.HasPrefix(k, "utm_") || k == "fbclid" || k == "gclid" || k == "ref" {
				delete(params, k)
			}
		}

		keys := make([]string, 0, len(params))
		for k := range params {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		var sorted []string
		for _, k := range keys {
			vals := params[k]
			sort.Strings(vals)
			for _, v := range vals {
				sorted = append(sorted, url.QueryEscape(k)+"="+url.QueryEscape(v))
			}
		}
		u.RawQuery = strings.Join(sorted, "&")
	}

	if u.Path != "/" && strings.HasSuffix(u.Path, "/") {
		u.Path = strings.TrimRight(u.Path, "/")
	}
	if u.Path == "" {
		u.Path = "/"
	}

	return u.String()
}
