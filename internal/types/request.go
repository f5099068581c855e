package types

import (
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Request tags, set by the scrape engine.
const (
	TagListing = "listing"
	TagArticle = "article"
)

// Request is a single page fetch issued by the scrape engine.
type Request struct {
	// URL is the target page.
	URL *url.URL

	// Headers are extra HTTP headers for this request.
	Headers http.Header

	// Tag marks the request as a listing or article page.
	Tag string

	// Source is the publisher identifier this request belongs to.
	Source string

	// Keyword is the search keyword that produced this request.
	Keyword string

	// MaxRetries bounds transient-failure retries for this request.
	MaxRetries int

	// Timeout overrides the configured request timeout when > 0.
	Timeout time.Duration

	// FetcherType selects the fetcher: "http" (default) or "browser".
	FetcherType string

	// Meta carries fetcher hints, e.g. "wait_selector" for browser fetches.
	Meta map[string]any

	// CreatedAt is when the request was built.
	CreatedAt time.Time
}

// NewRequest builds a GET request with defaults.
func NewRequest(rawURL string) (*Request, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL %q: %w", rawURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid URL %q: %w", rawURL, ErrInvalidURL)
	}

	return &Request{
		URL:         u,
		Headers:     make(http.Header),
		MaxRetries:  3,
		FetcherType: "http",
		Meta:        make(map[string]any),
		CreatedAt:   time.Now(),
	}, nil
}

// URLString returns the request URL as a string.
func (r *Request) URLString() string {
	if r.URL == nil {
		return ""
	}
	return r.URL.String()
}

// Domain returns the hostname of the request URL.
func (r *Request) Domain() string {
	if r.URL == nil {
		return ""
	}
	return r.URL.Hostname()
}
