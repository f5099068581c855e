package fetcher

import (
	"context"

	"github.com/newswatch-id/newswatch/internal/types"
)

// Fetcher retrieves pages for the scrape engine.
type Fetcher interface {
	// Fetch retrieves the content at the given request's URL. Transient
	// failures are retried internally up to the request's retry budget;
	// exhaustion surfaces as a *types.FetchError.
	Fetch(ctx context.Context, req *types.Request) (*types.Response, error)

	// Close releases any resources held by the fetcher.
	Close() error

	// Type returns the fetcher type identifier.
	Type() string
}
