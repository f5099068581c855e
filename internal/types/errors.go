package types

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for common failure modes.
var (
	ErrMaxRetries    = errors.New("max retries exceeded")
	ErrEmptyResponse = errors.New("empty response body")
	ErrInvalidURL    = errors.New("invalid URL")
	ErrMissingTitle  = errors.New("article title not found")
	ErrMissingDate   = errors.New("publish date not found")
	ErrMissingBody   = errors.New("article body not found")
	ErrUnknownSource = errors.New("unknown source")
	ErrUnknownFormat = errors.New("unknown output format")
	ErrNoFetcher     = errors.New("no fetcher available for request")
	ErrRunStopped    = errors.New("scrape run stopped")
)

// FetchError wraps errors that occur while fetching a page.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
	Retryable  bool
	RetryAfter time.Duration // populated from Retry-After on HTTP 429
}

func (e *FetchError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("fetch error for %s (status %d): %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch error for %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

func (e *FetchError) IsRetryable() bool { return e.Retryable }

// ParseError signals that an article page could not be turned into an
// Article. The item is skipped; the run continues.
type ParseError struct {
	URL    string
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error for %s (source=%s): %v", e.URL, e.Source, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// StorageError wraps errors from export/archive backends.
type StorageError struct {
	Backend string
	Err     error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error (%s): %v", e.Backend, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// PipelineError wraps errors raised by a pipeline stage.
type PipelineError struct {
	Stage string
	Link  string
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("pipeline error at stage %q: %v", e.Stage, e.Err)
}

func (e *PipelineError) Unwrap() error { return e.Err }
