package scrape

import "sync/atomic"

// Stats tracks run counters. All fields are updated atomically; a run
// touches them from many goroutines.
type Stats struct {
	PagesFetched    atomic.Int64
	ArticlesFetched atomic.Int64
	ArticlesKept    atomic.Int64
	FetchFailures   atomic.Int64
	ParseFailures   atomic.Int64
	Filtered        atomic.Int64
	Duplicates      atomic.Int64
}

// StatsSnapshot is a point-in-time copy of the counters.
type StatsSnapshot struct {
	PagesFetched    int64 `json:"pages_fetched"`
	ArticlesFetched int64 `json:"articles_fetched"`
	ArticlesKept    int64 `json:"articles_kept"`
	FetchFailures   int64 `json:"fetch_failures"`
	ParseFailures   int64 `json:"parse_failures"`
	Filtered        int64 `json:"filtered"`
	Duplicates      int64 `json:"duplicates"`
}

// Merge adds a snapshot's counts, folding one run's counters into the
// engine-lifetime totals.
func (s *Stats) Merge(o StatsSnapshot) {
	s.PagesFetched.Add(o.PagesFetched)
	s.ArticlesFetched.Add(o.ArticlesFetched)
	s.ArticlesKept.Add(o.ArticlesKept)
	s.FetchFailures.Add(o.FetchFailures)
	s.ParseFailures.Add(o.ParseFailures)
	s.Filtered.Add(o.Filtered)
	s.Duplicates.Add(o.Duplicates)
}

// Snapshot returns a consistent-enough copy for logging and the API.
func (s *Stats) Snapshot() StatsSnapshot {
	return StatsSnapshot{
		PagesFetched:    s.PagesFetched.Load(),
		ArticlesFetched: s.ArticlesFetched.Load(),
		ArticlesKept:    s.ArticlesKept.Load(),
		FetchFailures:   s.FetchFailures.Load(),
		ParseFailures:   s.ParseFailures.Load(),
		Filtered:        s.Filtered.Load(),
		Duplicates:      s.Duplicates.Load(),
	}
}
