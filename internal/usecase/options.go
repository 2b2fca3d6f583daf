// Package usecase contains the award search pipeline: query planning,
// concurrent aggregation through the availability provider, CPP scoring,
// filtering and ranking.
package usecase

// SearchOptions tunes a single search without changing its request.
type SearchOptions struct {
	// DiscardOnCancel returns the context error when the caller cancels,
	// instead of the partial results collected so far.
	DiscardOnCancel bool

	// RequestID tags the log entries of this search
	RequestID string
}

// DefaultSearchOptions returns the options used when none are given.
func DefaultSearchOptions() SearchOptions {
	return SearchOptions{}
}
