package domain

// FlightResult is one ranked output row.
type FlightResult struct {
	FlightCandidate

	// CPP is the value metric, absent when no baseline cash price was given
	CPP CPP `json:"cpp"`

	// Rank is the 1-based position in the ranked output
	Rank int `json:"rank"`
}

// SearchSummary describes how a search went, for the rendering collaborator.
type SearchSummary struct {
	// TotalCandidatesBeforeFilter is the size of the deduplicated pool
	TotalCandidatesBeforeFilter int `json:"totalCandidatesBeforeFilter"`

	// TotalAfterFilter is the number of candidates left after filtering
	TotalAfterFilter int `json:"totalAfterFilter"`

	// PartialFailures lists the atomic queries that failed
	PartialFailures []*ProviderError `json:"-"`

	// ScoringAnomalies lists candidates that could not be scored
	ScoringAnomalies []*ScoringError `json:"-"`

	QueriesPlanned   int `json:"queriesPlanned"`
	QueriesSucceeded int `json:"queriesSucceeded"`

	// CacheHits counts queries answered from the response cache
	CacheHits int `json:"cacheHits"`

	// Canceled reports that the caller canceled and results are partial
	Canceled bool `json:"canceled"`

	CatalogVersion   string `json:"catalogVersion"`
	SearchDurationMs int64  `json:"searchDurationMs"`
}

// FailedQueries returns the number of failed atomic queries.
func (s SearchSummary) FailedQueries() int {
	return len(s.PartialFailures)
}

// IsPartial reports whether some queries failed or the search was canceled.
func (s SearchSummary) IsPartial() bool {
	return len(s.PartialFailures) > 0 || s.Canceled
}

// SearchResponse is the output of the core: ranked results plus the summary.
type SearchResponse struct {
	Request  SearchRequest  `json:"request"`
	Programs []Program      `json:"programs"`
	Results  []FlightResult `json:"results"`
	Summary  SearchSummary  `json:"summary"`
}

// NewSearchResponse creates a SearchResponse, normalizing a nil result slice to empty.
func NewSearchResponse(req SearchRequest, programs []Program, results []FlightResult, summary SearchSummary) *SearchResponse {
	if results == nil {
		results = []FlightResult{}
	}
	return &SearchResponse{
		Request:  req,
		Programs: programs,
		Results:  results,
		Summary:  summary,
	}
}
