package domain

// SortKey defines the ranking order of award results.
type SortKey string

// Available sort keys.
const (
	// SortByMiles sorts by mileage cost ascending (default)
	SortByMiles SortKey = "miles"

	// SortByCPP sorts by cents-per-point descending, absent values last
	SortByCPP SortKey = "cpp"

	// SortByDate sorts by departure time ascending
	SortByDate SortKey = "date"
)

// IsValid checks if the sort key is a valid value.
func (s SortKey) IsValid() bool {
	switch s {
	case SortByMiles, SortByCPP, SortByDate:
		return true
	default:
		return false
	}
}

// FilterCriteria holds the post-scoring constraints of a search.
// Each condition is optional; all active conditions must hold.
type FilterCriteria struct {
	// NonstopOnly keeps only candidates with zero stops
	NonstopOnly bool

	// MinCPP keeps only candidates with a present CPP at or above this value
	MinCPP CPP

	// Programs is the allowlist of program identifiers; empty means no restriction
	Programs []string
}

// NewFilterCriteria builds the filter for a request and its resolved program set.
func NewFilterCriteria(req *SearchRequest, programs []Program) FilterCriteria {
	ids := make([]string, len(programs))
	for i, p := range programs {
		ids[i] = p.ID
	}
	return FilterCriteria{
		NonstopOnly: req.NonstopOnly,
		MinCPP:      req.MinCPP,
		Programs:    ids,
	}
}
