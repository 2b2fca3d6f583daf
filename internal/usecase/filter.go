package usecase

import "github.com/award-search/award-flight-finder/internal/domain"

// ApplyFilters returns the scored candidates that satisfy every active criterion.
// The input slice is never mutated; the result keeps input order and applying
// the same criteria again returns the same slice contents.
//
// Criteria:
//   - NonstopOnly keeps zero-stop itineraries
//   - a present MinCPP keeps present CPP values at or above it and drops absent ones
//   - a non-empty Programs allowlist keeps candidates of those programs
func ApplyFilters(pool []domain.ScoredCandidate, criteria domain.FilterCriteria) []domain.ScoredCandidate {
	var allowed map[string]struct{}
	if len(criteria.Programs) > 0 {
		allowed = buildProgramSet(criteria.Programs)
	}

	result := make([]domain.ScoredCandidate, 0, len(pool))
	for _, s := range pool {
		if passesAllFilters(s, criteria, allowed) {
			result = append(result, s)
		}
	}
	return result
}

func passesAllFilters(s domain.ScoredCandidate, criteria domain.FilterCriteria, allowed map[string]struct{}) bool {
	if criteria.NonstopOnly && !s.Candidate.IsNonstop() {
		return false
	}

	if criteria.MinCPP.IsPresent() {
		if !s.CPP.IsPresent() || s.CPP.Compare(criteria.MinCPP) < 0 {
			return false
		}
	}

	if allowed != nil {
		if _, ok := allowed[domain.NormalizeID(s.Candidate.Program)]; !ok {
			return false
		}
	}

	return true
}

func buildProgramSet(programs []string) map[string]struct{} {
	set := make(map[string]struct{}, len(programs))
	for _, p := range programs {
		set[domain.NormalizeID(p)] = struct{}{}
	}
	return set
}
