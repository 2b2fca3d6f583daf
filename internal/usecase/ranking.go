package usecase

import (
	"fmt"
	"sort"

	"github.com/award-search/award-flight-finder/internal/domain"
)

// RankResults orders the pool by sortKey, keeps the first maxResults entries
// and numbers them from 1.
//
// Orders:
//   - miles: miles asc, then taxes asc, then departure asc
//   - cpp: CPP desc with absent values last, then miles asc
//   - date: departure asc, then miles asc
//
// Remaining ties keep pool order. An empty or unknown sortKey ranks by miles.
func RankResults(pool []domain.ScoredCandidate, sortKey domain.SortKey, maxResults int) ([]domain.FlightResult, error) {
	if maxResults <= 0 {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidMaxResults, maxResults)
	}

	sorted := SortCandidates(pool, sortKey)
	if len(sorted) > maxResults {
		sorted = sorted[:maxResults]
	}

	results := make([]domain.FlightResult, len(sorted))
	for i, s := range sorted {
		results[i] = domain.FlightResult{
			FlightCandidate: s.Candidate,
			CPP:             s.CPP,
			Rank:            i + 1,
		}
	}
	return results, nil
}

// SortCandidates returns a stably sorted copy of pool.
func SortCandidates(pool []domain.ScoredCandidate, sortKey domain.SortKey) []domain.ScoredCandidate {
	result := make([]domain.ScoredCandidate, len(pool))
	copy(result, pool)
	if len(result) <= 1 {
		return result
	}

	if !sortKey.IsValid() {
		sortKey = domain.SortByMiles
	}

	var less func(a, b domain.ScoredCandidate) bool
	switch sortKey {
	case domain.SortByCPP:
		less = lessByCPP
	case domain.SortByDate:
		less = lessByDate
	default:
		less = lessByMiles
	}

	sort.SliceStable(result, func(i, j int) bool {
		return less(result[i], result[j])
	})
	return result
}

func lessByMiles(a, b domain.ScoredCandidate) bool {
	if a.Candidate.Miles != b.Candidate.Miles {
		return a.Candidate.Miles < b.Candidate.Miles
	}
	if a.Candidate.Taxes != b.Candidate.Taxes {
		return a.Candidate.Taxes < b.Candidate.Taxes
	}
	return a.Candidate.DepartsAt.Before(b.Candidate.DepartsAt)
}

func lessByCPP(a, b domain.ScoredCandidate) bool {
	if c := a.CPP.Compare(b.CPP); c != 0 {
		// absent compares lowest, so descending order puts it last
		return c > 0
	}
	return a.Candidate.Miles < b.Candidate.Miles
}

func lessByDate(a, b domain.ScoredCandidate) bool {
	if !a.Candidate.DepartsAt.Equal(b.Candidate.DepartsAt) {
		return a.Candidate.DepartsAt.Before(b.Candidate.DepartsAt)
	}
	return a.Candidate.Miles < b.Candidate.Miles
}
