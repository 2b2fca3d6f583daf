package usecase

import "github.com/award-search/award-flight-finder/internal/domain"

// Score computes the CPP of one candidate against the baseline cash fare.
// Without a baseline the CPP is absent. A non-positive mileage cost yields an
// absent CPP plus a ScoringError for the summary.
func Score(c domain.FlightCandidate, baseline *domain.Money) (domain.ScoredCandidate, *domain.ScoringError) {
	scored := domain.ScoredCandidate{Candidate: c, CPP: domain.NoCPP()}
	if baseline == nil {
		return scored, nil
	}

	cpp, err := domain.ComputeCPP(*baseline, c.Taxes, c.Miles)
	if err != nil {
		return scored, &domain.ScoringError{Candidate: c, Err: err}
	}
	scored.CPP = cpp
	return scored, nil
}

// ScoreAll scores the pool in order and collects the anomalies.
func ScoreAll(pool []domain.FlightCandidate, baseline *domain.Money) ([]domain.ScoredCandidate, []*domain.ScoringError) {
	scored := make([]domain.ScoredCandidate, 0, len(pool))
	var anomalies []*domain.ScoringError

	for _, c := range pool {
		s, anomaly := Score(c, baseline)
		if anomaly != nil {
			anomalies = append(anomalies, anomaly)
		}
		scored = append(scored, s)
	}
	return scored, anomalies
}
