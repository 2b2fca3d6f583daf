package usecase

import (
	"context"
	"time"

	"github.com/award-search/award-flight-finder/internal/domain"
)

var testDay = time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)

// createTestCandidate builds a nonstop candidate departing at the given hour of testDay.
func createTestCandidate(program, flight string, hour, miles int) domain.FlightCandidate {
	departs := testDay.Add(time.Duration(hour) * time.Hour)
	return domain.FlightCandidate{
		Program:     program,
		Origin:      "SFO",
		Destination: "LAX",
		Cabin:       domain.CabinEconomy,
		DepartsAt:   departs,
		ArrivesAt:   departs.Add(90 * time.Minute),
		Duration:    90 * time.Minute,
		Segments: []domain.Segment{{
			Carrier:      flight[:2],
			FlightNumber: flight,
			Origin:       "SFO",
			Destination:  "LAX",
			DepartsAt:    departs,
			ArrivesAt:    departs.Add(90 * time.Minute),
		}},
		Miles: miles,
		Taxes: 560,
		Seats: domain.ExactSeats(4),
	}
}

func scored(c domain.FlightCandidate, cpp domain.CPP) domain.ScoredCandidate {
	return domain.ScoredCandidate{Candidate: c, CPP: cpp}
}

// testQueries builds n queries on consecutive days for one program.
func testQueries(n int) []domain.AtomicQuery {
	qs := make([]domain.AtomicQuery, n)
	for i := range qs {
		qs[i] = domain.AtomicQuery{
			Index:       i,
			Origin:      "SFO",
			Destination: "LAX",
			Program:     "alaska",
			Date:        testDay.AddDate(0, 0, i),
			Cabin:       domain.CabinEconomy,
		}
	}
	return qs
}

// funcProvider is an AvailabilityProvider backed by a function.
type funcProvider struct {
	fn func(ctx context.Context, q domain.AtomicQuery) ([]domain.FlightCandidate, error)
}

func (p *funcProvider) Name() string { return "fake" }

func (p *funcProvider) Fetch(ctx context.Context, q domain.AtomicQuery) ([]domain.FlightCandidate, error) {
	return p.fn(ctx, q)
}

// cachingProvider reports even query indexes as cache hits.
type cachingProvider struct {
	funcProvider
}

func (p *cachingProvider) FetchWithCacheStatus(ctx context.Context, q domain.AtomicQuery) ([]domain.FlightCandidate, bool, error) {
	c, err := p.fn(ctx, q)
	return c, q.Index%2 == 0, err
}

func programIDs(results []domain.FlightResult) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Program
	}
	return out
}

func miles(results []domain.FlightResult) []int {
	out := make([]int, len(results))
	for i, r := range results {
		out[i] = r.Miles
	}
	return out
}
