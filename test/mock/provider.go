// Package mock provides test doubles for the award search pipeline.
// The provider here answers per program, with optional delays and errors,
// so integration tests can drive partial failures and timeouts.
package mock

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/award-search/award-flight-finder/internal/domain"
)

// Provider is a configurable domain.AvailabilityProvider.
// Responses are keyed by program; a program with nothing configured
// answers with no candidates.
type Provider struct {
	name string

	mu         sync.Mutex
	candidates map[string][]domain.FlightCandidate
	errs       map[string]error
	delays     map[string]time.Duration
	delay      time.Duration
	calls      []domain.AtomicQuery
	inFlight   int
	maxFlight  int
}

// NewProvider creates a provider named name.
func NewProvider(name string) *Provider {
	return &Provider{
		name:       name,
		candidates: make(map[string][]domain.FlightCandidate),
		errs:       make(map[string]error),
		delays:     make(map[string]time.Duration),
	}
}

// WithCandidates makes program answer with candidates. Each query only
// receives the candidates matching its origin, destination and date.
func (p *Provider) WithCandidates(program string, candidates ...domain.FlightCandidate) *Provider {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.candidates[program] = append(p.candidates[program], candidates...)
	return p
}

// WithError makes every query for program fail with err.
func (p *Provider) WithError(program string, err error) *Provider {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.errs[program] = err
	return p
}

// WithDelay delays every answer.
func (p *Provider) WithDelay(d time.Duration) *Provider {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.delay = d
	return p
}

// WithProgramDelay delays the answers for one program.
func (p *Provider) WithProgramDelay(program string, d time.Duration) *Provider {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.delays[program] = d
	return p
}

// Name implements domain.AvailabilityProvider.
func (p *Provider) Name() string {
	return p.name
}

// Fetch implements domain.AvailabilityProvider.
func (p *Provider) Fetch(ctx context.Context, q domain.AtomicQuery) ([]domain.FlightCandidate, error) {
	p.mu.Lock()
	p.calls = append(p.calls, q)
	p.inFlight++
	if p.inFlight > p.maxFlight {
		p.maxFlight = p.inFlight
	}
	delay := p.delay
	if d, ok := p.delays[q.Program]; ok {
		delay = d
	}
	err := p.errs[q.Program]
	all := p.candidates[q.Program]
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		p.inFlight--
		p.mu.Unlock()
	}()

	if delay > 0 {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	if err != nil {
		return nil, err
	}

	var out []domain.FlightCandidate
	for _, c := range all {
		if c.Origin == q.Origin && c.Destination == q.Destination && sameDay(c.DepartsAt, q.Date) {
			out = append(out, c)
		}
	}
	return out, nil
}

// CallCount returns the number of Fetch calls.
func (p *Provider) CallCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.calls)
}

// Calls returns the queries received, in arrival order.
func (p *Provider) Calls() []domain.AtomicQuery {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.AtomicQuery, len(p.calls))
	copy(out, p.calls)
	return out
}

// MaxInFlight returns the highest number of concurrent Fetch calls seen.
func (p *Provider) MaxInFlight() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.maxFlight
}

// Reset clears the recorded calls.
func (p *Provider) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = nil
	p.maxFlight = 0
}

var _ domain.AvailabilityProvider = (*Provider)(nil)

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

// Award builds a nonstop economy candidate departing at 08:00 UTC plus hour offset.
func Award(program, origin, destination, date string, hourOffset, miles int) domain.FlightCandidate {
	day, err := domain.ParseDate(date)
	if err != nil {
		panic(err)
	}
	departs := day.Add(time.Duration(8+hourOffset) * time.Hour)
	arrives := departs.Add(95 * time.Minute)
	flight := carrierOf(program) + strconv.Itoa(100+hourOffset)

	return domain.FlightCandidate{
		Program:     program,
		Origin:      origin,
		Destination: destination,
		Cabin:       domain.CabinEconomy,
		DepartsAt:   departs,
		ArrivesAt:   arrives,
		Duration:    arrives.Sub(departs),
		Segments: []domain.Segment{{
			Carrier:      carrierOf(program),
			FlightNumber: flight,
			Origin:       origin,
			Destination:  destination,
			DepartsAt:    departs,
			ArrivesAt:    arrives,
		}},
		Miles:    miles,
		Taxes:    560,
		Seats:    domain.ExactSeats(4),
		SourceID: program + "-" + flight,
	}
}

// carrierOf maps a few programs to their operating carrier for fixtures.
func carrierOf(program string) string {
	codes := map[string]string{
		"alaska":   "AS",
		"united":   "UA",
		"american": "AA",
		"delta":    "DL",
		"aeroplan": "AC",
	}
	if code, ok := codes[program]; ok {
		return code
	}
	return "XX"
}
