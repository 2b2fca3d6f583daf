package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/award-search/award-flight-finder/internal/domain"
	"github.com/award-search/award-flight-finder/internal/infrastructure/budget"
)

// Aggregation defaults.
const (
	DefaultConcurrency     = 4
	DefaultPerQueryTimeout = 10 * time.Second
)

// cacheReporter is implemented by providers that know whether an answer came from a cache.
type cacheReporter interface {
	FetchWithCacheStatus(ctx context.Context, query domain.AtomicQuery) ([]domain.FlightCandidate, bool, error)
}

// AggregateResult is the fold of every query outcome in plan order.
type AggregateResult struct {
	// Pool is the deduplicated candidate pool in first-seen plan order
	Pool []domain.FlightCandidate

	// Failures lists failed queries in plan order
	Failures []*domain.ProviderError

	Succeeded int
	CacheHits int

	// Canceled reports that the caller canceled before every query finished
	Canceled bool
}

// Aggregator dispatches atomic queries concurrently and merges the answers.
type Aggregator struct {
	provider        domain.AvailabilityProvider
	budget          budget.Budget
	concurrency     int
	perQueryTimeout time.Duration
	logger          zerolog.Logger
}

// AggregatorConfig configures an Aggregator. Zero values take the defaults.
type AggregatorConfig struct {
	Concurrency     int
	PerQueryTimeout time.Duration
	Budget          budget.Budget
	Logger          zerolog.Logger
}

// NewAggregator creates an aggregator over provider.
func NewAggregator(provider domain.AvailabilityProvider, cfg AggregatorConfig) *Aggregator {
	a := &Aggregator{
		provider:        provider,
		budget:          cfg.Budget,
		concurrency:     cfg.Concurrency,
		perQueryTimeout: cfg.PerQueryTimeout,
		logger:          cfg.Logger,
	}
	if a.concurrency <= 0 {
		a.concurrency = DefaultConcurrency
	}
	if a.perQueryTimeout <= 0 {
		a.perQueryTimeout = DefaultPerQueryTimeout
	}
	if a.budget == nil {
		a.budget = budget.Unlimited{}
	}
	return a
}

// outcome is the answer of one query, stored at its plan index.
type outcome struct {
	candidates []domain.FlightCandidate
	err        *domain.ProviderError
	cacheHit   bool
}

// Aggregate runs every query with at most the configured number in flight.
// Completion order never affects the result: outcomes are folded in plan order.
// It fails with *domain.AggregationError only when every query failed and the
// caller did not cancel.
func (a *Aggregator) Aggregate(ctx context.Context, queries []domain.AtomicQuery) (AggregateResult, error) {
	if len(queries) == 0 {
		return AggregateResult{}, domain.ErrEmptyQueryPlan
	}

	outcomes := make([]outcome, len(queries))

	// A plain group: one failed query must not cancel its siblings.
	var g errgroup.Group
	g.SetLimit(a.concurrency)

	for i, q := range queries {
		if ctx.Err() != nil {
			for j := i; j < len(queries); j++ {
				outcomes[j] = outcome{err: a.contextFailure(ctx, queries[j])}
			}
			break
		}
		g.Go(func() error {
			outcomes[i] = a.run(ctx, q)
			return nil
		})
	}
	_ = g.Wait()

	result := fold(outcomes)
	result.Canceled = errors.Is(ctx.Err(), context.Canceled)

	if result.Succeeded == 0 && !result.Canceled {
		return result, &domain.AggregationError{Failures: result.Failures}
	}
	return result, nil
}

// run executes one query: cancellation check, budget reservation, then the fetch.
// The fetch runs in its own goroutine so an expired or canceled query is
// abandoned even when the provider ignores its context; a late answer is dropped.
func (a *Aggregator) run(ctx context.Context, q domain.AtomicQuery) outcome {
	if ctx.Err() != nil {
		return outcome{err: a.contextFailure(ctx, q)}
	}

	if err := a.budget.Reserve(ctx); err != nil {
		switch {
		case errors.Is(err, budget.ErrExhausted):
			return outcome{err: domain.NewProviderErrorOfKind(a.provider.Name(), domain.KindRateLimited, err).WithQuery(q)}
		case ctx.Err() != nil:
			return outcome{err: a.contextFailure(ctx, q)}
		default:
			// budget store errors fail open
			a.logger.Warn().Err(err).Msg("Call budget unavailable, dispatching without reservation")
		}
	}

	qctx, cancel := context.WithTimeout(ctx, a.perQueryTimeout)
	defer cancel()

	answers := make(chan fetchAnswer, 1)
	go func() {
		answers <- a.fetch(qctx, q)
	}()

	select {
	case ans := <-answers:
		return a.toOutcome(ctx, qctx, q, ans)
	case <-qctx.Done():
		select {
		case ans := <-answers:
			return a.toOutcome(ctx, qctx, q, ans)
		default:
		}
		a.logger.Debug().Int("query_index", q.Index).Msg("Abandoning in-flight query")
		return outcome{err: a.classify(ctx, qctx, q, qctx.Err())}
	}
}

// fetchAnswer is what one provider call returned.
type fetchAnswer struct {
	candidates []domain.FlightCandidate
	cacheHit   bool
	err        error
}

// fetch calls the provider, turning a panic into an unreachable failure.
func (a *Aggregator) fetch(ctx context.Context, q domain.AtomicQuery) (ans fetchAnswer) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error().Interface("panic", r).Int("query_index", q.Index).Msg("Provider panicked")
			ans = fetchAnswer{err: domain.NewProviderErrorOfKind(a.provider.Name(), domain.KindUnreachable,
				fmt.Errorf("provider panic: %v", r))}
		}
	}()

	if cr, ok := a.provider.(cacheReporter); ok {
		candidates, hit, err := cr.FetchWithCacheStatus(ctx, q)
		return fetchAnswer{candidates: candidates, cacheHit: hit, err: err}
	}
	candidates, err := a.provider.Fetch(ctx, q)
	return fetchAnswer{candidates: candidates, err: err}
}

func (a *Aggregator) toOutcome(parent, qctx context.Context, q domain.AtomicQuery, ans fetchAnswer) outcome {
	if ans.err != nil {
		return outcome{err: a.classify(parent, qctx, q, ans.err)}
	}
	return outcome{candidates: ans.candidates, cacheHit: ans.cacheHit}
}

// classify turns any fetch error into a ProviderError bound to q.
func (a *Aggregator) classify(parent, qctx context.Context, q domain.AtomicQuery, err error) *domain.ProviderError {
	name := a.provider.Name()

	if errors.Is(parent.Err(), context.Canceled) {
		return domain.NewProviderErrorOfKind(name, domain.KindCanceled, err).WithQuery(q)
	}

	var pe *domain.ProviderError
	if errors.As(err, &pe) {
		return pe.WithQuery(q)
	}

	if errors.Is(qctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return &domain.ProviderError{
			Provider:  name,
			Kind:      domain.KindTimeout,
			Query:     q,
			Err:       fmt.Errorf("%w: %w", domain.ErrProviderTimeout, err),
			Retryable: true,
		}
	}
	return domain.NewProviderError(name, err).WithQuery(q)
}

// contextFailure records a query that was never dispatched.
func (a *Aggregator) contextFailure(ctx context.Context, q domain.AtomicQuery) *domain.ProviderError {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return domain.NewProviderTimeoutError(a.provider.Name()).WithQuery(q)
	}
	return domain.NewProviderErrorOfKind(a.provider.Name(), domain.KindCanceled, ctx.Err()).WithQuery(q)
}

// fold merges outcomes in plan order. Duplicates are resolved last-write-wins:
// the later candidate replaces the earlier one in place.
func fold(outcomes []outcome) AggregateResult {
	var result AggregateResult
	index := make(map[domain.CandidateKey]int)

	for _, o := range outcomes {
		if o.err != nil {
			result.Failures = append(result.Failures, o.err)
			continue
		}
		result.Succeeded++
		if o.cacheHit {
			result.CacheHits++
		}
		for _, c := range o.candidates {
			key := c.Key()
			if pos, ok := index[key]; ok {
				result.Pool[pos] = c
				continue
			}
			index[key] = len(result.Pool)
			result.Pool = append(result.Pool, c)
		}
	}
	return result
}
