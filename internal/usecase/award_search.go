package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/award-search/award-flight-finder/internal/domain"
	"github.com/award-search/award-flight-finder/internal/infrastructure/budget"
	"github.com/award-search/award-flight-finder/internal/infrastructure/logger"
)

// DefaultGlobalTimeout bounds a whole search.
const DefaultGlobalTimeout = 60 * time.Second

// ProgramResolver turns a program selection into the programs to search.
// *catalog.Catalog implements it.
type ProgramResolver interface {
	Resolve(sel domain.ProgramSelection) ([]domain.Program, error)
	Version() string
}

// AwardSearchUseCase runs award searches.
type AwardSearchUseCase interface {
	// Search validates the request, fans out the atomic queries and returns
	// the ranked results. Configuration errors are returned before any
	// provider call is made.
	Search(ctx context.Context, req domain.SearchRequest, opts SearchOptions) (*domain.SearchResponse, error)
}

// Config contains the tuning of the search pipeline.
type Config struct {
	GlobalTimeout   time.Duration
	PerQueryTimeout time.Duration
	Concurrency     int

	// MaxQueries caps the atomic queries of one search; 0 disables the cap
	MaxQueries int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		GlobalTimeout:   DefaultGlobalTimeout,
		PerQueryTimeout: DefaultPerQueryTimeout,
		Concurrency:     DefaultConcurrency,
	}
}

// Option configures optional collaborators of the use case.
type Option func(*awardSearchUseCase)

// WithBudget sets the daily call budget checked before each provider call.
func WithBudget(b budget.Budget) Option {
	return func(uc *awardSearchUseCase) { uc.budget = b }
}

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) Option {
	return func(uc *awardSearchUseCase) { uc.log = l }
}

type awardSearchUseCase struct {
	catalog       ProgramResolver
	planner       *Planner
	aggregator    *Aggregator
	budget        budget.Budget
	globalTimeout time.Duration
	log           *logger.Logger
}

// NewAwardSearchUseCase wires the pipeline. A nil config uses DefaultConfig.
func NewAwardSearchUseCase(catalog ProgramResolver, provider domain.AvailabilityProvider, config *Config, opts ...Option) AwardSearchUseCase {
	cfg := DefaultConfig()
	if config != nil {
		if config.GlobalTimeout > 0 {
			cfg.GlobalTimeout = config.GlobalTimeout
		}
		if config.PerQueryTimeout > 0 {
			cfg.PerQueryTimeout = config.PerQueryTimeout
		}
		if config.Concurrency > 0 {
			cfg.Concurrency = config.Concurrency
		}
		cfg.MaxQueries = config.MaxQueries
	}

	uc := &awardSearchUseCase{
		catalog:       catalog,
		planner:       NewPlanner(cfg.MaxQueries),
		globalTimeout: cfg.GlobalTimeout,
		log:           logger.Nop(),
	}
	for _, opt := range opts {
		opt(uc)
	}

	uc.aggregator = NewAggregator(provider, AggregatorConfig{
		Concurrency:     cfg.Concurrency,
		PerQueryTimeout: cfg.PerQueryTimeout,
		Budget:          uc.budget,
		Logger:          uc.log.Zerolog(),
	})
	return uc
}

// Search implements AwardSearchUseCase.
func (uc *awardSearchUseCase) Search(ctx context.Context, req domain.SearchRequest, opts SearchOptions) (*domain.SearchResponse, error) {
	startTime := time.Now()
	log := uc.log
	if opts.RequestID != "" {
		log = log.WithRequestID(opts.RequestID)
	}

	req.SetDefaults()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	programs, err := uc.catalog.Resolve(req.Programs)
	if err != nil {
		return nil, err
	}

	plan, err := uc.planner.Plan(&req, programs)
	if err != nil {
		return nil, err
	}

	log.Info().
		Int("queries", len(plan)).
		Int("programs", len(programs)).
		Str("cabin", string(req.Cabin)).
		Msg("Starting award search")

	searchCtx, cancel := context.WithTimeout(ctx, uc.globalTimeout)
	defer cancel()

	agg, err := uc.aggregator.Aggregate(searchCtx, plan)
	logFailures(log, agg.Failures)
	if err != nil {
		if ctx.Err() == nil && errors.Is(searchCtx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: search exceeded %s: %w", domain.ErrProviderTimeout, uc.globalTimeout, err)
		}
		return nil, err
	}

	if agg.Canceled {
		log.Warn().Int("collected", len(agg.Pool)).Msg("Search canceled by caller")
		if opts.DiscardOnCancel {
			return nil, ctx.Err()
		}
	}

	scored, anomalies := ScoreAll(agg.Pool, req.BaselineCashPrice)
	for _, a := range anomalies {
		log.Warn().Err(a.Err).Str("program", a.Candidate.Program).Int("miles", a.Candidate.Miles).Msg("Candidate could not be scored")
	}

	filtered := ApplyFilters(scored, domain.NewFilterCriteria(&req, programs))

	results, err := RankResults(filtered, req.SortBy, req.MaxResults)
	if err != nil {
		return nil, err
	}

	summary := domain.SearchSummary{
		TotalCandidatesBeforeFilter: len(agg.Pool),
		TotalAfterFilter:            len(filtered),
		PartialFailures:             agg.Failures,
		ScoringAnomalies:            anomalies,
		QueriesPlanned:              len(plan),
		QueriesSucceeded:            agg.Succeeded,
		CacheHits:                   agg.CacheHits,
		Canceled:                    agg.Canceled,
		CatalogVersion:              uc.catalog.Version(),
		SearchDurationMs:            time.Since(startTime).Milliseconds(),
	}

	log.Info().
		Int("candidates", summary.TotalCandidatesBeforeFilter).
		Int("after_filter", summary.TotalAfterFilter).
		Int("results", len(results)).
		Int("failed_queries", summary.FailedQueries()).
		Int("cache_hits", summary.CacheHits).
		Int64("duration_ms", summary.SearchDurationMs).
		Msg("Award search completed")

	return domain.NewSearchResponse(req, programs, results, summary), nil
}

func logFailures(log *logger.Logger, failures []*domain.ProviderError) {
	for _, f := range failures {
		q := f.Query
		log.WithQuery(q.Index, q.Origin, q.Destination, q.Program, q.DateString()).
			Warn().
			Err(f.Err).
			Str("kind", string(f.Kind)).
			Bool("retryable", f.Retryable).
			Msg("Atomic query failed")
	}
}

var _ AwardSearchUseCase = (*awardSearchUseCase)(nil)
