// Package app assembles the award search pipeline from configuration.
// Both the HTTP server and the CLI build their use case here.
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/award-search/award-flight-finder/internal/adapter/provider/cache"
	"github.com/award-search/award-flight-finder/internal/adapter/provider/seatsaero"
	"github.com/award-search/award-flight-finder/internal/catalog"
	"github.com/award-search/award-flight-finder/internal/config"
	"github.com/award-search/award-flight-finder/internal/domain"
	"github.com/award-search/award-flight-finder/internal/infrastructure/budget"
	"github.com/award-search/award-flight-finder/internal/infrastructure/currency"
	"github.com/award-search/award-flight-finder/internal/infrastructure/logger"
	"github.com/award-search/award-flight-finder/internal/infrastructure/retry"
	"github.com/award-search/award-flight-finder/internal/infrastructure/timeutil"
	"github.com/award-search/award-flight-finder/internal/usecase"
)

// redisPingTimeout bounds the startup connectivity check.
const redisPingTimeout = 3 * time.Second

// App holds the wired pipeline and the resources it owns.
type App struct {
	Catalog  *catalog.Catalog
	Provider domain.AvailabilityProvider
	Budget   budget.Budget
	UseCase  usecase.AwardSearchUseCase

	redis *redis.Client
}

// Option overrides a collaborator, mostly for tests.
type Option func(*options)

type options struct {
	httpClient *http.Client
	redis      *redis.Client
	clock      timeutil.Clock
}

// WithHTTPClient sets the client used for seats.aero and exchange rate calls.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// WithRedisClient uses an existing client instead of dialing REDIS_URL.
// The caller keeps ownership; Close does not close it.
func WithRedisClient(c *redis.Client) Option {
	return func(o *options) { o.redis = c }
}

// WithClock sets the clock of the in-memory budget.
func WithClock(c timeutil.Clock) Option {
	return func(o *options) { o.clock = c }
}

// New wires the pipeline. apiKey overrides cfg.SeatsAero.APIKey when set.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger, apiKey string, opts ...Option) (*App, error) {
	o := options{clock: timeutil.NewRealClock()}
	for _, opt := range opts {
		opt(&o)
	}
	if apiKey != "" {
		cfg.SeatsAero.APIKey = apiKey
	}
	if err := cfg.RequireAPIKey(); err != nil {
		return nil, err
	}

	a := &App{Catalog: catalog.Default()}

	rdb := o.redis
	if rdb == nil && cfg.Budget.RedisURL != "" {
		var err error
		if rdb, err = dialRedis(ctx, cfg.Budget.RedisURL); err != nil {
			return nil, err
		}
		a.redis = rdb
	}

	loc, err := timeutil.GetLocation(cfg.Budget.Timezone)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("budget timezone: %w", err)
	}

	switch {
	case cfg.Budget.DailyLimit == 0:
		a.Budget = budget.Unlimited{}
	case rdb != nil:
		a.Budget = budget.NewRedis(rdb, cfg.Budget.DailyLimit, loc, o.clock)
	default:
		a.Budget = budget.NewMemory(cfg.Budget.DailyLimit, loc, o.clock)
	}

	converterOpts := []currency.HTTPOption{
		currency.WithTTL(cfg.Currency.TTL),
		currency.WithLogger(log.WithContext("component", "currency").Zerolog()),
	}
	adapterOpts := []seatsaero.Option{
		seatsaero.WithLogger(log.WithContext("component", seatsaero.ProviderName).Zerolog()),
	}
	if o.httpClient != nil {
		converterOpts = append(converterOpts, currency.WithHTTPClient(o.httpClient))
		adapterOpts = append(adapterOpts, seatsaero.WithHTTPClient(o.httpClient))
	}
	adapterOpts = append(adapterOpts, seatsaero.WithConverter(currency.NewHTTPConverter(cfg.Currency.RatesURL, converterOpts...)))

	a.Provider = seatsaero.NewAdapter(seatsaero.Config{
		BaseURL:           cfg.SeatsAero.BaseURL,
		APIKey:            cfg.SeatsAero.APIKey,
		Take:              cfg.SeatsAero.Take,
		Timeout:           cfg.Timeouts.PerQuery,
		RequestsPerSecond: cfg.SeatsAero.RequestsPerSecond,
		Retry:             retry.ProviderConfig.WithMaxAttempts(cfg.SeatsAero.MaxAttempts),
	}, adapterOpts...)

	if cfg.Cache.Enabled && rdb != nil {
		a.Provider = cache.New(a.Provider, rdb, cfg.Cache.TTL,
			cache.WithLogger(log.WithContext("component", "cache").Zerolog()))
	}

	a.UseCase = usecase.NewAwardSearchUseCase(a.Catalog, a.Provider, &usecase.Config{
		GlobalTimeout:   cfg.Timeouts.GlobalSearch,
		PerQueryTimeout: cfg.Timeouts.PerQuery,
		Concurrency:     cfg.Aggregation.Concurrency,
		MaxQueries:      cfg.Aggregation.MaxQueries,
	}, usecase.WithBudget(a.Budget), usecase.WithLogger(log))

	log.Info().
		Str("provider", a.Provider.Name()).
		Bool("cache", cfg.Cache.Enabled && rdb != nil).
		Bool("shared_budget", rdb != nil && cfg.Budget.DailyLimit > 0).
		Int64("daily_limit", cfg.Budget.DailyLimit).
		Str("catalog_version", a.Catalog.Version()).
		Msg("Award search pipeline ready")

	return a, nil
}

// Close releases the Redis connection New opened, if any.
func (a *App) Close() error {
	if a.redis == nil {
		return nil
	}
	err := a.redis.Close()
	a.redis = nil
	return err
}

func dialRedis(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return client, nil
}
