// Package cache decorates an availability provider with a Redis response cache.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/award-search/award-flight-finder/internal/domain"
)

// DefaultKeyPrefix namespaces cached availability answers.
const DefaultKeyPrefix = "award:avail:"

// DefaultTTL is how long an answer is reused.
const DefaultTTL = 15 * time.Minute

// Provider serves repeated atomic queries from Redis and falls through to the
// wrapped provider on a miss. Cache failures degrade to a live fetch.
type Provider struct {
	next   domain.AvailabilityProvider
	client redis.Cmdable
	ttl    time.Duration
	prefix string
	logger zerolog.Logger
}

// Option configures a Provider.
type Option func(*Provider)

// WithLogger sets the logger for cache warnings.
func WithLogger(l zerolog.Logger) Option {
	return func(p *Provider) { p.logger = l }
}

// WithKeyPrefix overrides DefaultKeyPrefix.
func WithKeyPrefix(prefix string) Option {
	return func(p *Provider) { p.prefix = prefix }
}

// New wraps next with a cache of the given TTL.
func New(next domain.AvailabilityProvider, client redis.Cmdable, ttl time.Duration, opts ...Option) *Provider {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	p := &Provider{
		next:   next,
		client: client,
		ttl:    ttl,
		prefix: DefaultKeyPrefix,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name reports the wrapped provider's name.
func (p *Provider) Name() string {
	return p.next.Name()
}

// Fetch implements domain.AvailabilityProvider.
func (p *Provider) Fetch(ctx context.Context, q domain.AtomicQuery) ([]domain.FlightCandidate, error) {
	candidates, _, err := p.FetchWithCacheStatus(ctx, q)
	return candidates, err
}

// FetchWithCacheStatus is Fetch that also reports whether the answer came from the cache.
func (p *Provider) FetchWithCacheStatus(ctx context.Context, q domain.AtomicQuery) ([]domain.FlightCandidate, bool, error) {
	key := p.Key(q)

	if candidates, ok := p.lookup(ctx, key); ok {
		return candidates, true, nil
	}

	candidates, err := p.next.Fetch(ctx, q)
	if err != nil {
		return nil, false, err
	}

	p.store(ctx, key, candidates)
	return candidates, false, nil
}

// Key returns the cache key of a query.
func (p *Provider) Key(q domain.AtomicQuery) string {
	return p.prefix + strings.Join([]string{
		q.Program,
		q.Origin,
		q.Destination,
		string(q.Cabin),
		q.DateString(),
	}, ":")
}

func (p *Provider) lookup(ctx context.Context, key string) ([]domain.FlightCandidate, bool) {
	raw, err := p.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		p.logger.Warn().Err(err).Str("key", key).Msg("Cache read failed, fetching live")
		return nil, false
	}

	var candidates []domain.FlightCandidate
	if err := json.Unmarshal(raw, &candidates); err != nil {
		p.logger.Warn().Err(err).Str("key", key).Msg("Cache entry unreadable, fetching live")
		return nil, false
	}
	if candidates == nil {
		candidates = []domain.FlightCandidate{}
	}
	return candidates, true
}

func (p *Provider) store(ctx context.Context, key string, candidates []domain.FlightCandidate) {
	if ctx.Err() != nil {
		return
	}
	if candidates == nil {
		candidates = []domain.FlightCandidate{}
	}
	raw, err := json.Marshal(candidates)
	if err != nil {
		p.logger.Warn().Err(err).Str("key", key).Msg("Cache encode failed")
		return
	}
	if err := p.client.Set(ctx, key, raw, p.ttl).Err(); err != nil {
		p.logger.Warn().Err(err).Str("key", key).Msg("Cache write failed")
	}
}

var _ domain.AvailabilityProvider = (*Provider)(nil)
