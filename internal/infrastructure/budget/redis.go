package budget

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/award-search/award-flight-finder/internal/infrastructure/timeutil"
)

// DefaultKeyPrefix namespaces the per-day counters.
const DefaultKeyPrefix = "award:budget:"

// keyGrace keeps a counter alive a little past midnight so late readers see it.
const keyGrace = time.Hour

// Redis is a budget shared through a Redis counter per day.
type Redis struct {
	client redis.Cmdable
	limit  int64
	loc    *time.Location
	clock  timeutil.Clock
	prefix string
}

// NewRedis creates a shared budget of limit calls per day in loc.
func NewRedis(client redis.Cmdable, limit int64, loc *time.Location, clock timeutil.Clock) *Redis {
	if clock == nil {
		clock = timeutil.NewRealClock()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Redis{client: client, limit: limit, loc: loc, clock: clock, prefix: DefaultKeyPrefix}
}

// Reserve implements Budget. The counter is incremented and given a TTL
// in one transaction; an increment past the limit is rolled back. Once the
// limit is passed the error wraps ErrExhausted even if the rollback fails.
func (r *Redis) Reserve(ctx context.Context) error {
	now := r.clock.Now()
	key := r.key(now)

	var incr *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, timeutil.UntilNextDay(now, r.loc)+keyGrace)
		return nil
	})
	if err != nil {
		return fmt.Errorf("budget reserve %s: %w", key, err)
	}

	if incr.Val() > r.limit {
		if err := r.client.Decr(ctx, key).Err(); err != nil {
			return fmt.Errorf("%w (rollback %s: %w)", ErrExhausted, key, err)
		}
		return ErrExhausted
	}
	return nil
}

// Remaining implements Budget.
func (r *Redis) Remaining(ctx context.Context) (int64, error) {
	key := r.key(r.clock.Now())
	used, err := r.client.Get(ctx, key).Int64()
	if err == redis.Nil {
		return r.limit, nil
	}
	if err != nil {
		return 0, fmt.Errorf("budget remaining %s: %w", key, err)
	}
	if left := r.limit - used; left > 0 {
		return left, nil
	}
	return 0, nil
}

func (r *Redis) key(now time.Time) string {
	return r.prefix + timeutil.DayKey(now, r.loc)
}

var _ Budget = (*Redis)(nil)
