package usecase

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/award-search/award-flight-finder/internal/domain"
	"github.com/award-search/award-flight-finder/internal/infrastructure/budget"
	"github.com/award-search/award-flight-finder/internal/infrastructure/timeutil"
)

func TestAggregator_MergeOrderIgnoresCompletionOrder(t *testing.T) {
	queries := testQueries(5)
	provider := &funcProvider{fn: func(ctx context.Context, q domain.AtomicQuery) ([]domain.FlightCandidate, error) {
		// later queries finish first
		time.Sleep(time.Duration(len(queries)-q.Index) * 5 * time.Millisecond)
		return []domain.FlightCandidate{createTestCandidate("alaska", "AS100", q.Index, 1000*(q.Index+1))}, nil
	}}

	result, err := NewAggregator(provider, AggregatorConfig{Concurrency: 5}).Aggregate(context.Background(), queries)
	require.NoError(t, err)

	require.Len(t, result.Pool, 5)
	for i, c := range result.Pool {
		assert.Equal(t, 1000*(i+1), c.Miles)
	}
	assert.Equal(t, 5, result.Succeeded)
	assert.Empty(t, result.Failures)
	assert.False(t, result.Canceled)
}

func TestAggregator_DedupLastWriteWins(t *testing.T) {
	first := createTestCandidate("alaska", "AS100", 8, 7500)
	other := createTestCandidate("alaska", "AS200", 9, 5000)
	later := createTestCandidate("alaska", "AS100", 8, 6000)
	later.Seats = domain.AtLeastSeats(9)

	provider := &funcProvider{fn: func(ctx context.Context, q domain.AtomicQuery) ([]domain.FlightCandidate, error) {
		if q.Index == 0 {
			return []domain.FlightCandidate{first, other}, nil
		}
		return []domain.FlightCandidate{later}, nil
	}}

	result, err := NewAggregator(provider, AggregatorConfig{}).Aggregate(context.Background(), testQueries(2))
	require.NoError(t, err)

	require.Len(t, result.Pool, 2)
	assert.Equal(t, later, result.Pool[0], "later write replaces the record in place")
	assert.Equal(t, other, result.Pool[1])
}

func TestFold_SameQueryTwiceIsIdempotent(t *testing.T) {
	a := createTestCandidate("alaska", "AS100", 8, 7500)
	b := createTestCandidate("united", "UA1", 8, 6500)
	a2 := a
	a2.Miles = 5000

	answer := []domain.FlightCandidate{a, b, a2}
	once := fold([]outcome{{candidates: answer}})
	twice := fold([]outcome{{candidates: answer}, {candidates: answer}})

	assert.Equal(t, []domain.FlightCandidate{a2, b}, once.Pool)
	assert.Equal(t, once.Pool, twice.Pool)
	assert.Equal(t, 2, twice.Succeeded)
}

func TestAggregator_PartialFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	queries := testQueries(3)

	mock := domain.NewMockAvailabilityProvider(ctrl)
	mock.EXPECT().Name().Return("seatsaero").AnyTimes()
	mock.EXPECT().Fetch(gomock.Any(), queries[0]).Return([]domain.FlightCandidate{createTestCandidate("alaska", "AS1", 8, 5000)}, nil)
	mock.EXPECT().Fetch(gomock.Any(), queries[1]).Return(nil, domain.NewProviderErrorOfKind("seatsaero", domain.KindAuth, errors.New("401")))
	mock.EXPECT().Fetch(gomock.Any(), queries[2]).Return(nil, errors.New("connection refused"))

	result, err := NewAggregator(mock, AggregatorConfig{}).Aggregate(context.Background(), queries)
	require.NoError(t, err)

	assert.Len(t, result.Pool, 1)
	assert.Equal(t, 1, result.Succeeded)
	require.Len(t, result.Failures, 2)

	assert.Equal(t, domain.KindAuth, result.Failures[0].Kind)
	assert.Equal(t, queries[1], result.Failures[0].Query)
	assert.Equal(t, domain.KindUnreachable, result.Failures[1].Kind)
	assert.Equal(t, queries[2], result.Failures[1].Query)
}

func TestAggregator_AllFailed(t *testing.T) {
	provider := &funcProvider{fn: func(ctx context.Context, q domain.AtomicQuery) ([]domain.FlightCandidate, error) {
		return nil, errors.New("down")
	}}

	result, err := NewAggregator(provider, AggregatorConfig{}).Aggregate(context.Background(), testQueries(3))
	require.Error(t, err)
	assert.True(t, domain.IsAggregationFailed(err))

	var aggErr *domain.AggregationError
	require.True(t, errors.As(err, &aggErr))
	assert.Len(t, aggErr.Failures, 3)
	assert.Len(t, result.Failures, 3)
}

func TestAggregator_EmptyPlan(t *testing.T) {
	_, err := NewAggregator(&funcProvider{}, AggregatorConfig{}).Aggregate(context.Background(), nil)
	assert.True(t, errors.Is(err, domain.ErrEmptyQueryPlan))
}

func TestAggregator_PerQueryTimeout(t *testing.T) {
	provider := &funcProvider{fn: func(ctx context.Context, q domain.AtomicQuery) ([]domain.FlightCandidate, error) {
		if q.Index == 1 {
			<-ctx.Done()
			return nil, ctx.Err()
		}
		return []domain.FlightCandidate{createTestCandidate("alaska", "AS1", q.Index, 5000)}, nil
	}}

	agg := NewAggregator(provider, AggregatorConfig{PerQueryTimeout: 20 * time.Millisecond})
	result, err := agg.Aggregate(context.Background(), testQueries(2))
	require.NoError(t, err)

	require.Len(t, result.Failures, 1)
	assert.Equal(t, domain.KindTimeout, result.Failures[0].Kind)
	assert.True(t, domain.IsProviderTimeout(result.Failures[0]))
	assert.Equal(t, 1, result.Failures[0].Query.Index)
}

func TestAggregator_PerQueryTimeoutAbandonsSlowProvider(t *testing.T) {
	provider := &funcProvider{fn: func(_ context.Context, q domain.AtomicQuery) ([]domain.FlightCandidate, error) {
		if q.Index == 1 {
			// never looks at ctx
			time.Sleep(300 * time.Millisecond)
		}
		return []domain.FlightCandidate{createTestCandidate("alaska", "AS1", q.Index, 5000)}, nil
	}}

	start := time.Now()
	agg := NewAggregator(provider, AggregatorConfig{Concurrency: 2, PerQueryTimeout: 20 * time.Millisecond})
	result, err := agg.Aggregate(context.Background(), testQueries(2))
	elapsed := time.Since(start)
	require.NoError(t, err)

	assert.Less(t, elapsed, 200*time.Millisecond)
	assert.Equal(t, 1, result.Succeeded)
	assert.Len(t, result.Pool, 1, "the late answer is dropped")
	require.Len(t, result.Failures, 1)
	assert.Equal(t, domain.KindTimeout, result.Failures[0].Kind)
	assert.True(t, domain.IsProviderTimeout(result.Failures[0]))
	assert.Equal(t, 1, result.Failures[0].Query.Index)
}

func TestAggregator_CancellationAbandonsInFlightQueries(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	provider := &funcProvider{fn: func(_ context.Context, q domain.AtomicQuery) ([]domain.FlightCandidate, error) {
		if q.Index == 1 {
			time.Sleep(500 * time.Millisecond)
		}
		return []domain.FlightCandidate{createTestCandidate("alaska", "AS1", q.Index, 5000)}, nil
	}}
	time.AfterFunc(30*time.Millisecond, cancel)

	start := time.Now()
	result, err := NewAggregator(provider, AggregatorConfig{Concurrency: 2}).Aggregate(ctx, testQueries(2))
	elapsed := time.Since(start)
	require.NoError(t, err)

	assert.Less(t, elapsed, 300*time.Millisecond)
	assert.True(t, result.Canceled)
	assert.Equal(t, 1, result.Succeeded)
	assert.Len(t, result.Pool, 1)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, domain.KindCanceled, result.Failures[0].Kind)
	assert.Equal(t, 1, result.Failures[0].Query.Index)
}

func TestAggregator_PanicRecovery(t *testing.T) {
	provider := &funcProvider{fn: func(ctx context.Context, q domain.AtomicQuery) ([]domain.FlightCandidate, error) {
		if q.Index == 0 {
			panic("boom")
		}
		return []domain.FlightCandidate{createTestCandidate("alaska", "AS1", 8, 5000)}, nil
	}}

	result, err := NewAggregator(provider, AggregatorConfig{}).Aggregate(context.Background(), testQueries(2))
	require.NoError(t, err)

	require.Len(t, result.Failures, 1)
	assert.Equal(t, domain.KindUnreachable, result.Failures[0].Kind)
	assert.Contains(t, result.Failures[0].Error(), "provider panic: boom")
	assert.Len(t, result.Pool, 1)
}

func TestAggregator_BoundedConcurrency(t *testing.T) {
	var inFlight, peak atomic.Int32
	provider := &funcProvider{fn: func(ctx context.Context, q domain.AtomicQuery) ([]domain.FlightCandidate, error) {
		n := inFlight.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		inFlight.Add(-1)
		return nil, nil
	}}

	result, err := NewAggregator(provider, AggregatorConfig{Concurrency: 3}).Aggregate(context.Background(), testQueries(12))
	require.NoError(t, err)

	assert.Equal(t, 12, result.Succeeded)
	assert.LessOrEqual(t, peak.Load(), int32(3))
}

func TestAggregator_BudgetExhausted(t *testing.T) {
	var calls atomic.Int32
	provider := &funcProvider{fn: func(ctx context.Context, q domain.AtomicQuery) ([]domain.FlightCandidate, error) {
		calls.Add(1)
		return []domain.FlightCandidate{createTestCandidate("alaska", "AS1", q.Index, 5000)}, nil
	}}

	b := budget.NewMemory(1, time.UTC, timeutil.NewMockClock(testDay))
	result, err := NewAggregator(provider, AggregatorConfig{Concurrency: 1, Budget: b}).Aggregate(context.Background(), testQueries(3))
	require.NoError(t, err)

	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, 1, result.Succeeded)
	require.Len(t, result.Failures, 2)
	for _, f := range result.Failures {
		assert.Equal(t, domain.KindRateLimited, f.Kind)
		assert.True(t, errors.Is(f, budget.ErrExhausted))
	}
}

func TestAggregator_CancellationKeepsPartialResults(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	provider := &funcProvider{fn: func(ctx context.Context, q domain.AtomicQuery) ([]domain.FlightCandidate, error) {
		if q.Index == 0 {
			return []domain.FlightCandidate{createTestCandidate("alaska", "AS1", 8, 5000)}, nil
		}
		cancel()
		<-ctx.Done()
		return nil, ctx.Err()
	}}

	result, err := NewAggregator(provider, AggregatorConfig{Concurrency: 1}).Aggregate(ctx, testQueries(4))
	require.NoError(t, err)

	assert.True(t, result.Canceled)
	assert.Len(t, result.Pool, 1)
	require.Len(t, result.Failures, 3)
	for _, f := range result.Failures {
		assert.Equal(t, domain.KindCanceled, f.Kind)
	}
}

func TestAggregator_CanceledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls atomic.Int32
	provider := &funcProvider{fn: func(ctx context.Context, q domain.AtomicQuery) ([]domain.FlightCandidate, error) {
		calls.Add(1)
		return nil, nil
	}}

	result, err := NewAggregator(provider, AggregatorConfig{}).Aggregate(ctx, testQueries(3))
	require.NoError(t, err)
	assert.True(t, result.Canceled)
	assert.Len(t, result.Failures, 3)
	assert.Equal(t, int32(0), calls.Load())
}

func TestAggregator_CountsCacheHits(t *testing.T) {
	provider := &cachingProvider{funcProvider{fn: func(ctx context.Context, q domain.AtomicQuery) ([]domain.FlightCandidate, error) {
		return nil, nil
	}}}

	result, err := NewAggregator(provider, AggregatorConfig{}).Aggregate(context.Background(), testQueries(5))
	require.NoError(t, err)
	assert.Equal(t, 3, result.CacheHits)
}
