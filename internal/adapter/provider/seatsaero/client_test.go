package seatsaero

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/award-search/award-flight-finder/internal/domain"
	"github.com/award-search/award-flight-finder/internal/infrastructure/retry"
)

const tripsFixture = `{
	"data": [
		{
			"ID": "rec1",
			"Route": {"OriginAirport": "SFO", "DestinationAirport": "NRT", "Source": "aeroplan"},
			"Date": "2025-12-01",
			"TaxesCurrency": "USD",
			"YMileageCostRaw": 35000,
			"YTotalTaxesRaw": 5610,
			"AvailabilityTrips": [
				{
					"ID": "t1",
					"Cabin": "economy",
					"MileageCost": 35000,
					"TotalTaxes": 5610,
					"TaxesCurrency": "USD",
					"RemainingSeats": 9,
					"Stops": 1,
					"TotalDuration": 720,
					"FlightNumbers": "UA837, NH7",
					"DepartsAt": "2025-12-01T11:00:00Z",
					"ArrivesAt": "2025-12-01T23:00:00Z",
					"AvailabilitySegments": [
						{"FlightNumber": "NH7", "OriginAirport": "HND", "DestinationAirport": "NRT",
						 "DepartsAt": "2025-12-01T21:00:00Z", "ArrivesAt": "2025-12-01T23:00:00Z",
						 "AircraftName": "Boeing 787", "FareClass": "X", "Order": 1},
						{"FlightNumber": "UA837", "OriginAirport": "SFO", "DestinationAirport": "HND",
						 "DepartsAt": "2025-12-01T11:00:00Z", "ArrivesAt": "2025-12-01T19:00:00Z",
						 "AircraftName": "Boeing 777", "FareClass": "X", "Order": 0}
					]
				},
				{
					"ID": "t2",
					"Cabin": "business",
					"MileageCost": 75000,
					"TotalTaxes": 5610,
					"DepartsAt": "2025-12-01T11:00:00Z"
				}
			]
		},
		{
			"ID": "rec2",
			"Route": {"OriginAirport": "SFO", "DestinationAirport": "NRT", "Source": "united"},
			"Date": "2025-12-01",
			"YMileageCostRaw": 40000
		}
	]
}`

const summaryFixture = `{
	"data": [
		{
			"ID": "rec9",
			"Route": {"OriginAirport": "YVR", "DestinationAirport": "SFO", "Source": "aeroplan"},
			"Date": "2025-12-02T00:00:00Z",
			"TaxesCurrency": "CAD",
			"YMileageCostRaw": 12500,
			"YTotalTaxesRaw": 560,
			"YRemainingSeatsRaw": 4,
			"YAirlinesRaw": "AC, UA",
			"YDirectRaw": true,
			"JMileageCostRaw": 0
		}
	]
}`

func testQuery() domain.AtomicQuery {
	return domain.AtomicQuery{
		Origin:      "SFO",
		Destination: "NRT",
		Program:     "aeroplan",
		Date:        time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
		Cabin:       domain.CabinEconomy,
	}
}

func fastRetry() retry.Config {
	return retry.Config{
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2,
	}
}

func newTestAdapter(t *testing.T, handler http.HandlerFunc) *Adapter {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewAdapter(Config{BaseURL: server.URL, APIKey: "secret", Retry: fastRetry()})
}

// TestAdapter_Name tests the Name method.
func TestAdapter_Name(t *testing.T) {
	assert.Equal(t, "seatsaero", NewAdapter(Config{}).Name())
}

// TestAdapter_ImplementsInterface ensures Adapter implements AvailabilityProvider.
func TestAdapter_ImplementsInterface(t *testing.T) {
	var _ domain.AvailabilityProvider = (*Adapter)(nil)
}

func TestAdapter_Fetch_SendsQuery(t *testing.T) {
	var gotPath, gotAuth string
	var gotParams map[string]string

	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Partner-Authorization")
		gotParams = map[string]string{}
		for k := range r.URL.Query() {
			gotParams[k] = r.URL.Query().Get(k)
		}
		_, _ = w.Write([]byte(`{"data": []}`))
	})

	candidates, err := adapter.Fetch(context.Background(), testQuery())
	require.NoError(t, err)
	assert.Empty(t, candidates)

	assert.Equal(t, "/search", gotPath)
	assert.Equal(t, "secret", gotAuth)
	assert.Equal(t, map[string]string{
		"origin_airport":      "SFO",
		"destination_airport": "NRT",
		"cabins":              "economy",
		"start_date":          "2025-12-01",
		"end_date":            "2025-12-01",
		"sources":             "aeroplan",
		"order_by":            "lowest_mileage",
		"take":                "500",
		"include_trips":       "true",
	}, gotParams)
}

func TestAdapter_Fetch_Trips(t *testing.T) {
	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(tripsFixture))
	})

	candidates, err := adapter.Fetch(context.Background(), testQuery())
	require.NoError(t, err)
	require.Len(t, candidates, 1, "business trip and other programs are dropped")

	c := candidates[0]
	assert.Equal(t, "aeroplan", c.Program)
	assert.Equal(t, "SFO", c.Origin)
	assert.Equal(t, "NRT", c.Destination)
	assert.Equal(t, domain.CabinEconomy, c.Cabin)
	assert.Equal(t, 35000, c.Miles)
	assert.Equal(t, domain.Money(5610), c.Taxes)
	assert.Equal(t, domain.ExactSeats(9), c.Seats)
	assert.Equal(t, 1, c.Stops)
	assert.Equal(t, 12*time.Hour, c.Duration)
	assert.Equal(t, "t1", c.SourceID)
	assert.True(t, c.DepartsAt.Equal(time.Date(2025, 12, 1, 11, 0, 0, 0, time.UTC)))

	require.Len(t, c.Segments, 2)
	assert.Equal(t, "UA837", c.Segments[0].FlightNumber)
	assert.Equal(t, "UA", c.Segments[0].Carrier)
	assert.Equal(t, "HND", c.Segments[0].Destination)
	assert.Equal(t, "Boeing 777", c.Segments[0].Aircraft)
	assert.Equal(t, "NH7", c.Segments[1].FlightNumber)
	assert.Equal(t, "NH", c.Segments[1].Carrier)
	assert.Equal(t, "UA837, NH7", c.FlightNumbers())
}

func TestAdapter_Fetch_OddSeatValuePassesThrough(t *testing.T) {
	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data": [{
			"ID": "rec1",
			"Route": {"OriginAirport": "SFO", "DestinationAirport": "NRT", "Source": "aeroplan"},
			"Date": "2025-12-01",
			"TaxesCurrency": "USD",
			"AvailabilityTrips": [{
				"ID": "t1", "Cabin": "economy", "MileageCost": 35000, "TaxesCurrency": "USD",
				"RemainingSeats": true, "FlightNumbers": "AC8", "DepartsAt": "2025-12-01T11:00:00Z"
			}]
		}]}`))
	})

	candidates, err := adapter.Fetch(context.Background(), testQuery())
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "true", candidates[0].Seats.String())
	assert.Zero(t, candidates[0].Seats.Count)
}

func TestAdapter_Fetch_SummaryFallback(t *testing.T) {
	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(summaryFixture))
	})

	q := testQuery()
	q.Origin, q.Destination = "YVR", "SFO"
	q.Date = time.Date(2025, 12, 2, 0, 0, 0, 0, time.UTC)

	candidates, err := adapter.Fetch(context.Background(), q)
	require.NoError(t, err)
	require.Len(t, candidates, 1)

	c := candidates[0]
	assert.Equal(t, 12500, c.Miles)
	assert.Equal(t, domain.Money(403), c.Taxes, "560 CAD cents at the fallback rate")
	assert.Equal(t, domain.ExactSeats(4), c.Seats)
	assert.Equal(t, 0, c.Stops)
	assert.True(t, c.DepartsAt.Equal(q.Date))
	require.Len(t, c.Segments, 1)
	assert.Equal(t, "AC", c.Segments[0].Carrier)
	assert.Equal(t, "YVR", c.Segments[0].Origin)
	assert.Equal(t, "SFO", c.Segments[0].Destination)
}

func TestAdapter_Fetch_SummaryWithoutCabinAvailability(t *testing.T) {
	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(summaryFixture))
	})

	q := testQuery()
	q.Origin, q.Destination = "YVR", "SFO"
	q.Cabin = domain.CabinBusiness

	candidates, err := adapter.Fetch(context.Background(), q)
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestAdapter_Fetch_StatusErrors(t *testing.T) {
	tests := []struct {
		name          string
		status        int
		body          string
		wantKind      domain.ProviderErrorKind
		wantRetryable bool
		wantCalls     int32
	}{
		{"unauthorized", http.StatusUnauthorized, `{"error":"bad key"}`, domain.KindAuth, false, 1},
		{"forbidden", http.StatusForbidden, "", domain.KindAuth, false, 1},
		{"rate limited", http.StatusTooManyRequests, "", domain.KindRateLimited, true, 3},
		{"server error", http.StatusInternalServerError, "boom", domain.KindUnreachable, true, 3},
		{"bad gateway", http.StatusBadGateway, "", domain.KindUnreachable, true, 3},
		{"bad request", http.StatusBadRequest, "", domain.KindMalformedResponse, false, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			candidates, err := adapter.Fetch(context.Background(), testQuery())
			require.Error(t, err)
			assert.Nil(t, candidates)

			providerErr, ok := err.(*domain.ProviderError)
			require.True(t, ok, "Error should be ProviderError")
			assert.Equal(t, ProviderName, providerErr.Provider)
			assert.Equal(t, tt.wantKind, providerErr.Kind)
			assert.Equal(t, tt.wantRetryable, providerErr.Retryable)
			assert.Equal(t, testQuery(), providerErr.Query)
			assert.Equal(t, tt.wantCalls, calls.Load())
		})
	}
}

func TestAdapter_Fetch_RetriesThenSucceeds(t *testing.T) {
	var calls atomic.Int32
	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(tripsFixture))
	})

	candidates, err := adapter.Fetch(context.Background(), testQuery())
	require.NoError(t, err)
	assert.Len(t, candidates, 1)
	assert.Equal(t, int32(2), calls.Load())
}

func TestAdapter_Fetch_MalformedJSON(t *testing.T) {
	var calls atomic.Int32
	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{ invalid json }`))
	})

	_, err := adapter.Fetch(context.Background(), testQuery())
	require.Error(t, err)

	providerErr, ok := err.(*domain.ProviderError)
	require.True(t, ok)
	assert.Equal(t, domain.KindMalformedResponse, providerErr.Kind)
	assert.False(t, providerErr.Retryable)
	assert.Equal(t, int32(1), calls.Load())
}

func TestAdapter_Fetch_Timeout(t *testing.T) {
	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	_, err := adapter.Fetch(ctx, testQuery())
	require.Error(t, err)
	assert.True(t, domain.IsProviderTimeout(err))
}

func TestAdapter_Fetch_ServerDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	adapter := NewAdapter(Config{BaseURL: url, Retry: fastRetry()})
	_, err := adapter.Fetch(context.Background(), testQuery())
	require.Error(t, err)

	providerErr, ok := err.(*domain.ProviderError)
	require.True(t, ok)
	assert.Equal(t, domain.KindUnreachable, providerErr.Kind)
	assert.ErrorIs(t, err, domain.ErrProviderUnavailable)
}

func TestParseRetryAfter(t *testing.T) {
	now := time.Date(2025, 12, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Duration(0), parseRetryAfter("", now))
	assert.Equal(t, 3*time.Second, parseRetryAfter("3", now))
	assert.Equal(t, time.Duration(0), parseRetryAfter("soon", now))
	assert.Equal(t, 10*time.Second, parseRetryAfter(now.Add(10*time.Second).Format(http.TimeFormat), now))
}

func TestStatusError_RetryAfterIsHonored(t *testing.T) {
	err := classify(&StatusError{StatusCode: http.StatusTooManyRequests, wait: 2 * time.Second})

	var ra retry.RetryAfter
	require.ErrorAs(t, err, &ra)
	assert.Equal(t, 2*time.Second, ra.RetryAfter())
}
