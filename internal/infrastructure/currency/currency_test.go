package currency

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
)

func TestStatic_ToUSD(t *testing.T) {
	tests := []struct {
		currency string
		cents    int64
		want     domain.Money
	}{
		{currency: "USD", cents: 5600, want: 5600},
		{currency: "", cents: 5600, want: 5600},
		{currency: "cad", cents: 10000, want: 7200},
		{currency: "EUR", cents: 10000, want: 10800},
		{currency: "GBP", cents: 10000, want: 12700},
		{currency: "JPY", cents: 1000000, want: 6700},
		{currency: "AUD", cents: 10000, want: 6500},
		{currency: "NZD", cents: 10000, want: 6000},
		{currency: "CHF", cents: 10000, want: 10000},
	}

	for _, tt := range tests {
		t.Run(tt.currency, func(t *testing.T) {
			got, err := Static{}.ToUSD(context.Background(), tt.cents, tt.currency)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func newRatesServer(t *testing.T, calls *int32, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		assert.Equal(t, "/v4/latest/CAD", r.URL.Path)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestHTTPConverter_LiveRateIsCached(t *testing.T) {
	var calls int32
	srv := newRatesServer(t, &calls, http.StatusOK, `{"base":"CAD","rates":{"USD":0.75,"EUR":0.68}}`)

	conv := NewHTTPConverter(srv.URL + "/v4/latest/")

	got, err := conv.ToUSD(context.Background(), 10000, "CAD")
	require.NoError(t, err)
	assert.Equal(t, domain.Money(7500), got)

	got, err = conv.ToUSD(context.Background(), 20000, "cad")
	require.NoError(t, err)
	assert.Equal(t, domain.Money(15000), got)

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestHTTPConverter_ExpiredRateIsRefetched(t *testing.T) {
	var calls int32
	srv := newRatesServer(t, &calls, http.StatusOK, `{"rates":{"USD":0.75}}`)

	now := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	conv := NewHTTPConverter(srv.URL+"/v4/latest", WithTTL(time.Hour))
	conv.now = func() time.Time { return now }

	conv.Rate(context.Background(), "CAD")
	now = now.Add(2 * time.Hour)
	conv.Rate(context.Background(), "CAD")

	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestHTTPConverter_FallsBack(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "server error", status: http.StatusInternalServerError, body: `oops`},
		{name: "malformed body", status: http.StatusOK, body: `{"rates":`},
		{name: "missing usd quote", status: http.StatusOK, body: `{"rates":{"EUR":0.68}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int32
			srv := newRatesServer(t, &calls, tt.status, tt.body)
			conv := NewHTTPConverter(srv.URL + "/v4/latest")

			got, err := conv.ToUSD(context.Background(), 10000, "CAD")
			require.NoError(t, err)
			assert.Equal(t, domain.Money(7200), got)

			// failures are not cached
			conv.Rate(context.Background(), "CAD")
			assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
		})
	}
}

func TestHTTPConverter_USDSkipsLookup(t *testing.T) {
	var calls int32
	srv := newRatesServer(t, &calls, http.StatusOK, `{}`)
	conv := NewHTTPConverter(srv.URL)

	got, err := conv.ToUSD(context.Background(), 1234, "usd")
	require.NoError(t, err)
	assert.Equal(t, domain.Money(1234), got)
	assert.Equal(t, 1.0, conv.Rate(context.Background(), "USD"))
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestFallbackRate(t *testing.T) {
	assert.Equal(t, 0.72, FallbackRate(" cad "))
	assert.Equal(t, 1.0, FallbackRate("XYZ"))
}
