package currency

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/award-search/award-flight-finder/internal/domain"
)

// DefaultRatesURL is the exchangerate-api endpoint; the base currency is appended.
const DefaultRatesURL = "https://api.exchangerate-api.com/v4/latest"

// cachedRate is a fetched rate and the time it was fetched.
type cachedRate struct {
	rate    float64
	fetched time.Time
}

// HTTPConverter fetches live rates and caches them for TTL.
// A failed lookup falls back to the built-in table and is not cached.
type HTTPConverter struct {
	baseURL string
	client  *http.Client
	ttl     time.Duration
	logger  zerolog.Logger
	now     func() time.Time
	rates   sync.Map // currency -> cachedRate
}

// HTTPOption configures an HTTPConverter.
type HTTPOption func(*HTTPConverter)

// WithHTTPClient sets the client used for rate lookups.
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(h *HTTPConverter) { h.client = c }
}

// WithTTL sets how long a fetched rate is reused.
func WithTTL(ttl time.Duration) HTTPOption {
	return func(h *HTTPConverter) { h.ttl = ttl }
}

// WithLogger sets the logger for fallback warnings.
func WithLogger(l zerolog.Logger) HTTPOption {
	return func(h *HTTPConverter) { h.logger = l }
}

// NewHTTPConverter creates a converter calling baseURL/{currency}.
func NewHTTPConverter(baseURL string, opts ...HTTPOption) *HTTPConverter {
	if baseURL == "" {
		baseURL = DefaultRatesURL
	}
	h := &HTTPConverter{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 5 * time.Second},
		ttl:     12 * time.Hour,
		logger:  zerolog.Nop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// ToUSD implements Converter.
func (h *HTTPConverter) ToUSD(ctx context.Context, cents int64, currency string) (domain.Money, error) {
	if isUSD(currency) {
		return domain.Money(cents), nil
	}
	return apply(cents, h.Rate(ctx, currency)), nil
}

// Rate returns the USD value of one unit of currency.
func (h *HTTPConverter) Rate(ctx context.Context, currency string) float64 {
	cur := normalize(currency)
	if cur == "" || cur == USD {
		return 1.0
	}

	if v, ok := h.rates.Load(cur); ok {
		cached := v.(cachedRate)
		if h.now().Sub(cached.fetched) < h.ttl {
			return cached.rate
		}
	}

	rate, err := h.fetch(ctx, cur)
	if err != nil {
		fallback := FallbackRate(cur)
		h.logger.Warn().
			Err(err).
			Str("currency", cur).
			Float64("fallback_rate", fallback).
			Msg("Exchange rate lookup failed, using fallback rate")
		return fallback
	}

	h.rates.Store(cur, cachedRate{rate: rate, fetched: h.now()})
	return rate
}

type ratesResponse struct {
	Base  string             `json:"base"`
	Rates map[string]float64 `json:"rates"`
}

func (h *HTTPConverter) fetch(ctx context.Context, cur string) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.baseURL+"/"+cur, nil)
	if err != nil {
		return 0, fmt.Errorf("build rate request: %w", err)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("fetch rate %s: %w", cur, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("fetch rate %s: status %d", cur, resp.StatusCode)
	}

	var body ratesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("decode rate %s: %w", cur, err)
	}

	rate, ok := body.Rates[USD]
	if !ok || rate <= 0 {
		return 0, fmt.Errorf("rate %s: no USD quote", cur)
	}
	return rate, nil
}

var _ Converter = (*HTTPConverter)(nil)
