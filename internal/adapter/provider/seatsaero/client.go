// Package seatsaero implements the availability provider backed by the
// seats.aero partner API.
package seatsaero

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/award-search/award-flight-finder/internal/domain"
	"github.com/award-search/award-flight-finder/internal/infrastructure/currency"
	"github.com/award-search/award-flight-finder/internal/infrastructure/retry"
)

// ProviderName is the unique identifier for the seats.aero provider.
const ProviderName = "seatsaero"

// Defaults for the partner API.
const (
	DefaultBaseURL = "https://seats.aero/partnerapi"
	DefaultTake    = 500
	DefaultTimeout = 30 * time.Second

	// maxErrorBody bounds how much of an error response is kept.
	maxErrorBody = 512
)

// Config holds the adapter settings.
type Config struct {
	BaseURL string
	APIKey  string

	// Take is the page size requested from the API
	Take int

	// Timeout bounds one HTTP round trip
	Timeout time.Duration

	// RequestsPerSecond paces outgoing calls; zero disables pacing
	RequestsPerSecond float64
	Burst             int

	// Retry is the retry policy; MaxAttempts 0 uses retry.ProviderConfig
	Retry retry.Config
}

// Adapter implements domain.AvailabilityProvider for seats.aero.
type Adapter struct {
	cfg        Config
	client     *http.Client
	limiter    *rate.Limiter
	normalizer normalizer
	logger     zerolog.Logger
	now        func() time.Time
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(a *Adapter) { a.client = c }
}

// WithConverter sets the currency converter used for taxes.
func WithConverter(c currency.Converter) Option {
	return func(a *Adapter) { a.normalizer.converter = c }
}

// WithLogger sets the adapter logger.
func WithLogger(l zerolog.Logger) Option {
	return func(a *Adapter) { a.logger = l }
}

// NewAdapter creates a seats.aero adapter.
func NewAdapter(cfg Config, opts ...Option) *Adapter {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Take <= 0 {
		cfg.Take = DefaultTake
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Retry.MaxAttempts == 0 {
		cfg.Retry = retry.ProviderConfig
	}

	a := &Adapter{
		cfg:        cfg,
		client:     &http.Client{Timeout: cfg.Timeout},
		normalizer: normalizer{converter: currency.Static{}},
		logger:     zerolog.Nop(),
		now:        time.Now,
	}
	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		a.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Name implements domain.AvailabilityProvider.
func (a *Adapter) Name() string {
	return ProviderName
}

// Fetch implements domain.AvailabilityProvider.
func (a *Adapter) Fetch(ctx context.Context, q domain.AtomicQuery) ([]domain.FlightCandidate, error) {
	policy := a.cfg.Retry.
		WithRetryIf(isRetryable).
		WithOnRetry(func(attempt int, err error, wait time.Duration) {
			a.logger.Debug().
				Err(err).
				Int("attempt", attempt).
				Dur("wait", wait).
				Str("query", q.String()).
				Msg("Retrying seats.aero request")
		})

	records, err := retry.DoWithResult(ctx, func() ([]availability, error) {
		return a.search(ctx, q)
	}, policy)
	if err != nil {
		return nil, classify(err).WithQuery(q)
	}

	candidates, skipped := a.normalizer.normalize(ctx, q, records)
	if skipped > 0 {
		a.logger.Warn().
			Int("skipped", skipped).
			Str("query", q.String()).
			Msg("Skipped availability entries that could not be normalized")
	}
	return candidates, nil
}

// search performs one GET /search call.
func (a *Adapter) search(ctx context.Context, q domain.AtomicQuery) ([]availability, error) {
	if a.limiter != nil {
		if err := a.limiter.Wait(ctx); err != nil {
			if ctx.Err() == nil {
				// the limiter refuses waits that would outlive the deadline
				err = fmt.Errorf("%w: %w", context.DeadlineExceeded, err)
			}
			return nil, classify(err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.searchURL(q), nil)
	if err != nil {
		return nil, malformed(fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Partner-Authorization", a.cfg.APIKey)
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, classify(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		se := &StatusError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
			wait:       parseRetryAfter(resp.Header.Get("Retry-After"), a.now()),
		}
		return nil, classify(se)
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, classify(ctxErr)
		}
		return nil, malformed(fmt.Errorf("decode response: %w", err))
	}
	return body.Data, nil
}

func (a *Adapter) searchURL(q domain.AtomicQuery) string {
	date := q.DateString()
	params := url.Values{}
	params.Set("origin_airport", q.Origin)
	params.Set("destination_airport", q.Destination)
	params.Set("cabins", string(q.Cabin))
	params.Set("start_date", date)
	params.Set("end_date", date)
	params.Set("sources", q.Program)
	params.Set("order_by", "lowest_mileage")
	params.Set("take", strconv.Itoa(a.cfg.Take))
	params.Set("include_trips", "true")
	return a.cfg.BaseURL + "/search?" + params.Encode()
}

func isRetryable(err error) bool {
	var pe *domain.ProviderError
	return errors.As(err, &pe) && pe.Retryable
}

var _ domain.AvailabilityProvider = (*Adapter)(nil)
