package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// DateLayout is the calendar date format used across the API (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// DefaultMaxResults is the number of rows shown when the request does not say.
const DefaultMaxResults = 10

// Cabin is the travel class of an award search.
type Cabin string

// Supported cabins.
const (
	CabinEconomy  Cabin = "economy"
	CabinPremium  Cabin = "premium"
	CabinBusiness Cabin = "business"
	CabinFirst    Cabin = "first"
)

// IsValid checks if the cabin is a supported value.
func (c Cabin) IsValid() bool {
	switch c {
	case CabinEconomy, CabinPremium, CabinBusiness, CabinFirst:
		return true
	default:
		return false
	}
}

// SearchRequest is the validated input of an award search.
type SearchRequest struct {
	// Origins are the IATA codes of the departure airports
	Origins []string `json:"origins"`

	// Destinations are the IATA codes of the arrival airports
	Destinations []string `json:"destinations"`

	// Cabin is the travel class (default: economy)
	Cabin Cabin `json:"cabin"`

	// StartDate and EndDate bound the departure dates, both inclusive
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`

	// Programs chooses which loyalty programs are searched
	Programs ProgramSelection `json:"programs"`

	// BaselineCashPrice is the USD cash fare used to compute CPP (optional)
	BaselineCashPrice *Money `json:"baselineCashPrice,omitempty"`

	// MinCPP drops candidates below this value when present
	MinCPP CPP `json:"minCpp"`

	// NonstopOnly keeps only itineraries without stops
	NonstopOnly bool `json:"nonstopOnly"`

	// SortBy is the ranking key (default: miles)
	SortBy SortKey `json:"sortBy"`

	// MaxResults truncates the ranked output (default: 10)
	MaxResults int `json:"maxResults"`
}

// airportCodeRegex matches valid IATA airport codes (3 uppercase letters).
var airportCodeRegex = regexp.MustCompile(`^[A-Z]{3}$`)

// SetDefaults applies default values to empty optional fields.
func (r *SearchRequest) SetDefaults() {
	if r.Cabin == "" {
		r.Cabin = CabinEconomy
	}
	if r.SortBy == "" {
		r.SortBy = SortByMiles
	}
	if r.MaxResults == 0 {
		r.MaxResults = DefaultMaxResults
	}
}

// Validate checks the request and normalizes airport codes to upper case.
// Returned errors wrap ErrInvalidRequest; a non-positive MaxResults also wraps
// ErrInvalidMaxResults and an inverted date range also wraps ErrEmptyQueryPlan.
func (r *SearchRequest) Validate() error {
	origins, err := normalizeAirports("origins", r.Origins)
	if err != nil {
		return err
	}
	destinations, err := normalizeAirports("destinations", r.Destinations)
	if err != nil {
		return err
	}
	r.Origins, r.Destinations = origins, destinations

	if !r.Cabin.IsValid() {
		return WrapInvalidRequest("cabin must be one of: economy, premium, business, first; got %q", r.Cabin)
	}

	if r.StartDate.IsZero() {
		return WrapInvalidRequest("startDate is required")
	}
	if r.EndDate.IsZero() {
		return WrapInvalidRequest("endDate is required")
	}
	if r.StartDate.After(r.EndDate) {
		return fmt.Errorf("%w: %w: startDate %s is after endDate %s", ErrInvalidRequest, ErrEmptyQueryPlan,
			r.StartDate.Format(DateLayout), r.EndDate.Format(DateLayout))
	}

	if err := r.Programs.Validate(); err != nil {
		return err
	}

	if r.BaselineCashPrice != nil && *r.BaselineCashPrice <= 0 {
		return WrapInvalidRequest("baselineCashPrice must be positive")
	}
	if v, ok := r.MinCPP.Value(); ok && v < 0 {
		return WrapInvalidRequest("minCpp must not be negative")
	}

	if !r.SortBy.IsValid() {
		return WrapInvalidRequest("sortBy must be one of: miles, cpp, date; got %q", r.SortBy)
	}

	return ValidateMaxResults(r.MaxResults)
}

// ValidateMaxResults rejects a non-positive result limit with an error
// wrapping ErrInvalidRequest and ErrInvalidMaxResults.
func ValidateMaxResults(n int) error {
	if n <= 0 {
		return fmt.Errorf("%w: %w: maxResults must be positive, got %d", ErrInvalidRequest, ErrInvalidMaxResults, n)
	}
	return nil
}

// Days returns the number of calendar days in the inclusive date range,
// or 0 when the range is inverted.
func (r *SearchRequest) Days() int {
	if r.StartDate.After(r.EndDate) {
		return 0
	}
	return int(dateOnly(r.EndDate).Sub(dateOnly(r.StartDate)).Hours()/24) + 1
}

// normalizeAirports uppercases, validates and deduplicates airport codes,
// keeping first-occurrence order.
func normalizeAirports(field string, codes []string) ([]string, error) {
	if len(codes) == 0 {
		return nil, WrapInvalidRequest("%s is required", field)
	}

	seen := make(map[string]struct{}, len(codes))
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		code := strings.ToUpper(strings.TrimSpace(c))
		if !airportCodeRegex.MatchString(code) {
			return nil, WrapInvalidRequest("%s must contain valid 3-letter IATA codes, got %q", field, c)
		}
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		out = append(out, code)
	}
	return out, nil
}

// ParseDate parses a YYYY-MM-DD date in UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}

// dateOnly truncates t to midnight UTC of its calendar date.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
