// Package http provides the HTTP handler layer for the award search API.
// It handles request parsing, validation, and response formatting.
package http

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/award-search/award-flight-finder/internal/domain"
)

// SearchAwardsRequest represents the request body for an award search.
type SearchAwardsRequest struct {
	// Origins are the IATA codes of the departure airports (e.g., ["SFO", "OAK"])
	Origins []string `json:"origins" example:"SFO,OAK"`

	// Destinations are the IATA codes of the arrival airports
	Destinations []string `json:"destinations" example:"NRT"`

	// Cabin is economy, premium, business or first (optional, default economy)
	Cabin string `json:"cabin,omitempty" example:"business"`

	// StartDate and EndDate bound the departure dates in YYYY-MM-DD format, both inclusive
	StartDate string `json:"startDate" example:"2025-12-01"`
	EndDate   string `json:"endDate" example:"2025-12-07"`

	// Exactly one of Programs, CreditCard and AllPrograms selects the programs searched
	Programs    []string `json:"programs,omitempty" example:"aeroplan,alaska"`
	CreditCard  string   `json:"creditCard,omitempty" example:"capital-one"`
	AllPrograms bool     `json:"allPrograms,omitempty"`

	// BaselineCashPrice is the USD cash fare used to compute cents per point (optional)
	BaselineCashPrice *float64 `json:"baselineCashPrice,omitempty" example:"850"`

	// MinCPP drops results below this cents-per-point value (optional)
	MinCPP *float64 `json:"minCpp,omitempty" example:"1.5"`

	NonstopOnly bool `json:"nonstopOnly,omitempty"`

	// SortBy is miles, cpp or date (optional, default miles)
	SortBy string `json:"sortBy,omitempty" example:"miles"`

	// MaxResults truncates the ranked output (optional, default 10)
	MaxResults *int `json:"maxResults,omitempty" example:"10"`
}

// Validation regex patterns.
var (
	airportCodePattern = regexp.MustCompile(`^[A-Z]{3}$`)
	datePattern        = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// ValidationError represents a field-level validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors holds multiple validation errors.
type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

// Error implements the error interface.
func (v *ValidationErrors) Error() string {
	if len(v.Errors) == 0 {
		return "validation failed"
	}
	return v.Errors[0].Message
}

// Add adds a validation error.
func (v *ValidationErrors) Add(field, message string) {
	v.Errors = append(v.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors.
func (v *ValidationErrors) HasErrors() bool {
	return len(v.Errors) > 0
}

// ToMap converts validation errors to a map for API response.
// Only the first message of each field is kept.
func (v *ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string, len(v.Errors))
	for _, e := range v.Errors {
		if _, ok := result[e.Field]; !ok {
			result[e.Field] = e.Message
		}
	}
	return result
}

// Validate checks the request and normalizes airport codes, cabin and sort key.
func (r *SearchAwardsRequest) Validate() error {
	errs := &ValidationErrors{}

	r.Origins = validateAirports(errs, "origins", r.Origins)
	r.Destinations = validateAirports(errs, "destinations", r.Destinations)
	r.validateCabin(errs)
	r.validateDates(errs)
	r.validatePrograms(errs)
	r.validateValuation(errs)
	r.validateSortBy(errs)

	if r.MaxResults != nil && *r.MaxResults <= 0 {
		errs.Add("maxResults", "maxResults must be a positive number")
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

// validateAirports returns the uppercased codes, reporting each bad entry by index.
func validateAirports(errs *ValidationErrors, field string, codes []string) []string {
	if len(codes) == 0 {
		errs.Add(field, field+" is required")
		return codes
	}

	out := make([]string, len(codes))
	for i, code := range codes {
		normalized := strings.ToUpper(strings.TrimSpace(code))
		if !airportCodePattern.MatchString(normalized) {
			errs.Add(fmt.Sprintf("%s[%d]", field, i), "must be a valid 3-letter IATA airport code")
		}
		out[i] = normalized
	}
	return out
}

func (r *SearchAwardsRequest) validateCabin(errs *ValidationErrors) {
	r.Cabin = strings.ToLower(strings.TrimSpace(r.Cabin))
	if r.Cabin != "" && !domain.Cabin(r.Cabin).IsValid() {
		errs.Add("cabin", "cabin must be one of: economy, premium, business, first")
	}
}

func (r *SearchAwardsRequest) validateDates(errs *ValidationErrors) {
	start, startOK := validateDate(errs, "startDate", r.StartDate)
	end, endOK := validateDate(errs, "endDate", r.EndDate)
	if startOK && endOK && end.Before(start) {
		errs.Add("endDate", "endDate must not be before startDate")
	}
}

func validateDate(errs *ValidationErrors, field, value string) (time.Time, bool) {
	if value == "" {
		errs.Add(field, field+" is required")
		return time.Time{}, false
	}
	if !datePattern.MatchString(value) {
		errs.Add(field, field+" must be in YYYY-MM-DD format")
		return time.Time{}, false
	}
	t, err := time.Parse(domain.DateLayout, value)
	if err != nil {
		errs.Add(field, field+" is not a valid date")
		return time.Time{}, false
	}
	return t, true
}

func (r *SearchAwardsRequest) validatePrograms(errs *ValidationErrors) {
	modes := 0
	if len(r.Programs) > 0 {
		modes++
	}
	if strings.TrimSpace(r.CreditCard) != "" {
		modes++
	}
	if r.AllPrograms {
		modes++
	}

	switch modes {
	case 0:
		errs.Add("programs", "one of programs, creditCard or allPrograms is required")
	case 1:
		for i, p := range r.Programs {
			if strings.TrimSpace(p) == "" {
				errs.Add(fmt.Sprintf("programs[%d]", i), "program must not be empty")
			}
		}
	default:
		errs.Add("programs", "programs, creditCard and allPrograms are mutually exclusive")
	}
}

func (r *SearchAwardsRequest) validateValuation(errs *ValidationErrors) {
	if r.BaselineCashPrice != nil && *r.BaselineCashPrice <= 0 {
		errs.Add("baselineCashPrice", "baselineCashPrice must be a positive number")
	}
	if r.MinCPP != nil && *r.MinCPP < 0 {
		errs.Add("minCpp", "minCpp must be a non-negative number")
	}
}

func (r *SearchAwardsRequest) validateSortBy(errs *ValidationErrors) {
	r.SortBy = strings.ToLower(strings.TrimSpace(r.SortBy))
	if r.SortBy != "" && !domain.SortKey(r.SortBy).IsValid() {
		errs.Add("sortBy", "sortBy must be one of: miles, cpp, date")
	}
}
