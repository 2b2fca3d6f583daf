package http

import (
	"fmt"
	"time"

	"github.com/award-search/award-flight-finder/internal/domain"
)

// dateTimeLayout is the timestamp format of response DTOs.
const dateTimeLayout = "2006-01-02T15:04:05Z07:00"

// SearchResponseDTO is the data transfer object for award search responses.
// It matches the expected API output format with snake_case fields.
type SearchResponseDTO struct {
	SearchCriteria SearchCriteriaDTO `json:"search_criteria"`
	Metadata       MetadataDTO       `json:"metadata"`
	Awards         []AwardDTO        `json:"awards"`
}

// SearchCriteriaDTO echoes the normalized request.
type SearchCriteriaDTO struct {
	Origins           []string `json:"origins"`
	Destinations      []string `json:"destinations"`
	Cabin             string   `json:"cabin"`
	StartDate         string   `json:"start_date"`
	EndDate           string   `json:"end_date"`
	Programs          []string `json:"programs"`
	CreditCard        string   `json:"credit_card,omitempty"`
	BaselineCashPrice *float64 `json:"baseline_cash_price,omitempty"`
	SortBy            string   `json:"sort_by"`
	MaxResults        int      `json:"max_results"`
}

// MetadataDTO contains metadata about the search execution.
type MetadataDTO struct {
	TotalCandidates  int          `json:"total_candidates"`
	TotalAfterFilter int          `json:"total_after_filter"`
	TotalResults     int          `json:"total_results"`
	QueriesPlanned   int          `json:"queries_planned"`
	QueriesSucceeded int          `json:"queries_succeeded"`
	QueriesFailed    int          `json:"queries_failed"`
	CacheHits        int          `json:"cache_hits"`
	ScoringAnomalies int          `json:"scoring_anomalies"`
	Partial          bool         `json:"partial"`
	CatalogVersion   string       `json:"catalog_version"`
	SearchTimeMs     int64        `json:"search_time_ms"`
	Failures         []FailureDTO `json:"failures,omitempty"`
}

// FailureDTO describes one failed atomic query.
type FailureDTO struct {
	Query       int    `json:"query"`
	Program     string `json:"program"`
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Date        string `json:"date"`
	Kind        string `json:"kind"`
	Retryable   bool   `json:"retryable"`
	Message     string `json:"message"`
}

// AwardDTO is one ranked award offer.
type AwardDTO struct {
	Rank          int          `json:"rank"`
	Program       string       `json:"program"`
	Origin        string       `json:"origin"`
	Destination   string       `json:"destination"`
	Cabin         string       `json:"cabin"`
	DepartsAt     string       `json:"departs_at"`
	ArrivesAt     string       `json:"arrives_at,omitempty"`
	Duration      *DurationDTO `json:"duration,omitempty"`
	Stops         int          `json:"stops"`
	FlightNumbers string       `json:"flight_numbers"`
	Miles         int          `json:"miles"`
	Taxes         PriceDTO     `json:"taxes"`
	Seats         SeatsDTO     `json:"seats"`
	CPP           *float64     `json:"cpp"`
	Segments      []SegmentDTO `json:"segments"`
}

// DurationDTO represents itinerary duration.
type DurationDTO struct {
	TotalMinutes int    `json:"total_minutes"`
	Formatted    string `json:"formatted"`
}

// PriceDTO represents a cash amount.
type PriceDTO struct {
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
	Formatted string  `json:"formatted"`
}

// SeatsDTO represents the seats-remaining indicator; at_least marks "9+".
type SeatsDTO struct {
	Count     int    `json:"count"`
	AtLeast   bool   `json:"at_least"`
	Formatted string `json:"formatted"`
}

// SegmentDTO represents one flown leg.
type SegmentDTO struct {
	Carrier      string `json:"carrier"`
	FlightNumber string `json:"flight_number"`
	Origin       string `json:"origin"`
	Destination  string `json:"destination"`
	DepartsAt    string `json:"departs_at,omitempty"`
	ArrivesAt    string `json:"arrives_at,omitempty"`
	Aircraft     string `json:"aircraft,omitempty"`
	FareClass    string `json:"fare_class,omitempty"`
}

// ToSearchResponseDTO converts a domain SearchResponse to a SearchResponseDTO.
func ToSearchResponseDTO(resp *domain.SearchResponse) *SearchResponseDTO {
	if resp == nil {
		return nil
	}

	programs := make([]string, len(resp.Programs))
	for i, p := range resp.Programs {
		programs[i] = p.ID
	}

	req := resp.Request
	dto := &SearchResponseDTO{
		SearchCriteria: SearchCriteriaDTO{
			Origins:      req.Origins,
			Destinations: req.Destinations,
			Cabin:        string(req.Cabin),
			StartDate:    req.StartDate.Format(domain.DateLayout),
			EndDate:      req.EndDate.Format(domain.DateLayout),
			Programs:     programs,
			CreditCard:   req.Programs.CreditCard,
			SortBy:       string(req.SortBy),
			MaxResults:   req.MaxResults,
		},
		Metadata: toMetadataDTO(resp.Summary, len(resp.Results)),
		Awards:   make([]AwardDTO, len(resp.Results)),
	}
	if req.BaselineCashPrice != nil {
		price := req.BaselineCashPrice.Dollars()
		dto.SearchCriteria.BaselineCashPrice = &price
	}

	for i := range resp.Results {
		dto.Awards[i] = ToAwardDTO(&resp.Results[i])
	}

	return dto
}

func toMetadataDTO(s domain.SearchSummary, results int) MetadataDTO {
	return MetadataDTO{
		TotalCandidates:  s.TotalCandidatesBeforeFilter,
		TotalAfterFilter: s.TotalAfterFilter,
		TotalResults:     results,
		QueriesPlanned:   s.QueriesPlanned,
		QueriesSucceeded: s.QueriesSucceeded,
		QueriesFailed:    s.FailedQueries(),
		CacheHits:        s.CacheHits,
		ScoringAnomalies: len(s.ScoringAnomalies),
		Partial:          s.IsPartial(),
		CatalogVersion:   s.CatalogVersion,
		SearchTimeMs:     s.SearchDurationMs,
		Failures:         ToFailureDTOs(s.PartialFailures),
	}
}

// ToFailureDTOs converts provider errors, keeping plan order.
func ToFailureDTOs(failures []*domain.ProviderError) []FailureDTO {
	if len(failures) == 0 {
		return nil
	}
	out := make([]FailureDTO, len(failures))
	for i, f := range failures {
		out[i] = FailureDTO{
			Query:       f.Query.Index,
			Program:     f.Query.Program,
			Origin:      f.Query.Origin,
			Destination: f.Query.Destination,
			Date:        f.Query.DateString(),
			Kind:        string(f.Kind),
			Retryable:   f.Retryable,
			Message:     causeOf(f),
		}
	}
	return out
}

// failureDetails keys each failed query by its plan index for ErrorDetail.Details.
func failureDetails(failures []*domain.ProviderError) map[string]string {
	if len(failures) == 0 {
		return nil
	}
	details := make(map[string]string, len(failures))
	for _, f := range failures {
		details[fmt.Sprintf("queries[%d]", f.Query.Index)] = fmt.Sprintf("%s %s-%s %s: [%s] %s",
			f.Query.Program, f.Query.Origin, f.Query.Destination, f.Query.DateString(), f.Kind, causeOf(f))
	}
	return details
}

func causeOf(f *domain.ProviderError) string {
	if f.Err != nil {
		return f.Err.Error()
	}
	return string(f.Kind)
}

// ToAwardDTO converts a ranked result to an AwardDTO.
func ToAwardDTO(r *domain.FlightResult) AwardDTO {
	dto := AwardDTO{
		Rank:          r.Rank,
		Program:       r.Program,
		Origin:        r.Origin,
		Destination:   r.Destination,
		Cabin:         string(r.Cabin),
		DepartsAt:     formatDateTime(r.DepartsAt),
		ArrivesAt:     formatDateTime(r.ArrivesAt),
		Stops:         r.Stops,
		FlightNumbers: r.FlightNumbers(),
		Miles:         r.Miles,
		Taxes: PriceDTO{
			Amount:    r.Taxes.Dollars(),
			Currency:  "USD",
			Formatted: r.Taxes.String(),
		},
		Seats: SeatsDTO{
			Count:     r.Seats.Count,
			AtLeast:   r.Seats.AtLeast,
			Formatted: r.Seats.String(),
		},
		Segments: make([]SegmentDTO, len(r.Segments)),
	}

	if r.Duration > 0 {
		dto.Duration = &DurationDTO{
			TotalMinutes: int(r.Duration.Minutes()),
			Formatted:    domain.FormatDuration(r.Duration),
		}
	}
	if v, ok := r.CPP.Value(); ok {
		dto.CPP = &v
	}

	for i, s := range r.Segments {
		dto.Segments[i] = SegmentDTO{
			Carrier:      s.Carrier,
			FlightNumber: s.FlightNumber,
			Origin:       s.Origin,
			Destination:  s.Destination,
			DepartsAt:    formatDateTime(s.DepartsAt),
			ArrivesAt:    formatDateTime(s.ArrivesAt),
			Aircraft:     s.Aircraft,
			FareClass:    s.FareClass,
		}
	}

	return dto
}

func formatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateTimeLayout)
}
