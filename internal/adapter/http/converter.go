package http

import (
	"strings"
	"time"

	"github.com/award-search/award-flight-finder/internal/domain"
	"github.com/award-search/award-flight-finder/internal/usecase"
)

// ToDomainRequest converts a validated SearchAwardsRequest to a domain.SearchRequest.
// Defaults are left to the use case.
func ToDomainRequest(req *SearchAwardsRequest) domain.SearchRequest {
	out := domain.SearchRequest{
		Origins:      req.Origins,
		Destinations: req.Destinations,
		Cabin:        domain.Cabin(req.Cabin),
		StartDate:    parseDate(req.StartDate),
		EndDate:      parseDate(req.EndDate),
		Programs:     ToProgramSelection(req),
		MinCPP:       domain.NoCPP(),
		NonstopOnly:  req.NonstopOnly,
		SortBy:       domain.SortKey(req.SortBy),
	}

	if req.MaxResults != nil {
		out.MaxResults = *req.MaxResults
	}
	if req.BaselineCashPrice != nil {
		price := domain.MoneyFromFloat(*req.BaselineCashPrice)
		out.BaselineCashPrice = &price
	}
	if req.MinCPP != nil {
		out.MinCPP = domain.CPPThreshold(*req.MinCPP)
	}

	return out
}

// ToProgramSelection picks the selection mode the request populated.
func ToProgramSelection(req *SearchAwardsRequest) domain.ProgramSelection {
	switch {
	case strings.TrimSpace(req.CreditCard) != "":
		return domain.CreditCardPrograms(domain.NormalizeID(req.CreditCard))
	case req.AllPrograms:
		return domain.AllPrograms()
	default:
		return domain.ExplicitPrograms(req.Programs...)
	}
}

// ToSearchOptions builds the per-search options of an HTTP call.
// A client that hangs up gets nothing back, so partial results are discarded.
func ToSearchOptions(requestID string) usecase.SearchOptions {
	return usecase.SearchOptions{
		DiscardOnCancel: true,
		RequestID:       requestID,
	}
}

func parseDate(s string) time.Time {
	t, err := domain.ParseDate(s)
	if err != nil {
		return time.Time{}
	}
	return t
}
