package http

import (
	"context"
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/award-search/award-flight-finder/internal/adapter/http/response"
	"github.com/award-search/award-flight-finder/internal/domain"
)

// configurationCodes maps fatal request errors to their response codes.
// Order matters: an inverted date range wraps both ErrInvalidRequest and ErrEmptyQueryPlan.
var configurationCodes = []struct {
	err  error
	code string
}{
	{domain.ErrUnknownCreditCard, response.CodeUnknownCreditCard},
	{domain.ErrUnknownProgram, response.CodeUnknownProgram},
	{domain.ErrQueryBudgetExceeded, response.CodeQueryBudgetExceeded},
	{domain.ErrEmptyQueryPlan, response.CodeEmptyQueryPlan},
	{domain.ErrInvalidMaxResults, response.CodeValidationError},
	{domain.ErrInvalidRequest, response.CodeValidationError},
}

// writeError maps use case errors to HTTP responses.
//
//	configuration errors       400
//	global deadline            504 (with per-query details when every query failed)
//	caller cancelled           504
//	every query failed         503 (with per-query details)
//	anything else              500
func writeError(c echo.Context, err error) error {
	for _, m := range configurationCodes {
		if errors.Is(err, m.err) {
			return response.ConfigurationError(c, m.code, err.Error())
		}
	}

	var aggErr *domain.AggregationError
	hasFailures := errors.As(err, &aggErr)

	if errors.Is(err, domain.ErrProviderTimeout) || errors.Is(err, context.DeadlineExceeded) {
		if hasFailures {
			return response.GatewayTimeout(c, failureDetails(aggErr.Failures))
		}
		return response.GatewayTimeout(c, nil)
	}

	if errors.Is(err, context.Canceled) {
		return response.RequestCancelled(c)
	}

	if hasFailures {
		return response.AggregationFailed(c, failureDetails(aggErr.Failures))
	}
	if domain.IsAggregationFailed(err) {
		return response.AggregationFailed(c, nil)
	}

	return response.InternalServerError(c)
}
