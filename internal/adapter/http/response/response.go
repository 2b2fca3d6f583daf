// Package response provides standardized HTTP response builders for the award search API.
// Every error leaves the server as an ErrorDetail so clients can switch on Code.
package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ErrorDetail contains structured error information.
type ErrorDetail struct {
	// Code is a machine-readable error code
	Code string `json:"code"`

	// Message is a human-readable error message
	Message string `json:"message"`

	// Details contains field-specific or per-query error details
	Details map[string]string `json:"details,omitempty"`
}

// Error codes used in API responses.
const (
	CodeInvalidRequest      = "invalid_request"
	CodeValidationError     = "validation_error"
	CodeUnknownCreditCard   = "unknown_credit_card"
	CodeUnknownProgram      = "unknown_program"
	CodeEmptyQueryPlan      = "empty_query_plan"
	CodeQueryBudgetExceeded = "query_budget_exceeded"
	CodeAggregationFailed   = "aggregation_failed"
	CodeTimeout             = "timeout"
	CodeInternalError       = "internal_error"
)

// Error messages used in API responses.
const (
	MsgInvalidRequestBody = "Failed to parse request body"
	MsgValidationFailed   = "Request validation failed"
	MsgAggregationFailed  = "Every availability query failed"
	MsgTimeout            = "Search timed out"
	MsgRequestCancelled   = "Request was cancelled"
	MsgInternalError      = "An unexpected error occurred"
)

// OK writes a 200 OK response with the given data.
func OK(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, data)
}
