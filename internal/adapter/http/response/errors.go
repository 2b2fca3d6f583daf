package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// InvalidRequestBody writes a 400 Bad Request response for malformed request bodies.
func InvalidRequestBody(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, &ErrorDetail{
		Code:    CodeInvalidRequest,
		Message: MsgInvalidRequestBody,
	})
}

// ValidationError writes a 400 Bad Request response with field-level details.
func ValidationError(c echo.Context, details map[string]string) error {
	return c.JSON(http.StatusBadRequest, &ErrorDetail{
		Code:    CodeValidationError,
		Message: MsgValidationFailed,
		Details: details,
	})
}

// ValidationErrorWithMessage writes a 400 Bad Request response with a custom message.
func ValidationErrorWithMessage(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, &ErrorDetail{
		Code:    CodeValidationError,
		Message: message,
	})
}

// ConfigurationError writes a 400 Bad Request response for a request the
// catalog or the query planner rejected before any provider call.
func ConfigurationError(c echo.Context, code, message string) error {
	return c.JSON(http.StatusBadRequest, &ErrorDetail{
		Code:    code,
		Message: message,
	})
}

// AggregationFailed writes a 503 Service Unavailable response listing the failed queries.
func AggregationFailed(c echo.Context, details map[string]string) error {
	return c.JSON(http.StatusServiceUnavailable, &ErrorDetail{
		Code:    CodeAggregationFailed,
		Message: MsgAggregationFailed,
		Details: details,
	})
}

// GatewayTimeout writes a 504 Gateway Timeout response.
func GatewayTimeout(c echo.Context, details map[string]string) error {
	return c.JSON(http.StatusGatewayTimeout, &ErrorDetail{
		Code:    CodeTimeout,
		Message: MsgTimeout,
		Details: details,
	})
}

// RequestCancelled writes a 504 Gateway Timeout response for cancelled requests.
func RequestCancelled(c echo.Context) error {
	return c.JSON(http.StatusGatewayTimeout, &ErrorDetail{
		Code:    CodeTimeout,
		Message: MsgRequestCancelled,
	})
}

// InternalServerError writes a 500 Internal Server Error response.
func InternalServerError(c echo.Context) error {
	return c.JSON(http.StatusInternalServerError, &ErrorDetail{
		Code:    CodeInternalError,
		Message: MsgInternalError,
	})
}
