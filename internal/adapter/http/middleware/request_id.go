// Package middleware provides HTTP middleware for cross-cutting concerns.
package middleware

import (
	"context"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	// RequestIDHeader is the HTTP header name for request ID.
	RequestIDHeader = "X-Request-ID"
	// requestIDKey is the echo context key for storing request ID.
	requestIDKey = "request_id"

	// maxRequestIDLength bounds client-supplied ids; longer ones are replaced.
	maxRequestIDLength = 128
)

type requestIDContextKey struct{}

// RequestID returns middleware that generates or propagates request IDs.
// An incoming X-Request-ID is kept when it is short printable ASCII;
// otherwise a new UUID is generated. The id is stored in the echo context,
// in the request's context.Context and in the response header.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			reqID := c.Request().Header.Get(RequestIDHeader)
			if !validRequestID(reqID) {
				reqID = uuid.New().String()
			}

			c.Set(requestIDKey, reqID)
			req := c.Request()
			c.SetRequest(req.WithContext(context.WithValue(req.Context(), requestIDContextKey{}, reqID)))
			c.Response().Header().Set(RequestIDHeader, reqID)

			return next(c)
		}
	}
}

// GetRequestID retrieves the request ID from the echo context.
// Returns an empty string if no request ID is set.
func GetRequestID(c echo.Context) string {
	if id, ok := c.Get(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// RequestIDFromContext retrieves the request ID stored by RequestID.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDContextKey{}).(string)
	return id
}

func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < 0x21 || id[i] > 0x7e {
			return false
		}
	}
	return true
}
