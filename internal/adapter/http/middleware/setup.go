package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Setup registers all middleware on the Echo instance in the correct order:
//  1. RequestID, so every later log entry carries the id
//  2. RequestLogger, which also sees the status written by Recover
//  3. Recover, closest to the handlers
//
// Call it before registering routes.
func Setup(e *echo.Echo, log zerolog.Logger) {
	SetupWithConfig(e, log, DefaultRecoveryConfig())
}

// SetupWithConfig registers middleware with custom recovery configuration.
func SetupWithConfig(e *echo.Echo, log zerolog.Logger, recoveryConfig RecoveryConfig) {
	e.Use(Chain(log, recoveryConfig)...)
}

// Chain returns the middleware in Setup order, for use with route groups.
func Chain(log zerolog.Logger, recoveryConfig RecoveryConfig) []echo.MiddlewareFunc {
	return []echo.MiddlewareFunc{
		RequestID(),
		RequestLogger(log),
		RecoverWithConfig(log, recoveryConfig),
	}
}
