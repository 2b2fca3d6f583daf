package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/award-search/award-flight-finder/internal/adapter/http/response"
)

// RecoveryConfig tunes the panic recovery middleware.
type RecoveryConfig struct {
	// DisablePrintStack omits the stack trace from the log entry
	DisablePrintStack bool
}

// DefaultRecoveryConfig returns the default recovery configuration.
func DefaultRecoveryConfig() RecoveryConfig {
	return RecoveryConfig{}
}

// Recover returns middleware that turns handler panics into a 500 JSON error.
func Recover(log zerolog.Logger) echo.MiddlewareFunc {
	return RecoverWithConfig(log, DefaultRecoveryConfig())
}

// RecoverWithConfig returns recovery middleware with custom configuration.
func RecoverWithConfig(log zerolog.Logger, config RecoveryConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				if r == http.ErrAbortHandler {
					panic(r)
				}

				event := log.Error().
					Str("request_id", GetRequestID(c)).
					Str("method", c.Request().Method).
					Str("path", c.Request().URL.Path).
					Str("panic", panicMessage(r))
				if !config.DisablePrintStack {
					event = event.Str("stack", string(debug.Stack()))
				}
				event.Msg("Panic recovered")

				// the body stays generic; the log has the details
				if !c.Response().Committed {
					err = response.InternalServerError(c)
				}
			}()

			return next(c)
		}
	}
}

func panicMessage(r interface{}) string {
	if e, ok := r.(error); ok {
		return e.Error()
	}
	return fmt.Sprintf("%v", r)
}
