package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// quietPaths are logged at debug level so probes do not flood the log.
var quietPaths = map[string]bool{
	"/health": true,
}

// RequestLogger returns middleware that logs each request on completion.
// Handler errors are passed to echo's error handler first so the logged
// status is the one the client saw.
func RequestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			if err := next(c); err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()
			status := res.Status

			var event *zerolog.Event
			switch {
			case status >= 500:
				event = log.Error()
			case status >= 400:
				event = log.Warn()
			case quietPaths[req.URL.Path]:
				event = log.Debug()
			default:
				event = log.Info()
			}

			event.
				Str("request_id", GetRequestID(c)).
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Str("route", c.Path()).
				Str("query", req.URL.RawQuery).
				Int("status", status).
				Int64("duration_ms", time.Since(start).Milliseconds()).
				Int64("bytes_in", req.ContentLength).
				Int64("bytes_out", res.Size).
				Str("client_ip", c.RealIP()).
				Str("user_agent", req.UserAgent()).
				Msg("HTTP request")

			return nil
		}
	}
}
