package http

import (
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// RegisterRoutes registers all award search API routes.
func RegisterRoutes(e *echo.Echo, h *AwardHandler) {
	RegisterRoutesWithMiddleware(e, h)
}

// RegisterRoutesWithMiddleware registers routes with middleware applied to the
// versioned API group only. Health and swagger stay unwrapped.
func RegisterRoutesWithMiddleware(e *echo.Echo, h *AwardHandler, middleware ...echo.MiddlewareFunc) {
	e.GET("/health", h.Health)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api/v1", middleware...)

	awards := api.Group("/awards")
	awards.POST("/search", h.SearchAwards)

	api.GET("/programs", h.ListPrograms)
	api.GET("/credit-cards", h.ListCreditCards)
}
