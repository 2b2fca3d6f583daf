package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status         string `json:"status"`
	CatalogVersion string `json:"catalogVersion,omitempty"`
}

// Health writes a health check response.
func Health(c echo.Context, catalogVersion string) error {
	return c.JSON(http.StatusOK, &HealthResponse{
		Status:         "ok",
		CatalogVersion: catalogVersion,
	})
}

// ListResponse wraps reference data lists.
type ListResponse[T any] struct {
	Version string `json:"version"`
	Count   int    `json:"count"`
	Items   []T    `json:"items"`
}

// List writes a 200 OK response with a versioned list.
func List[T any](c echo.Context, version string, items []T) error {
	if items == nil {
		items = []T{}
	}
	return c.JSON(http.StatusOK, &ListResponse[T]{
		Version: version,
		Count:   len(items),
		Items:   items,
	})
}
