package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`

	// Provider is the name of the fare provider in use
	Provider string `json:"provider,omitempty" example:"ryanair"`
}

// Health writes a health check response.
func Health(c echo.Context, provider string) error {
	return c.JSON(http.StatusOK, &HealthResponse{
		Status:   "ok",
		Provider: provider,
	})
}

// SearchResults writes a 200 OK response with search results.
func SearchResults(c echo.Context, results interface{}) error {
	return OK(c, results)
}
