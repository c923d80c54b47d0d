// routes.go - Route registration helpers
package api

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// NewServer builds the Echo instance serving a finished run.
func NewServer(h *Handler) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = ErrorHandler

	e.Use(middleware.Recover())
	e.Use(middleware.Gzip())

	RegisterRoutes(e, h)
	return e
}

// RegisterRoutes registers all API routes with the Echo instance.
func RegisterRoutes(e *echo.Echo, h *Handler) {
	apiGroup := e.Group("/api")
	apiGroup.GET("/health", h.HandleHealth)
	apiGroup.GET("/sources", h.HandleSources)
	apiGroup.GET("/readings", h.HandleReadings)
	apiGroup.GET("/readings.csv", h.HandleReadingsCSV)
	apiGroup.GET("/readings/:key", h.HandleReading)
}
