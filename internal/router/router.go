package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-booking/internal/handler"
)

// RegisterRoutes registers routes that need neither identity nor rate
// limiting.  Currently it exposes only the health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterOperations mounts the operation endpoint.  identity resolves
// the bearer token and must run before limiter so per-user keys see the
// caller.
func RegisterOperations(e *echo.Echo, h *handler.OperationHandler, identity, limiter echo.MiddlewareFunc) {
	g := e.Group("/v1")
	g.Use(identity, limiter)
	g.POST("/operations", h.Handle)
}
