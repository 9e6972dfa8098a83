package router

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/fitness-tracker/internal/handler"
)

// registerSystemRoutes registers the endpoints that are not part of the
// member or session API: greeting, health and docs.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/", h.Home.Welcome())

	r.GET("/status", h.Health.CheckHealth)

	r.StaticFS("/static", h.OpenAPI.Assets())
	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
}
