package router

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/fitness-tracker/internal/handler"
)

// registerSessionRoutes has no DELETE: sessions are never removed.
func registerSessionRoutes(r *echo.Echo, h *handler.SessionHandler) {
	seshes := r.Group("/dank_sesh")

	seshes.GET("", h.List())
	seshes.POST("", h.Create())
	seshes.PUT("/:sesh_id", h.Update())
}
