package router

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/fitness-tracker/internal/handler"
)

func registerMemberRoutes(r *echo.Echo, h *handler.MemberHandler) {
	members := r.Group("/members")

	members.GET("", h.List())
	members.POST("", h.Create())
	members.PUT("/:id", h.Update())
	members.DELETE("/:id", h.Delete())
}
