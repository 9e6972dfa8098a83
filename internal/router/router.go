// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/fitness-tracker/internal/handler"
	"github.com/deppfellow/fitness-tracker/internal/middleware"
	"github.com/deppfellow/fitness-tracker/internal/server"
)

// NewRouter builds the echo instance with the full middleware chain and
// every route.
//
// Order matters: the New Relic transaction must exist before the request
// logger is built, and the request id before both.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	m := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = m.Global.GlobalErrorHandler

	router.Use(
		m.Tracing.NewRelicMiddleware(),
		m.Tracing.EnhanceTracing(),
		middleware.RequestID(),
		m.ContextEnhancer.EnhanceContext(),
		m.Global.RequestLogger(),
		m.Global.Recover(),
		m.RateLimit.Limit(),
		m.Global.CORS(),
		m.Global.Secure(),
	)

	registerSystemRoutes(router, h)
	registerMemberRoutes(router, h.Member)
	registerSessionRoutes(router, h.Session)

	return router
}
