package handler

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/fitness-tracker/internal/server"
)

//go:embed static
var staticFiles embed.FS

// OpenAPIHandler serves the API documentation: a browser UI at /docs
// and the OpenAPI document it loads from /static/openapi.json.
type OpenAPIHandler struct {
	Handler
}

func NewOpenAPIHandler(s *server.Server) *OpenAPIHandler {
	return &OpenAPIHandler{
		Handler: NewHandler(s),
	}
}

// Assets returns the files served under /static.
func (h *OpenAPIHandler) Assets() fs.FS {
	assets, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}
	return assets
}

// ServeOpenAPIUI handles GET /docs. The page is never cached.
func (h *OpenAPIHandler) ServeOpenAPIUI(c echo.Context) error {
	page, err := staticFiles.ReadFile("static/openapi.html")
	if err != nil {
		return fmt.Errorf("failed to read OpenAPI UI template: %w", err)
	}

	c.Response().Header().Set("Cache-Control", "no-cache")
	return c.HTMLBlob(http.StatusOK, page)
}
