package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/fitness-tracker/internal/server"
)

// Greeting is the body of GET /.
const Greeting = "Welcome to our super cool Fitness Tracker, time to get swole brah!"

type HomeHandler struct {
	Handler
}

func NewHomeHandler(s *server.Server) *HomeHandler {
	return &HomeHandler{Handler: NewHandler(s)}
}

// Welcome handles GET /.
func (h *HomeHandler) Welcome() echo.HandlerFunc {
	return HandleText(func(echo.Context, *EmptyRequest) (string, error) {
		return Greeting, nil
	}, http.StatusOK, newEmptyRequest)
}
