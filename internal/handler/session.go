package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/fitness-tracker/internal/model"
	"github.com/deppfellow/fitness-tracker/internal/server"
	"github.com/deppfellow/fitness-tracker/internal/service"
)

// SessionHandler serves workout sessions. Sessions cannot be deleted.
type SessionHandler struct {
	Handler
	service *service.SessionService
}

func NewSessionHandler(s *server.Server, svc *service.SessionService) *SessionHandler {
	return &SessionHandler{
		Handler: NewHandler(s),
		service: svc,
	}
}

// List handles GET /dank_sesh.
func (h *SessionHandler) List() echo.HandlerFunc {
	return Handle(func(c echo.Context, _ *EmptyRequest) ([]model.Session, error) {
		return h.service.List(c.Request().Context())
	}, http.StatusOK, newEmptyRequest)
}

// Create handles POST /dank_sesh.
func (h *SessionHandler) Create() echo.HandlerFunc {
	return Handle(func(c echo.Context, req *CreateSessionRequest) (MessageResponse, error) {
		if err := h.service.Create(c.Request().Context(), req.Input); err != nil {
			return MessageResponse{}, err
		}
		return MessageResponse{Message: "That Dank Sesh was succesfully added bruh"}, nil
	}, http.StatusCreated, func() *CreateSessionRequest { return &CreateSessionRequest{} })
}

// Update handles PUT /dank_sesh/:sesh_id.
func (h *SessionHandler) Update() echo.HandlerFunc {
	return Handle(func(c echo.Context, req *UpdateSessionRequest) (MessageResponse, error) {
		if err := h.service.Update(c.Request().Context(), req.ID, req.Input); err != nil {
			return MessageResponse{}, err
		}
		return MessageResponse{Message: "That Dank Sesh updated succesfully bruh"}, nil
	}, http.StatusOK, func() *UpdateSessionRequest { return &UpdateSessionRequest{} })
}
