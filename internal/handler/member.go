package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/fitness-tracker/internal/model"
	"github.com/deppfellow/fitness-tracker/internal/server"
	"github.com/deppfellow/fitness-tracker/internal/service"
)

type MemberHandler struct {
	Handler
	service *service.MemberService
}

func NewMemberHandler(s *server.Server, svc *service.MemberService) *MemberHandler {
	return &MemberHandler{
		Handler: NewHandler(s),
		service: svc,
	}
}

// List handles GET /members.
func (h *MemberHandler) List() echo.HandlerFunc {
	return Handle(func(c echo.Context, _ *EmptyRequest) ([]model.Member, error) {
		return h.service.List(c.Request().Context())
	}, http.StatusOK, newEmptyRequest)
}

// Create handles POST /members.
func (h *MemberHandler) Create() echo.HandlerFunc {
	return Handle(func(c echo.Context, req *CreateMemberRequest) (MessageResponse, error) {
		if err := h.service.Create(c.Request().Context(), req.Input); err != nil {
			return MessageResponse{}, err
		}
		return MessageResponse{Message: "New member added succesfully"}, nil
	}, http.StatusCreated, func() *CreateMemberRequest { return &CreateMemberRequest{} })
}

// Update handles PUT /members/:id. A missing member still succeeds.
func (h *MemberHandler) Update() echo.HandlerFunc {
	return Handle(func(c echo.Context, req *UpdateMemberRequest) (MessageResponse, error) {
		if err := h.service.Update(c.Request().Context(), req.ID, req.Input); err != nil {
			return MessageResponse{}, err
		}
		return MessageResponse{Message: "Member details were succesfully updated!"}, nil
	}, http.StatusOK, func() *UpdateMemberRequest { return &UpdateMemberRequest{} })
}

// Delete handles DELETE /members/:id. A missing member is a 404.
func (h *MemberHandler) Delete() echo.HandlerFunc {
	return Handle(func(c echo.Context, req *DeleteMemberRequest) (MessageResponse, error) {
		if err := h.service.Delete(c.Request().Context(), req.ID); err != nil {
			return MessageResponse{}, err
		}
		return MessageResponse{Message: "Member Removed succesfully"}, nil
	}, http.StatusOK, func() *DeleteMemberRequest { return &DeleteMemberRequest{} })
}
