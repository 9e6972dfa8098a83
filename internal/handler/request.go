package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/fitness-tracker/internal/errs"
	"github.com/deppfellow/fitness-tracker/internal/model"
	"github.com/deppfellow/fitness-tracker/internal/validation"
)

// MessageResponse is the body of every successful write.
type MessageResponse struct {
	Message string `json:"message"`
}

// EmptyRequest is the input of endpoints that read nothing.
type EmptyRequest struct{}

func (*EmptyRequest) Bind(echo.Context) error { return nil }

func newEmptyRequest() *EmptyRequest { return &EmptyRequest{} }

// pathID reads an unsigned decimal path parameter. Anything else is
// answered like an unknown route.
func pathID(c echo.Context, name string) (int64, error) {
	raw := c.Param(name)
	if raw == "" || raw[0] < '0' || raw[0] > '9' {
		return 0, echo.ErrNotFound
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, echo.ErrNotFound
	}
	return id, nil
}

// bindPayload decodes the JSON body and parses it with parse.
func bindPayload[T any](c echo.Context, parse func(validation.Payload) (T, validation.FieldErrors)) (T, error) {
	var zero T

	payload, fe := validation.DecodePayload(c.Request().Body)
	if fe != nil {
		return zero, errs.NewValidationError(fe)
	}

	in, fe := parse(payload)
	if fe != nil {
		return zero, errs.NewValidationError(fe)
	}
	return in, nil
}

type CreateMemberRequest struct {
	Input model.MemberInput
}

func (r *CreateMemberRequest) Bind(c echo.Context) (err error) {
	r.Input, err = bindPayload(c, model.ParseMember)
	return err
}

// UpdateMemberRequest resolves the id before touching the body, so a bad
// id is a 404 even when the body is invalid too.
type UpdateMemberRequest struct {
	ID    int64
	Input model.MemberInput
}

func (r *UpdateMemberRequest) Bind(c echo.Context) (err error) {
	if r.ID, err = pathID(c, "id"); err != nil {
		return err
	}
	r.Input, err = bindPayload(c, model.ParseMember)
	return err
}

type DeleteMemberRequest struct {
	ID int64
}

func (r *DeleteMemberRequest) Bind(c echo.Context) (err error) {
	r.ID, err = pathID(c, "id")
	return err
}

type CreateSessionRequest struct {
	Input model.SessionInput
}

func (r *CreateSessionRequest) Bind(c echo.Context) (err error) {
	r.Input, err = bindPayload(c, model.ParseSession)
	return err
}

type UpdateSessionRequest struct {
	ID    int64
	Input model.SessionInput
}

func (r *UpdateSessionRequest) Bind(c echo.Context) (err error) {
	if r.ID, err = pathID(c, "sesh_id"); err != nil {
		return err
	}
	r.Input, err = bindPayload(c, model.ParseSession)
	return err
}
