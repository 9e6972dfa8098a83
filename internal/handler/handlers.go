package handler

import (
	"github.com/deppfellow/fitness-tracker/internal/server"
	"github.com/deppfellow/fitness-tracker/internal/service"
)

// Handlers groups every HTTP handler so the router receives one value.
type Handlers struct {
	Home    *HomeHandler
	Member  *MemberHandler
	Session *SessionHandler
	Health  *HealthHandler
	OpenAPI *OpenAPIHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Home:    NewHomeHandler(s),
		Member:  NewMemberHandler(s, services.Member),
		Session: NewSessionHandler(s, services.Session),
		Health:  NewHealthHandler(s),
		OpenAPI: NewOpenAPIHandler(s),
	}
}
