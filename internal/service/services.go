// Package service contains the business logic.
//
// It sits between the handler and repository layers.
// It receives validated data from the handler, performs
// business operations, and calls repository methods to interact
// with the data.
package service

import (
	"github.com/deppfellow/fitness-tracker/internal/repository"
	"github.com/deppfellow/fitness-tracker/internal/server"
)

type Services struct {
	Member  *MemberService
	Session *SessionService
}

// NewServices wires the services to the repositories. The welcome email
// is only scheduled when the server runs a job worker.
func NewServices(s *server.Server, repos *repository.Repositories) *Services {
	var jobs WelcomeScheduler
	if s.Job != nil {
		jobs = s.Job
	}

	return &Services{
		Member:  NewMemberService(repos.Member, jobs),
		Session: NewSessionService(repos.Session),
	}
}
