// Package repository handles all interactions with the database.
//
// It contains raw SQL queries and methods to fetch, persist,
// or update data, abstracting SQL logic away from the service layer.
// Every method borrows exactly one connection for its statements and
// gives it back before returning.
package repository

import (
	"github.com/deppfellow/fitness-tracker/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Member  *MemberRepository
	Session *SessionRepository
}

// NewRepositories builds the repositories over the server's database.
func NewRepositories(s *server.Server) *Repositories {
	return NewRepositoriesFromGateway(s.DB.SQL)
}

// NewRepositoriesFromGateway builds the repositories over any Gateway.
func NewRepositoriesFromGateway(gw Gateway) *Repositories {
	return &Repositories{
		Member:  NewMemberRepository(gw),
		Session: NewSessionRepository(gw),
	}
}
