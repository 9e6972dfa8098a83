package service

import (
	"context"

	"github.com/deppfellow/fitness-tracker/internal/model"
)

// SessionStore persists workout sessions.
type SessionStore interface {
	List(ctx context.Context) ([]model.Session, error)
	Create(ctx context.Context, in model.SessionInput) error
	Update(ctx context.Context, id int64, in model.SessionInput) (int64, error)
}

type SessionService struct {
	store SessionStore
}

func NewSessionService(store SessionStore) *SessionService {
	return &SessionService{store: store}
}

func (s *SessionService) List(ctx context.Context) ([]model.Session, error) {
	return s.store.List(ctx)
}

func (s *SessionService) Create(ctx context.Context, in model.SessionInput) error {
	return s.store.Create(ctx, in)
}

// Update replaces the session's fields. Matching no session is not an error.
func (s *SessionService) Update(ctx context.Context, id int64, in model.SessionInput) error {
	affected, err := s.store.Update(ctx, id, in)
	if err != nil {
		return err
	}

	logUpdate(ctx, "sesh_id", id, affected)
	return nil
}
