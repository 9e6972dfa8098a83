package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/deppfellow/fitness-tracker/internal/model"
)

// MemberStore persists members.
type MemberStore interface {
	List(ctx context.Context) ([]model.Member, error)
	Create(ctx context.Context, in model.MemberInput) error
	Update(ctx context.Context, id int64, in model.MemberInput) (int64, error)
	Delete(ctx context.Context, id int64) error
}

// WelcomeScheduler queues the welcome email for a new member.
type WelcomeScheduler interface {
	EnqueueWelcomeEmail(ctx context.Context, to, name, membershipType string) error
}

type MemberService struct {
	store MemberStore
	jobs  WelcomeScheduler
}

// NewMemberService builds a MemberService. jobs may be nil.
func NewMemberService(store MemberStore, jobs WelcomeScheduler) *MemberService {
	return &MemberService{store: store, jobs: jobs}
}

func (s *MemberService) List(ctx context.Context) ([]model.Member, error) {
	return s.store.List(ctx)
}

// Create stores the member, then schedules the welcome email. The member
// is already committed when scheduling runs, so a scheduling failure is
// logged and not returned.
func (s *MemberService) Create(ctx context.Context, in model.MemberInput) error {
	if err := s.store.Create(ctx, in); err != nil {
		return err
	}

	if s.jobs != nil {
		if err := s.jobs.EnqueueWelcomeEmail(ctx, in.Email, in.Name, in.MembershipType); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Msg("failed to enqueue welcome email")
		}
	}
	return nil
}

// Update replaces the member's fields. Matching no member is not an error.
func (s *MemberService) Update(ctx context.Context, id int64, in model.MemberInput) error {
	affected, err := s.store.Update(ctx, id, in)
	if err != nil {
		return err
	}

	logUpdate(ctx, "member_id", id, affected)
	return nil
}

func (s *MemberService) Delete(ctx context.Context, id int64) error {
	return s.store.Delete(ctx, id)
}

func logUpdate(ctx context.Context, idField string, id, affected int64) {
	level := zerolog.InfoLevel
	if affected == 0 {
		level = zerolog.WarnLevel
	}
	zerolog.Ctx(ctx).WithLevel(level).
		Int64(idField, id).
		Int64("rows_affected", affected).
		Msg("update applied")
}
