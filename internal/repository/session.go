package repository

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	"github.com/deppfellow/fitness-tracker/internal/model"
)

type SessionRepository struct {
	gw Gateway
}

func NewSessionRepository(gw Gateway) *SessionRepository {
	return &SessionRepository{gw: gw}
}

// List returns every session ordered by sesh_id.
func (r *SessionRepository) List(ctx context.Context) ([]model.Session, error) {
	sessions := make([]model.Session, 0)

	err := withConn(ctx, r.gw, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, `
			SELECT sesh_id, member_id, date, workout_type
			FROM dank_sesh
			ORDER BY sesh_id`)
		if err != nil {
			return errors.Wrap(err, "query sessions")
		}
		defer rows.Close()

		for rows.Next() {
			var s model.Session
			if err := rows.Scan(&s.SeshID, &s.MemberID, &s.Date, &s.WorkoutType); err != nil {
				return errors.Wrap(err, "scan session")
			}
			sessions = append(sessions, s)
		}
		return errors.Wrap(rows.Err(), "iterate sessions")
	})
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

// Create inserts a session; the store assigns sesh_id.
func (r *SessionRepository) Create(ctx context.Context, in model.SessionInput) error {
	return withConn(ctx, r.gw, func(conn *sql.Conn) error {
		_, err := conn.ExecContext(ctx, `
			INSERT INTO dank_sesh (date, member_id, workout_type)
			VALUES ($1, $2, $3)`,
			in.Date, in.MemberID, in.WorkoutType,
		)
		return errors.Wrap(err, "insert session")
	})
}

// Update replaces every writable field of session id and reports how
// many rows matched.
func (r *SessionRepository) Update(ctx context.Context, id int64, in model.SessionInput) (int64, error) {
	var affected int64

	err := withConn(ctx, r.gw, func(conn *sql.Conn) error {
		res, err := conn.ExecContext(ctx, `
			UPDATE dank_sesh
			SET date = $1, member_id = $2, workout_type = $3
			WHERE sesh_id = $4`,
			in.Date, in.MemberID, in.WorkoutType, id,
		)
		if err != nil {
			return errors.Wrap(err, "update session")
		}

		affected, err = res.RowsAffected()
		return errors.Wrap(err, "update session rows affected")
	})
	return affected, err
}
