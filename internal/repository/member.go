package repository

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	"github.com/deppfellow/fitness-tracker/internal/model"
	"github.com/deppfellow/fitness-tracker/internal/sqlerr"
)

const membersTable = "members"

type MemberRepository struct {
	gw Gateway
}

func NewMemberRepository(gw Gateway) *MemberRepository {
	return &MemberRepository{gw: gw}
}

// List returns every member ordered by member_id. An empty table yields
// an empty, non-nil slice.
func (r *MemberRepository) List(ctx context.Context) ([]model.Member, error) {
	members := make([]model.Member, 0)

	err := withConn(ctx, r.gw, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, `
			SELECT member_id, name, email, phone, bench_amount, membership_type
			FROM members
			ORDER BY member_id`)
		if err != nil {
			return errors.Wrap(err, "query members")
		}
		defer rows.Close()

		for rows.Next() {
			var m model.Member
			if err := rows.Scan(&m.MemberID, &m.Name, &m.Email, &m.Phone, &m.BenchAmount, &m.MembershipType); err != nil {
				return errors.Wrap(err, "scan member")
			}
			members = append(members, m)
		}
		return errors.Wrap(rows.Err(), "iterate members")
	})
	if err != nil {
		return nil, err
	}
	return members, nil
}

// Create inserts a member; the store assigns member_id.
func (r *MemberRepository) Create(ctx context.Context, in model.MemberInput) error {
	return withConn(ctx, r.gw, func(conn *sql.Conn) error {
		_, err := conn.ExecContext(ctx, `
			INSERT INTO members (name, email, phone, bench_amount, membership_type)
			VALUES ($1, $2, $3, $4, $5)`,
			in.Name, in.Email, in.Phone, in.BenchAmount, in.MembershipType,
		)
		return errors.Wrap(err, "insert member")
	})
}

// Update replaces every writable field of member id and reports how many
// rows matched. Zero rows is not an error.
func (r *MemberRepository) Update(ctx context.Context, id int64, in model.MemberInput) (int64, error) {
	var affected int64

	err := withConn(ctx, r.gw, func(conn *sql.Conn) error {
		res, err := conn.ExecContext(ctx, `
			UPDATE members
			SET name = $1, email = $2, phone = $3, bench_amount = $4, membership_type = $5
			WHERE member_id = $6`,
			in.Name, in.Email, in.Phone, in.BenchAmount, in.MembershipType, id,
		)
		if err != nil {
			return errors.Wrap(err, "update member")
		}

		affected, err = res.RowsAffected()
		return errors.Wrap(err, "update member rows affected")
	})
	return affected, err
}

// Delete removes member id. Both statements run on the same connection.
// A missing member yields a no-rows error tagged with the members table.
func (r *MemberRepository) Delete(ctx context.Context, id int64) error {
	return withConn(ctx, r.gw, func(conn *sql.Conn) error {
		var found int64
		err := conn.QueryRowContext(ctx, `SELECT member_id FROM members WHERE member_id = $1`, id).Scan(&found)
		if errors.Is(err, sql.ErrNoRows) {
			return sqlerr.NoRows(membersTable)
		}
		if err != nil {
			return errors.Wrap(err, "find member")
		}

		_, err = conn.ExecContext(ctx, `DELETE FROM members WHERE member_id = $1`, id)
		return errors.Wrap(err, "delete member")
	})
}
