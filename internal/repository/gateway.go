package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pkg/errors"

	"github.com/deppfellow/fitness-tracker/internal/sqlerr"
)

// Gateway hands out dedicated store connections. *sql.DB satisfies it,
// both over the pgx pool and over sqlmock in tests.
type Gateway interface {
	Conn(ctx context.Context) (*sql.Conn, error)
}

// withConn runs fn on one connection from gw and always returns that
// connection to the pool, whether fn succeeds or fails.
//
// A failure to acquire the connection is reported as sqlerr.ErrConnection.
func withConn(ctx context.Context, gw Gateway, fn func(conn *sql.Conn) error) error {
	conn, err := gw.Conn(ctx)
	if err != nil {
		return errors.WithStack(fmt.Errorf("%w: %w", sqlerr.ErrConnection, err))
	}
	defer conn.Close()

	return fn(conn)
}
