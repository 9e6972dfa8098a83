package sqlerr

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pkgerrors "github.com/pkg/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/deppfellow/fitness-tracker/internal/errs"
)

// tablePrefix tags a no-rows error with the table it came from so the
// not-found message can name the entity.
const tablePrefix = "table:"

// ErrCode reports the mapped Code for a given error.
func ErrCode(err error) Code {
	if sqlErr := Details(err); sqlErr != nil {
		return sqlErr.Code
	}
	return Other
}

// ConvertPgError converts a raw Postgres error into an Error.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

// Details extracts the normalized database error from an error chain, or
// nil when the chain holds no database error.
func Details(err error) *Error {
	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return sqlErr
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return ConvertPgError(pgErr)
	}
	return nil
}

// NoRows returns a no-rows error tagged with the table name, e.g.
// "table:members: sql: no rows in result set".
func NoRows(table string) error {
	return pkgerrors.Wrap(sql.ErrNoRows, tablePrefix+table)
}

// AppCode builds a machine-friendly code for logs: <DOMAIN>_<ACTION>.
//
//	members + UniqueViolation => MEMBER_ALREADY_EXISTS
func AppCode(tableName string, errType Code) string {
	if tableName == "" {
		tableName = "RECORD"
	}

	domain := strings.ToUpper(tableName)
	if strings.HasSuffix(domain, "S") && len(domain) > 1 {
		domain = domain[:len(domain)-1]
	}

	action := "ERROR"
	switch errType {
	case ForeignKeyViolation:
		action = "NOT_FOUND"
	case UniqueViolation:
		action = "ALREADY_EXISTS"
	case NotNullViolation:
		action = "REQUIRED"
	case CheckViolation:
		action = "INVALID"
	}

	return fmt.Sprintf("%s_%s", domain, action)
}

// getEntityName infers a display name from table/column data.
//
//  1. A column ending in "_id" names the entity: "member_id" -> "Member".
//  2. Otherwise the table name, singularized if it ends with "s".
//  3. Otherwise "Record".
func getEntityName(tableName, columnName string) string {
	if columnName != "" && strings.HasSuffix(strings.ToLower(columnName), "_id") {
		entity := strings.TrimSuffix(strings.ToLower(columnName), "_id")
		return humanizeText(entity)
	}

	if tableName != "" {
		entity := tableName
		if strings.HasSuffix(entity, "s") && len(entity) > 1 {
			entity = entity[:len(entity)-1]
		}
		return humanizeText(entity)
	}

	return "Record"
}

// humanizeText converts snake_case into Title Case: "dank_sesh" -> "Dank Sesh".
func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

// HandleError converts a low-level database error into an application-level error.
//
// Output:
//   - *errs.HTTPError: returned unchanged
//   - ErrConnection: 500 "Database connection failed"
//   - ErrNoRows: 404 "<Entity> not found"
//   - anything else, including every *pgconn.PgError: generic 500
//
// Statement failures never reach the client in detail; the global error
// handler logs them through Details.
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	switch {
	case errors.Is(err, ErrConnection):
		return errs.NewInternalServerError().WithMessage("Database connection failed")

	case errors.Is(err, pgx.ErrNoRows), errors.Is(err, sql.ErrNoRows):
		errMsg := err.Error()
		if strings.Contains(errMsg, tablePrefix) {
			table := strings.Split(strings.Split(errMsg, tablePrefix)[1], ":")[0]
			return errs.NewNotFoundError(fmt.Sprintf("%s not found", getEntityName(table, "")))
		}
		return errs.NewNotFoundError(http.StatusText(http.StatusNotFound))
	}

	return errs.NewInternalServerError()
}
