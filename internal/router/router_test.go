package router_test

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/fitness-tracker/internal/config"
	"github.com/deppfellow/fitness-tracker/internal/database"
	"github.com/deppfellow/fitness-tracker/internal/handler"
	"github.com/deppfellow/fitness-tracker/internal/middleware"
	"github.com/deppfellow/fitness-tracker/internal/repository"
	"github.com/deppfellow/fitness-tracker/internal/router"
	"github.com/deppfellow/fitness-tracker/internal/server"
	"github.com/deppfellow/fitness-tracker/internal/service"
)

type app struct {
	router *echo.Echo
	db     *sql.DB
	mock   sqlmock.Sqlmock
}

func newApp(t *testing.T) *app {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	logger := zerolog.Nop()
	s := &server.Server{
		Config: &config.Config{
			Primary:       config.Primary{Env: "test"},
			Server:        config.ServerConfig{CORSAllowedOrigins: []string{"*"}},
			Observability: config.DefaultObservabilityConfig(),
		},
		Logger: &logger,
		DB:     database.NewFromSQL(db, &logger),
	}

	repos := repository.NewRepositories(s)
	services := service.NewServices(s, repos)
	handlers := handler.NewHandlers(s, services)

	return &app{router: router.NewRouter(s, handlers), db: db, mock: mock}
}

// do sends a request and checks that every expected statement ran and no
// connection is left checked out.
func (a *app) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)

	require.NoError(t, a.mock.ExpectationsWereMet())
	assert.Zero(t, a.db.Stats().InUse, "connection was not released")
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
	return rec
}

func body(rec *httptest.ResponseRecorder) string {
	return strings.TrimSpace(rec.Body.String())
}

const validMember = `{"name":"Ronnie","email":"ronnie@example.com","phone":"555-0100","bench_amount":500,"membership_type":"gold"}`

var memberColumns = []string{"member_id", "name", "email", "phone", "bench_amount", "membership_type"}

func TestHome(t *testing.T) {
	a := newApp(t)

	rec := a.do(t, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, handler.Greeting, rec.Body.String())
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "text/plain")
}

func TestListMembers(t *testing.T) {
	a := newApp(t)
	a.mock.ExpectQuery(`FROM members ORDER BY member_id`).WillReturnRows(
		sqlmock.NewRows(memberColumns).
			AddRow(int64(1), "Ronnie", "ronnie@example.com", "555-0100", int64(500), "gold").
			AddRow(int64(2), "Jay", "jay@example.com", "555-0101", int64(315), "basic"),
	)

	rec := a.do(t, http.MethodGet, "/members", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t,
		`[{"member_id":1,"name":"Ronnie","email":"ronnie@example.com","phone":"555-0100","bench_amount":500,"membership_type":"gold"},`+
			`{"member_id":2,"name":"Jay","email":"jay@example.com","phone":"555-0101","bench_amount":315,"membership_type":"basic"}]`,
		body(rec))
}

func TestListMembers_Empty(t *testing.T) {
	a := newApp(t)
	a.mock.ExpectQuery(`FROM members`).WillReturnRows(sqlmock.NewRows(memberColumns))

	rec := a.do(t, http.MethodGet, "/members", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `[]`, body(rec))
}

func TestListMembers_StoreFailure(t *testing.T) {
	a := newApp(t)
	a.mock.ExpectQuery(`FROM members`).WillReturnError(sql.ErrConnDone)

	rec := a.do(t, http.MethodGet, "/members", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"code":"INTERNAL_SERVER_ERROR","message":"Internal Server Error","status":500}`, body(rec))
}

func TestCreateMember(t *testing.T) {
	a := newApp(t)
	a.mock.ExpectExec(`INSERT INTO members`).
		WithArgs("Ronnie", "ronnie@example.com", "555-0100", int64(500), "gold").
		WillReturnResult(sqlmock.NewResult(1, 1))

	rec := a.do(t, http.MethodPost, "/members", validMember)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"message":"New member added succesfully"}`, body(rec))
}

func TestCreateMember_IgnoresIDAndUnknownFields(t *testing.T) {
	a := newApp(t)
	a.mock.ExpectExec(`INSERT INTO members`).
		WithArgs("Ronnie", "ronnie@example.com", "555-0100", int64(500), "gold").
		WillReturnResult(sqlmock.NewResult(1, 1))

	payload := `{"member_id":99,"favorite_lift":"deadlift","name":"Ronnie","email":"ronnie@example.com","phone":"555-0100","bench_amount":"500","membership_type":"gold"}`
	rec := a.do(t, http.MethodPost, "/members", payload)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestCreateMember_ValidationFailure(t *testing.T) {
	a := newApp(t)

	rec := a.do(t, http.MethodPost, "/members", `{"name":"Ronnie","bench_amount":"heavy"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{
		"email":["Missing data for required field."],
		"phone":["Missing data for required field."],
		"bench_amount":["Not a valid integer."],
		"membership_type":["Missing data for required field."]
	}`, body(rec))
}

func TestCreateMember_InvalidBody(t *testing.T) {
	a := newApp(t)

	for _, payload := range []string{"", "not json", `["a"]`} {
		rec := a.do(t, http.MethodPost, "/members", payload)
		assert.Equal(t, http.StatusBadRequest, rec.Code, payload)
		assert.JSONEq(t, `{"_schema":["Invalid input type."]}`, body(rec), payload)
	}
}

func TestCreateMember_StoreFailure(t *testing.T) {
	a := newApp(t)
	a.mock.ExpectExec(`INSERT INTO members`).WillReturnError(sql.ErrTxDone)

	rec := a.do(t, http.MethodPost, "/members", validMember)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestUpdateMember(t *testing.T) {
	a := newApp(t)
	a.mock.ExpectExec(`UPDATE members`).
		WithArgs("Ronnie", "ronnie@example.com", "555-0100", int64(500), "gold", int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rec := a.do(t, http.MethodPut, "/members/7", validMember)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Member details were succesfully updated!"}`, body(rec))
}

func TestUpdateMember_NoMatchStillSucceeds(t *testing.T) {
	a := newApp(t)
	a.mock.ExpectExec(`UPDATE members`).WillReturnResult(sqlmock.NewResult(0, 0))

	rec := a.do(t, http.MethodPut, "/members/404", validMember)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Member details were succesfully updated!"}`, body(rec))
}

func TestUpdateMember_ValidationFailure(t *testing.T) {
	a := newApp(t)

	rec := a.do(t, http.MethodPut, "/members/7", `{"name":"","email":null,"phone":"1","bench_amount":1,"membership_type":"x"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"name":["Shorter than minimum length 1."],"email":["Field may not be null."]}`, body(rec))
}

func TestMemberRoutes_BadIDIsNotFound(t *testing.T) {
	a := newApp(t)

	for _, target := range []string{"/members/abc", "/members/-1", "/members/+1", "/members/1.5"} {
		rec := a.do(t, http.MethodPut, target, validMember)
		assert.Equal(t, http.StatusNotFound, rec.Code, target)

		rec = a.do(t, http.MethodDelete, target, "")
		assert.Equal(t, http.StatusNotFound, rec.Code, target)
	}
}

func TestDeleteMember(t *testing.T) {
	a := newApp(t)
	a.mock.ExpectQuery(`SELECT member_id FROM members WHERE member_id = \$1`).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"member_id"}).AddRow(int64(3)))
	a.mock.ExpectExec(`DELETE FROM members WHERE member_id = \$1`).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rec := a.do(t, http.MethodDelete, "/members/3", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Member Removed succesfully"}`, body(rec))
}

func TestDeleteMember_Missing(t *testing.T) {
	a := newApp(t)
	a.mock.ExpectQuery(`SELECT member_id FROM members`).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"member_id"}))

	rec := a.do(t, http.MethodDelete, "/members/3", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"code":"NOT_FOUND","message":"Member not found","status":404}`, body(rec))
}

func TestListSessions(t *testing.T) {
	a := newApp(t)
	a.mock.ExpectQuery(`FROM dank_sesh ORDER BY sesh_id`).WillReturnRows(
		sqlmock.NewRows([]string{"sesh_id", "member_id", "date", "workout_type"}).
			AddRow(int64(1), int64(3), time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), "legs"),
	)

	rec := a.do(t, http.MethodGet, "/dank_sesh", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `[{"sesh_id":1,"member_id":3,"date":"2024-03-15","workout_type":"legs"}]`, body(rec))
}

func TestCreateSession(t *testing.T) {
	a := newApp(t)
	a.mock.ExpectExec(`INSERT INTO dank_sesh`).
		WithArgs(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), int64(3), "legs").
		WillReturnResult(sqlmock.NewResult(1, 1))

	rec := a.do(t, http.MethodPost, "/dank_sesh", `{"sesh_id":5,"member_id":3,"date":"2024-03-15","workout_type":"legs"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"message":"That Dank Sesh was succesfully added bruh"}`, body(rec))
}

func TestCreateSession_ValidationFailure(t *testing.T) {
	a := newApp(t)

	rec := a.do(t, http.MethodPost, "/dank_sesh", `{"member_id":3,"date":"03/15/2024"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"date":["Not a valid date."],"workout_type":["Missing data for required field."]}`, body(rec))
}

func TestUpdateSession(t *testing.T) {
	a := newApp(t)
	a.mock.ExpectExec(`UPDATE dank_sesh`).
		WithArgs(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), int64(3), "pull", int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	rec := a.do(t, http.MethodPut, "/dank_sesh/9", `{"member_id":3,"date":"2024-04-01","workout_type":"pull"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"That Dank Sesh updated succesfully bruh"}`, body(rec))
}

func TestUpdateSession_BadID(t *testing.T) {
	a := newApp(t)

	rec := a.do(t, http.MethodPut, "/dank_sesh/latest", `{}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSessions_CannotBeDeleted(t *testing.T) {
	a := newApp(t)

	rec := a.do(t, http.MethodDelete, "/dank_sesh/1", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestConnectionFailure(t *testing.T) {
	a := newApp(t)
	a.mock.ExpectClose()
	require.NoError(t, a.db.Close())

	rec := a.do(t, http.MethodGet, "/members", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"code":"INTERNAL_SERVER_ERROR","message":"Database connection failed","status":500}`, body(rec))
}

func TestHealth(t *testing.T) {
	a := newApp(t)

	rec := a.do(t, http.MethodGet, "/status", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, body(rec), `"status":"healthy"`)
	assert.Contains(t, body(rec), `"database":{"status":"healthy"`)
	assert.NotContains(t, body(rec), `"redis"`)
}

func TestHealth_DatabaseDown(t *testing.T) {
	a := newApp(t)
	a.mock.ExpectClose()
	require.NoError(t, a.db.Close())

	rec := a.do(t, http.MethodGet, "/status", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, body(rec), `"status":"unhealthy"`)
	assert.Contains(t, body(rec), `"error":"dependency unreachable"`)
	assert.NotContains(t, body(rec), "database is closed")
}

func TestDocs(t *testing.T) {
	a := newApp(t)

	rec := a.do(t, http.MethodGet, "/docs", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))
	assert.Contains(t, rec.Body.String(), "/static/openapi.json")

	rec = a.do(t, http.MethodGet, "/static/openapi.json", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"/dank_sesh/{sesh_id}"`)
}
