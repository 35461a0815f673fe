package store_test

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avolkov/tinycrm/internal/account/store"
)

// queryScript replays a fixed sequence of query outcomes and records
// the arguments of each call, enough to drive the store through its
// error-handling branches without a database.
type queryScript struct {
	steps []scriptStep
	calls [][]driver.NamedValue
}

type scriptStep struct {
	err error
	row []driver.Value
}

func (s *queryScript) next(args []driver.NamedValue) (driver.Rows, error) {
	if len(s.steps) == 0 {
		return nil, errors.New("unexpected query")
	}

	step := s.steps[0]
	s.steps = s.steps[1:]
	s.calls = append(s.calls, args)

	if step.err != nil {
		return nil, step.err
	}

	return &scriptRows{row: step.row}, nil
}

type scriptConnector struct {
	script *queryScript
}

func (c *scriptConnector) Connect(context.Context) (driver.Conn, error) {
	return &scriptConn{script: c.script}, nil
}

func (c *scriptConnector) Driver() driver.Driver { return scriptDriver{} }

type scriptDriver struct{}

func (scriptDriver) Open(string) (driver.Conn, error) {
	return nil, errors.New("open by name is not supported")
}

type scriptConn struct {
	script *queryScript
}

func (c *scriptConn) QueryContext(_ context.Context, _ string, args []driver.NamedValue) (driver.Rows, error) {
	return c.script.next(args)
}

func (c *scriptConn) Prepare(string) (driver.Stmt, error) {
	return nil, errors.New("prepare is not supported")
}

func (c *scriptConn) Close() error { return nil }

func (c *scriptConn) Begin() (driver.Tx, error) {
	return nil, errors.New("transactions are not supported")
}

type scriptRows struct {
	row  []driver.Value
	done bool
}

func (r *scriptRows) Columns() []string {
	return []string{"id", "username", "email", "password_hash", "active", "created_at"}
}

func (r *scriptRows) Close() error { return nil }

func (r *scriptRows) Next(dest []driver.Value) error {
	if r.done || r.row == nil {
		return io.EOF
	}

	r.done = true
	copy(dest, r.row)

	return nil
}

// A local account may already hold the email string as its username.
// ON CONFLICT (email) does not cover that constraint, so the insert is
// retried once with a disambiguated username.
func TestStore_GetOrCreateByEmail_UsernameCollision(t *testing.T) {
	accountID := uuid.New()
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	script := &queryScript{steps: []scriptStep{
		{err: &pgconn.PgError{Code: "23505", ConstraintName: "accounts_username_key"}},
		{row: []driver.Value{accountID.String(), "ana@example.com-1a2b3c4d", "ana@example.com", "", true, created}},
	}}

	db := sql.OpenDB(&scriptConnector{script: script})
	defer db.Close()

	a, err := store.New(db).GetOrCreateByEmail(context.Background(), "ana@example.com", "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, accountID, a.ID)
	assert.Equal(t, "ana@example.com", a.Email)

	require.Len(t, script.calls, 2)

	retry, ok := script.calls[1][0].Value.(string)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(retry, "ana@example.com-"))
	assert.NotEqual(t, "ana@example.com", retry)
}

func TestStore_GetOrCreateByEmail_ExistingEmail(t *testing.T) {
	accountID := uuid.New()
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	// ON CONFLICT (email) DO NOTHING returns no row; the store falls
	// back to selecting the existing account.
	script := &queryScript{steps: []scriptStep{
		{row: nil},
		{row: []driver.Value{accountID.String(), "ana@example.com", "ana@example.com", "", true, created}},
	}}

	db := sql.OpenDB(&scriptConnector{script: script})
	defer db.Close()

	a, err := store.New(db).GetOrCreateByEmail(context.Background(), "ana@example.com", "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, accountID, a.ID)
}
