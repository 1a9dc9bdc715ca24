package repository_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/agendabeleza/backend/internal/database"
)

// mockAcquirer wraps a sqlmock handle as the one connection handed out.
type mockAcquirer struct {
	conn     *database.Conn
	err      error
	acquired int
}

func (m *mockAcquirer) Acquire(context.Context) (*database.Conn, error) {
	m.acquired++
	if m.err != nil {
		return nil, m.err
	}
	return m.conn, nil
}

// newMockAcquirer creates a sqlmock-backed acquirer. Repositories close the
// connection after every call, so the close is expected up front.
func newMockAcquirer(t *testing.T) (*mockAcquirer, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return &mockAcquirer{conn: &database.Conn{DB: db}}, mock
}
