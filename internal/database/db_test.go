package database

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockConn(t *testing.T) (*Conn, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return newConn(db), mock
}

func TestConnClose(t *testing.T) {
	t.Run("releases the underlying connection", func(t *testing.T) {
		conn, mock := newMockConn(t)
		mock.ExpectClose()

		assert.NoError(t, conn.Close())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("close failure is returned", func(t *testing.T) {
		conn, mock := newMockConn(t)
		mock.ExpectClose().WillReturnError(errors.New("broken pipe"))

		assert.EqualError(t, conn.Close(), "broken pipe")
	})

	t.Run("nil connection and empty wrapper", func(t *testing.T) {
		var conn *Conn
		assert.NoError(t, conn.Close())
		assert.NoError(t, (&Conn{}).Close())
	})
}

func TestNewConnLimitsToOneConnection(t *testing.T) {
	conn, _ := newMockConn(t)
	defer conn.Close()

	assert.Equal(t, 1, conn.Stats().MaxOpenConnections)
}

func TestConnTransaction(t *testing.T) {
	insert := func(tx *sql.Tx) error {
		_, err := tx.Exec("INSERT INTO Servicos (Nome) VALUES (?)", "Corte")
		return err
	}

	tests := []struct {
		name    string
		setup   func(mock sqlmock.Sqlmock)
		fn      func(tx *sql.Tx) error
		wantErr string
	}{
		{
			name: "commits on success",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("INSERT INTO Servicos").WithArgs("Corte").WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectCommit()
			},
			fn: insert,
		},
		{
			name: "begin failure",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin().WillReturnError(errors.New("too many connections"))
			},
			fn:      insert,
			wantErr: "failed to begin transaction: too many connections",
		},
		{
			name: "rolls back when the function fails",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("INSERT INTO Servicos").WillReturnError(errors.New("duplicate"))
				mock.ExpectRollback()
			},
			fn:      insert,
			wantErr: "duplicate",
		},
		{
			name: "rollback failure is reported",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("INSERT INTO Servicos").WillReturnError(errors.New("duplicate"))
				mock.ExpectRollback().WillReturnError(errors.New("connection lost"))
			},
			fn:      insert,
			wantErr: "failed to rollback transaction: connection lost",
		},
		{
			name: "commit failure",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("INSERT INTO Servicos").WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectCommit().WillReturnError(errors.New("deadlock"))
			},
			fn:      insert,
			wantErr: "failed to commit transaction: deadlock",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn, mock := newMockConn(t)
			defer conn.Close()
			tt.setup(mock)

			err := conn.Transaction(context.Background(), tt.fn)

			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestConnTransactionRollsBackOnPanic(t *testing.T) {
	conn, mock := newMockConn(t)
	defer conn.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	assert.PanicsWithValue(t, "boom", func() {
		_ = conn.Transaction(context.Background(), func(*sql.Tx) error {
			panic("boom")
		})
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConnHealthCheck(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(mock sqlmock.Sqlmock)
		wantErr string
	}{
		{
			name: "healthy",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT 1").WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
			},
		},
		{
			name: "query failure",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT 1").WillReturnError(errors.New("server has gone away"))
			},
			wantErr: "database query test failed: server has gone away",
		},
		{
			name: "unexpected result",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT 1").WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(2))
			},
			wantErr: "database returned unexpected result: 2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn, mock := newMockConn(t)
			defer conn.Close()
			tt.setup(mock)

			err := conn.HealthCheck(context.Background())

			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
