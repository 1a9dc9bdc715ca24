package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/agendabeleza/backend/internal/constants"
	"github.com/agendabeleza/backend/internal/database"
	"github.com/agendabeleza/backend/internal/models"
	"github.com/agendabeleza/backend/internal/utils"
)

// UserRepository defines methods for interacting with client accounts
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdatePassword(ctx context.Context, email, passwordHash string) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// MySQLUserRepository is the MySQL implementation of UserRepository.
// Every call acquires its own connection and releases it before returning.
type MySQLUserRepository struct {
	db database.Acquirer
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db database.Acquirer) UserRepository {
	return &MySQLUserRepository{
		db: db,
	}
}

const userColumns = "Id, Nome, Email, Telefone, Password, IsAdmin"

// scanUser reads one row selected with userColumns.
func scanUser(row *sql.Row) (*models.User, error) {
	var (
		user    models.User
		phone   sql.NullString
		isAdmin bool
	)
	if err := row.Scan(&user.ID, &user.Name, &user.Email, &phone, &user.PasswordHash, &isAdmin); err != nil {
		return nil, err
	}
	user.Phone = phone.String
	user.Role = models.RoleFromFlag(isAdmin)
	return &user, nil
}

// Create adds a new client account. The email must already be normalized
// and the password already hashed.
func (r *MySQLUserRepository) Create(ctx context.Context, user *models.User) error {
	startTime := time.Now()

	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	query := `
        INSERT INTO Utilizador (Nome, Email, Telefone, Password)
        VALUES (?, ?, ?, ?)
    `

	var phone interface{}
	if user.Phone != "" {
		phone = user.Phone
	}

	result, err := conn.ExecContext(ctx, query, user.Name, user.Email, phone, user.PasswordHash)

	utils.LogDBQuery(
		query,
		[]interface{}{user.Name, user.Email, phone, constants.LogRedactedValue},
		time.Since(startTime),
		err,
	)

	if err != nil {
		if utils.IsDuplicateKeyError(err) {
			return utils.NewDuplicateError("User", "email", user.Email)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read new user ID: %w", err)
	}
	user.ID = id

	log.Info().
		Int64("user_id", user.ID).
		Str("email", utils.MaskEmail(user.Email)).
		Msg("User created")

	return nil
}

// GetByID retrieves a user by ID
func (r *MySQLUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	startTime := time.Now()

	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	query := "SELECT " + userColumns + " FROM Utilizador WHERE Id = ?"

	user, err := scanUser(conn.QueryRowContext(ctx, query, id))

	utils.LogDBQuery(query, []interface{}{id}, time.Since(startTime), err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.NewNotFoundError("User", id)
		}
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}

	return user, nil
}

// GetByEmail retrieves a user by exact match on the normalized email
func (r *MySQLUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	startTime := time.Now()

	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	query := "SELECT " + userColumns + " FROM Utilizador WHERE Email = ?"

	user, err := scanUser(conn.QueryRowContext(ctx, query, email))

	utils.LogDBQuery(query, []interface{}{email}, time.Since(startTime), err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.NewNotFoundError("User", utils.MaskEmail(email))
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

// UpdatePassword overwrites the stored hash for the account with the given email
func (r *MySQLUserRepository) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	startTime := time.Now()

	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	query := "UPDATE Utilizador SET Password = ? WHERE Email = ?"

	result, err := conn.ExecContext(ctx, query, passwordHash, email)

	utils.LogDBQuery(query, []interface{}{constants.LogRedactedValue, email}, time.Since(startTime), err)

	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	// MySQL reports zero affected rows when the new value equals the old
	// one, so only an unknown email is treated as missing.
	if rowsAffected == 0 {
		exists, err := existsByEmail(ctx, conn, email)
		if err != nil {
			return err
		}
		if !exists {
			return utils.NewNotFoundError("User", utils.MaskEmail(email))
		}
	}

	log.Info().Str("email", utils.MaskEmail(email)).Msg("Password updated")

	return nil
}

// ExistsByEmail checks if an account with the given email exists
func (r *MySQLUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return false, err
	}
	defer conn.Close()

	return existsByEmail(ctx, conn, email)
}

func existsByEmail(ctx context.Context, conn *database.Conn, email string) (bool, error) {
	startTime := time.Now()

	query := "SELECT EXISTS(SELECT 1 FROM Utilizador WHERE Email = ?)"

	var exists bool
	err := conn.QueryRowContext(ctx, query, email).Scan(&exists)

	utils.LogDBQuery(query, []interface{}{email}, time.Since(startTime), err)

	if err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}

	return exists, nil
}
