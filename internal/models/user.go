package models

import (
	"github.com/agendabeleza/backend/internal/constants"
)

// Role is the closed set of account kinds.
type Role int

const (
	// RoleClient is an ordinary salon client.
	RoleClient Role = iota
	// RoleAdmin is a salon administrator.
	RoleAdmin
)

// String returns the role name used in logs and responses.
func (r Role) String() string {
	if r == RoleAdmin {
		return "admin"
	}
	return "client"
}

// IsAdmin reports whether the role carries administrative rights.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// RoleFromFlag converts the persisted IsAdmin flag into a Role.
func RoleFromFlag(isAdmin bool) Role {
	if isAdmin {
		return RoleAdmin
	}
	return RoleClient
}

// User represents a registered client of the salon.
type User struct {
	ID           int64  `json:"id"`
	Name         string `json:"nome"`
	Email        string `json:"email"`
	Phone        string `json:"telefone,omitempty"`
	PasswordHash string `json:"-"`
	Role         Role   `json:"-"`
}

// NewUser creates a client account with the password hash filled in later.
func NewUser(name, email, phone string) *User {
	return &User{
		Name:  name,
		Email: email,
		Phone: phone,
		Role:  RoleClient,
	}
}

// TableName returns the database table name for the User model.
func (u *User) TableName() string {
	return constants.TableUsers
}

// IsAdmin reports whether the user is a salon administrator.
func (u *User) IsAdmin() bool {
	return u.Role.IsAdmin()
}

// Sanitize removes sensitive information from the User object when sending to clients.
func (u *User) Sanitize() *User {
	sanitized := *u
	sanitized.PasswordHash = ""
	return &sanitized
}

// UserCredentials represents the login form.
type UserCredentials struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required"`
}

// UserRegistration represents the registration form.
type UserRegistration struct {
	Name            string `json:"nome" validate:"required,max=100"`
	Email           string `json:"email" validate:"required,email,max=255"`
	Phone           string `json:"telefone" validate:"omitempty,max=20"`
	Password        string `json:"password" validate:"required,strong_password"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}
