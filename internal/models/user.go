package models

import (
	"time"

	"github.com/google/uuid"
)

// RoleAdmin is the only role the site knows about
const RoleAdmin = "admin"

// User is an administrator account
type User struct {
	ID           string    `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         string    `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// Credentials is the login and registration body
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// NewUser creates an admin user with an already hashed password
func NewUser(email, passwordHash string, now time.Time) *User {
	return &User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: passwordHash,
		Role:         RoleAdmin,
		CreatedAt:    now.UTC(),
	}
}
