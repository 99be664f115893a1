package models

import (
	"time"

	"github.com/google/uuid"
)

// ContactMessage is a message left through the public contact form
type ContactMessage struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Subject   *string   `json:"subject" db:"subject"`
	Message   string    `json:"message" db:"message"`
	Read      bool      `json:"read" db:"read"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// ContactMessageInput is the public contact form body
type ContactMessageInput struct {
	Name    string  `json:"name" validate:"required"`
	Email   string  `json:"email" validate:"required,email"`
	Subject *string `json:"subject"`
	Message string  `json:"message" validate:"required"`
}

// ToContactMessage converts the form input to an unread message
func (in *ContactMessageInput) ToContactMessage(now time.Time) *ContactMessage {
	return &ContactMessage{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Email:     in.Email,
		Subject:   in.Subject,
		Message:   in.Message,
		CreatedAt: now.UTC(),
	}
}
