package models

import (
	"time"

	"github.com/google/uuid"
)

// Player is a squad or staff member shown on the team page.
// Position covers staff roles too (coach, manager, representative).
type Player struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Number    *int      `json:"number" db:"number"`
	Position  string    `json:"position" db:"position"`
	PhotoURL  *string   `json:"photo_url" db:"photo_url"`
	Biography *string   `json:"biography" db:"biography"`
	Goals     int       `json:"goals" db:"goals"`
	Assists   int       `json:"assists" db:"assists"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// PlayerInput is the request body for creating or replacing a player
type PlayerInput struct {
	Name      string  `json:"name" validate:"required"`
	Number    *int    `json:"number" validate:"omitempty,gte=0,lte=99"`
	Position  string  `json:"position" validate:"required,oneof=goalkeeper defender midfielder forward coach manager representative"`
	PhotoURL  *string `json:"photo_url"`
	Biography *string `json:"biography"`
	Goals     int     `json:"goals" validate:"gte=0"`
	Assists   int     `json:"assists" validate:"gte=0"`
}

// ToPlayer converts PlayerInput to a new Player record
func (in *PlayerInput) ToPlayer(now time.Time) *Player {
	return &Player{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Number:    in.Number,
		Position:  in.Position,
		PhotoURL:  in.PhotoURL,
		Biography: in.Biography,
		Goals:     in.Goals,
		Assists:   in.Assists,
		CreatedAt: now.UTC(),
	}
}

// Apply copies the editable fields onto an existing player
func (in *PlayerInput) Apply(p *Player) {
	p.Name = in.Name
	p.Number = in.Number
	p.Position = in.Position
	p.PhotoURL = in.PhotoURL
	p.Biography = in.Biography
	p.Goals = in.Goals
	p.Assists = in.Assists
}
