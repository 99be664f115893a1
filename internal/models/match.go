package models

import (
	"time"

	"github.com/google/uuid"
)

// Match statuses
const (
	MatchStatusScheduled = "scheduled"
	MatchStatusLive      = "live"
	MatchStatusFinished  = "finished"
)

// Match is a fixture or result of the club
type Match struct {
	ID            string    `json:"id" db:"id"`
	Date          string    `json:"date" db:"date"`
	Time          string    `json:"time" db:"time"`
	Opponent      string    `json:"opponent" db:"opponent"`
	Tournament    string    `json:"tournament" db:"tournament"`
	HomeScore     *int      `json:"home_score" db:"home_score"`
	AwayScore     *int      `json:"away_score" db:"away_score"`
	IsHome        bool      `json:"is_home" db:"is_home"`
	Status        string    `json:"status" db:"status"`
	BroadcastLink *string   `json:"broadcast_link" db:"broadcast_link"`
	ReportLink    *string   `json:"report_link" db:"report_link"`
	HomeTeamLogo  *string   `json:"home_team_logo" db:"home_team_logo"`
	AwayTeamLogo  *string   `json:"away_team_logo" db:"away_team_logo"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// MatchInput is the request body for creating or replacing a match.
// IsHome is a pointer so an omitted field keeps the home default.
type MatchInput struct {
	Date          string  `json:"date" validate:"required"`
	Time          string  `json:"time" validate:"required"`
	Opponent      string  `json:"opponent" validate:"required"`
	Tournament    string  `json:"tournament" validate:"required"`
	HomeScore     *int    `json:"home_score" validate:"omitempty,gte=0"`
	AwayScore     *int    `json:"away_score" validate:"omitempty,gte=0"`
	IsHome        *bool   `json:"is_home"`
	Status        string  `json:"status" validate:"omitempty,oneof=scheduled live finished"`
	BroadcastLink *string `json:"broadcast_link"`
	ReportLink    *string `json:"report_link"`
	HomeTeamLogo  *string `json:"home_team_logo"`
	AwayTeamLogo  *string `json:"away_team_logo"`
}

// ToMatch converts MatchInput to a new Match record
func (in *MatchInput) ToMatch(now time.Time) *Match {
	m := &Match{
		ID:        uuid.NewString(),
		CreatedAt: now.UTC(),
	}
	in.Apply(m)
	return m
}

// Apply copies the editable fields onto an existing match, filling defaults
func (in *MatchInput) Apply(m *Match) {
	m.Date = in.Date
	m.Time = in.Time
	m.Opponent = in.Opponent
	m.Tournament = in.Tournament
	m.HomeScore = in.HomeScore
	m.AwayScore = in.AwayScore
	m.IsHome = true
	if in.IsHome != nil {
		m.IsHome = *in.IsHome
	}
	m.Status = in.Status
	if m.Status == "" {
		m.Status = MatchStatusScheduled
	}
	m.BroadcastLink = in.BroadcastLink
	m.ReportLink = in.ReportLink
	m.HomeTeamLogo = in.HomeTeamLogo
	m.AwayTeamLogo = in.AwayTeamLogo
}
