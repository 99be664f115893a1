package models

import "time"

// StandingsSnapshotID is the key of the single standings document.
// Only one league is tracked, so there is only ever one snapshot.
const StandingsSnapshotID = "standings_first_league"

// StandingsRow is one team's line in the league table
type StandingsRow struct {
	Position       int    `json:"position"`
	Team           string `json:"team"`
	Games          int    `json:"games"`
	Wins           int    `json:"wins"`
	Draws          int    `json:"draws"`
	Losses         int    `json:"losses"`
	GoalsFor       int    `json:"goals_for"`
	GoalsAgainst   int    `json:"goals_against"`
	GoalDifference int    `json:"goal_difference"` // always GoalsFor - GoalsAgainst
	Points         int    `json:"points"`
}

// StandingsSnapshot is the latest successfully parsed league table.
// It is replaced wholesale on every successful refresh.
type StandingsSnapshot struct {
	ID          string         `json:"id" db:"id"`
	LeagueName  string         `json:"league_name" db:"league_name"`
	Teams       []StandingsRow `json:"teams" db:"teams"`
	LastUpdated time.Time      `json:"last_updated" db:"last_updated"`
}

// NewStandingsSnapshot builds a snapshot under the well-known key
func NewStandingsSnapshot(leagueName string, rows []StandingsRow, at time.Time) *StandingsSnapshot {
	teams := make([]StandingsRow, len(rows))
	copy(teams, rows)

	return &StandingsSnapshot{
		ID:          StandingsSnapshotID,
		LeagueName:  leagueName,
		Teams:       teams,
		LastUpdated: at.UTC(),
	}
}

// Clone returns a deep copy so callers can never mutate a stored snapshot
func (s *StandingsSnapshot) Clone() *StandingsSnapshot {
	if s == nil {
		return nil
	}

	out := *s
	out.Teams = make([]StandingsRow, len(s.Teams))
	copy(out.Teams, s.Teams)
	return &out
}
