package leaguerow

import (
	"fmt"
	"strings"
	"time"
)

// Row represents a league table row for one team.
type Row struct {
	ID        string
	TeamName  string
	Played    int
	Wins      int
	Losses    int
	Points    int
	Position  int
	UpdatedAt time.Time
}

func (r Row) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("league row id is required")
	}
	if strings.TrimSpace(r.TeamName) == "" {
		return fmt.Errorf("team name is required")
	}
	if r.Played < 0 || r.Wins < 0 || r.Losses < 0 || r.Points < 0 {
		return fmt.Errorf("league counters cannot be negative")
	}
	if r.Wins+r.Losses > r.Played {
		return fmt.Errorf("wins and losses cannot exceed matches played")
	}
	if r.Position < 1 {
		return fmt.Errorf("table position must be at least 1")
	}

	return nil
}
