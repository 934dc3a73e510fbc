package fixture

import (
	"fmt"
	"strings"
	"time"
)

type Venue string

const (
	VenueHome Venue = "Home"
	VenueAway Venue = "Away"
)

type Status string

const (
	StatusUpcoming  Status = "Upcoming"
	StatusLive      Status = "Live"
	StatusCompleted Status = "Completed"
	StatusCancelled Status = "Cancelled"
)

var AllStatuses = []Status{StatusUpcoming, StatusLive, StatusCompleted, StatusCancelled}

// NormalizeStatus maps an empty status to Upcoming and keeps any other value as is.
func NormalizeStatus(value string) Status {
	status := strings.TrimSpace(value)
	if status == "" {
		return StatusUpcoming
	}
	return Status(status)
}

func IsValidStatus(status Status) bool {
	for _, s := range AllStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Score is the sets won by the club (Home) and the opponent (Away) sides.
type Score struct {
	Home int
	Away int
}

// Fixture represents one scheduled or played match.
type Fixture struct {
	ID          string
	Opponent    string
	Date        time.Time
	Venue       Venue
	Status      Status
	Score       Score
	Competition string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (f Fixture) Validate() error {
	if f.ID == "" {
		return fmt.Errorf("fixture id is required")
	}
	if strings.TrimSpace(f.Opponent) == "" {
		return fmt.Errorf("fixture opponent is required")
	}
	if f.Date.IsZero() {
		return fmt.Errorf("fixture date is required")
	}
	if f.Venue != VenueHome && f.Venue != VenueAway {
		return fmt.Errorf("invalid fixture venue: %s", f.Venue)
	}
	if !IsValidStatus(f.Status) {
		return fmt.Errorf("invalid fixture status: %s", f.Status)
	}
	if f.Score.Home < 0 || f.Score.Away < 0 {
		return fmt.Errorf("fixture score cannot be negative")
	}
	if strings.TrimSpace(f.Competition) == "" {
		return fmt.Errorf("fixture competition is required")
	}

	return nil
}
