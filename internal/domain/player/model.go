package player

import (
	"fmt"
	"strings"
	"time"
)

// Position is a volleyball court role.
type Position string

const (
	PositionOutsideHitter       Position = "Outside Hitter"
	PositionOpposite            Position = "Opposite"
	PositionSetter              Position = "Setter"
	PositionMiddleBlocker       Position = "Middle Blocker"
	PositionLibero              Position = "Libero"
	PositionDefensiveSpecialist Position = "Defensive Specialist"
)

var AllPositions = map[Position]struct{}{
	PositionOutsideHitter:       {},
	PositionOpposite:            {},
	PositionSetter:              {},
	PositionMiddleBlocker:       {},
	PositionLibero:              {},
	PositionDefensiveSpecialist: {},
}

const (
	MinJerseyNumber = 1
	MaxJerseyNumber = 99
	MinAge          = 16
	MaxAge          = 45
)

// Stats holds season counters.
type Stats struct {
	Kills  int
	Aces   int
	Digs   int
	Blocks int
}

// Player is a roster entry.
type Player struct {
	ID           string
	Name         string
	Positions    []Position
	JerseyNumber int
	Age          int
	Nationality  string
	ImagePath    string
	Stats        Stats
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("player name is required")
	}
	if len(p.Positions) == 0 {
		return fmt.Errorf("at least one player position is required")
	}
	seen := make(map[Position]struct{}, len(p.Positions))
	for _, pos := range p.Positions {
		if _, ok := AllPositions[pos]; !ok {
			return fmt.Errorf("invalid player position: %s", pos)
		}
		if _, dup := seen[pos]; dup {
			return fmt.Errorf("duplicate player position: %s", pos)
		}
		seen[pos] = struct{}{}
	}
	if p.JerseyNumber < MinJerseyNumber || p.JerseyNumber > MaxJerseyNumber {
		return fmt.Errorf("jersey number must be between %d and %d", MinJerseyNumber, MaxJerseyNumber)
	}
	if p.Age < MinAge || p.Age > MaxAge {
		return fmt.Errorf("age must be between %d and %d", MinAge, MaxAge)
	}
	if strings.TrimSpace(p.Nationality) == "" {
		return fmt.Errorf("player nationality is required")
	}
	if p.Stats.Kills < 0 || p.Stats.Aces < 0 || p.Stats.Digs < 0 || p.Stats.Blocks < 0 {
		return fmt.Errorf("player stats cannot be negative")
	}

	return nil
}
