package memory

import (
	"time"

	"github.com/riskibarqy/volley-club/internal/domain/fixture"
	"github.com/riskibarqy/volley-club/internal/domain/leaguerow"
)

// SeedLeagueRows returns a starter table for local runs on the memory driver.
func SeedLeagueRows(now time.Time) []leaguerow.Row {
	now = now.UTC()
	return []leaguerow.Row{
		{ID: "seed-league-harbor", TeamName: "Harbor Spikers", Played: 6, Wins: 5, Losses: 1, Points: 15, Position: 1, UpdatedAt: now},
		{ID: "seed-league-club", TeamName: "Volley Club", Played: 6, Wins: 4, Losses: 2, Points: 12, Position: 2, UpdatedAt: now},
		{ID: "seed-league-north", TeamName: "North Block", Played: 6, Wins: 2, Losses: 4, Points: 6, Position: 3, UpdatedAt: now},
		{ID: "seed-league-dune", TeamName: "Dune Diggers", Played: 6, Wins: 1, Losses: 5, Points: 3, Position: 4, UpdatedAt: now},
	}
}

// SeedFixtures returns a few fixtures around now for local runs on the memory driver.
func SeedFixtures(now time.Time) []fixture.Fixture {
	now = now.UTC().Truncate(time.Hour)
	return []fixture.Fixture{
		{
			ID:          "seed-fixture-harbor",
			Opponent:    "Harbor Spikers",
			Date:        now.AddDate(0, 0, -7),
			Venue:       fixture.VenueAway,
			Status:      fixture.StatusCompleted,
			Score:       fixture.Score{Home: 3, Away: 1},
			Competition: "Regional League",
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          "seed-fixture-north",
			Opponent:    "North Block",
			Date:        now.AddDate(0, 0, 7),
			Venue:       fixture.VenueHome,
			Status:      fixture.StatusUpcoming,
			Competition: "Regional League",
			CreatedAt:   now,
			UpdatedAt:   now,
		},
	}
}
