package fixture

import (
	"testing"
	"time"
)

func TestNormalizeStatus(t *testing.T) {
	if got := NormalizeStatus("  "); got != StatusUpcoming {
		t.Fatalf("expected Upcoming for empty status, got %q", got)
	}
	if got := NormalizeStatus("Live"); got != StatusLive {
		t.Fatalf("expected Live, got %q", got)
	}
}

func TestFixtureValidate(t *testing.T) {
	valid := Fixture{
		ID:          "f1",
		Opponent:    "Harbor Spikers",
		Date:        time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC),
		Venue:       VenueHome,
		Status:      StatusUpcoming,
		Competition: "Regional League",
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := map[string]func(*Fixture){
		"no opponent":    func(f *Fixture) { f.Opponent = "" },
		"no date":        func(f *Fixture) { f.Date = time.Time{} },
		"bad venue":      func(f *Fixture) { f.Venue = "Neutral" },
		"bad status":     func(f *Fixture) { f.Status = "Postponed" },
		"negative score": func(f *Fixture) { f.Score.Away = -1 },
		"no competition": func(f *Fixture) { f.Competition = " " },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			f := valid
			mutate(&f)
			if err := f.Validate(); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}
