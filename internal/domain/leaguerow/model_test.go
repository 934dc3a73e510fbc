package leaguerow

import "testing"

func TestRowValidate(t *testing.T) {
	valid := Row{ID: "r1", TeamName: "Volley Club", Played: 6, Wins: 4, Losses: 2, Points: 12, Position: 1}
	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := map[string]func(*Row){
		"no team":          func(r *Row) { r.TeamName = "" },
		"negative points":  func(r *Row) { r.Points = -1 },
		"too many results": func(r *Row) { r.Wins = 5 },
		"position zero":    func(r *Row) { r.Position = 0 },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			r := valid
			mutate(&r)
			if err := r.Validate(); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}
