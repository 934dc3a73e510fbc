package player

import "testing"

func TestPlayerValidate(t *testing.T) {
	valid := Player{
		ID:           "p1",
		Name:         "Mia Torres",
		Positions:    []Position{PositionSetter, PositionLibero},
		JerseyNumber: 7,
		Age:          24,
		Nationality:  "Spain",
	}

	tests := []struct {
		name    string
		mutate  func(*Player)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Player) {}},
		{name: "missing name", mutate: func(p *Player) { p.Name = "  " }, wantErr: true},
		{name: "no positions", mutate: func(p *Player) { p.Positions = nil }, wantErr: true},
		{name: "unknown position", mutate: func(p *Player) { p.Positions = []Position{"Striker"} }, wantErr: true},
		{name: "duplicate position", mutate: func(p *Player) { p.Positions = []Position{PositionSetter, PositionSetter} }, wantErr: true},
		{name: "jersey too high", mutate: func(p *Player) { p.JerseyNumber = MaxJerseyNumber + 1 }, wantErr: true},
		{name: "jersey zero", mutate: func(p *Player) { p.JerseyNumber = 0 }, wantErr: true},
		{name: "too young", mutate: func(p *Player) { p.Age = MinAge - 1 }, wantErr: true},
		{name: "age upper bound", mutate: func(p *Player) { p.Age = MaxAge }},
		{name: "negative stats", mutate: func(p *Player) { p.Stats.Digs = -1 }, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := valid
			p.Positions = append([]Position(nil), valid.Positions...)
			tc.mutate(&p)

			err := p.Validate()
			if tc.wantErr && err == nil {
				t.Fatalf("expected validation error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
