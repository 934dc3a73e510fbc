package postgres

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/lib/pq"
)

func TestIsUniqueViolation(t *testing.T) {
	t.Run("matches unique violation code", func(t *testing.T) {
		err := fmt.Errorf("insert account: %w", &pq.Error{Code: "23505", Message: "duplicate key value"})
		if !isUniqueViolation(err) {
			t.Fatalf("expected true for unique violation")
		}
	})

	t.Run("ignores other pq errors", func(t *testing.T) {
		err := &pq.Error{Code: "42P01", Message: "relation does not exist"}
		if isUniqueViolation(err) {
			t.Fatalf("expected false for undefined table error")
		}
	})

	t.Run("ignores plain errors", func(t *testing.T) {
		if isUniqueViolation(fmt.Errorf("duplicate key")) {
			t.Fatalf("expected false for non pq error")
		}
	})
}

func TestIsNotFound(t *testing.T) {
	if !isNotFound(fmt.Errorf("get player: %w", sql.ErrNoRows)) {
		t.Fatalf("expected wrapped sql.ErrNoRows to be not found")
	}
	if isNotFound(fmt.Errorf("boom")) {
		t.Fatalf("expected unrelated error to be found")
	}
}

func TestObsoleteImage(t *testing.T) {
	cases := []struct {
		name     string
		previous string
		current  string
		want     string
	}{
		{name: "unchanged", previous: "players/a.png", current: "players/a.png", want: ""},
		{name: "replaced", previous: "players/a.png", current: "players/b.png", want: "players/a.png"},
		{name: "removed", previous: "players/a.png", current: "", want: "players/a.png"},
		{name: "never set", previous: "", current: "players/b.png", want: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := obsoleteImage(tc.previous, tc.current); got != tc.want {
				t.Fatalf("obsoleteImage(%q, %q) = %q, want %q", tc.previous, tc.current, got, tc.want)
			}
		})
	}
}
