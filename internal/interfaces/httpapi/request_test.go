package httpapi

import (
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/volley-club/internal/usecase"
)

func TestParseFixtureDate(t *testing.T) {
	got, err := parseFixtureDate("2025-06-01T18:30:00+02:00")
	if err != nil {
		t.Fatalf("parse rfc3339: %v", err)
	}
	if want := time.Date(2025, 6, 1, 16, 30, 0, 0, time.UTC); !got.Equal(want) || got.Location() != time.UTC {
		t.Fatalf("unexpected time: %v", got)
	}

	got, err = parseFixtureDate(" 2025-06-01 ")
	if err != nil {
		t.Fatalf("parse date only: %v", err)
	}
	if want := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Fatalf("unexpected time: %v", got)
	}

	if _, err := parseFixtureDate("next tuesday"); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestFormSchemaCoerce(t *testing.T) {
	out, err := playerForm.coerce(map[string][]string{
		"name":         {"Mia Torres"},
		"positions":    {`["Setter","Libero"]`},
		"jerseyNumber": {" 7 "},
		"age":          {""},
		"removeImage":  {"true"},
	})
	if err != nil {
		t.Fatalf("coerce: %v", err)
	}
	if out["name"] != "Mia Torres" || out["jerseyNumber"] != float64(7) || out["removeImage"] != true {
		t.Fatalf("unexpected coerced values: %v", out)
	}
	if _, ok := out["age"]; ok {
		t.Fatalf("expected empty number to be skipped")
	}
	positions, ok := out["positions"].([]any)
	if !ok || len(positions) != 2 {
		t.Fatalf("unexpected positions: %v", out["positions"])
	}
}

func TestFormSchemaCoerceRejectsBadFields(t *testing.T) {
	_, err := storeItemForm.coerce(map[string][]string{
		"price":       {"cheap"},
		"sizes":       {"[not json"},
		"colour":      {"red"},
		"name":        {"Cap"},
		"stock":       {"3"},
		"removeImage": {"maybe"},
	})
	if !errors.Is(err, usecase.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	var verr *usecase.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	got := map[string]bool{}
	for _, f := range verr.Fields {
		got[f.Field] = true
		if f.Reason != usecase.FieldReasonInvalid {
			t.Fatalf("unexpected reason for %s: %s", f.Field, f.Reason)
		}
	}
	for _, field := range []string{"price", "sizes", "colour", "removeImage"} {
		if !got[field] {
			t.Fatalf("expected %s to be rejected, got %v", field, verr.Fields)
		}
	}
	if got["name"] || got["stock"] {
		t.Fatalf("valid fields rejected: %v", verr.Fields)
	}
}

func TestFormSchemaCoerceRejectsNonFiniteNumbers(t *testing.T) {
	for _, raw := range []string{"NaN", "nan", "Inf", "+Inf", "-Infinity"} {
		_, err := playerForm.coerce(map[string][]string{
			"name":         {"Mia Torres"},
			"jerseyNumber": {raw},
		})
		var verr *usecase.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("%s: expected ValidationError, got %v", raw, err)
		}
		if len(verr.Fields) != 1 || verr.Fields[0].Field != "jerseyNumber" {
			t.Fatalf("%s: unexpected fields %v", raw, verr.Fields)
		}
	}
}
