package event

import "testing"

func TestStatusColor(t *testing.T) {
	cases := map[Status]string{
		StatusUpcoming:  "primary",
		StatusAttending: "success",
		StatusMaybe:     "warning",
		StatusDeclined:  "danger",
		"cancelled":     "secondary",
		"":              "secondary",
	}
	for status, want := range cases {
		if got := status.Color(); got != want {
			t.Fatalf("status %q: expected %q, got %q", status, want, got)
		}
	}
}

func TestStatusTitle(t *testing.T) {
	if got := StatusAttending.Title(); got != "Attending" {
		t.Fatalf("expected Attending, got %q", got)
	}
	if got := Status("élan").Title(); got != "Élan" {
		t.Fatalf("expected Élan, got %q", got)
	}
	if got := Status("").Title(); got != "" {
		t.Fatalf("expected empty title, got %q", got)
	}
}

func TestParseDateVariants(t *testing.T) {
	for _, value := range []string{
		"2024-01-01T10:00:00Z",
		"2024-01-01T10:00:00",
		"2024-01-01T10:00:00.123456",
		"2024-01-01T10:00",
	} {
		got, ok := ParseDate(value)
		if !ok {
			t.Fatalf("expected %q to parse", value)
		}
		if got.Year() != 2024 || got.Month() != 1 {
			t.Fatalf("unexpected date for %q: %v", value, got)
		}
	}
	if _, ok := ParseDate("tomorrow"); ok {
		t.Fatalf("expected free text to be rejected")
	}
}

func TestFormatDateFallsBackToRaw(t *testing.T) {
	if got := FormatDate("not a date"); got != "not a date" {
		t.Fatalf("expected raw fallback, got %q", got)
	}
}
