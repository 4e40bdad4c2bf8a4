package table

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestFormatAlignsColumns(t *testing.T) {
	got := Format([][]string{
		{"Date", "Jan 1, 2024 10:00 AM"},
		{"Location", "HQ"},
	}, []Alignment{AlignRight, AlignLeft})
	want := []string{
		"    Date  Jan 1, 2024 10:00 AM",
		"Location  HQ",
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d rows, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("row %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestFormatMeasuresStyledCellsByVisibleWidth(t *testing.T) {
	styled := lipgloss.NewStyle().Bold(true).Render("Status")
	got := Format([][]string{{styled, "x"}, {"Location", "y"}}, nil)
	if lipgloss.Width(got[0]) != lipgloss.Width(got[1]) {
		t.Fatalf("expected equal visible widths, got %q and %q", got[0], got[1])
	}
}

func TestFormatPadsShortRows(t *testing.T) {
	got := Format([][]string{{"a", "b", "c"}, {"dd"}}, nil)
	if got[1] != "dd     " {
		t.Fatalf("unexpected padded row %q", got[1])
	}
}

func TestFormatEmpty(t *testing.T) {
	if Format(nil, nil) != nil {
		t.Fatalf("expected nil for no rows")
	}
}
