package suggest

import (
	"strings"
	"testing"

	"github.com/atomicstack/evsched/internal/event"
)

func teamSync() []event.Suggestion {
	return []event.Suggestion{{ID: 7, Title: "Team Sync", Date: "2024-01-01T10:00:00Z", Status: event.StatusUpcoming}}
}

func TestRenderBuildsRowsWithHighlightAndBadge(t *testing.T) {
	r := NewRenderer(nil)
	r.Render(teamSync(), "team")
	if !r.Visible() {
		t.Fatalf("expected panel to be visible")
	}
	rows := r.Rows()
	if len(rows) != 1 {
		t.Fatalf("expected one row, got %d", len(rows))
	}
	row := rows[0]
	if len(row.Title) != 2 || !row.Title[0].Match || row.Title[0].Text != "Team" || row.Title[1].Text != " Sync" {
		t.Fatalf("unexpected title segments %#v", row.Title)
	}
	if row.BadgeColor != "primary" {
		t.Fatalf("expected primary badge, got %q", row.BadgeColor)
	}
}

func TestViewAllCountsReturnedList(t *testing.T) {
	r := NewRenderer(nil)
	items := append(teamSync(), event.Suggestion{ID: 8, Title: "Team Lunch", Date: "2024-01-02T12:00:00", Status: "maybe"})
	r.Render(items, "team")
	if got := r.ViewAllLabel(); got != "View all results (2+)" {
		t.Fatalf("unexpected label %q", got)
	}
	view := r.View(60)
	if !strings.Contains(view, "View all results (2+)") {
		t.Fatalf("expected view-all row in view:\n%s", view)
	}
}

func TestRenderEmptyClearsPanel(t *testing.T) {
	r := NewRenderer(nil)
	r.Render(teamSync(), "team")
	r.Render(nil, "team")
	if r.Visible() {
		t.Fatalf("expected empty results to clear the panel")
	}
	if r.View(60) != "" {
		t.Fatalf("expected empty view")
	}
}

func TestClearIsIdempotent(t *testing.T) {
	r := NewRenderer(nil)
	r.Clear()
	r.Render(teamSync(), "team")
	r.Clear()
	r.Clear()
	if r.Visible() || len(r.Suggestions()) != 0 {
		t.Fatalf("expected cleared renderer")
	}
}

func TestCursorSelectsSuggestionThenViewAll(t *testing.T) {
	r := NewRenderer(nil)
	r.Render(teamSync(), "team")
	sel := r.Selected()
	if sel.Kind != SelectEvent || sel.Suggestion.ID != 7 {
		t.Fatalf("expected first suggestion selected, got %#v", sel)
	}
	if !r.MoveCursor(1) {
		t.Fatalf("expected cursor to move to view-all row")
	}
	if r.MoveCursor(1) {
		t.Fatalf("expected cursor to stop at the last row")
	}
	sel = r.Selected()
	if sel.Kind != SelectViewAll || sel.Query != "team" {
		t.Fatalf("expected view-all selection, got %#v", sel)
	}
	if !r.CursorHome() || r.Cursor() != 0 {
		t.Fatalf("expected home to return to the first row")
	}
}

func TestHeightTracksVisibility(t *testing.T) {
	r := NewRenderer(nil)
	if r.Height() != 0 {
		t.Fatalf("expected zero height without a panel")
	}
	r.Render(teamSync(), "team")
	if r.Height() != 5 {
		t.Fatalf("expected 5 rows, got %d", r.Height())
	}
}
