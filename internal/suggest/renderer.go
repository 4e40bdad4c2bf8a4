// Package suggest renders quick-search results into the transient panel shown
// under the search field.
package suggest

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/atomicstack/evsched/internal/event"
	"github.com/atomicstack/evsched/internal/theme"
)

// SelectionKind distinguishes a picked suggestion from the "view all" row.
type SelectionKind int

const (
	SelectNone SelectionKind = iota
	SelectEvent
	SelectViewAll
)

// Selection is the row under the cursor.
type Selection struct {
	Kind       SelectionKind
	Suggestion event.Suggestion
	Query      string
}

// Row is the display model of one suggestion.
type Row struct {
	ID         int
	Title      []Segment
	Date       string
	Location   string
	Status     event.Status
	BadgeColor string
}

// Renderer owns the suggestion panel for the lifetime of one rendered list.
type Renderer struct {
	styles      *theme.Styles
	suggestions []event.Suggestion
	query       string
	visible     bool
	cur         cursor
}

// NewRenderer constructs an empty renderer.
func NewRenderer(styles *theme.Styles) *Renderer {
	if styles == nil {
		styles = theme.Default()
	}
	return &Renderer{styles: styles}
}

// Render replaces the panel with the given results. An empty list removes the
// panel.
func (r *Renderer) Render(suggestions []event.Suggestion, query string) {
	if len(suggestions) == 0 {
		r.Clear()
		return
	}
	r.suggestions = append([]event.Suggestion(nil), suggestions...)
	r.query = query
	r.visible = true
	r.cur.reset(len(r.suggestions) + 1)
}

// Clear removes the panel. Calling it with no panel present does nothing.
func (r *Renderer) Clear() {
	if !r.visible {
		return
	}
	r.visible = false
	r.suggestions = nil
	r.query = ""
	r.cur.reset(0)
}

// Visible reports whether a panel is currently shown.
func (r *Renderer) Visible() bool {
	return r.visible
}

// Query returns the query the panel was rendered for.
func (r *Renderer) Query() string {
	return r.query
}

// Suggestions returns the rendered results.
func (r *Renderer) Suggestions() []event.Suggestion {
	return append([]event.Suggestion(nil), r.suggestions...)
}

// ViewAllLabel is the text of the trailing affordance. The count is the length
// of the returned list, not a server-side total.
func (r *Renderer) ViewAllLabel() string {
	return fmt.Sprintf("View all results (%d+)", len(r.suggestions))
}

// Rows returns the display model of every suggestion.
func (r *Renderer) Rows() []Row {
	rows := make([]Row, 0, len(r.suggestions))
	for _, s := range r.suggestions {
		rows = append(rows, Row{
			ID:         s.ID,
			Title:      Highlight(s.Title, r.query),
			Date:       event.FormatDate(s.Date),
			Location:   s.Location,
			Status:     s.Status,
			BadgeColor: s.Status.Color(),
		})
	}
	return rows
}

// Height is the number of terminal rows the panel occupies.
func (r *Renderer) Height() int {
	if !r.visible {
		return 0
	}
	// two lines per suggestion, the view-all row and the border
	return len(r.suggestions)*2 + 1 + 2
}

// MoveCursor moves the highlighted row by delta.
func (r *Renderer) MoveCursor(delta int) bool {
	if !r.visible {
		return false
	}
	return r.cur.moveBy(delta)
}

// CursorHome moves the highlight to the first row.
func (r *Renderer) CursorHome() bool {
	return r.visible && r.cur.home()
}

// CursorEnd moves the highlight to the "view all" row.
func (r *Renderer) CursorEnd() bool {
	return r.visible && r.cur.end()
}

// Cursor returns the highlighted row index.
func (r *Renderer) Cursor() int {
	return r.cur.pos
}

// Selected returns the row under the cursor.
func (r *Renderer) Selected() Selection {
	if !r.visible {
		return Selection{}
	}
	if r.cur.pos >= len(r.suggestions) {
		return Selection{Kind: SelectViewAll, Query: r.query}
	}
	return Selection{Kind: SelectEvent, Suggestion: r.suggestions[r.cur.pos], Query: r.query}
}

// View renders the panel at the given width. It returns "" when no panel is
// shown.
func (r *Renderer) View(width int) string {
	if !r.visible {
		return ""
	}
	inner := width - 2
	if inner < 20 {
		inner = 20
	}
	lines := make([]string, 0, len(r.suggestions)*2+1)
	for i, row := range r.Rows() {
		lines = append(lines, r.titleLine(row, i == r.cur.pos, inner))
		meta := "  " + row.Date
		if row.Location != "" {
			meta += " @ " + row.Location
		}
		lines = append(lines, r.styles.Muted.Render(truncate.StringWithTail(meta, uint(inner), "…")))
	}
	viewAll := r.styles.ViewAll.Render(r.ViewAllLabel())
	if r.cur.pos == len(r.suggestions) {
		viewAll = r.styles.SelectedItem.Render("› " + r.ViewAllLabel())
	}
	lines = append(lines, lipgloss.PlaceHorizontal(inner, lipgloss.Center, viewAll))
	return r.styles.Panel.Width(inner).Render(strings.Join(lines, "\n"))
}

func (r *Renderer) titleLine(row Row, selected bool, width int) string {
	base := r.styles.Item
	if selected {
		base = r.styles.SelectedItem
	}
	var b strings.Builder
	prefix := "  "
	if selected {
		prefix = "› "
	}
	b.WriteString(base.Render(prefix))
	for _, seg := range row.Title {
		if seg.Match {
			b.WriteString(r.styles.Mark.Render(seg.Text))
		} else {
			b.WriteString(base.Render(seg.Text))
		}
	}
	badge := theme.Badge(row.BadgeColor).Render(string(row.Status))
	title := truncate.StringWithTail(b.String(), uint(max(width-lipgloss.Width(badge)-1, 1)), "…")
	gap := width - lipgloss.Width(title) - lipgloss.Width(badge)
	if gap < 1 {
		gap = 1
	}
	return title + strings.Repeat(" ", gap) + badge
}
