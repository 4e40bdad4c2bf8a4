package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"

	"github.com/atomicstack/evsched/internal/event"
	"github.com/atomicstack/evsched/internal/format/table"
	"github.com/atomicstack/evsched/internal/theme"
)

const browseHint = "Type to search events. ctrl+n creates a new event."

// View implements tea.Model.
func (m *Model) View() string {
	width := m.contentWidth()
	lines := []string{m.search.View()}
	if panel := m.suggestions.View(width); panel != "" {
		lines = append(lines, strings.Split(panel, "\n")...)
	}
	lines = append(lines, "")
	lines = append(lines, m.mainLines(width)...)

	bottom := m.toastLines(width)
	if m.showFooter {
		bottom = append(bottom, "", m.help.ShortHelpView(m.keys.helpFor(m.mode, m.suggestions.Visible())))
	}
	if m.height > 0 {
		lines = limitHeight(lines, m.height-len(bottom))
		for len(lines)+len(bottom) < m.height && len(bottom) > 0 {
			lines = append(lines, "")
		}
	}
	lines = append(lines, bottom...)
	return strings.Join(applyWidth(lines, width), "\n")
}

func (m *Model) mainLines(width int) []string {
	switch m.mode {
	case ModeForm:
		if m.editor != nil {
			return m.editor.view()
		}
	case ModeDetail, ModeConfirmDelete:
		if m.detail != nil {
			lines := detailLines(m.detail, width)
			if m.mode == ModeConfirmDelete {
				lines = append(lines, "", styles.Error.Render(m.confirmPrompt()))
			}
			return lines
		}
	}
	if m.loadingDetail != 0 {
		return []string{styles.Muted.Render("Loading event…")}
	}
	return []string{styles.Muted.Render(browseHint)}
}

func detailLines(ev *event.Event, width int) []string {
	lines := []string{styles.DetailTitle.Render(ev.Title), ""}
	rows := [][]string{
		{styles.Label.Render("Date"), event.FormatDate(ev.Date)},
		{styles.Label.Render("Status"), theme.Badge(ev.Status.Color()).Render(ev.Status.Title())},
	}
	if ev.Location != "" {
		rows = append(rows, []string{styles.Label.Render("Location"), ev.Location})
	}
	if ev.CreatedAt != "" {
		rows = append(rows, []string{styles.Label.Render("Created"), event.FormatDate(ev.CreatedAt)})
	}
	if ev.UpdatedAt != "" {
		rows = append(rows, []string{styles.Label.Render("Updated"), event.FormatDate(ev.UpdatedAt)})
	}
	lines = append(lines, table.Format(rows, []table.Alignment{table.AlignRight, table.AlignLeft})...)
	if desc := strings.TrimSpace(ev.Description); desc != "" {
		lines = append(lines, "")
		wrapped := wordwrap.String(desc, max(width-2, 10))
		for _, line := range strings.Split(wrapped, "\n") {
			lines = append(lines, styles.DetailBody.Render(line))
		}
	}
	return lines
}

func limitHeight(lines []string, height int) []string {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []string{"…"}
	}
	trimmed := make([]string, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	return append(trimmed, "…")
}

func applyWidth(lines []string, width int) []string {
	if width <= 0 {
		return lines
	}
	out := make([]string, len(lines))
	for i, line := range lines {
		if lipgloss.Width(line) > width {
			line = truncate.StringWithTail(line, uint(width-1), "…")
		}
		out[i] = line
	}
	return out
}
