package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Item              *lipgloss.Style
	SelectedItem      *lipgloss.Style
	Muted             *lipgloss.Style
	Mark              *lipgloss.Style
	Panel             *lipgloss.Style
	ViewAll           *lipgloss.Style
	Error             *lipgloss.Style
	Info              *lipgloss.Style
	Header            *lipgloss.Style
	Footer            *lipgloss.Style
	Filter            *lipgloss.Style
	FilterPrompt      *lipgloss.Style
	FilterPlaceholder *lipgloss.Style
	Label             *lipgloss.Style
	FocusedLabel      *lipgloss.Style
	Button            *lipgloss.Style
	DisabledButton    *lipgloss.Style
	Counter           *lipgloss.Style
	CounterWarning    *lipgloss.Style
	CounterDanger     *lipgloss.Style
	Toast             *lipgloss.Style
	ToastFading       *lipgloss.Style
	DetailTitle       *lipgloss.Style
	DetailBody        *lipgloss.Style
}

// badge and toast background colours keyed by the colour names used in
// event.Status.Color and notify.Kind.
var palette = map[string]lipgloss.Color{
	"primary":   lipgloss.Color("33"),
	"success":   lipgloss.Color("34"),
	"warning":   lipgloss.Color("178"),
	"danger":    lipgloss.Color("160"),
	"secondary": lipgloss.Color("244"),
	"info":      lipgloss.Color("38"),
}

var defaultStyles = Styles{
	Item: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	SelectedItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true),
	),
	Muted: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("243")),
	),
	Mark: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("220")),
	),
	Panel: ptr(
		lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")),
	),
	ViewAll: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Underline(true),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	Info: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Header: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	Footer: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Filter: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	FilterPrompt: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	FilterPlaceholder: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Label: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	),
	FocusedLabel: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true),
	),
	Button: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("33")).Padding(0, 1),
	),
	DisabledButton: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Background(lipgloss.Color("238")).Padding(0, 1),
	),
	Counter: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("243")),
	),
	CounterWarning: ptr(
		lipgloss.NewStyle().Foreground(palette["warning"]),
	),
	CounterDanger: ptr(
		lipgloss.NewStyle().Foreground(palette["danger"]),
	),
	Toast: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Padding(0, 1),
	),
	ToastFading: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Faint(true).Padding(0, 1),
	),
	DetailTitle: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true),
	),
	DetailBody: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	),
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

// Badge returns the style for a status badge of the given colour name.
// Unknown names use the secondary colour.
func Badge(color string) lipgloss.Style {
	bg, ok := palette[color]
	if !ok {
		bg = palette["secondary"]
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(bg).Padding(0, 1)
}

// ToastBackground returns the background for a toast of the given kind name.
// Error toasts use the danger colour.
func ToastBackground(kind string) lipgloss.Color {
	if kind == "error" {
		kind = "danger"
	}
	if c, ok := palette[kind]; ok {
		return c
	}
	return palette["info"]
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
