// Package event holds the read-only projections of server-side event records
// that the console renders.
package event

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// Status is the attendance state of an event.
type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusAttending Status = "attending"
	StatusMaybe     Status = "maybe"
	StatusDeclined  Status = "declined"
)

// Statuses lists the recognised statuses in display order.
var Statuses = []Status{StatusUpcoming, StatusAttending, StatusMaybe, StatusDeclined}

// Badge colours.
const (
	ColorPrimary   = "primary"
	ColorSuccess   = "success"
	ColorWarning   = "warning"
	ColorDanger    = "danger"
	ColorSecondary = "secondary"
)

// Color maps a status onto its badge colour. Unrecognised values are secondary.
func (s Status) Color() string {
	switch s {
	case StatusUpcoming:
		return ColorPrimary
	case StatusAttending:
		return ColorSuccess
	case StatusMaybe:
		return ColorWarning
	case StatusDeclined:
		return ColorDanger
	default:
		return ColorSecondary
	}
}

// Title returns the status with its first letter upper-cased.
func (s Status) Title() string {
	if s == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(string(s))
	return string(unicode.ToUpper(r)) + string(s[size:])
}

// Valid reports whether s is one of the recognised statuses.
func (s Status) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// Suggestion is one quick-search hit.
type Suggestion struct {
	ID       int    `json:"id" validate:"gt=0"`
	Title    string `json:"title" validate:"required"`
	Date     string `json:"date" validate:"required"`
	Location string `json:"location,omitempty"`
	Status   Status `json:"status"`
}

// Event is the full record returned by the detail endpoint.
type Event struct {
	ID          int    `json:"id" validate:"gt=0"`
	Title       string `json:"title" validate:"required"`
	Date        string `json:"date" validate:"required"`
	Location    string `json:"location,omitempty"`
	Status      Status `json:"status"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
}

// ParseDate accepts the ISO-8601 variants the server emits. Values without a
// zone are read as local time.
func ParseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for i, layout := range dateLayouts {
		var (
			t   time.Time
			err error
		)
		if i == 0 {
			t, err = time.Parse(layout, value)
		} else {
			t, err = time.ParseInLocation(layout, value, time.Local)
		}
		if err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDate renders a date for display, falling back to the raw value.
func FormatDate(value string) string {
	t, ok := ParseDate(value)
	if !ok {
		return value
	}
	return t.Local().Format("Jan 2, 2006 03:04 PM")
}
