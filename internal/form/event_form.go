package form

import (
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/evsched/internal/event"
)

// DateLayout is the wire format of the date field.
const DateLayout = "2006-01-02T15:04"

const (
	titleMaxLength       = 200
	locationMaxLength    = 200
	descriptionMaxLength = 1000
)

// EventFormID returns the form identifier for an event; zero means a new event.
func EventFormID(id int) string {
	if id <= 0 {
		return "event:new"
	}
	return "event:edit:" + strconv.Itoa(id)
}

// EventID recovers the event id from a form identifier, or 0 for new events.
func EventID(formID string) int {
	id, err := strconv.Atoi(strings.TrimPrefix(formID, "event:edit:"))
	if err != nil {
		return 0
	}
	return id
}

// DefaultEventDate is the next whole hour after now.
func DefaultEventDate(now time.Time) string {
	next := now.Add(time.Hour)
	next = time.Date(next.Year(), next.Month(), next.Day(), next.Hour(), 0, 0, 0, next.Location())
	return next.Format(DateLayout)
}

// NewEventForm builds the add/edit form. A nil ev produces an empty form with
// the date defaulted from now.
func NewEventForm(ev *event.Event, now time.Time) *Form {
	statuses := make([]string, len(event.Statuses))
	for i, s := range event.Statuses {
		statuses[i] = string(s)
	}
	f := &Form{
		ID:    EventFormID(0),
		Title: "New event",
		Fields: []*Field{
			{Name: "title", Label: "Title", Rules: "required,max=200", MaxLength: titleMaxLength},
			{Name: "date", Label: "Date", Rules: "required,datetime=" + DateLayout, Value: DefaultEventDate(now)},
			{Name: "location", Label: "Location", Rules: "max=200", MaxLength: locationMaxLength},
			{Name: "status", Label: "Status", Rules: "required,oneof=" + strings.Join(statuses, " "), Value: string(event.StatusUpcoming), Choices: statuses},
			{Name: "description", Label: "Description", Rules: "max=1000", MaxLength: descriptionMaxLength, Multiline: true},
		},
		Submit: Button{Label: "Create event"},
	}
	if ev == nil {
		return f
	}
	f.ID = EventFormID(ev.ID)
	f.Title = "Edit event"
	f.Submit.Label = "Update event"
	f.Field("title").Value = ev.Title
	if t, ok := event.ParseDate(ev.Date); ok {
		f.Field("date").Value = t.Local().Format(DateLayout)
	} else {
		f.Field("date").Value = ev.Date
	}
	f.Field("location").Value = ev.Location
	if ev.Status != "" {
		f.Field("status").Value = string(ev.Status)
	}
	f.Field("description").Value = ev.Description
	return f
}
