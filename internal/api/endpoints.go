package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/atomicstack/evsched/internal/event"
	"github.com/atomicstack/evsched/internal/logging/events"
)

// QuickSearchLimit is the fixed result limit sent with every quick search.
const QuickSearchLimit = 5

type quickSearchPayload struct {
	Success *bool              `json:"success" validate:"required"`
	Results []event.Suggestion `json:"results" validate:"dive"`
	Total   int                `json:"total"`
	Error   string             `json:"error"`
}

type eventPayload struct {
	Success *bool        `json:"success" validate:"required"`
	Event   *event.Event `json:"event"`
	Error   string       `json:"error"`
}

type enhancePayload struct {
	Success     *bool  `json:"success" validate:"required"`
	Description string `json:"description"`
	Error       string `json:"error"`
}

type enhanceRequest struct {
	Title    string `json:"title"`
	Location string `json:"location"`
}

// EscapeQuery percent-encodes a query value the way browsers encode URI
// components (spaces become %20).
func EscapeQuery(value string) string {
	return strings.ReplaceAll(url.QueryEscape(value), "+", "%20")
}

// QuickSearchQuery builds the raw query string for a quick search.
func QuickSearchQuery(q string) string {
	return "q=" + EscapeQuery(q) + "&limit=" + strconv.Itoa(QuickSearchLimit)
}

// SearchPageURL is the full results page for q.
func (c *Client) SearchPageURL(q string) string {
	return c.URL("/search", "q="+EscapeQuery(q))
}

// QuickSearch runs a best-effort search. Failures never raise a notification;
// callers treat them as "no suggestions".
func (c *Client) QuickSearch(ctx context.Context, q string) ([]event.Suggestion, error) {
	var out quickSearchPayload
	_, err := c.Call(ctx, Request{
		Path:     "/search/api/quick-search",
		RawQuery: QuickSearchQuery(q),
		Silent:   true,
		Out:      &out,
	})
	if err != nil {
		return nil, err
	}
	if !*out.Success {
		return nil, &RejectedError{Message: out.Error}
	}
	return out.Results, nil
}

// GetEvent loads one event. Recent results are served from a short-lived
// cache and concurrent loads of the same id share a single request.
func (c *Client) GetEvent(ctx context.Context, id int) (*event.Event, error) {
	key := strconv.Itoa(id)
	if v, ok := c.details.Get(key); ok {
		events.API.CacheHit(key)
		ev := v.(event.Event)
		return &ev, nil
	}
	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		var out eventPayload
		if _, err := c.Call(ctx, Request{Path: "/events/api/" + key, Out: &out}); err != nil {
			return nil, err
		}
		if !*out.Success || out.Event == nil {
			return nil, &RejectedError{Message: out.Error}
		}
		c.details.SetDefault(key, *out.Event)
		return *out.Event, nil
	})
	if err != nil {
		return nil, err
	}
	ev := v.(event.Event)
	return &ev, nil
}

// DeleteEvent removes an event. No body is required or read. Failures are not
// notified here; the caller reports its own message.
func (c *Client) DeleteEvent(ctx context.Context, id int) error {
	key := strconv.Itoa(id)
	_, err := c.Call(ctx, Request{Method: http.MethodPost, Path: "/events/delete/" + key, Silent: true})
	c.details.Delete(key)
	return err
}

// EnhanceDescription asks the server to write a description for the event.
func (c *Client) EnhanceDescription(ctx context.Context, title, location string) (string, error) {
	var out enhancePayload
	_, err := c.Call(ctx, Request{
		Method: http.MethodPost,
		Path:   "/events/api/enhance-description",
		JSON:   enhanceRequest{Title: title, Location: location},
		Out:    &out,
	})
	if err != nil {
		return "", err
	}
	if !*out.Success {
		return "", &RejectedError{Message: out.Error}
	}
	if strings.TrimSpace(out.Description) == "" {
		return "", &SchemaError{Err: fmt.Errorf("empty description")}
	}
	return out.Description, nil
}

// SaveEvent submits the event form. A zero id creates a new event.
func (c *Client) SaveEvent(ctx context.Context, id int, fields url.Values) error {
	path := "/events/add"
	if id > 0 {
		key := strconv.Itoa(id)
		path = "/events/edit/" + key
		defer c.details.Delete(key)
	}
	_, err := c.Call(ctx, Request{Method: http.MethodPost, Path: path, Form: fields})
	return err
}
