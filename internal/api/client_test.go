package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atomicstack/evsched/internal/notify"
	"github.com/atomicstack/evsched/internal/testutil"
)

type fakeServer struct {
	*httptest.Server
	searches    atomic.Int32
	detailHits  atomic.Int32
	lastQuery   atomic.Value
	lastEnhance atomic.Value
	lastForm    atomic.Value
}

func newFakeServer(t *testing.T) *fakeServer {
	t.Helper()
	fs := &fakeServer{}
	r := chi.NewRouter()
	r.Get("/search/api/quick-search", func(w http.ResponseWriter, req *http.Request) {
		fs.searches.Add(1)
		fs.lastQuery.Store(req.URL.RawQuery)
		switch req.URL.Query().Get("q") {
		case "boom":
			http.Error(w, "boom", http.StatusInternalServerError)
		case "nope":
			writeJSON(w, map[string]interface{}{"success": false, "error": "db down"})
		default:
			writeJSON(w, map[string]interface{}{
				"success": true,
				"results": []map[string]interface{}{
					{"id": 7, "title": "Team Sync", "date": "2024-01-01T10:00:00Z", "status": "upcoming"},
				},
			})
		}
	})
	r.Get("/events/api/{id}", func(w http.ResponseWriter, req *http.Request) {
		fs.detailHits.Add(1)
		switch chi.URLParam(req, "id") {
		case "7":
			writeJSON(w, map[string]interface{}{
				"success": true,
				"event": map[string]interface{}{
					"id": 7, "title": "Team Sync", "date": "2024-01-01T10:00:00",
					"status": "upcoming", "created_at": "2023-12-01T08:00:00", "updated_at": "2023-12-02T08:00:00",
				},
			})
		case "8":
			writeJSON(w, map[string]interface{}{"success": true, "event": map[string]interface{}{"id": 8}})
		default:
			w.WriteHeader(http.StatusNotFound)
			writeJSON(w, map[string]interface{}{"success": false, "error": "Event not found"})
		}
	})
	r.Post("/events/delete/{id}", func(w http.ResponseWriter, req *http.Request) {
		if chi.URLParam(req, "id") == "9" {
			http.Error(w, "locked", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	r.Post("/events/api/enhance-description", func(w http.ResponseWriter, req *http.Request) {
		body, _ := io.ReadAll(req.Body)
		fs.lastEnhance.Store(string(body))
		writeJSON(w, map[string]interface{}{"success": true, "description": "Event: Team Sync at HQ"})
	})
	r.Post("/events/add", func(w http.ResponseWriter, req *http.Request) {
		_ = req.ParseForm()
		fs.lastForm.Store(req.PostForm.Encode())
		w.WriteHeader(http.StatusOK)
	})
	fs.Server = httptest.NewServer(r)
	t.Cleanup(fs.Close)
	return fs
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func newTestClient(t *testing.T, baseURL string) (*Client, *testutil.RecordingNotifier) {
	t.Helper()
	rec := &testutil.RecordingNotifier{}
	c, err := New(Options{BaseURL: baseURL, Notifier: rec})
	require.NoError(t, err)
	return c, rec
}

func TestQuickSearchRequestShapeAndDecode(t *testing.T) {
	srv := newFakeServer(t)
	c, rec := newTestClient(t, srv.URL)

	results, err := c.QuickSearch(context.Background(), "team")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Team Sync", results[0].Title)
	assert.Equal(t, 7, results[0].ID)
	assert.Equal(t, "q=team&limit=5", srv.lastQuery.Load())
	assert.Empty(t, rec.Notices())
}

func TestQuickSearchEscapesQuery(t *testing.T) {
	srv := newFakeServer(t)
	c, _ := newTestClient(t, srv.URL)

	_, err := c.QuickSearch(context.Background(), "a b&c")
	require.NoError(t, err)
	assert.Equal(t, "q=a%20b%26c&limit=5", srv.lastQuery.Load())
}

func TestQuickSearchFailureIsSilent(t *testing.T) {
	srv := newFakeServer(t)
	c, rec := newTestClient(t, srv.URL)

	_, err := c.QuickSearch(context.Background(), "boom")
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, StatusCode(err))

	_, err = c.QuickSearch(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrRejected)
	assert.Empty(t, rec.Notices())
}

func TestCallFailureNotifiesOnceAndReturnsStatusError(t *testing.T) {
	srv := newFakeServer(t)
	c, rec := newTestClient(t, srv.URL)

	_, err := c.GetEvent(context.Background(), 99)
	var statusErr *HTTPStatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusNotFound, statusErr.Code)

	notices := rec.Notices()
	require.Len(t, notices, 1)
	assert.Equal(t, GenericFailureMessage, notices[0].Message)
	assert.Equal(t, notify.KindError, notices[0].Kind)
}

func TestTransportFailure(t *testing.T) {
	srv := newFakeServer(t)
	base := srv.URL
	srv.Close()
	c, rec := newTestClient(t, base)

	_, err := c.Call(context.Background(), Request{Path: "/events/api/7"})
	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.Len(t, rec.Notices(), 1)
}

func TestMalformedPayloadBecomesSchemaError(t *testing.T) {
	srv := newFakeServer(t)
	c, rec := newTestClient(t, srv.URL)

	_, err := c.GetEvent(context.Background(), 8)
	var schemaErr *SchemaError
	require.True(t, errors.As(err, &schemaErr), "got %v", err)
	assert.Len(t, rec.Notices(), 1)
}

func TestMissingSuccessFlagIsSchemaError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]interface{}{"results": []interface{}{}})
	}))
	t.Cleanup(srv.Close)
	c, _ := newTestClient(t, srv.URL)

	_, err := c.QuickSearch(context.Background(), "team")
	var schemaErr *SchemaError
	assert.True(t, errors.As(err, &schemaErr))
}

func TestGetEventIsCachedAndDeleteInvalidates(t *testing.T) {
	srv := newFakeServer(t)
	c, _ := newTestClient(t, srv.URL)
	ctx := context.Background()

	ev, err := c.GetEvent(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "Team Sync", ev.Title)
	_, err = c.GetEvent(ctx, 7)
	require.NoError(t, err)
	assert.EqualValues(t, 1, srv.detailHits.Load())

	require.NoError(t, c.DeleteEvent(ctx, 7))
	_, err = c.GetEvent(ctx, 7)
	require.NoError(t, err)
	assert.EqualValues(t, 2, srv.detailHits.Load())
}

func TestDeleteFailureLeavesNotificationToCaller(t *testing.T) {
	srv := newFakeServer(t)
	c, rec := newTestClient(t, srv.URL)

	err := c.DeleteEvent(context.Background(), 9)
	var statusErr *HTTPStatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusInternalServerError, statusErr.Code)
	assert.Empty(t, rec.Notices())
}

func TestEnhanceDescriptionPostsJSON(t *testing.T) {
	srv := newFakeServer(t)
	c, _ := newTestClient(t, srv.URL)

	desc, err := c.EnhanceDescription(context.Background(), "Team Sync", "HQ")
	require.NoError(t, err)
	assert.Equal(t, "Event: Team Sync at HQ", desc)
	assert.JSONEq(t, `{"title":"Team Sync","location":"HQ"}`, srv.lastEnhance.Load().(string))
}

func TestSaveEventPostsForm(t *testing.T) {
	srv := newFakeServer(t)
	c, _ := newTestClient(t, srv.URL)

	fields := url.Values{"title": {"Team Sync"}, "status": {"upcoming"}}
	require.NoError(t, c.SaveEvent(context.Background(), 0, fields))
	assert.Equal(t, fields.Encode(), srv.lastForm.Load())
}

func TestNewRejectsRelativeBaseURL(t *testing.T) {
	_, err := New(Options{BaseURL: "/relative"})
	assert.Error(t, err)
}

func TestSearchPageURL(t *testing.T) {
	c, _ := newTestClient(t, "http://localhost:5000/")
	assert.Equal(t, "http://localhost:5000/search?q=team%20sync", c.SearchPageURL("team sync"))
}
