package ui

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/atomicstack/evsched/internal/api"
	"github.com/atomicstack/evsched/internal/notify"
	"github.com/atomicstack/evsched/internal/testutil"
)

var fixedNow = time.Date(2024, 3, 4, 9, 41, 0, 0, time.Local)

// fakeServer is an in-memory event scheduler backend.
type fakeServer struct {
	*httptest.Server
	mu       sync.Mutex
	searches []string
	deletes  []string
	saves    []string
	enhances []string
}

func newFakeServer(t *testing.T) *fakeServer {
	t.Helper()
	fs := &fakeServer{}
	r := chi.NewRouter()
	r.Get("/search/api/quick-search", func(w http.ResponseWriter, req *http.Request) {
		fs.record(&fs.searches, req.URL.RawQuery)
		q := req.URL.Query().Get("q")
		switch {
		case q == "fail":
			http.Error(w, "boom", http.StatusInternalServerError)
		case strings.HasPrefix(q, "team"):
			writeJSON(w, map[string]interface{}{
				"success": true,
				"results": []map[string]interface{}{
					{"id": 7, "title": "Team Sync", "date": "2024-01-01T10:00:00Z", "status": "upcoming"},
				},
			})
		default:
			writeJSON(w, map[string]interface{}{"success": true, "results": []interface{}{}})
		}
	})
	r.Get("/events/api/{id}", func(w http.ResponseWriter, req *http.Request) {
		switch chi.URLParam(req, "id") {
		case "7":
			writeJSON(w, map[string]interface{}{"success": true, "event": map[string]interface{}{
				"id": 7, "title": "Team Sync", "date": "2024-01-01T10:00:00", "status": "upcoming",
				"location": "HQ", "description": "Weekly sync.",
				"created_at": "2023-12-01T08:00:00", "updated_at": "2023-12-02T08:00:00",
			}})
		case "9":
			writeJSON(w, map[string]interface{}{"success": true, "event": map[string]interface{}{
				"id": 9, "title": "Locked Event", "date": "2024-02-01T10:00:00", "status": "declined",
			}})
		default:
			w.WriteHeader(http.StatusNotFound)
			writeJSON(w, map[string]interface{}{"success": false, "error": "Event not found"})
		}
	})
	r.Post("/events/delete/{id}", func(w http.ResponseWriter, req *http.Request) {
		id := chi.URLParam(req, "id")
		fs.record(&fs.deletes, id)
		if id == "9" {
			http.Error(w, "locked", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	r.Post("/events/api/enhance-description", func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			Title    string `json:"title"`
			Location string `json:"location"`
		}
		raw, _ := io.ReadAll(req.Body)
		fs.record(&fs.enhances, string(raw))
		_ = json.Unmarshal(raw, &body)
		if body.Title == "broken" {
			http.Error(w, "ai down", http.StatusBadGateway)
			return
		}
		writeJSON(w, map[string]interface{}{"success": true, "description": "Event: " + body.Title + " at " + body.Location})
	})
	save := func(w http.ResponseWriter, req *http.Request) {
		_ = req.ParseForm()
		fs.record(&fs.saves, req.URL.Path+"?"+req.PostForm.Encode())
		w.WriteHeader(http.StatusOK)
	}
	r.Post("/events/add", save)
	r.Post("/events/edit/{id}", save)
	fs.Server = httptest.NewServer(r)
	t.Cleanup(fs.Close)
	return fs
}

func (fs *fakeServer) record(list *[]string, value string) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	*list = append(*list, value)
}

func (fs *fakeServer) snapshot(list *[]string) []string {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return append([]string(nil), (*list)...)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

type console struct {
	*Harness
	srv    *fakeServer
	toasts *notify.Queue
	clock  *testutil.ManualScheduler
}

func newConsole(t *testing.T) *console {
	t.Helper()
	srv := newFakeServer(t)
	clock := testutil.NewManualScheduler()
	toasts := notify.New(notify.Options{Scheduler: clock})
	client, err := api.New(api.Options{BaseURL: srv.URL, Notifier: toasts})
	if err != nil {
		t.Fatalf("build client: %v", err)
	}
	model := NewModel(Deps{Client: client, Toasts: toasts}, Options{
		Width:  100,
		Height: 40,
		Now:    func() time.Time { return fixedNow },
	})
	t.Cleanup(model.Close)
	return &console{Harness: NewHarness(model), srv: srv, toasts: toasts, clock: clock}
}

func (c *console) messages() []string {
	entries := c.toasts.Entries()
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Message
	}
	return out
}

// searchTeam types "team" and lets the debounce elapse.
func (c *console) searchTeam(t *testing.T) {
	t.Helper()
	c.Type("team")
	c.Advance(300 * time.Millisecond)
	if !c.Model().suggestions.Visible() {
		t.Fatalf("expected suggestions after searching for team")
	}
}

func (c *console) openDetail(t *testing.T, id int) {
	t.Helper()
	c.run(c.Model().loadDetail(id))
	if c.Model().Mode() != ModeDetail || c.Model().detail == nil || c.Model().detail.ID != id {
		t.Fatalf("expected detail view for %d, mode=%v", id, c.Model().Mode())
	}
}
