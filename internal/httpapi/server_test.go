package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/antoniostano/taskboard/internal/config"
	"github.com/antoniostano/taskboard/internal/observability"
	"github.com/antoniostano/taskboard/internal/tasks"
)

// promauto registers on the global registry; every test server gets its own
// namespace so repeated NewMetrics calls do not collide.
var testMetricsSeq atomic.Int64

func newTestServer(t *testing.T) (*httptest.Server, *tasks.MemoryStore) {
	t.Helper()
	cfg := config.Config{CORSOrigins: []string{"*"}}
	store := tasks.NewMemoryStore()
	metrics := observability.NewMetrics(fmt.Sprintf("test_httpapi_%d", testMetricsSeq.Add(1)))
	srv := New(cfg, store, metrics)
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts, store
}

func doRequest(t *testing.T, method, url string, payload any) (int, map[string]any) {
	t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s error = %v", method, url, err)
	}
	defer res.Body.Close()

	var decoded map[string]any
	if err := json.NewDecoder(res.Body).Decode(&decoded); err != nil {
		t.Fatalf("decode %s %s response: %v", method, url, err)
	}
	return res.StatusCode, decoded
}

func listTasks(t *testing.T, baseURL string) []map[string]any {
	t.Helper()
	res, err := http.Get(baseURL + "/api/tasks")
	if err != nil {
		t.Fatalf("GET /api/tasks error = %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("list status = %d, want %d", res.StatusCode, http.StatusOK)
	}
	var items []map[string]any
	if err := json.NewDecoder(res.Body).Decode(&items); err != nil {
		t.Fatalf("decode list response: %v", err)
	}
	return items
}

func TestHealthEndpoints(t *testing.T) {
	ts, _ := newTestServer(t)

	for _, path := range []string{"/health", "/api/health"} {
		status, body := doRequest(t, http.MethodGet, ts.URL+path, nil)
		if status != http.StatusOK {
			t.Fatalf("GET %s status = %d, want %d", path, status, http.StatusOK)
		}
		if body["status"] != "OK" {
			t.Fatalf("GET %s status field = %v, want %q", path, body["status"], "OK")
		}
		if body["message"] != "Server is running" {
			t.Fatalf("GET %s message = %v, want %q", path, body["message"], "Server is running")
		}
	}
}

func TestRouteNotFound(t *testing.T) {
	ts, _ := newTestServer(t)

	status, body := doRequest(t, http.MethodGet, ts.URL+"/api/nothing-here", nil)
	if status != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", status, http.StatusNotFound)
	}
	if body["message"] != "Route not found" {
		t.Fatalf("message = %v, want %q", body["message"], "Route not found")
	}
}

func TestRecovererMasksPanics(t *testing.T) {
	srv := New(config.Config{CORSOrigins: []string{"*"}}, tasks.NewMemoryStore(), nil)
	h := srv.recoverer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/tasks", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body["message"] != "Something went wrong!" {
		t.Fatalf("message = %v, want %q", body["message"], "Something went wrong!")
	}
}

func TestUIRoutes(t *testing.T) {
	ts, _ := newTestServer(t)

	client := &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	rootRes, err := client.Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("GET / error = %v", err)
	}
	defer rootRes.Body.Close()
	if rootRes.StatusCode != http.StatusTemporaryRedirect {
		t.Fatalf("GET / status = %d, want %d", rootRes.StatusCode, http.StatusTemporaryRedirect)
	}
	if got := rootRes.Header.Get("Location"); got != "/ui/" {
		t.Fatalf("GET / location = %q, want %q", got, "/ui/")
	}

	uiRes, err := http.Get(ts.URL + "/ui/")
	if err != nil {
		t.Fatalf("GET /ui/ error = %v", err)
	}
	defer uiRes.Body.Close()
	if uiRes.StatusCode != http.StatusOK {
		t.Fatalf("GET /ui/ status = %d, want %d", uiRes.StatusCode, http.StatusOK)
	}

	var body bytes.Buffer
	if _, err := body.ReadFrom(uiRes.Body); err != nil {
		t.Fatalf("reading /ui/ body failed: %v", err)
	}
	if !strings.Contains(body.String(), "id=\"task-form\"") {
		t.Fatalf("GET /ui/ body missing task form markup")
	}
}
