package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/starroute/pkg/catalog"
	"github.com/matzehuels/starroute/pkg/errors"
	"github.com/matzehuels/starroute/pkg/observability"
	"github.com/matzehuels/starroute/pkg/route"
)

const routeBody = `{
  "config": {
    "times": {"DDD1": [40, 50], "DDD2": [30], "BOB1": [10], "WF1": [15], "CCM1": [25]},
    "prerequisites": {"DDD2": ["DDD1"]}
  },
  "options": {"stars": 3}
}`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("catalog.Default() error = %v", err)
	}
	logger := log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
	s := New(route.NewRunner(nil, nil, logger), cat, WithLogger(logger))
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s error = %v", url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeError(t *testing.T, resp *http.Response) errorResponse {
	t.Helper()
	var e errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&e); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return e
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" || body["version"] == "" {
		t.Errorf("body = %v", body)
	}
}

func TestCatalog(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/v1/catalog")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var cat catalog.Catalog
	if err := json.NewDecoder(resp.Body).Decode(&cat); err != nil {
		t.Fatal(err)
	}
	if _, ok := cat.Star(catalog.RootStar); !ok {
		t.Errorf("catalog has no %s", catalog.RootStar)
	}
}

func TestRoutes(t *testing.T) {
	ts := newTestServer(t)
	resp := post(t, ts.URL+"/v1/routes", routeBody)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var rt route.Route
	if err := json.NewDecoder(resp.Body).Decode(&rt); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"BOB1", "DDD1", "WF1"}, rt.IDs()); diff != "" {
		t.Errorf("route mismatch (-want +got):\n%s", diff)
	}
	if rt.Time != 70 {
		t.Errorf("time = %v, want 70", rt.Time)
	}
}

func TestRoutesErrors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		code   errors.Code
	}{
		{"malformed json", `{"config":`, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"unknown field", `{"cfg": {}}`, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"no config", `{"options": {"stars": 3}}`, http.StatusBadRequest, errors.ErrCodeInvalidConfig},
		{"unknown star", `{"config": {"times": {"XYZ1": [1]}}}`, http.StatusBadRequest, errors.ErrCodeInvalidConfig},
		{
			"excluded course",
			`{"config": {"times": {"DDD1": [1]}}, "options": {"exclude_course_ids": ["DDD"]}}`,
			http.StatusBadRequest, errors.ErrCodeInvalidExcluded,
		},
		{
			"too few stars",
			`{"config": {"times": {"DDD1": [1], "BOB1": [1]}}, "options": {"stars": 3}}`,
			http.StatusUnprocessableEntity, errors.ErrCodeNoValidRoute,
		},
	}

	ts := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, ts.URL+"/v1/routes", tt.body)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			if e := decodeError(t, resp); e.Code != tt.code {
				t.Errorf("code = %s, want %s (%s)", e.Code, tt.code, e.Message)
			}
		})
	}
}

func TestGraphDOT(t *testing.T) {
	ts := newTestServer(t)
	body := `{"config": {"times": {"DDD1": [1]}, "prerequisites": {"DDD2": ["DDD1"]}}, "selected": ["DDD1"]}`
	resp := post(t, ts.URL+"/v1/graph?format=dot", body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	data, _ := io.ReadAll(resp.Body)
	if !bytes.Contains(data, []byte(`"DDD1" -> "DDD2";`)) {
		t.Errorf("unexpected DOT:\n%s", data)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/vnd.graphviz") {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestGraphBadFormat(t *testing.T) {
	ts := newTestServer(t)
	resp := post(t, ts.URL+"/v1/graph?format=png", `{"config": {"times": {"DDD1": [1]}}}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/v1/routes")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", resp.StatusCode)
	}
}

type recordingHooks struct {
	observability.NoopHTTPHooks
	mu       sync.Mutex
	statuses []int
}

func (h *recordingHooks) OnResponse(_ context.Context, _, _ string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.statuses = append(h.statuses, status)
}

func TestHTTPHooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetHTTPHooks(hooks)
	t.Cleanup(observability.Reset)

	ts := newTestServer(t)
	post(t, ts.URL+"/v1/routes", `{"config":`)
	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	if diff := cmp.Diff([]int{http.StatusBadRequest, http.StatusOK}, hooks.statuses); diff != "" {
		t.Errorf("statuses mismatch (-want +got):\n%s", diff)
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{errors.New(errors.ErrCodeInvalidCatalog, "x"), http.StatusBadRequest},
		{errors.New(errors.ErrCodeConfigNotFound, "x"), http.StatusNotFound},
		{errors.New(errors.ErrCodeNoValidRoute, "x"), http.StatusUnprocessableEntity},
		{errors.New(errors.ErrCodeInternal, "x"), http.StatusInternalServerError},
		{context.DeadlineExceeded, http.StatusGatewayTimeout},
		{context.Canceled, http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		if got := statusFor(tt.err); got != tt.want {
			t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestListenAndServeShutdown(t *testing.T) {
	cat, err := catalog.Default()
	if err != nil {
		t.Fatal(err)
	}
	s := New(route.NewRunner(nil, nil, nil), cat,
		WithLogger(log.NewWithOptions(io.Discard, log.Options{})))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx, "127.0.0.1:0") }()

	deadline := time.Now().Add(2 * time.Second)
	for s.Addr() == "" && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if s.Addr() == "" {
		t.Fatal("server did not start")
	}
	resp, err := http.Get("http://" + s.Addr() + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("ListenAndServe() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
