package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"observerkit/internal/playground"
	"observerkit/pkg/types"
)

type mockService struct {
	sources    []types.SourceInfo
	events     []types.Delivery
	emitErr    error
	released   bool
	lastSource string
	lastArgs   []int
}

func (m *mockService) Sources() []types.SourceInfo { return m.sources }
func (m *mockService) Events() []types.Delivery    { return m.events }
func (m *mockService) Mouse(source string, x, y int) error {
	m.lastSource, m.lastArgs = source, []int{x, y}
	return m.emitErr
}
func (m *mockService) Key(source string, code int) error {
	m.lastSource, m.lastArgs = source, []int{code}
	return m.emitErr
}
func (m *mockService) Release(source string) (bool, error) { return m.released, m.emitErr }

type mockHTTPError struct {
	msg  string
	code int
}

func (e mockHTTPError) Error() string   { return e.msg }
func (e mockHTTPError) StatusCode() int { return e.code }

func postJSON(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	r := NewMux(&mockService{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if w.Code != http.StatusOK || w.Body.String() != "ok" {
		t.Fatalf("status=%d body=%q", w.Code, w.Body.String())
	}
	if w.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Fatalf("missing security header")
	}
}

func TestSourcesHandler(t *testing.T) {
	svc := &mockService{sources: []types.SourceInfo{{Name: "a", Strategy: "raw"}, {Name: "b", Strategy: "weak"}}}
	r := NewMux(svc)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sources", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "application/json") {
		t.Fatalf("content-type=%s", ct)
	}
	var body types.SourcesResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("json: %v", err)
	}
	if len(body.Sources) != 2 || body.Sources[1].Strategy != "weak" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestMouseHandler_ForwardsArguments(t *testing.T) {
	svc := &mockService{}
	w := postJSON(t, NewMux(svc), "/sources/pad/mouse", `{"x":25,"y":48}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if svc.lastSource != "pad" || len(svc.lastArgs) != 2 || svc.lastArgs[0] != 25 || svc.lastArgs[1] != 48 {
		t.Fatalf("forwarded %s %v", svc.lastSource, svc.lastArgs)
	}
	var body types.EmitResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil || body.Event != "mouse" {
		t.Fatalf("body=%s err=%v", w.Body.String(), err)
	}
}

func TestEmitHandlers_RequestValidation(t *testing.T) {
	r := NewMux(&mockService{})

	req := httptest.NewRequest(http.MethodPost, "/sources/pad/key", strings.NewReader(`{"code":1}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("missing content type: status=%d", w.Code)
	}

	w = postJSON(t, r, "/sources/pad/key", `{"code":`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad json: status=%d", w.Code)
	}
	var e types.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &e); err != nil || e.Code != http.StatusBadRequest {
		t.Fatalf("error body=%s", w.Body.String())
	}
}

func TestEmitHandlers_BodyLimit(t *testing.T) {
	Configure(Options{MaxBodyBytes: 8})
	defer Configure(Options{})
	w := postJSON(t, NewMux(&mockService{}), "/sources/pad/mouse", `{"x":1234567,"y":1234567}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestEmitHandlers_ErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{mockHTTPError{msg: "teapot", code: http.StatusTeapot}, http.StatusTeapot},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		w := postJSON(t, NewMux(&mockService{emitErr: c.err}), "/sources/pad/key", `{"code":1}`)
		if w.Code != c.want {
			t.Fatalf("%v: status=%d want %d", c.err, w.Code, c.want)
		}
	}
}

func TestEmitHandlers_RefuseDuringShutdown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	SetBaseContext(ctx)
	defer SetBaseContext(nil)
	cancel()
	w := postJSON(t, NewMux(&mockService{}), "/sources/pad/mouse", `{"x":1,"y":1}`)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestPlayground_EndToEnd(t *testing.T) {
	board, err := playground.New(playground.Options{Registry: prometheus.NewRegistry()})
	if err != nil {
		t.Fatalf("board: %v", err)
	}
	r := NewMux(board)

	if w := postJSON(t, r, "/sources/mouse-and-keyboard/mouse", `{"x":25,"y":48}`); w.Code != http.StatusOK {
		t.Fatalf("mouse status=%d", w.Code)
	}
	if w := postJSON(t, r, "/sources/mouse-and-keyboard/key", `{"code":65}`); w.Code != http.StatusOK {
		t.Fatalf("key status=%d", w.Code)
	}
	if w := postJSON(t, r, "/sources/mouse-only/key", `{"code":65}`); w.Code != http.StatusNotFound {
		t.Fatalf("unsupported key status=%d", w.Code)
	}
	if w := postJSON(t, r, "/sources/nope/mouse", `{"x":1,"y":1}`); w.Code != http.StatusNotFound {
		t.Fatalf("unknown source status=%d", w.Code)
	}

	// weak source: delivered, released, then silent
	postJSON(t, r, "/sources/smart-mouse-only/mouse", `{"x":27,"y":163}`)
	w := postJSON(t, r, "/sources/smart-mouse-only/release", `{}`)
	var rel types.ReleaseResponse
	if err := json.Unmarshal(w.Body.Bytes(), &rel); err != nil || !rel.Released {
		t.Fatalf("release body=%s err=%v", w.Body.String(), err)
	}
	postJSON(t, r, "/sources/smart-mouse-only/mouse", `{"x":27,"y":163}`)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/events", nil))
	var evts types.EventsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &evts); err != nil {
		t.Fatalf("events json: %v", err)
	}
	if len(evts.Events) != 3 {
		t.Fatalf("events=%+v", evts.Events)
	}
	last := evts.Events[2]
	if last.Operation != "OnLeftMouseButton" || last.Args[0] != 27 || last.Args[1] != 163 {
		t.Fatalf("last event %+v", last)
	}
}

func TestMetricsEndpoint_ExposesPlaygroundCounters(t *testing.T) {
	r := NewMux(&mockService{})
	postJSON(t, r, "/sources/pad/mouse", `{"x":1,"y":1}`)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("/metrics status=%d", w.Code)
	}
	body := w.Body.Bytes()
	for _, name := range []string{"observerkit_http_requests_total", "observerkit_http_events_emitted_total"} {
		if !bytes.Contains(body, []byte(name)) {
			t.Fatalf("metric %s missing", name)
		}
	}
	if !bytes.Contains(body, []byte(`path="/sources/{name}/mouse"`)) {
		t.Fatalf("route pattern label missing")
	}
}

func TestCORS_OptIn(t *testing.T) {
	Configure(Options{CORS: true, CORSOrigins: []string{"https://example.com"}})
	defer Configure(Options{})
	r := NewMux(&mockService{})
	req := httptest.NewRequest(http.MethodGet, "/sources", nil)
	req.Header.Set("Origin", "https://example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://example.com" {
		t.Fatalf("allow-origin=%q", got)
	}
}

func TestConfigure_Defaults(t *testing.T) {
	defer Configure(Options{})
	Configure(Options{CORS: true})
	if current.MaxBodyBytes != 1<<20 {
		t.Fatalf("max body=%d", current.MaxBodyBytes)
	}
	if len(current.CORSOrigins) != 1 || current.CORSOrigins[0] != "*" {
		t.Fatalf("origins=%v", current.CORSOrigins)
	}
	Configure(Options{})
	if current.CORS || len(current.CORSOrigins) != 0 {
		t.Fatalf("cors should be off by default: %+v", current)
	}
}

func TestEventsRejected_CountedByReason(t *testing.T) {
	board, err := playground.New(playground.Options{Registry: prometheus.NewRegistry()})
	if err != nil {
		t.Fatalf("board: %v", err)
	}
	r := NewMux(board)
	unknown := eventsRejected.WithLabelValues("mouse", "unknown_source")
	unsupported := eventsRejected.WithLabelValues("key", "unsupported_event")
	badBody := eventsRejected.WithLabelValues("key", "bad_body")
	before := []float64{testutil.ToFloat64(unknown), testutil.ToFloat64(unsupported), testutil.ToFloat64(badBody)}

	postJSON(t, r, "/sources/nope/mouse", `{"x":1,"y":1}`)
	postJSON(t, r, "/sources/mouse-only/key", `{"code":1}`)
	postJSON(t, r, "/sources/mouse-only/key", `not json`)

	after := []float64{testutil.ToFloat64(unknown), testutil.ToFloat64(unsupported), testutil.ToFloat64(badBody)}
	for i := range before {
		if after[i]-before[i] != 1 {
			t.Fatalf("reason %d: before=%v after=%v", i, before, after)
		}
	}
}
