package mcp

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/FranksOps/jobscout/internal/pipeline"
)

func TestHandler_MethodNotAllowed(t *testing.T) {
	s := newTestServer(&fakeRunner{})

	req := httptest.NewRequest(http.MethodGet, "/mcp", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", rec.Code)
	}
	if rec.Header().Get("Allow") != http.MethodPost {
		t.Errorf("expected Allow: POST header, got %q", rec.Header().Get("Allow"))
	}
}

func TestHandler_MalformedJSON(t *testing.T) {
	s := newTestServer(&fakeRunner{})

	req := httptest.NewRequest(http.MethodPost, "/mcp", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "-32700") {
		t.Errorf("expected parse error code in body, got %s", rec.Body.String())
	}
}

func TestHandler_Notification(t *testing.T) {
	s := newTestServer(&fakeRunner{})

	body := `{"jsonrpc":"2.0","method":"notifications/initialized"}`
	req := httptest.NewRequest(http.MethodPost, "/mcp", strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Errorf("expected 202 for notification, got %d", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("expected empty body for notification, got %s", rec.Body.String())
	}
}

func TestHandler_RoundTrip(t *testing.T) {
	runner := &fakeRunner{outcome: &pipeline.Outcome{
		Kind:  pipeline.KindLinkList,
		Goal:  "find jobs",
		Links: []string{"https://a"},
	}}
	s := newTestServer(runner)

	body := `{"jsonrpc":"2.0","id":7,"method":"tools/call","params":{"name":"job_finder","arguments":{"user_goal":"find jobs"}}}`
	req := httptest.NewRequest(http.MethodPost, "/mcp", strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected JSON content type, got %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "Search Results for") {
		t.Errorf("expected rendered link list in response, got %s", rec.Body.String())
	}
}
