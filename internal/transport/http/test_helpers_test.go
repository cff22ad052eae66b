package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/vovakirdan/presencechat/internal/config"
	"github.com/vovakirdan/presencechat/internal/core"
	"github.com/vovakirdan/presencechat/internal/service/messages"
	"github.com/vovakirdan/presencechat/internal/service/presence"
	"github.com/vovakirdan/presencechat/internal/store/sqlite"
)

// testServer bundles a router over an in-memory store with a manual clock.
type testServer struct {
	handler http.Handler
	clock   *core.ManualClock
	reaper  *presence.Reaper
}

// newTestServer creates a full stack over an in-memory SQLite store.
func newTestServer(t *testing.T) *testServer {
	t.Helper()

	st, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	logger := zerolog.Nop()
	clock := core.NewManualClock(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))

	chatLog := messages.NewLog(st, presence.NewDirectory(st), clock, &logger)
	registry := presence.NewRegistry(st, chatLog, clock, &logger)
	reaper := presence.NewReaper(registry, chatLog, presence.ReaperConfig{
		Interval: 15 * time.Second,
		Timeout:  10 * time.Second,
	}, &logger)

	cfg := config.Default()
	return &testServer{
		handler: NewRouter(registry, chatLog, &cfg, &logger),
		clock:   clock,
		reaper:  reaper,
	}
}

// do performs a request against the router. user is sent in the From header when non-empty.
func (s *testServer) do(t *testing.T, method, path, user string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var headers map[string]string
	if user != "" {
		headers = map[string]string{"From": user}
	}
	return s.doWithHeaders(t, method, path, headers, body)
}

// doWithHeaders performs a request carrying the given headers.
func (s *testServer) doWithHeaders(t *testing.T, method, path string, headers map[string]string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp := httptest.NewRecorder()
	s.handler.ServeHTTP(resp, req)
	return resp
}

// join registers name and fails the test unless it answers 201.
func (s *testServer) join(t *testing.T, name string) {
	t.Helper()
	resp := s.do(t, http.MethodPost, "/participants", "", map[string]string{"name": name})
	if resp.Code != http.StatusCreated {
		t.Fatalf("join %q: expected status 201, got %d: %s", name, resp.Code, resp.Body.String())
	}
}

// sweep runs one reaper cycle.
func (s *testServer) sweep(t *testing.T) {
	t.Helper()
	if _, err := s.reaper.Sweep(context.Background()); err != nil {
		t.Fatalf("sweep: %v", err)
	}
}

func decode[T any](t *testing.T, resp *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(resp.Body.Bytes(), &v); err != nil {
		t.Fatalf("failed to unmarshal response %q: %v", resp.Body.String(), err)
	}
	return v
}
