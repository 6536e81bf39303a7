package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventrsvp/internal/adapters/auth"
	"eventrsvp/internal/delivery/http/controllers"
	"eventrsvp/internal/delivery/http/helpers"
	"eventrsvp/internal/domain"
	"eventrsvp/internal/repository/memory"
	"eventrsvp/internal/services"
)

type stubEventService struct{}

func (stubEventService) CreateEvent(_ context.Context, _ string, in domain.CreateEventInput) (*domain.Event, error) {
	return &domain.Event{ID: "ev-1", Title: in.Title}, nil
}

func (stubEventService) GetEvent(context.Context, string) (*domain.Event, error) {
	return nil, domain.ErrNotFound
}

func (stubEventService) ListEvents(context.Context) ([]*domain.Event, error) {
	return []*domain.Event{}, nil
}

func newTestServer(t *testing.T) (*httptest.Server, *auth.JWT) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
	ledger := memory.NewAttendanceLedger()
	jwt := auth.NewJWT("router-test-secret")

	handler := NewRouter(RouterDeps{
		Logger:         logger,
		Gate:           services.NewAdmissionGate(jwt),
		AllowedOrigins: []string{"https://rsvp.example.com"},
		RSVP:           controllers.NewRSVPController(logger, services.NewRSVPService(ledger, nil, logger)),
		Stats:          controllers.NewStatsController(logger, services.NewStatsService(ledger, logger)),
		Events:         controllers.NewEventController(logger, stubEventService{}),
		Auth:           controllers.NewAuthController(logger, nil),
		Health:         controllers.NewHealthController(logger, ledger),
	})
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv, jwt
}

func do(t *testing.T, method, url, token string, body any) (int, helpers.APIResponse) {
	t.Helper()
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, url, rdr)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	var env helpers.APIResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func TestRouter_RSVPFlow(t *testing.T) {
	srv, jwt := newTestServer(t)
	admin, err := jwt.Issue("admin-1", "admin@x.com", []string{domain.RoleAdmin}, time.Hour)
	require.NoError(t, err)
	attendee, err := jwt.Issue("u-2", "bob@x.com", []string{domain.RoleAttendee}, time.Hour)
	require.NoError(t, err)

	alice := map[string]string{"event_id": "E1", "full_name": "Alice", "email": "a@x.com", "response": "Yes"}

	status, env := do(t, http.MethodPost, srv.URL+"/rsvp", "", alice)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, map[string]any{"status": "Recorded"}, env.Data)

	status, env = do(t, http.MethodPost, srv.URL+"/rsvp", "", alice)
	require.Equal(t, http.StatusBadRequest, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, helpers.ErrCodeDuplicateRSVP, env.Error.Code)

	status, _ = do(t, http.MethodPost, srv.URL+"/rsvp", "", map[string]string{
		"event_id": "E1", "full_name": "Bob", "email": "b@x.com", "response": "No",
	})
	require.Equal(t, http.StatusOK, status)

	status, env = do(t, http.MethodGet, srv.URL+"/stats/E1", admin, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, map[string]any{"Yes": float64(1), "No": float64(1)}, env.Data)

	status, env = do(t, http.MethodGet, srv.URL+"/attendees/E1?response=Yes", admin, nil)
	require.Equal(t, http.StatusOK, status)
	list, ok := env.Data.([]any)
	require.True(t, ok)
	require.Len(t, list, 1)
	assert.Equal(t, "Alice", list[0].(map[string]any)["full_name"])

	status, env = do(t, http.MethodGet, srv.URL+"/stats/E1", "", nil)
	require.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, helpers.ErrCodeUnauthorized, env.Error.Code)

	status, env = do(t, http.MethodGet, srv.URL+"/stats/E1", "not-a-jwt", nil)
	require.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, helpers.ErrCodeUnauthorized, env.Error.Code)

	status, env = do(t, http.MethodGet, srv.URL+"/attendees/E1", attendee, nil)
	require.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, helpers.ErrCodeForbidden, env.Error.Code)
}

func TestRouter_EventsAndOperations(t *testing.T) {
	srv, jwt := newTestServer(t)
	attendee, err := jwt.Issue("u-2", "bob@x.com", []string{domain.RoleAttendee}, time.Hour)
	require.NoError(t, err)

	body := map[string]string{"title": "Launch", "venue": "Hall A", "start_at": "2026-11-01T18:00:00Z"}
	status, _ := do(t, http.MethodPost, srv.URL+"/events", attendee, body)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = do(t, http.MethodGet, srv.URL+"/events", "", nil)
	assert.Equal(t, http.StatusOK, status)

	status, _ = do(t, http.MethodGet, srv.URL+"/event/missing", "", nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = do(t, http.MethodGet, srv.URL+"/readyz", "", nil)
	assert.Equal(t, http.StatusOK, status)

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouter_Preflight(t *testing.T) {
	srv, _ := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/rsvp", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://rsvp.example.com")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "https://rsvp.example.com", resp.Header.Get("Access-Control-Allow-Origin"))
}
