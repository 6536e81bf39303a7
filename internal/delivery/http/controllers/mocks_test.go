package controllers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"eventrsvp/internal/delivery/http/helpers"
	"eventrsvp/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

// decodeEnvelope decodes the response envelope and re-decodes data into dest when non-nil.
func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder, dest any) helpers.APIResponse {
	t.Helper()
	var raw struct {
		Data  json.RawMessage   `json:"data"`
		Error *helpers.APIError `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	if dest != nil {
		require.NoError(t, json.Unmarshal(raw.Data, dest))
	}
	return helpers.APIResponse{Data: raw.Data, Error: raw.Error}
}

type mockRSVPService struct {
	outcome domain.RSVPOutcome
	err     error
	got     []string
}

func (m *mockRSVPService) RecordRSVP(_ context.Context, eventID, fullName, email string, response domain.Response) (domain.RSVPOutcome, error) {
	m.got = []string{eventID, fullName, email, string(response)}
	return m.outcome, m.err
}

type mockStatsService struct {
	counts    domain.ResponseCounts
	records   []*domain.AttendanceRecord
	err       error
	gotFilter domain.AttendeeFilter
}

func (m *mockStatsService) GetCounts(context.Context, string) (domain.ResponseCounts, error) {
	return m.counts, m.err
}

func (m *mockStatsService) ListAttendees(_ context.Context, _ string, filter domain.AttendeeFilter) ([]*domain.AttendanceRecord, error) {
	m.gotFilter = filter
	return m.records, m.err
}

type mockEventService struct {
	events       map[string]*domain.Event
	created      *domain.CreateEventInput
	gotCreatedBy string
	err          error
}

func (m *mockEventService) CreateEvent(_ context.Context, createdBy string, in domain.CreateEventInput) (*domain.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.created = &in
	m.gotCreatedBy = createdBy
	return &domain.Event{ID: "ev-1", Title: in.Title}, nil
}

func (m *mockEventService) GetEvent(_ context.Context, id string) (*domain.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	ev, ok := m.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return ev, nil
}

func (m *mockEventService) ListEvents(context.Context) ([]*domain.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := []*domain.Event{}
	for _, ev := range m.events {
		out = append(out, ev)
	}
	return out, nil
}

type mockAuthService struct {
	user   *domain.User
	result *domain.LoginResult
	err    error
}

func (m *mockAuthService) Register(context.Context, string, string, string) (*domain.User, error) {
	return m.user, m.err
}

func (m *mockAuthService) Login(context.Context, string, string) (*domain.LoginResult, error) {
	return m.result, m.err
}
