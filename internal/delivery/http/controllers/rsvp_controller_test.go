package controllers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventrsvp/internal/delivery/http/helpers"
	"eventrsvp/internal/domain"
)

func TestRSVPController_CreateRSVP(t *testing.T) {
	validBody := `{"event_id":"E1","full_name":"Alice","email":"a@x.com","response":"Yes"}`

	tests := []struct {
		name            string
		body            string
		svc             *mockRSVPService
		wantStatus      int
		wantCode        string
		wantStatusField domain.RSVPOutcome
	}{
		{
			name:            "recorded",
			body:            validBody,
			svc:             &mockRSVPService{outcome: domain.OutcomeRecorded},
			wantStatus:      http.StatusOK,
			wantStatusField: domain.OutcomeRecorded,
		},
		{
			name:       "duplicate rejected",
			body:       validBody,
			svc:        &mockRSVPService{outcome: domain.OutcomeDuplicateRejected},
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeDuplicateRSVP,
		},
		{
			name:       "missing email",
			body:       `{"event_id":"E1","full_name":"Alice","response":"Yes"}`,
			svc:        &mockRSVPService{},
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
		{
			name:       "malformed json",
			body:       `{"event_id":`,
			svc:        &mockRSVPService{},
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
		{
			name:       "storage unavailable",
			body:       validBody,
			svc:        &mockRSVPService{err: fmt.Errorf("record rsvp: %w", domain.ErrStorageUnavailable)},
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   helpers.ErrCodeServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewRSVPController(testLogger(), tt.svc)
			req := httptest.NewRequest(http.MethodPost, "/rsvp", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			ctrl.CreateRSVP(w, req)

			require.Equal(t, tt.wantStatus, w.Code)
			if tt.wantCode != "" {
				env := decodeEnvelope(t, w, nil)
				require.NotNil(t, env.Error)
				assert.Equal(t, tt.wantCode, env.Error.Code)
				return
			}
			var resp CreateRSVPResponse
			env := decodeEnvelope(t, w, &resp)
			assert.Nil(t, env.Error)
			assert.Equal(t, tt.wantStatusField, resp.Status)
			assert.Equal(t, []string{"E1", "Alice", "a@x.com", "Yes"}, tt.svc.got)
		})
	}
}
