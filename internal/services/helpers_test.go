package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"eventrsvp/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

// failingLedger implements domain.AttendanceLedger and fails every call.
type failingLedger struct {
	err error
}

func (f *failingLedger) Record(context.Context, *domain.AttendanceRecord) (domain.RecordResult, error) {
	return 0, f.err
}

func (f *failingLedger) GetCounters(context.Context, string) (domain.ResponseCounts, error) {
	return domain.ResponseCounts{}, f.err
}

func (f *failingLedger) ListAttendees(context.Context, string, domain.AttendeeFilter) ([]*domain.AttendanceRecord, error) {
	return nil, f.err
}

func (f *failingLedger) Ping(context.Context) error { return f.err }
func (f *failingLedger) Close() error               { return nil }

// fakeEmailService records confirmation requests.
type fakeEmailService struct {
	mu   sync.Mutex
	sent []*domain.RSVPConfirmationEmailData
	err  error
}

func (f *fakeEmailService) SendRSVPConfirmation(_ context.Context, data *domain.RSVPConfirmationEmailData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, data)
	return f.err
}

var errConnRefused = errors.New("dial tcp 127.0.0.1:5432: connect: connection refused")
