package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"eventrsvp/internal/domain"
	"eventrsvp/internal/metrics"
)

type statsService struct {
	ledger domain.AttendanceLedger
	logger *slog.Logger
}

// NewStatsService creates the read side over the attendance ledger.
func NewStatsService(ledger domain.AttendanceLedger, logger *slog.Logger) domain.StatsService {
	return &statsService{ledger: ledger, logger: logger}
}

func (s *statsService) GetCounts(ctx context.Context, eventID string) (domain.ResponseCounts, error) {
	start := time.Now()
	counts, err := s.ledger.GetCounters(ctx, eventID)
	metrics.LedgerOperationDuration.WithLabelValues("get_counters").Observe(time.Since(start).Seconds())
	if err != nil {
		s.logger.ErrorContext(ctx, "get counters failed", "event_id", eventID, "err", err)
		return domain.ResponseCounts{}, fmt.Errorf("get counts: %w", domain.ErrStorageUnavailable)
	}
	return counts, nil
}

func (s *statsService) ListAttendees(ctx context.Context, eventID string, filter domain.AttendeeFilter) ([]*domain.AttendanceRecord, error) {
	start := time.Now()
	records, err := s.ledger.ListAttendees(ctx, eventID, filter)
	metrics.LedgerOperationDuration.WithLabelValues("list_attendees").Observe(time.Since(start).Seconds())
	if err != nil {
		s.logger.ErrorContext(ctx, "list attendees failed", "event_id", eventID, "err", err)
		return nil, fmt.Errorf("list attendees: %w", domain.ErrStorageUnavailable)
	}
	if records == nil {
		records = []*domain.AttendanceRecord{}
	}
	return records, nil
}
