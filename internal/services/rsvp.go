package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"eventrsvp/internal/domain"
	"eventrsvp/internal/metrics"
)

const confirmationTimeout = 5 * time.Second

type rsvpService struct {
	ledger domain.AttendanceLedger
	email  domain.EmailService
	logger *slog.Logger
	now    func() time.Time
}

// NewRSVPService creates the RSVP recorder. email may be nil to disable
// confirmation messages.
func NewRSVPService(ledger domain.AttendanceLedger, email domain.EmailService, logger *slog.Logger) domain.RSVPService {
	return &rsvpService{
		ledger: ledger,
		email:  email,
		logger: logger,
		now:    time.Now,
	}
}

// RecordRSVP stores one decision per (eventID, email). The email is the
// uniqueness key and is used verbatim. The event is not looked up in the
// catalog. A repeated submission yields OutcomeDuplicateRejected with no side
// effects, so callers may retry an ambiguous failure safely.
func (s *rsvpService) RecordRSVP(ctx context.Context, eventID, fullName, email string, response domain.Response) (domain.RSVPOutcome, error) {
	if eventID == "" || fullName == "" || email == "" || response == "" {
		metrics.RSVPOutcomes.WithLabelValues(metrics.OutcomeInvalid).Inc()
		return "", fmt.Errorf("%w: event_id, full_name, email and response are required", domain.ErrInvalidInput)
	}

	rec := domain.NewAttendanceRecord(eventID, fullName, email, response, s.now().UTC())
	start := time.Now()
	result, err := s.ledger.Record(ctx, rec)
	metrics.LedgerOperationDuration.WithLabelValues("record").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.RSVPOutcomes.WithLabelValues(metrics.OutcomeStorageError).Inc()
		s.logger.ErrorContext(ctx, "record rsvp failed", "event_id", eventID, "err", err)
		return "", fmt.Errorf("record rsvp: %w", domain.ErrStorageUnavailable)
	}

	if result == domain.AlreadyExists {
		metrics.RSVPOutcomes.WithLabelValues(metrics.OutcomeDuplicate).Inc()
		s.logger.InfoContext(ctx, "duplicate rsvp rejected", "event_id", eventID)
		return domain.OutcomeDuplicateRejected, nil
	}

	metrics.RSVPOutcomes.WithLabelValues(metrics.OutcomeRecorded).Inc()
	s.logger.InfoContext(ctx, "rsvp recorded", "event_id", eventID, "response", string(response))
	s.sendConfirmation(ctx, rec)
	return domain.OutcomeRecorded, nil
}

// sendConfirmation is best effort; the RSVP is already committed.
func (s *rsvpService) sendConfirmation(ctx context.Context, rec *domain.AttendanceRecord) {
	if s.email == nil {
		return
	}
	mailCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), confirmationTimeout)
	defer cancel()
	err := s.email.SendRSVPConfirmation(mailCtx, &domain.RSVPConfirmationEmailData{
		Email:    rec.Email,
		FullName: rec.FullName,
		EventID:  rec.EventID,
		Response: string(rec.Response),
	})
	if err != nil {
		s.logger.WarnContext(ctx, "rsvp confirmation email failed", "event_id", rec.EventID, "err", err)
	}
}
