package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"eventrsvp/internal/domain"
)

type attendanceLedger struct {
	DB *sql.DB
}

// NewAttendanceLedger returns a domain.AttendanceLedger backed by Postgres. The
// (event_id, email) primary key carries the uniqueness guarantee; the record
// insert and the counter upsert share one transaction.
func NewAttendanceLedger(db *sql.DB) domain.AttendanceLedger {
	return &attendanceLedger{DB: db}
}

func (r *attendanceLedger) Record(ctx context.Context, rec *domain.AttendanceRecord) (domain.RecordResult, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	insertQuery := `
		INSERT INTO attendance_records (event_id, email, full_name, response, submitted_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (event_id, email) DO NOTHING
		RETURNING 1
	`
	var one int
	err = tx.QueryRowContext(ctx, insertQuery, rec.EventID, rec.Email, rec.FullName, string(rec.Response), rec.SubmittedAt).
		Scan(&one)
	if err != nil {
		// Conflict returns no row; a unique violation can still surface from a concurrent insert.
		if errors.Is(err, sql.ErrNoRows) || isUniqueViolation(err) {
			return domain.AlreadyExists, nil
		}
		return 0, fmt.Errorf("insert attendance record: %w", err)
	}

	counterQuery := `
		INSERT INTO response_counters (event_id, response, count)
		VALUES ($1, $2, 1)
		ON CONFLICT (event_id, response) DO UPDATE SET count = response_counters.count + 1
		RETURNING count
	`
	var count int64
	if err := tx.QueryRowContext(ctx, counterQuery, rec.EventID, string(rec.Response)).Scan(&count); err != nil {
		return 0, fmt.Errorf("increment response counter: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit transaction: %w", err)
	}
	return domain.Inserted, nil
}

func (r *attendanceLedger) GetCounters(ctx context.Context, eventID string) (domain.ResponseCounts, error) {
	query := `
		SELECT response, count
		FROM response_counters
		WHERE event_id = $1 AND response = ANY($2)
	`
	responses := make([]string, len(domain.CountedResponses))
	for i, resp := range domain.CountedResponses {
		responses[i] = string(resp)
	}

	var counts domain.ResponseCounts
	rows, err := r.DB.QueryContext(ctx, query, eventID, pq.Array(responses))
	if err != nil {
		return counts, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp string
		var count int64
		if err := rows.Scan(&resp, &count); err != nil {
			return domain.ResponseCounts{}, err
		}
		counts.Set(domain.Response(resp), count)
	}
	if err := rows.Err(); err != nil {
		return domain.ResponseCounts{}, err
	}
	return counts, nil
}

func (r *attendanceLedger) ListAttendees(ctx context.Context, eventID string, filter domain.AttendeeFilter) ([]*domain.AttendanceRecord, error) {
	query := `
		SELECT event_id, email, full_name, response, submitted_at
		FROM attendance_records
		WHERE event_id = $1 AND ($2 = '' OR response = $2)
		ORDER BY submitted_at ASC, email ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID, string(filter.Response))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]*domain.AttendanceRecord, 0)
	for rows.Next() {
		rec := &domain.AttendanceRecord{}
		var resp string
		if err := rows.Scan(&rec.EventID, &rec.Email, &rec.FullName, &resp, &rec.SubmittedAt); err != nil {
			return nil, err
		}
		rec.Response = domain.Response(resp)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *attendanceLedger) Ping(ctx context.Context) error {
	return r.DB.PingContext(ctx)
}

func (r *attendanceLedger) Close() error {
	return r.DB.Close()
}
