// Package memory provides an in-process attendance ledger for local development
// and tests. State is lost on restart.
package memory

import (
	"context"
	"sort"
	"sync"

	"eventrsvp/internal/domain"
)

type recordKey struct {
	eventID string
	email   string
}

type counterKey struct {
	eventID  string
	response domain.Response
}

type attendanceLedger struct {
	mu       sync.RWMutex
	records  map[recordKey]domain.AttendanceRecord
	byEvent  map[string][]recordKey
	counters map[counterKey]int64
}

// NewAttendanceLedger returns an empty in-memory domain.AttendanceLedger.
func NewAttendanceLedger() domain.AttendanceLedger {
	return &attendanceLedger{
		records:  make(map[recordKey]domain.AttendanceRecord),
		byEvent:  make(map[string][]recordKey),
		counters: make(map[counterKey]int64),
	}
}

func (l *attendanceLedger) Record(ctx context.Context, rec *domain.AttendanceRecord) (domain.RecordResult, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	key := recordKey{eventID: rec.EventID, email: rec.Email}

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.records[key]; ok {
		return domain.AlreadyExists, nil
	}
	l.records[key] = *rec
	l.byEvent[rec.EventID] = append(l.byEvent[rec.EventID], key)
	l.counters[counterKey{eventID: rec.EventID, response: rec.Response}]++
	return domain.Inserted, nil
}

func (l *attendanceLedger) GetCounters(ctx context.Context, eventID string) (domain.ResponseCounts, error) {
	if err := ctx.Err(); err != nil {
		return domain.ResponseCounts{}, err
	}
	l.mu.RLock()
	defer l.mu.RUnlock()

	var counts domain.ResponseCounts
	for _, r := range domain.CountedResponses {
		counts.Set(r, l.counters[counterKey{eventID: eventID, response: r}])
	}
	return counts, nil
}

func (l *attendanceLedger) ListAttendees(ctx context.Context, eventID string, filter domain.AttendeeFilter) ([]*domain.AttendanceRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l.mu.RLock()
	out := make([]*domain.AttendanceRecord, 0, len(l.byEvent[eventID]))
	for _, key := range l.byEvent[eventID] {
		rec := l.records[key]
		if filter.Matches(&rec) {
			out = append(out, &rec)
		}
	}
	l.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SubmittedAt.Before(out[j].SubmittedAt)
	})
	return out, nil
}

func (l *attendanceLedger) Ping(context.Context) error { return nil }

func (l *attendanceLedger) Close() error { return nil }
