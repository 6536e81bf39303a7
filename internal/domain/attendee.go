package domain

import (
	"context"
	"time"
)

// Response is an attendant's answer to an event invitation. Only ResponseYes and
// ResponseNo are reported by the stats read path.
type Response string

const (
	ResponseYes Response = "Yes"
	ResponseNo  Response = "No"
)

// CountedResponses lists the response values reported by GetCounts.
var CountedResponses = []Response{ResponseYes, ResponseNo}

// AttendanceRecord is one attendant's single decision for one event.
// swagger:model AttendanceRecord
type AttendanceRecord struct {
	EventID     string    `json:"event_id"`
	Email       string    `json:"email"`
	FullName    string    `json:"full_name"`
	Response    Response  `json:"response"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// NewAttendanceRecord returns a record stamped with submittedAt. Email is kept verbatim.
func NewAttendanceRecord(eventID, fullName, email string, response Response, submittedAt time.Time) *AttendanceRecord {
	return &AttendanceRecord{
		EventID:     eventID,
		Email:       email,
		FullName:    fullName,
		Response:    response,
		SubmittedAt: submittedAt,
	}
}

// ResponseCounts holds the aggregate counters for one event.
// swagger:model ResponseCounts
type ResponseCounts struct {
	Yes int64 `json:"Yes"`
	No  int64 `json:"No"`
}

// Set assigns count to the field matching r. Unrecognized responses are ignored.
func (c *ResponseCounts) Set(r Response, count int64) {
	switch r {
	case ResponseYes:
		c.Yes = count
	case ResponseNo:
		c.No = count
	}
}

// RecordResult reports what the ledger did with a record.
type RecordResult int

const (
	// Inserted means the record was new and its counter was incremented in the same unit.
	Inserted RecordResult = iota + 1
	// AlreadyExists means a record for (event, identity) was present; nothing was written.
	AlreadyExists
)

// RSVPOutcome is the result of RecordRSVP.
type RSVPOutcome string

const (
	OutcomeRecorded          RSVPOutcome = "Recorded"
	OutcomeDuplicateRejected RSVPOutcome = "DuplicateRejected"
)

// AttendeeFilter narrows ListAttendees. A zero Response returns every record.
type AttendeeFilter struct {
	Response Response
}

// Matches reports whether rec passes the filter.
func (f AttendeeFilter) Matches(rec *AttendanceRecord) bool {
	return f.Response == "" || rec.Response == f.Response
}

// AttendanceLedger is the durable store of attendance records and response counters.
//
// Record inserts rec keyed by (EventID, Email) if absent and increments the counter for
// (EventID, Response) as one all-or-nothing unit. Concurrent callers racing on the same
// key observe exactly one Inserted.
type AttendanceLedger interface {
	Record(ctx context.Context, rec *AttendanceRecord) (RecordResult, error)
	GetCounters(ctx context.Context, eventID string) (ResponseCounts, error)
	// ListAttendees returns a point-in-time snapshot ordered by submission time.
	ListAttendees(ctx context.Context, eventID string, filter AttendeeFilter) ([]*AttendanceRecord, error)
	Ping(ctx context.Context) error
	Close() error
}

// RSVPService records attendance decisions.
type RSVPService interface {
	RecordRSVP(ctx context.Context, eventID, fullName, email string, response Response) (RSVPOutcome, error)
}

// StatsService exposes read paths over the ledger.
type StatsService interface {
	GetCounts(ctx context.Context, eventID string) (ResponseCounts, error)
	ListAttendees(ctx context.Context, eventID string, filter AttendeeFilter) ([]*AttendanceRecord, error)
}
