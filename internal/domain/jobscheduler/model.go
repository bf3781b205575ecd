package jobscheduler

import "time"

type DispatchStatus string

const (
	StatusSent      DispatchStatus = "sent"
	StatusCompleted DispatchStatus = "completed"
	StatusFailed    DispatchStatus = "failed"
)

// DispatchEvent is the audit trail of one queued sync job: what was sent,
// for which league, and whether the enqueue itself succeeded.
type DispatchEvent struct {
	DispatchID   string
	JobName      string
	JobPath      string
	LeagueID     int64
	Status       DispatchStatus
	Payload      map[string]any
	ErrorMessage string
	OccurredAt   time.Time
	TraceID      string
	SpanID       string
}
