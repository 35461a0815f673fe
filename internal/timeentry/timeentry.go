package timeentry

import (
	"time"

	"github.com/google/uuid"
)

// TimeEntry is one tracked interval of work for a client. A nil End
// means the timer is still running; at most one entry per account may
// be open at any instant.
type TimeEntry struct {
	ID          uuid.UUID
	AccountID   uuid.UUID
	ClientID    uuid.UUID
	ClientName  string // loaded via JOIN
	Start       time.Time
	End         *time.Time
	Description string
}

// Running reports whether the entry is still open.
func (e *TimeEntry) Running() bool {
	return e.End == nil
}

// Duration is end minus start; zero while the timer runs.
func (e *TimeEntry) Duration() time.Duration {
	if e.End == nil {
		return 0
	}

	return e.End.Sub(e.Start)
}
