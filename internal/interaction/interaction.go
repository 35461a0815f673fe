package interaction

import (
	"time"

	"github.com/google/uuid"
)

// Type represents the kind of interaction with a client.
type Type string

const (
	TypeCall    Type = "call"
	TypeMeeting Type = "meeting"
	TypeEmail   Type = "email"
	TypeOther   Type = "other"
)

func (t Type) Valid() bool {
	switch t {
	case TypeCall, TypeMeeting, TypeEmail, TypeOther:
		return true
	}

	return false
}

// SLAStatus tracks whether the follow-up promised for an interaction
// has been delivered.
type SLAStatus string

const (
	SLAPending    SLAStatus = "pending"
	SLAInProgress SLAStatus = "in_progress"
	SLACompleted  SLAStatus = "completed"
	SLAOverdue    SLAStatus = "overdue"
)

func (s SLAStatus) Valid() bool {
	switch s {
	case SLAPending, SLAInProgress, SLACompleted, SLAOverdue:
		return true
	}

	return false
}

// Interaction belongs to exactly one client and, through it, to that
// client's owning account.
type Interaction struct {
	ID          uuid.UUID
	ClientID    uuid.UUID
	Type        Type
	Date        time.Time
	Description string
	DueDate     *time.Time
	Status      SLAStatus
	CompletedAt *time.Time
}
