package tracker

import (
	"time"

	"github.com/google/uuid"
)

// Project groups issues and is owned by exactly one account.
type Project struct {
	ID          uuid.UUID
	AccountID   uuid.UUID
	Name        string
	Description string
	CreatedAt   time.Time
}

// IssueStatus is the lifecycle state of an issue.
type IssueStatus string

const (
	StatusTodo       IssueStatus = "todo"
	StatusInProgress IssueStatus = "in_progress"
	StatusDone       IssueStatus = "done"
)

func (s IssueStatus) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}

	return false
}

// Issue belongs to a project and, through it, to the project's owner.
type Issue struct {
	ID          uuid.UUID
	ProjectID   uuid.UUID
	Title       string
	Description string
	ReporterID  *uuid.UUID
	AssigneeID  *uuid.UUID
	Status      IssueStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Comment belongs to an issue; ownership is two hops away.
type Comment struct {
	ID        uuid.UUID
	IssueID   uuid.UUID
	AuthorID  *uuid.UUID
	Body      string
	CreatedAt time.Time
}
