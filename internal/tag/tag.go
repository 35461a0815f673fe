package tag

import "github.com/google/uuid"

// Tag labels clients. Names are unique within an account.
type Tag struct {
	ID        uuid.UUID
	AccountID uuid.UUID
	Name      string
	Color     string
}
