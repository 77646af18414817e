package history

import (
	"time"

	"github.com/google/uuid"
)

// Entry is one line of the activity log. Entries are never updated or removed.
type Entry struct {
	ID        uuid.UUID
	Action    string
	Info      string
	CreatedAt time.Time
}
