package room

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("room not found")

// Status is derived from occupancy records whenever a room is read; it is never stored.
type Status string

const (
	StatusVacant   Status = "vacant"
	StatusOccupied Status = "occupied"
)

// StatusOf maps the "has an active occupancy" fact onto a Status.
func StatusOf(occupied bool) Status {
	if occupied {
		return StatusOccupied
	}

	return StatusVacant
}

// Room is a rentable unit.
type Room struct {
	ID          uuid.UUID
	Name        string
	BasePrice   int64 // monthly rent, VND
	Description string
	Status      Status
	CreatedAt   time.Time
}
