package occupancy

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/rentbook/internal/room"
)

var (
	ErrNotFound        = errors.New("occupancy not found")
	ErrRoomNotFound    = errors.New("room not found")
	ErrRoomOccupied    = errors.New("room is already occupied")
	ErrAlreadyInactive = errors.New("occupancy is already inactive")
)

// Occupancy is one tenancy of a room. Moving out clears Active; the record itself is kept.
type Occupancy struct {
	ID        uuid.UUID
	RoomID    uuid.UUID
	Tenant    string
	Active    bool
	CreatedAt time.Time
	Room      *room.Room // Loaded via JOIN, nil once the room is deleted
}
