package invoice

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/rentbook/internal/room"
)

var ErrNotFound = errors.New("invoice not found")

// Invoice is a monthly bill. Everything except Paid is a snapshot taken when
// the invoice was generated; later room or price changes do not touch it.
type Invoice struct {
	ID         uuid.UUID
	Code       string // display label, not unique
	RoomID     uuid.UUID
	RoomName   string
	RoomPrice  int64
	ElecBegin  int64
	ElecEnd    int64
	ElecUsed   int64
	ElecTotal  int64
	WaterBegin int64
	WaterEnd   int64
	WaterUsed  int64
	WaterTotal int64
	TrashFee   int64
	WifiFee    int64
	ServiceFee int64 // the "other" fee from settings
	OtherFee   int64 // ad-hoc fee supplied with the readings
	Total      int64
	Paid       bool
	Month      int
	Year       int
	CreatedAt  time.Time
	Room       *room.Room // Loaded via JOIN, nil once the room is deleted
}

// GenerateItem is one room's meter readings for a billing period.
type GenerateItem struct {
	RoomID     uuid.UUID
	ElecBegin  int64
	ElecEnd    int64
	WaterBegin int64
	WaterEnd   int64
	OtherFee   int64
	Month      int
	Year       int
}

type SkipReason string

const (
	SkipRoomNotFound   SkipReason = "room_not_found"
	SkipInvalidReading SkipReason = "invalid_reading"
)

// Skipped describes a batch item that produced no invoice.
type Skipped struct {
	Index  int
	RoomID uuid.UUID
	Reason SkipReason
	Detail string
}

type GenerateResult struct {
	Created []*Invoice
	Skipped []Skipped
}

type ListFilter struct {
	Month *int
	Year  *int
}
