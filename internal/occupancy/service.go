package occupancy

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/rentbook/internal/room"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=occupancy
type Repository interface {
	ListActive(ctx context.Context) ([]*Occupancy, error)
	Begin(ctx context.Context) (Tx, error)
}

// Tx is a unit of work over rooms and occupancies. Lock* methods hold their
// rows until Commit or Rollback.
type Tx interface {
	LockRoom(ctx context.Context, roomID uuid.UUID) (*room.Room, error)
	LockOccupancy(ctx context.Context, id uuid.UUID) (*Occupancy, error)
	CreateOccupancy(ctx context.Context, o *Occupancy) error
	Deactivate(ctx context.Context, id uuid.UUID) error
	Commit() error
	Rollback() error
}

type Recorder interface {
	Append(ctx context.Context, action, info string)
}

type Service struct {
	repo    Repository
	history Recorder
}

func NewService(repo Repository, history Recorder) *Service {
	return &Service{repo: repo, history: history}
}

// ListActive returns current tenancies with their rooms.
func (s *Service) ListActive(ctx context.Context) ([]*Occupancy, error) {
	return s.repo.ListActive(ctx)
}

// MoveIn opens a tenancy on a vacant room.
func (s *Service) MoveIn(ctx context.Context, roomID uuid.UUID, tenant string) (*Occupancy, error) {
	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin move in: %w", err)
	}
	defer tx.Rollback()

	r, err := tx.LockRoom(ctx, roomID)
	if err != nil {
		if errors.Is(err, room.ErrNotFound) {
			return nil, ErrRoomNotFound
		}

		return nil, fmt.Errorf("lock room: %w", err)
	}

	if r.Status == room.StatusOccupied {
		return nil, ErrRoomOccupied
	}

	o := &Occupancy{
		RoomID: roomID,
		Tenant: tenant,
		Active: true,
	}
	if err := tx.CreateOccupancy(ctx, o); err != nil {
		if errors.Is(err, ErrRoomOccupied) {
			return nil, err
		}

		return nil, fmt.Errorf("create occupancy: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit move in: %w", err)
	}

	r.Status = room.StatusOccupied
	o.Room = r

	s.history.Append(ctx, "Moved in", fmt.Sprintf("%s rented to %s", r.Name, tenant))

	return o, nil
}

// MoveOut closes an active tenancy, which frees its room.
func (s *Service) MoveOut(ctx context.Context, id uuid.UUID) error {
	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin move out: %w", err)
	}
	defer tx.Rollback()

	o, err := tx.LockOccupancy(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}

		return fmt.Errorf("lock occupancy: %w", err)
	}

	if !o.Active {
		return ErrAlreadyInactive
	}

	if err := tx.Deactivate(ctx, id); err != nil {
		return fmt.Errorf("deactivate occupancy: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit move out: %w", err)
	}

	roomLabel := o.RoomID.String()
	if o.Room != nil {
		roomLabel = o.Room.Name
	}

	s.history.Append(ctx, "Moved out", fmt.Sprintf("Room %s returned (tenant %s)", roomLabel, o.Tenant))

	return nil
}
