package room

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=room
type Repository interface {
	CreateRoom(ctx context.Context, r *Room) error
	GetRoom(ctx context.Context, id uuid.UUID) (*Room, error)
	ListRooms(ctx context.Context) ([]*Room, error)
	// DeleteRoom removes the room and deactivates its active occupancies in one
	// transaction, returning the room as it was before deletion.
	DeleteRoom(ctx context.Context, id uuid.UUID) (*Room, error)
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

type CreateParams struct {
	Name        string
	BasePrice   int64
	Description string
}

func (s *Service) List(ctx context.Context) ([]*Room, error) {
	return s.repo.ListRooms(ctx)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Room, error) {
	return s.repo.GetRoom(ctx, id)
}

// Create registers a vacant room. Names are not required to be unique.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Room, error) {
	r := &Room{
		Name:        params.Name,
		BasePrice:   params.BasePrice,
		Description: params.Description,
		Status:      StatusVacant,
	}
	if err := s.repo.CreateRoom(ctx, r); err != nil {
		return nil, err
	}

	s.history.Append(ctx, "Added room", fmt.Sprintf("Room %s (%d)", r.Name, r.BasePrice))

	return r, nil
}

// Delete removes a room. Deleting an unknown room is not an error.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.repo.DeleteRoom(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil
	}

	if err != nil {
		return err
	}

	s.history.Append(ctx, "Deleted room", "Deleted room "+deleted.Name)

	return nil
}
