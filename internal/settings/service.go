package settings

import (
	"context"
	"errors"
	"fmt"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=settings
type Repository interface {
	GetSettings(ctx context.Context) (*Settings, error)
	UpsertSettings(ctx context.Context, s *Settings) error
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

// Get returns the saved settings, or Defaults when none were saved.
func (s *Service) Get(ctx context.Context) (*Settings, error) {
	current, err := s.repo.GetSettings(ctx)
	if errors.Is(err, ErrNotFound) {
		d := Defaults()
		return &d, nil
	}

	if err != nil {
		return nil, fmt.Errorf("getting settings: %w", err)
	}

	return current, nil
}

// Update replaces every price field of the singleton record, creating it on first use.
// Values are stored as given; there is no range check.
func (s *Service) Update(ctx context.Context, next Settings) (*Settings, error) {
	saved := &Settings{
		ElecUnitPrice:  next.ElecUnitPrice,
		WaterUnitPrice: next.WaterUnitPrice,
		TrashFee:       next.TrashFee,
		WifiFee:        next.WifiFee,
		OtherFee:       next.OtherFee,
	}

	if err := s.repo.UpsertSettings(ctx, saved); err != nil {
		return nil, fmt.Errorf("saving settings: %w", err)
	}

	s.history.Append(ctx, "Updated pricing", "Updated service prices")

	return saved, nil
}
