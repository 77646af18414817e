package history

import (
	"context"
	"log/slog"
	"time"
)

const appendTimeout = 5 * time.Second

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=history
type Repository interface {
	CreateEntry(ctx context.Context, e *Entry) error
	ListEntries(ctx context.Context) ([]*Entry, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Append records an action. It is best-effort: a failed write is logged and
// dropped so it can never change the outcome of the operation being recorded.
// The entry is written even if the caller's context was cancelled after the
// operation itself committed.
func (s *Service) Append(ctx context.Context, action, info string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), appendTimeout)
	defer cancel()

	if err := s.repo.CreateEntry(ctx, &Entry{Action: action, Info: info}); err != nil {
		slog.ErrorContext(ctx, "failed to record history", "action", action, "info", info, "error", err)
	}
}

// List returns all entries, newest first.
func (s *Service) List(ctx context.Context) ([]*Entry, error) {
	return s.repo.ListEntries(ctx)
}
