package invoice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/rentbook/internal/room"
	"github.com/MrJamesThe3rd/rentbook/internal/settings"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=invoice
type Repository interface {
	CreateInvoice(ctx context.Context, inv *Invoice) error
	GetInvoice(ctx context.Context, id uuid.UUID) (*Invoice, error)
	ListInvoices(ctx context.Context, filter ListFilter) ([]*Invoice, error)
	// SetPaid changes only the paid flag and returns the updated invoice.
	SetPaid(ctx context.Context, id uuid.UUID, paid bool) (*Invoice, error)
	// DeleteInvoice returns the invoice as it was before deletion.
	DeleteInvoice(ctx context.Context, id uuid.UUID) (*Invoice, error)
}

type RoomFinder interface {
	Get(ctx context.Context, id uuid.UUID) (*room.Room, error)
}

type SettingsReader interface {
	Get(ctx context.Context) (*settings.Settings, error)
}

type Recorder interface {
	Append(ctx context.Context, action, info string)
}

type Service struct {
	repo     Repository
	rooms    RoomFinder
	settings SettingsReader
	history  Recorder
	policy   Policy
}

// NewService wires the engine. A nil policy means Lenient.
func NewService(repo Repository, rooms RoomFinder, settings SettingsReader, history Recorder, policy Policy) *Service {
	if policy == nil {
		policy = Lenient{}
	}

	return &Service{
		repo:     repo,
		rooms:    rooms,
		settings: settings,
		history:  history,
		policy:   policy,
	}
}

// List returns invoices newest first.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Invoice, error) {
	return s.repo.ListInvoices(ctx, filter)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Invoice, error) {
	return s.repo.GetInvoice(ctx, id)
}

// Generate bills each item independently against settings read once for the
// whole batch. Items whose room is gone or that the policy rejects are reported
// in Skipped; a store failure aborts the remaining items.
func (s *Service) Generate(ctx context.Context, items []GenerateItem) (*GenerateResult, error) {
	current, err := s.settings.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	result := &GenerateResult{Created: make([]*Invoice, 0, len(items))}

	for i, item := range items {
		r, err := s.resolveRoom(ctx, item.RoomID)
		if err != nil {
			if errors.Is(err, room.ErrNotFound) {
				result.Skipped = append(result.Skipped, Skipped{Index: i, RoomID: item.RoomID, Reason: SkipRoomNotFound})
				slog.Info("skipping invoice item", "index", i, "room_id", item.RoomID, "reason", SkipRoomNotFound)

				continue
			}

			return nil, fmt.Errorf("resolve room %s: %w", item.RoomID, err)
		}

		if err := s.policy.Check(item); err != nil {
			result.Skipped = append(result.Skipped, Skipped{
				Index:  i,
				RoomID: item.RoomID,
				Reason: SkipInvalidReading,
				Detail: err.Error(),
			})
			slog.Info("skipping invoice item", "index", i, "room_id", item.RoomID, "reason", SkipInvalidReading, "error", err)

			continue
		}

		inv := Compute(r, *current, item)
		if err := s.repo.CreateInvoice(ctx, inv); err != nil {
			return nil, fmt.Errorf("create invoice for room %s: %w", r.Name, err)
		}

		inv.Room = r
		result.Created = append(result.Created, inv)

		s.history.Append(ctx, "Created invoice", fmt.Sprintf("Created invoice, room %s, total %d", r.Name, inv.Total))
	}

	return result, nil
}

// resolveRoom treats the zero id as an unknown room without a lookup.
func (s *Service) resolveRoom(ctx context.Context, id uuid.UUID) (*room.Room, error) {
	if id == uuid.Nil {
		return nil, room.ErrNotFound
	}

	return s.rooms.Get(ctx, id)
}

func (s *Service) SetPaid(ctx context.Context, id uuid.UUID, paid bool) (*Invoice, error) {
	inv, err := s.repo.SetPaid(ctx, id, paid)
	if err != nil {
		return nil, err
	}

	label := "Unpaid"
	if inv.Paid {
		label = "Paid"
	}

	s.history.Append(ctx, "Payment", fmt.Sprintf("%s marked as %s", inv.Code, label))

	return inv, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.repo.DeleteInvoice(ctx, id)
	if err != nil {
		return err
	}

	s.history.Append(ctx, "Deleted invoice", "Deleted invoice "+deleted.Code)

	return nil
}
