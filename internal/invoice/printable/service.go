package printable

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/rentbook/internal/invoice"
)

type InvoiceGetter interface {
	Get(ctx context.Context, id uuid.UUID) (*invoice.Invoice, error)
}

// Service assembles printable documents from stored invoices and the prices
// currently in effect.
type Service struct {
	invoices InvoiceGetter
	settings invoice.SettingsReader
	title    string
}

func NewService(invoices InvoiceGetter, settings invoice.SettingsReader, title string) *Service {
	return &Service{invoices: invoices, settings: settings, title: title}
}

func (s *Service) Document(ctx context.Context, id uuid.UUID) (*Document, error) {
	inv, err := s.invoices.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	current, err := s.settings.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	return New(inv, *current, s.title), nil
}
