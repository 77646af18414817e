package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MrJamesThe3rd/rentbook/internal/history"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateEntry(ctx context.Context, e *history.Entry) error {
	query := `
		INSERT INTO history (action, info)
		VALUES ($1, $2)
		RETURNING id, created_at
	`

	if err := s.db.QueryRowContext(ctx, query, e.Action, e.Info).Scan(&e.ID, &e.CreatedAt); err != nil {
		return fmt.Errorf("creating history entry: %w", err)
	}

	return nil
}

func (s *Store) ListEntries(ctx context.Context) ([]*history.Entry, error) {
	query := `
		SELECT id, action, info, created_at
		FROM history
		ORDER BY created_at DESC, seq DESC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}
	defer rows.Close()

	var entries []*history.Entry

	for rows.Next() {
		var e history.Entry
		if err := rows.Scan(&e.ID, &e.Action, &e.Info, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning history entry: %w", err)
		}

		entries = append(entries, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating history rows: %w", err)
	}

	return entries, nil
}
