package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/rentbook/internal/settings"
)

// singletonID is the only key the settings table accepts.
const singletonID = 1

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) GetSettings(ctx context.Context) (*settings.Settings, error) {
	query := `
		SELECT elec_unit_price, water_unit_price, trash_fee, wifi_fee, other_fee, version, updated_at
		FROM settings
		WHERE id = $1
	`

	var out settings.Settings

	err := s.db.QueryRowContext(ctx, query, singletonID).Scan(
		&out.ElecUnitPrice, &out.WaterUnitPrice, &out.TrashFee, &out.WifiFee, &out.OtherFee,
		&out.Version, &out.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, settings.ErrNotFound
		}

		return nil, fmt.Errorf("getting settings: %w", err)
	}

	return &out, nil
}

// UpsertSettings writes the singleton row and bumps its version.
func (s *Store) UpsertSettings(ctx context.Context, in *settings.Settings) error {
	query := `
		INSERT INTO settings (id, elec_unit_price, water_unit_price, trash_fee, wifi_fee, other_fee)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			elec_unit_price = EXCLUDED.elec_unit_price,
			water_unit_price = EXCLUDED.water_unit_price,
			trash_fee = EXCLUDED.trash_fee,
			wifi_fee = EXCLUDED.wifi_fee,
			other_fee = EXCLUDED.other_fee,
			version = settings.version + 1,
			updated_at = clock_timestamp()
		RETURNING version, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		singletonID,
		in.ElecUnitPrice,
		in.WaterUnitPrice,
		in.TrashFee,
		in.WifiFee,
		in.OtherFee,
	).Scan(&in.Version, &in.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upserting settings: %w", err)
	}

	return nil
}
