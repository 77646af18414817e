package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/rentbook/internal/room"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

// Expected column order: id, name, base_price, description, created_at, occupied
func scanRoom(s scanner) (*room.Room, error) {
	var (
		r        room.Room
		occupied bool
	)

	if err := s.Scan(&r.ID, &r.Name, &r.BasePrice, &r.Description, &r.CreatedAt, &occupied); err != nil {
		return nil, err
	}

	r.Status = room.StatusOf(occupied)

	return &r, nil
}

const selectRoomColumns = `
	r.id, r.name, r.base_price, r.description, r.created_at,
	EXISTS (SELECT 1 FROM occupancies o WHERE o.room_id = r.id AND o.active) AS occupied
`

func (s *Store) CreateRoom(ctx context.Context, r *room.Room) error {
	query := `
		INSERT INTO rooms (name, base_price, description)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query, r.Name, r.BasePrice, r.Description).Scan(&r.ID, &r.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating room: %w", err)
	}

	return nil
}

func (s *Store) GetRoom(ctx context.Context, id uuid.UUID) (*room.Room, error) {
	query := `SELECT ` + selectRoomColumns + ` FROM rooms r WHERE r.id = $1`

	r, err := scanRoom(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, room.ErrNotFound
		}

		return nil, fmt.Errorf("getting room: %w", err)
	}

	return r, nil
}

func (s *Store) ListRooms(ctx context.Context) ([]*room.Room, error) {
	query := `SELECT ` + selectRoomColumns + ` FROM rooms r ORDER BY r.name ASC, r.id ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing rooms: %w", err)
	}
	defer rows.Close()

	var rooms []*room.Room

	for rows.Next() {
		r, err := scanRoom(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning room: %w", err)
		}

		rooms = append(rooms, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating room rows: %w", err)
	}

	return rooms, nil
}

// DeleteRoom deletes the room and closes any tenancy still open on it in the
// same transaction.
func (s *Store) DeleteRoom(ctx context.Context, id uuid.UUID) (*room.Room, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	deleteQuery := `
		DELETE FROM rooms r
		WHERE r.id = $1
		RETURNING ` + selectRoomColumns

	deleted, err := scanRoom(dbTx.QueryRowContext(ctx, deleteQuery, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, room.ErrNotFound
		}

		return nil, fmt.Errorf("deleting room: %w", err)
	}

	deactivateQuery := `
		UPDATE occupancies
		SET active = FALSE
		WHERE room_id = $1 AND active
	`
	if _, err := dbTx.ExecContext(ctx, deactivateQuery, id); err != nil {
		return nil, fmt.Errorf("deactivating occupancies: %w", err)
	}

	if err := dbTx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}

	return deleted, nil
}
