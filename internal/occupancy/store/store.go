package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/MrJamesThe3rd/rentbook/internal/occupancy"
	"github.com/MrJamesThe3rd/rentbook/internal/room"
)

const (
	uniqueViolation       = "23505"
	oneActivePerRoomIndex = "occupancies_one_active_per_room"
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

// Expected column order: id, room_id, tenant, active, created_at,
// then the joined room: r.id, r.name, r.base_price, r.description, r.created_at, occupied.
func scanOccupancy(s scanner) (*occupancy.Occupancy, error) {
	var (
		o        occupancy.Occupancy
		roomID   *uuid.UUID
		name     sql.NullString
		price    sql.NullInt64
		desc     sql.NullString
		created  sql.NullTime
		occupied sql.NullBool
	)

	if err := s.Scan(
		&o.ID, &o.RoomID, &o.Tenant, &o.Active, &o.CreatedAt,
		&roomID, &name, &price, &desc, &created, &occupied,
	); err != nil {
		return nil, err
	}

	if roomID != nil {
		o.Room = &room.Room{
			ID:          *roomID,
			Name:        name.String,
			BasePrice:   price.Int64,
			Description: desc.String,
			Status:      room.StatusOf(occupied.Bool),
			CreatedAt:   created.Time,
		}
	}

	return &o, nil
}

const selectOccupancyColumns = `
	o.id, o.room_id, o.tenant, o.active, o.created_at,
	r.id, r.name, r.base_price, r.description, r.created_at,
	EXISTS (SELECT 1 FROM occupancies a WHERE a.room_id = r.id AND a.active) AS occupied
`

func (s *Store) ListActive(ctx context.Context) ([]*occupancy.Occupancy, error) {
	query := `SELECT ` + selectOccupancyColumns + `
		FROM occupancies o
		LEFT JOIN rooms r ON r.id = o.room_id
		WHERE o.active
		ORDER BY o.created_at DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing occupancies: %w", err)
	}
	defer rows.Close()

	var list []*occupancy.Occupancy

	for rows.Next() {
		o, err := scanOccupancy(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning occupancy: %w", err)
		}

		list = append(list, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating occupancy rows: %w", err)
	}

	return list, nil
}

type moveTx struct {
	tx *sql.Tx
}

func (s *Store) Begin(ctx context.Context) (occupancy.Tx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}

	return &moveTx{tx: dbTx}, nil
}

func (m *moveTx) Commit() error   { return m.tx.Commit() }
func (m *moveTx) Rollback() error { return m.tx.Rollback() }

// LockRoom reads the room and holds its row lock, so two move-ins for the same
// room are serialized.
func (m *moveTx) LockRoom(ctx context.Context, roomID uuid.UUID) (*room.Room, error) {
	query := `
		SELECT r.id, r.name, r.base_price, r.description, r.created_at,
			EXISTS (SELECT 1 FROM occupancies o WHERE o.room_id = r.id AND o.active) AS occupied
		FROM rooms r
		WHERE r.id = $1
		FOR UPDATE
	`

	var (
		r        room.Room
		occupied bool
	)

	err := m.tx.QueryRowContext(ctx, query, roomID).Scan(
		&r.ID, &r.Name, &r.BasePrice, &r.Description, &r.CreatedAt, &occupied,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, room.ErrNotFound
		}

		return nil, fmt.Errorf("locking room: %w", err)
	}

	r.Status = room.StatusOf(occupied)

	return &r, nil
}

func (m *moveTx) LockOccupancy(ctx context.Context, id uuid.UUID) (*occupancy.Occupancy, error) {
	query := `SELECT ` + selectOccupancyColumns + `
		FROM occupancies o
		LEFT JOIN rooms r ON r.id = o.room_id
		WHERE o.id = $1
		FOR UPDATE OF o`

	o, err := scanOccupancy(m.tx.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, occupancy.ErrNotFound
		}

		return nil, fmt.Errorf("locking occupancy: %w", err)
	}

	return o, nil
}

func (m *moveTx) CreateOccupancy(ctx context.Context, o *occupancy.Occupancy) error {
	query := `
		INSERT INTO occupancies (room_id, tenant, active)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := m.tx.QueryRowContext(ctx, query, o.RoomID, o.Tenant, o.Active).Scan(&o.ID, &o.CreatedAt)
	if err != nil {
		if isOneActiveViolation(err) {
			return occupancy.ErrRoomOccupied
		}

		return fmt.Errorf("creating occupancy: %w", err)
	}

	return nil
}

// Deactivate only touches a row that is still active; a lost race surfaces as
// ErrAlreadyInactive rather than a silent second move-out.
func (m *moveTx) Deactivate(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE occupancies
		SET active = FALSE
		WHERE id = $1 AND active
	`

	res, err := m.tx.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deactivating occupancy: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deactivating occupancy: %w", err)
	}

	if n == 0 {
		return occupancy.ErrAlreadyInactive
	}

	return nil
}

func isOneActiveViolation(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	return pgErr.Code == uniqueViolation && pgErr.ConstraintName == oneActivePerRoomIndex
}
