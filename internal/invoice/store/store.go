package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/rentbook/internal/invoice"
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

const invoiceColumns = `
	i.id, i.code, i.room_id, i.room_name, i.room_price,
	i.elec_begin, i.elec_end, i.elec_used, i.elec_total,
	i.water_begin, i.water_end, i.water_used, i.water_total,
	i.trash_fee, i.wifi_fee, i.service_fee, i.other_fee, i.total,
	i.paid, i.month, i.year, i.created_at,
	r.id, r.name, r.base_price, r.description, r.created_at,
	EXISTS (SELECT 1 FROM occupancies o WHERE o.room_id = r.id AND o.active) AS occupied
`

func scanInvoice(s scanner) (*invoice.Invoice, error) {
	var (
		inv      invoice.Invoice
		roomID   *uuid.UUID
		name     sql.NullString
		price    sql.NullInt64
		desc     sql.NullString
		created  sql.NullTime
		occupied sql.NullBool
	)

	if err := s.Scan(
		&inv.ID, &inv.Code, &inv.RoomID, &inv.RoomName, &inv.RoomPrice,
		&inv.ElecBegin, &inv.ElecEnd, &inv.ElecUsed, &inv.ElecTotal,
		&inv.WaterBegin, &inv.WaterEnd, &inv.WaterUsed, &inv.WaterTotal,
		&inv.TrashFee, &inv.WifiFee, &inv.ServiceFee, &inv.OtherFee, &inv.Total,
		&inv.Paid, &inv.Month, &inv.Year, &inv.CreatedAt,
		&roomID, &name, &price, &desc, &created, &occupied,
	); err != nil {
		return nil, err
	}

	if roomID != nil {
		inv.Room = &room.Room{
			ID:          *roomID,
			Name:        name.String,
			BasePrice:   price.Int64,
			Description: desc.String,
			Status:      room.StatusOf(occupied.Bool),
			CreatedAt:   created.Time,
		}
	}

	return &inv, nil
}

func (s *Store) CreateInvoice(ctx context.Context, inv *invoice.Invoice) error {
	query := `
		INSERT INTO invoices (
			code, room_id, room_name, room_price,
			elec_begin, elec_end, elec_used, elec_total,
			water_begin, water_end, water_used, water_total,
			trash_fee, wifi_fee, service_fee, other_fee, total,
			paid, month, year
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		inv.Code, inv.RoomID, inv.RoomName, inv.RoomPrice,
		inv.ElecBegin, inv.ElecEnd, inv.ElecUsed, inv.ElecTotal,
		inv.WaterBegin, inv.WaterEnd, inv.WaterUsed, inv.WaterTotal,
		inv.TrashFee, inv.WifiFee, inv.ServiceFee, inv.OtherFee, inv.Total,
		inv.Paid, inv.Month, inv.Year,
	).Scan(&inv.ID, &inv.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating invoice: %w", err)
	}

	return nil
}

func (s *Store) GetInvoice(ctx context.Context, id uuid.UUID) (*invoice.Invoice, error) {
	query := `SELECT ` + invoiceColumns + `
		FROM invoices i
		LEFT JOIN rooms r ON r.id = i.room_id
		WHERE i.id = $1`

	inv, err := scanInvoice(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, invoice.ErrNotFound
		}

		return nil, fmt.Errorf("getting invoice: %w", err)
	}

	return inv, nil
}

func (s *Store) ListInvoices(ctx context.Context, filter invoice.ListFilter) ([]*invoice.Invoice, error) {
	var (
		conditions []string
		args       []any
	)

	if filter.Month != nil {
		args = append(args, *filter.Month)
		conditions = append(conditions, fmt.Sprintf("i.month = $%d", len(args)))
	}

	if filter.Year != nil {
		args = append(args, *filter.Year)
		conditions = append(conditions, fmt.Sprintf("i.year = $%d", len(args)))
	}

	query := `SELECT ` + invoiceColumns + `
		FROM invoices i
		LEFT JOIN rooms r ON r.id = i.room_id`

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY i.created_at DESC, i.seq DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing invoices: %w", err)
	}
	defer rows.Close()

	var list []*invoice.Invoice

	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning invoice: %w", err)
		}

		list = append(list, inv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating invoice rows: %w", err)
	}

	return list, nil
}

func (s *Store) SetPaid(ctx context.Context, id uuid.UUID, paid bool) (*invoice.Invoice, error) {
	query := `
		WITH i AS (
			UPDATE invoices SET paid = $2 WHERE id = $1 RETURNING *
		)
		SELECT ` + invoiceColumns + `
		FROM i
		LEFT JOIN rooms r ON r.id = i.room_id`

	inv, err := scanInvoice(s.db.QueryRowContext(ctx, query, id, paid))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, invoice.ErrNotFound
		}

		return nil, fmt.Errorf("updating invoice paid flag: %w", err)
	}

	return inv, nil
}

func (s *Store) DeleteInvoice(ctx context.Context, id uuid.UUID) (*invoice.Invoice, error) {
	query := `
		WITH i AS (
			DELETE FROM invoices WHERE id = $1 RETURNING *
		)
		SELECT ` + invoiceColumns + `
		FROM i
		LEFT JOIN rooms r ON r.id = i.room_id`

	inv, err := scanInvoice(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, invoice.ErrNotFound
		}

		return nil, fmt.Errorf("deleting invoice: %w", err)
	}

	return inv, nil
}
