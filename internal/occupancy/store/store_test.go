package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/rentbook/internal/occupancy"
	"github.com/MrJamesThe3rd/rentbook/internal/room"
)

var occupancyColumns = []string{
	"id", "room_id", "tenant", "active", "created_at",
	"r_id", "name", "base_price", "description", "r_created_at", "occupied",
}

func setupMockDB(t *testing.T) (sqlmock.Sqlmock, *Store) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return mock, New(db)
}

func TestStore_ListActive_KeepsOrphans(t *testing.T) {
	mock, s := setupMockDB(t)

	withRoom, orphan, roomID := uuid.New(), uuid.New(), uuid.New()
	now := time.Now()

	mock.ExpectQuery(`FROM occupancies o LEFT JOIN rooms r`).
		WillReturnRows(sqlmock.NewRows(occupancyColumns).
			AddRow(withRoom.String(), roomID.String(), "Lan", true, now, roomID.String(), "A1", 1000000, "", now, true).
			AddRow(orphan.String(), uuid.New().String(), "Minh", true, now, nil, nil, nil, nil, nil, nil))

	got, err := s.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)

	require.NotNil(t, got[0].Room)
	assert.Equal(t, "A1", got[0].Room.Name)
	assert.Equal(t, room.StatusOccupied, got[0].Room.Status)
	assert.Nil(t, got[1].Room)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_LockRoom_NotFound(t *testing.T) {
	mock, s := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM rooms r WHERE r.id = \$1 FOR UPDATE`).WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	tx, err := s.Begin(context.Background())
	require.NoError(t, err)

	_, err = tx.LockRoom(context.Background(), uuid.New())
	assert.ErrorIs(t, err, room.ErrNotFound)
	require.NoError(t, tx.Rollback())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_CreateOccupancy_UniqueViolation(t *testing.T) {
	mock, s := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO occupancies`).
		WillReturnError(&pgconn.PgError{Code: uniqueViolation, ConstraintName: oneActivePerRoomIndex})
	mock.ExpectRollback()

	tx, err := s.Begin(context.Background())
	require.NoError(t, err)

	err = tx.CreateOccupancy(context.Background(), &occupancy.Occupancy{RoomID: uuid.New(), Tenant: "Lan", Active: true})
	assert.ErrorIs(t, err, occupancy.ErrRoomOccupied)
	require.NoError(t, tx.Rollback())
}

func TestStore_CreateOccupancy_OtherUniqueViolation(t *testing.T) {
	mock, s := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO occupancies`).
		WillReturnError(&pgconn.PgError{Code: uniqueViolation, ConstraintName: "occupancies_pkey"})

	tx, err := s.Begin(context.Background())
	require.NoError(t, err)

	err = tx.CreateOccupancy(context.Background(), &occupancy.Occupancy{RoomID: uuid.New(), Active: true})
	require.Error(t, err)
	assert.NotErrorIs(t, err, occupancy.ErrRoomOccupied)
}

func TestStore_Deactivate(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		wantErr  error
	}{
		{name: "Success", affected: 1},
		{name: "LostRace", affected: 0, wantErr: occupancy.ErrAlreadyInactive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, s := setupMockDB(t)

			id := uuid.New()

			mock.ExpectBegin()
			mock.ExpectExec(`UPDATE occupancies SET active = FALSE WHERE id = \$1 AND active`).
				WithArgs(id).
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			tx, err := s.Begin(context.Background())
			require.NoError(t, err)

			err = tx.Deactivate(context.Background(), id)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
		})
	}
}
