package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/rentbook/internal/room"
)

var roomColumns = []string{"id", "name", "base_price", "description", "created_at", "occupied"}

func setupMockDB(t *testing.T) (sqlmock.Sqlmock, *Store) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return mock, New(db)
}

func TestStore_GetRoom_DerivesStatus(t *testing.T) {
	mock, s := setupMockDB(t)

	id := uuid.New()
	mock.ExpectQuery(`FROM rooms r WHERE r.id = \$1`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(roomColumns).AddRow(id.String(), "R1", 1500000, "", time.Now(), true))

	got, err := s.GetRoom(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, room.StatusOccupied, got.Status)
	assert.Equal(t, int64(1500000), got.BasePrice)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_GetRoom_NotFound(t *testing.T) {
	mock, s := setupMockDB(t)

	id := uuid.New()
	mock.ExpectQuery(`FROM rooms r`).WithArgs(id).WillReturnError(sql.ErrNoRows)

	got, err := s.GetRoom(context.Background(), id)
	assert.ErrorIs(t, err, room.ErrNotFound)
	assert.Nil(t, got)
}

func TestStore_DeleteRoom_DeactivatesOccupancies(t *testing.T) {
	mock, s := setupMockDB(t)

	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`DELETE FROM rooms r`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(roomColumns).AddRow(id.String(), "R1", 1000000, "", time.Now(), true))
	mock.ExpectExec(`UPDATE occupancies\s+SET active = FALSE`).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	deleted, err := s.DeleteRoom(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "R1", deleted.Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_DeleteRoom_NotFoundRollsBack(t *testing.T) {
	mock, s := setupMockDB(t)

	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`DELETE FROM rooms r`).WithArgs(id).WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err := s.DeleteRoom(context.Background(), id)
	assert.ErrorIs(t, err, room.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_DeleteRoom_DeactivateFails(t *testing.T) {
	mock, s := setupMockDB(t)

	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`DELETE FROM rooms r`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(roomColumns).AddRow(id.String(), "R1", 1000000, "", time.Now(), false))
	mock.ExpectExec(`UPDATE occupancies`).WithArgs(id).WillReturnError(errors.New("lock timeout"))
	mock.ExpectRollback()

	_, err := s.DeleteRoom(context.Background(), id)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "deactivating occupancies")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_ListRooms(t *testing.T) {
	mock, s := setupMockDB(t)

	rows := sqlmock.NewRows(roomColumns).
		AddRow(uuid.NewString(), "A1", 1000000, "", time.Now(), false).
		AddRow(uuid.NewString(), "A2", 1200000, "balcony", time.Now(), true)

	mock.ExpectQuery(`ORDER BY r.name ASC`).WillReturnRows(rows)

	got, err := s.ListRooms(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, room.StatusVacant, got[0].Status)
	assert.Equal(t, room.StatusOccupied, got[1].Status)
}
