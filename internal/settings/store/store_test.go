package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/rentbook/internal/settings"
)

func TestStore_GetSettings_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM settings`).WithArgs(singletonID).WillReturnError(sql.ErrNoRows)

	got, err := New(db).GetSettings(context.Background())
	assert.ErrorIs(t, err, settings.ErrNotFound)
	assert.Nil(t, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_GetSettings(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	updated := time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{
		"elec_unit_price", "water_unit_price", "trash_fee", "wifi_fee", "other_fee", "version", "updated_at",
	}).AddRow(3500, 12000, 20000, 50000, 10000, 4, updated)

	mock.ExpectQuery(`FROM settings`).WithArgs(singletonID).WillReturnRows(rows)

	got, err := New(db).GetSettings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3500), got.ElecUnitPrice)
	assert.Equal(t, int64(10000), got.OtherFee)
	assert.Equal(t, int64(4), got.Version)
	require.NotNil(t, got.UpdatedAt)
	assert.Equal(t, updated, *got.UpdatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_UpsertSettings(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	updated := time.Now()

	mock.ExpectQuery(`ON CONFLICT \(id\) DO UPDATE`).
		WithArgs(singletonID, 3000, 10000, 20000, 50000, 0).
		WillReturnRows(sqlmock.NewRows([]string{"version", "updated_at"}).AddRow(2, updated))

	in := settings.Defaults()
	require.NoError(t, New(db).UpsertSettings(context.Background(), &in))
	assert.Equal(t, int64(2), in.Version)
	require.NoError(t, mock.ExpectationsWereMet())
}
