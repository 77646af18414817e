package occupancy_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/rentbook/internal/occupancy"
	"github.com/MrJamesThe3rd/rentbook/internal/room"
)

func TestService_MoveIn(t *testing.T) {
	roomID := uuid.New()

	tests := []struct {
		name      string
		setupMock func(tx *occupancy.MockTx, rec *occupancy.MockRecorder)
		wantErr   error
	}{
		{
			name: "Success",
			setupMock: func(tx *occupancy.MockTx, rec *occupancy.MockRecorder) {
				tx.EXPECT().LockRoom(gomock.Any(), roomID).
					Return(&room.Room{ID: roomID, Name: "A1", Status: room.StatusVacant}, nil)
				tx.EXPECT().CreateOccupancy(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, o *occupancy.Occupancy) error {
						assert.True(t, o.Active)
						assert.Equal(t, "Lan", o.Tenant)
						o.ID = uuid.New()
						return nil
					})
				tx.EXPECT().Commit().Return(nil)
				tx.EXPECT().Rollback().Return(nil)
				rec.EXPECT().Append(gomock.Any(), "Moved in", "A1 rented to Lan")
			},
		},
		{
			name: "RoomNotFound",
			setupMock: func(tx *occupancy.MockTx, _ *occupancy.MockRecorder) {
				tx.EXPECT().LockRoom(gomock.Any(), roomID).Return(nil, room.ErrNotFound)
				tx.EXPECT().Rollback().Return(nil)
			},
			wantErr: occupancy.ErrRoomNotFound,
		},
		{
			name: "RoomOccupied",
			setupMock: func(tx *occupancy.MockTx, _ *occupancy.MockRecorder) {
				tx.EXPECT().LockRoom(gomock.Any(), roomID).
					Return(&room.Room{ID: roomID, Name: "A1", Status: room.StatusOccupied}, nil)
				tx.EXPECT().Rollback().Return(nil)
			},
			wantErr: occupancy.ErrRoomOccupied,
		},
		{
			name: "ConcurrentMoveInLosesOnIndex",
			setupMock: func(tx *occupancy.MockTx, _ *occupancy.MockRecorder) {
				tx.EXPECT().LockRoom(gomock.Any(), roomID).
					Return(&room.Room{ID: roomID, Name: "A1", Status: room.StatusVacant}, nil)
				tx.EXPECT().CreateOccupancy(gomock.Any(), gomock.Any()).Return(occupancy.ErrRoomOccupied)
				tx.EXPECT().Rollback().Return(nil)
			},
			wantErr: occupancy.ErrRoomOccupied,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			repo := occupancy.NewMockRepository(ctrl)
			tx := occupancy.NewMockTx(ctrl)
			rec := occupancy.NewMockRecorder(ctrl)

			repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
			tt.setupMock(tx, rec)

			got, err := occupancy.NewService(repo, rec).MoveIn(context.Background(), roomID, "Lan")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			require.NotNil(t, got.Room)
			assert.Equal(t, room.StatusOccupied, got.Room.Status)
		})
	}
}

func TestService_MoveIn_BeginError(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := occupancy.NewMockRepository(ctrl)
	repo.EXPECT().Begin(gomock.Any()).Return(nil, errors.New("pool exhausted"))

	_, err := occupancy.NewService(repo, occupancy.NewMockRecorder(ctrl)).MoveIn(context.Background(), uuid.New(), "Lan")
	require.Error(t, err)
}

func TestService_MoveOut(t *testing.T) {
	id := uuid.New()
	roomID := uuid.New()

	tests := []struct {
		name      string
		setupMock func(tx *occupancy.MockTx, rec *occupancy.MockRecorder)
		wantErr   error
	}{
		{
			name: "Success",
			setupMock: func(tx *occupancy.MockTx, rec *occupancy.MockRecorder) {
				tx.EXPECT().LockOccupancy(gomock.Any(), id).Return(&occupancy.Occupancy{
					ID: id, RoomID: roomID, Tenant: "Lan", Active: true,
					Room: &room.Room{ID: roomID, Name: "A1"},
				}, nil)
				tx.EXPECT().Deactivate(gomock.Any(), id).Return(nil)
				tx.EXPECT().Commit().Return(nil)
				tx.EXPECT().Rollback().Return(nil)
				rec.EXPECT().Append(gomock.Any(), "Moved out", "Room A1 returned (tenant Lan)")
			},
		},
		{
			name: "RoomDeletedFallsBackToID",
			setupMock: func(tx *occupancy.MockTx, rec *occupancy.MockRecorder) {
				tx.EXPECT().LockOccupancy(gomock.Any(), id).Return(&occupancy.Occupancy{
					ID: id, RoomID: roomID, Tenant: "Lan", Active: true,
				}, nil)
				tx.EXPECT().Deactivate(gomock.Any(), id).Return(nil)
				tx.EXPECT().Commit().Return(nil)
				tx.EXPECT().Rollback().Return(nil)
				rec.EXPECT().Append(gomock.Any(), "Moved out", "Room "+roomID.String()+" returned (tenant Lan)")
			},
		},
		{
			name: "NotFound",
			setupMock: func(tx *occupancy.MockTx, _ *occupancy.MockRecorder) {
				tx.EXPECT().LockOccupancy(gomock.Any(), id).Return(nil, occupancy.ErrNotFound)
				tx.EXPECT().Rollback().Return(nil)
			},
			wantErr: occupancy.ErrNotFound,
		},
		{
			name: "AlreadyInactive",
			setupMock: func(tx *occupancy.MockTx, _ *occupancy.MockRecorder) {
				tx.EXPECT().LockOccupancy(gomock.Any(), id).
					Return(&occupancy.Occupancy{ID: id, RoomID: roomID, Active: false}, nil)
				tx.EXPECT().Rollback().Return(nil)
			},
			wantErr: occupancy.ErrAlreadyInactive,
		},
		{
			name: "CommitFails",
			setupMock: func(tx *occupancy.MockTx, _ *occupancy.MockRecorder) {
				tx.EXPECT().LockOccupancy(gomock.Any(), id).
					Return(&occupancy.Occupancy{ID: id, RoomID: roomID, Active: true}, nil)
				tx.EXPECT().Deactivate(gomock.Any(), id).Return(nil)
				tx.EXPECT().Commit().Return(errors.New("connection reset"))
				tx.EXPECT().Rollback().Return(nil)
			},
			wantErr: errors.New("commit move out"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			repo := occupancy.NewMockRepository(ctrl)
			tx := occupancy.NewMockTx(ctrl)
			rec := occupancy.NewMockRecorder(ctrl)

			repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
			tt.setupMock(tx, rec)

			err := occupancy.NewService(repo, rec).MoveOut(context.Background(), id)

			switch {
			case tt.wantErr == nil:
				require.NoError(t, err)
			case errors.Is(tt.wantErr, occupancy.ErrNotFound), errors.Is(tt.wantErr, occupancy.ErrAlreadyInactive):
				assert.ErrorIs(t, err, tt.wantErr)
			default:
				assert.ErrorContains(t, err, tt.wantErr.Error())
			}
		})
	}
}

func TestService_ListActive(t *testing.T) {
	ctrl := gomock.NewController(t)

	list := []*occupancy.Occupancy{{ID: uuid.New(), Active: true}}

	repo := occupancy.NewMockRepository(ctrl)
	repo.EXPECT().ListActive(gomock.Any()).Return(list, nil)

	got, err := occupancy.NewService(repo, occupancy.NewMockRecorder(ctrl)).ListActive(context.Background())
	require.NoError(t, err)
	assert.Equal(t, list, got)
}
