package room_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/rentbook/internal/room"
)

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		params    room.CreateParams
		setupMock func(repo *room.MockRepository, rec *room.MockRecorder)
		wantErr   bool
	}

	tests := []testCase{
		{
			name:   "Success",
			params: room.CreateParams{Name: "R1", BasePrice: 1000000, Description: "ground floor"},
			setupMock: func(repo *room.MockRepository, rec *room.MockRecorder) {
				repo.EXPECT().
					CreateRoom(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, r *room.Room) error {
						r.ID = uuid.New()
						r.CreatedAt = time.Now()
						return nil
					})
				rec.EXPECT().Append(gomock.Any(), "Added room", "Room R1 (1000000)")
			},
		},
		{
			name:   "RepoError",
			params: room.CreateParams{Name: "R2"},
			setupMock: func(repo *room.MockRepository, _ *room.MockRecorder) {
				repo.EXPECT().CreateRoom(gomock.Any(), gomock.Any()).Return(errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			repo := room.NewMockRepository(ctrl)
			rec := room.NewMockRecorder(ctrl)
			tt.setupMock(repo, rec)

			got, err := room.NewService(repo, rec).Create(context.Background(), tt.params)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, got.ID)
			assert.Equal(t, room.StatusVacant, got.Status)
			assert.Equal(t, tt.params.Name, got.Name)
		})
	}
}

func TestService_Delete(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name      string
		setupMock func(repo *room.MockRepository, rec *room.MockRecorder)
		wantErr   bool
	}{
		{
			name: "Deleted",
			setupMock: func(repo *room.MockRepository, rec *room.MockRecorder) {
				repo.EXPECT().DeleteRoom(gomock.Any(), id).Return(&room.Room{ID: id, Name: "R1"}, nil)
				rec.EXPECT().Append(gomock.Any(), "Deleted room", "Deleted room R1")
			},
		},
		{
			name: "UnknownRoomStillSucceeds",
			setupMock: func(repo *room.MockRepository, _ *room.MockRecorder) {
				repo.EXPECT().DeleteRoom(gomock.Any(), id).Return(nil, room.ErrNotFound)
			},
		},
		{
			name: "RepoError",
			setupMock: func(repo *room.MockRepository, _ *room.MockRecorder) {
				repo.EXPECT().DeleteRoom(gomock.Any(), id).Return(nil, errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			repo := room.NewMockRepository(ctrl)
			rec := room.NewMockRecorder(ctrl)
			tt.setupMock(repo, rec)

			err := room.NewService(repo, rec).Delete(context.Background(), id)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestService_List(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := room.NewMockRepository(ctrl)
	repo.EXPECT().ListRooms(gomock.Any()).Return([]*room.Room{{Name: "A"}, {Name: "B"}}, nil)

	got, err := room.NewService(repo, room.NewMockRecorder(ctrl)).List(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, room.StatusOccupied, room.StatusOf(true))
	assert.Equal(t, room.StatusVacant, room.StatusOf(false))
}
