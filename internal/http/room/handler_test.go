package room_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	roomHandler "github.com/MrJamesThe3rd/rentbook/internal/http/room"
	"github.com/MrJamesThe3rd/rentbook/internal/room"
)

func setup(t *testing.T) (*room.MockRepository, *room.MockRecorder, http.Handler) {
	ctrl := gomock.NewController(t)

	repo := room.NewMockRepository(ctrl)
	rec := room.NewMockRecorder(ctrl)

	r := chi.NewRouter()
	r.Route("/rooms", roomHandler.NewHandler(room.NewService(repo, rec)).Routes)

	return repo, rec, r
}

func TestHandler_Create(t *testing.T) {
	repo, rec, router := setup(t)

	repo.EXPECT().CreateRoom(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, r *room.Room) error {
			r.ID = uuid.New()
			return nil
		})
	rec.EXPECT().Append(gomock.Any(), "Added room", "Room A1 (1500000)")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/rooms/", strings.NewReader(`{"name":"A1","price":1500000}`))
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var got roomHandler.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "A1", got.Name)
	assert.Equal(t, room.StatusVacant, got.Status)
}

func TestHandler_Create_Invalid(t *testing.T) {
	_, _, router := setup(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/rooms/", strings.NewReader(`{"price":-5}`))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "validation failed")
}

func TestHandler_List(t *testing.T) {
	repo, _, router := setup(t)

	repo.EXPECT().ListRooms(gomock.Any()).Return([]*room.Room{
		{ID: uuid.New(), Name: "A1", Status: room.StatusOccupied},
	}, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/rooms/", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"occupied"`)
}

func TestHandler_Delete(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		setupMock  func(repo *room.MockRepository, rec *room.MockRecorder)
		wantStatus int
	}{
		{
			name:       "BadID",
			id:         "not-a-uuid",
			setupMock:  func(*room.MockRepository, *room.MockRecorder) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "UnknownRoomStillOK",
			id:   uuid.NewString(),
			setupMock: func(repo *room.MockRepository, _ *room.MockRecorder) {
				repo.EXPECT().DeleteRoom(gomock.Any(), gomock.Any()).Return(nil, room.ErrNotFound)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "Deleted",
			id:   uuid.NewString(),
			setupMock: func(repo *room.MockRepository, rec *room.MockRecorder) {
				repo.EXPECT().DeleteRoom(gomock.Any(), gomock.Any()).Return(&room.Room{Name: "A1"}, nil)
				rec.EXPECT().Append(gomock.Any(), "Deleted room", "Deleted room A1")
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, rec, router := setup(t)
			tt.setupMock(repo, rec)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/rooms/"+tt.id, nil))

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
