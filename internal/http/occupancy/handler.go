package occupancy

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/rentbook/internal/http/respond"
	roomHandler "github.com/MrJamesThe3rd/rentbook/internal/http/room"
	"github.com/MrJamesThe3rd/rentbook/internal/occupancy"
)

type Handler struct {
	svc *occupancy.Service
}

func NewHandler(svc *occupancy.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.moveIn)
	r.Delete("/{id}", h.moveOut)
}

type response struct {
	ID        uuid.UUID             `json:"id"`
	RoomID    uuid.UUID             `json:"roomId"`
	Room      *roomHandler.Response `json:"room"`
	Tenant    string                `json:"tenant"`
	Active    bool                  `json:"active"`
	CreatedAt time.Time             `json:"createdAt"`
}

func toResponse(o *occupancy.Occupancy) response {
	return response{
		ID:        o.ID,
		RoomID:    o.RoomID,
		Room:      roomHandler.ToResponse(o.Room),
		Tenant:    o.Tenant,
		Active:    o.Active,
		CreatedAt: o.CreatedAt,
	}
}

type moveInRequest struct {
	RoomID uuid.UUID `json:"roomId" validate:"required"`
	Tenant string    `json:"tenant" validate:"required,max=200"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.ListActive(r.Context())
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "failed to list occupancy", err)
		return
	}

	resp := make([]response, 0, len(list))
	for _, o := range list {
		resp = append(resp, toResponse(o))
	}

	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) moveIn(w http.ResponseWriter, r *http.Request) {
	var req moveInRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	o, err := h.svc.MoveIn(r.Context(), req.RoomID, req.Tenant)
	if err != nil {
		switch {
		case errors.Is(err, occupancy.ErrRoomNotFound):
			respond.Error(w, http.StatusBadRequest, "room not found", err)
		case errors.Is(err, occupancy.ErrRoomOccupied):
			respond.Error(w, http.StatusBadRequest, "room is already occupied", err)
		default:
			respond.Error(w, http.StatusInternalServerError, "failed to move in", err)
		}

		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(o))
}

func (h *Handler) moveOut(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid id", err)
		return
	}

	if err := h.svc.MoveOut(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, occupancy.ErrNotFound):
			respond.Error(w, http.StatusNotFound, "occupancy not found", err)
		case errors.Is(err, occupancy.ErrAlreadyInactive):
			respond.Error(w, http.StatusBadRequest, "room already returned", err)
		default:
			respond.Error(w, http.StatusInternalServerError, "failed to move out", err)
		}

		return
	}

	respond.OK(w)
}
