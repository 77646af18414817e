package room

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/rentbook/internal/http/respond"
	"github.com/MrJamesThe3rd/rentbook/internal/room"
)

type Handler struct {
	svc *room.Service
}

func NewHandler(svc *room.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Delete("/{id}", h.delete)
}

type Response struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	Price       int64       `json:"price"`
	Description string      `json:"description"`
	Status      room.Status `json:"status"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// ToResponse is shared with the occupancy and invoice handlers, which embed rooms.
func ToResponse(r *room.Room) *Response {
	if r == nil {
		return nil
	}

	return &Response{
		ID:          r.ID,
		Name:        r.Name,
		Price:       r.BasePrice,
		Description: r.Description,
		Status:      r.Status,
		CreatedAt:   r.CreatedAt,
	}
}

type createRoomRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Price       int64  `json:"price" validate:"gte=0"`
	Description string `json:"description" validate:"max=1000"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.svc.List(r.Context())
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "failed to list rooms", err)
		return
	}

	resp := make([]*Response, 0, len(rooms))
	for _, rm := range rooms {
		resp = append(resp, ToResponse(rm))
	}

	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createRoomRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	created, err := h.svc.Create(r.Context(), room.CreateParams{
		Name:        req.Name,
		BasePrice:   req.Price,
		Description: req.Description,
	})
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "failed to create room", err)
		return
	}

	respond.JSON(w, http.StatusCreated, ToResponse(created))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid id", err)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		respond.Error(w, http.StatusInternalServerError, "failed to delete room", err)
		return
	}

	respond.OK(w)
}
