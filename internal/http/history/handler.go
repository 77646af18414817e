package history

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/rentbook/internal/history"
	"github.com/MrJamesThe3rd/rentbook/internal/http/respond"
)

type Handler struct {
	svc *history.Service
}

func NewHandler(svc *history.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
}

type response struct {
	ID        uuid.UUID `json:"id"`
	Action    string    `json:"action"`
	Info      string    `json:"info"`
	CreatedAt time.Time `json:"createdAt"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	entries, err := h.svc.List(r.Context())
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "failed to list history", err)
		return
	}

	resp := make([]response, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, response{ID: e.ID, Action: e.Action, Info: e.Info, CreatedAt: e.CreatedAt})
	}

	respond.JSON(w, http.StatusOK, resp)
}
