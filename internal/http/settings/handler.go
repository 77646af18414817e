package settings

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/rentbook/internal/http/respond"
	"github.com/MrJamesThe3rd/rentbook/internal/settings"
)

type Handler struct {
	svc *settings.Service
}

func NewHandler(svc *settings.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.get)
	r.Post("/", h.update)
}

type response struct {
	PriceElec  int64      `json:"priceElec"`
	PriceWater int64      `json:"priceWater"`
	PriceTrash int64      `json:"priceTrash"`
	PriceWifi  int64      `json:"priceWifi"`
	PriceOther int64      `json:"priceOther"`
	Version    int64      `json:"version"`
	UpdatedAt  *time.Time `json:"updatedAt,omitempty"`
}

func toResponse(s *settings.Settings) response {
	return response{
		PriceElec:  s.ElecUnitPrice,
		PriceWater: s.WaterUnitPrice,
		PriceTrash: s.TrashFee,
		PriceWifi:  s.WifiFee,
		PriceOther: s.OtherFee,
		Version:    s.Version,
		UpdatedAt:  s.UpdatedAt,
	}
}

type updateRequest struct {
	PriceElec  *int64 `json:"priceElec" validate:"required"`
	PriceWater *int64 `json:"priceWater" validate:"required"`
	PriceTrash *int64 `json:"priceTrash" validate:"required"`
	PriceWifi  *int64 `json:"priceWifi" validate:"required"`
	PriceOther *int64 `json:"priceOther" validate:"required"`
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	s, err := h.svc.Get(r.Context())
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "failed to load settings", err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(s))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	saved, err := h.svc.Update(r.Context(), settings.Settings{
		ElecUnitPrice:  *req.PriceElec,
		WaterUnitPrice: *req.PriceWater,
		TrashFee:       *req.PriceTrash,
		WifiFee:        *req.PriceWifi,
		OtherFee:       *req.PriceOther,
	})
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "failed to save settings", err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(saved))
}
