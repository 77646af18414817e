package invoice

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/rentbook/internal/export"
	"github.com/MrJamesThe3rd/rentbook/internal/http/respond"
	roomHandler "github.com/MrJamesThe3rd/rentbook/internal/http/room"
	"github.com/MrJamesThe3rd/rentbook/internal/invoice"
	"github.com/MrJamesThe3rd/rentbook/internal/invoice/printable"
	"github.com/MrJamesThe3rd/rentbook/internal/readings"
)

const (
	maxUploadSize      = 10 << 20
	skippedItemsHeader = "X-Skipped-Items"
)

type Handler struct {
	svc       *invoice.Service
	printable *printable.Service
	export    *export.Service
	readings  *readings.Parser
	now       func() time.Time
}

func NewHandler(svc *invoice.Service, printableSvc *printable.Service, exportSvc *export.Service) *Handler {
	return &Handler{
		svc:       svc,
		printable: printableSvc,
		export:    exportSvc,
		readings:  readings.NewParser(),
		now:       time.Now,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.generate)
	r.Post("/import", h.importReadings)
	r.Get("/export", h.exportPeriod)
	r.Get("/print/{id}", h.print)
	r.Put("/{id}", h.setPaid)
	r.Delete("/{id}", h.delete)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.List(r.Context(), invoice.ListFilter{})
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "failed to list invoices", err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(list))
}

type generateItemRequest struct {
	RoomID     string `json:"roomId"`
	ElecBegin  int64  `json:"elecBegin"`
	ElecEnd    int64  `json:"elecEnd"`
	WaterBegin int64  `json:"waterBegin"`
	WaterEnd   int64  `json:"waterEnd"`
	OtherFee   int64  `json:"otherFee"`
	Month      int    `json:"month"`
	Year       int    `json:"year"`
}

type generateRequest struct {
	Invoices []generateItemRequest `json:"invoices" validate:"required,dive"`
}

func (h *Handler) generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	now := h.now()

	items := make([]invoice.GenerateItem, 0, len(req.Invoices))
	for _, it := range req.Invoices {
		// An unparseable id resolves to no room and is skipped like any other unknown room.
		roomID, err := uuid.Parse(it.RoomID)
		if err != nil {
			roomID = uuid.Nil
		}

		item := invoice.GenerateItem{
			RoomID:     roomID,
			ElecBegin:  it.ElecBegin,
			ElecEnd:    it.ElecEnd,
			WaterBegin: it.WaterBegin,
			WaterEnd:   it.WaterEnd,
			OtherFee:   it.OtherFee,
			Month:      it.Month,
			Year:       it.Year,
		}

		if item.Month == 0 && item.Year == 0 {
			item.Month, item.Year = int(now.Month()), now.Year()
		}

		items = append(items, item)
	}

	h.runGenerate(w, r, items)
}

func (h *Handler) importReadings(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respond.Error(w, http.StatusBadRequest, "failed to parse form: "+err.Error(), err)
		return
	}

	period, err := h.periodFromValues(r.FormValue("month"), r.FormValue("year"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error(), err)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "file field is required", err)
		return
	}
	defer file.Close()

	items, err := h.readings.Parse(file, period)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error(), err)
		return
	}

	h.runGenerate(w, r, items)
}

func (h *Handler) runGenerate(w http.ResponseWriter, r *http.Request, items []invoice.GenerateItem) {
	result, err := h.svc.Generate(r.Context(), items)
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "failed to generate invoices", err)
		return
	}

	if n := len(result.Skipped); n > 0 {
		slog.Warn("invoice items skipped", "count", n, "submitted", len(items))
	}

	w.Header().Set(skippedItemsHeader, strconv.Itoa(len(result.Skipped)))
	respond.JSON(w, http.StatusCreated, toResponseList(result.Created))
}

type setPaidRequest struct {
	Paid *bool `json:"paid" validate:"required"`
}

func (h *Handler) setPaid(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid id", err)
		return
	}

	var req setPaidRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	inv, err := h.svc.SetPaid(r.Context(), id, *req.Paid)
	if err != nil {
		h.writeLookupError(w, err, "failed to update invoice")
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(inv))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid id", err)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		h.writeLookupError(w, err, "failed to delete invoice")
		return
	}

	respond.OK(w)
}

func (h *Handler) print(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid id", err)
		return
	}

	doc, err := h.printable.Document(r.Context(), id)
	if err != nil {
		h.writeLookupError(w, err, "failed to load invoice")
		return
	}

	var buf bytes.Buffer
	if err := printable.Render(&buf, doc); err != nil {
		respond.Error(w, http.StatusInternalServerError, "failed to render invoice", err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}

func (h *Handler) exportPeriod(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	period, err := h.periodFromValues(q.Get("month"), q.Get("year"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error(), err)
		return
	}

	base := fmt.Sprintf("invoices-%d-%02d", period.Year, period.Month)

	switch format := q.Get("format"); format {
	case "", "xlsx":
		data, err := h.export.Workbook(r.Context(), period.Month, period.Year)
		if err != nil {
			respond.Error(w, http.StatusInternalServerError, "failed to export invoices", err)
			return
		}

		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", base+".xlsx"))

		if _, err := w.Write(data); err != nil {
			slog.Error("failed to write response", "error", err)
		}
	case "zip":
		var buf bytes.Buffer
		if err := h.export.Bundle(r.Context(), period.Month, period.Year, &buf); err != nil {
			respond.Error(w, http.StatusInternalServerError, "failed to export invoices", err)
			return
		}

		w.Header().Set("Content-Type", "application/zip")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", base+".zip"))

		if _, err := buf.WriteTo(w); err != nil {
			slog.Error("failed to write response", "error", err)
		}
	default:
		respond.Error(w, http.StatusBadRequest, "unsupported format: "+format, nil)
	}
}

func (h *Handler) writeLookupError(w http.ResponseWriter, err error, msg string) {
	if errors.Is(err, invoice.ErrNotFound) {
		respond.Error(w, http.StatusNotFound, "invoice not found", err)
		return
	}

	respond.Error(w, http.StatusInternalServerError, msg, err)
}

// periodFromValues parses optional month/year parameters, defaulting each to
// the current one.
func (h *Handler) periodFromValues(month, year string) (readings.Period, error) {
	now := h.now()
	p := readings.Period{Month: int(now.Month()), Year: now.Year()}

	if month != "" {
		m, err := strconv.Atoi(month)
		if err != nil || m < 1 || m > 12 {
			return p, fmt.Errorf("invalid month %q", month)
		}

		p.Month = m
	}

	if year != "" {
		y, err := strconv.Atoi(year)
		if err != nil || y < 1 {
			return p, fmt.Errorf("invalid year %q", year)
		}

		p.Year = y
	}

	return p, nil
}

type response struct {
	ID         uuid.UUID             `json:"id"`
	Code       string                `json:"code"`
	RoomID     uuid.UUID             `json:"roomId"`
	Room       *roomHandler.Response `json:"room"`
	RoomName   string                `json:"roomName"`
	RoomPrice  int64                 `json:"roomPrice"`
	ElecBegin  int64                 `json:"elecBegin"`
	ElecEnd    int64                 `json:"elecEnd"`
	ElecUsed   int64                 `json:"elecUsed"`
	ElecTotal  int64                 `json:"elecTotal"`
	WaterBegin int64                 `json:"waterBegin"`
	WaterEnd   int64                 `json:"waterEnd"`
	WaterUsed  int64                 `json:"waterUsed"`
	WaterTotal int64                 `json:"waterTotal"`
	Trash      int64                 `json:"trash"`
	Wifi       int64                 `json:"wifi"`
	ServiceFee int64                 `json:"serviceFee"`
	OtherFee   int64                 `json:"otherFee"`
	Total      int64                 `json:"total"`
	Paid       bool                  `json:"paid"`
	Month      int                   `json:"month"`
	Year       int                   `json:"year"`
	CreatedAt  time.Time             `json:"createdAt"`
}

func toResponse(inv *invoice.Invoice) response {
	return response{
		ID:         inv.ID,
		Code:       inv.Code,
		RoomID:     inv.RoomID,
		Room:       roomHandler.ToResponse(inv.Room),
		RoomName:   inv.RoomName,
		RoomPrice:  inv.RoomPrice,
		ElecBegin:  inv.ElecBegin,
		ElecEnd:    inv.ElecEnd,
		ElecUsed:   inv.ElecUsed,
		ElecTotal:  inv.ElecTotal,
		WaterBegin: inv.WaterBegin,
		WaterEnd:   inv.WaterEnd,
		WaterUsed:  inv.WaterUsed,
		WaterTotal: inv.WaterTotal,
		Trash:      inv.TrashFee,
		Wifi:       inv.WifiFee,
		ServiceFee: inv.ServiceFee,
		OtherFee:   inv.OtherFee,
		Total:      inv.Total,
		Paid:       inv.Paid,
		Month:      inv.Month,
		Year:       inv.Year,
		CreatedAt:  inv.CreatedAt,
	}
}

func toResponseList(list []*invoice.Invoice) []response {
	resp := make([]response, 0, len(list))
	for _, inv := range list {
		resp = append(resp, toResponse(inv))
	}

	return resp
}
