package plan

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/centralcaixa/backoffice/internal/brl"
	"github.com/centralcaixa/backoffice/internal/plan"
)

type Handler struct {
	svc *plan.Service
}

func NewHandler(svc *plan.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/{slug}", h.get)
}

type planResponse struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Slug            string `json:"slug"`
	Price           int64  `json:"price"`
	PriceDisplay    string `json:"price_display"`
	DiscountPercent int    `json:"discount_percent,omitempty"`
	DurationDays    int    `json:"duration_days"`
}

func toResponse(p *plan.Plan) planResponse {
	return planResponse{
		ID:              p.ID,
		Name:            p.Name,
		Slug:            p.Slug,
		Price:           p.PriceCents,
		PriceDisplay:    brl.FormatCents(p.PriceCents),
		DiscountPercent: p.DiscountPercent,
		DurationDays:    p.DurationDays,
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	plans, err := h.svc.ListActive(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]planResponse, len(plans))
	for i, p := range plans {
		resp[i] = toResponse(p)
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		if errors.Is(err, plan.ErrNotFound) {
			http.Error(w, "plan not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(p)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
