package coupon

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/centralcaixa/backoffice/internal/brl"
	"github.com/centralcaixa/backoffice/internal/coupon"
)

type Handler struct {
	svc *coupon.Service
}

func NewHandler(svc *coupon.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/usage", h.usage)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Patch("/{id}/toggle", h.toggle)
	r.Delete("/{id}", h.delete)
	r.Get("/{id}/usage", h.usage)
}

// flexValue accepts both JSON numbers and numeric strings. The panel's form
// posts whatever the input field held, so 10 and "10" arrive as centavos
// while a fractional "10,50" is a reais amount and converts to 1050.
type flexValue int64

func (v *flexValue) UnmarshalJSON(data []byte) error {
	raw := string(bytes.TrimSpace(data))

	if len(raw) > 1 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}

		raw = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	}

	d, err := decimal.NewFromString(raw)
	if err != nil {
		return fmt.Errorf("invalid numeric value %q", raw)
	}

	if !d.IsInteger() {
		d = d.Mul(decimal.NewFromInt(100))
	}

	*v = flexValue(d.Round(0).IntPart())

	return nil
}

type createCouponRequest struct {
	Code        string      `json:"code"`
	Description string      `json:"description"`
	Kind        coupon.Kind `json:"kind"`
	Value       flexValue   `json:"value"`
	UseLimit    *flexValue  `json:"use_limit"`
	ValidUntil  *string     `json:"valid_until"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createCouponRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	params := coupon.CreateParams{
		Code:        req.Code,
		Description: req.Description,
		Kind:        req.Kind,
		ValueCents:  int64(req.Value),
	}

	if req.UseLimit != nil {
		limit := int(*req.UseLimit)
		params.UseLimit = &limit
	}

	if req.ValidUntil != nil {
		t, err := parseValidUntil(*req.ValidUntil)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		params.ValidUntil = &t
	}

	c, err := h.svc.Create(r.Context(), params)
	if err != nil {
		if errors.Is(err, coupon.ErrCodeTaken) {
			http.Error(w, "coupon code already in use", http.StatusConflict)
			return
		}

		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(c, brl.Now())); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type listCouponsResponse struct {
	Stats   statsResponse    `json:"stats"`
	Coupons []couponResponse `json:"coupons"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	coupons, err := h.svc.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	now := brl.Now()
	stats := coupon.Summarize(coupons, now)

	q := r.URL.Query()
	filtered := coupon.Filter(coupons, q.Get("q"), coupon.Status(q.Get("status")))

	resp := listCouponsResponse{
		Stats: statsResponse{
			Total:     stats.Total,
			Active:    stats.Active,
			Expired:   stats.Expired,
			TotalUses: stats.TotalUses,
		},
		Coupons: toResponseList(filtered, now),
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.couponID(w, r)
	if !ok {
		return
	}

	c, err := h.svc.Get(r.Context(), id)
	if err != nil {
		h.couponError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(c, brl.Now())); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateCouponRequest struct {
	Description *string    `json:"description"`
	Value       *flexValue `json:"value"`
	UseLimit    *flexValue `json:"use_limit"`
	ValidUntil  *string    `json:"valid_until"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.couponID(w, r)
	if !ok {
		return
	}

	var req updateCouponRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	c, err := h.svc.Get(r.Context(), id)
	if err != nil {
		h.couponError(w, err)
		return
	}

	if req.Description != nil {
		c.Description = *req.Description
	}

	if req.Value != nil {
		c.ValueCents = int64(*req.Value)
	}

	if req.UseLimit != nil {
		limit := int(*req.UseLimit)
		c.UseLimit = &limit
	}

	if req.ValidUntil != nil {
		t, err := parseValidUntil(*req.ValidUntil)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		c.ValidUntil = &t
	}

	if err := h.svc.Update(r.Context(), c); err != nil {
		h.couponError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(c, brl.Now())); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) toggle(w http.ResponseWriter, r *http.Request) {
	id, ok := h.couponID(w, r)
	if !ok {
		return
	}

	status, err := h.svc.Toggle(r.Context(), id)
	if err != nil {
		h.couponError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(map[string]coupon.Status{"status": status}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.couponID(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		h.couponError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) usage(w http.ResponseWriter, r *http.Request) {
	var couponID *int64

	if s := chi.URLParam(r, "id"); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		couponID = &id
	}

	usages, err := h.svc.Usage(r.Context(), couponID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toUsageList(usages)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) couponID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return 0, false
	}

	return id, true
}

func (h *Handler) couponError(w http.ResponseWriter, err error) {
	if errors.Is(err, coupon.ErrNotFound) {
		http.Error(w, "coupon not found", http.StatusNotFound)
		return
	}

	http.Error(w, "internal error", http.StatusInternalServerError)
}

// parseValidUntil accepts the date formats the panel has posted over time.
// Date-only values expire at the end of that day, Brasília time.
func parseValidUntil(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}

	if t, err := time.ParseInLocation(time.DateOnly, s, brl.Location()); err == nil {
		return t.Add(24*time.Hour - time.Second), nil
	}

	return time.Time{}, fmt.Errorf("invalid valid_until: %q", s)
}
