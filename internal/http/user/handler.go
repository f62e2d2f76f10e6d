package user

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/centralcaixa/backoffice/internal/brl"
	"github.com/centralcaixa/backoffice/internal/plan"
	"github.com/centralcaixa/backoffice/internal/user"
)

type Handler struct {
	users *user.Service
	plans *plan.Service
}

func NewHandler(users *user.Service, plans *plan.Service) *Handler {
	return &Handler{users: users, plans: plans}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Post("/{id}/plan", h.applyPlan)
}

type userResponse struct {
	ID                 int64   `json:"id"`
	Name               string  `json:"name,omitempty"`
	Email              string  `json:"email,omitempty"`
	Login              string  `json:"login"`
	Wallet             int64   `json:"wallet"`
	WalletDisplay      string  `json:"wallet_display"`
	PlanBalance        int64   `json:"plan_balance"`
	PlanBalanceDisplay string  `json:"plan_balance_display"`
	Plan               string  `json:"plan,omitempty"`
	PlanDiscount       int     `json:"plan_discount,omitempty"`
	PlanEnd            *string `json:"plan_end,omitempty"`
	PlanDaysLeft       *int    `json:"plan_days_left,omitempty"`
	Notes              string  `json:"notes,omitempty"`
}

func toResponse(u *user.User) userResponse {
	resp := userResponse{
		ID:                 u.ID,
		Name:               u.Name,
		Email:              u.Email,
		Login:              u.Login,
		Wallet:             u.WalletCents,
		WalletDisplay:      brl.FormatCents(u.WalletCents),
		PlanBalance:        u.PlanBalanceCents,
		PlanBalanceDisplay: brl.FormatCents(u.PlanBalanceCents),
		Plan:               u.Plan,
		PlanDiscount:       u.PlanDiscount,
		Notes:              u.Notes,
	}

	if u.PlanEnd != nil {
		s := brl.FormatDate(*u.PlanEnd)
		resp.PlanEnd = &s

		days := brl.RemainingDays(*u.PlanEnd, brl.Now())
		resp.PlanDaysLeft = &days
	}

	return resp
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := user.ListFilter{Term: q.Get("q")}

	if n, err := strconv.Atoi(q.Get("limit")); err == nil && n > 0 {
		filter.Limit = n
	}

	if n, err := strconv.Atoi(q.Get("offset")); err == nil && n > 0 {
		filter.Offset = n
	}

	users, err := h.users.List(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]userResponse, len(users))
	for i, u := range users {
		resp[i] = toResponse(u)
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	u, err := h.users.Get(r.Context(), id)
	if err != nil {
		userError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(u)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type createUserRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Login      string `json:"login"`
	PlanSlug   string `json:"plan_slug"`
	CustomDays int    `json:"custom_days"`
}

// create registers a user and, when plan_slug is present, starts them on that
// plan in the same request: balance credited and end date counted from today.
func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var selected *plan.Plan

	if req.PlanSlug != "" {
		var err error

		selected, err = h.plans.GetBySlug(r.Context(), req.PlanSlug)
		if err != nil {
			if errors.Is(err, plan.ErrNotFound) {
				http.Error(w, "plan not found", http.StatusBadRequest)
				return
			}

			http.Error(w, "internal error", http.StatusInternalServerError)

			return
		}
	}

	u, err := h.users.Create(r.Context(), user.CreateParams{
		Name:  req.Name,
		Email: req.Email,
		Login: req.Login,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if selected != nil {
		editor := user.NewEditor(u)
		editor.SelectPlan(selected)
		editor.SetAddBalance(true)
		editor.SetExtendDays(true)
		editor.SetCustomDays(req.CustomDays)

		u, err = h.savePlanEdit(r.Context(), u.ID, editor, selected)
		if err != nil {
			userError(w, err)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(u)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateUserRequest struct {
	Name   *string `json:"name"`
	Email  *string `json:"email"`
	Notes  *string `json:"notes"`
	Wallet *int64  `json:"wallet"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	var req updateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	u, err := h.users.Update(r.Context(), id, user.UpdateParams{
		Name:        req.Name,
		Email:       req.Email,
		Notes:       req.Notes,
		WalletCents: req.Wallet,
	})
	if err != nil {
		userError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(u)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type applyPlanRequest struct {
	PlanSlug   string `json:"plan_slug"`
	AddBalance bool   `json:"add_balance"`
	ExtendDays bool   `json:"extend_days"`
	CustomDays int    `json:"custom_days"`
}

// applyPlan runs one edit session server side: load the user, derive the new
// balance and end date from the toggles, and persist the result.
func (h *Handler) applyPlan(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	var req applyPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	u, err := h.users.Get(r.Context(), id)
	if err != nil {
		userError(w, err)
		return
	}

	editor := user.NewEditor(u)
	editor.SetAddBalance(req.AddBalance)
	editor.SetExtendDays(req.ExtendDays)
	editor.SetCustomDays(req.CustomDays)

	var selected *plan.Plan

	if req.PlanSlug != "" {
		selected, err = h.plans.GetBySlug(r.Context(), req.PlanSlug)
		if err != nil {
			if errors.Is(err, plan.ErrNotFound) {
				http.Error(w, "plan not found", http.StatusBadRequest)
				return
			}

			http.Error(w, "internal error", http.StatusInternalServerError)

			return
		}

		editor.SelectPlan(selected)
	}

	updated, err := h.savePlanEdit(r.Context(), id, editor, selected)
	if err != nil {
		userError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(updated)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// savePlanEdit persists the outcome of an editor session.
func (h *Handler) savePlanEdit(ctx context.Context, id int64, editor *user.Editor, selected *plan.Plan) (*user.User, error) {
	balance := editor.PlanBalance()
	end := editor.PlanEnd(time.Now())

	params := user.UpdateParams{
		PlanBalanceCents: &balance,
		PlanEnd:          end,
		ClearPlanEnd:     end == nil,
	}

	if selected != nil {
		params.Plan = &selected.Slug
		params.PlanDiscount = &selected.DiscountPercent
	}

	return h.users.Update(ctx, id, params)
}

func userID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return 0, false
	}

	return id, true
}

func userError(w http.ResponseWriter, err error) {
	if errors.Is(err, user.ErrNotFound) {
		http.Error(w, "user not found", http.StatusNotFound)
		return
	}

	http.Error(w, "internal error", http.StatusInternalServerError)
}
