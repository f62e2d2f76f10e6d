package dashboard

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/centralcaixa/backoffice/internal/brl"
	"github.com/centralcaixa/backoffice/internal/classify"
	"github.com/centralcaixa/backoffice/internal/dashboard"
	"github.com/centralcaixa/backoffice/internal/transaction"
)

const defaultPageSize = 20

type Handler struct {
	svc *dashboard.Service
}

func NewHandler(svc *dashboard.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/recent", h.recent)
	r.Get("/{view}", h.overview)
}

type summaryResponse struct {
	Total        int64   `json:"total"`
	TotalDisplay string  `json:"total_display"`
	Count        int     `json:"count"`
	Average      float64 `json:"average"`
	TodayCount   int     `json:"today_count"`
	Today        int64   `json:"today"`
	TodayDisplay string  `json:"today_display"`
	UniqueUsers  int     `json:"unique_users"`
}

type overviewResponse struct {
	View            classify.View   `json:"view"`
	Headline        int64           `json:"headline"`
	HeadlineDisplay string          `json:"headline_display"`
	Summary         summaryResponse `json:"summary"`
	Total           int             `json:"total_transactions"`
	Transactions    []entryResponse `json:"transactions"`
}

type entryResponse struct {
	ID            int64  `json:"id"`
	Description   string `json:"description"`
	Type          string `json:"type,omitempty"`
	Amount        int64  `json:"amount"`
	AmountDisplay string `json:"amount_display"`
	PaymentMethod string `json:"payment_method,omitempty"`
	UserName      string `json:"user_name,omitempty"`
	DateDisplay   string `json:"date_display"`
}

func (h *Handler) overview(w http.ResponseWriter, r *http.Request) {
	view, ok := classify.ParseView(chi.URLParam(r, "view"))
	if !ok {
		http.Error(w, "unknown dashboard", http.StatusNotFound)
		return
	}

	overview, err := h.svc.Overview(r.Context(), view)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	txs := overview.Transactions

	q := r.URL.Query()
	if term, date := q.Get("q"), q.Get("date"); term != "" || date != "" {
		txs = classify.Search(txs, term, date)
	}

	total := len(txs)
	txs = classify.Page(txs, queryInt(r, "offset", 0), queryInt(r, "limit", defaultPageSize))

	entries := make([]entryResponse, len(txs))
	for i, tx := range txs {
		entries[i] = toEntry(tx)
	}

	resp := overviewResponse{
		View:            overview.View,
		Headline:        overview.HeadlineCents,
		HeadlineDisplay: brl.FormatCents(overview.HeadlineCents),
		Summary: summaryResponse{
			Total:        overview.Summary.TotalCents,
			TotalDisplay: brl.FormatCents(overview.Summary.TotalCents),
			Count:        overview.Summary.Count,
			Average:      overview.Summary.AverageCents,
			TodayCount:   overview.Summary.TodayCount,
			Today:        overview.Summary.TodayCents,
			TodayDisplay: brl.FormatCents(overview.Summary.TodayCents),
			UniqueUsers:  overview.Summary.UniqueUsers,
		},
		Total:        total,
		Transactions: entries,
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) recent(w http.ResponseWriter, r *http.Request) {
	txs, err := h.svc.Recent(r.Context(), queryInt(r, "limit", defaultPageSize))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	entries := make([]entryResponse, len(txs))
	for i, tx := range txs {
		entries[i] = toEntry(tx)
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(entries); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func toEntry(tx *transaction.Transaction) entryResponse {
	date := brl.Placeholder
	if when, ok := tx.When(); ok {
		date = brl.FormatDateTime(when)
	}

	return entryResponse{
		ID:            tx.ID,
		Description:   tx.Description,
		Type:          tx.Type,
		Amount:        tx.Amount,
		AmountDisplay: brl.FormatCents(tx.Amount),
		PaymentMethod: tx.PaymentMethod,
		UserName:      tx.UserName,
		DateDisplay:   date,
	}
}

func queryInt(r *http.Request, key string, fallback int) int {
	s := r.URL.Query().Get(key)
	if s == "" {
		return fallback
	}

	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return fallback
	}

	return n
}
