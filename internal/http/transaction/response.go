package transaction

import (
	"github.com/google/uuid"

	"github.com/centralcaixa/backoffice/internal/brl"
	"github.com/centralcaixa/backoffice/internal/transaction"
)

type transactionResponse struct {
	ID            int64     `json:"id"`
	ExternalID    uuid.UUID `json:"external_id,omitempty"`
	Description   string    `json:"description"`
	Type          string    `json:"type,omitempty"`
	Amount        int64     `json:"amount"`
	AmountDisplay string    `json:"amount_display"`
	PaymentMethod string    `json:"payment_method,omitempty"`
	UserName      string    `json:"user_name,omitempty"`
	UserEmail     string    `json:"user_email,omitempty"`
	UserLogin     string    `json:"user_login,omitempty"`
	CreatedAt     string    `json:"created_at"`
	DateDisplay   string    `json:"date_display"`
	Source        string    `json:"source,omitempty"`
}

func toResponse(tx *transaction.Transaction) transactionResponse {
	display := brl.Placeholder
	if when, ok := tx.When(); ok {
		display = brl.FormatDateTime(when)
	}

	return transactionResponse{
		ID:            tx.ID,
		ExternalID:    tx.ExternalID,
		Description:   tx.Description,
		Type:          tx.Type,
		Amount:        tx.Amount,
		AmountDisplay: brl.FormatCents(tx.Amount),
		PaymentMethod: tx.PaymentMethod,
		UserName:      tx.UserName,
		UserEmail:     tx.UserEmail,
		UserLogin:     tx.UserLogin,
		CreatedAt:     tx.CreatedAt,
		DateDisplay:   display,
		Source:        tx.Source,
	}
}

func toResponseList(txs []*transaction.Transaction) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toResponse(tx)
	}

	return resp
}
