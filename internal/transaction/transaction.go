package transaction

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/centralcaixa/backoffice/internal/brl"
)

// ErrNotFound is returned when a transaction does not exist.
var ErrNotFound = errors.New("transaction not found")

// Transaction is a movement on the central cash ledger as recorded by the
// payment gateway feed. Every field except ID and Amount is untrusted: the
// feed populates type, payment_method and the user snapshot inconsistently,
// so consumers must treat blanks as non-matching rather than invalid.
type Transaction struct {
	ID            int64
	ExternalID    uuid.UUID // gateway-side id, for reconciliation
	Description   string
	Type          string // open vocabulary: "recarga", "credit", "plan_purchase", ...
	Amount        int64  // centavos; sign follows the gateway's convention
	PaymentMethod string // open vocabulary: "pix", "cartao", "card", "paypal", ...
	UserName      string
	UserEmail     string
	UserLogin     string
	// CreatedAt is kept exactly as received. The feed has produced
	// truncated and garbage timestamps before; parsing is best-effort
	// and happens at the point of use.
	CreatedAt  string
	Source     string
	ModuleName string
}

// createdAtLayouts are the timestamp shapes the gateway has been seen to emit.
var createdAtLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// When parses CreatedAt, naive timestamps are taken as Brasília time.
// ok is false when the raw value is empty or unparseable.
func (t *Transaction) When() (time.Time, bool) {
	raw := strings.TrimSpace(t.CreatedAt)
	if raw == "" {
		return time.Time{}, false
	}

	for _, layout := range createdAtLayouts {
		if ts, err := time.ParseInLocation(layout, raw, brl.Location()); err == nil {
			return ts, true
		}
	}

	return time.Time{}, false
}

// CreditTypes are the entry kinds rendered as credits on the activity feed.
// Anything else displays as a debit. Mirrors the panel's sign-coloring rule.
var CreditTypes = map[string]bool{
	"recarga":   true,
	"entrada":   true,
	"plano":     true,
	"indicacao": true,
	"comissao":  true,
}

// IsCredit reports whether the entry displays as money in.
func (t *Transaction) IsCredit() bool {
	return CreditTypes[strings.ToLower(strings.TrimSpace(t.Type))]
}
