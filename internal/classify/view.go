// Package classify decides which ledger entries belong to each admin
// dashboard and derives the figures shown on the summary cards.
//
// The gateway's type and payment_method vocabularies are open string sets,
// not enums, so every predicate combines the structured field with a
// free-text fallback on the description and tolerates missing fields.
package classify

import (
	"strings"

	"github.com/centralcaixa/backoffice/internal/transaction"
)

// View identifies one dashboard over the ledger.
type View string

const (
	ViewCash      View = "caixa"
	ViewRecharges View = "recargas"
	ViewReferrals View = "indicacoes"
	ViewPlans     View = "planos"
	ViewCard      View = "cartao"
	ViewPIX       View = "pix"
)

// ParseView maps a request parameter to a view. ok is false for anything
// unknown; callers fall back to the unfiltered ledger.
func ParseView(s string) (View, bool) {
	switch View(strings.ToLower(strings.TrimSpace(s))) {
	case ViewCash:
		return ViewCash, true
	case ViewRecharges:
		return ViewRecharges, true
	case ViewReferrals:
		return ViewReferrals, true
	case ViewPlans:
		return ViewPlans, true
	case ViewCard:
		return ViewCard, true
	case ViewPIX:
		return ViewPIX, true
	}

	return "", false
}

// Match reports whether tx belongs to the view.
func (v View) Match(tx *transaction.Transaction) bool {
	switch v {
	case ViewCash:
		return IsCashEntry(tx)
	case ViewRecharges:
		return IsRecharge(tx)
	case ViewReferrals:
		return IsReferral(tx)
	case ViewPlans:
		return IsPlanPurchase(tx)
	case ViewCard:
		return IsCardPayment(tx)
	case ViewPIX:
		return IsPIXPayment(tx)
	}

	return false
}

// Apply filters txs down to the view's members, preserving order.
func (v View) Apply(txs []*transaction.Transaction) []*transaction.Transaction {
	out := make([]*transaction.Transaction, 0, len(txs))

	for _, tx := range txs {
		if v.Match(tx) {
			out = append(out, tx)
		}
	}

	return out
}

// cashMethods are the payment rails that feed the central cash.
var cashMethods = []string{
	"pix", "credit", "cartao", "card", "paypal", "crypto", "criptomoeda", "cripto",
}

// cashBlocklist holds description fragments of entries the gateway is known
// to double-post into the caixa feed. Matched case-insensitively.
var cashBlocklist = []string{
	"lançamento duplicado",
	"estorno interno de caixa",
}

// IsCashEntry accepts credits arriving through a known payment rail and
// rejects the gateway's known double-postings.
func IsCashEntry(tx *transaction.Transaction) bool {
	if !eq(tx.Type, "credit") && tx.Amount <= 0 {
		return false
	}

	if !containsAny(tx.PaymentMethod, cashMethods...) {
		return false
	}

	return !containsAny(tx.Description, cashBlocklist...)
}

// IsRecharge accepts balance top-ups.
func IsRecharge(tx *transaction.Transaction) bool {
	return containsAny(tx.Description, "recarga", "depósito") || eq(tx.Type, "recharge")
}

// IsReferral accepts referral commission payouts.
func IsReferral(tx *transaction.Transaction) bool {
	return containsAny(tx.Description, "indicação", "comissão", "referral") ||
		eq(tx.Type, "commission") || eq(tx.Type, "indicacao")
}

// IsPlanPurchase accepts plan and subscription sales.
func IsPlanPurchase(tx *transaction.Transaction) bool {
	return containsAny(tx.Description, "plano", "assinatura") || eq(tx.Type, "plan_purchase")
}

// IsCardPayment accepts card entries by method first, description second.
func IsCardPayment(tx *transaction.Transaction) bool {
	return containsAny(tx.PaymentMethod, "cartao", "card", "credito") ||
		containsAny(tx.Type, "cartao", "card", "credito") ||
		containsAny(tx.Description, "cartão")
}

// IsPIXPayment accepts PIX entries. The method check is an exact comparison
// after trimming; type and description fall back to substring matching.
func IsPIXPayment(tx *transaction.Transaction) bool {
	return eq(tx.PaymentMethod, "pix") ||
		containsAny(tx.Type, "pix") ||
		containsAny(tx.Description, "pix")
}

func norm(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func eq(field, want string) bool {
	return norm(field) == want
}

func containsAny(field string, fragments ...string) bool {
	f := norm(field)
	if f == "" {
		return false
	}

	for _, fragment := range fragments {
		if strings.Contains(f, fragment) {
			return true
		}
	}

	return false
}
