// Package dashboard assembles the per-area overview screens: a bounded
// window of gateway transactions filtered, deduplicated and summarized for
// one view, plus the platform's own running totals when it reports them.
package dashboard

import (
	"context"
	"fmt"

	"github.com/centralcaixa/backoffice/internal/brl"
	"github.com/centralcaixa/backoffice/internal/classify"
	"github.com/centralcaixa/backoffice/internal/transaction"
)

// Stats mirrors the totals endpoint of the platform. Every field is a
// pointer: the platform omits totals it has not computed yet, and an
// explicit zero must win over our locally summed fallback.
type Stats struct {
	CashBalanceCents      *int64
	TotalRechargesCents   *int64
	TotalCommissionsCents *int64
	TotalReferrals        *int64
	PlanSalesCents        *int64
	PaymentPIXCents       *int64
	PaymentCardCents      *int64
}

//go:generate mockgen -source=dashboard.go -destination=dashboard_mock.go -package=dashboard
type StatsRepository interface {
	GetStats(ctx context.Context) (*Stats, error)
}

type TransactionLister interface {
	List(ctx context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, error)
}

// Overview is everything one dashboard screen needs.
type Overview struct {
	View          classify.View
	Transactions  []*transaction.Transaction
	Summary       classify.Summary
	HeadlineCents int64
}

type Service struct {
	transactions TransactionLister
	stats        StatsRepository
}

func NewService(transactions TransactionLister, stats StatsRepository) *Service {
	return &Service{transactions: transactions, stats: stats}
}

// windowDays bounds how far back a dashboard reads. The platform feed is
// append-only and large; screens only ever page through recent activity.
const windowDays = 90

// Overview builds the screen for one view. Stats failures are not fatal:
// the platform totals endpoint flakes routinely, and the screen falls back
// to the locally computed sum, exactly as if the field were absent.
func (s *Service) Overview(ctx context.Context, view classify.View) (*Overview, error) {
	start := brl.Now().AddDate(0, 0, -windowDays)

	txs, err := s.transactions.List(ctx, transaction.ListFilter{StartDate: &start})
	if err != nil {
		return nil, fmt.Errorf("listing transactions for %s: %w", view, err)
	}

	matched := view.Apply(txs)
	deduped := classify.Dedupe(matched)
	summary := classify.Summarize(deduped, brl.Now())

	var server *int64

	stats, err := s.stats.GetStats(ctx)
	if err == nil && stats != nil {
		server = statFor(view, stats)
	}

	return &Overview{
		View:          view,
		Transactions:  deduped,
		Summary:       summary,
		HeadlineCents: classify.Headline(server, summary.TotalCents),
	}, nil
}

// Recent returns the latest credit entries across all views, for the
// activity feed on the landing screen.
func (s *Service) Recent(ctx context.Context, limit int) ([]*transaction.Transaction, error) {
	if limit <= 0 {
		limit = 20
	}

	txs, err := s.transactions.List(ctx, transaction.ListFilter{Limit: limit * 4})
	if err != nil {
		return nil, fmt.Errorf("listing recent transactions: %w", err)
	}

	var credits []*transaction.Transaction

	for _, tx := range txs {
		if tx.IsCredit() {
			credits = append(credits, tx)
		}
	}

	return classify.Page(classify.Dedupe(credits), 0, limit), nil
}

func statFor(view classify.View, stats *Stats) *int64 {
	switch view {
	case classify.ViewCash:
		return stats.CashBalanceCents
	case classify.ViewRecharges:
		return stats.TotalRechargesCents
	case classify.ViewReferrals:
		return stats.TotalCommissionsCents
	case classify.ViewPlans:
		return stats.PlanSalesCents
	case classify.ViewCard:
		return stats.PaymentCardCents
	case classify.ViewPIX:
		return stats.PaymentPIXCents
	default:
		return nil
	}
}
