package dashboard

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// StatsStore reads the totals row the platform maintains. The row is
// refreshed by the platform's own jobs on its own schedule; columns it has
// not filled yet are NULL and stay nil here.
type StatsStore struct {
	db *sql.DB
}

func NewStatsStore(db *sql.DB) *StatsStore {
	return &StatsStore{db: db}
}

func (s *StatsStore) GetStats(ctx context.Context) (*Stats, error) {
	query := `
		SELECT
			cash_balance_cents,
			total_recharges_cents,
			total_commissions_cents,
			total_referrals,
			plan_sales_cents,
			payment_pix_cents,
			payment_card_cents
		FROM platform_stats
		ORDER BY refreshed_at DESC
		LIMIT 1
	`

	var (
		cashBalance      sql.NullInt64
		totalRecharges   sql.NullInt64
		totalCommissions sql.NullInt64
		totalReferrals   sql.NullInt64
		planSales        sql.NullInt64
		paymentPIX       sql.NullInt64
		paymentCard      sql.NullInt64
	)

	err := s.db.QueryRowContext(ctx, query).Scan(
		&cashBalance,
		&totalRecharges,
		&totalCommissions,
		&totalReferrals,
		&planSales,
		&paymentPIX,
		&paymentCard,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// No totals row yet: every field absent, callers fall back.
			return &Stats{}, nil
		}

		return nil, fmt.Errorf("querying platform stats: %w", err)
	}

	return &Stats{
		CashBalanceCents:      nullable(cashBalance),
		TotalRechargesCents:   nullable(totalRecharges),
		TotalCommissionsCents: nullable(totalCommissions),
		TotalReferrals:        nullable(totalReferrals),
		PlanSalesCents:        nullable(planSales),
		PaymentPIXCents:       nullable(paymentPIX),
		PaymentCardCents:      nullable(paymentCard),
	}, nil
}

func nullable(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}

	return &n.Int64
}
