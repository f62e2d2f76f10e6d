package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/centralcaixa/backoffice/internal/plan"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const selectColumns = `p.id, p.name, p.slug, p.price_cents, p.discount_percent, p.duration_days`

func (s *Store) ListActivePlans(ctx context.Context) ([]*plan.Plan, error) {
	query := `SELECT ` + selectColumns + `
		FROM plans p
		WHERE p.active
		ORDER BY p.price_cents ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing plans: %w", err)
	}
	defer rows.Close()

	var plans []*plan.Plan

	for rows.Next() {
		var p plan.Plan
		if err := rows.Scan(&p.ID, &p.Name, &p.Slug, &p.PriceCents, &p.DiscountPercent, &p.DurationDays); err != nil {
			return nil, fmt.Errorf("scanning plan: %w", err)
		}

		plans = append(plans, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating plans: %w", err)
	}

	return plans, nil
}

func (s *Store) GetPlanBySlug(ctx context.Context, slug string) (*plan.Plan, error) {
	query := `SELECT ` + selectColumns + ` FROM plans p WHERE p.slug = $1 AND p.active`

	var p plan.Plan

	err := s.db.QueryRowContext(ctx, query, slug).
		Scan(&p.ID, &p.Name, &p.Slug, &p.PriceCents, &p.DiscountPercent, &p.DurationDays)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, plan.ErrNotFound
		}

		return nil, fmt.Errorf("getting plan: %w", err)
	}

	return &p, nil
}
