package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/centralcaixa/backoffice/internal/coupon"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

const selectColumns = `
	c.id, c.code, c.description, c.kind, c.value_cents, c.status,
	c.uses, c.use_limit, c.valid_until, c.created_at
`

func scanCoupon(s scanner) (*coupon.Coupon, error) {
	var (
		c        coupon.Coupon
		kind     string
		status   string
		useLimit sql.NullInt64
		validTil sql.NullTime
	)

	if err := s.Scan(
		&c.ID, &c.Code, &c.Description, &kind, &c.ValueCents, &status,
		&c.Uses, &useLimit, &validTil, &c.CreatedAt,
	); err != nil {
		return nil, err
	}

	c.Kind = coupon.Kind(kind)
	c.Status = coupon.Status(status)

	if useLimit.Valid {
		limit := int(useLimit.Int64)
		c.UseLimit = &limit
	}

	if validTil.Valid {
		t := validTil.Time
		c.ValidUntil = &t
	}

	return &c, nil
}

func (s *Store) CreateCoupon(ctx context.Context, c *coupon.Coupon) error {
	query := `
		INSERT INTO coupons (code, description, kind, value_cents, status, uses, use_limit, valid_until, created_at)
		VALUES ($1, $2, $3, $4, $5, 0, $6, $7, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		c.Code, c.Description, c.Kind, c.ValueCents, c.Status, c.UseLimit, c.ValidUntil,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return coupon.ErrCodeTaken
		}

		return fmt.Errorf("creating coupon: %w", err)
	}

	return nil
}

func (s *Store) GetCoupon(ctx context.Context, id int64) (*coupon.Coupon, error) {
	query := `SELECT ` + selectColumns + ` FROM coupons c WHERE c.id = $1`

	c, err := scanCoupon(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, coupon.ErrNotFound
		}

		return nil, fmt.Errorf("getting coupon: %w", err)
	}

	return c, nil
}

func (s *Store) ListCoupons(ctx context.Context) ([]*coupon.Coupon, error) {
	query := `SELECT ` + selectColumns + ` FROM coupons c ORDER BY c.created_at DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing coupons: %w", err)
	}
	defer rows.Close()

	var coupons []*coupon.Coupon

	for rows.Next() {
		c, err := scanCoupon(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning coupon: %w", err)
		}

		coupons = append(coupons, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating coupons: %w", err)
	}

	return coupons, nil
}

func (s *Store) UpdateCoupon(ctx context.Context, c *coupon.Coupon) error {
	query := `
		UPDATE coupons
		SET code = $1, description = $2, kind = $3, value_cents = $4,
			status = $5, use_limit = $6, valid_until = $7
		WHERE id = $8
	`

	res, err := s.db.ExecContext(ctx, query,
		c.Code, c.Description, c.Kind, c.ValueCents, c.Status, c.UseLimit, c.ValidUntil, c.ID,
	)
	if err != nil {
		return fmt.Errorf("updating coupon: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return coupon.ErrNotFound
	}

	return nil
}

func (s *Store) DeleteCoupon(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM coupons WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting coupon: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return coupon.ErrNotFound
	}

	return nil
}

func (s *Store) ListUsage(ctx context.Context, couponID *int64) ([]*coupon.Usage, error) {
	query := `
		SELECT u.id, u.coupon_id, u.user_id, u.user_email, u.user_login, u.user_cpf,
			u.user_phone, u.user_status, u.user_plan, u.referral_code,
			u.wallet_cents, u.plan_cents, u.signed_up_at,
			c.code, c.description, c.kind, u.original_cents, u.discount_cents, u.used_at
		FROM coupon_usages u
		JOIN coupons c ON c.id = u.coupon_id
	`

	var args []any

	if couponID != nil {
		query += " WHERE u.coupon_id = $1"
		args = append(args, *couponID)
	}

	query += " ORDER BY u.used_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing coupon usage: %w", err)
	}
	defer rows.Close()

	var usages []*coupon.Usage

	for rows.Next() {
		var (
			u    coupon.Usage
			kind string
		)

		if err := rows.Scan(
			&u.ID, &u.CouponID, &u.UserID, &u.UserEmail, &u.UserLogin, &u.UserCPF,
			&u.UserPhone, &u.UserStatus, &u.UserPlan, &u.ReferralCode,
			&u.WalletCents, &u.PlanCents, &u.SignedUpAt,
			&u.Code, &u.Description, &kind, &u.OriginalCents, &u.DiscountCents, &u.UsedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning coupon usage: %w", err)
		}

		u.Kind = coupon.Kind(kind)

		usages = append(usages, &u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating coupon usage: %w", err)
	}

	return usages, nil
}
