package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/centralcaixa/backoffice/internal/user"
)

type scanner interface {
	Scan(dest ...any) error
}

const selectColumns = `
	id, name, email, login, wallet_cents, plan_balance_cents,
	plan, plan_discount, plan_start, plan_end, notes, created_at
`

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func scanUser(row scanner) (*user.User, error) {
	var (
		u            user.User
		name         sql.NullString
		email        sql.NullString
		plan         sql.NullString
		planDiscount sql.NullInt64
		planStart    sql.NullTime
		planEnd      sql.NullTime
		notes        sql.NullString
	)

	err := row.Scan(
		&u.ID,
		&name,
		&email,
		&u.Login,
		&u.WalletCents,
		&u.PlanBalanceCents,
		&plan,
		&planDiscount,
		&planStart,
		&planEnd,
		&notes,
		&u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	u.Name = name.String
	u.Email = email.String
	u.Plan = plan.String
	u.PlanDiscount = int(planDiscount.Int64)
	u.Notes = notes.String

	if planStart.Valid {
		u.PlanStart = &planStart.Time
	}

	if planEnd.Valid {
		u.PlanEnd = &planEnd.Time
	}

	return &u, nil
}

func (s *Store) ListUsers(ctx context.Context, filter user.ListFilter) ([]*user.User, error) {
	query := `
		SELECT ` + selectColumns + `
		FROM users
		WHERE deleted_at IS NULL
	`

	args := []any{}

	if filter.Term != "" {
		args = append(args, "%"+filter.Term+"%")
		n := fmt.Sprint(len(args))
		query += ` AND (name ILIKE $` + n + ` OR email ILIKE $` + n + ` OR login ILIKE $` + n + `)`
	}

	query += ` ORDER BY id DESC`

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += ` LIMIT $` + fmt.Sprint(len(args))
	}

	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += ` OFFSET $` + fmt.Sprint(len(args))
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying users: %w", err)
	}
	defer rows.Close()

	var users []*user.User

	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning user: %w", err)
		}

		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating users: %w", err)
	}

	return users, nil
}

func (s *Store) GetUser(ctx context.Context, id int64) (*user.User, error) {
	query := `
		SELECT ` + selectColumns + `
		FROM users
		WHERE id = $1 AND deleted_at IS NULL
	`

	u, err := scanUser(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, user.ErrNotFound
		}

		return nil, fmt.Errorf("querying user: %w", err)
	}

	return u, nil
}

func (s *Store) CreateUser(ctx context.Context, params user.CreateParams) (*user.User, error) {
	query := `
		INSERT INTO users (name, email, login)
		VALUES ($1, $2, $3)
		RETURNING ` + selectColumns

	u, err := scanUser(s.db.QueryRowContext(ctx, query, params.Name, params.Email, params.Login))
	if err != nil {
		return nil, fmt.Errorf("inserting user: %w", err)
	}

	return u, nil
}

// UpdateUser applies a partial update: nil params keep the stored value.
// ClearPlanEnd wins over PlanEnd so an edit session can remove the date.
func (s *Store) UpdateUser(ctx context.Context, id int64, params user.UpdateParams) (*user.User, error) {
	query := `
		UPDATE users
		SET
			name = COALESCE($1, name),
			email = COALESCE($2, email),
			notes = COALESCE($3, notes),
			wallet_cents = COALESCE($4, wallet_cents),
			plan_balance_cents = COALESCE($5, plan_balance_cents),
			plan = COALESCE($6, plan),
			plan_discount = COALESCE($7, plan_discount),
			plan_end = CASE WHEN $9 THEN NULL ELSE COALESCE($8, plan_end) END,
			updated_at = NOW()
		WHERE id = $10 AND deleted_at IS NULL
		RETURNING ` + selectColumns

	u, err := scanUser(s.db.QueryRowContext(ctx, query,
		params.Name,
		params.Email,
		params.Notes,
		params.WalletCents,
		params.PlanBalanceCents,
		params.Plan,
		params.PlanDiscount,
		params.PlanEnd,
		params.ClearPlanEnd,
		id,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, user.ErrNotFound
		}

		return nil, fmt.Errorf("updating user: %w", err)
	}

	return u, nil
}
