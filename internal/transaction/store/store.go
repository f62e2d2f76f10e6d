package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/centralcaixa/backoffice/internal/transaction"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectColumns = `
	t.id, t.external_id, t.description, t.type, t.amount, t.payment_method,
	t.user_name, t.user_email, t.user_login, t.created_at, t.source, t.module_name
`

// scanTransaction reads one ledger row. The text columns carry whatever the
// gateway sent, NULLs included, so everything nullable goes through sql.Null*.
func scanTransaction(s scanner) (*transaction.Transaction, error) {
	var (
		tx                              transaction.Transaction
		typ, method, name, email, login sql.NullString
		createdAt, source, module       sql.NullString
	)

	if err := s.Scan(
		&tx.ID, &tx.ExternalID, &tx.Description, &typ, &tx.Amount, &method,
		&name, &email, &login, &createdAt, &source, &module,
	); err != nil {
		return nil, err
	}

	tx.Type = typ.String
	tx.PaymentMethod = method.String
	tx.UserName = name.String
	tx.UserEmail = email.String
	tx.UserLogin = login.String
	tx.CreatedAt = createdAt.String
	tx.Source = source.String
	tx.ModuleName = module.String

	return &tx, nil
}

func (s *Store) ListTransactions(ctx context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, error) {
	query := `SELECT ` + selectColumns + `
		FROM transactions t
		WHERE TRUE`

	var args []any

	argIdx := 1

	if filter.Source != "" {
		query += fmt.Sprintf(" AND t.source = $%d", argIdx)

		args = append(args, filter.Source)
		argIdx++
	}

	if filter.StartDate != nil {
		query += fmt.Sprintf(" AND t.created_at_ts >= $%d", argIdx)

		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil {
		query += fmt.Sprintf(" AND t.created_at_ts <= $%d", argIdx)

		args = append(args, *filter.EndDate)
		argIdx++
	}

	query += " ORDER BY t.id DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var txs []*transaction.Transaction

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transactions: %w", err)
	}

	return txs, nil
}

func (s *Store) GetTransaction(ctx context.Context, id int64) (*transaction.Transaction, error) {
	query := `SELECT ` + selectColumns + `
		FROM transactions t
		WHERE t.id = $1`

	tx, err := scanTransaction(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, transaction.ErrNotFound
		}

		return nil, fmt.Errorf("getting transaction: %w", err)
	}

	return tx, nil
}

type backfillTx struct {
	tx    *sql.Tx
	batch uuid.UUID
}

// BeginBackfill opens a statement-import batch holding an advisory lock so
// the same file cannot be ingested twice concurrently.
func (s *Store) BeginBackfill(ctx context.Context, batch uuid.UUID) (transaction.BackfillTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning backfill tx: %w", err)
	}

	if _, err := dbTx.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtext('tx_backfill'))"); err != nil {
		dbTx.Rollback()
		return nil, fmt.Errorf("acquiring backfill lock: %w", err)
	}

	return &backfillTx{tx: dbTx, batch: batch}, nil
}

func (b *backfillTx) Commit() error   { return b.tx.Commit() }
func (b *backfillTx) Rollback() error { return b.tx.Rollback() }

func (b *backfillTx) FindExisting(ctx context.Context, params []transaction.CreateParams) (map[uuid.UUID]struct{}, error) {
	if len(params) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, 0, len(params))
	for _, p := range params {
		ids = append(ids, p.ExternalID)
	}

	query := `SELECT external_id FROM transactions WHERE external_id = ANY($1)`

	rows, err := b.tx.QueryContext(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("finding existing rows: %w", err)
	}
	defer rows.Close()

	existing := make(map[uuid.UUID]struct{}, len(params))

	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning external id: %w", err)
		}

		existing[id] = struct{}{}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating external ids: %w", err)
	}

	return existing, nil
}

func (b *backfillTx) CreateTransactions(ctx context.Context, txs []*transaction.Transaction) error {
	query := `
		INSERT INTO transactions
			(external_id, description, type, amount, payment_method, created_at, created_at_ts, source, import_batch)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	for _, tx := range txs {
		var ts any
		if when, ok := tx.When(); ok {
			ts = when
		}

		err := b.tx.QueryRowContext(ctx, query,
			tx.ExternalID,
			tx.Description,
			tx.Type,
			tx.Amount,
			tx.PaymentMethod,
			tx.CreatedAt,
			ts,
			tx.Source,
			b.batch,
		).Scan(&tx.ID)
		if err != nil {
			return fmt.Errorf("creating transaction: %w", err)
		}
	}

	return nil
}
