package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transaction
type Repository interface {
	ListTransactions(ctx context.Context, filter ListFilter) ([]*Transaction, error)
	GetTransaction(ctx context.Context, id int64) (*Transaction, error)

	BeginBackfill(ctx context.Context, batch uuid.UUID) (BackfillTx, error)
}

// BackfillTx is a single locked statement-import batch.
type BackfillTx interface {
	FindExisting(ctx context.Context, params []CreateParams) (map[uuid.UUID]struct{}, error)
	CreateTransactions(ctx context.Context, txs []*Transaction) error
	Commit() error
	Rollback() error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ListFilter narrows the ledger window the dashboard screens fetch. The
// per-view membership predicates live in the classify package; the store only
// bounds the window by source, date and size.
type ListFilter struct {
	Source    string
	Limit     int
	StartDate *time.Time
	EndDate   *time.Time
}

// CreateParams carries one statement row headed for the ledger.
type CreateParams struct {
	ExternalID    uuid.UUID
	Description   string
	Type          string
	Amount        int64
	PaymentMethod string
	CreatedAt     string
	Source        string
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Transaction, error) {
	return s.repo.ListTransactions(ctx, filter)
}

func (s *Service) Get(ctx context.Context, id int64) (*Transaction, error) {
	return s.repo.GetTransaction(ctx, id)
}

// BackfillResult reports what a statement import did.
type BackfillResult struct {
	Imported []*Transaction
	Skipped  []CreateParams // already present, matched on external id
}

// Backfill inserts statement rows that are not yet on the ledger. Rows whose
// external id already exists are reported, not re-inserted, so re-running the
// same statement file is harmless.
func (s *Service) Backfill(ctx context.Context, params []CreateParams) (*BackfillResult, error) {
	if len(params) == 0 {
		return &BackfillResult{}, nil
	}

	batch := uuid.New()

	btx, err := s.repo.BeginBackfill(ctx, batch)
	if err != nil {
		return nil, fmt.Errorf("begin backfill: %w", err)
	}
	defer btx.Rollback()

	existing, err := btx.FindExisting(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("find existing: %w", err)
	}

	var (
		fresh   []CreateParams
		skipped []CreateParams
	)

	for _, p := range params {
		if _, ok := existing[p.ExternalID]; ok {
			skipped = append(skipped, p)
			continue
		}

		fresh = append(fresh, p)
	}

	txs := paramsToTransactions(fresh)
	if len(txs) > 0 {
		if err := btx.CreateTransactions(ctx, txs); err != nil {
			return nil, fmt.Errorf("create transactions: %w", err)
		}
	}

	if err := btx.Commit(); err != nil {
		return nil, fmt.Errorf("commit backfill: %w", err)
	}

	return &BackfillResult{Imported: txs, Skipped: skipped}, nil
}

func paramsToTransactions(params []CreateParams) []*Transaction {
	txs := make([]*Transaction, len(params))
	for i, p := range params {
		txs[i] = &Transaction{
			ExternalID:    p.ExternalID,
			Description:   p.Description,
			Type:          p.Type,
			Amount:        p.Amount,
			PaymentMethod: p.PaymentMethod,
			CreatedAt:     p.CreatedAt,
			Source:        p.Source,
		}
	}

	return txs
}
