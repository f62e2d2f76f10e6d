package plan

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a plan does not exist or is not active.
var ErrNotFound = errors.New("plan not found")

// Plan is a subscription offering sold by the platform.
type Plan struct {
	ID              int64
	Name            string
	Slug            string
	PriceCents      int64
	DiscountPercent int // default discount applied when assigning the plan
	DurationDays    int // 0 means no fixed duration
}

//go:generate mockgen -source=plan.go -destination=repository_mock.go -package=plan
type Repository interface {
	ListActivePlans(ctx context.Context) ([]*Plan, error)
	GetPlanBySlug(ctx context.Context, slug string) (*Plan, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListActive(ctx context.Context) ([]*Plan, error) {
	return s.repo.ListActivePlans(ctx)
}

func (s *Service) GetBySlug(ctx context.Context, slug string) (*Plan, error) {
	return s.repo.GetPlanBySlug(ctx, slug)
}
