package user

import (
	"context"
	"fmt"
	"strings"
	"time"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=user
type Repository interface {
	ListUsers(ctx context.Context, filter ListFilter) ([]*User, error)
	GetUser(ctx context.Context, id int64) (*User, error)
	CreateUser(ctx context.Context, params CreateParams) (*User, error)
	UpdateUser(ctx context.Context, id int64, params UpdateParams) (*User, error)
}

type ListFilter struct {
	Term   string
	Limit  int
	Offset int
}

type CreateParams struct {
	Name  string
	Email string
	Login string
}

// UpdateParams carries the outcome of an edit session. Nil pointers leave the
// column untouched.
type UpdateParams struct {
	Name             *string
	Email            *string
	Notes            *string
	WalletCents      *int64
	PlanBalanceCents *int64
	Plan             *string
	PlanDiscount     *int
	PlanEnd          *time.Time
	ClearPlanEnd     bool
}

type Service struct {
	repository Repository
}

func NewService(repository Repository) *Service {
	return &Service{repository: repository}
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*User, error) {
	users, err := s.repository.ListUsers(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}

	return users, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*User, error) {
	user, err := s.repository.GetUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting user %d: %w", id, err)
	}

	return user, nil
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*User, error) {
	params.Login = strings.TrimSpace(params.Login)
	if params.Login == "" {
		return nil, fmt.Errorf("creating user: login is required")
	}

	user, err := s.repository.CreateUser(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	return user, nil
}

func (s *Service) Update(ctx context.Context, id int64, params UpdateParams) (*User, error) {
	user, err := s.repository.UpdateUser(ctx, id, params)
	if err != nil {
		return nil, fmt.Errorf("updating user %d: %w", id, err)
	}

	return user, nil
}
