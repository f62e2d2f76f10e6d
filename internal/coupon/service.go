package coupon

import (
	"context"
	"fmt"
	"strings"
	"time"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=coupon
type Repository interface {
	CreateCoupon(ctx context.Context, c *Coupon) error
	GetCoupon(ctx context.Context, id int64) (*Coupon, error)
	ListCoupons(ctx context.Context) ([]*Coupon, error)
	UpdateCoupon(ctx context.Context, c *Coupon) error
	DeleteCoupon(ctx context.Context, id int64) error
	ListUsage(ctx context.Context, couponID *int64) ([]*Usage, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Code        string
	Description string
	Kind        Kind
	ValueCents  int64
	UseLimit    *int
	ValidUntil  *time.Time
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Coupon, error) {
	code := strings.ToUpper(strings.TrimSpace(params.Code))
	if code == "" {
		return nil, fmt.Errorf("coupon code is required")
	}

	c := &Coupon{
		Code:        code,
		Description: params.Description,
		Kind:        params.Kind,
		ValueCents:  params.ValueCents,
		Status:      StatusActive,
		UseLimit:    params.UseLimit,
		ValidUntil:  params.ValidUntil,
	}
	if err := s.repo.CreateCoupon(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Coupon, error) {
	return s.repo.GetCoupon(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Coupon, error) {
	return s.repo.ListCoupons(ctx)
}

func (s *Service) Update(ctx context.Context, c *Coupon) error {
	return s.repo.UpdateCoupon(ctx, c)
}

// Toggle flips the stored switch and returns the new value.
func (s *Service) Toggle(ctx context.Context, id int64) (Status, error) {
	c, err := s.repo.GetCoupon(ctx, id)
	if err != nil {
		return "", err
	}

	if c.Status == StatusActive {
		c.Status = StatusInactive
	} else {
		c.Status = StatusActive
	}

	if err := s.repo.UpdateCoupon(ctx, c); err != nil {
		return "", err
	}

	return c.Status, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteCoupon(ctx, id)
}

func (s *Service) Usage(ctx context.Context, couponID *int64) ([]*Usage, error) {
	return s.repo.ListUsage(ctx, couponID)
}

// Filter narrows coupons by code/description substring and stored status,
// the way the panel's search box and status dropdown do.
func Filter(coupons []*Coupon, term string, status Status) []*Coupon {
	term = strings.ToLower(strings.TrimSpace(term))

	out := make([]*Coupon, 0, len(coupons))

	for _, c := range coupons {
		if term != "" &&
			!strings.Contains(strings.ToLower(c.Code), term) &&
			!strings.Contains(strings.ToLower(c.Description), term) {
			continue
		}

		if status != "" && c.Status != status {
			continue
		}

		out = append(out, c)
	}

	return out
}
