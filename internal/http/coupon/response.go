package coupon

import (
	"fmt"
	"time"

	"github.com/centralcaixa/backoffice/internal/brl"
	"github.com/centralcaixa/backoffice/internal/coupon"
)

type couponResponse struct {
	ID           int64                `json:"id"`
	Code         string               `json:"code"`
	Description  string               `json:"description,omitempty"`
	Kind         coupon.Kind          `json:"kind"`
	Value        int64                `json:"value"`
	ValueDisplay string               `json:"value_display"`
	Status       coupon.Status        `json:"status"`
	Derived      coupon.DerivedStatus `json:"derived_status"`
	Uses         int                  `json:"uses"`
	UseLimit     *int                 `json:"use_limit,omitempty"`
	ValidUntil   *string              `json:"valid_until,omitempty"`
	CreatedAt    time.Time            `json:"created_at"`
}

func toResponse(c *coupon.Coupon, now time.Time) couponResponse {
	resp := couponResponse{
		ID:           c.ID,
		Code:         c.Code,
		Description:  c.Description,
		Kind:         c.Kind,
		Value:        c.ValueCents,
		ValueDisplay: valueDisplay(c),
		Status:       c.Status,
		Derived:      c.Derived(now),
		Uses:         c.Uses,
		UseLimit:     c.UseLimit,
		CreatedAt:    c.CreatedAt,
	}

	if c.ValidUntil != nil {
		s := brl.FormatDate(*c.ValidUntil)
		resp.ValidUntil = &s
	}

	return resp
}

func valueDisplay(c *coupon.Coupon) string {
	if c.Kind == coupon.KindPercent {
		return fmt.Sprintf("%d%%", c.ValueCents)
	}

	return brl.FormatCents(c.ValueCents)
}

func toResponseList(coupons []*coupon.Coupon, now time.Time) []couponResponse {
	resp := make([]couponResponse, len(coupons))
	for i, c := range coupons {
		resp[i] = toResponse(c, now)
	}

	return resp
}

type statsResponse struct {
	Total     int `json:"total"`
	Active    int `json:"active"`
	Expired   int `json:"expired"`
	TotalUses int `json:"total_uses"`
}

type usageResponse struct {
	ID              int64     `json:"id"`
	CouponID        int64     `json:"coupon_id"`
	Code            string    `json:"code"`
	UserID          int64     `json:"user_id"`
	UserEmail       string    `json:"user_email,omitempty"`
	UserLogin       string    `json:"user_login,omitempty"`
	UserPlan        string    `json:"user_plan,omitempty"`
	OriginalCents   int64     `json:"original"`
	OriginalDisplay string    `json:"original_display"`
	DiscountCents   int64     `json:"discount"`
	DiscountDisplay string    `json:"discount_display"`
	UsedAt          time.Time `json:"used_at"`
}

func toUsageList(usages []*coupon.Usage) []usageResponse {
	resp := make([]usageResponse, len(usages))
	for i, u := range usages {
		resp[i] = usageResponse{
			ID:              u.ID,
			CouponID:        u.CouponID,
			Code:            u.Code,
			UserID:          u.UserID,
			UserEmail:       u.UserEmail,
			UserLogin:       u.UserLogin,
			UserPlan:        u.UserPlan,
			OriginalCents:   u.OriginalCents,
			OriginalDisplay: brl.FormatCents(u.OriginalCents),
			DiscountCents:   u.DiscountCents,
			DiscountDisplay: brl.FormatCents(u.DiscountCents),
			UsedAt:          u.UsedAt,
		}
	}

	return resp
}
