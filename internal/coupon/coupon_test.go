package coupon_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/centralcaixa/backoffice/internal/coupon"
)

func TestDerived_Precedence(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	past := now.AddDate(0, -1, 0)
	future := now.AddDate(0, 1, 0)
	limit := 10

	tests := []struct {
		name string
		c    coupon.Coupon
		want coupon.DerivedStatus
	}{
		{
			name: "InactiveBeatsEverything",
			c: coupon.Coupon{
				Status:     coupon.StatusInactive,
				ValidUntil: &past,
				Uses:       10,
				UseLimit:   &limit,
			},
			want: coupon.DerivedInactive,
		},
		{
			name: "ExpiredBeatsExhausted",
			c: coupon.Coupon{
				Status:     coupon.StatusActive,
				ValidUntil: &past,
				Uses:       10,
				UseLimit:   &limit,
			},
			want: coupon.DerivedExpired,
		},
		{
			name: "ExhaustedAtLimit",
			c: coupon.Coupon{
				Status:   coupon.StatusActive,
				Uses:     10,
				UseLimit: &limit,
			},
			want: coupon.DerivedExhausted,
		},
		{
			name: "ActiveBelowLimit",
			c: coupon.Coupon{
				Status:     coupon.StatusActive,
				ValidUntil: &future,
				Uses:       9,
				UseLimit:   &limit,
			},
			want: coupon.DerivedActive,
		},
		{
			name: "ActiveNoLimits",
			c:    coupon.Coupon{Status: coupon.StatusActive},
			want: coupon.DerivedActive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.c.Derived(now))
		})
	}
}

func TestSummarize(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	past := now.AddDate(0, -1, 0)

	coupons := []*coupon.Coupon{
		{Status: coupon.StatusActive, Uses: 3},
		{Status: coupon.StatusActive, ValidUntil: &past, Uses: 5},
		{Status: coupon.StatusInactive, Uses: 2},
	}

	got := coupon.Summarize(coupons, now)

	assert.Equal(t, 3, got.Total)
	assert.Equal(t, 2, got.Active)
	assert.Equal(t, 1, got.Expired)
	assert.Equal(t, 10, got.TotalUses)
}

func TestFilter(t *testing.T) {
	coupons := []*coupon.Coupon{
		{Code: "BEMVINDO10", Description: "Desconto de boas-vindas", Status: coupon.StatusActive},
		{Code: "NATAL25", Description: "Promoção de Natal", Status: coupon.StatusInactive},
	}

	assert.Len(t, coupon.Filter(coupons, "natal", ""), 1)
	assert.Len(t, coupon.Filter(coupons, "desconto", ""), 1)
	assert.Len(t, coupon.Filter(coupons, "", coupon.StatusActive), 1)
	assert.Len(t, coupon.Filter(coupons, "", ""), 2)
	assert.Empty(t, coupon.Filter(coupons, "natal", coupon.StatusActive))
}
