package coupon

import (
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when a coupon does not exist.
	ErrNotFound = errors.New("coupon not found")
	// ErrCodeTaken is returned when creating a coupon with an existing code.
	ErrCodeTaken = errors.New("coupon code already in use")
)

// Kind is the discount kind.
type Kind string

const (
	KindFixed   Kind = "fixo"
	KindPercent Kind = "percentual"
)

// Status is the stored on/off switch. It is distinct from the derived
// status shown on the panel.
type Status string

const (
	StatusActive   Status = "ativo"
	StatusInactive Status = "inativo"
)

// Coupon is a discount code managed by the support team.
type Coupon struct {
	ID          int64
	Code        string
	Description string
	Kind        Kind
	// ValueCents for fixed coupons; whole percent (e.g. 15) for percentual.
	ValueCents int64
	Status     Status
	Uses       int
	UseLimit   *int
	ValidUntil *time.Time
	CreatedAt  time.Time
}

// DerivedStatus is the display status computed from the stored fields.
type DerivedStatus string

const (
	DerivedActive    DerivedStatus = "ativo"
	DerivedInactive  DerivedStatus = "inativo"
	DerivedExpired   DerivedStatus = "expirado"
	DerivedExhausted DerivedStatus = "esgotado"
)

// Derived resolves the display status. Precedence is fixed: an explicit
// deactivation beats expiry, expiry beats exhaustion.
func (c *Coupon) Derived(now time.Time) DerivedStatus {
	if c.Status == StatusInactive {
		return DerivedInactive
	}

	if c.ValidUntil != nil && c.ValidUntil.Before(now) {
		return DerivedExpired
	}

	if c.UseLimit != nil && c.Uses >= *c.UseLimit {
		return DerivedExhausted
	}

	return DerivedActive
}

// Usage is one redemption of a coupon, joined with a snapshot of the user at
// redemption time. Informational only; nothing is computed from it.
type Usage struct {
	ID            int64
	CouponID      int64
	UserID        int64
	UserEmail     string
	UserLogin     string
	UserCPF       string
	UserPhone     string
	UserStatus    string
	UserPlan      string
	ReferralCode  string
	WalletCents   int64
	PlanCents     int64
	SignedUpAt    time.Time
	Code          string
	Description   string
	Kind          Kind
	OriginalCents int64
	DiscountCents int64
	UsedAt        time.Time
}

// Stats are the coupon summary cards.
type Stats struct {
	Total     int
	Active    int
	Expired   int
	TotalUses int
}

// Summarize derives the coupon cards the way the panel shows them: Active
// counts the stored switch, Expired counts past validity regardless of the
// switch. The two overlap on purpose.
func Summarize(coupons []*Coupon, now time.Time) Stats {
	var s Stats

	s.Total = len(coupons)

	for _, c := range coupons {
		if c.Status == StatusActive {
			s.Active++
		}

		if c.ValidUntil != nil && c.ValidUntil.Before(now) {
			s.Expired++
		}

		s.TotalUses += c.Uses
	}

	return s
}
