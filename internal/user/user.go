package user

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a user does not exist.
var ErrNotFound = errors.New("user not found")

// User is a platform account as the support panel sees it.
type User struct {
	ID               int64
	Name             string
	Email            string
	Login            string
	WalletCents      int64
	PlanBalanceCents int64
	Plan             string // plan slug; empty when the user has no plan
	PlanDiscount     int
	PlanStart        *time.Time
	PlanEnd          *time.Time
	Notes            string
	CreatedAt        time.Time
}
