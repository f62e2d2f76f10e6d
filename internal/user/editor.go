package user

import (
	"time"

	"github.com/centralcaixa/backoffice/internal/brl"
	"github.com/centralcaixa/backoffice/internal/plan"
)

// Editor models one user-edit session: the operator picks a plan and flips
// two independent toggles, one adding the plan price to the plan balance and
// one extending the plan end date by the plan duration.
//
// The baseline is captured once when the session opens and never changes.
// Every derived value is recomputed from that baseline, so flipping a toggle
// twice or switching plans repeatedly can never compound: toggling off
// restores the stored original, not "displayed minus price".
type Editor struct {
	baseBalance int64
	baseEnd     *time.Time

	selected   *plan.Plan
	addBalance bool
	extendDays bool
	customDays int // 0 means use the selected plan's duration
}

// NewEditor opens an edit session for u, freezing the baseline.
func NewEditor(u *User) *Editor {
	e := &Editor{baseBalance: u.PlanBalanceCents}

	if u.PlanEnd != nil {
		end := *u.PlanEnd
		e.baseEnd = &end
	}

	return e
}

// SelectPlan switches the candidate plan. Derived values follow on the next
// read; nothing accumulates.
func (e *Editor) SelectPlan(p *plan.Plan) { e.selected = p }

// SetAddBalance flips the add-price-to-balance toggle.
func (e *Editor) SetAddBalance(on bool) { e.addBalance = on }

// SetExtendDays flips the extend-end-date toggle.
func (e *Editor) SetExtendDays(on bool) { e.extendDays = on }

// SetCustomDays overrides the day count used by the extend toggle.
// Zero or negative restores the plan's own duration.
func (e *Editor) SetCustomDays(days int) {
	if days < 0 {
		days = 0
	}

	e.customDays = days
}

// PlanBalance derives the plan balance to save.
func (e *Editor) PlanBalance() int64 {
	if e.addBalance && e.selected != nil {
		return e.baseBalance + e.selected.PriceCents
	}

	return e.baseBalance
}

// days resolves the extension length: operator override first, then the
// selected plan's duration.
func (e *Editor) days() int {
	if e.customDays > 0 {
		return e.customDays
	}

	if e.selected != nil {
		return e.selected.DurationDays
	}

	return 0
}

// PlanEnd derives the plan end date to save. With the toggle off the original
// date is returned untouched. With it on, the extension starts from the
// original end date, or from today (Brasília) when the user has none.
func (e *Editor) PlanEnd(now time.Time) *time.Time {
	if !e.extendDays {
		return e.baseEnd
	}

	days := e.days()
	if days == 0 {
		return e.baseEnd
	}

	start := now.In(brl.Location())
	if e.baseEnd != nil {
		start = *e.baseEnd
	}

	end := start.AddDate(0, 0, days)

	return &end
}
