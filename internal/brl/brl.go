// Package brl holds the pt-BR presentation contracts shared by the API and
// the TUI: BRL currency formatting, dd/MM date patterns and "today" math in
// the Brasília timezone.
package brl

import (
	"time"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Timezone is the application-wide timezone. Every "today" and
// "days remaining" computation uses it, regardless of server locale.
const Timezone = "America/Sao_Paulo"

// Placeholder is rendered wherever a value is missing or unparseable.
const Placeholder = "—"

var (
	ptBR    = message.NewPrinter(language.BrazilianPortuguese)
	brasil  *time.Location
	symReal = currency.Symbol(currency.BRL)
)

func init() {
	loc, err := time.LoadLocation(Timezone)
	if err != nil {
		// tzdata missing on the host; UTC-3 has no DST since 2019.
		loc = time.FixedZone("-03", -3*60*60)
	}

	brasil = loc
}

// Location returns the Brasília location.
func Location() *time.Location {
	return brasil
}

// Now returns the current time in Brasília.
func Now() time.Time {
	return time.Now().In(brasil)
}

// FormatCents renders centavos as BRL with the pt-BR symbol, thousands
// separator and two decimals, e.g. 123456 -> "R$ 1.234,56".
func FormatCents(cents int64) string {
	return ptBR.Sprintf("%v %v", symReal, number.Decimal(float64(cents)/100,
		number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// FormatDate renders dd/MM/yyyy in Brasília, or the placeholder for a zero time.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return Placeholder
	}

	return t.In(brasil).Format("02/01/2006")
}

// FormatDateTime renders dd/MM HH:mm in Brasília, or the placeholder for a zero time.
func FormatDateTime(t time.Time) string {
	if t.IsZero() {
		return Placeholder
	}

	return t.In(brasil).Format("02/01 15:04")
}

// SameDay reports whether a and b fall on the same calendar date in Brasília.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.In(brasil).Date()
	by, bm, bd := b.In(brasil).Date()

	return ay == by && am == bm && ad == bd
}

// RemainingDays counts whole days from now until end, never negative.
// A zero end date yields 0.
func RemainingDays(end time.Time, now time.Time) int {
	if end.IsZero() {
		return 0
	}

	endDay := midnight(end)
	today := midnight(now)

	days := int(endDay.Sub(today).Hours() / 24)
	if days < 0 {
		return 0
	}

	return days
}

func midnight(t time.Time) time.Time {
	tl := t.In(brasil)
	return time.Date(tl.Year(), tl.Month(), tl.Day(), 0, 0, 0, 0, brasil)
}
