package classify

import (
	"strconv"
	"strings"
	"time"

	"github.com/centralcaixa/backoffice/internal/brl"
	"github.com/centralcaixa/backoffice/internal/transaction"
)

// Summary carries the figures shown on a dashboard's cards.
type Summary struct {
	TotalCents   int64
	Count        int
	AverageCents float64
	TodayCount   int
	TodayCents   int64
	UniqueUsers  int
}

// Summarize derives the card figures for an already-filtered entry set.
// "Today" means the same calendar date as now in Brasília. Entries without a
// user_name do not count towards UniqueUsers: an unidentified user is nobody,
// not somebody.
func Summarize(txs []*transaction.Transaction, now time.Time) Summary {
	var s Summary

	users := make(map[string]struct{})

	for _, tx := range txs {
		s.TotalCents += tx.Amount
		s.Count++

		if name := strings.TrimSpace(tx.UserName); name != "" {
			users[name] = struct{}{}
		}

		if when, ok := tx.When(); ok && brl.SameDay(when, now) {
			s.TodayCount++
			s.TodayCents += tx.Amount
		}
	}

	s.UniqueUsers = len(users)

	if s.Count > 0 {
		s.AverageCents = float64(s.TotalCents) / float64(s.Count)
	}

	return s
}

// Headline picks the figure for a dashboard's headline card. The backend
// aggregate wins whenever it is present, zero included; the locally computed
// total is only a fallback for an absent stat.
func Headline(serverCents *int64, clientCents int64) int64 {
	if serverCents != nil {
		return *serverCents
	}

	return clientCents
}

// Search narrows entries by a free-text term matched against user name,
// description and id, and a date fragment matched against the raw timestamp.
// Empty arguments match everything.
func Search(txs []*transaction.Transaction, term, dateFragment string) []*transaction.Transaction {
	term = norm(term)
	dateFragment = strings.TrimSpace(dateFragment)

	out := make([]*transaction.Transaction, 0, len(txs))

	for _, tx := range txs {
		if term != "" && !matchesTerm(tx, term) {
			continue
		}

		if dateFragment != "" && !strings.Contains(tx.CreatedAt, dateFragment) {
			continue
		}

		out = append(out, tx)
	}

	return out
}

func matchesTerm(tx *transaction.Transaction, term string) bool {
	return strings.Contains(norm(tx.UserName), term) ||
		strings.Contains(norm(tx.Description), term) ||
		strings.Contains(strconv.FormatInt(tx.ID, 10), term)
}

// Page reveals one slice of an already-filtered list, mirroring the panel's
// "load more" button: a window over memory, not a new query.
func Page(txs []*transaction.Transaction, offset, limit int) []*transaction.Transaction {
	if offset < 0 {
		offset = 0
	}

	if offset >= len(txs) {
		return nil
	}

	end := len(txs)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}

	return txs[offset:end]
}
