package classify

import (
	"regexp"
	"strings"

	"github.com/centralcaixa/backoffice/internal/transaction"
)

// bonusUserPattern pulls the referred user's name out of free-text bonus
// descriptions such as "Bônus de indicação por Maria" or
// "Comissão creditada para o usuário joao82". Fragile by nature; kept in one
// place so a gateway wording change is a one-line fix.
var bonusUserPattern = regexp.MustCompile(`(?i)(?:usuário|indicado por|por)\s+([\p{L}\p{N}_]+)`)

type bonusKey struct {
	User   string
	Amount int64
}

type entryKey struct {
	Description string
	Amount      int64
	Minute      string
}

// Dedupe suppresses entries the gateway posted more than once, keeping the
// first occurrence and the input order. The input is not mutated.
//
// Bonus and commission entries are duplicated far more aggressively than the
// rest, so they collapse on the derived user name and amount alone. Everything
// else collapses on description, amount and the creation minute: the same
// description and amount a full minute apart is two real entries.
func Dedupe(txs []*transaction.Transaction) []*transaction.Transaction {
	seenBonus := make(map[bonusKey]struct{})
	seen := make(map[entryKey]struct{})

	out := make([]*transaction.Transaction, 0, len(txs))

	for _, tx := range txs {
		if isBonusEntry(tx) {
			k := bonusKey{User: BonusUser(tx), Amount: tx.Amount}
			if _, dup := seenBonus[k]; dup {
				continue
			}

			seenBonus[k] = struct{}{}

			out = append(out, tx)

			continue
		}

		k := entryKey{
			Description: tx.Description,
			Amount:      tx.Amount,
			Minute:      minuteBucket(tx),
		}
		if _, dup := seen[k]; dup {
			continue
		}

		seen[k] = struct{}{}

		out = append(out, tx)
	}

	return out
}

func isBonusEntry(tx *transaction.Transaction) bool {
	desc := strings.ToLower(tx.Description)

	return strings.Contains(desc, "bônus") ||
		strings.Contains(desc, "comissão") ||
		strings.Contains(desc, "indicação")
}

// BonusUser derives the user a bonus entry belongs to. The denormalized
// user_name field wins when populated; the free-text extraction only covers
// rows where the feed dropped it. The last pattern hit is used because
// phrasings like "por indicado por Maria" name the user at the end.
func BonusUser(tx *transaction.Transaction) string {
	if name := strings.TrimSpace(tx.UserName); name != "" {
		return name
	}

	matches := bonusUserPattern.FindAllStringSubmatch(tx.Description, -1)
	if len(matches) == 0 {
		return ""
	}

	return matches[len(matches)-1][1]
}

// minuteBucket keys an entry by its creation minute. An unparseable timestamp
// is its own bucket: a corrupt row must never collapse into a real one, nor
// abort the render.
func minuteBucket(tx *transaction.Transaction) string {
	when, ok := tx.When()
	if !ok {
		return "raw:" + tx.CreatedAt
	}

	return when.UTC().Format("2006-01-02T15:04")
}
