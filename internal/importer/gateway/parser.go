package gateway

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	enc "github.com/centralcaixa/backoffice/internal/encoding"
	"github.com/centralcaixa/backoffice/internal/transaction"
)

// Parser reads the acquirer's statement exports and produces ledger rows.
// The export format (pix, cartão, extrato) is auto-detected by matching
// column headers against known profiles.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// statementNamespace seeds deterministic external ids for rows the export
// does not identify itself. The same row always hashes to the same id, so
// re-importing a statement never duplicates the ledger.
var statementNamespace = uuid.MustParse("3f1c7a52-9b0e-4d7c-a64f-2e8b1d5c9a10")

func (p *Parser) Parse(r io.Reader) ([]transaction.CreateParams, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	profile, cols, headerIdx := detectProfile(rows)
	if profile == nil {
		return nil, fmt.Errorf("no matching statement format: expected pix, cartão or extrato columns")
	}

	return parseRows(profile, cols, rows[headerIdx+1:])
}

// colIndex maps column names to their index in the header row.
type colIndex map[string]int

func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.TrimSpace(cell)
			if name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// dateLayouts are the date shapes the exports use. The pix export carries a
// time component, the others only a day.
var dateLayouts = []string{
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"02/01/2006",
	"02-01-2006",
}

func parseRows(p *Profile, cols colIndex, rows [][]string) ([]transaction.CreateParams, error) {
	dateIdx := cols[p.DateCol]
	descIdx := cols[p.DescCol]

	idIdx := -1
	if p.IDCol != "" {
		if i, ok := cols[p.IDCol]; ok {
			idIdx = i
		}
	}

	var params []transaction.CreateParams

	for _, row := range rows {
		date, ok := parseDate(row, dateIdx)
		if !ok {
			// Footer or summary row.
			continue
		}

		desc := cellValue(row, descIdx)

		cents, ok := rowAmount(p, cols, row)
		if !ok {
			continue
		}

		txType := p.TypeCredit
		if cents < 0 {
			txType = p.TypeDebit
		}

		createdAt := date.Format("2006-01-02T15:04:05")

		params = append(params, transaction.CreateParams{
			ExternalID:    rowID(row, idIdx, createdAt, desc, cents),
			Description:   desc,
			Type:          txType,
			Amount:        cents,
			PaymentMethod: p.PaymentMethod,
			CreatedAt:     createdAt,
			Source:        "extrato-" + p.Name,
		})
	}

	return params, nil
}

// rowID takes the gateway's own id when the export carries one, and falls
// back to hashing the row so the id is stable across re-imports.
func rowID(row []string, idIdx int, createdAt, desc string, cents int64) uuid.UUID {
	if idIdx >= 0 {
		if id, err := uuid.Parse(cellValue(row, idIdx)); err == nil {
			return id
		}
	}

	seed := fmt.Sprintf("%s|%s|%d", createdAt, desc, cents)

	return uuid.NewSHA1(statementNamespace, []byte(seed))
}

func parseDate(row []string, idx int) (time.Time, bool) {
	s := cellValue(row, idx)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// rowAmount extracts the signed amount in centavos.
func rowAmount(p *Profile, cols colIndex, row []string) (int64, bool) {
	switch p.AmountMode {
	case amountSingle:
		s := cellValue(row, cols[p.AmountCol])
		if s == "" {
			return 0, false
		}

		cents, err := parseBrazilianAmount(s)
		if err != nil || cents == 0 {
			return 0, false
		}

		return cents, true
	case amountSplit:
		if s := cellValue(row, cols[p.DebitCol]); s != "" {
			if cents, err := parseBrazilianAmount(s); err == nil && cents != 0 {
				return -abs(cents), true
			}
		}

		if s := cellValue(row, cols[p.CreditCol]); s != "" {
			if cents, err := parseBrazilianAmount(s); err == nil && cents != 0 {
				return abs(cents), true
			}
		}
	}

	return 0, false
}

// cellValue safely gets a trimmed cell value from a row.
func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}

	return n
}
