package gateway

// amountMode determines how amounts are extracted from a row.
type amountMode int

const (
	// amountSingle means one signed column (e.g. "Valor" with "-10,00").
	amountSingle amountMode = iota
	// amountSplit means separate debit and credit columns.
	amountSplit
)

// Profile describes the column layout of one gateway export format. The
// acquirer ships a different CSV per product, so adding a format is just
// adding a Profile here.
type Profile struct {
	Name          string
	PaymentMethod string // stamped on every row the profile parses
	TypeCredit    string // entry type for money in
	TypeDebit     string // entry type for money out
	DateCol       string
	DescCol       string
	IDCol         string // gateway-side row id, optional
	AmountMode    amountMode
	AmountCol     string // used when AmountMode == amountSingle
	DebitCol      string // used when AmountMode == amountSplit
	CreditCol     string // used when AmountMode == amountSplit
}

// requiredCols returns the columns that must be present for the profile to match.
func (p Profile) requiredCols() []string {
	cols := []string{p.DateCol, p.DescCol}

	switch p.AmountMode {
	case amountSingle:
		cols = append(cols, p.AmountCol)
	case amountSplit:
		cols = append(cols, p.DebitCol, p.CreditCol)
	}

	return cols
}

// profiles is the ordered list of export formats to try during detection.
// More specific profiles come first to avoid false matches.
var profiles = []Profile{
	{
		Name:          "pix",
		PaymentMethod: "pix",
		TypeCredit:    "entrada",
		TypeDebit:     "saida",
		DateCol:       "Data/Hora",
		DescCol:       "Descrição",
		IDCol:         "Identificador",
		AmountMode:    amountSingle,
		AmountCol:     "Valor",
	},
	{
		Name:          "cartao",
		PaymentMethod: "cartao",
		TypeCredit:    "entrada",
		TypeDebit:     "saida",
		DateCol:       "Data da venda",
		DescCol:       "Descrição",
		AmountMode:    amountSplit,
		DebitCol:      "Débito",
		CreditCol:     "Crédito",
	},
	{
		Name:          "extrato",
		PaymentMethod: "",
		TypeCredit:    "entrada",
		TypeDebit:     "saida",
		DateCol:       "Data",
		DescCol:       "Histórico",
		AmountMode:    amountSingle,
		AmountCol:     "Valor",
	},
}
