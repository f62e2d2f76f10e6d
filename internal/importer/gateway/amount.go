package gateway

import (
	"strings"

	"github.com/shopspring/decimal"
)

// parseBrazilianAmount parses a pt-BR formatted amount into centavos.
// Examples: "1.234,56" -> 123456, "-588,74" -> -58874, "R$ 10,00" -> 1000.
func parseBrazilianAmount(s string) (int64, error) {
	clean := strings.TrimSpace(s)
	clean = strings.TrimPrefix(clean, "R$")
	clean = strings.TrimSpace(clean)
	clean = strings.ReplaceAll(clean, ".", "")
	clean = strings.ReplaceAll(clean, ",", ".")

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, err
	}

	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart(), nil
}
