package gateway

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_PixExport(t *testing.T) {
	csv := strings.Join([]string{
		"Data/Hora;Descrição;Valor;Identificador",
		"01/03/2026 10:30:00;Pagamento PIX recebido;1.250,00;9b2f8c1e-4d07-4a4e-9c7e-111111111111",
		"01/03/2026 11:00:00;Devolução PIX;-50,00;9b2f8c1e-4d07-4a4e-9c7e-222222222222",
		"",
		"Total;;1.200,00;",
	}, "\n")

	parser := NewParser()
	params, err := parser.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, params, 2)

	first := params[0]
	assert.Equal(t, uuid.MustParse("9b2f8c1e-4d07-4a4e-9c7e-111111111111"), first.ExternalID)
	assert.Equal(t, "Pagamento PIX recebido", first.Description)
	assert.Equal(t, "entrada", first.Type)
	assert.Equal(t, int64(125000), first.Amount)
	assert.Equal(t, "pix", first.PaymentMethod)
	assert.Equal(t, "2026-03-01T10:30:00", first.CreatedAt)
	assert.Equal(t, "extrato-pix", first.Source)

	second := params[1]
	assert.Equal(t, "saida", second.Type)
	assert.Equal(t, int64(-5000), second.Amount)
}

func TestParse_CardExportSplitColumns(t *testing.T) {
	csv := strings.Join([]string{
		"Relatório de vendas",
		"",
		"Data da venda;Descrição;Débito;Crédito",
		"01/03/2026;Venda cartão crédito;;350,00",
		"02/03/2026;Estorno de venda;350,00;",
	}, "\n")

	parser := NewParser()
	params, err := parser.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, params, 2)

	assert.Equal(t, int64(35000), params[0].Amount)
	assert.Equal(t, "entrada", params[0].Type)
	assert.Equal(t, "cartao", params[0].PaymentMethod)
	assert.Equal(t, "extrato-cartao", params[0].Source)

	assert.Equal(t, int64(-35000), params[1].Amount)
	assert.Equal(t, "saida", params[1].Type)
}

func TestParse_ExtratoWithCurrencyPrefix(t *testing.T) {
	csv := strings.Join([]string{
		"Data;Histórico;Valor",
		"01/03/2026;Recarga de créditos;R$ 99,90",
	}, "\n")

	parser := NewParser()
	params, err := parser.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, params, 1)

	assert.Equal(t, int64(9990), params[0].Amount)
	assert.Empty(t, params[0].PaymentMethod)
}

func TestParse_FallbackIDIsDeterministic(t *testing.T) {
	csv := strings.Join([]string{
		"Data/Hora;Descrição;Valor;Identificador",
		"01/03/2026 10:30:00;Pagamento PIX;1,00;não-disponível",
	}, "\n")

	parser := NewParser()

	first, err := parser.Parse(strings.NewReader(csv))
	require.NoError(t, err)

	second, err := parser.Parse(strings.NewReader(csv))
	require.NoError(t, err)

	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.Equal(t, first[0].ExternalID, second[0].ExternalID)
	assert.NotEqual(t, uuid.Nil, first[0].ExternalID)
}

func TestParse_UnknownFormat(t *testing.T) {
	csv := "Coluna A;Coluna B\nfoo;bar\n"

	parser := NewParser()
	_, err := parser.Parse(strings.NewReader(csv))
	assert.ErrorContains(t, err, "no matching statement format")
}

func TestParse_SkipsUnparseableRows(t *testing.T) {
	csv := strings.Join([]string{
		"Data;Histórico;Valor",
		"01/03/2026;Recarga;10,00",
		"data inválida;Recarga;10,00",
		"02/03/2026;Linha sem valor;",
		"03/03/2026;Zerada;0,00",
	}, "\n")

	parser := NewParser()
	params, err := parser.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Len(t, params, 1)
}

func TestParseBrazilianAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"1.234,56", 123456, false},
		{"-588,74", -58874, false},
		{"10,00", 1000, false},
		{"R$ 99,90", 9990, false},
		{"0,00", 0, false},
		{"abc", 0, true},
	}

	for _, tt := range tests {
		got, err := parseBrazilianAmount(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}

		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}
