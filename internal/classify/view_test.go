package classify_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/centralcaixa/backoffice/internal/classify"
	"github.com/centralcaixa/backoffice/internal/transaction"
)

func TestIsPIXPayment(t *testing.T) {
	tests := []struct {
		name string
		tx   transaction.Transaction
		want bool
	}{
		{name: "ExactMethod", tx: transaction.Transaction{PaymentMethod: "pix"}, want: true},
		{name: "MixedCaseTrailingSpace", tx: transaction.Transaction{PaymentMethod: "PIX "}, want: true},
		{name: "TypeFallback", tx: transaction.Transaction{Type: "recarga_pix"}, want: true},
		{name: "DescriptionFallback", tx: transaction.Transaction{Description: "Recarga via PIX aprovada"}, want: true},
		{name: "EmptyEverything", tx: transaction.Transaction{}, want: false},
		{name: "CardEntry", tx: transaction.Transaction{PaymentMethod: "cartao"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classify.IsPIXPayment(&tt.tx))
		})
	}
}

func TestIsCardPayment(t *testing.T) {
	tests := []struct {
		name string
		tx   transaction.Transaction
		want bool
	}{
		{name: "MethodCartao", tx: transaction.Transaction{PaymentMethod: "Cartao"}, want: true},
		{name: "MethodCreditCard", tx: transaction.Transaction{PaymentMethod: "credit_card"}, want: true},
		{name: "MethodCredito", tx: transaction.Transaction{PaymentMethod: "credito"}, want: true},
		{name: "TypeFallback", tx: transaction.Transaction{Type: "compra_cartao"}, want: true},
		{name: "TypeCreditCard", tx: transaction.Transaction{Type: "credit_card"}, want: true},
		{name: "TypeCompraCredito", tx: transaction.Transaction{Type: "compra_credito"}, want: true},
		{name: "AccentedDescription", tx: transaction.Transaction{Description: "Pagamento com cartão de crédito"}, want: true},
		{name: "PIXEntry", tx: transaction.Transaction{PaymentMethod: "pix"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classify.IsCardPayment(&tt.tx))
		})
	}
}

func TestIsRecharge(t *testing.T) {
	assert.True(t, classify.IsRecharge(&transaction.Transaction{Description: "Recarga de saldo"}))
	assert.True(t, classify.IsRecharge(&transaction.Transaction{Description: "Depósito confirmado"}))
	assert.True(t, classify.IsRecharge(&transaction.Transaction{Type: "recharge"}))
	assert.False(t, classify.IsRecharge(&transaction.Transaction{Description: "Compra de plano"}))
}

func TestIsReferral(t *testing.T) {
	assert.True(t, classify.IsReferral(&transaction.Transaction{Description: "Comissão de indicação"}))
	assert.True(t, classify.IsReferral(&transaction.Transaction{Type: "commission"}))
	assert.True(t, classify.IsReferral(&transaction.Transaction{Type: "indicacao"}))
	assert.False(t, classify.IsReferral(&transaction.Transaction{Description: "Recarga via PIX"}))
}

func TestIsPlanPurchase(t *testing.T) {
	assert.True(t, classify.IsPlanPurchase(&transaction.Transaction{Description: "Compra do plano Premium"}))
	assert.True(t, classify.IsPlanPurchase(&transaction.Transaction{Description: "Renovação de assinatura"}))
	assert.True(t, classify.IsPlanPurchase(&transaction.Transaction{Type: "plan_purchase"}))
	assert.False(t, classify.IsPlanPurchase(&transaction.Transaction{Type: "recharge"}))
}

func TestIsCashEntry(t *testing.T) {
	tests := []struct {
		name string
		tx   transaction.Transaction
		want bool
	}{
		{
			name: "PositivePIX",
			tx:   transaction.Transaction{Amount: 1000, PaymentMethod: "pix"},
			want: true,
		},
		{
			name: "CreditTypeZeroAmount",
			tx:   transaction.Transaction{Type: "credit", Amount: 0, PaymentMethod: "paypal"},
			want: true,
		},
		{
			name: "DebitWithoutCreditType",
			tx:   transaction.Transaction{Amount: -1000, PaymentMethod: "pix"},
			want: false,
		},
		{
			name: "UnknownRail",
			tx:   transaction.Transaction{Amount: 1000, PaymentMethod: "boleto"},
			want: false,
		},
		{
			name: "MissingMethod",
			tx:   transaction.Transaction{Amount: 1000},
			want: false,
		},
		{
			name: "BlocklistedDescription",
			tx:   transaction.Transaction{Amount: 1000, PaymentMethod: "pix", Description: "Lançamento duplicado - recarga"},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classify.IsCashEntry(&tt.tx))
		})
	}
}

func TestParseView(t *testing.T) {
	v, ok := classify.ParseView(" Recargas ")
	assert.True(t, ok)
	assert.Equal(t, classify.ViewRecharges, v)

	_, ok = classify.ParseView("nope")
	assert.False(t, ok)
}

func TestViewApply(t *testing.T) {
	txs := []*transaction.Transaction{
		{ID: 1, PaymentMethod: "pix"},
		{ID: 2, PaymentMethod: "cartao"},
		{ID: 3, Description: "Pagamento via PIX"},
	}

	got := classify.ViewPIX.Apply(txs)
	assert.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, int64(3), got[1].ID)
}
