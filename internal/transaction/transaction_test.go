package transaction_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/centralcaixa/backoffice/internal/brl"
	"github.com/centralcaixa/backoffice/internal/transaction"
)

func TestWhen(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want time.Time
		ok   bool
	}{
		{
			name: "RFC3339",
			raw:  "2026-03-01T10:30:00-03:00",
			want: time.Date(2026, 3, 1, 10, 30, 0, 0, time.FixedZone("", -3*60*60)),
			ok:   true,
		},
		{
			name: "NaiveDateTimeIsBrasilia",
			raw:  "2026-03-01T10:30:00",
			want: time.Date(2026, 3, 1, 10, 30, 0, 0, brl.Location()),
			ok:   true,
		},
		{
			name: "SpaceSeparated",
			raw:  "2026-03-01 10:30:00",
			want: time.Date(2026, 3, 1, 10, 30, 0, 0, brl.Location()),
			ok:   true,
		},
		{
			name: "DateOnly",
			raw:  "2026-03-01",
			want: time.Date(2026, 3, 1, 0, 0, 0, 0, brl.Location()),
			ok:   true,
		},
		{name: "Empty", raw: "", ok: false},
		{name: "Whitespace", raw: "   ", ok: false},
		{name: "Garbage", raw: "ontem de manhã", ok: false},
		{name: "Truncated", raw: "2026-03-01T10:3", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := &transaction.Transaction{CreatedAt: tt.raw}

			got, ok := tx.When()
			require.Equal(t, tt.ok, ok)

			if tt.ok {
				assert.True(t, got.Equal(tt.want), "got %v want %v", got, tt.want)
			}
		})
	}
}

func TestIsCredit(t *testing.T) {
	tests := []struct {
		txType string
		want   bool
	}{
		{"recarga", true},
		{"  Recarga ", true},
		{"entrada", true},
		{"plano", true},
		{"indicacao", true},
		{"comissao", true},
		{"saque", false},
		{"", false},
	}

	for _, tt := range tests {
		tx := &transaction.Transaction{Type: tt.txType}
		assert.Equal(t, tt.want, tx.IsCredit(), "type %q", tt.txType)
	}
}
