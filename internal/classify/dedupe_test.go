package classify_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/centralcaixa/backoffice/internal/classify"
	"github.com/centralcaixa/backoffice/internal/transaction"
)

func tx(desc string, amount int64, createdAt string) *transaction.Transaction {
	return &transaction.Transaction{Description: desc, Amount: amount, CreatedAt: createdAt}
}

func TestDedupe_BonusCollapsesAcrossDays(t *testing.T) {
	first := tx("Bônus de indicação", 1000, "2024-01-01T10:00:00")
	first.UserName = "Ana"

	second := tx("Bônus por indicado por Carlos", 1000, "2024-01-05T09:00:00")
	second.UserName = "Ana"

	// Same user, same amount: one entry, four days apart or not.
	got := classify.Dedupe([]*transaction.Transaction{first, second})
	require.Len(t, got, 1)
	assert.Same(t, first, got[0])
}

func TestDedupe_BonusUserFromDescription(t *testing.T) {
	a := tx("Comissão por indicado por Carlos", 1000, "2024-01-01T10:00:00")
	b := tx("Comissão paga, indicado por Carlos", 1000, "2024-02-01T08:30:00")

	// user_name missing on both; the derived name comes from the text.
	got := classify.Dedupe([]*transaction.Transaction{a, b})
	assert.Len(t, got, 1)
}

func TestDedupe_MinuteBucket(t *testing.T) {
	tests := []struct {
		name    string
		a, b    string
		wantLen int
	}{
		{name: "SameMinuteCollapses", a: "2024-03-10T12:05:01", b: "2024-03-10T12:05:59", wantLen: 1},
		{name: "FullMinuteApartKept", a: "2024-03-10T12:05:59", b: "2024-03-10T12:06:00", wantLen: 2},
		{name: "HoursApartKept", a: "2024-03-10T08:00:00", b: "2024-03-10T14:00:00", wantLen: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify.Dedupe([]*transaction.Transaction{
				tx("Recarga via PIX", 5000, tt.a),
				tx("Recarga via PIX", 5000, tt.b),
			})
			assert.Len(t, got, tt.wantLen)
		})
	}
}

func TestDedupe_MalformedTimestampIsOwnBucket(t *testing.T) {
	a := tx("Recarga via PIX", 5000, "not-a-date")
	b := tx("Recarga via PIX", 5000, "also-not-a-date")
	c := tx("Recarga via PIX", 5000, "not-a-date")

	// Must not panic, and equal garbage collapses while distinct garbage stays.
	got := classify.Dedupe([]*transaction.Transaction{a, b, c})
	require.Len(t, got, 2)
	assert.Same(t, a, got[0])
	assert.Same(t, b, got[1])
}

func TestDedupe_Idempotent(t *testing.T) {
	in := []*transaction.Transaction{
		tx("Bônus de indicação por Maria", 1000, "2024-01-01T10:00:00"),
		tx("Bônus de indicação por Maria", 1000, "2024-01-02T10:00:00"),
		tx("Recarga via PIX", 5000, "2024-01-01T10:00:00"),
		tx("Recarga via PIX", 5000, "2024-01-01T10:00:30"),
		tx("Compra de plano Premium", 9900, "2024-01-03T09:00:00"),
	}

	once := classify.Dedupe(in)
	twice := classify.Dedupe(once)

	assert.Equal(t, once, twice)
	assert.LessOrEqual(t, len(once), len(in))
}

func TestDedupe_PreservesOrderAndInput(t *testing.T) {
	a := tx("Recarga via PIX", 5000, "2024-01-01T10:00:00")
	b := tx("Compra de plano", 9900, "2024-01-01T10:01:00")
	c := tx("Saque solicitado", -2000, "2024-01-01T10:02:00")
	in := []*transaction.Transaction{a, b, c}

	got := classify.Dedupe(in)

	require.Len(t, got, 3)
	assert.Same(t, a, got[0])
	assert.Same(t, b, got[1])
	assert.Same(t, c, got[2])
	assert.Len(t, in, 3)
}

func TestBonusUser(t *testing.T) {
	tests := []struct {
		name string
		desc string
		user string
		want string
	}{
		{name: "FieldWins", desc: "Bônus por indicado por Carlos", user: "Ana", want: "Ana"},
		{name: "IndicadoPor", desc: "Bônus por indicado por Carlos", user: "", want: "Carlos"},
		{name: "Usuario", desc: "Comissão creditada para o usuário joao82", user: "", want: "joao82"},
		{name: "NoSignalAnywhere", desc: "Bônus de indicação", user: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := tx(tt.desc, 1000, "")
			entry.UserName = tt.user
			assert.Equal(t, tt.want, classify.BonusUser(entry))
		})
	}
}
