package transaction_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/centralcaixa/backoffice/internal/transaction"
)

func TestService_List(t *testing.T) {
	type args struct {
		filter transaction.ListFilter
	}

	type testCase struct {
		name      string
		args      args
		setupMock func(m *transaction.MockRepository)
		wantLen   int
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "Success",
			args: args{filter: transaction.ListFilter{}},
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().
					ListTransactions(gomock.Any(), transaction.ListFilter{}).
					Return([]*transaction.Transaction{
						{ID: 1},
						{ID: 2},
					}, nil)
			},
			wantLen: 2,
			wantErr: false,
		},
		{
			name: "Error",
			args: args{filter: transaction.ListFilter{}},
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().
					ListTransactions(gomock.Any(), transaction.ListFilter{}).
					Return(nil, errors.New("list error"))
			},
			wantLen: 0,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := transaction.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := transaction.NewService(repo)
			got, err := svc.List(context.Background(), tt.args.filter)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.Len(t, got, tt.wantLen)
		})
	}
}

func TestService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	repo.EXPECT().
		GetTransaction(gomock.Any(), int64(7)).
		Return(&transaction.Transaction{ID: 7}, nil)

	svc := transaction.NewService(repo)
	got, err := svc.Get(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.ID)
}

func TestService_Backfill_AllNew(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	btx := transaction.NewMockBackfillTx(ctrl)
	svc := transaction.NewService(repo)

	params := []transaction.CreateParams{
		{
			ExternalID:    uuid.New(),
			Description:   "Pagamento PIX recebido",
			Type:          "entrada",
			Amount:        1500,
			PaymentMethod: "pix",
			CreatedAt:     "2026-03-01T10:00:00Z",
			Source:        "extrato",
		},
	}

	repo.EXPECT().BeginBackfill(gomock.Any(), gomock.Any()).Return(btx, nil)
	btx.EXPECT().FindExisting(gomock.Any(), params).Return(nil, nil)
	btx.EXPECT().CreateTransactions(gomock.Any(), gomock.Any()).Return(nil)
	btx.EXPECT().Commit().Return(nil)
	btx.EXPECT().Rollback().Return(nil)

	result, err := svc.Backfill(context.Background(), params)
	require.NoError(t, err)
	assert.Len(t, result.Imported, 1)
	assert.Empty(t, result.Skipped)
	assert.Equal(t, "extrato", result.Imported[0].Source)
}

func TestService_Backfill_SkipsExisting(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	btx := transaction.NewMockBackfillTx(ctrl)
	svc := transaction.NewService(repo)

	known := uuid.New()
	params := []transaction.CreateParams{
		{ExternalID: known, Description: "Recarga", Amount: 1000},
		{ExternalID: uuid.New(), Description: "Recarga", Amount: 2000},
	}

	repo.EXPECT().BeginBackfill(gomock.Any(), gomock.Any()).Return(btx, nil)
	btx.EXPECT().
		FindExisting(gomock.Any(), params).
		Return(map[uuid.UUID]struct{}{known: {}}, nil)
	btx.EXPECT().
		CreateTransactions(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, txs []*transaction.Transaction) error {
			require.Len(t, txs, 1)
			assert.Equal(t, int64(2000), txs[0].Amount)
			return nil
		})
	btx.EXPECT().Commit().Return(nil)
	btx.EXPECT().Rollback().Return(nil)

	result, err := svc.Backfill(context.Background(), params)
	require.NoError(t, err)
	assert.Len(t, result.Imported, 1)
	require.Len(t, result.Skipped, 1)
	assert.Equal(t, known, result.Skipped[0].ExternalID)
}

func TestService_Backfill_AllExisting(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	btx := transaction.NewMockBackfillTx(ctrl)
	svc := transaction.NewService(repo)

	known := uuid.New()
	params := []transaction.CreateParams{
		{ExternalID: known, Description: "Recarga", Amount: 1000},
	}

	repo.EXPECT().BeginBackfill(gomock.Any(), gomock.Any()).Return(btx, nil)
	btx.EXPECT().
		FindExisting(gomock.Any(), params).
		Return(map[uuid.UUID]struct{}{known: {}}, nil)
	btx.EXPECT().Commit().Return(nil)
	btx.EXPECT().Rollback().Return(nil)

	result, err := svc.Backfill(context.Background(), params)
	require.NoError(t, err)
	assert.Empty(t, result.Imported)
	assert.Len(t, result.Skipped, 1)
}

func TestService_Backfill_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	svc := transaction.NewService(repo)

	result, err := svc.Backfill(context.Background(), []transaction.CreateParams{})
	require.NoError(t, err)
	assert.Empty(t, result.Imported)
	assert.Empty(t, result.Skipped)
}

func TestService_Backfill_BeginError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	repo.EXPECT().
		BeginBackfill(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("lock timeout"))

	svc := transaction.NewService(repo)

	_, err := svc.Backfill(context.Background(), []transaction.CreateParams{
		{ExternalID: uuid.New()},
	})
	assert.ErrorContains(t, err, "lock timeout")
}
