package transaction_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/avolkov/tinycrm/internal/apperr"
	"github.com/avolkov/tinycrm/internal/transaction"
)

func TestService_Create(t *testing.T) {
	accountID := uuid.New()
	clientID := uuid.New()

	type testCase struct {
		name      string
		params    transaction.CreateParams
		setupMock func(m *transaction.MockRepository)
		wantErr   error
		wantField string
	}

	tests := []testCase{
		{
			name: "Success",
			params: transaction.CreateParams{
				ClientID:    &clientID,
				Amount:      decimal.NewFromInt(250),
				Type:        transaction.TypeIncome,
				Description: "website redesign",
			},
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().ClientOwned(gomock.Any(), accountID, clientID).Return(true, nil)
				m.EXPECT().
					CreateTransaction(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, tx *transaction.Transaction) error {
						tx.ID = uuid.New()
						return nil
					})
				m.EXPECT().
					GetTransaction(gomock.Any(), accountID, gomock.Any()).
					DoAndReturn(func(_ context.Context, _, id uuid.UUID) (*transaction.Transaction, error) {
						return &transaction.Transaction{
							ID:       id,
							ClientID: &clientID,
							Amount:   decimal.NewFromInt(250),
							Type:     transaction.TypeIncome,
						}, nil
					})
			},
		},
		{
			name: "UnknownType",
			params: transaction.CreateParams{
				Amount:      decimal.NewFromInt(10),
				Type:        "transfer",
				Description: "x",
			},
			wantField: "transaction_type",
		},
		{
			name: "BlankDescription",
			params: transaction.CreateParams{
				Amount: decimal.NewFromInt(10),
				Type:   transaction.TypeExpense,
			},
			wantField: "description",
		},
		{
			name: "ForeignClient",
			params: transaction.CreateParams{
				ClientID:    &clientID,
				Amount:      decimal.NewFromInt(10),
				Type:        transaction.TypeExpense,
				Description: "hosting",
			},
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().ClientOwned(gomock.Any(), accountID, clientID).Return(false, nil)
			},
			wantErr: apperr.ErrPermissionDenied,
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
			got, err := svc.Create(context.Background(), accountID, tt.params)

			if tt.wantErr != nil || tt.wantField != "" {
				require.Error(t, err)
				assert.Nil(t, got)

				if tt.wantErr != nil {
					assert.ErrorIs(t, err, tt.wantErr)
				}

				if tt.wantField != "" {
					var fields apperr.FieldErrors
					require.ErrorAs(t, err, &fields)
					assert.Contains(t, fields, tt.wantField)
				}

				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)
			assert.True(t, got.Amount.Equal(decimal.NewFromInt(250)))
		})
	}
}

func TestService_Summary(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	accountID := uuid.New()
	now := time.Date(2026, 2, 14, 10, 0, 0, 0, time.UTC)
	feb := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	mar := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	monthly := []transaction.Bucket{
		{
			Period:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			Income:  decimal.NewFromInt(100),
			Expense: decimal.NewFromInt(40),
		},
		{
			Period:  feb,
			Income:  decimal.NewFromInt(75),
			Expense: decimal.Zero,
		},
	}

	daily := []transaction.Bucket{
		{
			Period:  time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC),
			Income:  decimal.NewFromInt(75),
			Expense: decimal.Zero,
		},
	}

	repo := transaction.NewMockRepository(ctrl)
	repo.EXPECT().MonthlyBuckets(gomock.Any(), accountID).Return(monthly, nil)
	repo.EXPECT().DailyBuckets(gomock.Any(), accountID, feb, mar).Return(daily, nil)

	svc := transaction.NewService(repo)

	got, err := svc.Summary(context.Background(), accountID, now)
	require.NoError(t, err)

	// Months with no activity are simply absent; present buckets carry
	// both sums, zero-filled on the quiet side.
	require.Len(t, got.AllTime, 2)
	assert.True(t, got.AllTime[0].Income.Equal(decimal.NewFromInt(100)))
	assert.True(t, got.AllTime[0].Expense.Equal(decimal.NewFromInt(40)))
	assert.True(t, got.AllTime[1].Expense.IsZero())

	require.Len(t, got.ThisMonth, 1)
	assert.Equal(t, 3, got.ThisMonth[0].Period.Day())
}

func TestService_Update_DetachClient(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	accountID := uuid.New()
	id := uuid.New()
	clientID := uuid.New()

	repo := transaction.NewMockRepository(ctrl)
	repo.EXPECT().
		GetTransaction(gomock.Any(), accountID, id).
		Return(&transaction.Transaction{
			ID:          id,
			AccountID:   accountID,
			ClientID:    &clientID,
			Amount:      decimal.NewFromInt(10),
			Type:        transaction.TypeExpense,
			Description: "hosting",
		}, nil)
	repo.EXPECT().
		UpdateTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tx *transaction.Transaction) error {
			assert.Nil(t, tx.ClientID)
			return nil
		})
	repo.EXPECT().
		GetTransaction(gomock.Any(), accountID, id).
		Return(&transaction.Transaction{ID: id, AccountID: accountID}, nil)

	svc := transaction.NewService(repo)

	got, err := svc.Update(context.Background(), accountID, id, transaction.UpdateParams{ClearClient: true})
	require.NoError(t, err)
	assert.Nil(t, got.ClientID)
}
