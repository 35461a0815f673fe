package account_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/avolkov/tinycrm/internal/account"
	"github.com/avolkov/tinycrm/internal/apperr"
)

func TestService_Register(t *testing.T) {
	type testCase struct {
		name      string
		params    account.RegisterParams
		setupMock func(m *account.MockRepository)
		wantErr   bool
		wantField string
		wantErrIs error
	}

	tests := []testCase{
		{
			name: "Success",
			params: account.RegisterParams{
				Username:  "ana",
				Password:  "s3cret-pass",
				Password2: "s3cret-pass",
			},
			setupMock: func(m *account.MockRepository) {
				m.EXPECT().
					CreateAccount(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, a *account.Account) error {
						a.ID = uuid.New()
						return nil
					})
				m.EXPECT().
					CreateToken(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
		{
			name: "PasswordMismatch",
			params: account.RegisterParams{
				Username:  "ana",
				Password:  "one",
				Password2: "two",
			},
			wantErr:   true,
			wantField: "password",
		},
		{
			name: "BlankUsername",
			params: account.RegisterParams{
				Password:  "s3cret-pass",
				Password2: "s3cret-pass",
			},
			wantErr:   true,
			wantField: "username",
		},
		{
			name: "DuplicateUsername",
			params: account.RegisterParams{
				Username:  "ana",
				Password:  "s3cret-pass",
				Password2: "s3cret-pass",
			},
			setupMock: func(m *account.MockRepository) {
				m.EXPECT().
					CreateAccount(gomock.Any(), gomock.Any()).
					Return(apperr.ErrValidation)
			},
			wantErr:   true,
			wantField: "username",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := account.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := account.NewService(repo, account.NewMockVerifier(ctrl))
			a, token, err := svc.Register(context.Background(), tt.params)

			if tt.wantErr {
				require.Error(t, err)

				if tt.wantField != "" {
					var fields apperr.FieldErrors
					require.ErrorAs(t, err, &fields)
					assert.Contains(t, fields, tt.wantField)
				}

				if tt.wantErrIs != nil {
					assert.ErrorIs(t, err, tt.wantErrIs)
				}

				return
			}

			require.NoError(t, err)
			require.NotNil(t, a)
			assert.NotEmpty(t, a.ID)
			assert.NotEmpty(t, token)
			assert.True(t, a.Active)
			assert.True(t, a.HasUsablePassword())
		})
	}
}

func TestService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	require.NoError(t, err)

	stored := &account.Account{
		ID:           uuid.New(),
		Username:     "ana",
		PasswordHash: string(hash),
		Active:       true,
	}

	type testCase struct {
		name      string
		password  string
		setupMock func(m *account.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name:     "Success",
			password: "correct-horse",
			setupMock: func(m *account.MockRepository) {
				m.EXPECT().GetByUsername(gomock.Any(), "ana").Return(stored, nil)
				m.EXPECT().CreateToken(gomock.Any(), stored.ID, gomock.Any()).Return(nil)
			},
		},
		{
			name:     "WrongPassword",
			password: "wrong",
			setupMock: func(m *account.MockRepository) {
				m.EXPECT().GetByUsername(gomock.Any(), "ana").Return(stored, nil)
			},
			wantErr: apperr.ErrUnauthenticated,
		},
		{
			name:     "UnknownUsername",
			password: "correct-horse",
			setupMock: func(m *account.MockRepository) {
				m.EXPECT().GetByUsername(gomock.Any(), "ana").Return(nil, apperr.ErrNotFound)
			},
			wantErr: apperr.ErrUnauthenticated,
		},
		{
			name:     "InactiveAccount",
			password: "correct-horse",
			setupMock: func(m *account.MockRepository) {
				inactive := *stored
				inactive.Active = false
				m.EXPECT().GetByUsername(gomock.Any(), "ana").Return(&inactive, nil)
			},
			wantErr: apperr.ErrUnauthenticated,
		},
		{
			name:     "ExternalOnlyAccount",
			password: "correct-horse",
			setupMock: func(m *account.MockRepository) {
				external := *stored
				external.PasswordHash = ""
				m.EXPECT().GetByUsername(gomock.Any(), "ana").Return(&external, nil)
			},
			wantErr: apperr.ErrUnauthenticated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := account.NewMockRepository(ctrl)
			tt.setupMock(repo)

			svc := account.NewService(repo, account.NewMockVerifier(ctrl))
			a, token, err := svc.Login(context.Background(), "ana", tt.password)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, a)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, stored.ID, a.ID)
			assert.NotEmpty(t, token)
		})
	}
}

func TestService_ResolveGoogle(t *testing.T) {
	type testCase struct {
		name      string
		setupMock func(repo *account.MockRepository, verifier *account.MockVerifier)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "VerifiedEmailResolvesAccount",
			setupMock: func(repo *account.MockRepository, verifier *account.MockVerifier) {
				verifier.EXPECT().
					VerifyIDToken(gomock.Any(), "raw-token").
					Return("ana@example.com", nil)
				repo.EXPECT().
					GetOrCreateByEmail(gomock.Any(), "ana@example.com", "ana@example.com").
					Return(&account.Account{ID: uuid.New(), Email: "ana@example.com", Active: true}, nil)
				repo.EXPECT().
					CreateToken(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
		{
			name: "RejectedAssertion",
			setupMock: func(repo *account.MockRepository, verifier *account.MockVerifier) {
				verifier.EXPECT().
					VerifyIDToken(gomock.Any(), "raw-token").
					Return("", errors.New("bad audience"))
			},
			wantErr: apperr.ErrUnauthenticated,
		},
		{
			name: "ProviderDown",
			setupMock: func(repo *account.MockRepository, verifier *account.MockVerifier) {
				verifier.EXPECT().
					VerifyIDToken(gomock.Any(), "raw-token").
					Return("", apperr.ErrUnavailable)
			},
			wantErr: apperr.ErrUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := account.NewMockRepository(ctrl)
			verifier := account.NewMockVerifier(ctrl)
			tt.setupMock(repo, verifier)

			svc := account.NewService(repo, verifier)
			a, token, err := svc.ResolveGoogle(context.Background(), "raw-token")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "ana@example.com", a.Email)
			assert.NotEmpty(t, token)
		})
	}
}

func TestService_ResolveGlobal_CreatesOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	stored := &account.Account{ID: uuid.New(), Username: "global_api_user", Active: true}

	repo := account.NewMockRepository(ctrl)
	repo.EXPECT().
		GetOrCreateByUsername(gomock.Any(), "global_api_user").
		Return(stored, nil).
		Times(2)

	svc := account.NewService(repo, account.NewMockVerifier(ctrl))

	first, err := svc.ResolveGlobal(context.Background(), "global_api_user")
	require.NoError(t, err)

	second, err := svc.ResolveGlobal(context.Background(), "global_api_user")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
}
