package salarycomponent_test

import (
	"context"
	"database/sql"
	"testing"

	"go-hrm/internal/salarycomponent"
	salarycomponenterrors "go-hrm/internal/salarycomponent/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeComponentRepository struct {
	salarycomponent.Repository
	created *salarycomponent.SalaryComponent
}

func (f *fakeComponentRepository) WithTx(tx *sql.Tx) salarycomponent.Repository { return f }

func (f *fakeComponentRepository) Create(ctx context.Context, c *salarycomponent.SalaryComponent) error {
	f.created = c
	return nil
}

func TestSalaryComponentService_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := &fakeComponentRepository{}
	svc := salarycomponent.NewService(db, repo)

	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := svc.Create(context.Background(), uuid.New().String(), salarycomponent.CreateSalaryComponentRequest{
		Name:              "Transport allowance",
		Code:              " trn ",
		Type:              salarycomponent.TypeEarning,
		CalculationType:   salarycomponent.CalculationPercentage,
		PercentageOfBasic: decimal.NewFromInt(10),
	})

	require.NoError(t, err)
	assert.Equal(t, "TRN", resp.Code)
	assert.True(t, resp.IsActive)
	require.NotNil(t, repo.created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSalaryComponentService_Create_InvalidAmounts(t *testing.T) {
	tests := []struct {
		name    string
		req     salarycomponent.CreateSalaryComponentRequest
		wantErr error
	}{
		{
			name:    "negative fixed amount",
			req:     salarycomponent.CreateSalaryComponentRequest{CalculationType: salarycomponent.CalculationFixed, DefaultAmount: decimal.NewFromInt(-1)},
			wantErr: salarycomponenterrors.ErrInvalidAmount,
		},
		{
			name:    "percentage above hundred",
			req:     salarycomponent.CreateSalaryComponentRequest{CalculationType: salarycomponent.CalculationPercentage, PercentageOfBasic: decimal.NewFromInt(101)},
			wantErr: salarycomponenterrors.ErrInvalidPercentage,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			svc := salarycomponent.NewService(db, &fakeComponentRepository{})
			_, err = svc.Create(context.Background(), uuid.New().String(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
