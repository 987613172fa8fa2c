package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurumdesk/goldloan-service/internal/application/dto"
	"github.com/aurumdesk/goldloan-service/internal/application/usecase"
	"github.com/aurumdesk/goldloan-service/internal/domain/model"
	"github.com/aurumdesk/goldloan-service/internal/domain/valueobject"
)

func TestGetLoan_Execute(t *testing.T) {
	t.Run("returns the loan with schedule and payments", func(t *testing.T) {
		loan := activeLoan(t)
		paid, _, err := loan.ApplyPayment(
			decimal.NewFromInt(1_000), valueobject.PaymentMethodHandCash, "", testNow.AddDate(0, 1, 0))
		require.NoError(t, err)

		loanRepo := &mockLoanRepository{
			findByIDFunc: func(_ context.Context, id string) (model.Loan, error) {
				assert.Equal(t, loan.ID(), id)
				return paid, nil
			},
		}

		uc := usecase.NewGetLoanUseCase(loanRepo)

		resp, err := uc.Execute(context.Background(), dto.GetLoanRequest{LoanID: loan.ID()})

		require.NoError(t, err)
		assert.Equal(t, loan.ID(), resp.ID)
		assert.Equal(t, loan.Code(), resp.Code)
		assert.Len(t, resp.Installments, 12)
		require.Len(t, resp.Payments, 1)
		assert.True(t, resp.Payments[0].Amount.Equal(decimal.NewFromInt(1_000)))
		assert.True(t, resp.TotalPaid.Equal(decimal.NewFromInt(1_000)))
	})

	t.Run("fails when loan not found", func(t *testing.T) {
		uc := usecase.NewGetLoanUseCase(&mockLoanRepository{})

		_, err := uc.Execute(context.Background(), dto.GetLoanRequest{LoanID: "missing"})

		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrLoanNotFound)
	})
}

func TestQuoteSettlement_Execute(t *testing.T) {
	t.Run("quotes remaining balance for an open loan", func(t *testing.T) {
		loan := activeLoan(t)
		loanRepo := &mockLoanRepository{
			findByIDFunc: func(_ context.Context, _ string) (model.Loan, error) {
				return loan, nil
			},
		}

		uc := usecase.NewQuoteSettlementUseCase(loanRepo)

		resp, err := uc.Execute(context.Background(), dto.QuoteSettlementRequest{LoanID: loan.ID()})

		require.NoError(t, err)
		assert.Equal(t, loan.ID(), resp.LoanID)
		assert.True(t, resp.SettlementAmount.Equal(loan.RemainingBalance()))
		assert.Equal(t, "ACTIVE", resp.LoanStatus)
	})

	t.Run("quotes simple interest after early closure", func(t *testing.T) {
		loan := activeLoan(t)
		settled, err := loan.Settle(testNow.AddDate(0, 0, 90), testNow.AddDate(0, 0, 90))
		require.NoError(t, err)

		loanRepo := &mockLoanRepository{
			findByIDFunc: func(_ context.Context, _ string) (model.Loan, error) {
				return settled, nil
			},
		}

		uc := usecase.NewQuoteSettlementUseCase(loanRepo)

		resp, err := uc.Execute(context.Background(), dto.QuoteSettlementRequest{LoanID: loan.ID()})

		require.NoError(t, err)
		// 90 days at 12% annual on 12,000: three prorated months of simple
		// interest with nothing paid yet.
		assert.True(t, resp.SettlementAmount.Equal(decimal.NewFromInt(12_360)),
			"expected 12360, got %s", resp.SettlementAmount)
		assert.Equal(t, "CLOSED", resp.LoanStatus)
	})

	t.Run("fails when loan not found", func(t *testing.T) {
		uc := usecase.NewQuoteSettlementUseCase(&mockLoanRepository{})

		_, err := uc.Execute(context.Background(), dto.QuoteSettlementRequest{LoanID: "missing"})

		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrLoanNotFound)
	})
}
