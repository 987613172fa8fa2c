package usecase_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurumdesk/goldloan-service/internal/application/dto"
	"github.com/aurumdesk/goldloan-service/internal/application/usecase"
	"github.com/aurumdesk/goldloan-service/internal/domain/event"
	"github.com/aurumdesk/goldloan-service/internal/domain/model"
	"github.com/aurumdesk/goldloan-service/internal/domain/port"
	"github.com/aurumdesk/goldloan-service/internal/domain/valueobject"
)

func activeLoan(t *testing.T) model.Loan {
	t.Helper()
	loan, err := model.NewLoan(
		"cust-001",
		decimal.NewFromInt(12_000), decimal.NewFromInt(12), 12,
		"GL", 1, testNow,
	)
	require.NoError(t, err)
	return loan.ClearEvents()
}

func TestApplyPayment_Execute(t *testing.T) {
	t.Run("applies a payment and persists the aggregate", func(t *testing.T) {
		loan := activeLoan(t)
		loanRepo := &mockLoanRepository{
			findByIDFunc: func(_ context.Context, id string) (model.Loan, error) {
				assert.Equal(t, loan.ID(), id)
				return loan, nil
			},
		}
		publisher := &mockEventPublisher{}

		uc := usecase.NewApplyPaymentUseCase(loanRepo, publisher, fixedClock{testNow.AddDate(0, 1, 0)}, testLogger())

		resp, err := uc.Execute(context.Background(), dto.ApplyPaymentRequest{
			LoanID: loan.ID(),
			Amount: decimal.NewFromInt(1_000),
			Method: "HANDCASH",
		})

		require.NoError(t, err)
		assert.Equal(t, loan.ID(), resp.LoanID)
		assert.NotEmpty(t, resp.PaymentID)
		assert.Equal(t, "HANDCASH", resp.Method)
		assert.Equal(t, 1, resp.InstallmentSeq)
		assert.True(t, resp.RemainingBalance.Equal(loan.TotalPayment().Sub(decimal.NewFromInt(1_000))))
		assert.Equal(t, "ACTIVE", resp.LoanStatus)

		require.Len(t, loanRepo.savedLoans, 1)
		saved := loanRepo.savedLoans[0]
		assert.True(t, saved.TotalPaid().Equal(decimal.NewFromInt(1_000)))
		assert.NotEmpty(t, publisher.publishedEvents)
	})

	t.Run("closes the loan on full payoff", func(t *testing.T) {
		loan := activeLoan(t)
		loanRepo := &mockLoanRepository{
			findByIDFunc: func(_ context.Context, _ string) (model.Loan, error) {
				return loan, nil
			},
		}

		uc := usecase.NewApplyPaymentUseCase(loanRepo, &mockEventPublisher{}, fixedClock{testNow.AddDate(0, 2, 0)}, testLogger())

		resp, err := uc.Execute(context.Background(), dto.ApplyPaymentRequest{
			LoanID: loan.ID(),
			Amount: loan.TotalPayment(),
			Method: "HANDCASH",
		})

		require.NoError(t, err)
		assert.Equal(t, "CLOSED", resp.LoanStatus)
		assert.True(t, resp.RemainingBalance.Equal(decimal.Zero))
	})

	t.Run("retries on version conflict and succeeds", func(t *testing.T) {
		loan := activeLoan(t)
		attempts := 0
		loanRepo := &mockLoanRepository{
			findByIDFunc: func(_ context.Context, _ string) (model.Loan, error) {
				return loan, nil
			},
		}
		loanRepo.saveFunc = func(_ context.Context, saved model.Loan) error {
			attempts++
			if attempts == 1 {
				return port.ErrVersionConflict
			}
			loanRepo.savedLoans = append(loanRepo.savedLoans, saved)
			return nil
		}

		uc := usecase.NewApplyPaymentUseCase(loanRepo, &mockEventPublisher{}, fixedClock{testNow}, testLogger())

		resp, err := uc.Execute(context.Background(), dto.ApplyPaymentRequest{
			LoanID: loan.ID(),
			Amount: decimal.NewFromInt(500),
			Method: "HANDCASH",
		})

		require.NoError(t, err)
		assert.Equal(t, 2, attempts, "should have retried once")
		assert.NotEmpty(t, resp.PaymentID)
		require.Len(t, loanRepo.savedLoans, 1)
	})

	t.Run("gives up after repeated version conflicts", func(t *testing.T) {
		loan := activeLoan(t)
		attempts := 0
		loanRepo := &mockLoanRepository{
			findByIDFunc: func(_ context.Context, _ string) (model.Loan, error) {
				return loan, nil
			},
			saveFunc: func(_ context.Context, _ model.Loan) error {
				attempts++
				return port.ErrVersionConflict
			},
		}

		uc := usecase.NewApplyPaymentUseCase(loanRepo, &mockEventPublisher{}, fixedClock{testNow}, testLogger())

		_, err := uc.Execute(context.Background(), dto.ApplyPaymentRequest{
			LoanID: loan.ID(),
			Amount: decimal.NewFromInt(500),
			Method: "HANDCASH",
		})

		require.Error(t, err)
		assert.ErrorIs(t, err, port.ErrVersionConflict)
		assert.Equal(t, 3, attempts, "bounded retries")
	})

	t.Run("publish failure does not fail the payment", func(t *testing.T) {
		loan := activeLoan(t)
		loanRepo := &mockLoanRepository{
			findByIDFunc: func(_ context.Context, _ string) (model.Loan, error) {
				return loan, nil
			},
		}
		publisher := &mockEventPublisher{
			publishFunc: func(_ context.Context, _ ...event.DomainEvent) error {
				return fmt.Errorf("broker unreachable")
			},
		}

		uc := usecase.NewApplyPaymentUseCase(loanRepo, publisher, fixedClock{testNow}, testLogger())

		resp, err := uc.Execute(context.Background(), dto.ApplyPaymentRequest{
			LoanID: loan.ID(),
			Amount: decimal.NewFromInt(500),
			Method: "HANDCASH",
		})

		require.NoError(t, err, "receipt/notification failure must not roll back the payment")
		assert.NotEmpty(t, resp.PaymentID)
		require.Len(t, loanRepo.savedLoans, 1)
	})

	t.Run("rejects unknown payment method as validation failure", func(t *testing.T) {
		uc := usecase.NewApplyPaymentUseCase(&mockLoanRepository{}, &mockEventPublisher{}, fixedClock{testNow}, testLogger())

		_, err := uc.Execute(context.Background(), dto.ApplyPaymentRequest{
			LoanID: "loan-001",
			Amount: decimal.NewFromInt(500),
			Method: "BARTER",
		})

		require.Error(t, err)
		assert.True(t, model.IsValidation(err), "bad method must surface as a validation error")
	})

	t.Run("accepts lowercase payment methods", func(t *testing.T) {
		for _, raw := range []string{"handcash", "online"} {
			loan := activeLoan(t)
			loanRepo := &mockLoanRepository{
				findByIDFunc: func(_ context.Context, _ string) (model.Loan, error) {
					return loan, nil
				},
			}
			uc := usecase.NewApplyPaymentUseCase(loanRepo, &mockEventPublisher{}, fixedClock{testNow}, testLogger())

			resp, err := uc.Execute(context.Background(), dto.ApplyPaymentRequest{
				LoanID:        loan.ID(),
				Amount:        decimal.NewFromInt(500),
				Method:        raw,
				TransactionID: "txn-001",
			})

			require.NoError(t, err, "method %q must parse", raw)
			assert.Equal(t, strings.ToUpper(raw), resp.Method)
		}
	})

	t.Run("fails when loan not found", func(t *testing.T) {
		uc := usecase.NewApplyPaymentUseCase(&mockLoanRepository{}, &mockEventPublisher{}, fixedClock{testNow}, testLogger())

		_, err := uc.Execute(context.Background(), dto.ApplyPaymentRequest{
			LoanID: "missing",
			Amount: decimal.NewFromInt(500),
			Method: "HANDCASH",
		})

		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrLoanNotFound)
	})

	t.Run("fails on closed loan", func(t *testing.T) {
		loan := activeLoan(t)
		closed, _, err := loan.ApplyPayment(loan.TotalPayment(), valueobject.PaymentMethodHandCash, "", testNow)
		require.NoError(t, err)

		loanRepo := &mockLoanRepository{
			findByIDFunc: func(_ context.Context, _ string) (model.Loan, error) {
				return closed, nil
			},
		}

		uc := usecase.NewApplyPaymentUseCase(loanRepo, &mockEventPublisher{}, fixedClock{testNow}, testLogger())

		_, err = uc.Execute(context.Background(), dto.ApplyPaymentRequest{
			LoanID: loan.ID(),
			Amount: decimal.NewFromInt(100),
			Method: "HANDCASH",
		})

		require.Error(t, err)
		assert.True(t, model.IsInvalidState(err))
	})
}
