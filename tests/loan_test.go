package tests

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurumdesk/goldloan-service/internal/domain/model"
	"github.com/aurumdesk/goldloan-service/internal/domain/valueobject"
)

var testCreatedAt = time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)

func newTestLoan(t *testing.T) model.Loan {
	t.Helper()
	loan, err := model.NewLoan(
		"cust-001",
		decimal.NewFromInt(12_000), decimal.NewFromInt(12), 12,
		"GL", 7, testCreatedAt,
	)
	require.NoError(t, err)
	return loan
}

func TestLoan_Creation(t *testing.T) {
	loan := newTestLoan(t)

	assert.NotEmpty(t, loan.ID())
	assert.Equal(t, "GL25017", loan.Code(), "code should be <prefix><yy><mm><seq>")
	assert.Equal(t, "cust-001", loan.CustomerRef())
	assert.True(t, loan.Principal().Equal(decimal.NewFromInt(12_000)))
	assert.True(t, loan.AnnualRate().Equal(decimal.NewFromInt(12)))
	assert.Equal(t, 12, loan.TermMonths())
	assert.True(t, loan.Status().Equal(valueobject.LoanStatusActive))

	// The outstanding obligation starts at the full total (principal plus
	// interest), not at the principal.
	assert.True(t, loan.RemainingBalance().Equal(loan.TotalPayment()),
		"remaining should start at total payment, got %s", loan.RemainingBalance())
	assert.True(t, loan.TotalPaid().Equal(decimal.Zero))
	assert.Len(t, loan.Installments(), 12)
	assert.Empty(t, loan.Payments())
	assert.Equal(t, 1, loan.Version())
	assert.Len(t, loan.DomainEvents(), 1, "should carry the creation event")
}

func TestLoan_CreationValidation(t *testing.T) {
	tests := []struct {
		name       string
		customer   string
		principal  decimal.Decimal
		rate       decimal.Decimal
		termMonths int
		monthSeq   int
	}{
		{"empty customer", "", decimal.NewFromInt(5_000), decimal.NewFromInt(12), 12, 1},
		{"principal below minimum", "cust-001", decimal.NewFromInt(99), decimal.NewFromInt(12), 12, 1},
		{"negative rate", "cust-001", decimal.NewFromInt(5_000), decimal.NewFromInt(-1), 12, 1},
		{"zero term", "cust-001", decimal.NewFromInt(5_000), decimal.NewFromInt(12), 0, 1},
		{"zero sequence", "cust-001", decimal.NewFromInt(5_000), decimal.NewFromInt(12), 12, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := model.NewLoan(tt.customer, tt.principal, tt.rate, tt.termMonths, "GL", tt.monthSeq, testCreatedAt)
			require.Error(t, err)
			assert.True(t, model.IsValidation(err), "expected validation error, got %v", err)
		})
	}
}

func TestLoan_ApplyPayment_ExactInstallment(t *testing.T) {
	loan := newTestLoan(t)
	monthly := loan.MonthlyPayment()

	updated, payment, err := loan.ApplyPayment(
		monthly, valueobject.PaymentMethodHandCash, "", testCreatedAt.AddDate(0, 1, 0))
	require.NoError(t, err)

	// First installment fully settled.
	first := updated.Installments()[0]
	assert.True(t, first.Status.Equal(valueobject.InstallmentStatusPaid))
	assert.True(t, first.AmountPaid.Equal(monthly))

	// Second untouched.
	second := updated.Installments()[1]
	assert.True(t, second.Status.Equal(valueobject.InstallmentStatusPending))
	assert.True(t, second.AmountPaid.Equal(decimal.Zero))

	assert.True(t, updated.TotalPaid().Equal(monthly))
	assert.True(t, updated.RemainingBalance().Equal(loan.TotalPayment().Sub(monthly)))
	assert.True(t, updated.Status().Equal(valueobject.LoanStatusActive))

	assert.Equal(t, 1, payment.InstallmentSeq)
	assert.True(t, payment.Amount.Equal(monthly))
	assert.True(t, payment.RemainingAfter.Equal(updated.RemainingBalance()))

	// The original aggregate is untouched.
	assert.True(t, loan.TotalPaid().Equal(decimal.Zero))
	assert.True(t, loan.Installments()[0].Status.Equal(valueobject.InstallmentStatusPending))
}

func TestLoan_ApplyPayment_Partial(t *testing.T) {
	loan := newTestLoan(t)
	half := loan.MonthlyPayment().Div(decimal.NewFromInt(2)).Round(2)

	updated, _, err := loan.ApplyPayment(
		half, valueobject.PaymentMethodHandCash, "", testCreatedAt.AddDate(0, 1, 0))
	require.NoError(t, err)

	first := updated.Installments()[0]
	assert.True(t, first.Status.Equal(valueobject.InstallmentStatusPartial))
	assert.True(t, first.AmountPaid.Equal(half))

	// A second partial payment tops the installment off.
	rest := first.Remaining()
	topped, _, err := updated.ApplyPayment(
		rest, valueobject.PaymentMethodHandCash, "", testCreatedAt.AddDate(0, 1, 2))
	require.NoError(t, err)
	assert.True(t, topped.Installments()[0].Status.Equal(valueobject.InstallmentStatusPaid))
	assert.True(t, topped.TotalPaid().Equal(loan.MonthlyPayment()))
}

func TestLoan_ApplyPayment_OvershootNotCascaded(t *testing.T) {
	loan := newTestLoan(t)
	monthly := loan.MonthlyPayment()
	double := monthly.Mul(decimal.NewFromInt(2))

	updated, payment, err := loan.ApplyPayment(
		double, valueobject.PaymentMethodHandCash, "", testCreatedAt.AddDate(0, 1, 0))
	require.NoError(t, err)

	// Allocation caps at the first installment; the excess does not spill
	// into the second.
	insts := updated.Installments()
	assert.True(t, insts[0].Status.Equal(valueobject.InstallmentStatusPaid))
	assert.True(t, insts[0].AmountPaid.Equal(monthly),
		"installment paid amount caps at its size, got %s", insts[0].AmountPaid)
	assert.True(t, insts[1].Status.Equal(valueobject.InstallmentStatusPending))
	assert.True(t, insts[1].AmountPaid.Equal(decimal.Zero))

	// The aggregate absorbs the full amount regardless.
	assert.True(t, updated.TotalPaid().Equal(double))
	assert.True(t, updated.RemainingBalance().Equal(loan.TotalPayment().Sub(double)))
	assert.Equal(t, 1, payment.InstallmentSeq)
}

func TestLoan_ApplyPayment_OnlineRequiresTransactionID(t *testing.T) {
	loan := newTestLoan(t)

	_, _, err := loan.ApplyPayment(
		decimal.NewFromInt(500), valueobject.PaymentMethodOnline, "", time.Now().UTC())
	require.Error(t, err)
	assert.True(t, model.IsValidation(err))

	updated, payment, err := loan.ApplyPayment(
		decimal.NewFromInt(500), valueobject.PaymentMethodOnline, "txn-789", time.Now().UTC())
	require.NoError(t, err)
	assert.Equal(t, "txn-789", payment.TransactionID)
	assert.True(t, updated.TotalPaid().Equal(decimal.NewFromInt(500)))
}

func TestLoan_ApplyPayment_HandCashDropsTransactionID(t *testing.T) {
	loan := newTestLoan(t)

	_, payment, err := loan.ApplyPayment(
		decimal.NewFromInt(500), valueobject.PaymentMethodHandCash, "stray-ref", time.Now().UTC())
	require.NoError(t, err)
	assert.Empty(t, payment.TransactionID, "cash payments carry no transaction id")
}

func TestLoan_ApplyPayment_RejectsNonPositiveAmount(t *testing.T) {
	loan := newTestLoan(t)

	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-100)} {
		_, _, err := loan.ApplyPayment(amount, valueobject.PaymentMethodHandCash, "", time.Now().UTC())
		require.Error(t, err)
		assert.True(t, model.IsValidation(err))
	}
}

func TestLoan_ApplyPayment_FullPayoffClosesLoan(t *testing.T) {
	loan := newTestLoan(t)
	paidAt := testCreatedAt.AddDate(0, 2, 0)

	updated, _, err := loan.ApplyPayment(
		loan.TotalPayment(), valueobject.PaymentMethodHandCash, "", paidAt)
	require.NoError(t, err)

	assert.True(t, updated.Status().Equal(valueobject.LoanStatusClosed))
	assert.True(t, updated.RemainingBalance().Equal(decimal.Zero))
	require.NotNil(t, updated.ClosedDate())
	assert.Equal(t, paidAt, *updated.ClosedDate())
	require.NotNil(t, updated.ActualRepaymentDate())
	assert.Equal(t, paidAt, *updated.ActualRepaymentDate())
	assert.True(t, updated.ActualAmountPaid().Equal(loan.TotalPayment()))
}

func TestLoan_ApplyPayment_ClosedLoanRefusesPayment(t *testing.T) {
	loan := newTestLoan(t)

	closed, _, err := loan.ApplyPayment(
		loan.TotalPayment(), valueobject.PaymentMethodHandCash, "", time.Now().UTC())
	require.NoError(t, err)
	require.True(t, closed.Status().Equal(valueobject.LoanStatusClosed))

	_, _, err = closed.ApplyPayment(
		decimal.NewFromInt(100), valueobject.PaymentMethodHandCash, "", time.Now().UTC())
	require.Error(t, err)
	assert.True(t, model.IsInvalidState(err))
}

func TestLoan_ApplyPayment_MonotonicTotals(t *testing.T) {
	loan := newTestLoan(t)
	paidAt := testCreatedAt

	prevPaid := loan.TotalPaid()
	prevRemaining := loan.RemainingBalance()

	for i := 0; i < 5; i++ {
		paidAt = paidAt.AddDate(0, 1, 0)
		updated, _, err := loan.ApplyPayment(
			decimal.NewFromInt(400), valueobject.PaymentMethodHandCash, "", paidAt)
		require.NoError(t, err)

		assert.True(t, updated.TotalPaid().GreaterThan(prevPaid))
		assert.True(t, updated.RemainingBalance().LessThan(prevRemaining))
		assert.True(t, updated.TotalPaid().Add(updated.RemainingBalance()).Equal(loan.TotalPayment()),
			"totalPaid + remaining must always equal the total obligation")

		prevPaid = updated.TotalPaid()
		prevRemaining = updated.RemainingBalance()
		loan = updated
	}
}

func TestLoan_Reject(t *testing.T) {
	loan := newTestLoan(t)

	rejected, err := loan.Reject("pledged gold not verified", time.Now().UTC())
	require.NoError(t, err)
	assert.True(t, rejected.Status().Equal(valueobject.LoanStatusRejected))

	// Terminal states refuse further transitions.
	_, err = rejected.Reject("again", time.Now().UTC())
	assert.ErrorIs(t, err, valueobject.ErrInvalidStatusTransition)

	// And refuse payments.
	_, _, err = rejected.ApplyPayment(
		decimal.NewFromInt(100), valueobject.PaymentMethodHandCash, "", time.Now().UTC())
	require.Error(t, err)
	assert.True(t, model.IsInvalidState(err))
}

func TestLoan_SettleOverride(t *testing.T) {
	loan := newTestLoan(t)

	asOf := testCreatedAt.AddDate(0, 3, 0)
	now := testCreatedAt.AddDate(0, 3, 2)
	settled, err := loan.Settle(asOf, now)
	require.NoError(t, err)

	assert.True(t, settled.Status().Equal(valueobject.LoanStatusClosed))
	require.NotNil(t, settled.ActualRepaymentDate())
	assert.Equal(t, asOf, *settled.ActualRepaymentDate())
	require.NotNil(t, settled.ClosedDate())
	assert.Equal(t, now, *settled.ClosedDate())

	_, err = settled.Settle(asOf, now)
	assert.ErrorIs(t, err, valueobject.ErrInvalidStatusTransition)
}

func TestLoan_AnnotateRenewal(t *testing.T) {
	loan := newTestLoan(t)

	renewal := testCreatedAt.AddDate(1, 0, 0)
	annotated := loan.AnnotateRenewal(renewal, "First National", time.Now().UTC())

	require.NotNil(t, annotated.RenewalDate())
	assert.Equal(t, renewal, *annotated.RenewalDate())
	assert.Equal(t, "First National", annotated.DepositedBank())

	// Annotations do not touch servicing state.
	assert.True(t, annotated.Status().Equal(loan.Status()))
	assert.True(t, annotated.RemainingBalance().Equal(loan.RemainingBalance()))
}

func TestLoan_ReconstructRoundTrip(t *testing.T) {
	loan := newTestLoan(t)
	paid, _, err := loan.ApplyPayment(
		decimal.NewFromInt(500), valueobject.PaymentMethodHandCash, "", testCreatedAt.AddDate(0, 1, 0))
	require.NoError(t, err)

	rec := model.LoanRecord{
		ID:               paid.ID(),
		Code:             paid.Code(),
		CustomerRef:      paid.CustomerRef(),
		Principal:        paid.Principal(),
		AnnualRate:       paid.AnnualRate(),
		TermMonths:       paid.TermMonths(),
		MonthlyPayment:   paid.MonthlyPayment(),
		TotalPayment:     paid.TotalPayment(),
		TotalPaid:        paid.TotalPaid(),
		RemainingBalance: paid.RemainingBalance(),
		Status:           paid.Status(),
		ActualAmountPaid: paid.ActualAmountPaid(),
		Installments:     paid.Installments(),
		Payments:         paid.Payments(),
		Version:          paid.Version(),
		CreatedAt:        paid.CreatedAt(),
		UpdatedAt:        paid.UpdatedAt(),
	}
	restored := model.ReconstructLoan(rec)

	assert.Equal(t, paid.ID(), restored.ID())
	assert.True(t, restored.TotalPaid().Equal(paid.TotalPaid()))
	assert.True(t, restored.RemainingBalance().Equal(paid.RemainingBalance()))
	assert.Len(t, restored.Installments(), 12)
	assert.Len(t, restored.Payments(), 1)
	assert.Empty(t, restored.DomainEvents(), "rehydrated aggregates carry no events")

	// A rehydrated loan keeps servicing payments where the original left off.
	again, _, err := restored.ApplyPayment(
		decimal.NewFromInt(500), valueobject.PaymentMethodHandCash, "", testCreatedAt.AddDate(0, 1, 5))
	require.NoError(t, err)
	assert.True(t, again.TotalPaid().Equal(decimal.NewFromInt(1_000)))
}

func TestLoan_DomainEvents(t *testing.T) {
	loan := newTestLoan(t)
	require.Len(t, loan.DomainEvents(), 1)
	assert.Equal(t, "goldloan.loan.created", loan.DomainEvents()[0].EventType())

	updated, _, err := loan.ApplyPayment(
		loan.TotalPayment(), valueobject.PaymentMethodHandCash, "", time.Now().UTC())
	require.NoError(t, err)

	// Creation, payment received, and closure.
	events := updated.DomainEvents()
	require.Len(t, events, 3)
	assert.Equal(t, "goldloan.loan.payment_received", events[1].EventType())
	assert.Equal(t, "goldloan.loan.closed", events[2].EventType())

	cleared := updated.ClearEvents()
	assert.Empty(t, cleared.DomainEvents())
}

func TestLoanStatus_Vocabulary(t *testing.T) {
	for _, s := range []string{"ACTIVE", "CLOSED", "REJECTED"} {
		got, err := valueobject.NewLoanStatus(s)
		require.NoError(t, err)
		assert.Equal(t, s, got.String())
	}

	// Loans originate ACTIVE, so no approval stage exists.
	_, err := valueobject.NewLoanStatus("APPROVED")
	assert.Error(t, err)
}

func TestPaymentMethod_CaseInsensitive(t *testing.T) {
	for _, raw := range []string{"handcash", "HANDCASH", " HandCash "} {
		got, err := valueobject.NewPaymentMethod(raw)
		require.NoError(t, err, "raw %q", raw)
		assert.True(t, got.Equal(valueobject.PaymentMethodHandCash))
	}

	online, err := valueobject.NewPaymentMethod("online")
	require.NoError(t, err)
	assert.True(t, online.RequiresTransactionID())

	_, err = valueobject.NewPaymentMethod("BARTER")
	assert.Error(t, err)
}
