package model

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/aurumdesk/goldloan-service/internal/domain/valueobject"
)

// Installment is one scheduled monthly obligation within the loan term.
// Installments are created once at loan creation and mutated only by the
// payment allocator.
type Installment struct {
	DueDate    time.Time
	Amount     decimal.Decimal
	AmountPaid decimal.Decimal
	Status     valueobject.InstallmentStatus
	Sequence   int
}

// Remaining returns how much of the installment is still owed.
func (i Installment) Remaining() decimal.Decimal {
	return i.Amount.Sub(i.AmountPaid)
}

// MonthlyPayment computes the fixed monthly payment and the total repayment
// obligation for a loan.
//
// Parameters:
//   - principal:   the disbursed loan amount
//   - annualRate:  annual interest rate in percent (e.g. 12 = 12.00%)
//   - termMonths:  number of monthly periods
//
// The calculation uses:
//
//	monthlyRate = annualRate / 100 / 12
//	payment     = P * r * (1+r)^n / ((1+r)^n - 1)
//
// The total payment is defined as payment * termMonths, so the installment
// schedule always sums to the total exactly.
func MonthlyPayment(
	principal decimal.Decimal,
	annualRate decimal.Decimal,
	termMonths int,
) (monthly, total decimal.Decimal) {
	// float64 for the power calculation, decimal for monetary arithmetic.
	monthlyRate := annualRate.InexactFloat64() / 100.0 / 12.0

	if monthlyRate == 0 {
		// Zero-interest: the annuity formula is undefined at r=0, use an
		// even split instead.
		monthly = principal.Div(decimal.NewFromInt(int64(termMonths))).Round(2)
	} else {
		factor := math.Pow(1+monthlyRate, float64(termMonths))
		paymentFloat := principal.InexactFloat64() * monthlyRate * factor / (factor - 1)
		monthly = decimal.NewFromFloat(paymentFloat).Round(2)
	}

	total = monthly.Mul(decimal.NewFromInt(int64(termMonths)))
	return monthly, total
}

// GenerateInstallmentSchedule builds the ordered installment sequence for a
// new loan: termMonths entries, each due one calendar month after the
// previous (AddDate semantics handle month-end overflow), each owing the
// monthly payment, all starting PENDING.
//
// Runs exactly once, at loan creation. Re-running it against an existing
// loan would discard payment history, so nothing outside NewLoan calls it.
func GenerateInstallmentSchedule(
	createdAt time.Time,
	termMonths int,
	monthly decimal.Decimal,
) []Installment {
	if termMonths <= 0 {
		return nil
	}

	schedule := make([]Installment, 0, termMonths)
	for seq := 1; seq <= termMonths; seq++ {
		schedule = append(schedule, Installment{
			Sequence:   seq,
			DueDate:    createdAt.AddDate(0, seq, 0),
			Amount:     monthly,
			AmountPaid: decimal.Zero,
			Status:     valueobject.InstallmentStatusPending,
		})
	}
	return schedule
}
