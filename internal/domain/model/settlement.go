package model

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// avgDaysPerMonth is the fixed month-length approximation used for early
// settlement. Elapsed months are counted against this constant, not the
// calendar, and settlement amounts depend on reproducing it exactly.
const avgDaysPerMonth = 30.44

const hoursPerDay = 24

// SimpleInterestSettlement computes the amount required to fully settle a
// loan that ran from createdAt to repaymentDate, using simple interest on
// the elapsed duration.
//
// This is deliberately a different formula from the amortized schedule:
// early payoff is priced by simple proration of the annual rate over the
// months actually used (rounded up), and may come out below or above the
// remaining amortized balance. The result is clamped at zero and rounded to
// the nearest currency minor unit.
func SimpleInterestSettlement(
	principal decimal.Decimal,
	annualRate decimal.Decimal,
	createdAt, repaymentDate time.Time,
	totalPaid decimal.Decimal,
) decimal.Decimal {
	elapsedDays := repaymentDate.Sub(createdAt).Hours() / hoursPerDay
	monthsUsed := int(math.Ceil(elapsedDays / avgDaysPerMonth))
	if monthsUsed < 0 {
		monthsUsed = 0
	}

	monthlyRate := annualRate.Div(decimal.NewFromInt(100)).Div(decimal.NewFromInt(12))
	interestForUsed := principal.Mul(monthlyRate).Mul(decimal.NewFromInt(int64(monthsUsed)))
	totalOwedForUsed := principal.Add(interestForUsed)

	owed := totalOwedForUsed.Sub(totalPaid)
	if owed.LessThan(decimal.Zero) {
		owed = decimal.Zero
	}
	return owed.Round(2)
}

// SettlementAmount quotes the amount required to fully settle the loan.
//
// Without an actual repayment date on record the quote is simply the
// remaining amortized balance. Once an actual repayment date is set (by
// closure or administrative override), the quote switches to simple-interest
// proration for the duration actually used — independent of which scheduled
// installments were paid.
func (l Loan) SettlementAmount() decimal.Decimal {
	if l.actualRepaymentDate == nil {
		return l.remainingBalance
	}
	return SimpleInterestSettlement(
		l.principal, l.annualRate, l.createdAt, *l.actualRepaymentDate, l.totalPaid,
	)
}
