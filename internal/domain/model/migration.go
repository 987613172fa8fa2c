package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/aurumdesk/goldloan-service/internal/domain/valueobject"
)

// FlatPayment is one entry of the legacy payment-only schema, which tracked
// amounts and dates against the loan without installment allocation.
type FlatPayment struct {
	PaidAt time.Time
	Amount decimal.Decimal
}

// ReplayFlatPayments maps a legacy flat payment list onto the installment
// model by replaying each payment through the allocator in order. The
// resulting loan carries a full installment schedule with per-installment
// paid amounts and statuses consistent with the aggregate totals.
//
// Intended for one-time record migration only: it fails if a legacy payment
// arrives after the replayed loan has already closed, since the legacy data
// would then be internally inconsistent.
func ReplayFlatPayments(loan Loan, flat []FlatPayment) (Loan, error) {
	for i, p := range flat {
		if loan.Status().Equal(valueobject.LoanStatusClosed) {
			return Loan{}, fmt.Errorf("legacy payment %d arrives after loan closure", i+1)
		}
		migrated, _, err := loan.ApplyPayment(p.Amount, valueobject.PaymentMethodHandCash, "", p.PaidAt)
		if err != nil {
			return Loan{}, fmt.Errorf("replay legacy payment %d: %w", i+1, err)
		}
		loan = migrated
	}
	return loan.ClearEvents(), nil
}
