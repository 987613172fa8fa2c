package event

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/aurumdesk/goldloan-service/pkg/events"
)

// DomainEvent is an alias for the shared pkg/events.DomainEvent interface.
type DomainEvent = events.DomainEvent

// LoanCreated is raised when a new gold loan is originated and its
// installment schedule generated.
type LoanCreated struct {
	events.BaseEvent
	Code           string          `json:"code"`
	CustomerRef    string          `json:"customer_ref"`
	Principal      decimal.Decimal `json:"principal"`
	AnnualRate     decimal.Decimal `json:"annual_rate_percent"`
	MonthlyPayment decimal.Decimal `json:"monthly_payment"`
	TotalPayment   decimal.Decimal `json:"total_payment"`
	TermMonths     int             `json:"term_months"`
}

func NewLoanCreated(
	loanID, code, customerRef string,
	principal, annualRate, monthlyPayment, totalPayment decimal.Decimal,
	termMonths int,
) LoanCreated {
	return LoanCreated{
		BaseEvent:      events.NewBaseEvent("goldloan.loan.created", loanID, "Loan"),
		Code:           code,
		CustomerRef:    customerRef,
		Principal:      principal,
		AnnualRate:     annualRate,
		MonthlyPayment: monthlyPayment,
		TotalPayment:   totalPayment,
		TermMonths:     termMonths,
	}
}

// PaymentReceived is raised when a payment is applied to a loan. Notification
// collaborators (receipt email, PDF) consume it.
type PaymentReceived struct {
	events.BaseEvent
	PaymentID        string          `json:"payment_id"`
	Method           string          `json:"method"`
	TransactionID    string          `json:"transaction_id,omitempty"`
	Amount           decimal.Decimal `json:"amount"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
	InstallmentSeq   int             `json:"installment_seq"`
}

func NewPaymentReceived(
	loanID, paymentID, method, transactionID string,
	amount, remainingBalance decimal.Decimal,
	installmentSeq int,
) PaymentReceived {
	return PaymentReceived{
		BaseEvent:        events.NewBaseEvent("goldloan.loan.payment_received", loanID, "Loan"),
		PaymentID:        paymentID,
		Method:           method,
		TransactionID:    transactionID,
		Amount:           amount,
		RemainingBalance: remainingBalance,
		InstallmentSeq:   installmentSeq,
	}
}

// LoanClosed is raised when the repayment obligation is fully satisfied.
type LoanClosed struct {
	events.BaseEvent
	ClosedDate       time.Time       `json:"closed_date"`
	ActualAmountPaid decimal.Decimal `json:"actual_amount_paid"`
}

func NewLoanClosed(loanID string, closedDate time.Time, actualAmountPaid decimal.Decimal) LoanClosed {
	return LoanClosed{
		BaseEvent:        events.NewBaseEvent("goldloan.loan.closed", loanID, "Loan"),
		ClosedDate:       closedDate,
		ActualAmountPaid: actualAmountPaid,
	}
}

// LoanRejected is raised when an approved loan is rejected before activation.
type LoanRejected struct {
	events.BaseEvent
	Reason string `json:"reason"`
}

func NewLoanRejected(loanID, reason string) LoanRejected {
	return LoanRejected{
		BaseEvent: events.NewBaseEvent("goldloan.loan.rejected", loanID, "Loan"),
		Reason:    reason,
	}
}
