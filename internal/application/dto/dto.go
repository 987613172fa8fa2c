package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Request DTOs
// ---------------------------------------------------------------------------

// CreateLoanRequest carries the terms for a new gold loan.
type CreateLoanRequest struct {
	CustomerRef string          `json:"customer_ref"`
	Principal   decimal.Decimal `json:"principal"`
	AnnualRate  decimal.Decimal `json:"annual_rate_percent"`
	TermMonths  int             `json:"term_months"`
}

// ApplyPaymentRequest carries one incoming payment against a loan.
type ApplyPaymentRequest struct {
	LoanID        string          `json:"loan_id"`
	Amount        decimal.Decimal `json:"amount"`
	Method        string          `json:"method"`
	TransactionID string          `json:"transaction_id,omitempty"`
}

// GetLoanRequest identifies a loan to retrieve.
type GetLoanRequest struct {
	LoanID string `json:"loan_id"`
}

// QuoteSettlementRequest asks for the current early-payoff amount.
type QuoteSettlementRequest struct {
	LoanID string `json:"loan_id"`
}

// RejectLoanRequest moves a loan to its rejected terminal state.
type RejectLoanRequest struct {
	LoanID string `json:"loan_id"`
	Reason string `json:"reason"`
}

// ---------------------------------------------------------------------------
// Response DTOs
// ---------------------------------------------------------------------------

// InstallmentResponse represents a single scheduled installment.
type InstallmentResponse struct {
	Sequence   int             `json:"sequence"`
	DueDate    time.Time       `json:"due_date"`
	Amount     decimal.Decimal `json:"amount"`
	AmountPaid decimal.Decimal `json:"amount_paid"`
	Status     string          `json:"status"`
}

// PaymentRecordResponse represents one received payment.
type PaymentRecordResponse struct {
	ID             string          `json:"id"`
	Amount         decimal.Decimal `json:"amount"`
	Method         string          `json:"method"`
	TransactionID  string          `json:"transaction_id,omitempty"`
	InstallmentSeq int             `json:"installment_seq"`
	RemainingAfter decimal.Decimal `json:"remaining_after"`
	PaidAt         time.Time       `json:"paid_at"`
}

// LoanResponse is the external representation of a loan.
type LoanResponse struct {
	ID                  string                  `json:"id"`
	Code                string                  `json:"code"`
	CustomerRef         string                  `json:"customer_ref"`
	Principal           decimal.Decimal         `json:"principal"`
	AnnualRate          decimal.Decimal         `json:"annual_rate_percent"`
	TermMonths          int                     `json:"term_months"`
	MonthlyPayment      decimal.Decimal         `json:"monthly_payment"`
	TotalPayment        decimal.Decimal         `json:"total_payment"`
	TotalPaid           decimal.Decimal         `json:"total_paid"`
	RemainingBalance    decimal.Decimal         `json:"remaining_balance"`
	Status              string                  `json:"status"`
	ClosedDate          *time.Time              `json:"closed_date,omitempty"`
	ActualRepaymentDate *time.Time              `json:"actual_repayment_date,omitempty"`
	ActualAmountPaid    decimal.Decimal         `json:"actual_amount_paid"`
	Installments        []InstallmentResponse   `json:"installments,omitempty"`
	Payments            []PaymentRecordResponse `json:"payments,omitempty"`
	CreatedAt           time.Time               `json:"created_at"`
	UpdatedAt           time.Time               `json:"updated_at"`
}

// PaymentResponse is returned after a payment is applied.
type PaymentResponse struct {
	LoanID           string          `json:"loan_id"`
	PaymentID        string          `json:"payment_id"`
	Amount           decimal.Decimal `json:"amount"`
	Method           string          `json:"method"`
	InstallmentSeq   int             `json:"installment_seq"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
	LoanStatus       string          `json:"loan_status"`
}

// SettlementQuoteResponse is the early-payoff quote for a loan.
type SettlementQuoteResponse struct {
	LoanID           string          `json:"loan_id"`
	SettlementAmount decimal.Decimal `json:"settlement_amount"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
	LoanStatus       string          `json:"loan_status"`
}
