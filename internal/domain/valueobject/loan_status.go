package valueobject

import (
	"errors"
	"fmt"
	"strings"
)

// ---------------------------------------------------------------------------
// LoanStatus – immutable value object
// ---------------------------------------------------------------------------

// LoanStatus represents the lifecycle stage of a loan.
type LoanStatus struct {
	value string
}

const (
	loanStatusActive   = "ACTIVE"
	loanStatusClosed   = "CLOSED"
	loanStatusRejected = "REJECTED"
)

var (
	LoanStatusActive   = LoanStatus{value: loanStatusActive}
	LoanStatusClosed   = LoanStatus{value: loanStatusClosed}
	LoanStatusRejected = LoanStatus{value: loanStatusRejected}
)

// Loans originate ACTIVE; CLOSED and REJECTED are the two terminals.
var validLoanStatuses = map[string]LoanStatus{
	loanStatusActive:   LoanStatusActive,
	loanStatusClosed:   LoanStatusClosed,
	loanStatusRejected: LoanStatusRejected,
}

// NewLoanStatus creates a LoanStatus from a raw string.
func NewLoanStatus(s string) (LoanStatus, error) {
	v, ok := validLoanStatuses[s]
	if !ok {
		return LoanStatus{}, fmt.Errorf("invalid loan status: %q", s)
	}
	return v, nil
}

// String returns the string representation of the status.
func (s LoanStatus) String() string { return s.value }

// IsZero returns true if the status has not been initialised.
func (s LoanStatus) IsZero() bool { return s.value == "" }

// Equal returns true when both statuses carry the same value.
func (s LoanStatus) Equal(other LoanStatus) bool { return s.value == other.value }

// IsTerminal returns true for CLOSED and REJECTED; no transition leaves them.
func (s LoanStatus) IsTerminal() bool {
	return s.value == loanStatusClosed || s.value == loanStatusRejected
}

// ---------------------------------------------------------------------------
// InstallmentStatus – immutable value object
// ---------------------------------------------------------------------------

// InstallmentStatus represents how much of a scheduled installment has been
// covered by payments. Transitions are monotonic: PENDING -> PARTIAL -> PAID.
type InstallmentStatus struct {
	value string
}

const (
	installmentStatusPending = "PENDING"
	installmentStatusPartial = "PARTIAL"
	installmentStatusPaid    = "PAID"
)

var (
	InstallmentStatusPending = InstallmentStatus{value: installmentStatusPending}
	InstallmentStatusPartial = InstallmentStatus{value: installmentStatusPartial}
	InstallmentStatusPaid    = InstallmentStatus{value: installmentStatusPaid}
)

var validInstallmentStatuses = map[string]InstallmentStatus{
	installmentStatusPending: InstallmentStatusPending,
	installmentStatusPartial: InstallmentStatusPartial,
	installmentStatusPaid:    InstallmentStatusPaid,
}

// NewInstallmentStatus creates an InstallmentStatus from a raw string.
func NewInstallmentStatus(s string) (InstallmentStatus, error) {
	v, ok := validInstallmentStatuses[s]
	if !ok {
		return InstallmentStatus{}, fmt.Errorf("invalid installment status: %q", s)
	}
	return v, nil
}

// String returns the string representation of the status.
func (s InstallmentStatus) String() string { return s.value }

// IsZero returns true if the status has not been initialised.
func (s InstallmentStatus) IsZero() bool { return s.value == "" }

// Equal returns true when both statuses carry the same value.
func (s InstallmentStatus) Equal(other InstallmentStatus) bool { return s.value == other.value }

// IsSettled returns true once an installment is fully paid.
func (s InstallmentStatus) IsSettled() bool { return s.value == installmentStatusPaid }

// ---------------------------------------------------------------------------
// PaymentMethod – immutable value object
// ---------------------------------------------------------------------------

// PaymentMethod is the channel through which a payment was received.
type PaymentMethod struct {
	value string
}

const (
	paymentMethodHandCash = "HANDCASH"
	paymentMethodOnline   = "ONLINE"
)

var (
	PaymentMethodHandCash = PaymentMethod{value: paymentMethodHandCash}
	PaymentMethodOnline   = PaymentMethod{value: paymentMethodOnline}
)

var validPaymentMethods = map[string]PaymentMethod{
	paymentMethodHandCash: PaymentMethodHandCash,
	paymentMethodOnline:   PaymentMethodOnline,
}

// NewPaymentMethod creates a PaymentMethod from a raw string. Matching is
// case-insensitive so both wire forms ("handcash") and stored forms
// ("HANDCASH") parse.
func NewPaymentMethod(s string) (PaymentMethod, error) {
	v, ok := validPaymentMethods[strings.ToUpper(strings.TrimSpace(s))]
	if !ok {
		return PaymentMethod{}, fmt.Errorf("invalid payment method: %q", s)
	}
	return v, nil
}

// String returns the string representation of the method.
func (m PaymentMethod) String() string { return m.value }

// IsZero returns true if the method has not been initialised.
func (m PaymentMethod) IsZero() bool { return m.value == "" }

// Equal returns true when both methods carry the same value.
func (m PaymentMethod) Equal(other PaymentMethod) bool { return m.value == other.value }

// RequiresTransactionID reports whether the method needs an external
// transaction reference (online payments do, cash does not).
func (m PaymentMethod) RequiresTransactionID() bool { return m.value == paymentMethodOnline }

// ---------------------------------------------------------------------------
// Sentinel errors
// ---------------------------------------------------------------------------

var (
	ErrInvalidStatusTransition = errors.New("invalid status transition")
)
