package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/aurumdesk/goldloan-service/internal/domain/event"
	"github.com/aurumdesk/goldloan-service/internal/domain/valueobject"
)

// minPrincipal is the smallest loan the office writes.
var minPrincipal = decimal.NewFromInt(100)

// ---------------------------------------------------------------------------
// Loan aggregate root (Gold-Loan Servicing)
// ---------------------------------------------------------------------------

// Loan is an immutable aggregate. Mutations return a new copy. It exclusively
// owns its installments and payments; neither has a lifecycle outside the
// loan.
type Loan struct {
	id          string
	code        string
	customerRef string

	// Financial terms, immutable after creation.
	principal  decimal.Decimal
	annualRate decimal.Decimal
	termMonths int

	// Derived at creation, then immutable.
	monthlyPayment decimal.Decimal
	totalPayment   decimal.Decimal

	// Running state.
	totalPaid           decimal.Decimal
	remainingBalance    decimal.Decimal
	status              valueobject.LoanStatus
	closedDate          *time.Time
	actualRepaymentDate *time.Time
	actualAmountPaid    decimal.Decimal

	// Annotations carried for the renewal workflow; no logic attaches to them.
	renewalDate   *time.Time
	depositedBank string

	installments []Installment
	payments     []Payment

	version   int
	createdAt time.Time
	updatedAt time.Time

	domainEvents []event.DomainEvent
}

// ---------------------------------------------------------------------------
// Constructors
// ---------------------------------------------------------------------------

// NewLoan originates a gold loan: validates the terms, derives the monthly
// and total payment, generates the installment schedule, and assigns the
// human-facing code <prefix><yy><mm><seq>. The monthly sequence number comes
// from the caller so the aggregate stays free of ambient counters.
//
// The loan starts in ACTIVE status.
func NewLoan(
	customerRef string,
	principal, annualRate decimal.Decimal,
	termMonths int,
	codePrefix string,
	monthSeq int,
	now time.Time,
) (Loan, error) {
	if customerRef == "" {
		return Loan{}, newValidationError("customerRef", "customer reference is required")
	}
	if principal.LessThan(minPrincipal) {
		return Loan{}, newValidationError("principal", "principal must be at least 100")
	}
	if annualRate.IsNegative() {
		return Loan{}, newValidationError("annualRate", "interest rate must not be negative")
	}
	if termMonths < 1 {
		return Loan{}, newValidationError("termMonths", "term must be at least one month")
	}
	if monthSeq < 1 {
		return Loan{}, newValidationError("monthSeq", "monthly sequence must be positive")
	}

	id := uuid.New().String()
	code := fmt.Sprintf("%s%02d%02d%d", codePrefix, now.Year()%100, int(now.Month()), monthSeq)

	monthly, total := MonthlyPayment(principal, annualRate, termMonths)
	schedule := GenerateInstallmentSchedule(now, termMonths, monthly)

	loan := Loan{
		id:               id,
		code:             code,
		customerRef:      customerRef,
		principal:        principal,
		annualRate:       annualRate,
		termMonths:       termMonths,
		monthlyPayment:   monthly,
		totalPayment:     total,
		totalPaid:        decimal.Zero,
		remainingBalance: total,
		actualAmountPaid: decimal.Zero,
		status:           valueobject.LoanStatusActive,
		installments:     schedule,
		version:          1,
		createdAt:        now,
		updatedAt:        now,
	}

	loan.domainEvents = append(loan.domainEvents, event.NewLoanCreated(
		id, code, customerRef, principal, annualRate, monthly, total, termMonths,
	))

	return loan, nil
}

// LoanRecord carries a persisted loan's full state for rehydration.
type LoanRecord struct {
	ID                  string
	Code                string
	CustomerRef         string
	Principal           decimal.Decimal
	AnnualRate          decimal.Decimal
	TermMonths          int
	MonthlyPayment      decimal.Decimal
	TotalPayment        decimal.Decimal
	TotalPaid           decimal.Decimal
	RemainingBalance    decimal.Decimal
	Status              valueobject.LoanStatus
	ClosedDate          *time.Time
	ActualRepaymentDate *time.Time
	ActualAmountPaid    decimal.Decimal
	RenewalDate         *time.Time
	DepositedBank       string
	Installments        []Installment
	Payments            []Payment
	Version             int
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// ReconstructLoan rebuilds a Loan aggregate from persistence.
func ReconstructLoan(rec LoanRecord) Loan {
	return Loan{
		id:                  rec.ID,
		code:                rec.Code,
		customerRef:         rec.CustomerRef,
		principal:           rec.Principal,
		annualRate:          rec.AnnualRate,
		termMonths:          rec.TermMonths,
		monthlyPayment:      rec.MonthlyPayment,
		totalPayment:        rec.TotalPayment,
		totalPaid:           rec.TotalPaid,
		remainingBalance:    rec.RemainingBalance,
		status:              rec.Status,
		closedDate:          rec.ClosedDate,
		actualRepaymentDate: rec.ActualRepaymentDate,
		actualAmountPaid:    rec.ActualAmountPaid,
		renewalDate:         rec.RenewalDate,
		depositedBank:       rec.DepositedBank,
		installments:        rec.Installments,
		payments:            rec.Payments,
		version:             rec.Version,
		createdAt:           rec.CreatedAt,
		updatedAt:           rec.UpdatedAt,
	}
}

// ---------------------------------------------------------------------------
// State transitions
// ---------------------------------------------------------------------------

// ApplyPayment allocates an incoming payment to the lowest open installment,
// updates the loan totals, and closes the loan when the obligation is
// satisfied. It returns the updated aggregate and the created payment record.
//
// Allocation caps at the current installment's remaining room: overshoot is
// not cascaded into later installments, it only reduces the aggregate
// balance.
func (l Loan) ApplyPayment(
	amount decimal.Decimal,
	method valueobject.PaymentMethod,
	transactionID string,
	now time.Time,
) (Loan, Payment, error) {
	if !amount.IsPositive() {
		return l, Payment{}, newValidationError("amount", "payment amount must be positive")
	}
	if method.IsZero() {
		return l, Payment{}, newValidationError("method", "payment method is required")
	}
	if method.RequiresTransactionID() && transactionID == "" {
		return l, Payment{}, newValidationError("transactionId", "transaction id is required for online payments")
	}
	if l.status.Equal(valueobject.LoanStatusClosed) {
		return l, Payment{}, newInvalidStateError("loan is already closed")
	}
	if !l.status.Equal(valueobject.LoanStatusActive) {
		return l, Payment{}, newInvalidStateError(fmt.Sprintf("loan is %s, not active", l.status))
	}
	if !method.RequiresTransactionID() {
		transactionID = ""
	}

	cur := -1
	for idx, inst := range l.installments {
		if !inst.Status.IsSettled() {
			cur = idx
			break
		}
	}
	if cur == -1 {
		// All installments settled but the loan never closed: the aggregate
		// is inconsistent, refuse to allocate.
		return l, Payment{}, newInvalidStateError("no open installment on an active loan")
	}

	next := l
	next.installments = make([]Installment, len(l.installments))
	copy(next.installments, l.installments)

	inst := next.installments[cur]
	room := inst.Remaining()
	applied := amount
	if applied.GreaterThan(room) {
		applied = room
	}
	inst.AmountPaid = inst.AmountPaid.Add(applied)
	if inst.AmountPaid.GreaterThanOrEqual(inst.Amount) {
		inst.Status = valueobject.InstallmentStatusPaid
	} else {
		inst.Status = valueobject.InstallmentStatusPartial
	}
	next.installments[cur] = inst

	payment := Payment{
		ID:             uuid.New().String(),
		Amount:         amount,
		Method:         method,
		TransactionID:  transactionID,
		InstallmentSeq: inst.Sequence,
		RemainingAfter: l.remainingBalance.Sub(amount),
		PaidAt:         now,
	}

	next.payments = make([]Payment, len(l.payments), len(l.payments)+1)
	copy(next.payments, l.payments)
	next.payments = append(next.payments, payment)

	next.totalPaid = l.totalPaid.Add(amount)
	next.remainingBalance = l.remainingBalance.Sub(amount)
	next.updatedAt = now

	next.domainEvents = copyEvents(l.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewPaymentReceived(
		l.id, payment.ID, method.String(), transactionID,
		amount, next.remainingBalance, inst.Sequence,
	))

	if next.remainingBalance.LessThanOrEqual(decimal.Zero) {
		closedAt := now
		next.status = valueobject.LoanStatusClosed
		next.closedDate = &closedAt
		next.actualRepaymentDate = &closedAt
		next.actualAmountPaid = next.totalPaid
		next.domainEvents = append(next.domainEvents, event.NewLoanClosed(
			l.id, closedAt, next.actualAmountPaid,
		))
	}

	return next, payment, nil
}

// Reject moves the loan to its alternate terminal state. Rejection happens
// outside the payment flow and is irreversible.
func (l Loan) Reject(reason string, now time.Time) (Loan, error) {
	if l.status.IsTerminal() {
		return l, valueobject.ErrInvalidStatusTransition
	}
	next := l
	next.status = valueobject.LoanStatusRejected
	next.updatedAt = now
	next.domainEvents = copyEvents(l.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewLoanRejected(l.id, reason))
	return next, nil
}

// Settle is the administrative closure override: it stamps the actual
// repayment date directly and closes the loan regardless of the schedule
// state.
func (l Loan) Settle(asOf, now time.Time) (Loan, error) {
	if l.status.IsTerminal() {
		return l, valueobject.ErrInvalidStatusTransition
	}
	closedAt := now
	repaidAt := asOf
	next := l
	next.status = valueobject.LoanStatusClosed
	next.closedDate = &closedAt
	next.actualRepaymentDate = &repaidAt
	next.actualAmountPaid = l.totalPaid
	next.updatedAt = now
	next.domainEvents = copyEvents(l.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewLoanClosed(
		l.id, closedAt, next.actualAmountPaid,
	))
	return next, nil
}

// AnnotateRenewal records the renewal date and deposited bank. Annotation
// only; no servicing logic reads these.
func (l Loan) AnnotateRenewal(renewalDate time.Time, depositedBank string, now time.Time) Loan {
	rd := renewalDate
	next := l
	next.renewalDate = &rd
	next.depositedBank = depositedBank
	next.updatedAt = now
	next.domainEvents = copyEvents(l.domainEvents)
	return next
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (l Loan) ID() string                          { return l.id }
func (l Loan) Code() string                        { return l.code }
func (l Loan) CustomerRef() string                 { return l.customerRef }
func (l Loan) Principal() decimal.Decimal          { return l.principal }
func (l Loan) AnnualRate() decimal.Decimal         { return l.annualRate }
func (l Loan) TermMonths() int                     { return l.termMonths }
func (l Loan) MonthlyPayment() decimal.Decimal     { return l.monthlyPayment }
func (l Loan) TotalPayment() decimal.Decimal       { return l.totalPayment }
func (l Loan) TotalPaid() decimal.Decimal          { return l.totalPaid }
func (l Loan) RemainingBalance() decimal.Decimal   { return l.remainingBalance }
func (l Loan) Status() valueobject.LoanStatus      { return l.status }
func (l Loan) ClosedDate() *time.Time              { return l.closedDate }
func (l Loan) ActualRepaymentDate() *time.Time     { return l.actualRepaymentDate }
func (l Loan) ActualAmountPaid() decimal.Decimal   { return l.actualAmountPaid }
func (l Loan) RenewalDate() *time.Time             { return l.renewalDate }
func (l Loan) DepositedBank() string               { return l.depositedBank }
func (l Loan) Version() int                        { return l.version }
func (l Loan) CreatedAt() time.Time                { return l.createdAt }
func (l Loan) UpdatedAt() time.Time                { return l.updatedAt }
func (l Loan) DomainEvents() []event.DomainEvent   { return l.domainEvents }

// Installments returns a defensive copy of the installment schedule.
func (l Loan) Installments() []Installment {
	if l.installments == nil {
		return nil
	}
	out := make([]Installment, len(l.installments))
	copy(out, l.installments)
	return out
}

// Payments returns a defensive copy of the payment history.
func (l Loan) Payments() []Payment {
	if l.payments == nil {
		return nil
	}
	out := make([]Payment, len(l.payments))
	copy(out, l.payments)
	return out
}

// CurrentInstallment returns the lowest-sequence installment that is not yet
// fully paid, if any.
func (l Loan) CurrentInstallment() (Installment, bool) {
	for _, inst := range l.installments {
		if !inst.Status.IsSettled() {
			return inst, true
		}
	}
	return Installment{}, false
}

// ClearEvents returns a copy with an empty event list.
func (l Loan) ClearEvents() Loan {
	next := l
	next.domainEvents = nil
	return next
}

func copyEvents(evts []event.DomainEvent) []event.DomainEvent {
	if evts == nil {
		return nil
	}
	out := make([]event.DomainEvent, len(evts))
	copy(out, evts)
	return out
}
