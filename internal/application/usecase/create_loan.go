package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aurumdesk/goldloan-service/internal/application/dto"
	"github.com/aurumdesk/goldloan-service/internal/domain/model"
	"github.com/aurumdesk/goldloan-service/internal/domain/port"
)

// utcClock is the default Clock implementation.
type utcClock struct{}

func (utcClock) Now() time.Time { return time.Now().UTC() }

// UTCClock returns a Clock backed by the system clock in UTC.
func UTCClock() port.Clock { return utcClock{} }

// CreateLoanUseCase originates a gold loan: it obtains the monthly code
// sequence, builds the aggregate with its installment schedule, persists it,
// and announces the creation.
type CreateLoanUseCase struct {
	loanRepo   port.LoanRepository
	sequence   port.LoanSequence
	publisher  port.EventPublisher
	clock      port.Clock
	codePrefix string
	logger     *slog.Logger
}

// NewCreateLoanUseCase wires dependencies.
func NewCreateLoanUseCase(
	loanRepo port.LoanRepository,
	sequence port.LoanSequence,
	publisher port.EventPublisher,
	clock port.Clock,
	codePrefix string,
	logger *slog.Logger,
) *CreateLoanUseCase {
	return &CreateLoanUseCase{
		loanRepo:   loanRepo,
		sequence:   sequence,
		publisher:  publisher,
		clock:      clock,
		codePrefix: codePrefix,
		logger:     logger,
	}
}

// Execute creates and persists a new loan.
func (uc *CreateLoanUseCase) Execute(
	ctx context.Context,
	req dto.CreateLoanRequest,
) (dto.LoanResponse, error) {
	now := uc.clock.Now()

	// 1. Reserve the next code sequence for this calendar month.
	seq, err := uc.sequence.NextCodeSequence(ctx, now.Year(), now.Month())
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("next code sequence: %w", err)
	}

	// 2. Create the aggregate (derives payments, generates the schedule).
	loan, err := model.NewLoan(
		req.CustomerRef, req.Principal, req.AnnualRate, req.TermMonths,
		uc.codePrefix, seq, now,
	)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("create loan: %w", err)
	}

	// 3. Persist.
	if err := uc.loanRepo.Save(ctx, loan); err != nil {
		return dto.LoanResponse{}, fmt.Errorf("save loan: %w", err)
	}

	// 4. Publish domain events. Best-effort: notification collaborators must
	// never fail origination.
	if err := uc.publisher.Publish(ctx, loan.DomainEvents()...); err != nil {
		uc.logger.WarnContext(ctx, "failed to publish loan events",
			"loan_id", loan.ID(), "error", err)
	}

	return toLoanResponse(loan), nil
}

func toLoanResponse(loan model.Loan) dto.LoanResponse {
	installments := loan.Installments()
	instResp := make([]dto.InstallmentResponse, len(installments))
	for i, inst := range installments {
		instResp[i] = dto.InstallmentResponse{
			Sequence:   inst.Sequence,
			DueDate:    inst.DueDate,
			Amount:     inst.Amount,
			AmountPaid: inst.AmountPaid,
			Status:     inst.Status.String(),
		}
	}

	payments := loan.Payments()
	payResp := make([]dto.PaymentRecordResponse, len(payments))
	for i, p := range payments {
		payResp[i] = dto.PaymentRecordResponse{
			ID:             p.ID,
			Amount:         p.Amount,
			Method:         p.Method.String(),
			TransactionID:  p.TransactionID,
			InstallmentSeq: p.InstallmentSeq,
			RemainingAfter: p.RemainingAfter,
			PaidAt:         p.PaidAt,
		}
	}

	return dto.LoanResponse{
		ID:                  loan.ID(),
		Code:                loan.Code(),
		CustomerRef:         loan.CustomerRef(),
		Principal:           loan.Principal(),
		AnnualRate:          loan.AnnualRate(),
		TermMonths:          loan.TermMonths(),
		MonthlyPayment:      loan.MonthlyPayment(),
		TotalPayment:        loan.TotalPayment(),
		TotalPaid:           loan.TotalPaid(),
		RemainingBalance:    loan.RemainingBalance(),
		Status:              loan.Status().String(),
		ClosedDate:          loan.ClosedDate(),
		ActualRepaymentDate: loan.ActualRepaymentDate(),
		ActualAmountPaid:    loan.ActualAmountPaid(),
		Installments:        instResp,
		Payments:            payResp,
		CreatedAt:           loan.CreatedAt(),
		UpdatedAt:           loan.UpdatedAt(),
	}
}
