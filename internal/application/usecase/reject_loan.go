package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aurumdesk/goldloan-service/internal/application/dto"
	"github.com/aurumdesk/goldloan-service/internal/domain/port"
)

// RejectLoanUseCase moves a loan to its rejected terminal state. Rejection
// happens outside the payment flow, typically before any payment is taken.
type RejectLoanUseCase struct {
	loanRepo  port.LoanRepository
	publisher port.EventPublisher
	clock     port.Clock
	logger    *slog.Logger
}

// NewRejectLoanUseCase wires dependencies.
func NewRejectLoanUseCase(
	loanRepo port.LoanRepository,
	publisher port.EventPublisher,
	clock port.Clock,
	logger *slog.Logger,
) *RejectLoanUseCase {
	return &RejectLoanUseCase{
		loanRepo:  loanRepo,
		publisher: publisher,
		clock:     clock,
		logger:    logger,
	}
}

// Execute rejects a loan.
func (uc *RejectLoanUseCase) Execute(
	ctx context.Context,
	req dto.RejectLoanRequest,
) (dto.LoanResponse, error) {
	loan, err := uc.loanRepo.FindByID(ctx, req.LoanID)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("find loan: %w", err)
	}

	loan, err = loan.Reject(req.Reason, uc.clock.Now())
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("reject loan: %w", err)
	}

	if err := uc.loanRepo.Save(ctx, loan); err != nil {
		return dto.LoanResponse{}, fmt.Errorf("save loan: %w", err)
	}

	if err := uc.publisher.Publish(ctx, loan.DomainEvents()...); err != nil {
		uc.logger.WarnContext(ctx, "failed to publish rejection events",
			"loan_id", loan.ID(), "error", err)
	}

	return toLoanResponse(loan), nil
}
