package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aurumdesk/goldloan-service/internal/application/dto"
	"github.com/aurumdesk/goldloan-service/internal/domain/model"
	"github.com/aurumdesk/goldloan-service/internal/domain/port"
	"github.com/aurumdesk/goldloan-service/internal/domain/valueobject"
)

// maxSaveAttempts bounds the reload-and-reapply loop on version conflicts.
const maxSaveAttempts = 3

// ApplyPaymentUseCase applies an incoming payment to a loan's installment
// schedule. Concurrent payments against the same loan are serialized through
// the repository's optimistic lock: a losing writer reloads the aggregate
// and reapplies, so no read-modify-write ever commits on stale state.
type ApplyPaymentUseCase struct {
	loanRepo  port.LoanRepository
	publisher port.EventPublisher
	clock     port.Clock
	logger    *slog.Logger
}

// NewApplyPaymentUseCase wires dependencies.
func NewApplyPaymentUseCase(
	loanRepo port.LoanRepository,
	publisher port.EventPublisher,
	clock port.Clock,
	logger *slog.Logger,
) *ApplyPaymentUseCase {
	return &ApplyPaymentUseCase{
		loanRepo:  loanRepo,
		publisher: publisher,
		clock:     clock,
		logger:    logger,
	}
}

// Execute processes a payment against a loan.
func (uc *ApplyPaymentUseCase) Execute(
	ctx context.Context,
	req dto.ApplyPaymentRequest,
) (dto.PaymentResponse, error) {
	method, err := valueobject.NewPaymentMethod(req.Method)
	if err != nil {
		return dto.PaymentResponse{}, &model.ValidationError{Field: "method", Reason: err.Error()}
	}

	var resp dto.PaymentResponse
	for attempt := 1; ; attempt++ {
		now := uc.clock.Now()

		// 1. Retrieve the loan.
		loan, err := uc.loanRepo.FindByID(ctx, req.LoanID)
		if err != nil {
			return dto.PaymentResponse{}, fmt.Errorf("find loan: %w", err)
		}

		// 2. Allocate the payment.
		updated, payment, err := loan.ApplyPayment(req.Amount, method, req.TransactionID, now)
		if err != nil {
			return dto.PaymentResponse{}, fmt.Errorf("apply payment: %w", err)
		}

		// 3. Persist the whole aggregate atomically.
		if err := uc.loanRepo.Save(ctx, updated); err != nil {
			if errors.Is(err, port.ErrVersionConflict) && attempt < maxSaveAttempts {
				uc.logger.DebugContext(ctx, "payment save lost optimistic lock, retrying",
					"loan_id", req.LoanID, "attempt", attempt)
				continue
			}
			return dto.PaymentResponse{}, fmt.Errorf("save loan: %w", err)
		}

		// 4. Publish domain events. Best-effort: a failed receipt or
		// notification must never roll back an applied payment.
		if err := uc.publisher.Publish(ctx, updated.DomainEvents()...); err != nil {
			uc.logger.WarnContext(ctx, "failed to publish payment events",
				"loan_id", req.LoanID, "payment_id", payment.ID, "error", err)
		}

		resp = dto.PaymentResponse{
			LoanID:           updated.ID(),
			PaymentID:        payment.ID,
			Amount:           payment.Amount,
			Method:           payment.Method.String(),
			InstallmentSeq:   payment.InstallmentSeq,
			RemainingBalance: updated.RemainingBalance(),
			LoanStatus:       updated.Status().String(),
		}
		return resp, nil
	}
}
