package usecase

import (
	"context"
	"fmt"

	"github.com/aurumdesk/goldloan-service/internal/application/dto"
	"github.com/aurumdesk/goldloan-service/internal/domain/port"
)

// QuoteSettlementUseCase computes the early-payoff amount for a loan. The
// quote is read-only and deterministic: quoting twice without intervening
// payments yields the same figure.
type QuoteSettlementUseCase struct {
	loanRepo port.LoanRepository
}

// NewQuoteSettlementUseCase wires dependencies.
func NewQuoteSettlementUseCase(loanRepo port.LoanRepository) *QuoteSettlementUseCase {
	return &QuoteSettlementUseCase{loanRepo: loanRepo}
}

// Execute returns the settlement quote for the given loan.
func (uc *QuoteSettlementUseCase) Execute(
	ctx context.Context,
	req dto.QuoteSettlementRequest,
) (dto.SettlementQuoteResponse, error) {
	loan, err := uc.loanRepo.FindByID(ctx, req.LoanID)
	if err != nil {
		return dto.SettlementQuoteResponse{}, fmt.Errorf("find loan: %w", err)
	}

	return dto.SettlementQuoteResponse{
		LoanID:           loan.ID(),
		SettlementAmount: loan.SettlementAmount(),
		RemainingBalance: loan.RemainingBalance(),
		LoanStatus:       loan.Status().String(),
	}, nil
}
