package usecase

import (
	"context"
	"fmt"

	"github.com/aurumdesk/goldloan-service/internal/application/dto"
	"github.com/aurumdesk/goldloan-service/internal/domain/port"
)

// GetLoanUseCase retrieves a loan with its schedule and payment history.
type GetLoanUseCase struct {
	loanRepo port.LoanRepository
}

// NewGetLoanUseCase wires dependencies.
func NewGetLoanUseCase(loanRepo port.LoanRepository) *GetLoanUseCase {
	return &GetLoanUseCase{loanRepo: loanRepo}
}

// Execute returns a loan response for the given ID.
func (uc *GetLoanUseCase) Execute(
	ctx context.Context,
	req dto.GetLoanRequest,
) (dto.LoanResponse, error) {
	loan, err := uc.loanRepo.FindByID(ctx, req.LoanID)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("find loan: %w", err)
	}
	return toLoanResponse(loan), nil
}

// ExecuteByCode returns a loan response for the given human-facing code.
func (uc *GetLoanUseCase) ExecuteByCode(
	ctx context.Context,
	code string,
) (dto.LoanResponse, error) {
	loan, err := uc.loanRepo.FindByCode(ctx, code)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("find loan by code: %w", err)
	}
	return toLoanResponse(loan), nil
}

// ExecuteByCustomer returns all loans held by a customer, newest first.
func (uc *GetLoanUseCase) ExecuteByCustomer(
	ctx context.Context,
	customerRef string,
) ([]dto.LoanResponse, error) {
	loans, err := uc.loanRepo.FindByCustomerRef(ctx, customerRef)
	if err != nil {
		return nil, fmt.Errorf("find loans by customer: %w", err)
	}

	out := make([]dto.LoanResponse, len(loans))
	for i, loan := range loans {
		out[i] = toLoanResponse(loan)
	}
	return out, nil
}
