package grpc

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/aurumdesk/goldloan-service/internal/application/dto"
	"github.com/aurumdesk/goldloan-service/internal/application/usecase"
	"github.com/aurumdesk/goldloan-service/internal/domain/model"
	"github.com/aurumdesk/goldloan-service/internal/domain/port"
	"github.com/aurumdesk/goldloan-service/internal/domain/valueobject"
)

// Compile-time assertion that GoldLoanHandler implements GoldLoanServiceServer.
var _ GoldLoanServiceServer = (*GoldLoanHandler)(nil)

// GoldLoanHandler implements the gRPC GoldLoanServiceServer interface.
type GoldLoanHandler struct {
	UnimplementedGoldLoanServiceServer
	createLoan      *usecase.CreateLoanUseCase
	applyPayment    *usecase.ApplyPaymentUseCase
	getLoan         *usecase.GetLoanUseCase
	quoteSettlement *usecase.QuoteSettlementUseCase
	rejectLoan      *usecase.RejectLoanUseCase
	logger          *slog.Logger
}

func NewGoldLoanHandler(
	createLoan *usecase.CreateLoanUseCase,
	applyPayment *usecase.ApplyPaymentUseCase,
	getLoan *usecase.GetLoanUseCase,
	quoteSettlement *usecase.QuoteSettlementUseCase,
	rejectLoan *usecase.RejectLoanUseCase,
	logger *slog.Logger,
) *GoldLoanHandler {
	return &GoldLoanHandler{
		createLoan:      createLoan,
		applyPayment:    applyPayment,
		getLoan:         getLoan,
		quoteSettlement: quoteSettlement,
		rejectLoan:      rejectLoan,
		logger:          logger,
	}
}

// Proto-aligned request/response message types. Amounts travel as decimal
// strings and timestamps as RFC 3339 strings.

type CreateLoanRequest struct {
	CustomerRef string `json:"customer_ref"`
	Principal   string `json:"principal"`
	AnnualRate  string `json:"annual_rate_percent"`
	TermMonths  int32  `json:"term_months"`
}

type CreateLoanResponse struct {
	Loan *LoanMsg `json:"loan"`
}

type GetLoanRequest struct {
	ID string `json:"id"`
}

type GetLoanResponse struct {
	Loan *LoanMsg `json:"loan"`
}

type ApplyPaymentRequest struct {
	LoanID        string `json:"loan_id"`
	Amount        string `json:"amount"`
	Method        string `json:"method"`
	TransactionID string `json:"transaction_id,omitempty"`
}

type ApplyPaymentResponse struct {
	PaymentID        string `json:"payment_id"`
	LoanID           string `json:"loan_id"`
	Amount           string `json:"amount"`
	Method           string `json:"method"`
	InstallmentSeq   int32  `json:"installment_seq"`
	RemainingBalance string `json:"remaining_balance"`
	LoanStatus       string `json:"loan_status"`
}

type QuoteSettlementRequest struct {
	LoanID string `json:"loan_id"`
}

type QuoteSettlementResponse struct {
	LoanID           string `json:"loan_id"`
	SettlementAmount string `json:"settlement_amount"`
	RemainingBalance string `json:"remaining_balance"`
	LoanStatus       string `json:"loan_status"`
}

type RejectLoanRequest struct {
	LoanID string `json:"loan_id"`
	Reason string `json:"reason"`
}

type RejectLoanResponse struct {
	Loan *LoanMsg `json:"loan"`
}

type InstallmentMsg struct {
	Sequence   int32  `json:"sequence"`
	DueDate    string `json:"due_date"`
	Amount     string `json:"amount"`
	AmountPaid string `json:"amount_paid"`
	Status     string `json:"status"`
}

type PaymentMsg struct {
	ID             string `json:"id"`
	Amount         string `json:"amount"`
	Method         string `json:"method"`
	TransactionID  string `json:"transaction_id,omitempty"`
	InstallmentSeq int32  `json:"installment_seq"`
	RemainingAfter string `json:"remaining_after"`
	PaidAt         string `json:"paid_at"`
}

type LoanMsg struct {
	ID                  string            `json:"id"`
	Code                string            `json:"code"`
	CustomerRef         string            `json:"customer_ref"`
	Principal           string            `json:"principal"`
	AnnualRate          string            `json:"annual_rate_percent"`
	TermMonths          int32             `json:"term_months"`
	MonthlyPayment      string            `json:"monthly_payment"`
	TotalPayment        string            `json:"total_payment"`
	TotalPaid           string            `json:"total_paid"`
	RemainingBalance    string            `json:"remaining_balance"`
	Status              string            `json:"status"`
	ClosedDate          string            `json:"closed_date,omitempty"`
	ActualRepaymentDate string            `json:"actual_repayment_date,omitempty"`
	ActualAmountPaid    string            `json:"actual_amount_paid"`
	Installments        []*InstallmentMsg `json:"installments,omitempty"`
	Payments            []*PaymentMsg     `json:"payments,omitempty"`
	CreatedAt           string            `json:"created_at"`
	UpdatedAt           string            `json:"updated_at"`
}

// CreateLoan originates a new gold loan.
func (h *GoldLoanHandler) CreateLoan(ctx context.Context, req *CreateLoanRequest) (*CreateLoanResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	principal, err := decimal.NewFromString(req.Principal)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid principal: %v", err)
	}
	rate, err := decimal.NewFromString(req.AnnualRate)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid annual_rate_percent: %v", err)
	}

	result, err := h.createLoan.Execute(ctx, dto.CreateLoanRequest{
		CustomerRef: req.CustomerRef,
		Principal:   principal,
		AnnualRate:  rate,
		TermMonths:  int(req.TermMonths),
	})
	if err != nil {
		return nil, h.toStatus(ctx, err)
	}

	return &CreateLoanResponse{Loan: toLoanMsg(result)}, nil
}

// GetLoan retrieves a loan by ID.
func (h *GoldLoanHandler) GetLoan(ctx context.Context, req *GetLoanRequest) (*GetLoanResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	result, err := h.getLoan.Execute(ctx, dto.GetLoanRequest{LoanID: req.ID})
	if err != nil {
		return nil, h.toStatus(ctx, err)
	}

	return &GetLoanResponse{Loan: toLoanMsg(result)}, nil
}

// ApplyPayment records a repayment against a loan.
func (h *GoldLoanHandler) ApplyPayment(ctx context.Context, req *ApplyPaymentRequest) (*ApplyPaymentResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid amount: %v", err)
	}

	result, err := h.applyPayment.Execute(ctx, dto.ApplyPaymentRequest{
		LoanID:        req.LoanID,
		Amount:        amount,
		Method:        req.Method,
		TransactionID: req.TransactionID,
	})
	if err != nil {
		return nil, h.toStatus(ctx, err)
	}

	return &ApplyPaymentResponse{
		PaymentID:        result.PaymentID,
		LoanID:           result.LoanID,
		Amount:           result.Amount.String(),
		Method:           result.Method,
		InstallmentSeq:   int32(result.InstallmentSeq), //nolint:gosec
		RemainingBalance: result.RemainingBalance.String(),
		LoanStatus:       result.LoanStatus,
	}, nil
}

// QuoteSettlement returns the current early-payoff amount for a loan.
func (h *GoldLoanHandler) QuoteSettlement(ctx context.Context, req *QuoteSettlementRequest) (*QuoteSettlementResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	result, err := h.quoteSettlement.Execute(ctx, dto.QuoteSettlementRequest{LoanID: req.LoanID})
	if err != nil {
		return nil, h.toStatus(ctx, err)
	}

	return &QuoteSettlementResponse{
		LoanID:           result.LoanID,
		SettlementAmount: result.SettlementAmount.String(),
		RemainingBalance: result.RemainingBalance.String(),
		LoanStatus:       result.LoanStatus,
	}, nil
}

// RejectLoan moves a loan to its rejected terminal state.
func (h *GoldLoanHandler) RejectLoan(ctx context.Context, req *RejectLoanRequest) (*RejectLoanResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	result, err := h.rejectLoan.Execute(ctx, dto.RejectLoanRequest{
		LoanID: req.LoanID,
		Reason: req.Reason,
	})
	if err != nil {
		return nil, h.toStatus(ctx, err)
	}

	return &RejectLoanResponse{Loan: toLoanMsg(result)}, nil
}

// toStatus maps domain errors onto gRPC status codes.
func (h *GoldLoanHandler) toStatus(ctx context.Context, err error) error {
	switch {
	case model.IsValidation(err):
		return status.Error(codes.InvalidArgument, err.Error())
	case model.IsInvalidState(err), errors.Is(err, valueobject.ErrInvalidStatusTransition):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, model.ErrLoanNotFound):
		return status.Error(codes.NotFound, "loan not found")
	case errors.Is(err, port.ErrVersionConflict):
		return status.Error(codes.Aborted, "concurrent update, retry")
	default:
		h.logger.ErrorContext(ctx, "request failed", "error", err)
		return status.Error(codes.Internal, "internal error")
	}
}

func toLoanMsg(r dto.LoanResponse) *LoanMsg {
	msg := &LoanMsg{
		ID:               r.ID,
		Code:             r.Code,
		CustomerRef:      r.CustomerRef,
		Principal:        r.Principal.String(),
		AnnualRate:       r.AnnualRate.String(),
		TermMonths:       int32(r.TermMonths), //nolint:gosec
		MonthlyPayment:   r.MonthlyPayment.String(),
		TotalPayment:     r.TotalPayment.String(),
		TotalPaid:        r.TotalPaid.String(),
		RemainingBalance: r.RemainingBalance.String(),
		Status:           r.Status,
		ActualAmountPaid: r.ActualAmountPaid.String(),
		CreatedAt:        r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        r.UpdatedAt.Format(time.RFC3339),
	}
	if r.ClosedDate != nil {
		msg.ClosedDate = r.ClosedDate.Format(time.RFC3339)
	}
	if r.ActualRepaymentDate != nil {
		msg.ActualRepaymentDate = r.ActualRepaymentDate.Format(time.RFC3339)
	}
	for _, inst := range r.Installments {
		msg.Installments = append(msg.Installments, &InstallmentMsg{
			Sequence:   int32(inst.Sequence), //nolint:gosec
			DueDate:    inst.DueDate.Format(time.RFC3339),
			Amount:     inst.Amount.String(),
			AmountPaid: inst.AmountPaid.String(),
			Status:     inst.Status,
		})
	}
	for _, p := range r.Payments {
		msg.Payments = append(msg.Payments, &PaymentMsg{
			ID:             p.ID,
			Amount:         p.Amount.String(),
			Method:         p.Method,
			TransactionID:  p.TransactionID,
			InstallmentSeq: int32(p.InstallmentSeq), //nolint:gosec
			RemainingAfter: p.RemainingAfter.String(),
			PaidAt:         p.PaidAt.Format(time.RFC3339),
		})
	}
	return msg
}
