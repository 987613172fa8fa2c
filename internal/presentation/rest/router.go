package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/aurumdesk/goldloan-service/internal/application/dto"
	"github.com/aurumdesk/goldloan-service/internal/application/usecase"
	"github.com/aurumdesk/goldloan-service/internal/domain/model"
)

// Handler serves the read-side HTTP API and health probes.
type Handler struct {
	getLoan         *usecase.GetLoanUseCase
	quoteSettlement *usecase.QuoteSettlementUseCase
	ready           func(r *http.Request) error
	metrics         http.Handler
	logger          *slog.Logger
}

// NewHandler creates the HTTP handler. The ready func is called by the
// readiness probe and should verify downstream connectivity; metrics may be
// nil when no metrics endpoint is exposed.
func NewHandler(
	getLoan *usecase.GetLoanUseCase,
	quoteSettlement *usecase.QuoteSettlementUseCase,
	ready func(r *http.Request) error,
	metrics http.Handler,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		getLoan:         getLoan,
		quoteSettlement: quoteSettlement,
		ready:           ready,
		metrics:         metrics,
		logger:          logger,
	}
}

// Router builds the HTTP route table.
func (h *Handler) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", h.liveness).Methods(http.MethodGet)
	r.HandleFunc("/readyz", h.readiness).Methods(http.MethodGet)
	if h.metrics != nil {
		r.Handle("/metrics", h.metrics).Methods(http.MethodGet)
	}

	v1 := r.PathPrefix("/v1").Subrouter()
	v1.HandleFunc("/loans", h.loanByCode).Methods(http.MethodGet).Queries("code", "{code}")
	v1.HandleFunc("/loans/{id}", h.loanByID).Methods(http.MethodGet)
	v1.HandleFunc("/loans/{id}/schedule", h.loanSchedule).Methods(http.MethodGet)
	v1.HandleFunc("/loans/{id}/payments", h.loanPayments).Methods(http.MethodGet)
	v1.HandleFunc("/loans/{id}/settlement-quote", h.settlementQuote).Methods(http.MethodGet)
	v1.HandleFunc("/customers/{ref}/loans", h.customerLoans).Methods(http.MethodGet)

	return r
}

func (h *Handler) liveness(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "goldloan-service",
	})
}

func (h *Handler) readiness(w http.ResponseWriter, r *http.Request) {
	if h.ready != nil {
		if err := h.ready(r); err != nil {
			h.logger.Warn("readiness check failed", "error", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status":  "unavailable",
				"service": "goldloan-service",
			})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ready",
		"service": "goldloan-service",
	})
}

func (h *Handler) loanByCode(w http.ResponseWriter, r *http.Request) {
	loan, err := h.getLoan.ExecuteByCode(r.Context(), mux.Vars(r)["code"])
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, loan)
}

func (h *Handler) customerLoans(w http.ResponseWriter, r *http.Request) {
	loans, err := h.getLoan.ExecuteByCustomer(r.Context(), mux.Vars(r)["ref"])
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"customer_ref": mux.Vars(r)["ref"],
		"loans":        loans,
	})
}

func (h *Handler) loanByID(w http.ResponseWriter, r *http.Request) {
	loan, ok := h.fetchLoan(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, loan)
}

func (h *Handler) loanSchedule(w http.ResponseWriter, r *http.Request) {
	loan, ok := h.fetchLoan(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"loan_id":      loan.ID,
		"installments": loan.Installments,
	})
}

func (h *Handler) loanPayments(w http.ResponseWriter, r *http.Request) {
	loan, ok := h.fetchLoan(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"loan_id":  loan.ID,
		"payments": loan.Payments,
	})
}

func (h *Handler) settlementQuote(w http.ResponseWriter, r *http.Request) {
	quote, err := h.quoteSettlement.Execute(r.Context(), dto.QuoteSettlementRequest{
		LoanID: mux.Vars(r)["id"],
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, quote)
}

func (h *Handler) fetchLoan(w http.ResponseWriter, r *http.Request) (dto.LoanResponse, bool) {
	loan, err := h.getLoan.Execute(r.Context(), dto.GetLoanRequest{
		LoanID: mux.Vars(r)["id"],
	})
	if err != nil {
		h.writeError(w, r, err)
		return dto.LoanResponse{}, false
	}
	return loan, true
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case model.IsValidation(err):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, model.ErrLoanNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "loan not found"})
	default:
		h.logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v) //nolint:errcheck
}
