package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/aurumdesk/goldloan-service/internal/domain/model"
	"github.com/aurumdesk/goldloan-service/internal/domain/port"
	"github.com/aurumdesk/goldloan-service/internal/domain/valueobject"
	pkgpostgres "github.com/aurumdesk/goldloan-service/pkg/postgres"
)

// LoanRepo implements port.LoanRepository and port.LoanSequence.
type LoanRepo struct {
	pool *pgxpool.Pool
}

// NewLoanRepo creates a new PostgreSQL-backed loan repository.
func NewLoanRepo(pool *pgxpool.Pool) *LoanRepo {
	return &LoanRepo{pool: pool}
}

// Save persists a loan, its installments, and any new payments in one
// transaction. The loan row upsert carries the aggregate's loaded version as
// an optimistic lock; a stale write affects zero rows and surfaces
// port.ErrVersionConflict.
func (r *LoanRepo) Save(ctx context.Context, loan model.Loan) error {
	return pkgpostgres.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		return r.saveInTx(ctx, tx, loan)
	})
}

func (r *LoanRepo) saveInTx(ctx context.Context, tx pgx.Tx, loan model.Loan) error {
	loanQuery := `
		INSERT INTO loans (
			id, code, customer_ref,
			principal, annual_rate, term_months,
			monthly_payment, total_payment,
			total_paid, remaining_balance, status,
			closed_date, actual_repayment_date, actual_amount_paid,
			renewal_date, deposited_bank,
			version, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)
		ON CONFLICT (id) DO UPDATE SET
			total_paid            = EXCLUDED.total_paid,
			remaining_balance     = EXCLUDED.remaining_balance,
			status                = EXCLUDED.status,
			closed_date           = EXCLUDED.closed_date,
			actual_repayment_date = EXCLUDED.actual_repayment_date,
			actual_amount_paid    = EXCLUDED.actual_amount_paid,
			renewal_date          = EXCLUDED.renewal_date,
			deposited_bank        = EXCLUDED.deposited_bank,
			version               = loans.version + 1,
			updated_at            = EXCLUDED.updated_at
		WHERE loans.version = $17
	`
	tag, err := tx.Exec(ctx, loanQuery,
		loan.ID(), loan.Code(), loan.CustomerRef(),
		loan.Principal(), loan.AnnualRate(), loan.TermMonths(),
		loan.MonthlyPayment(), loan.TotalPayment(),
		loan.TotalPaid(), loan.RemainingBalance(), loan.Status().String(),
		loan.ClosedDate(), loan.ActualRepaymentDate(), loan.ActualAmountPaid(),
		loan.RenewalDate(), loan.DepositedBank(),
		loan.Version(), loan.CreatedAt(), loan.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("save loan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return port.ErrVersionConflict
	}

	instQuery := `
		INSERT INTO installments (loan_id, seq, due_date, amount, amount_paid, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (loan_id, seq) DO UPDATE SET
			amount_paid = EXCLUDED.amount_paid,
			status      = EXCLUDED.status
	`
	for _, inst := range loan.Installments() {
		if _, err := tx.Exec(ctx, instQuery,
			loan.ID(), inst.Sequence, inst.DueDate,
			inst.Amount, inst.AmountPaid, inst.Status.String(),
		); err != nil {
			return fmt.Errorf("save installment %d: %w", inst.Sequence, err)
		}
	}

	// Payments are append-only; rows already present are left untouched.
	payQuery := `
		INSERT INTO payments (id, loan_id, installment_seq, amount, method, transaction_id, remaining_after, paid_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO NOTHING
	`
	for _, p := range loan.Payments() {
		if _, err := tx.Exec(ctx, payQuery,
			p.ID, loan.ID(), p.InstallmentSeq,
			p.Amount, p.Method.String(), nullable(p.TransactionID), p.RemainingAfter, p.PaidAt,
		); err != nil {
			return fmt.Errorf("save payment %s: %w", p.ID, err)
		}
	}

	return nil
}

// FindByID retrieves a loan with its installments and payment history.
func (r *LoanRepo) FindByID(ctx context.Context, id string) (model.Loan, error) {
	return r.findOne(ctx, "id", id)
}

// FindByCode retrieves a loan by its human-facing code.
func (r *LoanRepo) FindByCode(ctx context.Context, code string) (model.Loan, error) {
	return r.findOne(ctx, "code", code)
}

// FindByCustomerRef retrieves all loans for a customer, newest first.
func (r *LoanRepo) FindByCustomerRef(ctx context.Context, customerRef string) ([]model.Loan, error) {
	query := loanSelect + ` WHERE customer_ref = $1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, customerRef)
	if err != nil {
		return nil, fmt.Errorf("query loans: %w", err)
	}
	defer rows.Close()

	var recs []model.LoanRecord
	for rows.Next() {
		rec, err := scanLoanRow(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	loans := make([]model.Loan, 0, len(recs))
	for _, rec := range recs {
		if err := r.loadChildren(ctx, &rec); err != nil {
			return nil, err
		}
		loans = append(loans, model.ReconstructLoan(rec))
	}
	return loans, nil
}

// NextCodeSequence implements port.LoanSequence by counting loans created in
// the given calendar month. The sequence resets at each month boundary.
func (r *LoanRepo) NextCodeSequence(ctx context.Context, year int, month time.Month) (int, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT count(*) FROM loans WHERE created_at >= $1 AND created_at < $2`,
		start, end,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count loans in month: %w", err)
	}
	return count + 1, nil
}

// ---------------------------------------------------------------------------
// internal helpers
// ---------------------------------------------------------------------------

const loanSelect = `
	SELECT id, code, customer_ref,
	       principal, annual_rate, term_months,
	       monthly_payment, total_payment,
	       total_paid, remaining_balance, status,
	       closed_date, actual_repayment_date, actual_amount_paid,
	       renewal_date, deposited_bank,
	       version, created_at, updated_at
	FROM loans`

func (r *LoanRepo) findOne(ctx context.Context, column, value string) (model.Loan, error) {
	query := loanSelect + ` WHERE ` + column + ` = $1`
	rec, err := scanLoanRow(r.pool.QueryRow(ctx, query, value))
	if err != nil {
		return model.Loan{}, err
	}
	if err := r.loadChildren(ctx, &rec); err != nil {
		return model.Loan{}, err
	}
	return model.ReconstructLoan(rec), nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanLoanRow(s scannable) (model.LoanRecord, error) {
	var (
		rec       model.LoanRecord
		statusStr string
	)

	err := s.Scan(
		&rec.ID, &rec.Code, &rec.CustomerRef,
		&rec.Principal, &rec.AnnualRate, &rec.TermMonths,
		&rec.MonthlyPayment, &rec.TotalPayment,
		&rec.TotalPaid, &rec.RemainingBalance, &statusStr,
		&rec.ClosedDate, &rec.ActualRepaymentDate, &rec.ActualAmountPaid,
		&rec.RenewalDate, &rec.DepositedBank,
		&rec.Version, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.LoanRecord{}, model.ErrLoanNotFound
		}
		return model.LoanRecord{}, fmt.Errorf("scan loan: %w", err)
	}

	status, err := valueobject.NewLoanStatus(statusStr)
	if err != nil {
		return model.LoanRecord{}, fmt.Errorf("parse loan status: %w", err)
	}
	rec.Status = status
	return rec, nil
}

func (r *LoanRepo) loadChildren(ctx context.Context, rec *model.LoanRecord) error {
	installments, err := r.loadInstallments(ctx, rec.ID)
	if err != nil {
		return err
	}
	payments, err := r.loadPayments(ctx, rec.ID)
	if err != nil {
		return err
	}
	rec.Installments = installments
	rec.Payments = payments
	return nil
}

func (r *LoanRepo) loadInstallments(ctx context.Context, loanID string) ([]model.Installment, error) {
	query := `
		SELECT seq, due_date, amount, amount_paid, status
		FROM installments
		WHERE loan_id = $1
		ORDER BY seq
	`
	rows, err := r.pool.Query(ctx, query, loanID)
	if err != nil {
		return nil, fmt.Errorf("query installments: %w", err)
	}
	defer rows.Close()

	var installments []model.Installment
	for rows.Next() {
		var (
			inst      model.Installment
			statusStr string
		)
		if err := rows.Scan(&inst.Sequence, &inst.DueDate, &inst.Amount, &inst.AmountPaid, &statusStr); err != nil {
			return nil, fmt.Errorf("scan installment: %w", err)
		}
		status, err := valueobject.NewInstallmentStatus(statusStr)
		if err != nil {
			return nil, fmt.Errorf("parse installment status: %w", err)
		}
		inst.Status = status
		installments = append(installments, inst)
	}
	return installments, rows.Err()
}

func (r *LoanRepo) loadPayments(ctx context.Context, loanID string) ([]model.Payment, error) {
	query := `
		SELECT id, installment_seq, amount, method, transaction_id, remaining_after, paid_at
		FROM payments
		WHERE loan_id = $1
		ORDER BY paid_at, id
	`
	rows, err := r.pool.Query(ctx, query, loanID)
	if err != nil {
		return nil, fmt.Errorf("query payments: %w", err)
	}
	defer rows.Close()

	var payments []model.Payment
	for rows.Next() {
		var (
			p         model.Payment
			methodStr string
			txnID     *string
			amount    decimal.Decimal
		)
		if err := rows.Scan(&p.ID, &p.InstallmentSeq, &amount, &methodStr, &txnID, &p.RemainingAfter, &p.PaidAt); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		method, err := valueobject.NewPaymentMethod(methodStr)
		if err != nil {
			return nil, fmt.Errorf("parse payment method: %w", err)
		}
		p.Amount = amount
		p.Method = method
		if txnID != nil {
			p.TransactionID = *txnID
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
