package port

import (
	"context"
	"errors"
	"time"

	"github.com/aurumdesk/goldloan-service/internal/domain/event"
	"github.com/aurumdesk/goldloan-service/internal/domain/model"
)

// ErrVersionConflict is returned by LoanRepository.Save when another writer
// committed the aggregate first. Callers reload and reapply.
var ErrVersionConflict = errors.New("loan version conflict")

// ---------------------------------------------------------------------------
// Repository ports (driven/secondary adapters)
// ---------------------------------------------------------------------------

// LoanRepository persists and retrieves loan aggregates. Save must commit the
// loan row, its installments, and any new payments atomically, and must
// reject stale writes (the aggregate's version acts as an optimistic lock)
// with ErrVersionConflict so concurrent payments against the same loan
// cannot interleave.
type LoanRepository interface {
	Save(ctx context.Context, loan model.Loan) error
	FindByID(ctx context.Context, id string) (model.Loan, error)
	FindByCode(ctx context.Context, code string) (model.Loan, error)
	FindByCustomerRef(ctx context.Context, customerRef string) ([]model.Loan, error)
}

// LoanSequence hands out the next human-facing code sequence number for the
// given calendar month. Injected into loan creation so the aggregate never
// counts ambient state itself.
type LoanSequence interface {
	NextCodeSequence(ctx context.Context, year int, month time.Month) (int, error)
}

// ---------------------------------------------------------------------------
// Event publisher port
// ---------------------------------------------------------------------------

// EventPublisher publishes domain events to external consumers (receipt
// email, PDF generation, notifications). Publishing is best-effort relative
// to the payment commit: callers log failures and move on.
type EventPublisher interface {
	Publish(ctx context.Context, events ...event.DomainEvent) error
}

// ---------------------------------------------------------------------------
// Clock port
// ---------------------------------------------------------------------------

// Clock supplies the current time for due-date and elapsed-time computation.
type Clock interface {
	Now() time.Time
}
