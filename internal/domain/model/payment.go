package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/aurumdesk/goldloan-service/internal/domain/valueobject"
)

// Payment is an immutable record of money received against a loan. Payments
// are append-only: once applied they are never mutated or deleted, and their
// insertion order is their chronological order.
type Payment struct {
	PaidAt         time.Time
	ID             string
	TransactionID  string
	Amount         decimal.Decimal
	RemainingAfter decimal.Decimal
	Method         valueobject.PaymentMethod
	InstallmentSeq int
}
