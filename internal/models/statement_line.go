package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Line directions, normalized from provider vocabulary on import.
const (
	DirectionCredit = "credito"
	DirectionDebit  = "debito"
)

// BankStatementLine is one row imported from a bank feed. It is created by
// the statement import and mutated only by the batch committer, which sets
// Reconciled and LinkedBatchID together.
type BankStatementLine struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	ChurchID        uuid.UUID       `gorm:"type:uuid;index;not null" json:"church_id"`
	BranchID        *uuid.UUID      `gorm:"type:uuid;index" json:"branch_id"`
	AccountID       uuid.UUID       `gorm:"type:uuid;index" json:"account_id"`
	TransactionDate time.Time       `gorm:"column:transaction_date;index" json:"transaction_date"`
	Description     string          `json:"description"`
	Amount          decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"amount"`
	Direction       string          `gorm:"index" json:"direction"`
	Reconciled      bool            `gorm:"index" json:"reconciled"`
	LinkedBatchID   *uuid.UUID      `gorm:"type:uuid;index" json:"linked_batch_id"`
	CreatedAt       time.Time       `json:"created_at"`
}

// NormalizeDirection maps provider-specific vocabulary (C/D, CREDIT/DEBIT,
// signed amounts) onto the canonical credito/debito values.
func NormalizeDirection(raw string, amount decimal.Decimal) string {
	switch raw {
	case "C", "c", "CREDIT", "credit", "CREDITO", DirectionCredit:
		return DirectionCredit
	case "D", "d", "DEBIT", "debit", "DEBITO", DirectionDebit:
		return DirectionDebit
	}
	if amount.IsNegative() {
		return DirectionDebit
	}
	return DirectionCredit
}
