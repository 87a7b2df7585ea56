package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction directions (inflow/outflow).
const (
	DirectionIn  = "entrada"
	DirectionOut = "saida"
)

// FinancialTransaction is a ledger entry to be proven against the bank feed.
// Read-only from the reconciliation workflow's perspective.
type FinancialTransaction struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	ChurchID    uuid.UUID       `gorm:"type:uuid;index;not null" json:"church_id"`
	BranchID    *uuid.UUID      `gorm:"type:uuid;index" json:"branch_id"`
	AccountID   *uuid.UUID      `gorm:"type:uuid;index" json:"account_id"`
	Direction   string          `gorm:"index" json:"direction"`
	Value       decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"value"`
	PostingDate time.Time       `gorm:"index" json:"posting_date"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
}

// StatementDirection returns the statement-line direction that naturally
// corresponds to this transaction: inflows settle against credit lines,
// outflows against debit lines.
func (t *FinancialTransaction) StatementDirection() string {
	if t.Direction == DirectionOut {
		return DirectionDebit
	}
	return DirectionCredit
}
