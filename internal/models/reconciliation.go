package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Batch statuses under the fixed 0.01 tolerance.
const (
	StatusReconciled  = "conciliada"
	StatusDiscrepancy = "discrepancia"
)

// ReconciliationBatch records that a set of statement lines together settle
// one financial transaction. Immutable once created.
type ReconciliationBatch struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	TransactionID    uuid.UUID       `gorm:"type:uuid;index" json:"transaction_id"`
	ChurchID         uuid.UUID       `gorm:"type:uuid;index;not null" json:"church_id"`
	BranchID         *uuid.UUID      `gorm:"type:uuid;index" json:"branch_id"`
	AccountID        *uuid.UUID      `gorm:"type:uuid;index" json:"account_id"`
	TransactionValue decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"transaction_value"`
	LinkedSum        decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"linked_sum"`
	Status           string          `gorm:"index" json:"status"`
	CreatedBy        uuid.UUID       `gorm:"type:uuid" json:"created_by"`
	CreatedAt        time.Time       `json:"created_at"`
}

// BatchLineLink joins a statement line into a batch. A line appears in at
// most one link ever; the committer's conditional claim enforces it.
type BatchLineLink struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BatchID   uuid.UUID `gorm:"type:uuid;index" json:"batch_id"`
	LineID    uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"line_id"`
	CreatedAt time.Time `json:"created_at"`
}
