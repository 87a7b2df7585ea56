package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// ReconciliationAuditLog is one immutable record per statement line linked
// into a batch. Written best-effort after the batch commit: a failed audit
// insert never rolls the batch back.
type ReconciliationAuditLog struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	LineID           uuid.UUID       `gorm:"type:uuid;index" json:"line_id"`
	TransactionID    uuid.UUID       `gorm:"type:uuid;index" json:"transaction_id"`
	BatchID          uuid.UUID       `gorm:"type:uuid;index" json:"batch_id"`
	LineValue        decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"line_value"`
	TransactionValue decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"transaction_value"`
	Difference       decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"difference"`
	PerformedBy      uuid.UUID       `gorm:"type:uuid" json:"performed_by"`
	Note             string          `json:"note"`
	Details          datatypes.JSON  `json:"details"`
	CreatedAt        time.Time       `json:"created_at"`
}
