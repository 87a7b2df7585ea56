package repository

import (
	"time"

	"church-reconciliation-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StatementLineRepository struct {
	db *gorm.DB
}

func NewStatementLineRepository(db *gorm.DB) *StatementLineRepository {
	return &StatementLineRepository{db: db}
}

// Expose DB if needed
func (r *StatementLineRepository) DB() *gorm.DB {
	return r.db
}

// ListUnreconciled returns the statement lines still open for reconciliation
// inside the tenant scope and date window, oldest first. Account filter is
// optional: nil means every account.
func (r *StatementLineRepository) ListUnreconciled(
	scope models.TenantScope,
	accountID *uuid.UUID,
	from, to time.Time,
) ([]models.BankStatementLine, error) {
	var lines []models.BankStatementLine

	query := r.db.
		Where("church_id = ?", scope.ChurchID).
		Where("reconciled = ?", false).
		Where("linked_batch_id IS NULL").
		Where("transaction_date BETWEEN ? AND ?", from, to).
		Order("transaction_date ASC")

	if scope.BranchID != nil {
		query = query.Where("branch_id = ?", *scope.BranchID)
	}
	if accountID != nil {
		query = query.Where("account_id = ?", *accountID)
	}

	err := query.Find(&lines).Error
	return lines, err
}

// GetByIDs fetches lines by id within the tenant scope.
func (r *StatementLineRepository) GetByIDs(scope models.TenantScope, ids []uuid.UUID) ([]models.BankStatementLine, error) {
	var lines []models.BankStatementLine
	err := r.db.
		Where("church_id = ?", scope.ChurchID).
		Where("id IN ?", ids).
		Find(&lines).Error
	return lines, err
}

// BulkInsert inserts imported lines, ignoring duplicates by primary key.
func (r *StatementLineRepository) BulkInsert(lines []models.BankStatementLine) (int, error) {
	if len(lines) == 0 {
		return 0, nil
	}
	result := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&lines)
	return int(result.RowsAffected), result.Error
}
