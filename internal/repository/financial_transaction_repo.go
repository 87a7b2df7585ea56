package repository

import (
	"church-reconciliation-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FinancialTransactionRepository struct {
	db *gorm.DB
}

func NewFinancialTransactionRepository(db *gorm.DB) *FinancialTransactionRepository {
	return &FinancialTransactionRepository{db: db}
}

// GetByID fetch a single transaction by ID within the tenant scope.
func (r *FinancialTransactionRepository) GetByID(scope models.TenantScope, id uuid.UUID) (*models.FinancialTransaction, error) {
	var tx models.FinancialTransaction
	err := r.db.
		Where("church_id = ?", scope.ChurchID).
		First(&tx, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

// ListPending returns transactions that no reconciliation batch resolves
// yet, oldest posting date first.
func (r *FinancialTransactionRepository) ListPending(scope models.TenantScope, limit int) ([]models.FinancialTransaction, error) {
	if limit <= 0 {
		limit = 50
	}

	var txs []models.FinancialTransaction
	query := r.db.
		Joins("LEFT JOIN reconciliation_batches b ON b.transaction_id = financial_transactions.id").
		Where("financial_transactions.church_id = ?", scope.ChurchID).
		Where("b.id IS NULL").
		Order("financial_transactions.posting_date ASC").
		Limit(limit)

	if scope.BranchID != nil {
		query = query.Where("financial_transactions.branch_id = ?", *scope.BranchID)
	}

	err := query.Find(&txs).Error
	return txs, err
}
