package repository

import (
	"church-reconciliation-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BatchRepository struct {
	db *gorm.DB
}

func NewBatchRepository(db *gorm.DB) *BatchRepository {
	return &BatchRepository{db: db}
}

// GetByID fetches one batch within the tenant scope.
func (r *BatchRepository) GetByID(scope models.TenantScope, id uuid.UUID) (*models.ReconciliationBatch, error) {
	var batch models.ReconciliationBatch
	err := r.db.
		Where("church_id = ?", scope.ChurchID).
		First(&batch, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &batch, nil
}

// GetLinks returns the line links of a batch.
func (r *BatchRepository) GetLinks(batchID uuid.UUID) ([]models.BatchLineLink, error) {
	var links []models.BatchLineLink
	err := r.db.Where("batch_id = ?", batchID).Find(&links).Error
	return links, err
}

// CoverageStats aggregates how much of the feed and ledger is reconciled.
type CoverageStats struct {
	TotalLines       int64 `json:"total_lines"`
	ReconciledLines  int64 `json:"reconciled_lines"`
	TotalBatches     int64 `json:"total_batches"`
	ReconciledCount  int64 `json:"reconciled_count"`
	DiscrepancyCount int64 `json:"discrepancy_count"`
}

type statusRow struct {
	Status string
	Count  int64
}

// GetCoverageStats computes the reconciliation coverage aggregates for the
// tenant scope.
func (r *BatchRepository) GetCoverageStats(scope models.TenantScope) (CoverageStats, error) {
	var stats CoverageStats

	lineQuery := func() *gorm.DB {
		q := r.db.Model(&models.BankStatementLine{}).
			Where("church_id = ?", scope.ChurchID)
		if scope.BranchID != nil {
			q = q.Where("branch_id = ?", *scope.BranchID)
		}
		return q
	}
	if err := lineQuery().Count(&stats.TotalLines).Error; err != nil {
		return stats, err
	}
	if err := lineQuery().Where("reconciled = ?", true).Count(&stats.ReconciledLines).Error; err != nil {
		return stats, err
	}

	var rows []statusRow
	batchQuery := r.db.Model(&models.ReconciliationBatch{}).
		Where("church_id = ?", scope.ChurchID)
	if scope.BranchID != nil {
		batchQuery = batchQuery.Where("branch_id = ?", *scope.BranchID)
	}
	err := batchQuery.
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return stats, err
	}

	for _, row := range rows {
		stats.TotalBatches += row.Count
		switch row.Status {
		case models.StatusReconciled:
			stats.ReconciledCount = row.Count
		case models.StatusDiscrepancy:
			stats.DiscrepancyCount = row.Count
		}
	}

	return stats, nil
}
