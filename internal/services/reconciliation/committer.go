package reconciliation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"church-reconciliation-backend/internal/cache"
	"church-reconciliation-backend/internal/config"
	"church-reconciliation-backend/internal/models"

	"github.com/bsm/redislock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrNoTransaction    = errors.New("no transaction selected for reconciliation")
	ErrNoTenantScope    = errors.New("tenant scope is not set")
	ErrEmptySelection   = errors.New("no statement lines selected")
	ErrAllLinesClaimed  = errors.New("all selected lines were already reconciled by another batch")
	ErrCommitInProgress = errors.New("a commit for this transaction is already in progress")
)

const commitLockTTL = 30 * time.Second

// CommitInput carries a reconciliation decision ready to be persisted.
type CommitInput struct {
	Scope       models.TenantScope
	Transaction *models.FinancialTransaction
	LineIDs     []uuid.UUID
	UserID      uuid.UUID
}

type CommitResult struct {
	BatchID      uuid.UUID `json:"batch_id"`
	LinkedCount  int       `json:"linked_count"`
	DroppedCount int       `json:"dropped_count"`
	Status       string    `json:"status"`
}

// Commit durably records the reconciliation: one batch row, one link per
// claimed line, the reconciled flags, and one audit entry per line.
//
// Batch, links and flag flips run inside a single database transaction. The
// flag flip is a conditional update: a line that some concurrent commit
// already claimed is dropped from this batch instead of double-linked, and
// the commit aborts if every line is lost. Audit entries are written after
// the commit, best-effort: their failure is logged, never surfaced.
func (s *Service) Commit(ctx context.Context, in CommitInput) (*CommitResult, error) {
	if in.Transaction == nil {
		return nil, ErrNoTransaction
	}
	if !in.Scope.Known() {
		return nil, ErrNoTenantScope
	}
	lineIDs := dedupe(in.LineIDs)
	if len(lineIDs) == 0 {
		return nil, ErrEmptySelection
	}

	if s.locker != nil {
		lock, err := s.locker.Obtain(ctx, "conciliacao:commit:"+in.Transaction.ID.String(), commitLockTTL, nil)
		if errors.Is(err, redislock.ErrNotObtained) {
			return nil, ErrCommitInProgress
		}
		if err != nil {
			return nil, err
		}
		defer lock.Release(context.WithoutCancel(ctx))
	}

	batch := &models.ReconciliationBatch{
		ID:               uuid.New(),
		TransactionID:    in.Transaction.ID,
		ChurchID:         in.Scope.ChurchID,
		BranchID:         in.Scope.BranchID,
		AccountID:        in.Transaction.AccountID,
		TransactionValue: in.Transaction.Value.Abs(),
		CreatedBy:        in.UserID,
		CreatedAt:        time.Now(),
	}

	var claimed []models.BankStatementLine
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Claim lines one by one. RowsAffected == 0 means a concurrent
		// batch got there first; that line is dropped from this one.
		for _, lineID := range lineIDs {
			result := tx.Model(&models.BankStatementLine{}).
				Where("id = ? AND church_id = ? AND reconciled = ? AND linked_batch_id IS NULL",
					lineID, in.Scope.ChurchID, false).
				Updates(map[string]interface{}{
					"reconciled":      true,
					"linked_batch_id": batch.ID,
				})
			if result.Error != nil {
				return result.Error
			}
		}

		if err := tx.Where("linked_batch_id = ?", batch.ID).Find(&claimed).Error; err != nil {
			return err
		}
		if len(claimed) == 0 {
			return ErrAllLinesClaimed
		}

		sum := decimal.Zero
		for _, line := range claimed {
			sum = sum.Add(line.Amount.Abs())
		}
		batch.LinkedSum = sum
		batch.Status = StatusFor(batch.TransactionValue.Sub(sum))

		if err := tx.Create(batch).Error; err != nil {
			return err
		}

		links := make([]models.BatchLineLink, 0, len(claimed))
		for _, line := range claimed {
			links = append(links, models.BatchLineLink{
				ID:        uuid.New(),
				BatchID:   batch.ID,
				LineID:    line.ID,
				CreatedAt: time.Now(),
			})
		}
		return tx.Create(&links).Error
	})
	if err != nil {
		if !errors.Is(err, ErrAllLinesClaimed) {
			config.LogError(s.logger, "reconciliation", "Commit", "batch commit failed", in.Transaction.ID, err)
		}
		return nil, err
	}

	s.writeAuditTrail(ctx, batch, claimed, in.UserID)

	keys := []string{
		cache.KeyCandidateLines(in.Scope.ChurchID, batch.AccountID),
		cache.KeyPendingTransactions(in.Scope.ChurchID),
		cache.KeyCoverage(in.Scope.ChurchID),
		cache.KeyStats(in.Scope.ChurchID),
	}
	if err := s.invalidator.Invalidate(ctx, keys...); err != nil {
		config.LogError(s.logger, "reconciliation", "Commit", "cache invalidation failed", keys, err)
	}

	return &CommitResult{
		BatchID:      batch.ID,
		LinkedCount:  len(claimed),
		DroppedCount: len(lineIDs) - len(claimed),
		Status:       batch.Status,
	}, nil
}

// writeAuditTrail appends one audit row per claimed line. The batch is
// already committed at this point; an audit failure must not undo it.
func (s *Service) writeAuditTrail(ctx context.Context, batch *models.ReconciliationBatch, claimed []models.BankStatementLine, userID uuid.UUID) {
	for _, line := range claimed {
		lineValue := line.Amount.Abs()
		entry := models.ReconciliationAuditLog{
			ID:               uuid.New(),
			LineID:           line.ID,
			TransactionID:    batch.TransactionID,
			BatchID:          batch.ID,
			LineValue:        lineValue,
			TransactionValue: batch.TransactionValue,
			Difference:       batch.TransactionValue.Sub(lineValue).Abs(),
			PerformedBy:      userID,
			Note:             fmt.Sprintf("conciliacao em lote: %s", batch.Status),
			CreatedAt:        time.Now(),
		}

		details, _ := json.Marshal(map[string]interface{}{
			"line_description": line.Description,
			"line_direction":   line.Direction,
			"linked_sum":       batch.LinkedSum.String(),
			"batch_status":     batch.Status,
		})
		entry.Details = details

		if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
			config.LogError(s.logger, "reconciliation", "writeAuditTrail", "audit insert failed, batch kept", batch.ID, err)
		}
	}
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
