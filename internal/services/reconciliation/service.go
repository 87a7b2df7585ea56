package reconciliation

import (
	"church-reconciliation-backend/internal/cache"
	"church-reconciliation-backend/internal/config"
	"church-reconciliation-backend/internal/repository"

	"github.com/bsm/redislock"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Service orchestrates the batch reconciliation workflow: candidate
// selection, match-set evaluation and the audited batch commit.
type Service struct {
	lineRepo  *repository.StatementLineRepository
	txRepo    *repository.FinancialTransactionRepository
	batchRepo *repository.BatchRepository

	db          *gorm.DB
	logger      *logrus.Logger
	invalidator cache.Invalidator
	locker      *redislock.Client // nil when redis is not configured

	noisePatterns []string
}

func NewService(
	lineRepo *repository.StatementLineRepository,
	txRepo *repository.FinancialTransactionRepository,
	batchRepo *repository.BatchRepository,
	invalidator cache.Invalidator,
	locker *redislock.Client,
	noisePatterns []string,
) *Service {
	return &Service{
		lineRepo:      lineRepo,
		txRepo:        txRepo,
		batchRepo:     batchRepo,
		db:            lineRepo.DB(), // assuming repository exposes DB connection
		logger:        config.GetLogger(),
		invalidator:   invalidator,
		locker:        locker,
		noisePatterns: noisePatterns,
	}
}

func (s *Service) TransactionRepo() *repository.FinancialTransactionRepository {
	return s.txRepo
}

func (s *Service) BatchRepo() *repository.BatchRepository {
	return s.batchRepo
}

func (s *Service) DB() *gorm.DB {
	return s.db
}
