package handler

import (
	"encoding/csv"
	"io"
	"net/http"
	"strings"
	"time"

	"church-reconciliation-backend/internal/config"
	"church-reconciliation-backend/internal/models"
	"church-reconciliation-backend/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type StatementHandler struct {
	lineRepo *repository.StatementLineRepository
}

func NewStatementHandler(lineRepo *repository.StatementLineRepository) *StatementHandler {
	return &StatementHandler{lineRepo: lineRepo}
}

// Upload ingests a CSV bank statement export. Expected columns:
// account_id, date, description, amount, direction. Malformed rows are
// skipped and counted, not fatal.
func (h *StatementHandler) Upload(c *gin.Context) {
	scope, ok := tenantScope(c)
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file required"})
		return
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	// Skip header
	if _, err := reader.Read(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read CSV header"})
		return
	}

	logger := config.GetLogger()
	var lines []models.BankStatementLine
	skipped := 0
	rowNum := 0

	for {
		record, err := reader.Read()
		rowNum++
		if err == io.EOF {
			break
		}
		if err != nil {
			skipped++
			continue
		}
		if len(record) < 5 || strings.Join(record, "") == "" {
			skipped++
			continue
		}

		accountID, err := uuid.Parse(strings.TrimSpace(record[0]))
		if err != nil {
			logger.Warnf("statement upload: row %d invalid account id %q", rowNum, record[0])
			skipped++
			continue
		}

		dateStr := strings.TrimSpace(record[1])
		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			date, err = time.Parse("02-01-2006", dateStr)
		}
		if err != nil {
			logger.Warnf("statement upload: row %d invalid date %q", rowNum, dateStr)
			skipped++
			continue
		}

		amount, err := decimal.NewFromString(strings.TrimSpace(record[3]))
		if err != nil {
			logger.Warnf("statement upload: row %d invalid amount %q", rowNum, record[3])
			skipped++
			continue
		}

		lines = append(lines, models.BankStatementLine{
			ID:              uuid.New(),
			ChurchID:        scope.ChurchID,
			BranchID:        scope.BranchID,
			AccountID:       accountID,
			TransactionDate: date,
			Description:     strings.TrimSpace(record[2]),
			Amount:          amount,
			Direction:       models.NormalizeDirection(strings.TrimSpace(record[4]), amount),
			CreatedAt:       time.Now(),
		})
	}

	inserted, err := h.lineRepo.BulkInsert(lines)
	if err != nil {
		config.LogError(logger, "handlers", "Upload", "statement bulk insert failed", header.Filename, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store statement lines"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"file":     header.Filename,
		"inserted": inserted,
		"skipped":  skipped,
	})
}
