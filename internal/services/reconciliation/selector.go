package reconciliation

import (
	"strings"
	"time"

	"church-reconciliation-backend/internal/config"
	"church-reconciliation-backend/internal/models"

	"github.com/google/uuid"
)

// Direction filter values accepted by the selector.
const (
	FilterAll    = "all"
	FilterCredit = models.DirectionCredit
	FilterDebit  = models.DirectionDebit
)

const (
	defaultWindowDays  = 3
	fallbackWindowDays = 7
)

// CandidateOptions overrides the selector defaults. Zero values mean
// "derive from the transaction".
type CandidateOptions struct {
	AccountID *uuid.UUID
	From      *time.Time
	To        *time.Time
	Search    string
	Direction string
}

// ListCandidates retrieves the unreconciled statement lines that plausibly
// correspond to the transaction, ordered by date ascending, then applies the
// in-memory post-filters (noise exclusion, search, direction).
func (s *Service) ListCandidates(
	scope models.TenantScope,
	tx *models.FinancialTransaction,
	opts CandidateOptions,
) ([]models.BankStatementLine, error) {
	from, to := candidateWindow(tx, opts.From, opts.To, time.Now())

	accountID := opts.AccountID
	if accountID == nil && tx != nil {
		accountID = tx.AccountID
	}

	lines, err := s.lineRepo.ListUnreconciled(scope, accountID, from, to)
	if err != nil {
		config.LogError(s.logger, "reconciliation", "ListCandidates", "candidate query failed", scope.ChurchID, err)
		return nil, err
	}

	return FilterCandidates(lines, tx, opts.Search, opts.Direction, s.noisePatterns), nil
}

// candidateWindow computes the date window: [posting-3d, posting+3d] around
// the transaction, [today-7d, today] without one. Explicit bounds win.
func candidateWindow(tx *models.FinancialTransaction, from, to *time.Time, now time.Time) (time.Time, time.Time) {
	var lower, upper time.Time
	if tx != nil {
		lower = tx.PostingDate.AddDate(0, 0, -defaultWindowDays)
		upper = tx.PostingDate.AddDate(0, 0, defaultWindowDays)
	} else {
		lower = now.AddDate(0, 0, -fallbackWindowDays)
		upper = now
	}

	if from != nil {
		lower = *from
	}
	if to != nil {
		upper = *to
	}
	return lower, upper
}

// FilterCandidates applies the client-side post-filters over a fetched
// candidate list. Pure: re-run on every keystroke without a new fetch.
//
// The direction default is deliberately asymmetric: "all" does not mean both
// directions, it means the natural direction for the transaction (entrada
// sees credito lines, saida sees debito). An explicit credito/debito choice
// overrides that.
func FilterCandidates(
	lines []models.BankStatementLine,
	tx *models.FinancialTransaction,
	search string,
	direction string,
	noisePatterns []string,
) []models.BankStatementLine {
	effectiveDirection := direction
	if effectiveDirection == "" || effectiveDirection == FilterAll {
		if tx != nil {
			effectiveDirection = tx.StatementDirection()
		} else {
			effectiveDirection = ""
		}
	}

	search = strings.ToLower(strings.TrimSpace(search))

	filtered := make([]models.BankStatementLine, 0, len(lines))
	for _, line := range lines {
		if isNoise(line.Description, noisePatterns) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(line.Description), search) {
			continue
		}
		if effectiveDirection != "" && line.Direction != effectiveDirection {
			continue
		}
		filtered = append(filtered, line)
	}
	return filtered
}

func isNoise(description string, patterns []string) bool {
	upper := strings.ToUpper(description)
	for _, p := range patterns {
		if strings.Contains(upper, strings.ToUpper(p)) {
			return true
		}
	}
	return false
}
