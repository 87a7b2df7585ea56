package reconciliation

import (
	"church-reconciliation-backend/internal/models"

	"github.com/shopspring/decimal"
)

// Tolerance distinguishing an exact match from a discrepancy: one currency
// minor unit, strict less-than.
var tolerance = decimal.New(1, -2)

// MatchSummary is the evaluator output for one candidate/selection state.
// Difference is signed: positive means the selection under-covers the
// transaction.
type MatchSummary struct {
	SumSelected      decimal.Decimal `json:"sum_selected"`
	TransactionValue decimal.Decimal `json:"transaction_value"`
	Difference       decimal.Decimal `json:"difference"`
	Status           string          `json:"status"`
}

// Evaluate computes the match summary over the currently-filtered candidate
// list. A selected id that the active filter hides contributes nothing to
// the sum; the selection itself is left untouched.
func Evaluate(
	candidates []models.BankStatementLine,
	selected Selection,
	tx *models.FinancialTransaction,
) MatchSummary {
	sum := decimal.Zero
	for _, line := range candidates {
		if selected.Has(line.ID) {
			sum = sum.Add(line.Amount.Abs())
		}
	}

	value := decimal.Zero
	if tx != nil {
		value = tx.Value.Abs()
	}

	difference := value.Sub(sum)
	return MatchSummary{
		SumSelected:      sum,
		TransactionValue: value,
		Difference:       difference,
		Status:           StatusFor(difference),
	}
}

// StatusFor classifies a signed difference under the fixed tolerance.
func StatusFor(difference decimal.Decimal) string {
	if difference.Abs().LessThan(tolerance) {
		return models.StatusReconciled
	}
	return models.StatusDiscrepancy
}
