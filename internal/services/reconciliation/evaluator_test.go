package reconciliation

import (
	"testing"

	"church-reconciliation-backend/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func line(amount string, direction string) models.BankStatementLine {
	return models.BankStatementLine{
		ID:        uuid.New(),
		Amount:    decimal.RequireFromString(amount),
		Direction: direction,
	}
}

func entradaTransaction(value string) *models.FinancialTransaction {
	return &models.FinancialTransaction{
		ID:        uuid.New(),
		Direction: models.DirectionIn,
		Value:     decimal.RequireFromString(value),
	}
}

func TestEvaluate_ExactMatch(t *testing.T) {
	a := line("100.00", models.DirectionCredit)
	b := line("50.00", models.DirectionCredit)
	candidates := []models.BankStatementLine{a, b}

	sel := NewSelection(a.ID, b.ID)
	summary := Evaluate(candidates, sel, entradaTransaction("150.00"))

	if !summary.SumSelected.Equal(decimal.RequireFromString("150.00")) {
		t.Errorf("expected sum 150.00, got %s", summary.SumSelected)
	}
	if !summary.Difference.IsZero() {
		t.Errorf("expected difference 0, got %s", summary.Difference)
	}
	if summary.Status != models.StatusReconciled {
		t.Errorf("expected status %s, got %s", models.StatusReconciled, summary.Status)
	}
}

func TestEvaluate_Discrepancy(t *testing.T) {
	a := line("100.00", models.DirectionCredit)
	b := line("49.50", models.DirectionCredit)
	candidates := []models.BankStatementLine{a, b}

	sel := NewSelection(a.ID, b.ID)
	summary := Evaluate(candidates, sel, entradaTransaction("150.00"))

	if !summary.Difference.Equal(decimal.RequireFromString("0.50")) {
		t.Errorf("expected difference 0.50, got %s", summary.Difference)
	}
	if summary.Status != models.StatusDiscrepancy {
		t.Errorf("expected status %s, got %s", models.StatusDiscrepancy, summary.Status)
	}
}

func TestEvaluate_UsesAbsoluteValues(t *testing.T) {
	// Debit lines carry negative amounts; the evaluator sums |value|.
	a := line("-75.00", models.DirectionDebit)
	candidates := []models.BankStatementLine{a}

	tx := &models.FinancialTransaction{
		ID:        uuid.New(),
		Direction: models.DirectionOut,
		Value:     decimal.RequireFromString("75.00"),
	}

	summary := Evaluate(candidates, NewSelection(a.ID), tx)
	if !summary.SumSelected.Equal(decimal.RequireFromString("75.00")) {
		t.Errorf("expected sum 75.00, got %s", summary.SumSelected)
	}
	if summary.Status != models.StatusReconciled {
		t.Errorf("expected status %s, got %s", models.StatusReconciled, summary.Status)
	}
}

func TestEvaluate_NoTransaction(t *testing.T) {
	a := line("10.00", models.DirectionCredit)
	summary := Evaluate([]models.BankStatementLine{a}, NewSelection(a.ID), nil)

	if !summary.TransactionValue.IsZero() {
		t.Errorf("expected transaction value 0, got %s", summary.TransactionValue)
	}
	if !summary.Difference.Equal(decimal.RequireFromString("-10.00")) {
		t.Errorf("expected difference -10.00, got %s", summary.Difference)
	}
}

func TestStatusFor_ToleranceBoundary(t *testing.T) {
	cases := []struct {
		difference string
		want       string
	}{
		{"0.009", models.StatusReconciled},
		{"-0.009", models.StatusReconciled},
		{"0.01", models.StatusDiscrepancy},
		{"-0.01", models.StatusDiscrepancy},
		{"0", models.StatusReconciled},
	}

	for _, tc := range cases {
		got := StatusFor(decimal.RequireFromString(tc.difference))
		if got != tc.want {
			t.Errorf("StatusFor(%s) = %s, want %s", tc.difference, got, tc.want)
		}
	}
}

func TestEvaluate_SelectionOutsideFilterExcluded(t *testing.T) {
	a := line("100.00", models.DirectionCredit)
	b := line("50.00", models.DirectionCredit)
	b.Description = "TED RECEBIDA"
	a.Description = "DEPOSITO"

	sel := NewSelection(a.ID, b.ID)
	tx := entradaTransaction("150.00")

	// A search filter hides line a; its value must drop out of the sum even
	// though the selection set still contains it.
	filtered := FilterCandidates([]models.BankStatementLine{a, b}, tx, "TED", FilterAll, nil)
	summary := Evaluate(filtered, sel, tx)

	if !summary.SumSelected.Equal(decimal.RequireFromString("50.00")) {
		t.Errorf("expected sum 50.00 after filter, got %s", summary.SumSelected)
	}
	if !sel.Has(a.ID) {
		t.Error("selection set itself must be unchanged by filtering")
	}
}

func TestSelection_Operations(t *testing.T) {
	a := line("1.00", models.DirectionCredit)
	b := line("2.00", models.DirectionCredit)

	sel := NewSelection()
	sel.Toggle(a.ID)
	if !sel.Has(a.ID) {
		t.Error("toggle should add an absent id")
	}
	sel.Toggle(a.ID)
	if sel.Has(a.ID) {
		t.Error("toggle should remove a present id")
	}

	sel.SelectAll([]models.BankStatementLine{a, b})
	if len(sel) != 2 {
		t.Errorf("expected 2 selected after SelectAll, got %d", len(sel))
	}

	sel.Clear()
	if len(sel) != 0 {
		t.Errorf("expected empty selection after Clear, got %d", len(sel))
	}
}
