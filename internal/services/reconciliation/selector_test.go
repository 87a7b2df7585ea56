package reconciliation

import (
	"testing"
	"time"

	"church-reconciliation-backend/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestCandidateWindow_TransactionDefault(t *testing.T) {
	posting := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	tx := &models.FinancialTransaction{ID: uuid.New(), PostingDate: posting}

	from, to := candidateWindow(tx, nil, nil, time.Now())

	if !from.Equal(posting.AddDate(0, 0, -3)) {
		t.Errorf("expected lower bound D-3, got %s", from)
	}
	if !to.Equal(posting.AddDate(0, 0, 3)) {
		t.Errorf("expected upper bound D+3, got %s", to)
	}
}

func TestCandidateWindow_NoTransactionFallback(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	from, to := candidateWindow(nil, nil, nil, now)

	if !from.Equal(now.AddDate(0, 0, -7)) {
		t.Errorf("expected lower bound today-7, got %s", from)
	}
	if !to.Equal(now) {
		t.Errorf("expected upper bound today, got %s", to)
	}
}

func TestCandidateWindow_ExplicitOverride(t *testing.T) {
	posting := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	tx := &models.FinancialTransaction{ID: uuid.New(), PostingDate: posting}

	explicitFrom := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	explicitTo := time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC)

	from, to := candidateWindow(tx, &explicitFrom, &explicitTo, time.Now())

	if !from.Equal(explicitFrom) || !to.Equal(explicitTo) {
		t.Errorf("explicit window must override the default, got [%s, %s]", from, to)
	}
}

func creditLine(description string) models.BankStatementLine {
	l := line("10.00", models.DirectionCredit)
	l.Description = description
	return l
}

func debitLine(description string) models.BankStatementLine {
	l := line("-10.00", models.DirectionDebit)
	l.Description = description
	return l
}

func TestFilterCandidates_DirectionAllDefaultsToTransactionDirection(t *testing.T) {
	credit := creditLine("DEPOSITO DIZIMO")
	debit := debitLine("PAGAMENTO ENERGIA")
	lines := []models.BankStatementLine{credit, debit}

	tx := entradaTransaction("10.00")

	got := FilterCandidates(lines, tx, "", FilterAll, nil)
	if len(got) != 1 || got[0].ID != credit.ID {
		t.Fatalf("entrada transaction with filter 'all' must see only credit lines, got %d lines", len(got))
	}

	outTx := &models.FinancialTransaction{
		ID:        uuid.New(),
		Direction: models.DirectionOut,
		Value:     decimal.RequireFromString("10.00"),
	}
	got = FilterCandidates(lines, outTx, "", FilterAll, nil)
	if len(got) != 1 || got[0].ID != debit.ID {
		t.Fatalf("saida transaction with filter 'all' must see only debit lines, got %d lines", len(got))
	}
}

func TestFilterCandidates_ExplicitDirectionOverridesDefault(t *testing.T) {
	credit := creditLine("DEPOSITO")
	debit := debitLine("TARIFA")
	lines := []models.BankStatementLine{credit, debit}

	// Explicit debito wins even though the transaction is an inflow.
	got := FilterCandidates(lines, entradaTransaction("10.00"), "", FilterDebit, nil)
	if len(got) != 1 || got[0].ID != debit.ID {
		t.Fatalf("explicit debito filter must win over the transaction direction, got %d lines", len(got))
	}
}

func TestFilterCandidates_NoTransactionKeepsBothDirections(t *testing.T) {
	lines := []models.BankStatementLine{creditLine("A"), debitLine("B")}

	got := FilterCandidates(lines, nil, "", FilterAll, nil)
	if len(got) != 2 {
		t.Fatalf("without a transaction, 'all' keeps both directions, got %d lines", len(got))
	}
}

func TestFilterCandidates_NoiseExclusion(t *testing.T) {
	noise := creditLine("PAGSEGURO REPASSE 123")
	clean := creditLine("DEPOSITO OFERTA")
	lines := []models.BankStatementLine{noise, clean}

	got := FilterCandidates(lines, entradaTransaction("10.00"), "", FilterAll, []string{"PAGSEGURO"})
	if len(got) != 1 || got[0].ID != clean.ID {
		t.Fatalf("noise-marked line must be excluded, got %d lines", len(got))
	}
}

func TestFilterCandidates_NoiseExclusionCaseInsensitive(t *testing.T) {
	noise := creditLine("pagseguro repasse")
	got := FilterCandidates([]models.BankStatementLine{noise}, nil, "", FilterAll, []string{"PagSeguro"})
	if len(got) != 0 {
		t.Fatal("noise matching must be case-insensitive")
	}
}

func TestFilterCandidates_SearchSubstring(t *testing.T) {
	a := creditLine("TED RECEBIDA JOAO")
	b := creditLine("DEPOSITO MARIA")
	lines := []models.BankStatementLine{a, b}

	got := FilterCandidates(lines, entradaTransaction("10.00"), "joao", FilterAll, nil)
	if len(got) != 1 || got[0].ID != a.ID {
		t.Fatalf("search must be a case-insensitive substring match, got %d lines", len(got))
	}
}
