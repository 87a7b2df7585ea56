package reconciliation

import (
	"church-reconciliation-backend/internal/models"

	"github.com/google/uuid"
)

// Selection is the set of candidate line ids chosen for one in-progress
// reconciliation session, scoped to a single transaction.
type Selection map[uuid.UUID]struct{}

func NewSelection(ids ...uuid.UUID) Selection {
	sel := make(Selection, len(ids))
	for _, id := range ids {
		sel[id] = struct{}{}
	}
	return sel
}

// Toggle adds the id if absent, removes it if present.
func (s Selection) Toggle(id uuid.UUID) {
	if _, ok := s[id]; ok {
		delete(s, id)
		return
	}
	s[id] = struct{}{}
}

// SelectAll adds every line of the currently-filtered candidate list.
func (s Selection) SelectAll(lines []models.BankStatementLine) {
	for _, line := range lines {
		s[line.ID] = struct{}{}
	}
}

func (s Selection) Clear() {
	clear(s)
}

func (s Selection) Has(id uuid.UUID) bool {
	_, ok := s[id]
	return ok
}

func (s Selection) IDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	return ids
}
