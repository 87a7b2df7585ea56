package models

import "github.com/google/uuid"

// TenantScope partitions every row in the multi-tenant store: the church
// (organization) and optionally one of its branches.
type TenantScope struct {
	ChurchID uuid.UUID
	BranchID *uuid.UUID
}

func (s TenantScope) Known() bool {
	return s.ChurchID != uuid.Nil
}
