package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shelterhq/backend/internal/domain/shared"
)

// Repository defines the interface for the append-only audit log.
// There is deliberately no update or delete operation.
type Repository interface {
	// Append writes an entry; entries commit inside the caller's
	// transaction so the log succeeds or fails with the mutation
	Append(ctx context.Context, entry *Entry) error

	// FindForOrg lists entries for an organization, newest first
	FindForOrg(ctx context.Context, organizationID uuid.UUID, filter shared.Filter) ([]Entry, error)

	// FindByEntity lists entries for a single entity, newest first
	FindByEntity(ctx context.Context, organizationID uuid.UUID, entityType string, entityID uuid.UUID, filter shared.Filter) ([]Entry, error)

	// CountForOrg counts entries matching the filter
	CountForOrg(ctx context.Context, organizationID uuid.UUID, filter shared.Filter) (int64, error)

	// CountByEntityTypeInWindow buckets entry counts by entity type inside
	// a reporting window
	CountByEntityTypeInWindow(ctx context.Context, organizationID uuid.UUID, from, to time.Time) (map[string]int64, error)
}
