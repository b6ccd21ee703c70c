package medical

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shelterhq/backend/internal/domain/shared"
)

// TaskRepository defines the interface for medical task persistence
type TaskRepository interface {
	// FindByIDForOrg finds a task by ID within an organization
	FindByIDForOrg(ctx context.Context, organizationID, id uuid.UUID) (*Task, error)

	// FindAllForOrg finds tasks for an organization with filtering
	FindAllForOrg(ctx context.Context, organizationID uuid.UUID, filter shared.Filter) ([]Task, error)

	// FindByAnimal finds tasks for an animal
	FindByAnimal(ctx context.Context, organizationID, animalID uuid.UUID, filter shared.Filter) ([]Task, error)

	// FindOpenDueBy finds non-terminal tasks whose due date falls on or
	// before the given date, for overdue digests and dashboards
	FindOpenDueBy(ctx context.Context, organizationID uuid.UUID, dueBy time.Time) ([]Task, error)

	// FindInWindow finds tasks whose due date falls inside [from, to),
	// regardless of status, for compliance reporting
	FindInWindow(ctx context.Context, organizationID uuid.UUID, from, to time.Time) ([]Task, error)

	// CountForOrg counts tasks matching the filter
	CountForOrg(ctx context.Context, organizationID uuid.UUID, filter shared.Filter) (int64, error)

	// Save creates or updates a task
	Save(ctx context.Context, task *Task) error

	// SaveWithLock saves with an optimistic version check and returns
	// shared.ErrConcurrencyConflict on a version mismatch
	SaveWithLock(ctx context.Context, task *Task) error
}

// RecordRepository defines the interface for medical record persistence
type RecordRepository interface {
	// FindByAnimal finds the care history of an animal
	FindByAnimal(ctx context.Context, organizationID, animalID uuid.UUID, filter shared.Filter) ([]Record, error)

	// Save creates a record; records are immutable after creation
	Save(ctx context.Context, record *Record) error
}
