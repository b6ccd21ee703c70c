package animal

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shelterhq/backend/internal/domain/shared"
)

// Repository defines the interface for animal persistence
type Repository interface {
	// FindByIDForOrg finds an animal by ID within an organization.
	// Returns shared.ErrUnknownEntity when the ID does not resolve in the
	// organization, whether or not it exists elsewhere.
	FindByIDForOrg(ctx context.Context, organizationID, id uuid.UUID) (*Animal, error)

	// FindAllForOrg finds animals for an organization with filtering
	FindAllForOrg(ctx context.Context, organizationID uuid.UUID, filter shared.Filter) ([]Animal, error)

	// CountForOrg counts animals matching the filter
	CountForOrg(ctx context.Context, organizationID uuid.UUID, filter shared.Filter) (int64, error)

	// CountBySpecies returns animal counts per species for animals in care
	CountBySpecies(ctx context.Context, organizationID uuid.UUID) (map[Species]int64, error)

	// CountByStatus returns animal counts per lifecycle status
	CountByStatus(ctx context.Context, organizationID uuid.UUID) (map[Status]int64, error)

	// Save creates or updates an animal
	Save(ctx context.Context, a *Animal) error

	// SaveWithLock saves with an optimistic version check and returns
	// shared.ErrConcurrencyConflict on a version mismatch
	SaveWithLock(ctx context.Context, a *Animal) error
}

// IntakeRepository defines the interface for intake persistence
type IntakeRepository interface {
	// FindByAnimal finds the intake record for an animal
	FindByAnimal(ctx context.Context, organizationID, animalID uuid.UUID) (*Intake, error)

	// CountByMonth returns intake counts bucketed by calendar month between
	// from and to, keyed by the first day of each month
	CountByMonth(ctx context.Context, organizationID uuid.UUID, from, to time.Time) (map[time.Time]int64, error)

	// Save creates an intake record; intakes are immutable after creation
	Save(ctx context.Context, intake *Intake) error
}

// OutcomeRepository defines the interface for outcome persistence
type OutcomeRepository interface {
	// FindByAnimal finds the outcome record for an animal
	FindByAnimal(ctx context.Context, organizationID, animalID uuid.UUID) (*Outcome, error)

	// ExistsForAnimal checks whether an outcome exists for the animal
	ExistsForAnimal(ctx context.Context, organizationID, animalID uuid.UUID) (bool, error)

	// CountByType returns outcome counts per type within a reporting window
	CountByType(ctx context.Context, organizationID uuid.UUID, from, to time.Time) (map[OutcomeType]int64, error)

	// Save creates an outcome record; outcomes are never mutated
	Save(ctx context.Context, outcome *Outcome) error
}
