package adoption

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shelterhq/backend/internal/domain/shared"
)

// ApplicationRepository defines the interface for application persistence
type ApplicationRepository interface {
	// FindByIDForOrg finds an application by ID within an organization.
	// Returns shared.ErrUnknownEntity when the ID does not resolve in the
	// organization.
	FindByIDForOrg(ctx context.Context, organizationID, id uuid.UUID) (*Application, error)

	// FindAllForOrg finds applications for an organization with filtering
	FindAllForOrg(ctx context.Context, organizationID uuid.UUID, filter shared.Filter) ([]Application, error)

	// FindByAnimal finds applications targeting an animal
	FindByAnimal(ctx context.Context, organizationID, animalID uuid.UUID) ([]Application, error)

	// FindByPerson finds applications submitted by a person
	FindByPerson(ctx context.Context, organizationID, personID uuid.UUID) ([]Application, error)

	// CountForOrg counts applications matching the filter
	CountForOrg(ctx context.Context, organizationID uuid.UUID, filter shared.Filter) (int64, error)

	// CountByStatus returns application counts per pipeline stage
	CountByStatus(ctx context.Context, organizationID uuid.UUID) (map[ApplicationStatus]int64, error)

	// Save creates or updates an application
	Save(ctx context.Context, a *Application) error

	// SaveWithLock saves with an optimistic version check and returns
	// shared.ErrConcurrencyConflict on a version mismatch
	SaveWithLock(ctx context.Context, a *Application) error
}

// FosterAssignmentRepository defines the interface for foster placement
// persistence
type FosterAssignmentRepository interface {
	// FindByIDForOrg finds a foster assignment by ID within an organization
	FindByIDForOrg(ctx context.Context, organizationID, id uuid.UUID) (*FosterAssignment, error)

	// FindActiveByAnimal finds the currently active assignment for an
	// animal. Returns shared.ErrUnknownEntity when none is active.
	FindActiveByAnimal(ctx context.Context, organizationID, animalID uuid.UUID) (*FosterAssignment, error)

	// ExistsActiveForAnimal checks whether the animal has an active
	// foster placement
	ExistsActiveForAnimal(ctx context.Context, organizationID, animalID uuid.UUID) (bool, error)

	// FindByAnimal returns the full placement history for an animal
	FindByAnimal(ctx context.Context, organizationID, animalID uuid.UUID) ([]FosterAssignment, error)

	// FindActiveByPerson finds active assignments held by a foster
	FindActiveByPerson(ctx context.Context, organizationID, personID uuid.UUID) ([]FosterAssignment, error)

	// CountActive counts active placements for an organization
	CountActive(ctx context.Context, organizationID uuid.UUID) (int64, error)

	// Save creates or updates a foster assignment
	Save(ctx context.Context, f *FosterAssignment) error

	// SaveWithLock saves with an optimistic version check
	SaveWithLock(ctx context.Context, f *FosterAssignment) error
}

// AdoptionRepository defines the interface for adoption persistence
type AdoptionRepository interface {
	// FindByIDForOrg finds an adoption by ID within an organization
	FindByIDForOrg(ctx context.Context, organizationID, id uuid.UUID) (*Adoption, error)

	// FindByAnimal finds the adoption for an animal
	FindByAnimal(ctx context.Context, organizationID, animalID uuid.UUID) (*Adoption, error)

	// FindAllForOrg finds adoptions for an organization with filtering
	FindAllForOrg(ctx context.Context, organizationID uuid.UUID, filter shared.Filter) ([]Adoption, error)

	// CountInWindow counts adoptions finalized inside a reporting window
	CountInWindow(ctx context.Context, organizationID uuid.UUID, from, to time.Time) (int64, error)

	// SumFeesInWindow totals adoption fees in cents inside a reporting window
	SumFeesInWindow(ctx context.Context, organizationID uuid.UUID, from, to time.Time) (int64, error)

	// Save creates an adoption record
	Save(ctx context.Context, a *Adoption) error
}
