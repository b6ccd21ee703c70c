package person

import (
	"context"

	"github.com/google/uuid"
	"github.com/shelterhq/backend/internal/domain/shared"
)

// Repository defines the interface for person persistence
type Repository interface {
	// FindByIDForOrg finds a person by ID within an organization.
	// Returns shared.ErrUnknownEntity when the ID does not resolve in the
	// organization.
	FindByIDForOrg(ctx context.Context, organizationID, id uuid.UUID) (*Person, error)

	// FindAllForOrg finds people for an organization with filtering
	FindAllForOrg(ctx context.Context, organizationID uuid.UUID, filter shared.Filter) ([]Person, error)

	// FindByType finds people of a given type
	FindByType(ctx context.Context, organizationID uuid.UUID, personType Type) ([]Person, error)

	// CountForOrg counts people matching the filter
	CountForOrg(ctx context.Context, organizationID uuid.UUID, filter shared.Filter) (int64, error)

	// Save creates or updates a person
	Save(ctx context.Context, p *Person) error
}
