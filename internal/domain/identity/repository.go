package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/shelterhq/backend/internal/domain/shared"
)

// OrganizationRepository defines the interface for organization persistence
type OrganizationRepository interface {
	// FindByID finds an organization by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Organization, error)

	// FindAll finds all organizations matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Organization, error)

	// Save creates or updates an organization
	Save(ctx context.Context, org *Organization) error

	// Delete deletes an organization and cascades to all of its data
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts organizations matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// FindByID finds a user by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByEmail finds a user by its globally unique email
	FindByEmail(ctx context.Context, email string) (*User, error)

	// ExistsByEmail checks if a user with the given email exists
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Save creates or updates a user
	Save(ctx context.Context, user *User) error
}

// MembershipRepository defines the interface for membership persistence
type MembershipRepository interface {
	// FindByUserAndOrg finds the membership for a (user, organization) pair.
	// Returns shared.ErrNotAMember when no row exists.
	FindByUserAndOrg(ctx context.Context, userID, organizationID uuid.UUID) (*Membership, error)

	// FindByOrg finds all memberships of an organization
	FindByOrg(ctx context.Context, organizationID uuid.UUID, filter shared.Filter) ([]Membership, error)

	// FindByUser finds all memberships of a user across organizations
	FindByUser(ctx context.Context, userID uuid.UUID) ([]Membership, error)

	// Save creates or updates a membership
	Save(ctx context.Context, membership *Membership) error

	// Delete removes a membership, revoking the user's access
	Delete(ctx context.Context, id uuid.UUID) error
}
