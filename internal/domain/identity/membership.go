package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shelterhq/backend/internal/domain/shared"
)

// Role represents a user's role within one organization
type Role string

const (
	RoleReadonly  Role = "readonly"
	RoleVolunteer Role = "volunteer"
	RoleFoster    Role = "foster"
	RoleStaff     Role = "staff"
	RoleAdmin     Role = "admin"
)

// roleRanks orders roles for authorization checks. Volunteer and foster
// share a rank: both sit above readonly and below staff.
var roleRanks = map[Role]int{
	RoleReadonly:  0,
	RoleVolunteer: 1,
	RoleFoster:    1,
	RoleStaff:     2,
	RoleAdmin:     3,
}

// IsValid checks if the role is a known Role
func (r Role) IsValid() bool {
	_, ok := roleRanks[r]
	return ok
}

// String returns the string representation of Role
func (r Role) String() string {
	return string(r)
}

// Rank returns the authorization rank of the role; unknown roles rank below
// readonly
func (r Role) Rank() int {
	rank, ok := roleRanks[r]
	if !ok {
		return -1
	}
	return rank
}

// AtLeast returns true if this role's rank meets or exceeds the required role
func (r Role) AtLeast(required Role) bool {
	return r.Rank() >= required.Rank()
}

// Membership grants a user a role within an organization. It is the sole
// source of authorization decisions: role is always derived from a stored
// Membership, never from client-supplied state.
type Membership struct {
	shared.BaseAggregateRoot
	UserID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_membership_user_org"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_membership_user_org;index"`
	Role           Role      `gorm:"type:varchar(20);not null"`
}

// TableName returns the table name for GORM
func (Membership) TableName() string {
	return "memberships"
}

// NewMembership creates a membership for the (user, organization) pair
func NewMembership(userID, organizationID uuid.UUID, role Role) (*Membership, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if organizationID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORGANIZATION", "Organization ID cannot be empty")
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Unknown role")
	}

	m := &Membership{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		OrganizationID:    organizationID,
		Role:              role,
	}

	m.AddDomainEvent(NewMembershipGrantedEvent(m))

	return m, nil
}

// ChangeRole updates the member's role
func (m *Membership) ChangeRole(role Role) error {
	if !role.IsValid() {
		return shared.NewDomainError("INVALID_ROLE", "Unknown role")
	}

	oldRole := m.Role
	m.Role = role
	m.UpdatedAt = time.Now()
	m.IncrementVersion()

	m.AddDomainEvent(NewMembershipRoleChangedEvent(m, oldRole, role))

	return nil
}

// Authorize checks whether the membership satisfies the required role.
// It is a pure check with no side effects.
func (m *Membership) Authorize(required Role) error {
	if !m.Role.AtLeast(required) {
		return shared.ErrForbidden
	}
	return nil
}
