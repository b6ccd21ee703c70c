package identity

import (
	"github.com/google/uuid"
	"github.com/shelterhq/backend/internal/domain/shared"
)

// Aggregate type constants
const (
	AggregateTypeOrganization = "Organization"
	AggregateTypeUser         = "User"
	AggregateTypeMembership   = "Membership"
)

// Event type constants
const (
	EventTypeOrganizationCreated   = "OrganizationCreated"
	EventTypeUserCreated           = "UserCreated"
	EventTypeMembershipGranted     = "MembershipGranted"
	EventTypeMembershipRoleChanged = "MembershipRoleChanged"
)

// OrganizationCreatedEvent is raised when a new organization is created
type OrganizationCreatedEvent struct {
	shared.BaseDomainEvent
	Name string `json:"name"`
}

// NewOrganizationCreatedEvent creates a new OrganizationCreatedEvent
func NewOrganizationCreatedEvent(org *Organization) *OrganizationCreatedEvent {
	return &OrganizationCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrganizationCreated, AggregateTypeOrganization, org.ID, org.ID),
		Name:            org.Name,
	}
}

// EventType returns the event type name
func (e *OrganizationCreatedEvent) EventType() string {
	return EventTypeOrganizationCreated
}

// UserCreatedEvent is raised when a new user registers
type UserCreatedEvent struct {
	shared.BaseDomainEvent
	Email string `json:"email"`
}

// NewUserCreatedEvent creates a new UserCreatedEvent. Users are global, so
// the organization field is left as the zero UUID.
func NewUserCreatedEvent(user *User) *UserCreatedEvent {
	return &UserCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserCreated, AggregateTypeUser, user.ID, uuid.Nil),
		Email:           user.Email,
	}
}

// EventType returns the event type name
func (e *UserCreatedEvent) EventType() string {
	return EventTypeUserCreated
}

// MembershipGrantedEvent is raised when a user is granted access to an
// organization
type MembershipGrantedEvent struct {
	shared.BaseDomainEvent
	UserID uuid.UUID `json:"user_id"`
	Role   Role      `json:"role"`
}

// NewMembershipGrantedEvent creates a new MembershipGrantedEvent
func NewMembershipGrantedEvent(m *Membership) *MembershipGrantedEvent {
	return &MembershipGrantedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeMembershipGranted, AggregateTypeMembership, m.ID, m.OrganizationID),
		UserID:          m.UserID,
		Role:            m.Role,
	}
}

// EventType returns the event type name
func (e *MembershipGrantedEvent) EventType() string {
	return EventTypeMembershipGranted
}

// MembershipRoleChangedEvent is raised when a member's role changes
type MembershipRoleChangedEvent struct {
	shared.BaseDomainEvent
	UserID  uuid.UUID `json:"user_id"`
	OldRole Role      `json:"old_role"`
	NewRole Role      `json:"new_role"`
}

// NewMembershipRoleChangedEvent creates a new MembershipRoleChangedEvent
func NewMembershipRoleChangedEvent(m *Membership, oldRole, newRole Role) *MembershipRoleChangedEvent {
	return &MembershipRoleChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeMembershipRoleChanged, AggregateTypeMembership, m.ID, m.OrganizationID),
		UserID:          m.UserID,
		OldRole:         oldRole,
		NewRole:         newRole,
	}
}

// EventType returns the event type name
func (e *MembershipRoleChangedEvent) EventType() string {
	return EventTypeMembershipRoleChanged
}
