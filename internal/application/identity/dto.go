package identity

import (
	"time"

	"github.com/google/uuid"

	"github.com/shelterhq/backend/internal/domain/identity"
)

// RegisterInput contains the data to bootstrap a new organization with its
// first admin user
type RegisterInput struct {
	OrganizationName string `json:"organization_name" binding:"required"`
	Email            string `json:"email" binding:"required,email"`
	Password         string `json:"password" binding:"required,min=8"`
	DisplayName      string `json:"display_name"`
}

// LoginInput contains login credentials. OrganizationID may be omitted when
// the user belongs to exactly one organization.
type LoginInput struct {
	Email          string     `json:"email" binding:"required,email"`
	Password       string     `json:"password" binding:"required"`
	OrganizationID *uuid.UUID `json:"organization_id"`
}

// RefreshTokenInput contains the refresh token
type RefreshTokenInput struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LogoutInput identifies the tokens to revoke
type LogoutInput struct {
	UserID          uuid.UUID
	AccessTokenJTI  string
	AccessExpiresAt time.Time
	RefreshToken    string
}

// ChangePasswordInput contains the password change request
type ChangePasswordInput struct {
	UserID      uuid.UUID
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// SwitchOrganizationInput requests a token pair scoped to another
// organization the user is a member of
type SwitchOrganizationInput struct {
	UserID         uuid.UUID
	OrganizationID uuid.UUID `json:"organization_id" binding:"required"`
}

// UserInfo carries user identity details in auth results
type UserInfo struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	DisplayName    string    `json:"display_name"`
	OrganizationID uuid.UUID `json:"organization_id"`
	Role           string    `json:"role"`
}

// LoginResult contains the result of a successful login
type LoginResult struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
	User                  UserInfo  `json:"user"`
}

// RefreshTokenResult contains the refreshed token pair
type RefreshTokenResult struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
}

// CreateOrganizationRequest contains the data to create an organization
type CreateOrganizationRequest struct {
	Name     string `json:"name" binding:"required,max=200"`
	Timezone string `json:"timezone"`
	Notes    string `json:"notes"`
}

// UpdateOrganizationRequest contains updatable organization fields
type UpdateOrganizationRequest struct {
	Name     *string `json:"name"`
	Timezone *string `json:"timezone"`
	Notes    *string `json:"notes"`
}

// OrganizationResponse is the organization representation returned to
// clients
type OrganizationResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	Timezone  string    `json:"timezone"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToOrganizationResponse converts a domain organization to a response DTO
func ToOrganizationResponse(o *identity.Organization) OrganizationResponse {
	return OrganizationResponse{
		ID:        o.ID,
		Name:      o.Name,
		Status:    string(o.Status),
		Timezone:  o.Timezone,
		Notes:     o.Notes,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

// GrantMembershipRequest grants a user access to an organization
type GrantMembershipRequest struct {
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role" binding:"required"`
}

// ChangeRoleRequest changes a member's role
type ChangeRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// MembershipResponse is the membership representation returned to clients
type MembershipResponse struct {
	ID             uuid.UUID `json:"id"`
	UserID         uuid.UUID `json:"user_id"`
	OrganizationID uuid.UUID `json:"organization_id"`
	Role           string    `json:"role"`
	Email          string    `json:"email,omitempty"`
	DisplayName    string    `json:"display_name,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// ToMembershipResponse converts a domain membership to a response DTO
func ToMembershipResponse(m *identity.Membership) MembershipResponse {
	return MembershipResponse{
		ID:             m.ID,
		UserID:         m.UserID,
		OrganizationID: m.OrganizationID,
		Role:           m.Role.String(),
		CreatedAt:      m.CreatedAt,
	}
}
