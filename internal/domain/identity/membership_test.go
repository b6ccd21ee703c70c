package identity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelterhq/backend/internal/domain/shared"
)

func TestRole_Rank(t *testing.T) {
	assert.Equal(t, 0, RoleReadonly.Rank())
	assert.Equal(t, 1, RoleVolunteer.Rank())
	assert.Equal(t, 1, RoleFoster.Rank())
	assert.Equal(t, 2, RoleStaff.Rank())
	assert.Equal(t, 3, RoleAdmin.Rank())
	assert.Equal(t, -1, Role("superuser").Rank())
}

func TestRole_AtLeast(t *testing.T) {
	tests := []struct {
		role     Role
		required Role
		want     bool
	}{
		{RoleAdmin, RoleStaff, true},
		{RoleStaff, RoleStaff, true},
		{RoleStaff, RoleAdmin, false},
		{RoleVolunteer, RoleFoster, true},
		{RoleFoster, RoleVolunteer, true},
		{RoleVolunteer, RoleStaff, false},
		{RoleReadonly, RoleVolunteer, false},
		{RoleReadonly, RoleReadonly, true},
		{Role("superuser"), RoleReadonly, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role)+" vs "+string(tt.required), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.role.AtLeast(tt.required))
		})
	}
}

func TestNewMembership(t *testing.T) {
	userID := uuid.New()
	orgID := uuid.New()

	m, err := NewMembership(userID, orgID, RoleVolunteer)

	require.NoError(t, err)
	assert.Equal(t, userID, m.UserID)
	assert.Equal(t, orgID, m.OrganizationID)
	assert.Equal(t, RoleVolunteer, m.Role)
	require.Len(t, m.GetDomainEvents(), 1)
	assert.Equal(t, EventTypeMembershipGranted, m.GetDomainEvents()[0].EventType())
}

func TestNewMembership_InvalidRole(t *testing.T) {
	_, err := NewMembership(uuid.New(), uuid.New(), Role("owner"))
	assert.Error(t, err)
}

func TestMembership_Authorize(t *testing.T) {
	m, err := NewMembership(uuid.New(), uuid.New(), RoleStaff)
	require.NoError(t, err)

	assert.NoError(t, m.Authorize(RoleReadonly))
	assert.NoError(t, m.Authorize(RoleVolunteer))
	assert.NoError(t, m.Authorize(RoleStaff))
	assert.ErrorIs(t, m.Authorize(RoleAdmin), shared.ErrForbidden)
}

func TestMembership_ChangeRole(t *testing.T) {
	m, err := NewMembership(uuid.New(), uuid.New(), RoleVolunteer)
	require.NoError(t, err)
	m.ClearDomainEvents()

	require.NoError(t, m.ChangeRole(RoleStaff))

	assert.Equal(t, RoleStaff, m.Role)
	require.Len(t, m.GetDomainEvents(), 1)
	event, ok := m.GetDomainEvents()[0].(*MembershipRoleChangedEvent)
	require.True(t, ok)
	assert.Equal(t, RoleVolunteer, event.OldRole)
	assert.Equal(t, RoleStaff, event.NewRole)
}

func TestUser_PasswordLifecycle(t *testing.T) {
	u, err := NewActiveUser("staff@shelter.org", "s3cret-pass")
	require.NoError(t, err)

	assert.True(t, u.VerifyPassword("s3cret-pass"))
	assert.False(t, u.VerifyPassword("wrong"))

	require.NoError(t, u.ChangePassword("s3cret-pass", "n3w-secret-pass"))
	assert.True(t, u.VerifyPassword("n3w-secret-pass"))

	err = u.ChangePassword("stale", "whatever-else")
	assert.Error(t, err)
}

func TestNewUser_InvalidEmail(t *testing.T) {
	_, err := NewUser("not-an-email", "s3cret-pass")
	assert.Error(t, err)
}
