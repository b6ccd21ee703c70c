package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	appaudit "github.com/shelterhq/backend/internal/application/audit"
	"github.com/shelterhq/backend/internal/domain/audit"
	"github.com/shelterhq/backend/internal/domain/identity"
	"github.com/shelterhq/backend/internal/domain/shared"
)

// MockAuditRepository is a mock implementation of audit.Repository
type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) Append(ctx context.Context, entry *audit.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditRepository) FindForOrg(ctx context.Context, organizationID uuid.UUID, filter shared.Filter) ([]audit.Entry, error) {
	args := m.Called(ctx, organizationID, filter)
	return args.Get(0).([]audit.Entry), args.Error(1)
}

func (m *MockAuditRepository) FindByEntity(ctx context.Context, organizationID uuid.UUID, entityType string, entityID uuid.UUID, filter shared.Filter) ([]audit.Entry, error) {
	args := m.Called(ctx, organizationID, entityType, entityID, filter)
	return args.Get(0).([]audit.Entry), args.Error(1)
}

func (m *MockAuditRepository) CountForOrg(ctx context.Context, organizationID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, organizationID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAuditRepository) CountByEntityTypeInWindow(ctx context.Context, organizationID uuid.UUID, from, to time.Time) (map[string]int64, error) {
	args := m.Called(ctx, organizationID, from, to)
	return args.Get(0).(map[string]int64), args.Error(1)
}

func createMembershipService(userRepo *MockUserRepository, membershipRepo *MockMembershipRepository) *MembershipService {
	recorder := appaudit.NewRecorder(new(MockAuditRepository))
	return NewMembershipService(new(MockUnitOfWork), membershipRepo, userRepo, recorder)
}

func TestMembershipService_Authorize_Success(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	membershipRepo := new(MockMembershipRepository)

	userID := uuid.New()
	orgID := uuid.New()
	membership, _ := identity.NewMembership(userID, orgID, identity.RoleStaff)

	membershipRepo.On("FindByUserAndOrg", ctx, userID, orgID).Return(membership, nil)

	service := createMembershipService(userRepo, membershipRepo)

	result, err := service.Authorize(ctx, userID, orgID, identity.RoleVolunteer)

	require.NoError(t, err)
	assert.Equal(t, membership.ID, result.ID)
	assert.Equal(t, identity.RoleStaff, result.Role)
	membershipRepo.AssertExpectations(t)
}

func TestMembershipService_Authorize_NotAMember(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	membershipRepo := new(MockMembershipRepository)

	userID := uuid.New()
	orgID := uuid.New()

	membershipRepo.On("FindByUserAndOrg", ctx, userID, orgID).Return(nil, shared.ErrUnknownEntity)

	service := createMembershipService(userRepo, membershipRepo)

	result, err := service.Authorize(ctx, userID, orgID, identity.RoleReadonly)

	require.ErrorIs(t, err, shared.ErrNotAMember)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "NOT_A_MEMBER", domainErr.Code)
}

func TestMembershipService_Authorize_InsufficientRole(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	membershipRepo := new(MockMembershipRepository)

	userID := uuid.New()
	orgID := uuid.New()
	membership, _ := identity.NewMembership(userID, orgID, identity.RoleVolunteer)

	membershipRepo.On("FindByUserAndOrg", ctx, userID, orgID).Return(membership, nil)

	service := createMembershipService(userRepo, membershipRepo)

	result, err := service.Authorize(ctx, userID, orgID, identity.RoleStaff)

	require.ErrorIs(t, err, shared.ErrForbidden)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "PERMISSION_DENIED", domainErr.Code)
}

func TestMembershipService_Authorize_FosterRankMatchesVolunteer(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	membershipRepo := new(MockMembershipRepository)

	userID := uuid.New()
	orgID := uuid.New()
	membership, _ := identity.NewMembership(userID, orgID, identity.RoleFoster)

	membershipRepo.On("FindByUserAndOrg", ctx, userID, orgID).Return(membership, nil)

	service := createMembershipService(userRepo, membershipRepo)

	result, err := service.Authorize(ctx, userID, orgID, identity.RoleVolunteer)

	require.NoError(t, err)
	assert.Equal(t, identity.RoleFoster, result.Role)

	denied, err := service.Authorize(ctx, userID, orgID, identity.RoleStaff)
	require.ErrorIs(t, err, shared.ErrForbidden)
	assert.Nil(t, denied)
}
