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
	"go.uber.org/zap"

	"github.com/shelterhq/backend/internal/domain/identity"
	"github.com/shelterhq/backend/internal/domain/shared"
	"github.com/shelterhq/backend/internal/infrastructure/auth"
	"github.com/shelterhq/backend/internal/infrastructure/config"
)

// MockUnitOfWork executes the unit directly without a transaction
type MockUnitOfWork struct{}

func (m *MockUnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// MockOrganizationRepository is a mock implementation of
// identity.OrganizationRepository
type MockOrganizationRepository struct {
	mock.Mock
}

func (m *MockOrganizationRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Organization, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Organization), args.Error(1)
}

func (m *MockOrganizationRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.Organization, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]identity.Organization), args.Error(1)
}

func (m *MockOrganizationRepository) Save(ctx context.Context, org *identity.Organization) error {
	args := m.Called(ctx, org)
	return args.Error(0)
}

func (m *MockOrganizationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOrganizationRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockMembershipRepository is a mock implementation of
// identity.MembershipRepository
type MockMembershipRepository struct {
	mock.Mock
}

func (m *MockMembershipRepository) FindByUserAndOrg(ctx context.Context, userID, organizationID uuid.UUID) (*identity.Membership, error) {
	args := m.Called(ctx, userID, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Membership), args.Error(1)
}

func (m *MockMembershipRepository) FindByOrg(ctx context.Context, organizationID uuid.UUID, filter shared.Filter) ([]identity.Membership, error) {
	args := m.Called(ctx, organizationID, filter)
	return args.Get(0).([]identity.Membership), args.Error(1)
}

func (m *MockMembershipRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]identity.Membership, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]identity.Membership), args.Error(1)
}

func (m *MockMembershipRepository) Save(ctx context.Context, membership *identity.Membership) error {
	args := m.Called(ctx, membership)
	return args.Error(0)
}

func (m *MockMembershipRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockTokenBlacklist is a mock implementation of auth.TokenBlacklist
type MockTokenBlacklist struct {
	mock.Mock
}

func (m *MockTokenBlacklist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	args := m.Called(ctx, jti, ttl)
	return args.Error(0)
}

func (m *MockTokenBlacklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	args := m.Called(ctx, jti)
	return args.Bool(0), args.Error(1)
}

func (m *MockTokenBlacklist) RevokeUserTokens(ctx context.Context, userID string, ttl time.Duration) error {
	args := m.Called(ctx, userID, ttl)
	return args.Error(0)
}

func (m *MockTokenBlacklist) IsUserTokenRevoked(ctx context.Context, userID string, tokenIssuedAt time.Time) (bool, error) {
	args := m.Called(ctx, userID, tokenIssuedAt)
	return args.Bool(0), args.Error(1)
}

// Helper function to create a test user
func createTestUser() *identity.User {
	user, _ := identity.NewActiveUser("shelter@example.org", "Password123")
	return user
}

// Helper function to create the auth service with its mocks
func createAuthService(userRepo *MockUserRepository, orgRepo *MockOrganizationRepository, membershipRepo *MockMembershipRepository, blacklist *MockTokenBlacklist) *AuthService {
	jwtCfg := config.JWTConfig{
		Secret:                 "test-secret-key-32-characters-long",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "test-issuer",
		MaxRefreshCount:        10,
	}
	jwtService := auth.NewJWTService(jwtCfg)
	logger := zap.NewNop()

	return NewAuthService(
		new(MockUnitOfWork),
		userRepo,
		orgRepo,
		membershipRepo,
		jwtService,
		blacklist,
		logger,
	)
}

func TestAuthService_Register_Success(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	orgRepo := new(MockOrganizationRepository)
	membershipRepo := new(MockMembershipRepository)
	blacklist := new(MockTokenBlacklist)

	userRepo.On("ExistsByEmail", ctx, "founder@example.org").Return(false, nil)
	userRepo.On("Save", ctx, mock.AnythingOfType("*identity.User")).Return(nil)
	orgRepo.On("Save", ctx, mock.AnythingOfType("*identity.Organization")).Return(nil)
	membershipRepo.On("Save", ctx, mock.AnythingOfType("*identity.Membership")).Return(nil)

	authService := createAuthService(userRepo, orgRepo, membershipRepo, blacklist)

	result, err := authService.Register(ctx, RegisterInput{
		OrganizationName: "Maple Street Shelter",
		Email:            "founder@example.org",
		Password:         "Password123",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
	assert.Equal(t, "founder@example.org", result.User.Email)
	assert.Equal(t, identity.RoleAdmin.String(), result.User.Role)
	assert.Equal(t, "Bearer", result.TokenType)

	userRepo.AssertExpectations(t)
	orgRepo.AssertExpectations(t)
	membershipRepo.AssertExpectations(t)
}

func TestAuthService_Register_EmailTaken(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	orgRepo := new(MockOrganizationRepository)
	membershipRepo := new(MockMembershipRepository)
	blacklist := new(MockTokenBlacklist)

	userRepo.On("ExistsByEmail", ctx, "taken@example.org").Return(true, nil)

	authService := createAuthService(userRepo, orgRepo, membershipRepo, blacklist)

	result, err := authService.Register(ctx, RegisterInput{
		OrganizationName: "Maple Street Shelter",
		Email:            "taken@example.org",
		Password:         "Password123",
	})

	require.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "EMAIL_TAKEN", domainErr.Code)
	orgRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAuthService_Login_Success(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	orgRepo := new(MockOrganizationRepository)
	membershipRepo := new(MockMembershipRepository)
	blacklist := new(MockTokenBlacklist)

	user := createTestUser()
	orgID := uuid.New()
	membership, _ := identity.NewMembership(user.ID, orgID, identity.RoleStaff)

	userRepo.On("FindByEmail", ctx, "shelter@example.org").Return(user, nil)
	userRepo.On("Save", ctx, user).Return(nil)
	membershipRepo.On("FindByUser", ctx, user.ID).Return([]identity.Membership{*membership}, nil)

	authService := createAuthService(userRepo, orgRepo, membershipRepo, blacklist)

	result, err := authService.Login(ctx, LoginInput{
		Email:    "shelter@example.org",
		Password: "Password123",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
	assert.Equal(t, orgID, result.User.OrganizationID)
	assert.Equal(t, identity.RoleStaff.String(), result.User.Role)

	userRepo.AssertExpectations(t)
	membershipRepo.AssertExpectations(t)
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	orgRepo := new(MockOrganizationRepository)
	membershipRepo := new(MockMembershipRepository)
	blacklist := new(MockTokenBlacklist)

	user := createTestUser()

	userRepo.On("FindByEmail", ctx, "shelter@example.org").Return(user, nil)

	authService := createAuthService(userRepo, orgRepo, membershipRepo, blacklist)

	result, err := authService.Login(ctx, LoginInput{
		Email:    "shelter@example.org",
		Password: "wrongpassword",
	})

	require.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
}

func TestAuthService_Login_UserNotFound(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	orgRepo := new(MockOrganizationRepository)
	membershipRepo := new(MockMembershipRepository)
	blacklist := new(MockTokenBlacklist)

	userRepo.On("FindByEmail", ctx, "nobody@example.org").Return(nil, errors.New("user not found"))

	authService := createAuthService(userRepo, orgRepo, membershipRepo, blacklist)

	result, err := authService.Login(ctx, LoginInput{
		Email:    "nobody@example.org",
		Password: "Password123",
	})

	require.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
}

func TestAuthService_Login_NotAMember(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	orgRepo := new(MockOrganizationRepository)
	membershipRepo := new(MockMembershipRepository)
	blacklist := new(MockTokenBlacklist)

	user := createTestUser()

	userRepo.On("FindByEmail", ctx, "shelter@example.org").Return(user, nil)
	membershipRepo.On("FindByUser", ctx, user.ID).Return([]identity.Membership{}, nil)

	authService := createAuthService(userRepo, orgRepo, membershipRepo, blacklist)

	result, err := authService.Login(ctx, LoginInput{
		Email:    "shelter@example.org",
		Password: "Password123",
	})

	require.ErrorIs(t, err, shared.ErrNotAMember)
	assert.Nil(t, result)
}

func TestAuthService_Login_MultipleOrganizationsRequireChoice(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	orgRepo := new(MockOrganizationRepository)
	membershipRepo := new(MockMembershipRepository)
	blacklist := new(MockTokenBlacklist)

	user := createTestUser()
	first, _ := identity.NewMembership(user.ID, uuid.New(), identity.RoleStaff)
	second, _ := identity.NewMembership(user.ID, uuid.New(), identity.RoleVolunteer)

	userRepo.On("FindByEmail", ctx, "shelter@example.org").Return(user, nil)
	membershipRepo.On("FindByUser", ctx, user.ID).Return([]identity.Membership{*first, *second}, nil)

	authService := createAuthService(userRepo, orgRepo, membershipRepo, blacklist)

	result, err := authService.Login(ctx, LoginInput{
		Email:    "shelter@example.org",
		Password: "Password123",
	})

	require.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "ORGANIZATION_REQUIRED", domainErr.Code)
}

func TestAuthService_Login_ExplicitOrganization(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	orgRepo := new(MockOrganizationRepository)
	membershipRepo := new(MockMembershipRepository)
	blacklist := new(MockTokenBlacklist)

	user := createTestUser()
	orgID := uuid.New()
	membership, _ := identity.NewMembership(user.ID, orgID, identity.RoleAdmin)

	userRepo.On("FindByEmail", ctx, "shelter@example.org").Return(user, nil)
	userRepo.On("Save", ctx, user).Return(nil)
	membershipRepo.On("FindByUserAndOrg", ctx, user.ID, orgID).Return(membership, nil)

	authService := createAuthService(userRepo, orgRepo, membershipRepo, blacklist)

	result, err := authService.Login(ctx, LoginInput{
		Email:          "shelter@example.org",
		Password:       "Password123",
		OrganizationID: &orgID,
	})

	require.NoError(t, err)
	assert.Equal(t, orgID, result.User.OrganizationID)
	membershipRepo.AssertExpectations(t)
}

func TestAuthService_RefreshToken_Success(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	orgRepo := new(MockOrganizationRepository)
	membershipRepo := new(MockMembershipRepository)
	blacklist := new(MockTokenBlacklist)

	user := createTestUser()
	orgID := uuid.New()
	membership, _ := identity.NewMembership(user.ID, orgID, identity.RoleStaff)

	authService := createAuthService(userRepo, orgRepo, membershipRepo, blacklist)

	// Issue a real pair first so the refresh token is valid.
	userRepo.On("FindByEmail", ctx, "shelter@example.org").Return(user, nil)
	userRepo.On("Save", ctx, user).Return(nil)
	membershipRepo.On("FindByUser", ctx, user.ID).Return([]identity.Membership{*membership}, nil)

	login, err := authService.Login(ctx, LoginInput{
		Email:    "shelter@example.org",
		Password: "Password123",
	})
	require.NoError(t, err)

	blacklist.On("IsRevoked", ctx, mock.AnythingOfType("string")).Return(false, nil)
	blacklist.On("IsUserTokenRevoked", ctx, user.ID.String(), mock.AnythingOfType("time.Time")).Return(false, nil)
	userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
	membershipRepo.On("FindByUserAndOrg", ctx, user.ID, orgID).Return(membership, nil)

	result, err := authService.RefreshToken(ctx, RefreshTokenInput{
		RefreshToken: login.RefreshToken,
	})

	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
	blacklist.AssertExpectations(t)
}

func TestAuthService_RefreshToken_Revoked(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	orgRepo := new(MockOrganizationRepository)
	membershipRepo := new(MockMembershipRepository)
	blacklist := new(MockTokenBlacklist)

	user := createTestUser()
	orgID := uuid.New()
	membership, _ := identity.NewMembership(user.ID, orgID, identity.RoleStaff)

	authService := createAuthService(userRepo, orgRepo, membershipRepo, blacklist)

	userRepo.On("FindByEmail", ctx, "shelter@example.org").Return(user, nil)
	userRepo.On("Save", ctx, user).Return(nil)
	membershipRepo.On("FindByUser", ctx, user.ID).Return([]identity.Membership{*membership}, nil)

	login, err := authService.Login(ctx, LoginInput{
		Email:    "shelter@example.org",
		Password: "Password123",
	})
	require.NoError(t, err)

	blacklist.On("IsRevoked", ctx, mock.AnythingOfType("string")).Return(true, nil)

	result, err := authService.RefreshToken(ctx, RefreshTokenInput{
		RefreshToken: login.RefreshToken,
	})

	require.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "TOKEN_REVOKED", domainErr.Code)
}

func TestAuthService_RefreshToken_InvalidToken(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	orgRepo := new(MockOrganizationRepository)
	membershipRepo := new(MockMembershipRepository)
	blacklist := new(MockTokenBlacklist)

	authService := createAuthService(userRepo, orgRepo, membershipRepo, blacklist)

	result, err := authService.RefreshToken(ctx, RefreshTokenInput{
		RefreshToken: "not-a-token",
	})

	require.Error(t, err)
	assert.Nil(t, result)
}

func TestAuthService_SwitchOrganization_Success(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	orgRepo := new(MockOrganizationRepository)
	membershipRepo := new(MockMembershipRepository)
	blacklist := new(MockTokenBlacklist)

	user := createTestUser()
	otherOrgID := uuid.New()
	membership, _ := identity.NewMembership(user.ID, otherOrgID, identity.RoleVolunteer)

	userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
	membershipRepo.On("FindByUserAndOrg", ctx, user.ID, otherOrgID).Return(membership, nil)

	authService := createAuthService(userRepo, orgRepo, membershipRepo, blacklist)

	result, err := authService.SwitchOrganization(ctx, SwitchOrganizationInput{
		UserID:         user.ID,
		OrganizationID: otherOrgID,
	})

	require.NoError(t, err)
	assert.Equal(t, otherOrgID, result.User.OrganizationID)
	assert.Equal(t, identity.RoleVolunteer.String(), result.User.Role)
}

func TestAuthService_SwitchOrganization_NotAMember(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	orgRepo := new(MockOrganizationRepository)
	membershipRepo := new(MockMembershipRepository)
	blacklist := new(MockTokenBlacklist)

	user := createTestUser()
	otherOrgID := uuid.New()

	userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
	membershipRepo.On("FindByUserAndOrg", ctx, user.ID, otherOrgID).Return(nil, shared.ErrNotAMember)

	authService := createAuthService(userRepo, orgRepo, membershipRepo, blacklist)

	result, err := authService.SwitchOrganization(ctx, SwitchOrganizationInput{
		UserID:         user.ID,
		OrganizationID: otherOrgID,
	})

	require.ErrorIs(t, err, shared.ErrNotAMember)
	assert.Nil(t, result)
}

func TestAuthService_ChangePassword_Success(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	orgRepo := new(MockOrganizationRepository)
	membershipRepo := new(MockMembershipRepository)
	blacklist := new(MockTokenBlacklist)

	user := createTestUser()

	userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
	userRepo.On("Save", ctx, user).Return(nil)
	blacklist.On("RevokeUserTokens", ctx, user.ID.String(), mock.AnythingOfType("time.Duration")).Return(nil)

	authService := createAuthService(userRepo, orgRepo, membershipRepo, blacklist)

	err := authService.ChangePassword(ctx, ChangePasswordInput{
		UserID:      user.ID,
		OldPassword: "Password123",
		NewPassword: "NewPassword456",
	})

	require.NoError(t, err)
	assert.True(t, user.VerifyPassword("NewPassword456"))
	blacklist.AssertExpectations(t)
}

func TestAuthService_ChangePassword_WrongOldPassword(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	orgRepo := new(MockOrganizationRepository)
	membershipRepo := new(MockMembershipRepository)
	blacklist := new(MockTokenBlacklist)

	user := createTestUser()

	userRepo.On("FindByID", ctx, user.ID).Return(user, nil)

	authService := createAuthService(userRepo, orgRepo, membershipRepo, blacklist)

	err := authService.ChangePassword(ctx, ChangePasswordInput{
		UserID:      user.ID,
		OldPassword: "wrongpassword",
		NewPassword: "NewPassword456",
	})

	require.Error(t, err)
	userRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAuthService_Logout_RevokesAccessToken(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	orgRepo := new(MockOrganizationRepository)
	membershipRepo := new(MockMembershipRepository)
	blacklist := new(MockTokenBlacklist)

	blacklist.On("Revoke", ctx, "some-jti", mock.AnythingOfType("time.Duration")).Return(nil)

	authService := createAuthService(userRepo, orgRepo, membershipRepo, blacklist)

	err := authService.Logout(ctx, LogoutInput{
		UserID:          uuid.New(),
		AccessTokenJTI:  "some-jti",
		AccessExpiresAt: time.Now().Add(10 * time.Minute),
	})

	require.NoError(t, err)
	blacklist.AssertExpectations(t)
}
