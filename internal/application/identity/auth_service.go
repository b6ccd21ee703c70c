package identity

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shelterhq/backend/internal/domain/identity"
	"github.com/shelterhq/backend/internal/domain/shared"
	"github.com/shelterhq/backend/internal/infrastructure/auth"
)

// AuthService handles authentication operations. Every issued token is
// scoped to one organization: the role claim is derived from the stored
// membership at issue time, never from client-supplied state.
type AuthService struct {
	uow            shared.UnitOfWork
	userRepo       identity.UserRepository
	orgRepo        identity.OrganizationRepository
	membershipRepo identity.MembershipRepository
	jwtService     *auth.JWTService
	blacklist      auth.TokenBlacklist
	logger         *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	uow shared.UnitOfWork,
	userRepo identity.UserRepository,
	orgRepo identity.OrganizationRepository,
	membershipRepo identity.MembershipRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		uow:            uow,
		userRepo:       userRepo,
		orgRepo:        orgRepo,
		membershipRepo: membershipRepo,
		jwtService:     jwtService,
		blacklist:      blacklist,
		logger:         logger,
	}
}

// Register bootstraps a new organization together with its first admin
// user. The user, organization and admin membership are created in one
// transaction.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*LoginResult, error) {
	s.logger.Info("Registration attempt", zap.String("email", input.Email))

	exists, err := s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		s.logger.Error("Failed to check email uniqueness", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to check email")
	}
	if exists {
		return nil, shared.NewDomainError("EMAIL_TAKEN", "A user with this email already exists")
	}

	user, err := identity.NewActiveUser(input.Email, input.Password)
	if err != nil {
		return nil, err
	}
	if input.DisplayName != "" {
		if err := user.SetDisplayName(input.DisplayName); err != nil {
			return nil, err
		}
	}

	org, err := identity.NewOrganization(input.OrganizationName)
	if err != nil {
		return nil, err
	}

	membership, err := identity.NewMembership(user.ID, org.ID, identity.RoleAdmin)
	if err != nil {
		return nil, err
	}

	err = s.uow.Execute(ctx, func(ctx context.Context) error {
		if err := s.userRepo.Save(ctx, user); err != nil {
			return err
		}
		if err := s.orgRepo.Save(ctx, org); err != nil {
			return err
		}
		return s.membershipRepo.Save(ctx, membership)
	})
	if err != nil {
		s.logger.Error("Registration failed", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Organization registered",
		zap.String("organization_id", org.ID.String()),
		zap.String("user_id", user.ID.String()))

	return s.issueTokens(ctx, user, membership)
}

// Login authenticates a user and returns tokens scoped to one organization.
// When no organization is given and the user belongs to exactly one, that
// one is used.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	s.logger.Info("Login attempt", zap.String("email", input.Email))

	user, err := s.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		s.logger.Warn("User not found during login", zap.String("email", input.Email))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	if !user.IsActive() {
		s.logger.Warn("Login attempt for inactive account", zap.String("email", input.Email))
		return nil, shared.NewDomainError("ACCOUNT_INACTIVE", "Account is not active")
	}

	if !user.VerifyPassword(input.Password) {
		s.logger.Warn("Invalid password attempt", zap.String("email", input.Email))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	membership, err := s.resolveMembership(ctx, user.ID, input.OrganizationID)
	if err != nil {
		return nil, err
	}

	// Record successful login. A failure here must not fail the login.
	user.RecordLogin(time.Now())
	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Error("Failed to update user after successful login", zap.Error(err))
	}

	s.logger.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("organization_id", membership.OrganizationID.String()))

	return s.issueTokens(ctx, user, membership)
}

// RefreshToken refreshes the access token using a valid refresh token. The
// role claim is re-derived from the stored membership so role changes take
// effect on the next refresh.
func (s *AuthService) RefreshToken(ctx context.Context, input RefreshTokenInput) (*RefreshTokenResult, error) {
	claims, err := s.jwtService.ValidateRefreshToken(input.RefreshToken)
	if err != nil {
		s.logger.Warn("Refresh token validation failed", zap.Error(err))
		return nil, mapTokenError(err)
	}

	revoked, err := s.blacklist.IsRevoked(ctx, claims.ID)
	if err != nil {
		s.logger.Error("Failed to check token blacklist", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to validate refresh token")
	}
	if revoked {
		return nil, shared.NewDomainError("TOKEN_REVOKED", "Refresh token has been revoked")
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, shared.NewDomainError("TOKEN_INVALID", "Invalid user ID in token")
	}
	organizationID, err := uuid.Parse(claims.OrganizationID)
	if err != nil {
		return nil, shared.NewDomainError("TOKEN_INVALID", "Invalid organization ID in token")
	}

	if claims.IssuedAt != nil {
		invalidated, err := s.blacklist.IsUserTokenRevoked(ctx, claims.UserID, claims.IssuedAt.Time)
		if err != nil {
			s.logger.Error("Failed to check user token invalidation", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to validate refresh token")
		}
		if invalidated {
			return nil, shared.NewDomainError("TOKEN_REVOKED", "Refresh token has been revoked")
		}
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		s.logger.Warn("User not found during token refresh", zap.String("user_id", claims.UserID))
		return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}
	if !user.IsActive() {
		return nil, shared.NewDomainError("ACCOUNT_INACTIVE", "Account is no longer active")
	}

	membership, err := s.membershipRepo.FindByUserAndOrg(ctx, userID, organizationID)
	if err != nil {
		s.logger.Warn("Membership no longer exists during token refresh",
			zap.String("user_id", claims.UserID),
			zap.String("organization_id", claims.OrganizationID))
		return nil, shared.ErrNotAMember
	}

	tokenPair, err := s.jwtService.RefreshTokenPair(input.RefreshToken, membership.Role.String())
	if err != nil {
		s.logger.Warn("Token refresh failed", zap.Error(err))
		return nil, mapTokenError(err)
	}

	s.logger.Info("Token refreshed", zap.String("user_id", claims.UserID))

	return &RefreshTokenResult{
		AccessToken:           tokenPair.AccessToken,
		RefreshToken:          tokenPair.RefreshToken,
		AccessTokenExpiresAt:  tokenPair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: tokenPair.RefreshTokenExpiresAt,
		TokenType:             tokenPair.TokenType,
	}, nil
}

// Logout revokes the current access token and, when provided, the refresh
// token, so neither can be replayed before its natural expiry.
func (s *AuthService) Logout(ctx context.Context, input LogoutInput) error {
	s.logger.Info("User logout", zap.String("user_id", input.UserID.String()))

	if input.AccessTokenJTI != "" {
		ttl := time.Until(input.AccessExpiresAt)
		if ttl > 0 {
			if err := s.blacklist.Revoke(ctx, input.AccessTokenJTI, ttl); err != nil {
				s.logger.Error("Failed to revoke access token", zap.Error(err))
				return shared.NewDomainError("INTERNAL_ERROR", "Failed to revoke token")
			}
		}
	}

	if input.RefreshToken != "" {
		claims, err := s.jwtService.ValidateRefreshToken(input.RefreshToken)
		if err != nil {
			// An invalid refresh token has nothing to revoke
			return nil
		}
		ttl := time.Until(claims.ExpiresAt.Time)
		if ttl > 0 {
			if err := s.blacklist.Revoke(ctx, claims.ID, ttl); err != nil {
				s.logger.Error("Failed to revoke refresh token", zap.Error(err))
				return shared.NewDomainError("INTERNAL_ERROR", "Failed to revoke token")
			}
		}
	}

	return nil
}

// SwitchOrganization issues a token pair scoped to another organization the
// user belongs to
func (s *AuthService) SwitchOrganization(ctx context.Context, input SwitchOrganizationInput) (*LoginResult, error) {
	user, err := s.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}
	if !user.IsActive() {
		return nil, shared.NewDomainError("ACCOUNT_INACTIVE", "Account is not active")
	}

	membership, err := s.membershipRepo.FindByUserAndOrg(ctx, input.UserID, input.OrganizationID)
	if err != nil {
		return nil, shared.ErrNotAMember
	}

	s.logger.Info("User switched organization",
		zap.String("user_id", input.UserID.String()),
		zap.String("organization_id", input.OrganizationID.String()))

	return s.issueTokens(ctx, user, membership)
}

// GetCurrentUser retrieves the authenticated user's profile within the
// token's organization
func (s *AuthService) GetCurrentUser(ctx context.Context, userID, organizationID uuid.UUID) (*UserInfo, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}

	membership, err := s.membershipRepo.FindByUserAndOrg(ctx, userID, organizationID)
	if err != nil {
		return nil, shared.ErrNotAMember
	}

	return &UserInfo{
		ID:             user.ID,
		Email:          user.Email,
		DisplayName:    user.DisplayName,
		OrganizationID: membership.OrganizationID,
		Role:           membership.Role.String(),
	}, nil
}

// ChangePassword changes a user's password and invalidates every token
// issued before the change
func (s *AuthService) ChangePassword(ctx context.Context, input ChangePasswordInput) error {
	user, err := s.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}

	if err := user.ChangePassword(input.OldPassword, input.NewPassword); err != nil {
		return err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Error("Failed to update user after password change", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to update password")
	}

	// Existing sessions must re-authenticate with the new password
	if err := s.blacklist.RevokeUserTokens(ctx, input.UserID.String(), s.jwtService.RefreshExpiration()); err != nil {
		s.logger.Error("Failed to invalidate user tokens after password change", zap.Error(err))
	}

	s.logger.Info("User password changed", zap.String("user_id", input.UserID.String()))

	return nil
}

// resolveMembership picks the membership to scope tokens to. With an
// explicit organization the user must be a member of it; without one the
// user must belong to exactly one organization.
func (s *AuthService) resolveMembership(ctx context.Context, userID uuid.UUID, organizationID *uuid.UUID) (*identity.Membership, error) {
	if organizationID != nil {
		membership, err := s.membershipRepo.FindByUserAndOrg(ctx, userID, *organizationID)
		if err != nil {
			return nil, shared.ErrNotAMember
		}
		return membership, nil
	}

	memberships, err := s.membershipRepo.FindByUser(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to load user memberships", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load memberships")
	}

	switch len(memberships) {
	case 0:
		return nil, shared.ErrNotAMember
	case 1:
		return &memberships[0], nil
	default:
		return nil, shared.NewDomainError("ORGANIZATION_REQUIRED", "User belongs to multiple organizations; organization_id is required")
	}
}

func (s *AuthService) issueTokens(ctx context.Context, user *identity.User, membership *identity.Membership) (*LoginResult, error) {
	tokenPair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		OrganizationID: membership.OrganizationID,
		UserID:         user.ID,
		Email:          user.Email,
		Role:           membership.Role.String(),
	})
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication tokens")
	}

	return &LoginResult{
		AccessToken:           tokenPair.AccessToken,
		RefreshToken:          tokenPair.RefreshToken,
		AccessTokenExpiresAt:  tokenPair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: tokenPair.RefreshTokenExpiresAt,
		TokenType:             tokenPair.TokenType,
		User: UserInfo{
			ID:             user.ID,
			Email:          user.Email,
			DisplayName:    user.DisplayName,
			OrganizationID: membership.OrganizationID,
			Role:           membership.Role.String(),
		},
	}, nil
}

// mapTokenError maps JWT errors to domain errors
func mapTokenError(err error) error {
	switch err {
	case auth.ErrExpiredToken:
		return shared.NewDomainError("TOKEN_EXPIRED", "Refresh token has expired")
	case auth.ErrInvalidToken:
		return shared.NewDomainError("TOKEN_INVALID", "Invalid refresh token")
	case auth.ErrMaxRefreshExceeded:
		return shared.NewDomainError("TOKEN_MAX_REFRESH", "Maximum token refresh count exceeded. Please log in again")
	default:
		return shared.NewDomainError("TOKEN_ERROR", "Failed to validate refresh token")
	}
}
