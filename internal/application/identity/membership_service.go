package identity

import (
	"context"

	"github.com/google/uuid"

	appaudit "github.com/shelterhq/backend/internal/application/audit"
	"github.com/shelterhq/backend/internal/domain/audit"
	"github.com/shelterhq/backend/internal/domain/identity"
	"github.com/shelterhq/backend/internal/domain/shared"
)

// MembershipService handles membership management. Role is always derived
// from the stored membership row; tokens merely cache it until refresh.
type MembershipService struct {
	uow            shared.UnitOfWork
	membershipRepo identity.MembershipRepository
	userRepo       identity.UserRepository
	recorder       *appaudit.Recorder
}

// NewMembershipService creates a new membership service
func NewMembershipService(
	uow shared.UnitOfWork,
	membershipRepo identity.MembershipRepository,
	userRepo identity.UserRepository,
	recorder *appaudit.Recorder,
) *MembershipService {
	return &MembershipService{
		uow:            uow,
		membershipRepo: membershipRepo,
		userRepo:       userRepo,
		recorder:       recorder,
	}
}

// Grant gives an existing user a role within the organization
func (s *MembershipService) Grant(ctx context.Context, organizationID, actorID uuid.UUID, req GrantMembershipRequest) (*MembershipResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, shared.NewDomainError("USER_NOT_FOUND", "No user with this email")
	}

	if _, err := s.membershipRepo.FindByUserAndOrg(ctx, user.ID, organizationID); err == nil {
		return nil, shared.ErrAlreadyExists
	}

	membership, err := identity.NewMembership(user.ID, organizationID, identity.Role(req.Role))
	if err != nil {
		return nil, err
	}

	err = s.uow.Execute(ctx, func(ctx context.Context) error {
		if err := s.membershipRepo.Save(ctx, membership); err != nil {
			return err
		}
		return s.recorder.Created(ctx, organizationID, &actorID, identity.AggregateTypeMembership, membership.ID, membershipSnapshot(membership))
	})
	if err != nil {
		return nil, err
	}

	resp := ToMembershipResponse(membership)
	resp.Email = user.Email
	resp.DisplayName = user.DisplayName
	return &resp, nil
}

// ChangeRole updates a member's role within the organization
func (s *MembershipService) ChangeRole(ctx context.Context, organizationID, actorID, userID uuid.UUID, req ChangeRoleRequest) (*MembershipResponse, error) {
	var resp MembershipResponse

	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		membership, err := s.membershipRepo.FindByUserAndOrg(ctx, userID, organizationID)
		if err != nil {
			return err
		}

		before := membershipSnapshot(membership)

		if err := membership.ChangeRole(identity.Role(req.Role)); err != nil {
			return err
		}

		if err := s.membershipRepo.Save(ctx, membership); err != nil {
			return err
		}
		if err := s.recorder.Updated(ctx, organizationID, &actorID, identity.AggregateTypeMembership, membership.ID, before, membershipSnapshot(membership)); err != nil {
			return err
		}

		resp = ToMembershipResponse(membership)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &resp, nil
}

// Revoke removes a member's access to the organization
func (s *MembershipService) Revoke(ctx context.Context, organizationID, actorID, userID uuid.UUID) error {
	return s.uow.Execute(ctx, func(ctx context.Context) error {
		membership, err := s.membershipRepo.FindByUserAndOrg(ctx, userID, organizationID)
		if err != nil {
			return err
		}

		if err := s.membershipRepo.Delete(ctx, membership.ID); err != nil {
			return err
		}

		return s.recorder.Deleted(ctx, organizationID, &actorID, identity.AggregateTypeMembership, membership.ID, membershipSnapshot(membership))
	})
}

// List returns the members of an organization
func (s *MembershipService) List(ctx context.Context, organizationID uuid.UUID, filter shared.Filter) ([]MembershipResponse, error) {
	memberships, err := s.membershipRepo.FindByOrg(ctx, organizationID, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]MembershipResponse, len(memberships))
	for i := range memberships {
		responses[i] = ToMembershipResponse(&memberships[i])
		if user, err := s.userRepo.FindByID(ctx, memberships[i].UserID); err == nil {
			responses[i].Email = user.Email
			responses[i].DisplayName = user.DisplayName
		}
	}

	return responses, nil
}

// Authorize checks that the user's stored membership in the organization
// meets the required role. Missing membership and insufficient rank both
// fail closed.
func (s *MembershipService) Authorize(ctx context.Context, userID, organizationID uuid.UUID, required identity.Role) (*identity.Membership, error) {
	membership, err := s.membershipRepo.FindByUserAndOrg(ctx, userID, organizationID)
	if err != nil {
		return nil, shared.ErrNotAMember
	}

	if err := membership.Authorize(required); err != nil {
		return nil, err
	}

	return membership, nil
}

func membershipSnapshot(m *identity.Membership) audit.Snapshot {
	return audit.Snapshot{
		"user_id": m.UserID.String(),
		"role":    m.Role.String(),
	}
}
