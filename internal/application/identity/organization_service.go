package identity

import (
	"context"

	"github.com/google/uuid"

	appaudit "github.com/shelterhq/backend/internal/application/audit"
	"github.com/shelterhq/backend/internal/domain/audit"
	"github.com/shelterhq/backend/internal/domain/identity"
	"github.com/shelterhq/backend/internal/domain/shared"
)

// OrganizationService handles organization management operations
type OrganizationService struct {
	uow            shared.UnitOfWork
	orgRepo        identity.OrganizationRepository
	membershipRepo identity.MembershipRepository
	recorder       *appaudit.Recorder
}

// NewOrganizationService creates a new organization service
func NewOrganizationService(
	uow shared.UnitOfWork,
	orgRepo identity.OrganizationRepository,
	membershipRepo identity.MembershipRepository,
	recorder *appaudit.Recorder,
) *OrganizationService {
	return &OrganizationService{
		uow:            uow,
		orgRepo:        orgRepo,
		membershipRepo: membershipRepo,
		recorder:       recorder,
	}
}

// Create creates an organization and grants the creator the admin role
func (s *OrganizationService) Create(ctx context.Context, actorID uuid.UUID, req CreateOrganizationRequest) (*OrganizationResponse, error) {
	org, err := identity.NewOrganization(req.Name)
	if err != nil {
		return nil, err
	}
	org.Timezone = req.Timezone
	org.Notes = req.Notes

	membership, err := identity.NewMembership(actorID, org.ID, identity.RoleAdmin)
	if err != nil {
		return nil, err
	}

	err = s.uow.Execute(ctx, func(ctx context.Context) error {
		if err := s.orgRepo.Save(ctx, org); err != nil {
			return err
		}
		if err := s.membershipRepo.Save(ctx, membership); err != nil {
			return err
		}
		return s.recorder.Created(ctx, org.ID, &actorID, identity.AggregateTypeOrganization, org.ID, organizationSnapshot(org))
	})
	if err != nil {
		return nil, err
	}

	resp := ToOrganizationResponse(org)
	return &resp, nil
}

// GetByID retrieves an organization the caller is a member of
func (s *OrganizationService) GetByID(ctx context.Context, id uuid.UUID) (*OrganizationResponse, error) {
	org, err := s.orgRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := ToOrganizationResponse(org)
	return &resp, nil
}

// Update applies partial updates to an organization
func (s *OrganizationService) Update(ctx context.Context, organizationID, actorID uuid.UUID, req UpdateOrganizationRequest) (*OrganizationResponse, error) {
	var resp OrganizationResponse

	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		org, err := s.orgRepo.FindByID(ctx, organizationID)
		if err != nil {
			return err
		}

		before := organizationSnapshot(org)

		if req.Name != nil {
			if err := org.Rename(*req.Name); err != nil {
				return err
			}
		}
		if req.Timezone != nil {
			org.Timezone = *req.Timezone
		}
		if req.Notes != nil {
			org.Notes = *req.Notes
		}

		if err := s.orgRepo.Save(ctx, org); err != nil {
			return err
		}
		if err := s.recorder.Updated(ctx, org.ID, &actorID, identity.AggregateTypeOrganization, org.ID, before, organizationSnapshot(org)); err != nil {
			return err
		}

		resp = ToOrganizationResponse(org)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &resp, nil
}

// Delete removes an organization. Persistence cascades the delete to every
// entity owned by the organization.
func (s *OrganizationService) Delete(ctx context.Context, organizationID, actorID uuid.UUID) error {
	return s.uow.Execute(ctx, func(ctx context.Context) error {
		org, err := s.orgRepo.FindByID(ctx, organizationID)
		if err != nil {
			return err
		}

		if err := s.orgRepo.Delete(ctx, organizationID); err != nil {
			return err
		}

		return s.recorder.Deleted(ctx, organizationID, &actorID, identity.AggregateTypeOrganization, organizationID, organizationSnapshot(org))
	})
}

func organizationSnapshot(o *identity.Organization) audit.Snapshot {
	return audit.Snapshot{
		"name":     o.Name,
		"status":   string(o.Status),
		"timezone": o.Timezone,
	}
}
