package adoption

import (
	"context"

	"github.com/google/uuid"

	auditapp "github.com/shelterhq/backend/internal/application/audit"
	"github.com/shelterhq/backend/internal/domain/adoption"
	"github.com/shelterhq/backend/internal/domain/animal"
	"github.com/shelterhq/backend/internal/domain/audit"
	"github.com/shelterhq/backend/internal/domain/person"
	"github.com/shelterhq/backend/internal/domain/shared"
)

// ApplicationService drives the adoption/foster application pipeline
type ApplicationService struct {
	uow        shared.UnitOfWork
	appRepo    adoption.ApplicationRepository
	animalRepo animal.Repository
	personRepo person.Repository
	recorder   *auditapp.Recorder
}

// NewApplicationService creates a new ApplicationService
func NewApplicationService(
	uow shared.UnitOfWork,
	appRepo adoption.ApplicationRepository,
	animalRepo animal.Repository,
	personRepo person.Repository,
	recorder *auditapp.Recorder,
) *ApplicationService {
	return &ApplicationService{
		uow:        uow,
		appRepo:    appRepo,
		animalRepo: animalRepo,
		personRepo: personRepo,
		recorder:   recorder,
	}
}

// Submit enters a new application into the pipeline. Both the animal and
// the person must resolve within the caller's organization.
func (s *ApplicationService) Submit(ctx context.Context, organizationID, actorID uuid.UUID, req SubmitApplicationRequest) (*ApplicationResponse, error) {
	var result *adoption.Application
	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		a, err := s.animalRepo.FindByIDForOrg(ctx, organizationID, req.AnimalID)
		if err != nil {
			return err
		}
		if a.IsTerminal() {
			return shared.ErrAlreadyTerminal
		}

		applicant, err := s.personRepo.FindByIDForOrg(ctx, organizationID, req.PersonID)
		if err != nil {
			return err
		}
		if req.Kind == adoption.ApplicationKindAdoption && applicant.IsDoNotAdopt() {
			return shared.NewDomainError("APPLICANT_FLAGGED", "Applicant is flagged do-not-adopt")
		}

		app, err := adoption.NewApplication(organizationID, req.AnimalID, req.PersonID, req.Kind, req.Form)
		if err != nil {
			return err
		}

		if err := s.appRepo.Save(ctx, app); err != nil {
			return err
		}
		if err := s.recorder.Created(ctx, organizationID, &actorID, adoption.AggregateTypeApplication, app.ID, applicationSnapshot(app)); err != nil {
			return err
		}

		result = app
		return nil
	})
	if err != nil {
		return nil, err
	}

	response := ToApplicationResponse(result)
	return &response, nil
}

// GetByID retrieves an application within the caller's organization
func (s *ApplicationService) GetByID(ctx context.Context, organizationID, applicationID uuid.UUID) (*ApplicationResponse, error) {
	app, err := s.appRepo.FindByIDForOrg(ctx, organizationID, applicationID)
	if err != nil {
		return nil, err
	}
	response := ToApplicationResponse(app)
	return &response, nil
}

// List retrieves applications with filtering, for the pipeline board
func (s *ApplicationService) List(ctx context.Context, organizationID uuid.UUID, filter ApplicationListFilter) ([]ApplicationResponse, int64, error) {
	domainFilter := filter.toDomainFilter()

	apps, err := s.appRepo.FindAllForOrg(ctx, organizationID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.appRepo.CountForOrg(ctx, organizationID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToApplicationResponses(apps), total, nil
}

// MoveToReview starts the review of a received application
func (s *ApplicationService) MoveToReview(ctx context.Context, organizationID, actorID, applicationID uuid.UUID) (*ApplicationResponse, error) {
	return s.transition(ctx, organizationID, actorID, applicationID, func(a *adoption.Application) error {
		return a.MoveToReview()
	})
}

// Approve approves an application under review. Approval does not finalize:
// the adoption or foster placement is a separate explicit operation.
func (s *ApplicationService) Approve(ctx context.Context, organizationID, actorID, applicationID uuid.UUID, req DecisionRequest) (*ApplicationResponse, error) {
	return s.transition(ctx, organizationID, actorID, applicationID, func(a *adoption.Application) error {
		return a.Approve(actorID, req.Notes)
	})
}

// Deny denies an application under review
func (s *ApplicationService) Deny(ctx context.Context, organizationID, actorID, applicationID uuid.UUID, req DecisionRequest) (*ApplicationResponse, error) {
	return s.transition(ctx, organizationID, actorID, applicationID, func(a *adoption.Application) error {
		return a.Deny(actorID, req.Notes)
	})
}

// Withdraw is the applicant-initiated exit from the pipeline
func (s *ApplicationService) Withdraw(ctx context.Context, organizationID, actorID, applicationID uuid.UUID) (*ApplicationResponse, error) {
	return s.transition(ctx, organizationID, actorID, applicationID, func(a *adoption.Application) error {
		return a.Withdraw()
	})
}

func (s *ApplicationService) transition(ctx context.Context, organizationID, actorID, applicationID uuid.UUID, apply func(*adoption.Application) error) (*ApplicationResponse, error) {
	var result *adoption.Application
	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		app, err := s.appRepo.FindByIDForOrg(ctx, organizationID, applicationID)
		if err != nil {
			return err
		}

		before := applicationSnapshot(app)
		if err := apply(app); err != nil {
			return err
		}
		if err := s.appRepo.SaveWithLock(ctx, app); err != nil {
			return err
		}
		if err := s.recorder.Transitioned(ctx, organizationID, &actorID, adoption.AggregateTypeApplication, app.ID, before, applicationSnapshot(app)); err != nil {
			return err
		}

		result = app
		return nil
	})
	if err != nil {
		return nil, err
	}

	response := ToApplicationResponse(result)
	return &response, nil
}

func applicationSnapshot(a *adoption.Application) audit.Snapshot {
	snapshot := audit.Snapshot{
		"animal_id": a.AnimalID.String(),
		"person_id": a.PersonID.String(),
		"kind":      string(a.Kind),
		"status":    string(a.Status),
	}
	if a.DecidedBy != nil {
		snapshot["decided_by"] = a.DecidedBy.String()
	}
	return snapshot
}
