package adoption

import (
	"context"
	"time"

	"github.com/google/uuid"

	auditapp "github.com/shelterhq/backend/internal/application/audit"
	"github.com/shelterhq/backend/internal/domain/adoption"
	"github.com/shelterhq/backend/internal/domain/animal"
	"github.com/shelterhq/backend/internal/domain/audit"
	"github.com/shelterhq/backend/internal/domain/shared"
	"github.com/shelterhq/backend/internal/domain/shared/valueobject"
)

// FinalizationService executes the composite transitions that close the
// pipeline: finalizing adoptions and opening/closing foster placements.
// Each operation is a single atomic unit: animal transition, dependent
// record and audit entries commit or roll back together.
type FinalizationService struct {
	uow          shared.UnitOfWork
	appRepo      adoption.ApplicationRepository
	fosterRepo   adoption.FosterAssignmentRepository
	adoptionRepo adoption.AdoptionRepository
	animalRepo   animal.Repository
	outcomeRepo  animal.OutcomeRepository
	recorder     *auditapp.Recorder
}

// NewFinalizationService creates a new FinalizationService
func NewFinalizationService(
	uow shared.UnitOfWork,
	appRepo adoption.ApplicationRepository,
	fosterRepo adoption.FosterAssignmentRepository,
	adoptionRepo adoption.AdoptionRepository,
	animalRepo animal.Repository,
	outcomeRepo animal.OutcomeRepository,
	recorder *auditapp.Recorder,
) *FinalizationService {
	return &FinalizationService{
		uow:          uow,
		appRepo:      appRepo,
		fosterRepo:   fosterRepo,
		adoptionRepo: adoptionRepo,
		animalRepo:   animalRepo,
		outcomeRepo:  outcomeRepo,
		recorder:     recorder,
	}
}

// FinalizeAdoption completes an approved adoption application: the Adoption
// record is created, the animal transitions to adopted, the adoption
// Outcome is written, and any active foster placement closes, all in one
// unit. Requires an approved application of kind adoption.
func (s *FinalizationService) FinalizeAdoption(ctx context.Context, organizationID, actorID uuid.UUID, req FinalizeAdoptionRequest) (*AdoptionResponse, error) {
	date := req.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}

	var result *adoption.Adoption
	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		app, err := s.appRepo.FindByIDForOrg(ctx, organizationID, req.ApplicationID)
		if err != nil {
			return err
		}
		if !app.IsApproved() || app.Kind != adoption.ApplicationKindAdoption {
			return shared.ErrApplicationNotApproved
		}

		a, err := s.animalRepo.FindByIDForOrg(ctx, organizationID, app.AnimalID)
		if err != nil {
			return err
		}

		animalBefore := s.statusSnapshot(a)
		wasFostered := a.IsFostered()
		if err := a.TransitionTo(animal.StatusAdopted); err != nil {
			return err
		}

		if wasFostered {
			if err := s.closeActiveFoster(ctx, organizationID, actorID, a.ID, date); err != nil {
				return err
			}
		}

		adopted, err := adoption.NewAdoption(organizationID, a.ID, app.PersonID, app.ID, date,
			valueobject.NewMoneyUSD(req.FeeCents), valueobject.NewMoneyUSD(req.DonationCents))
		if err != nil {
			return err
		}
		if req.ContractRef != "" || req.PaymentRef != "" {
			if err := adopted.SetReferences(req.ContractRef, req.PaymentRef); err != nil {
				return err
			}
		}

		outcome, err := animal.NewOutcome(organizationID, a.ID, animal.OutcomeTypeAdoption, date)
		if err != nil {
			return err
		}

		if err := s.animalRepo.SaveWithLock(ctx, a); err != nil {
			return err
		}
		if err := s.adoptionRepo.Save(ctx, adopted); err != nil {
			return err
		}
		if err := s.outcomeRepo.Save(ctx, outcome); err != nil {
			return err
		}

		if err := s.recorder.Transitioned(ctx, organizationID, &actorID, animal.AggregateTypeAnimal, a.ID, animalBefore, s.statusSnapshot(a)); err != nil {
			return err
		}
		if err := s.recorder.Created(ctx, organizationID, &actorID, adoption.AggregateTypeAdoption, adopted.ID, audit.Snapshot{
			"animal_id":      adopted.AnimalID.String(),
			"adopter_id":     adopted.AdopterID.String(),
			"application_id": adopted.ApplicationID.String(),
			"fee_cents":      adopted.Fee.Cents(),
			"donation_cents": adopted.Donation.Cents(),
		}); err != nil {
			return err
		}
		if err := s.recorder.Created(ctx, organizationID, &actorID, animal.AggregateTypeOutcome, outcome.ID, audit.Snapshot{
			"animal_id": outcome.AnimalID.String(),
			"type":      string(outcome.Type),
		}); err != nil {
			return err
		}

		result = adopted
		return nil
	})
	if err != nil {
		return nil, err
	}

	response := ToAdoptionResponse(result)
	return &response, nil
}

// PlaceFoster opens a foster placement from an approved foster application
// and transitions the animal to fostered. An animal holds at most one
// active placement; a second placement attempt fails whole.
func (s *FinalizationService) PlaceFoster(ctx context.Context, organizationID, actorID uuid.UUID, req PlaceFosterRequest) (*FosterResponse, error) {
	startDate := req.StartDate
	if startDate.IsZero() {
		startDate = time.Now().UTC()
	}

	var result *adoption.FosterAssignment
	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		app, err := s.appRepo.FindByIDForOrg(ctx, organizationID, req.ApplicationID)
		if err != nil {
			return err
		}
		if !app.IsApproved() || app.Kind != adoption.ApplicationKindFoster {
			return shared.ErrApplicationNotApproved
		}

		active, err := s.fosterRepo.ExistsActiveForAnimal(ctx, organizationID, app.AnimalID)
		if err != nil {
			return err
		}
		if active {
			return shared.ErrAnimalAlreadyFostered
		}

		a, err := s.animalRepo.FindByIDForOrg(ctx, organizationID, app.AnimalID)
		if err != nil {
			return err
		}

		animalBefore := s.statusSnapshot(a)
		if err := a.TransitionTo(animal.StatusFostered); err != nil {
			return err
		}

		assignment, err := adoption.NewFosterAssignment(organizationID, a.ID, app.PersonID, startDate)
		if err != nil {
			return err
		}
		if req.Notes != "" {
			assignment.Notes = req.Notes
		}

		if err := s.animalRepo.SaveWithLock(ctx, a); err != nil {
			return err
		}
		if err := s.fosterRepo.Save(ctx, assignment); err != nil {
			return err
		}

		if err := s.recorder.Transitioned(ctx, organizationID, &actorID, animal.AggregateTypeAnimal, a.ID, animalBefore, s.statusSnapshot(a)); err != nil {
			return err
		}
		if err := s.recorder.Created(ctx, organizationID, &actorID, adoption.AggregateTypeFosterAssignment, assignment.ID, fosterSnapshot(assignment)); err != nil {
			return err
		}

		result = assignment
		return nil
	})
	if err != nil {
		return nil, err
	}

	response := ToFosterResponse(result)
	return &response, nil
}

// CompleteFoster closes a placement as successful and returns the animal to
// the shelter, to hold when requested and available otherwise
func (s *FinalizationService) CompleteFoster(ctx context.Context, organizationID, actorID, assignmentID uuid.UUID, req CloseFosterRequest) (*FosterResponse, error) {
	return s.closeAssignment(ctx, organizationID, actorID, assignmentID, req, func(f *adoption.FosterAssignment, endDate time.Time) error {
		return f.Complete(endDate)
	})
}

// FailFoster closes a placement as unsuccessful and returns the animal to
// the shelter
func (s *FinalizationService) FailFoster(ctx context.Context, organizationID, actorID, assignmentID uuid.UUID, req CloseFosterRequest) (*FosterResponse, error) {
	return s.closeAssignment(ctx, organizationID, actorID, assignmentID, req, func(f *adoption.FosterAssignment, endDate time.Time) error {
		return f.Fail(endDate)
	})
}

// GetAdoption retrieves the adoption record of an animal
func (s *FinalizationService) GetAdoption(ctx context.Context, organizationID, animalID uuid.UUID) (*AdoptionResponse, error) {
	adopted, err := s.adoptionRepo.FindByAnimal(ctx, organizationID, animalID)
	if err != nil {
		return nil, err
	}
	response := ToAdoptionResponse(adopted)
	return &response, nil
}

// ListFosterHistory retrieves the placement history of an animal
func (s *FinalizationService) ListFosterHistory(ctx context.Context, organizationID, animalID uuid.UUID) ([]FosterResponse, error) {
	assignments, err := s.fosterRepo.FindByAnimal(ctx, organizationID, animalID)
	if err != nil {
		return nil, err
	}
	return ToFosterResponses(assignments), nil
}

func (s *FinalizationService) closeAssignment(ctx context.Context, organizationID, actorID, assignmentID uuid.UUID, req CloseFosterRequest, close func(*adoption.FosterAssignment, time.Time) error) (*FosterResponse, error) {
	endDate := req.EndDate
	if endDate.IsZero() {
		endDate = time.Now().UTC()
	}

	var result *adoption.FosterAssignment
	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		assignment, err := s.fosterRepo.FindByIDForOrg(ctx, organizationID, assignmentID)
		if err != nil {
			return err
		}

		before := fosterSnapshot(assignment)
		if err := close(assignment, endDate); err != nil {
			return err
		}
		if err := s.fosterRepo.SaveWithLock(ctx, assignment); err != nil {
			return err
		}

		a, err := s.animalRepo.FindByIDForOrg(ctx, organizationID, assignment.AnimalID)
		if err != nil {
			return err
		}
		if a.IsFostered() {
			animalBefore := s.statusSnapshot(a)
			target := animal.StatusAvailable
			if req.MedicalHold {
				target = animal.StatusHold
			}
			if err := a.TransitionTo(target); err != nil {
				return err
			}
			if err := s.animalRepo.SaveWithLock(ctx, a); err != nil {
				return err
			}
			if err := s.recorder.Transitioned(ctx, organizationID, &actorID, animal.AggregateTypeAnimal, a.ID, animalBefore, s.statusSnapshot(a)); err != nil {
				return err
			}
		}

		if err := s.recorder.Transitioned(ctx, organizationID, &actorID, adoption.AggregateTypeFosterAssignment, assignment.ID, before, fosterSnapshot(assignment)); err != nil {
			return err
		}

		result = assignment
		return nil
	})
	if err != nil {
		return nil, err
	}

	response := ToFosterResponse(result)
	return &response, nil
}

// closeActiveFoster completes the active placement when an adoption is
// finalized straight out of foster care (a foster-to-adopt flow)
func (s *FinalizationService) closeActiveFoster(ctx context.Context, organizationID, actorID, animalID uuid.UUID, endDate time.Time) error {
	assignment, err := s.fosterRepo.FindActiveByAnimal(ctx, organizationID, animalID)
	if err != nil {
		return err
	}

	before := fosterSnapshot(assignment)
	if err := assignment.Complete(endDate); err != nil {
		return err
	}
	if err := s.fosterRepo.SaveWithLock(ctx, assignment); err != nil {
		return err
	}

	return s.recorder.Transitioned(ctx, organizationID, &actorID, adoption.AggregateTypeFosterAssignment, assignment.ID, before, fosterSnapshot(assignment))
}

func (s *FinalizationService) statusSnapshot(a *animal.Animal) audit.Snapshot {
	return audit.Snapshot{
		"name":   a.Name,
		"status": string(a.Status),
	}
}

func fosterSnapshot(f *adoption.FosterAssignment) audit.Snapshot {
	snapshot := audit.Snapshot{
		"animal_id": f.AnimalID.String(),
		"person_id": f.PersonID.String(),
		"status":    string(f.Status),
	}
	if f.EndDate != nil {
		snapshot["end_date"] = f.EndDate.Format(time.RFC3339)
	}
	return snapshot
}
