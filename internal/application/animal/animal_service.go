package animal

import (
	"context"
	"time"

	"github.com/google/uuid"

	auditapp "github.com/shelterhq/backend/internal/application/audit"
	"github.com/shelterhq/backend/internal/domain/adoption"
	"github.com/shelterhq/backend/internal/domain/animal"
	"github.com/shelterhq/backend/internal/domain/audit"
	"github.com/shelterhq/backend/internal/domain/shared"
)

// AnimalService handles animal lifecycle operations
type AnimalService struct {
	uow         shared.UnitOfWork
	animalRepo  animal.Repository
	intakeRepo  animal.IntakeRepository
	outcomeRepo animal.OutcomeRepository
	fosterRepo  adoption.FosterAssignmentRepository
	recorder    *auditapp.Recorder
}

// NewAnimalService creates a new AnimalService
func NewAnimalService(
	uow shared.UnitOfWork,
	animalRepo animal.Repository,
	intakeRepo animal.IntakeRepository,
	outcomeRepo animal.OutcomeRepository,
	fosterRepo adoption.FosterAssignmentRepository,
	recorder *auditapp.Recorder,
) *AnimalService {
	return &AnimalService{
		uow:         uow,
		animalRepo:  animalRepo,
		intakeRepo:  intakeRepo,
		outcomeRepo: outcomeRepo,
		fosterRepo:  fosterRepo,
		recorder:    recorder,
	}
}

// Intake registers an animal entering shelter care. The animal, its intake
// record and the audit entries commit as one unit.
func (s *AnimalService) Intake(ctx context.Context, organizationID, actorID uuid.UUID, req IntakeRequest) (*AnimalResponse, error) {
	a, err := animal.NewAnimal(organizationID, req.Name, req.Species, req.IntakeDate, req.MedicalHold)
	if err != nil {
		return nil, err
	}
	if req.Breed != "" {
		a.Breed = req.Breed
	}
	if req.Microchip != "" {
		if err := a.SetMicrochip(req.Microchip); err != nil {
			return nil, err
		}
	}
	if req.Attributes != nil {
		if err := a.UpdateAttributes(req.Attributes); err != nil {
			return nil, err
		}
	}

	intake, err := animal.NewIntake(organizationID, a.ID, req.Kind, req.IntakeDate, req.MedicalHold)
	if err != nil {
		return nil, err
	}
	if req.Source != "" || req.Notes != "" {
		if err := intake.SetSource(req.Source, req.Notes); err != nil {
			return nil, err
		}
	}

	err = s.uow.Execute(ctx, func(ctx context.Context) error {
		if err := s.animalRepo.Save(ctx, a); err != nil {
			return err
		}
		if err := s.intakeRepo.Save(ctx, intake); err != nil {
			return err
		}
		if err := s.recorder.Created(ctx, organizationID, &actorID, animal.AggregateTypeAnimal, a.ID, animalSnapshot(a)); err != nil {
			return err
		}
		return s.recorder.Created(ctx, organizationID, &actorID, animal.AggregateTypeIntake, intake.ID, audit.Snapshot{
			"animal_id": intake.AnimalID.String(),
			"kind":      string(intake.Kind),
			"date":      intake.Date.Format(time.RFC3339),
		})
	})
	if err != nil {
		return nil, err
	}

	response := ToAnimalResponse(a)
	return &response, nil
}

// GetByID retrieves an animal by ID within the caller's organization
func (s *AnimalService) GetByID(ctx context.Context, organizationID, animalID uuid.UUID) (*AnimalResponse, error) {
	a, err := s.animalRepo.FindByIDForOrg(ctx, organizationID, animalID)
	if err != nil {
		return nil, err
	}
	response := ToAnimalResponse(a)
	return &response, nil
}

// List retrieves animals with filtering and pagination
func (s *AnimalService) List(ctx context.Context, organizationID uuid.UUID, filter AnimalListFilter) ([]AnimalResponse, int64, error) {
	domainFilter := filter.toDomainFilter()

	animals, err := s.animalRepo.FindAllForOrg(ctx, organizationID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.animalRepo.CountForOrg(ctx, organizationID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToAnimalResponses(animals), total, nil
}

// ChangeStatus moves the animal along the lifecycle state machine. A
// terminal status creates the matching Outcome in the same unit; leaving
// fostered closes the active placement. Entering fostered is reserved for
// foster placement, which carries the person the animal is placed with.
func (s *AnimalService) ChangeStatus(ctx context.Context, organizationID, actorID, animalID uuid.UUID, req ChangeStatusRequest) (*AnimalResponse, error) {
	if req.Status == animal.StatusFostered {
		return nil, shared.NewDomainError("INVALID_TRANSITION", "Fostered status requires a foster placement")
	}

	var result *animal.Animal
	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		a, err := s.animalRepo.FindByIDForOrg(ctx, organizationID, animalID)
		if err != nil {
			return err
		}

		before := animalSnapshot(a)
		wasFostered := a.IsFostered()

		if err := a.TransitionTo(req.Status); err != nil {
			return err
		}

		date := req.Date
		if date.IsZero() {
			date = time.Now().UTC()
		}

		if wasFostered {
			if err := s.closeActiveFoster(ctx, organizationID, actorID, animalID, date); err != nil {
				return err
			}
		}

		if req.Status.IsTerminal() {
			if err := s.recordOutcome(ctx, organizationID, actorID, a, date, req.Notes); err != nil {
				return err
			}
		}

		if err := s.animalRepo.SaveWithLock(ctx, a); err != nil {
			return err
		}
		if err := s.recorder.Transitioned(ctx, organizationID, &actorID, animal.AggregateTypeAnimal, a.ID, before, animalSnapshot(a)); err != nil {
			return err
		}

		result = a
		return nil
	})
	if err != nil {
		return nil, err
	}

	response := ToAnimalResponse(result)
	return &response, nil
}

// UpdateAttributes replaces the animal's open attribute map
func (s *AnimalService) UpdateAttributes(ctx context.Context, organizationID, actorID, animalID uuid.UUID, req UpdateAttributesRequest) (*AnimalResponse, error) {
	var result *animal.Animal
	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		a, err := s.animalRepo.FindByIDForOrg(ctx, organizationID, animalID)
		if err != nil {
			return err
		}

		before := animalSnapshot(a)
		if err := a.UpdateAttributes(req.Attributes); err != nil {
			return err
		}
		if err := s.animalRepo.SaveWithLock(ctx, a); err != nil {
			return err
		}
		if err := s.recorder.Updated(ctx, organizationID, &actorID, animal.AggregateTypeAnimal, a.ID, before, animalSnapshot(a)); err != nil {
			return err
		}

		result = a
		return nil
	})
	if err != nil {
		return nil, err
	}

	response := ToAnimalResponse(result)
	return &response, nil
}

// SetLocation assigns the animal to a location and optional kennel
func (s *AnimalService) SetLocation(ctx context.Context, organizationID, actorID, animalID uuid.UUID, req SetLocationRequest) (*AnimalResponse, error) {
	var result *animal.Animal
	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		a, err := s.animalRepo.FindByIDForOrg(ctx, organizationID, animalID)
		if err != nil {
			return err
		}

		before := animalSnapshot(a)
		a.SetLocation(req.LocationID, req.KennelID)

		if err := s.animalRepo.SaveWithLock(ctx, a); err != nil {
			return err
		}
		if err := s.recorder.Updated(ctx, organizationID, &actorID, animal.AggregateTypeAnimal, a.ID, before, animalSnapshot(a)); err != nil {
			return err
		}

		result = a
		return nil
	})
	if err != nil {
		return nil, err
	}

	response := ToAnimalResponse(result)
	return &response, nil
}

// GetOutcome retrieves the outcome of a terminal animal
func (s *AnimalService) GetOutcome(ctx context.Context, organizationID, animalID uuid.UUID) (*OutcomeResponse, error) {
	outcome, err := s.outcomeRepo.FindByAnimal(ctx, organizationID, animalID)
	if err != nil {
		return nil, err
	}
	response := ToOutcomeResponse(outcome)
	return &response, nil
}

// recordOutcome creates the single Outcome accompanying a terminal
// transition. A pre-existing outcome means the terminal invariant was
// already satisfied by a racing caller.
func (s *AnimalService) recordOutcome(ctx context.Context, organizationID, actorID uuid.UUID, a *animal.Animal, date time.Time, notes string) error {
	exists, err := s.outcomeRepo.ExistsForAnimal(ctx, organizationID, a.ID)
	if err != nil {
		return err
	}
	if exists {
		return shared.ErrAlreadyTerminal
	}

	outcomeType, err := animal.OutcomeForStatus(a.Status)
	if err != nil {
		return err
	}

	outcome, err := animal.NewOutcome(organizationID, a.ID, outcomeType, date)
	if err != nil {
		return err
	}
	outcome.Notes = notes

	if err := s.outcomeRepo.Save(ctx, outcome); err != nil {
		return err
	}

	return s.recorder.Created(ctx, organizationID, &actorID, animal.AggregateTypeOutcome, outcome.ID, audit.Snapshot{
		"animal_id": outcome.AnimalID.String(),
		"type":      string(outcome.Type),
		"date":      outcome.Date.Format(time.RFC3339),
	})
}

func (s *AnimalService) closeActiveFoster(ctx context.Context, organizationID, actorID, animalID uuid.UUID, endDate time.Time) error {
	assignment, err := s.fosterRepo.FindActiveByAnimal(ctx, organizationID, animalID)
	if err != nil {
		return err
	}

	before := audit.Snapshot{"status": string(assignment.Status)}
	if err := assignment.Complete(endDate); err != nil {
		return err
	}
	if err := s.fosterRepo.SaveWithLock(ctx, assignment); err != nil {
		return err
	}

	return s.recorder.Transitioned(ctx, organizationID, &actorID, adoption.AggregateTypeFosterAssignment, assignment.ID,
		before, audit.Snapshot{"status": string(assignment.Status)})
}

func animalSnapshot(a *animal.Animal) audit.Snapshot {
	snapshot := audit.Snapshot{
		"name":    a.Name,
		"species": string(a.Species),
		"status":  string(a.Status),
	}
	if a.LocationID != nil {
		snapshot["location_id"] = a.LocationID.String()
	}
	if a.KennelID != nil {
		snapshot["kennel_id"] = a.KennelID.String()
	}
	return snapshot
}
