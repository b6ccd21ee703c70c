package person

import (
	"context"

	"github.com/google/uuid"

	auditapp "github.com/shelterhq/backend/internal/application/audit"
	"github.com/shelterhq/backend/internal/domain/audit"
	"github.com/shelterhq/backend/internal/domain/person"
	"github.com/shelterhq/backend/internal/domain/shared"
)

// PersonService manages external contacts of the organization
type PersonService struct {
	uow      shared.UnitOfWork
	repo     person.Repository
	recorder *auditapp.Recorder
}

// NewPersonService creates a new PersonService
func NewPersonService(uow shared.UnitOfWork, repo person.Repository, recorder *auditapp.Recorder) *PersonService {
	return &PersonService{uow: uow, repo: repo, recorder: recorder}
}

// Create registers a new contact
func (s *PersonService) Create(ctx context.Context, organizationID, actorID uuid.UUID, req CreatePersonRequest) (*PersonResponse, error) {
	p, err := person.NewPerson(organizationID, req.FirstName, req.LastName, req.Type)
	if err != nil {
		return nil, err
	}
	p.UpdateContact(req.Email, req.Phone, req.Address)
	if req.Flags != nil {
		if err := p.UpdateFlags(req.Flags); err != nil {
			return nil, err
		}
	}

	err = s.uow.Execute(ctx, func(ctx context.Context) error {
		if err := s.repo.Save(ctx, p); err != nil {
			return err
		}
		return s.recorder.Created(ctx, organizationID, &actorID, person.AggregateTypePerson, p.ID, personSnapshot(p))
	})
	if err != nil {
		return nil, err
	}

	response := ToPersonResponse(p)
	return &response, nil
}

// GetByID retrieves a contact within the caller's organization
func (s *PersonService) GetByID(ctx context.Context, organizationID, personID uuid.UUID) (*PersonResponse, error) {
	p, err := s.repo.FindByIDForOrg(ctx, organizationID, personID)
	if err != nil {
		return nil, err
	}
	response := ToPersonResponse(p)
	return &response, nil
}

// List retrieves contacts with filtering
func (s *PersonService) List(ctx context.Context, organizationID uuid.UUID, filter PersonListFilter) ([]PersonResponse, int64, error) {
	domainFilter := filter.toDomainFilter()

	people, err := s.repo.FindAllForOrg(ctx, organizationID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.repo.CountForOrg(ctx, organizationID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToPersonResponses(people), total, nil
}

// Update modifies a contact's details, type and flags
func (s *PersonService) Update(ctx context.Context, organizationID, actorID, personID uuid.UUID, req UpdatePersonRequest) (*PersonResponse, error) {
	var result *person.Person
	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		p, err := s.repo.FindByIDForOrg(ctx, organizationID, personID)
		if err != nil {
			return err
		}

		before := personSnapshot(p)
		p.UpdateContact(req.Email, req.Phone, req.Address)
		if req.Type != nil {
			if err := p.ChangeType(*req.Type); err != nil {
				return err
			}
		}
		if req.Flags != nil {
			if err := p.UpdateFlags(req.Flags); err != nil {
				return err
			}
		}
		p.IncrementVersion()

		if err := s.repo.Save(ctx, p); err != nil {
			return err
		}
		if err := s.recorder.Updated(ctx, organizationID, &actorID, person.AggregateTypePerson, p.ID, before, personSnapshot(p)); err != nil {
			return err
		}

		result = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	response := ToPersonResponse(result)
	return &response, nil
}

func personSnapshot(p *person.Person) audit.Snapshot {
	return audit.Snapshot{
		"name":         p.FullName(),
		"type":         string(p.Type),
		"email":        p.Email,
		"do_not_adopt": p.IsDoNotAdopt(),
	}
}
