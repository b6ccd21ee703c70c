package animal

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	auditapp "github.com/shelterhq/backend/internal/application/audit"
	"github.com/shelterhq/backend/internal/domain/adoption"
	"github.com/shelterhq/backend/internal/domain/animal"
	"github.com/shelterhq/backend/internal/domain/audit"
	"github.com/shelterhq/backend/internal/domain/shared"
	"github.com/shelterhq/backend/internal/domain/shared/valueobject"
)

// MockUnitOfWork executes the unit directly without a transaction
type MockUnitOfWork struct{}

func (m *MockUnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// MockAnimalRepository is a mock implementation of animal.Repository
type MockAnimalRepository struct {
	mock.Mock
}

func (m *MockAnimalRepository) FindByIDForOrg(ctx context.Context, organizationID, id uuid.UUID) (*animal.Animal, error) {
	args := m.Called(ctx, organizationID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*animal.Animal), args.Error(1)
}

func (m *MockAnimalRepository) FindAllForOrg(ctx context.Context, organizationID uuid.UUID, filter shared.Filter) ([]animal.Animal, error) {
	args := m.Called(ctx, organizationID, filter)
	return args.Get(0).([]animal.Animal), args.Error(1)
}

func (m *MockAnimalRepository) CountForOrg(ctx context.Context, organizationID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, organizationID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAnimalRepository) CountBySpecies(ctx context.Context, organizationID uuid.UUID) (map[animal.Species]int64, error) {
	args := m.Called(ctx, organizationID)
	return args.Get(0).(map[animal.Species]int64), args.Error(1)
}

func (m *MockAnimalRepository) CountByStatus(ctx context.Context, organizationID uuid.UUID) (map[animal.Status]int64, error) {
	args := m.Called(ctx, organizationID)
	return args.Get(0).(map[animal.Status]int64), args.Error(1)
}

func (m *MockAnimalRepository) Save(ctx context.Context, a *animal.Animal) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAnimalRepository) SaveWithLock(ctx context.Context, a *animal.Animal) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

// MockIntakeRepository is a mock implementation of animal.IntakeRepository
type MockIntakeRepository struct {
	mock.Mock
}

func (m *MockIntakeRepository) FindByAnimal(ctx context.Context, organizationID, animalID uuid.UUID) (*animal.Intake, error) {
	args := m.Called(ctx, organizationID, animalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*animal.Intake), args.Error(1)
}

func (m *MockIntakeRepository) CountByMonth(ctx context.Context, organizationID uuid.UUID, from, to time.Time) (map[time.Time]int64, error) {
	args := m.Called(ctx, organizationID, from, to)
	return args.Get(0).(map[time.Time]int64), args.Error(1)
}

func (m *MockIntakeRepository) Save(ctx context.Context, intake *animal.Intake) error {
	args := m.Called(ctx, intake)
	return args.Error(0)
}

// MockOutcomeRepository is a mock implementation of animal.OutcomeRepository
type MockOutcomeRepository struct {
	mock.Mock
}

func (m *MockOutcomeRepository) FindByAnimal(ctx context.Context, organizationID, animalID uuid.UUID) (*animal.Outcome, error) {
	args := m.Called(ctx, organizationID, animalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*animal.Outcome), args.Error(1)
}

func (m *MockOutcomeRepository) ExistsForAnimal(ctx context.Context, organizationID, animalID uuid.UUID) (bool, error) {
	args := m.Called(ctx, organizationID, animalID)
	return args.Bool(0), args.Error(1)
}

func (m *MockOutcomeRepository) CountByType(ctx context.Context, organizationID uuid.UUID, from, to time.Time) (map[animal.OutcomeType]int64, error) {
	args := m.Called(ctx, organizationID, from, to)
	return args.Get(0).(map[animal.OutcomeType]int64), args.Error(1)
}

func (m *MockOutcomeRepository) Save(ctx context.Context, outcome *animal.Outcome) error {
	args := m.Called(ctx, outcome)
	return args.Error(0)
}

// MockFosterAssignmentRepository is a mock implementation of
// adoption.FosterAssignmentRepository
type MockFosterAssignmentRepository struct {
	mock.Mock
}

func (m *MockFosterAssignmentRepository) FindByIDForOrg(ctx context.Context, organizationID, id uuid.UUID) (*adoption.FosterAssignment, error) {
	args := m.Called(ctx, organizationID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*adoption.FosterAssignment), args.Error(1)
}

func (m *MockFosterAssignmentRepository) FindActiveByAnimal(ctx context.Context, organizationID, animalID uuid.UUID) (*adoption.FosterAssignment, error) {
	args := m.Called(ctx, organizationID, animalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*adoption.FosterAssignment), args.Error(1)
}

func (m *MockFosterAssignmentRepository) ExistsActiveForAnimal(ctx context.Context, organizationID, animalID uuid.UUID) (bool, error) {
	args := m.Called(ctx, organizationID, animalID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFosterAssignmentRepository) FindByAnimal(ctx context.Context, organizationID, animalID uuid.UUID) ([]adoption.FosterAssignment, error) {
	args := m.Called(ctx, organizationID, animalID)
	return args.Get(0).([]adoption.FosterAssignment), args.Error(1)
}

func (m *MockFosterAssignmentRepository) FindActiveByPerson(ctx context.Context, organizationID, personID uuid.UUID) ([]adoption.FosterAssignment, error) {
	args := m.Called(ctx, organizationID, personID)
	return args.Get(0).([]adoption.FosterAssignment), args.Error(1)
}

func (m *MockFosterAssignmentRepository) CountActive(ctx context.Context, organizationID uuid.UUID) (int64, error) {
	args := m.Called(ctx, organizationID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFosterAssignmentRepository) Save(ctx context.Context, f *adoption.FosterAssignment) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

func (m *MockFosterAssignmentRepository) SaveWithLock(ctx context.Context, f *adoption.FosterAssignment) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

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

// Test helper functions
func newTestOrgID() uuid.UUID {
	return uuid.MustParse("11111111-1111-1111-1111-111111111111")
}

func newTestActorID() uuid.UUID {
	return uuid.MustParse("22222222-2222-2222-2222-222222222222")
}

func newTestIntakeDate() time.Time {
	return time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
}

func createTestAnimal(organizationID uuid.UUID) *animal.Animal {
	a, _ := animal.NewAnimal(organizationID, "Biscuit", animal.SpeciesDog, newTestIntakeDate(), false)
	return a
}

type animalServiceMocks struct {
	animalRepo  *MockAnimalRepository
	intakeRepo  *MockIntakeRepository
	outcomeRepo *MockOutcomeRepository
	fosterRepo  *MockFosterAssignmentRepository
	auditRepo   *MockAuditRepository
}

func newTestAnimalService() (*AnimalService, *animalServiceMocks) {
	mocks := &animalServiceMocks{
		animalRepo:  new(MockAnimalRepository),
		intakeRepo:  new(MockIntakeRepository),
		outcomeRepo: new(MockOutcomeRepository),
		fosterRepo:  new(MockFosterAssignmentRepository),
		auditRepo:   new(MockAuditRepository),
	}
	service := NewAnimalService(
		new(MockUnitOfWork),
		mocks.animalRepo,
		mocks.intakeRepo,
		mocks.outcomeRepo,
		mocks.fosterRepo,
		auditapp.NewRecorder(mocks.auditRepo),
	)
	return service, mocks
}

// Tests for AnimalService.Intake
func TestAnimalService_Intake_Success(t *testing.T) {
	service, mocks := newTestAnimalService()

	ctx := context.Background()
	orgID := newTestOrgID()
	actorID := newTestActorID()
	req := IntakeRequest{
		Name:       "Biscuit",
		Species:    animal.SpeciesDog,
		Kind:       animal.IntakeKindStray,
		IntakeDate: newTestIntakeDate(),
	}

	mocks.animalRepo.On("Save", ctx, mock.AnythingOfType("*animal.Animal")).Return(nil)
	mocks.intakeRepo.On("Save", ctx, mock.AnythingOfType("*animal.Intake")).Return(nil)
	mocks.auditRepo.On("Append", ctx, mock.AnythingOfType("*audit.Entry")).Return(nil).Twice()

	result, err := service.Intake(ctx, orgID, actorID, req)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, "Biscuit", result.Name)
	assert.Equal(t, "dog", result.Species)
	assert.Equal(t, string(animal.StatusAvailable), result.Status)
	assert.True(t, result.InCare)
	mocks.animalRepo.AssertExpectations(t)
	mocks.intakeRepo.AssertExpectations(t)
	mocks.auditRepo.AssertExpectations(t)
}

func TestAnimalService_Intake_MedicalHold(t *testing.T) {
	service, mocks := newTestAnimalService()

	ctx := context.Background()
	req := IntakeRequest{
		Name:        "Clover",
		Species:     animal.SpeciesCat,
		Kind:        animal.IntakeKindSeizure,
		IntakeDate:  newTestIntakeDate(),
		MedicalHold: true,
	}

	mocks.animalRepo.On("Save", ctx, mock.AnythingOfType("*animal.Animal")).Return(nil)
	mocks.intakeRepo.On("Save", ctx, mock.AnythingOfType("*animal.Intake")).Return(nil)
	mocks.auditRepo.On("Append", ctx, mock.AnythingOfType("*audit.Entry")).Return(nil).Twice()

	result, err := service.Intake(ctx, newTestOrgID(), newTestActorID(), req)

	assert.NoError(t, err)
	assert.Equal(t, string(animal.StatusHold), result.Status)
	mocks.animalRepo.AssertExpectations(t)
}

func TestAnimalService_Intake_AuditsAnimalAndIntakeEntries(t *testing.T) {
	service, mocks := newTestAnimalService()

	ctx := context.Background()
	orgID := newTestOrgID()
	req := IntakeRequest{
		Name:       "Pepper",
		Species:    animal.SpeciesCat,
		Kind:       animal.IntakeKindOwnerSurrender,
		IntakeDate: newTestIntakeDate(),
	}

	var entityTypes []string
	mocks.animalRepo.On("Save", ctx, mock.AnythingOfType("*animal.Animal")).Return(nil)
	mocks.intakeRepo.On("Save", ctx, mock.AnythingOfType("*animal.Intake")).Return(nil)
	mocks.auditRepo.On("Append", ctx, mock.AnythingOfType("*audit.Entry")).Run(func(args mock.Arguments) {
		entityTypes = append(entityTypes, args.Get(1).(*audit.Entry).EntityType)
	}).Return(nil).Twice()

	_, err := service.Intake(ctx, orgID, newTestActorID(), req)

	assert.NoError(t, err)
	assert.ElementsMatch(t, []string{animal.AggregateTypeAnimal, animal.AggregateTypeIntake}, entityTypes)
}

func TestAnimalService_Intake_EmptyName(t *testing.T) {
	service, mocks := newTestAnimalService()

	ctx := context.Background()
	req := IntakeRequest{
		Name:       "   ",
		Species:    animal.SpeciesDog,
		Kind:       animal.IntakeKindStray,
		IntakeDate: newTestIntakeDate(),
	}

	result, err := service.Intake(ctx, newTestOrgID(), newTestActorID(), req)

	assert.Error(t, err)
	assert.Nil(t, result)
	mocks.animalRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

// Tests for AnimalService.GetByID
func TestAnimalService_GetByID_Success(t *testing.T) {
	service, mocks := newTestAnimalService()

	ctx := context.Background()
	orgID := newTestOrgID()
	a := createTestAnimal(orgID)

	mocks.animalRepo.On("FindByIDForOrg", ctx, orgID, a.ID).Return(a, nil)

	result, err := service.GetByID(ctx, orgID, a.ID)

	assert.NoError(t, err)
	assert.Equal(t, a.ID, result.ID)
	assert.Equal(t, "Biscuit", result.Name)
	mocks.animalRepo.AssertExpectations(t)
}

func TestAnimalService_GetByID_UnknownInOrganization(t *testing.T) {
	service, mocks := newTestAnimalService()

	ctx := context.Background()
	orgID := newTestOrgID()
	animalID := uuid.New()

	mocks.animalRepo.On("FindByIDForOrg", ctx, orgID, animalID).Return(nil, shared.ErrUnknownEntity)

	result, err := service.GetByID(ctx, orgID, animalID)

	assert.ErrorIs(t, err, shared.ErrUnknownEntity)
	assert.Nil(t, result)
}

// Tests for AnimalService.ChangeStatus
func TestAnimalService_ChangeStatus_ToHold(t *testing.T) {
	service, mocks := newTestAnimalService()

	ctx := context.Background()
	orgID := newTestOrgID()
	a := createTestAnimal(orgID)

	mocks.animalRepo.On("FindByIDForOrg", ctx, orgID, a.ID).Return(a, nil)
	mocks.animalRepo.On("SaveWithLock", ctx, a).Return(nil)
	mocks.auditRepo.On("Append", ctx, mock.AnythingOfType("*audit.Entry")).Return(nil)

	result, err := service.ChangeStatus(ctx, orgID, newTestActorID(), a.ID, ChangeStatusRequest{
		Status: animal.StatusHold,
	})

	assert.NoError(t, err)
	assert.Equal(t, string(animal.StatusHold), result.Status)
	mocks.animalRepo.AssertExpectations(t)
	mocks.auditRepo.AssertExpectations(t)
	mocks.outcomeRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAnimalService_ChangeStatus_TerminalCreatesOutcome(t *testing.T) {
	service, mocks := newTestAnimalService()

	ctx := context.Background()
	orgID := newTestOrgID()
	a := createTestAnimal(orgID)
	outcomeDate := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	mocks.animalRepo.On("FindByIDForOrg", ctx, orgID, a.ID).Return(a, nil)
	mocks.outcomeRepo.On("ExistsForAnimal", ctx, orgID, a.ID).Return(false, nil)
	mocks.outcomeRepo.On("Save", ctx, mock.AnythingOfType("*animal.Outcome")).Return(nil)
	mocks.animalRepo.On("SaveWithLock", ctx, a).Return(nil)
	mocks.auditRepo.On("Append", ctx, mock.AnythingOfType("*audit.Entry")).Return(nil).Twice()

	result, err := service.ChangeStatus(ctx, orgID, newTestActorID(), a.ID, ChangeStatusRequest{
		Status: animal.StatusAdopted,
		Date:   outcomeDate,
	})

	assert.NoError(t, err)
	assert.Equal(t, string(animal.StatusAdopted), result.Status)
	assert.False(t, result.InCare)
	mocks.outcomeRepo.AssertExpectations(t)
	mocks.animalRepo.AssertExpectations(t)
	mocks.auditRepo.AssertExpectations(t)
}

func TestAnimalService_ChangeStatus_OutcomeAlreadyRecorded(t *testing.T) {
	service, mocks := newTestAnimalService()

	ctx := context.Background()
	orgID := newTestOrgID()
	a := createTestAnimal(orgID)

	mocks.animalRepo.On("FindByIDForOrg", ctx, orgID, a.ID).Return(a, nil)
	mocks.outcomeRepo.On("ExistsForAnimal", ctx, orgID, a.ID).Return(true, nil)

	result, err := service.ChangeStatus(ctx, orgID, newTestActorID(), a.ID, ChangeStatusRequest{
		Status: animal.StatusAdopted,
	})

	assert.ErrorIs(t, err, shared.ErrAlreadyTerminal)
	assert.Nil(t, result)
	mocks.outcomeRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	mocks.animalRepo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
}

func TestAnimalService_ChangeStatus_RejectsDirectFoster(t *testing.T) {
	service, mocks := newTestAnimalService()

	ctx := context.Background()

	result, err := service.ChangeStatus(ctx, newTestOrgID(), newTestActorID(), uuid.New(), ChangeStatusRequest{
		Status: animal.StatusFostered,
	})

	assert.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_TRANSITION", domainErr.Code)
	mocks.animalRepo.AssertNotCalled(t, "FindByIDForOrg", mock.Anything, mock.Anything, mock.Anything)
}

func TestAnimalService_ChangeStatus_TerminalOnTerminal(t *testing.T) {
	service, mocks := newTestAnimalService()

	ctx := context.Background()
	orgID := newTestOrgID()
	a := createTestAnimal(orgID)
	_ = a.TransitionTo(animal.StatusAdopted)

	mocks.animalRepo.On("FindByIDForOrg", ctx, orgID, a.ID).Return(a, nil)

	result, err := service.ChangeStatus(ctx, orgID, newTestActorID(), a.ID, ChangeStatusRequest{
		Status: animal.StatusAvailable,
	})

	assert.ErrorIs(t, err, shared.ErrAlreadyTerminal)
	assert.Nil(t, result)
	mocks.animalRepo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
}

func TestAnimalService_ChangeStatus_LeavingFosterClosesPlacement(t *testing.T) {
	service, mocks := newTestAnimalService()

	ctx := context.Background()
	orgID := newTestOrgID()
	a := createTestAnimal(orgID)
	_ = a.TransitionTo(animal.StatusFostered)

	assignment, err := adoption.NewFosterAssignment(orgID, a.ID, uuid.New(), newTestIntakeDate())
	assert.NoError(t, err)

	mocks.animalRepo.On("FindByIDForOrg", ctx, orgID, a.ID).Return(a, nil)
	mocks.fosterRepo.On("FindActiveByAnimal", ctx, orgID, a.ID).Return(assignment, nil)
	mocks.fosterRepo.On("SaveWithLock", ctx, assignment).Return(nil)
	mocks.animalRepo.On("SaveWithLock", ctx, a).Return(nil)
	mocks.auditRepo.On("Append", ctx, mock.AnythingOfType("*audit.Entry")).Return(nil).Twice()

	result, err := service.ChangeStatus(ctx, orgID, newTestActorID(), a.ID, ChangeStatusRequest{
		Status: animal.StatusAvailable,
		Date:   time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	})

	assert.NoError(t, err)
	assert.Equal(t, string(animal.StatusAvailable), result.Status)
	assert.False(t, assignment.IsActive())
	mocks.fosterRepo.AssertExpectations(t)
	mocks.animalRepo.AssertExpectations(t)
}

func TestAnimalService_ChangeStatus_FosterToTerminalClosesAndRecords(t *testing.T) {
	service, mocks := newTestAnimalService()

	ctx := context.Background()
	orgID := newTestOrgID()
	a := createTestAnimal(orgID)
	_ = a.TransitionTo(animal.StatusFostered)

	assignment, err := adoption.NewFosterAssignment(orgID, a.ID, uuid.New(), newTestIntakeDate())
	assert.NoError(t, err)

	mocks.animalRepo.On("FindByIDForOrg", ctx, orgID, a.ID).Return(a, nil)
	mocks.fosterRepo.On("FindActiveByAnimal", ctx, orgID, a.ID).Return(assignment, nil)
	mocks.fosterRepo.On("SaveWithLock", ctx, assignment).Return(nil)
	mocks.outcomeRepo.On("ExistsForAnimal", ctx, orgID, a.ID).Return(false, nil)
	mocks.outcomeRepo.On("Save", ctx, mock.AnythingOfType("*animal.Outcome")).Return(nil)
	mocks.animalRepo.On("SaveWithLock", ctx, a).Return(nil)

	var entityTypes []string
	mocks.auditRepo.On("Append", ctx, mock.AnythingOfType("*audit.Entry")).Run(func(args mock.Arguments) {
		entityTypes = append(entityTypes, args.Get(1).(*audit.Entry).EntityType)
	}).Return(nil).Times(3)

	result, err := service.ChangeStatus(ctx, orgID, newTestActorID(), a.ID, ChangeStatusRequest{
		Status: animal.StatusAdopted,
		Date:   time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	})

	assert.NoError(t, err)
	assert.Equal(t, string(animal.StatusAdopted), result.Status)
	assert.False(t, assignment.IsActive())
	assert.Contains(t, entityTypes, animal.AggregateTypeOutcome)
	assert.Contains(t, entityTypes, adoption.AggregateTypeFosterAssignment)
	mocks.fosterRepo.AssertExpectations(t)
	mocks.outcomeRepo.AssertExpectations(t)
	mocks.auditRepo.AssertExpectations(t)
}

func TestAnimalService_ChangeStatus_ConcurrencyConflict(t *testing.T) {
	service, mocks := newTestAnimalService()

	ctx := context.Background()
	orgID := newTestOrgID()
	a := createTestAnimal(orgID)

	mocks.animalRepo.On("FindByIDForOrg", ctx, orgID, a.ID).Return(a, nil)
	mocks.animalRepo.On("SaveWithLock", ctx, a).Return(shared.ErrConcurrencyConflict)

	result, err := service.ChangeStatus(ctx, orgID, newTestActorID(), a.ID, ChangeStatusRequest{
		Status: animal.StatusHold,
	})

	assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	assert.Nil(t, result)
}

// Tests for AnimalService.List
func TestAnimalService_List_Success(t *testing.T) {
	service, mocks := newTestAnimalService()

	ctx := context.Background()
	orgID := newTestOrgID()
	animals := []animal.Animal{*createTestAnimal(orgID), *createTestAnimal(orgID)}

	mocks.animalRepo.On("FindAllForOrg", ctx, orgID, mock.AnythingOfType("shared.Filter")).Return(animals, nil)
	mocks.animalRepo.On("CountForOrg", ctx, orgID, mock.AnythingOfType("shared.Filter")).Return(int64(2), nil)

	results, total, err := service.List(ctx, orgID, AnimalListFilter{})

	assert.NoError(t, err)
	assert.Len(t, results, 2)
	assert.Equal(t, int64(2), total)
	mocks.animalRepo.AssertExpectations(t)
}

// Tests for AnimalService.UpdateAttributes
func TestAnimalService_UpdateAttributes_Success(t *testing.T) {
	service, mocks := newTestAnimalService()

	ctx := context.Background()
	orgID := newTestOrgID()
	a := createTestAnimal(orgID)

	mocks.animalRepo.On("FindByIDForOrg", ctx, orgID, a.ID).Return(a, nil)
	mocks.animalRepo.On("SaveWithLock", ctx, a).Return(nil)
	mocks.auditRepo.On("Append", ctx, mock.AnythingOfType("*audit.Entry")).Return(nil)

	result, err := service.UpdateAttributes(ctx, orgID, newTestActorID(), a.ID, UpdateAttributesRequest{
		Attributes: valueobject.AttrMap{
			"color":   valueobject.StringValue("brindle"),
			"altered": valueobject.BoolValue(true),
		},
	})

	assert.NoError(t, err)
	assert.Equal(t, "brindle", result.Attributes["color"].String)
	mocks.animalRepo.AssertExpectations(t)
}

func TestAnimalService_UpdateAttributes_WrongKind(t *testing.T) {
	service, mocks := newTestAnimalService()

	ctx := context.Background()
	orgID := newTestOrgID()
	a := createTestAnimal(orgID)

	mocks.animalRepo.On("FindByIDForOrg", ctx, orgID, a.ID).Return(a, nil)

	result, err := service.UpdateAttributes(ctx, orgID, newTestActorID(), a.ID, UpdateAttributesRequest{
		Attributes: valueobject.AttrMap{
			"altered": valueobject.StringValue("yes"),
		},
	})

	assert.Error(t, err)
	assert.Nil(t, result)
	mocks.animalRepo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
}

// Tests for AnimalService.GetOutcome
func TestAnimalService_GetOutcome_Success(t *testing.T) {
	service, mocks := newTestAnimalService()

	ctx := context.Background()
	orgID := newTestOrgID()
	animalID := uuid.New()
	outcome, err := animal.NewOutcome(orgID, animalID, animal.OutcomeTypeAdoption, newTestIntakeDate())
	assert.NoError(t, err)

	mocks.outcomeRepo.On("FindByAnimal", ctx, orgID, animalID).Return(outcome, nil)

	result, err := service.GetOutcome(ctx, orgID, animalID)

	assert.NoError(t, err)
	assert.Equal(t, string(animal.OutcomeTypeAdoption), result.Type)
	mocks.outcomeRepo.AssertExpectations(t)
}
