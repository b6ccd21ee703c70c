package adoption

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
)

// MockUnitOfWork executes the unit directly without a transaction
type MockUnitOfWork struct{}

func (m *MockUnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// MockApplicationRepository is a mock implementation of
// adoption.ApplicationRepository
type MockApplicationRepository struct {
	mock.Mock
}

func (m *MockApplicationRepository) FindByIDForOrg(ctx context.Context, organizationID, id uuid.UUID) (*adoption.Application, error) {
	args := m.Called(ctx, organizationID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*adoption.Application), args.Error(1)
}

func (m *MockApplicationRepository) FindAllForOrg(ctx context.Context, organizationID uuid.UUID, filter shared.Filter) ([]adoption.Application, error) {
	args := m.Called(ctx, organizationID, filter)
	return args.Get(0).([]adoption.Application), args.Error(1)
}

func (m *MockApplicationRepository) FindByAnimal(ctx context.Context, organizationID, animalID uuid.UUID) ([]adoption.Application, error) {
	args := m.Called(ctx, organizationID, animalID)
	return args.Get(0).([]adoption.Application), args.Error(1)
}

func (m *MockApplicationRepository) FindByPerson(ctx context.Context, organizationID, personID uuid.UUID) ([]adoption.Application, error) {
	args := m.Called(ctx, organizationID, personID)
	return args.Get(0).([]adoption.Application), args.Error(1)
}

func (m *MockApplicationRepository) CountForOrg(ctx context.Context, organizationID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, organizationID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockApplicationRepository) CountByStatus(ctx context.Context, organizationID uuid.UUID) (map[adoption.ApplicationStatus]int64, error) {
	args := m.Called(ctx, organizationID)
	return args.Get(0).(map[adoption.ApplicationStatus]int64), args.Error(1)
}

func (m *MockApplicationRepository) Save(ctx context.Context, a *adoption.Application) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockApplicationRepository) SaveWithLock(ctx context.Context, a *adoption.Application) error {
	args := m.Called(ctx, a)
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

// MockAdoptionRepository is a mock implementation of
// adoption.AdoptionRepository
type MockAdoptionRepository struct {
	mock.Mock
}

func (m *MockAdoptionRepository) FindByIDForOrg(ctx context.Context, organizationID, id uuid.UUID) (*adoption.Adoption, error) {
	args := m.Called(ctx, organizationID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*adoption.Adoption), args.Error(1)
}

func (m *MockAdoptionRepository) FindByAnimal(ctx context.Context, organizationID, animalID uuid.UUID) (*adoption.Adoption, error) {
	args := m.Called(ctx, organizationID, animalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*adoption.Adoption), args.Error(1)
}

func (m *MockAdoptionRepository) FindAllForOrg(ctx context.Context, organizationID uuid.UUID, filter shared.Filter) ([]adoption.Adoption, error) {
	args := m.Called(ctx, organizationID, filter)
	return args.Get(0).([]adoption.Adoption), args.Error(1)
}

func (m *MockAdoptionRepository) CountInWindow(ctx context.Context, organizationID uuid.UUID, from, to time.Time) (int64, error) {
	args := m.Called(ctx, organizationID, from, to)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAdoptionRepository) SumFeesInWindow(ctx context.Context, organizationID uuid.UUID, from, to time.Time) (int64, error) {
	args := m.Called(ctx, organizationID, from, to)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAdoptionRepository) Save(ctx context.Context, a *adoption.Adoption) error {
	args := m.Called(ctx, a)
	return args.Error(0)
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

func newTestDate() time.Time {
	return time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
}

func createTestAnimal(organizationID uuid.UUID) *animal.Animal {
	a, _ := animal.NewAnimal(organizationID, "Maple", animal.SpeciesDog, newTestDate().AddDate(0, -2, 0), false)
	return a
}

func createApprovedApplication(organizationID, animalID uuid.UUID, kind adoption.ApplicationKind) *adoption.Application {
	app, _ := adoption.NewApplication(organizationID, animalID, uuid.New(), kind, nil)
	_ = app.MoveToReview()
	_ = app.Approve(newTestActorID(), "home visit passed")
	return app
}

type finalizationMocks struct {
	appRepo      *MockApplicationRepository
	fosterRepo   *MockFosterAssignmentRepository
	adoptionRepo *MockAdoptionRepository
	animalRepo   *MockAnimalRepository
	outcomeRepo  *MockOutcomeRepository
	auditRepo    *MockAuditRepository
}

func newTestFinalizationService() (*FinalizationService, *finalizationMocks) {
	mocks := &finalizationMocks{
		appRepo:      new(MockApplicationRepository),
		fosterRepo:   new(MockFosterAssignmentRepository),
		adoptionRepo: new(MockAdoptionRepository),
		animalRepo:   new(MockAnimalRepository),
		outcomeRepo:  new(MockOutcomeRepository),
		auditRepo:    new(MockAuditRepository),
	}
	service := NewFinalizationService(
		new(MockUnitOfWork),
		mocks.appRepo,
		mocks.fosterRepo,
		mocks.adoptionRepo,
		mocks.animalRepo,
		mocks.outcomeRepo,
		auditapp.NewRecorder(mocks.auditRepo),
	)
	return service, mocks
}

// Tests for FinalizationService.FinalizeAdoption
func TestFinalizationService_FinalizeAdoption_Success(t *testing.T) {
	service, mocks := newTestFinalizationService()

	ctx := context.Background()
	orgID := newTestOrgID()
	a := createTestAnimal(orgID)
	app := createApprovedApplication(orgID, a.ID, adoption.ApplicationKindAdoption)

	mocks.appRepo.On("FindByIDForOrg", ctx, orgID, app.ID).Return(app, nil)
	mocks.animalRepo.On("FindByIDForOrg", ctx, orgID, a.ID).Return(a, nil)
	mocks.animalRepo.On("SaveWithLock", ctx, a).Return(nil)
	mocks.adoptionRepo.On("Save", ctx, mock.AnythingOfType("*adoption.Adoption")).Return(nil)
	mocks.outcomeRepo.On("Save", ctx, mock.AnythingOfType("*animal.Outcome")).Return(nil)
	mocks.auditRepo.On("Append", ctx, mock.AnythingOfType("*audit.Entry")).Return(nil).Times(3)

	result, err := service.FinalizeAdoption(ctx, orgID, newTestActorID(), FinalizeAdoptionRequest{
		ApplicationID: app.ID,
		Date:          newTestDate(),
		FeeCents:      12500,
	})

	assert.NoError(t, err)
	assert.Equal(t, a.ID, result.AnimalID)
	assert.Equal(t, app.PersonID, result.AdopterID)
	assert.Equal(t, animal.StatusAdopted, a.Status)
	mocks.adoptionRepo.AssertExpectations(t)
	mocks.outcomeRepo.AssertExpectations(t)
	mocks.auditRepo.AssertExpectations(t)
}

func TestFinalizationService_FinalizeAdoption_NotApproved(t *testing.T) {
	service, mocks := newTestFinalizationService()

	ctx := context.Background()
	orgID := newTestOrgID()
	a := createTestAnimal(orgID)
	app, _ := adoption.NewApplication(orgID, a.ID, uuid.New(), adoption.ApplicationKindAdoption, nil)
	_ = app.MoveToReview()

	mocks.appRepo.On("FindByIDForOrg", ctx, orgID, app.ID).Return(app, nil)

	result, err := service.FinalizeAdoption(ctx, orgID, newTestActorID(), FinalizeAdoptionRequest{
		ApplicationID: app.ID,
	})

	assert.ErrorIs(t, err, shared.ErrApplicationNotApproved)
	assert.Nil(t, result)
	mocks.adoptionRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	mocks.animalRepo.AssertNotCalled(t, "FindByIDForOrg", mock.Anything, mock.Anything, mock.Anything)
}

func TestFinalizationService_FinalizeAdoption_FosterApplication(t *testing.T) {
	service, mocks := newTestFinalizationService()

	ctx := context.Background()
	orgID := newTestOrgID()
	a := createTestAnimal(orgID)
	app := createApprovedApplication(orgID, a.ID, adoption.ApplicationKindFoster)

	mocks.appRepo.On("FindByIDForOrg", ctx, orgID, app.ID).Return(app, nil)

	result, err := service.FinalizeAdoption(ctx, orgID, newTestActorID(), FinalizeAdoptionRequest{
		ApplicationID: app.ID,
	})

	assert.ErrorIs(t, err, shared.ErrApplicationNotApproved)
	assert.Nil(t, result)
}

func TestFinalizationService_FinalizeAdoption_FromFoster(t *testing.T) {
	service, mocks := newTestFinalizationService()

	ctx := context.Background()
	orgID := newTestOrgID()
	a := createTestAnimal(orgID)
	_ = a.TransitionTo(animal.StatusFostered)
	app := createApprovedApplication(orgID, a.ID, adoption.ApplicationKindAdoption)
	assignment, _ := adoption.NewFosterAssignment(orgID, a.ID, app.PersonID, newTestDate().AddDate(0, -1, 0))

	mocks.appRepo.On("FindByIDForOrg", ctx, orgID, app.ID).Return(app, nil)
	mocks.animalRepo.On("FindByIDForOrg", ctx, orgID, a.ID).Return(a, nil)
	mocks.fosterRepo.On("FindActiveByAnimal", ctx, orgID, a.ID).Return(assignment, nil)
	mocks.fosterRepo.On("SaveWithLock", ctx, assignment).Return(nil)
	mocks.animalRepo.On("SaveWithLock", ctx, a).Return(nil)
	mocks.adoptionRepo.On("Save", ctx, mock.AnythingOfType("*adoption.Adoption")).Return(nil)
	mocks.outcomeRepo.On("Save", ctx, mock.AnythingOfType("*animal.Outcome")).Return(nil)
	mocks.auditRepo.On("Append", ctx, mock.AnythingOfType("*audit.Entry")).Return(nil).Times(4)

	result, err := service.FinalizeAdoption(ctx, orgID, newTestActorID(), FinalizeAdoptionRequest{
		ApplicationID: app.ID,
		Date:          newTestDate(),
	})

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, adoption.FosterStatusCompleted, assignment.Status)
	assert.Equal(t, animal.StatusAdopted, a.Status)
	mocks.fosterRepo.AssertExpectations(t)
	mocks.auditRepo.AssertExpectations(t)
}

// Tests for FinalizationService.PlaceFoster
func TestFinalizationService_PlaceFoster_Success(t *testing.T) {
	service, mocks := newTestFinalizationService()

	ctx := context.Background()
	orgID := newTestOrgID()
	a := createTestAnimal(orgID)
	app := createApprovedApplication(orgID, a.ID, adoption.ApplicationKindFoster)

	mocks.appRepo.On("FindByIDForOrg", ctx, orgID, app.ID).Return(app, nil)
	mocks.fosterRepo.On("ExistsActiveForAnimal", ctx, orgID, a.ID).Return(false, nil)
	mocks.animalRepo.On("FindByIDForOrg", ctx, orgID, a.ID).Return(a, nil)
	mocks.animalRepo.On("SaveWithLock", ctx, a).Return(nil)
	mocks.fosterRepo.On("Save", ctx, mock.AnythingOfType("*adoption.FosterAssignment")).Return(nil)
	mocks.auditRepo.On("Append", ctx, mock.AnythingOfType("*audit.Entry")).Return(nil).Twice()

	result, err := service.PlaceFoster(ctx, orgID, newTestActorID(), PlaceFosterRequest{
		ApplicationID: app.ID,
		StartDate:     newTestDate(),
	})

	assert.NoError(t, err)
	assert.Equal(t, string(adoption.FosterStatusActive), result.Status)
	assert.Equal(t, app.PersonID, result.PersonID)
	assert.Equal(t, animal.StatusFostered, a.Status)
	mocks.fosterRepo.AssertExpectations(t)
	mocks.auditRepo.AssertExpectations(t)
}

func TestFinalizationService_PlaceFoster_AlreadyFostered(t *testing.T) {
	service, mocks := newTestFinalizationService()

	ctx := context.Background()
	orgID := newTestOrgID()
	a := createTestAnimal(orgID)
	app := createApprovedApplication(orgID, a.ID, adoption.ApplicationKindFoster)

	mocks.appRepo.On("FindByIDForOrg", ctx, orgID, app.ID).Return(app, nil)
	mocks.fosterRepo.On("ExistsActiveForAnimal", ctx, orgID, a.ID).Return(true, nil)

	result, err := service.PlaceFoster(ctx, orgID, newTestActorID(), PlaceFosterRequest{
		ApplicationID: app.ID,
	})

	assert.ErrorIs(t, err, shared.ErrAnimalAlreadyFostered)
	assert.Nil(t, result)
	mocks.fosterRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestFinalizationService_PlaceFoster_AdoptionApplication(t *testing.T) {
	service, mocks := newTestFinalizationService()

	ctx := context.Background()
	orgID := newTestOrgID()
	a := createTestAnimal(orgID)
	app := createApprovedApplication(orgID, a.ID, adoption.ApplicationKindAdoption)

	mocks.appRepo.On("FindByIDForOrg", ctx, orgID, app.ID).Return(app, nil)

	result, err := service.PlaceFoster(ctx, orgID, newTestActorID(), PlaceFosterRequest{
		ApplicationID: app.ID,
	})

	assert.ErrorIs(t, err, shared.ErrApplicationNotApproved)
	assert.Nil(t, result)
}

// Tests for FinalizationService.CompleteFoster and FailFoster
func TestFinalizationService_CompleteFoster_ReturnsAnimal(t *testing.T) {
	service, mocks := newTestFinalizationService()

	ctx := context.Background()
	orgID := newTestOrgID()
	a := createTestAnimal(orgID)
	_ = a.TransitionTo(animal.StatusFostered)
	assignment, _ := adoption.NewFosterAssignment(orgID, a.ID, uuid.New(), newTestDate().AddDate(0, -1, 0))

	mocks.fosterRepo.On("FindByIDForOrg", ctx, orgID, assignment.ID).Return(assignment, nil)
	mocks.fosterRepo.On("SaveWithLock", ctx, assignment).Return(nil)
	mocks.animalRepo.On("FindByIDForOrg", ctx, orgID, a.ID).Return(a, nil)
	mocks.animalRepo.On("SaveWithLock", ctx, a).Return(nil)
	mocks.auditRepo.On("Append", ctx, mock.AnythingOfType("*audit.Entry")).Return(nil).Twice()

	result, err := service.CompleteFoster(ctx, orgID, newTestActorID(), assignment.ID, CloseFosterRequest{
		EndDate: newTestDate(),
	})

	assert.NoError(t, err)
	assert.Equal(t, string(adoption.FosterStatusCompleted), result.Status)
	assert.NotNil(t, result.EndDate)
	assert.Equal(t, animal.StatusAvailable, a.Status)
	mocks.fosterRepo.AssertExpectations(t)
	mocks.animalRepo.AssertExpectations(t)
}

func TestFinalizationService_CompleteFoster_MedicalHold(t *testing.T) {
	service, mocks := newTestFinalizationService()

	ctx := context.Background()
	orgID := newTestOrgID()
	a := createTestAnimal(orgID)
	_ = a.TransitionTo(animal.StatusFostered)
	assignment, _ := adoption.NewFosterAssignment(orgID, a.ID, uuid.New(), newTestDate().AddDate(0, -1, 0))

	mocks.fosterRepo.On("FindByIDForOrg", ctx, orgID, assignment.ID).Return(assignment, nil)
	mocks.fosterRepo.On("SaveWithLock", ctx, assignment).Return(nil)
	mocks.animalRepo.On("FindByIDForOrg", ctx, orgID, a.ID).Return(a, nil)
	mocks.animalRepo.On("SaveWithLock", ctx, a).Return(nil)
	mocks.auditRepo.On("Append", ctx, mock.AnythingOfType("*audit.Entry")).Return(nil).Twice()

	_, err := service.CompleteFoster(ctx, orgID, newTestActorID(), assignment.ID, CloseFosterRequest{
		EndDate:     newTestDate(),
		MedicalHold: true,
	})

	assert.NoError(t, err)
	assert.Equal(t, animal.StatusHold, a.Status)
}

func TestFinalizationService_FailFoster_Success(t *testing.T) {
	service, mocks := newTestFinalizationService()

	ctx := context.Background()
	orgID := newTestOrgID()
	a := createTestAnimal(orgID)
	_ = a.TransitionTo(animal.StatusFostered)
	assignment, _ := adoption.NewFosterAssignment(orgID, a.ID, uuid.New(), newTestDate().AddDate(0, -1, 0))

	mocks.fosterRepo.On("FindByIDForOrg", ctx, orgID, assignment.ID).Return(assignment, nil)
	mocks.fosterRepo.On("SaveWithLock", ctx, assignment).Return(nil)
	mocks.animalRepo.On("FindByIDForOrg", ctx, orgID, a.ID).Return(a, nil)
	mocks.animalRepo.On("SaveWithLock", ctx, a).Return(nil)
	mocks.auditRepo.On("Append", ctx, mock.AnythingOfType("*audit.Entry")).Return(nil).Twice()

	result, err := service.FailFoster(ctx, orgID, newTestActorID(), assignment.ID, CloseFosterRequest{
		EndDate: newTestDate(),
	})

	assert.NoError(t, err)
	assert.Equal(t, string(adoption.FosterStatusFailed), result.Status)
	assert.Equal(t, animal.StatusAvailable, a.Status)
}

func TestFinalizationService_CompleteFoster_AlreadyClosed(t *testing.T) {
	service, mocks := newTestFinalizationService()

	ctx := context.Background()
	orgID := newTestOrgID()
	assignment, _ := adoption.NewFosterAssignment(orgID, uuid.New(), uuid.New(), newTestDate().AddDate(0, -1, 0))
	_ = assignment.Complete(newTestDate())

	mocks.fosterRepo.On("FindByIDForOrg", ctx, orgID, assignment.ID).Return(assignment, nil)

	result, err := service.CompleteFoster(ctx, orgID, newTestActorID(), assignment.ID, CloseFosterRequest{})

	assert.Error(t, err)
	assert.Nil(t, result)
	mocks.fosterRepo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
}
