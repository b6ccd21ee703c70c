package adoption

import (
	"github.com/google/uuid"
	"github.com/shelterhq/backend/internal/domain/shared"
)

// Aggregate type constants
const (
	AggregateTypeApplication      = "Application"
	AggregateTypeFosterAssignment = "FosterAssignment"
	AggregateTypeAdoption         = "Adoption"
)

// Event type constants
const (
	EventTypeApplicationSubmitted    = "ApplicationSubmitted"
	EventTypeApplicationStageChanged = "ApplicationStageChanged"
	EventTypeFosterOpened            = "FosterOpened"
	EventTypeFosterClosed            = "FosterClosed"
	EventTypeAdoptionFinalized       = "AdoptionFinalized"
)

// ApplicationSubmittedEvent is raised when an application enters the
// pipeline
type ApplicationSubmittedEvent struct {
	shared.BaseDomainEvent
	ApplicationID uuid.UUID       `json:"application_id"`
	AnimalID      uuid.UUID       `json:"animal_id"`
	PersonID      uuid.UUID       `json:"person_id"`
	Kind          ApplicationKind `json:"kind"`
}

// NewApplicationSubmittedEvent creates a new ApplicationSubmittedEvent
func NewApplicationSubmittedEvent(a *Application) *ApplicationSubmittedEvent {
	return &ApplicationSubmittedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeApplicationSubmitted, AggregateTypeApplication, a.ID, a.OrganizationID),
		ApplicationID:   a.ID,
		AnimalID:        a.AnimalID,
		PersonID:        a.PersonID,
		Kind:            a.Kind,
	}
}

// EventType returns the event type name
func (e *ApplicationSubmittedEvent) EventType() string {
	return EventTypeApplicationSubmitted
}

// ApplicationStageChangedEvent is raised on every pipeline transition
type ApplicationStageChangedEvent struct {
	shared.BaseDomainEvent
	ApplicationID uuid.UUID         `json:"application_id"`
	From          ApplicationStatus `json:"from"`
	To            ApplicationStatus `json:"to"`
}

// NewApplicationStageChangedEvent creates a new ApplicationStageChangedEvent
func NewApplicationStageChangedEvent(a *Application, from, to ApplicationStatus) *ApplicationStageChangedEvent {
	return &ApplicationStageChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeApplicationStageChanged, AggregateTypeApplication, a.ID, a.OrganizationID),
		ApplicationID:   a.ID,
		From:            from,
		To:              to,
	}
}

// EventType returns the event type name
func (e *ApplicationStageChangedEvent) EventType() string {
	return EventTypeApplicationStageChanged
}

// FosterOpenedEvent is raised when a foster placement opens
type FosterOpenedEvent struct {
	shared.BaseDomainEvent
	AssignmentID uuid.UUID `json:"assignment_id"`
	AnimalID     uuid.UUID `json:"animal_id"`
	PersonID     uuid.UUID `json:"person_id"`
}

// NewFosterOpenedEvent creates a new FosterOpenedEvent
func NewFosterOpenedEvent(f *FosterAssignment) *FosterOpenedEvent {
	return &FosterOpenedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeFosterOpened, AggregateTypeFosterAssignment, f.ID, f.OrganizationID),
		AssignmentID:    f.ID,
		AnimalID:        f.AnimalID,
		PersonID:        f.PersonID,
	}
}

// EventType returns the event type name
func (e *FosterOpenedEvent) EventType() string {
	return EventTypeFosterOpened
}

// FosterClosedEvent is raised when a foster placement closes
type FosterClosedEvent struct {
	shared.BaseDomainEvent
	AssignmentID uuid.UUID    `json:"assignment_id"`
	AnimalID     uuid.UUID    `json:"animal_id"`
	Status       FosterStatus `json:"status"`
}

// NewFosterClosedEvent creates a new FosterClosedEvent
func NewFosterClosedEvent(f *FosterAssignment) *FosterClosedEvent {
	return &FosterClosedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeFosterClosed, AggregateTypeFosterAssignment, f.ID, f.OrganizationID),
		AssignmentID:    f.ID,
		AnimalID:        f.AnimalID,
		Status:          f.Status,
	}
}

// EventType returns the event type name
func (e *FosterClosedEvent) EventType() string {
	return EventTypeFosterClosed
}

// AdoptionFinalizedEvent is raised when an adoption is finalized
type AdoptionFinalizedEvent struct {
	shared.BaseDomainEvent
	AdoptionID uuid.UUID `json:"adoption_id"`
	AnimalID   uuid.UUID `json:"animal_id"`
	AdopterID  uuid.UUID `json:"adopter_id"`
	FeeCents   int64     `json:"fee_cents"`
}

// NewAdoptionFinalizedEvent creates a new AdoptionFinalizedEvent
func NewAdoptionFinalizedEvent(a *Adoption) *AdoptionFinalizedEvent {
	return &AdoptionFinalizedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAdoptionFinalized, AggregateTypeAdoption, a.ID, a.OrganizationID),
		AdoptionID:      a.ID,
		AnimalID:        a.AnimalID,
		AdopterID:       a.AdopterID,
		FeeCents:        a.Fee.Cents(),
	}
}

// EventType returns the event type name
func (e *AdoptionFinalizedEvent) EventType() string {
	return EventTypeAdoptionFinalized
}
