package animal

import (
	"github.com/google/uuid"
	"github.com/shelterhq/backend/internal/domain/shared"
)

// Aggregate type constants
const (
	AggregateTypeAnimal  = "Animal"
	AggregateTypeIntake  = "Intake"
	AggregateTypeOutcome = "Outcome"
)

// Event type constants
const (
	EventTypeAnimalIntake        = "AnimalIntake"
	EventTypeAnimalStatusChanged = "AnimalStatusChanged"
)

// AnimalIntakeEvent is raised when an animal enters shelter care
type AnimalIntakeEvent struct {
	shared.BaseDomainEvent
	AnimalID uuid.UUID `json:"animal_id"`
	Name     string    `json:"name"`
	Species  Species   `json:"species"`
	Status   Status    `json:"status"`
}

// NewAnimalIntakeEvent creates a new AnimalIntakeEvent
func NewAnimalIntakeEvent(a *Animal) *AnimalIntakeEvent {
	return &AnimalIntakeEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAnimalIntake, AggregateTypeAnimal, a.ID, a.OrganizationID),
		AnimalID:        a.ID,
		Name:            a.Name,
		Species:         a.Species,
		Status:          a.Status,
	}
}

// EventType returns the event type name
func (e *AnimalIntakeEvent) EventType() string {
	return EventTypeAnimalIntake
}

// AnimalStatusChangedEvent is raised on every lifecycle transition
type AnimalStatusChangedEvent struct {
	shared.BaseDomainEvent
	AnimalID uuid.UUID `json:"animal_id"`
	From     Status    `json:"from"`
	To       Status    `json:"to"`
}

// NewAnimalStatusChangedEvent creates a new AnimalStatusChangedEvent
func NewAnimalStatusChangedEvent(a *Animal, from, to Status) *AnimalStatusChangedEvent {
	return &AnimalStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAnimalStatusChanged, AggregateTypeAnimal, a.ID, a.OrganizationID),
		AnimalID:        a.ID,
		From:            from,
		To:              to,
	}
}

// EventType returns the event type name
func (e *AnimalStatusChangedEvent) EventType() string {
	return EventTypeAnimalStatusChanged
}
