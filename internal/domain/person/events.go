package person

import (
	"github.com/google/uuid"
	"github.com/shelterhq/backend/internal/domain/shared"
)

// AggregateTypePerson is the aggregate type for person events
const AggregateTypePerson = "Person"

// EventTypePersonCreated is raised when a contact record is created
const EventTypePersonCreated = "PersonCreated"

// PersonCreatedEvent is raised when a person is created
type PersonCreatedEvent struct {
	shared.BaseDomainEvent
	PersonID uuid.UUID `json:"person_id"`
	Name     string    `json:"name"`
	Type     Type      `json:"type"`
}

// NewPersonCreatedEvent creates a new PersonCreatedEvent
func NewPersonCreatedEvent(p *Person) *PersonCreatedEvent {
	return &PersonCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePersonCreated, AggregateTypePerson, p.ID, p.OrganizationID),
		PersonID:        p.ID,
		Name:            p.FullName(),
		Type:            p.Type,
	}
}

// EventType returns the event type name
func (e *PersonCreatedEvent) EventType() string {
	return EventTypePersonCreated
}
