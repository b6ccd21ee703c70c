package medical

import (
	"time"

	"github.com/google/uuid"
	"github.com/shelterhq/backend/internal/domain/shared"
)

// Aggregate type constant
// Aggregate type constants
const (
	AggregateTypeMedicalTask   = "MedicalTask"
	AggregateTypeMedicalRecord = "MedicalRecord"
)

// Event type constants
const (
	EventTypeTaskScheduled = "MedicalTaskScheduled"
	EventTypeTaskCompleted = "MedicalTaskCompleted"
)

// TaskScheduledEvent is raised when a medical task is scheduled
type TaskScheduledEvent struct {
	shared.BaseDomainEvent
	TaskID   uuid.UUID `json:"task_id"`
	AnimalID uuid.UUID `json:"animal_id"`
	TaskKind TaskType  `json:"task_type"`
	DueDate  time.Time `json:"due_date"`
}

// NewTaskScheduledEvent creates a new TaskScheduledEvent
func NewTaskScheduledEvent(t *Task) *TaskScheduledEvent {
	return &TaskScheduledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTaskScheduled, AggregateTypeMedicalTask, t.ID, t.OrganizationID),
		TaskID:          t.ID,
		AnimalID:        t.AnimalID,
		TaskKind:        t.Type,
		DueDate:         t.DueDate,
	}
}

// EventType returns the event type name
func (e *TaskScheduledEvent) EventType() string {
	return EventTypeTaskScheduled
}

// TaskCompletedEvent is raised when a medical task is completed
type TaskCompletedEvent struct {
	shared.BaseDomainEvent
	TaskID      uuid.UUID  `json:"task_id"`
	AnimalID    uuid.UUID  `json:"animal_id"`
	TaskKind    TaskType   `json:"task_type"`
	CompletedBy *uuid.UUID `json:"completed_by"`
}

// NewTaskCompletedEvent creates a new TaskCompletedEvent
func NewTaskCompletedEvent(t *Task) *TaskCompletedEvent {
	return &TaskCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTaskCompleted, AggregateTypeMedicalTask, t.ID, t.OrganizationID),
		TaskID:          t.ID,
		AnimalID:        t.AnimalID,
		TaskKind:        t.Type,
		CompletedBy:     t.CompletedBy,
	}
}

// EventType returns the event type name
func (e *TaskCompletedEvent) EventType() string {
	return EventTypeTaskCompleted
}
