package medical

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shelterhq/backend/internal/domain/shared"
)

// TaskType identifies the kind of scheduled medical work
type TaskType string

const (
	TaskTypeVaccine   TaskType = "vaccine"
	TaskTypeTreatment TaskType = "treatment"
	TaskTypeExam      TaskType = "exam"
	TaskTypeSurgery   TaskType = "surgery"
	TaskTypeCheckup   TaskType = "checkup"
	TaskTypeOther     TaskType = "other"
)

// IsValid checks if the type is a known TaskType
func (t TaskType) IsValid() bool {
	switch t {
	case TaskTypeVaccine, TaskTypeTreatment, TaskTypeExam, TaskTypeSurgery,
		TaskTypeCheckup, TaskTypeOther:
		return true
	}
	return false
}

// TaskStatus represents the workflow status of a medical task
type TaskStatus string

const (
	TaskStatusScheduled     TaskStatus = "scheduled"
	TaskStatusInProgress    TaskStatus = "in-progress"
	TaskStatusPendingReview TaskStatus = "pending-review"
	TaskStatusCompleted     TaskStatus = "completed"
	TaskStatusCancelled     TaskStatus = "cancelled"
	TaskStatusOnHold        TaskStatus = "on-hold"
)

// IsValid checks if the status is a valid TaskStatus
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusScheduled, TaskStatusInProgress, TaskStatusPendingReview,
		TaskStatusCompleted, TaskStatusCancelled, TaskStatusOnHold:
		return true
	}
	return false
}

// String returns the string representation of TaskStatus
func (s TaskStatus) String() string {
	return string(s)
}

// IsTerminal returns true for completed and cancelled tasks, which are never
// transitioned further
func (s TaskStatus) IsTerminal() bool {
	return s == TaskStatusCompleted || s == TaskStatusCancelled
}

// CanTransitionTo checks if the status can transition to the target status
func (s TaskStatus) CanTransitionTo(target TaskStatus) bool {
	if !target.IsValid() || s == target {
		return false
	}
	switch s {
	case TaskStatusScheduled:
		return target == TaskStatusInProgress || target == TaskStatusOnHold ||
			target == TaskStatusCompleted || target == TaskStatusCancelled
	case TaskStatusInProgress:
		return target == TaskStatusPendingReview || target == TaskStatusOnHold ||
			target == TaskStatusCompleted || target == TaskStatusCancelled
	case TaskStatusPendingReview:
		return target == TaskStatusCompleted || target == TaskStatusInProgress ||
			target == TaskStatusCancelled
	case TaskStatusOnHold:
		return target == TaskStatusScheduled || target == TaskStatusInProgress ||
			target == TaskStatusCancelled
	}
	return false
}

// Classification is the computed due/overdue bucket of a task. It is never
// persisted; it is evaluated lazily against the caller's clock so it cannot
// go stale.
type Classification string

const (
	ClassificationOverdue   Classification = "overdue"
	ClassificationDueToday  Classification = "due-today"
	ClassificationUpcoming  Classification = "upcoming"
	ClassificationCompleted Classification = "completed"
	ClassificationCancelled Classification = "cancelled"
)

// Task is a scheduled medical work item for an animal
type Task struct {
	shared.OrgAggregateRoot
	AnimalID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	Type        TaskType   `gorm:"type:varchar(30);not null"`
	Status      TaskStatus `gorm:"type:varchar(30);not null;default:'scheduled'"`
	DueDate     time.Time  `gorm:"not null;index"`
	AssignedTo  *uuid.UUID `gorm:"type:uuid"`
	Description string     `gorm:"type:text"`
	CompletedAt *time.Time
	CompletedBy *uuid.UUID `gorm:"type:uuid"`
	CancelledAt *time.Time
}

// TableName returns the table name for GORM
func (Task) TableName() string {
	return "medical_tasks"
}

// NewTask schedules a medical task for an animal
func NewTask(organizationID, animalID uuid.UUID, taskType TaskType, dueDate time.Time, assignedTo *uuid.UUID) (*Task, error) {
	if animalID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ANIMAL", "Animal ID cannot be empty")
	}
	if !taskType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TASK_TYPE", "Unknown task type")
	}
	if dueDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_DUE_DATE", "Due date is required")
	}

	task := &Task{
		OrgAggregateRoot: shared.NewOrgAggregateRoot(organizationID),
		AnimalID:         animalID,
		Type:             taskType,
		Status:           TaskStatusScheduled,
		DueDate:          dueDate,
		AssignedTo:       assignedTo,
	}

	task.AddDomainEvent(NewTaskScheduledEvent(task))

	return task, nil
}

// transitionTo applies a guarded status change
func (t *Task) transitionTo(target TaskStatus) error {
	if t.Status.IsTerminal() {
		return shared.ErrAlreadyTerminal
	}
	if !t.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_TRANSITION",
			fmt.Sprintf("Cannot transition task from %s to %s", t.Status, target))
	}

	t.Status = target
	t.UpdatedAt = time.Now()

	return nil
}

// Start moves the task into in-progress
func (t *Task) Start() error {
	return t.transitionTo(TaskStatusInProgress)
}

// SubmitForReview moves an in-progress task into pending-review
func (t *Task) SubmitForReview() error {
	return t.transitionTo(TaskStatusPendingReview)
}

// Hold pauses the task
func (t *Task) Hold() error {
	return t.transitionTo(TaskStatusOnHold)
}

// Resume returns an on-hold task to the schedule
func (t *Task) Resume() error {
	return t.transitionTo(TaskStatusScheduled)
}

// Complete marks the task done. Completion is terminal: a second attempt
// fails with ALREADY_TERMINAL and leaves the first completion untouched.
func (t *Task) Complete(completedBy uuid.UUID, at time.Time) error {
	if err := t.transitionTo(TaskStatusCompleted); err != nil {
		return err
	}

	t.CompletedAt = &at
	t.CompletedBy = &completedBy

	t.AddDomainEvent(NewTaskCompletedEvent(t))

	return nil
}

// Cancel abandons the task; cancelled tasks are terminal
func (t *Task) Cancel(at time.Time) error {
	if err := t.transitionTo(TaskStatusCancelled); err != nil {
		return err
	}

	t.CancelledAt = &at

	return nil
}

// Reassign changes the assigned user; nil unassigns
func (t *Task) Reassign(userID *uuid.UUID) error {
	if t.Status.IsTerminal() {
		return shared.ErrAlreadyTerminal
	}

	t.AssignedTo = userID
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	return nil
}

// Reschedule moves the due date of a non-terminal task
func (t *Task) Reschedule(dueDate time.Time) error {
	if t.Status.IsTerminal() {
		return shared.ErrAlreadyTerminal
	}
	if dueDate.IsZero() {
		return shared.NewDomainError("INVALID_DUE_DATE", "Due date is required")
	}

	t.DueDate = dueDate
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	return nil
}

// Classify computes the due/overdue bucket of the task as of the given
// moment. The comparison is date-only in UTC: a task due today is never
// overdue, regardless of time of day. Pure function of (status, dueDate,
// asOf); the task is not mutated.
func Classify(t *Task, asOf time.Time) Classification {
	switch t.Status {
	case TaskStatusCompleted:
		return ClassificationCompleted
	case TaskStatusCancelled:
		return ClassificationCancelled
	}

	due := toUTCDate(t.DueDate)
	today := toUTCDate(asOf)

	switch {
	case due.Before(today):
		return ClassificationOverdue
	case due.Equal(today):
		return ClassificationDueToday
	default:
		return ClassificationUpcoming
	}
}

// IsMissed reports whether the task became overdue without ever being
// completed, as of the given moment. Cancelled tasks are not missed.
func (t *Task) IsMissed(asOf time.Time) bool {
	return t.Status != TaskStatusCancelled && Classify(t, asOf) == ClassificationOverdue
}

func toUTCDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
