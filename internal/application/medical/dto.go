package medical

import (
	"time"

	"github.com/google/uuid"

	"github.com/shelterhq/backend/internal/domain/medical"
	"github.com/shelterhq/backend/internal/domain/shared"
)

// CreateTaskRequest represents a request to schedule a medical task
type CreateTaskRequest struct {
	AnimalID    uuid.UUID        `json:"animal_id" binding:"required"`
	Type        medical.TaskType `json:"type" binding:"required"`
	DueDate     time.Time        `json:"due_date" binding:"required"`
	AssignedTo  *uuid.UUID       `json:"assigned_to"`
	Description string           `json:"description" binding:"omitempty,max=2000"`
}

// CompleteTaskRequest represents a request to complete a task
type CompleteTaskRequest struct {
	CompletedAt time.Time `json:"completed_at"`
	Notes       string    `json:"notes" binding:"omitempty,max=2000"`
}

// RescheduleTaskRequest moves the due date of an open task
type RescheduleTaskRequest struct {
	DueDate time.Time `json:"due_date" binding:"required"`
}

// ReassignTaskRequest changes the assigned user; null unassigns
type ReassignTaskRequest struct {
	AssignedTo *uuid.UUID `json:"assigned_to"`
}

// BatchCompleteRequest completes many tasks with partial-failure semantics
type BatchCompleteRequest struct {
	TaskIDs     []uuid.UUID `json:"task_ids" binding:"required,min=1"`
	CompletedAt time.Time   `json:"completed_at"`
	Notes       string      `json:"notes" binding:"omitempty,max=2000"`
}

// AddRecordRequest writes a medical record by direct staff entry
type AddRecordRequest struct {
	AnimalID    uuid.UUID        `json:"animal_id" binding:"required"`
	Type        medical.TaskType `json:"type" binding:"required"`
	DeliveredAt time.Time        `json:"delivered_at" binding:"required"`
	Notes       string           `json:"notes" binding:"omitempty,max=2000"`
}

// TaskListFilter represents filter options for task lists
type TaskListFilter struct {
	AnimalID   *uuid.UUID          `form:"animal_id"`
	Type       *medical.TaskType   `form:"type"`
	Status     *medical.TaskStatus `form:"status"`
	AssignedTo *uuid.UUID          `form:"assigned_to"`
	DueFrom    *time.Time          `form:"due_from"`
	DueTo      *time.Time          `form:"due_to"`
	Page       int                 `form:"page" binding:"omitempty,min=1"`
	PageSize   int                 `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string              `form:"order_by"`
	OrderDir   string              `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

func (f TaskListFilter) toDomainFilter() shared.Filter {
	domainFilter := shared.DefaultFilter()
	domainFilter.OrderBy = "due_date"
	domainFilter.OrderDir = "asc"
	if f.Page > 0 {
		domainFilter.Page = f.Page
	}
	if f.PageSize > 0 {
		domainFilter.PageSize = f.PageSize
	}
	if f.OrderBy != "" {
		domainFilter.OrderBy = f.OrderBy
	}
	if f.OrderDir != "" {
		domainFilter.OrderDir = f.OrderDir
	}
	if f.AnimalID != nil {
		domainFilter.Filters["animal_id"] = *f.AnimalID
	}
	if f.Type != nil {
		domainFilter.Filters["type"] = string(*f.Type)
	}
	if f.Status != nil {
		domainFilter.Filters["status"] = string(*f.Status)
	}
	if f.AssignedTo != nil {
		domainFilter.Filters["assigned_to"] = *f.AssignedTo
	}
	if f.DueFrom != nil {
		domainFilter.Filters["due_from"] = *f.DueFrom
	}
	if f.DueTo != nil {
		domainFilter.Filters["due_to"] = *f.DueTo
	}
	return domainFilter
}

// TaskResponse represents a medical task in API responses. Classification
// is computed at read time against the caller's clock.
type TaskResponse struct {
	ID             uuid.UUID  `json:"id"`
	AnimalID       uuid.UUID  `json:"animal_id"`
	Type           string     `json:"type"`
	Status         string     `json:"status"`
	Classification string     `json:"classification"`
	DueDate        time.Time  `json:"due_date"`
	AssignedTo     *uuid.UUID `json:"assigned_to,omitempty"`
	Description    string     `json:"description,omitempty"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
	CompletedBy    *uuid.UUID `json:"completed_by,omitempty"`
	Version        int        `json:"version"`
	CreatedAt      time.Time  `json:"created_at"`
}

// CompleteTaskResponse carries the completed task and the recurrence
// follow-up, when the task type recurs
type CompleteTaskResponse struct {
	Task     TaskResponse  `json:"task"`
	FollowUp *TaskResponse `json:"follow_up,omitempty"`
}

// BatchFailure reports one task that could not be completed in a batch
type BatchFailure struct {
	TaskID uuid.UUID `json:"task_id"`
	Reason string    `json:"reason"`
}

// BatchCompleteResponse reports the partial-failure result of a batch
type BatchCompleteResponse struct {
	Updated  []TaskResponse `json:"updated"`
	Failures []BatchFailure `json:"failures"`
}

// ToTaskResponse converts a task and its computed classification
func ToTaskResponse(t *medical.Task, classification medical.Classification) TaskResponse {
	return TaskResponse{
		ID:             t.ID,
		AnimalID:       t.AnimalID,
		Type:           string(t.Type),
		Status:         t.Status.String(),
		Classification: string(classification),
		DueDate:        t.DueDate,
		AssignedTo:     t.AssignedTo,
		Description:    t.Description,
		CompletedAt:    t.CompletedAt,
		CompletedBy:    t.CompletedBy,
		Version:        t.Version,
		CreatedAt:      t.CreatedAt,
	}
}

// RecordResponse represents an immutable medical record
type RecordResponse struct {
	ID          uuid.UUID  `json:"id"`
	AnimalID    uuid.UUID  `json:"animal_id"`
	TaskID      *uuid.UUID `json:"task_id,omitempty"`
	Type        string     `json:"type"`
	DeliveredAt time.Time  `json:"delivered_at"`
	DeliveredBy uuid.UUID  `json:"delivered_by"`
	Notes       string     `json:"notes,omitempty"`
}

// ToRecordResponse converts a record to its API representation
func ToRecordResponse(r *medical.Record) RecordResponse {
	return RecordResponse{
		ID:          r.ID,
		AnimalID:    r.AnimalID,
		TaskID:      r.TaskID,
		Type:        string(r.Type),
		DeliveredAt: r.DeliveredAt,
		DeliveredBy: r.DeliveredBy,
		Notes:       r.Notes,
	}
}

// ToRecordResponses converts a slice of records
func ToRecordResponses(records []medical.Record) []RecordResponse {
	responses := make([]RecordResponse, len(records))
	for i := range records {
		responses[i] = ToRecordResponse(&records[i])
	}
	return responses
}
