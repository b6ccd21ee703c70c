package medical

import (
	"context"
	"time"

	"github.com/google/uuid"

	auditapp "github.com/shelterhq/backend/internal/application/audit"
	"github.com/shelterhq/backend/internal/domain/animal"
	"github.com/shelterhq/backend/internal/domain/audit"
	"github.com/shelterhq/backend/internal/domain/medical"
	"github.com/shelterhq/backend/internal/domain/shared"
)

// TaskService handles medical task scheduling and completion
type TaskService struct {
	uow        shared.UnitOfWork
	taskRepo   medical.TaskRepository
	recordRepo medical.RecordRepository
	animalRepo animal.Repository
	policy     medical.RecurrencePolicy
	recorder   *auditapp.Recorder
}

// NewTaskService creates a new TaskService
func NewTaskService(
	uow shared.UnitOfWork,
	taskRepo medical.TaskRepository,
	recordRepo medical.RecordRepository,
	animalRepo animal.Repository,
	policy medical.RecurrencePolicy,
	recorder *auditapp.Recorder,
) *TaskService {
	return &TaskService{
		uow:        uow,
		taskRepo:   taskRepo,
		recordRepo: recordRepo,
		animalRepo: animalRepo,
		policy:     policy,
		recorder:   recorder,
	}
}

// Create schedules a medical task for an animal in care
func (s *TaskService) Create(ctx context.Context, organizationID, actorID uuid.UUID, req CreateTaskRequest) (*TaskResponse, error) {
	var result *medical.Task
	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		a, err := s.animalRepo.FindByIDForOrg(ctx, organizationID, req.AnimalID)
		if err != nil {
			return err
		}
		if a.IsTerminal() {
			return shared.ErrAlreadyTerminal
		}

		task, err := medical.NewTask(organizationID, a.ID, req.Type, req.DueDate, req.AssignedTo)
		if err != nil {
			return err
		}
		if req.Description != "" {
			task.Description = req.Description
		}

		if err := s.taskRepo.Save(ctx, task); err != nil {
			return err
		}
		if err := s.recorder.Created(ctx, organizationID, &actorID, medical.AggregateTypeMedicalTask, task.ID, taskSnapshot(task)); err != nil {
			return err
		}

		result = task
		return nil
	})
	if err != nil {
		return nil, err
	}

	response := s.toResponse(result, time.Now())
	return &response, nil
}

// GetByID retrieves a task with its computed classification
func (s *TaskService) GetByID(ctx context.Context, organizationID, taskID uuid.UUID) (*TaskResponse, error) {
	task, err := s.taskRepo.FindByIDForOrg(ctx, organizationID, taskID)
	if err != nil {
		return nil, err
	}
	response := s.toResponse(task, time.Now())
	return &response, nil
}

// List retrieves tasks with filtering; classifications are computed against
// the caller's clock, never stored
func (s *TaskService) List(ctx context.Context, organizationID uuid.UUID, filter TaskListFilter) ([]TaskResponse, int64, error) {
	domainFilter := filter.toDomainFilter()

	tasks, err := s.taskRepo.FindAllForOrg(ctx, organizationID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.taskRepo.CountForOrg(ctx, organizationID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return s.toResponses(tasks, time.Now()), total, nil
}

// ListForAnimal retrieves the medical schedule of one animal
func (s *TaskService) ListForAnimal(ctx context.Context, organizationID, animalID uuid.UUID) ([]TaskResponse, error) {
	tasks, err := s.taskRepo.FindByAnimal(ctx, organizationID, animalID, shared.Filter{OrderBy: "due_date", OrderDir: "asc"})
	if err != nil {
		return nil, err
	}
	return s.toResponses(tasks, time.Now()), nil
}

// ListDue retrieves open tasks due on or before the given date, oldest due
// date first. With a zero date it defaults to today.
func (s *TaskService) ListDue(ctx context.Context, organizationID uuid.UUID, dueBy time.Time) ([]TaskResponse, error) {
	if dueBy.IsZero() {
		dueBy = time.Now().UTC()
	}

	tasks, err := s.taskRepo.FindOpenDueBy(ctx, organizationID, dueBy)
	if err != nil {
		return nil, err
	}
	return s.toResponses(tasks, dueBy), nil
}

// Start moves the task to in-progress
func (s *TaskService) Start(ctx context.Context, organizationID, actorID, taskID uuid.UUID) (*TaskResponse, error) {
	return s.transition(ctx, organizationID, actorID, taskID, func(t *medical.Task) error {
		return t.Start()
	})
}

// SubmitForReview moves an in-progress task to pending-review
func (s *TaskService) SubmitForReview(ctx context.Context, organizationID, actorID, taskID uuid.UUID) (*TaskResponse, error) {
	return s.transition(ctx, organizationID, actorID, taskID, func(t *medical.Task) error {
		return t.SubmitForReview()
	})
}

// Hold pauses the task
func (s *TaskService) Hold(ctx context.Context, organizationID, actorID, taskID uuid.UUID) (*TaskResponse, error) {
	return s.transition(ctx, organizationID, actorID, taskID, func(t *medical.Task) error {
		return t.Hold()
	})
}

// Resume returns an on-hold task to the schedule
func (s *TaskService) Resume(ctx context.Context, organizationID, actorID, taskID uuid.UUID) (*TaskResponse, error) {
	return s.transition(ctx, organizationID, actorID, taskID, func(t *medical.Task) error {
		return t.Resume()
	})
}

// Cancel abandons the task
func (s *TaskService) Cancel(ctx context.Context, organizationID, actorID, taskID uuid.UUID) (*TaskResponse, error) {
	return s.transition(ctx, organizationID, actorID, taskID, func(t *medical.Task) error {
		return t.Cancel(time.Now().UTC())
	})
}

// Reschedule moves the due date of an open task
func (s *TaskService) Reschedule(ctx context.Context, organizationID, actorID, taskID uuid.UUID, req RescheduleTaskRequest) (*TaskResponse, error) {
	return s.transition(ctx, organizationID, actorID, taskID, func(t *medical.Task) error {
		return t.Reschedule(req.DueDate)
	})
}

// Reassign changes the assigned user; nil unassigns
func (s *TaskService) Reassign(ctx context.Context, organizationID, actorID, taskID uuid.UUID, req ReassignTaskRequest) (*TaskResponse, error) {
	return s.transition(ctx, organizationID, actorID, taskID, func(t *medical.Task) error {
		return t.Reassign(req.AssignedTo)
	})
}

// Complete marks the task done, writes the immutable medical record, and
// schedules the recurrence follow-up, all in one unit. A completed task is
// never transitioned again; a racing second completion fails whole.
func (s *TaskService) Complete(ctx context.Context, organizationID, actorID, taskID uuid.UUID, req CompleteTaskRequest) (*CompleteTaskResponse, error) {
	completedAt := req.CompletedAt
	if completedAt.IsZero() {
		completedAt = time.Now().UTC()
	}

	var (
		completed *medical.Task
		followUp  *medical.Task
	)
	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		task, err := s.taskRepo.FindByIDForOrg(ctx, organizationID, taskID)
		if err != nil {
			return err
		}

		before := taskSnapshot(task)
		if err := task.Complete(actorID, completedAt); err != nil {
			return err
		}
		if err := s.taskRepo.SaveWithLock(ctx, task); err != nil {
			return err
		}
		if err := s.recorder.Transitioned(ctx, organizationID, &actorID, medical.AggregateTypeMedicalTask, task.ID, before, taskSnapshot(task)); err != nil {
			return err
		}

		record, err := medical.NewRecordFromTask(task, actorID, completedAt)
		if err != nil {
			return err
		}
		if req.Notes != "" {
			record.Notes = req.Notes
		}
		if err := s.recordRepo.Save(ctx, record); err != nil {
			return err
		}
		if err := s.recorder.Created(ctx, organizationID, &actorID, medical.AggregateTypeMedicalRecord, record.ID, audit.Snapshot{
			"animal_id":    record.AnimalID.String(),
			"type":         string(record.Type),
			"delivered_at": record.DeliveredAt.Format(time.RFC3339),
		}); err != nil {
			return err
		}

		next, err := s.policy.FollowUp(task, completedAt)
		if err != nil {
			return err
		}
		if next != nil {
			if err := s.taskRepo.Save(ctx, next); err != nil {
				return err
			}
			if err := s.recorder.Created(ctx, organizationID, &actorID, medical.AggregateTypeMedicalTask, next.ID, taskSnapshot(next)); err != nil {
				return err
			}
		}

		completed = task
		followUp = next
		return nil
	})
	if err != nil {
		return nil, err
	}

	response := CompleteTaskResponse{Task: s.toResponse(completed, completedAt)}
	if followUp != nil {
		followUpResponse := s.toResponse(followUp, completedAt)
		response.FollowUp = &followUpResponse
	}
	return &response, nil
}

// BatchComplete completes many tasks in one call with partial-failure
// semantics: each task commits independently, failures are reported per
// task and never roll back the others. Not for all-or-nothing use.
func (s *TaskService) BatchComplete(ctx context.Context, organizationID, actorID uuid.UUID, req BatchCompleteRequest) (*BatchCompleteResponse, error) {
	response := &BatchCompleteResponse{
		Updated:  make([]TaskResponse, 0, len(req.TaskIDs)),
		Failures: make([]BatchFailure, 0),
	}

	for _, taskID := range req.TaskIDs {
		completed, err := s.Complete(ctx, organizationID, actorID, taskID, CompleteTaskRequest{
			CompletedAt: req.CompletedAt,
			Notes:       req.Notes,
		})
		if err != nil {
			response.Failures = append(response.Failures, BatchFailure{
				TaskID: taskID,
				Reason: err.Error(),
			})
			continue
		}
		response.Updated = append(response.Updated, completed.Task)
	}

	return response, nil
}

// ListRecords retrieves the immutable medical history of an animal
func (s *TaskService) ListRecords(ctx context.Context, organizationID, animalID uuid.UUID) ([]RecordResponse, error) {
	records, err := s.recordRepo.FindByAnimal(ctx, organizationID, animalID, shared.Filter{})
	if err != nil {
		return nil, err
	}
	return ToRecordResponses(records), nil
}

// AddRecord writes a direct staff-entered medical record without a task
func (s *TaskService) AddRecord(ctx context.Context, organizationID, actorID uuid.UUID, req AddRecordRequest) (*RecordResponse, error) {
	var result *medical.Record
	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		if _, err := s.animalRepo.FindByIDForOrg(ctx, organizationID, req.AnimalID); err != nil {
			return err
		}

		record, err := medical.NewRecord(organizationID, req.AnimalID, actorID, req.Type, req.DeliveredAt, req.Notes)
		if err != nil {
			return err
		}
		if err := s.recordRepo.Save(ctx, record); err != nil {
			return err
		}
		if err := s.recorder.Created(ctx, organizationID, &actorID, medical.AggregateTypeMedicalRecord, record.ID, audit.Snapshot{
			"animal_id":    record.AnimalID.String(),
			"type":         string(record.Type),
			"delivered_at": record.DeliveredAt.Format(time.RFC3339),
		}); err != nil {
			return err
		}

		result = record
		return nil
	})
	if err != nil {
		return nil, err
	}

	response := ToRecordResponse(result)
	return &response, nil
}

func (s *TaskService) transition(ctx context.Context, organizationID, actorID, taskID uuid.UUID, apply func(*medical.Task) error) (*TaskResponse, error) {
	var result *medical.Task
	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		task, err := s.taskRepo.FindByIDForOrg(ctx, organizationID, taskID)
		if err != nil {
			return err
		}

		before := taskSnapshot(task)
		if err := apply(task); err != nil {
			return err
		}
		if err := s.taskRepo.SaveWithLock(ctx, task); err != nil {
			return err
		}
		if err := s.recorder.Transitioned(ctx, organizationID, &actorID, medical.AggregateTypeMedicalTask, task.ID, before, taskSnapshot(task)); err != nil {
			return err
		}

		result = task
		return nil
	})
	if err != nil {
		return nil, err
	}

	response := s.toResponse(result, time.Now())
	return &response, nil
}

func (s *TaskService) toResponse(task *medical.Task, asOf time.Time) TaskResponse {
	return ToTaskResponse(task, medical.Classify(task, asOf))
}

func (s *TaskService) toResponses(tasks []medical.Task, asOf time.Time) []TaskResponse {
	responses := make([]TaskResponse, len(tasks))
	for i := range tasks {
		responses[i] = s.toResponse(&tasks[i], asOf)
	}
	return responses
}

func taskSnapshot(t *medical.Task) audit.Snapshot {
	snapshot := audit.Snapshot{
		"animal_id": t.AnimalID.String(),
		"type":      string(t.Type),
		"status":    string(t.Status),
		"due_date":  t.DueDate.Format(time.RFC3339),
	}
	if t.AssignedTo != nil {
		snapshot["assigned_to"] = t.AssignedTo.String()
	}
	return snapshot
}
