package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	medicalapp "github.com/shelterhq/backend/internal/application/medical"
)

// MedicalHandler handles medical task and record API endpoints
type MedicalHandler struct {
	BaseHandler
	taskService *medicalapp.TaskService
}

// NewMedicalHandler creates a new MedicalHandler
func NewMedicalHandler(taskService *medicalapp.TaskService) *MedicalHandler {
	return &MedicalHandler{
		taskService: taskService,
	}
}

// CreateTask schedules a medical task for an animal
func (h *MedicalHandler) CreateTask(c *gin.Context) {
	orgID, userID, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req medicalapp.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	task, err := h.taskService.Create(c.Request.Context(), orgID, userID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, task)
}

// GetTask retrieves a task by ID
func (h *MedicalHandler) GetTask(c *gin.Context) {
	orgID, err := getOrganizationID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid task ID format")
		return
	}

	task, err := h.taskService.GetByID(c.Request.Context(), orgID, taskID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, task)
}

// ListTasks retrieves tasks with filtering and pagination
func (h *MedicalHandler) ListTasks(c *gin.Context) {
	orgID, err := getOrganizationID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter medicalapp.TaskListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	tasks, total, err := h.taskService.List(c.Request.Context(), orgID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	page := filter.Page
	if page == 0 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize == 0 {
		pageSize = 20
	}

	h.SuccessWithMeta(c, tasks, total, page, pageSize)
}

// ListDueTasks retrieves open tasks due by the given date, default today
func (h *MedicalHandler) ListDueTasks(c *gin.Context) {
	orgID, err := getOrganizationID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	dueBy := time.Now().UTC()
	if raw := c.Query("due_by"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			h.BadRequest(c, "Invalid due_by format, expected RFC 3339")
			return
		}
		dueBy = parsed
	}

	tasks, err := h.taskService.ListDue(c.Request.Context(), orgID, dueBy)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, tasks)
}

// ListAnimalTasks retrieves all tasks for one animal
func (h *MedicalHandler) ListAnimalTasks(c *gin.Context) {
	orgID, err := getOrganizationID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	animalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid animal ID format")
		return
	}

	tasks, err := h.taskService.ListForAnimal(c.Request.Context(), orgID, animalID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, tasks)
}

// StartTask moves a task to in progress
func (h *MedicalHandler) StartTask(c *gin.Context) {
	h.transition(c, h.taskService.Start)
}

// SubmitTaskForReview moves a task to review
func (h *MedicalHandler) SubmitTaskForReview(c *gin.Context) {
	h.transition(c, h.taskService.SubmitForReview)
}

// HoldTask places a task on hold
func (h *MedicalHandler) HoldTask(c *gin.Context) {
	h.transition(c, h.taskService.Hold)
}

// ResumeTask resumes a held task
func (h *MedicalHandler) ResumeTask(c *gin.Context) {
	h.transition(c, h.taskService.Resume)
}

// CancelTask cancels an open task
func (h *MedicalHandler) CancelTask(c *gin.Context) {
	h.transition(c, h.taskService.Cancel)
}

func (h *MedicalHandler) transition(c *gin.Context, apply func(ctx context.Context, organizationID, actorID, taskID uuid.UUID) (*medicalapp.TaskResponse, error)) {
	orgID, userID, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid task ID format")
		return
	}

	task, err := apply(c.Request.Context(), orgID, userID, taskID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, task)
}

// RescheduleTask moves the due date of an open task
func (h *MedicalHandler) RescheduleTask(c *gin.Context) {
	orgID, userID, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid task ID format")
		return
	}

	var req medicalapp.RescheduleTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	task, err := h.taskService.Reschedule(c.Request.Context(), orgID, userID, taskID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, task)
}

// ReassignTask changes the assigned user; null body field unassigns
func (h *MedicalHandler) ReassignTask(c *gin.Context) {
	orgID, userID, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid task ID format")
		return
	}

	var req medicalapp.ReassignTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	task, err := h.taskService.Reassign(c.Request.Context(), orgID, userID, taskID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, task)
}

// CompleteTask completes a task, writing its medical record and any
// recurrence follow-up
func (h *MedicalHandler) CompleteTask(c *gin.Context) {
	orgID, userID, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid task ID format")
		return
	}

	var req medicalapp.CompleteTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.taskService.Complete(c.Request.Context(), orgID, userID, taskID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// BatchCompleteTasks completes many tasks with partial-failure semantics
func (h *MedicalHandler) BatchCompleteTasks(c *gin.Context) {
	orgID, userID, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req medicalapp.BatchCompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.taskService.BatchComplete(c.Request.Context(), orgID, userID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// ListRecords retrieves the medical history of an animal
func (h *MedicalHandler) ListRecords(c *gin.Context) {
	orgID, err := getOrganizationID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	animalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid animal ID format")
		return
	}

	records, err := h.taskService.ListRecords(c.Request.Context(), orgID, animalID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, records)
}

// AddRecord writes a medical record by direct staff entry
func (h *MedicalHandler) AddRecord(c *gin.Context) {
	orgID, userID, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req medicalapp.AddRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	record, err := h.taskService.AddRecord(c.Request.Context(), orgID, userID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, record)
}
