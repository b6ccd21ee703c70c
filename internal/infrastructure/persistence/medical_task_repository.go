package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shelterhq/backend/internal/domain/medical"
	"github.com/shelterhq/backend/internal/domain/shared"
)

// GormTaskRepository implements medical.TaskRepository using GORM
type GormTaskRepository struct {
	db *gorm.DB
}

// NewGormTaskRepository creates a new GormTaskRepository
func NewGormTaskRepository(db *gorm.DB) *GormTaskRepository {
	return &GormTaskRepository{db: db}
}

// FindByIDForOrg finds a task by ID within an organization
func (r *GormTaskRepository) FindByIDForOrg(ctx context.Context, organizationID, id uuid.UUID) (*medical.Task, error) {
	var task medical.Task
	if err := dbFromContext(ctx, r.db).WithContext(ctx).
		Where("organization_id = ? AND id = ?", organizationID, id).
		First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrUnknownEntity
		}
		return nil, err
	}
	return &task, nil
}

// FindAllForOrg finds tasks for an organization with filtering
func (r *GormTaskRepository) FindAllForOrg(ctx context.Context, organizationID uuid.UUID, filter shared.Filter) ([]medical.Task, error) {
	var tasks []medical.Task
	query := r.applyFilter(
		dbFromContext(ctx, r.db).WithContext(ctx).Model(&medical.Task{}).
			Where("organization_id = ?", organizationID),
		filter,
	)

	if err := query.Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// FindByAnimal finds tasks for an animal
func (r *GormTaskRepository) FindByAnimal(ctx context.Context, organizationID, animalID uuid.UUID, filter shared.Filter) ([]medical.Task, error) {
	var tasks []medical.Task
	query := r.applyFilter(
		dbFromContext(ctx, r.db).WithContext(ctx).Model(&medical.Task{}).
			Where("organization_id = ? AND animal_id = ?", organizationID, animalID),
		filter,
	)

	if err := query.Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// FindOpenDueBy finds non-terminal tasks due on or before the given date
func (r *GormTaskRepository) FindOpenDueBy(ctx context.Context, organizationID uuid.UUID, dueBy time.Time) ([]medical.Task, error) {
	var tasks []medical.Task
	if err := dbFromContext(ctx, r.db).WithContext(ctx).
		Where("organization_id = ? AND due_date <= ? AND status NOT IN ?",
			organizationID, dueBy, []medical.TaskStatus{medical.TaskStatusCompleted, medical.TaskStatusCancelled}).
		Order("due_date ASC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// FindInWindow finds tasks whose due date falls inside [from, to)
func (r *GormTaskRepository) FindInWindow(ctx context.Context, organizationID uuid.UUID, from, to time.Time) ([]medical.Task, error) {
	var tasks []medical.Task
	if err := dbFromContext(ctx, r.db).WithContext(ctx).
		Where("organization_id = ? AND due_date >= ? AND due_date < ?", organizationID, from, to).
		Order("due_date ASC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// CountForOrg counts tasks matching the filter
func (r *GormTaskRepository) CountForOrg(ctx context.Context, organizationID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(
		dbFromContext(ctx, r.db).WithContext(ctx).Model(&medical.Task{}).
			Where("organization_id = ?", organizationID),
		filter,
	)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a task
func (r *GormTaskRepository) Save(ctx context.Context, task *medical.Task) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Save(task).Error
}

// SaveWithLock saves with optimistic locking (version check)
func (r *GormTaskRepository) SaveWithLock(ctx context.Context, task *medical.Task) error {
	db := dbFromContext(ctx, r.db).WithContext(ctx)

	currentVersion := task.Version
	task.Version++
	task.UpdatedAt = time.Now()

	result := db.Model(&medical.Task{}).
		Where("id = ? AND organization_id = ? AND version = ?", task.ID, task.OrganizationID, currentVersion).
		Updates(map[string]interface{}{
			"type":         task.Type,
			"status":       task.Status,
			"due_date":     task.DueDate,
			"assigned_to":  task.AssignedTo,
			"description":  task.Description,
			"completed_at": task.CompletedAt,
			"completed_by": task.CompletedBy,
			"cancelled_at": task.CancelledAt,
			"version":      task.Version,
			"updated_at":   task.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

func (r *GormTaskRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, TaskSortFields, "due_date")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

func (r *GormTaskRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("description ILIKE ?", "%"+filter.Search+"%")
	}

	for key, value := range filter.Filters {
		switch key {
		case "type":
			query = query.Where("type = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		case "statuses":
			if statuses, ok := value.([]string); ok && len(statuses) > 0 {
				query = query.Where("status IN ?", statuses)
			}
		case "assigned_to":
			query = query.Where("assigned_to = ?", value)
		case "due_from":
			if t, ok := value.(time.Time); ok {
				query = query.Where("due_date >= ?", t)
			}
		case "due_to":
			if t, ok := value.(time.Time); ok {
				query = query.Where("due_date < ?", t)
			}
		}
	}

	return query
}
