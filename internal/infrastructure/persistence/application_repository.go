package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shelterhq/backend/internal/domain/adoption"
	"github.com/shelterhq/backend/internal/domain/shared"
)

// GormApplicationRepository implements adoption.ApplicationRepository using GORM
type GormApplicationRepository struct {
	db *gorm.DB
}

// NewGormApplicationRepository creates a new GormApplicationRepository
func NewGormApplicationRepository(db *gorm.DB) *GormApplicationRepository {
	return &GormApplicationRepository{db: db}
}

// FindByIDForOrg finds an application by ID within an organization
func (r *GormApplicationRepository) FindByIDForOrg(ctx context.Context, organizationID, id uuid.UUID) (*adoption.Application, error) {
	var a adoption.Application
	if err := dbFromContext(ctx, r.db).WithContext(ctx).
		Where("organization_id = ? AND id = ?", organizationID, id).
		First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrUnknownEntity
		}
		return nil, err
	}
	return &a, nil
}

// FindAllForOrg finds applications for an organization with filtering
func (r *GormApplicationRepository) FindAllForOrg(ctx context.Context, organizationID uuid.UUID, filter shared.Filter) ([]adoption.Application, error) {
	var applications []adoption.Application
	query := r.applyFilter(
		dbFromContext(ctx, r.db).WithContext(ctx).Model(&adoption.Application{}).
			Where("organization_id = ?", organizationID),
		filter,
	)

	if err := query.Find(&applications).Error; err != nil {
		return nil, err
	}
	return applications, nil
}

// FindByAnimal finds applications targeting an animal
func (r *GormApplicationRepository) FindByAnimal(ctx context.Context, organizationID, animalID uuid.UUID) ([]adoption.Application, error) {
	var applications []adoption.Application
	if err := dbFromContext(ctx, r.db).WithContext(ctx).
		Where("organization_id = ? AND animal_id = ?", organizationID, animalID).
		Order("created_at DESC").
		Find(&applications).Error; err != nil {
		return nil, err
	}
	return applications, nil
}

// FindByPerson finds applications submitted by a person
func (r *GormApplicationRepository) FindByPerson(ctx context.Context, organizationID, personID uuid.UUID) ([]adoption.Application, error) {
	var applications []adoption.Application
	if err := dbFromContext(ctx, r.db).WithContext(ctx).
		Where("organization_id = ? AND person_id = ?", organizationID, personID).
		Order("created_at DESC").
		Find(&applications).Error; err != nil {
		return nil, err
	}
	return applications, nil
}

// CountForOrg counts applications matching the filter
func (r *GormApplicationRepository) CountForOrg(ctx context.Context, organizationID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(
		dbFromContext(ctx, r.db).WithContext(ctx).Model(&adoption.Application{}).
			Where("organization_id = ?", organizationID),
		filter,
	)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByStatus returns application counts per pipeline stage
func (r *GormApplicationRepository) CountByStatus(ctx context.Context, organizationID uuid.UUID) (map[adoption.ApplicationStatus]int64, error) {
	rows := []struct {
		Status adoption.ApplicationStatus
		Count  int64
	}{}

	if err := dbFromContext(ctx, r.db).WithContext(ctx).
		Model(&adoption.Application{}).
		Select("status, COUNT(*) as count").
		Where("organization_id = ?", organizationID).
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[adoption.ApplicationStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// Save creates or updates an application
func (r *GormApplicationRepository) Save(ctx context.Context, a *adoption.Application) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Save(a).Error
}

// SaveWithLock saves with optimistic locking (version check)
func (r *GormApplicationRepository) SaveWithLock(ctx context.Context, a *adoption.Application) error {
	db := dbFromContext(ctx, r.db).WithContext(ctx)

	currentVersion := a.Version
	a.Version++
	a.UpdatedAt = time.Now()

	result := db.Model(&adoption.Application{}).
		Where("id = ? AND organization_id = ? AND version = ?", a.ID, a.OrganizationID, currentVersion).
		Updates(map[string]interface{}{
			"status":       a.Status,
			"form":         a.Form,
			"review_notes": a.ReviewNotes,
			"decided_at":   a.DecidedAt,
			"decided_by":   a.DecidedBy,
			"version":      a.Version,
			"updated_at":   a.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

func (r *GormApplicationRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, ApplicationSortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

func (r *GormApplicationRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "kind":
			query = query.Where("kind = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		case "statuses":
			if statuses, ok := value.([]string); ok && len(statuses) > 0 {
				query = query.Where("status IN ?", statuses)
			}
		case "animal_id":
			query = query.Where("animal_id = ?", value)
		case "person_id":
			query = query.Where("person_id = ?", value)
		}
	}

	return query
}
