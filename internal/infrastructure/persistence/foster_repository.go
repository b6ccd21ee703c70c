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

// GormFosterRepository implements adoption.FosterAssignmentRepository using GORM
type GormFosterRepository struct {
	db *gorm.DB
}

// NewGormFosterRepository creates a new GormFosterRepository
func NewGormFosterRepository(db *gorm.DB) *GormFosterRepository {
	return &GormFosterRepository{db: db}
}

// FindByIDForOrg finds a foster assignment by ID within an organization
func (r *GormFosterRepository) FindByIDForOrg(ctx context.Context, organizationID, id uuid.UUID) (*adoption.FosterAssignment, error) {
	var f adoption.FosterAssignment
	if err := dbFromContext(ctx, r.db).WithContext(ctx).
		Where("organization_id = ? AND id = ?", organizationID, id).
		First(&f).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrUnknownEntity
		}
		return nil, err
	}
	return &f, nil
}

// FindActiveByAnimal finds the currently active assignment for an animal
func (r *GormFosterRepository) FindActiveByAnimal(ctx context.Context, organizationID, animalID uuid.UUID) (*adoption.FosterAssignment, error) {
	var f adoption.FosterAssignment
	if err := dbFromContext(ctx, r.db).WithContext(ctx).
		Where("organization_id = ? AND animal_id = ? AND status = ?",
			organizationID, animalID, adoption.FosterStatusActive).
		First(&f).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrUnknownEntity
		}
		return nil, err
	}
	return &f, nil
}

// ExistsActiveForAnimal checks whether the animal has an active placement
func (r *GormFosterRepository) ExistsActiveForAnimal(ctx context.Context, organizationID, animalID uuid.UUID) (bool, error) {
	var count int64
	if err := dbFromContext(ctx, r.db).WithContext(ctx).
		Model(&adoption.FosterAssignment{}).
		Where("organization_id = ? AND animal_id = ? AND status = ?",
			organizationID, animalID, adoption.FosterStatusActive).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindByAnimal returns the full placement history for an animal
func (r *GormFosterRepository) FindByAnimal(ctx context.Context, organizationID, animalID uuid.UUID) ([]adoption.FosterAssignment, error) {
	var assignments []adoption.FosterAssignment
	if err := dbFromContext(ctx, r.db).WithContext(ctx).
		Where("organization_id = ? AND animal_id = ?", organizationID, animalID).
		Order("start_date DESC").
		Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

// FindActiveByPerson finds active assignments held by a foster
func (r *GormFosterRepository) FindActiveByPerson(ctx context.Context, organizationID, personID uuid.UUID) ([]adoption.FosterAssignment, error) {
	var assignments []adoption.FosterAssignment
	if err := dbFromContext(ctx, r.db).WithContext(ctx).
		Where("organization_id = ? AND person_id = ? AND status = ?",
			organizationID, personID, adoption.FosterStatusActive).
		Order("start_date DESC").
		Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

// CountActive counts active placements for an organization
func (r *GormFosterRepository) CountActive(ctx context.Context, organizationID uuid.UUID) (int64, error) {
	var count int64
	if err := dbFromContext(ctx, r.db).WithContext(ctx).
		Model(&adoption.FosterAssignment{}).
		Where("organization_id = ? AND status = ?", organizationID, adoption.FosterStatusActive).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a foster assignment
func (r *GormFosterRepository) Save(ctx context.Context, f *adoption.FosterAssignment) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Save(f).Error
}

// SaveWithLock saves with optimistic locking (version check)
func (r *GormFosterRepository) SaveWithLock(ctx context.Context, f *adoption.FosterAssignment) error {
	db := dbFromContext(ctx, r.db).WithContext(ctx)

	currentVersion := f.Version
	f.Version++
	f.UpdatedAt = time.Now()

	result := db.Model(&adoption.FosterAssignment{}).
		Where("id = ? AND organization_id = ? AND version = ?", f.ID, f.OrganizationID, currentVersion).
		Updates(map[string]interface{}{
			"status":     f.Status,
			"start_date": f.StartDate,
			"end_date":   f.EndDate,
			"notes":      f.Notes,
			"version":    f.Version,
			"updated_at": f.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}
