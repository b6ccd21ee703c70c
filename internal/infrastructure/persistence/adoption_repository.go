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

// GormAdoptionRepository implements adoption.AdoptionRepository using GORM
type GormAdoptionRepository struct {
	db *gorm.DB
}

// NewGormAdoptionRepository creates a new GormAdoptionRepository
func NewGormAdoptionRepository(db *gorm.DB) *GormAdoptionRepository {
	return &GormAdoptionRepository{db: db}
}

// FindByIDForOrg finds an adoption by ID within an organization
func (r *GormAdoptionRepository) FindByIDForOrg(ctx context.Context, organizationID, id uuid.UUID) (*adoption.Adoption, error) {
	var a adoption.Adoption
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

// FindByAnimal finds the adoption for an animal
func (r *GormAdoptionRepository) FindByAnimal(ctx context.Context, organizationID, animalID uuid.UUID) (*adoption.Adoption, error) {
	var a adoption.Adoption
	if err := dbFromContext(ctx, r.db).WithContext(ctx).
		Where("organization_id = ? AND animal_id = ?", organizationID, animalID).
		First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrUnknownEntity
		}
		return nil, err
	}
	return &a, nil
}

// FindAllForOrg finds adoptions for an organization with filtering
func (r *GormAdoptionRepository) FindAllForOrg(ctx context.Context, organizationID uuid.UUID, filter shared.Filter) ([]adoption.Adoption, error) {
	var adoptions []adoption.Adoption
	query := dbFromContext(ctx, r.db).WithContext(ctx).
		Model(&adoption.Adoption{}).
		Where("organization_id = ?", organizationID).
		Order("date DESC")

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if err := query.Find(&adoptions).Error; err != nil {
		return nil, err
	}
	return adoptions, nil
}

// CountInWindow counts adoptions finalized inside a reporting window
func (r *GormAdoptionRepository) CountInWindow(ctx context.Context, organizationID uuid.UUID, from, to time.Time) (int64, error) {
	var count int64
	if err := dbFromContext(ctx, r.db).WithContext(ctx).
		Model(&adoption.Adoption{}).
		Where("organization_id = ? AND date >= ? AND date < ?", organizationID, from, to).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SumFeesInWindow totals adoption fees in cents inside a reporting window
func (r *GormAdoptionRepository) SumFeesInWindow(ctx context.Context, organizationID uuid.UUID, from, to time.Time) (int64, error) {
	var total *int64
	if err := dbFromContext(ctx, r.db).WithContext(ctx).
		Model(&adoption.Adoption{}).
		Select("SUM(fee)").
		Where("organization_id = ? AND date >= ? AND date < ?", organizationID, from, to).
		Scan(&total).Error; err != nil {
		return 0, err
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}

// Save creates an adoption record
func (r *GormAdoptionRepository) Save(ctx context.Context, a *adoption.Adoption) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Save(a).Error
}
