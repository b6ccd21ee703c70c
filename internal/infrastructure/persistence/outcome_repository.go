package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shelterhq/backend/internal/domain/animal"
	"github.com/shelterhq/backend/internal/domain/shared"
)

// GormOutcomeRepository implements animal.OutcomeRepository using GORM
type GormOutcomeRepository struct {
	db *gorm.DB
}

// NewGormOutcomeRepository creates a new GormOutcomeRepository
func NewGormOutcomeRepository(db *gorm.DB) *GormOutcomeRepository {
	return &GormOutcomeRepository{db: db}
}

// FindByAnimal finds the outcome record for an animal
func (r *GormOutcomeRepository) FindByAnimal(ctx context.Context, organizationID, animalID uuid.UUID) (*animal.Outcome, error) {
	var outcome animal.Outcome
	if err := dbFromContext(ctx, r.db).WithContext(ctx).
		Where("organization_id = ? AND animal_id = ?", organizationID, animalID).
		First(&outcome).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrUnknownEntity
		}
		return nil, err
	}
	return &outcome, nil
}

// ExistsForAnimal checks whether an outcome exists for the animal
func (r *GormOutcomeRepository) ExistsForAnimal(ctx context.Context, organizationID, animalID uuid.UUID) (bool, error) {
	var count int64
	if err := dbFromContext(ctx, r.db).WithContext(ctx).
		Model(&animal.Outcome{}).
		Where("organization_id = ? AND animal_id = ?", organizationID, animalID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountByType returns outcome counts per type within a reporting window
func (r *GormOutcomeRepository) CountByType(ctx context.Context, organizationID uuid.UUID, from, to time.Time) (map[animal.OutcomeType]int64, error) {
	rows := []struct {
		Type  animal.OutcomeType
		Count int64
	}{}

	if err := dbFromContext(ctx, r.db).WithContext(ctx).
		Model(&animal.Outcome{}).
		Select("type, COUNT(*) as count").
		Where("organization_id = ? AND date >= ? AND date < ?", organizationID, from, to).
		Group("type").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[animal.OutcomeType]int64, len(rows))
	for _, row := range rows {
		counts[row.Type] = row.Count
	}
	return counts, nil
}

// Save creates an outcome record
func (r *GormOutcomeRepository) Save(ctx context.Context, outcome *animal.Outcome) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Save(outcome).Error
}
