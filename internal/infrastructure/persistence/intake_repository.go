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

// GormIntakeRepository implements animal.IntakeRepository using GORM
type GormIntakeRepository struct {
	db *gorm.DB
}

// NewGormIntakeRepository creates a new GormIntakeRepository
func NewGormIntakeRepository(db *gorm.DB) *GormIntakeRepository {
	return &GormIntakeRepository{db: db}
}

// FindByAnimal finds the intake record for an animal
func (r *GormIntakeRepository) FindByAnimal(ctx context.Context, organizationID, animalID uuid.UUID) (*animal.Intake, error) {
	var intake animal.Intake
	if err := dbFromContext(ctx, r.db).WithContext(ctx).
		Where("organization_id = ? AND animal_id = ?", organizationID, animalID).
		First(&intake).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrUnknownEntity
		}
		return nil, err
	}
	return &intake, nil
}

// CountByMonth returns intake counts bucketed by calendar month
func (r *GormIntakeRepository) CountByMonth(ctx context.Context, organizationID uuid.UUID, from, to time.Time) (map[time.Time]int64, error) {
	rows := []struct {
		Month time.Time
		Count int64
	}{}

	if err := dbFromContext(ctx, r.db).WithContext(ctx).
		Model(&animal.Intake{}).
		Select("date_trunc('month', date) as month, COUNT(*) as count").
		Where("organization_id = ? AND date >= ? AND date < ?", organizationID, from, to).
		Group("month").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[time.Time]int64, len(rows))
	for _, row := range rows {
		counts[row.Month.UTC()] = row.Count
	}
	return counts, nil
}

// Save creates an intake record
func (r *GormIntakeRepository) Save(ctx context.Context, intake *animal.Intake) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Save(intake).Error
}
