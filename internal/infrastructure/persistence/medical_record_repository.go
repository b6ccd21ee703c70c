package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shelterhq/backend/internal/domain/medical"
	"github.com/shelterhq/backend/internal/domain/shared"
)

// GormRecordRepository implements medical.RecordRepository using GORM
type GormRecordRepository struct {
	db *gorm.DB
}

// NewGormRecordRepository creates a new GormRecordRepository
func NewGormRecordRepository(db *gorm.DB) *GormRecordRepository {
	return &GormRecordRepository{db: db}
}

// FindByAnimal finds the care history of an animal, newest delivery first
func (r *GormRecordRepository) FindByAnimal(ctx context.Context, organizationID, animalID uuid.UUID, filter shared.Filter) ([]medical.Record, error) {
	var records []medical.Record
	query := dbFromContext(ctx, r.db).WithContext(ctx).
		Model(&medical.Record{}).
		Where("organization_id = ? AND animal_id = ?", organizationID, animalID).
		Order("delivered_at DESC")

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	for key, value := range filter.Filters {
		if key == "type" {
			query = query.Where("type = ?", value)
		}
	}

	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// Save creates a record
func (r *GormRecordRepository) Save(ctx context.Context, record *medical.Record) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Save(record).Error
}
