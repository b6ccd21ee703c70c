package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shelterhq/backend/internal/domain/annotation"
	"github.com/shelterhq/backend/internal/domain/shared"
)

// GormPhotoRepository implements annotation.PhotoRepository using GORM
type GormPhotoRepository struct {
	db *gorm.DB
}

// NewGormPhotoRepository creates a new GormPhotoRepository
func NewGormPhotoRepository(db *gorm.DB) *GormPhotoRepository {
	return &GormPhotoRepository{db: db}
}

// FindByIDForOrg finds a photo by ID within an organization
func (r *GormPhotoRepository) FindByIDForOrg(ctx context.Context, organizationID, id uuid.UUID) (*annotation.Photo, error) {
	var p annotation.Photo
	if err := dbFromContext(ctx, r.db).WithContext(ctx).
		Where("organization_id = ? AND id = ?", organizationID, id).
		First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrUnknownEntity
		}
		return nil, err
	}
	return &p, nil
}

// FindBySubject finds photos attached to a subject, primary first
func (r *GormPhotoRepository) FindBySubject(ctx context.Context, organizationID uuid.UUID, subject annotation.SubjectRef, filter shared.Filter) ([]annotation.Photo, error) {
	var photos []annotation.Photo
	query := dbFromContext(ctx, r.db).WithContext(ctx).
		Model(&annotation.Photo{}).
		Where("organization_id = ? AND subject_type = ? AND subject_id = ?",
			organizationID, subject.SubjectType, subject.SubjectID).
		Order("is_primary DESC, created_at DESC")

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if err := query.Find(&photos).Error; err != nil {
		return nil, err
	}
	return photos, nil
}

// Save creates or updates a photo. A photo marked primary demotes the
// subject's other photos inside the same transaction.
func (r *GormPhotoRepository) Save(ctx context.Context, p *annotation.Photo) error {
	db := dbFromContext(ctx, r.db).WithContext(ctx)

	if !p.IsPrimary {
		return db.Save(p).Error
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&annotation.Photo{}).
			Where("organization_id = ? AND subject_type = ? AND subject_id = ? AND id <> ?",
				p.OrganizationID, p.SubjectType, p.SubjectID, p.ID).
			Update("is_primary", false).Error; err != nil {
			return err
		}
		return tx.Save(p).Error
	})
}

// Delete removes a photo record
func (r *GormPhotoRepository) Delete(ctx context.Context, organizationID, id uuid.UUID) error {
	result := dbFromContext(ctx, r.db).WithContext(ctx).
		Where("organization_id = ? AND id = ?", organizationID, id).
		Delete(&annotation.Photo{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrUnknownEntity
	}
	return nil
}
