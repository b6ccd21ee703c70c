package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shelterhq/backend/internal/domain/annotation"
	"github.com/shelterhq/backend/internal/domain/shared"
)

// GormNoteRepository implements annotation.NoteRepository using GORM
type GormNoteRepository struct {
	db *gorm.DB
}

// NewGormNoteRepository creates a new GormNoteRepository
func NewGormNoteRepository(db *gorm.DB) *GormNoteRepository {
	return &GormNoteRepository{db: db}
}

// FindByIDForOrg finds a note by ID within an organization
func (r *GormNoteRepository) FindByIDForOrg(ctx context.Context, organizationID, id uuid.UUID) (*annotation.Note, error) {
	var n annotation.Note
	if err := dbFromContext(ctx, r.db).WithContext(ctx).
		Where("organization_id = ? AND id = ?", organizationID, id).
		First(&n).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrUnknownEntity
		}
		return nil, err
	}
	return &n, nil
}

// FindBySubject finds notes attached to a subject, newest first
func (r *GormNoteRepository) FindBySubject(ctx context.Context, organizationID uuid.UUID, subject annotation.SubjectRef, portalOnly bool, filter shared.Filter) ([]annotation.Note, error) {
	var notes []annotation.Note
	query := dbFromContext(ctx, r.db).WithContext(ctx).
		Model(&annotation.Note{}).
		Where("organization_id = ? AND subject_type = ? AND subject_id = ?",
			organizationID, subject.SubjectType, subject.SubjectID).
		Order("created_at DESC")

	if portalOnly {
		query = query.Where("visibility = ?", annotation.VisibilityPortalVisible)
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if err := query.Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

// Save creates or updates a note
func (r *GormNoteRepository) Save(ctx context.Context, n *annotation.Note) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Save(n).Error
}

// Delete removes a note
func (r *GormNoteRepository) Delete(ctx context.Context, organizationID, id uuid.UUID) error {
	result := dbFromContext(ctx, r.db).WithContext(ctx).
		Where("organization_id = ? AND id = ?", organizationID, id).
		Delete(&annotation.Note{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrUnknownEntity
	}
	return nil
}
