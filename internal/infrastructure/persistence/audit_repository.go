package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shelterhq/backend/internal/domain/audit"
	"github.com/shelterhq/backend/internal/domain/shared"
)

// GormAuditRepository implements audit.Repository using GORM. The audit log
// is append-only: there is no update or delete path here.
type GormAuditRepository struct {
	db *gorm.DB
}

// NewGormAuditRepository creates a new GormAuditRepository
func NewGormAuditRepository(db *gorm.DB) *GormAuditRepository {
	return &GormAuditRepository{db: db}
}

// Append writes an entry inside the caller's transaction
func (r *GormAuditRepository) Append(ctx context.Context, entry *audit.Entry) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Create(entry).Error
}

// FindForOrg lists entries for an organization, newest first
func (r *GormAuditRepository) FindForOrg(ctx context.Context, organizationID uuid.UUID, filter shared.Filter) ([]audit.Entry, error) {
	var entries []audit.Entry
	query := r.applyFilter(
		dbFromContext(ctx, r.db).WithContext(ctx).Model(&audit.Entry{}).
			Where("organization_id = ?", organizationID),
		filter,
	)

	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// FindByEntity lists entries for a single entity, newest first
func (r *GormAuditRepository) FindByEntity(ctx context.Context, organizationID uuid.UUID, entityType string, entityID uuid.UUID, filter shared.Filter) ([]audit.Entry, error) {
	var entries []audit.Entry
	query := r.applyFilter(
		dbFromContext(ctx, r.db).WithContext(ctx).Model(&audit.Entry{}).
			Where("organization_id = ? AND entity_type = ? AND entity_id = ?",
				organizationID, entityType, entityID),
		filter,
	)

	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// CountForOrg counts entries matching the filter
func (r *GormAuditRepository) CountForOrg(ctx context.Context, organizationID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(
		dbFromContext(ctx, r.db).WithContext(ctx).Model(&audit.Entry{}).
			Where("organization_id = ?", organizationID),
		filter,
	)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByEntityTypeInWindow buckets entry counts by entity type inside a
// reporting window
func (r *GormAuditRepository) CountByEntityTypeInWindow(ctx context.Context, organizationID uuid.UUID, from, to time.Time) (map[string]int64, error) {
	rows := []struct {
		EntityType string
		Count      int64
	}{}

	if err := dbFromContext(ctx, r.db).WithContext(ctx).
		Model(&audit.Entry{}).
		Select("entity_type, COUNT(*) as count").
		Where("organization_id = ? AND recorded_at >= ? AND recorded_at < ?", organizationID, from, to).
		Group("entity_type").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.EntityType] = row.Count
	}
	return counts, nil
}

func (r *GormAuditRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, AuditSortFields, "recorded_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

func (r *GormAuditRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "action":
			query = query.Where("action = ?", value)
		case "entity_type":
			query = query.Where("entity_type = ?", value)
		case "actor_id":
			query = query.Where("actor_id = ?", value)
		case "from":
			if t, ok := value.(time.Time); ok {
				query = query.Where("recorded_at >= ?", t)
			}
		case "to":
			if t, ok := value.(time.Time); ok {
				query = query.Where("recorded_at < ?", t)
			}
		}
	}

	return query
}
