package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shelterhq/backend/internal/domain/person"
	"github.com/shelterhq/backend/internal/domain/shared"
)

// GormPersonRepository implements person.Repository using GORM
type GormPersonRepository struct {
	db *gorm.DB
}

// NewGormPersonRepository creates a new GormPersonRepository
func NewGormPersonRepository(db *gorm.DB) *GormPersonRepository {
	return &GormPersonRepository{db: db}
}

// FindByIDForOrg finds a person by ID within an organization
func (r *GormPersonRepository) FindByIDForOrg(ctx context.Context, organizationID, id uuid.UUID) (*person.Person, error) {
	var p person.Person
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

// FindAllForOrg finds people for an organization with filtering
func (r *GormPersonRepository) FindAllForOrg(ctx context.Context, organizationID uuid.UUID, filter shared.Filter) ([]person.Person, error) {
	var people []person.Person
	query := r.applyFilter(
		dbFromContext(ctx, r.db).WithContext(ctx).Model(&person.Person{}).
			Where("organization_id = ?", organizationID),
		filter,
	)

	if err := query.Find(&people).Error; err != nil {
		return nil, err
	}
	return people, nil
}

// FindByType finds people of a given type
func (r *GormPersonRepository) FindByType(ctx context.Context, organizationID uuid.UUID, personType person.Type) ([]person.Person, error) {
	var people []person.Person
	if err := dbFromContext(ctx, r.db).WithContext(ctx).
		Where("organization_id = ? AND type = ?", organizationID, personType).
		Order("last_name ASC, first_name ASC").
		Find(&people).Error; err != nil {
		return nil, err
	}
	return people, nil
}

// CountForOrg counts people matching the filter
func (r *GormPersonRepository) CountForOrg(ctx context.Context, organizationID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(
		dbFromContext(ctx, r.db).WithContext(ctx).Model(&person.Person{}).
			Where("organization_id = ?", organizationID),
		filter,
	)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a person
func (r *GormPersonRepository) Save(ctx context.Context, p *person.Person) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Save(p).Error
}

func (r *GormPersonRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, PersonSortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

func (r *GormPersonRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ?", pattern, pattern, pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "type":
			query = query.Where("type = ?", value)
		case "email":
			query = query.Where("email = ?", value)
		}
	}

	return query
}
