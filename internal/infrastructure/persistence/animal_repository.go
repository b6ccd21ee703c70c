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

// GormAnimalRepository implements animal.Repository using GORM
type GormAnimalRepository struct {
	db *gorm.DB
}

// NewGormAnimalRepository creates a new GormAnimalRepository
func NewGormAnimalRepository(db *gorm.DB) *GormAnimalRepository {
	return &GormAnimalRepository{db: db}
}

// FindByIDForOrg finds an animal by ID within an organization. An ID that
// belongs to another organization is indistinguishable from a missing one.
func (r *GormAnimalRepository) FindByIDForOrg(ctx context.Context, organizationID, id uuid.UUID) (*animal.Animal, error) {
	var a animal.Animal
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

// FindAllForOrg finds animals for an organization with filtering
func (r *GormAnimalRepository) FindAllForOrg(ctx context.Context, organizationID uuid.UUID, filter shared.Filter) ([]animal.Animal, error) {
	var animals []animal.Animal
	query := r.applyFilter(
		dbFromContext(ctx, r.db).WithContext(ctx).Model(&animal.Animal{}).
			Where("organization_id = ?", organizationID),
		filter,
	)

	if err := query.Find(&animals).Error; err != nil {
		return nil, err
	}
	return animals, nil
}

// CountForOrg counts animals matching the filter
func (r *GormAnimalRepository) CountForOrg(ctx context.Context, organizationID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(
		dbFromContext(ctx, r.db).WithContext(ctx).Model(&animal.Animal{}).
			Where("organization_id = ?", organizationID),
		filter,
	)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountBySpecies returns animal counts per species for animals in care
func (r *GormAnimalRepository) CountBySpecies(ctx context.Context, organizationID uuid.UUID) (map[animal.Species]int64, error) {
	rows := []struct {
		Species animal.Species
		Count   int64
	}{}

	if err := dbFromContext(ctx, r.db).WithContext(ctx).
		Model(&animal.Animal{}).
		Select("species, COUNT(*) as count").
		Where("organization_id = ? AND status NOT IN ?", organizationID, terminalStatuses()).
		Group("species").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[animal.Species]int64, len(rows))
	for _, row := range rows {
		counts[row.Species] = row.Count
	}
	return counts, nil
}

// CountByStatus returns animal counts per lifecycle status
func (r *GormAnimalRepository) CountByStatus(ctx context.Context, organizationID uuid.UUID) (map[animal.Status]int64, error) {
	rows := []struct {
		Status animal.Status
		Count  int64
	}{}

	if err := dbFromContext(ctx, r.db).WithContext(ctx).
		Model(&animal.Animal{}).
		Select("status, COUNT(*) as count").
		Where("organization_id = ?", organizationID).
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[animal.Status]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// Save creates or updates an animal
func (r *GormAnimalRepository) Save(ctx context.Context, a *animal.Animal) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Save(a).Error
}

// SaveWithLock saves with optimistic locking (version check)
func (r *GormAnimalRepository) SaveWithLock(ctx context.Context, a *animal.Animal) error {
	db := dbFromContext(ctx, r.db).WithContext(ctx)

	currentVersion := a.Version
	a.Version++
	a.UpdatedAt = time.Now()

	result := db.Model(&animal.Animal{}).
		Where("id = ? AND organization_id = ? AND version = ?", a.ID, a.OrganizationID, currentVersion).
		Updates(map[string]interface{}{
			"name":        a.Name,
			"species":     a.Species,
			"breed":       a.Breed,
			"status":      a.Status,
			"intake_date": a.IntakeDate,
			"location_id": a.LocationID,
			"kennel_id":   a.KennelID,
			"microchip":   a.Microchip,
			"attributes":  a.Attributes,
			"version":     a.Version,
			"updated_at":  a.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

func (r *GormAnimalRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, AnimalSortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

func (r *GormAnimalRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR breed ILIKE ? OR microchip ILIKE ?", pattern, pattern, pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "species":
			query = query.Where("species = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		case "statuses":
			if statuses, ok := value.([]string); ok && len(statuses) > 0 {
				query = query.Where("status IN ?", statuses)
			}
		case "location_id":
			query = query.Where("location_id = ?", value)
		case "intake_from":
			if t, ok := value.(time.Time); ok {
				query = query.Where("intake_date >= ?", t)
			}
		case "intake_to":
			if t, ok := value.(time.Time); ok {
				query = query.Where("intake_date <= ?", t)
			}
		}
	}

	return query
}

func terminalStatuses() []animal.Status {
	return []animal.Status{
		animal.StatusAdopted,
		animal.StatusTransferred,
		animal.StatusReturnedToOwner,
		animal.StatusEuthanized,
	}
}
