package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/shelterhq/backend/internal/domain/animal"
	"github.com/shelterhq/backend/internal/domain/shared"
)

// newMockAnimalRepository creates a GormAnimalRepository with a mocked SQL connection
func newMockAnimalRepository(t *testing.T) (*GormAnimalRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormAnimalRepository(gormDB), mock, mockDB
}

func TestNewGormAnimalRepository(t *testing.T) {
	t.Run("creates repository with valid DB", func(t *testing.T) {
		repo, _, mockDB := newMockAnimalRepository(t)
		defer mockDB.Close()

		assert.NotNil(t, repo)
		assert.NotNil(t, repo.db)
	})
}

func TestGormAnimalRepository_FindByIDForOrg(t *testing.T) {
	t.Run("finds animal within organization", func(t *testing.T) {
		repo, mock, mockDB := newMockAnimalRepository(t)
		defer mockDB.Close()

		animalID := uuid.New()
		orgID := uuid.New()
		intakeDate := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

		rows := sqlmock.NewRows([]string{"id", "organization_id", "version", "name", "species", "breed", "status", "intake_date"}).
			AddRow(animalID, orgID, 1, "Biscuit", "dog", "terrier mix", "available", intakeDate)

		mock.ExpectQuery(`SELECT \* FROM "animals" WHERE organization_id = \$1 AND id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(orgID, animalID, 1).
			WillReturnRows(rows)

		a, err := repo.FindByIDForOrg(context.Background(), orgID, animalID)

		assert.NoError(t, err)
		assert.NotNil(t, a)
		assert.Equal(t, animalID, a.ID)
		assert.Equal(t, orgID, a.OrganizationID)
		assert.Equal(t, animal.StatusAvailable, a.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns unknown entity for missing animal", func(t *testing.T) {
		repo, mock, mockDB := newMockAnimalRepository(t)
		defer mockDB.Close()

		animalID := uuid.New()
		orgID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "animals" WHERE organization_id = \$1 AND id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(orgID, animalID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		a, err := repo.FindByIDForOrg(context.Background(), orgID, animalID)

		assert.Error(t, err)
		assert.Nil(t, a)
		assert.Equal(t, shared.ErrUnknownEntity, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns unknown entity for animal in another organization", func(t *testing.T) {
		repo, mock, mockDB := newMockAnimalRepository(t)
		defer mockDB.Close()

		animalID := uuid.New()
		wrongOrgID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "animals" WHERE organization_id = \$1 AND id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(wrongOrgID, animalID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		a, err := repo.FindByIDForOrg(context.Background(), wrongOrgID, animalID)

		assert.Error(t, err)
		assert.Nil(t, a)
		assert.Equal(t, shared.ErrUnknownEntity, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormAnimalRepository_CountForOrg(t *testing.T) {
	t.Run("counts animals for organization", func(t *testing.T) {
		repo, mock, mockDB := newMockAnimalRepository(t)
		defer mockDB.Close()

		orgID := uuid.New()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "animals" WHERE organization_id = \$1`).
			WithArgs(orgID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

		count, err := repo.CountForOrg(context.Background(), orgID, shared.Filter{})

		assert.NoError(t, err)
		assert.Equal(t, int64(12), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("counts animals filtered by status", func(t *testing.T) {
		repo, mock, mockDB := newMockAnimalRepository(t)
		defer mockDB.Close()

		orgID := uuid.New()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "animals" WHERE organization_id = \$1 AND status = \$2`).
			WithArgs(orgID, "available").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

		count, err := repo.CountForOrg(context.Background(), orgID, shared.Filter{
			Filters: map[string]interface{}{"status": "available"},
		})

		assert.NoError(t, err)
		assert.Equal(t, int64(4), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormAnimalRepository_CountByStatus(t *testing.T) {
	t.Run("groups counts by status", func(t *testing.T) {
		repo, mock, mockDB := newMockAnimalRepository(t)
		defer mockDB.Close()

		orgID := uuid.New()

		rows := sqlmock.NewRows([]string{"status", "count"}).
			AddRow("available", 7).
			AddRow("fostered", 2).
			AddRow("adopted", 31)

		mock.ExpectQuery(`SELECT status, COUNT\(\*\) as count FROM "animals" WHERE organization_id = \$1 GROUP BY .status.`).
			WithArgs(orgID).
			WillReturnRows(rows)

		counts, err := repo.CountByStatus(context.Background(), orgID)

		assert.NoError(t, err)
		assert.Equal(t, int64(7), counts[animal.StatusAvailable])
		assert.Equal(t, int64(2), counts[animal.StatusFostered])
		assert.Equal(t, int64(31), counts[animal.StatusAdopted])
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormAnimalRepository_CountBySpecies(t *testing.T) {
	t.Run("excludes terminal statuses", func(t *testing.T) {
		repo, mock, mockDB := newMockAnimalRepository(t)
		defer mockDB.Close()

		orgID := uuid.New()

		rows := sqlmock.NewRows([]string{"species", "count"}).
			AddRow("dog", 5).
			AddRow("cat", 3)

		mock.ExpectQuery(`SELECT species, COUNT\(\*\) as count FROM "animals" WHERE organization_id = \$1 AND status NOT IN \(\$2,\$3,\$4,\$5\) GROUP BY .species.`).
			WillReturnRows(rows)

		counts, err := repo.CountBySpecies(context.Background(), orgID)

		assert.NoError(t, err)
		assert.Equal(t, int64(5), counts[animal.SpeciesDog])
		assert.Equal(t, int64(3), counts[animal.SpeciesCat])
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormAnimalRepository_SaveWithLock(t *testing.T) {
	t.Run("increments version on success", func(t *testing.T) {
		repo, mock, mockDB := newMockAnimalRepository(t)
		defer mockDB.Close()

		orgID := uuid.New()
		a, err := animal.NewAnimal(orgID, "Biscuit", animal.SpeciesDog, time.Now().UTC(), false)
		require.NoError(t, err)
		require.Equal(t, 1, a.Version)

		mock.ExpectExec(`UPDATE "animals" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err = repo.SaveWithLock(context.Background(), a)

		assert.NoError(t, err)
		assert.Equal(t, 2, a.Version)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns conflict when version is stale", func(t *testing.T) {
		repo, mock, mockDB := newMockAnimalRepository(t)
		defer mockDB.Close()

		orgID := uuid.New()
		a, err := animal.NewAnimal(orgID, "Biscuit", animal.SpeciesDog, time.Now().UTC(), false)
		require.NoError(t, err)

		mock.ExpectExec(`UPDATE "animals" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err = repo.SaveWithLock(context.Background(), a)

		assert.Error(t, err)
		assert.Equal(t, shared.ErrConcurrencyConflict, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormAnimalRepository_InterfaceCompliance(t *testing.T) {
	t.Run("implements animal.Repository interface", func(t *testing.T) {
		repo, _, mockDB := newMockAnimalRepository(t)
		defer mockDB.Close()

		var _ animal.Repository = repo
	})
}
