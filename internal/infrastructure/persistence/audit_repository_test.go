package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/shelterhq/backend/internal/domain/audit"
	"github.com/shelterhq/backend/internal/domain/shared"
)

func setupAuditTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&audit.Entry{})
	require.NoError(t, err)

	return db
}

func appendTestEntry(t *testing.T, repo *GormAuditRepository, orgID uuid.UUID, action audit.Action, entityType string, entityID uuid.UUID, recordedAt time.Time) *audit.Entry {
	t.Helper()

	actorID := uuid.New()
	entry, err := audit.NewEntry(orgID, &actorID, action, entityType, entityID, nil, audit.Snapshot{"status": "available"})
	require.NoError(t, err)
	entry.RecordedAt = recordedAt

	err = repo.Append(context.Background(), entry)
	require.NoError(t, err)
	return entry
}

func TestGormAuditRepository_Append(t *testing.T) {
	db := setupAuditTestDB(t)
	repo := NewGormAuditRepository(db)
	ctx := context.Background()

	t.Run("appends entry with snapshots", func(t *testing.T) {
		orgID := uuid.New()
		entityID := uuid.New()
		actorID := uuid.New()

		entry, err := audit.NewEntry(orgID, &actorID, audit.ActionTransition, "animal", entityID,
			audit.Snapshot{"status": "available"},
			audit.Snapshot{"status": "adopted"},
		)
		require.NoError(t, err)

		err = repo.Append(ctx, entry)
		require.NoError(t, err)

		entries, err := repo.FindByEntity(ctx, orgID, "animal", entityID, shared.Filter{})
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, audit.ActionTransition, entries[0].Action)
		assert.Equal(t, "available", entries[0].Before["status"])
		assert.Equal(t, "adopted", entries[0].After["status"])
		assert.Equal(t, actorID, *entries[0].ActorID)
	})
}

func TestGormAuditRepository_FindForOrg(t *testing.T) {
	db := setupAuditTestDB(t)
	repo := NewGormAuditRepository(db)
	ctx := context.Background()

	orgID := uuid.New()
	otherOrgID := uuid.New()
	base := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

	appendTestEntry(t, repo, orgID, audit.ActionCreate, "animal", uuid.New(), base)
	appendTestEntry(t, repo, orgID, audit.ActionUpdate, "person", uuid.New(), base.Add(time.Hour))
	appendTestEntry(t, repo, otherOrgID, audit.ActionCreate, "animal", uuid.New(), base)

	t.Run("returns entries newest first", func(t *testing.T) {
		entries, err := repo.FindForOrg(ctx, orgID, shared.Filter{})

		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "person", entries[0].EntityType)
		assert.Equal(t, "animal", entries[1].EntityType)
	})

	t.Run("never returns another organization's entries", func(t *testing.T) {
		entries, err := repo.FindForOrg(ctx, otherOrgID, shared.Filter{})

		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, otherOrgID, entries[0].OrganizationID)
	})

	t.Run("filters by action", func(t *testing.T) {
		entries, err := repo.FindForOrg(ctx, orgID, shared.Filter{
			Filters: map[string]interface{}{"action": "update"},
		})

		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, audit.ActionUpdate, entries[0].Action)
	})

	t.Run("applies pagination", func(t *testing.T) {
		entries, err := repo.FindForOrg(ctx, orgID, shared.Filter{Page: 1, PageSize: 1})

		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})
}

func TestGormAuditRepository_FindByEntity(t *testing.T) {
	db := setupAuditTestDB(t)
	repo := NewGormAuditRepository(db)
	ctx := context.Background()

	orgID := uuid.New()
	animalID := uuid.New()
	base := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

	appendTestEntry(t, repo, orgID, audit.ActionCreate, "animal", animalID, base)
	appendTestEntry(t, repo, orgID, audit.ActionTransition, "animal", animalID, base.Add(time.Hour))
	appendTestEntry(t, repo, orgID, audit.ActionCreate, "animal", uuid.New(), base)

	t.Run("returns the entity's trail only", func(t *testing.T) {
		entries, err := repo.FindByEntity(ctx, orgID, "animal", animalID, shared.Filter{})

		require.NoError(t, err)
		require.Len(t, entries, 2)
		for _, entry := range entries {
			assert.Equal(t, animalID, entry.EntityID)
		}
	})

	t.Run("returns empty for unknown entity", func(t *testing.T) {
		entries, err := repo.FindByEntity(ctx, orgID, "animal", uuid.New(), shared.Filter{})

		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}

func TestGormAuditRepository_CountForOrg(t *testing.T) {
	db := setupAuditTestDB(t)
	repo := NewGormAuditRepository(db)
	ctx := context.Background()

	orgID := uuid.New()
	base := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

	appendTestEntry(t, repo, orgID, audit.ActionCreate, "animal", uuid.New(), base)
	appendTestEntry(t, repo, orgID, audit.ActionCreate, "animal", uuid.New(), base.Add(time.Minute))
	appendTestEntry(t, repo, orgID, audit.ActionUpdate, "person", uuid.New(), base.Add(2*time.Minute))

	t.Run("counts all entries for organization", func(t *testing.T) {
		count, err := repo.CountForOrg(ctx, orgID, shared.Filter{})

		require.NoError(t, err)
		assert.Equal(t, int64(3), count)
	})

	t.Run("counts entries in a time window", func(t *testing.T) {
		count, err := repo.CountForOrg(ctx, orgID, shared.Filter{
			Filters: map[string]interface{}{
				"from": base.Add(time.Minute),
				"to":   base.Add(2 * time.Minute),
			},
		})

		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})
}

func TestGormAuditRepository_CountByEntityTypeInWindow(t *testing.T) {
	db := setupAuditTestDB(t)
	repo := NewGormAuditRepository(db)
	ctx := context.Background()

	orgID := uuid.New()
	from := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	appendTestEntry(t, repo, orgID, audit.ActionCreate, "animal", uuid.New(), from.Add(time.Hour))
	appendTestEntry(t, repo, orgID, audit.ActionTransition, "animal", uuid.New(), from.AddDate(0, 0, 10))
	appendTestEntry(t, repo, orgID, audit.ActionCreate, "application", uuid.New(), from.AddDate(0, 0, 20))
	appendTestEntry(t, repo, orgID, audit.ActionCreate, "animal", uuid.New(), to)

	t.Run("buckets counts by entity type within the window", func(t *testing.T) {
		counts, err := repo.CountByEntityTypeInWindow(ctx, orgID, from, to)

		require.NoError(t, err)
		assert.Equal(t, int64(2), counts["animal"])
		assert.Equal(t, int64(1), counts["application"])
	})
}

func TestGormAuditRepository_InterfaceCompliance(t *testing.T) {
	t.Run("implements audit.Repository interface", func(t *testing.T) {
		db := setupAuditTestDB(t)
		repo := NewGormAuditRepository(db)

		var _ audit.Repository = repo
	})
}
