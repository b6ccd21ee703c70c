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

	"github.com/shelterhq/backend/internal/domain/medical"
	"github.com/shelterhq/backend/internal/domain/shared"
)

func setupTaskTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&medical.Task{})
	require.NoError(t, err)

	return db
}

func createSavedTask(t *testing.T, repo *GormTaskRepository, orgID uuid.UUID) *medical.Task {
	t.Helper()

	task, err := medical.NewTask(orgID, uuid.New(), medical.TaskTypeVaccine,
		time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), nil)
	require.NoError(t, err)

	err = repo.Save(context.Background(), task)
	require.NoError(t, err)
	return task
}

func TestGormTaskRepository_SaveWithLock(t *testing.T) {
	t.Run("persists cancellation timestamp", func(t *testing.T) {
		db := setupTaskTestDB(t)
		repo := NewGormTaskRepository(db)
		ctx := context.Background()

		orgID := uuid.New()
		task := createSavedTask(t, repo, orgID)

		cancelledAt := time.Date(2025, 5, 20, 9, 0, 0, 0, time.UTC)
		err := task.Cancel(cancelledAt)
		require.NoError(t, err)

		err = repo.SaveWithLock(ctx, task)
		require.NoError(t, err)

		reloaded, err := repo.FindByIDForOrg(ctx, orgID, task.ID)
		require.NoError(t, err)
		assert.Equal(t, medical.TaskStatusCancelled, reloaded.Status)
		require.NotNil(t, reloaded.CancelledAt)
		assert.True(t, reloaded.CancelledAt.Equal(cancelledAt))
	})

	t.Run("persists completion fields", func(t *testing.T) {
		db := setupTaskTestDB(t)
		repo := NewGormTaskRepository(db)
		ctx := context.Background()

		orgID := uuid.New()
		task := createSavedTask(t, repo, orgID)

		completedBy := uuid.New()
		completedAt := time.Date(2025, 5, 25, 14, 30, 0, 0, time.UTC)
		err := task.Complete(completedBy, completedAt)
		require.NoError(t, err)

		err = repo.SaveWithLock(ctx, task)
		require.NoError(t, err)

		reloaded, err := repo.FindByIDForOrg(ctx, orgID, task.ID)
		require.NoError(t, err)
		assert.Equal(t, medical.TaskStatusCompleted, reloaded.Status)
		require.NotNil(t, reloaded.CompletedAt)
		assert.True(t, reloaded.CompletedAt.Equal(completedAt))
		require.NotNil(t, reloaded.CompletedBy)
		assert.Equal(t, completedBy, *reloaded.CompletedBy)
		assert.Nil(t, reloaded.CancelledAt)
	})

	t.Run("returns conflict when version is stale", func(t *testing.T) {
		db := setupTaskTestDB(t)
		repo := NewGormTaskRepository(db)
		ctx := context.Background()

		orgID := uuid.New()
		task := createSavedTask(t, repo, orgID)

		stale := *task
		err := task.Cancel(time.Now().UTC())
		require.NoError(t, err)
		err = repo.SaveWithLock(ctx, task)
		require.NoError(t, err)

		err = stale.Start()
		require.NoError(t, err)
		err = repo.SaveWithLock(ctx, &stale)

		assert.Equal(t, shared.ErrConcurrencyConflict, err)
	})
}
