package medical

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelterhq/backend/internal/domain/shared"
)

func newScheduledTask(t *testing.T, taskType TaskType, due time.Time) *Task {
	t.Helper()
	task, err := NewTask(uuid.New(), uuid.New(), taskType, due, nil)
	require.NoError(t, err)
	return task
}

func TestNewTask(t *testing.T) {
	orgID := uuid.New()
	animalID := uuid.New()
	due := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	task, err := NewTask(orgID, animalID, TaskTypeVaccine, due, nil)

	require.NoError(t, err)
	assert.Equal(t, TaskStatusScheduled, task.Status)
	assert.Equal(t, animalID, task.AnimalID)
	require.Len(t, task.GetDomainEvents(), 1)
	assert.Equal(t, EventTypeTaskScheduled, task.GetDomainEvents()[0].EventType())
}

func TestNewTask_Validation(t *testing.T) {
	orgID := uuid.New()
	due := time.Now()

	_, err := NewTask(orgID, uuid.Nil, TaskTypeVaccine, due, nil)
	assert.Error(t, err)

	_, err = NewTask(orgID, uuid.New(), TaskType("grooming"), due, nil)
	assert.Error(t, err)

	_, err = NewTask(orgID, uuid.New(), TaskTypeVaccine, time.Time{}, nil)
	assert.Error(t, err)
}

func TestTaskStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from    TaskStatus
		to      TaskStatus
		allowed bool
	}{
		{TaskStatusScheduled, TaskStatusInProgress, true},
		{TaskStatusScheduled, TaskStatusOnHold, true},
		{TaskStatusScheduled, TaskStatusCompleted, true},
		{TaskStatusScheduled, TaskStatusCancelled, true},
		{TaskStatusScheduled, TaskStatusPendingReview, false},
		{TaskStatusInProgress, TaskStatusPendingReview, true},
		{TaskStatusInProgress, TaskStatusOnHold, true},
		{TaskStatusInProgress, TaskStatusCompleted, true},
		{TaskStatusInProgress, TaskStatusScheduled, false},
		{TaskStatusPendingReview, TaskStatusCompleted, true},
		{TaskStatusPendingReview, TaskStatusInProgress, true},
		{TaskStatusPendingReview, TaskStatusCancelled, true},
		{TaskStatusPendingReview, TaskStatusOnHold, false},
		{TaskStatusOnHold, TaskStatusScheduled, true},
		{TaskStatusOnHold, TaskStatusInProgress, true},
		{TaskStatusOnHold, TaskStatusCancelled, true},
		{TaskStatusOnHold, TaskStatusCompleted, false},
		{TaskStatusCompleted, TaskStatusScheduled, false},
		{TaskStatusCompleted, TaskStatusInProgress, false},
		{TaskStatusCancelled, TaskStatusScheduled, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestTask_Complete(t *testing.T) {
	task := newScheduledTask(t, TaskTypeVaccine, time.Now())
	task.ClearDomainEvents()
	staffID := uuid.New()
	at := time.Date(2024, 1, 10, 14, 30, 0, 0, time.UTC)

	err := task.Complete(staffID, at)

	require.NoError(t, err)
	assert.Equal(t, TaskStatusCompleted, task.Status)
	require.NotNil(t, task.CompletedAt)
	assert.Equal(t, at, *task.CompletedAt)
	require.NotNil(t, task.CompletedBy)
	assert.Equal(t, staffID, *task.CompletedBy)
	require.Len(t, task.GetDomainEvents(), 1)
	assert.Equal(t, EventTypeTaskCompleted, task.GetDomainEvents()[0].EventType())
}

func TestTask_Complete_Twice(t *testing.T) {
	task := newScheduledTask(t, TaskTypeVaccine, time.Now())
	first := uuid.New()
	at := time.Now()
	require.NoError(t, task.Complete(first, at))

	err := task.Complete(uuid.New(), at.Add(time.Hour))

	assert.ErrorIs(t, err, shared.ErrAlreadyTerminal)
	assert.Equal(t, first, *task.CompletedBy)
	assert.Equal(t, at, *task.CompletedAt)
}

func TestTask_CancelledIsTerminal(t *testing.T) {
	task := newScheduledTask(t, TaskTypeExam, time.Now())
	require.NoError(t, task.Cancel(time.Now()))

	assert.ErrorIs(t, task.Start(), shared.ErrAlreadyTerminal)
	assert.ErrorIs(t, task.Complete(uuid.New(), time.Now()), shared.ErrAlreadyTerminal)
	assert.ErrorIs(t, task.Reassign(nil), shared.ErrAlreadyTerminal)
	assert.ErrorIs(t, task.Reschedule(time.Now()), shared.ErrAlreadyTerminal)
}

func TestTask_ReviewFlow(t *testing.T) {
	task := newScheduledTask(t, TaskTypeSurgery, time.Now())

	require.NoError(t, task.Start())
	require.NoError(t, task.SubmitForReview())
	assert.Equal(t, TaskStatusPendingReview, task.Status)

	require.NoError(t, task.Complete(uuid.New(), time.Now()))
	assert.Equal(t, TaskStatusCompleted, task.Status)
}

func TestTask_HoldAndResume(t *testing.T) {
	task := newScheduledTask(t, TaskTypeTreatment, time.Now())

	require.NoError(t, task.Hold())
	assert.Equal(t, TaskStatusOnHold, task.Status)

	require.NoError(t, task.Resume())
	assert.Equal(t, TaskStatusScheduled, task.Status)
}

func TestClassify(t *testing.T) {
	asOf := time.Date(2024, 6, 15, 13, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		due  time.Time
		want Classification
	}{
		{"due yesterday", time.Date(2024, 6, 14, 23, 59, 0, 0, time.UTC), ClassificationOverdue},
		{"due earlier today", time.Date(2024, 6, 15, 1, 0, 0, 0, time.UTC), ClassificationDueToday},
		{"due later today", time.Date(2024, 6, 15, 23, 0, 0, 0, time.UTC), ClassificationDueToday},
		{"due tomorrow", time.Date(2024, 6, 16, 0, 0, 0, 0, time.UTC), ClassificationUpcoming},
		{"due last month", time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC), ClassificationOverdue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := newScheduledTask(t, TaskTypeVaccine, tt.due)
			assert.Equal(t, tt.want, Classify(task, asOf))
		})
	}
}

func TestClassify_TerminalStatuses(t *testing.T) {
	asOf := time.Now()
	overdueDate := asOf.AddDate(0, 0, -30)

	completed := newScheduledTask(t, TaskTypeVaccine, overdueDate)
	require.NoError(t, completed.Complete(uuid.New(), asOf))
	assert.Equal(t, ClassificationCompleted, Classify(completed, asOf))
	assert.False(t, completed.IsMissed(asOf))

	cancelled := newScheduledTask(t, TaskTypeVaccine, overdueDate)
	require.NoError(t, cancelled.Cancel(asOf))
	assert.Equal(t, ClassificationCancelled, Classify(cancelled, asOf))
	assert.False(t, cancelled.IsMissed(asOf))
}

func TestTask_IsMissed(t *testing.T) {
	asOf := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	task := newScheduledTask(t, TaskTypeVaccine, asOf.AddDate(0, 0, -1))
	assert.True(t, task.IsMissed(asOf))

	upcoming := newScheduledTask(t, TaskTypeVaccine, asOf.AddDate(0, 0, 1))
	assert.False(t, upcoming.IsMissed(asOf))
}

func TestRecurrencePolicy_FollowUp(t *testing.T) {
	policy := DefaultRecurrencePolicy()
	completion := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	task := newScheduledTask(t, TaskTypeVaccine, completion)
	require.NoError(t, task.Complete(uuid.New(), completion))

	followUp, err := policy.FollowUp(task, completion)

	require.NoError(t, err)
	require.NotNil(t, followUp)
	assert.Equal(t, time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC), followUp.DueDate)
	assert.Equal(t, TaskTypeVaccine, followUp.Type)
	assert.Equal(t, task.AnimalID, followUp.AnimalID)
	assert.Equal(t, TaskStatusScheduled, followUp.Status)
}

func TestRecurrencePolicy_NoFollowUpForSurgery(t *testing.T) {
	policy := DefaultRecurrencePolicy()
	completion := time.Now()

	task := newScheduledTask(t, TaskTypeSurgery, completion)
	require.NoError(t, task.Complete(uuid.New(), completion))

	followUp, err := policy.FollowUp(task, completion)

	require.NoError(t, err)
	assert.Nil(t, followUp)
}

func TestRecurrencePolicy_Intervals(t *testing.T) {
	policy := DefaultRecurrencePolicy()
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		taskType TaskType
		want     time.Time
	}{
		{TaskTypeVaccine, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)},
		{TaskTypeCheckup, time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)},
		{TaskTypeExam, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
		{TaskTypeTreatment, time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC)},
		{TaskTypeOther, time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(string(tt.taskType), func(t *testing.T) {
			interval, ok := policy.IntervalFor(tt.taskType)
			require.True(t, ok)
			assert.Equal(t, tt.want, interval.AddTo(start))
		})
	}

	_, ok := policy.IntervalFor(TaskTypeSurgery)
	assert.False(t, ok)
}
