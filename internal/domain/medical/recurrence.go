package medical

import "time"

// RecurrencePolicy maps task types to the interval after which a follow-up
// task is scheduled on completion. The table is configuration data, not
// business law baked into control flow: deployments load it from config and
// can change intervals without code edits.
type RecurrencePolicy struct {
	intervals map[TaskType]RecurrenceInterval
}

// RecurrenceInterval expresses a follow-up delay in calendar months and
// days, so "12 months" lands on the same day next year rather than on a
// fixed number of hours.
type RecurrenceInterval struct {
	Months int
	Days   int
}

// IsZero returns true when the interval schedules no follow-up
func (i RecurrenceInterval) IsZero() bool {
	return i.Months == 0 && i.Days == 0
}

// AddTo returns the date the interval lands on from the given start
func (i RecurrenceInterval) AddTo(start time.Time) time.Time {
	return start.AddDate(0, i.Months, i.Days)
}

// DefaultRecurrencePolicy returns the standard follow-up intervals:
// vaccine 12 months, checkup 6 months, exam 3 months, treatment 7 days,
// everything else 30 days. Surgery has no standard follow-up.
func DefaultRecurrencePolicy() RecurrencePolicy {
	return NewRecurrencePolicy(map[TaskType]RecurrenceInterval{
		TaskTypeVaccine:   {Months: 12},
		TaskTypeCheckup:   {Months: 6},
		TaskTypeExam:      {Months: 3},
		TaskTypeTreatment: {Days: 7},
		TaskTypeOther:     {Days: 30},
	})
}

// NewRecurrencePolicy creates a policy from an explicit interval table
func NewRecurrencePolicy(intervals map[TaskType]RecurrenceInterval) RecurrencePolicy {
	table := make(map[TaskType]RecurrenceInterval, len(intervals))
	for taskType, interval := range intervals {
		table[taskType] = interval
	}
	return RecurrencePolicy{intervals: table}
}

// IntervalFor returns the follow-up interval for a task type and whether the
// type recurs at all
func (p RecurrencePolicy) IntervalFor(taskType TaskType) (RecurrenceInterval, bool) {
	interval, ok := p.intervals[taskType]
	if !ok || interval.IsZero() {
		return RecurrenceInterval{}, false
	}
	return interval, true
}

// FollowUp builds the follow-up task for a just-completed task, due at
// completion date + interval. Returns nil when the type has no recurrence.
func (p RecurrencePolicy) FollowUp(completed *Task, completionDate time.Time) (*Task, error) {
	interval, ok := p.IntervalFor(completed.Type)
	if !ok {
		return nil, nil
	}

	return NewTask(
		completed.OrganizationID,
		completed.AnimalID,
		completed.Type,
		interval.AddTo(completionDate),
		completed.AssignedTo,
	)
}
