package medical

import (
	"time"

	"github.com/google/uuid"
	"github.com/shelterhq/backend/internal/domain/shared"
)

// Record is the immutable historical fact of care delivered. Records are
// created as a side effect of completing a task or by direct staff entry and
// are never mutated afterwards.
type Record struct {
	shared.OrgAggregateRoot
	AnimalID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	TaskID      *uuid.UUID `gorm:"type:uuid;index"`
	Type        TaskType   `gorm:"type:varchar(30);not null"`
	DeliveredAt time.Time  `gorm:"not null"`
	DeliveredBy uuid.UUID  `gorm:"type:uuid;not null"`
	Notes       string     `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Record) TableName() string {
	return "medical_records"
}

// NewRecordFromTask snapshots a completed task into a record
func NewRecordFromTask(task *Task, deliveredBy uuid.UUID, at time.Time) (*Record, error) {
	if task == nil {
		return nil, shared.NewDomainError("INVALID_TASK", "Task is required")
	}
	if deliveredBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "Delivering user is required")
	}

	return &Record{
		OrgAggregateRoot: shared.NewOrgAggregateRoot(task.OrganizationID),
		AnimalID:         task.AnimalID,
		TaskID:           &task.ID,
		Type:             task.Type,
		DeliveredAt:      at,
		DeliveredBy:      deliveredBy,
		Notes:            task.Description,
	}, nil
}

// NewRecord creates a record from direct staff entry, without a task
func NewRecord(organizationID, animalID, deliveredBy uuid.UUID, recordType TaskType, at time.Time, notes string) (*Record, error) {
	if animalID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ANIMAL", "Animal ID cannot be empty")
	}
	if deliveredBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "Delivering user is required")
	}
	if !recordType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TASK_TYPE", "Unknown record type")
	}
	if at.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Delivery date is required")
	}

	return &Record{
		OrgAggregateRoot: shared.NewOrgAggregateRoot(organizationID),
		AnimalID:         animalID,
		Type:             recordType,
		DeliveredAt:      at,
		DeliveredBy:      deliveredBy,
		Notes:            notes,
	}, nil
}
