package adoption

import (
	"time"

	"github.com/google/uuid"
	"github.com/shelterhq/backend/internal/domain/shared"
)

// FosterStatus represents the status of a foster assignment
type FosterStatus string

const (
	FosterStatusActive    FosterStatus = "active"
	FosterStatusCompleted FosterStatus = "completed"
	FosterStatusFailed    FosterStatus = "failed"
)

// IsValid checks if the status is a valid FosterStatus
func (s FosterStatus) IsValid() bool {
	switch s {
	case FosterStatusActive, FosterStatusCompleted, FosterStatusFailed:
		return true
	}
	return false
}

// FosterAssignment places an animal with a foster person. An animal has at
// most one active assignment at a time, and an active assignment implies the
// animal's status is fostered.
type FosterAssignment struct {
	shared.OrgAggregateRoot
	AnimalID  uuid.UUID    `gorm:"type:uuid;not null;index"`
	PersonID  uuid.UUID    `gorm:"type:uuid;not null;index"`
	Status    FosterStatus `gorm:"type:varchar(20);not null;default:'active'"`
	StartDate time.Time    `gorm:"not null"`
	EndDate   *time.Time
	Notes     string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (FosterAssignment) TableName() string {
	return "foster_assignments"
}

// NewFosterAssignment opens an active placement
func NewFosterAssignment(organizationID, animalID, personID uuid.UUID, startDate time.Time) (*FosterAssignment, error) {
	if animalID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ANIMAL", "Animal ID cannot be empty")
	}
	if personID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PERSON", "Person ID cannot be empty")
	}
	if startDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_START_DATE", "Start date is required")
	}

	f := &FosterAssignment{
		OrgAggregateRoot: shared.NewOrgAggregateRoot(organizationID),
		AnimalID:         animalID,
		PersonID:         personID,
		Status:           FosterStatusActive,
		StartDate:        startDate,
	}

	f.AddDomainEvent(NewFosterOpenedEvent(f))

	return f, nil
}

// Complete closes the assignment as a successful placement
func (f *FosterAssignment) Complete(endDate time.Time) error {
	return f.close(FosterStatusCompleted, endDate)
}

// Fail closes the assignment as an unsuccessful placement
func (f *FosterAssignment) Fail(endDate time.Time) error {
	return f.close(FosterStatusFailed, endDate)
}

func (f *FosterAssignment) close(status FosterStatus, endDate time.Time) error {
	if f.Status != FosterStatusActive {
		return shared.ErrAlreadyTerminal
	}
	if endDate.IsZero() {
		return shared.NewDomainError("INVALID_END_DATE", "End date is required")
	}
	if endDate.Before(f.StartDate) {
		return shared.NewDomainError("INVALID_END_DATE", "End date cannot precede start date")
	}

	f.Status = status
	f.EndDate = &endDate
	f.UpdatedAt = time.Now()

	f.AddDomainEvent(NewFosterClosedEvent(f))

	return nil
}

// IsActive returns true while the placement is open
func (f *FosterAssignment) IsActive() bool {
	return f.Status == FosterStatusActive
}
