package animal

import (
	"time"

	"github.com/google/uuid"
	"github.com/shelterhq/backend/internal/domain/shared"
)

// OutcomeType records the terminal disposition of an animal
type OutcomeType string

const (
	OutcomeTypeAdoption      OutcomeType = "adoption"
	OutcomeTypeTransfer      OutcomeType = "transfer"
	OutcomeTypeReturnToOwner OutcomeType = "return-to-owner"
	OutcomeTypeEuthanasia    OutcomeType = "euthanasia"
)

// IsValid checks if the type is a known OutcomeType
func (t OutcomeType) IsValid() bool {
	switch t {
	case OutcomeTypeAdoption, OutcomeTypeTransfer, OutcomeTypeReturnToOwner, OutcomeTypeEuthanasia:
		return true
	}
	return false
}

// IsLiveRelease returns true for outcomes where the animal left alive
func (t OutcomeType) IsLiveRelease() bool {
	return t != OutcomeTypeEuthanasia
}

// OutcomeForStatus maps a terminal animal status to its outcome type
func OutcomeForStatus(s Status) (OutcomeType, error) {
	switch s {
	case StatusAdopted:
		return OutcomeTypeAdoption, nil
	case StatusTransferred:
		return OutcomeTypeTransfer, nil
	case StatusReturnedToOwner:
		return OutcomeTypeReturnToOwner, nil
	case StatusEuthanized:
		return OutcomeTypeEuthanasia, nil
	}
	return "", shared.NewDomainError("INVALID_STATUS", "Status has no terminal outcome")
}

// Outcome records the exit circumstance of an animal. Its presence implies
// the animal's status is terminal, and exactly one outcome exists per
// terminal animal.
type Outcome struct {
	shared.OrgAggregateRoot
	AnimalID uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex"`
	Type     OutcomeType `gorm:"type:varchar(30);not null"`
	Date     time.Time   `gorm:"not null;index"`
	Notes    string      `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Outcome) TableName() string {
	return "outcomes"
}

// NewOutcome creates the outcome record accompanying a terminal transition
func NewOutcome(organizationID, animalID uuid.UUID, outcomeType OutcomeType, date time.Time) (*Outcome, error) {
	if animalID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ANIMAL", "Animal ID cannot be empty")
	}
	if !outcomeType.IsValid() {
		return nil, shared.NewDomainError("INVALID_OUTCOME_TYPE", "Unknown outcome type")
	}
	if date.IsZero() {
		return nil, shared.NewDomainError("INVALID_OUTCOME_DATE", "Outcome date is required")
	}

	return &Outcome{
		OrgAggregateRoot: shared.NewOrgAggregateRoot(organizationID),
		AnimalID:         animalID,
		Type:             outcomeType,
		Date:             date,
	}, nil
}
