package animal

import (
	"time"

	"github.com/google/uuid"
	"github.com/shelterhq/backend/internal/domain/shared"
)

// IntakeKind records the circumstance under which an animal entered care
type IntakeKind string

const (
	IntakeKindStray          IntakeKind = "stray"
	IntakeKindOwnerSurrender IntakeKind = "owner-surrender"
	IntakeKindTransferIn     IntakeKind = "transfer-in"
	IntakeKindReturn         IntakeKind = "return"
	IntakeKindSeizure        IntakeKind = "seizure"
)

// IsValid checks if the kind is a known IntakeKind
func (k IntakeKind) IsValid() bool {
	switch k {
	case IntakeKindStray, IntakeKindOwnerSurrender, IntakeKindTransferIn,
		IntakeKindReturn, IntakeKindSeizure:
		return true
	}
	return false
}

// Intake records the entry circumstance of an animal. Exactly one exists per
// animal and it is immutable once created.
type Intake struct {
	shared.OrgAggregateRoot
	AnimalID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex"`
	Kind        IntakeKind `gorm:"type:varchar(30);not null"`
	Date        time.Time  `gorm:"not null;index"`
	MedicalHold bool       `gorm:"not null;default:false"`
	Source      string     `gorm:"type:varchar(200)"`
	Notes       string     `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Intake) TableName() string {
	return "intakes"
}

// NewIntake creates the intake record for an animal
func NewIntake(organizationID, animalID uuid.UUID, kind IntakeKind, date time.Time, medicalHold bool) (*Intake, error) {
	if animalID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ANIMAL", "Animal ID cannot be empty")
	}
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_INTAKE_KIND", "Unknown intake kind")
	}
	if date.IsZero() {
		return nil, shared.NewDomainError("INVALID_INTAKE_DATE", "Intake date is required")
	}

	return &Intake{
		OrgAggregateRoot: shared.NewOrgAggregateRoot(organizationID),
		AnimalID:         animalID,
		Kind:             kind,
		Date:             date,
		MedicalHold:      medicalHold,
	}, nil
}

// SetSource records where the animal came from; allowed only because the
// record has not been persisted yet when the application layer calls it.
func (i *Intake) SetSource(source, notes string) error {
	if len(source) > 200 {
		return shared.NewDomainError("INVALID_SOURCE", "Source cannot exceed 200 characters")
	}

	i.Source = source
	i.Notes = notes

	return nil
}
