package animal

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shelterhq/backend/internal/domain/shared"
	"github.com/shelterhq/backend/internal/domain/shared/valueobject"
)

// Status represents the lifecycle status of an animal
type Status string

const (
	StatusAvailable       Status = "available"
	StatusHold            Status = "hold"
	StatusFostered        Status = "fostered"
	StatusAdopted         Status = "adopted"
	StatusTransferred     Status = "transferred"
	StatusReturnedToOwner Status = "returned-to-owner"
	StatusEuthanized      Status = "euthanized"
)

// Species identifies the kind of animal
type Species string

const (
	SpeciesDog   Species = "dog"
	SpeciesCat   Species = "cat"
	SpeciesOther Species = "other"
)

// IsValid checks if the status is a valid Status
func (s Status) IsValid() bool {
	switch s {
	case StatusAvailable, StatusHold, StatusFostered, StatusAdopted,
		StatusTransferred, StatusReturnedToOwner, StatusEuthanized:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// IsTerminal returns true for statuses that end shelter care. A terminal
// status is never left and coincides with exactly one Outcome record.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusAdopted, StatusTransferred, StatusReturnedToOwner, StatusEuthanized:
		return true
	}
	return false
}

// CanTransitionTo checks if the status can transition to the target status
func (s Status) CanTransitionTo(target Status) bool {
	if !target.IsValid() || s == target {
		return false
	}
	switch s {
	case StatusAvailable:
		return target == StatusHold || target == StatusFostered || target.IsTerminal()
	case StatusHold:
		return target == StatusAvailable || target == StatusFostered || target.IsTerminal()
	case StatusFostered:
		return target == StatusAvailable || target == StatusHold || target == StatusAdopted
	}
	// Terminal states are immutable once set
	return false
}

// Animal represents an animal in shelter care. It is the aggregate root for
// the lifecycle state machine; status changes only happen through
// TransitionTo and animals are never hard-deleted.
type Animal struct {
	shared.OrgAggregateRoot
	Name       string              `gorm:"type:varchar(200);not null"`
	Species    Species             `gorm:"type:varchar(50);not null"`
	Breed      string              `gorm:"type:varchar(100)"`
	Status     Status              `gorm:"type:varchar(30);not null;default:'available'"`
	IntakeDate time.Time           `gorm:"not null;index"`
	LocationID *uuid.UUID          `gorm:"type:uuid"`
	KennelID   *uuid.UUID          `gorm:"type:uuid"`
	Microchip  string              `gorm:"type:varchar(50)"`
	Attributes valueobject.AttrMap `gorm:"type:jsonb"`
}

// TableName returns the table name for GORM
func (Animal) TableName() string {
	return "animals"
}

// AttributeSchema declares the typed keys of the open attributes map
var AttributeSchema = valueobject.AttrSchema{
	"age_months":    valueobject.AttrNumber,
	"weight_kg":     valueobject.AttrNumber,
	"color":         valueobject.AttrString,
	"sex":           valueobject.AttrString,
	"altered":       valueobject.AttrBool,
	"house_ok":      valueobject.AttrBool,
	"special_needs": valueobject.AttrBool,
}

// NewAnimal creates a new animal entering shelter care. The initial status
// is available, or hold when the intake specifies a medical hold.
func NewAnimal(organizationID uuid.UUID, name string, species Species, intakeDate time.Time, medicalHold bool) (*Animal, error) {
	if organizationID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORGANIZATION", "Organization ID cannot be empty")
	}
	if err := validateAnimalName(name); err != nil {
		return nil, err
	}
	if species == "" {
		return nil, shared.NewDomainError("INVALID_SPECIES", "Species cannot be empty")
	}
	if intakeDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_INTAKE_DATE", "Intake date is required")
	}

	status := StatusAvailable
	if medicalHold {
		status = StatusHold
	}

	a := &Animal{
		OrgAggregateRoot: shared.NewOrgAggregateRoot(organizationID),
		Name:             strings.TrimSpace(name),
		Species:          species,
		Status:           status,
		IntakeDate:       intakeDate,
		Attributes:       make(valueobject.AttrMap),
	}

	a.AddDomainEvent(NewAnimalIntakeEvent(a))

	return a, nil
}

// TransitionTo moves the animal to the target status following the allowed
// edge set. Terminal entry and foster coordination side effects (Outcome
// creation, FosterAssignment open/close) are handled by the application
// layer within the same transaction.
func (a *Animal) TransitionTo(target Status) error {
	if a.Status.IsTerminal() {
		return shared.ErrAlreadyTerminal
	}
	if !a.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_TRANSITION",
			fmt.Sprintf("Cannot transition animal from %s to %s", a.Status, target))
	}

	from := a.Status
	a.Status = target
	a.UpdatedAt = time.Now()

	a.AddDomainEvent(NewAnimalStatusChangedEvent(a, from, target))

	return nil
}

// SetLocation assigns the animal to a location and optional kennel
func (a *Animal) SetLocation(locationID, kennelID *uuid.UUID) {
	a.LocationID = locationID
	a.KennelID = kennelID
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
}

// SetMicrochip records the microchip number
func (a *Animal) SetMicrochip(chip string) error {
	if len(chip) > 50 {
		return shared.NewDomainError("INVALID_MICROCHIP", "Microchip cannot exceed 50 characters")
	}

	a.Microchip = strings.TrimSpace(chip)
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	return nil
}

// UpdateAttributes validates and replaces the open attributes map
func (a *Animal) UpdateAttributes(attrs valueobject.AttrMap) error {
	if err := attrs.Validate(AttributeSchema); err != nil {
		return shared.NewDomainError("INVALID_ATTRIBUTES", err.Error())
	}

	a.Attributes = attrs
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	return nil
}

// IsTerminal returns true if the animal has left shelter care
func (a *Animal) IsTerminal() bool {
	return a.Status.IsTerminal()
}

// IsFostered returns true if the animal is in foster care
func (a *Animal) IsFostered() bool {
	return a.Status == StatusFostered
}

// InCare returns true if the animal is still in shelter care
func (a *Animal) InCare() bool {
	return !a.IsTerminal()
}

func validateAnimalName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Animal name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Animal name cannot exceed 200 characters")
	}
	return nil
}
