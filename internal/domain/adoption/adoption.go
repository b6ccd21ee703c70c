package adoption

import (
	"time"

	"github.com/google/uuid"
	"github.com/shelterhq/backend/internal/domain/shared"
	"github.com/shelterhq/backend/internal/domain/shared/valueobject"
)

// Adoption records the finalized adoption of an animal. Creation implies the
// animal transitioned to adopted and an adoption outcome was recorded in the
// same operation.
type Adoption struct {
	shared.OrgAggregateRoot
	AnimalID      uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex"`
	AdopterID     uuid.UUID         `gorm:"type:uuid;not null;index"`
	ApplicationID uuid.UUID         `gorm:"type:uuid;not null;index"`
	Date          time.Time         `gorm:"not null"`
	Fee           valueobject.Money `gorm:"type:bigint"`
	Donation      valueobject.Money `gorm:"type:bigint"`
	ContractRef   string            `gorm:"type:varchar(200)"`
	PaymentRef    string            `gorm:"type:varchar(200)"`
}

// TableName returns the table name for GORM
func (Adoption) TableName() string {
	return "adoptions"
}

// NewAdoption creates a finalized adoption record
func NewAdoption(organizationID, animalID, adopterID, applicationID uuid.UUID, date time.Time, fee, donation valueobject.Money) (*Adoption, error) {
	if animalID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ANIMAL", "Animal ID cannot be empty")
	}
	if adopterID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PERSON", "Adopter ID cannot be empty")
	}
	if applicationID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_APPLICATION", "Application ID cannot be empty")
	}
	if date.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Adoption date is required")
	}
	if fee.IsNegative() {
		return nil, shared.NewDomainError("INVALID_FEE", "Adoption fee cannot be negative")
	}
	if donation.IsNegative() {
		return nil, shared.NewDomainError("INVALID_DONATION", "Donation cannot be negative")
	}

	a := &Adoption{
		OrgAggregateRoot: shared.NewOrgAggregateRoot(organizationID),
		AnimalID:         animalID,
		AdopterID:        adopterID,
		ApplicationID:    applicationID,
		Date:             date,
		Fee:              fee,
		Donation:         donation,
	}

	a.AddDomainEvent(NewAdoptionFinalizedEvent(a))

	return a, nil
}

// SetReferences attaches optional contract and payment references
func (a *Adoption) SetReferences(contractRef, paymentRef string) error {
	if len(contractRef) > 200 || len(paymentRef) > 200 {
		return shared.NewDomainError("INVALID_REFERENCE", "Reference cannot exceed 200 characters")
	}

	a.ContractRef = contractRef
	a.PaymentRef = paymentRef
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	return nil
}

// Total returns fee plus donation
func (a *Adoption) Total() (valueobject.Money, error) {
	return a.Fee.Add(a.Donation)
}
