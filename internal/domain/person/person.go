package person

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shelterhq/backend/internal/domain/shared"
	"github.com/shelterhq/backend/internal/domain/shared/valueobject"
)

// Type categorizes an external contact
type Type string

const (
	TypeAdopter   Type = "adopter"
	TypeFoster    Type = "foster"
	TypeVolunteer Type = "volunteer"
	TypeDonor     Type = "donor"
	TypeStaff     Type = "staff"
)

// IsValid checks if the person type is valid
func (t Type) IsValid() bool {
	switch t {
	case TypeAdopter, TypeFoster, TypeVolunteer, TypeDonor, TypeStaff:
		return true
	}
	return false
}

// String returns the string representation
func (t Type) String() string {
	return string(t)
}

// FlagDoNotAdopt marks a person who must not receive adoption approvals.
const FlagDoNotAdopt = "do_not_adopt"

// FlagSchema validates the open flag map on a person record.
var FlagSchema = valueobject.AttrSchema{
	FlagDoNotAdopt: valueobject.AttrBool,
}

// Person is an external contact of the organization. A Person is not a
// User and never authenticates.
type Person struct {
	shared.OrgAggregateRoot
	FirstName string              `gorm:"size:100;not null" json:"first_name"`
	LastName  string              `gorm:"size:100;not null" json:"last_name"`
	Type      Type                `gorm:"size:20;not null;index" json:"type"`
	Email     string              `gorm:"size:255;index" json:"email"`
	Phone     string              `gorm:"size:40" json:"phone"`
	Address   string              `gorm:"size:500" json:"address"`
	Flags     valueobject.AttrMap `gorm:"type:jsonb" json:"flags"`
}

// TableName returns the table name for GORM
func (Person) TableName() string {
	return "people"
}

// NewPerson creates a new person contact
func NewPerson(organizationID uuid.UUID, firstName, lastName string, personType Type) (*Person, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	if firstName == "" {
		return nil, shared.NewDomainError("INVALID_PERSON_NAME", "First name cannot be empty")
	}
	if !personType.IsValid() {
		return nil, shared.NewDomainError("INVALID_PERSON_TYPE", "Invalid person type: "+personType.String())
	}

	p := &Person{
		OrgAggregateRoot: shared.NewOrgAggregateRoot(organizationID),
		FirstName:        firstName,
		LastName:         lastName,
		Type:             personType,
		Flags:            valueobject.AttrMap{},
	}
	p.AddDomainEvent(NewPersonCreatedEvent(p))
	return p, nil
}

// FullName returns the display name
func (p *Person) FullName() string {
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}

// UpdateContact replaces the contact details
func (p *Person) UpdateContact(email, phone, address string) {
	p.Email = strings.TrimSpace(email)
	p.Phone = strings.TrimSpace(phone)
	p.Address = strings.TrimSpace(address)
}

// ChangeType reclassifies the person
func (p *Person) ChangeType(personType Type) error {
	if !personType.IsValid() {
		return shared.NewDomainError("INVALID_PERSON_TYPE", "Invalid person type: "+personType.String())
	}
	p.Type = personType
	return nil
}

// UpdateFlags validates and replaces the flag map
func (p *Person) UpdateFlags(flags valueobject.AttrMap) error {
	if err := flags.Validate(FlagSchema); err != nil {
		return err
	}
	p.Flags = flags
	return nil
}

// IsDoNotAdopt reports whether the person carries the do-not-adopt flag
func (p *Person) IsDoNotAdopt() bool {
	return p.Flags.GetBool(FlagDoNotAdopt)
}
