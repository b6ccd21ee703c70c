package identity

import (
	"strings"
	"time"

	"github.com/shelterhq/backend/internal/domain/shared"
	"github.com/shelterhq/backend/internal/domain/shared/valueobject"
)

// OrganizationStatus represents the status of an organization
type OrganizationStatus string

const (
	OrganizationStatusActive   OrganizationStatus = "active"
	OrganizationStatusInactive OrganizationStatus = "inactive"
)

// Organization represents a shelter organization, the unit of tenant
// isolation. Every other entity except User belongs to exactly one
// organization; deleting an organization cascades to all of its data.
type Organization struct {
	shared.BaseAggregateRoot
	Name     string              `gorm:"type:varchar(200);not null"`
	Status   OrganizationStatus  `gorm:"type:varchar(20);not null;default:'active'"`
	Settings valueobject.AttrMap `gorm:"type:jsonb"`
	Timezone string              `gorm:"type:varchar(100)"`
	Notes    string              `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Organization) TableName() string {
	return "organizations"
}

// NewOrganization creates a new organization
func NewOrganization(name string) (*Organization, error) {
	if err := validateOrganizationName(name); err != nil {
		return nil, err
	}

	org := &Organization{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Status:            OrganizationStatusActive,
		Settings:          make(valueobject.AttrMap),
	}

	org.AddDomainEvent(NewOrganizationCreatedEvent(org))

	return org, nil
}

// Rename updates the organization name
func (o *Organization) Rename(name string) error {
	if err := validateOrganizationName(name); err != nil {
		return err
	}

	o.Name = strings.TrimSpace(name)
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// UpdateSettings replaces the organization settings map
func (o *Organization) UpdateSettings(settings valueobject.AttrMap) {
	o.Settings = settings
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
}

// Deactivate marks the organization inactive
func (o *Organization) Deactivate() error {
	if o.Status == OrganizationStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Organization is already inactive")
	}

	o.Status = OrganizationStatusInactive
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// IsActive returns true if the organization is active
func (o *Organization) IsActive() bool {
	return o.Status == OrganizationStatusActive
}

func validateOrganizationName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Organization name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Organization name cannot exceed 200 characters")
	}
	return nil
}
