package adoption

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shelterhq/backend/internal/domain/shared"
	"github.com/shelterhq/backend/internal/domain/shared/valueobject"
)

// ApplicationKind distinguishes adoption and foster applications
type ApplicationKind string

const (
	ApplicationKindAdoption ApplicationKind = "adoption"
	ApplicationKindFoster   ApplicationKind = "foster"
)

// IsValid checks if the kind is a known ApplicationKind
func (k ApplicationKind) IsValid() bool {
	return k == ApplicationKindAdoption || k == ApplicationKindFoster
}

// ApplicationStatus represents the pipeline stage of an application
type ApplicationStatus string

const (
	ApplicationStatusReceived  ApplicationStatus = "received"
	ApplicationStatusReview    ApplicationStatus = "review"
	ApplicationStatusApproved  ApplicationStatus = "approved"
	ApplicationStatusDenied    ApplicationStatus = "denied"
	ApplicationStatusWithdrawn ApplicationStatus = "withdrawn"
)

// IsValid checks if the status is a valid ApplicationStatus
func (s ApplicationStatus) IsValid() bool {
	switch s {
	case ApplicationStatusReceived, ApplicationStatusReview, ApplicationStatusApproved,
		ApplicationStatusDenied, ApplicationStatusWithdrawn:
		return true
	}
	return false
}

// String returns the string representation of ApplicationStatus
func (s ApplicationStatus) String() string {
	return string(s)
}

// IsTerminal returns true for approved, denied and withdrawn applications.
// A terminal application never reverts to received or review.
func (s ApplicationStatus) IsTerminal() bool {
	switch s {
	case ApplicationStatusApproved, ApplicationStatusDenied, ApplicationStatusWithdrawn:
		return true
	}
	return false
}

// CanTransitionTo checks if the status can transition to the target status
func (s ApplicationStatus) CanTransitionTo(target ApplicationStatus) bool {
	if !target.IsValid() || s == target {
		return false
	}
	switch s {
	case ApplicationStatusReceived:
		return target == ApplicationStatusReview || target == ApplicationStatusWithdrawn
	case ApplicationStatusReview:
		return target == ApplicationStatusApproved || target == ApplicationStatusDenied ||
			target == ApplicationStatusWithdrawn
	}
	return false
}

// FormSchema declares the typed keys of the application form map
var FormSchema = valueobject.AttrSchema{
	"housing":          valueobject.AttrString,
	"landlord_ok":      valueobject.AttrBool,
	"other_pets":       valueobject.AttrBool,
	"children_at_home": valueobject.AttrBool,
	"yard_fenced":      valueobject.AttrBool,
	"experience":       valueobject.AttrString,
	"hours_alone":      valueobject.AttrNumber,
}

// Application is an adoption or foster request for a specific animal from a
// specific person. It is the aggregate root of the review pipeline.
type Application struct {
	shared.OrgAggregateRoot
	AnimalID    uuid.UUID           `gorm:"type:uuid;not null;index"`
	PersonID    uuid.UUID           `gorm:"type:uuid;not null;index"`
	Kind        ApplicationKind     `gorm:"type:varchar(20);not null"`
	Status      ApplicationStatus   `gorm:"type:varchar(20);not null;default:'received'"`
	Form        valueobject.AttrMap `gorm:"type:jsonb"`
	ReviewNotes string              `gorm:"type:text"`
	DecidedAt   *time.Time
	DecidedBy   *uuid.UUID `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (Application) TableName() string {
	return "applications"
}

// NewApplication submits a new application in the received stage
func NewApplication(organizationID, animalID, personID uuid.UUID, kind ApplicationKind, form valueobject.AttrMap) (*Application, error) {
	if animalID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ANIMAL", "Animal ID cannot be empty")
	}
	if personID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PERSON", "Person ID cannot be empty")
	}
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_KIND", "Unknown application kind")
	}
	if form == nil {
		form = make(valueobject.AttrMap)
	}
	if err := form.Validate(FormSchema); err != nil {
		return nil, shared.NewDomainError("INVALID_FORM", err.Error())
	}

	app := &Application{
		OrgAggregateRoot: shared.NewOrgAggregateRoot(organizationID),
		AnimalID:         animalID,
		PersonID:         personID,
		Kind:             kind,
		Status:           ApplicationStatusReceived,
		Form:             form,
	}

	app.AddDomainEvent(NewApplicationSubmittedEvent(app))

	return app, nil
}

// transitionTo applies a guarded pipeline stage change
func (a *Application) transitionTo(target ApplicationStatus) error {
	if a.Status.IsTerminal() {
		return shared.ErrAlreadyTerminal
	}
	if !a.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_TRANSITION",
			fmt.Sprintf("Cannot move application from %s to %s", a.Status, target))
	}

	from := a.Status
	a.Status = target
	a.UpdatedAt = time.Now()

	a.AddDomainEvent(NewApplicationStageChangedEvent(a, from, target))

	return nil
}

// MoveToReview starts the review of a received application
func (a *Application) MoveToReview() error {
	return a.transitionTo(ApplicationStatusReview)
}

// Approve approves an application under review. Approving does not mutate
// the animal: finalization is a separate, explicit step, so approved and
// completed remain distinguishable pipeline stages.
func (a *Application) Approve(decidedBy uuid.UUID, notes string) error {
	if err := a.transitionTo(ApplicationStatusApproved); err != nil {
		return err
	}

	a.recordDecision(decidedBy, notes)

	return nil
}

// Deny denies an application under review
func (a *Application) Deny(decidedBy uuid.UUID, notes string) error {
	if err := a.transitionTo(ApplicationStatusDenied); err != nil {
		return err
	}

	a.recordDecision(decidedBy, notes)

	return nil
}

// Withdraw is the applicant-initiated exit, reachable from received or
// review
func (a *Application) Withdraw() error {
	return a.transitionTo(ApplicationStatusWithdrawn)
}

// IsApproved returns true when the application has been approved
func (a *Application) IsApproved() bool {
	return a.Status == ApplicationStatusApproved
}

func (a *Application) recordDecision(decidedBy uuid.UUID, notes string) {
	now := time.Now()
	a.DecidedAt = &now
	a.DecidedBy = &decidedBy
	a.ReviewNotes = notes
}
