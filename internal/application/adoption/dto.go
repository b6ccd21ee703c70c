package adoption

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shelterhq/backend/internal/domain/adoption"
	"github.com/shelterhq/backend/internal/domain/shared"
	"github.com/shelterhq/backend/internal/domain/shared/valueobject"
)

// SubmitApplicationRequest enters an application into the pipeline
type SubmitApplicationRequest struct {
	AnimalID uuid.UUID                `json:"animal_id" binding:"required"`
	PersonID uuid.UUID                `json:"person_id" binding:"required"`
	Kind     adoption.ApplicationKind `json:"kind" binding:"required"`
	Form     valueobject.AttrMap      `json:"form"`
}

// DecisionRequest carries reviewer notes for an approve/deny decision
type DecisionRequest struct {
	Notes string `json:"notes" binding:"omitempty,max=2000"`
}

// FinalizeAdoptionRequest finalizes an approved adoption application
type FinalizeAdoptionRequest struct {
	ApplicationID uuid.UUID `json:"application_id" binding:"required"`
	Date          time.Time `json:"date"`
	FeeCents      int64     `json:"fee_cents" binding:"omitempty,min=0"`
	DonationCents int64     `json:"donation_cents" binding:"omitempty,min=0"`
	ContractRef   string    `json:"contract_ref" binding:"omitempty,max=200"`
	PaymentRef    string    `json:"payment_ref" binding:"omitempty,max=200"`
}

// PlaceFosterRequest opens a foster placement from an approved application
type PlaceFosterRequest struct {
	ApplicationID uuid.UUID `json:"application_id" binding:"required"`
	StartDate     time.Time `json:"start_date"`
	Notes         string    `json:"notes" binding:"omitempty,max=2000"`
}

// CloseFosterRequest closes a foster placement. MedicalHold returns the
// animal to hold instead of available.
type CloseFosterRequest struct {
	EndDate     time.Time `json:"end_date"`
	MedicalHold bool      `json:"medical_hold"`
	Notes       string    `json:"notes" binding:"omitempty,max=2000"`
}

// ApplicationListFilter represents filter options for the pipeline board
type ApplicationListFilter struct {
	AnimalID *uuid.UUID                  `form:"animal_id"`
	PersonID *uuid.UUID                  `form:"person_id"`
	Kind     *adoption.ApplicationKind   `form:"kind"`
	Status   *adoption.ApplicationStatus `form:"status"`
	Page     int                         `form:"page" binding:"omitempty,min=1"`
	PageSize int                         `form:"page_size" binding:"omitempty,min=1,max=100"`
}

func (f ApplicationListFilter) toDomainFilter() shared.Filter {
	domainFilter := shared.DefaultFilter()
	if f.Page > 0 {
		domainFilter.Page = f.Page
	}
	if f.PageSize > 0 {
		domainFilter.PageSize = f.PageSize
	}
	if f.AnimalID != nil {
		domainFilter.Filters["animal_id"] = *f.AnimalID
	}
	if f.PersonID != nil {
		domainFilter.Filters["person_id"] = *f.PersonID
	}
	if f.Kind != nil {
		domainFilter.Filters["kind"] = string(*f.Kind)
	}
	if f.Status != nil {
		domainFilter.Filters["status"] = string(*f.Status)
	}
	return domainFilter
}

// ApplicationResponse represents an application in API responses
type ApplicationResponse struct {
	ID          uuid.UUID           `json:"id"`
	AnimalID    uuid.UUID           `json:"animal_id"`
	PersonID    uuid.UUID           `json:"person_id"`
	Kind        string              `json:"kind"`
	Status      string              `json:"status"`
	Form        valueobject.AttrMap `json:"form"`
	ReviewNotes string              `json:"review_notes,omitempty"`
	DecidedAt   *time.Time          `json:"decided_at,omitempty"`
	DecidedBy   *uuid.UUID          `json:"decided_by,omitempty"`
	Version     int                 `json:"version"`
	CreatedAt   time.Time           `json:"created_at"`
}

// ToApplicationResponse converts an application to its API representation
func ToApplicationResponse(a *adoption.Application) ApplicationResponse {
	return ApplicationResponse{
		ID:          a.ID,
		AnimalID:    a.AnimalID,
		PersonID:    a.PersonID,
		Kind:        string(a.Kind),
		Status:      a.Status.String(),
		Form:        a.Form,
		ReviewNotes: a.ReviewNotes,
		DecidedAt:   a.DecidedAt,
		DecidedBy:   a.DecidedBy,
		Version:     a.Version,
		CreatedAt:   a.CreatedAt,
	}
}

// ToApplicationResponses converts a slice of applications
func ToApplicationResponses(apps []adoption.Application) []ApplicationResponse {
	responses := make([]ApplicationResponse, len(apps))
	for i := range apps {
		responses[i] = ToApplicationResponse(&apps[i])
	}
	return responses
}

// FosterResponse represents a foster assignment in API responses
type FosterResponse struct {
	ID        uuid.UUID  `json:"id"`
	AnimalID  uuid.UUID  `json:"animal_id"`
	PersonID  uuid.UUID  `json:"person_id"`
	Status    string     `json:"status"`
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	Notes     string     `json:"notes,omitempty"`
	Version   int        `json:"version"`
}

// ToFosterResponse converts a foster assignment to its API representation
func ToFosterResponse(f *adoption.FosterAssignment) FosterResponse {
	return FosterResponse{
		ID:        f.ID,
		AnimalID:  f.AnimalID,
		PersonID:  f.PersonID,
		Status:    string(f.Status),
		StartDate: f.StartDate,
		EndDate:   f.EndDate,
		Notes:     f.Notes,
		Version:   f.Version,
	}
}

// ToFosterResponses converts a slice of foster assignments
func ToFosterResponses(assignments []adoption.FosterAssignment) []FosterResponse {
	responses := make([]FosterResponse, len(assignments))
	for i := range assignments {
		responses[i] = ToFosterResponse(&assignments[i])
	}
	return responses
}

// AdoptionResponse represents a finalized adoption in API responses
type AdoptionResponse struct {
	ID            uuid.UUID       `json:"id"`
	AnimalID      uuid.UUID       `json:"animal_id"`
	AdopterID     uuid.UUID       `json:"adopter_id"`
	ApplicationID uuid.UUID       `json:"application_id"`
	Date          time.Time       `json:"date"`
	Fee           decimal.Decimal `json:"fee"`
	Donation      decimal.Decimal `json:"donation"`
	ContractRef   string          `json:"contract_ref,omitempty"`
	PaymentRef    string          `json:"payment_ref,omitempty"`
}

// ToAdoptionResponse converts an adoption to its API representation
func ToAdoptionResponse(a *adoption.Adoption) AdoptionResponse {
	return AdoptionResponse{
		ID:            a.ID,
		AnimalID:      a.AnimalID,
		AdopterID:     a.AdopterID,
		ApplicationID: a.ApplicationID,
		Date:          a.Date,
		Fee:           a.Fee.Decimal(),
		Donation:      a.Donation.Decimal(),
		ContractRef:   a.ContractRef,
		PaymentRef:    a.PaymentRef,
	}
}
