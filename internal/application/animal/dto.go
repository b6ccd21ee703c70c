package animal

import (
	"time"

	"github.com/google/uuid"

	"github.com/shelterhq/backend/internal/domain/animal"
	"github.com/shelterhq/backend/internal/domain/shared"
	"github.com/shelterhq/backend/internal/domain/shared/valueobject"
)

// IntakeRequest represents a request to register an animal entering care
type IntakeRequest struct {
	Name        string              `json:"name" binding:"required,min=1,max=200"`
	Species     animal.Species      `json:"species" binding:"required"`
	Breed       string              `json:"breed" binding:"omitempty,max=100"`
	Kind        animal.IntakeKind   `json:"kind" binding:"required"`
	IntakeDate  time.Time           `json:"intake_date" binding:"required"`
	MedicalHold bool                `json:"medical_hold"`
	Microchip   string              `json:"microchip" binding:"omitempty,max=50"`
	Source      string              `json:"source" binding:"omitempty,max=200"`
	Notes       string              `json:"notes"`
	Attributes  valueobject.AttrMap `json:"attributes"`
}

// ChangeStatusRequest represents a lifecycle transition request
type ChangeStatusRequest struct {
	Status animal.Status `json:"status" binding:"required"`
	Date   time.Time     `json:"date"`
	Notes  string        `json:"notes" binding:"omitempty,max=500"`
}

// UpdateAttributesRequest replaces the animal's attribute map
type UpdateAttributesRequest struct {
	Attributes valueobject.AttrMap `json:"attributes" binding:"required"`
}

// SetLocationRequest assigns a location and optional kennel
type SetLocationRequest struct {
	LocationID *uuid.UUID `json:"location_id"`
	KennelID   *uuid.UUID `json:"kennel_id"`
}

// AnimalListFilter represents filter options for animal lists
type AnimalListFilter struct {
	Search   string          `form:"search"`
	Species  *animal.Species `form:"species"`
	Status   *animal.Status  `form:"status"`
	InCare   *bool           `form:"in_care"`
	Page     int             `form:"page" binding:"omitempty,min=1"`
	PageSize int             `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string          `form:"order_by"`
	OrderDir string          `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

func (f AnimalListFilter) toDomainFilter() shared.Filter {
	domainFilter := shared.DefaultFilter()
	if f.Page > 0 {
		domainFilter.Page = f.Page
	}
	if f.PageSize > 0 {
		domainFilter.PageSize = f.PageSize
	}
	if f.OrderBy != "" {
		domainFilter.OrderBy = f.OrderBy
	}
	if f.OrderDir != "" {
		domainFilter.OrderDir = f.OrderDir
	}
	domainFilter.Search = f.Search
	if f.Species != nil {
		domainFilter.Filters["species"] = string(*f.Species)
	}
	if f.Status != nil {
		domainFilter.Filters["status"] = string(*f.Status)
	}
	if f.InCare != nil {
		domainFilter.Filters["in_care"] = *f.InCare
	}
	return domainFilter
}

// AnimalResponse represents an animal in API responses
type AnimalResponse struct {
	ID         uuid.UUID           `json:"id"`
	Name       string              `json:"name"`
	Species    string              `json:"species"`
	Breed      string              `json:"breed,omitempty"`
	Status     string              `json:"status"`
	IntakeDate time.Time           `json:"intake_date"`
	LocationID *uuid.UUID          `json:"location_id,omitempty"`
	KennelID   *uuid.UUID          `json:"kennel_id,omitempty"`
	Microchip  string              `json:"microchip,omitempty"`
	Attributes valueobject.AttrMap `json:"attributes"`
	InCare     bool                `json:"in_care"`
	Version    int                 `json:"version"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
}

// ToAnimalResponse converts an animal to its API representation
func ToAnimalResponse(a *animal.Animal) AnimalResponse {
	return AnimalResponse{
		ID:         a.ID,
		Name:       a.Name,
		Species:    string(a.Species),
		Breed:      a.Breed,
		Status:     string(a.Status),
		IntakeDate: a.IntakeDate,
		LocationID: a.LocationID,
		KennelID:   a.KennelID,
		Microchip:  a.Microchip,
		Attributes: a.Attributes,
		InCare:     a.InCare(),
		Version:    a.Version,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

// ToAnimalResponses converts a slice of animals
func ToAnimalResponses(animals []animal.Animal) []AnimalResponse {
	responses := make([]AnimalResponse, len(animals))
	for i := range animals {
		responses[i] = ToAnimalResponse(&animals[i])
	}
	return responses
}

// OutcomeResponse represents an outcome in API responses
type OutcomeResponse struct {
	ID          uuid.UUID `json:"id"`
	AnimalID    uuid.UUID `json:"animal_id"`
	Type        string    `json:"type"`
	Date        time.Time `json:"date"`
	Notes       string    `json:"notes,omitempty"`
	LiveRelease bool      `json:"live_release"`
}

// ToOutcomeResponse converts an outcome to its API representation
func ToOutcomeResponse(o *animal.Outcome) OutcomeResponse {
	return OutcomeResponse{
		ID:          o.ID,
		AnimalID:    o.AnimalID,
		Type:        string(o.Type),
		Date:        o.Date,
		Notes:       o.Notes,
		LiveRelease: o.Type.IsLiveRelease(),
	}
}
