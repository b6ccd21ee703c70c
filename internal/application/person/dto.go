package person

import (
	"time"

	"github.com/google/uuid"

	"github.com/shelterhq/backend/internal/domain/person"
	"github.com/shelterhq/backend/internal/domain/shared"
	"github.com/shelterhq/backend/internal/domain/shared/valueobject"
)

// CreatePersonRequest registers a new external contact
type CreatePersonRequest struct {
	FirstName string              `json:"first_name" binding:"required,min=1,max=100"`
	LastName  string              `json:"last_name" binding:"omitempty,max=100"`
	Type      person.Type         `json:"type" binding:"required"`
	Email     string              `json:"email" binding:"omitempty,email,max=255"`
	Phone     string              `json:"phone" binding:"omitempty,max=40"`
	Address   string              `json:"address" binding:"omitempty,max=500"`
	Flags     valueobject.AttrMap `json:"flags"`
}

// UpdatePersonRequest modifies an existing contact
type UpdatePersonRequest struct {
	Email   string              `json:"email" binding:"omitempty,email,max=255"`
	Phone   string              `json:"phone" binding:"omitempty,max=40"`
	Address string              `json:"address" binding:"omitempty,max=500"`
	Type    *person.Type        `json:"type"`
	Flags   valueobject.AttrMap `json:"flags"`
}

// PersonListFilter represents filter options for contact lists
type PersonListFilter struct {
	Search   string       `form:"search"`
	Type     *person.Type `form:"type"`
	Page     int          `form:"page" binding:"omitempty,min=1"`
	PageSize int          `form:"page_size" binding:"omitempty,min=1,max=100"`
}

func (f PersonListFilter) toDomainFilter() shared.Filter {
	domainFilter := shared.DefaultFilter()
	if f.Page > 0 {
		domainFilter.Page = f.Page
	}
	if f.PageSize > 0 {
		domainFilter.PageSize = f.PageSize
	}
	domainFilter.Search = f.Search
	if f.Type != nil {
		domainFilter.Filters["type"] = string(*f.Type)
	}
	return domainFilter
}

// PersonResponse represents a contact in API responses
type PersonResponse struct {
	ID         uuid.UUID           `json:"id"`
	FirstName  string              `json:"first_name"`
	LastName   string              `json:"last_name,omitempty"`
	FullName   string              `json:"full_name"`
	Type       string              `json:"type"`
	Email      string              `json:"email,omitempty"`
	Phone      string              `json:"phone,omitempty"`
	Address    string              `json:"address,omitempty"`
	Flags      valueobject.AttrMap `json:"flags"`
	DoNotAdopt bool                `json:"do_not_adopt"`
	CreatedAt  time.Time           `json:"created_at"`
}

// ToPersonResponse converts a person to its API representation
func ToPersonResponse(p *person.Person) PersonResponse {
	return PersonResponse{
		ID:         p.ID,
		FirstName:  p.FirstName,
		LastName:   p.LastName,
		FullName:   p.FullName(),
		Type:       string(p.Type),
		Email:      p.Email,
		Phone:      p.Phone,
		Address:    p.Address,
		Flags:      p.Flags,
		DoNotAdopt: p.IsDoNotAdopt(),
		CreatedAt:  p.CreatedAt,
	}
}

// ToPersonResponses converts a slice of people
func ToPersonResponses(people []person.Person) []PersonResponse {
	responses := make([]PersonResponse, len(people))
	for i := range people {
		responses[i] = ToPersonResponse(&people[i])
	}
	return responses
}
