package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	personapp "github.com/shelterhq/backend/internal/application/person"
)

// PersonHandler handles external contact API endpoints
type PersonHandler struct {
	BaseHandler
	personService *personapp.PersonService
}

// NewPersonHandler creates a new PersonHandler
func NewPersonHandler(personService *personapp.PersonService) *PersonHandler {
	return &PersonHandler{
		personService: personService,
	}
}

// Create registers a new external contact
func (h *PersonHandler) Create(c *gin.Context) {
	orgID, userID, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req personapp.CreatePersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	p, err := h.personService.Create(c.Request.Context(), orgID, userID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, p)
}

// GetByID retrieves a contact by ID
func (h *PersonHandler) GetByID(c *gin.Context) {
	orgID, err := getOrganizationID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	personID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid person ID format")
		return
	}

	p, err := h.personService.GetByID(c.Request.Context(), orgID, personID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, p)
}

// List retrieves contacts with filtering and pagination
func (h *PersonHandler) List(c *gin.Context) {
	orgID, err := getOrganizationID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter personapp.PersonListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	people, total, err := h.personService.List(c.Request.Context(), orgID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	page := filter.Page
	if page == 0 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize == 0 {
		pageSize = 20
	}

	h.SuccessWithMeta(c, people, total, page, pageSize)
}

// Update modifies an existing contact
func (h *PersonHandler) Update(c *gin.Context) {
	orgID, userID, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	personID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid person ID format")
		return
	}

	var req personapp.UpdatePersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	p, err := h.personService.Update(c.Request.Context(), orgID, userID, personID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, p)
}
