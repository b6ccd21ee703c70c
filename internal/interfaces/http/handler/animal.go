package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	animalapp "github.com/shelterhq/backend/internal/application/animal"
)

// AnimalHandler handles animal lifecycle API endpoints
type AnimalHandler struct {
	BaseHandler
	animalService *animalapp.AnimalService
}

// NewAnimalHandler creates a new AnimalHandler
func NewAnimalHandler(animalService *animalapp.AnimalService) *AnimalHandler {
	return &AnimalHandler{
		animalService: animalService,
	}
}

// Intake registers an animal entering shelter care
func (h *AnimalHandler) Intake(c *gin.Context) {
	orgID, userID, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req animalapp.IntakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	a, err := h.animalService.Intake(c.Request.Context(), orgID, userID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, a)
}

// GetByID retrieves an animal by ID
func (h *AnimalHandler) GetByID(c *gin.Context) {
	orgID, err := getOrganizationID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	animalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid animal ID format")
		return
	}

	a, err := h.animalService.GetByID(c.Request.Context(), orgID, animalID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, a)
}

// List retrieves animals with filtering and pagination
func (h *AnimalHandler) List(c *gin.Context) {
	orgID, err := getOrganizationID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter animalapp.AnimalListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	animals, total, err := h.animalService.List(c.Request.Context(), orgID, filter)
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

	h.SuccessWithMeta(c, animals, total, page, pageSize)
}

// ChangeStatus moves the animal along the lifecycle state machine
func (h *AnimalHandler) ChangeStatus(c *gin.Context) {
	orgID, userID, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	animalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid animal ID format")
		return
	}

	var req animalapp.ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	a, err := h.animalService.ChangeStatus(c.Request.Context(), orgID, userID, animalID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, a)
}

// UpdateAttributes replaces the animal's open attribute map
func (h *AnimalHandler) UpdateAttributes(c *gin.Context) {
	orgID, userID, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	animalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid animal ID format")
		return
	}

	var req animalapp.UpdateAttributesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	a, err := h.animalService.UpdateAttributes(c.Request.Context(), orgID, userID, animalID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, a)
}

// SetLocation assigns the animal to a location and optional kennel
func (h *AnimalHandler) SetLocation(c *gin.Context) {
	orgID, userID, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	animalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid animal ID format")
		return
	}

	var req animalapp.SetLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	a, err := h.animalService.SetLocation(c.Request.Context(), orgID, userID, animalID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, a)
}

// GetOutcome retrieves the outcome of a terminal animal
func (h *AnimalHandler) GetOutcome(c *gin.Context) {
	orgID, err := getOrganizationID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	animalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid animal ID format")
		return
	}

	outcome, err := h.animalService.GetOutcome(c.Request.Context(), orgID, animalID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, outcome)
}
