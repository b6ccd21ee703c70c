package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	adoptionapp "github.com/shelterhq/backend/internal/application/adoption"
)

// FinalizationHandler handles adoption finalization and foster placement
// endpoints
type FinalizationHandler struct {
	BaseHandler
	finalizationService *adoptionapp.FinalizationService
}

// NewFinalizationHandler creates a new FinalizationHandler
func NewFinalizationHandler(finalizationService *adoptionapp.FinalizationService) *FinalizationHandler {
	return &FinalizationHandler{
		finalizationService: finalizationService,
	}
}

// FinalizeAdoption finalizes an approved adoption application
func (h *FinalizationHandler) FinalizeAdoption(c *gin.Context) {
	orgID, userID, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req adoptionapp.FinalizeAdoptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.finalizationService.FinalizeAdoption(c.Request.Context(), orgID, userID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, result)
}

// PlaceFoster opens a foster placement from an approved application
func (h *FinalizationHandler) PlaceFoster(c *gin.Context) {
	orgID, userID, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req adoptionapp.PlaceFosterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.finalizationService.PlaceFoster(c.Request.Context(), orgID, userID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, result)
}

// CompleteFoster closes a foster placement as completed
func (h *FinalizationHandler) CompleteFoster(c *gin.Context) {
	h.closeFoster(c, h.finalizationService.CompleteFoster)
}

// FailFoster closes a foster placement as failed
func (h *FinalizationHandler) FailFoster(c *gin.Context) {
	h.closeFoster(c, h.finalizationService.FailFoster)
}

func (h *FinalizationHandler) closeFoster(c *gin.Context, apply func(ctx context.Context, organizationID, actorID, assignmentID uuid.UUID, req adoptionapp.CloseFosterRequest) (*adoptionapp.FosterResponse, error)) {
	orgID, userID, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	assignmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid assignment ID format")
		return
	}

	var req adoptionapp.CloseFosterRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := apply(c.Request.Context(), orgID, userID, assignmentID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// GetAdoption retrieves the finalized adoption of an animal
func (h *FinalizationHandler) GetAdoption(c *gin.Context) {
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

	result, err := h.finalizationService.GetAdoption(c.Request.Context(), orgID, animalID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// ListFosterHistory retrieves all foster placements of an animal
func (h *FinalizationHandler) ListFosterHistory(c *gin.Context) {
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

	history, err := h.finalizationService.ListFosterHistory(c.Request.Context(), orgID, animalID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, history)
}
