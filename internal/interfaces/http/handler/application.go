package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	adoptionapp "github.com/shelterhq/backend/internal/application/adoption"
)

// ApplicationHandler handles adoption/foster application pipeline endpoints
type ApplicationHandler struct {
	BaseHandler
	applicationService *adoptionapp.ApplicationService
}

// NewApplicationHandler creates a new ApplicationHandler
func NewApplicationHandler(applicationService *adoptionapp.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{
		applicationService: applicationService,
	}
}

// Submit enters an application into the pipeline
func (h *ApplicationHandler) Submit(c *gin.Context) {
	orgID, userID, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req adoptionapp.SubmitApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	app, err := h.applicationService.Submit(c.Request.Context(), orgID, userID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, app)
}

// GetByID retrieves an application by ID
func (h *ApplicationHandler) GetByID(c *gin.Context) {
	orgID, err := getOrganizationID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	applicationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid application ID format")
		return
	}

	app, err := h.applicationService.GetByID(c.Request.Context(), orgID, applicationID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, app)
}

// List retrieves applications with filtering and pagination
func (h *ApplicationHandler) List(c *gin.Context) {
	orgID, err := getOrganizationID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter adoptionapp.ApplicationListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	apps, total, err := h.applicationService.List(c.Request.Context(), orgID, filter)
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

	h.SuccessWithMeta(c, apps, total, page, pageSize)
}

// MoveToReview moves a submitted application under review
func (h *ApplicationHandler) MoveToReview(c *gin.Context) {
	orgID, userID, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	applicationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid application ID format")
		return
	}

	app, err := h.applicationService.MoveToReview(c.Request.Context(), orgID, userID, applicationID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, app)
}

// Approve approves an application under review
func (h *ApplicationHandler) Approve(c *gin.Context) {
	h.decide(c, h.applicationService.Approve)
}

// Deny denies an application under review
func (h *ApplicationHandler) Deny(c *gin.Context) {
	h.decide(c, h.applicationService.Deny)
}

func (h *ApplicationHandler) decide(c *gin.Context, apply func(ctx context.Context, organizationID, actorID, applicationID uuid.UUID, req adoptionapp.DecisionRequest) (*adoptionapp.ApplicationResponse, error)) {
	orgID, userID, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	applicationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid application ID format")
		return
	}

	var req adoptionapp.DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		h.BadRequest(c, err.Error())
		return
	}

	app, err := apply(c.Request.Context(), orgID, userID, applicationID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, app)
}

// Withdraw withdraws an open application
func (h *ApplicationHandler) Withdraw(c *gin.Context) {
	orgID, userID, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	applicationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid application ID format")
		return
	}

	app, err := h.applicationService.Withdraw(c.Request.Context(), orgID, userID, applicationID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, app)
}
