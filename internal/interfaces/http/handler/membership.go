package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	identityapp "github.com/shelterhq/backend/internal/application/identity"
	"github.com/shelterhq/backend/internal/domain/shared"
	"github.com/shelterhq/backend/internal/interfaces/http/dto"
)

// MembershipHandler handles organization membership API endpoints
type MembershipHandler struct {
	BaseHandler
	membershipService *identityapp.MembershipService
}

// NewMembershipHandler creates a new MembershipHandler
func NewMembershipHandler(membershipService *identityapp.MembershipService) *MembershipHandler {
	return &MembershipHandler{
		membershipService: membershipService,
	}
}

// Grant adds an existing user to the caller's organization
func (h *MembershipHandler) Grant(c *gin.Context) {
	orgID, userID, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req identityapp.GrantMembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	membership, err := h.membershipService.Grant(c.Request.Context(), orgID, userID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, membership)
}

// ChangeRole changes a member's role
func (h *MembershipHandler) ChangeRole(c *gin.Context) {
	orgID, actorID, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	memberUserID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		h.BadRequest(c, "Invalid user ID format")
		return
	}

	var req identityapp.ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	membership, err := h.membershipService.ChangeRole(c.Request.Context(), orgID, actorID, memberUserID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, membership)
}

// Revoke removes a member from the organization
func (h *MembershipHandler) Revoke(c *gin.Context) {
	orgID, actorID, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	memberUserID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		h.BadRequest(c, "Invalid user ID format")
		return
	}

	if err := h.membershipService.Revoke(c.Request.Context(), orgID, actorID, memberUserID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// List returns the organization's members
func (h *MembershipHandler) List(c *gin.Context) {
	orgID, err := getOrganizationID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	listReq := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&listReq); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := shared.DefaultFilter()
	filter.Page = listReq.Page
	filter.PageSize = listReq.PageSize
	if role := c.Query("role"); role != "" {
		filter.Filters["role"] = role
	}

	memberships, err := h.membershipService.List(c.Request.Context(), orgID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, memberships)
}
