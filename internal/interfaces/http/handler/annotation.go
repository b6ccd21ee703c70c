package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	annotationapp "github.com/shelterhq/backend/internal/application/annotation"
	"github.com/shelterhq/backend/internal/domain/annotation"
	"github.com/shelterhq/backend/internal/domain/identity"
	"github.com/shelterhq/backend/internal/interfaces/http/middleware"
)

// AnnotationHandler handles note and photo API endpoints
type AnnotationHandler struct {
	BaseHandler
	annotationService *annotationapp.AnnotationService
}

// NewAnnotationHandler creates a new AnnotationHandler
func NewAnnotationHandler(annotationService *annotationapp.AnnotationService) *AnnotationHandler {
	return &AnnotationHandler{
		annotationService: annotationService,
	}
}

// AddNote attaches a note to a subject
func (h *AnnotationHandler) AddNote(c *gin.Context) {
	orgID, userID, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req annotationapp.AddNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	note, err := h.annotationService.AddNote(c.Request.Context(), orgID, userID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, note)
}

// ListNotes lists a subject's notes. Callers below staff rank see only
// portal-visible notes.
func (h *AnnotationHandler) ListNotes(c *gin.Context) {
	orgID, err := getOrganizationID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req annotationapp.ListNotesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	role := identity.Role(middleware.GetJWTRole(c))
	portalOnly := !role.AtLeast(identity.RoleStaff)

	notes, err := h.annotationService.ListNotes(c.Request.Context(), orgID, req, portalOnly)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, notes)
}

// EditNote replaces the body or visibility of a note
func (h *AnnotationHandler) EditNote(c *gin.Context) {
	orgID, userID, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	noteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid note ID format")
		return
	}

	var req annotationapp.EditNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	note, err := h.annotationService.EditNote(c.Request.Context(), orgID, userID, noteID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, note)
}

// DeleteNote removes a note
func (h *AnnotationHandler) DeleteNote(c *gin.Context) {
	orgID, userID, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	noteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid note ID format")
		return
	}

	if err := h.annotationService.DeleteNote(c.Request.Context(), orgID, userID, noteID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// AddPhoto records photo metadata for a subject
func (h *AnnotationHandler) AddPhoto(c *gin.Context) {
	orgID, userID, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req annotationapp.AddPhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	photo, err := h.annotationService.AddPhoto(c.Request.Context(), orgID, userID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, photo)
}

// ListPhotos lists a subject's photos, primary first
func (h *AnnotationHandler) ListPhotos(c *gin.Context) {
	orgID, err := getOrganizationID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	subjectType := annotation.SubjectType(c.Query("subject_type"))
	subjectID, err := uuid.Parse(c.Query("subject_id"))
	if err != nil {
		h.BadRequest(c, "Invalid subject ID format")
		return
	}

	photos, err := h.annotationService.ListPhotos(c.Request.Context(), orgID, subjectType, subjectID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, photos)
}

// DeletePhoto removes photo metadata
func (h *AnnotationHandler) DeletePhoto(c *gin.Context) {
	orgID, userID, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	photoID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid photo ID format")
		return
	}

	if err := h.annotationService.DeletePhoto(c.Request.Context(), orgID, userID, photoID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
