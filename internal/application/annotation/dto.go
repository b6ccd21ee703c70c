package annotation

import (
	"time"

	"github.com/google/uuid"

	"github.com/shelterhq/backend/internal/domain/annotation"
)

// AddNoteRequest attaches a note to a subject
type AddNoteRequest struct {
	SubjectType annotation.SubjectType `json:"subject_type" binding:"required"`
	SubjectID   uuid.UUID              `json:"subject_id" binding:"required"`
	Body        string                 `json:"body" binding:"required,min=1,max=10000"`
	Visibility  annotation.Visibility  `json:"visibility" binding:"required"`
}

// ListNotesRequest identifies the subject whose notes to list
type ListNotesRequest struct {
	SubjectType annotation.SubjectType `form:"subject_type" binding:"required"`
	SubjectID   uuid.UUID              `form:"subject_id" binding:"required"`
}

// EditNoteRequest replaces the body or visibility of a note
type EditNoteRequest struct {
	Body       string                 `json:"body" binding:"omitempty,max=10000"`
	Visibility *annotation.Visibility `json:"visibility"`
}

// AddPhotoRequest records photo metadata for a subject
type AddPhotoRequest struct {
	SubjectType annotation.SubjectType `json:"subject_type" binding:"required"`
	SubjectID   uuid.UUID              `json:"subject_id" binding:"required"`
	URL         string                 `json:"url" binding:"required,url,max=1000"`
	Caption     string                 `json:"caption" binding:"omitempty,max=500"`
	ContentType string                 `json:"content_type" binding:"omitempty,max=100"`
	SizeBytes   int64                  `json:"size_bytes" binding:"omitempty,min=0"`
	IsPrimary   bool                   `json:"is_primary"`
}

// NoteResponse represents a note in API responses
type NoteResponse struct {
	ID          uuid.UUID `json:"id"`
	SubjectType string    `json:"subject_type"`
	SubjectID   uuid.UUID `json:"subject_id"`
	AuthorID    uuid.UUID `json:"author_id"`
	Body        string    `json:"body"`
	Visibility  string    `json:"visibility"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToNoteResponse converts a note to its API representation
func ToNoteResponse(n *annotation.Note) NoteResponse {
	return NoteResponse{
		ID:          n.ID,
		SubjectType: string(n.SubjectType),
		SubjectID:   n.SubjectID,
		AuthorID:    n.AuthorID,
		Body:        n.Body,
		Visibility:  string(n.Visibility),
		CreatedAt:   n.CreatedAt,
		UpdatedAt:   n.UpdatedAt,
	}
}

// ToNoteResponses converts a slice of notes
func ToNoteResponses(notes []annotation.Note) []NoteResponse {
	responses := make([]NoteResponse, len(notes))
	for i := range notes {
		responses[i] = ToNoteResponse(&notes[i])
	}
	return responses
}

// PhotoResponse represents photo metadata in API responses
type PhotoResponse struct {
	ID          uuid.UUID `json:"id"`
	SubjectType string    `json:"subject_type"`
	SubjectID   uuid.UUID `json:"subject_id"`
	UploadedBy  uuid.UUID `json:"uploaded_by"`
	URL         string    `json:"url"`
	Caption     string    `json:"caption,omitempty"`
	ContentType string    `json:"content_type,omitempty"`
	SizeBytes   int64     `json:"size_bytes,omitempty"`
	IsPrimary   bool      `json:"is_primary"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToPhotoResponse converts a photo to its API representation
func ToPhotoResponse(p *annotation.Photo) PhotoResponse {
	return PhotoResponse{
		ID:          p.ID,
		SubjectType: string(p.SubjectType),
		SubjectID:   p.SubjectID,
		UploadedBy:  p.UploadedBy,
		URL:         p.URL,
		Caption:     p.Caption,
		ContentType: p.ContentType,
		SizeBytes:   p.SizeBytes,
		IsPrimary:   p.IsPrimary,
		CreatedAt:   p.CreatedAt,
	}
}

// ToPhotoResponses converts a slice of photos
func ToPhotoResponses(photos []annotation.Photo) []PhotoResponse {
	responses := make([]PhotoResponse, len(photos))
	for i := range photos {
		responses[i] = ToPhotoResponse(&photos[i])
	}
	return responses
}
