package annotation

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shelterhq/backend/internal/domain/shared"
)

// Photo stores metadata and the URL of an externally hosted image.
// Upload and byte storage live outside this core.
type Photo struct {
	shared.OrgAggregateRoot
	SubjectRef
	UploadedBy  uuid.UUID `gorm:"type:uuid;not null" json:"uploaded_by"`
	URL         string    `gorm:"size:1000;not null" json:"url"`
	Caption     string    `gorm:"size:500" json:"caption"`
	ContentType string    `gorm:"size:100" json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	IsPrimary   bool      `gorm:"default:false" json:"is_primary"`
}

// TableName returns the table name for GORM
func (Photo) TableName() string {
	return "photos"
}

// NewPhoto creates a new photo annotation
func NewPhoto(organizationID uuid.UUID, subject SubjectRef, uploadedBy uuid.UUID, url string) (*Photo, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, shared.NewDomainError("EMPTY_PHOTO_URL", "Photo URL cannot be empty")
	}

	return &Photo{
		OrgAggregateRoot: shared.NewOrgAggregateRoot(organizationID),
		SubjectRef:       subject,
		UploadedBy:       uploadedBy,
		URL:              url,
	}, nil
}

// SetCaption updates the caption
func (p *Photo) SetCaption(caption string) {
	p.Caption = strings.TrimSpace(caption)
}

// SetMetadata records content type and size reported by the uploader
func (p *Photo) SetMetadata(contentType string, sizeBytes int64) error {
	if sizeBytes < 0 {
		return shared.NewDomainError("INVALID_PHOTO_SIZE", "Photo size cannot be negative")
	}
	p.ContentType = contentType
	p.SizeBytes = sizeBytes
	return nil
}

// MarkPrimary flags the photo as the subject's primary image. The
// repository clears the flag on sibling photos in the same save.
func (p *Photo) MarkPrimary() {
	p.IsPrimary = true
}
