package annotation

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shelterhq/backend/internal/domain/shared"
)

// Visibility controls which audiences may read a note
type Visibility string

const (
	VisibilityStaffOnly     Visibility = "staff_only"
	VisibilityPortalVisible Visibility = "portal_visible"
)

// IsValid checks if the visibility is valid
func (v Visibility) IsValid() bool {
	return v == VisibilityStaffOnly || v == VisibilityPortalVisible
}

// String returns the string representation
func (v Visibility) String() string {
	return string(v)
}

// Note is a free-form annotation attached to an animal, person or
// application
type Note struct {
	shared.OrgAggregateRoot
	SubjectRef
	AuthorID   uuid.UUID  `gorm:"type:uuid;not null" json:"author_id"`
	Body       string     `gorm:"type:text;not null" json:"body"`
	Visibility Visibility `gorm:"size:20;not null;default:staff_only" json:"visibility"`
}

// TableName returns the table name for GORM
func (Note) TableName() string {
	return "notes"
}

// NewNote creates a new note on a subject
func NewNote(organizationID uuid.UUID, subject SubjectRef, authorID uuid.UUID, body string, visibility Visibility) (*Note, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, shared.NewDomainError("EMPTY_NOTE", "Note body cannot be empty")
	}
	if !visibility.IsValid() {
		return nil, shared.NewDomainError("INVALID_VISIBILITY", "Invalid note visibility: "+visibility.String())
	}

	return &Note{
		OrgAggregateRoot: shared.NewOrgAggregateRoot(organizationID),
		SubjectRef:       subject,
		AuthorID:         authorID,
		Body:             body,
		Visibility:       visibility,
	}, nil
}

// Edit replaces the note body
func (n *Note) Edit(body string) error {
	body = strings.TrimSpace(body)
	if body == "" {
		return shared.NewDomainError("EMPTY_NOTE", "Note body cannot be empty")
	}
	n.Body = body
	return nil
}

// ChangeVisibility retargets the note's audience
func (n *Note) ChangeVisibility(visibility Visibility) error {
	if !visibility.IsValid() {
		return shared.NewDomainError("INVALID_VISIBILITY", "Invalid note visibility: "+visibility.String())
	}
	n.Visibility = visibility
	return nil
}

// IsPortalVisible reports whether portal users may read the note
func (n *Note) IsPortalVisible() bool {
	return n.Visibility == VisibilityPortalVisible
}
