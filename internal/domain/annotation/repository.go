package annotation

import (
	"context"

	"github.com/google/uuid"
	"github.com/shelterhq/backend/internal/domain/shared"
)

// NoteRepository defines the interface for note persistence
type NoteRepository interface {
	// FindByIDForOrg finds a note by ID within an organization
	FindByIDForOrg(ctx context.Context, organizationID, id uuid.UUID) (*Note, error)

	// FindBySubject finds notes attached to a subject, newest first.
	// When portalOnly is true only portal-visible notes are returned.
	FindBySubject(ctx context.Context, organizationID uuid.UUID, subject SubjectRef, portalOnly bool, filter shared.Filter) ([]Note, error)

	// Save creates or updates a note
	Save(ctx context.Context, n *Note) error

	// Delete removes a note
	Delete(ctx context.Context, organizationID, id uuid.UUID) error
}

// PhotoRepository defines the interface for photo metadata persistence
type PhotoRepository interface {
	// FindByIDForOrg finds a photo by ID within an organization
	FindByIDForOrg(ctx context.Context, organizationID, id uuid.UUID) (*Photo, error)

	// FindBySubject finds photos attached to a subject, primary first
	FindBySubject(ctx context.Context, organizationID uuid.UUID, subject SubjectRef, filter shared.Filter) ([]Photo, error)

	// Save creates or updates a photo. Saving a primary photo clears the
	// primary flag on the subject's other photos in the same transaction.
	Save(ctx context.Context, p *Photo) error

	// Delete removes a photo record
	Delete(ctx context.Context, organizationID, id uuid.UUID) error
}
