package audit

import (
	"context"

	"github.com/google/uuid"

	"github.com/shelterhq/backend/internal/domain/audit"
)

// Recorder appends audit entries on behalf of the application services. It
// is always invoked with the transactional context of the mutation it
// documents, so the entry commits or rolls back with the mutation itself.
type Recorder struct {
	repo audit.Repository
}

// NewRecorder creates a new Recorder
func NewRecorder(repo audit.Repository) *Recorder {
	return &Recorder{repo: repo}
}

// Created records the creation of an entity
func (r *Recorder) Created(ctx context.Context, organizationID uuid.UUID, actorID *uuid.UUID, entityType string, entityID uuid.UUID, after audit.Snapshot) error {
	return r.record(ctx, organizationID, actorID, audit.ActionCreate, entityType, entityID, nil, after)
}

// Updated records a field-level update of an entity
func (r *Recorder) Updated(ctx context.Context, organizationID uuid.UUID, actorID *uuid.UUID, entityType string, entityID uuid.UUID, before, after audit.Snapshot) error {
	return r.record(ctx, organizationID, actorID, audit.ActionUpdate, entityType, entityID, before, after)
}

// Transitioned records a state-machine transition of an entity
func (r *Recorder) Transitioned(ctx context.Context, organizationID uuid.UUID, actorID *uuid.UUID, entityType string, entityID uuid.UUID, before, after audit.Snapshot) error {
	return r.record(ctx, organizationID, actorID, audit.ActionTransition, entityType, entityID, before, after)
}

// Deleted records the removal of an entity
func (r *Recorder) Deleted(ctx context.Context, organizationID uuid.UUID, actorID *uuid.UUID, entityType string, entityID uuid.UUID, before audit.Snapshot) error {
	return r.record(ctx, organizationID, actorID, audit.ActionDelete, entityType, entityID, before, nil)
}

func (r *Recorder) record(ctx context.Context, organizationID uuid.UUID, actorID *uuid.UUID, action audit.Action, entityType string, entityID uuid.UUID, before, after audit.Snapshot) error {
	entry, err := audit.NewEntry(organizationID, actorID, action, entityType, entityID, before, after)
	if err != nil {
		return err
	}
	return r.repo.Append(ctx, entry)
}
