package audit

import (
	"time"

	"github.com/google/uuid"

	"github.com/shelterhq/backend/internal/domain/audit"
)

// EntryListFilter represents filter options for the audit log
type EntryListFilter struct {
	Action     *audit.Action `form:"action"`
	EntityType string        `form:"entity_type"`
	ActorID    *uuid.UUID    `form:"actor_id"`
	From       *time.Time    `form:"from"`
	To         *time.Time    `form:"to"`
	Page       int           `form:"page" binding:"omitempty,min=1"`
	PageSize   int           `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// EntryResponse represents an audit entry in API responses
type EntryResponse struct {
	ID         uuid.UUID      `json:"id"`
	ActorID    *uuid.UUID     `json:"actor_id,omitempty"`
	Action     string         `json:"action"`
	EntityType string         `json:"entity_type"`
	EntityID   uuid.UUID      `json:"entity_id"`
	Before     audit.Snapshot `json:"before,omitempty"`
	After      audit.Snapshot `json:"after,omitempty"`
	RecordedAt time.Time      `json:"recorded_at"`
}

// ToEntryResponse converts an audit entry to its API representation
func ToEntryResponse(e *audit.Entry) EntryResponse {
	return EntryResponse{
		ID:         e.ID,
		ActorID:    e.ActorID,
		Action:     e.Action.String(),
		EntityType: e.EntityType,
		EntityID:   e.EntityID,
		Before:     e.Before,
		After:      e.After,
		RecordedAt: e.RecordedAt,
	}
}

// ToEntryResponses converts a slice of audit entries
func ToEntryResponses(entries []audit.Entry) []EntryResponse {
	responses := make([]EntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToEntryResponse(&entries[i])
	}
	return responses
}
