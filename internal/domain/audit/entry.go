package audit

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shelterhq/backend/internal/domain/shared"
)

// Action identifies what happened to the entity
type Action string

const (
	ActionCreate     Action = "create"
	ActionUpdate     Action = "update"
	ActionTransition Action = "transition"
	ActionDelete     Action = "delete"
)

// IsValid checks if the action is valid
func (a Action) IsValid() bool {
	switch a {
	case ActionCreate, ActionUpdate, ActionTransition, ActionDelete:
		return true
	}
	return false
}

// String returns the string representation
func (a Action) String() string {
	return string(a)
}

// Snapshot holds the mutated fields of an entity at a point in time,
// persisted as a JSON document
type Snapshot map[string]interface{}

// Value implements driver.Valuer
func (s Snapshot) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	data, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner
func (s *Snapshot) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into Snapshot", value)
	}
	if len(data) == 0 {
		*s = nil
		return nil
	}
	return json.Unmarshal(data, s)
}

// Entry is an append-only audit record. Entries are never updated or
// deleted; prior entity state must stay reconstructable from Before.
type Entry struct {
	shared.BaseEntity
	OrganizationID uuid.UUID  `gorm:"type:uuid;not null;index" json:"organization_id"`
	ActorID        *uuid.UUID `gorm:"type:uuid;index" json:"actor_id,omitempty"`
	Action         Action     `gorm:"size:20;not null" json:"action"`
	EntityType     string     `gorm:"size:60;not null;index:idx_audit_entity" json:"entity_type"`
	EntityID       uuid.UUID  `gorm:"type:uuid;not null;index:idx_audit_entity" json:"entity_id"`
	Before         Snapshot   `gorm:"type:jsonb" json:"before,omitempty"`
	After          Snapshot   `gorm:"type:jsonb" json:"after,omitempty"`
	RecordedAt     time.Time  `gorm:"not null;index" json:"recorded_at"`
}

// TableName returns the table name for GORM
func (Entry) TableName() string {
	return "audit_log"
}

// NewEntry creates an audit entry. actorID is nil for system-initiated
// mutations.
func NewEntry(organizationID uuid.UUID, actorID *uuid.UUID, action Action, entityType string, entityID uuid.UUID, before, after Snapshot) (*Entry, error) {
	if !action.IsValid() {
		return nil, shared.NewDomainError("INVALID_AUDIT_ACTION", "Invalid audit action: "+action.String())
	}
	if entityType == "" {
		return nil, shared.NewDomainError("INVALID_AUDIT_ENTITY", "Audit entity type cannot be empty")
	}

	return &Entry{
		BaseEntity:     shared.NewBaseEntity(),
		OrganizationID: organizationID,
		ActorID:        actorID,
		Action:         action,
		EntityType:     entityType,
		EntityID:       entityID,
		Before:         before,
		After:          after,
		RecordedAt:     time.Now().UTC(),
	}, nil
}
