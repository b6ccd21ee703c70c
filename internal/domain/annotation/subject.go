package annotation

import (
	"github.com/google/uuid"
	"github.com/shelterhq/backend/internal/domain/shared"
)

// SubjectType identifies which kind of entity an annotation attaches to
type SubjectType string

const (
	SubjectAnimal      SubjectType = "animal"
	SubjectPerson      SubjectType = "person"
	SubjectApplication SubjectType = "application"
)

// IsValid checks if the subject type is valid
func (s SubjectType) IsValid() bool {
	switch s {
	case SubjectAnimal, SubjectPerson, SubjectApplication:
		return true
	}
	return false
}

// String returns the string representation
func (s SubjectType) String() string {
	return string(s)
}

// SubjectRef is a typed reference to the entity an annotation attaches to.
// The referenced entity must resolve within the same organization; callers
// validate existence through the owning repository before persisting.
type SubjectRef struct {
	SubjectType SubjectType `gorm:"size:20;not null;index:idx_subject" json:"subject_type"`
	SubjectID   uuid.UUID   `gorm:"type:uuid;not null;index:idx_subject" json:"subject_id"`
}

// NewSubjectRef creates a validated subject reference
func NewSubjectRef(subjectType SubjectType, subjectID uuid.UUID) (SubjectRef, error) {
	if !subjectType.IsValid() {
		return SubjectRef{}, shared.NewDomainError("INVALID_SUBJECT_TYPE", "Invalid annotation subject type: "+subjectType.String())
	}
	if subjectID == uuid.Nil {
		return SubjectRef{}, shared.NewDomainError("INVALID_SUBJECT", "Annotation subject ID cannot be empty")
	}
	return SubjectRef{SubjectType: subjectType, SubjectID: subjectID}, nil
}
