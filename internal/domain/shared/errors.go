package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError("CONCURRENT_MODIFICATION", "Resource was modified by another process")
	ErrUnauthorized        = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrForbidden           = NewDomainError("PERMISSION_DENIED", "Access to this resource is forbidden")

	// ErrUnknownEntity is returned when a referenced entity does not exist
	// within the caller's organization. It deliberately carries no detail
	// about whether the entity exists in another organization.
	ErrUnknownEntity = NewDomainError("UNKNOWN_ENTITY", "Referenced entity not found in this organization")

	ErrNotAMember             = NewDomainError("NOT_A_MEMBER", "User is not a member of this organization")
	ErrInvalidTransition      = NewDomainError("INVALID_TRANSITION", "Requested state change is not allowed")
	ErrAlreadyTerminal        = NewDomainError("ALREADY_TERMINAL", "Record is terminal and cannot be changed")
	ErrAnimalAlreadyFostered  = NewDomainError("ANIMAL_ALREADY_FOSTERED", "Animal already has an active foster assignment")
	ErrApplicationNotApproved = NewDomainError("APPLICATION_NOT_APPROVED", "Application has not been approved")
)
