package domain

import "errors"

var (
	// ErrUnknownField signals a filter field name the model does not know.
	ErrUnknownField = errors.New("unknown filter field")
	// ErrFieldType signals a value whose type does not match the field.
	ErrFieldType = errors.New("value type does not match field")
	// ErrValidation signals a cross-field invariant violation.
	ErrValidation = errors.New("validation failed")
	// ErrAuthRequired signals a request rejected for a missing or expired token.
	ErrAuthRequired = errors.New("authentication required")
	// ErrInvalidCredentials signals a failed login.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrModelClosed signals an operation on a closed query model.
	ErrModelClosed = errors.New("query model closed")
	// ErrLoadInFlight signals a load-more call while one is already pending.
	ErrLoadInFlight = errors.New("load already in flight")
)
