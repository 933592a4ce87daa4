package portage

import "github.com/portage-market/portage-go/internal/domain"

// Sentinel errors returned by client operations. Match with errors.Is.
var (
	ErrUnknownField       = domain.ErrUnknownField
	ErrFieldType          = domain.ErrFieldType
	ErrValidation         = domain.ErrValidation
	ErrAuthRequired       = domain.ErrAuthRequired
	ErrInvalidCredentials = domain.ErrInvalidCredentials
	ErrNotFound           = domain.ErrNotFound
	ErrModelClosed        = domain.ErrModelClosed
	ErrLoadInFlight       = domain.ErrLoadInFlight
)
