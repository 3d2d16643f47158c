package service

import "errors"

// Error taxonomy shared by the progress engine. Controllers map these onto
// HTTP statuses; everything else surfaces as a plain 500.
var (
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrValidation         = errors.New("missing or invalid identifier")
	ErrInvalidReference   = errors.New("unknown module or section key")
	ErrIntegrityViolation = errors.New("cycle record set does not match the catalog")
)
