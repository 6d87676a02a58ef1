package errors

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrAlreadyExists      = errors.New("already exists")
	ErrValidation         = errors.New("invalid input")
	ErrAlreadyEnrolled    = errors.New("already enrolled")
	ErrNotEnrolled        = errors.New("not enrolled")
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")
	ErrUnknownSession     = errors.New("unknown checkout session")
	ErrInvalidTransition  = errors.New("invalid purchase transition")
)
