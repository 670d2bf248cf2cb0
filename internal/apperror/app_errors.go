package apperror

import "errors"

var (
	ErrMalformedMessage = errors.New("malformed message")
	ErrUnknownAgent     = errors.New("unknown agent")
	ErrJoinCodeRequired = errors.New("join code is required")
	ErrInvalidJoinCode  = errors.New("invalid join code")
)
