package adapter

import "errors"

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrInternalServerError = errors.New("internal server error")
	ErrBadGateway          = errors.New("bad gateway")

	// ErrNotSupported is returned for operations a backend has no notion of.
	ErrNotSupported = errors.New("operation not supported by backend")
	// ErrInvalidStoreName rejects empty names and names containing a slash.
	ErrInvalidStoreName = errors.New("invalid store name")
	// ErrUnknownBackend is returned by the factory.
	ErrUnknownBackend = errors.New("unknown backend")
	// ErrInvalidCredentials means the credentials lack a required field.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
