package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	ErrNotLoggedIn     = errors.New("not logged in")
	ErrSchedulerClosed = errors.New("sync scheduler is closed")
	ErrEndpointClosed  = errors.New("endpoint is closed")
	ErrCorruptedChunk  = errors.New("remote chunk is corrupted")
	ErrCorruptedMeta   = errors.New("remote meta is corrupted")
	ErrInvalidDataURL  = errors.New("invalid data url")
	ErrSyncLockTimeout = errors.New("book is being synced by another process")
	ErrVersionIsNotSet = errors.New("application version is not specified")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
)
