package store

import "errors"

var (
	// ErrSessionNotFound is returned by TokenStore.Get when nobody is logged in.
	ErrSessionNotFound = errors.New("local session not found")
	// ErrSessionExpired is returned by TokenStore.Refresh when the stored
	// credentials expired and cannot be renewed.
	ErrSessionExpired = errors.New("local session expired")
	// ErrEmptyBookID guards against unscoped book storages.
	ErrEmptyBookID = errors.New("empty book id")
)
