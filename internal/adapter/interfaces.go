// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the remote side of book synchronisation.
//
// The primary abstraction is [RemoteStore], which decouples the sync engine
// from the backend a book lives on. It is implemented once, by a generic store
// written against the lower level [FileSystem] capability; every backend
// (GitHub repositories, WebDAV, S3 compatible buckets, plain folders and the
// local offline directory) only implements [FileSystem].
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError and from S3 error codes by mapS3Error so that callers can use
// [errors.Is] for backend-agnostic handling (e.g. [ErrNotFound] for 404,
// [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-ledger-sync/models"
)

// RemoteStore is the capability set the sync engine needs from a backend.
// Store ids are the backend full names returned by FetchAllStores and
// CreateStore; file paths are relative to the store.
type RemoteStore interface {
	// Backend names the backend, one of the models.Backend* constants.
	Backend() string

	// FetchAllStores lists the stores under the configured root whose name
	// carries the configured prefix. A missing root yields an empty list.
	FetchAllStores(ctx context.Context) ([]models.Book, error)

	// CreateStore provisions a store: its directory, the assets container
	// and an empty meta.json. Creating an existing store keeps its content.
	CreateStore(ctx context.Context, name string) (models.Book, error)

	// DeleteStore removes a store. A store that does not exist is deleted.
	DeleteStore(ctx context.Context, id string) error

	// FetchStoreStructure lists the chunk, meta and asset files of a store.
	FetchStoreStructure(ctx context.Context, id string) (models.Structure, error)

	// FetchFileContents returns the content of paths, in the same order.
	FetchFileContents(ctx context.Context, id string, paths []string) ([]models.RemoteFile, error)

	// WriteFiles creates or replaces files.
	WriteFiles(ctx context.Context, id string, files []models.RemoteFile) error

	// DeleteFiles removes files; missing files are ignored.
	DeleteFiles(ctx context.Context, id string, paths []string) error

	// GetAsset fetches one asset on demand. ok is false when the asset
	// cannot be retrieved for any reason.
	GetAsset(ctx context.Context, id, path string) (file models.File, ok bool)

	// CheckConfig probes connectivity and authentication without mutating
	// anything. A missing root is a success.
	CheckConfig(ctx context.Context) error

	// UserInfo describes the account the store is accessed with.
	UserInfo(ctx context.Context) (models.UserInfo, error)

	// Directory returns the collaborator directory of backends that have one.
	Directory() (UserDirectory, bool)
}

// UserDirectory is implemented by backends with a notion of collaborators.
type UserDirectory interface {
	// Collaborators lists the accounts with access to the store.
	Collaborators(ctx context.Context, id string) ([]models.UserInfo, error)
	// Invite grants username access to the store.
	Invite(ctx context.Context, id, username string) error
}

// FileSystem is the file-level capability a backend implements. Paths are
// slash separated; a missing file or directory is reported as [ErrNotFound].
type FileSystem interface {
	// ListDirs returns the names of the directories directly under dir.
	ListDirs(ctx context.Context, dir string) ([]string, error)

	// List returns every file below dir, recursively, with paths relative
	// to dir.
	List(ctx context.Context, dir string) ([]models.FileEntry, error)

	Read(ctx context.Context, path string) ([]byte, error)

	// Write creates or replaces path, creating missing parents.
	Write(ctx context.Context, path string, data []byte) error

	Remove(ctx context.Context, path string) error

	// RemoveAll removes dir and everything below it.
	RemoveAll(ctx context.Context, dir string) error

	// MakeDir creates dir and its parents; an existing dir is not an error.
	MakeDir(ctx context.Context, dir string) error

	// Probe performs an authenticated read of the backend root.
	Probe(ctx context.Context) error
}

// Factory builds the RemoteStore for a set of credentials.
type Factory interface {
	New(creds models.Credentials) (RemoteStore, error)
}
