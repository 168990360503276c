// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service holds the sync engine: the item bucket over the local
// storage, the structure differencer, chunking, the asset transformer, the
// single-flight sync scheduler and the Endpoint facade that wires them to a
// remote store.
package service

import (
	"context"

	"github.com/MKhiriev/go-ledger-sync/internal/store"
	"github.com/MKhiriev/go-ledger-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// Endpoint is the uniform contract the application uses for every backend.
// Book ids are the backend full names returned by FetchAllBooks and
// CreateBook.
type Endpoint interface {
	// Login connects to the backend described by creds, verifies the
	// configuration and stores the session.
	Login(ctx context.Context, creds models.Credentials) (models.UserInfo, error)

	// Restore reconnects with the stored session.
	Restore(ctx context.Context) (models.UserInfo, error)

	// Logout cancels running syncs and forgets the session. Local books
	// stay available.
	Logout(ctx context.Context) error

	FetchAllBooks(ctx context.Context) ([]models.Book, error)
	CreateBook(ctx context.Context, name string) (models.Book, error)

	// InitBook opens a book on this device: it registers the user alias in
	// the book meta and seeds the local state from the remote.
	InitBook(ctx context.Context, bookID string) error

	// DeleteBook clears the local state and deletes the remote store. A
	// store that is already gone is deleted.
	DeleteBook(ctx context.Context, bookID string) error

	// InviteForBook grants username access on backends with a collaborator
	// directory; adapter.ErrNotSupported elsewhere.
	InviteForBook(ctx context.Context, bookID, username string) error

	// Batch applies actions locally and queues them for the next sync.
	// overlap makes that sync replace the remote book as a whole.
	Batch(ctx context.Context, bookID string, actions []models.Action, overlap bool) error

	GetMeta(ctx context.Context, bookID string) (models.Meta, error)
	GetAllItems(ctx context.Context, bookID string) ([]models.Item, error)

	// OnChange registers fn to be called with the book id after a batch and
	// after a sync that pulled remote changes.
	OnChange(fn func(bookID string)) (unsubscribe func())

	// GetIsNeedSync reports what the book still has to push.
	GetIsNeedSync(ctx context.Context, bookID string) (models.SyncStatus, error)

	// OnSync registers fn to be called once per actual sync run.
	OnSync(fn func(bookID string, run models.SyncRun)) (unsubscribe func())

	// ToSync schedules a sync of the book. Requests made while a sync is
	// running are coalesced into a single follow-up run.
	ToSync(bookID string) models.SyncRun

	// CancelSync cancels the running sync of the book, if any.
	CancelSync(bookID string)

	GetUserInfo(ctx context.Context) (models.UserInfo, error)
	GetCollaborators(ctx context.Context, bookID string) ([]models.UserInfo, error)

	// GetOnlineAsset returns an asset, from the pending uploads first. ok is
	// false when it cannot be retrieved.
	GetOnlineAsset(ctx context.Context, bookID, path string) (file models.File, ok bool)

	// LocalBooks lists the books opened on this device.
	LocalBooks(ctx context.Context) ([]string, error)

	Close() error
}

// EndpointWrapper decorates an Endpoint with additional behavior such as
// validation.
type EndpointWrapper interface {
	Wrap(Endpoint) Endpoint
}

// BookStorages hands out the local storage of each book and tracks the
// books opened on this device. *store.Storages implements it.
type BookStorages interface {
	ForBook(bookID string) (store.BookStorage, error)
	LocalBooks(ctx context.Context) ([]string, error)
	RememberBook(ctx context.Context, bookID string) error
	ForgetBook(ctx context.Context, bookID string) error
}

// AuthService issues and verifies the tokens of local API clients.
type AuthService interface {
	CreateToken(ctx context.Context, client string) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// AppInfoService reports application metadata.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
