// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store implements the local persistence of the sync engine: the
// per-book item snapshot, the stash queue, pending assets, a small key/value
// slot for cached remote structure, and the sealed login session.
//
// Storage is a plain database/sql database (SQLite by default, PostgreSQL
// when the DSN is a postgres:// URL) with goose migrations and queries built
// by squirrel.
package store

import (
	"context"

	"github.com/MKhiriev/go-ledger-sync/models"
)

// BookStorage is the local state of one book.
type BookStorage interface {
	// BookID returns the book this storage is scoped to.
	BookID() string

	// Items returns the material item snapshot, tombstones included,
	// in first-insertion order.
	Items(ctx context.Context) ([]models.Item, error)

	// Meta returns the material meta blob; an empty meta when none is stored.
	Meta(ctx context.Context) (models.Meta, error)

	// Stashes returns the pending stash queue in insertion order.
	Stashes(ctx context.Context) ([]models.Stash, error)

	// PendingAssets returns assets recorded by Batch and not yet uploaded.
	PendingAssets(ctx context.Context) ([]models.AssetUpload, error)

	// PendingAsset returns one pending asset by remote path.
	PendingAsset(ctx context.Context, path string) (models.File, bool, error)

	// GetValue decodes the JSON value stored under key into dst.
	// It reports false when the key is absent.
	GetValue(ctx context.Context, key string, dst any) (bool, error)

	// SetValue stores v as JSON under key.
	SetValue(ctx context.Context, key string, v any) error

	// Commit applies m in a single transaction and returns the appended
	// stashes with their queue IDs assigned.
	Commit(ctx context.Context, m Mutation) ([]models.Stash, error)

	// DangerousClearAll removes every row of the book.
	DangerousClearAll(ctx context.Context) error
}

// Mutation is one atomic change of a book's local state.
type Mutation struct {
	// ResetItems deletes every stored item before Upserts are written.
	ResetItems bool
	// Upserts are final item states; new ids are appended after the current
	// last position, existing ids keep theirs.
	Upserts []models.Item
	// Meta replaces the stored meta when non-nil.
	Meta models.Meta

	AppendStashes []models.Stash
	DeleteStashes []int64
	ClearStashes  bool

	AddAssets    []models.AssetUpload
	DeleteAssets []string
	ClearAssets  bool

	// Values are key/value writes, JSON encoded.
	Values map[string]any
}

// TokenStore persists the login credentials of the current session.
type TokenStore interface {
	// Get returns the stored credentials or ErrSessionNotFound.
	Get(ctx context.Context) (models.Credentials, error)
	// Set replaces the stored credentials.
	Set(ctx context.Context, creds models.Credentials) error
	// Clear removes the stored credentials; clearing an empty store succeeds.
	Clear(ctx context.Context) error
	// Refresh returns the stored credentials, renewing them through refresh
	// when they have expired.
	Refresh(ctx context.Context, refresh RefreshFunc) (models.Credentials, error)
}

// RefreshFunc renews expired credentials.
type RefreshFunc func(ctx context.Context, expired models.Credentials) (models.Credentials, error)

// ErrorClassificator decides whether a failed database operation may be
// retried.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
