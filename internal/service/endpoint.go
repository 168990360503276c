// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/MKhiriev/go-ledger-sync/internal/adapter"
	"github.com/MKhiriev/go-ledger-sync/internal/logger"
	"github.com/MKhiriev/go-ledger-sync/internal/store"
	"github.com/MKhiriev/go-ledger-sync/models"
)

// EndpointOptions tunes an Endpoint.
type EndpointOptions struct {
	// Alias is registered in the meta of every book this user opens.
	Alias string
	// Sync tunes the remote layout and the cross-process lock.
	Sync SyncOptions
	// AutoSync schedules a sync after every batch.
	AutoSync bool
}

// bookEntry is the local state of one opened book.
type bookEntry struct {
	bucket    *ItemBucket
	scheduler *Scheduler
}

// endpoint is the single Endpoint implementation; backends differ only in
// the adapter.RemoteStore the factory builds.
type endpoint struct {
	factory  adapter.Factory
	storages BookStorages
	tokens   store.TokenStore
	ids      IDGenerator
	opts     EndpointOptions
	logger   *logger.Logger

	mu     sync.RWMutex
	remote adapter.RemoteStore
	books  map[string]*bookEntry
	closed bool

	changes listeners[func(bookID string)]
	syncs   listeners[func(bookID string, run models.SyncRun)]
}

// NewEndpoint returns an Endpoint that is not connected to any backend
// until Login or Restore succeeds. Local reads and batches work without a
// connection.
func NewEndpoint(factory adapter.Factory, storages BookStorages, tokens store.TokenStore, ids IDGenerator, opts EndpointOptions, log *logger.Logger) Endpoint {
	return &endpoint{
		factory:  factory,
		storages: storages,
		tokens:   tokens,
		ids:      ids,
		opts:     opts,
		logger:   log,
		books:    make(map[string]*bookEntry),
	}
}

func (e *endpoint) Login(ctx context.Context, creds models.Credentials) (models.UserInfo, error) {
	user, err := e.connect(ctx, creds)
	if err != nil {
		return models.UserInfo{}, err
	}
	if err = e.tokens.Set(ctx, creds); err != nil {
		return models.UserInfo{}, fmt.Errorf("failed to store session: %w", err)
	}

	logger.FromContext(ctx).Info().Str("func", "endpoint.Login").
		Str("backend", creds.Backend).Str("user", user.Name).Msg("logged in")
	return user, nil
}

func (e *endpoint) Restore(ctx context.Context) (models.UserInfo, error) {
	creds, err := e.tokens.Refresh(ctx, nil)
	if err != nil {
		return models.UserInfo{}, err
	}
	return e.connect(ctx, creds)
}

func (e *endpoint) connect(ctx context.Context, creds models.Credentials) (models.UserInfo, error) {
	remote, err := e.factory.New(creds)
	if err != nil {
		return models.UserInfo{}, err
	}
	if err = remote.CheckConfig(ctx); err != nil {
		return models.UserInfo{}, err
	}
	user, err := remote.UserInfo(ctx)
	if err != nil {
		return models.UserInfo{}, fmt.Errorf("failed to get user info: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return models.UserInfo{}, ErrEndpointClosed
	}
	e.remote = remote
	return user, nil
}

func (e *endpoint) Logout(ctx context.Context) error {
	e.mu.Lock()
	e.remote = nil
	entries := e.entries()
	e.mu.Unlock()

	for _, b := range entries {
		b.scheduler.Cancel()
	}
	return e.tokens.Clear(ctx)
}

func (e *endpoint) FetchAllBooks(ctx context.Context) ([]models.Book, error) {
	remote, err := e.currentRemote()
	if err != nil {
		return nil, err
	}
	return remote.FetchAllStores(ctx)
}

func (e *endpoint) CreateBook(ctx context.Context, name string) (models.Book, error) {
	remote, err := e.currentRemote()
	if err != nil {
		return models.Book{}, err
	}
	return remote.CreateStore(ctx, name)
}

func (e *endpoint) InitBook(ctx context.Context, bookID string) error {
	remote, err := e.currentRemote()
	if err != nil {
		return err
	}
	b, err := e.book(bookID)
	if err != nil {
		return err
	}
	if err = e.storages.RememberBook(ctx, bookID); err != nil {
		return err
	}

	if key := models.AliasKeyFor(remote.Backend()); key != "" && e.opts.Alias != "" {
		meta, err := b.bucket.Meta(ctx)
		if err != nil {
			return err
		}
		if !slices.Contains(meta.Aliases(key), e.opts.Alias) {
			alias := models.Action{Type: models.ActionMeta, Meta: models.Meta{key: []string{e.opts.Alias}}}
			if _, err = b.bucket.Batch(ctx, []models.Action{alias}, false, nil); err != nil {
				return err
			}
		}
	}

	return b.scheduler.Schedule().Wait(ctx)
}

func (e *endpoint) DeleteBook(ctx context.Context, bookID string) error {
	e.mu.Lock()
	b, ok := e.books[bookID]
	delete(e.books, bookID)
	remote := e.remote
	e.mu.Unlock()

	if ok {
		b.scheduler.Close()
	}
	if err := e.storages.ForgetBook(ctx, bookID); err != nil {
		return err
	}
	if remote == nil {
		return nil
	}
	if err := remote.DeleteStore(ctx, bookID); err != nil {
		return fmt.Errorf("local book deleted, remote delete failed: %w", err)
	}
	return nil
}

func (e *endpoint) InviteForBook(ctx context.Context, bookID, username string) error {
	remote, err := e.currentRemote()
	if err != nil {
		return err
	}
	dir, ok := remote.Directory()
	if !ok {
		return fmt.Errorf("%w: invite on %s", adapter.ErrNotSupported, remote.Backend())
	}
	return dir.Invite(ctx, bookID, username)
}

func (e *endpoint) Batch(ctx context.Context, bookID string, actions []models.Action, overlap bool) error {
	b, err := e.book(bookID)
	if err != nil {
		return err
	}

	actions, uploads, err := TransformAssets(actions, e.ids)
	if err != nil {
		return err
	}
	if _, err = b.bucket.Batch(ctx, actions, overlap, uploads); err != nil {
		return err
	}

	e.notifyChange(bookID)
	if e.opts.AutoSync {
		b.scheduler.Schedule()
	}
	return nil
}

func (e *endpoint) GetMeta(ctx context.Context, bookID string) (models.Meta, error) {
	b, err := e.book(bookID)
	if err != nil {
		return nil, err
	}
	return b.bucket.Meta(ctx)
}

func (e *endpoint) GetAllItems(ctx context.Context, bookID string) ([]models.Item, error) {
	b, err := e.book(bookID)
	if err != nil {
		return nil, err
	}
	return b.bucket.Items(ctx)
}

func (e *endpoint) OnChange(fn func(bookID string)) func() {
	return e.changes.add(fn)
}

func (e *endpoint) GetIsNeedSync(ctx context.Context, bookID string) (models.SyncStatus, error) {
	b, err := e.book(bookID)
	if err != nil {
		return models.SyncStatus{}, err
	}
	return b.bucket.Status(ctx)
}

func (e *endpoint) OnSync(fn func(bookID string, run models.SyncRun)) func() {
	return e.syncs.add(fn)
}

func (e *endpoint) ToSync(bookID string) models.SyncRun {
	b, err := e.book(bookID)
	if err != nil {
		return finishedRun(err)
	}
	return b.scheduler.Schedule()
}

func (e *endpoint) CancelSync(bookID string) {
	e.mu.RLock()
	b, ok := e.books[bookID]
	e.mu.RUnlock()

	if ok {
		b.scheduler.Cancel()
	}
}

func (e *endpoint) GetUserInfo(ctx context.Context) (models.UserInfo, error) {
	remote, err := e.currentRemote()
	if err != nil {
		return models.UserInfo{}, err
	}
	return remote.UserInfo(ctx)
}

func (e *endpoint) GetCollaborators(ctx context.Context, bookID string) ([]models.UserInfo, error) {
	remote, err := e.currentRemote()
	if err != nil {
		return nil, err
	}
	if dir, ok := remote.Directory(); ok {
		return dir.Collaborators(ctx, bookID)
	}

	// backends without accounts know collaborators by the aliases they
	// registered in the book meta
	key := models.AliasKeyFor(remote.Backend())
	if key == "" {
		return []models.UserInfo{}, nil
	}
	meta, err := e.GetMeta(ctx, bookID)
	if err != nil {
		return nil, err
	}
	aliases := meta.Aliases(key)
	users := make([]models.UserInfo, 0, len(aliases))
	for _, a := range aliases {
		users = append(users, models.UserInfo{ID: a, Name: a})
	}
	return users, nil
}

func (e *endpoint) GetOnlineAsset(ctx context.Context, bookID, path string) (models.File, bool) {
	log := logger.FromContext(ctx).With().Str("func", "endpoint.GetOnlineAsset").Str("path", path).Logger()

	b, err := e.book(bookID)
	if err != nil {
		log.Err(err).Msg("failed to open book")
		return models.File{}, false
	}
	f, ok, err := b.bucket.PendingAsset(ctx, path)
	if err != nil {
		log.Err(err).Msg("failed to read pending asset")
	}
	if ok {
		return f, true
	}

	remote, err := e.currentRemote()
	if err != nil {
		return models.File{}, false
	}
	return remote.GetAsset(ctx, bookID, path)
}

func (e *endpoint) LocalBooks(ctx context.Context) ([]string, error) {
	return e.storages.LocalBooks(ctx)
}

func (e *endpoint) Close() error {
	e.mu.Lock()
	e.closed = true
	entries := e.entries()
	e.books = make(map[string]*bookEntry)
	e.mu.Unlock()

	for _, b := range entries {
		b.scheduler.Close()
	}
	return nil
}

// book returns the registry entry of bookID, creating it on first use.
func (e *endpoint) book(bookID string) (*bookEntry, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil, ErrEndpointClosed
	}
	if b, ok := e.books[bookID]; ok {
		return b, nil
	}

	storage, err := e.storages.ForBook(bookID)
	if err != nil {
		return nil, err
	}
	bucket := NewItemBucket(storage)
	syncer := newBookSyncer(bucket, e.currentRemote, e.opts.Sync, e.logger)

	b := &bookEntry{bucket: bucket}
	b.scheduler = NewScheduler(func(ctx context.Context) error {
		pulled, err := syncer.Sync(ctx)
		if pulled {
			e.notifyChange(bookID)
		}
		if err != nil && !errors.Is(err, context.Canceled) {
			e.logger.Err(err).Str("func", "endpoint.sync").Str("book_id", bookID).Msg("sync failed")
		}
		return err
	})
	b.scheduler.OnProcess(func(run models.SyncRun) {
		for _, fn := range e.syncs.snapshot() {
			fn(bookID, run)
		}
	})

	e.books[bookID] = b
	return b, nil
}

func (e *endpoint) currentRemote() (adapter.RemoteStore, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.remote == nil {
		return nil, ErrNotLoggedIn
	}
	return e.remote, nil
}

func (e *endpoint) notifyChange(bookID string) {
	for _, fn := range e.changes.snapshot() {
		fn(bookID)
	}
}

// entries snapshots the registry; e.mu must be held.
func (e *endpoint) entries() []*bookEntry {
	out := make([]*bookEntry, 0, len(e.books))
	for _, b := range e.books {
		out = append(out, b)
	}
	return out
}
