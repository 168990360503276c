// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/MKhiriev/go-ledger-sync/internal/store"
	"github.com/MKhiriev/go-ledger-sync/models"
)

// ItemBucket is the local source of truth of one book: the material item
// snapshot, its meta, and the stash queue of changes not pushed yet.
//
// Every mutation is a single storage commit taken under the write lock, so
// readers never observe a partially applied batch.
type ItemBucket struct {
	storage store.BookStorage

	mu sync.RWMutex
}

// NewItemBucket returns the bucket of the book storage is scoped to.
func NewItemBucket(storage store.BookStorage) *ItemBucket {
	return &ItemBucket{storage: storage}
}

// BookID returns the book the bucket belongs to.
func (b *ItemBucket) BookID() string {
	return b.storage.BookID()
}

// Init seeds the bucket with a baseline folded from entries and drops the
// stash queue and pending assets.
func (b *ItemBucket) Init(ctx context.Context, entries []models.Item, meta models.Meta) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	l := newLedger(nil)
	l.applyAll(entries)

	_, err := b.storage.Commit(ctx, store.Mutation{
		ResetItems:   true,
		Upserts:      l.all(),
		Meta:         meta.Clone(),
		ClearStashes: true,
		ClearAssets:  true,
	})
	if err != nil {
		return fmt.Errorf("failed to init bucket: %w", err)
	}
	return nil
}

// Patch merges an incoming subset of the remote log into the baseline and
// replays the pending stash over it. A nil meta keeps the stored one.
func (b *ItemBucket) Patch(ctx context.Context, entries []models.Item, meta models.Meta) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	items, err := b.storage.Items(ctx)
	if err != nil {
		return err
	}
	stashes, err := b.storage.Stashes(ctx)
	if err != nil {
		return err
	}

	l := newLedger(items)
	l.applyAll(entries)

	m := store.Mutation{}
	if meta != nil {
		m.Meta = foldStashes(l, meta, stashes)
	} else {
		foldStashes(l, nil, stashes)
	}
	m.Upserts = l.changes()

	if len(m.Upserts) == 0 && m.Meta == nil {
		return nil
	}
	if _, err = b.storage.Commit(ctx, m); err != nil {
		return fmt.Errorf("failed to patch bucket: %w", err)
	}
	return nil
}

// Replace swaps the baseline for entries and replays the pending stash over
// it. The stash queue is kept. A nil meta keeps the stored one.
func (b *ItemBucket) Replace(ctx context.Context, entries []models.Item, meta models.Meta) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	stashes, err := b.storage.Stashes(ctx)
	if err != nil {
		return err
	}

	l := newLedger(nil)
	l.applyAll(entries)

	m := store.Mutation{ResetItems: true}
	if meta != nil {
		m.Meta = foldStashes(l, meta, stashes)
	} else {
		foldStashes(l, nil, stashes)
	}
	m.Upserts = l.all()

	if _, err = b.storage.Commit(ctx, m); err != nil {
		return fmt.Errorf("failed to replace bucket: %w", err)
	}
	return nil
}

// Batch applies actions locally and queues them for the next push, all
// tagged with overlap. uploads are recorded as pending assets. Zero
// timestamps are set to the current time.
func (b *ItemBucket) Batch(ctx context.Context, actions []models.Action, overlap bool, uploads []models.AssetUpload) ([]models.Stash, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	items, err := b.storage.Items(ctx)
	if err != nil {
		return nil, err
	}

	l := newLedger(items)
	var meta models.Meta
	now := models.NowMillis()
	stashes := make([]models.Stash, 0, len(actions))

	for _, action := range actions {
		if action.Timestamp == 0 {
			action.Timestamp = now
		}

		if action.Type == models.ActionMeta {
			if meta == nil {
				if meta, err = b.storage.Meta(ctx); err != nil {
					return nil, err
				}
			}
			meta = mergeMeta(meta, action.Meta)
		} else if entry := action.Entry(); entry != nil {
			l.apply(entry)
		}

		stashes = append(stashes, models.Stash{Action: action, Overlap: overlap})
	}

	appended, err := b.storage.Commit(ctx, store.Mutation{
		Upserts:       l.changes(),
		Meta:          meta,
		AppendStashes: stashes,
		AddAssets:     uploads,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to apply batch: %w", err)
	}
	return appended, nil
}

// Items returns the material snapshot without tombstones, in insertion order.
func (b *ItemBucket) Items(ctx context.Context) ([]models.Item, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	items, err := b.storage.Items(ctx)
	if err != nil {
		return nil, err
	}
	return material(items), nil
}

// Meta returns the baseline meta with the pending meta stashes applied.
func (b *ItemBucket) Meta(ctx context.Context) (models.Meta, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.storage.Meta(ctx)
}

func (b *ItemBucket) Stashes(ctx context.Context) ([]models.Stash, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.storage.Stashes(ctx)
}

func (b *ItemBucket) PendingAssets(ctx context.Context) ([]models.AssetUpload, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.storage.PendingAssets(ctx)
}

func (b *ItemBucket) PendingAsset(ctx context.Context, path string) (models.File, bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.storage.PendingAsset(ctx, path)
}

// Status counts what is left to push.
func (b *ItemBucket) Status(ctx context.Context) (models.SyncStatus, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	stashes, err := b.storage.Stashes(ctx)
	if err != nil {
		return models.SyncStatus{}, err
	}
	assets, err := b.storage.PendingAssets(ctx)
	if err != nil {
		return models.SyncStatus{}, err
	}
	return models.SyncStatus{PendingStashes: len(stashes), PendingAssets: len(assets)}, nil
}

// DeleteStashes drops pushed stashes. Call it only once the remote write
// has been acknowledged.
func (b *ItemBucket) DeleteStashes(ctx context.Context, ids ...int64) error {
	return b.Complete(ctx, ids, nil, nil)
}

// Complete records a successful push: the pushed stashes and uploaded
// assets are dropped and the structure cache values are stored, atomically.
func (b *ItemBucket) Complete(ctx context.Context, stashIDs []int64, assetPaths []string, cache map[string]any) error {
	if len(stashIDs) == 0 && len(assetPaths) == 0 && len(cache) == 0 {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	_, err := b.storage.Commit(ctx, store.Mutation{
		DeleteStashes: stashIDs,
		DeleteAssets:  assetPaths,
		Values:        cache,
	})
	if err != nil {
		return fmt.Errorf("failed to complete push: %w", err)
	}
	return nil
}

// Value decodes a cached value stored by Complete.
func (b *ItemBucket) Value(ctx context.Context, key string, dst any) (bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.storage.GetValue(ctx, key, dst)
}
