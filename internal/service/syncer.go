// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/gofrs/flock"

	"github.com/MKhiriev/go-ledger-sync/internal/adapter"
	"github.com/MKhiriev/go-ledger-sync/internal/logger"
	"github.com/MKhiriev/go-ledger-sync/internal/utils"
	"github.com/MKhiriev/go-ledger-sync/models"
)

// Cache keys of a book storage.
const (
	cacheKeyStructure = "structure"
	cacheKeyTail      = "tail"
)

const lockRetryDelay = 200 * time.Millisecond

// SyncOptions tunes how a book is laid out remotely and guarded locally.
type SyncOptions struct {
	// EntryName is the chunk file stem.
	EntryName string
	// ItemsPerChunk is the chunk page size.
	ItemsPerChunk int
	// LockDir holds the per-book lock files that keep two processes from
	// syncing the same book. Empty disables the lock.
	LockDir string
}

// tailCache is the content of the last remote chunk as of the last sync,
// kept so that appending to it does not need a download.
type tailCache struct {
	Path       string        `json:"path"`
	StartIndex int           `json:"start_index"`
	ETag       string        `json:"etag"`
	Entries    []models.Item `json:"entries"`
}

// bookSyncer runs one flush of a book against its remote store:
// fetch structure, diff, fetch changed chunks, merge, rechunk, upload,
// delete stale files on overlap, cache the new structure, clear the stash.
// The context is checked before every step; a cancelled flush leaves the
// stash queue untouched.
type bookSyncer struct {
	bucket *ItemBucket
	remote func() (adapter.RemoteStore, error)
	opts   SyncOptions
	logger *logger.Logger
}

func newBookSyncer(bucket *ItemBucket, remote func() (adapter.RemoteStore, error), opts SyncOptions, log *logger.Logger) *bookSyncer {
	if opts.EntryName == "" {
		opts.EntryName = "items"
	}
	if opts.ItemsPerChunk <= 0 {
		opts.ItemsPerChunk = DefaultItemsPerChunk
	}
	return &bookSyncer{bucket: bucket, remote: remote, opts: opts, logger: log.WithBook(bucket.BookID())}
}

// Sync flushes the book. pulled reports whether remote changes were merged
// into the bucket.
func (s *bookSyncer) Sync(ctx context.Context) (pulled bool, err error) {
	remote, err := s.remote()
	if err != nil {
		return false, err
	}

	unlock, err := s.lock(ctx)
	if err != nil {
		return false, err
	}
	defer unlock()

	bookID := s.bucket.BookID()
	log := s.logger.With().Str("func", "bookSyncer.Sync").Logger()

	stashes, err := s.bucket.Stashes(ctx)
	if err != nil {
		return false, err
	}
	uploads, err := s.bucket.PendingAssets(ctx)
	if err != nil {
		return false, err
	}

	// fetch structure
	if err = ctx.Err(); err != nil {
		return false, err
	}
	structure, err := remote.FetchStoreStructure(ctx, bookID)
	if err != nil {
		return false, fmt.Errorf("failed to fetch remote structure: %w", err)
	}

	// diff
	var cached *models.Structure
	var c models.Structure
	ok, err := s.bucket.Value(ctx, cacheKeyStructure, &c)
	if err != nil {
		return false, err
	}
	if ok {
		cached = &c
	}
	diff := Diff(structure, cached)

	if diff.Empty() && len(stashes) == 0 && len(uploads) == 0 {
		log.Debug().Msg("book is up to date")
		return false, nil
	}

	// fetch changed chunks
	if err = ctx.Err(); err != nil {
		return false, err
	}
	fetched, err := s.fetch(ctx, remote, diff)
	if err != nil {
		return false, err
	}

	// merge
	if err = ctx.Err(); err != nil {
		return false, err
	}
	if !diff.Empty() {
		if err = s.merge(ctx, diff, fetched); err != nil {
			return false, err
		}
		pulled = true
		log.Debug().Int("chunks", len(diff.Chunks)).Bool("patch", diff.Patch).Msg("merged remote changes")
	}

	if len(stashes) == 0 && len(uploads) == 0 {
		cache := map[string]any{cacheKeyStructure: structure}
		if tail, ok, err := tailFromFetched(structure, fetched); err != nil {
			return pulled, err
		} else if ok {
			cache[cacheKeyTail] = tail
		}
		return pulled, s.bucket.Complete(ctx, nil, nil, cache)
	}

	// upload assets before the chunks that reference them
	if err = ctx.Err(); err != nil {
		return pulled, err
	}
	assetPaths := make([]string, 0, len(uploads))
	if len(uploads) > 0 {
		files := make([]models.RemoteFile, 0, len(uploads))
		for _, u := range uploads {
			files = append(files, models.RemoteFile{Path: u.Path, Data: u.File.Data})
			assetPaths = append(assetPaths, u.Path)
		}
		if err = remote.WriteFiles(ctx, bookID, files); err != nil {
			return pulled, fmt.Errorf("failed to upload assets: %w", err)
		}
	}

	// rechunk and upload
	if err = ctx.Err(); err != nil {
		return pulled, err
	}
	overlap := slices.ContainsFunc(stashes, func(st models.Stash) bool { return st.Overlap })

	var p push
	if overlap {
		p, err = s.overlapPush(ctx, structure)
	} else {
		p, err = s.appendPush(ctx, remote, structure, fetched, stashes)
	}
	if err != nil {
		return pulled, err
	}
	if len(p.files) > 0 {
		if err = remote.WriteFiles(ctx, bookID, p.files); err != nil {
			return pulled, fmt.Errorf("failed to write chunks: %w", err)
		}
	}

	// deleting stale files has to finish before the structure is cached
	if len(p.stale) > 0 {
		if err = ctx.Err(); err != nil {
			return pulled, err
		}
		if err = remote.DeleteFiles(ctx, bookID, p.stale); err != nil {
			return pulled, fmt.Errorf("failed to delete stale files: %w", err)
		}
	}

	// refresh the structure cache
	if err = ctx.Err(); err != nil {
		return pulled, err
	}
	after, err := remote.FetchStoreStructure(ctx, bookID)
	if err != nil {
		return pulled, fmt.Errorf("failed to refresh remote structure: %w", err)
	}
	after = reconcileCache(structure, after, p.written())

	cache := map[string]any{cacheKeyStructure: after}
	if tail, ok := p.tail(after); ok {
		cache[cacheKeyTail] = tail
	} else if tail, ok, err := tailFromFetched(after, fetched); err == nil && ok {
		cache[cacheKeyTail] = tail
	}

	// clear the flushed stashes
	ids := make([]int64, 0, len(stashes))
	for _, st := range stashes {
		ids = append(ids, st.ID)
	}
	if err = s.bucket.Complete(ctx, ids, assetPaths, cache); err != nil {
		return pulled, err
	}

	log.Info().
		Int("stashes", len(stashes)).
		Int("assets", len(assetPaths)).
		Int("files", len(p.files)).
		Int("stale", len(p.stale)).
		Bool("overlap", overlap).
		Msg("book pushed")
	return pulled, nil
}

func (s *bookSyncer) fetch(ctx context.Context, remote adapter.RemoteStore, diff models.StructureDiff) (map[string]models.RemoteFile, error) {
	paths := make([]string, 0, len(diff.Chunks)+1)
	for _, c := range diff.Chunks {
		paths = append(paths, c.Path)
	}
	if diff.Meta != nil {
		paths = append(paths, diff.Meta.Path)
	}

	out := make(map[string]models.RemoteFile, len(paths))
	if len(paths) == 0 {
		return out, nil
	}
	files, err := remote.FetchFileContents(ctx, s.bucket.BookID(), paths)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch changed files: %w", err)
	}
	for _, f := range files {
		out[f.Path] = f
	}
	return out, nil
}

func (s *bookSyncer) merge(ctx context.Context, diff models.StructureDiff, fetched map[string]models.RemoteFile) error {
	entries := make([]models.Item, 0)
	for _, c := range diff.Chunks {
		chunk, err := decodeChunk(fetched[c.Path])
		if err != nil {
			return err
		}
		entries = append(entries, chunk...)
	}

	var meta models.Meta
	if diff.Meta != nil {
		var err error
		if meta, err = decodeMeta(fetched[diff.Meta.Path]); err != nil {
			return err
		}
	}

	if diff.Patch {
		return s.bucket.Patch(ctx, entries, meta)
	}
	return s.bucket.Replace(ctx, entries, meta)
}

// push is the set of remote changes of one flush.
type push struct {
	files []models.RemoteFile
	pages []Page
	stale []string
}

func (p push) written() map[string]bool {
	out := make(map[string]bool, len(p.files))
	for _, f := range p.files {
		out[f.Path] = true
	}
	return out
}

// tail returns the cache entry of the last written page.
func (p push) tail(after models.Structure) (tailCache, bool) {
	if len(p.pages) == 0 {
		return tailCache{}, false
	}
	last := p.pages[len(p.pages)-1]
	chunk, ok := after.LastChunk()
	if !ok || chunk.Path != last.Path {
		return tailCache{}, false
	}
	return tailCache{Path: last.Path, StartIndex: last.StartIndex, ETag: chunk.ETag, Entries: last.Entries}, true
}

// overlapPush rewrites the book as its material state from index 0 and
// lists every chunk not rewritten and every asset no longer referenced.
func (s *bookSyncer) overlapPush(ctx context.Context, structure models.Structure) (push, error) {
	items, err := s.bucket.Items(ctx)
	if err != nil {
		return push{}, err
	}
	meta, err := s.bucket.Meta(ctx)
	if err != nil {
		return push{}, err
	}

	p := push{pages: Rechunk(s.opts.EntryName, 0, items, s.opts.ItemsPerChunk)}
	for _, page := range p.pages {
		f, err := page.File()
		if err != nil {
			return push{}, err
		}
		p.files = append(p.files, f)
	}
	metaFile, err := encodeMeta(meta)
	if err != nil {
		return push{}, err
	}
	p.files = append(p.files, metaFile)

	written := p.written()
	for _, c := range structure.Chunks {
		if !written[c.Path] {
			p.stale = append(p.stale, c.Path)
		}
	}
	refs := ReferencedAssets(items, meta)
	for _, a := range structure.Assets {
		if _, ok := refs[a.Path]; !ok {
			p.stale = append(p.stale, a.Path)
		}
	}
	return p, nil
}

// appendPush appends the pending log entries to the remote tail chunk and
// writes meta when a meta change is pending.
func (s *bookSyncer) appendPush(ctx context.Context, remote adapter.RemoteStore, structure models.Structure, fetched map[string]models.RemoteFile, stashes []models.Stash) (push, error) {
	var p push

	pending := make([]models.Item, 0, len(stashes))
	metaPending := false
	for _, st := range stashes {
		if st.Action.Type == models.ActionMeta {
			metaPending = true
			continue
		}
		if entry := st.Action.Entry(); entry != nil {
			pending = append(pending, entry)
		}
	}

	if len(pending) > 0 {
		tail, err := s.tail(ctx, remote, structure, fetched)
		if err != nil {
			return push{}, err
		}

		entries := append(slices.Clone(tail.Entries), pending...)
		p.pages = Rechunk(s.opts.EntryName, tail.StartIndex, entries, s.opts.ItemsPerChunk)
		for i, page := range p.pages {
			// a full tail is left as it is
			if i == 0 && tail.Path == page.Path && len(page.Entries) == len(tail.Entries) {
				continue
			}
			f, err := page.File()
			if err != nil {
				return push{}, err
			}
			p.files = append(p.files, f)
		}
	}

	if metaPending {
		meta, err := s.bucket.Meta(ctx)
		if err != nil {
			return push{}, err
		}
		f, err := encodeMeta(meta)
		if err != nil {
			return push{}, err
		}
		p.files = append(p.files, f)
	}
	return p, nil
}

// tail returns the content of the last remote chunk: from this flush's
// downloads, from the cache when its ETag still matches, or downloaded as
// a last resort.
func (s *bookSyncer) tail(ctx context.Context, remote adapter.RemoteStore, structure models.Structure, fetched map[string]models.RemoteFile) (tailCache, error) {
	if t, ok, err := tailFromFetched(structure, fetched); err != nil || ok {
		return t, err
	}

	last, ok := structure.LastChunk()
	if !ok {
		return tailCache{}, nil
	}

	var cached tailCache
	found, err := s.bucket.Value(ctx, cacheKeyTail, &cached)
	if err != nil {
		return tailCache{}, err
	}
	if found && cached.Path == last.Path && cached.ETag == last.ETag {
		return cached, nil
	}

	s.logger.Debug().Str("func", "bookSyncer.tail").Str("path", last.Path).Msg("tail cache miss")
	files, err := remote.FetchFileContents(ctx, s.bucket.BookID(), []string{last.Path})
	if err != nil {
		return tailCache{}, fmt.Errorf("failed to fetch tail chunk: %w", err)
	}
	entries, err := decodeChunk(files[0])
	if err != nil {
		return tailCache{}, err
	}
	return tailCache{Path: last.Path, StartIndex: last.StartIndex, ETag: last.ETag, Entries: entries}, nil
}

func (s *bookSyncer) lock(ctx context.Context) (func(), error) {
	if s.opts.LockDir == "" {
		return func() {}, nil
	}
	if err := os.MkdirAll(s.opts.LockDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create lock dir: %w", err)
	}

	name := "sync-" + utils.ContentHash([]byte(s.bucket.BookID()))[:16] + ".lock"
	fl := flock.New(filepath.Join(s.opts.LockDir, name))

	locked, err := fl.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrSyncLockTimeout, ctxErr)
		}
		return nil, fmt.Errorf("failed to acquire sync lock: %w", err)
	}
	if !locked {
		return nil, ErrSyncLockTimeout
	}
	return func() { _ = fl.Unlock() }, nil
}

// tailFromFetched builds the tail cache when the last chunk of structure
// was downloaded in this flush.
func tailFromFetched(structure models.Structure, fetched map[string]models.RemoteFile) (tailCache, bool, error) {
	last, ok := structure.LastChunk()
	if !ok {
		return tailCache{}, false, nil
	}
	f, ok := fetched[last.Path]
	if !ok {
		return tailCache{}, false, nil
	}
	entries, err := decodeChunk(f)
	if err != nil {
		return tailCache{}, false, err
	}
	return tailCache{Path: last.Path, StartIndex: last.StartIndex, ETag: last.ETag, Entries: entries}, true, nil
}

// reconcileCache keeps the pre-push change tokens of every file this flush
// did not write, so that a concurrent change by another writer still shows
// up in the next diff instead of being cached as already merged.
func reconcileCache(before, after models.Structure, written map[string]bool) models.Structure {
	old := make(map[string]models.Chunk, len(before.Chunks))
	for _, c := range before.Chunks {
		old[c.Path] = c
	}

	chunks := make([]models.Chunk, 0, len(after.Chunks))
	for _, c := range after.Chunks {
		if written[c.Path] {
			chunks = append(chunks, c)
			continue
		}
		if prev, ok := old[c.Path]; ok {
			chunks = append(chunks, prev)
		}
	}
	after.Chunks = chunks

	if !written[models.MetaFile] {
		after.Meta = before.Meta
	}
	return after
}
