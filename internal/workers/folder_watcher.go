// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/MKhiriev/go-ledger-sync/internal/logger"
)

const defaultWatchDebounce = 2 * time.Second

// FolderWatcher schedules a sync of an opened book when another process
// changes its directory in a shared folder backend. Bursts of events are
// coalesced per book.
type FolderWatcher struct {
	root     string
	books    BookSyncer
	debounce time.Duration
	logger   *logger.Logger

	mu     sync.Mutex
	timers map[string]*time.Timer
}

// NewFolderWatcher watches the book directories right under root.
func NewFolderWatcher(root string, books BookSyncer, debounce time.Duration, log *logger.Logger) *FolderWatcher {
	if debounce <= 0 {
		debounce = defaultWatchDebounce
	}
	return &FolderWatcher{
		root:     filepath.Clean(root),
		books:    books,
		debounce: debounce,
		logger:   log,
		timers:   make(map[string]*time.Timer),
	}
}

func (w *FolderWatcher) Run(ctx context.Context) error {
	log := w.logger.With().Str("func", "FolderWatcher.Run").Str("root", w.root).Logger()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()
	defer w.stopTimers()

	if err = w.watchBooks(watcher); err != nil {
		return err
	}
	log.Info().Msg("watching folder")

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			w.handle(ctx, watcher, ev)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("watch error")
		}
	}
}

// watchBooks adds root and every directory right under it.
func (w *FolderWatcher) watchBooks(watcher *fsnotify.Watcher) error {
	if err := watcher.Add(w.root); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.root, err)
	}
	entries, err := os.ReadDir(w.root)
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", w.root, err)
	}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if err = watcher.Add(filepath.Join(w.root, e.Name())); err != nil {
			return fmt.Errorf("failed to watch book %s: %w", e.Name(), err)
		}
	}
	return nil
}

func (w *FolderWatcher) handle(ctx context.Context, watcher *fsnotify.Watcher, ev fsnotify.Event) {
	if ev.Has(fsnotify.Chmod) && !ev.Has(fsnotify.Write) {
		return
	}
	rel, err := filepath.Rel(w.root, ev.Name)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return
	}
	parts := strings.Split(filepath.ToSlash(rel), "/")
	bookID := parts[0]

	if len(parts) == 1 {
		// a new book directory
		if ev.Has(fsnotify.Create) {
			if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
				_ = watcher.Add(ev.Name)
			}
		}
		return
	}
	if strings.HasSuffix(ev.Name, ".tmp") {
		return
	}

	w.schedule(ctx, bookID)
}

// schedule (re)arms the debounce timer of bookID.
func (w *FolderWatcher) schedule(ctx context.Context, bookID string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.timers[bookID]; ok {
		t.Reset(w.debounce)
		return
	}
	w.timers[bookID] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.timers, bookID)
		w.mu.Unlock()

		w.fire(ctx, bookID)
	})
}

func (w *FolderWatcher) fire(ctx context.Context, bookID string) {
	if ctx.Err() != nil {
		return
	}
	local, err := w.books.LocalBooks(ctx)
	if err != nil {
		w.logger.Err(err).Str("func", "FolderWatcher.fire").Msg("failed to list local books")
		return
	}
	if !slices.Contains(local, bookID) {
		return
	}
	w.logger.Debug().Str("func", "FolderWatcher.fire").Str("book_id", bookID).Msg("remote folder changed")
	w.books.ToSync(bookID)
}

func (w *FolderWatcher) stopTimers() {
	w.mu.Lock()
	defer w.mu.Unlock()

	for id, t := range w.timers {
		t.Stop()
		delete(w.timers, id)
	}
}
