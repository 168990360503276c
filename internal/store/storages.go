package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/MKhiriev/go-ledger-sync/internal/crypto"
	"github.com/MKhiriev/go-ledger-sync/internal/logger"
)

// localBooksKey is the kv slot, under the empty book id, listing the books
// opened on this device.
const localBooksKey = "opened"

// Storages bundles every local store backed by one database.
type Storages struct {
	DB     *DB
	Tokens TokenStore

	mu    sync.Mutex
	books map[string]BookStorage
}

// NewStorages connects to dsn, applies migrations and builds the stores.
func NewStorages(ctx context.Context, dsn string, sealer crypto.Sealer, log *logger.Logger) (*Storages, error) {
	db, err := NewConnect(ctx, dsn, log)
	if err != nil {
		return nil, err
	}
	if err = db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate local database: %w", err)
	}

	return &Storages{
		DB:     db,
		Tokens: NewTokenStore(db, sealer),
		books:  make(map[string]BookStorage),
	}, nil
}

// ForBook returns the storage scoped to bookID, reusing an existing one.
func (s *Storages) ForBook(bookID string) (BookStorage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if b, ok := s.books[bookID]; ok {
		return b, nil
	}
	b, err := NewBookStorage(s.DB, bookID)
	if err != nil {
		return nil, err
	}
	s.books[bookID] = b
	return b, nil
}

// LocalBooks returns the ids of books opened on this device.
func (s *Storages) LocalBooks(ctx context.Context) ([]string, error) {
	ids := make([]string, 0)
	if _, err := s.registry().GetValue(ctx, localBooksKey, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// RememberBook records bookID as opened on this device.
func (s *Storages) RememberBook(ctx context.Context, bookID string) error {
	ids, err := s.LocalBooks(ctx)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if id == bookID {
			return nil
		}
	}
	return s.registry().SetValue(ctx, localBooksKey, append(ids, bookID))
}

// ForgetBook clears the local state of bookID and drops it from the list
// of opened books.
func (s *Storages) ForgetBook(ctx context.Context, bookID string) error {
	b, err := s.ForBook(bookID)
	if err != nil {
		return err
	}
	if err = b.DangerousClearAll(ctx); err != nil {
		return fmt.Errorf("failed to clear book %s: %w", bookID, err)
	}

	ids, err := s.LocalBooks(ctx)
	if err != nil {
		return err
	}
	kept := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != bookID {
			kept = append(kept, id)
		}
	}

	s.mu.Lock()
	delete(s.books, bookID)
	s.mu.Unlock()

	return s.registry().SetValue(ctx, localBooksKey, kept)
}

// Close closes the database.
func (s *Storages) Close() error {
	return s.DB.Close()
}

// registry is the book-less kv scope.
func (s *Storages) registry() *bookStorage {
	return &bookStorage{DB: s.DB}
}
