package service

import (
	"context"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-ledger-sync/internal/adapter"
	"github.com/MKhiriev/go-ledger-sync/internal/crypto"
	"github.com/MKhiriev/go-ledger-sync/internal/logger"
	"github.com/MKhiriev/go-ledger-sync/internal/store"
	"github.com/MKhiriev/go-ledger-sync/models"
)

const testBook = "ledger-home"

// newTestStorages opens a fresh SQLite database, one per simulated device.
func newTestStorages(t *testing.T) *store.Storages {
	t.Helper()

	sealer, err := crypto.NewSealer("test-secret")
	require.NoError(t, err)

	s, err := store.NewStorages(context.Background(), filepath.Join(t.TempDir(), "ledger.db"), sealer, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func newTestBucket(t *testing.T) *ItemBucket {
	t.Helper()

	storage, err := newTestStorages(t).ForBook(testBook)
	require.NoError(t, err)
	return NewItemBucket(storage)
}

// newMemRemote returns a folder backend kept in memory, shared by every
// device of a test.
func newMemRemote(t *testing.T) (*countingRemote, afero.Fs) {
	t.Helper()

	mem := afero.NewMemMapFs()
	remote := adapter.NewRemoteStore(adapter.NewAferoFS(mem), adapter.Options{
		Backend: models.BackendFolder,
		Prefix:  "ledger",
	})
	_, err := remote.CreateStore(context.Background(), "home")
	require.NoError(t, err)
	return &countingRemote{RemoteStore: remote}, mem
}

// countingRemote counts the remote transfers of a RemoteStore.
type countingRemote struct {
	adapter.RemoteStore

	writes     atomic.Int64
	deletes    atomic.Int64
	fetches    atomic.Int64
	structures atomic.Int64
}

func (c *countingRemote) WriteFiles(ctx context.Context, id string, files []models.RemoteFile) error {
	c.writes.Add(int64(len(files)))
	return c.RemoteStore.WriteFiles(ctx, id, files)
}

func (c *countingRemote) DeleteFiles(ctx context.Context, id string, paths []string) error {
	c.deletes.Add(int64(len(paths)))
	return c.RemoteStore.DeleteFiles(ctx, id, paths)
}

func (c *countingRemote) FetchFileContents(ctx context.Context, id string, paths []string) ([]models.RemoteFile, error) {
	c.fetches.Add(int64(len(paths)))
	return c.RemoteStore.FetchFileContents(ctx, id, paths)
}

func (c *countingRemote) FetchStoreStructure(ctx context.Context, id string) (models.Structure, error) {
	c.structures.Add(1)
	return c.RemoteStore.FetchStoreStructure(ctx, id)
}

// device is one client of a shared remote.
type device struct {
	bucket *ItemBucket
	syncer *bookSyncer
}

func newDevice(t *testing.T, remote adapter.RemoteStore, perChunk int) *device {
	t.Helper()

	bucket := newTestBucket(t)
	syncer := newBookSyncer(bucket, func() (adapter.RemoteStore, error) { return remote, nil }, SyncOptions{
		ItemsPerChunk: perChunk,
		LockDir:       t.TempDir(),
	}, logger.Nop())
	return &device{bucket: bucket, syncer: syncer}
}

func (d *device) batch(t *testing.T, overlap bool, actions ...models.Action) {
	t.Helper()
	_, err := d.bucket.Batch(context.Background(), actions, overlap, nil)
	require.NoError(t, err)
}

func (d *device) sync(t *testing.T) bool {
	t.Helper()
	pulled, err := d.syncer.Sync(context.Background())
	require.NoError(t, err)
	return pulled
}

func (d *device) items(t *testing.T) []models.Item {
	t.Helper()
	items, err := d.bucket.Items(context.Background())
	require.NoError(t, err)
	return items
}

func update(id string, ts int64, kv ...any) models.Action {
	value := models.Item{models.FieldID: id}
	for i := 0; i+1 < len(kv); i += 2 {
		value[kv[i].(string)] = kv[i+1]
	}
	return models.Action{Type: models.ActionUpdate, ID: id, Value: value, Timestamp: ts}
}

func remove(id string, ts int64) models.Action {
	return models.Action{Type: models.ActionDelete, ID: id, Timestamp: ts}
}

func entry(id string, ts int64, kv ...any) models.Item {
	it := models.Item{models.FieldID: id, models.FieldUpdateAt: ts}
	for i := 0; i+1 < len(kv); i += 2 {
		it[kv[i].(string)] = kv[i+1]
	}
	return it
}

func itemIDs(items []models.Item) []string {
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID())
	}
	return ids
}

func byID(items []models.Item, id string) models.Item {
	for _, it := range items {
		if it.ID() == id {
			return it
		}
	}
	return nil
}

// fixedIDs hands out predictable short ids.
type fixedIDs struct {
	mu   sync.Mutex
	next int
	ids  []string
}

func (f *fixedIDs) ShortID(int) string {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := f.ids[f.next%len(f.ids)]
	f.next++
	return id
}
