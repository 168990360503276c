package workers

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-ledger-sync/internal/logger"
)

const testDebounce = 100 * time.Millisecond

func startWatcher(t *testing.T, root string, spy *spyBooks) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	w := NewFolderWatcher(root, spy, testDebounce, logger.Nop())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(time.Second):
			t.Error("watcher did not stop")
		}
	})

	// let the watcher register its directories
	time.Sleep(50 * time.Millisecond)
}

func TestFolderWatcher_SchedulesChangedBook(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "ledger-home"), 0o755))
	spy := newSpyBooks("ledger-home")
	startWatcher(t, root, spy)

	for i := range 5 {
		data := []byte{byte('0' + i)}
		require.NoError(t, os.WriteFile(filepath.Join(root, "ledger-home", "items-0.json"), data, 0o644))
	}

	assert.Eventually(t, func() bool { return spy.count("ledger-home") == 1 }, 2*time.Second, 10*time.Millisecond)
	time.Sleep(3 * testDebounce)
	assert.Equal(t, 1, spy.count("ledger-home"), "a burst is coalesced")
}

func TestFolderWatcher_IgnoresBooksNotOpened(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "ledger-other"), 0o755))
	spy := newSpyBooks("ledger-home")
	startWatcher(t, root, spy)

	require.NoError(t, os.WriteFile(filepath.Join(root, "ledger-other", "items-0.json"), []byte("[]"), 0o644))

	time.Sleep(3 * testDebounce)
	assert.Zero(t, spy.total.Load())
}

func TestFolderWatcher_IgnoresTempFiles(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "ledger-home"), 0o755))
	spy := newSpyBooks("ledger-home")
	startWatcher(t, root, spy)

	require.NoError(t, os.WriteFile(filepath.Join(root, "ledger-home", "items-0.json.tmp"), []byte("[]"), 0o644))

	time.Sleep(3 * testDebounce)
	assert.Zero(t, spy.total.Load())
}

func TestFolderWatcher_WatchesNewBookDirs(t *testing.T) {
	root := t.TempDir()
	spy := newSpyBooks("ledger-new")
	startWatcher(t, root, spy)

	require.NoError(t, os.Mkdir(filepath.Join(root, "ledger-new"), 0o755))
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(root, "ledger-new", "meta.json"), []byte("{}"), 0o644))

	assert.Eventually(t, func() bool { return spy.count("ledger-new") == 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestFolderWatcher_MissingRoot(t *testing.T) {
	w := NewFolderWatcher(filepath.Join(t.TempDir(), "missing"), newSpyBooks(), 0, logger.Nop())

	assert.Error(t, w.Run(context.Background()))
	assert.Equal(t, defaultWatchDebounce, w.debounce)
}
