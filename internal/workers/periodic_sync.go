package workers

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-ledger-sync/internal/logger"
)

const defaultSyncInterval = 5 * time.Minute

// PeriodicSync schedules a sync of every opened book on a ticker.
type PeriodicSync struct {
	books    BookSyncer
	interval time.Duration
	logger   *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewPeriodicSync creates a PeriodicSync that schedules every interval. If
// interval is zero or negative it defaults to 5 minutes. The job is idle
// until Start or Run is called.
func NewPeriodicSync(books BookSyncer, interval time.Duration, log *logger.Logger) *PeriodicSync {
	if interval <= 0 {
		interval = defaultSyncInterval
	}
	return &PeriodicSync{books: books, interval: interval, logger: log}
}

// Run starts the job and blocks until ctx is cancelled.
func (j *PeriodicSync) Run(ctx context.Context) error {
	j.Start(ctx)
	<-ctx.Done()
	j.Stop()
	return nil
}

// Start stops any previously running job, then launches a background
// goroutine that schedules the opened books every interval. The goroutine
// exits when ctx is cancelled or Stop is called.
func (j *PeriodicSync) Start(ctx context.Context) {
	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(j.interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				j.tick(jobCtx)
			}
		}
	}()
}

// Stop cancels the background goroutine's context and blocks until the
// goroutine has fully exited. Safe to call when the job is not running.
func (j *PeriodicSync) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}

func (j *PeriodicSync) tick(ctx context.Context) {
	ids, err := j.books.LocalBooks(ctx)
	if err != nil {
		j.logger.Err(err).Str("func", "PeriodicSync.tick").Msg("failed to list local books")
		return
	}
	for _, id := range ids {
		j.books.ToSync(id)
	}
}
