// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync"

	"github.com/MKhiriev/go-ledger-sync/models"
)

// Task is the unit of work a Scheduler runs. It must return soon after ctx
// is cancelled.
type Task func(ctx context.Context) error

// Scheduler runs a Task single-flight. A Schedule call while a run is in
// flight is coalesced into one follow-up run, however many calls arrive.
type Scheduler struct {
	task Task

	mu      sync.Mutex
	running *syncRun
	queued  *syncRun
	cancel  context.CancelFunc
	closed  bool
	wg      sync.WaitGroup

	processing listeners[func(models.SyncRun)]
}

// NewScheduler returns a Scheduler running task.
func NewScheduler(task Task) *Scheduler {
	return &Scheduler{task: task}
}

// Schedule requests a run. The returned handle completes when the run that
// covers this request does: the queued follow-up when a run is in flight,
// a new run otherwise.
func (s *Scheduler) Schedule() models.SyncRun {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return finishedRun(ErrSchedulerClosed)
	}
	if s.running == nil {
		r := newSyncRun()
		s.start(r)
		return r
	}
	if s.queued == nil {
		s.queued = newSyncRun()
	}
	return s.queued
}

// OnProcess registers fn to be called once per actual run, before the task
// starts, with the handle of that run.
func (s *Scheduler) OnProcess(fn func(models.SyncRun)) (unsubscribe func()) {
	return s.processing.add(fn)
}

// Cancel cancels the context of the run in flight. A queued follow-up still
// runs.
func (s *Scheduler) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}
}

// Running reports whether a run is in flight.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.running != nil
}

// Close cancels the run in flight, fails the queued one and waits for the
// scheduler goroutine to exit. Later Schedule calls fail with
// ErrSchedulerClosed.
func (s *Scheduler) Close() {
	s.mu.Lock()
	s.closed = true
	if s.cancel != nil {
		s.cancel()
	}
	if s.queued != nil {
		s.queued.finish(ErrSchedulerClosed)
		s.queued = nil
	}
	s.mu.Unlock()

	s.wg.Wait()
}

// start launches r; s.mu must be held.
func (s *Scheduler) start(r *syncRun) {
	ctx, cancel := context.WithCancel(context.Background())
	s.running = r
	s.cancel = cancel

	s.wg.Add(1)
	go s.loop(ctx, r)
}

func (s *Scheduler) loop(ctx context.Context, r *syncRun) {
	defer s.wg.Done()

	for {
		for _, fn := range s.processing.snapshot() {
			fn(r)
		}

		err := s.task(ctx)

		s.mu.Lock()
		s.cancel()
		r.finish(err)

		next := s.queued
		s.queued = nil
		if next == nil || s.closed {
			s.running = nil
			s.cancel = nil
			s.mu.Unlock()
			return
		}

		ctx, s.cancel = context.WithCancel(context.Background())
		s.running = next
		r = next
		s.mu.Unlock()
	}
}

// syncRun implements models.SyncRun.
type syncRun struct {
	done chan struct{}
	once sync.Once
	err  error
}

func newSyncRun() *syncRun {
	return &syncRun{done: make(chan struct{})}
}

func finishedRun(err error) *syncRun {
	r := newSyncRun()
	r.finish(err)
	return r
}

func (r *syncRun) finish(err error) {
	r.once.Do(func() {
		r.err = err
		close(r.done)
	})
}

func (r *syncRun) Done() <-chan struct{} {
	return r.done
}

// Err returns nil until the run is done.
func (r *syncRun) Err() error {
	select {
	case <-r.done:
		return r.err
	default:
		return nil
	}
}

func (r *syncRun) Wait(ctx context.Context) error {
	select {
	case <-r.done:
		return r.err
	case <-ctx.Done():
		return ctx.Err()
	}
}
