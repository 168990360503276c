// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-ledger-sync/models"
)

// gatedTask blocks every run until release is signalled.
type gatedTask struct {
	started chan struct{}
	release chan struct{}
	runs    atomic.Int64
	active  atomic.Int64
	maxSeen atomic.Int64
	err     error
}

func newGatedTask() *gatedTask {
	return &gatedTask{started: make(chan struct{}, 16), release: make(chan struct{})}
}

func (g *gatedTask) run(ctx context.Context) error {
	n := g.active.Add(1)
	defer g.active.Add(-1)
	for {
		cur := g.maxSeen.Load()
		if n <= cur || g.maxSeen.CompareAndSwap(cur, n) {
			break
		}
	}
	g.runs.Add(1)
	g.started <- struct{}{}

	select {
	case <-g.release:
		return g.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func waitStarted(t *testing.T, g *gatedTask) {
	t.Helper()
	select {
	case <-g.started:
	case <-time.After(time.Second):
		t.Fatal("task did not start")
	}
}

func waitRun(t *testing.T, r models.SyncRun) error {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	err := r.Wait(ctx)
	require.NotErrorIs(t, err, context.DeadlineExceeded, "run did not finish")
	return err
}

// ── Schedule ─────────────────────────────────────────────────────────────────

func TestScheduler_SingleRun(t *testing.T) {
	var runs atomic.Int64
	s := NewScheduler(func(context.Context) error {
		runs.Add(1)
		return nil
	})
	defer s.Close()

	r := s.Schedule()

	require.NoError(t, waitRun(t, r))
	assert.Equal(t, int64(1), runs.Load())
	assert.Eventually(t, func() bool { return !s.Running() }, time.Second, 5*time.Millisecond)
}

func TestScheduler_CoalescesRequestsWhileRunning(t *testing.T) {
	g := newGatedTask()
	s := NewScheduler(g.run)
	defer s.Close()

	first := s.Schedule()
	waitStarted(t, g)

	second := s.Schedule()
	third := s.Schedule()
	fourth := s.Schedule()
	assert.Same(t, second, third)
	assert.Same(t, second, fourth)
	assert.NotSame(t, first, second)
	assert.Nil(t, second.Err())

	g.release <- struct{}{}
	require.NoError(t, waitRun(t, first))

	waitStarted(t, g)
	g.release <- struct{}{}
	require.NoError(t, waitRun(t, second))

	assert.Equal(t, int64(2), g.runs.Load())
	assert.Equal(t, int64(1), g.maxSeen.Load(), "runs must never overlap")
}

func TestScheduler_PropagatesError(t *testing.T) {
	boom := errors.New("boom")
	s := NewScheduler(func(context.Context) error { return boom })
	defer s.Close()

	err := waitRun(t, s.Schedule())

	assert.ErrorIs(t, err, boom)
}

func TestScheduler_ScheduleAfterCompletionStartsNewRun(t *testing.T) {
	var runs atomic.Int64
	s := NewScheduler(func(context.Context) error {
		runs.Add(1)
		return nil
	})
	defer s.Close()

	require.NoError(t, waitRun(t, s.Schedule()))
	require.Eventually(t, func() bool { return !s.Running() }, time.Second, 5*time.Millisecond)
	require.NoError(t, waitRun(t, s.Schedule()))

	assert.Equal(t, int64(2), runs.Load())
}

// ── Cancel / Close ───────────────────────────────────────────────────────────

func TestScheduler_Cancel(t *testing.T) {
	g := newGatedTask()
	s := NewScheduler(g.run)
	defer s.Close()

	r := s.Schedule()
	waitStarted(t, g)
	s.Cancel()

	assert.ErrorIs(t, waitRun(t, r), context.Canceled)
}

func TestScheduler_CancelKeepsQueuedRun(t *testing.T) {
	g := newGatedTask()
	s := NewScheduler(g.run)
	defer s.Close()

	first := s.Schedule()
	waitStarted(t, g)
	queued := s.Schedule()
	s.Cancel()

	assert.ErrorIs(t, waitRun(t, first), context.Canceled)
	waitStarted(t, g)
	g.release <- struct{}{}
	assert.NoError(t, waitRun(t, queued))
}

func TestScheduler_Close(t *testing.T) {
	g := newGatedTask()
	s := NewScheduler(g.run)

	first := s.Schedule()
	waitStarted(t, g)
	queued := s.Schedule()

	s.Close()

	assert.ErrorIs(t, waitRun(t, first), context.Canceled)
	assert.ErrorIs(t, waitRun(t, queued), ErrSchedulerClosed)
	assert.ErrorIs(t, waitRun(t, s.Schedule()), ErrSchedulerClosed)
	assert.Equal(t, int64(1), g.runs.Load())
	assert.False(t, s.Running())
}

func TestScheduler_CloseIdle(t *testing.T) {
	s := NewScheduler(func(context.Context) error { return nil })

	assert.NotPanics(t, func() {
		s.Close()
		s.Close()
	})
}

// ── OnProcess ────────────────────────────────────────────────────────────────

func TestScheduler_OnProcessOncePerRun(t *testing.T) {
	g := newGatedTask()
	s := NewScheduler(g.run)
	defer s.Close()

	var seen []models.SyncRun
	var calls atomic.Int64
	unsubscribe := s.OnProcess(func(r models.SyncRun) {
		calls.Add(1)
		seen = append(seen, r)
	})

	first := s.Schedule()
	waitStarted(t, g)
	second := s.Schedule()
	s.Schedule()

	g.release <- struct{}{}
	waitStarted(t, g)
	g.release <- struct{}{}
	require.NoError(t, waitRun(t, second))

	assert.Equal(t, int64(2), calls.Load())
	assert.Equal(t, []models.SyncRun{first, second}, seen)

	unsubscribe()
	unsubscribe()
	require.Eventually(t, func() bool { return !s.Running() }, time.Second, 5*time.Millisecond)
	third := s.Schedule()
	waitStarted(t, g)
	g.release <- struct{}{}
	require.NoError(t, waitRun(t, third))
	assert.Equal(t, int64(2), calls.Load())
}

func TestSyncRun_Wait_ContextDone(t *testing.T) {
	r := newSyncRun()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, r.Wait(ctx), context.Canceled)
	assert.Nil(t, r.Err())

	r.finish(nil)
	r.finish(errors.New("ignored"))
	assert.NoError(t, r.Wait(context.Background()))
}

// ── listeners ────────────────────────────────────────────────────────────────

func TestListeners(t *testing.T) {
	var l listeners[func() int]

	removeA := l.add(func() int { return 1 })
	l.add(func() int { return 2 })
	assert.Equal(t, 2, l.count())

	snap := l.snapshot()
	removeA()
	removeA()

	assert.Equal(t, 1, l.count())
	require.Len(t, snap, 2, "snapshots are not affected by later removals")
	assert.Equal(t, 2, l.snapshot()[0]())
}
