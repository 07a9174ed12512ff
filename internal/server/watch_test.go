// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestWatcherDebouncesReloads(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	watched := filepath.Join(dir, "experts.json")
	other := filepath.Join(dir, "notes.txt")

	var reloads atomic.Int32
	w := NewWatcher([]string{watched}, 50*time.Millisecond, func(context.Context) error {
		reloads.Add(1)
		return nil
	}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Give the watcher time to register the directory.
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, os.WriteFile(other, []byte("x"), 0o644))
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(watched, []byte{'[', byte('0' + i), ']'}, 0o644))
	}

	assert.Eventually(t, func() bool { return reloads.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)
	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, int32(1), reloads.Load(), "burst coalesces into one reload")

	cancel()
	require.NoError(t, <-done)
}

func TestWatcherMissingDirectory(t *testing.T) {
	defer goleak.VerifyNone(t)

	w := NewWatcher([]string{filepath.Join(t.TempDir(), "missing", "experts.json")}, 0, func(context.Context) error { return nil }, nil)
	assert.Error(t, w.Run(context.Background()))
}

func TestRunShutsDown(t *testing.T) {
	defer goleak.VerifyNone(t)

	src := &fakeSource{paths: []string{filepath.Join(t.TempDir(), "experts.json")}}
	s, _ := newTestServer(t, src)
	s.cfg.Addr = "127.0.0.1:0"
	s.cfg.Watch = true

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
