package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startWatcher(t *testing.T, opts Options) *atomic.Int32 {
	t.Helper()
	opts.Debounce = 20 * time.Millisecond
	w, err := New(opts)
	require.NoError(t, err)

	var runs atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Run(ctx, func(context.Context) error {
			runs.Add(1)
			return nil
		})
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return &runs
}

func TestWatcherTriggersOnDocumentationChange(t *testing.T) {
	dir := t.TempDir()
	runs := startWatcher(t, Options{Paths: []string{dir}, Extensions: []string{".xml"}})

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "glFinish.xml"), []byte("<a/>"), 0o600))

	assert.Eventually(t, func() bool { return runs.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestWatcherFiltersFileTargets(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "docbind.yaml")
	require.NoError(t, os.WriteFile(target, []byte("profiles: []\n"), 0o600))
	runs := startWatcher(t, Options{Paths: []string{target}})

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x"), 0o600))
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(0), runs.Load())

	require.NoError(t, os.WriteFile(target, []byte("profiles: [{}]\n"), 0o600))
	assert.Eventually(t, func() bool { return runs.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestNewMissingPath(t *testing.T) {
	_, err := New(Options{Paths: []string{filepath.Join(t.TempDir(), "absent")}})
	require.Error(t, err)
}
