package watch

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLog() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l.WithField("test", true)
}

func TestWatcherDeliversCommandAndTruncates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cmd.txt")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	w, err := New(path, 20*time.Millisecond, discardLog())
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	require.NoError(t, os.WriteFile(path, []byte("move 3 ;"), 0o644))

	select {
	case cmd := <-w.Commands():
		assert.Equal(t, "move 3 ;", cmd)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for command")
	}

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, content, "command file must be truncated after being read")
}

func TestWatcherIgnoresEmptyWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cmd.txt")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	w, err := New(path, 20*time.Millisecond, discardLog())
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	require.NoError(t, os.WriteFile(path, nil, 0o644))

	select {
	case cmd := <-w.Commands():
		t.Fatalf("expected no command for an empty write, got %q", cmd)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcherIgnoresUnrelatedFilesInSameDirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cmd.txt")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	w, err := New(path, 20*time.Millisecond, discardLog())
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("ignore me"), 0o644))

	select {
	case cmd := <-w.Commands():
		t.Fatalf("expected no command from an unrelated file, got %q", cmd)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcherClosesChannelsWhenContextCanceled(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cmd.txt")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	w, err := New(path, 20*time.Millisecond, discardLog())
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after context cancellation")
	}

	_, ok := <-w.Commands()
	assert.False(t, ok, "commands channel must be closed once Run returns")
}

func TestNewDefaultsNonPositiveDebounce(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cmd.txt")
	w, err := New(path, 0, discardLog())
	require.NoError(t, err)
	defer w.Close()
	assert.Equal(t, 250*time.Millisecond, w.debounce)
}
