package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"pictriage/internal/scan"
	"pictriage/pkg/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWatcher(t *testing.T) (*Watcher, string) {
	t.Helper()
	scanner, err := scan.New(nil)
	require.NoError(t, err)
	w, err := New(scanner)
	require.NoError(t, err)
	t.Cleanup(w.Stop)
	return w, t.TempDir()
}

func TestWatcherEmitsValidImages(t *testing.T) {
	w, dir := newTestWatcher(t)

	require.NoError(t, w.Watch(dir))
	require.NoError(t, w.Start())

	// Invalid and irrelevant files must stay silent.
	testutil.WriteGarbage(t, filepath.Join(dir, "broken.jpg"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0644))

	valid := filepath.Join(dir, "new.png")
	testutil.WritePNG(t, valid, 8, 8)

	select {
	case path := <-w.Paths():
		assert.Equal(t, valid, path)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for the new image")
	}
}

func TestWatchRejectsBadTargets(t *testing.T) {
	w, dir := newTestWatcher(t)

	assert.Error(t, w.Watch(filepath.Join(dir, "missing")))

	file := filepath.Join(dir, "plain.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))
	assert.Error(t, w.Watch(file), "only directories can be watched")
}

func TestStartTwice(t *testing.T) {
	w, dir := newTestWatcher(t)

	require.NoError(t, w.Watch(dir))
	require.NoError(t, w.Start())
	assert.Error(t, w.Start())
}

func TestStopIsIdempotent(t *testing.T) {
	scanner, err := scan.New(nil)
	require.NoError(t, err)
	w, err := New(scanner)
	require.NoError(t, err)

	require.NoError(t, w.Start())
	w.Stop()
	w.Stop()
}
