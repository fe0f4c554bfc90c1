package scan

import (
	"os"
	"path/filepath"
	"testing"

	"pictriage/pkg/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsRaw(t *testing.T) {
	assert.True(t, IsRaw("shot.dng"))
	assert.True(t, IsRaw("SHOT.CR2"))
	assert.True(t, IsRaw("/some/dir/shot.nef"))
	assert.False(t, IsRaw("shot.jpg"))
	assert.False(t, IsRaw("shot.xmp"))
	assert.False(t, IsRaw("shot"))
}

func TestScan(t *testing.T) {
	dir := t.TempDir()

	testutil.WriteJPEG(t, filepath.Join(dir, "b.jpg"), 8, 8)
	testutil.WritePNG(t, filepath.Join(dir, "a.png"), 8, 8)
	testutil.WriteFakeRAW(t, filepath.Join(dir, "c.dng"), 1, "2023:06:15 10:30:00")
	testutil.WriteGarbage(t, filepath.Join(dir, "broken.jpg"))
	testutil.WriteGarbage(t, filepath.Join(dir, "broken.dng"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.jpg"), 0755))

	s, err := New(nil)
	require.NoError(t, err)

	files, err := s.Scan(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(dir, "a.png"),
		filepath.Join(dir, "b.jpg"),
		filepath.Join(dir, "c.dng"),
	}, files, "invalid and irrelevant files excluded, result sorted")
}

func TestScanIgnorePatterns(t *testing.T) {
	dir := t.TempDir()

	testutil.WriteJPEG(t, filepath.Join(dir, "keep.jpg"), 8, 8)
	testutil.WriteJPEG(t, filepath.Join(dir, "skip_me.jpg"), 8, 8)

	s, err := New([]string{"skip_*"})
	require.NoError(t, err)

	files, err := s.Scan(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "keep.jpg")}, files)
}

func TestScanBadIgnorePattern(t *testing.T) {
	_, err := New([]string{"[unterminated"})
	assert.Error(t, err)
}

func TestScanMissingDir(t *testing.T) {
	s, err := New(nil)
	require.NoError(t, err)

	_, err = s.Scan(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestProbe(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "good.png")
	testutil.WritePNG(t, good, 8, 8)
	bad := filepath.Join(dir, "bad.jpg")
	testutil.WriteGarbage(t, bad)
	raw := filepath.Join(dir, "shot.arw")
	testutil.WriteFakeRAW(t, raw, 6, "")
	text := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(text, []byte("hi"), 0644))

	s, err := New(nil)
	require.NoError(t, err)

	assert.NoError(t, s.Probe(good))
	assert.NoError(t, s.Probe(raw))
	assert.Error(t, s.Probe(bad))
	assert.Error(t, s.Probe(text), "unknown extensions are not candidates")
}
