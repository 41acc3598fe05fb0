package services

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cjd/internal/structures"
	"cjd/internal/testutil"
)

func newMediaFixture(t *testing.T) (MediaServiceInterface, string) {
	t.Helper()
	dir := t.TempDir()
	conf := &structures.Config{Media: structures.MediaConfig{Dir: dir}}
	return NewMediaService(conf, &testutil.MockLogger{}), dir
}

func writeTempMedia(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestMediaService_SaveImage_CopiesIntoImageDir(t *testing.T) {
	ms, dir := newMediaFixture(t)
	src := writeTempMedia(t, "upload.png", "png-bytes")

	dest, err := ms.SaveImage(src, "entry_1")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "images"), filepath.Dir(dest))
	assert.True(t, strings.HasPrefix(filepath.Base(dest), "entry_1_"))
	assert.True(t, strings.HasSuffix(dest, ".png"))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	// Copy, not move: the caller still owns the source.
	_, err = os.Stat(src)
	assert.NoError(t, err)

	// No tmp residue next to the stored file.
	_, err = os.Stat(dest + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestMediaService_SaveAudio_DefaultExtension(t *testing.T) {
	ms, dir := newMediaFixture(t)
	src := writeTempMedia(t, "recording", "audio-bytes")

	dest, err := ms.SaveAudio(src, "entry_2")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "audio"), filepath.Dir(dest))
	assert.True(t, strings.HasSuffix(dest, ".m4a"))
}

func TestMediaService_Save_MissingSourceFails(t *testing.T) {
	ms, _ := newMediaFixture(t)
	_, err := ms.SaveImage("/nonexistent/upload.jpg", "entry_3")
	assert.Error(t, err)
}

func TestMediaService_Save_UniqueNamesForSameEntry(t *testing.T) {
	ms, _ := newMediaFixture(t)
	src := writeTempMedia(t, "a.jpg", "x")

	first, err := ms.SaveImage(src, "entry_4")
	require.NoError(t, err)
	second, err := ms.SaveImage(src, "entry_4")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestMediaService_Delete_Idempotent(t *testing.T) {
	ms, _ := newMediaFixture(t)
	src := writeTempMedia(t, "b.jpg", "x")
	dest, err := ms.SaveImage(src, "entry_5")
	require.NoError(t, err)

	removed, err := ms.Delete(dest)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = ms.Delete(dest)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestMediaService_SweepOrphans_KeepsReferencedFiles(t *testing.T) {
	ms, _ := newMediaFixture(t)
	src := writeTempMedia(t, "c.jpg", "x")

	var stored []string
	for i := 0; i < 5; i++ {
		dest, err := ms.SaveImage(src, "entry_6")
		require.NoError(t, err)
		stored = append(stored, dest)
	}

	referenced := map[string]struct{}{
		stored[0]: {},
		stored[1]: {},
		stored[2]: {},
	}
	deleted := ms.SweepOrphans(referenced)
	assert.Equal(t, 2, deleted)

	for _, path := range stored[:3] {
		_, err := os.Stat(path)
		assert.NoError(t, err)
	}
	for _, path := range stored[3:] {
		_, err := os.Stat(path)
		assert.True(t, os.IsNotExist(err))
	}
}

func TestMediaService_SweepOrphans_EmptySetWipesAll(t *testing.T) {
	ms, _ := newMediaFixture(t)
	src := writeTempMedia(t, "d.jpg", "x")
	_, err := ms.SaveImage(src, "entry_7")
	require.NoError(t, err)
	_, err = ms.SaveAudio(src, "entry_7")
	require.NoError(t, err)

	assert.Equal(t, 2, ms.SweepOrphans(map[string]struct{}{}))
	assert.Equal(t, 0, ms.SweepOrphans(map[string]struct{}{}))
}

func TestMediaService_Stats_CountsFilesAndBytes(t *testing.T) {
	ms, _ := newMediaFixture(t)
	img := writeTempMedia(t, "e.jpg", "12345")
	aud := writeTempMedia(t, "f.m4a", "1234567890")

	_, err := ms.SaveImage(img, "entry_8")
	require.NoError(t, err)
	_, err = ms.SaveAudio(aud, "entry_8")
	require.NoError(t, err)

	stats := ms.Stats()
	assert.Equal(t, 1, stats.ImageCount)
	assert.Equal(t, 1, stats.AudioCount)
	assert.Equal(t, int64(15), stats.TotalBytes)
}
