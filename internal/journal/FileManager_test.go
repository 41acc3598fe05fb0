package journal

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cjd/internal/models"
	"cjd/internal/testutil"
)

func newTestFileManager(store *models.Store) *FileManager {
	return NewFileManager(&testutil.MockCompressor{}, store, &testutil.MockLogger{})
}

func seedStore() *models.Store {
	store := models.NewStore()
	store.UpsertEntry(&models.JournalEntry{ID: "entry_1", Title: "camp diary", Tags: []string{"camp"}})
	store.UpsertEntry(&models.JournalEntry{ID: "entry_2", Title: "second week"})
	store.PutSetting("theme", json.RawMessage(`"dark"`))
	store.PutServiceInfo(&models.ServiceProfile{Name: "Adaeze", StartDate: "2026-03-15"})
	store.AddBadge(&models.Badge{ID: "first_entry", Category: "milestones"})
	return store
}

func TestFileManager_SaveToFile_CreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "journal.dat")

	fm := newTestFileManager(seedStore())
	require.NoError(t, fm.SaveToFile(path))

	_, err := os.Stat(path)
	assert.NoError(t, err)

	// Temp file should not exist
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestFileManager_SaveLoad_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "journal.dat")

	require.NoError(t, newTestFileManager(seedStore()).SaveToFile(path))

	restored := models.NewStore()
	require.NoError(t, newTestFileManager(restored).LoadFromFile(path))

	assert.Equal(t, 2, restored.EntriesCount())
	entry, ok := restored.Entry("entry_1")
	require.True(t, ok)
	assert.Equal(t, "camp diary", entry.Title)

	profile, ok := restored.ServiceInfo()
	require.True(t, ok)
	assert.Equal(t, "Adaeze", profile.Name)
	assert.True(t, restored.HasBadge("first_entry"))

	setting, ok := restored.Setting("theme")
	require.True(t, ok)
	assert.Equal(t, json.RawMessage(`"dark"`), setting)
}

func TestFileManager_SaveToFile_CompressFailureCleansUp(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "journal.dat")

	comp := &testutil.MockCompressor{
		CompressFn: func(_ []byte) ([]byte, error) { return nil, errors.New("boom") },
	}
	fm := NewFileManager(comp, seedStore(), &testutil.MockLogger{})
	assert.Error(t, fm.SaveToFile(path))

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestFileManager_LoadFromFile_FileNotExist(t *testing.T) {
	fm := newTestFileManager(models.NewStore())
	err := fm.LoadFromFile("/nonexistent/path/journal.dat")
	assert.NoError(t, err) // not an error, just a first launch
}

func TestFileManager_LoadFromFile_PlainJSONFallback(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "journal.dat")

	// Early releases wrote the snapshot uncompressed. A decompressor
	// that rejects the payload must not prevent the load.
	snapshot := seedStore().Snapshot()
	data, err := json.Marshal(snapshot)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0644))

	restored := models.NewStore()
	comp := &testutil.MockCompressor{
		DecompressFn: func(_ []byte) ([]byte, error) { return nil, errors.New("not zstd") },
	}
	fm := NewFileManager(comp, restored, &testutil.MockLogger{})
	require.NoError(t, fm.LoadFromFile(path))
	assert.Equal(t, 2, restored.EntriesCount())
}

func TestFileManager_LoadFromFile_MigratesLegacyFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "journal.dat")

	// Legacy flat layout: record keys at top level, no version field.
	legacy := `{
		"entries": [{"id": "entry_old", "title": "from the old app"}],
		"settings": {"theme": "light"},
		"serviceInfo": {"name": "Chidi"},
		"badges": [{"id": "first_entry"}]
	}`
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0644))

	store := models.NewStore()
	require.NoError(t, newTestFileManager(store).LoadFromFile(path))

	entry, ok := store.Entry("entry_old")
	require.True(t, ok)
	assert.Equal(t, "from the old app", entry.Title)
	profile, ok := store.ServiceInfo()
	require.True(t, ok)
	assert.Equal(t, "Chidi", profile.Name)
	assert.True(t, store.HasBadge("first_entry"))
}

func TestFileManager_LoadFromFile_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "journal.dat")
	require.NoError(t, os.WriteFile(path, []byte("definitely not a snapshot"), 0644))

	store := models.NewStore()
	err := newTestFileManager(store).LoadFromFile(path)
	assert.Error(t, err)
	assert.Equal(t, 0, store.EntriesCount())
}

func TestFileManager_LoadFromFile_UnrecognizedObject(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "journal.dat")
	require.NoError(t, os.WriteFile(path, []byte(`{"foo": "bar"}`), 0644))

	store := models.NewStore()
	err := newTestFileManager(store).LoadFromFile(path)
	assert.ErrorIs(t, err, errUnknownStoreFormat)
}
