package services

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cjd/internal/models"
	"cjd/internal/testutil"
)

func newBackupFixture() (BackupServiceInterface, *models.Store) {
	store := models.NewStore()
	logger := &testutil.MockLogger{}
	badges := NewBadgeService(store, logger, testutil.NewMockMetrics())
	return NewBackupService(store, badges, logger), store
}

func seedEntry(store *models.Store, id, title string, tags []string) {
	store.UpsertEntry(&models.JournalEntry{
		ID:    id,
		Title: title,
		Date:  "2026-04-01T09:00:00Z",
		Tags:  tags,
		Images: []string{
			"/var/lib/cjd/media/images/" + id + "_1.jpg",
			"/var/lib/cjd/media/images/" + id + "_2.jpg",
		},
		AudioNotes: []models.AudioNote{
			{ID: id + "_a", URI: "/var/lib/cjd/media/audio/" + id + ".m4a", Name: "voice note"},
		},
		SyncStatus: models.SyncLocal,
	})
}

func TestBackupService_Export_Metadata(t *testing.T) {
	bs, store := newBackupFixture()
	seedEntry(store, "entry_1", "one", nil)
	seedEntry(store, "entry_2", "two", nil)

	doc := bs.Export()

	assert.Equal(t, "2.0", doc.Metadata.ExportVersion)
	assert.Equal(t, AppVersion, doc.Metadata.AppVersion)
	assert.Equal(t, 2, doc.Metadata.EntriesCount)
	assert.NotEmpty(t, doc.Metadata.MediaNote)
	_, ok := models.ParseInstant(doc.Metadata.ExportDate)
	assert.True(t, ok)
}

func TestBackupService_Export_StripsMedia(t *testing.T) {
	bs, store := newBackupFixture()
	seedEntry(store, "entry_1", "with media", []string{"camp"})

	doc := bs.Export()
	require.Len(t, doc.Entries, 1)
	be := doc.Entries[0]

	assert.Empty(t, be.Images)
	assert.Equal(t, 2, be.OriginalImageCount)
	assert.Equal(t, []string{"entry_1_1.jpg", "entry_1_2.jpg"}, be.ImageFilenames)

	require.Len(t, be.AudioNotes, 1)
	assert.Nil(t, be.AudioNotes[0].URI)
	assert.True(t, be.AudioNotes[0].IsPlaceholder)
	assert.Equal(t, "entry_1.m4a", be.AudioNotes[0].OriginalFilename)
}

func TestBackupService_Export_CountsTowardArchivist(t *testing.T) {
	bs, store := newBackupFixture()
	bs.Export()
	assert.True(t, store.HasBadge("archivist"))
	assert.Equal(t, 1, store.Progress().ExportCount)
}

func TestBackupService_Export_EmptyStoreIsValidJSON(t *testing.T) {
	bs, _ := newBackupFixture()
	doc := bs.Export()

	data, err := json.Marshal(doc)
	require.NoError(t, err)

	var parsed models.BackupDocument
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.NotNil(t, parsed.Entries)
	assert.Equal(t, 0, parsed.Metadata.EntriesCount)
}

func TestBackupService_RoundTrip_Replace(t *testing.T) {
	source, store := newBackupFixture()
	seedEntry(store, "entry_1", "one", []string{"camp", "cds"})
	seedEntry(store, "entry_2", "two", nil)
	store.PutServiceInfo(&models.ServiceProfile{Name: "Adaeze", StartDate: "2026-03-15"})
	store.PutSetting("theme", json.RawMessage(`"dark"`))

	data, err := json.Marshal(source.Export())
	require.NoError(t, err)

	target, targetStore := newBackupFixture()
	result := target.Import(data, models.ImportModeReplace)
	require.True(t, result.Success)
	assert.Equal(t, 2, result.Stats.EntriesImported)
	assert.True(t, result.Stats.SettingsImported)
	assert.True(t, result.Stats.ServiceInfoImported)

	restored, ok := targetStore.Entry("entry_1")
	require.True(t, ok)
	assert.Equal(t, "one", restored.Title)
	assert.Equal(t, []string{"camp", "cds"}, restored.Tags)

	// Media never travels through a backup.
	assert.Empty(t, restored.Images)
	require.Len(t, restored.AudioNotes, 1)
	assert.Empty(t, restored.AudioNotes[0].URI)

	profile, ok := targetStore.ServiceInfo()
	require.True(t, ok)
	assert.Equal(t, "Adaeze", profile.Name)
}

func TestBackupService_Import_MergeSkipsExistingIds(t *testing.T) {
	source, sourceStore := newBackupFixture()
	seedEntry(sourceStore, "entry_1", "one", nil)
	seedEntry(sourceStore, "entry_2", "two", nil)
	data, err := json.Marshal(source.Export())
	require.NoError(t, err)

	target, targetStore := newBackupFixture()
	seedEntry(targetStore, "entry_1", "local copy", nil)

	result := target.Import(data, models.ImportModeMerge)
	require.True(t, result.Success)
	assert.Equal(t, 1, result.Stats.EntriesImported)
	assert.Equal(t, 1, result.Stats.EntriesSkipped)

	// The local record wins on id collision.
	kept, _ := targetStore.Entry("entry_1")
	assert.Equal(t, "local copy", kept.Title)

	// A second merge of the same document imports nothing new.
	result = target.Import(data, models.ImportModeMerge)
	require.True(t, result.Success)
	assert.Equal(t, 0, result.Stats.EntriesImported)
	assert.Equal(t, 2, result.Stats.EntriesSkipped)
}

func TestBackupService_Import_Replace_DropsLocalOnlyEntries(t *testing.T) {
	source, sourceStore := newBackupFixture()
	seedEntry(sourceStore, "entry_1", "one", nil)
	data, err := json.Marshal(source.Export())
	require.NoError(t, err)

	target, targetStore := newBackupFixture()
	seedEntry(targetStore, "entry_local", "only here", nil)

	result := target.Import(data, models.ImportModeReplace)
	require.True(t, result.Success)

	_, ok := targetStore.Entry("entry_local")
	assert.False(t, ok)
	assert.Equal(t, 1, targetStore.EntriesCount())
}

func TestBackupService_Import_InvalidJSON(t *testing.T) {
	bs, store := newBackupFixture()
	seedEntry(store, "entry_1", "keep me", nil)

	result := bs.Import([]byte("definitely not json"), models.ImportModeMerge)
	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "invalid backup document")

	// State untouched on failure.
	assert.Equal(t, 1, store.EntriesCount())
}

func TestBackupService_Import_MissingEntriesSection(t *testing.T) {
	bs, _ := newBackupFixture()
	result := bs.Import([]byte(`{"metadata":{}}`), models.ImportModeMerge)
	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "missing entries")
}

func TestBackupService_Import_NullEntryElement(t *testing.T) {
	bs, store := newBackupFixture()
	seedEntry(store, "entry_1", "keep me", nil)

	// JSON null decodes to a nil pointer inside the entries array.
	result := bs.Import([]byte(`{"entries":[null]}`), models.ImportModeReplace)
	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "null entry")

	// State untouched on failure.
	assert.Equal(t, 1, store.EntriesCount())
}

func TestBackupService_Import_NullBadgeElement(t *testing.T) {
	bs, store := newBackupFixture()

	result := bs.Import([]byte(`{"entries":[],"badges":[null]}`), models.ImportModeMerge)
	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "null badge")

	// A nil badge must never reach the store, where the next award
	// sweep would dereference it.
	assert.Empty(t, store.Badges())
	assert.False(t, store.HasBadge(""))
}

func TestBackupService_Import_UnknownMode(t *testing.T) {
	bs, _ := newBackupFixture()
	result := bs.Import([]byte(`{"entries":[]}`), "append")
	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "unknown import mode")
}

func TestBackupService_Import_OptionalSectionsAbsent(t *testing.T) {
	bs, store := newBackupFixture()
	store.PutSetting("theme", json.RawMessage(`"dark"`))

	result := bs.Import([]byte(`{"entries":[]}`), models.ImportModeMerge)
	require.True(t, result.Success)
	assert.False(t, result.Stats.SettingsImported)

	// Absent sections leave local state alone.
	_, ok := store.Setting("theme")
	assert.True(t, ok)
}

func TestBackupService_Import_DefaultsSyncStatus(t *testing.T) {
	bs, store := newBackupFixture()

	doc := []byte(`{"entries":[{"id":"entry_x","title":"imported","date":"2026-04-01"}]}`)
	result := bs.Import(doc, models.ImportModeMerge)
	require.True(t, result.Success)

	restored, ok := store.Entry("entry_x")
	require.True(t, ok)
	assert.Equal(t, models.SyncLocal, restored.SyncStatus)
	assert.NotNil(t, restored.Tags)
}
