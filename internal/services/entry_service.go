package services

import (
	"fmt"
	"strings"
	"time"

	"cjd/internal/models"
	"cjd/internal/providers"
)

type EntryServiceInterface interface {
	List() []*models.JournalEntry
	Get(id string) (*models.JournalEntry, bool)
	Save(e *models.JournalEntry) string
	Update(id string, patch *models.EntryPatch) bool
	Delete(id string) bool
	ByMonth(month time.Month, year int) []*models.JournalEntry
	Search(query string) []*models.JournalEntry
	ValidateAndRepair() int
}

// EntryService owns the journal-entry collection: date normalization,
// upsert-by-id, the media cascade on delete and the repair pass over
// corrupt records. Contract: no method panics or returns an error across
// this boundary; absent ids come back as false/nil.
//
// Concurrent updates to the same id are last-write-wins with no version
// check. Records are replaced whole under the store lock, so the loser
// is dropped, never merged into a torn record.
type EntryService struct {
	store  *models.Store
	media  MediaServiceInterface
	logger providers.Logger
}

func NewEntryService(store *models.Store, media MediaServiceInterface, logger providers.Logger) EntryServiceInterface {
	return &EntryService{
		store:  store,
		media:  media,
		logger: logger,
	}
}

// List returns the full collection. Storage order carries no meaning;
// callers sort by date for display.
func (es *EntryService) List() []*models.JournalEntry {
	return es.store.Entries()
}

func (es *EntryService) Get(id string) (*models.JournalEntry, bool) {
	return es.store.Entry(id)
}

// Save upserts by id. A missing id is assigned, dates are normalized
// with a now-fallback, and the record always lands with syncStatus
// "local".
func (es *EntryService) Save(e *models.JournalEntry) string {
	now := time.Now()
	record := *e

	if record.ID == "" {
		record.ID = fmt.Sprintf("entry_%d", now.UnixMilli())
	}
	record.Date = normalizeInstant(record.Date, now)
	record.CreatedAt = normalizeInstant(record.CreatedAt, now)
	record.UpdatedAt = models.FormatInstant(now)
	record.SyncStatus = models.SyncLocal
	if record.Tags == nil {
		record.Tags = []string{}
	}
	if record.Images == nil {
		record.Images = []string{}
	}
	if record.AudioNotes == nil {
		record.AudioNotes = []models.AudioNote{}
	}

	es.store.UpsertEntry(&record)
	return record.ID
}

// Update merges a partial patch into an existing entry. Returns false
// when the id is unknown. A record that had reached "synced" drops back
// to "pendingSync" so a future sync pass can pick it up again.
func (es *EntryService) Update(id string, patch *models.EntryPatch) bool {
	existing, ok := es.store.Entry(id)
	if !ok {
		return false
	}

	record := *existing
	if patch.Title != nil {
		record.Title = *patch.Title
	}
	if patch.Content != nil {
		record.Content = *patch.Content
	}
	if patch.Date != nil {
		record.Date = normalizeInstant(*patch.Date, time.Now())
	}
	if patch.Mood != nil {
		record.Mood = *patch.Mood
	}
	if patch.Tags != nil {
		record.Tags = *patch.Tags
	}
	if patch.Images != nil {
		record.Images = *patch.Images
	}
	if patch.AudioNotes != nil {
		record.AudioNotes = *patch.AudioNotes
	}
	record.UpdatedAt = models.FormatInstant(time.Now())
	if record.SyncStatus == models.SyncSynced {
		record.SyncStatus = models.SyncPending
	}

	es.store.UpsertEntry(&record)
	return true
}

// Delete removes the entry and cascades deletion of every media file it
// references. Per-file failures are logged and swallowed; the entry
// record itself is already gone at that point.
func (es *EntryService) Delete(id string) bool {
	removed, ok := es.store.RemoveEntry(id)
	if !ok {
		return false
	}

	for _, path := range removed.MediaPaths() {
		if _, err := es.media.Delete(path); err != nil {
			es.logger.Warnf(providers.TypeMedia, "Failed to delete media file %s for entry %s: %s", path, id, err)
		}
	}
	return true
}

// ByMonth filters by the calendar month/year of each entry's date in
// local time. Entries whose date no longer parses are excluded and
// logged; only ValidateAndRepair mutates them.
func (es *EntryService) ByMonth(month time.Month, year int) []*models.JournalEntry {
	out := make([]*models.JournalEntry, 0)
	for _, e := range es.store.Entries() {
		t, ok := models.ParseInstant(e.Date)
		if !ok {
			es.logger.Warnf(providers.TypeStore, "Entry %s has unparseable date %q, excluded from month filter", e.ID, e.Date)
			continue
		}
		local := t.Local()
		if local.Month() == month && local.Year() == year {
			out = append(out, e)
		}
	}
	return out
}

// Search does case-insensitive substring matching over title, content
// and tags. A blank query returns the full collection.
func (es *EntryService) Search(query string) []*models.JournalEntry {
	query = strings.TrimSpace(query)
	if query == "" {
		return es.List()
	}

	lowered := strings.ToLower(query)
	out := make([]*models.JournalEntry, 0)
	for _, e := range es.store.Entries() {
		if e.Matches(lowered) {
			out = append(out, e)
		}
	}
	return out
}

// ValidateAndRepair scans the collection and backfills missing or
// unparseable timestamps: date from createdAt (or now), createdAt from
// date, updatedAt from createdAt. Running it twice in a row fixes
// nothing the second time.
func (es *EntryService) ValidateAndRepair() int {
	fixed := 0
	now := time.Now()

	for _, e := range es.store.Entries() {
		record := *e
		changed := false

		if _, ok := models.ParseInstant(record.Date); !ok {
			if created, ok := models.ParseInstant(record.CreatedAt); ok {
				record.Date = models.FormatInstant(created)
			} else {
				record.Date = models.FormatInstant(now)
			}
			changed = true
		}
		if _, ok := models.ParseInstant(record.CreatedAt); !ok {
			record.CreatedAt = record.Date
			changed = true
		}
		if _, ok := models.ParseInstant(record.UpdatedAt); !ok {
			record.UpdatedAt = record.CreatedAt
			changed = true
		}

		if changed {
			es.store.UpsertEntry(&record)
			fixed++
			es.logger.Infof(providers.TypeStore, "Repaired timestamps on entry %s", record.ID)
		}
	}
	return fixed
}

// normalizeInstant re-renders a supplied instant in canonical form,
// falling back to now for empty or unparseable input.
func normalizeInstant(value string, now time.Time) string {
	if t, ok := models.ParseInstant(value); ok {
		return models.FormatInstant(t)
	}
	return models.FormatInstant(now)
}
