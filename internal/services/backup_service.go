package services

import (
	"path/filepath"
	"time"

	json "github.com/goccy/go-json"

	"cjd/internal/models"
	"cjd/internal/providers"
)

const (
	backupExportVersion = "2.0"
	backupMediaNote     = "Media files are not included in backups. Images and audio recordings stay on the device and must be transferred separately."
)

type BackupServiceInterface interface {
	Export() *models.BackupDocument
	Import(data []byte, mode string) *models.ImportResult
}

// BackupService is the import/export codec over the full local state.
// Exports are lossy by design: media bytes never leave the device, only
// filename placeholders do, and imports never re-attach media.
type BackupService struct {
	store      *models.Store
	badges     BadgeServiceInterface
	appVersion string
	logger     providers.Logger
}

func NewBackupService(store *models.Store, badges BadgeServiceInterface, logger providers.Logger) BackupServiceInterface {
	return &BackupService{
		store:      store,
		badges:     badges,
		appVersion: AppVersion,
		logger:     logger,
	}
}

// Export assembles a portable document from every logical record. The
// result is valid JSON even with zero entries.
func (b *BackupService) Export() *models.BackupDocument {
	entries := b.store.Entries()
	badges := b.store.Badges()

	doc := &models.BackupDocument{
		Metadata: models.BackupMetadata{
			ExportDate:    models.FormatInstant(time.Now()),
			AppVersion:    b.appVersion,
			ExportVersion: backupExportVersion,
			EntriesCount:  len(entries),
			BadgesCount:   len(badges),
			MediaNote:     backupMediaNote,
		},
		Entries:  make([]*models.BackupEntry, 0, len(entries)),
		Settings: b.store.Settings(),
		Badges:   badges,
	}
	if profile, ok := b.store.ServiceInfo(); ok {
		doc.ServiceInfo = profile
	}
	progress := b.store.Progress()
	doc.BadgeProgress = progress

	for _, e := range entries {
		doc.Entries = append(doc.Entries, stripMedia(e))
	}

	b.badges.RecordExport()
	b.logger.Infof(providers.TypeStore, "Exported %d entries, %d badges", len(entries), len(badges))
	return doc
}

// stripMedia converts an entry to its backup form: images replaced by
// basename placeholders, audio notes by uri-less placeholder records.
func stripMedia(e *models.JournalEntry) *models.BackupEntry {
	out := &models.BackupEntry{
		ID:                 e.ID,
		Title:              e.Title,
		Content:            e.Content,
		Date:               e.Date,
		Mood:               e.Mood,
		Tags:               e.Tags,
		Images:             []string{},
		OriginalImageCount: len(e.Images),
		ImageFilenames:     make([]string, 0, len(e.Images)),
		AudioNotes:         make([]models.AudioNotePlaceholder, 0, len(e.AudioNotes)),
		CreatedAt:          e.CreatedAt,
		UpdatedAt:          e.UpdatedAt,
		SyncStatus:         e.SyncStatus,
	}
	if out.Tags == nil {
		out.Tags = []string{}
	}
	for _, img := range e.Images {
		out.ImageFilenames = append(out.ImageFilenames, filepath.Base(img))
	}
	for _, a := range e.AudioNotes {
		out.AudioNotes = append(out.AudioNotes, models.AudioNotePlaceholder{
			ID:               a.ID,
			Name:             a.Name,
			Date:             a.Date,
			OriginalFilename: filepath.Base(a.URI),
			URI:              nil,
			IsPlaceholder:    true,
		})
	}
	return out
}

// Import parses and applies a backup document. Malformed input comes
// back as a structured failure, never a panic. "replace" swaps the
// whole entry collection; "merge" imports only ids not already present.
// Singleton sections (settings, serviceInfo, badges, badgeProgress)
// always replace when present in the document, regardless of mode.
func (b *BackupService) Import(data []byte, mode string) *models.ImportResult {
	var doc models.BackupDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return &models.ImportResult{Success: false, Error: "invalid backup document: " + err.Error()}
	}
	if doc.Entries == nil {
		return &models.ImportResult{Success: false, Error: "invalid backup document: missing entries"}
	}
	if mode != models.ImportModeReplace && mode != models.ImportModeMerge {
		return &models.ImportResult{Success: false, Error: "unknown import mode: " + mode}
	}

	stats := &models.ImportStats{}

	// JSON null decodes to a nil pointer and would slip past the
	// section checks above, so reject it before touching the store.
	for _, be := range doc.Entries {
		if be == nil {
			return &models.ImportResult{Success: false, Error: "invalid backup document: null entry"}
		}
	}
	for _, badge := range doc.Badges {
		if badge == nil {
			return &models.ImportResult{Success: false, Error: "invalid backup document: null badge"}
		}
	}

	incoming := make([]*models.JournalEntry, 0, len(doc.Entries))
	for _, be := range doc.Entries {
		incoming = append(incoming, restoreEntry(be))
	}

	switch mode {
	case models.ImportModeReplace:
		b.store.ReplaceEntries(incoming)
		stats.EntriesImported = len(incoming)
	case models.ImportModeMerge:
		existing := make(map[string]struct{})
		for _, e := range b.store.Entries() {
			existing[e.ID] = struct{}{}
		}
		for _, e := range incoming {
			if _, dup := existing[e.ID]; dup {
				stats.EntriesSkipped++
				continue
			}
			b.store.UpsertEntry(e)
			stats.EntriesImported++
		}
	}

	if doc.Settings != nil {
		b.store.ReplaceSettings(doc.Settings)
		stats.SettingsImported = true
	}
	if doc.ServiceInfo != nil {
		b.store.PutServiceInfo(doc.ServiceInfo)
		stats.ServiceInfoImported = true
	}
	if doc.Badges != nil {
		b.store.ReplaceBadges(doc.Badges)
		stats.BadgesImported = true
	}
	if doc.BadgeProgress != nil {
		if doc.BadgeProgress.TagsUsed == nil {
			doc.BadgeProgress.TagsUsed = make(map[string]int)
		}
		b.store.PutProgress(doc.BadgeProgress)
	}

	b.logger.Infof(providers.TypeStore, "Import (%s): %d imported, %d skipped", mode, stats.EntriesImported, stats.EntriesSkipped)
	return &models.ImportResult{Success: true, Stats: stats}
}

// restoreEntry converts a backup entry back to a journal entry. Media
// stays stripped: images come back empty and audio notes keep no uri.
func restoreEntry(be *models.BackupEntry) *models.JournalEntry {
	e := &models.JournalEntry{
		ID:         be.ID,
		Title:      be.Title,
		Content:    be.Content,
		Date:       be.Date,
		Mood:       be.Mood,
		Tags:       be.Tags,
		Images:     []string{},
		AudioNotes: make([]models.AudioNote, 0, len(be.AudioNotes)),
		CreatedAt:  be.CreatedAt,
		UpdatedAt:  be.UpdatedAt,
		SyncStatus: be.SyncStatus,
	}
	if e.Tags == nil {
		e.Tags = []string{}
	}
	if e.SyncStatus == "" {
		e.SyncStatus = models.SyncLocal
	}
	for _, a := range be.AudioNotes {
		e.AudioNotes = append(e.AudioNotes, models.AudioNote{
			ID:   a.ID,
			Name: a.Name,
			Date: a.Date,
		})
	}
	return e
}
