package models

import json "github.com/goccy/go-json"

// BackupMetadata describes a backup document.
type BackupMetadata struct {
	ExportDate    string `json:"exportDate"`
	AppVersion    string `json:"appVersion"`
	ExportVersion string `json:"exportVersion"`
	EntriesCount  int    `json:"entriesCount"`
	BadgesCount   int    `json:"badgesCount"`
	MediaNote     string `json:"mediaNote"`
}

// AudioNotePlaceholder stands in for an audio note in a backup. The
// recording itself never leaves the device; URI is always null.
type AudioNotePlaceholder struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Date             string  `json:"date"`
	OriginalFilename string  `json:"originalFilename"`
	URI              *string `json:"uri"`
	IsPlaceholder    bool    `json:"isPlaceholder"`
}

// BackupEntry is a journal entry with media stripped down to filename
// placeholders. Images is always an empty array in an exported document;
// the original basenames survive in ImageFilenames for reference only.
type BackupEntry struct {
	ID                 string                 `json:"id"`
	Title              string                 `json:"title"`
	Content            string                 `json:"content"`
	Date               string                 `json:"date"`
	Mood               string                 `json:"mood,omitempty"`
	Tags               []string               `json:"tags"`
	Images             []string               `json:"images"`
	OriginalImageCount int                    `json:"originalImageCount"`
	ImageFilenames     []string               `json:"imageFilenames"`
	AudioNotes         []AudioNotePlaceholder `json:"audioNotes"`
	CreatedAt          string                 `json:"createdAt"`
	UpdatedAt          string                 `json:"updatedAt"`
	SyncStatus         string                 `json:"syncStatus"`
}

// BackupDocument is the portable export format. Entries is mandatory on
// import; every other section is optional.
type BackupDocument struct {
	Metadata      BackupMetadata             `json:"metadata"`
	Entries       []*BackupEntry             `json:"entries"`
	Settings      map[string]json.RawMessage `json:"settings,omitempty"`
	ServiceInfo   *ServiceProfile            `json:"serviceInfo,omitempty"`
	Badges        []*Badge                   `json:"badges,omitempty"`
	BadgeProgress *BadgeProgress             `json:"badgeProgress,omitempty"`
}

// ImportStats reports what an import actually touched.
type ImportStats struct {
	EntriesImported     int  `json:"entriesImported"`
	EntriesSkipped      int  `json:"entriesSkipped"`
	SettingsImported    bool `json:"settingsImported"`
	ServiceInfoImported bool `json:"serviceInfoImported"`
	BadgesImported      bool `json:"badgesImported"`
}

// ImportResult is the structured outcome of an import. A malformed
// document produces Success=false with Error set; it never panics or
// partially applies.
type ImportResult struct {
	Success bool         `json:"success"`
	Error   string       `json:"error,omitempty"`
	Stats   *ImportStats `json:"stats"`
}

// Import modes.
const (
	ImportModeReplace = "replace"
	ImportModeMerge   = "merge"
)
