package models

// Mood tags a user can attach to an entry.
const (
	MoodHappy      = "happy"
	MoodSad        = "sad"
	MoodExcited    = "excited"
	MoodThoughtful = "thoughtful"
	MoodAnxious    = "anxious"
	MoodGrateful   = "grateful"
	MoodCalm       = "calm"
	MoodTired      = "tired"
)

// Sync states. Nothing consumes these yet, but the demotion rule
// (synced -> pendingSync on update) is part of the record contract.
const (
	SyncLocal   = "local"
	SyncPending = "pendingSync"
	SyncSynced  = "synced"
)

// AudioNote is a voice recording attached to an entry. URI points at a
// file owned by the media service.
type AudioNote struct {
	ID       string  `json:"id"`
	URI      string  `json:"uri"`
	Name     string  `json:"name"`
	Date     string  `json:"date"`
	Duration float64 `json:"duration"`
}

// JournalEntry is one day's record. Date fields are kept as the raw
// ISO-8601 strings they were stored with; consumers re-parse defensively
// because imported or legacy data may carry garbage (see ValidateAndRepair).
type JournalEntry struct {
	ID         string      `json:"id"`
	Title      string      `json:"title"`
	Content    string      `json:"content"`
	Date       string      `json:"date"`
	Mood       string      `json:"mood,omitempty"`
	Tags       []string    `json:"tags"`
	Images     []string    `json:"images"`
	AudioNotes []AudioNote `json:"audioNotes"`
	CreatedAt  string      `json:"createdAt"`
	UpdatedAt  string      `json:"updatedAt"`
	SyncStatus string      `json:"syncStatus"`
}

// MediaPaths returns every file path the entry references.
func (e *JournalEntry) MediaPaths() []string {
	paths := make([]string, 0, len(e.Images)+len(e.AudioNotes))
	paths = append(paths, e.Images...)
	for _, a := range e.AudioNotes {
		if a.URI != "" {
			paths = append(paths, a.URI)
		}
	}
	return paths
}

// Matches reports whether the entry contains the (already lowercased)
// query in its title, content or any tag.
func (e *JournalEntry) Matches(loweredQuery string) bool {
	if containsFold(e.Title, loweredQuery) || containsFold(e.Content, loweredQuery) {
		return true
	}
	for _, tag := range e.Tags {
		if containsFold(tag, loweredQuery) {
			return true
		}
	}
	return false
}
