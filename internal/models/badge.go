package models

// Badge is an awarded achievement. At most one instance per definition
// id is ever stored.
type Badge struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Icon        string `json:"icon"`
	AwardedAt   string `json:"awardedAt"`
	Viewed      bool   `json:"viewed"`
}

// BadgeProgress is the single row of usage counters badge conditions
// are evaluated against.
type BadgeProgress struct {
	EntriesCount   int            `json:"entriesCount"`
	StreakDays     int            `json:"streakDays"`
	LastEntryDate  string         `json:"lastEntryDate"`
	TagsUsed       map[string]int `json:"tagsUsed"`
	SearchCount    int            `json:"searchCount"`
	ExportCount    int            `json:"exportCount"`
	FirstEntryDate string         `json:"firstEntryDate"`
}

// Clone returns a deep copy so callers can compute a new progress state
// without mutating the stored row in place.
func (p *BadgeProgress) Clone() *BadgeProgress {
	cp := *p
	cp.TagsUsed = make(map[string]int, len(p.TagsUsed))
	for k, v := range p.TagsUsed {
		cp.TagsUsed[k] = v
	}
	return &cp
}
