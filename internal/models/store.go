package models

import (
	"sync"

	json "github.com/goccy/go-json"
)

// Store holds every logical record of the journal in memory behind one
// RWMutex: the entry collection, the settings blob, the service profile,
// badges, badge progress and the lock engine's cached state. Each method
// is an atomic operation on one logical record; cross-record flows
// (import, export) compose them. Snapshot/Load bridge to the persistence
// layer.
type Store struct {
	mu          sync.RWMutex
	entries     []*JournalEntry
	settings    map[string]json.RawMessage
	serviceInfo *ServiceProfile
	badges      []*Badge
	progress    *BadgeProgress
	lockStatus  *LockStatus
	checkpoints []*TimeCheckpoint
}

func NewStore() *Store {
	return &Store{
		settings: make(map[string]json.RawMessage),
		progress: &BadgeProgress{TagsUsed: make(map[string]int)},
	}
}

// Entries returns a copy of the collection slice. Records are shared
// pointers; mutations must go through Upsert with a fresh record.
func (s *Store) Entries() []*JournalEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*JournalEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

func (s *Store) EntriesCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *Store) Entry(id string) (*JournalEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.entries {
		if e.ID == id {
			return e, true
		}
	}
	return nil, false
}

// UpsertEntry replaces the record with the same id or appends a new one.
// Whole-record replacement under the lock is what makes concurrent
// updates last-write-wins rather than torn.
func (s *Store) UpsertEntry(e *JournalEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.entries {
		if existing.ID == e.ID {
			s.entries[i] = e
			return
		}
	}
	s.entries = append(s.entries, e)
}

// RemoveEntry deletes by id and returns the removed record so the caller
// can cascade media cleanup.
func (s *Store) RemoveEntry(id string) (*JournalEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.entries {
		if e.ID == id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return e, true
		}
	}
	return nil, false
}

func (s *Store) ReplaceEntries(entries []*JournalEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = entries
}

func (s *Store) Settings() map[string]json.RawMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]json.RawMessage, len(s.settings))
	for k, v := range s.settings {
		out[k] = v
	}
	return out
}

func (s *Store) Setting(key string) (json.RawMessage, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.settings[key]
	return v, ok
}

func (s *Store) PutSetting(key string, value json.RawMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings[key] = value
}

func (s *Store) ReplaceSettings(settings map[string]json.RawMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if settings == nil {
		settings = make(map[string]json.RawMessage)
	}
	s.settings = settings
}

func (s *Store) ServiceInfo() (*ServiceProfile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.serviceInfo == nil {
		return nil, false
	}
	cp := *s.serviceInfo
	return &cp, true
}

func (s *Store) PutServiceInfo(p *ServiceProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *p
	s.serviceInfo = &cp
}

func (s *Store) Badges() []*Badge {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Badge, len(s.badges))
	copy(out, s.badges)
	return out
}

func (s *Store) HasBadge(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, b := range s.badges {
		if b.ID == id {
			return true
		}
	}
	return false
}

// AddBadge appends the badge unless one with the same id already exists.
// Returns false on the duplicate, keeping awards idempotent.
func (s *Store) AddBadge(b *Badge) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.badges {
		if existing.ID == b.ID {
			return false
		}
	}
	s.badges = append(s.badges, b)
	return true
}

func (s *Store) MarkBadgeViewed(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.badges {
		if b.ID == id {
			b.Viewed = true
			return true
		}
	}
	return false
}

func (s *Store) ReplaceBadges(badges []*Badge) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.badges = badges
}

func (s *Store) Progress() *BadgeProgress {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.progress.Clone()
}

func (s *Store) PutProgress(p *BadgeProgress) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.progress = p.Clone()
}

func (s *Store) LockStatus() (*LockStatus, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lockStatus == nil {
		return nil, false
	}
	cp := *s.lockStatus
	return &cp, true
}

func (s *Store) PutLockStatus(status *LockStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *status
	s.lockStatus = &cp
}

func (s *Store) Checkpoints() []*TimeCheckpoint {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*TimeCheckpoint, len(s.checkpoints))
	copy(out, s.checkpoints)
	return out
}

// AppendCheckpoint adds a tamper-log sample, trimming the log to max
// entries (oldest first out).
func (s *Store) AppendCheckpoint(cp *TimeCheckpoint, max int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checkpoints = append(s.checkpoints, cp)
	if max > 0 && len(s.checkpoints) > max {
		s.checkpoints = s.checkpoints[len(s.checkpoints)-max:]
	}
}
