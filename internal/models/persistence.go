package models

import json "github.com/goccy/go-json"

// CurrentStoreVersion is the on-disk snapshot format version.
const CurrentStoreVersion = 2

// StoreV2 is the persistence envelope with an explicit version field.
// Every logical record keeps its own key so the snapshot stays readable
// record by record.
type StoreV2 struct {
	Version         int                        `json:"version"`
	Entries         []*JournalEntry            `json:"entries"`
	Settings        map[string]json.RawMessage `json:"settings"`
	ServiceInfo     *ServiceProfile            `json:"serviceInfo,omitempty"`
	Badges          []*Badge                   `json:"badges"`
	BadgeProgress   *BadgeProgress             `json:"badgeProgress,omitempty"`
	LockStatus      *LockStatus                `json:"lockStatus,omitempty"`
	TimeCheckpoints []*TimeCheckpoint          `json:"timeCheckpoints"`
}

// Snapshot captures the full store state for persistence.
func (s *Store) Snapshot() *StoreV2 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := &StoreV2{
		Version:         CurrentStoreVersion,
		Entries:         make([]*JournalEntry, len(s.entries)),
		Settings:        make(map[string]json.RawMessage, len(s.settings)),
		Badges:          make([]*Badge, len(s.badges)),
		TimeCheckpoints: make([]*TimeCheckpoint, len(s.checkpoints)),
	}
	copy(snap.Entries, s.entries)
	copy(snap.Badges, s.badges)
	copy(snap.TimeCheckpoints, s.checkpoints)
	for k, v := range s.settings {
		snap.Settings[k] = v
	}
	if s.serviceInfo != nil {
		cp := *s.serviceInfo
		snap.ServiceInfo = &cp
	}
	if s.progress != nil {
		snap.BadgeProgress = s.progress.Clone()
	}
	if s.lockStatus != nil {
		cp := *s.lockStatus
		snap.LockStatus = &cp
	}
	return snap
}

// Load replaces the full store state from a snapshot. Nil sections fall
// back to empty values so a partial or legacy snapshot still loads.
func (s *Store) Load(snap *StoreV2) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = snap.Entries
	s.settings = snap.Settings
	if s.settings == nil {
		s.settings = make(map[string]json.RawMessage)
	}
	s.serviceInfo = snap.ServiceInfo
	s.badges = snap.Badges
	s.progress = snap.BadgeProgress
	if s.progress == nil {
		s.progress = &BadgeProgress{TagsUsed: make(map[string]int)}
	}
	if s.progress.TagsUsed == nil {
		s.progress.TagsUsed = make(map[string]int)
	}
	s.lockStatus = snap.LockStatus
	s.checkpoints = snap.TimeCheckpoints
}
