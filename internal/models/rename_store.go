package models

import (
	"sort"
	"sync"
)

// RenameStore holds the per-cohort original→display subject mapping.
type RenameStore struct {
	mu   sync.RWMutex
	data map[string]map[string]string
}

func NewRenameStore() *RenameStore {
	return &RenameStore{data: make(map[string]map[string]string)}
}

// Display resolves the display subject for an original one. Total function:
// unmapped subjects resolve to themselves.
func (s *RenameStore) Display(cohort Cohort, original string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if m, ok := s.data[cohort.String()]; ok {
		if display, ok := m[original]; ok && display != "" {
			return display
		}
	}
	return original
}

func (s *RenameStore) Set(cohort Cohort, original, display string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := cohort.String()
	if s.data[key] == nil {
		s.data[key] = make(map[string]string)
	}
	s.data[key][original] = display
}

// OriginalFor recovers the canonical subject for a display name by scanning
// the mapping values. When several originals share one display name the
// scan runs in sorted original order, so the same match wins every time.
func (s *RenameStore) OriginalFor(cohort Cohort, display string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.data[cohort.String()]
	if !ok {
		return display, false
	}
	originals := make([]string, 0, len(m))
	for original := range m {
		originals = append(originals, original)
	}
	sort.Strings(originals)
	for _, original := range originals {
		if m[original] == display {
			return original, true
		}
	}
	return display, false
}

func (s *RenameStore) Snapshot(cohort Cohort) map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.data[cohort.String()]
	if !ok {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (s *RenameStore) GetData() map[string]map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]map[string]string, len(s.data))
	for cohort, m := range s.data {
		cp := make(map[string]string, len(m))
		for k, v := range m {
			cp[k] = v
		}
		out[cohort] = cp
	}
	return out
}

func (s *RenameStore) PutData(data map[string]map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if data == nil {
		data = make(map[string]map[string]string)
	}
	s.data = data
}
