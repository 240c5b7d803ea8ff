package models

import "sync"

// OverlayStore holds the persisted edit patch-set:
// cohort → ISO date → event key → edit. Writing the same key twice is
// last-write-wins.
type OverlayStore struct {
	mu   sync.RWMutex
	data map[string]map[string]map[EventKey]Edit
}

func NewOverlayStore() *OverlayStore {
	return &OverlayStore{data: make(map[string]map[string]map[EventKey]Edit)}
}

func (s *OverlayStore) Set(cohort Cohort, date string, key EventKey, edit Edit) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ck := cohort.String()
	if s.data[ck] == nil {
		s.data[ck] = make(map[string]map[EventKey]Edit)
	}
	if s.data[ck][date] == nil {
		s.data[ck][date] = make(map[EventKey]Edit)
	}
	s.data[ck][date][key] = edit
}

func (s *OverlayStore) Remove(cohort Cohort, date string, key EventKey) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	byDate, ok := s.data[cohort.String()]
	if !ok {
		return false
	}
	edits, ok := byDate[date]
	if !ok {
		return false
	}
	if _, ok = edits[key]; !ok {
		return false
	}
	delete(edits, key)
	if len(edits) == 0 {
		delete(byDate, date)
	}
	return true
}

// Snapshot returns a deep copy of one cohort's overlay so resolution works
// against a stable view while administrative writes continue.
func (s *OverlayStore) Snapshot(cohort Cohort) map[string]map[EventKey]Edit {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byDate, ok := s.data[cohort.String()]
	if !ok {
		return nil
	}
	out := make(map[string]map[EventKey]Edit, len(byDate))
	for date, edits := range byDate {
		cp := make(map[EventKey]Edit, len(edits))
		for k, e := range edits {
			cp[k] = e
		}
		out[date] = cp
	}
	return out
}

func (s *OverlayStore) GetData() map[string]map[string]map[EventKey]Edit {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]map[string]map[EventKey]Edit, len(s.data))
	for cohort, byDate := range s.data {
		cpDates := make(map[string]map[EventKey]Edit, len(byDate))
		for date, edits := range byDate {
			cp := make(map[EventKey]Edit, len(edits))
			for k, e := range edits {
				cp[k] = e
			}
			cpDates[date] = cp
		}
		out[cohort] = cpDates
	}
	return out
}

func (s *OverlayStore) PutData(data map[string]map[string]map[EventKey]Edit) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if data == nil {
		data = make(map[string]map[string]map[EventKey]Edit)
	}
	s.data = data
}
