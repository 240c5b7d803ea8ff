package models

import "sync"

// HomeworkStore maps (cohort, original subject, ISO date) to assignment
// text. It is read fresh on every render, never through the resolution
// cache: homework changes far more often than the schedule itself.
type HomeworkStore struct {
	mu   sync.RWMutex
	data map[string]map[HomeworkKey]string
}

func NewHomeworkStore() *HomeworkStore {
	return &HomeworkStore{data: make(map[string]map[HomeworkKey]string)}
}

func (s *HomeworkStore) Get(cohort Cohort, key HomeworkKey) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.data[cohort.String()]
	if !ok {
		return "", false
	}
	text, ok := m[key]
	return text, ok
}

func (s *HomeworkStore) Set(cohort Cohort, key HomeworkKey, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ck := cohort.String()
	if s.data[ck] == nil {
		s.data[ck] = make(map[HomeworkKey]string)
	}
	s.data[ck][key] = text
}

func (s *HomeworkStore) Delete(cohort Cohort, key HomeworkKey) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.data[cohort.String()]
	if !ok {
		return false
	}
	if _, ok = m[key]; !ok {
		return false
	}
	delete(m, key)
	return true
}

func (s *HomeworkStore) Len(cohort Cohort) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data[cohort.String()])
}

func (s *HomeworkStore) GetData() map[string]map[HomeworkKey]string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]map[HomeworkKey]string, len(s.data))
	for cohort, m := range s.data {
		cp := make(map[HomeworkKey]string, len(m))
		for k, v := range m {
			cp[k] = v
		}
		out[cohort] = cp
	}
	return out
}

func (s *HomeworkStore) PutData(data map[string]map[HomeworkKey]string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if data == nil {
		data = make(map[string]map[HomeworkKey]string)
	}
	s.data = data
}
