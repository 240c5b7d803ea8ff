package models

import "sync"

type SlotChoice string

const (
	SlotNone      SlotChoice = ""
	SlotMorning   SlotChoice = "morning"
	SlotAfternoon SlotChoice = "afternoon"
)

// UserPreference is the per-chat record consumed by agenda queries and the
// reminder tick.
type UserPreference struct {
	ChatID          int64      `json:"chat_id"`
	Cohort          Cohort     `json:"cohort"`
	RecurringSlot   SlotChoice `json:"recurring_slot,omitempty"`
	ReminderEnabled bool       `json:"reminder_enabled,omitempty"`
	ReminderTime    string     `json:"reminder_time,omitempty"`
}

type PrefStore struct {
	mu   sync.RWMutex
	data map[int64]*UserPreference
}

func NewPrefStore() *PrefStore {
	return &PrefStore{data: make(map[int64]*UserPreference)}
}

func (s *PrefStore) Get(chatID int64) (UserPreference, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.data[chatID]
	if !ok {
		return UserPreference{}, false
	}
	return *p, true
}

func (s *PrefStore) Put(pref UserPreference) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := pref
	s.data[pref.ChatID] = &cp
}

func (s *PrefStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// RemindersAt returns the preferences whose reminder fires at the given
// wall-clock minute ("15:04").
func (s *PrefStore) RemindersAt(tm string) []UserPreference {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []UserPreference
	for _, p := range s.data {
		if p.ReminderEnabled && p.ReminderTime == tm {
			out = append(out, *p)
		}
	}
	return out
}

func (s *PrefStore) GetData() map[int64]*UserPreference {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[int64]*UserPreference, len(s.data))
	for id, p := range s.data {
		cp := *p
		out[id] = &cp
	}
	return out
}

func (s *PrefStore) PutData(data map[int64]*UserPreference) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if data == nil {
		data = make(map[int64]*UserPreference)
	}
	s.data = data
}
