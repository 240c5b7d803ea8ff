package models

// StorageVersion is the current on-disk snapshot format. Version 1 files
// (no prefs section, string-keyed maps otherwise identical) load as-is with
// an empty preference table.
const StorageVersion = 2

// Storage is the persistence envelope for every mutable layer. One snapshot
// file holds all of it; the resolved schedule cache is deliberately absent,
// it is rebuilt lazily from these layers plus the upstream feed.
type Storage struct {
	Version  int                                     `json:"version"`
	Renames  map[string]map[string]string            `json:"renames"`
	Overlays map[string]map[string]map[EventKey]Edit `json:"overlays"`
	Homework map[string]map[HomeworkKey]string       `json:"homework"`
	Prefs    map[int64]*UserPreference               `json:"prefs,omitempty"`
}
