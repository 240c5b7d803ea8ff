package models

import (
	"errors"
	"sort"
	"strings"
	"time"
)

// Cohort identifies one (course, stream) pair. Every persisted layer and
// every cache entry is keyed by it; state of distinct cohorts is independent.
type Cohort struct {
	Course string `json:"course"`
	Stream string `json:"stream"`
}

func (c Cohort) String() string {
	return c.Course + ":" + c.Stream
}

// Event is one scheduled occurrence. OriginalSubject is the name as it
// appears in the upstream feed and stays immutable through the pipeline:
// renames, overlay lookups and homework joins all key on it.
type Event struct {
	OriginalSubject string    `json:"original_subject"`
	DisplaySubject  string    `json:"display_subject"`
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
	Description     string    `json:"description"`
	Synthetic       bool      `json:"synthetic,omitempty"`
}

// Key returns the overlay identity of the event within its day.
func (e Event) Key() EventKey {
	return EventKey{Subject: e.OriginalSubject, Time: e.Start.Format("15:04")}
}

// Date returns the event's day in ISO form in its own location.
func (e Event) Date() string {
	return e.Start.Format("2006-01-02")
}

// EventKey identifies an event inside one day: original subject plus the
// wall-clock start time ("15:04"). Structured on purpose; the textual form
// is only used when the key ends up inside a JSON map.
type EventKey struct {
	Subject string
	Time    string
}

func (k EventKey) String() string {
	return k.Subject + "|" + k.Time
}

func (k EventKey) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *EventKey) UnmarshalText(text []byte) error {
	i := strings.LastIndexByte(string(text), '|')
	if i < 0 {
		return errors.New("event key: missing delimiter")
	}
	k.Subject = string(text[:i])
	k.Time = string(text[i+1:])
	return nil
}

// HomeworkKey joins homework to events: original subject plus ISO date.
type HomeworkKey struct {
	Subject string
	Date    string
}

func (k HomeworkKey) String() string {
	return k.Subject + "|" + k.Date
}

func (k HomeworkKey) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *HomeworkKey) UnmarshalText(text []byte) error {
	i := strings.LastIndexByte(string(text), '|')
	if i < 0 {
		return errors.New("homework key: missing delimiter")
	}
	k.Subject = string(text[:i])
	k.Date = string(text[i+1:])
	return nil
}

// SortEvents orders events by start time, then by original subject for
// equal slots. Feed order is not sorted; callers sort before display.
func SortEvents(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Start.Equal(events[j].Start) {
			return events[i].OriginalSubject < events[j].OriginalSubject
		}
		return events[i].Start.Before(events[j].Start)
	})
}
