package schedule

import (
	"strings"
	"time"

	"agendad/internal/models"
	"agendad/internal/structures"
)

// Selector filters a resolved event list down to one day or one Mon–Fri
// week. A day holding nothing but break subjects is normalized to "no
// classes" instead of listing the break.
type Selector struct {
	breaks map[string]struct{}
	loc    *time.Location
}

func NewSelector(conf *structures.Config, loc *time.Location) *Selector {
	breaks := make(map[string]struct{}, len(conf.Schedule.BreakSubjects))
	for _, s := range conf.Schedule.BreakSubjects {
		breaks[strings.ToLower(s)] = struct{}{}
	}
	return &Selector{breaks: breaks, loc: loc}
}

func (s *Selector) SelectDay(events []models.Event, date time.Time) []models.Event {
	iso := date.In(s.loc).Format("2006-01-02")

	var day []models.Event
	for _, ev := range events {
		if ev.Date() == iso {
			day = append(day, ev)
		}
	}
	if len(day) > 0 && s.onlyBreaks(day) {
		return nil
	}
	return day
}

// SelectWeek returns the five weekday event sets of the week containing
// date, Monday first.
func (s *Selector) SelectWeek(events []models.Event, date time.Time) [][]models.Event {
	start := StartOfWeek(date.In(s.loc))

	week := make([][]models.Event, 5)
	for i := range week {
		week[i] = s.SelectDay(events, start.AddDate(0, 0, i))
	}
	return week
}

func (s *Selector) onlyBreaks(events []models.Event) bool {
	if len(s.breaks) == 0 {
		return false
	}
	for _, ev := range events {
		if _, ok := s.breaks[strings.ToLower(ev.DisplaySubject)]; !ok {
			return false
		}
	}
	return true
}

// StartOfWeek truncates a date to the ISO Monday of its week.
func StartOfWeek(date time.Time) time.Time {
	wd := int(date.Weekday())
	if wd == 0 {
		wd = 7
	}
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return day.AddDate(0, 0, -(wd - 1))
}
