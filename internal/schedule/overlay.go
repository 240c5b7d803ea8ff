package schedule

import (
	"errors"
	"time"

	"agendad/internal/models"
	"agendad/internal/providers"
)

const (
	overlayDateLayout = "2006-01-02"
	overlayTimeLayout = "15:04"
)

// ApplyOverlay rewrites the renamed event list with one cohort's edit
// patch-set: deletes suppress matched events, modifies replace their display
// fields, inserts append synthetic events built from the edit's stored
// times and the overlay's date key. Output order is unspecified; callers
// re-sort downstream. A malformed insert is skipped with a warning, the
// rest of the overlay still applies.
func ApplyOverlay(events []models.Event, overlay map[string]map[models.EventKey]models.Edit, loc *time.Location, logger providers.Logger) []models.Event {
	if len(overlay) == 0 {
		return events
	}

	out := make([]models.Event, 0, len(events))
	for _, ev := range events {
		edit, ok := overlay[ev.Date()][ev.Key()]
		if !ok {
			out = append(out, ev)
			continue
		}
		switch edit.Kind {
		case models.EditDelete:
			// suppressed
		case models.EditModify:
			mod := ev
			if edit.Subject != "" {
				mod.DisplaySubject = edit.Subject
			}
			if edit.Description != "" {
				mod.Description = edit.Description
			}
			out = append(out, mod)
		default:
			// Insert edits never match a source event; pass through.
			out = append(out, ev)
		}
	}

	for date, edits := range overlay {
		for key, edit := range edits {
			if edit.Kind != models.EditInsert {
				continue
			}
			ev, err := buildInsert(date, key, edit, loc)
			if err != nil {
				logger.Warnf(providers.TypeApp, "Overlay %s %s: skipping insert: %s", date, key, err)
				continue
			}
			out = append(out, ev)
		}
	}

	return out
}

func buildInsert(date string, key models.EventKey, edit models.Edit, loc *time.Location) (models.Event, error) {
	var ev models.Event

	day, err := time.ParseInLocation(overlayDateLayout, date, loc)
	if err != nil {
		return ev, err
	}
	start, err := time.ParseInLocation(overlayTimeLayout, edit.StartTime, loc)
	if err != nil {
		return ev, err
	}
	end, err := time.ParseInLocation(overlayTimeLayout, edit.EndTime, loc)
	if err != nil {
		return ev, err
	}

	subject := edit.Subject
	if subject == "" {
		subject = key.Subject
	}

	ev = models.Event{
		OriginalSubject: subject,
		DisplaySubject:  subject,
		Start:           day.Add(time.Duration(start.Hour())*time.Hour + time.Duration(start.Minute())*time.Minute),
		End:             day.Add(time.Duration(end.Hour())*time.Hour + time.Duration(end.Minute())*time.Minute),
		Description:     edit.Description,
		Synthetic:       true,
	}
	if !ev.Start.Before(ev.End) {
		return ev, errInsertTimes
	}
	return ev, nil
}

var errInsertTimes = errors.New("insert start is not before end")
