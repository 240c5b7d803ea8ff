package schedule

import (
	"strings"
	"time"

	"github.com/teambition/rrule-go"

	"agendad/internal/models"
	"agendad/internal/providers"
	"agendad/internal/structures"
)

// Injector materializes the weekly recurring lesson into a day's event set
// when the user picked a time slot. The weekly policy is expressed as an
// RRULE so the occurrence check shares the feed's calendar vocabulary.
type Injector struct {
	subject string
	windows map[models.SlotChoice][2]string
	rule    *rrule.RRule
	loc     *time.Location
	logger  providers.Logger
}

func NewInjector(conf *structures.Config, loc *time.Location, logger providers.Logger) (*Injector, error) {
	rec := conf.Schedule.Recurring

	// 2000-01-06 is a Thursday; the rule anchors there and repeats weekly.
	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.WEEKLY,
		Byweekday: []rrule.Weekday{rrule.TH},
		Dtstart:   time.Date(2000, time.January, 6, 0, 0, 0, 0, loc),
	})
	if err != nil {
		return nil, err
	}

	return &Injector{
		subject: rec.Subject,
		windows: map[models.SlotChoice][2]string{
			models.SlotMorning:   {rec.MorningStart, rec.MorningEnd},
			models.SlotAfternoon: {rec.AfternoonStart, rec.AfternoonEnd},
		},
		rule:   rule,
		loc:    loc,
		logger: logger,
	}, nil
}

// Inject appends the recurring lesson to dayEvents when date is an
// occurrence day and slot is set. Injection is skipped when any event
// already carries the recurring subject, so a week where the class shows up
// in the raw feed is not double-booked. Pure function of its inputs.
func (inj *Injector) Inject(dayEvents []models.Event, date time.Time, slot models.SlotChoice) []models.Event {
	if inj.subject == "" || slot == models.SlotNone {
		return dayEvents
	}

	window, ok := inj.windows[slot]
	if !ok {
		inj.logger.Warnf(providers.TypeApp, "Recurring lesson: unknown slot %q", slot)
		return dayEvents
	}

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, inj.loc)
	if len(inj.rule.Between(dayStart, dayStart.Add(24*time.Hour-time.Second), true)) == 0 {
		return dayEvents
	}

	for _, ev := range dayEvents {
		if strings.EqualFold(ev.DisplaySubject, inj.subject) {
			return dayEvents
		}
	}

	start, err := time.ParseInLocation(overlayTimeLayout, window[0], inj.loc)
	if err != nil {
		inj.logger.Warnf(providers.TypeApp, "Recurring lesson: bad %s window start: %s", slot, err)
		return dayEvents
	}
	end, err := time.ParseInLocation(overlayTimeLayout, window[1], inj.loc)
	if err != nil {
		inj.logger.Warnf(providers.TypeApp, "Recurring lesson: bad %s window end: %s", slot, err)
		return dayEvents
	}

	return append(dayEvents, models.Event{
		OriginalSubject: inj.subject,
		DisplaySubject:  inj.subject,
		Start:           dayStart.Add(time.Duration(start.Hour())*time.Hour + time.Duration(start.Minute())*time.Minute),
		End:             dayStart.Add(time.Duration(end.Hour())*time.Hour + time.Duration(end.Minute())*time.Minute),
		Synthetic:       true,
	})
}
