package schedule

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"agendad/internal/models"
	"agendad/internal/providers"
)

// The upstream feed is only ICS-shaped; single records are routinely
// malformed and must be skipped without failing the rest of the document,
// so records are cut on the raw VEVENT marker and fields are extracted by
// pattern search instead of a strict calendar parser.
const recordMarker = "BEGIN:VEVENT"

const feedTimeLayout = "20060102T150405"

var (
	reFeedStart   = regexp.MustCompile(`DTSTART(?:;TZID=[^:\r\n]+)?:(\d{8}T\d{6})`)
	reFeedEnd     = regexp.MustCompile(`DTEND(?:;TZID=[^:\r\n]+)?:(\d{8}T\d{6})`)
	reFeedSummary = regexp.MustCompile(`SUMMARY:(.*)`)
	reFeedDesc    = regexp.MustCompile(`DESCRIPTION:(.*)`)
)

// Ingestor turns raw feed text into canonical events for one cohort.
// Pure function of the input text plus the current rename mapping; output
// keeps feed order, callers sort before display.
type Ingestor struct {
	loc     *time.Location
	renames *models.RenameStore
	logger  providers.Logger
}

func NewIngestor(loc *time.Location, renames *models.RenameStore, logger providers.Logger) *Ingestor {
	return &Ingestor{loc: loc, renames: renames, logger: logger}
}

func (in *Ingestor) Parse(cohort models.Cohort, raw string) []models.Event {
	events := make([]models.Event, 0)

	for _, block := range strings.Split(raw, recordMarker) {
		if !strings.Contains(block, "DTSTART") {
			continue
		}
		ev, err := in.parseRecord(cohort, block)
		if err != nil {
			in.logger.Warnf(providers.TypeApp, "Feed %s: skipping record: %s", cohort, err)
			continue
		}
		events = append(events, ev)
	}

	return events
}

func (in *Ingestor) parseRecord(cohort models.Cohort, block string) (models.Event, error) {
	var ev models.Event

	summary := reFeedSummary.FindStringSubmatch(block)
	if summary == nil {
		return ev, errors.New("missing SUMMARY")
	}
	startMatch := reFeedStart.FindStringSubmatch(block)
	if startMatch == nil {
		return ev, errors.New("missing DTSTART")
	}
	endMatch := reFeedEnd.FindStringSubmatch(block)
	if endMatch == nil {
		return ev, errors.New("missing DTEND")
	}

	start, err := time.ParseInLocation(feedTimeLayout, startMatch[1], in.loc)
	if err != nil {
		return ev, err
	}
	end, err := time.ParseInLocation(feedTimeLayout, endMatch[1], in.loc)
	if err != nil {
		return ev, err
	}
	if !start.Before(end) {
		return ev, errors.New("start is not before end")
	}

	ev.OriginalSubject = strings.TrimSpace(trimLine(summary[1]))
	if ev.OriginalSubject == "" {
		return ev, errors.New("empty SUMMARY")
	}
	ev.DisplaySubject = in.renames.Display(cohort, ev.OriginalSubject)
	ev.Start = start
	ev.End = end

	if desc := reFeedDesc.FindStringSubmatch(block); desc != nil {
		ev.Description = strings.TrimSpace(trimLine(desc[1]))
	}

	return ev, nil
}

func trimLine(s string) string {
	return strings.TrimRight(s, "\r")
}
