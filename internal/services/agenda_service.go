package services

import (
	"errors"
	"time"

	json "github.com/goccy/go-json"

	"agendad/internal/models"
	"agendad/internal/providers"
	"agendad/internal/schedule"
	"agendad/internal/schedule/interfaces"
)

type AgendaServiceInterface interface {
	GetDay(cohort models.Cohort, date time.Time, slot models.SlotChoice) ([]string, error)
	GetWeek(cohort models.Cohort, date time.Time, slot models.SlotChoice) ([][]string, error)
	Refresh(cohort models.Cohort) (int, error)
	Resolve(cohort models.Cohort) ([]models.Event, error)
	AddHomework(cohort models.Cohort, subject, date, text string)
	DeleteHomework(cohort models.Cohort, key models.HomeworkKey) bool
	SetRename(cohort models.Cohort, original, display string)
	SetOverlay(cohort models.Cohort, date string, key models.EventKey, edit models.Edit) error
	SetPreference(pref models.UserPreference)
	GetPreference(chatID int64) (models.UserPreference, bool)
	PrefCount() int
}

var ErrInvalidEdit = errors.New("invalid overlay edit")

// AgendaService runs the resolution pipeline (ingest → rename → overlay)
// behind the memoizing cache and applies the per-query stages (selection,
// recurrence injection, annotation) on top. Every mutation of a persisted
// layer invalidates the affected cohort's cache entry before returning, so
// a reader never sees a new overlay next to a stale resolution.
type AgendaService struct {
	logger    providers.Logger
	metrics   providers.MetricsProviderInterface
	cache     providers.CacheProviderInterface
	feed      interfaces.FeedSourceInterface
	ingestor  *schedule.Ingestor
	injector  *schedule.Injector
	selector  *schedule.Selector
	annotator *schedule.Annotator
	renames   *models.RenameStore
	overlays  *models.OverlayStore
	homework  *models.HomeworkStore
	prefs     *models.PrefStore
	loc       *time.Location
}

func NewAgendaService(
	logger providers.Logger,
	metrics providers.MetricsProviderInterface,
	cache providers.CacheProviderInterface,
	feed interfaces.FeedSourceInterface,
	ingestor *schedule.Ingestor,
	injector *schedule.Injector,
	selector *schedule.Selector,
	annotator *schedule.Annotator,
	renames *models.RenameStore,
	overlays *models.OverlayStore,
	homework *models.HomeworkStore,
	prefs *models.PrefStore,
	loc *time.Location,
) AgendaServiceInterface {
	return &AgendaService{
		logger:    logger,
		metrics:   metrics,
		cache:     cache,
		feed:      feed,
		ingestor:  ingestor,
		injector:  injector,
		selector:  selector,
		annotator: annotator,
		renames:   renames,
		overlays:  overlays,
		homework:  homework,
		prefs:     prefs,
		loc:       loc,
	}
}

func cacheKey(cohort models.Cohort) string {
	return "resolved:" + cohort.String()
}

// Resolve returns the combined ingest+rename+overlay event list for a
// cohort, from cache when possible. A fetch failure degrades to an empty
// list and is never cached, so the next query retries upstream.
func (as *AgendaService) Resolve(cohort models.Cohort) ([]models.Event, error) {
	key := cacheKey(cohort)
	if data, ok := as.cache.Get(key); ok {
		var events []models.Event
		if err := json.Unmarshal(data, &events); err == nil {
			return events, nil
		}
		as.logger.Warnf(providers.TypeApp, "Cache entry for %s is unreadable, recomputing", cohort)
		as.cache.Del(key)
	}

	start := time.Now()
	raw, err := as.feed.Fetch(cohort)
	if err != nil {
		as.metrics.IncFeedFailures()
		as.logger.Errorf(providers.TypeApp, "Feed fetch for %s failed: %s", cohort, err)
		return nil, nil
	}

	events := as.ingestor.Parse(cohort, raw)
	events = schedule.ApplyOverlay(events, as.overlays.Snapshot(cohort), as.loc, as.logger)

	data, err := json.Marshal(events)
	if err != nil {
		return nil, err
	}
	as.cache.Set(key, data)

	as.metrics.ObserveResolveDuration(time.Since(start))
	as.metrics.SetResolvedEvents(cohort.String(), len(events))
	as.logger.Infof(providers.TypeApp, "Resolved %d events for %s", len(events), cohort)

	return events, nil
}

func (as *AgendaService) GetDay(cohort models.Cohort, date time.Time, slot models.SlotChoice) ([]string, error) {
	events, err := as.Resolve(cohort)
	if err != nil {
		return nil, err
	}
	return as.renderDay(cohort, events, date, slot), nil
}

func (as *AgendaService) GetWeek(cohort models.Cohort, date time.Time, slot models.SlotChoice) ([][]string, error) {
	events, err := as.Resolve(cohort)
	if err != nil {
		return nil, err
	}

	start := schedule.StartOfWeek(date.In(as.loc))
	week := make([][]string, 5)
	for i := range week {
		week[i] = as.renderDay(cohort, events, start.AddDate(0, 0, i), slot)
	}
	return week, nil
}

func (as *AgendaService) renderDay(cohort models.Cohort, events []models.Event, date time.Time, slot models.SlotChoice) []string {
	day := as.selector.SelectDay(events, date)
	day = as.injector.Inject(day, date.In(as.loc), slot)
	models.SortEvents(day)

	lines := make([]string, 0, len(day))
	for _, ev := range day {
		lines = append(lines, as.annotator.Annotate(cohort, ev))
	}
	return lines
}

// Refresh drops the cohort's cached resolution and recomputes it.
func (as *AgendaService) Refresh(cohort models.Cohort) (int, error) {
	as.cache.Del(cacheKey(cohort))
	events, err := as.Resolve(cohort)
	if err != nil {
		return 0, err
	}
	return len(events), nil
}

// AddHomework files text under the canonical subject: a display name is
// mapped back to its original before the key is built.
func (as *AgendaService) AddHomework(cohort models.Cohort, subject, date, text string) {
	original, _ := as.renames.OriginalFor(cohort, subject)
	as.homework.Set(cohort, models.HomeworkKey{Subject: original, Date: date}, text)
}

func (as *AgendaService) DeleteHomework(cohort models.Cohort, key models.HomeworkKey) bool {
	return as.homework.Delete(cohort, key)
}

func (as *AgendaService) SetRename(cohort models.Cohort, original, display string) {
	as.renames.Set(cohort, original, display)
	as.cache.Del(cacheKey(cohort))
}

func (as *AgendaService) SetOverlay(cohort models.Cohort, date string, key models.EventKey, edit models.Edit) error {
	if !edit.Valid() {
		return ErrInvalidEdit
	}
	if _, err := time.ParseInLocation("2006-01-02", date, as.loc); err != nil {
		return err
	}
	as.overlays.Set(cohort, date, key, edit)
	as.cache.Del(cacheKey(cohort))
	return nil
}

func (as *AgendaService) SetPreference(pref models.UserPreference) {
	as.prefs.Put(pref)
}

func (as *AgendaService) GetPreference(chatID int64) (models.UserPreference, bool) {
	return as.prefs.Get(chatID)
}

func (as *AgendaService) PrefCount() int {
	return as.prefs.Len()
}
