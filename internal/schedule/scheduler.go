package schedule

import (
	"sync"
	"time"

	"github.com/roylee0704/gron"

	"agendad/internal/models"
	"agendad/internal/providers"
	"agendad/internal/schedule/interfaces"
	"agendad/internal/structures"
)

// AgendaProvider is the one slice of the service layer the reminder tick
// needs: a rendered day agenda for a cohort.
type AgendaProvider interface {
	GetDay(cohort models.Cohort, date time.Time, slot models.SlotChoice) ([]string, error)
}

type Scheduler struct {
	config      *structures.Config
	logger      providers.Logger
	metrics     providers.MetricsProviderInterface
	fileManager *FileManager
	prefs       *models.PrefStore
	agenda      AgendaProvider
	notifier    interfaces.NotifierInterface
	loc         *time.Location
	cron        *gron.Cron
	opsMu       sync.Mutex
}

func (s *Scheduler) Init() {
	s.cron = gron.New()

	s.cron.AddFunc(gron.Every(s.config.Persistence.SaveInterval), func() {
		s.opsMu.Lock()
		defer s.opsMu.Unlock()

		start := time.Now()
		err := s.fileManager.SaveToFile(s.config.Persistence.FilePath)
		if err != nil {
			s.logger.Errorf(providers.TypeApp, "Error while persisting data: %s", err)
			return
		}
		s.metrics.ObservePersistenceDuration(time.Since(start))
		s.logger.Infof(providers.TypeApp, "Persisted data to file %s", s.config.Persistence.FilePath)
	})

	s.cron.AddFunc(gron.Every(time.Minute), s.dispatchReminders)

	s.cron.Start()
}

// dispatchReminders sends the day agenda to every chat whose reminder fires
// at the current minute.
func (s *Scheduler) dispatchReminders() {
	now := time.Now().In(s.loc)
	due := s.prefs.RemindersAt(now.Format("15:04"))

	for _, pref := range due {
		lines, err := s.agenda.GetDay(pref.Cohort, now, pref.RecurringSlot)
		if err != nil {
			s.logger.Errorf(providers.TypeApp, "Reminder for chat %d: %s", pref.ChatID, err)
			continue
		}
		if err := s.notifier.Notify(pref.ChatID, lines); err != nil {
			s.logger.Errorf(providers.TypeApp, "Reminder delivery to chat %d failed: %s", pref.ChatID, err)
		}
	}
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func (s *Scheduler) Restore() error {
	return s.fileManager.LoadFromFile(s.config.Persistence.FilePath)
}

func (s *Scheduler) Persist() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	s.logger.Infof(providers.TypeApp, "Persisting schedule layers to file...")
	err := s.fileManager.SaveToFile(s.config.Persistence.FilePath)
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "Error while persisting data: %s", err)
		return err
	}
	return nil
}

func NewScheduler(
	config *structures.Config,
	logger providers.Logger,
	metrics providers.MetricsProviderInterface,
	fileManager *FileManager,
	prefs *models.PrefStore,
	agenda AgendaProvider,
	notifier interfaces.NotifierInterface,
	loc *time.Location,
) interfaces.SchedulerInterface {
	return &Scheduler{
		config:      config,
		logger:      logger,
		metrics:     metrics,
		fileManager: fileManager,
		prefs:       prefs,
		agenda:      agenda,
		notifier:    notifier,
		loc:         loc,
	}
}
