package schedule

import (
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agendad/internal/models"
	"agendad/internal/structures"
	"agendad/internal/testutil"
)

type stubAgenda struct {
	mu    sync.Mutex
	lines []string
	err   error
	calls int
}

func (s *stubAgenda) GetDay(_ models.Cohort, _ time.Time, _ models.SlotChoice) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.lines, s.err
}

func newTestScheduler(t *testing.T, prefs *models.PrefStore, agenda *stubAgenda, notifier *testutil.MockNotifier) (*Scheduler, *testutil.MockLogger, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "agenda.dat")
	conf := testConfig()
	conf.Persistence = structures.Persistence{
		FilePath:     path,
		SaveInterval: time.Hour,
	}

	logger := &testutil.MockLogger{}
	fm := NewFileManager(models.NewRenameStore(), models.NewOverlayStore(), models.NewHomeworkStore(), prefs, &testutil.MockCompressor{}, logger)

	sched := NewScheduler(conf, logger, &testutil.MockMetrics{}, fm, prefs, agenda, notifier, testLoc)
	return sched.(*Scheduler), logger, path
}

func TestScheduler_PersistAndRestore(t *testing.T) {
	prefs := models.NewPrefStore()
	prefs.Put(models.UserPreference{ChatID: 42, Cohort: testCohort, RecurringSlot: models.SlotMorning})
	sched, _, _ := newTestScheduler(t, prefs, &stubAgenda{}, &testutil.MockNotifier{})

	require.NoError(t, sched.Persist())

	restored := models.NewPrefStore()
	sched2, _, _ := newTestScheduler(t, restored, &stubAgenda{}, &testutil.MockNotifier{})
	sched2.config.Persistence.FilePath = sched.config.Persistence.FilePath
	require.NoError(t, sched2.Restore())

	pref, ok := restored.Get(42)
	assert.True(t, ok)
	assert.Equal(t, models.SlotMorning, pref.RecurringSlot)
}

func TestScheduler_RestoreMissingFile(t *testing.T) {
	sched, _, _ := newTestScheduler(t, models.NewPrefStore(), &stubAgenda{}, &testutil.MockNotifier{})
	assert.NoError(t, sched.Restore())
}

func TestDispatchReminders_SendsDueAgenda(t *testing.T) {
	now := time.Now().In(testLoc).Format("15:04")
	prefs := models.NewPrefStore()
	prefs.Put(models.UserPreference{ChatID: 42, Cohort: testCohort, ReminderEnabled: true, ReminderTime: now})
	prefs.Put(models.UserPreference{ChatID: 7, Cohort: testCohort, ReminderEnabled: true, ReminderTime: "00:00"})

	agenda := &stubAgenda{lines: []string{"09:00–10:30 Math"}}
	notifier := &testutil.MockNotifier{}
	sched, _, _ := newTestScheduler(t, prefs, agenda, notifier)

	sched.dispatchReminders()

	if now == "00:00" {
		t.Skip("clock edge, both reminders due")
	}
	require.Len(t, notifier.Sent, 1)
	require.Len(t, notifier.Sent[42], 1)
	assert.Equal(t, []string{"09:00–10:30 Math"}, notifier.Sent[42][0])
}

func TestDispatchReminders_AgendaErrorLogged(t *testing.T) {
	now := time.Now().In(testLoc).Format("15:04")
	prefs := models.NewPrefStore()
	prefs.Put(models.UserPreference{ChatID: 42, Cohort: testCohort, ReminderEnabled: true, ReminderTime: now})

	agenda := &stubAgenda{err: errors.New("feed down")}
	notifier := &testutil.MockNotifier{}
	sched, logger, _ := newTestScheduler(t, prefs, agenda, notifier)

	sched.dispatchReminders()

	assert.Empty(t, notifier.Sent)
	assert.Equal(t, 1, logger.CountByLevel("error"))
}

func TestDispatchReminders_DeliveryErrorLogged(t *testing.T) {
	now := time.Now().In(testLoc).Format("15:04")
	prefs := models.NewPrefStore()
	prefs.Put(models.UserPreference{ChatID: 42, Cohort: testCohort, ReminderEnabled: true, ReminderTime: now})

	notifier := &testutil.MockNotifier{Err: errors.New("chat gone")}
	sched, logger, _ := newTestScheduler(t, prefs, &stubAgenda{}, notifier)

	sched.dispatchReminders()

	assert.Equal(t, 1, logger.CountByLevel("error"))
}

func TestScheduler_StopWithoutInit(t *testing.T) {
	sched, _, _ := newTestScheduler(t, models.NewPrefStore(), &stubAgenda{}, &testutil.MockNotifier{})
	assert.NotPanics(t, sched.Stop)
}
