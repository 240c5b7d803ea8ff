package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"agendad/internal/models"
)

func TestExtractDetails(t *testing.T) {
	teacher, room := ExtractDetails(`Преподаватель: Иванов И.И.\nАудитория: 215`)
	assert.Equal(t, "Иванов И.И.", teacher)
	assert.Equal(t, "215", room)
}

func TestExtractDetails_TeacherOnly(t *testing.T) {
	teacher, room := ExtractDetails(`Преподаватель: Иванов И.И.`)
	assert.Equal(t, "Иванов И.И.", teacher)
	assert.Empty(t, room)
}

func TestExtractDetails_NoLabels(t *testing.T) {
	teacher, room := ExtractDetails("free-form notes")
	assert.Empty(t, teacher)
	assert.Empty(t, room)
}

func TestAnnotate_FullLine(t *testing.T) {
	a := NewAnnotator(models.NewHomeworkStore())
	ev := models.Event{
		OriginalSubject: "Math",
		DisplaySubject:  "Mathematics",
		Start:           time.Date(2024, 1, 15, 9, 0, 0, 0, testLoc),
		End:             time.Date(2024, 1, 15, 10, 30, 0, 0, testLoc),
		Description:     `Преподаватель: Иванов И.И.\nАудитория: 215`,
	}

	line := a.Annotate(testCohort, ev)

	assert.Equal(t, "09:00–10:30 Mathematics (Иванов И.И., 215)", line)
}

func TestAnnotate_BareEvent(t *testing.T) {
	a := NewAnnotator(models.NewHomeworkStore())
	ev := models.Event{
		OriginalSubject: "Math",
		DisplaySubject:  "Math",
		Start:           time.Date(2024, 1, 15, 9, 0, 0, 0, testLoc),
		End:             time.Date(2024, 1, 15, 10, 30, 0, 0, testLoc),
	}

	assert.Equal(t, "09:00–10:30 Math", a.Annotate(testCohort, ev))
}

func TestAnnotate_HomeworkJoinsOnOriginalSubject(t *testing.T) {
	homework := models.NewHomeworkStore()
	homework.Set(testCohort, models.HomeworkKey{Subject: "Math", Date: "2024-01-15"}, "pp.10-12")
	a := NewAnnotator(homework)

	ev := models.Event{
		OriginalSubject: "Math",
		DisplaySubject:  "Mathematics",
		Start:           time.Date(2024, 1, 15, 9, 0, 0, 0, testLoc),
		End:             time.Date(2024, 1, 15, 10, 30, 0, 0, testLoc),
	}

	line := a.Annotate(testCohort, ev)

	assert.Equal(t, "09:00–10:30 Mathematics | homework: pp.10-12", line)
}

func TestAnnotate_HomeworkScopedToDate(t *testing.T) {
	homework := models.NewHomeworkStore()
	homework.Set(testCohort, models.HomeworkKey{Subject: "Math", Date: "2024-01-16"}, "pp.10-12")
	a := NewAnnotator(homework)

	ev := models.Event{
		OriginalSubject: "Math",
		DisplaySubject:  "Math",
		Start:           time.Date(2024, 1, 15, 9, 0, 0, 0, testLoc),
		End:             time.Date(2024, 1, 15, 10, 30, 0, 0, testLoc),
	}

	assert.NotContains(t, a.Annotate(testCohort, ev), "homework")
}
