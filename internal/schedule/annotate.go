package schedule

import (
	"fmt"
	"regexp"
	"strings"

	"agendad/internal/models"
)

// The feed's DESCRIPTION carries teacher and room behind fixed labels,
// separated by literal "\n" escapes. Extraction is best effort: an absent
// field is omitted, never an error.
var (
	reTeacher = regexp.MustCompile(`Преподаватель:\s*([^\\\r\n]+)`)
	reRoom    = regexp.MustCompile(`Аудитория:\s*([^\\\r\n]+)`)
)

// ExtractDetails pulls the teacher name and room out of a description.
func ExtractDetails(desc string) (teacher, room string) {
	if m := reTeacher.FindStringSubmatch(desc); m != nil {
		teacher = strings.TrimSpace(m[1])
	}
	if m := reRoom.FindStringSubmatch(desc); m != nil {
		room = strings.TrimSpace(m[1])
	}
	return teacher, room
}

// Annotator renders resolved events into agenda lines and joins homework
// onto them. Homework is keyed by (original subject, date), so renames never
// break the join, and synthetic events join through their own subject.
type Annotator struct {
	homework *models.HomeworkStore
}

func NewAnnotator(homework *models.HomeworkStore) *Annotator {
	return &Annotator{homework: homework}
}

func (a *Annotator) Annotate(cohort models.Cohort, ev models.Event) string {
	line := fmt.Sprintf("%s–%s %s",
		ev.Start.Format("15:04"), ev.End.Format("15:04"), ev.DisplaySubject)

	teacher, room := ExtractDetails(ev.Description)
	switch {
	case teacher != "" && room != "":
		line += fmt.Sprintf(" (%s, %s)", teacher, room)
	case teacher != "":
		line += fmt.Sprintf(" (%s)", teacher)
	case room != "":
		line += fmt.Sprintf(" (%s)", room)
	}

	key := models.HomeworkKey{Subject: ev.OriginalSubject, Date: ev.Date()}
	if text, ok := a.homework.Get(cohort, key); ok {
		line += " | homework: " + text
	}

	return line
}
