package controllers

import (
	"errors"
	"net/http"
	"time"

	json "github.com/goccy/go-json"
	"github.com/spf13/cast"

	"agendad/internal/models"
	"agendad/internal/providers"
	"agendad/internal/services"
)

const maxRequestBodySize = 1 << 20 // 1 MB

const queryDateLayout = "2006-01-02"

type ApiController struct {
	logger  providers.Logger
	service services.AgendaServiceInterface
	loc     *time.Location
}

func NewApiController(logger providers.Logger, service services.AgendaServiceInterface, loc *time.Location) *ApiController {
	return &ApiController{
		logger:  logger,
		service: service,
		loc:     loc,
	}
}

func cohortFromQuery(r *http.Request) (models.Cohort, error) {
	course := r.URL.Query().Get("course")
	stream := r.URL.Query().Get("stream")
	if course == "" || stream == "" {
		return models.Cohort{}, errors.New("course and stream are required")
	}
	return models.Cohort{Course: course, Stream: stream}, nil
}

func slotFromQuery(r *http.Request) (models.SlotChoice, error) {
	switch slot := models.SlotChoice(r.URL.Query().Get("slot")); slot {
	case models.SlotNone, models.SlotMorning, models.SlotAfternoon:
		return slot, nil
	default:
		return models.SlotNone, errors.New("unknown slot")
	}
}

func (ac *ApiController) dateFromQuery(r *http.Request, param string) (time.Time, error) {
	raw := r.URL.Query().Get(param)
	if raw == "" {
		return time.Now().In(ac.loc), nil
	}
	return time.ParseInLocation(queryDateLayout, raw, ac.loc)
}

// slotFor falls back to the chat's stored preference when the query names a
// chat but no explicit slot.
func (ac *ApiController) slotFor(r *http.Request, slot models.SlotChoice) models.SlotChoice {
	if slot != models.SlotNone {
		return slot
	}
	chatID := cast.ToInt64(r.URL.Query().Get("chat"))
	if chatID == 0 {
		return slot
	}
	if pref, ok := ac.service.GetPreference(chatID); ok {
		return pref.RecurringSlot
	}
	return slot
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	gson, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

func (ac *ApiController) GetDay(w http.ResponseWriter, r *http.Request) {
	cohort, err := cohortFromQuery(r)
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	date, err := ac.dateFromQuery(r, "date")
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	slot, err := slotFromQuery(r)
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	lines, err := ac.service.GetDay(cohort, date, ac.slotFor(r, slot))
	if err != nil {
		ac.logger.Errorf(providers.TypeGet, "GetDay %s: %s", cohort, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"date":  date.Format(queryDateLayout),
		"lines": lines,
	})
}

func (ac *ApiController) GetWeek(w http.ResponseWriter, r *http.Request) {
	cohort, err := cohortFromQuery(r)
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	date, err := ac.dateFromQuery(r, "start")
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	slot, err := slotFromQuery(r)
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	days, err := ac.service.GetWeek(cohort, date, ac.slotFor(r, slot))
	if err != nil {
		ac.logger.Errorf(providers.TypeGet, "GetWeek %s: %s", cohort, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"start": date.Format(queryDateLayout),
		"days":  days,
	})
}

func (ac *ApiController) Refresh(w http.ResponseWriter, r *http.Request) {
	cohort, err := cohortFromQuery(r)
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	count, err := ac.service.Refresh(cohort)
	if err != nil {
		ac.logger.Errorf(providers.TypePost, "Refresh %s: %s", cohort, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"events": count})
}

type homeworkRequest struct {
	Course  string `json:"course"`
	Stream  string `json:"stream"`
	Subject string `json:"subject"`
	Date    string `json:"date"`
	Text    string `json:"text"`
}

func (ac *ApiController) AddHomework(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload homeworkRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if payload.Course == "" || payload.Stream == "" || payload.Subject == "" || payload.Text == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if _, err := time.ParseInLocation(queryDateLayout, payload.Date, ac.loc); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	cohort := models.Cohort{Course: payload.Course, Stream: payload.Stream}
	ac.service.AddHomework(cohort, payload.Subject, payload.Date, payload.Text)
	w.WriteHeader(http.StatusCreated)
}

func (ac *ApiController) DeleteHomework(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload homeworkRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if payload.Course == "" || payload.Stream == "" || payload.Subject == "" || payload.Date == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	cohort := models.Cohort{Course: payload.Course, Stream: payload.Stream}
	key := models.HomeworkKey{Subject: payload.Subject, Date: payload.Date}
	if !ac.service.DeleteHomework(cohort, key) {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusOK)
}

type renameRequest struct {
	Course   string `json:"course"`
	Stream   string `json:"stream"`
	Original string `json:"original"`
	Display  string `json:"display"`
}

func (ac *ApiController) SetRename(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload renameRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if payload.Course == "" || payload.Stream == "" || payload.Original == "" || payload.Display == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	cohort := models.Cohort{Course: payload.Course, Stream: payload.Stream}
	ac.service.SetRename(cohort, payload.Original, payload.Display)
	w.WriteHeader(http.StatusOK)
}

type overlayRequest struct {
	Course  string      `json:"course"`
	Stream  string      `json:"stream"`
	Date    string      `json:"date"`
	Subject string      `json:"subject"`
	Time    string      `json:"time"`
	Edit    models.Edit `json:"edit"`
}

func (ac *ApiController) SetOverlay(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload overlayRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if payload.Course == "" || payload.Stream == "" || payload.Date == "" || payload.Subject == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	cohort := models.Cohort{Course: payload.Course, Stream: payload.Stream}
	key := models.EventKey{Subject: payload.Subject, Time: payload.Time}
	if err := ac.service.SetOverlay(cohort, payload.Date, key, payload.Edit); err != nil {
		ac.logger.Warnf(providers.TypePost, "SetOverlay %s rejected: %s", cohort, err)
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusOK)
}

type preferenceRequest struct {
	ChatID          int64  `json:"chat_id"`
	Course          string `json:"course"`
	Stream          string `json:"stream"`
	Slot            string `json:"slot"`
	ReminderEnabled bool   `json:"reminder_enabled"`
	ReminderTime    string `json:"reminder_time"`
}

func (ac *ApiController) SetPreference(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload preferenceRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if payload.ChatID == 0 || payload.Course == "" || payload.Stream == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	slot := models.SlotChoice(payload.Slot)
	if slot != models.SlotNone && slot != models.SlotMorning && slot != models.SlotAfternoon {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if payload.ReminderEnabled {
		if _, err := time.Parse("15:04", payload.ReminderTime); err != nil {
			http.Error(w, "Bad Request", http.StatusBadRequest)
			return
		}
	}

	ac.service.SetPreference(models.UserPreference{
		ChatID:          payload.ChatID,
		Cohort:          models.Cohort{Course: payload.Course, Stream: payload.Stream},
		RecurringSlot:   slot,
		ReminderEnabled: payload.ReminderEnabled,
		ReminderTime:    payload.ReminderTime,
	})
	w.WriteHeader(http.StatusOK)
}
