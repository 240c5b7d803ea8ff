package internal

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agendad/internal/controllers"
	"agendad/internal/models"
	"agendad/internal/providers"
	"agendad/internal/structures"
)

// --- minimal mocks for routes test ---

type routeTestLogger struct{}

func (m *routeTestLogger) Errorf(_ providers.TypeEnum, _ string, _ ...interface{}) {}
func (m *routeTestLogger) Warnf(_ providers.TypeEnum, _ string, _ ...interface{})  {}
func (m *routeTestLogger) Debugf(_ providers.TypeEnum, _ string, _ ...interface{}) {}
func (m *routeTestLogger) Infof(_ providers.TypeEnum, _ string, _ ...interface{})  {}
func (m *routeTestLogger) Fatalf(_ providers.TypeEnum, _ string, _ ...interface{}) {}
func (m *routeTestLogger) Close()                                                  {}

type routeTestMockService struct{}

func (m *routeTestMockService) GetDay(_ models.Cohort, _ time.Time, _ models.SlotChoice) ([]string, error) {
	return nil, nil
}
func (m *routeTestMockService) GetWeek(_ models.Cohort, _ time.Time, _ models.SlotChoice) ([][]string, error) {
	return nil, nil
}
func (m *routeTestMockService) Refresh(_ models.Cohort) (int, error)            { return 0, nil }
func (m *routeTestMockService) Resolve(_ models.Cohort) ([]models.Event, error) { return nil, nil }
func (m *routeTestMockService) AddHomework(_ models.Cohort, _, _, _ string)     {}
func (m *routeTestMockService) DeleteHomework(_ models.Cohort, _ models.HomeworkKey) bool {
	return false
}
func (m *routeTestMockService) SetRename(_ models.Cohort, _, _ string) {}
func (m *routeTestMockService) SetOverlay(_ models.Cohort, _ string, _ models.EventKey, _ models.Edit) error {
	return nil
}
func (m *routeTestMockService) SetPreference(_ models.UserPreference) {}
func (m *routeTestMockService) GetPreference(_ int64) (models.UserPreference, bool) {
	return models.UserPreference{}, false
}
func (m *routeTestMockService) PrefCount() int { return 0 }

func routeTestController() *controllers.ApiController {
	loc := time.FixedZone("MSK", 3*3600)
	return controllers.NewApiController(&routeTestLogger{}, &routeTestMockService{}, loc)
}

func TestInitRoutes_RegistersAllRoutes(t *testing.T) {
	conf := &structures.Config{}

	router := InitRoutes(routeTestController(), conf)
	routes := router.GetRoutes()

	require.Len(t, routes, 8)

	urls := make([]string, len(routes))
	for i, r := range routes {
		urls[i] = r.Url
	}

	assert.Contains(t, urls, "/day")
	assert.Contains(t, urls, "/week")
	assert.Contains(t, urls, "/refresh")
	assert.Contains(t, urls, "/homework")
	assert.Contains(t, urls, "/homework/delete")
	assert.Contains(t, urls, "/rename")
	assert.Contains(t, urls, "/overlay")
	assert.Contains(t, urls, "/preference")
}

func TestInitRoutes_MethodEnforcement(t *testing.T) {
	conf := &structures.Config{}

	router := InitRoutes(routeTestController(), conf)
	routes := router.GetRoutes()

	mux := http.NewServeMux()
	for _, r := range routes {
		mux.Handle(r.Url, r.Handler)
	}

	// GET /day with POST should fail
	req := httptest.NewRequest(http.MethodPost, "/day", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)

	// POST /refresh with GET should fail
	req = httptest.NewRequest(http.MethodGet, "/refresh", nil)
	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}
