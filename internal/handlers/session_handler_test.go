package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dlwldnjs1009/workout/internal/models"
	"github.com/dlwldnjs1009/workout/internal/services"
	"github.com/gofiber/fiber/v2"
)

type stubWorkoutSessionService struct {
	createResult *models.WorkoutSessionDetail
	createErr    error
	listResult   []models.WorkoutSessionDetail
	listErr      error
	getResult    *models.WorkoutSessionDetail
	getErr       error
	deleteErr    error

	lastUsername    string
	lastCreateInput services.CreateSessionInput
	lastFilter      services.SessionListFilter
	lastSessionID   int64
}

func (s *stubWorkoutSessionService) CreateSession(_ context.Context, username string, input services.CreateSessionInput) (*models.WorkoutSessionDetail, error) {
	s.lastUsername = username
	s.lastCreateInput = input
	return s.createResult, s.createErr
}

func (s *stubWorkoutSessionService) ListSessions(_ context.Context, username string, filter services.SessionListFilter) ([]models.WorkoutSessionDetail, error) {
	s.lastUsername = username
	s.lastFilter = filter
	return s.listResult, s.listErr
}

func (s *stubWorkoutSessionService) GetSession(_ context.Context, username string, sessionID int64) (*models.WorkoutSessionDetail, error) {
	s.lastUsername = username
	s.lastSessionID = sessionID
	return s.getResult, s.getErr
}

func (s *stubWorkoutSessionService) DeleteSession(_ context.Context, username string, sessionID int64) error {
	s.lastUsername = username
	s.lastSessionID = sessionID
	return s.deleteErr
}

type stubDashboardBuilder struct {
	result       *models.WorkoutDashboard
	err          error
	lastUsername string
	lastTimezone string
}

func (s *stubDashboardBuilder) BuildWorkoutDashboard(_ context.Context, username string, timezone string) (*models.WorkoutDashboard, error) {
	s.lastUsername = username
	s.lastTimezone = timezone
	return s.result, s.err
}

func newSessionTestApp(handler *SessionHandler) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("username", "nils")
		return c.Next()
	})
	app.Post("/api/sessions", handler.CreateSession)
	app.Get("/api/sessions", handler.ListSessions)
	app.Get("/api/sessions/dashboard", handler.GetDashboard)
	app.Get("/api/sessions/:id", handler.GetSession)
	app.Delete("/api/sessions/:id", handler.DeleteSession)
	return app
}

func TestCreateSessionReturnsCreated(t *testing.T) {
	service := &stubWorkoutSessionService{
		createResult: &models.WorkoutSessionDetail{
			WorkoutSession: models.WorkoutSession{ID: 5, UserID: 1, DurationMinutes: 45},
			Exercises:      []models.ExerciseRecord{},
		},
	}
	handler := &SessionHandler{service: service, defaultTimezone: "UTC"}

	app := newSessionTestApp(handler)
	req := httptest.NewRequest(http.MethodPost, "/api/sessions", strings.NewReader(`{
		"date": "2024-05-01",
		"duration_minutes": 45,
		"records": [
			{"exercise_id": 3, "set_number": 1, "reps": 10, "weight_kg": 60}
		]
	}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	if service.lastUsername != "nils" {
		t.Fatalf("expected username nils, got %q", service.lastUsername)
	}
	if service.lastCreateInput.Date == nil || service.lastCreateInput.Date.Format("2006-01-02") != "2024-05-01" {
		t.Fatalf("unexpected parsed date: %+v", service.lastCreateInput.Date)
	}
	if len(service.lastCreateInput.Records) != 1 || service.lastCreateInput.Records[0].ExerciseID != 3 {
		t.Fatalf("unexpected records: %+v", service.lastCreateInput.Records)
	}
}

func TestCreateSessionRejectsBadDate(t *testing.T) {
	handler := &SessionHandler{service: &stubWorkoutSessionService{}, defaultTimezone: "UTC"}

	app := newSessionTestApp(handler)
	req := httptest.NewRequest(http.MethodPost, "/api/sessions", strings.NewReader(`{
		"date": "01-05-2024",
		"duration_minutes": 45
	}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestCreateSessionMapsUnknownExercise(t *testing.T) {
	service := &stubWorkoutSessionService{createErr: services.ErrExerciseNotFound}
	handler := &SessionHandler{service: service, defaultTimezone: "UTC"}

	app := newSessionTestApp(handler)
	req := httptest.NewRequest(http.MethodPost, "/api/sessions", strings.NewReader(`{
		"duration_minutes": 45,
		"records": [{"exercise_id": 999, "set_number": 1, "reps": 10}]
	}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestListSessionsRequiresPairedDateRange(t *testing.T) {
	handler := &SessionHandler{service: &stubWorkoutSessionService{}, defaultTimezone: "UTC"}

	app := newSessionTestApp(handler)
	req := httptest.NewRequest(http.MethodGet, "/api/sessions?start_date=2024-05-01", nil)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestGetSessionReturnsNotFound(t *testing.T) {
	service := &stubWorkoutSessionService{getErr: services.ErrNotFound}
	handler := &SessionHandler{service: service, defaultTimezone: "UTC"}

	app := newSessionTestApp(handler)
	req := httptest.NewRequest(http.MethodGet, "/api/sessions/42", nil)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
	if service.lastSessionID != 42 {
		t.Fatalf("expected session id 42, got %d", service.lastSessionID)
	}
}

func TestDeleteSessionReturnsNoContent(t *testing.T) {
	service := &stubWorkoutSessionService{}
	handler := &SessionHandler{service: service, defaultTimezone: "UTC"}

	app := newSessionTestApp(handler)
	req := httptest.NewRequest(http.MethodDelete, "/api/sessions/7", nil)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}
}

func TestGetDashboardDefaultsTimezone(t *testing.T) {
	dashboard := &stubDashboardBuilder{
		result: &models.WorkoutDashboard{
			HeatmapStartDate: "2023-06-17",
			HeatmapLevels:    make([]int, 365),
			RecentSessions:   []models.WorkoutSessionDetail{},
			VolumeChartData:  []models.VolumeDataPoint{},
		},
	}
	handler := &SessionHandler{
		service:         &stubWorkoutSessionService{},
		dashboard:       dashboard,
		defaultTimezone: "Asia/Seoul",
	}

	app := newSessionTestApp(handler)
	req := httptest.NewRequest(http.MethodGet, "/api/sessions/dashboard", nil)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if dashboard.lastTimezone != "Asia/Seoul" {
		t.Fatalf("expected default timezone, got %q", dashboard.lastTimezone)
	}

	var payload models.WorkoutDashboard
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.HeatmapStartDate != "2023-06-17" {
		t.Fatalf("unexpected heatmap start date: %s", payload.HeatmapStartDate)
	}
	if len(payload.HeatmapLevels) != 365 {
		t.Fatalf("expected 365 levels, got %d", len(payload.HeatmapLevels))
	}
}

func TestGetDashboardHonorsTimezoneQuery(t *testing.T) {
	dashboard := &stubDashboardBuilder{result: &models.WorkoutDashboard{}}
	handler := &SessionHandler{
		service:         &stubWorkoutSessionService{},
		dashboard:       dashboard,
		defaultTimezone: "Asia/Seoul",
	}

	app := newSessionTestApp(handler)
	req := httptest.NewRequest(http.MethodGet, "/api/sessions/dashboard?tz=America/New_York", nil)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if dashboard.lastTimezone != "America/New_York" {
		t.Fatalf("expected query timezone, got %q", dashboard.lastTimezone)
	}
}

func TestGetDashboardMapsInvalidTimezone(t *testing.T) {
	dashboard := &stubDashboardBuilder{err: services.ErrInvalidTimezone}
	handler := &SessionHandler{
		service:         &stubWorkoutSessionService{},
		dashboard:       dashboard,
		defaultTimezone: "UTC",
	}

	app := newSessionTestApp(handler)
	req := httptest.NewRequest(http.MethodGet, "/api/sessions/dashboard?tz=Mars/Olympus", nil)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}
