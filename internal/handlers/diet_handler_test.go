package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dlwldnjs1009/workout/internal/models"
	"github.com/dlwldnjs1009/workout/internal/services"
	"github.com/gofiber/fiber/v2"
)

type stubDietService struct {
	summary    *models.DietDailySummary
	summaryErr error
	saveResult *models.DietSessionDetail
	saveErr    error
	getResult  *models.DietSessionDetail
	getErr     error

	lastUsername  string
	lastTimezone  string
	lastDate      time.Time
	lastSaveInput services.SaveDietSessionInput
}

func (s *stubDietService) TodaySummary(_ context.Context, username string, timezone string) (*models.DietDailySummary, error) {
	s.lastUsername = username
	s.lastTimezone = timezone
	return s.summary, s.summaryErr
}

func (s *stubDietService) ListSessions(_ context.Context, username string, _, _ int) ([]models.DietSessionDetail, error) {
	s.lastUsername = username
	return nil, nil
}

func (s *stubDietService) GetSession(_ context.Context, username string, _ int64) (*models.DietSessionDetail, error) {
	s.lastUsername = username
	return s.getResult, s.getErr
}

func (s *stubDietService) GetSessionByDate(_ context.Context, username string, date time.Time) (*models.DietSessionDetail, error) {
	s.lastUsername = username
	s.lastDate = date
	return s.getResult, s.getErr
}

func (s *stubDietService) SaveSession(_ context.Context, username string, input services.SaveDietSessionInput) (*models.DietSessionDetail, error) {
	s.lastUsername = username
	s.lastSaveInput = input
	return s.saveResult, s.saveErr
}

func (s *stubDietService) DeleteSession(_ context.Context, username string, _ int64) error {
	s.lastUsername = username
	return nil
}

func newDietTestApp(handler *DietHandler) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("username", "nils")
		return c.Next()
	})
	app.Post("/api/diet-sessions", handler.SaveSession)
	app.Get("/api/diet-sessions/today", handler.GetTodaySummary)
	app.Get("/api/diet-sessions/by-date", handler.GetSessionByDate)
	app.Get("/api/diet-sessions/:id", handler.GetSession)
	return app
}

func TestGetTodaySummaryDefaultsTimezone(t *testing.T) {
	service := &stubDietService{
		summary: &models.DietDailySummary{Calories: 870, Protein: 60, HasData: true},
	}
	handler := &DietHandler{service: service, defaultTimezone: "Asia/Seoul"}

	app := newDietTestApp(handler)
	req := httptest.NewRequest(http.MethodGet, "/api/diet-sessions/today", nil)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if service.lastTimezone != "Asia/Seoul" {
		t.Fatalf("expected default timezone, got %q", service.lastTimezone)
	}

	var payload models.DietDailySummary
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Calories != 870 || !payload.HasData {
		t.Fatalf("unexpected summary: %+v", payload)
	}
}

func TestSaveDietSessionParsesBody(t *testing.T) {
	service := &stubDietService{
		saveResult: &models.DietSessionDetail{
			DietSession: models.DietSession{ID: 3, UserID: 1},
			FoodEntries: []models.FoodEntry{},
		},
	}
	handler := &DietHandler{service: service, defaultTimezone: "UTC"}

	app := newDietTestApp(handler)
	req := httptest.NewRequest(http.MethodPost, "/api/diet-sessions", strings.NewReader(`{
		"date": "2024-05-20",
		"food_entries": [
			{"meal_type": "BREAKFAST", "food_name": "Oatmeal", "calories": 350, "protein": 30.5}
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
	if service.lastSaveInput.Date.Format("2006-01-02") != "2024-05-20" {
		t.Fatalf("unexpected date: %v", service.lastSaveInput.Date)
	}
	if len(service.lastSaveInput.FoodEntries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(service.lastSaveInput.FoodEntries))
	}
	entry := service.lastSaveInput.FoodEntries[0]
	if entry.MealType != "BREAKFAST" || entry.FoodName != "Oatmeal" || entry.Calories != 350 {
		t.Fatalf("unexpected entry: %+v", entry)
	}
}

func TestSaveDietSessionRejectsMissingDate(t *testing.T) {
	handler := &DietHandler{service: &stubDietService{}, defaultTimezone: "UTC"}

	app := newDietTestApp(handler)
	req := httptest.NewRequest(http.MethodPost, "/api/diet-sessions", strings.NewReader(`{
		"food_entries": []
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

func TestGetDietSessionByDateMapsNotFound(t *testing.T) {
	service := &stubDietService{getErr: services.ErrNotFound}
	handler := &DietHandler{service: service, defaultTimezone: "UTC"}

	app := newDietTestApp(handler)
	req := httptest.NewRequest(http.MethodGet, "/api/diet-sessions/by-date?date=2024-05-20", nil)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
	if service.lastDate.Format("2006-01-02") != "2024-05-20" {
		t.Fatalf("unexpected date: %v", service.lastDate)
	}
}
