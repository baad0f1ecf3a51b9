package handlers

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/dlwldnjs1009/workout/internal/models"
	"github.com/dlwldnjs1009/workout/internal/services"
	"github.com/gofiber/fiber/v2"
)

type DietHandler struct {
	service         dietService
	defaultTimezone string
}

type dietService interface {
	TodaySummary(ctx context.Context, username string, timezone string) (*models.DietDailySummary, error)
	ListSessions(ctx context.Context, username string, limit, offset int) ([]models.DietSessionDetail, error)
	GetSession(ctx context.Context, username string, sessionID int64) (*models.DietSessionDetail, error)
	GetSessionByDate(ctx context.Context, username string, date time.Time) (*models.DietSessionDetail, error)
	SaveSession(ctx context.Context, username string, input services.SaveDietSessionInput) (*models.DietSessionDetail, error)
	DeleteSession(ctx context.Context, username string, sessionID int64) error
}

func NewDietHandler(service *services.DietService, defaultTimezone string) *DietHandler {
	return &DietHandler{service: service, defaultTimezone: defaultTimezone}
}

type foodEntryRequest struct {
	MealType string   `json:"meal_type"`
	FoodName string   `json:"food_name"`
	Calories int      `json:"calories"`
	Protein  *float64 `json:"protein"`
	Carbs    *float64 `json:"carbs"`
	Fat      *float64 `json:"fat"`
}

type saveDietSessionRequest struct {
	ID          *int64             `json:"id"`
	Date        string             `json:"date"`
	Notes       *string            `json:"notes"`
	FoodEntries []foodEntryRequest `json:"food_entries"`
}

func (h *DietHandler) SaveSession(c *fiber.Ctx) error {
	username, err := currentUsername(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req saveDietSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	date, err := parseDateParam(strings.TrimSpace(req.Date))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"error": "date must be formatted as 2006-01-02"})
	}

	entries := make([]services.FoodEntryInput, 0, len(req.FoodEntries))
	for _, entry := range req.FoodEntries {
		entries = append(entries, services.FoodEntryInput{
			MealType: entry.MealType,
			FoodName: strings.TrimSpace(entry.FoodName),
			Calories: entry.Calories,
			Protein:  entry.Protein,
			Carbs:    entry.Carbs,
			Fat:      entry.Fat,
		})
	}

	detail, err := h.service.SaveSession(c.Context(), username, services.SaveDietSessionInput{
		ID:          req.ID,
		Date:        date,
		Notes:       req.Notes,
		FoodEntries: entries,
	})
	if err != nil {
		return mapWorkoutError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"session": detail})
}

func (h *DietHandler) ListSessions(c *fiber.Ctx) error {
	username, err := currentUsername(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	limit, offset := parsePaging(c)
	sessions, err := h.service.ListSessions(c.Context(), username, limit, offset)
	if err != nil {
		return mapWorkoutError(c, err)
	}

	return c.JSON(fiber.Map{"sessions": sessions})
}

func (h *DietHandler) GetTodaySummary(c *fiber.Ctx) error {
	username, err := currentUsername(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	timezone := strings.TrimSpace(c.Query("tz"))
	if timezone == "" {
		timezone = h.defaultTimezone
	}

	summary, err := h.service.TodaySummary(c.Context(), username, timezone)
	if err != nil {
		return mapWorkoutError(c, err)
	}

	return c.JSON(summary)
}

func (h *DietHandler) GetSessionByDate(c *fiber.Ctx) error {
	username, err := currentUsername(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	date, err := parseDateParam(strings.TrimSpace(c.Query("date")))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"error": "date must be formatted as 2006-01-02"})
	}

	session, err := h.service.GetSessionByDate(c.Context(), username, date)
	if err != nil {
		return mapWorkoutError(c, err)
	}

	return c.JSON(fiber.Map{"session": session})
}

func (h *DietHandler) GetSession(c *fiber.Ctx) error {
	username, err := currentUsername(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	sessionID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || sessionID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid session id"})
	}

	session, err := h.service.GetSession(c.Context(), username, sessionID)
	if err != nil {
		return mapWorkoutError(c, err)
	}

	return c.JSON(fiber.Map{"session": session})
}

func (h *DietHandler) DeleteSession(c *fiber.Ctx) error {
	username, err := currentUsername(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	sessionID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || sessionID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid session id"})
	}

	if err := h.service.DeleteSession(c.Context(), username, sessionID); err != nil {
		return mapWorkoutError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
