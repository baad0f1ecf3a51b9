package handlers

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/dlwldnjs1009/workout/internal/models"
	"github.com/dlwldnjs1009/workout/internal/services"
	"github.com/gofiber/fiber/v2"
)

type SessionHandler struct {
	service         workoutSessionService
	dashboard       dashboardService
	defaultTimezone string
}

type workoutSessionService interface {
	CreateSession(ctx context.Context, username string, input services.CreateSessionInput) (*models.WorkoutSessionDetail, error)
	ListSessions(ctx context.Context, username string, filter services.SessionListFilter) ([]models.WorkoutSessionDetail, error)
	GetSession(ctx context.Context, username string, sessionID int64) (*models.WorkoutSessionDetail, error)
	DeleteSession(ctx context.Context, username string, sessionID int64) error
}

type dashboardService interface {
	BuildWorkoutDashboard(ctx context.Context, username string, timezone string) (*models.WorkoutDashboard, error)
}

func NewSessionHandler(
	service *services.WorkoutSessionService,
	dashboard *services.DashboardService,
	defaultTimezone string,
) *SessionHandler {
	return &SessionHandler{
		service:         service,
		dashboard:       dashboard,
		defaultTimezone: defaultTimezone,
	}
}

type exerciseRecordRequest struct {
	ExerciseID      int64    `json:"exercise_id"`
	SetNumber       int      `json:"set_number"`
	Reps            int      `json:"reps"`
	WeightKG        *float64 `json:"weight_kg"`
	DurationSeconds *int     `json:"duration_seconds"`
}

type createSessionRequest struct {
	Date            *string                 `json:"date"`
	RoutineID       *int64                  `json:"routine_id"`
	DurationMinutes int                     `json:"duration_minutes"`
	Notes           *string                 `json:"notes"`
	Records         []exerciseRecordRequest `json:"records"`
}

func (h *SessionHandler) CreateSession(c *fiber.Ctx) error {
	username, err := currentUsername(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req createSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.DurationMinutes <= 0 {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"error": "duration_minutes must be greater than 0"})
	}

	var date *time.Time
	if req.Date != nil && strings.TrimSpace(*req.Date) != "" {
		parsed, err := parseDateParam(strings.TrimSpace(*req.Date))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).
				JSON(fiber.Map{"error": "date must be formatted as 2006-01-02"})
		}
		date = &parsed
	}

	records := make([]services.ExerciseRecordInput, 0, len(req.Records))
	for _, record := range req.Records {
		records = append(records, services.ExerciseRecordInput{
			ExerciseID:      record.ExerciseID,
			SetNumber:       record.SetNumber,
			Reps:            record.Reps,
			WeightKG:        record.WeightKG,
			DurationSeconds: record.DurationSeconds,
		})
	}

	detail, err := h.service.CreateSession(c.Context(), username, services.CreateSessionInput{
		Date:            date,
		RoutineID:       req.RoutineID,
		DurationMinutes: req.DurationMinutes,
		Notes:           req.Notes,
		Records:         records,
	})
	if err != nil {
		return mapWorkoutError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"session": detail})
}

func (h *SessionHandler) ListSessions(c *fiber.Ctx) error {
	username, err := currentUsername(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	limit, offset := parsePaging(c)
	filter := services.SessionListFilter{Limit: limit, Offset: offset}

	if raw := strings.TrimSpace(c.Query("start_date")); raw != "" {
		parsed, err := parseDateParam(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).
				JSON(fiber.Map{"error": "start_date must be formatted as 2006-01-02"})
		}
		filter.StartDate = &parsed
	}
	if raw := strings.TrimSpace(c.Query("end_date")); raw != "" {
		parsed, err := parseDateParam(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).
				JSON(fiber.Map{"error": "end_date must be formatted as 2006-01-02"})
		}
		filter.EndDate = &parsed
	}
	if (filter.StartDate == nil) != (filter.EndDate == nil) {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"error": "start_date and end_date must be provided together"})
	}

	sessions, err := h.service.ListSessions(c.Context(), username, filter)
	if err != nil {
		return mapWorkoutError(c, err)
	}

	return c.JSON(fiber.Map{"sessions": sessions})
}

func (h *SessionHandler) GetSession(c *fiber.Ctx) error {
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

func (h *SessionHandler) DeleteSession(c *fiber.Ctx) error {
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

func (h *SessionHandler) GetDashboard(c *fiber.Ctx) error {
	username, err := currentUsername(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	timezone := strings.TrimSpace(c.Query("tz"))
	if timezone == "" {
		timezone = h.defaultTimezone
	}

	dashboard, err := h.dashboard.BuildWorkoutDashboard(c.Context(), username, timezone)
	if err != nil {
		return mapWorkoutError(c, err)
	}

	return c.JSON(dashboard)
}

func parseDateParam(value string) (time.Time, error) {
	return time.Parse("2006-01-02", value)
}

func mapWorkoutError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidTimezone):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid timezone"})
	case errors.Is(err, services.ErrExerciseNotFound):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Exercise not found"})
	case errors.Is(err, services.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
	case errors.Is(err, services.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Duplicate resource"})
	default:
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to process request"})
	}
}
