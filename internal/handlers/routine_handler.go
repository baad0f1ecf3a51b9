package handlers

import (
	"context"
	"strconv"
	"strings"

	"github.com/dlwldnjs1009/workout/internal/models"
	"github.com/dlwldnjs1009/workout/internal/services"
	"github.com/gofiber/fiber/v2"
)

type RoutineHandler struct {
	service routineService
}

type routineService interface {
	CreateRoutine(ctx context.Context, username string, input services.CreateRoutineInput) (*models.WorkoutRoutineDetail, error)
	ListRoutines(ctx context.Context, username string) ([]models.WorkoutRoutineDetail, error)
	DeleteRoutine(ctx context.Context, username string, routineID int64) error
}

func NewRoutineHandler(service *services.RoutineService) *RoutineHandler {
	return &RoutineHandler{service: service}
}

type createRoutineRequest struct {
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	DurationMinutes int     `json:"duration_minutes"`
	Difficulty      string  `json:"difficulty"`
	ExerciseIDs     []int64 `json:"exercise_ids"`
}

func (h *RoutineHandler) CreateRoutine(c *fiber.Ctx) error {
	username, err := currentUsername(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req createRoutineRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	routine, err := h.service.CreateRoutine(c.Context(), username, services.CreateRoutineInput{
		Name:            strings.TrimSpace(req.Name),
		Description:     strings.TrimSpace(req.Description),
		DurationMinutes: req.DurationMinutes,
		Difficulty:      strings.ToUpper(strings.TrimSpace(req.Difficulty)),
		ExerciseIDs:     req.ExerciseIDs,
	})
	if err != nil {
		return mapWorkoutError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"routine": routine})
}

func (h *RoutineHandler) ListRoutines(c *fiber.Ctx) error {
	username, err := currentUsername(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	routines, err := h.service.ListRoutines(c.Context(), username)
	if err != nil {
		return mapWorkoutError(c, err)
	}

	return c.JSON(fiber.Map{"routines": routines})
}

func (h *RoutineHandler) DeleteRoutine(c *fiber.Ctx) error {
	username, err := currentUsername(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	routineID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || routineID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid routine id"})
	}

	if err := h.service.DeleteRoutine(c.Context(), username, routineID); err != nil {
		return mapWorkoutError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
