package handlers

import (
	"context"
	"strconv"
	"strings"

	"github.com/dlwldnjs1009/workout/internal/models"
	"github.com/dlwldnjs1009/workout/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ExerciseHandler struct {
	service exerciseService
}

type exerciseService interface {
	ListExercises(ctx context.Context) ([]models.ExerciseType, error)
	ListExercisesByCategory(ctx context.Context, category string) ([]models.ExerciseType, error)
	CreateExercise(ctx context.Context, name, category string) (*models.ExerciseType, error)
	DeleteExercise(ctx context.Context, exerciseID int64) error
}

func NewExerciseHandler(service *services.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{service: service}
}

type createExerciseRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

func (h *ExerciseHandler) ListExercises(c *fiber.Ctx) error {
	exercises, err := h.service.ListExercises(c.Context())
	if err != nil {
		return mapWorkoutError(c, err)
	}

	return c.JSON(fiber.Map{"exercises": exercises})
}

func (h *ExerciseHandler) ListExercisesByCategory(c *fiber.Ctx) error {
	category := strings.ToUpper(strings.TrimSpace(c.Params("category")))

	exercises, err := h.service.ListExercisesByCategory(c.Context(), category)
	if err != nil {
		return mapWorkoutError(c, err)
	}

	return c.JSON(fiber.Map{"exercises": exercises})
}

func (h *ExerciseHandler) CreateExercise(c *fiber.Ctx) error {
	var req createExerciseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	exercise, err := h.service.CreateExercise(
		c.Context(),
		strings.TrimSpace(req.Name),
		strings.ToUpper(strings.TrimSpace(req.Category)),
	)
	if err != nil {
		return mapWorkoutError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"exercise": exercise})
}

func (h *ExerciseHandler) DeleteExercise(c *fiber.Ctx) error {
	exerciseID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || exerciseID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid exercise id"})
	}

	if err := h.service.DeleteExercise(c.Context(), exerciseID); err != nil {
		return mapWorkoutError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
