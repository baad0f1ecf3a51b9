package handlers

import (
	"context"

	"github.com/dlwldnjs1009/workout/internal/models"
	"github.com/dlwldnjs1009/workout/internal/repository"
	"github.com/dlwldnjs1009/workout/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ProfileHandler struct {
	service profileService
}

type profileService interface {
	GetProfile(ctx context.Context, username string) (*models.UserProfile, error)
	UpdateProfile(ctx context.Context, username string, input repository.UpdateUserProfileInput) (*models.UserProfile, error)
}

func NewProfileHandler(service *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

type updateProfileRequest struct {
	Age                *int     `json:"age"`
	WeightKG           *float64 `json:"weight_kg"`
	SkeletalMuscleMass *float64 `json:"skeletal_muscle_mass"`
	BodyFatMass        *float64 `json:"body_fat_mass"`
	BasalMetabolicRate *int     `json:"basal_metabolic_rate"`
}

func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	username, err := currentUsername(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	profile, err := h.service.GetProfile(c.Context(), username)
	if err != nil {
		return mapWorkoutError(c, err)
	}

	return c.JSON(fiber.Map{"profile": profile})
}

func (h *ProfileHandler) UpdateProfile(c *fiber.Ctx) error {
	username, err := currentUsername(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if msg := validateProfileUpdateRequest(req); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
	}

	profile, err := h.service.UpdateProfile(c.Context(), username, repository.UpdateUserProfileInput{
		Age:                req.Age,
		WeightKG:           req.WeightKG,
		SkeletalMuscleMass: req.SkeletalMuscleMass,
		BodyFatMass:        req.BodyFatMass,
		BasalMetabolicRate: req.BasalMetabolicRate,
	})
	if err != nil {
		return mapWorkoutError(c, err)
	}

	return c.JSON(fiber.Map{"profile": profile})
}
