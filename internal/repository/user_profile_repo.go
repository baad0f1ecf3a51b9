package repository

import (
	"context"

	"github.com/dlwldnjs1009/workout/internal/models"
)

type UpdateUserProfileInput struct {
	Age                *int
	WeightKG           *float64
	SkeletalMuscleMass *float64
	BodyFatMass        *float64
	BasalMetabolicRate *int
}

type UserProfileRepository struct {
	db DBTX
}

func NewUserProfileRepository(db DBTX) *UserProfileRepository {
	return &UserProfileRepository{db: db}
}

func (r *UserProfileRepository) CreateEmpty(ctx context.Context, userID int64) (*models.UserProfile, error) {
	query := `
		INSERT INTO user_profiles (user_id)
		VALUES ($1)
		RETURNING id, user_id, age, weight_kg, skeletal_muscle_mass, body_fat_mass,
				  basal_metabolic_rate, created_at, updated_at
	`
	var profile models.UserProfile
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.Age,
		&profile.WeightKG,
		&profile.SkeletalMuscleMass,
		&profile.BodyFatMass,
		&profile.BasalMetabolicRate,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *UserProfileRepository) GetByUserID(ctx context.Context, userID int64) (*models.UserProfile, error) {
	query := `
		SELECT id, user_id, age, weight_kg, skeletal_muscle_mass, body_fat_mass,
			   basal_metabolic_rate, created_at, updated_at
		FROM user_profiles
		WHERE user_id = $1
	`
	var profile models.UserProfile
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.Age,
		&profile.WeightKG,
		&profile.SkeletalMuscleMass,
		&profile.BodyFatMass,
		&profile.BasalMetabolicRate,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *UserProfileRepository) UpdatePartial(
	ctx context.Context,
	userID int64,
	req UpdateUserProfileInput,
) (*models.UserProfile, error) {
	query := `
		UPDATE user_profiles
		SET age = COALESCE($1, age),
			weight_kg = COALESCE($2, weight_kg),
			skeletal_muscle_mass = COALESCE($3, skeletal_muscle_mass),
			body_fat_mass = COALESCE($4, body_fat_mass),
			basal_metabolic_rate = COALESCE($5, basal_metabolic_rate),
			updated_at = NOW()
		WHERE user_id = $6
		RETURNING id, user_id, age, weight_kg, skeletal_muscle_mass, body_fat_mass,
				  basal_metabolic_rate, created_at, updated_at
	`
	var profile models.UserProfile
	err := r.db.QueryRow(ctx, query,
		req.Age,
		req.WeightKG,
		req.SkeletalMuscleMass,
		req.BodyFatMass,
		req.BasalMetabolicRate,
		userID,
	).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.Age,
		&profile.WeightKG,
		&profile.SkeletalMuscleMass,
		&profile.BodyFatMass,
		&profile.BasalMetabolicRate,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
