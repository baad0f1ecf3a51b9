package models

import "time"

type UserProfile struct {
	ID                 int64     `json:"id"`
	UserID             int64     `json:"user_id"`
	Age                *int      `json:"age"`
	WeightKG           *float64  `json:"weight_kg"`
	SkeletalMuscleMass *float64  `json:"skeletal_muscle_mass"`
	BodyFatMass        *float64  `json:"body_fat_mass"`
	BasalMetabolicRate *int      `json:"basal_metabolic_rate"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
