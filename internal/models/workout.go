package models

import "time"

type WorkoutSession struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"user_id"`
	RoutineID       *int64    `json:"routine_id"`
	Date            time.Time `json:"date"`
	DurationMinutes int       `json:"duration_minutes"`
	Notes           *string   `json:"notes"`
	CreatedAt       time.Time `json:"created_at"`
}

type ExerciseRecord struct {
	ID              int64    `json:"id"`
	SessionID       int64    `json:"session_id"`
	ExerciseID      int64    `json:"exercise_id"`
	ExerciseName    string   `json:"exercise_name"`
	SetNumber       int      `json:"set_number"`
	Reps            int      `json:"reps"`
	WeightKG        *float64 `json:"weight_kg"`
	DurationSeconds *int     `json:"duration_seconds"`
}

type WorkoutSessionDetail struct {
	WorkoutSession
	Exercises []ExerciseRecord `json:"exercises"`
}
