package models

import "time"

// RoutineDifficulties lists the accepted values for WorkoutRoutine.Difficulty.
var RoutineDifficulties = []string{"BEGINNER", "INTERMEDIATE", "ADVANCED"}

func IsRoutineDifficulty(difficulty string) bool {
	for _, d := range RoutineDifficulties {
		if d == difficulty {
			return true
		}
	}
	return false
}

type WorkoutRoutine struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"user_id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	DurationMinutes int       `json:"duration_minutes"`
	Difficulty      string    `json:"difficulty"`
	CreatedAt       time.Time `json:"created_at"`
}

type WorkoutRoutineDetail struct {
	WorkoutRoutine
	Exercises []ExerciseType `json:"exercises"`
}
