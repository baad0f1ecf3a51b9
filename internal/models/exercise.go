package models

// ExerciseCategories lists the accepted values for ExerciseType.Category.
var ExerciseCategories = []string{
	"CHEST", "BACK", "LEGS", "ABS", "ARMS", "SHOULDERS", "CARDIO", "FLEXIBILITY", "BALANCE",
}

func IsExerciseCategory(category string) bool {
	for _, c := range ExerciseCategories {
		if c == category {
			return true
		}
	}
	return false
}

type ExerciseType struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	MuscleGroup string  `json:"muscle_group"`
	Description *string `json:"description"`
}
