package models

import "time"

// MealTypes lists the accepted values for FoodEntry.MealType.
var MealTypes = []string{"BREAKFAST", "LUNCH", "DINNER", "SNACK"}

func IsMealType(mealType string) bool {
	for _, m := range MealTypes {
		if m == mealType {
			return true
		}
	}
	return false
}

type DietSession struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Date      time.Time `json:"date"`
	Notes     *string   `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}

type FoodEntry struct {
	ID            int64    `json:"id"`
	DietSessionID int64    `json:"diet_session_id"`
	MealType      string   `json:"meal_type"`
	FoodName      string   `json:"food_name"`
	Calories      int      `json:"calories"`
	Protein       *float64 `json:"protein"`
	Carbs         *float64 `json:"carbs"`
	Fat           *float64 `json:"fat"`
}

type DietSessionDetail struct {
	DietSession
	FoodEntries []FoodEntry `json:"food_entries"`
}

// DietDailySummary is the per-day macro rollup for the diet dashboard.
// Macro fields are integer totals, truncated per entry when summed.
type DietDailySummary struct {
	Calories int  `json:"calories"`
	Protein  int  `json:"protein"`
	Carbs    int  `json:"carbs"`
	Fat      int  `json:"fat"`
	HasData  bool `json:"has_data"`
}
