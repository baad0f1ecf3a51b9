package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/dlwldnjs1009/workout/internal/models"
	"github.com/dlwldnjs1009/workout/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

var (
	testDBOnce sync.Once
	testDBPool *pgxpool.Pool
	testDBErr  error
)

func TestWorkoutSessionServiceCreateAndDashboardFlow(t *testing.T) {
	ctx := context.Background()
	pool := integrationTestPool(t)

	username := createTestUser(t, ctx, pool)
	exerciseID := createTestExercise(t, ctx, pool)

	userRepo := repository.NewUserRepository(pool)
	sessionRepo := repository.NewWorkoutSessionRepository(pool)
	exerciseRepo := repository.NewExerciseTypeRepository(pool)
	mapper := NewSessionMapper(repository.NewExerciseRecordRepository(pool))

	service := NewWorkoutSessionService(pool, userRepo, sessionRepo, exerciseRepo, mapper, time.UTC)
	dashboards := NewDashboardService(userRepo, sessionRepo, mapper)

	weight := 60.0
	detail, err := service.CreateSession(ctx, username, CreateSessionInput{
		DurationMinutes: 45,
		Records: []ExerciseRecordInput{
			{ExerciseID: exerciseID, SetNumber: 1, Reps: 10, WeightKG: &weight},
			{ExerciseID: exerciseID, SetNumber: 2, Reps: 5, WeightKG: &weight},
		},
	})
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if len(detail.Exercises) != 2 {
		t.Fatalf("expected 2 records, got %d", len(detail.Exercises))
	}

	fetched, err := service.GetSession(ctx, username, detail.ID)
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if fetched.ID != detail.ID {
		t.Fatalf("expected session %d, got %d", detail.ID, fetched.ID)
	}

	dashboard, err := dashboards.BuildWorkoutDashboard(ctx, username, "UTC")
	if err != nil {
		t.Fatalf("BuildWorkoutDashboard: %v", err)
	}
	if dashboard.TotalWorkouts != 1 {
		t.Fatalf("expected 1 workout, got %d", dashboard.TotalWorkouts)
	}
	// 60kg x 10 reps + 60kg x 5 reps.
	if dashboard.TotalVolume != 900 {
		t.Fatalf("expected total volume 900, got %v", dashboard.TotalVolume)
	}
	if len(dashboard.RecentSessions) != 1 {
		t.Fatalf("expected 1 recent session, got %d", len(dashboard.RecentSessions))
	}

	if err := service.DeleteSession(ctx, username, detail.ID); err != nil {
		t.Fatalf("DeleteSession: %v", err)
	}
	if _, err := service.GetSession(ctx, username, detail.ID); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestDietServiceSaveAndSummaryFlow(t *testing.T) {
	ctx := context.Background()
	pool := integrationTestPool(t)

	username := createTestUser(t, ctx, pool)

	userRepo := repository.NewUserRepository(pool)
	service := NewDietService(pool, userRepo, repository.NewDietSessionRepository(pool))

	protein := 30.5
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	detail, err := service.SaveSession(ctx, username, SaveDietSessionInput{
		Date: today,
		FoodEntries: []FoodEntryInput{
			{MealType: "BREAKFAST", FoodName: "Oatmeal", Calories: 350, Protein: &protein},
			{MealType: "LUNCH", FoodName: "Chicken Salad", Calories: 520, Protein: &protein},
		},
	})
	if err != nil {
		t.Fatalf("SaveSession: %v", err)
	}
	if len(detail.FoodEntries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(detail.FoodEntries))
	}

	summary, err := service.TodaySummary(ctx, username, "UTC")
	if err != nil {
		t.Fatalf("TodaySummary: %v", err)
	}
	if !summary.HasData {
		t.Fatalf("expected summary data")
	}
	if summary.Calories != 870 {
		t.Fatalf("expected 870 calories, got %d", summary.Calories)
	}
	if summary.Protein != 60 {
		t.Fatalf("expected 60 protein after truncation, got %d", summary.Protein)
	}

	// Saving the same date again replaces the session wholesale.
	replaced, err := service.SaveSession(ctx, username, SaveDietSessionInput{
		Date: today,
		FoodEntries: []FoodEntryInput{
			{MealType: "DINNER", FoodName: "Salmon", Calories: 600},
		},
	})
	if err != nil {
		t.Fatalf("SaveSession replace: %v", err)
	}
	if replaced.ID != detail.ID {
		t.Fatalf("expected same session id %d, got %d", detail.ID, replaced.ID)
	}
	if len(replaced.FoodEntries) != 1 {
		t.Fatalf("expected 1 entry after replace, got %d", len(replaced.FoodEntries))
	}
}

func integrationTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	testDBOnce.Do(func() {
		_ = godotenv.Load(".env")
		_ = godotenv.Load(filepath.Join("..", "..", ".env"))

		dbURL := os.Getenv("DB_URL")
		if dbURL == "" {
			testDBErr = fmt.Errorf("DB_URL is not set")
			return
		}

		cfg, err := pgxpool.ParseConfig(dbURL)
		if err != nil {
			testDBErr = err
			return
		}

		testDBPool, testDBErr = pgxpool.NewWithConfig(context.Background(), cfg)
		if testDBErr != nil {
			return
		}
		testDBErr = testDBPool.Ping(context.Background())
	})

	if testDBErr != nil {
		t.Skipf("skipping integration test: %v", testDBErr)
	}
	return testDBPool
}

func createTestUser(t *testing.T, ctx context.Context, pool *pgxpool.Pool) string {
	t.Helper()

	userRepo := repository.NewUserRepository(pool)
	user := &models.User{
		Username:     fmt.Sprintf("workout-test-%d", time.Now().UnixNano()),
		Email:        fmt.Sprintf("workout-test-%d@example.com", time.Now().UnixNano()),
		PasswordHash: "test-hash",
	}
	if err := userRepo.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if _, err := repository.NewUserProfileRepository(pool).CreateEmpty(ctx, user.ID); err != nil {
		t.Fatalf("CreateEmpty profile: %v", err)
	}

	t.Cleanup(func() {
		if _, err := pool.Exec(ctx, "DELETE FROM users WHERE id = $1", user.ID); err != nil {
			t.Fatalf("cleanup user: %v", err)
		}
	})

	return user.Username
}

func createTestExercise(t *testing.T, ctx context.Context, pool *pgxpool.Pool) int64 {
	t.Helper()

	repo := repository.NewExerciseTypeRepository(pool)
	exercise := &models.ExerciseType{
		Name:        fmt.Sprintf("Test Press %d", time.Now().UnixNano()),
		Category:    "CHEST",
		MuscleGroup: "Pectorals",
	}
	if err := repo.Create(ctx, exercise); err != nil {
		t.Fatalf("Create exercise: %v", err)
	}

	t.Cleanup(func() {
		if _, err := pool.Exec(ctx, "DELETE FROM exercise_types WHERE id = $1", exercise.ID); err != nil {
			t.Fatalf("cleanup exercise: %v", err)
		}
	})

	return exercise.ID
}
