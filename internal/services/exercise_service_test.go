package services

import (
	"context"
	"errors"
	"testing"

	"github.com/coocood/freecache"
	"github.com/dlwldnjs1009/workout/internal/models"
	"github.com/jackc/pgx/v5"
)

type stubExerciseTypeRepo struct {
	exercises []models.ExerciseType
	listCalls int
	deleteErr error
}

func (r *stubExerciseTypeRepo) Create(_ context.Context, exercise *models.ExerciseType) error {
	exercise.ID = int64(len(r.exercises) + 1)
	r.exercises = append(r.exercises, *exercise)
	return nil
}

func (r *stubExerciseTypeRepo) ListAll(_ context.Context) ([]models.ExerciseType, error) {
	r.listCalls++
	return r.exercises, nil
}

func (r *stubExerciseTypeRepo) ListByCategory(_ context.Context, category string) ([]models.ExerciseType, error) {
	r.listCalls++
	matched := make([]models.ExerciseType, 0)
	for _, exercise := range r.exercises {
		if exercise.Category == category {
			matched = append(matched, exercise)
		}
	}
	return matched, nil
}

func (r *stubExerciseTypeRepo) Delete(_ context.Context, _ int64) error {
	return r.deleteErr
}

func newExerciseServiceForTest(repo *stubExerciseTypeRepo) *ExerciseService {
	return &ExerciseService{
		repo:  repo,
		cache: freecache.NewCache(exerciseCacheSize),
	}
}

func TestExerciseServiceListUsesCacheOnSecondRead(t *testing.T) {
	repo := &stubExerciseTypeRepo{
		exercises: []models.ExerciseType{
			{ID: 1, Name: "Bench Press", Category: "CHEST"},
			{ID: 2, Name: "Squat", Category: "LEGS"},
		},
	}
	service := newExerciseServiceForTest(repo)

	first, err := service.ListExercises(context.Background())
	if err != nil {
		t.Fatalf("ListExercises: %v", err)
	}
	second, err := service.ListExercises(context.Background())
	if err != nil {
		t.Fatalf("ListExercises (cached): %v", err)
	}

	if repo.listCalls != 1 {
		t.Fatalf("expected a single repository read, got %d", repo.listCalls)
	}
	if len(first) != 2 || len(second) != 2 {
		t.Fatalf("expected 2 exercises in both reads, got %d and %d", len(first), len(second))
	}
	if second[0].Name != "Bench Press" {
		t.Fatalf("unexpected cached exercise: %+v", second[0])
	}
}

func TestExerciseServiceCreateEvictsCache(t *testing.T) {
	repo := &stubExerciseTypeRepo{
		exercises: []models.ExerciseType{{ID: 1, Name: "Bench Press", Category: "CHEST"}},
	}
	service := newExerciseServiceForTest(repo)

	if _, err := service.ListExercises(context.Background()); err != nil {
		t.Fatalf("ListExercises: %v", err)
	}

	if _, err := service.CreateExercise(context.Background(), "Incline Press", "CHEST"); err != nil {
		t.Fatalf("CreateExercise: %v", err)
	}

	exercises, err := service.ListExercises(context.Background())
	if err != nil {
		t.Fatalf("ListExercises after create: %v", err)
	}
	if repo.listCalls != 2 {
		t.Fatalf("expected cache eviction to force a re-read, got %d calls", repo.listCalls)
	}
	if len(exercises) != 2 {
		t.Fatalf("expected 2 exercises, got %d", len(exercises))
	}
}

func TestExerciseServiceRejectsUnknownCategory(t *testing.T) {
	service := newExerciseServiceForTest(&stubExerciseTypeRepo{})

	if _, err := service.ListExercisesByCategory(context.Background(), "NECK"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := service.CreateExercise(context.Background(), "Neck Curl", "NECK"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := service.CreateExercise(context.Background(), "", "CHEST"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty name, got %v", err)
	}
}

func TestExerciseServiceDeleteMapsMissingRow(t *testing.T) {
	service := newExerciseServiceForTest(&stubExerciseTypeRepo{deleteErr: pgx.ErrNoRows})

	if err := service.DeleteExercise(context.Background(), 404); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
