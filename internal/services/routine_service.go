package services

import (
	"context"
	"errors"

	"github.com/dlwldnjs1009/workout/internal/models"
	"github.com/dlwldnjs1009/workout/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type routineRepo interface {
	ListByUserID(ctx context.Context, userID int64) ([]models.WorkoutRoutine, error)
	ListExercisesByRoutineIDs(ctx context.Context, routineIDs []int64) (map[int64][]models.ExerciseType, error)
	Delete(ctx context.Context, routineID, userID int64) error
}

// RoutineService owns reusable workout routines and their exercise sets.
type RoutineService struct {
	db           *pgxpool.Pool
	userRepo     userReader
	routineRepo  routineRepo
	exerciseRepo exerciseExistenceChecker
}

func NewRoutineService(
	db *pgxpool.Pool,
	userRepo userReader,
	routineRepo routineRepo,
	exerciseRepo exerciseExistenceChecker,
) *RoutineService {
	return &RoutineService{
		db:           db,
		userRepo:     userRepo,
		routineRepo:  routineRepo,
		exerciseRepo: exerciseRepo,
	}
}

type CreateRoutineInput struct {
	Name            string
	Description     string
	DurationMinutes int
	Difficulty      string
	ExerciseIDs     []int64
}

func (s *RoutineService) CreateRoutine(
	ctx context.Context,
	username string,
	input CreateRoutineInput,
) (*models.WorkoutRoutineDetail, error) {
	if input.Name == "" || input.Description == "" || input.DurationMinutes <= 0 {
		return nil, ErrInvalidInput
	}
	if !models.IsRoutineDifficulty(input.Difficulty) {
		return nil, ErrInvalidInput
	}

	user, err := s.resolveUser(ctx, username)
	if err != nil {
		return nil, err
	}

	exerciseIDs := uniqueIDs(input.ExerciseIDs)
	if len(exerciseIDs) > 0 {
		existing, err := s.exerciseRepo.CountExisting(ctx, exerciseIDs)
		if err != nil {
			return nil, err
		}
		if existing != int64(len(exerciseIDs)) {
			return nil, ErrExerciseNotFound
		}
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txRoutineRepo := repository.NewWorkoutRoutineRepository(tx)

	routine, err := txRoutineRepo.Create(ctx, repository.CreateWorkoutRoutineInput{
		UserID:          user.ID,
		Name:            input.Name,
		Description:     input.Description,
		DurationMinutes: input.DurationMinutes,
		Difficulty:      input.Difficulty,
	})
	if err != nil {
		return nil, err
	}

	for _, exerciseID := range exerciseIDs {
		if err := txRoutineRepo.AddExercise(ctx, routine.ID, exerciseID); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	exercisesByRoutine, err := s.routineRepo.ListExercisesByRoutineIDs(ctx, []int64{routine.ID})
	if err != nil {
		return nil, err
	}
	exercises := exercisesByRoutine[routine.ID]
	if exercises == nil {
		exercises = make([]models.ExerciseType, 0)
	}

	return &models.WorkoutRoutineDetail{
		WorkoutRoutine: *routine,
		Exercises:      exercises,
	}, nil
}

func (s *RoutineService) ListRoutines(
	ctx context.Context,
	username string,
) ([]models.WorkoutRoutineDetail, error) {
	user, err := s.resolveUser(ctx, username)
	if err != nil {
		return nil, err
	}

	routines, err := s.routineRepo.ListByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	routineIDs := make([]int64, 0, len(routines))
	for _, routine := range routines {
		routineIDs = append(routineIDs, routine.ID)
	}

	exercisesByRoutine, err := s.routineRepo.ListExercisesByRoutineIDs(ctx, routineIDs)
	if err != nil {
		return nil, err
	}

	details := make([]models.WorkoutRoutineDetail, 0, len(routines))
	for _, routine := range routines {
		exercises := exercisesByRoutine[routine.ID]
		if exercises == nil {
			exercises = make([]models.ExerciseType, 0)
		}
		details = append(details, models.WorkoutRoutineDetail{
			WorkoutRoutine: routine,
			Exercises:      exercises,
		})
	}

	return details, nil
}

func (s *RoutineService) DeleteRoutine(ctx context.Context, username string, routineID int64) error {
	user, err := s.resolveUser(ctx, username)
	if err != nil {
		return err
	}

	if err := s.routineRepo.Delete(ctx, routineID, user.ID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *RoutineService) resolveUser(ctx context.Context, username string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
