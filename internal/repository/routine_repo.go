package repository

import (
	"context"

	"github.com/dlwldnjs1009/workout/internal/models"
	"github.com/jackc/pgx/v5"
)

type CreateWorkoutRoutineInput struct {
	UserID          int64
	Name            string
	Description     string
	DurationMinutes int
	Difficulty      string
}

type WorkoutRoutineRepository struct {
	db DBTX
}

func NewWorkoutRoutineRepository(db DBTX) *WorkoutRoutineRepository {
	return &WorkoutRoutineRepository{db: db}
}

func (r *WorkoutRoutineRepository) Create(
	ctx context.Context,
	input CreateWorkoutRoutineInput,
) (*models.WorkoutRoutine, error) {
	query := `
		INSERT INTO workout_routines (user_id, name, description, duration_min, difficulty)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, user_id, name, description, duration_min, difficulty, created_at
	`

	var routine models.WorkoutRoutine
	err := r.db.QueryRow(
		ctx,
		query,
		input.UserID,
		input.Name,
		input.Description,
		input.DurationMinutes,
		input.Difficulty,
	).Scan(
		&routine.ID,
		&routine.UserID,
		&routine.Name,
		&routine.Description,
		&routine.DurationMinutes,
		&routine.Difficulty,
		&routine.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &routine, nil
}

func (r *WorkoutRoutineRepository) AddExercise(ctx context.Context, routineID, exerciseID int64) error {
	_, err := r.db.Exec(
		ctx,
		"INSERT INTO routine_exercises (routine_id, exercise_id) VALUES ($1, $2) ON CONFLICT DO NOTHING",
		routineID,
		exerciseID,
	)
	return err
}

func (r *WorkoutRoutineRepository) ListByUserID(ctx context.Context, userID int64) ([]models.WorkoutRoutine, error) {
	query := `
		SELECT id, user_id, name, description, duration_min, difficulty, created_at
		FROM workout_routines
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	routines := make([]models.WorkoutRoutine, 0)
	for rows.Next() {
		var routine models.WorkoutRoutine
		if err := rows.Scan(
			&routine.ID,
			&routine.UserID,
			&routine.Name,
			&routine.Description,
			&routine.DurationMinutes,
			&routine.Difficulty,
			&routine.CreatedAt,
		); err != nil {
			return nil, err
		}
		routines = append(routines, routine)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return routines, nil
}

// ListExercisesByRoutineIDs loads the exercise sets for a batch of routines
// in one query, keyed by routine id.
func (r *WorkoutRoutineRepository) ListExercisesByRoutineIDs(
	ctx context.Context,
	routineIDs []int64,
) (map[int64][]models.ExerciseType, error) {
	exercisesByRoutine := make(map[int64][]models.ExerciseType)
	if len(routineIDs) == 0 {
		return exercisesByRoutine, nil
	}

	query := `
		SELECT re.routine_id, e.id, e.name, e.category, e.muscle_group, e.description
		FROM routine_exercises re
		JOIN exercise_types e ON e.id = re.exercise_id
		WHERE re.routine_id = ANY($1)
		ORDER BY re.routine_id ASC, e.id ASC
	`
	rows, err := r.db.Query(ctx, query, routineIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var routineID int64
		var exercise models.ExerciseType
		if err := rows.Scan(
			&routineID,
			&exercise.ID,
			&exercise.Name,
			&exercise.Category,
			&exercise.MuscleGroup,
			&exercise.Description,
		); err != nil {
			return nil, err
		}
		exercisesByRoutine[routineID] = append(exercisesByRoutine[routineID], exercise)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return exercisesByRoutine, nil
}

func (r *WorkoutRoutineRepository) Delete(ctx context.Context, routineID int64, userID int64) error {
	tag, err := r.db.Exec(
		ctx,
		"DELETE FROM workout_routines WHERE id = $1 AND user_id = $2",
		routineID,
		userID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *WorkoutRoutineRepository) GetByIDAndUser(
	ctx context.Context,
	routineID int64,
	userID int64,
) (*models.WorkoutRoutine, error) {
	query := `
		SELECT id, user_id, name, description, duration_min, difficulty, created_at
		FROM workout_routines
		WHERE id = $1 AND user_id = $2
	`
	var routine models.WorkoutRoutine
	err := r.db.QueryRow(ctx, query, routineID, userID).Scan(
		&routine.ID,
		&routine.UserID,
		&routine.Name,
		&routine.Description,
		&routine.DurationMinutes,
		&routine.Difficulty,
		&routine.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &routine, nil
}
