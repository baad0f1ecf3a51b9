package repository

import (
	"context"

	"github.com/dlwldnjs1009/workout/internal/models"
	"github.com/jackc/pgx/v5"
)

type ExerciseTypeRepository struct {
	db DBTX
}

func NewExerciseTypeRepository(db DBTX) *ExerciseTypeRepository {
	return &ExerciseTypeRepository{db: db}
}

func (r *ExerciseTypeRepository) Create(ctx context.Context, exercise *models.ExerciseType) error {
	query := `
		INSERT INTO exercise_types (name, category, muscle_group, description)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	return r.db.QueryRow(
		ctx,
		query,
		exercise.Name,
		exercise.Category,
		exercise.MuscleGroup,
		exercise.Description,
	).Scan(&exercise.ID)
}

func (r *ExerciseTypeRepository) GetByID(ctx context.Context, id int64) (*models.ExerciseType, error) {
	query := `
		SELECT id, name, category, muscle_group, description
		FROM exercise_types
		WHERE id = $1
	`
	var exercise models.ExerciseType
	err := r.db.QueryRow(ctx, query, id).Scan(
		&exercise.ID,
		&exercise.Name,
		&exercise.Category,
		&exercise.MuscleGroup,
		&exercise.Description,
	)
	if err != nil {
		return nil, err
	}
	return &exercise, nil
}

func (r *ExerciseTypeRepository) ListAll(ctx context.Context) ([]models.ExerciseType, error) {
	query := `
		SELECT id, name, category, muscle_group, description
		FROM exercise_types
		ORDER BY id ASC
	`
	return r.list(ctx, query)
}

func (r *ExerciseTypeRepository) ListByCategory(
	ctx context.Context,
	category string,
) ([]models.ExerciseType, error) {
	query := `
		SELECT id, name, category, muscle_group, description
		FROM exercise_types
		WHERE category = $1
		ORDER BY id ASC
	`
	return r.list(ctx, query, category)
}

// CountExisting reports how many of the given exercise ids are present.
// Used to validate record and routine references in one round trip.
func (r *ExerciseTypeRepository) CountExisting(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.QueryRow(
		ctx,
		"SELECT COUNT(DISTINCT id) FROM exercise_types WHERE id = ANY($1)",
		ids,
	).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ExerciseTypeRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM exercise_types WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ExerciseTypeRepository) list(
	ctx context.Context,
	query string,
	args ...any,
) ([]models.ExerciseType, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	exercises := make([]models.ExerciseType, 0)
	for rows.Next() {
		var exercise models.ExerciseType
		if err := rows.Scan(
			&exercise.ID,
			&exercise.Name,
			&exercise.Category,
			&exercise.MuscleGroup,
			&exercise.Description,
		); err != nil {
			return nil, err
		}
		exercises = append(exercises, exercise)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return exercises, nil
}
