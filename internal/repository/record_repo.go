package repository

import (
	"context"

	"github.com/dlwldnjs1009/workout/internal/models"
)

type CreateExerciseRecordInput struct {
	SessionID       int64
	ExerciseID      int64
	SetNumber       int
	Reps            int
	WeightKG        *float64
	DurationSeconds *int
}

type ExerciseRecordRepository struct {
	db DBTX
}

func NewExerciseRecordRepository(db DBTX) *ExerciseRecordRepository {
	return &ExerciseRecordRepository{db: db}
}

func (r *ExerciseRecordRepository) Create(
	ctx context.Context,
	input CreateExerciseRecordInput,
) (*models.ExerciseRecord, error) {
	query := `
		INSERT INTO exercise_records (session_id, exercise_id, set_number, reps, weight_kg, duration_sec)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, session_id, exercise_id, set_number, reps, weight_kg, duration_sec
	`

	var record models.ExerciseRecord
	err := r.db.QueryRow(
		ctx,
		query,
		input.SessionID,
		input.ExerciseID,
		input.SetNumber,
		input.Reps,
		input.WeightKG,
		input.DurationSeconds,
	).Scan(
		&record.ID,
		&record.SessionID,
		&record.ExerciseID,
		&record.SetNumber,
		&record.Reps,
		&record.WeightKG,
		&record.DurationSeconds,
	)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *ExerciseRecordRepository) ListBySessionID(
	ctx context.Context,
	sessionID int64,
) ([]models.ExerciseRecord, error) {
	query := `
		SELECT r.id, r.session_id, r.exercise_id, e.name, r.set_number, r.reps, r.weight_kg, r.duration_sec
		FROM exercise_records r
		JOIN exercise_types e ON e.id = r.exercise_id
		WHERE r.session_id = $1
		ORDER BY r.id ASC
	`
	rows, err := r.db.Query(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]models.ExerciseRecord, 0)
	for rows.Next() {
		var record models.ExerciseRecord
		if err := rows.Scan(
			&record.ID,
			&record.SessionID,
			&record.ExerciseID,
			&record.ExerciseName,
			&record.SetNumber,
			&record.Reps,
			&record.WeightKG,
			&record.DurationSeconds,
		); err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// ListBySessionIDs loads the records for a batch of sessions in one query,
// keyed by session id and ordered by record id within each session.
func (r *ExerciseRecordRepository) ListBySessionIDs(
	ctx context.Context,
	sessionIDs []int64,
) (map[int64][]models.ExerciseRecord, error) {
	recordsBySession := make(map[int64][]models.ExerciseRecord)
	if len(sessionIDs) == 0 {
		return recordsBySession, nil
	}

	query := `
		SELECT r.id, r.session_id, r.exercise_id, e.name, r.set_number, r.reps, r.weight_kg, r.duration_sec
		FROM exercise_records r
		JOIN exercise_types e ON e.id = r.exercise_id
		WHERE r.session_id = ANY($1)
		ORDER BY r.session_id ASC, r.id ASC
	`
	rows, err := r.db.Query(ctx, query, sessionIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var record models.ExerciseRecord
		if err := rows.Scan(
			&record.ID,
			&record.SessionID,
			&record.ExerciseID,
			&record.ExerciseName,
			&record.SetNumber,
			&record.Reps,
			&record.WeightKG,
			&record.DurationSeconds,
		); err != nil {
			return nil, err
		}
		recordsBySession[record.SessionID] = append(recordsBySession[record.SessionID], record)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return recordsBySession, nil
}
