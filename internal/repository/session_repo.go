package repository

import (
	"context"
	"time"

	"github.com/dlwldnjs1009/workout/internal/models"
	"github.com/jackc/pgx/v5"
)

type CreateWorkoutSessionInput struct {
	UserID          int64
	RoutineID       *int64
	Date            time.Time
	DurationMinutes int
	Notes           *string
}

// SessionVolume is one (session date, total volume) pair for the volume
// chart. Volume is nil when the session has no weighted exercise records.
type SessionVolume struct {
	Date   time.Time
	Volume *float64
}

// DateCount is a sparse per-calendar-date session count for the heatmap.
type DateCount struct {
	Date  time.Time
	Count int64
}

type WorkoutSessionRepository struct {
	db DBTX
}

func NewWorkoutSessionRepository(db DBTX) *WorkoutSessionRepository {
	return &WorkoutSessionRepository{db: db}
}

func (r *WorkoutSessionRepository) Create(
	ctx context.Context,
	input CreateWorkoutSessionInput,
) (*models.WorkoutSession, error) {
	query := `
		INSERT INTO workout_sessions (user_id, routine_id, date, duration_min, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, user_id, routine_id, date, duration_min, notes, created_at
	`

	var session models.WorkoutSession
	err := r.db.QueryRow(
		ctx,
		query,
		input.UserID,
		input.RoutineID,
		input.Date,
		input.DurationMinutes,
		input.Notes,
	).Scan(
		&session.ID,
		&session.UserID,
		&session.RoutineID,
		&session.Date,
		&session.DurationMinutes,
		&session.Notes,
		&session.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *WorkoutSessionRepository) GetByIDAndUser(
	ctx context.Context,
	sessionID int64,
	userID int64,
) (*models.WorkoutSession, error) {
	query := `
		SELECT id, user_id, routine_id, date, duration_min, notes, created_at
		FROM workout_sessions
		WHERE id = $1 AND user_id = $2
	`
	var session models.WorkoutSession
	err := r.db.QueryRow(ctx, query, sessionID, userID).Scan(
		&session.ID,
		&session.UserID,
		&session.RoutineID,
		&session.Date,
		&session.DurationMinutes,
		&session.Notes,
		&session.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *WorkoutSessionRepository) ListByUser(
	ctx context.Context,
	userID int64,
	limit int,
	offset int,
) ([]models.WorkoutSession, error) {
	query := `
		SELECT id, user_id, routine_id, date, duration_min, notes, created_at
		FROM workout_sessions
		WHERE user_id = $1
		ORDER BY date DESC, id DESC
		LIMIT $2 OFFSET $3
	`
	return r.list(ctx, query, userID, limit, offset)
}

func (r *WorkoutSessionRepository) ListByUserAndDateRange(
	ctx context.Context,
	userID int64,
	start time.Time,
	end time.Time,
) ([]models.WorkoutSession, error) {
	query := `
		SELECT id, user_id, routine_id, date, duration_min, notes, created_at
		FROM workout_sessions
		WHERE user_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date DESC, id DESC
	`
	return r.list(ctx, query, userID, start, end)
}

func (r *WorkoutSessionRepository) Delete(ctx context.Context, sessionID int64, userID int64) error {
	tag, err := r.db.Exec(
		ctx,
		"DELETE FROM workout_sessions WHERE id = $1 AND user_id = $2",
		sessionID,
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

// SumTotalVolume returns the lifetime sum of weight*reps across all of the
// user's exercise records, or nil when the user has none.
func (r *WorkoutSessionRepository) SumTotalVolume(ctx context.Context, userID int64) (*float64, error) {
	query := `
		SELECT SUM(COALESCE(r.weight_kg, 0) * r.reps)
		FROM exercise_records r
		JOIN workout_sessions s ON s.id = r.session_id
		WHERE s.user_id = $1
	`
	var total *float64
	if err := r.db.QueryRow(ctx, query, userID).Scan(&total); err != nil {
		return nil, err
	}
	return total, nil
}

func (r *WorkoutSessionRepository) CountByUser(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(
		ctx,
		"SELECT COUNT(*) FROM workout_sessions WHERE user_id = $1",
		userID,
	).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *WorkoutSessionRepository) CountByUserSince(
	ctx context.Context,
	userID int64,
	since time.Time,
) (int64, error) {
	var count int64
	err := r.db.QueryRow(
		ctx,
		"SELECT COUNT(*) FROM workout_sessions WHERE user_id = $1 AND date >= $2",
		userID,
		since,
	).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// RecentByUser returns the user's most recent sessions, newest first.
// Same-instant ties are broken by id descending.
func (r *WorkoutSessionRepository) RecentByUser(
	ctx context.Context,
	userID int64,
	limit int,
) ([]models.WorkoutSession, error) {
	query := `
		SELECT id, user_id, routine_id, date, duration_min, notes, created_at
		FROM workout_sessions
		WHERE user_id = $1
		ORDER BY date DESC, id DESC
		LIMIT $2
	`
	return r.list(ctx, query, userID, limit)
}

// RecentSessionVolumes returns per-session volume totals for the newest
// sessions, newest first. Sessions without any records yield a nil volume.
func (r *WorkoutSessionRepository) RecentSessionVolumes(
	ctx context.Context,
	userID int64,
	limit int,
) ([]SessionVolume, error) {
	query := `
		SELECT s.date, SUM(COALESCE(r.weight_kg, 0) * r.reps)
		FROM workout_sessions s
		LEFT JOIN exercise_records r ON r.session_id = s.id
		WHERE s.user_id = $1
		GROUP BY s.id, s.date
		ORDER BY s.date DESC, s.id DESC
		LIMIT $2
	`
	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	volumes := make([]SessionVolume, 0)
	for rows.Next() {
		var volume SessionVolume
		if err := rows.Scan(&volume.Date, &volume.Volume); err != nil {
			return nil, err
		}
		volumes = append(volumes, volume)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return volumes, nil
}

// CountSessionsByDate returns per-calendar-date session counts since the
// given instant, bucketed on the calendar date in the given zone. Dates
// without sessions are simply absent.
func (r *WorkoutSessionRepository) CountSessionsByDate(
	ctx context.Context,
	userID int64,
	since time.Time,
	zone string,
) ([]DateCount, error) {
	query := `
		SELECT (date AT TIME ZONE $3)::date, COUNT(*)
		FROM workout_sessions
		WHERE user_id = $1 AND date >= $2
		GROUP BY (date AT TIME ZONE $3)::date
		ORDER BY (date AT TIME ZONE $3)::date
	`
	rows, err := r.db.Query(ctx, query, userID, since, zone)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make([]DateCount, 0)
	for rows.Next() {
		var count DateCount
		if err := rows.Scan(&count.Date, &count.Count); err != nil {
			return nil, err
		}
		counts = append(counts, count)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return counts, nil
}

func (r *WorkoutSessionRepository) list(
	ctx context.Context,
	query string,
	args ...any,
) ([]models.WorkoutSession, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := make([]models.WorkoutSession, 0)
	for rows.Next() {
		var session models.WorkoutSession
		if err := rows.Scan(
			&session.ID,
			&session.UserID,
			&session.RoutineID,
			&session.Date,
			&session.DurationMinutes,
			&session.Notes,
			&session.CreatedAt,
		); err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sessions, nil
}
