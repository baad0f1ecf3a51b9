package repository

import (
	"context"
	"time"

	"github.com/dlwldnjs1009/workout/internal/models"
	"github.com/jackc/pgx/v5"
)

type CreateDietSessionInput struct {
	UserID int64
	Date   time.Time
	Notes  *string
}

type CreateFoodEntryInput struct {
	DietSessionID int64
	MealType      string
	FoodName      string
	Calories      int
	Protein       *float64
	Carbs         *float64
	Fat           *float64
}

type DietSessionRepository struct {
	db DBTX
}

func NewDietSessionRepository(db DBTX) *DietSessionRepository {
	return &DietSessionRepository{db: db}
}

func (r *DietSessionRepository) Create(
	ctx context.Context,
	input CreateDietSessionInput,
) (*models.DietSession, error) {
	query := `
		INSERT INTO diet_sessions (user_id, date, notes)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, date, notes, created_at
	`
	var session models.DietSession
	err := r.db.QueryRow(ctx, query, input.UserID, input.Date, input.Notes).Scan(
		&session.ID,
		&session.UserID,
		&session.Date,
		&session.Notes,
		&session.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *DietSessionRepository) GetByIDAndUser(
	ctx context.Context,
	sessionID int64,
	userID int64,
) (*models.DietSession, error) {
	query := `
		SELECT id, user_id, date, notes, created_at
		FROM diet_sessions
		WHERE id = $1 AND user_id = $2
	`
	var session models.DietSession
	err := r.db.QueryRow(ctx, query, sessionID, userID).Scan(
		&session.ID,
		&session.UserID,
		&session.Date,
		&session.Notes,
		&session.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// GetByUserAndDate returns the single diet session for the calendar date, if
// any. At most one exists per user per date.
func (r *DietSessionRepository) GetByUserAndDate(
	ctx context.Context,
	userID int64,
	date time.Time,
) (*models.DietSession, error) {
	query := `
		SELECT id, user_id, date, notes, created_at
		FROM diet_sessions
		WHERE user_id = $1 AND date = $2
	`
	var session models.DietSession
	err := r.db.QueryRow(ctx, query, userID, date).Scan(
		&session.ID,
		&session.UserID,
		&session.Date,
		&session.Notes,
		&session.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *DietSessionRepository) ListByUser(
	ctx context.Context,
	userID int64,
	limit int,
	offset int,
) ([]models.DietSession, error) {
	query := `
		SELECT id, user_id, date, notes, created_at
		FROM diet_sessions
		WHERE user_id = $1
		ORDER BY date DESC, id DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := make([]models.DietSession, 0)
	for rows.Next() {
		var session models.DietSession
		if err := rows.Scan(
			&session.ID,
			&session.UserID,
			&session.Date,
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

func (r *DietSessionRepository) Update(
	ctx context.Context,
	sessionID int64,
	userID int64,
	date time.Time,
	notes *string,
) (*models.DietSession, error) {
	query := `
		UPDATE diet_sessions
		SET date = $3, notes = $4
		WHERE id = $1 AND user_id = $2
		RETURNING id, user_id, date, notes, created_at
	`
	var session models.DietSession
	err := r.db.QueryRow(ctx, query, sessionID, userID, date, notes).Scan(
		&session.ID,
		&session.UserID,
		&session.Date,
		&session.Notes,
		&session.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *DietSessionRepository) Delete(ctx context.Context, sessionID int64, userID int64) error {
	tag, err := r.db.Exec(
		ctx,
		"DELETE FROM diet_sessions WHERE id = $1 AND user_id = $2",
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

func (r *DietSessionRepository) CreateFoodEntry(
	ctx context.Context,
	input CreateFoodEntryInput,
) (*models.FoodEntry, error) {
	query := `
		INSERT INTO food_entries (diet_session_id, meal_type, food_name, calories, protein, carbs, fat)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, diet_session_id, meal_type, food_name, calories, protein, carbs, fat
	`
	var entry models.FoodEntry
	err := r.db.QueryRow(
		ctx,
		query,
		input.DietSessionID,
		input.MealType,
		input.FoodName,
		input.Calories,
		input.Protein,
		input.Carbs,
		input.Fat,
	).Scan(
		&entry.ID,
		&entry.DietSessionID,
		&entry.MealType,
		&entry.FoodName,
		&entry.Calories,
		&entry.Protein,
		&entry.Carbs,
		&entry.Fat,
	)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *DietSessionRepository) DeleteFoodEntries(ctx context.Context, sessionID int64) error {
	_, err := r.db.Exec(ctx, "DELETE FROM food_entries WHERE diet_session_id = $1", sessionID)
	return err
}

func (r *DietSessionRepository) ListFoodEntries(
	ctx context.Context,
	sessionID int64,
) ([]models.FoodEntry, error) {
	query := `
		SELECT id, diet_session_id, meal_type, food_name, calories, protein, carbs, fat
		FROM food_entries
		WHERE diet_session_id = $1
		ORDER BY id ASC
	`
	rows, err := r.db.Query(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]models.FoodEntry, 0)
	for rows.Next() {
		var entry models.FoodEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.DietSessionID,
			&entry.MealType,
			&entry.FoodName,
			&entry.Calories,
			&entry.Protein,
			&entry.Carbs,
			&entry.Fat,
		); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

// ListFoodEntriesBySessionIDs loads entries for a batch of sessions in one
// query, keyed by session id.
func (r *DietSessionRepository) ListFoodEntriesBySessionIDs(
	ctx context.Context,
	sessionIDs []int64,
) (map[int64][]models.FoodEntry, error) {
	entriesBySession := make(map[int64][]models.FoodEntry)
	if len(sessionIDs) == 0 {
		return entriesBySession, nil
	}

	query := `
		SELECT id, diet_session_id, meal_type, food_name, calories, protein, carbs, fat
		FROM food_entries
		WHERE diet_session_id = ANY($1)
		ORDER BY diet_session_id ASC, id ASC
	`
	rows, err := r.db.Query(ctx, query, sessionIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var entry models.FoodEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.DietSessionID,
			&entry.MealType,
			&entry.FoodName,
			&entry.Calories,
			&entry.Protein,
			&entry.Carbs,
			&entry.Fat,
		); err != nil {
			return nil, err
		}
		entriesBySession[entry.DietSessionID] = append(entriesBySession[entry.DietSessionID], entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entriesBySession, nil
}
