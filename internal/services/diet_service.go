package services

import (
	"context"
	"errors"
	"time"

	"github.com/dlwldnjs1009/workout/internal/models"
	"github.com/dlwldnjs1009/workout/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type dietSessionRepo interface {
	GetByIDAndUser(ctx context.Context, sessionID, userID int64) (*models.DietSession, error)
	GetByUserAndDate(ctx context.Context, userID int64, date time.Time) (*models.DietSession, error)
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]models.DietSession, error)
	ListFoodEntries(ctx context.Context, sessionID int64) ([]models.FoodEntry, error)
	ListFoodEntriesBySessionIDs(ctx context.Context, sessionIDs []int64) (map[int64][]models.FoodEntry, error)
	Delete(ctx context.Context, sessionID, userID int64) error
}

// DietService owns diet sessions with their food entries and the daily
// macro summary for the diet dashboard.
type DietService struct {
	db       *pgxpool.Pool
	userRepo userReader
	dietRepo dietSessionRepo

	now func() time.Time
}

func NewDietService(db *pgxpool.Pool, userRepo userReader, dietRepo dietSessionRepo) *DietService {
	return &DietService{
		db:       db,
		userRepo: userRepo,
		dietRepo: dietRepo,
		now:      time.Now,
	}
}

// TodaySummary sums the macros of the diet session dated "today" in the
// caller's timezone. Without a session every field is zero and HasData is
// false. Macro values are truncated to integers entry by entry.
func (s *DietService) TodaySummary(
	ctx context.Context,
	username string,
	timezone string,
) (*models.DietDailySummary, error) {
	user, err := s.resolveUser(ctx, username)
	if err != nil {
		return nil, err
	}

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, ErrInvalidTimezone
	}

	now := s.now().In(loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	session, err := s.dietRepo.GetByUserAndDate(ctx, user.ID, today)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &models.DietDailySummary{}, nil
		}
		return nil, err
	}

	entries, err := s.dietRepo.ListFoodEntries(ctx, session.ID)
	if err != nil {
		return nil, err
	}

	summary := models.DietDailySummary{HasData: true}
	for _, entry := range entries {
		summary.Calories += entry.Calories
		summary.Protein += truncatedMacro(entry.Protein)
		summary.Carbs += truncatedMacro(entry.Carbs)
		summary.Fat += truncatedMacro(entry.Fat)
	}

	return &summary, nil
}

func (s *DietService) ListSessions(
	ctx context.Context,
	username string,
	limit int,
	offset int,
) ([]models.DietSessionDetail, error) {
	user, err := s.resolveUser(ctx, username)
	if err != nil {
		return nil, err
	}

	if limit <= 0 || limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	sessions, err := s.dietRepo.ListByUser(ctx, user.ID, limit, offset)
	if err != nil {
		return nil, err
	}

	sessionIDs := make([]int64, 0, len(sessions))
	for _, session := range sessions {
		sessionIDs = append(sessionIDs, session.ID)
	}

	entriesBySession, err := s.dietRepo.ListFoodEntriesBySessionIDs(ctx, sessionIDs)
	if err != nil {
		return nil, err
	}

	details := make([]models.DietSessionDetail, 0, len(sessions))
	for _, session := range sessions {
		entries := entriesBySession[session.ID]
		if entries == nil {
			entries = make([]models.FoodEntry, 0)
		}
		details = append(details, models.DietSessionDetail{
			DietSession: session,
			FoodEntries: entries,
		})
	}

	return details, nil
}

func (s *DietService) GetSession(
	ctx context.Context,
	username string,
	sessionID int64,
) (*models.DietSessionDetail, error) {
	user, err := s.resolveUser(ctx, username)
	if err != nil {
		return nil, err
	}

	session, err := s.dietRepo.GetByIDAndUser(ctx, sessionID, user.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return s.withEntries(ctx, session)
}

func (s *DietService) GetSessionByDate(
	ctx context.Context,
	username string,
	date time.Time,
) (*models.DietSessionDetail, error) {
	user, err := s.resolveUser(ctx, username)
	if err != nil {
		return nil, err
	}

	session, err := s.dietRepo.GetByUserAndDate(ctx, user.ID, date)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return s.withEntries(ctx, session)
}

type FoodEntryInput struct {
	MealType string
	FoodName string
	Calories int
	Protein  *float64
	Carbs    *float64
	Fat      *float64
}

type SaveDietSessionInput struct {
	ID          *int64
	Date        time.Time
	Notes       *string
	FoodEntries []FoodEntryInput
}

// SaveSession creates or replaces the diet session for a calendar date.
// An explicit id updates that session; otherwise an existing session on the
// same date is replaced, keeping the one-session-per-date invariant. The
// food entry set is always rewritten wholesale.
func (s *DietService) SaveSession(
	ctx context.Context,
	username string,
	input SaveDietSessionInput,
) (*models.DietSessionDetail, error) {
	for _, entry := range input.FoodEntries {
		if entry.FoodName == "" || !models.IsMealType(entry.MealType) {
			return nil, ErrInvalidInput
		}
	}

	user, err := s.resolveUser(ctx, username)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txDietRepo := repository.NewDietSessionRepository(tx)

	var session *models.DietSession
	switch {
	case input.ID != nil:
		session, err = txDietRepo.Update(ctx, *input.ID, user.ID, input.Date, input.Notes)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		if err := txDietRepo.DeleteFoodEntries(ctx, session.ID); err != nil {
			return nil, err
		}
	default:
		existing, err := txDietRepo.GetByUserAndDate(ctx, user.ID, input.Date)
		switch {
		case err == nil:
			session, err = txDietRepo.Update(ctx, existing.ID, user.ID, input.Date, input.Notes)
			if err != nil {
				return nil, err
			}
			if err := txDietRepo.DeleteFoodEntries(ctx, session.ID); err != nil {
				return nil, err
			}
		case errors.Is(err, pgx.ErrNoRows):
			session, err = txDietRepo.Create(ctx, repository.CreateDietSessionInput{
				UserID: user.ID,
				Date:   input.Date,
				Notes:  input.Notes,
			})
			if err != nil {
				return nil, err
			}
		default:
			return nil, err
		}
	}

	entries := make([]models.FoodEntry, 0, len(input.FoodEntries))
	for _, entryInput := range input.FoodEntries {
		entry, err := txDietRepo.CreateFoodEntry(ctx, repository.CreateFoodEntryInput{
			DietSessionID: session.ID,
			MealType:      entryInput.MealType,
			FoodName:      entryInput.FoodName,
			Calories:      entryInput.Calories,
			Protein:       entryInput.Protein,
			Carbs:         entryInput.Carbs,
			Fat:           entryInput.Fat,
		})
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &models.DietSessionDetail{
		DietSession: *session,
		FoodEntries: entries,
	}, nil
}

func (s *DietService) DeleteSession(ctx context.Context, username string, sessionID int64) error {
	user, err := s.resolveUser(ctx, username)
	if err != nil {
		return err
	}

	if err := s.dietRepo.Delete(ctx, sessionID, user.ID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *DietService) resolveUser(ctx context.Context, username string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *DietService) withEntries(
	ctx context.Context,
	session *models.DietSession,
) (*models.DietSessionDetail, error) {
	entries, err := s.dietRepo.ListFoodEntries(ctx, session.ID)
	if err != nil {
		return nil, err
	}
	return &models.DietSessionDetail{
		DietSession: *session,
		FoodEntries: entries,
	}, nil
}

// truncatedMacro keeps the integer-per-entry accumulation rule for macro
// sums: each entry's fractional grams are dropped before adding.
func truncatedMacro(v *float64) int {
	if v == nil {
		return 0
	}
	return int(*v)
}
