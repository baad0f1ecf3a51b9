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

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrInvalidTimezone  = errors.New("invalid timezone")
	ErrNotFound         = errors.New("not found")
	ErrDuplicate        = errors.New("duplicate resource")
	ErrInvalidInput     = errors.New("invalid input")
	ErrExerciseNotFound = errors.New("exercise not found")
)

type userReader interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

type exerciseExistenceChecker interface {
	CountExisting(ctx context.Context, ids []int64) (int64, error)
}

// WorkoutSessionService owns the workout session lifecycle: creation with
// child exercise records, listing, lookup and deletion.
type WorkoutSessionService struct {
	db           *pgxpool.Pool
	userRepo     userReader
	sessionRepo  *repository.WorkoutSessionRepository
	exerciseRepo exerciseExistenceChecker
	mapper       *SessionMapper

	// defaultZone is the configured zone used when defaulting session dates.
	defaultZone *time.Location
	now         func() time.Time
}

func NewWorkoutSessionService(
	db *pgxpool.Pool,
	userRepo userReader,
	sessionRepo *repository.WorkoutSessionRepository,
	exerciseRepo exerciseExistenceChecker,
	mapper *SessionMapper,
	defaultZone *time.Location,
) *WorkoutSessionService {
	return &WorkoutSessionService{
		db:           db,
		userRepo:     userRepo,
		sessionRepo:  sessionRepo,
		exerciseRepo: exerciseRepo,
		mapper:       mapper,
		defaultZone:  defaultZone,
		now:          time.Now,
	}
}

type ExerciseRecordInput struct {
	ExerciseID      int64
	SetNumber       int
	Reps            int
	WeightKG        *float64
	DurationSeconds *int
}

type CreateSessionInput struct {
	Date            *time.Time
	RoutineID       *int64
	DurationMinutes int
	Notes           *string
	Records         []ExerciseRecordInput
}

func (s *WorkoutSessionService) CreateSession(
	ctx context.Context,
	username string,
	input CreateSessionInput,
) (*models.WorkoutSessionDetail, error) {
	if input.DurationMinutes <= 0 {
		return nil, ErrInvalidInput
	}
	exerciseIDs := make([]int64, 0, len(input.Records))
	for _, record := range input.Records {
		if record.SetNumber < 1 || record.Reps < 1 {
			return nil, ErrInvalidInput
		}
		exerciseIDs = append(exerciseIDs, record.ExerciseID)
	}

	user, err := s.resolveUser(ctx, username)
	if err != nil {
		return nil, err
	}

	if len(exerciseIDs) > 0 {
		existing, err := s.exerciseRepo.CountExisting(ctx, exerciseIDs)
		if err != nil {
			return nil, err
		}
		if existing != int64(len(uniqueIDs(exerciseIDs))) {
			return nil, ErrExerciseNotFound
		}
	}

	date := resolveSessionDate(input.Date, s.defaultZone, s.now())

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txSessionRepo := repository.NewWorkoutSessionRepository(tx)
	txRecordRepo := repository.NewExerciseRecordRepository(tx)

	session, err := txSessionRepo.Create(ctx, repository.CreateWorkoutSessionInput{
		UserID:          user.ID,
		RoutineID:       input.RoutineID,
		Date:            date,
		DurationMinutes: input.DurationMinutes,
		Notes:           input.Notes,
	})
	if err != nil {
		return nil, err
	}

	for _, record := range input.Records {
		if _, err := txRecordRepo.Create(ctx, repository.CreateExerciseRecordInput{
			SessionID:       session.ID,
			ExerciseID:      record.ExerciseID,
			SetNumber:       record.SetNumber,
			Reps:            record.Reps,
			WeightKG:        record.WeightKG,
			DurationSeconds: record.DurationSeconds,
		}); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return s.mapper.ToDetail(ctx, *session)
}

type SessionListFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Limit     int
	Offset    int
}

func (s *WorkoutSessionService) ListSessions(
	ctx context.Context,
	username string,
	filter SessionListFilter,
) ([]models.WorkoutSessionDetail, error) {
	user, err := s.resolveUser(ctx, username)
	if err != nil {
		return nil, err
	}

	var sessions []models.WorkoutSession
	if filter.StartDate != nil && filter.EndDate != nil {
		start, end := rangeBounds(*filter.StartDate, *filter.EndDate, s.defaultZone)
		sessions, err = s.sessionRepo.ListByUserAndDateRange(ctx, user.ID, start, end)
	} else {
		limit := filter.Limit
		if limit <= 0 || limit > 100 {
			limit = 100
		}
		offset := filter.Offset
		if offset < 0 {
			offset = 0
		}
		sessions, err = s.sessionRepo.ListByUser(ctx, user.ID, limit, offset)
	}
	if err != nil {
		return nil, err
	}

	return s.mapper.ToDetails(ctx, sessions)
}

func (s *WorkoutSessionService) GetSession(
	ctx context.Context,
	username string,
	sessionID int64,
) (*models.WorkoutSessionDetail, error) {
	user, err := s.resolveUser(ctx, username)
	if err != nil {
		return nil, err
	}

	session, err := s.sessionRepo.GetByIDAndUser(ctx, sessionID, user.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return s.mapper.ToDetail(ctx, *session)
}

func (s *WorkoutSessionService) DeleteSession(
	ctx context.Context,
	username string,
	sessionID int64,
) error {
	user, err := s.resolveUser(ctx, username)
	if err != nil {
		return err
	}

	if err := s.sessionRepo.Delete(ctx, sessionID, user.ID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *WorkoutSessionService) resolveUser(ctx context.Context, username string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// resolveSessionDate keeps the session-date defaulting rule in one place:
// no date means "now" in the configured zone; today's date also becomes
// "now" so same-day sessions keep their submission time; any other date
// becomes start of day in the configured zone.
func resolveSessionDate(input *time.Time, zone *time.Location, now time.Time) time.Time {
	nowInZone := now.In(zone)
	if input == nil {
		return nowInZone
	}

	y, m, d := input.Date()
	ny, nm, nd := nowInZone.Date()
	if y == ny && m == nm && d == nd {
		return nowInZone
	}
	return time.Date(y, m, d, 0, 0, 0, 0, zone)
}

// rangeBounds widens a calendar-date pair into instants spanning start-of-day
// on the first date through end-of-day on the last, in the same zone used for
// session-date defaulting. A session backfilled for a date must match a
// filter for that date.
func rangeBounds(start, end time.Time, zone *time.Location) (time.Time, time.Time) {
	sy, sm, sd := start.Date()
	ey, em, ed := end.Date()
	from := time.Date(sy, sm, sd, 0, 0, 0, 0, zone)
	to := time.Date(ey, em, ed, 0, 0, 0, 0, zone).AddDate(0, 0, 1).Add(-time.Second)
	return from, to
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	unique := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	return unique
}
