package services

import (
	"context"
	"errors"
	"time"

	"github.com/dlwldnjs1009/workout/internal/models"
	"github.com/dlwldnjs1009/workout/internal/repository"
	"github.com/jackc/pgx/v5"
)

const (
	recentSessionLimit = 3
	volumeChartLimit   = 10
	heatmapDays        = 365
)

type dashboardUserRepo interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

type dashboardSessionRepo interface {
	SumTotalVolume(ctx context.Context, userID int64) (*float64, error)
	CountByUser(ctx context.Context, userID int64) (int64, error)
	CountByUserSince(ctx context.Context, userID int64, since time.Time) (int64, error)
	RecentByUser(ctx context.Context, userID int64, limit int) ([]models.WorkoutSession, error)
	RecentSessionVolumes(ctx context.Context, userID int64, limit int) ([]repository.SessionVolume, error)
	CountSessionsByDate(ctx context.Context, userID int64, since time.Time, zone string) ([]repository.DateCount, error)
}

type sessionDetailMapper interface {
	ToDetails(ctx context.Context, sessions []models.WorkoutSession) ([]models.WorkoutSessionDetail, error)
}

// DashboardService assembles the per-user workout dashboard: lifetime and
// monthly stats, the recent-session list, the volume chart and the activity
// heatmap, all shifted into the caller's timezone.
type DashboardService struct {
	userRepo    dashboardUserRepo
	sessionRepo dashboardSessionRepo
	mapper      sessionDetailMapper

	// now is time.Now outside of tests.
	now func() time.Time
}

func NewDashboardService(
	userRepo dashboardUserRepo,
	sessionRepo dashboardSessionRepo,
	mapper sessionDetailMapper,
) *DashboardService {
	return &DashboardService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		mapper:      mapper,
		now:         time.Now,
	}
}

// BuildWorkoutDashboard builds the whole dashboard or fails; there are no
// partial results.
func (s *DashboardService) BuildWorkoutDashboard(
	ctx context.Context,
	username string,
	timezone string,
) (*models.WorkoutDashboard, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, ErrInvalidTimezone
	}

	now := s.now().In(loc)
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)

	totalVolume, totalWorkouts, monthlyWorkouts, err := s.aggregateStats(ctx, user.ID, startOfMonth)
	if err != nil {
		return nil, err
	}

	recentSessions, err := s.recentSessions(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	volumeChart, err := s.volumeSeries(ctx, user.ID, loc)
	if err != nil {
		return nil, err
	}

	heatmapStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc).
		AddDate(0, 0, -(heatmapDays - 1))
	heatmapLevels, err := s.heatmapLevels(ctx, user.ID, heatmapStart, loc)
	if err != nil {
		return nil, err
	}

	return &models.WorkoutDashboard{
		TotalVolume:      totalVolume,
		TotalWorkouts:    totalWorkouts,
		MonthlyWorkouts:  monthlyWorkouts,
		RecentSessions:   recentSessions,
		VolumeChartData:  volumeChart,
		HeatmapStartDate: heatmapStart.Format("2006-01-02"),
		HeatmapLevels:    heatmapLevels,
	}, nil
}

// aggregateStats combines lifetime volume, lifetime session count and the
// count since the start of the current month. Absent data yields zeros.
func (s *DashboardService) aggregateStats(
	ctx context.Context,
	userID int64,
	startOfMonth time.Time,
) (float64, int64, int64, error) {
	totalVolume, err := s.sessionRepo.SumTotalVolume(ctx, userID)
	if err != nil {
		return 0, 0, 0, err
	}
	totalWorkouts, err := s.sessionRepo.CountByUser(ctx, userID)
	if err != nil {
		return 0, 0, 0, err
	}
	monthlyWorkouts, err := s.sessionRepo.CountByUserSince(ctx, userID, startOfMonth)
	if err != nil {
		return 0, 0, 0, err
	}
	return zeroIfNil(totalVolume), totalWorkouts, monthlyWorkouts, nil
}

func (s *DashboardService) recentSessions(
	ctx context.Context,
	userID int64,
) ([]models.WorkoutSessionDetail, error) {
	sessions, err := s.sessionRepo.RecentByUser(ctx, userID, recentSessionLimit)
	if err != nil {
		return nil, err
	}
	return s.mapper.ToDetails(ctx, sessions)
}

// volumeSeries turns the newest-first per-session volume rows into a
// chronological chart series. Dates are stored as UTC instants and formatted
// as MM.dd labels in the caller's timezone.
func (s *DashboardService) volumeSeries(
	ctx context.Context,
	userID int64,
	loc *time.Location,
) ([]models.VolumeDataPoint, error) {
	volumes, err := s.sessionRepo.RecentSessionVolumes(ctx, userID, volumeChartLimit)
	if err != nil {
		return nil, err
	}

	points := make([]models.VolumeDataPoint, 0, len(volumes))
	for _, v := range volumes {
		points = append(points, models.VolumeDataPoint{
			Date:   v.Date.UTC().In(loc).Format("01.02"),
			Volume: zeroIfNil(v.Volume),
		})
	}

	// The query returns newest first; the chart reads oldest to newest.
	for i, j := 0, len(points)-1; i < j; i, j = i+1, j-1 {
		points[i], points[j] = points[j], points[i]
	}

	return points, nil
}

// heatmapLevels produces exactly heatmapDays levels, index 0 being the start
// date. Days without sessions stay at level 0. Counts are bucketed on the
// caller-zone calendar date, the same zone the cell labels are drawn in.
func (s *DashboardService) heatmapLevels(
	ctx context.Context,
	userID int64,
	startDate time.Time,
	loc *time.Location,
) ([]int, error) {
	counts, err := s.sessionRepo.CountSessionsByDate(ctx, userID, startDate, loc.String())
	if err != nil {
		return nil, err
	}

	countsByDate := make(map[string]int64, len(counts))
	for _, c := range counts {
		countsByDate[c.Date.Format("2006-01-02")] = c.Count
	}

	levels := make([]int, heatmapDays)
	for i := range levels {
		date := startDate.AddDate(0, 0, i).Format("2006-01-02")
		levels[i] = heatmapLevel(countsByDate[date])
	}

	return levels, nil
}

// heatmapLevel buckets a daily session count into a display tier:
// 0 sessions is level 0, then 1, 2, and 3 for three or more.
func heatmapLevel(count int64) int {
	switch {
	case count <= 0:
		return 0
	case count == 1:
		return 1
	case count == 2:
		return 2
	default:
		return 3
	}
}

// zeroIfNil is the single null-coalescing point for nullable numeric
// aggregates; callers never see a nil volume.
func zeroIfNil(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
