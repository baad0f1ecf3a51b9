package services

import (
	"context"

	"github.com/dlwldnjs1009/workout/internal/models"
)

type exerciseRecordLister interface {
	ListBySessionID(ctx context.Context, sessionID int64) ([]models.ExerciseRecord, error)
	ListBySessionIDs(ctx context.Context, sessionIDs []int64) (map[int64][]models.ExerciseRecord, error)
}

// SessionMapper maps workout sessions to their display form by attaching
// the child exercise records.
type SessionMapper struct {
	recordRepo exerciseRecordLister
}

func NewSessionMapper(recordRepo exerciseRecordLister) *SessionMapper {
	return &SessionMapper{recordRepo: recordRepo}
}

func (m *SessionMapper) ToDetail(
	ctx context.Context,
	session models.WorkoutSession,
) (*models.WorkoutSessionDetail, error) {
	records, err := m.recordRepo.ListBySessionID(ctx, session.ID)
	if err != nil {
		return nil, err
	}
	return &models.WorkoutSessionDetail{
		WorkoutSession: session,
		Exercises:      records,
	}, nil
}

// ToDetails maps a batch of sessions, preserving input order.
func (m *SessionMapper) ToDetails(
	ctx context.Context,
	sessions []models.WorkoutSession,
) ([]models.WorkoutSessionDetail, error) {
	sessionIDs := make([]int64, 0, len(sessions))
	for _, session := range sessions {
		sessionIDs = append(sessionIDs, session.ID)
	}

	recordsBySession, err := m.recordRepo.ListBySessionIDs(ctx, sessionIDs)
	if err != nil {
		return nil, err
	}

	details := make([]models.WorkoutSessionDetail, 0, len(sessions))
	for _, session := range sessions {
		records := recordsBySession[session.ID]
		if records == nil {
			records = make([]models.ExerciseRecord, 0)
		}
		details = append(details, models.WorkoutSessionDetail{
			WorkoutSession: session,
			Exercises:      records,
		})
	}

	return details, nil
}
