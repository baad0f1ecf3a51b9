package services

import (
	"context"
	"errors"

	"github.com/dlwldnjs1009/workout/internal/models"
	"github.com/dlwldnjs1009/workout/internal/repository"
	"github.com/jackc/pgx/v5"
)

type userProfileRepo interface {
	CreateEmpty(ctx context.Context, userID int64) (*models.UserProfile, error)
	GetByUserID(ctx context.Context, userID int64) (*models.UserProfile, error)
	UpdatePartial(ctx context.Context, userID int64, input repository.UpdateUserProfileInput) (*models.UserProfile, error)
}

type ProfileService struct {
	userRepo    userReader
	profileRepo userProfileRepo
}

func NewProfileService(userRepo userReader, profileRepo userProfileRepo) *ProfileService {
	return &ProfileService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
	}
}

// GetProfile returns the user's body profile, creating an empty row the
// first time it is requested.
func (s *ProfileService) GetProfile(ctx context.Context, username string) (*models.UserProfile, error) {
	user, err := s.resolveUser(ctx, username)
	if err != nil {
		return nil, err
	}

	profile, err := s.profileRepo.GetByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return s.profileRepo.CreateEmpty(ctx, user.ID)
		}
		return nil, err
	}
	return profile, nil
}

func (s *ProfileService) UpdateProfile(
	ctx context.Context,
	username string,
	input repository.UpdateUserProfileInput,
) (*models.UserProfile, error) {
	user, err := s.resolveUser(ctx, username)
	if err != nil {
		return nil, err
	}

	// Make sure a row exists before the partial update touches it.
	if _, err := s.profileRepo.GetByUserID(ctx, user.ID); err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		if _, err := s.profileRepo.CreateEmpty(ctx, user.ID); err != nil {
			return nil, err
		}
	}

	profile, err := s.profileRepo.UpdatePartial(ctx, user.ID, input)
	if err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *ProfileService) resolveUser(ctx context.Context, username string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
