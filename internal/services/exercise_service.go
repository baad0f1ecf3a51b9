package services

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/coocood/freecache"
	"github.com/dlwldnjs1009/workout/internal/models"
	"github.com/jackc/pgx/v5"
)

const (
	exerciseCacheSize = 512 * 1024
	exerciseCacheTTL  = 24 * 60 * 60 // seconds
)

type exerciseTypeRepo interface {
	Create(ctx context.Context, exercise *models.ExerciseType) error
	ListAll(ctx context.Context) ([]models.ExerciseType, error)
	ListByCategory(ctx context.Context, category string) ([]models.ExerciseType, error)
	Delete(ctx context.Context, exerciseID int64) error
}

// ExerciseService serves the exercise catalog. The catalog changes rarely,
// so list reads go through an in-memory cache with a daily TTL and every
// mutation evicts the affected entries.
type ExerciseService struct {
	repo  exerciseTypeRepo
	cache *freecache.Cache
}

func NewExerciseService(repo exerciseTypeRepo) *ExerciseService {
	return &ExerciseService{
		repo:  repo,
		cache: freecache.NewCache(exerciseCacheSize),
	}
}

func (s *ExerciseService) ListExercises(ctx context.Context) ([]models.ExerciseType, error) {
	key := []byte("exercises:all")
	if cached, err := s.cache.Get(key); err == nil {
		var exercises []models.ExerciseType
		if err := json.Unmarshal(cached, &exercises); err == nil {
			return exercises, nil
		}
		s.cache.Del(key)
	}

	exercises, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	s.cacheSet(key, exercises)
	return exercises, nil
}

func (s *ExerciseService) ListExercisesByCategory(
	ctx context.Context,
	category string,
) ([]models.ExerciseType, error) {
	if !models.IsExerciseCategory(category) {
		return nil, ErrInvalidInput
	}

	key := categoryCacheKey(category)
	if cached, err := s.cache.Get(key); err == nil {
		var exercises []models.ExerciseType
		if err := json.Unmarshal(cached, &exercises); err == nil {
			return exercises, nil
		}
		s.cache.Del(key)
	}

	exercises, err := s.repo.ListByCategory(ctx, category)
	if err != nil {
		return nil, err
	}

	s.cacheSet(key, exercises)
	return exercises, nil
}

func (s *ExerciseService) CreateExercise(
	ctx context.Context,
	name, category string,
) (*models.ExerciseType, error) {
	if name == "" {
		return nil, ErrInvalidInput
	}
	if !models.IsExerciseCategory(category) {
		return nil, ErrInvalidInput
	}

	exercise := &models.ExerciseType{Name: name, Category: category}
	if err := s.repo.Create(ctx, exercise); err != nil {
		return nil, err
	}

	s.evict(category)
	return exercise, nil
}

func (s *ExerciseService) DeleteExercise(ctx context.Context, exerciseID int64) error {
	if err := s.repo.Delete(ctx, exerciseID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	// The deleted row's category is unknown here, drop everything.
	s.cache.Clear()
	return nil
}

func (s *ExerciseService) cacheSet(key []byte, exercises []models.ExerciseType) {
	encoded, err := json.Marshal(exercises)
	if err != nil {
		return
	}
	if err := s.cache.Set(key, encoded, exerciseCacheTTL); err != nil {
		log.Printf("failed to cache exercise list: %v", err)
	}
}

func (s *ExerciseService) evict(category string) {
	s.cache.Del([]byte("exercises:all"))
	s.cache.Del(categoryCacheKey(category))
}

func categoryCacheKey(category string) []byte {
	return []byte("exercises:category:" + category)
}
