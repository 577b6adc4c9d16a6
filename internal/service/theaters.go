package service

import (
	"context"
	"fmt"

	apperrors "cinecatch/internal/errors"
	"cinecatch/internal/models"
)

// DefaultRadiusMeters applies when a caller omits the search radius.
const DefaultRadiusMeters = 5000.0

// TheaterStore is the storage capability the proximity resolver consumes:
// a geo-distance predicate with deterministic ordering, treated as a black box.
type TheaterStore interface {
	FindNearby(ctx context.Context, lat, lng, radiusMeters float64) ([]models.Theater, error)
	GetByID(ctx context.Context, id string) (*models.Theater, error)
	List(ctx context.Context, brand string) ([]models.Theater, error)
}

type TheaterService struct {
	theaters TheaterStore
}

func NewTheaterService(theaters TheaterStore) *TheaterService {
	return &TheaterService{theaters: theaters}
}

// FindNearby returns theaters around the point ordered by ascending
// distance. A nil radius falls back to DefaultRadiusMeters; a non-positive
// radius is a caller error, rejected before any storage access. An empty
// result is a valid outcome, not an error.
func (s *TheaterService) FindNearby(ctx context.Context, lat, lng float64, radius *float64) ([]models.Theater, error) {
	r := DefaultRadiusMeters
	if radius != nil {
		r = *radius
	}
	if r <= 0 {
		return nil, fmt.Errorf("%w: radius must be positive, got %v", apperrors.ErrInvalidArgument, r)
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return nil, fmt.Errorf("%w: coordinates out of range (%v, %v)", apperrors.ErrInvalidArgument, lat, lng)
	}

	return s.theaters.FindNearby(ctx, lat, lng, r)
}

func (s *TheaterService) GetByID(ctx context.Context, id string) (*models.Theater, error) {
	theater, err := s.theaters.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get theater: %w", err)
	}
	if theater == nil {
		return nil, fmt.Errorf("theater %s: %w", id, apperrors.ErrNotFound)
	}
	return theater, nil
}

func (s *TheaterService) List(ctx context.Context, brand string) ([]models.Theater, error) {
	theaters, err := s.theaters.List(ctx, brand)
	if err != nil {
		return nil, fmt.Errorf("failed to list theaters: %w", err)
	}
	if theaters == nil {
		theaters = []models.Theater{}
	}
	return theaters, nil
}
