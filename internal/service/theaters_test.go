package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "cinecatch/internal/errors"
	"cinecatch/internal/models"
)

type fakeTheaterStore struct {
	theaters    []models.Theater
	byID        map[string]*models.Theater
	lastLat     float64
	lastLng     float64
	lastRadius  float64
	nearbyCalls int
	err         error
}

func (f *fakeTheaterStore) FindNearby(ctx context.Context, lat, lng, radiusMeters float64) ([]models.Theater, error) {
	f.nearbyCalls++
	f.lastLat, f.lastLng, f.lastRadius = lat, lng, radiusMeters
	return f.theaters, f.err
}

func (f *fakeTheaterStore) GetByID(ctx context.Context, id string) (*models.Theater, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byID[id], nil
}

func (f *fakeTheaterStore) List(ctx context.Context, brand string) ([]models.Theater, error) {
	return f.theaters, f.err
}

func TestFindNearbyDefaultRadius(t *testing.T) {
	store := &fakeTheaterStore{theaters: []models.Theater{{ID: "t1"}}}
	svc := NewTheaterService(store)

	theaters, err := svc.FindNearby(context.Background(), 37.5, 127.0, nil)

	assert.NoError(t, err)
	assert.Len(t, theaters, 1)
	assert.Equal(t, DefaultRadiusMeters, store.lastRadius)
}

func TestFindNearbyExplicitRadius(t *testing.T) {
	store := &fakeTheaterStore{}
	svc := NewTheaterService(store)

	radius := 1200.0
	_, err := svc.FindNearby(context.Background(), 37.5, 127.0, &radius)

	assert.NoError(t, err)
	assert.Equal(t, 1200.0, store.lastRadius)
}

func TestFindNearbyRejectsNonPositiveRadius(t *testing.T) {
	store := &fakeTheaterStore{}
	svc := NewTheaterService(store)

	for _, radius := range []float64{0, -5} {
		r := radius
		_, err := svc.FindNearby(context.Background(), 37.5, 127.0, &r)
		assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
	}
	assert.Equal(t, 0, store.nearbyCalls)
}

func TestFindNearbyRejectsOutOfRangeCoordinates(t *testing.T) {
	store := &fakeTheaterStore{}
	svc := NewTheaterService(store)

	cases := []struct{ lat, lng float64 }{
		{91, 0},
		{-91, 0},
		{0, 181},
		{0, -181},
	}
	for _, tc := range cases {
		_, err := svc.FindNearby(context.Background(), tc.lat, tc.lng, nil)
		assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
	}
	assert.Equal(t, 0, store.nearbyCalls)
}

func TestFindNearbyEmptyResultIsNotAnError(t *testing.T) {
	store := &fakeTheaterStore{theaters: []models.Theater{}}
	svc := NewTheaterService(store)

	theaters, err := svc.FindNearby(context.Background(), 37.5, 127.0, nil)

	assert.NoError(t, err)
	assert.Empty(t, theaters)
}

func TestGetTheaterByIDNotFound(t *testing.T) {
	store := &fakeTheaterStore{byID: map[string]*models.Theater{}}
	svc := NewTheaterService(store)

	_, err := svc.GetByID(context.Background(), "missing")

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestGetTheaterByIDStorageError(t *testing.T) {
	store := &fakeTheaterStore{err: errors.New("db down")}
	svc := NewTheaterService(store)

	_, err := svc.GetByID(context.Background(), "t1")

	assert.Error(t, err)
	assert.NotErrorIs(t, err, apperrors.ErrNotFound)
}
