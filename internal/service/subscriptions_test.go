package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	apperrors "cinecatch/internal/errors"
	"cinecatch/internal/models"
)

type fakeSubscriptionStore struct {
	theaterSubs []models.TheaterSubscription
	eventSubs   []models.EventSubscription
	eventIDs    []string
	createErr   error
	deleteErr   error
}

func (f *fakeSubscriptionStore) CreateTheaterSubscription(ctx context.Context, sub *models.TheaterSubscription) error {
	if f.createErr != nil {
		return f.createErr
	}
	sub.CreatedAt = time.Now()
	f.theaterSubs = append(f.theaterSubs, *sub)
	return nil
}

func (f *fakeSubscriptionStore) DeleteTheaterSubscription(ctx context.Context, memberID int64, theaterID string) error {
	return f.deleteErr
}

func (f *fakeSubscriptionStore) ListTheaterSubscriptions(ctx context.Context, memberID int64) ([]models.TheaterSubscription, error) {
	return f.theaterSubs, nil
}

func (f *fakeSubscriptionStore) CreateEventSubscription(ctx context.Context, sub *models.EventSubscription) error {
	if f.createErr != nil {
		return f.createErr
	}
	sub.CreatedAt = time.Now()
	f.eventSubs = append(f.eventSubs, *sub)
	return nil
}

func (f *fakeSubscriptionStore) DeleteEventSubscription(ctx context.Context, memberID int64, eventID string) error {
	return f.deleteErr
}

func (f *fakeSubscriptionStore) ListEventIDs(ctx context.Context, memberID int64) ([]string, error) {
	return f.eventIDs, nil
}

func TestSubscribeUnknownTheater(t *testing.T) {
	svc := NewSubscriptionService(&fakeSubscriptionStore{}, &fakeTheaterStore{byID: map[string]*models.Theater{}}, &fakeEventStore{})

	_, err := svc.Subscribe(context.Background(), 1, "missing")

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestSubscribeDuplicateIsConflict(t *testing.T) {
	store := &fakeSubscriptionStore{
		createErr: fmt.Errorf("subscription already exists: %w", apperrors.ErrConflict),
	}
	theaters := &fakeTheaterStore{byID: map[string]*models.Theater{"t1": {ID: "t1"}}}
	svc := NewSubscriptionService(store, theaters, &fakeEventStore{})

	_, err := svc.Subscribe(context.Background(), 1, "t1")

	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestSubscribeCreatesRow(t *testing.T) {
	store := &fakeSubscriptionStore{}
	theaters := &fakeTheaterStore{byID: map[string]*models.Theater{"t1": {ID: "t1"}}}
	svc := NewSubscriptionService(store, theaters, &fakeEventStore{})

	sub, err := svc.Subscribe(context.Background(), 42, "t1")

	assert.NoError(t, err)
	assert.Equal(t, int64(42), sub.MemberID)
	assert.Equal(t, "t1", sub.TheaterID)
	assert.NotEqual(t, sub.ID.String(), "00000000-0000-0000-0000-000000000000")
}

func TestFavoriteUnknownEvent(t *testing.T) {
	svc := NewFavoriteService(&fakeSubscriptionStore{}, &fakeEventStore{byID: map[string]*models.Event{}})

	_, err := svc.Add(context.Background(), 1, "missing")

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestFavoriteAddAndList(t *testing.T) {
	store := &fakeSubscriptionStore{eventIDs: []string{"e1", "e2"}}
	events := &fakeEventStore{byID: map[string]*models.Event{"e1": {ID: "e1"}}}
	svc := NewFavoriteService(store, events)

	sub, err := svc.Add(context.Background(), 1, "e1")
	assert.NoError(t, err)
	assert.Equal(t, "e1", sub.EventID)

	ids, err := svc.ListEventIDs(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, []string{"e1", "e2"}, ids)
}
