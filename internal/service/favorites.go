package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	apperrors "cinecatch/internal/errors"
	"cinecatch/internal/models"
)

// FavoriteService manages a member's favorite marks on events. A favorite is
// an event subscription: it puts the member in the fan-out audience for that
// event's status changes.
type FavoriteService struct {
	subscriptions SubscriptionStore
	events        EventStore
}

func NewFavoriteService(subscriptions SubscriptionStore, events EventStore) *FavoriteService {
	return &FavoriteService{subscriptions: subscriptions, events: events}
}

func (s *FavoriteService) Add(ctx context.Context, memberID int64, eventID string) (*models.EventSubscription, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	if event == nil {
		return nil, fmt.Errorf("event %s: %w", eventID, apperrors.ErrNotFound)
	}

	sub := &models.EventSubscription{
		ID:       uuid.New(),
		MemberID: memberID,
		EventID:  eventID,
	}
	if err := s.subscriptions.CreateEventSubscription(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *FavoriteService) Remove(ctx context.Context, memberID int64, eventID string) error {
	return s.subscriptions.DeleteEventSubscription(ctx, memberID, eventID)
}

// ListEventIDs returns the ids of the member's favorited events, oldest first.
func (s *FavoriteService) ListEventIDs(ctx context.Context, memberID int64) ([]string, error) {
	ids, err := s.subscriptions.ListEventIDs(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}
