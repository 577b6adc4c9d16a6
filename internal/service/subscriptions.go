package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	apperrors "cinecatch/internal/errors"
	"cinecatch/internal/models"
)

// SubscriptionStore covers both subscription tables. Creates surface
// ErrConflict on a duplicate pair, deletes ErrNotFound on a missing one.
type SubscriptionStore interface {
	CreateTheaterSubscription(ctx context.Context, sub *models.TheaterSubscription) error
	DeleteTheaterSubscription(ctx context.Context, memberID int64, theaterID string) error
	ListTheaterSubscriptions(ctx context.Context, memberID int64) ([]models.TheaterSubscription, error)
	CreateEventSubscription(ctx context.Context, sub *models.EventSubscription) error
	DeleteEventSubscription(ctx context.Context, memberID int64, eventID string) error
	ListEventIDs(ctx context.Context, memberID int64) ([]string, error)
}

// SubscriptionService manages a member's theater subscriptions and event
// favorites. Targets are verified to exist before a row is created so that a
// typo'd id comes back as 404 rather than a dangling subscription.
type SubscriptionService struct {
	subscriptions SubscriptionStore
	theaters      TheaterStore
	events        EventStore
}

func NewSubscriptionService(subscriptions SubscriptionStore, theaters TheaterStore, events EventStore) *SubscriptionService {
	return &SubscriptionService{
		subscriptions: subscriptions,
		theaters:      theaters,
		events:        events,
	}
}

func (s *SubscriptionService) Subscribe(ctx context.Context, memberID int64, theaterID string) (*models.TheaterSubscription, error) {
	theater, err := s.theaters.GetByID(ctx, theaterID)
	if err != nil {
		return nil, fmt.Errorf("failed to get theater: %w", err)
	}
	if theater == nil {
		return nil, fmt.Errorf("theater %s: %w", theaterID, apperrors.ErrNotFound)
	}

	sub := &models.TheaterSubscription{
		ID:        uuid.New(),
		MemberID:  memberID,
		TheaterID: theaterID,
	}
	if err := s.subscriptions.CreateTheaterSubscription(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *SubscriptionService) Unsubscribe(ctx context.Context, memberID int64, theaterID string) error {
	return s.subscriptions.DeleteTheaterSubscription(ctx, memberID, theaterID)
}

func (s *SubscriptionService) List(ctx context.Context, memberID int64) ([]models.SubscriptionResponse, error) {
	subs, err := s.subscriptions.ListTheaterSubscriptions(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	responses := make([]models.SubscriptionResponse, 0, len(subs))
	for _, sub := range subs {
		responses = append(responses, models.SubscriptionResponse{
			ID:        sub.ID,
			TheaterID: sub.TheaterID,
			CreatedAt: sub.CreatedAt,
		})
	}
	return responses, nil
}
