package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"cinecatch/internal/models"
)

// NotificationStore reads and mutates a member's notification history.
type NotificationStore interface {
	ListByMember(ctx context.Context, memberID int64) ([]models.NotificationHistory, error)
	MarkRead(ctx context.Context, id uuid.UUID, memberID int64) error
	CountUnread(ctx context.Context, memberID int64) (int, error)
}

// NotificationService exposes the history a fan-out leaves behind.
type NotificationService struct {
	notifications NotificationStore
}

func NewNotificationService(notifications NotificationStore) *NotificationService {
	return &NotificationService{notifications: notifications}
}

func (s *NotificationService) List(ctx context.Context, memberID int64) ([]models.NotificationResponse, error) {
	histories, err := s.notifications.ListByMember(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	responses := make([]models.NotificationResponse, 0, len(histories))
	for _, h := range histories {
		responses = append(responses, models.NotificationResponse{
			ID:        h.ID,
			Title:     h.Title,
			Body:      h.Body,
			IsRead:    h.IsRead,
			CreatedAt: h.CreatedAt,
		})
	}
	return responses, nil
}

// MarkRead marks one of the member's own notifications as read. Marking
// another member's notification, or a missing one, is ErrNotFound.
func (s *NotificationService) MarkRead(ctx context.Context, id uuid.UUID, memberID int64) error {
	return s.notifications.MarkRead(ctx, id, memberID)
}

func (s *NotificationService) UnreadCount(ctx context.Context, memberID int64) (int, error) {
	count, err := s.notifications.CountUnread(ctx, memberID)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}
