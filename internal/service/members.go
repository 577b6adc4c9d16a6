package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	apperrors "cinecatch/internal/errors"
	"cinecatch/internal/models"
)

// MemberStore covers the member fields the notification pipeline touches.
type MemberStore interface {
	GetByID(ctx context.Context, id int64) (*models.Member, error)
	UpdateFCMToken(ctx context.Context, memberID int64, token string) error
	SetNotificationEnabled(ctx context.Context, memberID int64, enabled bool) error
	ClearTokens(ctx context.Context, tokens []string) error
}

type MemberService struct {
	members MemberStore
}

func NewMemberService(members MemberStore) *MemberService {
	return &MemberService{members: members}
}

func (s *MemberService) Get(ctx context.Context, memberID int64) (*models.Member, error) {
	member, err := s.members.GetByID(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	if member == nil {
		return nil, fmt.Errorf("member %d: %w", memberID, apperrors.ErrNotFound)
	}
	return member, nil
}

// RegisterToken stores the member's current device token, replacing any
// previous one.
func (s *MemberService) RegisterToken(ctx context.Context, memberID int64, token string) error {
	if strings.TrimSpace(token) == "" {
		return fmt.Errorf("%w: token must not be blank", apperrors.ErrInvalidArgument)
	}
	err := s.members.UpdateFCMToken(ctx, memberID, token)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("member %d: %w", memberID, apperrors.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to update token: %w", err)
	}
	return nil
}

func (s *MemberService) SetNotificationEnabled(ctx context.Context, memberID int64, enabled bool) error {
	err := s.members.SetNotificationEnabled(ctx, memberID, enabled)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("member %d: %w", memberID, apperrors.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to update notification settings: %w", err)
	}
	return nil
}

// ClearTokens removes dead device tokens; used by the cleanup consumer.
func (s *MemberService) ClearTokens(ctx context.Context, tokens []string) error {
	return s.members.ClearTokens(ctx, tokens)
}
