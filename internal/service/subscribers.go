package service

import (
	"context"
	"fmt"
	"strings"

	"cinecatch/internal/models"
)

// RecipientStore resolves subscription rows to member records.
type RecipientStore interface {
	FindMembersByTheater(ctx context.Context, theaterID string) ([]models.Member, error)
	FindMembersByEvent(ctx context.Context, eventID string) ([]models.Member, error)
}

// SubscriberResolver narrows a target's subscriber set down to the members a
// fan-out may actually reach.
type SubscriberResolver struct {
	recipients RecipientStore
}

func NewSubscriberResolver(recipients RecipientStore) *SubscriberResolver {
	return &SubscriberResolver{recipients: recipients}
}

// EligibleRecipients returns the target's subscribers that have notifications
// enabled and a usable device token, in subscription order, with duplicate
// members collapsed to their first occurrence. Tokens are taken as stored;
// only blank ones are skipped.
func (r *SubscriberResolver) EligibleRecipients(ctx context.Context, kind models.TargetKind, targetID string) ([]models.Recipient, error) {
	var members []models.Member
	var err error
	switch kind {
	case models.TargetTheater:
		members, err = r.recipients.FindMembersByTheater(ctx, targetID)
	case models.TargetEvent:
		members, err = r.recipients.FindMembersByEvent(ctx, targetID)
	default:
		return nil, fmt.Errorf("unknown target kind %q", kind)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve subscribers: %w", err)
	}

	seen := make(map[int64]struct{}, len(members))
	recipients := make([]models.Recipient, 0, len(members))
	for _, m := range members {
		if !m.NotificationEnabled {
			continue
		}
		if m.FCMToken == nil || strings.TrimSpace(*m.FCMToken) == "" {
			continue
		}
		if _, dup := seen[m.ID]; dup {
			continue
		}
		seen[m.ID] = struct{}{}
		recipients = append(recipients, models.Recipient{MemberID: m.ID, Token: *m.FCMToken})
	}
	return recipients, nil
}
