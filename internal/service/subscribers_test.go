package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"cinecatch/internal/models"
)

type fakeRecipientStore struct {
	byTheater []models.Member
	byEvent   []models.Member
}

func (f *fakeRecipientStore) FindMembersByTheater(ctx context.Context, theaterID string) ([]models.Member, error) {
	return f.byTheater, nil
}

func (f *fakeRecipientStore) FindMembersByEvent(ctx context.Context, eventID string) ([]models.Member, error) {
	return f.byEvent, nil
}

func member(id int64, token string, enabled bool) models.Member {
	m := models.Member{ID: id, NotificationEnabled: enabled}
	if token != "" {
		m.FCMToken = &token
	}
	return m
}

func TestEligibleRecipientsFiltersDisabledAndTokenless(t *testing.T) {
	blank := "   "
	store := &fakeRecipientStore{byTheater: []models.Member{
		member(1, "tok-1", true),
		member(2, "tok-2", false),
		member(3, "", true),
		{ID: 4, NotificationEnabled: true, FCMToken: &blank},
		member(5, "tok-5", true),
	}}
	resolver := NewSubscriberResolver(store)

	recipients, err := resolver.EligibleRecipients(context.Background(), models.TargetTheater, "t1")

	assert.NoError(t, err)
	assert.Equal(t, []models.Recipient{
		{MemberID: 1, Token: "tok-1"},
		{MemberID: 5, Token: "tok-5"},
	}, recipients)
}

func TestEligibleRecipientsDeduplicatesMembers(t *testing.T) {
	store := &fakeRecipientStore{byEvent: []models.Member{
		member(1, "tok-1", true),
		member(2, "tok-2", true),
		member(1, "tok-1", true),
	}}
	resolver := NewSubscriberResolver(store)

	recipients, err := resolver.EligibleRecipients(context.Background(), models.TargetEvent, "e1")

	assert.NoError(t, err)
	assert.Len(t, recipients, 2)
	assert.Equal(t, int64(1), recipients[0].MemberID)
	assert.Equal(t, int64(2), recipients[1].MemberID)
}

func TestEligibleRecipientsUnknownKind(t *testing.T) {
	resolver := NewSubscriberResolver(&fakeRecipientStore{})

	_, err := resolver.EligibleRecipients(context.Background(), models.TargetKind("BOGUS"), "x")

	assert.Error(t, err)
}

func TestEligibleRecipientsEmptySubscriberSet(t *testing.T) {
	resolver := NewSubscriberResolver(&fakeRecipientStore{})

	recipients, err := resolver.EligibleRecipients(context.Background(), models.TargetTheater, "t1")

	assert.NoError(t, err)
	assert.Empty(t, recipients)
}
