package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	apperrors "cinecatch/internal/errors"
	"cinecatch/internal/external"
	"cinecatch/internal/models"
)

type fakePush struct {
	initialized bool
	outcomes    []external.SendOutcome
	err         error
	calls       int
	lastTokens  []string
	lastTitle   string
	lastBody    string
}

func (f *fakePush) Initialized() bool {
	return f.initialized
}

func (f *fakePush) SendBatch(ctx context.Context, tokens []string, title, body string) ([]external.SendOutcome, error) {
	f.calls++
	f.lastTokens = tokens
	f.lastTitle = title
	f.lastBody = body
	return f.outcomes, f.err
}

type fakeHistoryStore struct {
	inserted []models.NotificationHistory
	err      error
}

func (f *fakeHistoryStore) InsertBatch(ctx context.Context, histories []models.NotificationHistory) error {
	if f.err != nil {
		return f.err
	}
	f.inserted = append(f.inserted, histories...)
	return nil
}

type fakeTokenStore struct {
	mu      sync.Mutex
	cleared [][]string
	done    chan struct{}
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{done: make(chan struct{}, 1)}
}

func (f *fakeTokenStore) ClearTokens(ctx context.Context, tokens []string) error {
	f.mu.Lock()
	f.cleared = append(f.cleared, tokens)
	f.mu.Unlock()
	select {
	case f.done <- struct{}{}:
	default:
	}
	return nil
}

func (f *fakeTokenStore) clearedBatches() [][]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cleared
}

type fakePublisher struct {
	subjects []string
	messages []interface{}
	err      error
}

func (f *fakePublisher) Publish(subject string, data interface{}) error {
	if f.err != nil {
		return f.err
	}
	f.subjects = append(f.subjects, subject)
	f.messages = append(f.messages, data)
	return nil
}

func twoRecipients() *fakeRecipientStore {
	return &fakeRecipientStore{byTheater: []models.Member{
		member(1, "tok-1", true),
		member(2, "tok-2", true),
	}}
}

func newNotify(recipients *fakeRecipientStore, push *fakePush, history *fakeHistoryStore, tokens *fakeTokenStore, publisher Publisher) *NotifyService {
	return NewNotifyService(NewSubscriberResolver(recipients), push, history, tokens, publisher, time.Second)
}

func TestNotifyNewEventNoRecipients(t *testing.T) {
	push := &fakePush{initialized: true}
	history := &fakeHistoryStore{}
	svc := newNotify(&fakeRecipientStore{}, push, history, newFakeTokenStore(), nil)

	result, err := svc.NotifyNewEvent(context.Background(), "t1", "CGV Gangnam", "Dune poster")

	assert.NoError(t, err)
	assert.Equal(t, models.DeliveryResult{}, result)
	assert.Equal(t, 0, push.calls)
	assert.Empty(t, history.inserted)
}

func TestNotifyNewEventGatewayNotConfigured(t *testing.T) {
	push := &fakePush{initialized: false}
	history := &fakeHistoryStore{}
	svc := newNotify(twoRecipients(), push, history, newFakeTokenStore(), nil)

	result, err := svc.NotifyNewEvent(context.Background(), "t1", "CGV Gangnam", "Dune poster")

	assert.NoError(t, err)
	assert.Equal(t, models.DeliveryResult{}, result)
	assert.Equal(t, 0, push.calls)
	assert.Empty(t, history.inserted)
}

func TestNotifyNewEventGatewayFailureIsSoft(t *testing.T) {
	push := &fakePush{initialized: true, err: errors.New("gateway timeout")}
	history := &fakeHistoryStore{}
	svc := newNotify(twoRecipients(), push, history, newFakeTokenStore(), nil)

	result, err := svc.NotifyNewEvent(context.Background(), "t1", "CGV Gangnam", "Dune poster")

	assert.NoError(t, err)
	assert.Equal(t, models.DeliveryResult{}, result)
	assert.Empty(t, history.inserted)
}

func TestNotifyNewEventMixedOutcomes(t *testing.T) {
	push := &fakePush{initialized: true, outcomes: []external.SendOutcome{
		{Token: "tok-1", Success: true},
		{Token: "tok-2", Success: false, Reason: external.FailureOther},
	}}
	history := &fakeHistoryStore{}
	svc := newNotify(twoRecipients(), push, history, newFakeTokenStore(), nil)

	result, err := svc.NotifyNewEvent(context.Background(), "t1", "CGV Gangnam", "Dune poster")

	assert.NoError(t, err)
	assert.Equal(t, models.DeliveryResult{Attempted: 2, Succeeded: 1}, result)
	assert.Equal(t, []string{"tok-1", "tok-2"}, push.lastTokens)
	// One history row per eligible recipient, delivered or not.
	assert.Len(t, history.inserted, 2)
	assert.Equal(t, int64(1), history.inserted[0].MemberID)
	assert.Equal(t, int64(2), history.inserted[1].MemberID)
	assert.False(t, history.inserted[0].IsRead)
	assert.NotEqual(t, history.inserted[0].ID, history.inserted[1].ID)
}

func TestNotifyNewEventHistoryFailureBubbles(t *testing.T) {
	push := &fakePush{initialized: true, outcomes: []external.SendOutcome{
		{Token: "tok-1", Success: true},
		{Token: "tok-2", Success: true},
	}}
	history := &fakeHistoryStore{err: errors.New("insert failed")}
	svc := newNotify(twoRecipients(), push, history, newFakeTokenStore(), nil)

	_, err := svc.NotifyNewEvent(context.Background(), "t1", "CGV Gangnam", "Dune poster")

	assert.Error(t, err)
}

func TestNotifyPublishesInvalidTokensForCleanup(t *testing.T) {
	push := &fakePush{initialized: true, outcomes: []external.SendOutcome{
		{Token: "tok-1", Success: false, Reason: external.FailureUnregistered},
		{Token: "tok-2", Success: false, Reason: external.FailureInvalidArgument},
	}}
	publisher := &fakePublisher{}
	tokens := newFakeTokenStore()
	svc := newNotify(twoRecipients(), push, &fakeHistoryStore{}, tokens, publisher)

	result, err := svc.NotifyNewEvent(context.Background(), "t1", "CGV Gangnam", "Dune poster")

	assert.NoError(t, err)
	assert.Equal(t, models.DeliveryResult{Attempted: 2, Succeeded: 0}, result)
	assert.Equal(t, []string{models.SubjectTokensInvalid}, publisher.subjects)
	msg := publisher.messages[0].(models.InvalidTokensMessage)
	assert.Equal(t, []string{"tok-1", "tok-2"}, msg.Tokens)
	// Publishing succeeded, so there is no direct cleanup.
	assert.Empty(t, tokens.clearedBatches())
}

func TestNotifyTransientFailuresAreNotCleaned(t *testing.T) {
	push := &fakePush{initialized: true, outcomes: []external.SendOutcome{
		{Token: "tok-1", Success: false, Reason: external.FailureOther},
		{Token: "tok-2", Success: true},
	}}
	publisher := &fakePublisher{}
	svc := newNotify(twoRecipients(), push, &fakeHistoryStore{}, newFakeTokenStore(), publisher)

	result, err := svc.NotifyNewEvent(context.Background(), "t1", "CGV Gangnam", "Dune poster")

	assert.NoError(t, err)
	assert.Equal(t, models.DeliveryResult{Attempted: 2, Succeeded: 1}, result)
	assert.Empty(t, publisher.subjects)
}

func TestNotifyFallsBackToDirectCleanupWithoutPublisher(t *testing.T) {
	push := &fakePush{initialized: true, outcomes: []external.SendOutcome{
		{Token: "tok-1", Success: false, Reason: external.FailureUnregistered},
		{Token: "tok-2", Success: true},
	}}
	tokens := newFakeTokenStore()
	svc := newNotify(twoRecipients(), push, &fakeHistoryStore{}, tokens, nil)

	_, err := svc.NotifyNewEvent(context.Background(), "t1", "CGV Gangnam", "Dune poster")
	assert.NoError(t, err)

	select {
	case <-tokens.done:
	case <-time.After(2 * time.Second):
		t.Fatal("direct token cleanup did not run")
	}
	assert.Equal(t, [][]string{{"tok-1"}}, tokens.clearedBatches())
}

func TestNotifyStatusChangeRejectsUnknownStatus(t *testing.T) {
	push := &fakePush{initialized: true}
	svc := newNotify(twoRecipients(), push, &fakeHistoryStore{}, newFakeTokenStore(), nil)

	_, err := svc.NotifyStatusChange(context.Background(), "t1", "CGV Gangnam", "Dune poster", "KINDA_AVAILABLE")

	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
	assert.Equal(t, 0, push.calls)
}

func TestNotifyStatusChangeBody(t *testing.T) {
	push := &fakePush{initialized: true, outcomes: []external.SendOutcome{
		{Token: "tok-1", Success: true},
		{Token: "tok-2", Success: true},
	}}
	svc := newNotify(twoRecipients(), push, &fakeHistoryStore{}, newFakeTokenStore(), nil)

	result, err := svc.NotifyStatusChange(context.Background(), "t1", "CGV Gangnam", "Dune poster", "SOLD_OUT")

	assert.NoError(t, err)
	assert.Equal(t, models.DeliveryResult{Attempted: 2, Succeeded: 2}, result)
	assert.Contains(t, push.lastTitle, "CGV Gangnam")
	assert.Contains(t, push.lastBody, "sold out")
}

func TestNotifyFavoriteStatusChangeTargetsEventSubscribers(t *testing.T) {
	recipients := &fakeRecipientStore{byEvent: []models.Member{
		member(7, "tok-7", true),
	}}
	push := &fakePush{initialized: true, outcomes: []external.SendOutcome{
		{Token: "tok-7", Success: true},
	}}
	history := &fakeHistoryStore{}
	svc := newNotify(recipients, push, history, newFakeTokenStore(), nil)

	result, err := svc.NotifyFavoriteStatusChange(context.Background(), "e1", "Dune poster", "AVAILABLE")

	assert.NoError(t, err)
	assert.Equal(t, models.DeliveryResult{Attempted: 1, Succeeded: 1}, result)
	assert.Len(t, history.inserted, 1)
	assert.Equal(t, int64(7), history.inserted[0].MemberID)
}
