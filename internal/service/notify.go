package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	apperrors "cinecatch/internal/errors"
	"cinecatch/internal/external"
	"cinecatch/internal/logger"
	"cinecatch/internal/metrics"
	"cinecatch/internal/models"
)

// PushSender is the gateway capability the fan-out engine consumes.
type PushSender interface {
	Initialized() bool
	SendBatch(ctx context.Context, tokens []string, title, body string) ([]external.SendOutcome, error)
}

// HistoryStore persists the per-recipient fan-out record.
type HistoryStore interface {
	InsertBatch(ctx context.Context, histories []models.NotificationHistory) error
}

// TokenStore clears device tokens the gateway reported as permanently dead.
type TokenStore interface {
	ClearTokens(ctx context.Context, tokens []string) error
}

// Publisher hands invalid tokens off to the cleanup consumer. A nil Publisher
// is valid; cleanup then runs in-process.
type Publisher interface {
	Publish(subject string, data interface{}) error
}

// NotifyService is the fan-out engine. One invocation resolves the target's
// eligible recipients, sends a single gateway batch, and writes one history
// row per recipient. Gateway trouble never fails the trigger; storage trouble
// does.
type NotifyService struct {
	resolver    *SubscriberResolver
	push        PushSender
	history     HistoryStore
	tokens      TokenStore
	publisher   Publisher
	pushTimeout time.Duration
}

func NewNotifyService(resolver *SubscriberResolver, push PushSender, history HistoryStore, tokens TokenStore, publisher Publisher, pushTimeout time.Duration) *NotifyService {
	if pushTimeout == 0 {
		pushTimeout = 10 * time.Second
	}
	return &NotifyService{
		resolver:    resolver,
		push:        push,
		history:     history,
		tokens:      tokens,
		publisher:   publisher,
		pushTimeout: pushTimeout,
	}
}

// NotifyNewEvent fans out to a theater's subscribers when the theater gains
// a new event.
func (s *NotifyService) NotifyNewEvent(ctx context.Context, theaterID, theaterName, eventTitle string) (models.DeliveryResult, error) {
	title := fmt.Sprintf("New event at %s", theaterName)
	body := fmt.Sprintf("%s has started. Grab it before it runs out!", eventTitle)
	return s.fanOut(ctx, models.TargetTheater, theaterID, title, body)
}

// NotifyStatusChange fans out to a theater's subscribers when one of its
// event rows changes inventory status. The status must be a known enum value.
func (s *NotifyService) NotifyStatusChange(ctx context.Context, theaterID, theaterName, eventTitle, newStatus string) (models.DeliveryResult, error) {
	status := models.InventoryStatus(newStatus)
	if !status.Valid() {
		return models.DeliveryResult{}, fmt.Errorf("%w: unknown status %q", apperrors.ErrInvalidArgument, newStatus)
	}
	title := fmt.Sprintf("Stock update at %s", theaterName)
	body := fmt.Sprintf("%s is now %s.", eventTitle, statusLabel(status))
	return s.fanOut(ctx, models.TargetTheater, theaterID, title, body)
}

// NotifyFavoriteStatusChange fans out to an event's favoriting members when
// the event changes status at any theater.
func (s *NotifyService) NotifyFavoriteStatusChange(ctx context.Context, eventID, eventTitle, newStatus string) (models.DeliveryResult, error) {
	status := models.InventoryStatus(newStatus)
	if !status.Valid() {
		return models.DeliveryResult{}, fmt.Errorf("%w: unknown status %q", apperrors.ErrInvalidArgument, newStatus)
	}
	title := "Your favorite event changed"
	body := fmt.Sprintf("%s is now %s.", eventTitle, statusLabel(status))
	return s.fanOut(ctx, models.TargetEvent, eventID, title, body)
}

func (s *NotifyService) fanOut(ctx context.Context, kind models.TargetKind, targetID, title, body string) (models.DeliveryResult, error) {
	log := logger.WithContext(ctx)

	recipients, err := s.resolver.EligibleRecipients(ctx, kind, targetID)
	if err != nil {
		return models.DeliveryResult{}, err
	}
	if len(recipients) == 0 {
		return models.DeliveryResult{}, nil
	}

	if !s.push.Initialized() {
		log.Warn("push gateway not configured, skipping fan-out",
			"target_kind", string(kind), "target_id", targetID, "recipients", len(recipients))
		return models.DeliveryResult{}, nil
	}

	tokens := make([]string, len(recipients))
	for i, rcpt := range recipients {
		tokens[i] = rcpt.Token
	}

	sendCtx, cancel := context.WithTimeout(ctx, s.pushTimeout)
	outcomes, err := s.push.SendBatch(sendCtx, tokens, title, body)
	cancel()
	if err != nil {
		metrics.GatewayFailuresTotal.Inc()
		log.Error("push gateway batch failed",
			"target_kind", string(kind), "target_id", targetID, "error", err)
		return models.DeliveryResult{}, nil
	}

	succeeded := 0
	var invalid []string
	for _, out := range outcomes {
		if out.Success {
			succeeded++
			continue
		}
		if out.Reason == external.FailureUnregistered || out.Reason == external.FailureInvalidArgument {
			invalid = append(invalid, out.Token)
		}
	}

	// History is the record of intent, one row per eligible recipient,
	// written whether or not the individual push went through.
	histories := make([]models.NotificationHistory, len(recipients))
	now := time.Now()
	for i, rcpt := range recipients {
		histories[i] = models.NotificationHistory{
			ID:        uuid.New(),
			MemberID:  rcpt.MemberID,
			Title:     title,
			Body:      body,
			CreatedAt: now,
		}
	}
	if err := s.history.InsertBatch(ctx, histories); err != nil {
		return models.DeliveryResult{}, fmt.Errorf("failed to save notification history: %w", err)
	}

	if len(invalid) > 0 {
		metrics.InvalidTokensTotal.Add(float64(len(invalid)))
		s.scheduleTokenCleanup(ctx, invalid)
	}

	metrics.FanoutAttemptedTotal.Add(float64(len(recipients)))
	metrics.FanoutSucceededTotal.Add(float64(succeeded))
	log.Info("fan-out completed",
		"target_kind", string(kind), "target_id", targetID,
		"attempted", len(recipients), "succeeded", succeeded, "invalid_tokens", len(invalid))

	return models.DeliveryResult{Attempted: len(recipients), Succeeded: succeeded}, nil
}

// scheduleTokenCleanup hands dead tokens to the consumer over NATS, falling
// back to a direct in-process cleanup when no broker is wired or the publish
// fails. Cleanup never affects the fan-out result.
func (s *NotifyService) scheduleTokenCleanup(ctx context.Context, tokens []string) {
	log := logger.WithContext(ctx)

	if s.publisher != nil {
		msg := models.InvalidTokensMessage{Tokens: tokens, Timestamp: time.Now()}
		err := s.publisher.Publish(models.SubjectTokensInvalid, msg)
		if err == nil {
			return
		}
		log.Warn("failed to publish invalid tokens, cleaning up directly", "error", err)
	}

	go func() {
		cleanupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.tokens.ClearTokens(cleanupCtx, tokens); err != nil {
			logger.Get().Error("failed to clear invalid tokens", "count", len(tokens), "error", err)
		}
	}()
}

func statusLabel(status models.InventoryStatus) string {
	switch status {
	case models.StatusAvailable:
		return "available"
	case models.StatusSoldOut:
		return "sold out"
	case models.StatusScarce:
		return "almost gone"
	default:
		return "in an unknown state"
	}
}
