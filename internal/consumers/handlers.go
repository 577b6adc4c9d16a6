package consumers

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/nats-io/stan.go"

	apperrors "cinecatch/internal/errors"
	"cinecatch/internal/logger"
	"cinecatch/internal/models"
	"cinecatch/internal/service"
)

const handleTimeout = 30 * time.Second

type Handlers struct {
	services *service.Services
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{services: services}
}

func isInvalid(err error) bool {
	return errors.Is(err, apperrors.ErrInvalidArgument)
}

// HandleEventCreated fans out to the theater's subscribers. The message is
// acked on any terminal outcome; only storage errors leave it unacked for
// redelivery.
func (h *Handlers) HandleEventCreated(m *stan.Msg) {
	var msg models.EventCreatedMessage
	if err := json.Unmarshal(m.Data, &msg); err != nil {
		logger.Get().Error("failed to unmarshal event created message", "error", err)
		m.Ack()
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), handleTimeout)
	defer cancel()

	result, err := h.services.Notify.NotifyNewEvent(ctx, msg.TheaterID, msg.TheaterName, msg.EventTitle)
	if err != nil {
		logger.Get().Error("failed to process event created message",
			"theater_id", msg.TheaterID, "error", err)
		return
	}

	logger.Get().Info("processed event created message",
		"theater_id", msg.TheaterID, "attempted", result.Attempted, "succeeded", result.Succeeded)
	m.Ack()
}

func (h *Handlers) HandleStatusChanged(m *stan.Msg) {
	var msg models.StatusChangedMessage
	if err := json.Unmarshal(m.Data, &msg); err != nil {
		logger.Get().Error("failed to unmarshal status changed message", "error", err)
		m.Ack()
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), handleTimeout)
	defer cancel()

	result, err := h.services.Notify.NotifyStatusChange(ctx, msg.TheaterID, msg.TheaterName, msg.EventTitle, msg.NewStatus)
	if err != nil {
		logger.Get().Error("failed to process status changed message",
			"theater_id", msg.TheaterID, "new_status", msg.NewStatus, "error", err)
		// A malformed status will never succeed on redelivery.
		if isInvalid(err) {
			m.Ack()
		}
		return
	}

	logger.Get().Info("processed status changed message",
		"theater_id", msg.TheaterID, "attempted", result.Attempted, "succeeded", result.Succeeded)
	m.Ack()
}

func (h *Handlers) HandleFavoriteStatusChanged(m *stan.Msg) {
	var msg models.FavoriteStatusChangedMessage
	if err := json.Unmarshal(m.Data, &msg); err != nil {
		logger.Get().Error("failed to unmarshal favorite status changed message", "error", err)
		m.Ack()
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), handleTimeout)
	defer cancel()

	result, err := h.services.Notify.NotifyFavoriteStatusChange(ctx, msg.EventID, msg.EventTitle, msg.NewStatus)
	if err != nil {
		logger.Get().Error("failed to process favorite status changed message",
			"event_id", msg.EventID, "new_status", msg.NewStatus, "error", err)
		if isInvalid(err) {
			m.Ack()
		}
		return
	}

	logger.Get().Info("processed favorite status changed message",
		"event_id", msg.EventID, "attempted", result.Attempted, "succeeded", result.Succeeded)
	m.Ack()
}

// HandleInvalidTokens clears device tokens the push gateway reported dead.
func (h *Handlers) HandleInvalidTokens(m *stan.Msg) {
	var msg models.InvalidTokensMessage
	if err := json.Unmarshal(m.Data, &msg); err != nil {
		logger.Get().Error("failed to unmarshal invalid tokens message", "error", err)
		m.Ack()
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), handleTimeout)
	defer cancel()

	if err := h.services.Members.ClearTokens(ctx, msg.Tokens); err != nil {
		logger.Get().Error("failed to clear invalid tokens", "count", len(msg.Tokens), "error", err)
		return
	}

	logger.Get().Info("cleared invalid tokens", "count", len(msg.Tokens))
	m.Ack()
}
