package consumers

import (
	"context"

	"cinecatch/internal/config"
	"cinecatch/internal/database"
	"cinecatch/internal/external"
	"cinecatch/internal/logger"
	"cinecatch/internal/messaging"
	"cinecatch/internal/models"
	"cinecatch/internal/repository"
	"cinecatch/internal/service"
)

const queueGroup = "cinecatch-consumers"

// ConsumerService runs the NATS-driven side of the pipeline: ingestion
// messages from the crawler trigger fan-outs, and invalid-token messages
// from the API trigger cleanup.
type ConsumerService struct {
	db       *database.DB
	nats     *messaging.NATSClient
	repos    *repository.Repositories
	handlers *Handlers
}

func NewConsumerService(cfg *config.Config) (*ConsumerService, error) {
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, err
	}

	natsClient, err := messaging.NewNATSClient(cfg.NATS)
	if err != nil {
		db.Close()
		return nil, err
	}

	repos := repository.NewRepositories(db)
	pushClient := external.NewPushClient(cfg.Push)

	// Consumers never republish invalid tokens; they hold the cleanup end
	// of that subject, so the notify service gets no publisher here.
	services := service.NewServices(repos, pushClient, nil, cfg.Push.Timeout)

	return &ConsumerService{
		db:       db,
		nats:     natsClient,
		repos:    repos,
		handlers: NewHandlers(services),
	}, nil
}

func (cs *ConsumerService) Start() error {
	logger.Get().Info("starting NATS consumers")

	if _, err := cs.nats.SubscribeQueue(models.SubjectEventCreated, queueGroup, cs.handlers.HandleEventCreated); err != nil {
		return err
	}
	if _, err := cs.nats.SubscribeQueue(models.SubjectEventStatusChanged, queueGroup, cs.handlers.HandleStatusChanged); err != nil {
		return err
	}
	if _, err := cs.nats.SubscribeQueue(models.SubjectFavoriteStatusChanged, queueGroup, cs.handlers.HandleFavoriteStatusChanged); err != nil {
		return err
	}
	if _, err := cs.nats.SubscribeQueue(models.SubjectTokensInvalid, queueGroup, cs.handlers.HandleInvalidTokens); err != nil {
		return err
	}

	logger.Get().Info("all consumers started")
	return nil
}

func (cs *ConsumerService) Shutdown(ctx context.Context) error {
	logger.Get().Info("shutting down consumer service")

	if cs.nats != nil {
		if err := cs.nats.Close(); err != nil {
			logger.Get().Error("error closing NATS connection", "error", err)
		}
	}

	if cs.db != nil {
		if err := cs.db.Close(); err != nil {
			logger.Get().Error("error closing database connection", "error", err)
			return err
		}
	}

	return nil
}
